package sheets

import (
	"context"
	"testing"
	"time"
)

type countingStore struct {
	reads int
	rows  [][]string
}

func (s *countingStore) GetAllRows(context.Context) ([][]string, error) {
	s.reads++
	out := make([][]string, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

func (s *countingStore) AppendRow(_ context.Context, row []string) (string, error) {
	s.rows = append(s.rows, row)
	return "x", nil
}

func (s *countingStore) UpdateCell(_ context.Context, rowIndex, colIndex int, value string) error {
	s.rows[rowIndex-1][colIndex-1] = value
	return nil
}

func (s *countingStore) EnsureHeaders(context.Context) error { return nil }

func TestCachedStoreReusesSnapshot(t *testing.T) {
	backing := &countingStore{rows: [][]string{{"a"}}}
	c := NewCachedStore(backing, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := c.GetAllRows(ctx); err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
	}
	if backing.reads != 1 {
		t.Fatalf("expected 1 backing read, got %d", backing.reads)
	}
}

func TestCachedStoreInvalidatesOnWrite(t *testing.T) {
	backing := &countingStore{rows: [][]string{{"a", "b"}}}
	c := NewCachedStore(backing, time.Minute)
	ctx := context.Background()

	if _, err := c.GetAllRows(ctx); err != nil {
		t.Fatalf("read: %v", err)
	}
	if _, err := c.AppendRow(ctx, []string{"c", "d"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	rows, err := c.GetAllRows(ctx)
	if err != nil || len(rows) != 2 {
		t.Fatalf("stale snapshot after append: %v err=%v", rows, err)
	}
	if backing.reads != 2 {
		t.Fatalf("expected re-read after append, got %d reads", backing.reads)
	}

	if err := c.UpdateCell(ctx, 1, 1, "z"); err != nil {
		t.Fatalf("update: %v", err)
	}
	rows, _ = c.GetAllRows(ctx)
	if rows[0][0] != "z" {
		t.Fatalf("stale snapshot after update: %v", rows)
	}
}
