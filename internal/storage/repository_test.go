package storage

import (
	"context"
	"path/filepath"
	"testing"

	"ledgerbot/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open repo: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestAppendAndSnapshot(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	ref, err := repo.AppendRow(ctx, []string{"alice", "10", "lunch", "Food", "Expense", "2024-03-01 12:00:00"})
	if err != nil || ref != "1" {
		t.Fatalf("append: ref=%q err=%v", ref, err)
	}
	if _, err := repo.AppendRow(ctx, []string{"bob", "5"}); err != nil {
		t.Fatalf("short append: %v", err)
	}

	rows, err := repo.GetAllRows(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(rows) != 3 || !core.IsHeaderRow(rows[0]) {
		t.Fatalf("unexpected snapshot: %v", rows)
	}
	if rows[1][0] != "alice" || rows[2][0] != "bob" || rows[2][2] != "" {
		t.Fatalf("row content: %v", rows)
	}
}

func TestUpdateCellSheetCoordinates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	if _, err := repo.AppendRow(ctx, []string{"alice", "10", "lunch", "Uncategorized", "Expense", "2024-03-01"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	// Row 2 is the first data row; column 4 is Category.
	if err := repo.UpdateCell(ctx, 2, 4, "Food"); err != nil {
		t.Fatalf("update: %v", err)
	}
	rows, _ := repo.GetAllRows(ctx)
	if rows[1][3] != "Food" {
		t.Fatalf("category not updated: %v", rows[1])
	}

	if err := repo.UpdateCell(ctx, 1, 4, "x"); err == nil {
		t.Fatalf("header row should not be writable")
	}
	if err := repo.UpdateCell(ctx, 9, 4, "x"); err == nil {
		t.Fatalf("expected out-of-range row error")
	}
	if err := repo.UpdateCell(ctx, 2, 7, "x"); err == nil {
		t.Fatalf("expected out-of-range column error")
	}
}

func TestSyncBookkeeping(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	if _, err := repo.AppendRow(ctx, []string{"alice", "10", "lunch", "Food", "Expense", "2024-03-01"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := repo.AppendRow(ctx, []string{"alice", "20", "dinner", "Food", "Expense", "2024-03-02"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	unsynced, err := repo.ListUnsynced(ctx, 10)
	if err != nil || len(unsynced) != 2 {
		t.Fatalf("unsynced: %v err=%v", unsynced, err)
	}
	if err := repo.MarkSynced(ctx, unsynced[0].ID); err != nil {
		t.Fatalf("mark synced: %v", err)
	}
	unsynced, _ = repo.ListUnsynced(ctx, 10)
	if len(unsynced) != 1 || unsynced[0].Description != "dinner" {
		t.Fatalf("after mark: %v", unsynced)
	}

	row, err := repo.GetRow(ctx, unsynced[0].ID)
	if err != nil || row.Description != "dinner" || row.Synced {
		t.Fatalf("get row: %+v err=%v", row, err)
	}
	if _, err := repo.GetRow(ctx, 999); err == nil {
		t.Fatalf("expected not-found error")
	}
}
