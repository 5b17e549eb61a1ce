package memory

import (
	"context"
	"fmt"
	"sync"

	"ledgerbot/internal/core"
)

// Store is an in-memory worksheet for tests and local runs. Rows are
// kept in append order behind a mutex; the snapshot handed out is a
// deep copy so callers can treat it as frozen.
type Store struct {
	mu   sync.Mutex
	rows [][]string
}

func New() *Store {
	return &Store{}
}

// NewWithRows seeds the store, header included if the caller wants one.
func NewWithRows(rows [][]string) *Store {
	s := &Store{}
	for _, r := range rows {
		s.rows = append(s.rows, append([]string(nil), r...))
	}
	return s
}

func (s *Store) GetAllRows(_ context.Context) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]string, len(s.rows))
	for i, r := range s.rows {
		out[i] = append([]string(nil), r...)
	}
	return out, nil
}

func (s *Store) AppendRow(_ context.Context, row []string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, append([]string(nil), row...))
	return fmt.Sprintf("mem:%d", len(s.rows)), nil
}

func (s *Store) UpdateCell(_ context.Context, rowIndex, colIndex int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rowIndex < 1 || rowIndex > len(s.rows) {
		return fmt.Errorf("row %d out of range (1..%d)", rowIndex, len(s.rows))
	}
	row := s.rows[rowIndex-1]
	if colIndex < 1 {
		return fmt.Errorf("column %d out of range", colIndex)
	}
	for len(row) < colIndex {
		row = append(row, "")
	}
	row[colIndex-1] = value
	s.rows[rowIndex-1] = row
	return nil
}

// EnsureHeaders installs or repairs the canonical header row.
func (s *Store) EnsureHeaders(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	header := append([]string(nil), core.Headers...)
	if len(s.rows) == 0 {
		s.rows = append(s.rows, header)
		return nil
	}
	if !core.IsHeaderRow(s.rows[0]) {
		s.rows = append([][]string{header}, s.rows...)
		return nil
	}
	s.rows[0] = header
	return nil
}
