package sheets

import "context"

// Ports for outbound row-store adapters. The reporting engine reads a
// full snapshot through RowSource; the command layer writes through
// RowAppender and CellUpdater. Adapters: Google Sheets, SQLite, memory.
type (
	// RowSource returns the current snapshot of all rows, in sheet
	// order. The first row may be the header; callers strip it by name.
	RowSource interface {
		GetAllRows(ctx context.Context) ([][]string, error)
	}

	// RowAppender appends one row and returns an adapter-specific
	// reference to it.
	RowAppender interface {
		AppendRow(ctx context.Context, row []string) (ref string, err error)
	}

	// CellUpdater overwrites a single cell. Coordinates are 1-based
	// sheet coordinates, header row included.
	CellUpdater interface {
		UpdateCell(ctx context.Context, rowIndex, colIndex int, value string) error
	}

	// HeaderEnsurer creates or repairs the canonical header row.
	HeaderEnsurer interface {
		EnsureHeaders(ctx context.Context) error
	}
)

// RowStore bundles everything the command layer needs from a backend.
type RowStore interface {
	RowSource
	RowAppender
	CellUpdater
	HeaderEnsurer
}
