// Package storage persists ledger rows in SQLite. Cells are stored as
// the raw text the sheet would hold; normalization stays in the engine,
// so this mirror and the Google sheet stay interchangeable behind the
// row-store ports.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"ledgerbot/internal/core"

	_ "modernc.org/sqlite"
)

// Row is one persisted ledger row plus its sync bookkeeping.
type Row struct {
	ID          int64
	User        string
	Amount      string
	Description string
	Category    string
	Kind        string
	RecordedAt  string
	Synced      bool
}

// Cells returns the row in canonical sheet column order.
func (r Row) Cells() []string {
	return []string{r.User, r.Amount, r.Description, r.Category, r.Kind, r.RecordedAt}
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// GetAllRows implements the RowSource port. The synthetic header row
// comes first so the snapshot has the same shape a worksheet read has.
func (r *SQLiteRepository) GetAllRows(ctx context.Context) ([][]string, error) {
	rows, err := r.listRows(ctx, "SELECT id, user, amount, description, category, kind, recorded_at, synced FROM ledger_rows ORDER BY id")
	if err != nil {
		return nil, err
	}
	out := make([][]string, 0, len(rows)+1)
	out = append(out, append([]string(nil), core.Headers...))
	for _, row := range rows {
		out = append(out, row.Cells())
	}
	return out, nil
}

// AppendRow implements the RowAppender port.
func (r *SQLiteRepository) AppendRow(ctx context.Context, row []string) (string, error) {
	cells := make([]string, 6)
	copy(cells, row)
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO ledger_rows (user, amount, description, category, kind, recorded_at) VALUES (?, ?, ?, ?, ?, ?)",
		cells[0], cells[1], cells[2], cells[3], cells[4], cells[5])
	if err != nil {
		return "", fmt.Errorf("insert ledger row: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("last insert id: %w", err)
	}
	slog.InfoContext(ctx, "Ledger row saved to SQLite", "id", id, "user", cells[0])
	return strconv.FormatInt(id, 10), nil
}

var columnNames = []string{"user", "amount", "description", "category", "kind", "recorded_at"}

// UpdateCell implements the CellUpdater port. Coordinates are 1-based
// sheet coordinates where row 1 is the synthetic header, so data starts
// at row 2.
func (r *SQLiteRepository) UpdateCell(ctx context.Context, rowIndex, colIndex int, value string) error {
	if colIndex < 1 || colIndex > len(columnNames) {
		return fmt.Errorf("column %d out of range (1..%d)", colIndex, len(columnNames))
	}
	if rowIndex < 2 {
		return fmt.Errorf("row %d out of range: the header row is not writable", rowIndex)
	}
	// The Nth data row in id order.
	var id int64
	err := r.db.QueryRowContext(ctx,
		"SELECT id FROM ledger_rows ORDER BY id LIMIT 1 OFFSET ?", rowIndex-2).Scan(&id)
	if err == sql.ErrNoRows {
		return fmt.Errorf("row %d out of range", rowIndex)
	}
	if err != nil {
		return fmt.Errorf("locate row %d: %w", rowIndex, err)
	}
	query := fmt.Sprintf("UPDATE ledger_rows SET %s = ?, synced = 0 WHERE id = ?", columnNames[colIndex-1])
	if _, err := r.db.ExecContext(ctx, query, value, id); err != nil {
		return fmt.Errorf("update cell: %w", err)
	}
	return nil
}

// EnsureHeaders is a no-op: the header row is synthesized on read.
func (r *SQLiteRepository) EnsureHeaders(context.Context) error { return nil }

// GetRow loads one row by id for the sync worker.
func (r *SQLiteRepository) GetRow(ctx context.Context, id int64) (Row, error) {
	var row Row
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user, amount, description, category, kind, recorded_at, synced FROM ledger_rows WHERE id = ?", id).
		Scan(&row.ID, &row.User, &row.Amount, &row.Description, &row.Category, &row.Kind, &row.RecordedAt, &row.Synced)
	if err == sql.ErrNoRows {
		return Row{}, fmt.Errorf("row %d not found", id)
	}
	if err != nil {
		return Row{}, fmt.Errorf("get row %d: %w", id, err)
	}
	return row, nil
}

// ListUnsynced returns rows not yet mirrored to the sheet, oldest
// first, capped at limit.
func (r *SQLiteRepository) ListUnsynced(ctx context.Context, limit int) ([]Row, error) {
	return r.listRows(ctx,
		"SELECT id, user, amount, description, category, kind, recorded_at, synced FROM ledger_rows WHERE synced = 0 ORDER BY id LIMIT "+strconv.Itoa(limit))
}

// MarkSynced records that a row reached the sheet.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE ledger_rows SET synced = 1 WHERE id = ?", id); err != nil {
		return fmt.Errorf("mark row %d synced: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) listRows(ctx context.Context, query string, args ...any) ([]Row, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query ledger rows: %w", err)
	}
	defer rows.Close()
	var out []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.ID, &row.User, &row.Amount, &row.Description, &row.Category, &row.Kind, &row.RecordedAt, &row.Synced); err != nil {
			return nil, fmt.Errorf("scan ledger row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger rows: %w", err)
	}
	return out, nil
}
