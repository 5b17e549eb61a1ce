// Package worker mirrors SQLite-appended ledger rows to the Google
// sheet. Sync requests arrive over AMQP; a periodic reconcile pass
// catches anything a lost message left behind.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"ledgerbot/internal/amqp"
	"ledgerbot/internal/sheets"
	"ledgerbot/internal/storage"
)

type SyncWorker struct {
	repo      *storage.SQLiteRepository
	sheet     sheets.RowAppender
	batchSize int
}

func NewSyncWorker(repo *storage.SQLiteRepository, sheet sheets.RowAppender, batchSize int) *SyncWorker {
	if batchSize < 1 {
		batchSize = 10
	}
	return &SyncWorker{repo: repo, sheet: sheet, batchSize: batchSize}
}

// HandleSyncMessage mirrors one row to the sheet. Already-synced rows
// are skipped so redelivered messages stay idempotent.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.RowSyncMessage) error {
	row, err := w.repo.GetRow(ctx, msg.RowID)
	if err != nil {
		return fmt.Errorf("get row from storage: %w", err)
	}
	if row.Synced {
		slog.InfoContext(ctx, "Row already synced, skipping", "row_id", row.ID)
		return nil
	}
	return w.syncRow(ctx, row)
}

// Reconcile appends every unsynced row, oldest first, up to the batch
// size. Returns how many rows were mirrored.
func (w *SyncWorker) Reconcile(ctx context.Context) (int, error) {
	rows, err := w.repo.ListUnsynced(ctx, w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("list unsynced rows: %w", err)
	}
	synced := 0
	for _, row := range rows {
		if err := w.syncRow(ctx, row); err != nil {
			return synced, err
		}
		synced++
	}
	if synced > 0 {
		slog.InfoContext(ctx, "Reconcile pass complete", "synced", synced)
	}
	return synced, nil
}

func (w *SyncWorker) syncRow(ctx context.Context, row storage.Row) error {
	ref, err := w.sheet.AppendRow(ctx, row.Cells())
	if err != nil {
		return fmt.Errorf("append row %d to sheet: %w", row.ID, err)
	}
	if err := w.repo.MarkSynced(ctx, row.ID); err != nil {
		// The sheet write landed; a redelivery would duplicate it.
		return fmt.Errorf("mark row %d synced after sheet write %s: %w", row.ID, ref, err)
	}
	slog.InfoContext(ctx, "Row synced to sheet", "row_id", row.ID, "ref", ref)
	return nil
}
