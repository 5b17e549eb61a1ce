package backend

import (
	"context"
	"log/slog"
	"strconv"

	"ledgerbot/internal/storage"
)

// rowSyncPublisher is the slice of the AMQP client the store needs.
type rowSyncPublisher interface {
	PublishRowSync(ctx context.Context, rowID int64) error
}

// syncedStore is the SQLite repository with a sync message published
// after each append. Publish failures are logged, not surfaced: the
// reconcile pass picks the row up later.
type syncedStore struct {
	*storage.SQLiteRepository
	publisher rowSyncPublisher
}

func newSyncedStore(repo *storage.SQLiteRepository, publisher rowSyncPublisher) *syncedStore {
	if publisher == nil {
		return &syncedStore{SQLiteRepository: repo}
	}
	return &syncedStore{SQLiteRepository: repo, publisher: publisher}
}

func (s *syncedStore) AppendRow(ctx context.Context, row []string) (string, error) {
	ref, err := s.SQLiteRepository.AppendRow(ctx, row)
	if err != nil {
		return "", err
	}
	if s.publisher != nil {
		id, perr := strconv.ParseInt(ref, 10, 64)
		if perr == nil {
			perr = s.publisher.PublishRowSync(ctx, id)
		}
		if perr != nil {
			slog.WarnContext(ctx, "Failed to publish row sync message, reconcile will catch up",
				"ref", ref, "error", perr)
		}
	}
	return ref, nil
}
