package sheets

import (
	"context"
	"time"

	"ledgerbot/internal/cache"
)

const snapshotKey = "rows"

// CachedStore wraps a RowStore with a TTL'd snapshot cache. Reads
// within the TTL reuse one backing read; writes go straight through and
// invalidate the snapshot so the next report sees them.
type CachedStore struct {
	store RowStore
	snaps *cache.LRUCache[[][]string]
}

func NewCachedStore(store RowStore, ttl time.Duration) *CachedStore {
	return &CachedStore{
		store: store,
		snaps: cache.NewLRUCache[[][]string](1, ttl),
	}
}

func (c *CachedStore) GetAllRows(ctx context.Context) ([][]string, error) {
	if rows, ok := c.snaps.Get(snapshotKey); ok {
		return rows, nil
	}
	rows, err := c.store.GetAllRows(ctx)
	if err != nil {
		return nil, err
	}
	c.snaps.Set(snapshotKey, rows)
	return rows, nil
}

func (c *CachedStore) AppendRow(ctx context.Context, row []string) (string, error) {
	ref, err := c.store.AppendRow(ctx, row)
	if err == nil {
		c.snaps.Delete(snapshotKey)
	}
	return ref, err
}

func (c *CachedStore) UpdateCell(ctx context.Context, rowIndex, colIndex int, value string) error {
	err := c.store.UpdateCell(ctx, rowIndex, colIndex, value)
	if err == nil {
		c.snaps.Delete(snapshotKey)
	}
	return err
}

func (c *CachedStore) EnsureHeaders(ctx context.Context) error {
	err := c.store.EnsureHeaders(ctx)
	if err == nil {
		c.snaps.Delete(snapshotKey)
	}
	return err
}
