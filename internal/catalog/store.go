package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Store holds the current catalog snapshot behind an atomically swapped
// pointer. Readers take the snapshot once and keep using it for the whole
// request; a concurrent refresh never tears an in-flight query.
type Store struct {
	source Source
	logger *slog.Logger

	mu         sync.Mutex // serializes refreshes
	generation atomic.Uint64
	current    atomic.Pointer[Snapshot]
}

// NewStore creates a store over the given source. No snapshot exists until
// the first Refresh succeeds.
func NewStore(source Source, logger *slog.Logger) *Store {
	return &Store{source: source, logger: logger}
}

// Current returns the active snapshot, or nil before the first successful
// load.
func (st *Store) Current() *Snapshot {
	return st.current.Load()
}

// Refresh loads the catalog from the source, builds a new snapshot with its
// derived views, and swaps it in atomically. The previous snapshot stays
// queryable until the new one is fully built. On failure the old snapshot is
// kept and the error is returned.
func (st *Store) Refresh(ctx context.Context) (*Snapshot, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	products, err := st.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh catalog: %w", err)
	}

	snap := newSnapshot(st.generation.Add(1), products)
	st.current.Store(snap)

	st.logger.Info("catalog snapshot replaced",
		slog.Uint64("generation", snap.Generation()),
		slog.Int("products", snap.Len()),
		slog.Int("categories", len(snap.Categories())),
	)

	return snap, nil
}
