package index

import (
	"context"
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var fallbackTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "search_index_fallback_total",
		Help: "Number of index operations served by the fallback after the primary index was unavailable.",
	},
	[]string{"operation"},
)

// Failover routes read operations to the primary index and retries them on
// the fallback when the primary is unavailable. The degraded flag tells the
// caller which path produced the result so it can be surfaced as a
// diagnostic. Writes go to the primary only: a failed reindex must be
// reported, not silently absorbed.
type Failover struct {
	primary  TextIndex
	fallback TextIndex
	logger   *slog.Logger
}

// NewFailover wraps the primary index with a fallback.
func NewFailover(primary, fallback TextIndex, logger *slog.Logger) *Failover {
	return &Failover{primary: primary, fallback: fallback, logger: logger}
}

// BulkReplace forwards to the primary index.
func (f *Failover) BulkReplace(ctx context.Context, docs []Document) error {
	return f.primary.BulkReplace(ctx, docs)
}

// Query tries the primary and falls back on ErrUnavailable. The returned
// degraded flag is true when the fallback produced the result.
func (f *Failover) Query(ctx context.Context, prefix string, maxResults int) ([]Document, bool, error) {
	docs, err := f.primary.Query(ctx, prefix, maxResults)
	if err == nil {
		return docs, false, nil
	}
	if !errors.Is(err, ErrUnavailable) {
		return nil, false, err
	}

	f.logger.Warn("primary index unavailable, using fallback",
		slog.String("operation", "query"),
		slog.String("error", err.Error()),
	)
	fallbackTotal.WithLabelValues("query").Inc()

	docs, err = f.fallback.Query(ctx, prefix, maxResults)
	if err != nil {
		return nil, true, err
	}
	return docs, true, nil
}

// FullTextSearch tries the primary and falls back on ErrUnavailable.
func (f *Failover) FullTextSearch(ctx context.Context, text string, maxResults int) ([]Hit, bool, error) {
	hits, err := f.primary.FullTextSearch(ctx, text, maxResults)
	if err == nil {
		return hits, false, nil
	}
	if !errors.Is(err, ErrUnavailable) {
		return nil, false, err
	}

	f.logger.Warn("primary index unavailable, using fallback",
		slog.String("operation", "full_text_search"),
		slog.String("error", err.Error()),
	)
	fallbackTotal.WithLabelValues("full_text_search").Inc()

	hits, err = f.fallback.FullTextSearch(ctx, text, maxResults)
	if err != nil {
		return nil, true, err
	}
	return hits, true, nil
}
