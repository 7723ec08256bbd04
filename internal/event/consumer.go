package event

import (
	"context"
	"log/slog"

	"github.com/utafrali/SearchGo/internal/service"
	"github.com/utafrali/SearchGo/pkg/kafka"
)

// Topics consumed by the search service.
const (
	TopicCatalogUpdated = "ecommerce.catalog.updated"
)

// Event types on the catalog topic.
const (
	EventCatalogUpdated = "catalog.updated"
)

// catalogUpdatedData is the payload of a catalog.updated event.
type catalogUpdatedData struct {
	Source       string `json:"source"`
	ProductCount int    `json:"product_count,omitempty"`
}

// CatalogConsumer reacts to catalog update events by reloading the snapshot
// and rebuilding the text index.
type CatalogConsumer struct {
	svc    *service.Service
	logger *slog.Logger
}

// NewCatalogConsumer creates the catalog event consumer.
func NewCatalogConsumer(svc *service.Service, logger *slog.Logger) *CatalogConsumer {
	return &CatalogConsumer{svc: svc, logger: logger}
}

// HandleCatalogUpdated is the handler wired to the catalog topic. A failed
// refresh is returned so the broker redelivers; a failed reindex is absorbed,
// since the refreshed snapshot already serves structured search and the next
// rebuild will catch the index up.
func (c *CatalogConsumer) HandleCatalogUpdated(ctx context.Context, evt *kafka.Event) error {
	if evt.EventType != EventCatalogUpdated {
		c.logger.Debug("ignoring event", slog.String("event_type", evt.EventType))
		return nil
	}

	var data catalogUpdatedData
	if err := evt.UnmarshalData(&data); err != nil {
		c.logger.Warn("catalog event payload malformed, refreshing anyway",
			slog.String("error", err.Error()),
		)
	}

	snap, err := c.svc.RefreshCatalog(ctx)
	if err != nil {
		return err
	}

	c.logger.Info("catalog refreshed from event",
		slog.String("event_id", evt.EventID),
		slog.String("source", data.Source),
		slog.Uint64("generation", snap.Generation()),
		slog.Int("products", snap.Len()),
	)

	if _, err := c.svc.Reindex(ctx); err != nil {
		c.logger.Error("reindex after catalog refresh failed",
			slog.String("event_id", evt.EventID),
			slog.String("error", err.Error()),
		)
	}
	return nil
}
