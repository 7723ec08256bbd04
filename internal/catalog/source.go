package catalog

import (
	"context"
	"errors"

	"github.com/utafrali/SearchGo/internal/domain"
)

// ErrSourceUnavailable is returned when the underlying catalog data source
// cannot be read. Fatal at startup; recoverable on the next refresh.
var ErrSourceUnavailable = errors.New("catalog source unavailable")

// Source is the read-only external data source the catalog loads from.
type Source interface {
	Load(ctx context.Context) ([]domain.Product, error)
}
