package gin

import (
	"context"

	"github.com/klever-io/klv-gas-oracle-go/aggregator"
)

// PriceHistoryProvider returns the most recent accepted updates, newest first
type PriceHistoryProvider interface {
	PriceUpdates(ctx context.Context, limit int) ([]*aggregator.CachedPrice, error)
}
