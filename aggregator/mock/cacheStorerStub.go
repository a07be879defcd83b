package mock

import (
	"context"

	"github.com/klever-io/klv-gas-oracle-go/aggregator"
)

// CacheStorerStub -
type CacheStorerStub struct {
	LoadCachedPriceCalled func(ctx context.Context) (*aggregator.CachedPrice, error)
	SaveCachedPriceCalled func(ctx context.Context, cached *aggregator.CachedPrice) error
	CloseCalled           func() error
}

// LoadCachedPrice -
func (stub *CacheStorerStub) LoadCachedPrice(ctx context.Context) (*aggregator.CachedPrice, error) {
	if stub.LoadCachedPriceCalled != nil {
		return stub.LoadCachedPriceCalled(ctx)
	}

	return nil, aggregator.ErrCachedPriceNotFound
}

// SaveCachedPrice -
func (stub *CacheStorerStub) SaveCachedPrice(ctx context.Context, cached *aggregator.CachedPrice) error {
	if stub.SaveCachedPriceCalled != nil {
		return stub.SaveCachedPriceCalled(ctx, cached)
	}

	return nil
}

// Close -
func (stub *CacheStorerStub) Close() error {
	if stub.CloseCalled != nil {
		return stub.CloseCalled()
	}

	return nil
}

// IsInterfaceNil -
func (stub *CacheStorerStub) IsInterfaceNil() bool {
	return stub == nil
}
