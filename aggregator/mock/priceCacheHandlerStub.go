package mock

import (
	"context"
	"time"

	"github.com/holiman/uint256"
)

// PriceCacheHandlerStub -
type PriceCacheHandlerStub struct {
	UpdateCalled               func(ctx context.Context, force bool) (*uint256.Int, error)
	CachedPriceCalled          func() *uint256.Int
	CachedPriceTimestampCalled func() int64
	CacheTimeToLiveCalled      func() time.Duration
	IsConfiguredCalled         func() bool
}

// Update -
func (stub *PriceCacheHandlerStub) Update(ctx context.Context, force bool) (*uint256.Int, error) {
	if stub.UpdateCalled != nil {
		return stub.UpdateCalled(ctx, force)
	}

	return uint256.NewInt(0), nil
}

// CachedPrice -
func (stub *PriceCacheHandlerStub) CachedPrice() *uint256.Int {
	if stub.CachedPriceCalled != nil {
		return stub.CachedPriceCalled()
	}

	return uint256.NewInt(0)
}

// CachedPriceTimestamp -
func (stub *PriceCacheHandlerStub) CachedPriceTimestamp() int64 {
	if stub.CachedPriceTimestampCalled != nil {
		return stub.CachedPriceTimestampCalled()
	}

	return 0
}

// CacheTimeToLive -
func (stub *PriceCacheHandlerStub) CacheTimeToLive() time.Duration {
	if stub.CacheTimeToLiveCalled != nil {
		return stub.CacheTimeToLiveCalled()
	}

	return 0
}

// IsConfigured -
func (stub *PriceCacheHandlerStub) IsConfigured() bool {
	if stub.IsConfiguredCalled != nil {
		return stub.IsConfiguredCalled()
	}

	return true
}

// IsInterfaceNil -
func (stub *PriceCacheHandlerStub) IsInterfaceNil() bool {
	return stub == nil
}
