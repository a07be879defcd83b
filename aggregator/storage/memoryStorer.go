package storage

import (
	"context"
	"sync"

	"github.com/holiman/uint256"
	"github.com/klever-io/klv-gas-oracle-go/aggregator"
)

type memoryStorer struct {
	mut    sync.RWMutex
	cached *aggregator.CachedPrice
}

// NewMemoryStorer creates a storer that keeps the cached price for the life of the process
func NewMemoryStorer() *memoryStorer {
	return &memoryStorer{}
}

// LoadCachedPrice returns a copy of the last saved price
func (ms *memoryStorer) LoadCachedPrice(_ context.Context) (*aggregator.CachedPrice, error) {
	ms.mut.RLock()
	defer ms.mut.RUnlock()

	if ms.cached == nil {
		return nil, aggregator.ErrCachedPriceNotFound
	}

	return copyCachedPrice(ms.cached), nil
}

// SaveCachedPrice keeps a copy of the provided price
func (ms *memoryStorer) SaveCachedPrice(_ context.Context, cached *aggregator.CachedPrice) error {
	if cached == nil || cached.Price == nil {
		return errNilCachedPrice
	}

	ms.mut.Lock()
	ms.cached = copyCachedPrice(cached)
	ms.mut.Unlock()

	return nil
}

// Close does nothing
func (ms *memoryStorer) Close() error {
	return nil
}

// IsInterfaceNil returns true if there is no value under the interface
func (ms *memoryStorer) IsInterfaceNil() bool {
	return ms == nil
}

func copyCachedPrice(cached *aggregator.CachedPrice) *aggregator.CachedPrice {
	return &aggregator.CachedPrice{
		Price:     new(uint256.Int).Set(cached.Price),
		Timestamp: cached.Timestamp,
	}
}
