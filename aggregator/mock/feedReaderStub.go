package mock

import (
	"context"
	"time"

	"github.com/holiman/uint256"
	"github.com/klever-io/klv-gas-oracle-go/aggregator"
)

// FeedReaderStub -
type FeedReaderStub struct {
	ReadCalled func(ctx context.Context, source aggregator.RoundDataSource, now time.Time, maxAge time.Duration) (*uint256.Int, error)
}

// Read -
func (stub *FeedReaderStub) Read(ctx context.Context, source aggregator.RoundDataSource, now time.Time, maxAge time.Duration) (*uint256.Int, error) {
	if stub.ReadCalled != nil {
		return stub.ReadCalled(ctx, source, now, maxAge)
	}

	return uint256.NewInt(100_000_000), nil
}

// IsInterfaceNil -
func (stub *FeedReaderStub) IsInterfaceNil() bool {
	return stub == nil
}
