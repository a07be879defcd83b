package mock

import (
	"context"

	"github.com/klever-io/klv-gas-oracle-go/aggregator"
)

// RoundDataSourceStub -
type RoundDataSourceStub struct {
	NameField             string
	LatestRoundDataCalled func(ctx context.Context) (*aggregator.RoundData, error)
	DecimalsCalled        func(ctx context.Context) (uint8, error)
}

// LatestRoundData -
func (stub *RoundDataSourceStub) LatestRoundData(ctx context.Context) (*aggregator.RoundData, error) {
	if stub.LatestRoundDataCalled != nil {
		return stub.LatestRoundDataCalled(ctx)
	}

	return nil, nil
}

// Decimals -
func (stub *RoundDataSourceStub) Decimals(ctx context.Context) (uint8, error) {
	if stub.DecimalsCalled != nil {
		return stub.DecimalsCalled(ctx)
	}

	return aggregator.FeedDecimals, nil
}

// Name -
func (stub *RoundDataSourceStub) Name() string {
	return stub.NameField
}

// IsInterfaceNil -
func (stub *RoundDataSourceStub) IsInterfaceNil() bool {
	return stub == nil
}
