package mock

import (
	"context"

	"github.com/klever-io/klv-gas-oracle-go/aggregator"
)

// PriceNotifeeStub -
type PriceNotifeeStub struct {
	PriceUpdatedCalled func(ctx context.Context, args *aggregator.ArgsPriceUpdated) error
}

// PriceUpdated -
func (stub *PriceNotifeeStub) PriceUpdated(ctx context.Context, args *aggregator.ArgsPriceUpdated) error {
	if stub.PriceUpdatedCalled != nil {
		return stub.PriceUpdatedCalled(ctx, args)
	}

	return nil
}

// IsInterfaceNil -
func (stub *PriceNotifeeStub) IsInterfaceNil() bool {
	return stub == nil
}
