package notifees

import (
	"context"
	"errors"
	"fmt"

	"github.com/klever-io/klv-gas-oracle-go/aggregator"
	"github.com/multiversx/mx-chain-core-go/core/check"
)

type multiNotifee struct {
	notifees []aggregator.PriceNotifee
}

// NewMultiNotifee will create a notifee that forwards every price update to all the provided notifees
func NewMultiNotifee(notifees ...aggregator.PriceNotifee) (*multiNotifee, error) {
	for idx, notifee := range notifees {
		if check.IfNil(notifee) {
			return nil, fmt.Errorf("%w at index %d", errNilNotifee, idx)
		}
	}

	return &multiNotifee{
		notifees: notifees,
	}, nil
}

// PriceUpdated calls every notifee, a failing one does not stop the others
func (mn *multiNotifee) PriceUpdated(ctx context.Context, args *aggregator.ArgsPriceUpdated) error {
	var errs []error
	for _, notifee := range mn.notifees {
		err := notifee.PriceUpdated(ctx, args)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// IsInterfaceNil returns true if there is no value under the interface
func (mn *multiNotifee) IsInterfaceNil() bool {
	return mn == nil
}
