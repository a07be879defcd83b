package notifees

import (
	"context"

	"github.com/klever-io/klv-gas-oracle-go/aggregator"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("gas-oracle/aggregator/notifees")

type logNotifee struct {
	log logger.Logger
}

// NewLogNotifee will create a notifee that only logs the price updates
func NewLogNotifee(logHandler logger.Logger) (*logNotifee, error) {
	if check.IfNil(logHandler) {
		return nil, errNilLogger
	}

	return &logNotifee{
		log: logHandler,
	}, nil
}

// PriceUpdated logs the price update
func (ln *logNotifee) PriceUpdated(_ context.Context, args *aggregator.ArgsPriceUpdated) error {
	if args == nil {
		return errNilPriceUpdatedArgs
	}

	ln.log.Info("notifee: price updated",
		"price", aggregator.FormatPrice(args.CurrentPrice),
		"previous", aggregator.FormatPrice(args.PreviousPrice),
		"timestamp", args.Timestamp)

	return nil
}

// IsInterfaceNil returns true if there is no value under the interface
func (ln *logNotifee) IsInterfaceNil() bool {
	return ln == nil
}
