package notifees

import (
	"github.com/klever-io/klv-gas-oracle-go/aggregator"
)

// PriceUpdatedMessage is the JSON representation of a PriceUpdated notification
type PriceUpdatedMessage struct {
	Price                string `json:"price"`
	PriceDecimal         string `json:"priceDecimal"`
	PreviousPrice        string `json:"previousPrice"`
	PreviousPriceDecimal string `json:"previousPriceDecimal"`
	Timestamp            int64  `json:"timestamp"`
}

// NewPriceUpdatedMessage converts the notification arguments into their JSON representation
func NewPriceUpdatedMessage(args *aggregator.ArgsPriceUpdated) PriceUpdatedMessage {
	return PriceUpdatedMessage{
		Price:                args.CurrentPrice.Dec(),
		PriceDecimal:         aggregator.FormatPrice(args.CurrentPrice),
		PreviousPrice:        args.PreviousPrice.Dec(),
		PreviousPriceDecimal: aggregator.FormatPrice(args.PreviousPrice),
		Timestamp:            args.Timestamp,
	}
}
