package feeds

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/klever-io/klv-gas-oracle-go/aggregator"
	"github.com/shopspring/decimal"
)

const (
	// ChainlinkFeedType reads an AggregatorV3 compatible contract
	ChainlinkFeedType = "chainlink"
	// StaticFeedType reports a fixed price
	StaticFeedType = "static"
)

// ImplementedFeedTypes lists the feed types NewRoundDataSource can build
var ImplementedFeedTypes = map[string]struct{}{
	ChainlinkFeedType: {},
	StaticFeedType:    {},
}

// ArgsRoundDataSource represents the arguments for the NewRoundDataSource function
type ArgsRoundDataSource struct {
	Type    string
	Name    string
	Address string
	// StaticPrice is a decimal string, e.g. "1.0001"
	StaticPrice string
	Caller      bind.ContractCaller
}

// NewRoundDataSource returns a new round data source of the type provided
func NewRoundDataSource(args ArgsRoundDataSource) (aggregator.RoundDataSource, error) {
	switch args.Type {
	case ChainlinkFeedType:
		if !common.IsHexAddress(args.Address) {
			return nil, fmt.Errorf("%w, feed %s, address %q", errInvalidAddress, args.Name, args.Address)
		}

		feed, err := NewChainlinkFeed(ArgsChainlinkFeed{
			Name:    args.Name,
			Address: common.HexToAddress(args.Address),
			Caller:  args.Caller,
		})
		if err != nil {
			return nil, err
		}

		return feed, nil
	case StaticFeedType:
		price, err := decimal.NewFromString(args.StaticPrice)
		if err != nil {
			return nil, fmt.Errorf("%w, feed %s: %s", errInvalidStaticPrice, args.Name, err.Error())
		}

		feed, err := NewStaticFeed(ArgsStaticFeed{
			Name:  args.Name,
			Price: price.Shift(aggregator.FeedDecimals).BigInt(),
		})
		if err != nil {
			return nil, err
		}

		return feed, nil
	}

	return nil, fmt.Errorf("%w, feedType %s", errInvalidFeedType, args.Type)
}
