package feeds

import (
	"context"
	_ "embed"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/klever-io/klv-gas-oracle-go/aggregator"
	logger "github.com/multiversx/mx-chain-logger-go"
)

//go:embed abi/aggregatorV3.abi
var aggregatorV3ABI string

const (
	latestRoundDataMethod = "latestRoundData"
	decimalsMethod        = "decimals"
	latestRoundDataFields = 5
)

var log = logger.GetOrCreate("gas-oracle/feeds")

// ArgsChainlinkFeed is the argument DTO for the Chainlink aggregator feed
type ArgsChainlinkFeed struct {
	Name    string
	Address common.Address
	Caller  bind.ContractCaller
}

type chainlinkFeed struct {
	name     string
	address  common.Address
	contract *bind.BoundContract
}

// NewChainlinkFeed creates a round data source backed by an AggregatorV3 compatible contract
func NewChainlinkFeed(args ArgsChainlinkFeed) (*chainlinkFeed, error) {
	if args.Caller == nil {
		return nil, errNilContractCaller
	}
	if args.Address == (common.Address{}) {
		return nil, errInvalidAddress
	}

	parsedABI, err := abi.JSON(strings.NewReader(aggregatorV3ABI))
	if err != nil {
		return nil, fmt.Errorf("%w while parsing the aggregator ABI", err)
	}

	name := args.Name
	if len(name) == 0 {
		name = args.Address.Hex()
	}

	return &chainlinkFeed{
		name:     name,
		address:  args.Address,
		contract: bind.NewBoundContract(args.Address, parsedABI, args.Caller, nil, nil),
	}, nil
}

// LatestRoundData calls latestRoundData on the aggregator contract
func (feed *chainlinkFeed) LatestRoundData(ctx context.Context) (*aggregator.RoundData, error) {
	var out []interface{}
	err := feed.contract.Call(&bind.CallOpts{Context: ctx}, &out, latestRoundDataMethod)
	if err != nil {
		return nil, fmt.Errorf("%w while calling %s on %s", err, latestRoundDataMethod, feed.address.Hex())
	}
	if len(out) != latestRoundDataFields {
		return nil, fmt.Errorf("%w, %s returned %d values", errUnexpectedOutput, latestRoundDataMethod, len(out))
	}

	values := make([]*big.Int, 0, latestRoundDataFields)
	for idx, value := range out {
		bigValue, ok := value.(*big.Int)
		if !ok || bigValue == nil {
			return nil, fmt.Errorf("%w, field %d of %s", errUnexpectedOutput, idx, latestRoundDataMethod)
		}
		values = append(values, bigValue)
	}

	startedAt, err := toTimestamp(values[2])
	if err != nil {
		return nil, err
	}
	updatedAt, err := toTimestamp(values[3])
	if err != nil {
		return nil, err
	}

	log.Trace("latest round data", "feed", feed.name, "round", values[0], "answer", values[1], "updated at", updatedAt)

	return &aggregator.RoundData{
		RoundID:         values[0],
		Answer:          values[1],
		StartedAt:       startedAt,
		UpdatedAt:       updatedAt,
		AnsweredInRound: values[4],
	}, nil
}

func toTimestamp(value *big.Int) (uint64, error) {
	if !value.IsUint64() {
		return 0, fmt.Errorf("%w, timestamp %s out of range", errUnexpectedOutput, value.String())
	}

	return value.Uint64(), nil
}

// Decimals calls decimals on the aggregator contract
func (feed *chainlinkFeed) Decimals(ctx context.Context) (uint8, error) {
	var out []interface{}
	err := feed.contract.Call(&bind.CallOpts{Context: ctx}, &out, decimalsMethod)
	if err != nil {
		return 0, fmt.Errorf("%w while calling %s on %s", err, decimalsMethod, feed.address.Hex())
	}
	if len(out) != 1 {
		return 0, fmt.Errorf("%w, %s returned %d values", errUnexpectedOutput, decimalsMethod, len(out))
	}

	decimals, ok := out[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("%w, %s returned %T", errUnexpectedOutput, decimalsMethod, out[0])
	}

	return decimals, nil
}

// Name returns the feed name
func (feed *chainlinkFeed) Name() string {
	return feed.name
}

// IsInterfaceNil returns true if there is no value under the interface
func (feed *chainlinkFeed) IsInterfaceNil() bool {
	return feed == nil
}
