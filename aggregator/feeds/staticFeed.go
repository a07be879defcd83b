package feeds

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/klever-io/klv-gas-oracle-go/aggregator"
)

// ArgsStaticFeed is the argument DTO for the static feed
type ArgsStaticFeed struct {
	Name  string
	Price *big.Int
}

// staticFeed reports a fixed price that is always fresh. Every read opens a new, complete round
type staticFeed struct {
	mut        sync.Mutex
	name       string
	price      *big.Int
	roundID    int64
	nowHandler func() time.Time
}

// NewStaticFeed creates a round data source reporting a fixed 8-decimal price
func NewStaticFeed(args ArgsStaticFeed) (*staticFeed, error) {
	if len(args.Name) == 0 {
		return nil, errEmptyFeedName
	}
	if args.Price == nil || args.Price.Sign() <= 0 {
		return nil, errInvalidStaticPrice
	}

	return &staticFeed{
		name:       args.Name,
		price:      new(big.Int).Set(args.Price),
		nowHandler: time.Now,
	}, nil
}

// LatestRoundData returns the fixed price stamped with the current time
func (feed *staticFeed) LatestRoundData(_ context.Context) (*aggregator.RoundData, error) {
	feed.mut.Lock()
	defer feed.mut.Unlock()

	feed.roundID++
	now := uint64(feed.nowHandler().Unix())

	return &aggregator.RoundData{
		RoundID:         big.NewInt(feed.roundID),
		Answer:          new(big.Int).Set(feed.price),
		StartedAt:       now,
		UpdatedAt:       now,
		AnsweredInRound: big.NewInt(feed.roundID),
	}, nil
}

// Decimals returns the feed precision
func (feed *staticFeed) Decimals(_ context.Context) (uint8, error) {
	return aggregator.FeedDecimals, nil
}

// Name returns the feed name
func (feed *staticFeed) Name() string {
	return feed.name
}

// IsInterfaceNil returns true if there is no value under the interface
func (feed *staticFeed) IsInterfaceNil() bool {
	return feed == nil
}
