package aggregator

import (
	"context"
	"math/big"
	"time"

	"github.com/holiman/uint256"
)

// RoundData is a single read of an upstream feed
type RoundData struct {
	RoundID         *big.Int
	Answer          *big.Int
	StartedAt       uint64
	UpdatedAt       uint64
	AnsweredInRound *big.Int
}

// RoundDataSource is the read surface of one upstream price feed
type RoundDataSource interface {
	LatestRoundData(ctx context.Context) (*RoundData, error)
	Decimals(ctx context.Context) (uint8, error)
	Name() string
	IsInterfaceNil() bool
}

// FeedReader defines the component able to turn a feed read into a trusted price
type FeedReader interface {
	Read(ctx context.Context, source RoundDataSource, now time.Time, maxAge time.Duration) (*uint256.Int, error)
	IsInterfaceNil() bool
}

// ArgsPriceUpdated is the argument used when notifying the notifee instance
type ArgsPriceUpdated struct {
	CurrentPrice  *uint256.Int
	PreviousPrice *uint256.Int
	Timestamp     int64
}

// PriceNotifee defines the behavior of a component able to be notified over an accepted price update
type PriceNotifee interface {
	PriceUpdated(ctx context.Context, args *ArgsPriceUpdated) error
	IsInterfaceNil() bool
}

// CachedPrice is the persisted state of the price cache
type CachedPrice struct {
	Price     *uint256.Int
	Timestamp int64
}

// CacheStorer defines the component able to persist the cached price
type CacheStorer interface {
	LoadCachedPrice(ctx context.Context) (*CachedPrice, error)
	SaveCachedPrice(ctx context.Context, cached *CachedPrice) error
	Close() error
	IsInterfaceNil() bool
}

// StatusHandler receives the outcome of every update attempt
type StatusHandler interface {
	UpdateApplied(current *uint256.Int, previous *uint256.Int, timestamp int64)
	UpdateSkipped()
	UpdateFailed(err error)
	NotifyFailed(err error)
	IsInterfaceNil() bool
}

// PriceCacheHandler is the caller-facing surface of the price cache
type PriceCacheHandler interface {
	Update(ctx context.Context, force bool) (*uint256.Int, error)
	CachedPrice() *uint256.Int
	CachedPriceTimestamp() int64
	CacheTimeToLive() time.Duration
	IsConfigured() bool
	IsInterfaceNil() bool
}
