package aggregator

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig signals that an oracle configuration was rejected. Every configuration error wraps it
var ErrInvalidConfig = errors.New("invalid oracle configuration")

// ErrUpdateThresholdTooHigh signals that the update threshold exceeds 100%
var ErrUpdateThresholdTooHigh = fmt.Errorf("%w: update threshold too high", ErrInvalidConfig)

// ErrInvalidFeedDecimals signals that a feed does not report the expected decimal precision
var ErrInvalidFeedDecimals = fmt.Errorf("%w: invalid feed decimals", ErrInvalidConfig)

// ErrNilTokenFeed signals that a nil token feed was provided
var ErrNilTokenFeed = fmt.Errorf("%w: nil token feed", ErrInvalidConfig)

// ErrNilNativeFeed signals that a nil native asset feed was provided outside direct mode
var ErrNilNativeFeed = fmt.Errorf("%w: nil native asset feed", ErrInvalidConfig)

// ErrInvalidTokenDecimalsScale signals that the token decimals scale is not a positive power of ten
var ErrInvalidTokenDecimalsScale = fmt.Errorf("%w: invalid token decimals scale", ErrInvalidConfig)

// ErrInvalidMaxFeedAge signals that a negative maximum feed age was provided
var ErrInvalidMaxFeedAge = fmt.Errorf("%w: invalid max feed age", ErrInvalidConfig)

// ErrFeedRead signals that an upstream feed read was rejected. Every feed validation error wraps it
var ErrFeedRead = errors.New("feed read failed")

// ErrInvalidPrice signals that the feed reported a non-positive answer
var ErrInvalidPrice = fmt.Errorf("%w: invalid price", ErrFeedRead)

// ErrStaleData signals that the feed answer is older than the freshness window
var ErrStaleData = fmt.Errorf("%w: stale data", ErrFeedRead)

// ErrIncompleteRound signals that the feed answer was carried over from an earlier round
var ErrIncompleteRound = fmt.Errorf("%w: incomplete round", ErrFeedRead)

// ErrDerivedPriceZero signals that the composite price (or an inverted feed price) truncated to zero
var ErrDerivedPriceZero = errors.New("derived price is zero")

// ErrPriceOverflow signals that the composite price does not fit in 256 bits
var ErrPriceOverflow = errors.New("derived price overflow")

// ErrCacheStorage signals that the cache storer rejected the new cached price
var ErrCacheStorage = errors.New("cache storage failure")

// ErrNotConfigured signals that an update was requested before any configuration was applied
var ErrNotConfigured = errors.New("price cache not configured")

// ErrCachedPriceNotFound signals that a storer holds no cached price yet
var ErrCachedPriceNotFound = errors.New("cached price not found")

// ErrNilFeedReader signals that a nil feed reader was provided
var ErrNilFeedReader = errors.New("nil feed reader")

// ErrNilPriceNotifee signals that a nil price notifee was provided
var ErrNilPriceNotifee = errors.New("nil price notifee")

// ErrNilCacheStorer signals that a nil cache storer was provided
var ErrNilCacheStorer = errors.New("nil cache storer")

// ErrNilStatusHandler signals that a nil status handler was provided
var ErrNilStatusHandler = errors.New("nil status handler")

// ErrNilRoundDataSource signals that a nil round data source was provided
var ErrNilRoundDataSource = errors.New("nil round data source")
