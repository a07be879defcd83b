package aggregator

import (
	"context"
	"fmt"
	"time"

	"github.com/holiman/uint256"
	"github.com/multiversx/mx-chain-core-go/core/check"
)

// OracleConfig holds the feeds and the policy parameters of a price cache
type OracleConfig struct {
	TokenFeed          RoundDataSource
	NativeFeed         RoundDataSource
	TokenDecimalsScale *uint256.Int
	UpdateThresholdPpm uint64
	// CacheTimeToLive is carried and exposed but the update policy does not gate on it
	CacheTimeToLive    time.Duration
	MaxFeedAge         time.Duration
	DirectMode         bool
	TokenFeedInverted  bool
	NativeFeedInverted bool
}

func (cfg *OracleConfig) hasNativeFeed() bool {
	return !check.IfNil(cfg.NativeFeed)
}

func (cfg *OracleConfig) clone() *OracleConfig {
	cloned := *cfg
	cloned.TokenDecimalsScale = copyPrice(cfg.TokenDecimalsScale)
	if cloned.MaxFeedAge == 0 {
		cloned.MaxFeedAge = DefaultMaxFeedAge
	}

	return &cloned
}

func checkOracleConfig(ctx context.Context, cfg OracleConfig) error {
	if cfg.UpdateThresholdPpm > MaxUpdateThresholdPpm {
		return fmt.Errorf("%w, maximum %d, got %d", ErrUpdateThresholdTooHigh, MaxUpdateThresholdPpm, cfg.UpdateThresholdPpm)
	}
	if check.IfNil(cfg.TokenFeed) {
		return ErrNilTokenFeed
	}
	if !cfg.DirectMode && !cfg.hasNativeFeed() {
		return ErrNilNativeFeed
	}
	if !isPowerOfTen(cfg.TokenDecimalsScale) {
		return ErrInvalidTokenDecimalsScale
	}
	if cfg.MaxFeedAge < 0 {
		return fmt.Errorf("%w, got %v", ErrInvalidMaxFeedAge, cfg.MaxFeedAge)
	}

	err := checkFeedDecimals(ctx, cfg.TokenFeed)
	if err != nil {
		return err
	}
	if !cfg.hasNativeFeed() {
		return nil
	}

	return checkFeedDecimals(ctx, cfg.NativeFeed)
}

func checkFeedDecimals(ctx context.Context, feed RoundDataSource) error {
	decimals, err := feed.Decimals(ctx)
	if err != nil {
		return fmt.Errorf("%w while reading the decimals of feed %s", err, feed.Name())
	}
	if decimals != FeedDecimals {
		return fmt.Errorf("%w, feed %s, expected %d, got %d", ErrInvalidFeedDecimals, feed.Name(), FeedDecimals, decimals)
	}

	return nil
}
