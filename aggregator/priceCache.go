package aggregator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/holiman/uint256"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("gas-oracle/aggregator")

// ArgsPriceCache is the argument DTO for the price cache
type ArgsPriceCache struct {
	FeedReader    FeedReader
	Notifee       PriceNotifee
	Storer        CacheStorer
	StatusHandler StatusHandler
	InitialPrice  *uint256.Int
}

type priceCache struct {
	updateMut     sync.Mutex
	mut           sync.RWMutex
	feedReader    FeedReader
	notifee       PriceNotifee
	storer        CacheStorer
	statusHandler StatusHandler
	config        *OracleConfig
	cached        CachedPrice
	nowHandler    func() time.Time
}

// NewPriceCache will create a new priceCache instance. The cached price is restored from the storer if present,
// otherwise it starts at the provided initial price (zero when nil)
func NewPriceCache(args ArgsPriceCache) (*priceCache, error) {
	err := checkArgsPriceCache(args)
	if err != nil {
		return nil, err
	}

	pc := &priceCache{
		feedReader:    args.FeedReader,
		notifee:       args.Notifee,
		storer:        args.Storer,
		statusHandler: args.StatusHandler,
		cached: CachedPrice{
			Price: copyPrice(args.InitialPrice),
		},
		nowHandler: time.Now,
	}

	err = pc.restoreCachedPrice()
	if err != nil {
		return nil, err
	}

	return pc, nil
}

func checkArgsPriceCache(args ArgsPriceCache) error {
	if check.IfNil(args.FeedReader) {
		return ErrNilFeedReader
	}
	if check.IfNil(args.Notifee) {
		return ErrNilPriceNotifee
	}
	if check.IfNil(args.Storer) {
		return ErrNilCacheStorer
	}
	if check.IfNil(args.StatusHandler) {
		return ErrNilStatusHandler
	}

	return nil
}

func (pc *priceCache) restoreCachedPrice() error {
	stored, err := pc.storer.LoadCachedPrice(context.Background())
	if errors.Is(err, ErrCachedPriceNotFound) {
		log.Debug("no stored cached price, using the initial price", "price", FormatPrice(pc.cached.Price))
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w while restoring the cached price", err)
	}

	pc.cached = CachedPrice{
		Price:     copyPrice(stored.Price),
		Timestamp: stored.Timestamp,
	}
	log.Info("restored cached price", "price", FormatPrice(pc.cached.Price), "timestamp", pc.cached.Timestamp)

	return nil
}

// Configure validates and atomically replaces the active configuration. The cached price is not touched
func (pc *priceCache) Configure(ctx context.Context, cfg OracleConfig) error {
	err := checkOracleConfig(ctx, cfg)
	if err != nil {
		return err
	}

	pc.updateMut.Lock()
	pc.mut.Lock()
	pc.config = cfg.clone()
	pc.mut.Unlock()
	pc.updateMut.Unlock()

	log.Info("oracle configured",
		"token feed", cfg.TokenFeed.Name(),
		"direct mode", cfg.DirectMode,
		"update threshold ppm", cfg.UpdateThresholdPpm,
		"token feed inverted", cfg.TokenFeedInverted,
		"native feed inverted", cfg.NativeFeedInverted)

	return nil
}

// Update reads both feeds, derives the composite price and refreshes the cache when forced or when the new
// price leaves the threshold band. It returns the (possibly unchanged) cached price. A failed update commits nothing
func (pc *priceCache) Update(ctx context.Context, force bool) (*uint256.Int, error) {
	pc.updateMut.Lock()
	defer pc.updateMut.Unlock()

	pc.mut.RLock()
	cfg := pc.config
	previousPrice := copyPrice(pc.cached.Price)
	pc.mut.RUnlock()

	if cfg == nil {
		return nil, ErrNotConfigured
	}

	now := pc.nowHandler()
	newPrice, err := pc.fetchCompositePrice(ctx, cfg, now)
	if err != nil {
		pc.statusHandler.UpdateFailed(err)
		return nil, err
	}

	if !isUpdateRequired(force, newPrice, previousPrice, cfg.UpdateThresholdPpm) {
		log.Debug("price within threshold, keeping cached price",
			"cached", FormatPrice(previousPrice), "derived", FormatPrice(newPrice))
		pc.statusHandler.UpdateSkipped()
		return previousPrice, nil
	}

	staged := &CachedPrice{
		Price:     newPrice,
		Timestamp: now.Unix(),
	}
	err = pc.storer.SaveCachedPrice(ctx, staged)
	if err != nil {
		err = fmt.Errorf("%w while storing the cached price: %w", ErrCacheStorage, err)
		pc.statusHandler.UpdateFailed(err)
		return nil, err
	}

	pc.mut.Lock()
	pc.cached = CachedPrice{
		Price:     copyPrice(newPrice),
		Timestamp: staged.Timestamp,
	}
	pc.mut.Unlock()

	pc.statusHandler.UpdateApplied(newPrice, previousPrice, staged.Timestamp)
	log.Info("cached price updated",
		"price", FormatPrice(newPrice), "previous", FormatPrice(previousPrice), "forced", force)

	pc.notify(ctx, &ArgsPriceUpdated{
		CurrentPrice:  copyPrice(newPrice),
		PreviousPrice: previousPrice,
		Timestamp:     staged.Timestamp,
	})

	return copyPrice(newPrice), nil
}

func (pc *priceCache) fetchCompositePrice(ctx context.Context, cfg *OracleConfig, now time.Time) (*uint256.Int, error) {
	tokenPrice, err := pc.feedReader.Read(ctx, cfg.TokenFeed, now, cfg.MaxFeedAge)
	if err != nil {
		return nil, fmt.Errorf("%w while reading the token feed", err)
	}

	var nativePrice *uint256.Int
	if cfg.hasNativeFeed() {
		nativePrice, err = pc.feedReader.Read(ctx, cfg.NativeFeed, now, cfg.MaxFeedAge)
		if err != nil {
			return nil, fmt.Errorf("%w while reading the native asset feed", err)
		}
	}

	return computeCompositePrice(tokenPrice, nativePrice, cfg)
}

// the update is already committed when the notifee runs, its failure is only reported
func (pc *priceCache) notify(ctx context.Context, args *ArgsPriceUpdated) {
	err := pc.notifee.PriceUpdated(ctx, args)
	if err != nil {
		log.Warn("price updated notification failed", "error", err)
		pc.statusHandler.NotifyFailed(err)
	}
}

// Execute runs a non-forced update. It is the polling handler's entry point
func (pc *priceCache) Execute(ctx context.Context) error {
	_, err := pc.Update(ctx, false)
	return err
}

// CachedPrice returns a copy of the cached price
func (pc *priceCache) CachedPrice() *uint256.Int {
	pc.mut.RLock()
	defer pc.mut.RUnlock()

	return copyPrice(pc.cached.Price)
}

// CachedPriceTimestamp returns the unix timestamp of the last accepted update
func (pc *priceCache) CachedPriceTimestamp() int64 {
	pc.mut.RLock()
	defer pc.mut.RUnlock()

	return pc.cached.Timestamp
}

// CacheTimeToLive returns the configured cache time to live, zero when not configured
func (pc *priceCache) CacheTimeToLive() time.Duration {
	pc.mut.RLock()
	defer pc.mut.RUnlock()

	if pc.config == nil {
		return 0
	}

	return pc.config.CacheTimeToLive
}

// IsConfigured returns true after the first successful Configure call
func (pc *priceCache) IsConfigured() bool {
	pc.mut.RLock()
	defer pc.mut.RUnlock()

	return pc.config != nil
}

// IsInterfaceNil returns true if there is no value under the interface
func (pc *priceCache) IsInterfaceNil() bool {
	return pc == nil
}
