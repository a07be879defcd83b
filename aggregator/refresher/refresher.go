package refresher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/klever-io/klv-gas-oracle-go/aggregator"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/robfig/cron/v3"
)

const minRefreshTimeout = time.Second

var log = logger.GetOrCreate("gas-oracle/aggregator/refresher")

// ArgsRefresher is the argument DTO for the NewRefresher function
type ArgsRefresher struct {
	Spec    string
	Timeout time.Duration
	Updater aggregator.PriceCacheHandler
}

// refresher forces a price cache update on a cron schedule, regardless of the update threshold
type refresher struct {
	cron    *cron.Cron
	updater aggregator.PriceCacheHandler
	timeout time.Duration

	mutClose  sync.Mutex
	ctx       context.Context
	cancel    context.CancelFunc
	isStarted bool
}

// NewRefresher creates a new refresher. The spec accepts an optional seconds field
func NewRefresher(args ArgsRefresher) (*refresher, error) {
	if check.IfNil(args.Updater) {
		return nil, errNilUpdater
	}
	if args.Timeout < minRefreshTimeout {
		return nil, fmt.Errorf("%w, minimum %v, got %v", errInvalidTimeout, minRefreshTimeout, args.Timeout)
	}

	cronLog := &cronLogger{log: log}
	r := &refresher{
		cron: cron.New(
			cron.WithParser(cron.NewParser(cron.SecondOptional|cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow|cron.Descriptor)),
			cron.WithChain(cron.SkipIfStillRunning(cronLog)),
			cron.WithLogger(cronLog),
		),
		updater: args.Updater,
		timeout: args.Timeout,
	}
	_, err := r.cron.AddFunc(args.Spec, r.refresh)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %s", errInvalidSpec, args.Spec, err.Error())
	}
	r.ctx, r.cancel = context.WithCancel(context.Background())

	return r, nil
}

func (r *refresher) refresh() {
	ctx, cancel := context.WithTimeout(r.ctx, r.timeout)
	defer cancel()

	price, err := r.updater.Update(ctx, true)
	if err != nil {
		log.Error("forced refresh failed", "error", err)
		return
	}

	log.Debug("forced refresh done", "price", aggregator.FormatPrice(price))
}

// Start starts the cron scheduler
func (r *refresher) Start() {
	r.mutClose.Lock()
	defer r.mutClose.Unlock()

	if r.isStarted {
		return
	}
	r.isStarted = true
	r.cron.Start()
	log.Debug("refresher started")
}

// Close stops the scheduler, cancels a running refresh and waits for it to return
func (r *refresher) Close() error {
	r.mutClose.Lock()
	defer r.mutClose.Unlock()

	r.cancel()
	<-r.cron.Stop().Done()
	r.isStarted = false

	return nil
}

// IsInterfaceNil returns true if there is no value under the interface
func (r *refresher) IsInterfaceNil() bool {
	return r == nil
}
