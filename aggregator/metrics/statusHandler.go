package metrics

import (
	"github.com/holiman/uint256"
	"github.com/klever-io/klv-gas-oracle-go/aggregator"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

const (
	defaultNamespace = "gas_oracle"

	outcomeApplied = "applied"
	outcomeSkipped = "skipped"
	outcomeFailed  = "failed"
)

// ArgsStatusHandler is the argument DTO for the NewStatusHandler function
type ArgsStatusHandler struct {
	Namespace  string
	Registerer prometheus.Registerer
}

type statusHandler struct {
	updates        *prometheus.CounterVec
	updateErrors   *prometheus.CounterVec
	notifyErrors   prometheus.Counter
	cachedPrice    prometheus.Gauge
	priceTimestamp prometheus.Gauge
}

// NewStatusHandler creates the Prometheus backed status handler of a price cache
func NewStatusHandler(args ArgsStatusHandler) (*statusHandler, error) {
	if args.Registerer == nil {
		return nil, errNilRegisterer
	}

	namespace := args.Namespace
	if len(namespace) == 0 {
		namespace = defaultNamespace
	}
	factory := promauto.With(args.Registerer)

	return &statusHandler{
		updates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "updates_total",
			Help:      "Total number of update runs by outcome",
		}, []string{"outcome"}),
		updateErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "update_errors_total",
			Help:      "Total number of failed update runs by error kind",
		}, []string{"kind"}),
		notifyErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notify_errors_total",
			Help:      "Total number of failed price updated notifications",
		}),
		cachedPrice: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cached_price",
			Help:      "Cached token per native asset price",
		}),
		priceTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cached_price_timestamp_seconds",
			Help:      "Unix timestamp of the last accepted update",
		}),
	}, nil
}

// UpdateApplied counts the update and exposes the new cached price
func (sh *statusHandler) UpdateApplied(current *uint256.Int, _ *uint256.Int, timestamp int64) {
	sh.updates.WithLabelValues(outcomeApplied).Inc()
	sh.SetCachedPrice(current, timestamp)
}

// SetCachedPrice exposes the cached price without counting an update
func (sh *statusHandler) SetCachedPrice(price *uint256.Int, timestamp int64) {
	if price != nil {
		sh.cachedPrice.Set(decimal.NewFromBigInt(price.ToBig(), -6).InexactFloat64())
	}
	sh.priceTimestamp.Set(float64(timestamp))
}

// UpdateSkipped counts an update run that kept the cached price
func (sh *statusHandler) UpdateSkipped() {
	sh.updates.WithLabelValues(outcomeSkipped).Inc()
}

// UpdateFailed counts a failed update run by error kind
func (sh *statusHandler) UpdateFailed(err error) {
	sh.updates.WithLabelValues(outcomeFailed).Inc()
	sh.updateErrors.WithLabelValues(aggregator.ErrorKind(err)).Inc()
}

// NotifyFailed counts a failed notification
func (sh *statusHandler) NotifyFailed(_ error) {
	sh.notifyErrors.Inc()
}

// IsInterfaceNil returns true if there is no value under the interface
func (sh *statusHandler) IsInterfaceNil() bool {
	return sh == nil
}
