package gin

import (
	"github.com/holiman/uint256"
	"github.com/klever-io/klv-gas-oracle-go/aggregator"
)

// PriceResponse is the cached price as served by the API. Price is the raw fixed-point value (denominator 1e6)
type PriceResponse struct {
	Price                  string `json:"price"`
	PriceDecimal           string `json:"priceDecimal"`
	Timestamp              int64  `json:"timestamp"`
	CacheTimeToLiveSeconds int64  `json:"cacheTimeToLiveSeconds"`
}

// PriceUpdateResponse is returned by the update endpoint
type PriceUpdateResponse struct {
	PriceResponse
	Forced bool `json:"forced"`
}

// ErrorResponse describes a failed request
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// HistoryEntry is one accepted update
type HistoryEntry struct {
	Price        string `json:"price"`
	PriceDecimal string `json:"priceDecimal"`
	Timestamp    int64  `json:"timestamp"`
}

func newPriceResponse(price *uint256.Int, priceCache aggregator.PriceCacheHandler) PriceResponse {
	return PriceResponse{
		Price:                  price.Dec(),
		PriceDecimal:           aggregator.FormatPrice(price),
		Timestamp:              priceCache.CachedPriceTimestamp(),
		CacheTimeToLiveSeconds: int64(priceCache.CacheTimeToLive().Seconds()),
	}
}
