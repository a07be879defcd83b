package aggregator

import (
	"errors"
	"time"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

const (
	// PriceDenominator is the fixed-point denominator of cached prices and of the update threshold
	PriceDenominator = 1_000_000
	// MaxUpdateThresholdPpm is the largest accepted update threshold (100%)
	MaxUpdateThresholdPpm = PriceDenominator
	// FeedDecimals is the decimal precision every upstream feed must report
	FeedDecimals = 8
	// DefaultMaxFeedAge is twice a typical 24h feed heartbeat, tolerating one missed update
	DefaultMaxFeedAge = 48 * time.Hour
)

var (
	priceDenominator = uint256.NewInt(PriceDenominator)
	feedUnit         = uint256.NewInt(100_000_000)
	ten              = uint256.NewInt(10)
	one              = uint256.NewInt(1)
)

// TokenDecimalsScaleFromDecimals returns 10^decimals
func TokenDecimalsScaleFromDecimals(decimals uint8) *uint256.Int {
	return new(uint256.Int).Exp(ten, uint256.NewInt(uint64(decimals)))
}

// FormatPrice renders a fixed-point price (denominator 1e6) as a decimal string
func FormatPrice(price *uint256.Int) string {
	if price == nil {
		return "0"
	}

	return decimal.NewFromBigInt(price.ToBig(), -6).String()
}

func isPowerOfTen(value *uint256.Int) bool {
	if value == nil || value.IsZero() {
		return false
	}

	current := new(uint256.Int).Set(value)
	quotient, remainder := new(uint256.Int), new(uint256.Int)
	for !current.Eq(one) {
		quotient.DivMod(current, ten, remainder)
		if !remainder.IsZero() {
			return false
		}
		current.Set(quotient)
	}

	return true
}

func copyPrice(price *uint256.Int) *uint256.Int {
	if price == nil {
		return uint256.NewInt(0)
	}

	return new(uint256.Int).Set(price)
}

// Error kinds reported by ErrorKind
const (
	ErrorKindInvalidPrice    = "invalid_price"
	ErrorKindStaleData       = "stale_data"
	ErrorKindIncompleteRound = "incomplete_round"
	ErrorKindStorage         = "storage"
	ErrorKindDerivation      = "derivation"
	ErrorKindNotConfigured   = "not_configured"
	ErrorKindOther           = "other"
)

// ErrorKind classifies an Update error
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidPrice):
		return ErrorKindInvalidPrice
	case errors.Is(err, ErrStaleData):
		return ErrorKindStaleData
	case errors.Is(err, ErrIncompleteRound):
		return ErrorKindIncompleteRound
	case errors.Is(err, ErrDerivedPriceZero), errors.Is(err, ErrPriceOverflow):
		return ErrorKindDerivation
	case errors.Is(err, ErrCacheStorage):
		return ErrorKindStorage
	case errors.Is(err, ErrNotConfigured):
		return ErrorKindNotConfigured
	}

	return ErrorKindOther
}
