package aggregator

import (
	"github.com/holiman/uint256"
)

// computeCompositePrice returns native * tokenDecimalsScale / token, both feed prices being 8-decimal
// values quoted in the same currency. A nil nativePrice stands for one unit of the native asset (direct mode
// without a native feed)
func computeCompositePrice(tokenPrice *uint256.Int, nativePrice *uint256.Int, cfg *OracleConfig) (*uint256.Int, error) {
	token := tokenPrice
	if cfg.TokenFeedInverted {
		token = reciprocal(tokenPrice)
	}
	if token.IsZero() {
		return nil, ErrDerivedPriceZero
	}

	native := feedUnit
	if nativePrice != nil {
		native = nativePrice
		if cfg.NativeFeedInverted {
			native = reciprocal(nativePrice)
		}
	}

	composite, overflow := new(uint256.Int).MulDivOverflow(native, cfg.TokenDecimalsScale, token)
	if overflow {
		return nil, ErrPriceOverflow
	}
	if composite.IsZero() {
		return nil, ErrDerivedPriceZero
	}

	return composite, nil
}

// reciprocal returns 1/price in 8-decimal fixed point
func reciprocal(price *uint256.Int) *uint256.Int {
	if price.IsZero() {
		return new(uint256.Int)
	}

	result, _ := new(uint256.Int).MulDivOverflow(feedUnit, feedUnit, price)

	return result
}

// isUpdateRequired applies the symmetric relative-change band around the previous cached price
func isUpdateRequired(force bool, newPrice *uint256.Int, previousPrice *uint256.Int, thresholdPpm uint64) bool {
	if force || previousPrice.IsZero() {
		return true
	}

	ratio, overflow := new(uint256.Int).MulDivOverflow(newPrice, priceDenominator, previousPrice)
	if overflow {
		return true
	}

	upper := uint256.NewInt(PriceDenominator + thresholdPpm)
	lower := uint256.NewInt(PriceDenominator - thresholdPpm)

	return ratio.Gt(upper) || ratio.Lt(lower)
}
