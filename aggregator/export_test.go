package aggregator

import (
	"time"

	"github.com/holiman/uint256"
)

// SetNowHandler -
func (pc *priceCache) SetNowHandler(handler func() time.Time) {
	pc.updateMut.Lock()
	pc.nowHandler = handler
	pc.updateMut.Unlock()
}

// ComputeCompositePrice -
func ComputeCompositePrice(tokenPrice *uint256.Int, nativePrice *uint256.Int, cfg *OracleConfig) (*uint256.Int, error) {
	return computeCompositePrice(tokenPrice, nativePrice, cfg)
}

// IsUpdateRequired -
func IsUpdateRequired(force bool, newPrice *uint256.Int, previousPrice *uint256.Int, thresholdPpm uint64) bool {
	return isUpdateRequired(force, newPrice, previousPrice, thresholdPpm)
}

// IsPowerOfTen -
func IsPowerOfTen(value *uint256.Int) bool {
	return isPowerOfTen(value)
}
