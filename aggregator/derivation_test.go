package aggregator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/holiman/uint256"
	"github.com/klever-io/klv-gas-oracle-go/aggregator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createDerivationConfig() *aggregator.OracleConfig {
	return &aggregator.OracleConfig{
		TokenDecimalsScale: uint256.NewInt(1_000_000),
		DirectMode:         true,
	}
}

func TestComputeCompositePrice(t *testing.T) {
	t.Parallel()

	t.Run("six decimals token against a 3000 USD native asset", func(t *testing.T) {
		t.Parallel()

		price, err := aggregator.ComputeCompositePrice(uint256.NewInt(100_000_000), uint256.NewInt(300_000_000_000), createDerivationConfig())
		require.Nil(t, err)
		assert.Equal(t, uint256.NewInt(3_000_000_000), price)
	})
	t.Run("native asset price rising by 1.03%", func(t *testing.T) {
		t.Parallel()

		price, err := aggregator.ComputeCompositePrice(uint256.NewInt(100_000_000), uint256.NewInt(303_100_000_000), createDerivationConfig())
		require.Nil(t, err)
		assert.Equal(t, uint256.NewInt(3_031_000_000), price)
	})
	t.Run("cross mode gives the same ratio", func(t *testing.T) {
		t.Parallel()

		cfg := createDerivationConfig()
		cfg.DirectMode = false

		price, err := aggregator.ComputeCompositePrice(uint256.NewInt(100_000_000), uint256.NewInt(300_000_000_000), cfg)
		require.Nil(t, err)
		assert.Equal(t, uint256.NewInt(3_000_000_000), price)
	})
	t.Run("direct mode without native feed uses one native unit", func(t *testing.T) {
		t.Parallel()

		// 0.00033333 native per token
		price, err := aggregator.ComputeCompositePrice(uint256.NewInt(33_333), nil, createDerivationConfig())
		require.Nil(t, err)
		assert.Equal(t, uint256.NewInt(3_000_030_000), price)
	})
	t.Run("inverted token feed", func(t *testing.T) {
		t.Parallel()

		cfg := createDerivationConfig()
		cfg.TokenFeedInverted = true

		// 0.5 token per USD, the token is worth 2 USD
		price, err := aggregator.ComputeCompositePrice(uint256.NewInt(50_000_000), uint256.NewInt(300_000_000_000), cfg)
		require.Nil(t, err)
		assert.Equal(t, uint256.NewInt(1_500_000_000), price)
	})
	t.Run("inverted native feed", func(t *testing.T) {
		t.Parallel()

		cfg := createDerivationConfig()
		cfg.NativeFeedInverted = true

		price, err := aggregator.ComputeCompositePrice(uint256.NewInt(100_000_000), uint256.NewInt(33_333), cfg)
		require.Nil(t, err)
		assert.Equal(t, uint256.NewInt(3_000_030_000), price)
	})
	t.Run("both feeds inverted", func(t *testing.T) {
		t.Parallel()

		cfg := createDerivationConfig()
		cfg.TokenFeedInverted = true
		cfg.NativeFeedInverted = true

		price, err := aggregator.ComputeCompositePrice(uint256.NewInt(100_000_000), uint256.NewInt(33_333), cfg)
		require.Nil(t, err)
		assert.Equal(t, uint256.NewInt(3_000_030_000), price)
	})
	t.Run("truncates toward zero", func(t *testing.T) {
		t.Parallel()

		price, err := aggregator.ComputeCompositePrice(uint256.NewInt(300_000_000), uint256.NewInt(100_000_000), createDerivationConfig())
		require.Nil(t, err)
		assert.Equal(t, uint256.NewInt(333_333), price)
	})
	t.Run("inverted token price truncating to zero should error", func(t *testing.T) {
		t.Parallel()

		cfg := createDerivationConfig()
		cfg.TokenFeedInverted = true

		price, err := aggregator.ComputeCompositePrice(new(uint256.Int).Mul(uint256.NewInt(1e16), uint256.NewInt(10)), uint256.NewInt(1), cfg)
		assert.Nil(t, price)
		assert.Equal(t, aggregator.ErrDerivedPriceZero, err)
	})
	t.Run("composite price truncating to zero should error", func(t *testing.T) {
		t.Parallel()

		cfg := createDerivationConfig()
		cfg.TokenDecimalsScale = uint256.NewInt(1)

		price, err := aggregator.ComputeCompositePrice(uint256.NewInt(1e18), uint256.NewInt(1), cfg)
		assert.Nil(t, price)
		assert.Equal(t, aggregator.ErrDerivedPriceZero, err)
	})
	t.Run("composite price overflow should error", func(t *testing.T) {
		t.Parallel()

		cfg := createDerivationConfig()
		cfg.TokenDecimalsScale = aggregator.TokenDecimalsScaleFromDecimals(18)
		maxPrice := new(uint256.Int).SetAllOne()

		price, err := aggregator.ComputeCompositePrice(uint256.NewInt(1), maxPrice, cfg)
		assert.Nil(t, price)
		assert.Equal(t, aggregator.ErrPriceOverflow, err)
	})
}

func TestIsUpdateRequired(t *testing.T) {
	t.Parallel()

	previous := uint256.NewInt(3_000_000_000)

	t.Run("forced update is always required", func(t *testing.T) {
		t.Parallel()

		assert.True(t, aggregator.IsUpdateRequired(true, previous, previous, 10_000))
		assert.True(t, aggregator.IsUpdateRequired(true, previous, previous, aggregator.MaxUpdateThresholdPpm))
	})
	t.Run("zero previous price is always an update", func(t *testing.T) {
		t.Parallel()

		assert.True(t, aggregator.IsUpdateRequired(false, previous, uint256.NewInt(0), aggregator.MaxUpdateThresholdPpm))
	})
	t.Run("within the band", func(t *testing.T) {
		t.Parallel()

		assert.False(t, aggregator.IsUpdateRequired(false, previous, previous, 10_000))
		assert.False(t, aggregator.IsUpdateRequired(false, uint256.NewInt(3_030_000_000), previous, 10_000))
		assert.False(t, aggregator.IsUpdateRequired(false, uint256.NewInt(2_970_000_000), previous, 10_000))
	})
	t.Run("outside the band", func(t *testing.T) {
		t.Parallel()

		assert.True(t, aggregator.IsUpdateRequired(false, uint256.NewInt(3_031_000_000), previous, 10_000))
		assert.True(t, aggregator.IsUpdateRequired(false, uint256.NewInt(2_969_000_000), previous, 10_000))
	})
	t.Run("zero threshold reacts to any change", func(t *testing.T) {
		t.Parallel()

		assert.False(t, aggregator.IsUpdateRequired(false, previous, previous, 0))
		assert.True(t, aggregator.IsUpdateRequired(false, uint256.NewInt(3_000_003_000), previous, 0))
	})
	t.Run("full threshold only reacts above twice the previous price", func(t *testing.T) {
		t.Parallel()

		assert.False(t, aggregator.IsUpdateRequired(false, uint256.NewInt(6_000_000_000), previous, aggregator.MaxUpdateThresholdPpm))
		assert.False(t, aggregator.IsUpdateRequired(false, uint256.NewInt(1), previous, aggregator.MaxUpdateThresholdPpm))
		assert.True(t, aggregator.IsUpdateRequired(false, uint256.NewInt(6_000_003_000), previous, aggregator.MaxUpdateThresholdPpm))
	})
	t.Run("ratio overflow counts as a deviation", func(t *testing.T) {
		t.Parallel()

		assert.True(t, aggregator.IsUpdateRequired(false, new(uint256.Int).SetAllOne(), uint256.NewInt(1), aggregator.MaxUpdateThresholdPpm))
	})
	t.Run("relative changes inside the threshold never update", func(t *testing.T) {
		t.Parallel()

		for _, cached := range []uint64{1, 7, 999_999, 3_000_000_000, 123_456_789_012} {
			for _, threshold := range []uint64{0, 1, 10_000, 500_000} {
				maxDelta := cached * threshold / aggregator.PriceDenominator
				for _, delta := range []uint64{0, maxDelta / 2, maxDelta} {
					up := uint256.NewInt(cached + delta)
					assert.False(t, aggregator.IsUpdateRequired(false, up, uint256.NewInt(cached), threshold),
						"cached %d threshold %d delta +%d", cached, threshold, delta)

					if delta < cached {
						down := uint256.NewInt(cached - delta)
						assert.False(t, aggregator.IsUpdateRequired(false, down, uint256.NewInt(cached), threshold),
							"cached %d threshold %d delta -%d", cached, threshold, delta)
					}
				}
			}
		}
	})
}

func TestIsPowerOfTen(t *testing.T) {
	t.Parallel()

	assert.True(t, aggregator.IsPowerOfTen(uint256.NewInt(1)))
	assert.True(t, aggregator.IsPowerOfTen(uint256.NewInt(1_000_000)))
	assert.True(t, aggregator.IsPowerOfTen(aggregator.TokenDecimalsScaleFromDecimals(18)))
	assert.False(t, aggregator.IsPowerOfTen(nil))
	assert.False(t, aggregator.IsPowerOfTen(uint256.NewInt(0)))
	assert.False(t, aggregator.IsPowerOfTen(uint256.NewInt(5)))
	assert.False(t, aggregator.IsPowerOfTen(uint256.NewInt(1_000_001)))
	assert.False(t, aggregator.IsPowerOfTen(uint256.NewInt(20)))
}

func TestErrorKind(t *testing.T) {
	t.Parallel()

	wrap := func(err error) error {
		return fmt.Errorf("%w while reading the token feed", err)
	}

	assert.Equal(t, aggregator.ErrorKindInvalidPrice, aggregator.ErrorKind(wrap(aggregator.ErrInvalidPrice)))
	assert.Equal(t, aggregator.ErrorKindStaleData, aggregator.ErrorKind(wrap(aggregator.ErrStaleData)))
	assert.Equal(t, aggregator.ErrorKindIncompleteRound, aggregator.ErrorKind(wrap(aggregator.ErrIncompleteRound)))
	assert.Equal(t, aggregator.ErrorKindDerivation, aggregator.ErrorKind(aggregator.ErrDerivedPriceZero))
	assert.Equal(t, aggregator.ErrorKindDerivation, aggregator.ErrorKind(aggregator.ErrPriceOverflow))
	assert.Equal(t, aggregator.ErrorKindStorage, aggregator.ErrorKind(fmt.Errorf("%w: disk full", aggregator.ErrCacheStorage)))
	assert.Equal(t, aggregator.ErrorKindNotConfigured, aggregator.ErrorKind(aggregator.ErrNotConfigured))
	assert.Equal(t, aggregator.ErrorKindOther, aggregator.ErrorKind(errors.New("connection refused")))
}
