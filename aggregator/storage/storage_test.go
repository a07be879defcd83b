package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/holiman/uint256"
	"github.com/klever-io/klv-gas-oracle-go/aggregator"
	"github.com/klever-io/klv-gas-oracle-go/aggregator/mock"
	"github.com/multiversx/mx-chain-core-go/core/check"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createCachedPrice(price uint64, timestamp int64) *aggregator.CachedPrice {
	return &aggregator.CachedPrice{
		Price:     uint256.NewInt(price),
		Timestamp: timestamp,
	}
}

func TestMemoryStorer(t *testing.T) {
	t.Parallel()

	t.Run("empty storer should error", func(t *testing.T) {
		t.Parallel()

		ms := NewMemoryStorer()
		assert.False(t, check.IfNil(ms))

		cached, err := ms.LoadCachedPrice(context.Background())
		assert.Nil(t, cached)
		assert.Equal(t, aggregator.ErrCachedPriceNotFound, err)
	})
	t.Run("nil cached price should error", func(t *testing.T) {
		t.Parallel()

		ms := NewMemoryStorer()
		assert.Equal(t, errNilCachedPrice, ms.SaveCachedPrice(context.Background(), nil))
		assert.Equal(t, errNilCachedPrice, ms.SaveCachedPrice(context.Background(), &aggregator.CachedPrice{}))
	})
	t.Run("should work", func(t *testing.T) {
		t.Parallel()

		ms := NewMemoryStorer()
		saved := createCachedPrice(3_000_000_000, 1_700_000_000)
		require.Nil(t, ms.SaveCachedPrice(context.Background(), saved))

		saved.Price.SetUint64(1)

		loaded, err := ms.LoadCachedPrice(context.Background())
		require.Nil(t, err)
		assert.Equal(t, createCachedPrice(3_000_000_000, 1_700_000_000), loaded)
		assert.Nil(t, ms.Close())
	})
}

func TestNewSQLiteStorer(t *testing.T) {
	t.Parallel()

	t.Run("empty path should error", func(t *testing.T) {
		t.Parallel()

		ss, err := NewSQLiteStorer("")
		assert.True(t, check.IfNil(ss))
		assert.Equal(t, errEmptyDatabasePath, err)
	})
	t.Run("should work", func(t *testing.T) {
		t.Parallel()

		ss, err := NewSQLiteStorer(filepath.Join(t.TempDir(), "oracle.db"))
		require.Nil(t, err)
		assert.False(t, check.IfNil(ss))
		assert.Nil(t, ss.Close())
		assert.Nil(t, ss.Close())
	})
}

func TestSQLiteStorer_SaveLoad(t *testing.T) {
	t.Parallel()

	t.Run("empty database should error", func(t *testing.T) {
		t.Parallel()

		ss, err := NewSQLiteStorer(filepath.Join(t.TempDir(), "oracle.db"))
		require.Nil(t, err)
		defer func() {
			_ = ss.Close()
		}()

		cached, err := ss.LoadCachedPrice(context.Background())
		assert.Nil(t, cached)
		assert.True(t, errors.Is(err, aggregator.ErrCachedPriceNotFound))
	})
	t.Run("nil cached price should error", func(t *testing.T) {
		t.Parallel()

		ss, err := NewSQLiteStorer(filepath.Join(t.TempDir(), "oracle.db"))
		require.Nil(t, err)
		defer func() {
			_ = ss.Close()
		}()

		assert.Equal(t, errNilCachedPrice, ss.SaveCachedPrice(context.Background(), nil))
	})
	t.Run("closed storer should error", func(t *testing.T) {
		t.Parallel()

		ss, err := NewSQLiteStorer(filepath.Join(t.TempDir(), "oracle.db"))
		require.Nil(t, err)
		require.Nil(t, ss.Close())

		assert.Equal(t, errStorerClosed, ss.SaveCachedPrice(context.Background(), createCachedPrice(1, 1)))
		_, err = ss.LoadCachedPrice(context.Background())
		assert.Equal(t, errStorerClosed, err)
	})
	t.Run("upsert keeps a single row and survives reopening", func(t *testing.T) {
		t.Parallel()

		dbPath := filepath.Join(t.TempDir(), "oracle.db")
		ss, err := NewSQLiteStorer(dbPath)
		require.Nil(t, err)

		require.Nil(t, ss.SaveCachedPrice(context.Background(), createCachedPrice(3_000_000_000, 1_700_000_000)))
		require.Nil(t, ss.SaveCachedPrice(context.Background(), createCachedPrice(3_031_000_000, 1_700_000_060)))
		require.Nil(t, ss.Close())

		reopened, err := NewSQLiteStorer(dbPath)
		require.Nil(t, err)
		defer func() {
			_ = reopened.Close()
		}()

		loaded, err := reopened.LoadCachedPrice(context.Background())
		require.Nil(t, err)
		assert.Equal(t, createCachedPrice(3_031_000_000, 1_700_000_060), loaded)

		updates, err := reopened.PriceUpdates(context.Background(), 10)
		require.Nil(t, err)
		require.Equal(t, 2, len(updates))
		assert.Equal(t, createCachedPrice(3_031_000_000, 1_700_000_060), updates[0])
		assert.Equal(t, createCachedPrice(3_000_000_000, 1_700_000_000), updates[1])
	})
	t.Run("full 256 bit prices round trip", func(t *testing.T) {
		t.Parallel()

		ss, err := NewSQLiteStorer(filepath.Join(t.TempDir(), "oracle.db"))
		require.Nil(t, err)
		defer func() {
			_ = ss.Close()
		}()

		maxPrice := new(uint256.Int).SetAllOne()
		require.Nil(t, ss.SaveCachedPrice(context.Background(), &aggregator.CachedPrice{Price: maxPrice, Timestamp: 1}))

		loaded, err := ss.LoadCachedPrice(context.Background())
		require.Nil(t, err)
		assert.True(t, maxPrice.Eq(loaded.Price))
	})
}

func TestNewCacheStorer(t *testing.T) {
	t.Parallel()

	t.Run("invalid type should error", func(t *testing.T) {
		t.Parallel()

		storer, err := NewCacheStorer("redis", "")
		assert.Nil(t, storer)
		assert.True(t, errors.Is(err, errInvalidStorageType))
	})
	t.Run("sqlite with empty path should error", func(t *testing.T) {
		t.Parallel()

		storer, err := NewCacheStorer(SQLiteStorageType, "")
		assert.Nil(t, storer)
		assert.Equal(t, errEmptyDatabasePath, err)
	})
	t.Run("should work", func(t *testing.T) {
		t.Parallel()

		storer, err := NewCacheStorer(MemoryStorageType, "")
		require.Nil(t, err)
		assert.False(t, check.IfNil(storer))

		storer, err = NewCacheStorer(SQLiteStorageType, filepath.Join(t.TempDir(), "oracle.db"))
		require.Nil(t, err)
		assert.False(t, check.IfNil(storer))
		assert.Nil(t, storer.Close())
	})
}

func TestSQLiteStorer_RestoresPriceCache(t *testing.T) {
	t.Parallel()

	ss, err := NewSQLiteStorer(filepath.Join(t.TempDir(), "oracle.db"))
	require.Nil(t, err)
	defer func() {
		_ = ss.Close()
	}()
	require.Nil(t, ss.SaveCachedPrice(context.Background(), createCachedPrice(2_900_000_000, 1_699_999_000)))

	pc, err := aggregator.NewPriceCache(aggregator.ArgsPriceCache{
		FeedReader:    &mock.FeedReaderStub{},
		Notifee:       &mock.PriceNotifeeStub{},
		Storer:        ss,
		StatusHandler: &mock.StatusHandlerStub{},
		InitialPrice:  uint256.NewInt(1),
	})
	require.Nil(t, err)
	assert.Equal(t, uint256.NewInt(2_900_000_000), pc.CachedPrice())
	assert.Equal(t, int64(1_699_999_000), pc.CachedPriceTimestamp())
}
