package refresher

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/klever-io/klv-gas-oracle-go/aggregator/mock"
	"github.com/multiversx/mx-chain-core-go/core/check"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createMockArgsRefresher() ArgsRefresher {
	return ArgsRefresher{
		Spec:    "0 */5 * * * *",
		Timeout: time.Second,
		Updater: &mock.PriceCacheHandlerStub{},
	}
}

func TestNewRefresher(t *testing.T) {
	t.Parallel()

	t.Run("nil updater should error", func(t *testing.T) {
		t.Parallel()

		args := createMockArgsRefresher()
		args.Updater = nil

		r, err := NewRefresher(args)
		assert.True(t, check.IfNil(r))
		assert.Equal(t, errNilUpdater, err)
	})
	t.Run("invalid timeout should error", func(t *testing.T) {
		t.Parallel()

		args := createMockArgsRefresher()
		args.Timeout = time.Millisecond

		r, err := NewRefresher(args)
		assert.True(t, check.IfNil(r))
		assert.True(t, errors.Is(err, errInvalidTimeout))
	})
	t.Run("invalid spec should error", func(t *testing.T) {
		t.Parallel()

		args := createMockArgsRefresher()
		args.Spec = "every now and then"

		r, err := NewRefresher(args)
		assert.True(t, check.IfNil(r))
		assert.True(t, errors.Is(err, errInvalidSpec))
	})
	t.Run("five fields spec should work", func(t *testing.T) {
		t.Parallel()

		args := createMockArgsRefresher()
		args.Spec = "*/5 * * * *"

		r, err := NewRefresher(args)
		require.Nil(t, err)
		assert.False(t, check.IfNil(r))
	})
	t.Run("descriptor spec should work", func(t *testing.T) {
		t.Parallel()

		args := createMockArgsRefresher()
		args.Spec = "@every 1h"

		r, err := NewRefresher(args)
		require.Nil(t, err)
		assert.Nil(t, r.Close())
	})
}

func TestRefresher_Refresh(t *testing.T) {
	t.Parallel()

	t.Run("refresh forces the update", func(t *testing.T) {
		t.Parallel()

		args := createMockArgsRefresher()
		var forced atomic.Bool
		args.Updater = &mock.PriceCacheHandlerStub{
			UpdateCalled: func(ctx context.Context, force bool) (*uint256.Int, error) {
				forced.Store(force)
				_, hasDeadline := ctx.Deadline()
				assert.True(t, hasDeadline)
				return uint256.NewInt(3_000_000_000), nil
			},
		}

		r, _ := NewRefresher(args)
		r.refresh()
		assert.True(t, forced.Load())
	})
	t.Run("update error is only logged", func(t *testing.T) {
		t.Parallel()

		args := createMockArgsRefresher()
		var calls atomic.Int32
		args.Updater = &mock.PriceCacheHandlerStub{
			UpdateCalled: func(ctx context.Context, force bool) (*uint256.Int, error) {
				calls.Add(1)
				return nil, errors.New("expected error")
			},
		}

		r, _ := NewRefresher(args)
		r.refresh()
		assert.Equal(t, int32(1), calls.Load())
	})
	t.Run("scheduled refresh runs", func(t *testing.T) {
		t.Parallel()

		args := createMockArgsRefresher()
		args.Spec = "* * * * * *"
		var calls atomic.Int32
		args.Updater = &mock.PriceCacheHandlerStub{
			UpdateCalled: func(ctx context.Context, force bool) (*uint256.Int, error) {
				calls.Add(1)
				return uint256.NewInt(1), nil
			},
		}

		r, err := NewRefresher(args)
		require.Nil(t, err)
		r.Start()
		r.Start()

		assert.Eventually(t, func() bool {
			return calls.Load() > 0
		}, 3*time.Second, 50*time.Millisecond)
		assert.Nil(t, r.Close())
	})
	t.Run("close cancels a running refresh", func(t *testing.T) {
		t.Parallel()

		args := createMockArgsRefresher()
		args.Timeout = time.Minute
		started := make(chan struct{})
		args.Updater = &mock.PriceCacheHandlerStub{
			UpdateCalled: func(ctx context.Context, force bool) (*uint256.Int, error) {
				close(started)
				<-ctx.Done()
				return nil, ctx.Err()
			},
		}

		r, _ := NewRefresher(args)
		done := make(chan struct{})
		go func() {
			r.refresh()
			close(done)
		}()

		<-started
		require.Nil(t, r.Close())
		select {
		case <-done:
		case <-time.After(time.Second):
			assert.Fail(t, "refresh should have returned")
		}
	})
}
