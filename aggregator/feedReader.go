package aggregator

import (
	"context"
	"fmt"
	"time"

	"github.com/holiman/uint256"
	"github.com/multiversx/mx-chain-core-go/core/check"
)

type feedReader struct{}

// NewFeedReader creates a new feed reader. It holds no state: every read is a single upstream call plus validation
func NewFeedReader() *feedReader {
	return &feedReader{}
}

// Read fetches the latest round of the provided source and returns its answer as an 8-decimal price.
// The checks run in a fixed order: positive answer, freshness, then round completeness
func (fr *feedReader) Read(ctx context.Context, source RoundDataSource, now time.Time, maxAge time.Duration) (*uint256.Int, error) {
	if check.IfNil(source) {
		return nil, ErrNilRoundDataSource
	}

	roundData, err := source.LatestRoundData(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w while reading feed %s", err, source.Name())
	}

	return validateRoundData(roundData, now, maxAge, source.Name())
}

func validateRoundData(roundData *RoundData, now time.Time, maxAge time.Duration, feedName string) (*uint256.Int, error) {
	if roundData == nil || roundData.Answer == nil || roundData.Answer.Sign() <= 0 {
		return nil, fmt.Errorf("%w, feed %s", ErrInvalidPrice, feedName)
	}

	cutoff := now.Add(-maxAge).Unix()
	if cutoff > 0 && roundData.UpdatedAt < uint64(cutoff) {
		return nil, fmt.Errorf("%w, feed %s, updated at %d, cutoff %d", ErrStaleData, feedName, roundData.UpdatedAt, cutoff)
	}

	if roundData.RoundID == nil || roundData.AnsweredInRound == nil ||
		roundData.AnsweredInRound.Cmp(roundData.RoundID) < 0 {
		return nil, fmt.Errorf("%w, feed %s", ErrIncompleteRound, feedName)
	}

	price, overflow := uint256.FromBig(roundData.Answer)
	if overflow {
		return nil, fmt.Errorf("%w, feed %s", ErrPriceOverflow, feedName)
	}

	return price, nil
}

// IsInterfaceNil returns true if there is no value under the interface
func (fr *feedReader) IsInterfaceNil() bool {
	return fr == nil
}
