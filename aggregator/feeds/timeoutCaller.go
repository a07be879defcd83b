package feeds

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

type timeoutCaller struct {
	caller  bind.ContractCaller
	timeout time.Duration
}

// NewTimeoutContractCaller bounds every contract call of the wrapped caller by the provided timeout
func NewTimeoutContractCaller(caller bind.ContractCaller, timeout time.Duration) (*timeoutCaller, error) {
	if caller == nil {
		return nil, errNilContractCaller
	}
	if timeout <= 0 {
		return nil, errInvalidTimeout
	}

	return &timeoutCaller{
		caller:  caller,
		timeout: timeout,
	}, nil
}

// CodeAt -
func (tc *timeoutCaller) CodeAt(ctx context.Context, contract common.Address, blockNumber *big.Int) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, tc.timeout)
	defer cancel()

	return tc.caller.CodeAt(ctx, contract, blockNumber)
}

// CallContract -
func (tc *timeoutCaller) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, tc.timeout)
	defer cancel()

	return tc.caller.CallContract(ctx, call, blockNumber)
}
