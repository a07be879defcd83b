package mock

import (
	"github.com/holiman/uint256"
)

// StatusHandlerStub -
type StatusHandlerStub struct {
	UpdateAppliedCalled func(current *uint256.Int, previous *uint256.Int, timestamp int64)
	UpdateSkippedCalled func()
	UpdateFailedCalled  func(err error)
	NotifyFailedCalled  func(err error)
}

// UpdateApplied -
func (stub *StatusHandlerStub) UpdateApplied(current *uint256.Int, previous *uint256.Int, timestamp int64) {
	if stub.UpdateAppliedCalled != nil {
		stub.UpdateAppliedCalled(current, previous, timestamp)
	}
}

// UpdateSkipped -
func (stub *StatusHandlerStub) UpdateSkipped() {
	if stub.UpdateSkippedCalled != nil {
		stub.UpdateSkippedCalled()
	}
}

// UpdateFailed -
func (stub *StatusHandlerStub) UpdateFailed(err error) {
	if stub.UpdateFailedCalled != nil {
		stub.UpdateFailedCalled(err)
	}
}

// NotifyFailed -
func (stub *StatusHandlerStub) NotifyFailed(err error) {
	if stub.NotifyFailedCalled != nil {
		stub.NotifyFailedCalled(err)
	}
}

// IsInterfaceNil -
func (stub *StatusHandlerStub) IsInterfaceNil() bool {
	return stub == nil
}
