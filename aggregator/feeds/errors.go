package feeds

import "errors"

var (
	errNilContractCaller  = errors.New("nil contract caller")
	errInvalidFeedType    = errors.New("invalid feed type")
	errInvalidAddress     = errors.New("invalid feed contract address")
	errUnexpectedOutput   = errors.New("unexpected contract output")
	errInvalidStaticPrice = errors.New("invalid static price")
	errEmptyFeedName      = errors.New("empty feed name")
	errInvalidTimeout     = errors.New("invalid timeout")
)
