package gin

import "errors"

var (
	errNilPriceCache        = errors.New("nil price cache")
	errEmptyListenAddress   = errors.New("empty listen address")
	errServerAlreadyStarted = errors.New("http server already started")
)
