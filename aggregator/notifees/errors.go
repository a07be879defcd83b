package notifees

import "errors"

var (
	errNilNotifee          = errors.New("nil notifee")
	errNilPriceUpdatedArgs = errors.New("nil price updated arguments")
	errInvalidWriteTimeout = errors.New("invalid write timeout")
	errInvalidBufferSize   = errors.New("invalid client buffer size")
	errNotifeeClosed       = errors.New("notifee closed")
	errNilLogger           = errors.New("nil logger")
)
