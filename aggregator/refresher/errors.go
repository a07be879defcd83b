package refresher

import "errors"

var (
	errNilUpdater     = errors.New("nil price updater")
	errInvalidSpec    = errors.New("invalid cron spec")
	errInvalidTimeout = errors.New("invalid refresh timeout")
)
