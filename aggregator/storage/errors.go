package storage

import "errors"

var (
	errNilCachedPrice     = errors.New("nil cached price")
	errEmptyDatabasePath  = errors.New("empty database path")
	errInvalidStorageType = errors.New("invalid storage type")
	errInvalidStoredPrice = errors.New("invalid stored price")
	errStorerClosed       = errors.New("storer closed")
)
