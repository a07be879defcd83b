package storage

import (
	"fmt"

	"github.com/klever-io/klv-gas-oracle-go/aggregator"
)

const (
	// MemoryStorageType keeps the cached price in memory only
	MemoryStorageType = "memory"
	// SQLiteStorageType persists the cached price in a SQLite database
	SQLiteStorageType = "sqlite"
)

// NewCacheStorer returns a new cache storer of the type provided
func NewCacheStorer(storageType string, path string) (aggregator.CacheStorer, error) {
	switch storageType {
	case MemoryStorageType, "":
		return NewMemoryStorer(), nil
	case SQLiteStorageType:
		storer, err := NewSQLiteStorer(path)
		if err != nil {
			return nil, err
		}

		return storer, nil
	}

	return nil, fmt.Errorf("%w, storageType %s", errInvalidStorageType, storageType)
}
