package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/holiman/uint256"
	"github.com/klever-io/klv-gas-oracle-go/aggregator"
	logger "github.com/multiversx/mx-chain-logger-go"
	_ "modernc.org/sqlite"
)

const cachedPriceRowID = 1

var log = logger.GetOrCreate("gas-oracle/aggregator/storage")

type sqliteStorer struct {
	mut    sync.Mutex
	db     *sql.DB
	closed bool
}

// NewSQLiteStorer opens (or creates) the SQLite database and runs the migrations
func NewSQLiteStorer(dbPath string) (*sqliteStorer, error) {
	if len(dbPath) == 0 {
		return nil, errEmptyDatabasePath
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w while opening sqlite database %s", err, dbPath)
	}

	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w while setting WAL mode", err)
	}

	ss := &sqliteStorer{db: db}
	err = ss.migrate()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w while migrating", err)
	}

	log.Debug("sqlite storer opened", "path", dbPath)

	return ss, nil
}

func (ss *sqliteStorer) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS cached_price (
			id        INTEGER PRIMARY KEY CHECK (id = 1),
			price     TEXT    NOT NULL,
			timestamp INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS price_updates (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			price          TEXT    NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_price_updates_ts ON price_updates(timestamp)`,
	}

	for _, stmt := range stmts {
		_, err := ss.db.Exec(stmt)
		if err != nil {
			return fmt.Errorf("%w while executing %q", err, stmt[:40])
		}
	}

	return nil
}

// LoadCachedPrice reads the single cached price row
func (ss *sqliteStorer) LoadCachedPrice(ctx context.Context) (*aggregator.CachedPrice, error) {
	ss.mut.Lock()
	defer ss.mut.Unlock()

	if ss.closed {
		return nil, errStorerClosed
	}

	var price string
	var timestamp int64
	row := ss.db.QueryRowContext(ctx, `SELECT price, timestamp FROM cached_price WHERE id = ?`, cachedPriceRowID)
	err := row.Scan(&price, &timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, aggregator.ErrCachedPriceNotFound
	}
	if err != nil {
		return nil, err
	}

	value, err := uint256.FromDecimal(price)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %s", errInvalidStoredPrice, price, err.Error())
	}

	return &aggregator.CachedPrice{
		Price:     value,
		Timestamp: timestamp,
	}, nil
}

// SaveCachedPrice upserts the cached price row and appends it to the update history in one transaction
func (ss *sqliteStorer) SaveCachedPrice(ctx context.Context, cached *aggregator.CachedPrice) error {
	if cached == nil || cached.Price == nil {
		return errNilCachedPrice
	}

	ss.mut.Lock()
	defer ss.mut.Unlock()

	if ss.closed {
		return errStorerClosed
	}

	tx, err := ss.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	price := cached.Price.Dec()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO cached_price (id, price, timestamp) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET price = excluded.price, timestamp = excluded.timestamp`,
		cachedPriceRowID, price, cached.Timestamp)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO price_updates (timestamp, price) VALUES (?, ?)`, cached.Timestamp, price)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// PriceUpdates returns the most recent accepted updates, newest first
func (ss *sqliteStorer) PriceUpdates(ctx context.Context, limit int) ([]*aggregator.CachedPrice, error) {
	ss.mut.Lock()
	defer ss.mut.Unlock()

	if ss.closed {
		return nil, errStorerClosed
	}

	rows, err := ss.db.QueryContext(ctx, `SELECT price, timestamp FROM price_updates ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	updates := make([]*aggregator.CachedPrice, 0, limit)
	for rows.Next() {
		var price string
		var timestamp int64
		err = rows.Scan(&price, &timestamp)
		if err != nil {
			return nil, err
		}

		value, errConvert := uint256.FromDecimal(price)
		if errConvert != nil {
			return nil, fmt.Errorf("%w %q: %s", errInvalidStoredPrice, price, errConvert.Error())
		}
		updates = append(updates, &aggregator.CachedPrice{
			Price:     value,
			Timestamp: timestamp,
		})
	}

	return updates, rows.Err()
}

// Close closes the database
func (ss *sqliteStorer) Close() error {
	ss.mut.Lock()
	defer ss.mut.Unlock()

	if ss.closed {
		return nil
	}
	ss.closed = true

	return ss.db.Close()
}

// IsInterfaceNil returns true if there is no value under the interface
func (ss *sqliteStorer) IsInterfaceNil() bool {
	return ss == nil
}
