package store

import (
	"database/sql"
	"fmt"

	"github.com/etnz/backtest/series"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// Compile-time interface check.
var _ PriceStore = (*SQLiteStore)(nil)

// SQLiteStore implements PriceStore backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS prices (
	ticker TEXT NOT NULL,
	day    TEXT NOT NULL,
	close  REAL NOT NULL,
	PRIMARY KEY (ticker, day)
);
`

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and returns
// a ready-to-use SQLiteStore.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open price store %q: %w", dbPath, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot initialize price store %q: %w", dbPath, err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// SavePrices persists a price series for a ticker, one row per day.
func (s *SQLiteStore) SavePrices(ticker string, prices *series.Series[float64]) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO prices (ticker, day, close) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for on, p := range prices.Values() {
		if _, err := stmt.Exec(ticker, on.String(), p); err != nil {
			return fmt.Errorf("cannot save price for %s on %s: %w", ticker, on, err)
		}
	}
	return tx.Commit()
}

// LoadPrices returns the stored price series for a ticker.
func (s *SQLiteStore) LoadPrices(ticker string) (*series.Series[float64], error) {
	rows, err := s.db.Query(`SELECT day, close FROM prices WHERE ticker = ? ORDER BY day`, ticker)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prices := series.New[float64]()
	for rows.Next() {
		var day string
		var close float64
		if err := rows.Scan(&day, &close); err != nil {
			return nil, err
		}
		on, err := series.ParseDate(day)
		if err != nil {
			return nil, fmt.Errorf("corrupt day for %s: %w", ticker, err)
		}
		prices.Append(on, close)
	}
	return prices, rows.Err()
}

// Tickers returns all distinct tickers with stored prices.
func (s *SQLiteStore) Tickers() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT ticker FROM prices ORDER BY ticker`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickers []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		tickers = append(tickers, t)
	}
	return tickers, rows.Err()
}
