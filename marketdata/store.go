package marketdata

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/lawson/optlib/chain"
	"github.com/lawson/optlib/option"
)

const schema = `
CREATE TABLE IF NOT EXISTS option_quotes (
    symbol     TEXT             NOT NULL,
    as_of      DATE             NOT NULL,
    expiry     DATE             NOT NULL,
    right_type TEXT             NOT NULL,
    strike     DOUBLE PRECISION NOT NULL,
    mid        DOUBLE PRECISION NOT NULL,
    ttm        DOUBLE PRECISION NOT NULL,
    moneyness  DOUBLE PRECISION NOT NULL,
    PRIMARY KEY (symbol, as_of, expiry, right_type, strike)
)`

// Store persists chain snapshots in Postgres.
type Store struct {
	db  *sql.DB
	log *logrus.Logger
}

// OpenStore connects to Postgres with the given DSN and verifies the
// connection with a ping.
func OpenStore(ctx context.Context, dsn string, log *logrus.Logger) (*Store, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping store: %w", err)
	}
	log.Info("market data store connected")
	return &Store{db: db, log: log}, nil
}

// EnsureSchema creates the quote table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// SaveSnapshot upserts one day's chain in a single transaction.
func (s *Store) SaveSnapshot(ctx context.Context, asOf time.Time, c chain.Chain) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	defer tx.Rollback()

	const q = `
	INSERT INTO option_quotes (symbol, as_of, expiry, right_type, strike, mid, ttm, moneyness)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (symbol, as_of, expiry, right_type, strike)
	DO UPDATE SET mid = EXCLUDED.mid, ttm = EXCLUDED.ttm, moneyness = EXCLUDED.moneyness`
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	defer stmt.Close()

	for _, quote := range c {
		_, err := stmt.ExecContext(ctx, quote.Symbol, asOf, quote.Expiry, string(quote.Right), quote.Strike, quote.Mid, quote.TTM, quote.Moneyness)
		if err != nil {
			return fmt.Errorf("save snapshot %s %.2f: %w", quote.Symbol, quote.Strike, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	s.log.WithFields(logrus.Fields{"as_of": asOf.Format("2006-01-02"), "quotes": len(c)}).Info("snapshot saved")
	return nil
}

// ChainAsOf loads the snapshot for the given symbols and date.
func (s *Store) ChainAsOf(symbols []string, asOf time.Time) (chain.Chain, error) {
	return s.ChainAsOfContext(context.Background(), symbols, asOf)
}

// ChainAsOfContext is ChainAsOf with an explicit context.
func (s *Store) ChainAsOfContext(ctx context.Context, symbols []string, asOf time.Time) (chain.Chain, error) {
	const q = `
	SELECT symbol, expiry, right_type, strike, mid, ttm, moneyness
	FROM option_quotes
	WHERE as_of = $1 AND symbol = ANY($2)
	ORDER BY expiry, right_type, strike`
	rows, err := s.db.QueryContext(ctx, q, asOf, pq.Array(symbols))
	if err != nil {
		return nil, fmt.Errorf("chain as of %s: %w", asOf.Format("2006-01-02"), err)
	}
	defer rows.Close()

	var out chain.Chain
	for rows.Next() {
		var quote chain.Quote
		var right string
		if err := rows.Scan(&quote.Symbol, &quote.Expiry, &right, &quote.Strike, &quote.Mid, &quote.TTM, &quote.Moneyness); err != nil {
			return nil, fmt.Errorf("chain as of: scan: %w", err)
		}
		quote.Right = option.Type(right)
		out = append(out, quote)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("chain as of: %w", err)
	}
	if len(out) == 0 {
		return nil, chain.ErrNoQuotes
	}
	return out, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
