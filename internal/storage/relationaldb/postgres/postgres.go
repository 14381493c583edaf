// Package postgres provides the mint-event history store for deployments
// that already run PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Kayanski/launchpad/internal/storage/relationaldb"
	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS mint_events (
	token_id      BIGINT PRIMARY KEY,
	action        TEXT NOT NULL,
	sender        TEXT NOT NULL,
	recipient     TEXT NOT NULL,
	price_denom   TEXT NOT NULL,
	price_amount  BIGINT NOT NULL,
	network_fee   BIGINT NOT NULL,
	seller_amount BIGINT NOT NULL,
	minted_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_mint_events_recipient ON mint_events(recipient);
`

// Store records mint events in a PostgreSQL database.
type Store struct {
	db *sql.DB
}

// Open connects to PostgreSQL using the given DSN and ensures the schema.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach postgres: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) SaveMintEvent(ctx context.Context, event relationaldb.MintEvent) error {
	if s.db == nil {
		return relationaldb.ErrStoreClosed
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO mint_events
		 (token_id, action, sender, recipient, price_denom, price_amount, network_fee, seller_amount, minted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		int64(event.TokenID), event.Action, event.Sender, event.Recipient,
		event.PriceDenom, int64(event.PriceAmount), int64(event.NetworkFee),
		int64(event.SellerAmount), event.MintedAt.UTC())
	return err
}

func (s *Store) MintHistory(ctx context.Context, limit int) ([]relationaldb.MintEvent, error) {
	if s.db == nil {
		return nil, relationaldb.ErrStoreClosed
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT token_id, action, sender, recipient, price_denom, price_amount, network_fee, seller_amount, minted_at
		 FROM mint_events ORDER BY token_id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (s *Store) MintsByRecipient(ctx context.Context, recipient string) ([]relationaldb.MintEvent, error) {
	if s.db == nil {
		return nil, relationaldb.ErrStoreClosed
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT token_id, action, sender, recipient, price_denom, price_amount, network_fee, seller_amount, minted_at
		 FROM mint_events WHERE recipient = $1 ORDER BY token_id DESC`, recipient)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func scanEvents(rows *sql.Rows) ([]relationaldb.MintEvent, error) {
	var events []relationaldb.MintEvent
	for rows.Next() {
		var e relationaldb.MintEvent
		var tokenID, priceAmount, networkFee, sellerAmount int64
		if err := rows.Scan(&tokenID, &e.Action, &e.Sender, &e.Recipient,
			&e.PriceDenom, &priceAmount, &networkFee, &sellerAmount, &e.MintedAt); err != nil {
			return nil, err
		}
		e.TokenID = uint64(tokenID)
		e.PriceAmount = uint64(priceAmount)
		e.NetworkFee = uint64(networkFee)
		e.SellerAmount = uint64(sellerAmount)
		events = append(events, e)
	}
	return events, rows.Err()
}
