package relationaldb

import (
	"context"
	"time"
)

// MintEvent is one successful mint, as recorded for the history surface.
type MintEvent struct {
	TokenID      uint64    `json:"token_id"`
	Action       string    `json:"action"`
	Sender       string    `json:"sender"`
	Recipient    string    `json:"recipient"`
	PriceDenom   string    `json:"price_denom"`
	PriceAmount  uint64    `json:"price_amount"`
	NetworkFee   uint64    `json:"network_fee"`
	SellerAmount uint64    `json:"seller_amount"`
	MintedAt     time.Time `json:"minted_at"`
}

// Store records mint events and serves the history queries.
type Store interface {
	// SaveMintEvent appends one mint event
	SaveMintEvent(ctx context.Context, event MintEvent) error

	// MintHistory returns the most recent events, newest first, up to limit
	MintHistory(ctx context.Context, limit int) ([]MintEvent, error)

	// MintsByRecipient returns all events minted to the given address, newest first
	MintsByRecipient(ctx context.Context, recipient string) ([]MintEvent, error)

	Close() error
}
