package minter

import (
	"context"
	"time"

	"github.com/Kayanski/launchpad/internal/core/amount"
)

// ConfigResponse is the full controller configuration, including the bound
// collection address. It is unavailable until the handshake completes.
type ConfigResponse struct {
	Factory                string      `json:"factory"`
	Admin                  string      `json:"admin"`
	CollectionAddress      string      `json:"collection_address"`
	CollectionCodeID       uint64      `json:"collection_code_id"`
	PaymentAddress         string      `json:"payment_address,omitempty"`
	PerAddressLimit        uint32      `json:"per_address_limit"`
	StartTime              time.Time   `json:"start_time"`
	EndTime                time.Time   `json:"end_time"`
	MintPrice              amount.Coin `json:"mint_price"`
	NftData                NftData     `json:"nft_data"`
	AllowedBurnCollections []string    `json:"allowed_burn_collections,omitempty"`
}

// MintPriceResponse breaks the effective pricing down by role.
type MintPriceResponse struct {
	PublicPrice  amount.Coin `json:"public_price"`
	AirdropPrice amount.Coin `json:"airdrop_price"`
	CurrentPrice amount.Coin `json:"current_price"`
}

// MintCountResponse reports one address's window purchase count.
type MintCountResponse struct {
	Address string `json:"address"`
	Count   uint32 `json:"count"`
}

// QueryConfig returns the configuration. It fails with ErrCollectionNotReady
// while the collection address is unbound.
func (e *Engine) QueryConfig(ctx context.Context) (*ConfigResponse, error) {
	view := e.view(ctx)
	cfg, err := loadConfig(view)
	if err != nil {
		return nil, err
	}
	collection, err := loadCollectionAddress(view)
	if err != nil {
		return nil, err
	}
	if collection == "" {
		return nil, ErrCollectionNotReady
	}
	return &ConfigResponse{
		Factory:                cfg.Factory,
		Admin:                  cfg.Admin,
		CollectionAddress:      collection,
		CollectionCodeID:       cfg.CollectionCodeID,
		PaymentAddress:         cfg.PaymentAddress,
		PerAddressLimit:        cfg.PerAddressLimit,
		StartTime:              cfg.StartTime,
		EndTime:                cfg.EndTime,
		MintPrice:              cfg.MintPrice,
		NftData:                cfg.NftData,
		AllowedBurnCollections: cfg.AllowedBurnCollections,
	}, nil
}

// QueryStatus returns the curation flags.
func (e *Engine) QueryStatus(ctx context.Context) (*Status, error) {
	return loadStatus(e.view(ctx))
}

// QueryStartTime returns the sale opening time.
func (e *Engine) QueryStartTime(ctx context.Context) (time.Time, error) {
	cfg, err := loadConfig(e.view(ctx))
	if err != nil {
		return time.Time{}, err
	}
	return cfg.StartTime, nil
}

// QueryEndTime returns the sale closing time.
func (e *Engine) QueryEndTime(ctx context.Context) (time.Time, error) {
	cfg, err := loadConfig(e.view(ctx))
	if err != nil {
		return time.Time{}, err
	}
	return cfg.EndTime, nil
}

// QueryMintPrice returns the public, airdrop and currently effective prices.
// The airdrop price comes from the authority params, denominated like the
// configured price.
func (e *Engine) QueryMintPrice(ctx context.Context) (*MintPriceResponse, error) {
	cfg, err := loadConfig(e.view(ctx))
	if err != nil {
		return nil, err
	}
	params, err := e.params.Params(cfg.Factory)
	if err != nil {
		return nil, err
	}
	public, err := mintPrice(cfg, params, RoleOrdinary)
	if err != nil {
		return nil, err
	}
	airdrop, err := mintPrice(cfg, params, RolePrivileged)
	if err != nil {
		return nil, err
	}
	return &MintPriceResponse{
		PublicPrice:  public,
		AirdropPrice: airdrop,
		CurrentPrice: public,
	}, nil
}

// QueryMintCount returns the per-address purchase count for addr.
func (e *Engine) QueryMintCount(ctx context.Context, addr string) (*MintCountResponse, error) {
	view := e.view(ctx)
	if _, err := loadConfig(view); err != nil {
		return nil, err
	}
	count, err := loadMintCount(view, addr)
	if err != nil {
		return nil, err
	}
	return &MintCountResponse{Address: addr, Count: count}, nil
}

// QueryTotalMintCount returns the lifetime number of completed mints.
func (e *Engine) QueryTotalMintCount(ctx context.Context) (uint64, error) {
	view := e.view(ctx)
	if _, err := loadConfig(view); err != nil {
		return 0, err
	}
	return loadTotalMintCount(view)
}
