package minter

import (
	"time"

	"github.com/Kayanski/launchpad/internal/core/amount"
)

// MinterParams are the authority-level limits and rates. They are re-queried
// from the ParamsProvider on every price- and fee-dependent operation so that
// authority changes take effect immediately; nothing here is ever cached.
type MinterParams struct {
	// MintFeeBps is the network fee rate on ordinary mints, in basis points.
	MintFeeBps uint64 `json:"mint_fee_bps"`

	// AirdropMintFeeBps is the network fee rate on privileged mints.
	AirdropMintFeeBps uint64 `json:"airdrop_mint_fee_bps"`

	// AirdropMintPrice is the unit price charged on privileged mints.
	AirdropMintPrice amount.Coin `json:"airdrop_mint_price"`

	// MinMintPrice is the floor no price update may cross.
	MinMintPrice amount.Coin `json:"min_mint_price"`

	// MaxTradingOffset bounds the trading-enablement time relative to start_time.
	MaxTradingOffset time.Duration `json:"max_trading_offset"`

	// MaxPerAddressLimit caps the configurable per-address limit.
	MaxPerAddressLimit uint32 `json:"max_per_address_limit"`

	// DevFeeAddress receives the network fee.
	DevFeeAddress string `json:"dev_fee_address"`
}

// ParamsProvider is the Parameter Authority ("factory") interface. Params
// answers the authority's parameter query for the given factory address; a
// caller that cannot answer it is not a factory.
type ParamsProvider interface {
	Params(factory string) (MinterParams, error)
}

// ParamsProviderFunc adapts a function to the ParamsProvider interface.
type ParamsProviderFunc func(factory string) (MinterParams, error)

func (f ParamsProviderFunc) Params(factory string) (MinterParams, error) {
	return f(factory)
}
