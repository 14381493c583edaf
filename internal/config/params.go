package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Kayanski/launchpad/internal/core/amount"
	"github.com/Kayanski/launchpad/internal/core/minter"
)

// paramsFile is the on-disk shape of the authority params file: one entry
// per factory address.
type paramsFile struct {
	Factories map[string]factoryParams `json:"factories"`
}

type factoryParams struct {
	MintFeeBps              uint64      `json:"mint_fee_bps"`
	AirdropMintFeeBps       uint64      `json:"airdrop_mint_fee_bps"`
	AirdropMintPrice        amount.Coin `json:"airdrop_mint_price"`
	MinMintPrice            amount.Coin `json:"min_mint_price"`
	MaxTradingOffsetSeconds uint64      `json:"max_trading_offset_seconds"`
	MaxPerAddressLimit      uint32      `json:"max_per_address_limit"`
	DevFeeAddress           string      `json:"dev_fee_address"`
}

// FileParamsProvider answers authority params queries from a JSON file. The
// file is re-read on every call, so edits take effect immediately; nothing
// is cached in between.
type FileParamsProvider struct {
	path string
}

// NewFileParamsProvider creates a provider reading from path.
func NewFileParamsProvider(path string) *FileParamsProvider {
	return &FileParamsProvider{path: path}
}

// Params implements minter.ParamsProvider.
func (p *FileParamsProvider) Params(factory string) (minter.MinterParams, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return minter.MinterParams{}, fmt.Errorf("failed to read params file: %w", err)
	}
	var file paramsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return minter.MinterParams{}, fmt.Errorf("failed to parse params file: %w", err)
	}
	entry, ok := file.Factories[factory]
	if !ok {
		return minter.MinterParams{}, fmt.Errorf("no params for factory %s", factory)
	}
	if entry.MintFeeBps > amount.BpsDenominator || entry.AirdropMintFeeBps > amount.BpsDenominator {
		return minter.MinterParams{}, fmt.Errorf("fee rate for factory %s exceeds %d bps", factory, amount.BpsDenominator)
	}
	if entry.MaxPerAddressLimit == 0 {
		return minter.MinterParams{}, fmt.Errorf("max_per_address_limit for factory %s must be positive", factory)
	}
	return minter.MinterParams{
		MintFeeBps:         entry.MintFeeBps,
		AirdropMintFeeBps:  entry.AirdropMintFeeBps,
		AirdropMintPrice:   entry.AirdropMintPrice,
		MinMintPrice:       entry.MinMintPrice,
		MaxTradingOffset:   time.Duration(entry.MaxTradingOffsetSeconds) * time.Second,
		MaxPerAddressLimit: entry.MaxPerAddressLimit,
		DevFeeAddress:      entry.DevFeeAddress,
	}, nil
}
