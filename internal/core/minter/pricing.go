package minter

import (
	"github.com/Kayanski/launchpad/internal/core/amount"
)

// mintPrice resolves the effective unit price for the given role. Ordinary
// buyers pay the configured price; the privileged path pays the authority's
// airdrop price, denominated like the configured price.
func mintPrice(cfg *Config, params MinterParams, role Role) (amount.Coin, error) {
	if cfg.MintPrice.Denom == "" {
		return amount.Coin{}, ErrIncorrectFungibility
	}
	if role == RolePrivileged {
		return amount.NewCoin(params.AirdropMintPrice.Amount, cfg.MintPrice.Denom), nil
	}
	return cfg.MintPrice, nil
}

// feeRate selects the network fee rate for the role.
func feeRate(params MinterParams, role Role) uint64 {
	if role == RolePrivileged {
		return params.AirdropMintFeeBps
	}
	return params.MintFeeBps
}

// feeSplit divides a price into the truncated network fee and the seller
// residual. The underflow check cannot trip while fee rates stay at or below
// 10000 bps, but the subtraction is checked regardless.
func feeSplit(price amount.Coin, bps uint64) (networkFee, sellerAmount amount.Coin, err error) {
	networkFee = price.MulBps(bps)
	sellerAmount, err = price.CheckedSub(networkFee)
	if err != nil {
		return amount.Coin{}, amount.Coin{}, err
	}
	return networkFee, sellerAmount, nil
}
