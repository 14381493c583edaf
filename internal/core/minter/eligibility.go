package minter

import (
	"time"

	"github.com/Kayanski/launchpad/internal/core/amount"
)

// checkWindow enforces sale-window membership: [start_time, end_time), start
// inclusive, end exclusive. The privileged path skips the lower bound but
// still respects the end of the sale.
func checkWindow(now time.Time, cfg *Config, role Role) error {
	if role == RoleOrdinary && now.Before(cfg.StartTime) {
		return ErrBeforeMintStartTime
	}
	if !now.Before(cfg.EndTime) {
		return ErrAfterMintEndTime
	}
	return nil
}

// checkCap enforces the per-address purchase cap.
func checkCap(currentCount, limit uint32) error {
	if currentCount >= limit {
		return ErrMaxPerAddressLimitExceeded
	}
	return nil
}

// checkPayment requires the paid amount to equal the required amount exactly.
// Overpayment is rejected, not refunded.
func checkPayment(paid, required amount.Coin) error {
	if paid != required {
		return &IncorrectPaymentError{Got: paid, Want: required}
	}
	return nil
}
