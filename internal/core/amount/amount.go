package amount

import (
	"errors"
	"fmt"
	"math/bits"
)

// BpsDenominator is the divisor for basis-point fee rates (10000 bps = 100%).
const BpsDenominator uint64 = 10_000

var (
	// ErrUnderflow is returned by CheckedSub when the subtrahend exceeds the amount.
	ErrUnderflow = errors.New("amount underflow")

	// ErrDenomMismatch is returned when two coins of different denominations are combined.
	ErrDenomMismatch = errors.New("denomination mismatch")
)

// Coin is an amount of a single fungible denomination.
// The zero value is "0" of the empty denomination.
type Coin struct {
	Denom  string `json:"denom"`
	Amount uint64 `json:"amount"`
}

// NewCoin creates a coin of the given amount and denomination.
func NewCoin(amt uint64, denom string) Coin {
	return Coin{Denom: denom, Amount: amt}
}

// IsZero reports whether the amount is zero.
func (c Coin) IsZero() bool {
	return c.Amount == 0
}

// SameDenomAs reports whether both coins share a denomination.
func (c Coin) SameDenomAs(other Coin) bool {
	return c.Denom == other.Denom
}

// Add returns c + other. Denominations must match.
func (c Coin) Add(other Coin) (Coin, error) {
	if !c.SameDenomAs(other) {
		return Coin{}, fmt.Errorf("%w: %s vs %s", ErrDenomMismatch, c.Denom, other.Denom)
	}
	return Coin{Denom: c.Denom, Amount: c.Amount + other.Amount}, nil
}

// CheckedSub returns c - other, failing on underflow or denom mismatch.
func (c Coin) CheckedSub(other Coin) (Coin, error) {
	if !c.SameDenomAs(other) {
		return Coin{}, fmt.Errorf("%w: %s vs %s", ErrDenomMismatch, c.Denom, other.Denom)
	}
	if other.Amount > c.Amount {
		return Coin{}, fmt.Errorf("%w: %d - %d", ErrUnderflow, c.Amount, other.Amount)
	}
	return Coin{Denom: c.Denom, Amount: c.Amount - other.Amount}, nil
}

// MulBps returns the truncated basis-point fraction of c.
// 10000 bps is the whole amount; the result always rounds toward zero.
// The intermediate product is computed in 128 bits so large amounts cannot overflow.
func (c Coin) MulBps(bps uint64) Coin {
	hi, lo := bits.Mul64(c.Amount, bps)
	quo, _ := bits.Div64(hi, lo, BpsDenominator)
	return Coin{Denom: c.Denom, Amount: quo}
}

func (c Coin) String() string {
	return fmt.Sprintf("%d%s", c.Amount, c.Denom)
}
