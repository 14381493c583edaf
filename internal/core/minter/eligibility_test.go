package minter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kayanski/launchpad/internal/core/amount"
)

func TestCheckWindow(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	cfg := &Config{StartTime: start, EndTime: end}

	cases := []struct {
		name    string
		now     time.Time
		role    Role
		wantErr error
	}{
		{"before start", start.Add(-time.Second), RoleOrdinary, ErrBeforeMintStartTime},
		{"at start", start, RoleOrdinary, nil},
		{"inside window", start.Add(time.Hour), RoleOrdinary, nil},
		{"just before end", end.Add(-time.Nanosecond), RoleOrdinary, nil},
		{"at end", end, RoleOrdinary, ErrAfterMintEndTime},
		{"after end", end.Add(time.Hour), RoleOrdinary, ErrAfterMintEndTime},
		{"privileged before start", start.Add(-time.Hour), RolePrivileged, nil},
		{"privileged at end", end, RolePrivileged, ErrAfterMintEndTime},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := checkWindow(tc.now, cfg, tc.role)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestCheckCap(t *testing.T) {
	assert.NoError(t, checkCap(0, 1))
	assert.ErrorIs(t, checkCap(1, 1), ErrMaxPerAddressLimitExceeded)
	assert.ErrorIs(t, checkCap(5, 3), ErrMaxPerAddressLimitExceeded)
}

func TestCheckPayment(t *testing.T) {
	required := amount.NewCoin(100, "ustars")

	assert.NoError(t, checkPayment(amount.NewCoin(100, "ustars"), required))

	for _, paid := range []amount.Coin{
		amount.NewCoin(99, "ustars"),
		amount.NewCoin(101, "ustars"),
		amount.NewCoin(100, "uatom"),
		{},
	} {
		err := checkPayment(paid, required)
		var payment *IncorrectPaymentError
		require.ErrorAs(t, err, &payment)
		assert.Equal(t, required, payment.Want)
	}
}
