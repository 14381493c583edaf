package minter

import (
	"errors"
	"fmt"
	"time"

	"github.com/Kayanski/launchpad/internal/core/amount"
)

// Category groups request failures for the RPC surface. Every failure aborts
// the whole request; the category only tells the caller what kind of
// correction (if any) could make a resubmission succeed.
type Category int

const (
	CategoryInternal Category = iota
	CategoryAuthorization
	CategoryTiming
	CategoryMonetary
	CategoryCapacity
	CategoryHandshake
	CategoryValidation
)

func (c Category) String() string {
	switch c {
	case CategoryAuthorization:
		return "authorization"
	case CategoryTiming:
		return "timing"
	case CategoryMonetary:
		return "monetary"
	case CategoryCapacity:
		return "capacity"
	case CategoryHandshake:
		return "handshake"
	case CategoryValidation:
		return "validation"
	default:
		return "internal"
	}
}

var (
	// ErrBeforeMintStartTime rejects mints ahead of the sale window.
	ErrBeforeMintStartTime = errors.New("minting has not started yet")

	// ErrAfterMintEndTime rejects mints at or past end_time (the bound itself is already ended).
	ErrAfterMintEndTime = errors.New("minting has ended")

	// ErrAlreadyStarted rejects start-time updates once the sale is live.
	ErrAlreadyStarted = errors.New("sale has already started")

	// ErrAlreadyEnded rejects end-time updates once the sale is over.
	ErrAlreadyEnded = errors.New("sale has already ended")

	// ErrMintingHasNotYetEnded rejects purge while the sale window is open.
	ErrMintingHasNotYetEnded = errors.New("minting has not yet ended")

	// ErrMaxPerAddressLimitExceeded rejects a mint beyond the per-address cap.
	ErrMaxPerAddressLimitExceeded = errors.New("max per-address mint limit exceeded")

	// ErrIncorrectFungibility rejects a configured price that does not resolve
	// to exactly one fungible coin.
	ErrIncorrectFungibility = errors.New("mint price is not a fungible token")

	// ErrNonPayable rejects funds attached to a payment-free operation.
	ErrNonPayable = errors.New("this operation does not accept funds")

	// ErrCollectionNotReady rejects mints while the collection address is unbound.
	ErrCollectionNotReady = errors.New("collection contract is not instantiated yet")

	// ErrInvalidReplyToken rejects an acknowledgment whose token does not match
	// the one issued at instantiation.
	ErrInvalidReplyToken = errors.New("invalid instantiate reply token")

	// ErrCollectionInstantiateFailed reports an unparseable instantiate acknowledgment.
	ErrCollectionInstantiateFailed = errors.New("collection instantiation reply could not be parsed")

	// ErrCollectionAlreadyBound rejects a second acknowledgment carrying a
	// different collection address. First write wins.
	ErrCollectionAlreadyBound = errors.New("collection address already bound")

	// ErrInvalidBaseTokenURI rejects an off-chain metadata locator that is not
	// a well-formed ipfs URI.
	ErrInvalidBaseTokenURI = errors.New("invalid base token URI")

	// ErrInvalidImageURL rejects a malformed on-chain metadata image locator.
	ErrInvalidImageURL = errors.New("invalid image URL")

	// ErrUpdateStatus is the single failure surfaced by the status override;
	// the underlying storage detail is intentionally hidden.
	ErrUpdateStatus = errors.New("unable to update status")

	// ErrNotInstantiated is returned by queries on an empty store.
	ErrNotInstantiated = errors.New("minter is not instantiated")

	// ErrAlreadyInstantiated rejects a second creation request.
	ErrAlreadyInstantiated = errors.New("minter is already instantiated")
)

// UnauthorizedError reports a privileged operation attempted by the wrong caller.
type UnauthorizedError struct {
	Reason string
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("unauthorized: %s", e.Reason)
}

// IncorrectPaymentError reports a payment that is not exactly the required
// amount. Overpayment is rejected, not refunded.
type IncorrectPaymentError struct {
	Got  amount.Coin
	Want amount.Coin
}

func (e *IncorrectPaymentError) Error() string {
	return fmt.Sprintf("incorrect payment amount: got %s, want %s", e.Got, e.Want)
}

// MintPriceTooHighError reports an attempted price increase after sale start.
type MintPriceTooHighError struct {
	Allowed uint64
	Updated uint64
}

func (e *MintPriceTooHighError) Error() string {
	return fmt.Sprintf("updated mint price too high: allowed %d, got %d", e.Allowed, e.Updated)
}

// InsufficientMintPriceError reports a price below the authority floor.
type InsufficientMintPriceError struct {
	Expected uint64
	Got      uint64
}

func (e *InsufficientMintPriceError) Error() string {
	return fmt.Sprintf("mint price below minimum: expected at least %d, got %d", e.Expected, e.Got)
}

// InvalidStartTimeError reports a start-time update violating the window rules.
type InvalidStartTimeError struct {
	Time  time.Time
	Bound time.Time
}

func (e *InvalidStartTimeError) Error() string {
	return fmt.Sprintf("invalid start time %s (bound %s)", e.Time.UTC().Format(time.RFC3339), e.Bound.UTC().Format(time.RFC3339))
}

// InvalidEndTimeError reports an end-time update violating the window rules.
type InvalidEndTimeError struct {
	Time  time.Time
	Bound time.Time
}

func (e *InvalidEndTimeError) Error() string {
	return fmt.Sprintf("invalid end time %s (bound %s)", e.Time.UTC().Format(time.RFC3339), e.Bound.UTC().Format(time.RFC3339))
}

// InvalidStartTradingTimeError reports a trading-enablement time past the
// authority-imposed ceiling.
type InvalidStartTradingTimeError struct {
	Got time.Time
	Max time.Time
}

func (e *InvalidStartTradingTimeError) Error() string {
	return fmt.Sprintf("invalid start trading time %s (max %s)", e.Got.UTC().Format(time.RFC3339), e.Max.UTC().Format(time.RFC3339))
}

// InvalidPerAddressLimitError reports a limit outside [1, authority max].
type InvalidPerAddressLimitError struct {
	Min uint32
	Max uint32
	Got uint32
}

func (e *InvalidPerAddressLimitError) Error() string {
	return fmt.Sprintf("invalid per-address limit %d: must be in [%d, %d]", e.Got, e.Min, e.Max)
}

// UnallowedBurnCollectionError reports an exchange mint from a collection that
// is not on the allow-list.
type UnallowedBurnCollectionError struct {
	Collection string
}

func (e *UnallowedBurnCollectionError) Error() string {
	return fmt.Sprintf("collection %s is not an allowed burn collection", e.Collection)
}

// MigrationError reports a rejected contract migration.
type MigrationError struct {
	Reason string
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("migration error: %s", e.Reason)
}

// CategoryOf maps a request failure to its taxonomy category.
func CategoryOf(err error) Category {
	var (
		unauthorized  *UnauthorizedError
		payment       *IncorrectPaymentError
		priceTooHigh  *MintPriceTooHighError
		priceTooLow   *InsufficientMintPriceError
		startTime     *InvalidStartTimeError
		endTime       *InvalidEndTimeError
		tradingTime   *InvalidStartTradingTimeError
		addrLimit     *InvalidPerAddressLimitError
		burnForbidden *UnallowedBurnCollectionError
		migration     *MigrationError
	)
	switch {
	case errors.As(err, &unauthorized):
		return CategoryAuthorization
	case errors.Is(err, ErrBeforeMintStartTime),
		errors.Is(err, ErrAfterMintEndTime),
		errors.Is(err, ErrAlreadyStarted),
		errors.Is(err, ErrAlreadyEnded),
		errors.Is(err, ErrMintingHasNotYetEnded),
		errors.As(err, &startTime),
		errors.As(err, &endTime),
		errors.As(err, &tradingTime):
		return CategoryTiming
	case errors.As(err, &payment),
		errors.As(err, &priceTooHigh),
		errors.As(err, &priceTooLow),
		errors.Is(err, ErrIncorrectFungibility),
		errors.Is(err, ErrNonPayable),
		errors.Is(err, amount.ErrUnderflow),
		errors.Is(err, amount.ErrDenomMismatch):
		return CategoryMonetary
	case errors.Is(err, ErrMaxPerAddressLimitExceeded), errors.As(err, &addrLimit):
		return CategoryCapacity
	case errors.Is(err, ErrCollectionNotReady),
		errors.Is(err, ErrInvalidReplyToken),
		errors.Is(err, ErrCollectionInstantiateFailed),
		errors.Is(err, ErrCollectionAlreadyBound):
		return CategoryHandshake
	case errors.Is(err, ErrInvalidBaseTokenURI),
		errors.Is(err, ErrInvalidImageURL),
		errors.Is(err, ErrAlreadyInstantiated),
		errors.As(err, &burnForbidden),
		errors.As(err, &migration):
		return CategoryValidation
	default:
		return CategoryInternal
	}
}
