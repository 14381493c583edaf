package minter

import (
	"strconv"
	"time"

	"github.com/Kayanski/launchpad/internal/core/amount"
)

func init() {
	Register(TypeUpdateMintPrice, func() Request { return &UpdateMintPriceRequest{} })
	Register(TypeUpdateStartTime, func() Request { return &UpdateStartTimeRequest{} })
	Register(TypeUpdateEndTime, func() Request { return &UpdateEndTimeRequest{} })
	Register(TypeUpdateStartTradingTime, func() Request { return &UpdateStartTradingTimeRequest{} })
	Register(TypeUpdatePerAddressLimit, func() Request { return &UpdatePerAddressLimitRequest{} })
}

const (
	TypeUpdateMintPrice        = "update_mint_price"
	TypeUpdateStartTime        = "update_start_time"
	TypeUpdateEndTime          = "update_end_time"
	TypeUpdateStartTradingTime = "update_start_trading_time"
	TypeUpdatePerAddressLimit  = "update_per_address_limit"
)

// adminOnly loads the config and rejects any sender other than the admin.
// All admin updates are payment-free.
func adminOnly(ctx *ApplyContext) (*Config, error) {
	if err := nonpayable(ctx); err != nil {
		return nil, err
	}
	cfg, err := loadConfig(ctx.State)
	if err != nil {
		return nil, err
	}
	if ctx.Sender != cfg.Admin {
		return nil, &UnauthorizedError{Reason: "sender is not the minter admin"}
	}
	return cfg, nil
}

// UpdateMintPriceRequest changes the unit price. Before the sale starts the
// price may move freely above the authority floor; once started it may only
// be lowered.
type UpdateMintPriceRequest struct {
	Price uint64 `json:"price"`
}

func (r *UpdateMintPriceRequest) Type() string    { return TypeUpdateMintPrice }
func (r *UpdateMintPriceRequest) Validate() error { return nil }

func (r *UpdateMintPriceRequest) Apply(ctx *ApplyContext) error {
	cfg, err := adminOnly(ctx)
	if err != nil {
		return err
	}
	if !ctx.Now.Before(cfg.EndTime) {
		return ErrAfterMintEndTime
	}
	if !ctx.Now.Before(cfg.StartTime) && r.Price >= cfg.MintPrice.Amount {
		return &MintPriceTooHighError{Allowed: cfg.MintPrice.Amount, Updated: r.Price}
	}
	params, err := ctx.Params.Params(cfg.Factory)
	if err != nil {
		return err
	}
	if r.Price < params.MinMintPrice.Amount {
		return &InsufficientMintPriceError{Expected: params.MinMintPrice.Amount, Got: r.Price}
	}
	if cfg.MintPrice.Denom == "" {
		return ErrIncorrectFungibility
	}
	cfg.MintPrice = amount.NewCoin(r.Price, cfg.MintPrice.Denom)
	if err := saveConfig(ctx.State, cfg); err != nil {
		return err
	}
	ctx.Attr("action", "update_mint_price")
	ctx.Attr("sender", ctx.Sender)
	ctx.Attr("mint_price", cfg.MintPrice.String())
	return nil
}

// UpdateStartTimeRequest moves the sale opening. Only allowed before the sale
// has started, to a moment that is not in the past and not after the close.
type UpdateStartTimeRequest struct {
	StartTime time.Time `json:"start_time"`
}

func (r *UpdateStartTimeRequest) Type() string    { return TypeUpdateStartTime }
func (r *UpdateStartTimeRequest) Validate() error { return nil }

func (r *UpdateStartTimeRequest) Apply(ctx *ApplyContext) error {
	cfg, err := adminOnly(ctx)
	if err != nil {
		return err
	}
	if !ctx.Now.Before(cfg.StartTime) {
		return ErrAlreadyStarted
	}
	if r.StartTime.Before(ctx.Now) {
		return &InvalidStartTimeError{Time: r.StartTime, Bound: ctx.Now}
	}
	if r.StartTime.After(cfg.EndTime) {
		return &InvalidStartTimeError{Time: r.StartTime, Bound: cfg.EndTime}
	}
	cfg.StartTime = r.StartTime
	if err := saveConfig(ctx.State, cfg); err != nil {
		return err
	}
	ctx.Attr("action", "update_start_time")
	ctx.Attr("sender", ctx.Sender)
	ctx.Attr("start_time", r.StartTime.UTC().Format(time.RFC3339Nano))
	return nil
}

// UpdateEndTimeRequest moves the sale close. Only allowed before the sale has
// ended, to a moment that is not in the past and not before the opening.
type UpdateEndTimeRequest struct {
	EndTime time.Time `json:"end_time"`
}

func (r *UpdateEndTimeRequest) Type() string    { return TypeUpdateEndTime }
func (r *UpdateEndTimeRequest) Validate() error { return nil }

func (r *UpdateEndTimeRequest) Apply(ctx *ApplyContext) error {
	cfg, err := adminOnly(ctx)
	if err != nil {
		return err
	}
	if !ctx.Now.Before(cfg.EndTime) {
		return ErrAlreadyEnded
	}
	if r.EndTime.Before(ctx.Now) {
		return &InvalidEndTimeError{Time: r.EndTime, Bound: ctx.Now}
	}
	if r.EndTime.Before(cfg.StartTime) {
		return &InvalidEndTimeError{Time: r.EndTime, Bound: cfg.StartTime}
	}
	cfg.EndTime = r.EndTime
	if err := saveConfig(ctx.State, cfg); err != nil {
		return err
	}
	ctx.Attr("action", "update_end_time")
	ctx.Attr("sender", ctx.Sender)
	ctx.Attr("end_time", r.EndTime.UTC().Format(time.RFC3339Nano))
	return nil
}

// UpdateStartTradingTimeRequest forwards a new trading-enablement time to the
// bound collection. Nothing changes in local state.
type UpdateStartTradingTimeRequest struct {
	StartTradingTime *time.Time `json:"start_trading_time,omitempty"`
}

func (r *UpdateStartTradingTimeRequest) Type() string    { return TypeUpdateStartTradingTime }
func (r *UpdateStartTradingTimeRequest) Validate() error { return nil }

func (r *UpdateStartTradingTimeRequest) Apply(ctx *ApplyContext) error {
	cfg, err := adminOnly(ctx)
	if err != nil {
		return err
	}
	collection, err := loadCollectionAddress(ctx.State)
	if err != nil {
		return err
	}
	if collection == "" {
		return ErrCollectionNotReady
	}
	params, err := ctx.Params.Params(cfg.Factory)
	if err != nil {
		return err
	}
	maxTradingTime := cfg.StartTime.Add(params.MaxTradingOffset)
	if r.StartTradingTime != nil {
		if r.StartTradingTime.Before(ctx.Now) {
			return &InvalidStartTradingTimeError{Got: *r.StartTradingTime, Max: maxTradingTime}
		}
		if r.StartTradingTime.After(maxTradingTime) {
			return &InvalidStartTradingTimeError{Got: *r.StartTradingTime, Max: maxTradingTime}
		}
	}
	ctx.Emit(SetStartTradingTimeMsg{Collection: collection, StartTradingTime: r.StartTradingTime})
	ctx.Attr("action", "update_start_trading_time")
	ctx.Attr("sender", ctx.Sender)
	if r.StartTradingTime != nil {
		ctx.Attr("start_trading_time", r.StartTradingTime.UTC().Format(time.RFC3339Nano))
	} else {
		ctx.Attr("start_trading_time", "none")
	}
	return nil
}

// UpdatePerAddressLimitRequest changes the per-address cap. The new value
// must stay within [1, authority max]; addresses already over a lowered cap
// simply cannot mint again.
type UpdatePerAddressLimitRequest struct {
	PerAddressLimit uint32 `json:"per_address_limit"`
}

func (r *UpdatePerAddressLimitRequest) Type() string    { return TypeUpdatePerAddressLimit }
func (r *UpdatePerAddressLimitRequest) Validate() error { return nil }

func (r *UpdatePerAddressLimitRequest) Apply(ctx *ApplyContext) error {
	cfg, err := adminOnly(ctx)
	if err != nil {
		return err
	}
	params, err := ctx.Params.Params(cfg.Factory)
	if err != nil {
		return err
	}
	if r.PerAddressLimit == 0 || r.PerAddressLimit > params.MaxPerAddressLimit {
		return &InvalidPerAddressLimitError{Min: 1, Max: params.MaxPerAddressLimit, Got: r.PerAddressLimit}
	}
	cfg.PerAddressLimit = r.PerAddressLimit
	if err := saveConfig(ctx.State, cfg); err != nil {
		return err
	}
	ctx.Attr("action", "update_per_address_limit")
	ctx.Attr("sender", ctx.Sender)
	ctx.Attr("per_address_limit", strconv.FormatUint(uint64(r.PerAddressLimit), 10))
	return nil
}
