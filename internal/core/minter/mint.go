package minter

import (
	"strconv"

	"github.com/Kayanski/launchpad/internal/core/amount"
)

func init() {
	Register(TypeMint, func() Request { return &MintRequest{} })
	Register(TypeMintTo, func() Request { return &MintToRequest{} })
	Register(TypeReceiveNft, func() Request { return &ReceiveNftRequest{} })
}

const (
	TypeMint       = "mint"
	TypeMintTo     = "mint_to"
	TypeReceiveNft = "receive_nft"
)

// MintRequest is the public purchase path: the sender pays the configured
// price and receives the next item.
type MintRequest struct{}

func (r *MintRequest) Type() string    { return TypeMint }
func (r *MintRequest) Validate() error { return nil }

func (r *MintRequest) Apply(ctx *ApplyContext) error {
	cfg, err := loadConfig(ctx.State)
	if err != nil {
		return err
	}
	if err := checkWindow(ctx.Now, cfg, RoleOrdinary); err != nil {
		return err
	}
	count, err := loadMintCount(ctx.State, ctx.Sender)
	if err != nil {
		return err
	}
	if err := checkCap(count, cfg.PerAddressLimit); err != nil {
		return err
	}
	return executeMint(ctx, cfg, mintPlan{
		action:    "mint",
		role:      RoleOrdinary,
		recipient: ctx.Sender,
	})
}

// MintToRequest is the privileged giveaway path: the admin mints to an
// arbitrary recipient, bypassing the start time and the per-address cap.
type MintToRequest struct {
	Recipient string `json:"recipient"`
}

func (r *MintToRequest) Type() string { return TypeMintTo }

func (r *MintToRequest) Validate() error {
	if r.Recipient == "" {
		return &UnauthorizedError{Reason: "mint_to requires a recipient"}
	}
	return nil
}

func (r *MintToRequest) Apply(ctx *ApplyContext) error {
	cfg, err := loadConfig(ctx.State)
	if err != nil {
		return err
	}
	if ctx.Sender != cfg.Admin {
		return &UnauthorizedError{Reason: "sender is not the minter admin"}
	}
	if err := checkWindow(ctx.Now, cfg, RolePrivileged); err != nil {
		return err
	}
	return executeMint(ctx, cfg, mintPlan{
		action:    "mint_to",
		role:      RolePrivileged,
		recipient: r.Recipient,
	})
}

// ReceiveNftRequest is the exchange path: an allow-listed collection forwards
// an item it received from its owner, the item is burned and the owner is
// minted a fresh one with no payment and no fee.
type ReceiveNftRequest struct {
	// Sender is the original owner of the forwarded item, reported by the
	// forwarding collection. The request sender is the collection itself.
	Sender  string `json:"sender"`
	TokenID string `json:"token_id"`
}

func (r *ReceiveNftRequest) Type() string { return TypeReceiveNft }

func (r *ReceiveNftRequest) Validate() error {
	if r.Sender == "" || r.TokenID == "" {
		return &UnallowedBurnCollectionError{Collection: ""}
	}
	return nil
}

func (r *ReceiveNftRequest) Apply(ctx *ApplyContext) error {
	cfg, err := loadConfig(ctx.State)
	if err != nil {
		return err
	}
	if !cfg.IsAllowedBurnCollection(ctx.Sender) {
		return &UnallowedBurnCollectionError{Collection: ctx.Sender}
	}
	if err := checkWindow(ctx.Now, cfg, RoleOrdinary); err != nil {
		return err
	}
	count, err := loadMintCount(ctx.State, r.Sender)
	if err != nil {
		return err
	}
	if err := checkCap(count, cfg.PerAddressLimit); err != nil {
		return err
	}
	if err := executeMint(ctx, cfg, mintPlan{
		action:    "burn_and_mint",
		role:      RoleOrdinary,
		recipient: r.Sender,
		exchange:  true,
	}); err != nil {
		return err
	}
	ctx.Emit(BurnNftMsg{Collection: ctx.Sender, TokenID: r.TokenID})
	ctx.Attr("burned_collection", ctx.Sender)
	ctx.Attr("burned_token_id", r.TokenID)
	return nil
}

// mintPlan parameterizes the shared pipeline across the three entry points.
type mintPlan struct {
	action    string
	role      Role
	recipient string

	// exchange marks a burn-funded purchase: no payment is collected and the
	// whole fee split collapses to zero.
	exchange bool
}

// executeMint runs the common tail of every mint: resolve price, settle
// payment, split fees, allocate the identifier, emit the collection
// instruction, bump the counters, and pay out. Eligibility gates specific to
// the entry point have already run.
func executeMint(ctx *ApplyContext, cfg *Config, plan mintPlan) error {
	collection, err := loadCollectionAddress(ctx.State)
	if err != nil {
		return err
	}
	if collection == "" {
		return ErrCollectionNotReady
	}

	// Authority params are re-read on every request, never cached.
	params, err := ctx.Params.Params(cfg.Factory)
	if err != nil {
		return err
	}

	price, err := mintPrice(cfg, params, plan.role)
	if err != nil {
		return err
	}

	networkFee := amount.NewCoin(0, price.Denom)
	sellerAmount := amount.NewCoin(0, price.Denom)
	if plan.exchange {
		if err := nonpayable(ctx); err != nil {
			return err
		}
	} else {
		paid, err := mayPay(ctx, price.Denom)
		if err != nil {
			return err
		}
		if err := checkPayment(paid, price); err != nil {
			return err
		}
		networkFee, sellerAmount, err = feeSplit(price, feeRate(params, plan.role))
		if err != nil {
			return err
		}
	}

	tokenID, err := nextTokenIndex(ctx.State)
	if err != nil {
		return err
	}

	msg := MintNftMsg{
		Collection: collection,
		TokenID:    strconv.FormatUint(tokenID, 10),
		Owner:      plan.recipient,
	}
	switch cfg.NftData.Type {
	case OffChainMetadata:
		msg.TokenURI = cfg.NftData.TokenURI
	case OnChainMetadata:
		msg.Extension = cfg.NftData.Extension
	}
	ctx.Emit(msg)

	count, err := loadMintCount(ctx.State, plan.recipient)
	if err != nil {
		return err
	}
	if err := saveMintCount(ctx.State, plan.recipient, count+1); err != nil {
		return err
	}
	if err := bumpTotalMintCount(ctx.State); err != nil {
		return err
	}

	// Zero-value transfers are suppressed rather than sent as no-ops.
	if !networkFee.IsZero() {
		ctx.Emit(BankSendMsg{ToAddress: params.DevFeeAddress, Amount: networkFee})
	}
	if !sellerAmount.IsZero() {
		ctx.Emit(BankSendMsg{ToAddress: cfg.SellerAddress(), Amount: sellerAmount})
	}

	ctx.Attr("action", plan.action)
	ctx.Attr("sender", ctx.Sender)
	ctx.Attr("recipient", plan.recipient)
	ctx.Attr("token_id", msg.TokenID)
	ctx.Attr("mint_price", price.String())
	ctx.Attr("network_fee", networkFee.String())
	ctx.Attr("seller_amount", sellerAmount.String())

	ctx.recordMint(&mintRecord{
		TokenID:      tokenID,
		Action:       plan.action,
		Sender:       ctx.Sender,
		Recipient:    plan.recipient,
		Price:        price,
		NetworkFee:   networkFee.Amount,
		SellerAmount: sellerAmount.Amount,
	})
	return nil
}

// mintRecord is the host-facing summary of one completed mint, consumed by
// the history store.
type mintRecord struct {
	TokenID      uint64
	Action       string
	Sender       string
	Recipient    string
	Price        amount.Coin
	NetworkFee   uint64
	SellerAmount uint64
}

func (ctx *ApplyContext) recordMint(rec *mintRecord) {
	ctx.mint = rec
}
