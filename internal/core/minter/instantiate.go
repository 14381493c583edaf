package minter

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Kayanski/launchpad/internal/core/amount"
	"github.com/google/uuid"
)

func init() {
	Register(TypeInstantiate, func() Request { return &InstantiateRequest{} })
}

// TypeInstantiate is the registered type name of the creation request.
const TypeInstantiate = "instantiate"

// InstantiateRequest creates the controller. Only the Parameter Authority may
// send it: the sender is validated by answering the authority params query.
type InstantiateRequest struct {
	CollectionParams CollectionParams `json:"collection_params"`

	NftData         NftData     `json:"nft_data"`
	StartTime       time.Time   `json:"start_time"`
	EndTime         time.Time   `json:"end_time"`
	MintPrice       amount.Coin `json:"mint_price"`
	PerAddressLimit uint32      `json:"per_address_limit"`
	PaymentAddress  string      `json:"payment_address,omitempty"`

	AllowedBurnCollections []string `json:"allowed_burn_collections,omitempty"`
}

func (r *InstantiateRequest) Type() string { return TypeInstantiate }

// Validate performs the stateless preflight.
func (r *InstantiateRequest) Validate() error {
	if r.CollectionParams.Name == "" {
		return fmt.Errorf("collection name is required")
	}
	if r.CollectionParams.Info.Creator == "" {
		return fmt.Errorf("collection creator is required")
	}
	if r.EndTime.Before(r.StartTime) {
		return &InvalidEndTimeError{Time: r.EndTime, Bound: r.StartTime}
	}
	if r.NftData.Type != OffChainMetadata && r.NftData.Type != OnChainMetadata {
		return fmt.Errorf("unknown nft data type %d", r.NftData.Type)
	}
	return nil
}

func (r *InstantiateRequest) Apply(ctx *ApplyContext) error {
	exists, err := ctx.State.Has(keyConfig)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyInstantiated
	}

	// The sender must be the factory. A sender that cannot answer the params
	// query is not a factory.
	params, err := ctx.Params.Params(ctx.Sender)
	if err != nil {
		return &UnauthorizedError{Reason: fmt.Sprintf("sender is not a factory: %v", err)}
	}

	nftData, err := sanitizeNftData(r.NftData)
	if err != nil {
		return err
	}

	// Default the trading-enablement time to start_time plus the authority
	// offset; an explicit value may only come earlier.
	maxTradingTime := r.StartTime.Add(params.MaxTradingOffset)
	info := r.CollectionParams.Info
	if info.StartTradingTime != nil {
		if info.StartTradingTime.After(maxTradingTime) {
			return &InvalidStartTradingTimeError{Got: *info.StartTradingTime, Max: maxTradingTime}
		}
	} else {
		info.StartTradingTime = &maxTradingTime
	}

	cfg := &Config{
		Factory:                ctx.Sender,
		CollectionCodeID:       r.CollectionParams.CodeID,
		Admin:                  r.CollectionParams.Info.Creator,
		PaymentAddress:         r.PaymentAddress,
		PerAddressLimit:        r.PerAddressLimit,
		StartTime:              r.StartTime,
		EndTime:                r.EndTime,
		NftData:                nftData,
		MintPrice:              r.MintPrice,
		AllowedBurnCollections: r.AllowedBurnCollections,
	}

	// Default status is saved first so it can be queried without failing.
	if err := saveStatus(ctx.State, &Status{}); err != nil {
		return err
	}
	if err := saveConfig(ctx.State, cfg); err != nil {
		return err
	}
	if err := saveCounter(ctx.State, keyTotalMintCount, 0); err != nil {
		return err
	}
	if err := saveCounter(ctx.State, keyTokenIndex, 0); err != nil {
		return err
	}
	if err := saveVersion(ctx.State, &versionRecord{Name: ContractName, Version: ContractVersion}); err != nil {
		return err
	}

	replyToken := uuid.NewString()
	if err := saveReplyToken(ctx.State, replyToken); err != nil {
		return err
	}

	ctx.Emit(InstantiateCollectionMsg{
		CodeID:     r.CollectionParams.CodeID,
		Name:       r.CollectionParams.Name,
		Symbol:     r.CollectionParams.Symbol,
		Minter:     ctx.Self,
		Admin:      cfg.Admin,
		Info:       info,
		Funds:      ctx.Funds,
		ReplyToken: replyToken,
	})

	ctx.Attr("action", "instantiate")
	ctx.Attr("contract_name", ContractName)
	ctx.Attr("contract_version", ContractVersion)
	ctx.Attr("sender", ctx.Sender)
	return nil
}

// sanitizeNftData validates the metadata descriptor once, at creation.
func sanitizeNftData(data NftData) (NftData, error) {
	switch data.Type {
	case OffChainMetadata:
		base := strings.TrimSpace(data.TokenURI)
		if base == "" {
			return NftData{}, ErrInvalidBaseTokenURI
		}
		parsed, err := url.Parse(base)
		if err != nil || parsed.Scheme != "ipfs" {
			return NftData{}, ErrInvalidBaseTokenURI
		}
		data.TokenURI = base
		data.Extension = nil
	case OnChainMetadata:
		data.TokenURI = ""
		if data.Extension != nil && data.Extension.Image != "" {
			image := strings.TrimSpace(data.Extension.Image)
			parsed, err := url.Parse(image)
			if err != nil || parsed.Scheme == "" {
				return NftData{}, ErrInvalidImageURL
			}
			ext := *data.Extension
			ext.Image = parsed.String()
			data.Extension = &ext
		}
	}
	return data, nil
}
