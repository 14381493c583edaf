package minter

import (
	"encoding/json"
	"strings"
)

func init() {
	Register(TypeInstantiateReply, func() Request { return &InstantiateReplyRequest{} })
}

// TypeInstantiateReply is the registered type name of the handshake
// acknowledgment from the collection registry.
const TypeInstantiateReply = "instantiate_reply"

// InstantiateReplyRequest closes the collection-creation handshake. The
// registry echoes the token issued at instantiation together with its raw
// creation result.
type InstantiateReplyRequest struct {
	ReplyToken string          `json:"reply_token"`
	Payload    json.RawMessage `json:"payload"`
}

type instantiateResult struct {
	ContractAddress string `json:"contract_address"`
}

func (r *InstantiateReplyRequest) Type() string { return TypeInstantiateReply }

func (r *InstantiateReplyRequest) Validate() error {
	if r.ReplyToken == "" {
		return ErrInvalidReplyToken
	}
	return nil
}

func (r *InstantiateReplyRequest) Apply(ctx *ApplyContext) error {
	if err := nonpayable(ctx); err != nil {
		return err
	}
	if _, err := loadConfig(ctx.State); err != nil {
		return err
	}

	issued, err := loadReplyToken(ctx.State)
	if err != nil {
		return err
	}
	if issued == "" || issued != r.ReplyToken {
		return ErrInvalidReplyToken
	}

	var result instantiateResult
	if err := json.Unmarshal(r.Payload, &result); err != nil {
		return ErrCollectionInstantiateFailed
	}
	address := strings.TrimSpace(result.ContractAddress)
	if address == "" {
		return ErrCollectionInstantiateFailed
	}

	// First write wins. A duplicate delivery of the same address is a no-op;
	// a conflicting one is rejected without touching the binding.
	bound, err := loadCollectionAddress(ctx.State)
	if err != nil {
		return err
	}
	if bound != "" && bound != address {
		return ErrCollectionAlreadyBound
	}
	if bound == "" {
		if err := saveCollectionAddress(ctx.State, address); err != nil {
			return err
		}
	}

	ctx.Attr("action", "instantiate_reply")
	ctx.Attr("collection_address", address)
	return nil
}
