package minter

import (
	"time"

	"github.com/Kayanski/launchpad/internal/core/amount"
)

// Message is an outbound instruction produced by a successful request. The
// controller never executes these itself; the host delivers them to the
// collection registry and the payment rail.
type Message interface {
	// MsgType returns the instruction type name
	MsgType() string
}

// InstantiateCollectionMsg asks the registry to instantiate the backing
// collection contract. ReplyToken correlates the eventual acknowledgment.
type InstantiateCollectionMsg struct {
	CodeID     uint64         `json:"code_id"`
	Name       string         `json:"name"`
	Symbol     string         `json:"symbol"`
	Minter     string         `json:"minter"`
	Admin      string         `json:"admin"`
	Info       CollectionInfo `json:"info"`
	Funds      []amount.Coin  `json:"funds,omitempty"`
	ReplyToken string         `json:"reply_token"`
}

func (InstantiateCollectionMsg) MsgType() string { return "instantiate_collection" }

// MintNftMsg instructs the bound collection to create one item. Exactly one
// of Extension or TokenURI is populated, per the metadata descriptor type.
type MintNftMsg struct {
	Collection string        `json:"collection"`
	TokenID    string        `json:"token_id"`
	Owner      string        `json:"owner"`
	TokenURI   string        `json:"token_uri,omitempty"`
	Extension  *NftExtension `json:"extension,omitempty"`
}

func (MintNftMsg) MsgType() string { return "mint_nft" }

// BurnNftMsg consumes a foreign item received through an exchange mint.
type BurnNftMsg struct {
	Collection string `json:"collection"`
	TokenID    string `json:"token_id"`
}

func (BurnNftMsg) MsgType() string { return "burn_nft" }

// SetStartTradingTimeMsg forwards a trading-enablement time to the bound
// collection. Nil resets to the collection default.
type SetStartTradingTimeMsg struct {
	Collection       string     `json:"collection"`
	StartTradingTime *time.Time `json:"start_trading_time,omitempty"`
}

func (SetStartTradingTimeMsg) MsgType() string { return "set_start_trading_time" }

// BankSendMsg pays out a fee-split component. Zero-value sends are suppressed
// at the emit site, never sent as no-op transfers.
type BankSendMsg struct {
	ToAddress string      `json:"to_address"`
	Amount    amount.Coin `json:"amount"`
}

func (BankSendMsg) MsgType() string { return "bank_send" }
