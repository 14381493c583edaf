package minter

import (
	"time"

	"github.com/Kayanski/launchpad/internal/core/amount"
)

// ContractName and ContractVersion identify this controller for migrations.
const (
	ContractName    = "launchpad-open-edition-minter"
	ContractVersion = "1.0.0"
)

// NftDataType tags the metadata descriptor variant.
type NftDataType int

const (
	// OffChainMetadata points minted items at a base token URI.
	OffChainMetadata NftDataType = iota
	// OnChainMetadata embeds the metadata extension in every minted item.
	OnChainMetadata
)

// Trait is one display attribute of on-chain metadata.
type Trait struct {
	DisplayType string `json:"display_type,omitempty"`
	TraitType   string `json:"trait_type"`
	Value       string `json:"value"`
}

// NftExtension is the inline metadata carried by on-chain items.
type NftExtension struct {
	Image        string  `json:"image,omitempty"`
	ImageData    string  `json:"image_data,omitempty"`
	ExternalURL  string  `json:"external_url,omitempty"`
	Description  string  `json:"description,omitempty"`
	Name         string  `json:"name,omitempty"`
	Attributes   []Trait `json:"attributes,omitempty"`
	AnimationURL string  `json:"animation_url,omitempty"`
	YoutubeURL   string  `json:"youtube_url,omitempty"`
}

// NftData is the tagged metadata descriptor: exactly one of TokenURI
// (off-chain) or Extension (on-chain) is meaningful, selected by Type.
type NftData struct {
	Type      NftDataType   `json:"nft_data_type"`
	TokenURI  string        `json:"token_uri,omitempty"`
	Extension *NftExtension `json:"extension,omitempty"`
}

// Config is the controller's durable configuration. Factory, CollectionCodeID
// and NftData are immutable after instantiation; the window bounds, limit and
// price mutate only through their dedicated admin requests.
type Config struct {
	Factory                string      `json:"factory"`
	CollectionCodeID       uint64      `json:"collection_code_id"`
	Admin                  string      `json:"admin"`
	PaymentAddress         string      `json:"payment_address,omitempty"`
	PerAddressLimit        uint32      `json:"per_address_limit"`
	StartTime              time.Time   `json:"start_time"`
	EndTime                time.Time   `json:"end_time"`
	NftData                NftData     `json:"nft_data"`
	MintPrice              amount.Coin `json:"mint_price"`
	AllowedBurnCollections []string    `json:"allowed_burn_collections,omitempty"`
}

// SellerAddress is where seller proceeds go: the payment address override if
// set, else the admin.
func (c *Config) SellerAddress() string {
	if c.PaymentAddress != "" {
		return c.PaymentAddress
	}
	return c.Admin
}

// IsAllowedBurnCollection reports whether addr is on the burn allow-list.
func (c *Config) IsAllowedBurnCollection(addr string) bool {
	for _, allowed := range c.AllowedBurnCollections {
		if allowed == addr {
			return true
		}
	}
	return false
}

// Status holds the moderation flags. Display-only; never consulted by the
// mint pipeline.
type Status struct {
	Verified bool `json:"is_verified"`
	Blocked  bool `json:"is_blocked"`
	Explicit bool `json:"is_explicit"`
}

// CollectionParams describes the backing collection to instantiate.
type CollectionParams struct {
	CodeID uint64         `json:"code_id"`
	Name   string         `json:"name"`
	Symbol string         `json:"symbol"`
	Info   CollectionInfo `json:"info"`
}

// CollectionInfo is the collection-level metadata forwarded at instantiation.
type CollectionInfo struct {
	Creator          string     `json:"creator"`
	Description      string     `json:"description,omitempty"`
	Image            string     `json:"image,omitempty"`
	ExternalLink     string     `json:"external_link,omitempty"`
	StartTradingTime *time.Time `json:"start_trading_time,omitempty"`
}

// Role distinguishes the ordinary purchase path from the privileged one.
// The privileged path uses the airdrop price and fee rate and skips the
// start-time and per-address checks.
type Role int

const (
	RoleOrdinary Role = iota
	RolePrivileged
)
