package testing

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/Kayanski/launchpad/internal/core/amount"
	"github.com/Kayanski/launchpad/internal/core/minter"
	"github.com/Kayanski/launchpad/internal/storage/keyValueDb"
	"github.com/Kayanski/launchpad/internal/storage/keyValueDb/memory"
)

// Well-known addresses used by the environment. Plain strings; the engine
// treats addresses as opaque identities.
const (
	FactoryAddr    = "factory"
	CreatorAddr    = "creator"
	RegistryAddr   = "registry"
	CollectionAddr = "collection1"
	SelfAddr       = "minter1"
	DevAddr        = "dev"
)

// Denom is the payment denomination used throughout the environment.
const Denom = "ustars"

// TestEnv wires an engine over an in-memory store with a manual clock and a
// mutable set of authority params.
type TestEnv struct {
	t      *testing.T
	Clock  *ManualClock
	Store  *keyValueDb.Store
	Engine *minter.Engine

	// Params is returned by the authority query for FactoryAddr. Tests may
	// mutate it between requests; the engine never caches it.
	Params minter.MinterParams

	// ReplyToken is captured from the creation response once Instantiate runs.
	ReplyToken string
}

// DefaultParams returns the authority params the environment starts with:
// a 10% mint fee, free fee-less airdrops, and a price floor of 50.
func DefaultParams() minter.MinterParams {
	return minter.MinterParams{
		MintFeeBps:         1000,
		AirdropMintFeeBps:  0,
		AirdropMintPrice:   amount.NewCoin(0, Denom),
		MinMintPrice:       amount.NewCoin(50, Denom),
		MaxTradingOffset:   14 * 24 * time.Hour,
		MaxPerAddressLimit: 50,
		DevFeeAddress:      DevAddr,
	}
}

// NewTestEnv creates a fresh environment. The clock starts at the manual
// clock default; no controller exists until Instantiate is called.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	store, err := keyValueDb.NewStore(memory.NewDB(), keyValueDb.DefaultStoreOptions())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	env := &TestEnv{
		t:      t,
		Clock:  NewManualClock(),
		Store:  store,
		Params: DefaultParams(),
	}
	provider := minter.ParamsProviderFunc(func(factory string) (minter.MinterParams, error) {
		if factory != FactoryAddr {
			return minter.MinterParams{}, fmt.Errorf("no params for %s", factory)
		}
		return env.Params, nil
	})
	env.Engine = minter.NewEngine(store, provider, minter.EngineOptions{
		Clock: env.Clock,
		Self:  SelfAddr,
	})
	return env
}

// DefaultInstantiate returns a creation request for a sale opening one hour
// from the current clock reading and closing a day after that, priced at
// 100ustars with a per-address limit of 10.
func (env *TestEnv) DefaultInstantiate() *minter.InstantiateRequest {
	start := env.Clock.Now().Add(time.Hour)
	return &minter.InstantiateRequest{
		CollectionParams: minter.CollectionParams{
			CodeID: 42,
			Name:   "Open Edition",
			Symbol: "OPEN",
			Info: minter.CollectionInfo{
				Creator: CreatorAddr,
			},
		},
		NftData: minter.NftData{
			Type:     minter.OffChainMetadata,
			TokenURI: "ipfs://QmBase",
		},
		StartTime:       start,
		EndTime:         start.Add(24 * time.Hour),
		MintPrice:       amount.NewCoin(100, Denom),
		PerAddressLimit: 10,
	}
}

// Execute submits a request on behalf of sender.
func (env *TestEnv) Execute(sender string, funds []amount.Coin, req minter.Request) (*minter.Response, error) {
	env.t.Helper()
	return env.Engine.Execute(context.Background(), sender, funds, req)
}

// MustExecute submits a request and fails the test on error.
func (env *TestEnv) MustExecute(sender string, funds []amount.Coin, req minter.Request) *minter.Response {
	env.t.Helper()
	resp, err := env.Execute(sender, funds, req)
	if err != nil {
		env.t.Fatalf("Request %s failed: %v", req.Type(), err)
	}
	return resp
}

// Instantiate creates the controller from FactoryAddr and captures the reply
// token off the emitted collection instruction.
func (env *TestEnv) Instantiate(req *minter.InstantiateRequest) *minter.Response {
	env.t.Helper()
	resp := env.MustExecute(FactoryAddr, nil, req)
	for _, msg := range resp.Messages {
		if inst, ok := msg.(minter.InstantiateCollectionMsg); ok {
			env.ReplyToken = inst.ReplyToken
		}
	}
	if env.ReplyToken == "" {
		env.t.Fatal("Instantiate emitted no collection instruction")
	}
	return resp
}

// BindCollection delivers the registry acknowledgment for the given address.
func (env *TestEnv) BindCollection(addr string) {
	env.t.Helper()
	payload, _ := json.Marshal(map[string]string{"contract_address": addr})
	env.MustExecute(RegistryAddr, nil, &minter.InstantiateReplyRequest{
		ReplyToken: env.ReplyToken,
		Payload:    payload,
	})
}

// Setup instantiates with defaults, binds CollectionAddr, and advances the
// clock to the opening of the sale window.
func (env *TestEnv) Setup() {
	env.t.Helper()
	req := env.DefaultInstantiate()
	env.Instantiate(req)
	env.BindCollection(CollectionAddr)
	env.Clock.Set(req.StartTime)
}

// Coins builds a single-coin funds slice.
func Coins(value uint64, denom string) []amount.Coin {
	return []amount.Coin{amount.NewCoin(value, denom)}
}

// Snapshot captures every durable key/value pair, for asserting that a failed
// request left state untouched.
func (env *TestEnv) Snapshot() map[string]string {
	env.t.Helper()
	it, err := env.Store.Iterator(context.Background(), nil, nil)
	if err != nil {
		env.t.Fatalf("Failed to open iterator: %v", err)
	}
	defer it.Close()

	snap := make(map[string]string)
	for it.Next() {
		snap[string(it.Key())] = string(it.Value())
	}
	if err := it.Error(); err != nil {
		env.t.Fatalf("Iterator failed: %v", err)
	}
	return snap
}
