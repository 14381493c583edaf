package minter_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kayanski/launchpad/internal/core/amount"
	"github.com/Kayanski/launchpad/internal/core/minter"
	harness "github.com/Kayanski/launchpad/internal/testing"
)

func TestInstantiateAndHandshake(t *testing.T) {
	env := harness.NewTestEnv(t)
	env.Instantiate(env.DefaultInstantiate())

	// The collection address is unbound until the registry acknowledges.
	_, err := env.Engine.QueryConfig(context.Background())
	require.ErrorIs(t, err, minter.ErrCollectionNotReady)

	env.BindCollection(harness.CollectionAddr)

	cfg, err := env.Engine.QueryConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, harness.CollectionAddr, cfg.CollectionAddress)
	assert.Equal(t, harness.CreatorAddr, cfg.Admin)
	assert.Equal(t, harness.FactoryAddr, cfg.Factory)
	assert.Equal(t, amount.NewCoin(100, harness.Denom), cfg.MintPrice)
}

func TestInstantiateRejectsNonFactory(t *testing.T) {
	env := harness.NewTestEnv(t)
	_, err := env.Execute(harness.CreatorAddr, nil, env.DefaultInstantiate())
	require.Error(t, err)

	var unauthorized *minter.UnauthorizedError
	require.ErrorAs(t, err, &unauthorized)
	assert.Equal(t, minter.CategoryAuthorization, minter.CategoryOf(err))
}

func TestInstantiateRejectsSecondCreation(t *testing.T) {
	env := harness.NewTestEnv(t)
	env.Instantiate(env.DefaultInstantiate())

	_, err := env.Execute(harness.FactoryAddr, nil, env.DefaultInstantiate())
	require.ErrorIs(t, err, minter.ErrAlreadyInstantiated)
}

func TestInstantiateValidatesNftData(t *testing.T) {
	env := harness.NewTestEnv(t)

	req := env.DefaultInstantiate()
	req.NftData.TokenURI = "https://example.com/base"
	_, err := env.Execute(harness.FactoryAddr, nil, req)
	require.ErrorIs(t, err, minter.ErrInvalidBaseTokenURI)

	req = env.DefaultInstantiate()
	req.NftData = minter.NftData{
		Type:      minter.OnChainMetadata,
		Extension: &minter.NftExtension{Image: "://not-a-url"},
	}
	_, err = env.Execute(harness.FactoryAddr, nil, req)
	require.ErrorIs(t, err, minter.ErrInvalidImageURL)
}

func TestInstantiateTradingTimeDefaultsAndCeiling(t *testing.T) {
	env := harness.NewTestEnv(t)

	// An explicit trading time past the offset ceiling is rejected.
	req := env.DefaultInstantiate()
	tooLate := req.StartTime.Add(env.Params.MaxTradingOffset + time.Hour)
	req.CollectionParams.Info.StartTradingTime = &tooLate
	_, err := env.Execute(harness.FactoryAddr, nil, req)
	var tradingErr *minter.InvalidStartTradingTimeError
	require.ErrorAs(t, err, &tradingErr)

	// Absent, it defaults to exactly the ceiling.
	req = env.DefaultInstantiate()
	resp := env.Instantiate(req)
	var inst minter.InstantiateCollectionMsg
	found := false
	for _, msg := range resp.Messages {
		if m, ok := msg.(minter.InstantiateCollectionMsg); ok {
			inst = m
			found = true
		}
	}
	require.True(t, found)
	require.NotNil(t, inst.Info.StartTradingTime)
	assert.True(t, inst.Info.StartTradingTime.Equal(req.StartTime.Add(env.Params.MaxTradingOffset)))
}

func TestReplyTokenMismatch(t *testing.T) {
	env := harness.NewTestEnv(t)
	env.Instantiate(env.DefaultInstantiate())

	payload, _ := json.Marshal(map[string]string{"contract_address": harness.CollectionAddr})
	_, err := env.Execute(harness.RegistryAddr, nil, &minter.InstantiateReplyRequest{
		ReplyToken: "bogus",
		Payload:    payload,
	})
	require.ErrorIs(t, err, minter.ErrInvalidReplyToken)
}

func TestReplyBindingFirstWins(t *testing.T) {
	env := harness.NewTestEnv(t)
	env.Instantiate(env.DefaultInstantiate())
	env.BindCollection(harness.CollectionAddr)

	// Redelivery of the same address is a no-op.
	env.BindCollection(harness.CollectionAddr)

	// A conflicting address is rejected and the binding survives.
	payload, _ := json.Marshal(map[string]string{"contract_address": "collection2"})
	_, err := env.Execute(harness.RegistryAddr, nil, &minter.InstantiateReplyRequest{
		ReplyToken: env.ReplyToken,
		Payload:    payload,
	})
	require.ErrorIs(t, err, minter.ErrCollectionAlreadyBound)

	cfg, err := env.Engine.QueryConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, harness.CollectionAddr, cfg.CollectionAddress)
}

func TestReplyUnparseablePayload(t *testing.T) {
	env := harness.NewTestEnv(t)
	env.Instantiate(env.DefaultInstantiate())

	_, err := env.Execute(harness.RegistryAddr, nil, &minter.InstantiateReplyRequest{
		ReplyToken: env.ReplyToken,
		Payload:    json.RawMessage(`{"contract_address": ""}`),
	})
	require.ErrorIs(t, err, minter.ErrCollectionInstantiateFailed)
}

func TestMintHappyPath(t *testing.T) {
	env := harness.NewTestEnv(t)
	env.Setup()

	resp := env.MustExecute("alice", harness.Coins(100, harness.Denom), &minter.MintRequest{})

	// 10% of 100 goes to the network, the rest to the seller (the admin,
	// since no payment address override is set).
	var mints []minter.MintNftMsg
	var sends []minter.BankSendMsg
	for _, msg := range resp.Messages {
		switch m := msg.(type) {
		case minter.MintNftMsg:
			mints = append(mints, m)
		case minter.BankSendMsg:
			sends = append(sends, m)
		}
	}
	require.Len(t, mints, 1)
	assert.Equal(t, "1", mints[0].TokenID)
	assert.Equal(t, "alice", mints[0].Owner)
	assert.Equal(t, harness.CollectionAddr, mints[0].Collection)
	assert.Equal(t, "ipfs://QmBase", mints[0].TokenURI)

	require.Len(t, sends, 2)
	assert.Equal(t, harness.DevAddr, sends[0].ToAddress)
	assert.Equal(t, amount.NewCoin(10, harness.Denom), sends[0].Amount)
	assert.Equal(t, harness.CreatorAddr, sends[1].ToAddress)
	assert.Equal(t, amount.NewCoin(90, harness.Denom), sends[1].Amount)

	total, err := env.Engine.QueryTotalMintCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)

	count, err := env.Engine.QueryMintCount(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, uint32(1), count.Count)

	// Identifiers are dense: the next mint gets 2.
	resp = env.MustExecute("bob", harness.Coins(100, harness.Denom), &minter.MintRequest{})
	for _, msg := range resp.Messages {
		if m, ok := msg.(minter.MintNftMsg); ok {
			assert.Equal(t, "2", m.TokenID)
		}
	}
}

func TestMintPaysSellerOverride(t *testing.T) {
	env := harness.NewTestEnv(t)
	req := env.DefaultInstantiate()
	req.PaymentAddress = "treasury"
	env.Instantiate(req)
	env.BindCollection(harness.CollectionAddr)
	env.Clock.Set(req.StartTime)

	resp := env.MustExecute("alice", harness.Coins(100, harness.Denom), &minter.MintRequest{})
	for _, msg := range resp.Messages {
		if send, ok := msg.(minter.BankSendMsg); ok && send.ToAddress != harness.DevAddr {
			assert.Equal(t, "treasury", send.ToAddress)
		}
	}
}

func TestMintFeeSplitTruncates(t *testing.T) {
	env := harness.NewTestEnv(t)
	req := env.DefaultInstantiate()
	req.MintPrice = amount.NewCoin(999, harness.Denom)
	env.Instantiate(req)
	env.BindCollection(harness.CollectionAddr)
	env.Clock.Set(req.StartTime)

	// 10% of 999 truncates to 99; the seller gets the residual 900, so the
	// two parts always recompose the exact price.
	resp := env.MustExecute("alice", harness.Coins(999, harness.Denom), &minter.MintRequest{})
	var sends []minter.BankSendMsg
	for _, msg := range resp.Messages {
		if send, ok := msg.(minter.BankSendMsg); ok {
			sends = append(sends, send)
		}
	}
	require.Len(t, sends, 2)
	assert.Equal(t, uint64(99), sends[0].Amount.Amount)
	assert.Equal(t, uint64(900), sends[1].Amount.Amount)
}

func TestMintWindowBoundaries(t *testing.T) {
	env := harness.NewTestEnv(t)
	req := env.DefaultInstantiate()
	env.Instantiate(req)
	env.BindCollection(harness.CollectionAddr)

	// One instant before the opening.
	env.Clock.Set(req.StartTime.Add(-time.Nanosecond))
	_, err := env.Execute("alice", harness.Coins(100, harness.Denom), &minter.MintRequest{})
	require.ErrorIs(t, err, minter.ErrBeforeMintStartTime)

	// The opening instant itself is inside the window.
	env.Clock.Set(req.StartTime)
	env.MustExecute("alice", harness.Coins(100, harness.Denom), &minter.MintRequest{})

	// One instant before the close is still inside.
	env.Clock.Set(req.EndTime.Add(-time.Nanosecond))
	env.MustExecute("bob", harness.Coins(100, harness.Denom), &minter.MintRequest{})

	// The close instant is already outside.
	env.Clock.Set(req.EndTime)
	_, err = env.Execute("carol", harness.Coins(100, harness.Denom), &minter.MintRequest{})
	require.ErrorIs(t, err, minter.ErrAfterMintEndTime)
}

func TestMintRequiresExactPayment(t *testing.T) {
	env := harness.NewTestEnv(t)
	env.Setup()

	cases := []struct {
		name  string
		funds []amount.Coin
	}{
		{"no funds", nil},
		{"underpayment", harness.Coins(99, harness.Denom)},
		{"overpayment", harness.Coins(101, harness.Denom)},
		{"wrong denom", harness.Coins(100, "uatom")},
		{"two coins", []amount.Coin{amount.NewCoin(50, harness.Denom), amount.NewCoin(50, harness.Denom)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.Execute("alice", tc.funds, &minter.MintRequest{})
			require.Error(t, err)
			var payment *minter.IncorrectPaymentError
			require.ErrorAs(t, err, &payment)
			assert.Equal(t, minter.CategoryMonetary, minter.CategoryOf(err))
		})
	}
}

func TestPerAddressLimit(t *testing.T) {
	env := harness.NewTestEnv(t)
	req := env.DefaultInstantiate()
	req.PerAddressLimit = 1
	env.Instantiate(req)
	env.BindCollection(harness.CollectionAddr)
	env.Clock.Set(req.StartTime)

	env.MustExecute("alice", harness.Coins(100, harness.Denom), &minter.MintRequest{})
	_, err := env.Execute("alice", harness.Coins(100, harness.Denom), &minter.MintRequest{})
	require.ErrorIs(t, err, minter.ErrMaxPerAddressLimitExceeded)

	// Other addresses are unaffected.
	env.MustExecute("bob", harness.Coins(100, harness.Denom), &minter.MintRequest{})
}

func TestFailedRequestLeavesStateUntouched(t *testing.T) {
	env := harness.NewTestEnv(t)
	env.Setup()
	env.MustExecute("alice", harness.Coins(100, harness.Denom), &minter.MintRequest{})

	before := env.Snapshot()

	_, err := env.Execute("bob", harness.Coins(1, harness.Denom), &minter.MintRequest{})
	require.Error(t, err)
	assert.Equal(t, before, env.Snapshot())

	// The failed attempt consumed no identifier.
	resp := env.MustExecute("bob", harness.Coins(100, harness.Denom), &minter.MintRequest{})
	for _, msg := range resp.Messages {
		if m, ok := msg.(minter.MintNftMsg); ok {
			assert.Equal(t, "2", m.TokenID)
		}
	}
}

func TestMintToBypassesStartAndCap(t *testing.T) {
	env := harness.NewTestEnv(t)
	req := env.DefaultInstantiate()
	req.PerAddressLimit = 1
	env.Instantiate(req)
	env.BindCollection(harness.CollectionAddr)

	// Before the window opens the admin can already give away items.
	resp := env.MustExecute(harness.CreatorAddr, nil, &minter.MintToRequest{Recipient: "alice"})
	var sends int
	for _, msg := range resp.Messages {
		if _, ok := msg.(minter.BankSendMsg); ok {
			sends++
		}
	}
	// The airdrop price is zero, so no transfer is emitted at all.
	assert.Zero(t, sends)

	// The recipient's count still increments, and the cap does not bind the
	// privileged path.
	env.MustExecute(harness.CreatorAddr, nil, &minter.MintToRequest{Recipient: "alice"})
	count, err := env.Engine.QueryMintCount(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, uint32(2), count.Count)

	// But the end of the sale still binds.
	env.Clock.Set(req.EndTime)
	_, err = env.Execute(harness.CreatorAddr, nil, &minter.MintToRequest{Recipient: "alice"})
	require.ErrorIs(t, err, minter.ErrAfterMintEndTime)
}

func TestMintToRequiresAdmin(t *testing.T) {
	env := harness.NewTestEnv(t)
	env.Setup()

	_, err := env.Execute("mallory", nil, &minter.MintToRequest{Recipient: "mallory"})
	var unauthorized *minter.UnauthorizedError
	require.ErrorAs(t, err, &unauthorized)
}

func TestMintToChargesAirdropPrice(t *testing.T) {
	env := harness.NewTestEnv(t)
	env.Params.AirdropMintPrice = amount.NewCoin(20, harness.Denom)
	env.Params.AirdropMintFeeBps = 10000
	env.Setup()

	// The whole airdrop price is the network fee; the seller gets nothing.
	resp := env.MustExecute(harness.CreatorAddr, harness.Coins(20, harness.Denom), &minter.MintToRequest{Recipient: "alice"})
	var sends []minter.BankSendMsg
	for _, msg := range resp.Messages {
		if send, ok := msg.(minter.BankSendMsg); ok {
			sends = append(sends, send)
		}
	}
	require.Len(t, sends, 1)
	assert.Equal(t, harness.DevAddr, sends[0].ToAddress)
	assert.Equal(t, amount.NewCoin(20, harness.Denom), sends[0].Amount)
}

func TestBurnAndMint(t *testing.T) {
	env := harness.NewTestEnv(t)
	req := env.DefaultInstantiate()
	req.AllowedBurnCollections = []string{"oldcollection"}
	env.Instantiate(req)
	env.BindCollection(harness.CollectionAddr)
	env.Clock.Set(req.StartTime)

	resp := env.MustExecute("oldcollection", nil, &minter.ReceiveNftRequest{
		Sender:  "alice",
		TokenID: "7",
	})

	var mint minter.MintNftMsg
	var burn minter.BurnNftMsg
	var sends int
	for _, msg := range resp.Messages {
		switch m := msg.(type) {
		case minter.MintNftMsg:
			mint = m
		case minter.BurnNftMsg:
			burn = m
		case minter.BankSendMsg:
			sends++
		}
	}
	assert.Equal(t, "alice", mint.Owner)
	assert.Equal(t, "1", mint.TokenID)
	assert.Equal(t, "oldcollection", burn.Collection)
	assert.Equal(t, "7", burn.TokenID)

	// An exchange purchase moves no money at all.
	assert.Zero(t, sends)

	count, err := env.Engine.QueryMintCount(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, uint32(1), count.Count)
}

func TestBurnAndMintRejectsUnknownCollection(t *testing.T) {
	env := harness.NewTestEnv(t)
	env.Setup()
	before := env.Snapshot()

	_, err := env.Execute("strangercollection", nil, &minter.ReceiveNftRequest{
		Sender:  "alice",
		TokenID: "7",
	})
	var burnErr *minter.UnallowedBurnCollectionError
	require.ErrorAs(t, err, &burnErr)
	assert.Equal(t, "strangercollection", burnErr.Collection)
	assert.Equal(t, before, env.Snapshot())
}

func TestUpdateMintPrice(t *testing.T) {
	env := harness.NewTestEnv(t)
	req := env.DefaultInstantiate()
	env.Instantiate(req)
	env.BindCollection(harness.CollectionAddr)

	// Before the sale starts the price may rise.
	env.MustExecute(harness.CreatorAddr, nil, &minter.UpdateMintPriceRequest{Price: 200})

	// But never below the authority floor.
	_, err := env.Execute(harness.CreatorAddr, nil, &minter.UpdateMintPriceRequest{Price: 10})
	var tooLow *minter.InsufficientMintPriceError
	require.ErrorAs(t, err, &tooLow)

	// Once started, only decreases are allowed.
	env.Clock.Set(req.StartTime)
	_, err = env.Execute(harness.CreatorAddr, nil, &minter.UpdateMintPriceRequest{Price: 200})
	var tooHigh *minter.MintPriceTooHighError
	require.ErrorAs(t, err, &tooHigh)

	env.MustExecute(harness.CreatorAddr, nil, &minter.UpdateMintPriceRequest{Price: 150})
	env.MustExecute("alice", harness.Coins(150, harness.Denom), &minter.MintRequest{})

	// After the close nothing may change.
	env.Clock.Set(req.EndTime)
	_, err = env.Execute(harness.CreatorAddr, nil, &minter.UpdateMintPriceRequest{Price: 100})
	require.ErrorIs(t, err, minter.ErrAfterMintEndTime)
}

func TestUpdateStartTime(t *testing.T) {
	env := harness.NewTestEnv(t)
	req := env.DefaultInstantiate()
	env.Instantiate(req)
	env.BindCollection(harness.CollectionAddr)

	// Moving the opening into the past is rejected.
	past := env.Clock.Now().Add(-time.Hour)
	_, err := env.Execute(harness.CreatorAddr, nil, &minter.UpdateStartTimeRequest{StartTime: past})
	var invalid *minter.InvalidStartTimeError
	require.ErrorAs(t, err, &invalid)

	// As is moving it past the close.
	_, err = env.Execute(harness.CreatorAddr, nil, &minter.UpdateStartTimeRequest{StartTime: req.EndTime.Add(time.Hour)})
	require.ErrorAs(t, err, &invalid)

	// A later opening inside the window is fine.
	newStart := req.StartTime.Add(time.Hour)
	env.MustExecute(harness.CreatorAddr, nil, &minter.UpdateStartTimeRequest{StartTime: newStart})

	start, err := env.Engine.QueryStartTime(context.Background())
	require.NoError(t, err)
	assert.True(t, start.Equal(newStart))

	// Once the sale is live the opening is frozen.
	env.Clock.Set(newStart)
	_, err = env.Execute(harness.CreatorAddr, nil, &minter.UpdateStartTimeRequest{StartTime: newStart.Add(time.Hour)})
	require.ErrorIs(t, err, minter.ErrAlreadyStarted)
}

func TestUpdateEndTime(t *testing.T) {
	env := harness.NewTestEnv(t)
	req := env.DefaultInstantiate()
	env.Instantiate(req)
	env.BindCollection(harness.CollectionAddr)

	// The close cannot move before the opening.
	_, err := env.Execute(harness.CreatorAddr, nil, &minter.UpdateEndTimeRequest{EndTime: req.StartTime.Add(-time.Minute)})
	var invalid *minter.InvalidEndTimeError
	require.ErrorAs(t, err, &invalid)

	newEnd := req.EndTime.Add(time.Hour)
	env.MustExecute(harness.CreatorAddr, nil, &minter.UpdateEndTimeRequest{EndTime: newEnd})

	end, err := env.Engine.QueryEndTime(context.Background())
	require.NoError(t, err)
	assert.True(t, end.Equal(newEnd))

	// After the close the window is frozen.
	env.Clock.Set(newEnd)
	_, err = env.Execute(harness.CreatorAddr, nil, &minter.UpdateEndTimeRequest{EndTime: newEnd.Add(time.Hour)})
	require.ErrorIs(t, err, minter.ErrAlreadyEnded)
}

func TestUpdatePerAddressLimit(t *testing.T) {
	env := harness.NewTestEnv(t)
	env.Setup()

	for _, bad := range []uint32{0, env.Params.MaxPerAddressLimit + 1} {
		_, err := env.Execute(harness.CreatorAddr, nil, &minter.UpdatePerAddressLimitRequest{PerAddressLimit: bad})
		var invalid *minter.InvalidPerAddressLimitError
		require.ErrorAs(t, err, &invalid)
	}

	env.MustExecute(harness.CreatorAddr, nil, &minter.UpdatePerAddressLimitRequest{PerAddressLimit: 2})
	cfg, err := env.Engine.QueryConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint32(2), cfg.PerAddressLimit)
}

func TestUpdateStartTradingTime(t *testing.T) {
	env := harness.NewTestEnv(t)
	req := env.DefaultInstantiate()
	env.Instantiate(req)
	env.BindCollection(harness.CollectionAddr)

	// Beyond the ceiling is rejected.
	tooLate := req.StartTime.Add(env.Params.MaxTradingOffset + time.Hour)
	_, err := env.Execute(harness.CreatorAddr, nil, &minter.UpdateStartTradingTimeRequest{StartTradingTime: &tooLate})
	var invalid *minter.InvalidStartTradingTimeError
	require.ErrorAs(t, err, &invalid)

	// A valid time is forwarded to the collection, not stored locally.
	target := req.StartTime.Add(time.Hour)
	resp := env.MustExecute(harness.CreatorAddr, nil, &minter.UpdateStartTradingTimeRequest{StartTradingTime: &target})
	found := false
	for _, msg := range resp.Messages {
		if m, ok := msg.(minter.SetStartTradingTimeMsg); ok {
			found = true
			assert.Equal(t, harness.CollectionAddr, m.Collection)
			require.NotNil(t, m.StartTradingTime)
			assert.True(t, m.StartTradingTime.Equal(target))
		}
	}
	require.True(t, found)
}

func TestUpdatesRequireAdmin(t *testing.T) {
	env := harness.NewTestEnv(t)
	env.Setup()

	requests := []minter.Request{
		&minter.UpdateMintPriceRequest{Price: 80},
		&minter.UpdateStartTimeRequest{StartTime: env.Clock.Now().Add(time.Hour)},
		&minter.UpdateEndTimeRequest{EndTime: env.Clock.Now().Add(48 * time.Hour)},
		&minter.UpdatePerAddressLimitRequest{PerAddressLimit: 5},
		&minter.UpdateStartTradingTimeRequest{},
	}
	for _, req := range requests {
		_, err := env.Execute("mallory", nil, req)
		var unauthorized *minter.UnauthorizedError
		require.ErrorAs(t, err, &unauthorized, "request %s", req.Type())
	}
}

func TestNonPayableOperationsRejectFunds(t *testing.T) {
	env := harness.NewTestEnv(t)
	env.Setup()

	_, err := env.Execute(harness.CreatorAddr, harness.Coins(5, harness.Denom), &minter.UpdateMintPriceRequest{Price: 80})
	require.ErrorIs(t, err, minter.ErrNonPayable)

	_, err = env.Execute("anyone", harness.Coins(5, harness.Denom), &minter.PurgeRequest{})
	require.ErrorIs(t, err, minter.ErrNonPayable)
}

func TestPurge(t *testing.T) {
	env := harness.NewTestEnv(t)
	req := env.DefaultInstantiate()
	env.Instantiate(req)
	env.BindCollection(harness.CollectionAddr)
	env.Clock.Set(req.StartTime)

	env.MustExecute("alice", harness.Coins(100, harness.Denom), &minter.MintRequest{})
	env.MustExecute("bob", harness.Coins(100, harness.Denom), &minter.MintRequest{})

	// While the window is open, purge is refused.
	_, err := env.Execute("anyone", nil, &minter.PurgeRequest{})
	require.ErrorIs(t, err, minter.ErrMintingHasNotYetEnded)

	// At the close instant the sale is over and anyone may purge.
	env.Clock.Set(req.EndTime)
	env.MustExecute("anyone", nil, &minter.PurgeRequest{})

	count, err := env.Engine.QueryMintCount(context.Background(), "alice")
	require.NoError(t, err)
	assert.Zero(t, count.Count)

	// The total is historical and survives the sweep.
	total, err := env.Engine.QueryTotalMintCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)

	// Purge is idempotent.
	env.MustExecute("someoneelse", nil, &minter.PurgeRequest{})
}

func TestUpdateStatus(t *testing.T) {
	env := harness.NewTestEnv(t)

	// Before instantiation the override fails with its single opaque error.
	err := env.Engine.UpdateStatus(context.Background(), true, false, false)
	require.ErrorIs(t, err, minter.ErrUpdateStatus)

	env.Setup()
	require.NoError(t, env.Engine.UpdateStatus(context.Background(), true, false, true))

	status, err := env.Engine.QueryStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Verified)
	assert.False(t, status.Blocked)
	assert.True(t, status.Explicit)
}

func TestMigrate(t *testing.T) {
	env := harness.NewTestEnv(t)
	env.Setup()

	resp := env.MustExecute(harness.CreatorAddr, nil, &minter.MigrateRequest{})
	found := false
	for _, attr := range resp.Attributes {
		if attr.Key == "to_version" {
			found = true
			assert.Equal(t, minter.ContractVersion, attr.Value)
		}
	}
	require.True(t, found)
}

func TestQueryMintPrice(t *testing.T) {
	env := harness.NewTestEnv(t)
	env.Params.AirdropMintPrice = amount.NewCoin(25, "ignoreddenom")
	env.Setup()

	prices, err := env.Engine.QueryMintPrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, amount.NewCoin(100, harness.Denom), prices.PublicPrice)
	assert.Equal(t, amount.NewCoin(100, harness.Denom), prices.CurrentPrice)

	// The airdrop price is always denominated like the configured price.
	assert.Equal(t, amount.NewCoin(25, harness.Denom), prices.AirdropPrice)
}

func TestQueriesBeforeInstantiation(t *testing.T) {
	env := harness.NewTestEnv(t)

	_, err := env.Engine.QueryStatus(context.Background())
	require.ErrorIs(t, err, minter.ErrNotInstantiated)

	_, err = env.Engine.QueryTotalMintCount(context.Background())
	require.ErrorIs(t, err, minter.ErrNotInstantiated)

	_, err = env.Engine.Execute(context.Background(), "alice", nil, &minter.MintRequest{})
	require.ErrorIs(t, err, minter.ErrNotInstantiated)
}

func TestMintBeforeCollectionBound(t *testing.T) {
	env := harness.NewTestEnv(t)
	req := env.DefaultInstantiate()
	env.Instantiate(req)
	env.Clock.Set(req.StartTime)

	_, err := env.Execute("alice", harness.Coins(100, harness.Denom), &minter.MintRequest{})
	require.ErrorIs(t, err, minter.ErrCollectionNotReady)
	assert.Equal(t, minter.CategoryHandshake, minter.CategoryOf(err))
}

func TestRegisteredTypes(t *testing.T) {
	types := minter.RegisteredTypes()
	for _, want := range []string{
		minter.TypeInstantiate, minter.TypeInstantiateReply,
		minter.TypeMint, minter.TypeMintTo, minter.TypeReceiveNft,
		minter.TypeUpdateMintPrice, minter.TypeUpdateStartTime, minter.TypeUpdateEndTime,
		minter.TypeUpdateStartTradingTime, minter.TypeUpdatePerAddressLimit,
		minter.TypePurge, minter.TypeMigrate,
	} {
		assert.Contains(t, types, want)
	}

	req, ok := minter.NewRequest(minter.TypeMint)
	require.True(t, ok)
	assert.IsType(t, &minter.MintRequest{}, req)

	_, ok = minter.NewRequest("no_such_request")
	assert.False(t, ok)
}
