package minter

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Kayanski/launchpad/internal/core/amount"
	"github.com/Kayanski/launchpad/internal/storage/keyValueDb"
	"github.com/Kayanski/launchpad/internal/storage/relationaldb"
)

// Clock supplies the wall-clock reading each request is judged against.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the operating system clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// EngineOptions configures optional engine collaborators.
type EngineOptions struct {
	// Clock defaults to SystemClock.
	Clock Clock

	// History, when set, receives one event per completed mint. History
	// failures are logged and never fail the request.
	History relationaldb.Store

	// Self is the controller's own address used on outbound instructions.
	Self string
}

// Engine applies requests to durable state one at a time. Each request runs
// against a fresh buffered state table and commits in a single atomic batch
// on success; on failure the durable store is untouched.
type Engine struct {
	mu      sync.Mutex
	store   *keyValueDb.Store
	params  ParamsProvider
	clock   Clock
	history relationaldb.Store
	self    string
}

// NewEngine creates an engine over the given store and authority params.
func NewEngine(store *keyValueDb.Store, params ParamsProvider, opts EngineOptions) *Engine {
	clock := opts.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	return &Engine{
		store:   store,
		params:  params,
		clock:   clock,
		history: opts.History,
		self:    opts.Self,
	}
}

// Execute validates and applies one request on behalf of sender, with the
// given attached funds.
func (e *Engine) Execute(ctx context.Context, sender string, funds []amount.Coin, req Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	table := NewStateTable(&storeBacking{ctx: ctx, store: e.store})
	applyCtx := &ApplyContext{
		State:  table,
		Sender: sender,
		Funds:  funds,
		Now:    e.clock.Now().UTC(),
		Params: e.params,
		Self:   e.self,
	}
	if err := req.Apply(applyCtx); err != nil {
		return nil, err
	}
	if err := table.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit request %s: %w", req.Type(), err)
	}

	e.recordHistory(ctx, applyCtx)
	return applyCtx.Response(), nil
}

// UpdateStatus is the operator override of the curation flags. It is not a
// registered request type and is only reachable through the operator surface.
// Every failure is collapsed into ErrUpdateStatus.
func (e *Engine) UpdateStatus(ctx context.Context, verified, blocked, explicit bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	table := NewStateTable(&storeBacking{ctx: ctx, store: e.store})
	if _, err := loadStatus(table); err != nil {
		return ErrUpdateStatus
	}
	status := &Status{Verified: verified, Blocked: blocked, Explicit: explicit}
	if err := saveStatus(table, status); err != nil {
		return ErrUpdateStatus
	}
	if err := table.Commit(); err != nil {
		return ErrUpdateStatus
	}
	return nil
}

func (e *Engine) recordHistory(ctx context.Context, applyCtx *ApplyContext) {
	if e.history == nil || applyCtx.mint == nil {
		return
	}
	rec := applyCtx.mint
	event := relationaldb.MintEvent{
		TokenID:      rec.TokenID,
		Action:       rec.Action,
		Sender:       rec.Sender,
		Recipient:    rec.Recipient,
		PriceDenom:   rec.Price.Denom,
		PriceAmount:  rec.Price.Amount,
		NetworkFee:   rec.NetworkFee,
		SellerAmount: rec.SellerAmount,
		MintedAt:     applyCtx.Now,
	}
	if err := e.history.SaveMintEvent(ctx, event); err != nil {
		log.Printf("[WARN] failed to record mint event for token %d: %v", rec.TokenID, err)
	}
}

// view returns a read-only state table over the durable store.
func (e *Engine) view(ctx context.Context) *StateTable {
	return NewStateTable(&storeBacking{ctx: ctx, store: e.store})
}
