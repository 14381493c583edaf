package minter

import (
	"sort"
	"sync"
	"time"

	"github.com/Kayanski/launchpad/internal/core/amount"
)

// Request is one mutating operation on the controller. Validate performs the
// stateless preflight; Apply runs against the buffered state table and either
// succeeds completely or leaves durable state untouched.
type Request interface {
	// Type returns the registered request type name
	Type() string

	// Validate performs stateless checks on the request fields
	Validate() error

	// Apply executes the request against the context's state view
	Apply(ctx *ApplyContext) error
}

// Attribute is one key/value pair of a request's result metadata.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Response carries the outcome of a successful request: result attributes and
// the outbound instructions the host must deliver.
type Response struct {
	Attributes []Attribute `json:"attributes,omitempty"`
	Messages   []Message   `json:"messages,omitempty"`
}

// ApplyContext provides everything a request needs while applying: the
// buffered state view, the caller, attached funds, the clock reading for this
// request, and the authority params query.
type ApplyContext struct {
	State  StateView
	Sender string
	Funds  []amount.Coin
	Now    time.Time
	Params ParamsProvider

	// Self is this controller's own address, used as the minter identity on
	// outbound collection instructions.
	Self string

	resp Response
	mint *mintRecord
}

// Emit queues an outbound instruction on the response.
func (ctx *ApplyContext) Emit(msg Message) {
	ctx.resp.Messages = append(ctx.resp.Messages, msg)
}

// Attr records a result attribute.
func (ctx *ApplyContext) Attr(key, value string) {
	ctx.resp.Attributes = append(ctx.resp.Attributes, Attribute{Key: key, Value: value})
}

// Response returns the accumulated response.
func (ctx *ApplyContext) Response() *Response {
	return &ctx.resp
}

// nonpayable rejects funds on payment-free operations.
func nonpayable(ctx *ApplyContext) error {
	for _, coin := range ctx.Funds {
		if !coin.IsZero() {
			return ErrNonPayable
		}
	}
	return nil
}

// mayPay returns the attached amount of the given denomination. At most one
// coin may be attached, and it must match the denomination.
func mayPay(ctx *ApplyContext, denom string) (amount.Coin, error) {
	paid := amount.NewCoin(0, denom)
	for _, coin := range ctx.Funds {
		if coin.IsZero() {
			continue
		}
		if coin.Denom != denom || !paid.IsZero() {
			return amount.Coin{}, &IncorrectPaymentError{Got: coin, Want: amount.NewCoin(0, denom)}
		}
		paid = coin
	}
	return paid, nil
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]func() Request)
)

// Register adds a request constructor under the given type name. Each request
// file registers itself from init().
func Register(requestType string, factory func() Request) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[requestType] = factory
}

// NewRequest constructs an empty request of the given type for decoding.
func NewRequest(requestType string) (Request, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	factory, ok := registry[requestType]
	if !ok {
		return nil, false
	}
	return factory(), true
}

// RegisteredTypes lists all known request type names, sorted.
func RegisteredTypes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	types := make([]string, 0, len(registry))
	for name := range registry {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}
