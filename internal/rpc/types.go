package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/Kayanski/launchpad/internal/core/minter"
)

// RpcContext carries per-request metadata into method handlers.
type RpcContext struct {
	Context context.Context

	// IsAdmin is true for requests arriving on the admin listener.
	IsAdmin bool

	ClientIP string
}

// RpcError is the wire-level error object.
type RpcError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *RpcError) Error() string { return e.Message }

// Common error constructors.
func errInvalidParams(msg string) *RpcError {
	return &RpcError{Code: "invalid_params", Message: msg}
}

func errUnknownMethod(method string) *RpcError {
	return &RpcError{Code: "unknown_method", Message: "unknown method: " + method}
}

func errForbidden() *RpcError {
	return &RpcError{Code: "forbidden", Message: "method requires the admin listener"}
}

// wrapEngineError maps an engine failure onto a wire error, using the failure
// taxonomy as the code.
func wrapEngineError(err error) *RpcError {
	if err == nil {
		return nil
	}
	var rpcErr *RpcError
	if errors.As(err, &rpcErr) {
		return rpcErr
	}
	return &RpcError{
		Code:    minter.CategoryOf(err).String(),
		Message: err.Error(),
	}
}

// Method is one RPC method implementation.
type Method interface {
	// Handle executes the method with raw JSON params
	Handle(ctx *RpcContext, params json.RawMessage) (any, *RpcError)

	// RequiresAdmin reports whether the method is admin-listener only
	RequiresAdmin() bool
}

// MethodRegistry maps method names to implementations.
type MethodRegistry struct {
	mu      sync.RWMutex
	methods map[string]Method
}

// NewMethodRegistry creates an empty registry.
func NewMethodRegistry() *MethodRegistry {
	return &MethodRegistry{methods: make(map[string]Method)}
}

// Register adds a method under the given name.
func (r *MethodRegistry) Register(name string, method Method) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.methods[name] = method
}

// Get returns the method registered under name.
func (r *MethodRegistry) Get(name string) (Method, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	method, ok := r.methods[name]
	return method, ok
}

// Names lists the registered method names.
func (r *MethodRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.methods))
	for name := range r.methods {
		names = append(names, name)
	}
	return names
}
