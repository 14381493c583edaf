package rpc

import (
	"encoding/json"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/Kayanski/launchpad/internal/core/minter"
	"github.com/Kayanski/launchpad/internal/storage/relationaldb"
)

// Server handles HTTP JSON-RPC requests.
// Format: {"method": "method_name", "params": {...}}
type Server struct {
	registry *MethodRegistry
	timeout  time.Duration

	// admin marks the listener this server sits behind. Admin-only methods
	// are rejected on the public listener.
	admin bool
}

// Services are the collaborators method handlers draw on. History and
// Publisher may be nil; the methods that need them report unavailability.
type Services struct {
	Engine    *minter.Engine
	History   relationaldb.Store
	Publisher *Publisher
}

// NewServer creates an RPC server with all methods registered.
func NewServer(services Services, timeout time.Duration, admin bool) *Server {
	server := &Server{
		registry: NewMethodRegistry(),
		timeout:  timeout,
		admin:    admin,
	}
	server.registerAllMethods(services)
	return server
}

// Registry exposes the method registry, used by the WebSocket server to run
// methods over established connections.
func (s *Server) Registry() *MethodRegistry { return s.registry }

type rpcRequest struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

type rpcResponse struct {
	Result any       `json:"result,omitempty"`
	Error  *RpcError `json:"error,omitempty"`
	Status string    `json:"status"`
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeResponse(w, nil, &RpcError{Code: "internal", Message: "failed to read request body"})
		return
	}
	defer r.Body.Close()

	var request rpcRequest
	if err := json.Unmarshal(body, &request); err != nil {
		s.writeResponse(w, nil, &RpcError{Code: "json_invalid", Message: "invalid JSON: " + err.Error()})
		return
	}
	if request.Method == "" {
		s.writeResponse(w, nil, errInvalidParams("missing method"))
		return
	}

	ctx := &RpcContext{
		Context:  r.Context(),
		IsAdmin:  s.admin,
		ClientIP: clientIP(r),
	}
	result, rpcErr := s.Execute(request.Method, request.Params, ctx)
	s.writeResponse(w, result, rpcErr)
}

// Execute runs one method by name.
func (s *Server) Execute(method string, params json.RawMessage, ctx *RpcContext) (any, *RpcError) {
	impl, ok := s.registry.Get(method)
	if !ok {
		return nil, errUnknownMethod(method)
	}
	if impl.RequiresAdmin() && !ctx.IsAdmin {
		return nil, errForbidden()
	}

	start := time.Now()
	result, rpcErr := impl.Handle(ctx, params)
	if elapsed := time.Since(start); elapsed > s.timeout {
		log.Printf("[WARN] method %s took %v", method, elapsed)
	}
	return result, rpcErr
}

func (s *Server) writeResponse(w http.ResponseWriter, result any, rpcErr *RpcError) {
	resp := rpcResponse{Result: result, Error: rpcErr, Status: "success"}
	if rpcErr != nil {
		resp.Status = "error"
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Failed to write RPC response: %v", err)
	}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
