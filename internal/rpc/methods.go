package rpc

import (
	"encoding/json"
	"time"

	"github.com/Kayanski/launchpad/internal/core/amount"
	"github.com/Kayanski/launchpad/internal/core/minter"
)

// registerAllMethods sets up the complete method registry.
func (s *Server) registerAllMethods(services Services) {
	// Utility methods
	s.registry.Register("ping", &pingMethod{})
	s.registry.Register("version", &versionMethod{})
	s.registry.Register("request_types", &requestTypesMethod{})

	// Query methods
	s.registry.Register("config", &configMethod{services})
	s.registry.Register("status", &statusMethod{services})
	s.registry.Register("start_time", &startTimeMethod{services})
	s.registry.Register("end_time", &endTimeMethod{services})
	s.registry.Register("mint_price", &mintPriceMethod{services})
	s.registry.Register("mint_count", &mintCountMethod{services})
	s.registry.Register("total_mint_count", &totalMintCountMethod{services})
	s.registry.Register("mint_history", &mintHistoryMethod{services})
	s.registry.Register("mints_by_recipient", &mintsByRecipientMethod{services})

	// Mutating methods
	s.registry.Register("submit", &submitMethod{services})

	// Admin methods
	s.registry.Register("update_status", &updateStatusMethod{services})
}

type pingMethod struct{}

func (m *pingMethod) RequiresAdmin() bool { return false }

func (m *pingMethod) Handle(ctx *RpcContext, params json.RawMessage) (any, *RpcError) {
	return map[string]string{}, nil
}

type versionMethod struct{}

func (m *versionMethod) RequiresAdmin() bool { return false }

func (m *versionMethod) Handle(ctx *RpcContext, params json.RawMessage) (any, *RpcError) {
	return map[string]string{
		"name":    minter.ContractName,
		"version": minter.ContractVersion,
	}, nil
}

type requestTypesMethod struct{}

func (m *requestTypesMethod) RequiresAdmin() bool { return false }

func (m *requestTypesMethod) Handle(ctx *RpcContext, params json.RawMessage) (any, *RpcError) {
	return map[string]any{"request_types": minter.RegisteredTypes()}, nil
}

type configMethod struct{ services Services }

func (m *configMethod) RequiresAdmin() bool { return false }

func (m *configMethod) Handle(ctx *RpcContext, params json.RawMessage) (any, *RpcError) {
	cfg, err := m.services.Engine.QueryConfig(ctx.Context)
	if err != nil {
		return nil, wrapEngineError(err)
	}
	return cfg, nil
}

type statusMethod struct{ services Services }

func (m *statusMethod) RequiresAdmin() bool { return false }

func (m *statusMethod) Handle(ctx *RpcContext, params json.RawMessage) (any, *RpcError) {
	status, err := m.services.Engine.QueryStatus(ctx.Context)
	if err != nil {
		return nil, wrapEngineError(err)
	}
	return status, nil
}

type startTimeMethod struct{ services Services }

func (m *startTimeMethod) RequiresAdmin() bool { return false }

func (m *startTimeMethod) Handle(ctx *RpcContext, params json.RawMessage) (any, *RpcError) {
	start, err := m.services.Engine.QueryStartTime(ctx.Context)
	if err != nil {
		return nil, wrapEngineError(err)
	}
	return map[string]string{"start_time": start.UTC().Format(time.RFC3339Nano)}, nil
}

type endTimeMethod struct{ services Services }

func (m *endTimeMethod) RequiresAdmin() bool { return false }

func (m *endTimeMethod) Handle(ctx *RpcContext, params json.RawMessage) (any, *RpcError) {
	end, err := m.services.Engine.QueryEndTime(ctx.Context)
	if err != nil {
		return nil, wrapEngineError(err)
	}
	return map[string]string{"end_time": end.UTC().Format(time.RFC3339Nano)}, nil
}

type mintPriceMethod struct{ services Services }

func (m *mintPriceMethod) RequiresAdmin() bool { return false }

func (m *mintPriceMethod) Handle(ctx *RpcContext, params json.RawMessage) (any, *RpcError) {
	prices, err := m.services.Engine.QueryMintPrice(ctx.Context)
	if err != nil {
		return nil, wrapEngineError(err)
	}
	return prices, nil
}

type mintCountMethod struct{ services Services }

func (m *mintCountMethod) RequiresAdmin() bool { return false }

func (m *mintCountMethod) Handle(ctx *RpcContext, params json.RawMessage) (any, *RpcError) {
	var p struct {
		Address string `json:"address"`
	}
	if err := json.Unmarshal(params, &p); err != nil || p.Address == "" {
		return nil, errInvalidParams("mint_count requires an address")
	}
	count, err := m.services.Engine.QueryMintCount(ctx.Context, p.Address)
	if err != nil {
		return nil, wrapEngineError(err)
	}
	return count, nil
}

type totalMintCountMethod struct{ services Services }

func (m *totalMintCountMethod) RequiresAdmin() bool { return false }

func (m *totalMintCountMethod) Handle(ctx *RpcContext, params json.RawMessage) (any, *RpcError) {
	total, err := m.services.Engine.QueryTotalMintCount(ctx.Context)
	if err != nil {
		return nil, wrapEngineError(err)
	}
	return map[string]uint64{"total_mint_count": total}, nil
}

type mintHistoryMethod struct{ services Services }

func (m *mintHistoryMethod) RequiresAdmin() bool { return false }

func (m *mintHistoryMethod) Handle(ctx *RpcContext, params json.RawMessage) (any, *RpcError) {
	if m.services.History == nil {
		return nil, &RpcError{Code: "unavailable", Message: "mint history is not enabled"}
	}
	p := struct {
		Limit int `json:"limit"`
	}{Limit: 50}
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, errInvalidParams("invalid mint_history params")
		}
	}
	events, err := m.services.History.MintHistory(ctx.Context, p.Limit)
	if err != nil {
		return nil, wrapEngineError(err)
	}
	return map[string]any{"events": events}, nil
}

type mintsByRecipientMethod struct{ services Services }

func (m *mintsByRecipientMethod) RequiresAdmin() bool { return false }

func (m *mintsByRecipientMethod) Handle(ctx *RpcContext, params json.RawMessage) (any, *RpcError) {
	if m.services.History == nil {
		return nil, &RpcError{Code: "unavailable", Message: "mint history is not enabled"}
	}
	var p struct {
		Recipient string `json:"recipient"`
	}
	if err := json.Unmarshal(params, &p); err != nil || p.Recipient == "" {
		return nil, errInvalidParams("mints_by_recipient requires a recipient")
	}
	events, err := m.services.History.MintsByRecipient(ctx.Context, p.Recipient)
	if err != nil {
		return nil, wrapEngineError(err)
	}
	return map[string]any{"events": events}, nil
}

// submitMethod decodes and executes one controller request.
type submitMethod struct{ services Services }

func (m *submitMethod) RequiresAdmin() bool { return false }

type submitParams struct {
	Sender  string          `json:"sender"`
	Funds   []amount.Coin   `json:"funds,omitempty"`
	Type    string          `json:"type"`
	Request json.RawMessage `json:"request,omitempty"`
}

func (m *submitMethod) Handle(ctx *RpcContext, params json.RawMessage) (any, *RpcError) {
	var p submitParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, errInvalidParams("invalid submit params: " + err.Error())
	}
	if p.Sender == "" {
		return nil, errInvalidParams("submit requires a sender")
	}
	req, ok := minter.NewRequest(p.Type)
	if !ok {
		return nil, errInvalidParams("unknown request type: " + p.Type)
	}
	if len(p.Request) > 0 {
		if err := json.Unmarshal(p.Request, req); err != nil {
			return nil, errInvalidParams("invalid request body: " + err.Error())
		}
	}

	resp, err := m.services.Engine.Execute(ctx.Context, p.Sender, p.Funds, req)
	if err != nil {
		return nil, wrapEngineError(err)
	}
	if m.services.Publisher != nil {
		m.services.Publisher.PublishResponse(p.Type, resp)
	}
	return resp, nil
}

// updateStatusMethod is the operator override of the curation flags.
type updateStatusMethod struct{ services Services }

func (m *updateStatusMethod) RequiresAdmin() bool { return true }

func (m *updateStatusMethod) Handle(ctx *RpcContext, params json.RawMessage) (any, *RpcError) {
	var p struct {
		Verified bool `json:"is_verified"`
		Blocked  bool `json:"is_blocked"`
		Explicit bool `json:"is_explicit"`
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, errInvalidParams("invalid update_status params")
	}
	if err := m.services.Engine.UpdateStatus(ctx.Context, p.Verified, p.Blocked, p.Explicit); err != nil {
		return nil, wrapEngineError(err)
	}
	return map[string]string{}, nil
}
