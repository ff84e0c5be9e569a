package contract

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Mohsinsiddi/yieldcli/internal/chain"
)

// rpcFault is a JSON-RPC error object returned by a handler.
type rpcFault struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// rpcHandler answers one JSON-RPC method.
type rpcHandler func(params []json.RawMessage) (any, *rpcFault)

// fixed answers every call with result.
func fixed(result any) rpcHandler {
	return func([]json.RawMessage) (any, *rpcFault) { return result, nil }
}

// fault answers every call with an RPC error.
func fault(code int, msg string) rpcHandler {
	return func([]json.RawMessage) (any, *rpcFault) { return nil, &rpcFault{Code: code, Message: msg} }
}

// nodeMock is an httptest JSON-RPC node that records every call.
type nodeMock struct {
	mu       sync.Mutex
	handlers map[string]rpcHandler
	calls    map[string][][]json.RawMessage
}

func newNodeMock(t *testing.T, handlers map[string]rpcHandler) (*nodeMock, *chain.EVMClient) {
	t.Helper()
	m := &nodeMock{handlers: handlers, calls: make(map[string][][]json.RawMessage)}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     int64             `json:"id"`
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		m.mu.Lock()
		m.calls[req.Method] = append(m.calls[req.Method], req.Params)
		h, ok := m.handlers[req.Method]
		m.mu.Unlock()

		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		if !ok {
			resp["error"] = rpcFault{Code: -32601, Message: "method not found"}
		} else if result, f := h(req.Params); f != nil {
			resp["error"] = f
		} else {
			resp["result"] = result
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)
	return m, chain.NewEVMClient(srv.URL)
}

// count returns how often method was called.
func (m *nodeMock) count(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls[method])
}

// last returns the params of the most recent call to method.
func (m *nodeMock) last(method string) []json.RawMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.calls[method]
	if len(c) == 0 {
		return nil
	}
	return c[len(c)-1]
}
