package rpc_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fundconn/fundconn/internal/ledger"
	"github.com/fundconn/fundconn/internal/rpc"
)

// fakeLedger serves a JSON-RPC method table.
type fakeLedger struct {
	mu      sync.Mutex
	methods map[string]func(params map[string]any) (any, *rpc.Error)
	calls   []string
}

func (f *fakeLedger) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string         `json:"method"`
			Params map[string]any `json:"params"`
			ID     int64          `json:"id"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)

		f.mu.Lock()
		f.calls = append(f.calls, req.Method)
		fn, ok := f.methods[req.Method]
		f.mu.Unlock()

		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		if !ok {
			resp["error"] = &rpc.Error{Code: -32601, Message: "method not found"}
		} else if result, rpcErr := fn(req.Params); rpcErr != nil {
			resp["error"] = rpcErr
		} else {
			resp["result"] = result
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func newFakeLedger(t *testing.T) (*fakeLedger, *rpc.Client) {
	t.Helper()
	fake := &fakeLedger{methods: map[string]func(map[string]any) (any, *rpc.Error){}}
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)
	return fake, rpc.NewClient(srv.URL, nil)
}

func TestClientCall(t *testing.T) {
	fake, client := newFakeLedger(t)
	fake.methods["echo"] = func(params map[string]any) (any, *rpc.Error) {
		return params["value"], nil
	}

	var result string
	err := client.Call(context.Background(), "echo", map[string]any{"value": "hi"}, &result)
	require.NoError(t, err)
	require.Equal(t, "hi", result)
}

func TestClientCallErrorObject(t *testing.T) {
	_, client := newFakeLedger(t)

	err := client.Call(context.Background(), "missing", nil, nil)
	var rpcErr *rpc.Error
	require.ErrorAs(t, err, &rpcErr)
	require.Equal(t, -32601, rpcErr.Code)
}

func TestClientNullResult(t *testing.T) {
	fake, client := newFakeLedger(t)
	fake.methods["getProject"] = func(map[string]any) (any, *rpc.Error) {
		return nil, nil
	}

	var rec *ledger.ProjectRecord
	err := client.Call(context.Background(), "getProject", nil, &rec)
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestContractGetProject(t *testing.T) {
	fake, client := newFakeLedger(t)
	fake.methods["getProject"] = func(params map[string]any) (any, *rpc.Error) {
		if params["id"] != "3" {
			return nil, nil
		}
		return ledger.ProjectRecord{ID: "3", Title: "Garden", Goals: "1", Amount: "0"}, nil
	}

	contract := rpc.NewContract(client, "0xcontract", nil, nil)

	rec, err := contract.GetProject(context.Background(), "3")
	require.NoError(t, err)
	require.Equal(t, "Garden", rec.Title)

	rec, err = contract.GetProject(context.Background(), "404")
	require.NoError(t, err)
	require.Nil(t, rec, "missing records surface as a nil record")
}

func TestContractWatchDeliversNewEvents(t *testing.T) {
	fake, client := newFakeLedger(t)

	var (
		pollsMu sync.Mutex
		polls   int
	)
	fake.methods["getEvents"] = func(params map[string]any) (any, *rpc.Error) {
		pollsMu.Lock()
		polls++
		n := polls
		pollsMu.Unlock()
		switch {
		case params["cursor"] == "":
			// Head probe: no replay of history.
			return map[string]any{"cursor": "7", "events": []any{}}, nil
		case n == 2:
			return map[string]any{"cursor": "8", "events": []map[string]any{
				{"name": ledger.EventNewFunder, "funder": "0xf1"},
			}}, nil
		default:
			return map[string]any{"cursor": "8", "events": []any{}}, nil
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	contract := rpc.NewContract(client, "0xcontract", nil, nil)
	events, err := contract.WatchInterval(ctx, 10*time.Millisecond)
	require.NoError(t, err)

	select {
	case ev := <-events:
		require.Equal(t, ledger.EventNewFunder, ev.Name)
		require.Equal(t, "0xf1", ev.Funder)
	case <-time.After(2 * time.Second):
		t.Fatal("no event delivered")
	}

	cancel()
	select {
	case _, open := <-events:
		require.False(t, open, "channel closes on cancellation")
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancellation")
	}
}

func TestNodeProviderAccounts(t *testing.T) {
	fake, client := newFakeLedger(t)
	fake.methods["eth_accounts"] = func(map[string]any) (any, *rpc.Error) {
		return []string{"0x00000000000000000000000000000000000000aa", "junk"}, nil
	}

	provider := rpc.NewNodeProvider(client)
	accounts, err := provider.Accounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1, "non-address entries are dropped")

	_, err = provider.RequestAccounts(context.Background())
	require.Error(t, err, "nodes cannot prompt for access")
}
