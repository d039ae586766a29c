package web3

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/prodowl/internal/model"
)

const testAddress = "0x1234567890abcdef1234567890abcdef12345678"

// bridge is a fake wallet bridge answering JSON-RPC over HTTP.
type bridge struct {
	mu       sync.Mutex
	methods  []string
	handlers map[string]func(params []json.RawMessage) (any, *ProviderError)
	token    string
}

func newBridge() *bridge {
	b := &bridge{handlers: map[string]func([]json.RawMessage) (any, *ProviderError){
		"eth_requestAccounts": func([]json.RawMessage) (any, *ProviderError) { return []string{testAddress}, nil },
		"eth_accounts":        func([]json.RawMessage) (any, *ProviderError) { return []string{testAddress}, nil },
		"eth_chainId":         func([]json.RawMessage) (any, *ProviderError) { return "0x89", nil },
		// 1.5 ether
		"eth_getBalance": func([]json.RawMessage) (any, *ProviderError) { return "0x14d1120d7b160000", nil },
		"personal_sign":  func([]json.RawMessage) (any, *ProviderError) { return "0xsig", nil },
	}}
	return b
}

func (b *bridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if b.token != "" && r.Header.Get("Authorization") != "Bearer "+b.token {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	var req struct {
		ID     uint64            `json:"id"`
		Method string            `json:"method"`
		Params []json.RawMessage `json:"params"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	b.mu.Lock()
	b.methods = append(b.methods, req.Method)
	h := b.handlers[req.Method]
	b.mu.Unlock()

	resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
	if h == nil {
		resp["error"] = ProviderError{Code: -32601, Message: "method not found"}
	} else if result, perr := h(req.Params); perr != nil {
		resp["error"] = perr
	} else {
		resp["result"] = result
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func (b *bridge) calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.methods...)
}

func startBridge(t *testing.T, b *bridge) *RPCProvider {
	t.Helper()
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)
	return NewRPCProvider(srv.URL, b.token)
}

func TestConnect(t *testing.T) {
	p := startBridge(t, newBridge())

	w, err := Connect(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, w.Connected)
	assert.Equal(t, testAddress, w.Address)
	assert.Equal(t, model.ChainPolygon, w.Chain)
	assert.Equal(t, "1.5000", w.Balance)
}

func TestConnectNoWallet(t *testing.T) {
	_, err := Connect(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoWallet)
}

func TestConnectRejected(t *testing.T) {
	b := newBridge()
	b.handlers["eth_requestAccounts"] = func([]json.RawMessage) (any, *ProviderError) {
		return nil, &ProviderError{Code: CodeUserRejected, Message: "rejected"}
	}
	_, err := Connect(context.Background(), startBridge(t, b))
	assert.ErrorIs(t, err, ErrUserRejected)
	assert.Equal(t, "user rejected the connection request", err.Error())
}

func TestBearerToken(t *testing.T) {
	b := newBridge()
	b.token = "secret"
	p := startBridge(t, b)
	_, err := Accounts(context.Background(), p)
	require.NoError(t, err)

	bad := NewRPCProvider(p.url, "wrong")
	_, err = Accounts(context.Background(), bad)
	assert.ErrorContains(t, err, "401")
}

func TestSwitchChainAddsUnknownChain(t *testing.T) {
	b := newBridge()
	b.handlers["wallet_switchEthereumChain"] = func([]json.RawMessage) (any, *ProviderError) {
		return nil, &ProviderError{Code: CodeChainNotAdded, Message: "unrecognized chain"}
	}
	var added map[string]any
	b.handlers["wallet_addEthereumChain"] = func(params []json.RawMessage) (any, *ProviderError) {
		_ = json.Unmarshal(params[0], &added)
		return nil, nil
	}
	p := startBridge(t, b)

	require.NoError(t, SwitchChain(context.Background(), p, model.ChainBase))
	assert.Equal(t, []string{"wallet_switchEthereumChain", "wallet_addEthereumChain"}, b.calls())
	assert.Equal(t, "0x2105", added["chainId"])
	assert.Equal(t, "Base", added["chainName"])
}

func TestSwitchChainErrors(t *testing.T) {
	b := newBridge()
	b.handlers["wallet_switchEthereumChain"] = func([]json.RawMessage) (any, *ProviderError) {
		return nil, &ProviderError{Code: CodeUserRejected, Message: "no"}
	}
	p := startBridge(t, b)

	assert.ErrorIs(t, SwitchChain(context.Background(), p, model.ChainSolana), ErrChainNotSupported)
	assert.ErrorIs(t, SwitchChain(context.Background(), nil, model.ChainBase), ErrNoWallet)
	err := SwitchChain(context.Background(), p, model.ChainBase)
	assert.True(t, IsCode(err, CodeUserRejected))
}

type opener struct{ opened []string }

func (o *opener) OpenURL(_ context.Context, url string) error {
	o.opened = append(o.opened, url)
	return nil
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	p := startBridge(t, newBridge())

	o := &opener{}
	res := Execute(ctx, p, o, model.Web3Task{DeepLink: "https://snapshot.org"})
	assert.True(t, res.Success)
	assert.Equal(t, []string{"https://snapshot.org"}, o.opened)

	res = Execute(ctx, p, o, model.Web3Task{Type: model.Web3Sign, Title: "gm"})
	assert.True(t, res.Success)
	assert.Equal(t, "0xsig", res.TxHash)

	res = Execute(ctx, p, o, model.Web3Task{Type: model.Web3Stake})
	assert.True(t, res.Success)
	assert.Empty(t, res.TxHash)

	res = Execute(ctx, nil, o, model.Web3Task{})
	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, ErrNoWallet)
}

func TestExecuteNoAccount(t *testing.T) {
	b := newBridge()
	b.handlers["eth_accounts"] = func([]json.RawMessage) (any, *ProviderError) { return []string{}, nil }
	res := Execute(context.Background(), startBridge(t, b), &opener{}, model.Web3Task{Type: model.Web3Sign})
	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, ErrNoAccount)
}

func TestFormatBalance(t *testing.T) {
	tests := map[string]string{
		"0x0":                "0.0000",
		"0x":                 "0.0000",
		"0xde0b6b3a7640000":  "1.0000",
		"0x14d1120d7b160000": "1.5000",
	}
	for in, want := range tests {
		got, err := FormatBalance(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := FormatBalance("0xzz")
	assert.Error(t, err)
}

func TestChainHelpers(t *testing.T) {
	assert.Equal(t, model.ChainArbitrum, ChainFromHex("0xa4b1"))
	assert.Equal(t, model.ChainID(""), ChainFromHex("0x999"))
	assert.Equal(t, "0x1234...5678", FormatAddress(testAddress))
	assert.Equal(t, "0x12", FormatAddress("0x12"))
}

func TestSamples(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := Samples(now)
	require.Len(t, s, 4)
	require.NotNil(t, s[0].Deadline)
	assert.Equal(t, now.Add(48*time.Hour), *s[0].Deadline)
	assert.Equal(t, model.ChainBase, s[3].Chain)
}
