package web3

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// Provider is an EIP-1193 request function.
type Provider interface {
	Request(ctx context.Context, method string, params ...any) (json.RawMessage, error)
}

// Provider error codes with special handling.
const (
	CodeUserRejected      = 4001
	CodeChainNotAdded     = 4902
	jsonRPCVersion        = "2.0"
	defaultRequestTimeout = 60 * time.Second
)

// ProviderError is an error reported by the wallet.
type ProviderError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("wallet error %d: %s", e.Code, e.Message)
}

// IsCode reports whether err is a ProviderError with the given code.
func IsCode(err error, code int) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Code == code
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *ProviderError  `json:"error"`
}

// RPCProvider sends provider requests as JSON-RPC 2.0 over HTTP to a local
// wallet bridge. The token, if set, is sent as a Bearer credential.
// Requests rejected with HTTP 429 are retried with backoff.
type RPCProvider struct {
	url        string
	token      string
	httpClient *http.Client
	maxRetries int
	nextID     atomic.Uint64
}

// NewRPCProvider creates a provider for the bridge at url.
func NewRPCProvider(url, token string) *RPCProvider {
	return &RPCProvider{
		url:   strings.TrimRight(url, "/"),
		token: token,
		httpClient: &http.Client{
			// Wallet prompts wait on the user.
			Timeout: defaultRequestTimeout,
		},
		maxRetries: 3,
	}
}

// Request performs one JSON-RPC call and returns the raw result.
func (p *RPCProvider) Request(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	if params == nil {
		params = []any{}
	}
	body, err := json.Marshal(rpcRequest{
		JSONRPC: jsonRPCVersion,
		ID:      p.nextID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling %s request: %w", method, err)
	}

	var lastErr error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		if p.token != "" {
			req.Header.Set("Authorization", "Bearer "+p.token)
		}

		resp, err := p.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("calling %s: %w", method, err)
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, fmt.Errorf("reading response body: %w", readErr)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("rate limited (429) on %s", method)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryAfter(resp, attempt)):
				continue
			}
		}

		if resp.StatusCode == http.StatusUnauthorized {
			return nil, fmt.Errorf("authentication failed (401): check the wallet bridge token for %s", p.url)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("unexpected status %d on %s: %s", resp.StatusCode, method, string(respBody))
		}

		var out rpcResponse
		if err := json.Unmarshal(respBody, &out); err != nil {
			return nil, fmt.Errorf("unmarshaling %s response: %w", method, err)
		}
		if out.Error != nil {
			return nil, out.Error
		}
		return out.Result, nil
	}

	return nil, fmt.Errorf("max retries (%d) exceeded: %w", p.maxRetries, lastErr)
}

// retryAfter honours Retry-After, else backs off 1s, 2s, 4s capped at 30s.
func retryAfter(resp *http.Response, attempt int) time.Duration {
	if header := resp.Header.Get("Retry-After"); header != "" {
		if seconds, err := strconv.Atoi(header); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	backoff := time.Duration(1<<uint(attempt)) * time.Second
	if backoff > 30*time.Second {
		backoff = 30 * time.Second
	}
	return backoff
}
