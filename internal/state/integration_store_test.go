package state

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/prodowl/internal/deeplink"
	"github.com/nhle/prodowl/internal/model"
	"github.com/nhle/prodowl/internal/web3"
)

// fakeWallet answers provider requests from canned results.
type fakeWallet struct {
	results map[string]any
	errs    map[string]error
	calls   []string
}

func (f *fakeWallet) Request(_ context.Context, method string, _ ...any) (json.RawMessage, error) {
	f.calls = append(f.calls, method)
	if err := f.errs[method]; err != nil {
		return nil, err
	}
	return json.Marshal(f.results[method])
}

func newFakeWallet() *fakeWallet {
	return &fakeWallet{
		results: map[string]any{
			"eth_requestAccounts": []string{"0xabc0000000000000000000000000000000000def"},
			"eth_accounts":        []string{"0xabc0000000000000000000000000000000000def"},
			"eth_chainId":         "0x1",
			"eth_getBalance":      "0x0",
			"personal_sign":       "0xsigned",
		},
		errs: map[string]error{},
	}
}

type urlLog struct{ urls []string }

func (u *urlLog) OpenURL(_ context.Context, url string) error {
	u.urls = append(u.urls, url)
	return nil
}

func TestSocialStore(t *testing.T) {
	c := newClock(at(2026, 4, 1, 12))
	rec := &recorder[SocialSnapshot]{}
	s := NewSocialStore(SocialSnapshot{}, testOptions(c), rec.Hook(), 0)

	_, ok := s.Add(model.SocialTask{Title: " "})
	assert.False(t, ok)

	task, ok := s.Add(model.SocialTask{
		Platform:    model.PlatformGitHub,
		Type:        model.SocialReview,
		Title:       "Review PR",
		WebFallback: "https://github.com/o/r/pull/1",
		Completed:   true,
	})
	require.True(t, ok)
	assert.Equal(t, "social-id-1", task.ID)
	assert.False(t, task.Completed)

	opened := &urlLog{}
	url, err := s.Execute(context.Background(), task.ID, opened)
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/o/r/pull/1", url)
	assert.Equal(t, []string{url}, opened.urls)
	got, _ := s.Get(task.ID)
	assert.False(t, got.Completed, "execute leaves completion to the user")

	url, err = s.Execute(context.Background(), "missing", opened)
	assert.NoError(t, err)
	assert.Empty(t, url)

	require.True(t, s.Complete(task.ID))
	assert.Equal(t, 1, s.CompletedCount())
	assert.Empty(t, s.Pending())
	assert.Equal(t, 1, s.Metrics()[model.PlatformGitHub].TasksCompleted)

	require.True(t, s.Delete(task.ID))
	assert.False(t, s.Delete(task.ID))
	assert.Empty(t, rec.Last().Tasks)
}

func TestSocialLoadSamplesReplaces(t *testing.T) {
	c := newClock(at(2026, 4, 1, 12))
	s := NewSocialStore(SocialSnapshot{}, testOptions(c), nil, 0)
	s.Add(model.SocialTask{Title: "mine", Platform: model.PlatformTwitter})

	s.LoadSamples()
	all := s.All()
	require.Len(t, all, 5)
	assert.NotContains(t, ids(all, func(t model.SocialTask) string { return t.Title }), "mine")
	assert.Len(t, s.ByPlatform(model.PlatformDiscord), 1)
	assert.Len(t, s.Pending(), 5)
}

func TestWeb3ConnectAndSwitch(t *testing.T) {
	c := newClock(at(2026, 4, 1, 12))
	w := newFakeWallet()
	s := NewWeb3Store(Web3Snapshot{}, testOptions(c), nil, w, &urlLog{})
	ctx := context.Background()

	require.True(t, s.Connect(ctx))
	wallet := s.Wallet()
	assert.True(t, wallet.Connected)
	assert.Equal(t, model.ChainEthereum, wallet.Chain)
	assert.False(t, s.Connecting())
	assert.NoError(t, s.Err())

	require.True(t, s.SwitchChain(ctx, model.ChainPolygon))
	assert.Equal(t, model.ChainPolygon, s.Wallet().Chain)
	assert.Contains(t, w.calls, "wallet_switchEthereumChain")

	assert.False(t, s.SwitchChain(ctx, model.ChainSolana))
	assert.ErrorIs(t, s.Err(), web3.ErrChainNotSupported)
	s.ClearError()
	assert.NoError(t, s.Err())

	s.AccountsChanged([]string{"0xnew"})
	assert.Equal(t, "0xnew", s.Wallet().Address)
	s.AccountsChanged(nil)
	assert.False(t, s.Wallet().Connected)
}

func TestWeb3ConnectFailures(t *testing.T) {
	c := newClock(at(2026, 4, 1, 12))

	none := NewWeb3Store(Web3Snapshot{}, testOptions(c), nil, nil, nil)
	assert.False(t, none.Connect(context.Background()))
	assert.ErrorIs(t, none.Err(), web3.ErrNoWallet)

	w := newFakeWallet()
	w.errs["eth_requestAccounts"] = &web3.ProviderError{Code: web3.CodeUserRejected, Message: "nope"}
	rejected := NewWeb3Store(Web3Snapshot{}, testOptions(c), nil, w, nil)
	assert.False(t, rejected.Connect(context.Background()))
	assert.ErrorIs(t, rejected.Err(), web3.ErrUserRejected)
	assert.False(t, rejected.Wallet().Connected)

	rejected.BeginConnect()
	assert.True(t, rejected.Connecting())
	assert.NoError(t, rejected.Err())
	rejected.FinishConnect(model.WalletState{}, errors.New("boom"))
	assert.False(t, rejected.Connecting())
	assert.EqualError(t, rejected.Err(), "boom")
}

func TestWeb3ExecuteCompletesOnSuccess(t *testing.T) {
	c := newClock(at(2026, 4, 1, 12))
	rec := &recorder[Web3Snapshot]{}
	opened := &urlLog{}
	s := NewWeb3Store(Web3Snapshot{}, testOptions(c), rec.Hook(), newFakeWallet(), opened)
	s.LoadSamples()
	require.Len(t, s.All(), 4)

	res := s.Execute(context.Background(), "w3-1")
	assert.True(t, res.Success)
	assert.Equal(t, []string{"https://app.uniswap.org"}, opened.urls)
	got, _ := s.Get("w3-1")
	assert.True(t, got.Completed)
	assert.Len(t, s.Pending(), 3)

	sign, ok := s.Add(model.Web3Task{Title: "Sign attendance", Type: model.Web3Sign})
	require.True(t, ok)
	assert.Equal(t, model.ChainEthereum, sign.Chain)
	res = s.Execute(context.Background(), sign.ID)
	assert.True(t, res.Success)
	assert.Equal(t, "0xsigned", res.TxHash)

	res = s.Execute(context.Background(), "missing")
	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, web3.ErrTaskNotFound)
}

func TestWeb3ExecuteFailureLeavesTaskOpen(t *testing.T) {
	c := newClock(at(2026, 4, 1, 12))
	s := NewWeb3Store(Web3Snapshot{}, testOptions(c), nil, nil, deeplink.OpenerFunc(func(context.Context, string) error { return nil }))
	s.LoadSamples()

	res := s.Execute(context.Background(), "w3-2")
	assert.False(t, res.Success)
	got, _ := s.Get("w3-2")
	assert.False(t, got.Completed)
}

func TestWeb3SnapshotOmitsWallet(t *testing.T) {
	c := newClock(at(2026, 4, 1, 12))
	rec := &recorder[Web3Snapshot]{}
	s := NewWeb3Store(Web3Snapshot{}, testOptions(c), rec.Hook(), newFakeWallet(), nil)
	require.True(t, s.Connect(context.Background()))
	s.Add(model.Web3Task{Title: "Mint"})

	raw, err := json.Marshal(rec.Last())
	require.NoError(t, err)
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Contains(t, fields, "tasks")
	assert.NotContains(t, fields, "wallet")
	assert.NotContains(t, string(raw), "0xabc")
}
