package state

import (
	"context"
	"slices"
	"strings"

	"github.com/nhle/prodowl/internal/deeplink"
	"github.com/nhle/prodowl/internal/model"
	"github.com/nhle/prodowl/internal/web3"
)

// Web3Snapshot is the persisted form of Web3Store. Wallet state is
// deliberately absent and reconnects on each launch.
type Web3Snapshot struct {
	Tasks []model.Web3Task `json:"tasks"`
}

// Web3Store owns the wallet connection and wallet-bound tasks.
type Web3Store struct {
	tasks      []model.Web3Task
	wallet     model.WalletState
	connecting bool
	lastErr    error

	provider web3.Provider
	opener   deeplink.Opener
	opts     Options
	hook     Hook[Web3Snapshot]
}

// NewWeb3Store creates a Web3Store. A nil provider means no wallet is
// installed.
func NewWeb3Store(initial Web3Snapshot, opts Options, hook Hook[Web3Snapshot], provider web3.Provider, opener deeplink.Opener) *Web3Store {
	return &Web3Store{
		tasks:    slices.Clone(initial.Tasks),
		provider: provider,
		opener:   opener,
		opts:     opts.withDefaults(),
		hook:     hook,
	}
}

// Snapshot returns the persisted part of the store.
func (s *Web3Store) Snapshot() Web3Snapshot {
	return Web3Snapshot{Tasks: slices.Clone(s.tasks)}
}

func (s *Web3Store) commit() { emit(s.hook, s.Snapshot()) }

func (s *Web3Store) index(id string) int {
	return slices.IndexFunc(s.tasks, func(t model.Web3Task) bool { return t.ID == id })
}

// Provider returns the wallet provider, which may be nil.
func (s *Web3Store) Provider() web3.Provider { return s.provider }

// Opener returns the URL opener used for dApp links.
func (s *Web3Store) Opener() deeplink.Opener { return s.opener }

// Wallet returns the current wallet state.
func (s *Web3Store) Wallet() model.WalletState { return s.wallet }

// Connecting reports whether a connect is in flight.
func (s *Web3Store) Connecting() bool { return s.connecting }

// Err returns the last integration error, or nil.
func (s *Web3Store) Err() error { return s.lastErr }

// ClearError dismisses the last error.
func (s *Web3Store) ClearError() { s.lastErr = nil }

// Connect requests wallet access. Failures are kept as the store error.
func (s *Web3Store) Connect(ctx context.Context) bool {
	s.BeginConnect()
	w, err := web3.Connect(ctx, s.provider)
	return s.FinishConnect(w, err)
}

// BeginConnect marks a connect as in flight and clears the last error.
// Use it with FinishConnect when the wallet call runs off the UI loop.
func (s *Web3Store) BeginConnect() {
	s.connecting = true
	s.lastErr = nil
}

// FinishConnect applies the outcome of a connect.
func (s *Web3Store) FinishConnect(w model.WalletState, err error) bool {
	s.connecting = false
	if err != nil {
		s.lastErr = err
		return false
	}
	s.wallet = w
	return true
}

// Disconnect forgets the wallet.
func (s *Web3Store) Disconnect() {
	s.wallet = model.WalletState{}
}

// AccountsChanged follows account switches in the wallet. No accounts
// means the wallet disconnected.
func (s *Web3Store) AccountsChanged(accounts []string) {
	if len(accounts) == 0 {
		s.Disconnect()
		return
	}
	s.wallet.Address = accounts[0]
}

// SwitchChain asks the wallet to change network.
func (s *Web3Store) SwitchChain(ctx context.Context, chain model.ChainID) bool {
	return s.FinishSwitch(chain, web3.SwitchChain(ctx, s.provider, chain))
}

// FinishSwitch applies the outcome of a chain switch.
func (s *Web3Store) FinishSwitch(chain model.ChainID, err error) bool {
	if err != nil {
		s.lastErr = err
		return false
	}
	s.wallet.Chain = chain
	return true
}

// Add stores t under a fresh id as not completed. A blank title is ignored.
func (s *Web3Store) Add(t model.Web3Task) (model.Web3Task, bool) {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return model.Web3Task{}, false
	}
	t.ID = "w3-" + s.opts.NewID()
	t.Completed = false
	if t.Chain == "" {
		t.Chain = model.ChainEthereum
	}
	s.tasks = append(s.tasks, t)
	s.commit()
	return t, true
}

// Complete marks the task done.
func (s *Web3Store) Complete(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Completed = true
	s.commit()
	return true
}

// Delete removes the task with id.
func (s *Web3Store) Delete(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.commit()
	return true
}

// Execute runs the task through the wallet and completes it on success.
func (s *Web3Store) Execute(ctx context.Context, id string) web3.Result {
	i := s.index(id)
	if i < 0 {
		return web3.Result{Err: web3.ErrTaskNotFound}
	}
	res := web3.Execute(ctx, s.provider, s.opener, s.tasks[i])
	s.FinishExecute(id, res)
	return res
}

// FinishExecute applies the outcome of a task execution.
func (s *Web3Store) FinishExecute(id string, res web3.Result) {
	if res.Success {
		s.Complete(id)
	}
}

// LoadSamples replaces all tasks with the starter set.
func (s *Web3Store) LoadSamples() {
	s.tasks = web3.Samples(s.opts.Now())
	s.commit()
}

// All returns every task in insertion order.
func (s *Web3Store) All() []model.Web3Task { return slices.Clone(s.tasks) }

// Get returns the task with id.
func (s *Web3Store) Get(id string) (model.Web3Task, bool) {
	i := s.index(id)
	if i < 0 {
		return model.Web3Task{}, false
	}
	return s.tasks[i], true
}

// Pending returns tasks not yet completed.
func (s *Web3Store) Pending() []model.Web3Task {
	var out []model.Web3Task
	for _, t := range s.tasks {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}
