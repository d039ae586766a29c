package web3

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/nhle/prodowl/internal/deeplink"
	"github.com/nhle/prodowl/internal/model"
)

var (
	ErrNoWallet          = errors.New("no wallet found")
	ErrUserRejected      = errors.New("user rejected the connection request")
	ErrChainNotSupported = errors.New("chain not supported for switching")
	ErrNoAccount         = errors.New("no account connected")
	ErrTaskNotFound      = errors.New("web3 task not found")
)

var weiPerEther = new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))

// Connect requests account access and reads the chain and balance.
func Connect(ctx context.Context, p Provider) (model.WalletState, error) {
	if p == nil {
		return model.WalletState{}, ErrNoWallet
	}

	var accounts []string
	if err := call(ctx, p, &accounts, "eth_requestAccounts"); err != nil {
		if IsCode(err, CodeUserRejected) {
			return model.WalletState{}, ErrUserRejected
		}
		return model.WalletState{}, err
	}
	if len(accounts) == 0 {
		return model.WalletState{}, ErrNoAccount
	}
	address := accounts[0]

	var chainHex string
	if err := call(ctx, p, &chainHex, "eth_chainId"); err != nil {
		return model.WalletState{}, err
	}

	var balanceHex string
	if err := call(ctx, p, &balanceHex, "eth_getBalance", address, "latest"); err != nil {
		return model.WalletState{}, err
	}
	balance, err := FormatBalance(balanceHex)
	if err != nil {
		return model.WalletState{}, err
	}

	return model.WalletState{
		Connected: true,
		Address:   address,
		Chain:     ChainFromHex(chainHex),
		Balance:   balance,
	}, nil
}

// Accounts returns the currently exposed accounts.
func Accounts(ctx context.Context, p Provider) ([]string, error) {
	if p == nil {
		return nil, ErrNoWallet
	}
	var accounts []string
	if err := call(ctx, p, &accounts, "eth_accounts"); err != nil {
		return nil, err
	}
	return accounts, nil
}

// SwitchChain asks the wallet to change network, adding it first when the
// wallet does not know it.
func SwitchChain(ctx context.Context, p Provider, id model.ChainID) error {
	if p == nil {
		return ErrNoWallet
	}
	chain, ok := Chains[id]
	if !ok || id == model.ChainSolana {
		return ErrChainNotSupported
	}

	_, err := p.Request(ctx, "wallet_switchEthereumChain", map[string]string{"chainId": chain.Hex})
	if err == nil {
		return nil
	}
	if !IsCode(err, CodeChainNotAdded) {
		return err
	}

	_, err = p.Request(ctx, "wallet_addEthereumChain", map[string]any{
		"chainId":           chain.Hex,
		"chainName":         chain.Name,
		"rpcUrls":           []string{chain.RPCURL},
		"blockExplorerUrls": []string{chain.Explorer},
	})
	return err
}

// SignMessage signs msg with the first exposed account.
func SignMessage(ctx context.Context, p Provider, msg string) (string, error) {
	accounts, err := Accounts(ctx, p)
	if err != nil {
		return "", err
	}
	if len(accounts) == 0 {
		return "", ErrNoAccount
	}
	var sig string
	if err := call(ctx, p, &sig, "personal_sign", msg, accounts[0]); err != nil {
		return "", err
	}
	return sig, nil
}

// Result is the outcome of executing a web3 task.
type Result struct {
	Success bool
	TxHash  string
	Err     error
}

// Execute carries out task. Tasks with a deep link are opened; sign tasks
// sign a completion message; other types succeed without a transaction.
func Execute(ctx context.Context, p Provider, o deeplink.Opener, task model.Web3Task) Result {
	if p == nil {
		return Result{Err: ErrNoWallet}
	}

	if task.DeepLink != "" {
		if err := o.OpenURL(ctx, task.DeepLink); err != nil {
			return Result{Err: err}
		}
		return Result{Success: true}
	}

	accounts, err := Accounts(ctx, p)
	if err != nil {
		return Result{Err: err}
	}
	if len(accounts) == 0 {
		return Result{Err: ErrNoAccount}
	}

	if task.Type == model.Web3Sign {
		sig, err := SignMessage(ctx, p, "Completing task: "+task.Title)
		if err != nil {
			return Result{Err: err}
		}
		return Result{Success: true, TxHash: sig}
	}

	return Result{Success: true}
}

// FormatBalance converts a hex wei amount to ether with four decimals.
func FormatBalance(hexWei string) (string, error) {
	digits := strings.TrimPrefix(strings.TrimPrefix(hexWei, "0x"), "0X")
	if digits == "" {
		digits = "0"
	}
	wei, ok := new(big.Int).SetString(digits, 16)
	if !ok {
		return "", fmt.Errorf("invalid balance %q", hexWei)
	}
	eth := new(big.Float).Quo(new(big.Float).SetInt(wei), weiPerEther)
	return eth.Text('f', 4), nil
}

func call(ctx context.Context, p Provider, out any, method string, params ...any) error {
	raw, err := p.Request(ctx, method, params...)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding %s result: %w", method, err)
	}
	return nil
}
