package model

import "time"

// Web3TaskType is the on-chain action a task asks for.
type Web3TaskType string

const (
	Web3Mint   Web3TaskType = "mint"
	Web3Claim  Web3TaskType = "claim"
	Web3Vote   Web3TaskType = "vote"
	Web3Stake  Web3TaskType = "stake"
	Web3Bridge Web3TaskType = "bridge"
	Web3Swap   Web3TaskType = "swap"
	Web3Sign   Web3TaskType = "sign"
	Web3Custom Web3TaskType = "custom"
)

// ChainID names a supported blockchain.
type ChainID string

const (
	ChainEthereum ChainID = "ethereum"
	ChainPolygon  ChainID = "polygon"
	ChainArbitrum ChainID = "arbitrum"
	ChainBase     ChainID = "base"
	ChainOptimism ChainID = "optimism"
	ChainSolana   ChainID = "solana"
)

// Web3Task is a chore that involves a wallet.
type Web3Task struct {
	ID              string       `json:"id"`
	Type            Web3TaskType `json:"type"`
	Title           string       `json:"title"`
	Description     string       `json:"description,omitempty"`
	Chain           ChainID      `json:"chain"`
	ContractAddress string       `json:"contract_address,omitempty"`
	Deadline        *time.Time   `json:"deadline,omitempty"`
	EstimatedGas    string       `json:"estimated_gas,omitempty"`
	Value           string       `json:"value,omitempty"`
	DeepLink        string       `json:"deep_link,omitempty"`
	Completed       bool         `json:"completed"`
}

// WalletState describes the connected wallet. It is never persisted.
type WalletState struct {
	Connected bool    `json:"connected"`
	Address   string  `json:"address,omitempty"`
	Chain     ChainID `json:"chain,omitempty"`
	Balance   string  `json:"balance,omitempty"`
}
