// Package web3 talks to an EIP-1193 style wallet over JSON-RPC and knows
// the chains and starter tasks the app supports.
package web3

import (
	"time"

	"github.com/nhle/prodowl/internal/model"
)

// Chain describes a supported network.
type Chain struct {
	Name     string
	Hex      string
	RPCURL   string
	Explorer string
}

// Chains is the table of supported networks.
var Chains = map[model.ChainID]Chain{
	model.ChainEthereum: {Name: "Ethereum", Hex: "0x1", RPCURL: "https://eth.llamarpc.com", Explorer: "https://etherscan.io"},
	model.ChainPolygon:  {Name: "Polygon", Hex: "0x89", RPCURL: "https://polygon.llamarpc.com", Explorer: "https://polygonscan.com"},
	model.ChainArbitrum: {Name: "Arbitrum", Hex: "0xa4b1", RPCURL: "https://arb1.arbitrum.io/rpc", Explorer: "https://arbiscan.io"},
	model.ChainBase:     {Name: "Base", Hex: "0x2105", RPCURL: "https://mainnet.base.org", Explorer: "https://basescan.org"},
	model.ChainOptimism: {Name: "Optimism", Hex: "0xa", RPCURL: "https://mainnet.optimism.io", Explorer: "https://optimistic.etherscan.io"},
	model.ChainSolana:   {Name: "Solana", Hex: "solana", RPCURL: "https://api.mainnet-beta.solana.com", Explorer: "https://solscan.io"},
}

// ChainOrder lists chains in display order.
var ChainOrder = []model.ChainID{
	model.ChainEthereum, model.ChainPolygon, model.ChainArbitrum,
	model.ChainBase, model.ChainOptimism, model.ChainSolana,
}

// ChainFromHex maps a provider chain id back to a ChainID. Unknown ids
// return "".
func ChainFromHex(hex string) model.ChainID {
	for id, c := range Chains {
		if c.Hex == hex {
			return id
		}
	}
	return ""
}

// FormatAddress shortens an address to 0x1234...abcd.
func FormatAddress(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}

// Samples returns the starter set of web3 tasks.
func Samples(now time.Time) []model.Web3Task {
	deadline := now.Add(48 * time.Hour)
	return []model.Web3Task{
		{
			ID:          "w3-1",
			Type:        model.Web3Claim,
			Title:       "Claim your AIRDROP",
			Description: "You have unclaimed tokens waiting!",
			Chain:       model.ChainEthereum,
			Deadline:    &deadline,
			DeepLink:    "https://app.uniswap.org",
		},
		{
			ID:          "w3-2",
			Type:        model.Web3Vote,
			Title:       "Vote on governance proposal",
			Description: "Your tokens want to be heard",
			Chain:       model.ChainEthereum,
			DeepLink:    "https://snapshot.org",
		},
		{
			ID:           "w3-3",
			Type:         model.Web3Stake,
			Title:        "Stake ETH for rewards",
			Description:  "Earn passive income on your holdings",
			Chain:        model.ChainEthereum,
			EstimatedGas: "0.002 ETH",
		},
		{
			ID:          "w3-4",
			Type:        model.Web3Mint,
			Title:       "Mint daily NFT reward",
			Description: "Free mint for active users",
			Chain:       model.ChainBase,
			DeepLink:    "https://opensea.io",
		},
	}
}
