package chain

import (
	"errors"
	"strings"
)

// ErrChainNotFound is returned when a chain is not in the registry.
var ErrChainNotFound = errors.New("chain not found")

// Chain holds the metadata the vault client needs for one EVM network.
type Chain struct {
	Name            string   `json:"name"`
	DisplayName     string   `json:"display_name"`
	ChainID         int64    `json:"chain_id"`
	TestnetChainID  int64    `json:"testnet_chain_id"`
	NativeCurrency  string   `json:"native_currency"`
	MainnetRPCs     []string `json:"mainnet_rpcs"`
	TestnetRPCs     []string `json:"testnet_rpcs"`
	MainnetExplorer string   `json:"mainnet_explorer"`
	TestnetExplorer string   `json:"testnet_explorer"`
	TestnetName     string   `json:"testnet_name"`
}

// Registry is the chain list the wallet provider is configured with.
type Registry struct {
	chains []Chain
	byName map[string]*Chain
	byID   map[int64]*Chain
}

// NewRegistry returns the registry of supported networks.
func NewRegistry() *Registry {
	chains := allChains()
	r := &Registry{
		chains: chains,
		byName: make(map[string]*Chain, len(chains)),
		byID:   make(map[int64]*Chain, len(chains)*2),
	}
	for i := range r.chains {
		c := &r.chains[i]
		r.byName[c.Name] = c
		r.byID[c.ChainID] = c
		if c.TestnetChainID != 0 {
			r.byID[c.TestnetChainID] = c
		}
	}
	return r
}

// All returns every chain in the registry.
func (r *Registry) All() []Chain {
	return r.chains
}

// GetByName finds a chain by its slug name (e.g. "base", "ethereum").
func (r *Registry) GetByName(name string) (*Chain, error) {
	c, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return nil, ErrChainNotFound
	}
	return c, nil
}

// GetByChainID finds a chain by its mainnet or testnet chain ID.
func (r *Registry) GetByChainID(id int64) (*Chain, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, ErrChainNotFound
	}
	return c, nil
}

// RPCs returns the RPC list for a chain in the given mode ("mainnet"/"testnet").
func (c *Chain) RPCs(mode string) []string {
	if mode == "testnet" {
		return c.TestnetRPCs
	}
	return c.MainnetRPCs
}

// ID returns the chain ID used for signing in the given mode.
func (c *Chain) ID(mode string) int64 {
	if mode == "testnet" {
		return c.TestnetChainID
	}
	return c.ChainID
}

// Explorer returns the explorer URL for a chain in the given mode.
func (c *Chain) Explorer(mode string) string {
	if mode == "testnet" {
		return c.TestnetExplorer
	}
	return c.MainnetExplorer
}

// TxURL links a transaction hash on the mode's explorer.
func (c *Chain) TxURL(mode, hash string) string {
	base := c.Explorer(mode)
	if base == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/tx/" + hash
}

// --- chain data ---

func allChains() []Chain {
	return []Chain{
		{
			Name: "ethereum", DisplayName: "Ethereum", ChainID: 1, TestnetChainID: 11155111,
			NativeCurrency:  "ETH",
			MainnetRPCs:     []string{"https://eth.llamarpc.com", "https://ethereum-rpc.publicnode.com"},
			TestnetRPCs:     []string{"https://ethereum-sepolia-rpc.publicnode.com", "https://sepolia.gateway.tenderly.co"},
			MainnetExplorer: "https://etherscan.io",
			TestnetExplorer: "https://sepolia.etherscan.io",
			TestnetName:     "Sepolia",
		},
		{
			Name: "base", DisplayName: "Base", ChainID: 8453, TestnetChainID: 84532,
			NativeCurrency:  "ETH",
			MainnetRPCs:     []string{"https://mainnet.base.org", "https://base.llamarpc.com"},
			TestnetRPCs:     []string{"https://sepolia.base.org"},
			MainnetExplorer: "https://basescan.org",
			TestnetExplorer: "https://sepolia.basescan.org",
			TestnetName:     "Base Sepolia",
		},
		{
			Name: "arbitrum", DisplayName: "Arbitrum", ChainID: 42161, TestnetChainID: 421614,
			NativeCurrency:  "ETH",
			MainnetRPCs:     []string{"https://arb1.arbitrum.io/rpc", "https://arbitrum.llamarpc.com"},
			TestnetRPCs:     []string{"https://sepolia-rollup.arbitrum.io/rpc"},
			MainnetExplorer: "https://arbiscan.io",
			TestnetExplorer: "https://sepolia.arbiscan.io",
			TestnetName:     "Arb Sepolia",
		},
		{
			Name: "optimism", DisplayName: "Optimism", ChainID: 10, TestnetChainID: 11155420,
			NativeCurrency:  "ETH",
			MainnetRPCs:     []string{"https://mainnet.optimism.io", "https://optimism.llamarpc.com"},
			TestnetRPCs:     []string{"https://sepolia.optimism.io"},
			MainnetExplorer: "https://optimistic.etherscan.io",
			TestnetExplorer: "https://sepolia-optimism.etherscan.io",
			TestnetName:     "OP Sepolia",
		},
	}
}
