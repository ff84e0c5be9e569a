package chain_test

import (
	"testing"

	"github.com/Mohsinsiddi/yieldcli/internal/chain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryGetByName(t *testing.T) {
	registry := chain.NewRegistry()

	tests := []struct {
		name    string
		chainID int64
	}{
		{"ethereum", 1},
		{"base", 8453},
		{"arbitrum", 42161},
		{"optimism", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := registry.GetByName(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.name, c.Name)
			assert.Equal(t, tt.chainID, c.ChainID)
		})
	}
}

func TestRegistryGetByNameIsCaseInsensitive(t *testing.T) {
	c, err := chain.NewRegistry().GetByName("Ethereum")
	require.NoError(t, err)
	assert.Equal(t, "ethereum", c.Name)
}

func TestRegistryGetUnknownChain(t *testing.T) {
	registry := chain.NewRegistry()
	_, err := registry.GetByName("unknownchain")
	assert.ErrorIs(t, err, chain.ErrChainNotFound)
}

func TestRegistryGetByTestnetChainID(t *testing.T) {
	c, err := chain.NewRegistry().GetByChainID(11155111)
	require.NoError(t, err)
	assert.Equal(t, "ethereum", c.Name)
}

func TestAllChainsHaveRPCAndIDs(t *testing.T) {
	registry := chain.NewRegistry()
	for _, c := range registry.All() {
		t.Run(c.Name, func(t *testing.T) {
			assert.NotEmpty(t, c.MainnetRPCs, "chain %s has no mainnet RPCs", c.Name)
			assert.NotEmpty(t, c.TestnetRPCs, "chain %s has no testnet RPCs", c.Name)
			assert.NotZero(t, c.ID("mainnet"))
			assert.NotZero(t, c.ID("testnet"))
		})
	}
}

func TestChainModeAccessors(t *testing.T) {
	c, err := chain.NewRegistry().GetByName("ethereum")
	require.NoError(t, err)

	assert.Equal(t, c.TestnetRPCs, c.RPCs("testnet"))
	assert.Equal(t, c.MainnetRPCs, c.RPCs("mainnet"))
	assert.Equal(t, int64(11155111), c.ID("testnet"))
	assert.Equal(t, "https://etherscan.io/tx/0xabc", c.TxURL("mainnet", "0xabc"))
	assert.Equal(t, "https://sepolia.etherscan.io/tx/0xabc", c.TxURL("testnet", "0xabc"))
}
