package config

import "time"

// Gas limits used when the node cannot estimate a simulated call.
const (
	GasLimitVaultDeposit  = uint64(250_000)
	GasLimitVaultWithdraw = uint64(300_000)
	GasLimitContractCall  = uint64(200_000)
)

// Timeouts shared by cmd and the TUI.
const (
	RPCSelectTimeout = 10 * time.Second
	QueryTimeout     = 15 * time.Second
	TxConfirmTimeout = 3 * time.Minute
)

// DefaultStrategyAddress and DefaultAssetAddress are the template's fixed
// call targets. Both point at mainnet USDC until a strategy is deployed.
const (
	DefaultStrategyAddress = "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"
	DefaultAssetAddress    = "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"
)
