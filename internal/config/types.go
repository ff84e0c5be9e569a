package config

// Config holds all yieldcli configuration.
type Config struct {
	AppName         string              `json:"app_name"         mapstructure:"app_name"`
	ProjectID       string              `json:"project_id"       mapstructure:"project_id"`
	DefaultNetwork  string              `json:"default_network"  mapstructure:"default_network"`
	DefaultWallet   string              `json:"default_wallet"   mapstructure:"default_wallet"`
	NetworkMode     string              `json:"network_mode"     mapstructure:"network_mode"`  // "mainnet" | "testnet"
	RPCAlgorithm    string              `json:"rpc_algorithm"    mapstructure:"rpc_algorithm"` // "fastest" | "round-robin" | "failover"
	StrategyAddress string              `json:"strategy_address" mapstructure:"strategy_address"`
	AssetAddress    string              `json:"asset_address"    mapstructure:"asset_address"`
	AssetSymbol     string              `json:"asset_symbol"     mapstructure:"asset_symbol"`
	AssetDecimals   int32               `json:"asset_decimals"   mapstructure:"asset_decimals"`
	PollInterval    int                 `json:"poll_interval"    mapstructure:"poll_interval"` // seconds
	LogLevel        string              `json:"log_level"        mapstructure:"log_level"`
	CustomRPCs      map[string][]string `json:"custom_rpcs"      mapstructure:"custom_rpcs"`

	// internal: config dir path used for Save()
	configDir string
}
