package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"
)

const (
	defaultAppName   = "yieldcli"
	defaultProjectID = "YOUR_PROJECT_ID"
	defaultNetwork   = "ethereum"
	defaultMode      = "mainnet"
	defaultAlgorithm = "fastest"
	defaultSymbol    = "USDC"
	defaultDecimals  = 6
	defaultInterval  = 12
	defaultLogLevel  = "info"

	configFile  = "config.json"
	walletsFile = "wallets.json"

	envPrefix = "YIELDCLI"
)

// ErrUnknownKey is returned by Set for keys that are not user-settable.
var ErrUnknownKey = errors.New("unknown config key")

// Load reads config from dir (or creates defaults). dir defaults to ~/.yieldcli.
// YIELDCLI_<KEY> environment variables override file values.
func Load(dir string) (*Config, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home dir: %w", err)
		}
		dir = filepath.Join(home, ".yieldcli")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	for key, value := range defaultValues() {
		v.SetDefault(key, value)
	}

	path := filepath.Join(dir, configFile)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	cfg.configDir = dir
	if cfg.CustomRPCs == nil {
		cfg.CustomRPCs = make(map[string][]string)
	}

	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.configDir, configFile), data, 0o600)
}

// Set updates a single user-settable key from its string form.
func (c *Config) Set(key, value string) error {
	switch key {
	case "app_name":
		c.AppName = value
	case "project_id":
		c.ProjectID = value
	case "default_network":
		c.DefaultNetwork = strings.ToLower(value)
	case "default_wallet":
		c.DefaultWallet = value
	case "network_mode":
		if value != "mainnet" && value != "testnet" {
			return fmt.Errorf("invalid mode %q; choose: mainnet, testnet", value)
		}
		c.NetworkMode = value
	case "rpc_algorithm":
		switch value {
		case "fastest", "round-robin", "failover":
		default:
			return fmt.Errorf("invalid algorithm %q; choose: fastest, round-robin, failover", value)
		}
		c.RPCAlgorithm = value
	case "strategy_address", "asset_address":
		if !common.IsHexAddress(value) {
			return fmt.Errorf("invalid address %q", value)
		}
		if key == "strategy_address" {
			c.StrategyAddress = value
		} else {
			c.AssetAddress = value
		}
	case "asset_symbol":
		c.AssetSymbol = value
	case "asset_decimals":
		n, err := strconv.ParseInt(value, 10, 32)
		if err != nil || n < 0 || n > 36 {
			return fmt.Errorf("invalid decimals %q", value)
		}
		c.AssetDecimals = int32(n)
	case "poll_interval":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid poll interval %q (seconds, > 0)", value)
		}
		c.PollInterval = n
	case "log_level":
		switch value {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("invalid log level %q", value)
		}
		c.LogLevel = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// AddRPC adds a custom RPC URL for a chain.
func (c *Config) AddRPC(chain, url string) error {
	if c.CustomRPCs == nil {
		c.CustomRPCs = make(map[string][]string)
	}
	if slices.Contains(c.CustomRPCs[chain], url) {
		return fmt.Errorf("RPC %s already exists for chain %s", url, chain)
	}
	c.CustomRPCs[chain] = append(c.CustomRPCs[chain], url)
	return nil
}

// RemoveRPC removes a custom RPC URL for a chain.
func (c *Config) RemoveRPC(chain, url string) error {
	rpcs := c.CustomRPCs[chain]
	idx := slices.Index(rpcs, url)
	if idx == -1 {
		return fmt.Errorf("RPC %s not found for chain %s", url, chain)
	}
	c.CustomRPCs[chain] = slices.Delete(rpcs, idx, idx+1)
	return nil
}

// GetRPCs returns custom RPCs for a chain.
func (c *Config) GetRPCs(chain string) []string {
	return c.CustomRPCs[chain]
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return c.configDir
}

// WalletsPath is where the wallet store lives.
func (c *Config) WalletsPath() string {
	return filepath.Join(c.configDir, walletsFile)
}

// LogPath is where the rotating log file lives.
func (c *Config) LogPath() string {
	return filepath.Join(c.configDir, "yieldcli.log")
}

// Pairs returns the settable keys and their current values, in display order.
func (c *Config) Pairs() [][2]string {
	return [][2]string{
		{"app_name", c.AppName},
		{"project_id", c.ProjectID},
		{"default_network", c.DefaultNetwork},
		{"network_mode", c.NetworkMode},
		{"rpc_algorithm", c.RPCAlgorithm},
		{"default_wallet", c.DefaultWallet},
		{"strategy_address", c.StrategyAddress},
		{"asset_address", c.AssetAddress},
		{"asset_symbol", c.AssetSymbol},
		{"asset_decimals", strconv.Itoa(int(c.AssetDecimals))},
		{"poll_interval", strconv.Itoa(c.PollInterval)},
		{"log_level", c.LogLevel},
	}
}

// --- helpers ---

func defaultValues() map[string]any {
	return map[string]any{
		"app_name":         defaultAppName,
		"project_id":       defaultProjectID,
		"default_network":  defaultNetwork,
		"default_wallet":   "",
		"network_mode":     defaultMode,
		"rpc_algorithm":    defaultAlgorithm,
		"strategy_address": DefaultStrategyAddress,
		"asset_address":    DefaultAssetAddress,
		"asset_symbol":     defaultSymbol,
		"asset_decimals":   defaultDecimals,
		"poll_interval":    defaultInterval,
		"log_level":        defaultLogLevel,
	}
}
