package cmd

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/yieldcli/internal/chain"
	"github.com/Mohsinsiddi/yieldcli/internal/config"
	"github.com/Mohsinsiddi/yieldcli/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configShowCmd = &cobra.Command{
	Use:     "show",
	Aliases: []string{"list"},
	Short:   "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(ui.KeyValueBlock("Current Configuration", cfg.Pairs()))

		if len(cfg.CustomRPCs) > 0 {
			chains := make([]string, 0, len(cfg.CustomRPCs))
			for c := range cfg.CustomRPCs {
				chains = append(chains, c)
			}
			sort.Strings(chains)
			pairs := make([][2]string, 0, len(chains))
			for _, c := range chains {
				pairs = append(pairs, [2]string{c, strings.Join(cfg.CustomRPCs[c], ", ")})
			}
			fmt.Println(ui.KeyValueBlock("Custom RPCs", pairs))
		}
		fmt.Println(ui.Meta("Config directory: " + cfg.Dir()))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set one configuration value and save it.

Keys: app_name, project_id, default_network, network_mode, rpc_algorithm,
default_wallet, strategy_address, asset_address, asset_symbol,
asset_decimals, poll_interval, log_level`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if key == "default_network" {
			if _, err := chain.NewRegistry().GetByName(value); err != nil {
				return fmt.Errorf("%w: %q", err, value)
			}
		}
		if err := cfg.Set(key, value); err != nil {
			if errors.Is(err, config.ErrUnknownKey) {
				return fmt.Errorf("%w\n  Run `yieldcli config set --help` for the list of keys", err)
			}
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("%s set to %q", key, value)))
		return nil
	},
}

var configRPCAddCmd = &cobra.Command{
	Use:   "rpc-add <chain> <url>",
	Short: "Add a custom RPC URL for a chain (tried before the built-ins)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		chainName, url := args[0], args[1]
		if _, err := chain.NewRegistry().GetByName(chainName); err != nil {
			return fmt.Errorf("%w: %q", err, chainName)
		}
		if err := cfg.AddRPC(chainName, url); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Added RPC for %s: %s", ui.ChainName(chainName), url)))
		return nil
	},
}

var configRPCRemoveCmd = &cobra.Command{
	Use:   "rpc-remove <chain> <url>",
	Short: "Remove a custom RPC URL",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		chainName, url := args[0], args[1]
		if err := cfg.RemoveRPC(chainName, url); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Removed RPC for %s: %s", chainName, url)))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd, configRPCAddCmd, configRPCRemoveCmd)
}
