package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/yieldcli/internal/chain"
	"github.com/Mohsinsiddi/yieldcli/internal/config"
	"github.com/Mohsinsiddi/yieldcli/internal/rpc"
	"github.com/Mohsinsiddi/yieldcli/internal/ui"
)

var rpcCmd = &cobra.Command{
	Use:   "rpc",
	Short: "Inspect the RPC endpoints the vault can use",
}

var rpcListCmd = &cobra.Command{
	Use:   "list [chain]",
	Short: "List built-in and custom RPCs for a chain (default: the configured network)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := chainArg(args)
		if err != nil {
			return err
		}

		fmt.Printf("%s\n", ui.StyleTitle.Render(fmt.Sprintf("RPCs for %s", c.DisplayName)))

		fmt.Println(ui.StyleHeader.Render("Built-in RPCs:"))
		for _, r := range c.MainnetRPCs {
			fmt.Printf("  %s %s\n", ui.Meta("(mainnet)"), r)
		}
		for _, r := range c.TestnetRPCs {
			fmt.Printf("  %s %s\n", ui.Meta("(testnet)"), r)
		}

		if custom := cfg.GetRPCs(c.Name); len(custom) > 0 {
			fmt.Println(ui.StyleHeader.Render("Custom RPCs:"))
			for _, r := range custom {
				fmt.Printf("  %s\n", r)
			}
		}
		return nil
	},
}

var rpcBenchmarkCmd = &cobra.Command{
	Use:   "benchmark [chain]",
	Short: "Probe every RPC for a chain and show which one the vault would pick",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := chainArg(args)
		if err != nil {
			return err
		}
		urls := rpcCandidates(c, cfg.GetRPCs(c.Name), cfg.NetworkMode)

		fmt.Printf("%s\n\n", ui.StyleTitle.Render(fmt.Sprintf("Benchmarking %s %s RPCs...", c.DisplayName, cfg.NetworkMode)))

		ctx, cancel := context.WithTimeout(cmd.Context(), config.RPCSelectTimeout)
		defer cancel()
		results := rpc.Probe(ctx, urls)

		t := ui.NewTable([]ui.Column{
			{Title: "RPC URL", Width: 44},
			{Title: "Latency", Width: 10, Align: ui.AlignRight},
			{Title: "Block #", Width: 12, Align: ui.AlignRight},
			{Title: "Status", Width: 10, Style: ui.HealthStyle},
		})
		for _, r := range results {
			status := "healthy"
			latency := fmt.Sprintf("%dms", r.Latency.Milliseconds())
			block := fmt.Sprintf("%d", r.BlockNumber)
			if !r.Healthy() {
				status, latency, block = "down", "-", "-"
			}
			t.AddRow(ui.Row{r.URL, latency, block, status})
		}
		fmt.Println(t.Render())

		winner, err := rpc.Pick(results, rpc.Algorithm(cfg.RPCAlgorithm), 0)
		if err != nil {
			fmt.Println(ui.Err(err.Error()))
			return nil
		}
		fmt.Println(ui.Success(fmt.Sprintf("%s picks %s", cfg.RPCAlgorithm, winner.URL)))
		return nil
	},
}

// chainArg resolves the optional chain argument, defaulting to the
// configured network.
func chainArg(args []string) (*chain.Chain, error) {
	name := cfg.DefaultNetwork
	if len(args) > 0 {
		name = args[0]
	}
	c, err := chain.NewRegistry().GetByName(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, name)
	}
	return c, nil
}

func init() {
	rpcCmd.AddCommand(rpcListCmd, rpcBenchmarkCmd)
}
