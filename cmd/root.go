package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Mohsinsiddi/yieldcli/internal/config"
	"github.com/Mohsinsiddi/yieldcli/internal/logging"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/Mohsinsiddi/yieldcli/cmd.Version=1.2.3" .
var Version = "0.1.0"

var (
	cfgDir     string
	cfg        *config.Config
	logger     *zap.Logger
	verbose    bool
	testnet    bool
	mainnet    bool
	walletFlag string
)

// rootCmd is the top-level command. Without a sub-command it opens the vault.
var rootCmd = &cobra.Command{
	Use:   "yieldcli",
	Short: "Terminal client for a yield-donating strategy vault",
	Long: `yieldcli connects a wallet to a yield-donating tokenized strategy.

  See your strategy shares and stable-token balance, simulate deposits and
  withdrawals against the node, then submit exactly what was simulated.

Global flags --testnet and --mainnet override the configured network mode
for a single invocation. Persist with: yieldcli config set network_mode <mode>`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if testnet {
			cfg.NetworkMode = "testnet"
		}
		if mainnet {
			cfg.NetworkMode = "mainnet"
		}

		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(logging.Options{Path: cfg.LogPath(), Level: level})
		if err != nil {
			return fmt.Errorf("opening log: %w", err)
		}
		logger = logger.With(zap.String("cmd", cmd.CommandPath()), zap.String("network", cfg.DefaultNetwork), zap.String("mode", cfg.NetworkMode))
		logger.Debug("config loaded", zap.String("dir", cfg.Dir()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVault(cmd.Context())
	},
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if logger != nil {
			logger.Error("command failed", zap.Error(err))
			_ = logger.Sync()
		}
		fmt.Fprintln(os.Stderr, errLine(err))
		stop()
		os.Exit(1)
	}
}

func init() {
	// YIELDCLI_CONFIG_DIR env var overrides the --config default.
	if envDir := os.Getenv("YIELDCLI_CONFIG_DIR"); envDir != "" {
		cfgDir = envDir
	}

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", cfgDir, "config directory (default: ~/.yieldcli)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to the log file")
	rootCmd.PersistentFlags().BoolVar(&testnet, "testnet", false, "use testnet instead of mainnet")
	rootCmd.PersistentFlags().BoolVar(&mainnet, "mainnet", false, "use mainnet instead of testnet")
	rootCmd.PersistentFlags().StringVarP(&walletFlag, "wallet", "w", "", "wallet to act for (default: the default wallet)")
	rootCmd.MarkFlagsMutuallyExclusive("testnet", "mainnet")

	rootCmd.AddCommand(
		vaultCmd,
		statusCmd,
		depositCmd,
		withdrawCmd,
		walletCmd,
		abisCmd,
		showcaseCmd,
		configCmd,
		rpcCmd,
	)
}
