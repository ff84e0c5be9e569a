package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Mohsinsiddi/yieldcli/internal/store"
	"github.com/Mohsinsiddi/yieldcli/internal/ui"
	"github.com/Mohsinsiddi/yieldcli/internal/ui/router"
	"github.com/Mohsinsiddi/yieldcli/internal/ui/screen"
	"github.com/Mohsinsiddi/yieldcli/internal/vault"
	"github.com/Mohsinsiddi/yieldcli/internal/wallet"
)

var vaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Open the vault screen (default)",
	Long: `Open the interactive vault screen for the connected wallet.

  Current Shares and USDC Balance refresh every poll_interval seconds.
  Type an amount; both actions are simulated as you type and a button is
  enabled only once its simulation succeeds.

  d deposit · w withdraw · tab focus · r refresh · q quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVault(cmd.Context())
	},
}

var showcaseCmd = &cobra.Command{
	Use:   "showcase",
	Short: "Browse the template home (/) and about (/about) screens",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r := router.New(map[ui.Route]router.Factory{
			ui.RouteHome:  func() router.Screen { return screen.NewHome() },
			ui.RouteAbout: func() router.Screen { return screen.NewAbout() },
		}, ui.RouteHome)
		_, err := tea.NewProgram(r, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
		return ignoreKilled(err)
	},
}

func runVault(ctx context.Context) error {
	interval := time.Duration(cfg.PollInterval) * time.Second

	sess, err := openSession(ctx, interval/2)
	if err != nil {
		return err
	}
	if !sess.wallet.CanSign() {
		fmt.Println(ui.Info(fmt.Sprintf("Wallet %q is watch-only: balances and simulations only.", sess.wallet.Name)))
	} else if !wallet.DefaultSession().Unlocked(sess.wallet.Name) {
		fmt.Println(ui.Hint("Run `yieldcli wallet unlock` first to avoid keychain prompts mid-screen."))
	}

	view := vault.NewView(store.New())
	v := screen.NewVault(ctx, screen.VaultOptions{
		View:     view,
		Service:  sess.svc,
		Wallet:   sess.wallet.Name,
		Account:  sess.wallet.Account(),
		Symbol:   cfg.AssetSymbol,
		Interval: interval,
		Logger:   logger,
	})
	defer v.Close()

	r := router.New(map[ui.Route]router.Factory{
		ui.RouteVault: func() router.Screen { return v },
	}, ui.RouteVault)

	logger.Info("vault opened",
		zap.String("wallet", sess.wallet.Name),
		zap.String("strategy", cfg.StrategyAddress),
		zap.Duration("poll", interval))

	_, err = tea.NewProgram(r, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	b := view.Store().Balances()
	logger.Info("vault closed", zap.Float64("shares", b.Shares), zap.Float64("stable", b.StableBalance))
	return ignoreKilled(err)
}

// ignoreKilled treats an interrupt-driven program exit as a clean quit.
func ignoreKilled(err error) error {
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
