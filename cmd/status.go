package cmd

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Mohsinsiddi/yieldcli/internal/amount"
	"github.com/Mohsinsiddi/yieldcli/internal/config"
	"github.com/Mohsinsiddi/yieldcli/internal/contract"
	"github.com/Mohsinsiddi/yieldcli/internal/store"
	"github.com/Mohsinsiddi/yieldcli/internal/ui"
	"github.com/Mohsinsiddi/yieldcli/internal/vault"
)

var (
	statusAmount string
	statusWatch  bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Read both balances and simulate both actions once",
	Long: `Read the strategy share balance and the stable-token balance of the
connected wallet, and simulate deposit and withdraw for --amount. The four
queries run in parallel; one failing does not hide the others.

  yieldcli status
  yieldcli status --amount 25.5
  yieldcli status --watch        # repeat every poll_interval`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !amount.Valid(statusAmount) {
			return fmt.Errorf("%w: %q\n  Up to 6 decimals, e.g. 12.345678", amount.ErrInvalidAmount, statusAmount)
		}
		interval := time.Duration(cfg.PollInterval) * time.Second

		ctx := cmd.Context()
		sess, err := openSession(ctx, interval/2)
		if err != nil {
			return err
		}

		view := vault.NewView(store.New())
		for {
			snap := readStatus(ctx, sess.svc, view, sess.wallet.Account(), statusAmount)
			printStatus(sess, snap)
			if !statusWatch {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(interval):
				fmt.Println()
			}
		}
	},
}

// statusSnapshot is one round of the four vault queries.
type statusSnapshot struct {
	view       *vault.View
	shares     *big.Int
	stable     *big.Int
	sims       [2]*contract.Request
	simErrs    [2]error
	readErrors int
}

// statusReader is the part of the vault service status needs.
type statusReader interface {
	ReadShares(ctx context.Context, account common.Address) (*big.Int, error)
	ReadStableBalance(ctx context.Context, account common.Address) (*big.Int, error)
	Simulate(ctx context.Context, a vault.Action, account common.Address, input string) (*contract.Request, error)
}

// readStatus fans the four queries out and binds the results through view,
// the same way the vault screen does. Reusing view across rounds keeps the
// last good balances when a read fails.
func readStatus(ctx context.Context, svc statusReader, view *vault.View, account common.Address, input string) statusSnapshot {
	gen, _ := view.SetAccount(account)
	view.SetAmount(input)

	snap := statusSnapshot{view: view}
	var errs [2]error

	qctx, cancel := context.WithTimeout(ctx, config.QueryTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(qctx)
	g.Go(func() error {
		snap.shares, errs[0] = svc.ReadShares(gctx, account)
		return nil
	})
	g.Go(func() error {
		snap.stable, errs[1] = svc.ReadStableBalance(gctx, account)
		return nil
	})
	if input != "" {
		for _, a := range vault.Actions {
			g.Go(func() error {
				snap.sims[a], snap.simErrs[a] = svc.Simulate(gctx, a, account, input)
				return nil
			})
		}
	}
	_ = g.Wait() // every query reports through its own slot

	view.ApplyShares(gen, snap.shares)
	view.ApplyStableBalance(gen, snap.stable)
	for _, a := range vault.Actions {
		view.SetSimulation(gen, a, input, snap.sims[a])
	}
	for _, err := range errs {
		if err != nil {
			snap.readErrors++
		}
	}
	return snap
}

func printStatus(sess *session, snap statusSnapshot) {
	b := snap.view.Store().Balances()
	pairs := [][2]string{
		{"Wallet", sess.wallet.Name + " " + ui.TruncateAddr(sess.wallet.Address)},
		{"Network", sess.chain.DisplayName + " (" + cfg.NetworkMode + ")"},
		{"Strategy", cfg.StrategyAddress},
		{"Current Shares", vault.FormatNumber(b.Shares)},
		{cfg.AssetSymbol + " Balance", vault.FormatNumber(b.StableBalance)},
	}
	if snap.stable != nil {
		pairs = append(pairs, [2]string{cfg.AssetSymbol + " (units)", amount.FormatUnits(snap.stable, cfg.AssetDecimals)})
	}
	for _, a := range vault.Actions {
		pairs = append(pairs, [2]string{a.String() + " " + statusAmount, simLabel(snap, a)})
	}
	fmt.Println(ui.KeyValueBlock("Vault Status", pairs))

	if snap.readErrors > 0 {
		fmt.Println(ui.Warn(fmt.Sprintf("%d balance read(s) failed; showing last known values.", snap.readErrors)))
	}
	fmt.Println(ui.Meta("Updated " + time.Now().Format("15:04:05")))
}

func simLabel(snap statusSnapshot, a vault.Action) string {
	if req := snap.view.Request(a); req != nil {
		return ui.StyleSuccess.Render(fmt.Sprintf("ready (gas %d)", req.Gas))
	}
	if err := snap.simErrs[a]; err != nil {
		return ui.StyleError.Render("unavailable: " + ui.TrimErr(err))
	}
	return ui.Meta("unavailable")
}

func init() {
	statusCmd.Flags().StringVarP(&statusAmount, "amount", "a", "1", "amount to simulate, in asset units")
	statusCmd.Flags().BoolVar(&statusWatch, "watch", false, "repeat every poll_interval until interrupted")
}
