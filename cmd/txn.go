package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Mohsinsiddi/yieldcli/internal/amount"
	"github.com/Mohsinsiddi/yieldcli/internal/contract"
	"github.com/Mohsinsiddi/yieldcli/internal/ui"
	"github.com/Mohsinsiddi/yieldcli/internal/vault"
	"github.com/Mohsinsiddi/yieldcli/internal/wallet"
)

var txYes bool

var depositCmd = &cobra.Command{
	Use:   "deposit <amount>",
	Short: "Simulate, confirm and submit a deposit into the strategy",
	Long: `Deposit <amount> of the asset into the strategy, receiving shares.

  The call is simulated first; only a successful simulation is offered for
  confirmation, and exactly that request is signed and broadcast.

  yieldcli deposit 100
  yieldcli deposit 0.5 --wallet alice --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAction(cmd, vault.Deposit, args[0])
	},
}

var withdrawCmd = &cobra.Command{
	Use:   "withdraw <amount>",
	Short: "Simulate, confirm and submit a withdrawal from the strategy",
	Long: `Withdraw <amount> of the asset from the strategy, burning shares.
The connected wallet is both receiver and owner.

  yieldcli withdraw 50`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAction(cmd, vault.Withdraw, args[0])
	},
}

func runAction(cmd *cobra.Command, a vault.Action, input string) error {
	if !amount.Valid(input) {
		return fmt.Errorf("%w: %q\n  Up to 6 decimals, e.g. 12.345678", amount.ErrInvalidAmount, input)
	}
	ctx := cmd.Context()

	sess, err := openSession(ctx, 0)
	if err != nil {
		return err
	}
	if !sess.wallet.CanSign() {
		return fmt.Errorf("%w: %q cannot sign transactions\n  To add a signing wallet: yieldcli wallet add <name> --key <private-key>",
			wallet.ErrWatchOnly, sess.wallet.Name)
	}
	warnIfNoSession(sess.wallet.Name)

	spin := ui.NewSpinner(fmt.Sprintf("Simulating %s of %s %s…", a.Method(), input, cfg.AssetSymbol))
	spin.Start()
	req, err := sess.svc.Simulate(ctx, a, sess.wallet.Account(), input)
	spin.Stop()
	if err != nil {
		if errors.Is(err, contract.ErrReverted) {
			return fmt.Errorf("%s would revert: %w\n  Check your balance with: yieldcli status", a, err)
		}
		return fmt.Errorf("simulating %s: %w", a.Method(), err)
	}

	gasPrice, _ := sess.node.SuggestGasPrice(ctx)
	fmt.Println(ui.KeyValueBlock(a.String()+" preview", requestPairs(req, input, cfg.AssetSymbol, gasPrice, sess.chain.NativeCurrency)))

	if !txYes && !ui.ConfirmDanger(fmt.Sprintf("Sign and broadcast this %s?", a.Method())) {
		fmt.Println(ui.Meta("Cancelled."))
		return nil
	}

	hash, err := sess.svc.Submit(ctx, req)
	if err != nil {
		return fmt.Errorf("submitting %s: %w", a.Method(), err)
	}
	fmt.Println(ui.Success("Submitted " + ui.Addr(hash.Hex())))
	if url := explorerTxURL(sess.chain, cfg.NetworkMode, hash); url != "" {
		fmt.Println(ui.Meta("  " + url))
	}

	spin = ui.NewSpinner("Waiting for confirmation…")
	spin.Start()
	receipt, err := sess.svc.Wait(ctx, hash)
	spin.Stop()
	if err != nil {
		return fmt.Errorf("%s not confirmed: %w", a.Method(), err)
	}
	logger.Info("action confirmed", zap.Stringer("action", a), zap.String("amount", input), zap.Uint64("block", receipt.BlockNumber))
	fmt.Println(ui.Success(fmt.Sprintf("%s confirmed in block %d (gas used %d)", a, receipt.BlockNumber, receipt.GasUsed)))
	return nil
}

func init() {
	for _, c := range []*cobra.Command{depositCmd, withdrawCmd} {
		c.Flags().BoolVarP(&txYes, "yes", "y", false, "skip the confirmation prompt")
	}
}
