package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/yieldcli/internal/ui"
	"github.com/Mohsinsiddi/yieldcli/internal/wallet"
)

var (
	walletKeyFlag      string
	walletGenerateFlag bool
	walletUnlockAll    bool
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage the wallets the vault can connect",
}

var walletAddCmd = &cobra.Command{
	Use:   "add <name> [address]",
	Short: "Add a wallet",
	Long: `Add a watch-only wallet by address, a signing wallet from a private key,
or generate a fresh signing wallet.

  yieldcli wallet add viewer 0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045
  yieldcli wallet add alice --key 0x<private-key>
  yieldcli wallet add fresh --generate

Signing keys go to the OS keychain; only a reference is written to disk.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		mgr := newWalletManager()

		switch {
		case walletGenerateFlag:
			w, hexKey, err := mgr.Generate(name)
			if err != nil {
				return err
			}
			fmt.Println()
			fmt.Printf("  %s  %s\n", ui.Meta("Wallet :"), ui.Val(w.Name))
			fmt.Printf("  %s  %s\n\n", ui.Meta("Address:"), ui.Addr(w.Address))
			fmt.Println(ui.DangerBox(
				ui.Warn("SAVE YOUR PRIVATE KEY. It is shown only once. Never share it.") + "\n\n" +
					ui.Val(hexKey),
			))
			fmt.Println()

		case walletKeyFlag != "":
			if err := mgr.AddWithKey(name, walletKeyFlag); err != nil {
				return err
			}
			w, _ := mgr.Get(name)
			fmt.Println(ui.Success(fmt.Sprintf("Signing wallet %q added: %s", name, ui.Addr(w.Address))))

		default:
			if len(args) < 2 {
				return fmt.Errorf("address required for watch-only wallet\n  Usage: yieldcli wallet add <name> <address>\n  Or for signing: yieldcli wallet add <name> --key <private-key>")
			}
			w := &wallet.Wallet{Address: args[1], Type: wallet.TypeWatchOnly}
			if err := mgr.Add(name, w); err != nil {
				return err
			}
			fmt.Println(ui.Success(fmt.Sprintf("Watch-only wallet %q added: %s", name, ui.Addr(w.Address))))
		}
		fmt.Println(ui.Hint(fmt.Sprintf("Set as default with: yieldcli wallet use %s", name)))
		return nil
	},
}

var walletListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all wallets",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := newWalletManager()
		wallets := mgr.List()

		if len(wallets) == 0 {
			fmt.Println(ui.Info("No wallets configured yet."))
			fmt.Println(ui.Hint("Add one with: yieldcli wallet add myWallet 0xYourAddress"))
			return nil
		}

		session := wallet.DefaultSession()
		t := ui.NewTable([]ui.Column{
			{Title: "Name", Width: 16},
			{Title: "Address", Width: 44, Style: ui.Fixed(ui.StyleAddress)},
			{Title: "Type", Width: 12},
			{Title: "Session", Width: 9},
			{Title: "Default", Width: 8},
		})
		for _, w := range wallets {
			def := ""
			if w.IsDefault || w.Name == cfg.DefaultWallet {
				def = "✓"
			}
			sess := ""
			if w.CanSign() && session.Unlocked(w.Name) {
				sess = "unlocked"
			}
			t.AddRow(ui.Row{w.Name, w.Address, walletTypeLabel(w.Type), sess, def})
		}
		fmt.Println(t.Render())
		fmt.Println(ui.Meta(fmt.Sprintf("%d wallet(s) configured", len(wallets))))
		return nil
	},
}

var walletRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a wallet and its stored key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if !ui.ConfirmDanger(fmt.Sprintf("Remove wallet %q?", name)) {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}
		mgr := newWalletManager()
		if err := mgr.Remove(name); err != nil {
			return err
		}
		if cfg.DefaultWallet == name {
			cfg.DefaultWallet = ""
			if err := cfg.Save(); err != nil {
				return err
			}
		}
		fmt.Println(ui.Success(fmt.Sprintf("Wallet %q removed.", name)))
		return nil
	},
}

var walletUseCmd = &cobra.Command{
	Use:   "use [name]",
	Short: "Set the default wallet (pick from a list without a name)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := newWalletManager()

		var name string
		if len(args) > 0 {
			name = args[0]
		} else {
			picked, err := ui.PickItem("Default Wallet", walletItems(mgr.List(), nil))
			if err != nil {
				return err
			}
			if picked == "" {
				fmt.Println(ui.Meta("Cancelled."))
				return nil
			}
			name = picked
		}

		if err := mgr.SetDefault(name); err != nil {
			return err
		}
		cfg.DefaultWallet = name
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Default wallet set to %q.", name)))
		fmt.Println(ui.Hint("The vault connects this wallet when --wallet is not given."))
		return nil
	},
}

var walletUnlockCmd = &cobra.Command{
	Use:   "unlock [name]",
	Short: "Cache wallet key(s) for the session (skips future keychain prompts)",
	Long: `Retrieve private keys from the OS keychain once, check each one signs as
its wallet's address, and cache them in a restricted session file.

  yieldcli wallet unlock          # pick from a list
  yieldcli wallet unlock alice
  yieldcli wallet unlock --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := newWalletManager()
		session := wallet.DefaultSession()

		var signing []*wallet.Wallet
		for _, w := range mgr.List() {
			if w.CanSign() {
				signing = append(signing, w)
			}
		}
		if len(signing) == 0 {
			fmt.Println(ui.Info("No signing wallets found."))
			fmt.Println(ui.Hint("Add one with: yieldcli wallet add <name> --key <private-key>"))
			return nil
		}

		var names []string
		switch {
		case walletUnlockAll:
			for _, w := range signing {
				names = append(names, w.Name)
			}
		case len(args) > 0:
			names = args
		default:
			picked, err := ui.PickItem("Unlock Wallet  ·  select to cache key", walletItems(signing, session))
			if err != nil {
				return err
			}
			if picked == "" {
				fmt.Println(ui.Meta("Cancelled."))
				return nil
			}
			names = []string{picked}
		}

		fmt.Println(ui.Info("Your OS keychain may prompt once per wallet being unlocked."))
		unlocked, err := wallet.Unlock(mgr, session, names...)
		if err != nil {
			return err
		}
		for _, name := range unlocked {
			fmt.Println(ui.Success(fmt.Sprintf("  %-20s unlocked", name)))
		}
		if len(unlocked) > 0 {
			fmt.Println(ui.Success(fmt.Sprintf("%d wallet(s) cached. Zero prompts until 'yieldcli wallet lock'.", len(unlocked))))
		}
		return nil
	},
}

var walletLockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Clear the session cache (re-enables keychain prompts)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session := wallet.DefaultSession()
		if !session.Active() {
			fmt.Println(ui.Meta("No active session, nothing to clear."))
			return nil
		}
		if err := wallet.Lock(session); err != nil {
			return fmt.Errorf("clearing session: %w", err)
		}
		fmt.Println(ui.Success("Session cleared. Keychain will be used on next access."))
		return nil
	},
}

func init() {
	walletAddCmd.Flags().StringVar(&walletKeyFlag, "key", "", "private key for signing wallet (stored in OS keychain)")
	walletAddCmd.Flags().BoolVar(&walletGenerateFlag, "generate", false, "generate a new signing wallet")
	walletAddCmd.MarkFlagsMutuallyExclusive("key", "generate")
	walletUnlockCmd.Flags().BoolVar(&walletUnlockAll, "all", false, "unlock all signing wallets")
	walletCmd.AddCommand(walletAddCmd, walletListCmd, walletRemoveCmd, walletUseCmd, walletUnlockCmd, walletLockCmd)
}

// warnIfNoSession prints a one-line hint when the wallet's key is not
// cached, so the user knows why a keychain dialog may appear.
func warnIfNoSession(name string) {
	if !wallet.DefaultSession().Unlocked(name) {
		fmt.Println(ui.Info("No session active. The keychain may prompt before signing."))
		fmt.Println(ui.Hint("Run 'yieldcli wallet unlock --all' once to skip future prompts."))
		fmt.Println()
	}
}

// walletTypeLabel converts an internal wallet type to a user-friendly label.
func walletTypeLabel(t string) string {
	switch t {
	case wallet.TypeSigning:
		return "read-write"
	default:
		return t
	}
}

// walletItems builds picker entries; session may be nil.
func walletItems(wallets []*wallet.Wallet, session *wallet.Session) []ui.PickerItem {
	items := make([]ui.PickerItem, len(wallets))
	for i, w := range wallets {
		sub := ui.TruncateAddr(w.Address) + "  " + walletTypeLabel(w.Type)
		if session != nil && session.Unlocked(w.Name) {
			sub += "  [cached]"
		}
		items[i] = ui.PickerItem{Label: w.Name, SubLabel: sub, Value: w.Name}
	}
	return items
}
