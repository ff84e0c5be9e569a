package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/yieldcli/internal/contract"
	"github.com/Mohsinsiddi/yieldcli/internal/ui"
)

var (
	abisJSON      bool
	abisReadsOnly bool
)

var abisCmd = &cobra.Command{
	Use:   "abis",
	Short: "Browse the bundled contract ABIs",
}

var abisListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the bundled ABIs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t := ui.NewTable([]ui.Column{
			{Title: "ID", Width: 16, Style: ui.Fixed(ui.StyleChain)},
			{Title: "Name", Width: 36},
			{Title: "Functions", Width: 10, Align: ui.AlignRight},
			{Title: "Events", Width: 7, Align: ui.AlignRight},
		})
		for _, b := range contract.AllBuiltins() {
			t.AddRow(ui.Row{
				b.ID,
				b.Name,
				fmt.Sprintf("%d", len(b.ABI.Methods)),
				fmt.Sprintf("%d", len(b.ABI.Events)),
			})
		}
		fmt.Println(t.Render())
		fmt.Println(ui.Hint("Show one with: yieldcli abis show <id>"))
		return nil
	},
}

var abisShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the functions, selectors and events of a bundled ABI",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, ok := contract.GetBuiltin(args[0])
		if !ok {
			return fmt.Errorf("unknown ABI %q\n  Run `yieldcli abis list` for the bundled IDs", args[0])
		}

		if abisJSON {
			raw, err := b.Source()
			if err != nil {
				return err
			}
			fmt.Println(string(raw))
			return nil
		}

		fmt.Println(ui.StyleTitle.Render(b.Name))
		fmt.Println(ui.Meta(b.Description + " · " + b.File))
		fmt.Println()

		t := ui.NewTable([]ui.Column{
			{Title: "Selector", Width: 10, Style: ui.Fixed(ui.StyleAddress)},
			{Title: "Signature", Width: 52},
			{Title: "Mutability", Width: 10, Style: ui.MutabilityStyle},
			{Title: "Returns", Width: 16},
		})
		for _, f := range abiRows(b, abisReadsOnly) {
			t.AddRow(ui.Row{f.Selector, f.Signature, f.StateMutability, f.Outputs})
		}
		fmt.Println(t.Render())

		if events := contract.Events(b.ABI); len(events) > 0 && !abisReadsOnly {
			fmt.Println(ui.StyleHeader.Render("Events"))
			for _, e := range events {
				fmt.Println("  " + e)
			}
		}
		return nil
	},
}

// abiRows lists b's functions, optionally only view/pure ones.
func abiRows(b contract.BuiltinKind, readsOnly bool) []contract.FunctionInfo {
	all := contract.Functions(b.ABI)
	if !readsOnly {
		return all
	}
	reads := all[:0:0]
	for _, f := range all {
		if f.IsRead() {
			reads = append(reads, f)
		}
	}
	return reads
}

func init() {
	abisShowCmd.Flags().BoolVar(&abisJSON, "json", false, "print the raw ABI JSON")
	abisShowCmd.Flags().BoolVar(&abisReadsOnly, "reads", false, "only view and pure functions")
	abisCmd.AddCommand(abisListCmd, abisShowCmd)
}
