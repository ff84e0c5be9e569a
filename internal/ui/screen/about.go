package screen

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mohsinsiddi/yieldcli/internal/ui"
	"github.com/Mohsinsiddi/yieldcli/internal/ui/router"
)

var aboutIncluded = []string{
	"Wallet connection with watch-only and signing accounts",
	"Three bundled strategy ABIs",
	"Balance store shared by the vault screen",
	"Simulate-then-submit deposit and withdraw",
	"Component showcase",
}

var aboutSteps = []string{
	"yieldcli wallet add <name> --key   connect a signing wallet",
	"yieldcli config set strategy_address <addr>",
	"yieldcli vault                      open the vault screen",
}

// About is the "/about" route.
type About struct {
	width, height int
}

// NewAbout builds the about screen.
func NewAbout() *About { return &About{} }

func (a *About) Init() tea.Cmd { return nil }

func (a *About) SetSize(width, height int) { a.width, a.height = width, height }

func (a *About) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "b", "backspace":
			return a, ui.Back()
		case "q":
			return a, tea.Quit
		}
	}
	return a, nil
}

func (a *About) View() string {
	var sb strings.Builder
	sb.WriteString(ui.StyleTitle.Render("About This Template") + "\n")
	sb.WriteString("A starting point for building on yield-donating tokenized strategies.\n\n")

	sb.WriteString(ui.StyleHeader.Render("What's Included") + "\n")
	for _, s := range aboutIncluded {
		sb.WriteString("  " + ui.StyleSuccess.Render("✓") + " " + s + "\n")
	}
	sb.WriteString("\n" + ui.StyleHeader.Render("Getting Started") + "\n")
	for i, s := range aboutSteps {
		sb.WriteString(ui.Meta(string(rune('1'+i))+". ") + s + "\n")
	}
	sb.WriteString("\n" + ui.Meta("← esc / b back to home · q quit"))
	return sb.String()
}
