package screen

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Mohsinsiddi/yieldcli/internal/contract"
	"github.com/Mohsinsiddi/yieldcli/internal/ui"
	"github.com/Mohsinsiddi/yieldcli/internal/ui/router"
)

// Showcase components, in tab order.
var showcase = []string{
	"Buttons", "Input", "Select", "Checkbox & Switch", "Dialog", "Toast",
	"Tabs", "Badge", "Separator", "Skeleton", "Spinner",
}

const (
	tabButtons = iota
	tabInput
	tabSelect
	tabToggles
	tabDialog
	tabToast
	tabTabs
)

var selectOptions = []string{"Morpho", "Sky", "Aave"}

const toastTTL = 2 * time.Second

type toastExpiredMsg struct{ id int }

// Home is the "/" route: the template title, the bundled ABI catalog and a
// live showcase of the terminal components.
type Home struct {
	keys   homeKeys
	help   help.Model
	abis   []contract.BuiltinKind
	tab    int
	input  textinput.Model
	spin   spinner.Model
	width  int
	height int

	selected   int
	checked    bool
	switchOn   bool
	dialogOpen bool
	subTab     int
	toast      string
	toastID    int
}

// NewHome builds the home screen over the strategy ABIs.
func NewHome() *Home {
	in := textinput.New()
	in.Placeholder = "Type something…"
	in.CharLimit = 64

	var abis []contract.BuiltinKind
	for _, b := range contract.AllBuiltins() {
		if b.ID != contract.ERC20 {
			abis = append(abis, b)
		}
	}

	return &Home{
		keys:  defaultHomeKeys,
		help:  help.New(),
		abis:  abis,
		input: in,
		spin:  newShowcaseSpinner(),
	}
}

// Init starts a fresh spinner on every visit. The new spinner ID makes any
// tick still in flight from an earlier visit a no-op.
func (h *Home) Init() tea.Cmd {
	h.spin = newShowcaseSpinner()
	return h.spin.Tick
}

func newShowcaseSpinner() spinner.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = ui.StyleChain
	return sp
}

func (h *Home) SetSize(width, height int) {
	h.width, h.height = width, height
	h.help.Width = width
}

// Tab returns the index of the showcased component.
func (h *Home) Tab() int { return h.tab }

func (h *Home) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		h.spin, cmd = h.spin.Update(msg)
		return h, cmd

	case toastExpiredMsg:
		if msg.id == h.toastID {
			h.toast = ""
		}
		return h, nil

	case tea.KeyMsg:
		return h.handleKey(msg)
	}
	return h, nil
}

func (h *Home) handleKey(msg tea.KeyMsg) (router.Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, h.keys.Next):
		h.setTab((h.tab + 1) % len(showcase))
		return h, nil
	case key.Matches(msg, h.keys.Prev):
		h.setTab((h.tab + len(showcase) - 1) % len(showcase))
		return h, nil
	}

	// The input tab owns printable keys while focused.
	if h.input.Focused() {
		var cmd tea.Cmd
		h.input, cmd = h.input.Update(msg)
		return h, cmd
	}

	switch {
	case key.Matches(msg, h.keys.Quit):
		return h, tea.Quit
	case key.Matches(msg, h.keys.About):
		return h, ui.Navigate(ui.RouteAbout)
	case key.Matches(msg, h.keys.Up):
		if h.tab == tabSelect && h.selected > 0 {
			h.selected--
		}
	case key.Matches(msg, h.keys.Down):
		if h.tab == tabSelect && h.selected < len(selectOptions)-1 {
			h.selected++
		}
	case key.Matches(msg, h.keys.Toggle):
		switch h.tab {
		case tabToggles:
			h.checked = !h.checked
			h.switchOn = !h.switchOn
		case tabTabs:
			h.subTab = 1 - h.subTab
		}
	case key.Matches(msg, h.keys.Enter):
		switch h.tab {
		case tabButtons:
			return h, h.showToast("Button pressed")
		case tabDialog:
			h.dialogOpen = !h.dialogOpen
		case tabToast:
			return h, h.showToast("Your changes have been saved.")
		}
	}
	return h, nil
}

func (h *Home) setTab(i int) {
	h.tab = i
	h.dialogOpen = false
	if i == tabInput {
		h.input.Focus()
	} else {
		h.input.Blur()
	}
}

func (h *Home) showToast(text string) tea.Cmd {
	h.toastID++
	h.toast = text
	id := h.toastID
	return tea.Tick(toastTTL, func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })
}

func (h *Home) View() string {
	var sb strings.Builder
	sb.WriteString(ui.StyleTitle.Render("Yield Donating Strategy Template") + "\n")
	sb.WriteString(ui.Meta("A terminal starter for tokenized yield-donating vaults.") + "\n\n")

	sb.WriteString(ui.StyleHeader.Render("Smart Contract ABIs") + "\n")
	for _, b := range h.abis {
		fns := contract.Functions(b.ABI)
		sb.WriteString(fmt.Sprintf("  %s  %s\n", ui.Val(b.Name), ui.Meta(b.File)))
		sb.WriteString(fmt.Sprintf("    %s %s\n",
			ui.Meta(b.Description),
			ui.Meta(fmt.Sprintf("(%d functions, %d events)", len(fns), len(contract.Events(b.ABI))))))
	}
	sb.WriteString("\n")

	sb.WriteString(ui.StyleHeader.Render("Components") + "\n")
	sb.WriteString(h.tabBar() + "\n\n")
	sb.WriteString(h.component() + "\n")

	if h.toast != "" {
		sb.WriteString("\n" + ui.StyleBorder.Render(ui.Success(h.toast)) + "\n")
	}

	sb.WriteString("\n" + h.help.View(h.keys))
	return sb.String()
}

func (h *Home) tabBar() string {
	parts := make([]string, len(showcase))
	for i, name := range showcase {
		if i == h.tab {
			parts[i] = ui.StyleSelected.Render(" " + name + " ")
		} else {
			parts[i] = ui.Meta(name)
		}
	}
	return lipgloss.NewStyle().Width(max(h.width, 40)).Render(strings.Join(parts, ui.Meta(" · ")))
}

func (h *Home) component() string {
	switch showcase[h.tab] {
	case "Buttons":
		return lipgloss.JoinHorizontal(lipgloss.Top,
			ui.Button("Default", true, true), " ",
			ui.Button("Secondary", true, false), " ",
			ui.Button("Disabled", false, false))
	case "Input":
		return h.input.View()
	case "Select":
		var sb strings.Builder
		for i, opt := range selectOptions {
			cursor := "  "
			if i == h.selected {
				cursor = ui.StyleChain.Render("› ")
				opt = ui.Val(opt)
			}
			sb.WriteString(cursor + opt + "\n")
		}
		return strings.TrimRight(sb.String(), "\n")
	case "Checkbox & Switch":
		box, sw := "[ ]", "○──"
		if h.checked {
			box = ui.StyleSuccess.Render("[x]")
		}
		if h.switchOn {
			sw = ui.StyleSuccess.Render("──●")
		}
		return box + " Accept terms\n" + sw + " Airplane mode"
	case "Dialog":
		if !h.dialogOpen {
			return ui.Meta("press enter to open the dialog")
		}
		return ui.StyleBorder.Render(ui.StyleTitle.Render("Are you sure?") + "\n" +
			"This action cannot be undone.\n" + ui.Meta("enter to close"))
	case "Toast":
		return ui.Meta("press enter to show a toast")
	case "Tabs":
		names := []string{"Account", "Password"}
		bodies := []string{"Make changes to your account here.", "Change your password here."}
		for i := range names {
			if i == h.subTab {
				names[i] = ui.StyleSelected.Render(" " + names[i] + " ")
			} else {
				names[i] = ui.Meta(" " + names[i] + " ")
			}
		}
		return strings.Join(names, "") + "\n" + bodies[h.subTab]
	case "Badge":
		badge := func(s string, c lipgloss.Color) string {
			return lipgloss.NewStyle().Background(c).Foreground(lipgloss.Color("#000000")).Padding(0, 1).Render(s)
		}
		return strings.Join([]string{
			badge("Default", ui.ColorChain),
			badge("Secondary", ui.ColorAddress),
			badge("Destructive", ui.ColorError),
			ui.StyleBorder.Padding(0).Render("Outline"),
		}, " ")
	case "Separator":
		return "Yield\n" + ui.Meta(strings.Repeat("─", 32)) + "\nDonating"
	case "Skeleton":
		bar := ui.StyleDim.Render
		return bar(strings.Repeat("░", 28)) + "\n" + bar(strings.Repeat("░", 20))
	case "Spinner":
		return h.spin.View() + " Loading…"
	}
	return ""
}
