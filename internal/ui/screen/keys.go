// Package screen holds the routable bubbletea screens.
package screen

import "github.com/charmbracelet/bubbles/key"

type homeKeys struct {
	Next   key.Binding
	Prev   key.Binding
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Enter  key.Binding
	About  key.Binding
	Quit   key.Binding
}

func (k homeKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Toggle, k.Enter, k.About, k.Quit}
}

func (k homeKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev, k.Up, k.Down}, {k.Toggle, k.Enter, k.About, k.Quit}}
}

var defaultHomeKeys = homeKeys{
	Next:   key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab", "next component")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("shift+tab", "previous")),
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle: key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "toggle")),
	Enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "activate")),
	About:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "about")),
	Quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
}

type vaultKeys struct {
	Deposit  key.Binding
	Withdraw key.Binding
	Focus    key.Binding
	Submit   key.Binding
	Refresh  key.Binding
	Quit     key.Binding
}

func (k vaultKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Deposit, k.Withdraw, k.Focus, k.Refresh, k.Quit}
}

func (k vaultKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Deposit, k.Withdraw, k.Submit}, {k.Focus, k.Refresh, k.Quit}}
}

var defaultVaultKeys = vaultKeys{
	Deposit:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "deposit")),
	Withdraw: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "withdraw")),
	Focus:    key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "focus")),
	Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "press focused button")),
	Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
}
