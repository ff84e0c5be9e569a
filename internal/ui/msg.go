package ui

import tea "github.com/charmbracelet/bubbletea"

// Route is a client-side screen path.
type Route string

const (
	RouteHome  Route = "/"
	RouteAbout Route = "/about"
	RouteVault Route = "/vault"
)

// NavigateMsg asks the router to push the screen registered for To.
type NavigateMsg struct {
	To Route
}

// BackMsg asks the router to pop the current screen.
type BackMsg struct{}

// Navigate returns a command that routes to r.
func Navigate(r Route) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{To: r} }
}

// Back returns a command that returns to the previous screen.
func Back() tea.Cmd {
	return func() tea.Msg { return BackMsg{} }
}
