// Package router is a stack-based navigator over bubbletea screens.
package router

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mohsinsiddi/yieldcli/internal/ui"
)

// Screen is one routable view.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Factory builds a fresh screen each time its route is visited.
type Factory func() Screen

type entry struct {
	route  ui.Route
	screen Screen
}

// Router manages navigation between screens using a stack.
type Router struct {
	routes map[ui.Route]Factory
	stack  []entry
	width  int
	height int
}

// New creates a router showing initial. It panics if initial is not among
// routes, since that is a wiring mistake.
func New(routes map[ui.Route]Factory, initial ui.Route) *Router {
	f, ok := routes[initial]
	if !ok {
		panic("router: no screen registered for " + string(initial))
	}
	return &Router{
		routes: routes,
		stack:  []entry{{route: initial, screen: f()}},
	}
}

// Init initializes the initial screen.
func (r *Router) Init() tea.Cmd {
	return r.current().screen.Init()
}

// Update handles routing messages and forwards everything else to the
// current screen.
func (r *Router) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.NavigateMsg:
		return r, r.Navigate(msg.To)

	case ui.BackMsg:
		return r, r.Back()

	case tea.WindowSizeMsg:
		r.SetSize(msg.Width, msg.Height)
		return r, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return r, tea.Quit
		case "esc":
			if len(r.stack) > 1 {
				return r, r.Back()
			}
		}
	}

	top := &r.stack[len(r.stack)-1]
	var cmd tea.Cmd
	top.screen, cmd = top.screen.Update(msg)
	return r, cmd
}

// View renders the current screen.
func (r *Router) View() string {
	return r.current().screen.View()
}

// SetSize records the terminal size and passes it to the current screen.
func (r *Router) SetSize(width, height int) {
	r.width = width
	r.height = height
	r.current().screen.SetSize(width, height)
}

// Push adds screen on top of the stack under route.
func (r *Router) Push(route ui.Route, screen Screen) tea.Cmd {
	screen.SetSize(r.width, r.height)
	r.stack = append(r.stack, entry{route: route, screen: screen})
	return screen.Init()
}

// Navigate pushes a fresh screen for route. Navigating to the route already
// shown, or to an unknown route, does nothing.
func (r *Router) Navigate(route ui.Route) tea.Cmd {
	if route == r.Path() {
		return nil
	}
	f, ok := r.routes[route]
	if !ok {
		return nil
	}
	return r.Push(route, f())
}

// Back pops the current screen. The root screen is never popped.
func (r *Router) Back() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack = r.stack[:len(r.stack)-1]
	top := r.current().screen
	top.SetSize(r.width, r.height)
	return top.Init()
}

// Path returns the route of the current screen.
func (r *Router) Path() ui.Route {
	return r.current().route
}

// Depth returns the number of screens on the stack.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Current returns the current screen.
func (r *Router) Current() Screen {
	return r.current().screen
}

func (r *Router) current() *entry {
	return &r.stack[len(r.stack)-1]
}
