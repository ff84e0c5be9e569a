package router

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mohsinsiddi/yieldcli/internal/ui"
)

type stubScreen struct {
	name          string
	inits         int
	updates       []tea.Msg
	width, height int
}

func (s *stubScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	s.updates = append(s.updates, msg)
	return s, nil
}

func (s *stubScreen) View() string { return s.name }

func (s *stubScreen) SetSize(w, h int) { s.width, s.height = w, h }

func newTestRouter() (*Router, map[ui.Route][]*stubScreen) {
	built := map[ui.Route][]*stubScreen{}
	factory := func(route ui.Route, name string) Factory {
		return func() Screen {
			s := &stubScreen{name: name}
			built[route] = append(built[route], s)
			return s
		}
	}
	r := New(map[ui.Route]Factory{
		ui.RouteHome:  factory(ui.RouteHome, "home"),
		ui.RouteAbout: factory(ui.RouteAbout, "about"),
	}, ui.RouteHome)
	return r, built
}

func TestNewStartsAtInitialRoute(t *testing.T) {
	r, built := newTestRouter()
	assert.Equal(t, ui.RouteHome, r.Path())
	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, "home", r.View())
	require.Len(t, built[ui.RouteHome], 1)
}

func TestNewPanicsOnUnknownInitialRoute(t *testing.T) {
	assert.Panics(t, func() {
		New(map[ui.Route]Factory{}, ui.RouteHome)
	})
}

func TestNavigatePushesScreen(t *testing.T) {
	r, built := newTestRouter()
	r.Navigate(ui.RouteAbout)

	assert.Equal(t, ui.RouteAbout, r.Path())
	assert.Equal(t, 2, r.Depth())
	assert.Equal(t, "about", r.View())
	require.Len(t, built[ui.RouteAbout], 1)
	assert.Equal(t, 1, built[ui.RouteAbout][0].inits)
}

func TestNavigateToCurrentOrUnknownRouteIsNoop(t *testing.T) {
	r, _ := newTestRouter()
	assert.Nil(t, r.Navigate(ui.RouteHome))
	assert.Nil(t, r.Navigate(ui.Route("/missing")))
	assert.Equal(t, 1, r.Depth())
}

func TestNavigateMsg(t *testing.T) {
	r, _ := newTestRouter()
	r.Update(ui.NavigateMsg{To: ui.RouteAbout})
	assert.Equal(t, ui.RouteAbout, r.Path())
}

func TestEscGoesBack(t *testing.T) {
	r, built := newTestRouter()
	r.Navigate(ui.RouteAbout)

	r.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ui.RouteHome, r.Path())
	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, 1, built[ui.RouteHome][0].inits, "home is re-initialised on return")
}

func TestEscAtRootReachesScreen(t *testing.T) {
	r, built := newTestRouter()
	r.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, 1, r.Depth())
	assert.Len(t, built[ui.RouteHome][0].updates, 1)
}

func TestBackMsgAndBackAtRoot(t *testing.T) {
	r, _ := newTestRouter()
	assert.Nil(t, r.Back())

	r.Navigate(ui.RouteAbout)
	r.Update(ui.BackMsg{})
	assert.Equal(t, ui.RouteHome, r.Path())
}

func TestWindowSizePropagates(t *testing.T) {
	r, built := newTestRouter()
	r.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	home := built[ui.RouteHome][0]
	assert.Equal(t, 120, home.width)
	assert.Equal(t, 40, home.height)

	r.Navigate(ui.RouteAbout)
	about := built[ui.RouteAbout][0]
	assert.Equal(t, 120, about.width, "pushed screens inherit the size")
}

func TestRevisitBuildsFreshScreen(t *testing.T) {
	r, built := newTestRouter()
	r.Navigate(ui.RouteAbout)
	r.Back()
	r.Navigate(ui.RouteAbout)
	assert.Len(t, built[ui.RouteAbout], 2)
}

func TestOtherMessagesReachCurrentScreen(t *testing.T) {
	r, built := newTestRouter()
	r.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Len(t, built[ui.RouteHome][0].updates, 1)
}

func TestCtrlCQuits(t *testing.T) {
	r, _ := newTestRouter()
	_, cmd := r.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
