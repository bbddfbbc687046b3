// ABOUTME: Session gate for protected TUI screens
// ABOUTME: Defers rendering until the session resolves, then shows or redirects

package guard

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pbarbosa/livraria-cli/internal/session"
	"github.com/pbarbosa/livraria-cli/internal/tui/styles"
)

// RedirectMsg asks the root model to navigate to the login screen. Emitted
// exactly once per guard when the session resolves Unauthenticated.
type RedirectMsg struct{}

// Guard wraps an inner screen model and gates it on session resolution.
// While the session is Verifying it renders only a neutral pending indicator
// and forwards nothing to the inner model, so the inner screen cannot run
// side effects before the gate decision.
type Guard struct {
	state func() session.State
	inner tea.Model

	innerStarted bool
	redirected   bool
	spin         spinner.Model
}

// New creates a guard over inner, reading the session state via state.
func New(state func() session.State, inner tea.Model) *Guard {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)
	return &Guard{state: state, inner: inner, spin: sp}
}

// Init implements tea.Model. The inner model's Init is deferred until the
// session is known to be authenticated.
func (g *Guard) Init() tea.Cmd {
	return g.spin.Tick
}

// Update implements tea.Model.
func (g *Guard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch g.state() {
	case session.StateVerifying:
		if tick, ok := msg.(spinner.TickMsg); ok {
			var cmd tea.Cmd
			g.spin, cmd = g.spin.Update(tick)
			return g, cmd
		}
		return g, nil

	case session.StateUnauthenticated:
		if g.redirected {
			return g, nil
		}
		g.redirected = true
		return g, func() tea.Msg { return RedirectMsg{} }

	default: // StateAuthenticated
		var cmds []tea.Cmd
		if !g.innerStarted {
			g.innerStarted = true
			if cmd := g.inner.Init(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		inner, cmd := g.inner.Update(msg)
		g.inner = inner
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return g, tea.Batch(cmds...)
	}
}

// View implements tea.Model.
func (g *Guard) View() string {
	switch g.state() {
	case session.StateVerifying:
		return g.spin.View() + " Verificando sessão..."
	case session.StateUnauthenticated:
		return ""
	default:
		return g.inner.View()
	}
}

// Inner returns the wrapped model, for the root model to reach the active
// screen after the gate opened.
func (g *Guard) Inner() tea.Model {
	return g.inner
}
