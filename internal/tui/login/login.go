// ABOUTME: Login form screen built on a huh form
// ABOUTME: Emits submitted credentials for the root model to resolve

package login

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/pbarbosa/livraria-cli/internal/tui/icons"
	"github.com/pbarbosa/livraria-cli/internal/tui/styles"
)

// SubmittedMsg carries the entered credentials.
type SubmittedMsg struct {
	Email    string
	Password string
}

// CancelledMsg is sent when the user backs out.
type CancelledMsg struct{}

// Login is the credential entry screen.
type Login struct {
	form     *huh.Form
	email    string
	password string
	err      string
	busy     bool
}

// New creates the login screen.
func New() *Login {
	l := &Login{}
	l.form = l.newForm()
	return l
}

func (l *Login) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("voce@example.com").
				Value(&l.email),
			huh.NewInput().
				Title("Senha").
				EchoMode(huh.EchoModePassword).
				Value(&l.password),
		).Title("Entrar"),
	).WithTheme(huh.ThemeBase())
}

// Init implements tea.Model.
func (l *Login) Init() tea.Cmd {
	return l.form.Init()
}

// SetError shows a failure from the previous attempt and re-arms the form.
func (l *Login) SetError(msg string) tea.Cmd {
	l.err = msg
	l.busy = false
	l.password = ""
	l.form = l.newForm()
	return l.form.Init()
}

// Update implements tea.Model.
func (l *Login) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return l, func() tea.Msg { return CancelledMsg{} }
	}
	if l.busy {
		return l, nil
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	if l.form.State == huh.StateCompleted {
		l.busy = true
		email, password := strings.TrimSpace(l.email), l.password
		return l, func() tea.Msg { return SubmittedMsg{Email: email, Password: password} }
	}
	return l, cmd
}

// View implements tea.Model.
func (l *Login) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Login.String() + " Login"))
	sb.WriteString("\n")
	if l.err != "" {
		sb.WriteString(styles.StatusError.Render(l.err))
		sb.WriteString("\n\n")
	}
	if l.busy {
		sb.WriteString("Entrando...")
		return sb.String()
	}
	sb.WriteString(l.form.View())
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("esc voltar  ·  sem conta? esc e depois R para registrar"))
	return sb.String()
}
