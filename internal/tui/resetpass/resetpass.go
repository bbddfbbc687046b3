// ABOUTME: Password reset screens: ticket request and confirmation
// ABOUTME: The reset ticket is transient and only held while the form is open

package resetpass

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/pbarbosa/livraria-cli/internal/tui/styles"
)

// RequestSubmittedMsg asks the root model to request a reset ticket.
type RequestSubmittedMsg struct {
	Email string
}

// ConfirmSubmittedMsg asks the root model to redeem the reset ticket.
type ConfirmSubmittedMsg struct {
	Token       string
	NewPassword string
}

// CancelledMsg is sent when the user backs out.
type CancelledMsg struct{}

type phase int

const (
	phaseRequest phase = iota
	phaseConfirm
	phaseDone
)

// Reset is the two-phase password reset screen.
type Reset struct {
	form  *huh.Form
	phase phase

	email       string
	token       string
	newPassword string

	err  string
	busy bool
}

// New creates the reset screen in the request phase.
func New() *Reset {
	r := &Reset{}
	r.form = r.requestForm()
	return r
}

func (r *Reset) requestForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Email").Placeholder("voce@example.com").Value(&r.email),
		).Title("Redefinir senha"),
	).WithTheme(huh.ThemeBase())
}

func (r *Reset) confirmForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Token").
				Description("Verifique seu email para obter o código de redefinição.").
				Value(&r.token),
			huh.NewInput().Title("Nova senha").EchoMode(huh.EchoModePassword).Value(&r.newPassword),
		).Title("Confirmar redefinição"),
	).WithTheme(huh.ThemeBase())
}

// Init implements tea.Model.
func (r *Reset) Init() tea.Cmd {
	return r.form.Init()
}

// ShowConfirm moves to the confirmation phase. token may be empty; in dev
// mode the backend returns it directly and it is prefilled.
func (r *Reset) ShowConfirm(token string) tea.Cmd {
	r.phase = phaseConfirm
	r.busy = false
	r.err = ""
	r.token = token
	r.form = r.confirmForm()
	return r.form.Init()
}

// ShowDone marks the reset as completed.
func (r *Reset) ShowDone() {
	r.phase = phaseDone
	r.busy = false
	r.err = ""
}

// SetError shows a failure and re-arms the current phase's form.
func (r *Reset) SetError(msg string) tea.Cmd {
	r.err = msg
	r.busy = false
	if r.phase == phaseConfirm {
		r.form = r.confirmForm()
	} else {
		r.form = r.requestForm()
	}
	return r.form.Init()
}

// Update implements tea.Model.
func (r *Reset) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return r, func() tea.Msg { return CancelledMsg{} }
	}
	if r.busy || r.phase == phaseDone {
		return r, nil
	}

	form, cmd := r.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		r.form = f
	}

	if r.form.State == huh.StateCompleted {
		r.busy = true
		switch r.phase {
		case phaseRequest:
			email := strings.TrimSpace(r.email)
			return r, func() tea.Msg { return RequestSubmittedMsg{Email: email} }
		case phaseConfirm:
			token, password := strings.TrimSpace(r.token), r.newPassword
			return r, func() tea.Msg { return ConfirmSubmittedMsg{Token: token, NewPassword: password} }
		}
	}
	return r, cmd
}

// View implements tea.Model.
func (r *Reset) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Redefinir senha"))
	sb.WriteString("\n")
	if r.err != "" {
		sb.WriteString(styles.StatusError.Render(r.err))
		sb.WriteString("\n\n")
	}
	switch {
	case r.phase == phaseDone:
		sb.WriteString(styles.StatusOK.Render("Senha redefinida com sucesso."))
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render("esc voltar ao login"))
	case r.busy:
		sb.WriteString("Enviando...")
	default:
		sb.WriteString(r.form.View())
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render("esc voltar"))
	}
	return sb.String()
}
