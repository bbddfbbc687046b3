// ABOUTME: Account registration form screen
// ABOUTME: Checks the password confirmation locally and never sends it

package register

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/pbarbosa/livraria-cli/internal/api"
	"github.com/pbarbosa/livraria-cli/internal/tui/icons"
	"github.com/pbarbosa/livraria-cli/internal/tui/styles"
)

// SubmittedMsg carries the registration input, confirmation already dropped.
type SubmittedMsg struct {
	Input api.RegisterInput
}

// CancelledMsg is sent when the user backs out.
type CancelledMsg struct{}

// Register is the account creation screen.
type Register struct {
	form *huh.Form

	email       string
	password    string
	confirm     string
	cpf         string
	fullName    string
	dateOfBirth string

	err  string
	busy bool
}

// New creates the registration screen.
func New() *Register {
	r := &Register{}
	r.form = r.newForm()
	return r
}

func notEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("obrigatório")
	}
	return nil
}

func (r *Register) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Email").Value(&r.email).Validate(notEmpty),
			huh.NewInput().Title("Senha").EchoMode(huh.EchoModePassword).Value(&r.password).Validate(notEmpty),
			huh.NewInput().Title("Confirmar senha").EchoMode(huh.EchoModePassword).Value(&r.confirm).Validate(notEmpty),
			huh.NewInput().Title("CPF").Placeholder("000.000.000-00").Value(&r.cpf).Validate(notEmpty),
			huh.NewInput().Title("Nome completo").Value(&r.fullName).Validate(notEmpty),
			huh.NewInput().Title("Data de nascimento").Placeholder("1990-01-31").Value(&r.dateOfBirth).Validate(notEmpty),
		).Title("Criar conta"),
	).WithTheme(huh.ThemeBase())
}

// Init implements tea.Model.
func (r *Register) Init() tea.Cmd {
	return r.form.Init()
}

// SetError shows a backend failure and re-arms the form.
func (r *Register) SetError(msg string) tea.Cmd {
	r.err = msg
	r.busy = false
	r.form = r.newForm()
	return r.form.Init()
}

// Update implements tea.Model.
func (r *Register) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return r, func() tea.Msg { return CancelledMsg{} }
	}
	if r.busy {
		return r, nil
	}

	form, cmd := r.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		r.form = f
	}

	if r.form.State == huh.StateCompleted {
		if r.password != r.confirm {
			return r, r.SetError("As senhas não coincidem.")
		}
		r.busy = true
		input := api.RegisterInput{
			Email:       strings.TrimSpace(r.email),
			Password:    r.password,
			CPF:         strings.TrimSpace(r.cpf),
			FullName:    strings.TrimSpace(r.fullName),
			DateOfBirth: strings.TrimSpace(r.dateOfBirth),
		}
		return r, func() tea.Msg { return SubmittedMsg{Input: input} }
	}
	return r, cmd
}

// View implements tea.Model.
func (r *Register) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.User.String() + " Cadastro"))
	sb.WriteString("\n")
	if r.err != "" {
		sb.WriteString(styles.StatusError.Render(r.err))
		sb.WriteString("\n\n")
	}
	if r.busy {
		sb.WriteString("Criando conta...")
		return sb.String()
	}
	sb.WriteString(r.form.View())
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("esc voltar"))
	return sb.String()
}
