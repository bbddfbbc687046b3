// ABOUTME: Profile screen showing the authenticated user record
// ABOUTME: Read-only; the record always comes from the session manager

package profileview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pbarbosa/livraria-cli/internal/api"
	"github.com/pbarbosa/livraria-cli/internal/tui/icons"
	"github.com/pbarbosa/livraria-cli/internal/tui/styles"
)

// Profile is the profile display screen.
type Profile struct {
	user func() *api.User
}

// New creates the profile screen reading the record via user.
func New(user func() *api.User) *Profile {
	return &Profile{user: user}
}

// Init implements tea.Model.
func (p *Profile) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p *Profile) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return p, nil
}

// View implements tea.Model.
func (p *Profile) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.User.String() + " Perfil"))
	sb.WriteString("\n")

	user := p.user()
	if user == nil {
		sb.WriteString(styles.Subtitle.Render("Perfil indisponível."))
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("Nome:       %s\n", user.FullName))
	sb.WriteString(fmt.Sprintf("Email:      %s\n", user.Email))
	sb.WriteString(fmt.Sprintf("CPF:        %s\n", user.CPF))
	sb.WriteString(fmt.Sprintf("Nascimento: %s\n", user.DateOfBirth))
	return sb.String()
}
