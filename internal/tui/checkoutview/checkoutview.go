// ABOUTME: Checkout screen driving the payment hand-off
// ABOUTME: After the browser redirect, accepts the pasted return URL

package checkoutview

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pbarbosa/livraria-cli/internal/tui/icons"
	"github.com/pbarbosa/livraria-cli/internal/tui/styles"
)

// InitiateRequestedMsg asks the root model to start the checkout.
type InitiateRequestedMsg struct {
	Method string
}

// ReturnSubmittedMsg carries the pasted return navigation URL.
type ReturnSubmittedMsg struct {
	RawURL string
}

// CancelledMsg is sent when the user backs out before initiating.
type CancelledMsg struct{}

type phase int

const (
	phaseConfirm phase = iota
	phaseBusy
	phaseRedirected
)

// Checkout is the payment hand-off screen. It is memoryless across the
// redirect: nothing but the phase indicator lives here.
type Checkout struct {
	phase     phase
	spin      spinner.Model
	returnURL textinput.Model
	redirect  string
	err       string
}

// New creates the checkout screen.
func New() *Checkout {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	ti := textinput.New()
	ti.Placeholder = "http://localhost:3000/payment-success?orderId=..."
	ti.CharLimit = 512
	ti.Width = 64

	return &Checkout{spin: sp, returnURL: ti}
}

// Init implements tea.Model.
func (c *Checkout) Init() tea.Cmd {
	return nil
}

// SetRedirected records that the browser was sent to the payment page.
func (c *Checkout) SetRedirected(url string) tea.Cmd {
	c.phase = phaseRedirected
	c.redirect = url
	c.err = ""
	c.returnURL.Focus()
	return textinput.Blink
}

// SetError surfaces an initiation failure; no navigation happened.
func (c *Checkout) SetError(msg string) {
	c.phase = phaseConfirm
	c.err = msg
}

// Update implements tea.Model.
func (c *Checkout) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if c.phase == phaseBusy {
			var cmd tea.Cmd
			c.spin, cmd = c.spin.Update(msg)
			return c, cmd
		}
		return c, nil

	case tea.KeyMsg:
		switch c.phase {
		case phaseConfirm:
			switch msg.String() {
			case "enter":
				c.phase = phaseBusy
				c.err = ""
				return c, tea.Batch(c.spin.Tick, func() tea.Msg {
					return InitiateRequestedMsg{Method: "paypal"}
				})
			case "esc", "b":
				return c, func() tea.Msg { return CancelledMsg{} }
			}
		case phaseRedirected:
			switch msg.String() {
			case "enter":
				raw := strings.TrimSpace(c.returnURL.Value())
				if raw == "" {
					return c, nil
				}
				return c, func() tea.Msg { return ReturnSubmittedMsg{RawURL: raw} }
			case "esc":
				return c, func() tea.Msg { return CancelledMsg{} }
			}
			var cmd tea.Cmd
			c.returnURL, cmd = c.returnURL.Update(msg)
			return c, cmd
		}
	}
	return c, nil
}

// View implements tea.Model.
func (c *Checkout) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Payment.String() + " Pagamento"))
	sb.WriteString("\n")

	if c.err != "" {
		sb.WriteString(styles.StatusError.Render(c.err))
		sb.WriteString("\n\n")
	}

	switch c.phase {
	case phaseBusy:
		sb.WriteString(c.spin.View() + " Iniciando checkout...")

	case phaseRedirected:
		sb.WriteString("Página de pagamento aberta:\n")
		sb.WriteString(styles.ValueStyle.Render(c.redirect))
		sb.WriteString("\n\n")
		sb.WriteString("Conclua o pagamento no navegador e depois cole o\n")
		sb.WriteString("endereço para o qual você foi redirecionado:\n\n")
		sb.WriteString(c.returnURL.View())
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render("enter confirmar  ·  esc voltar ao carrinho"))

	default:
		sb.WriteString("O pagamento será processado pelo PayPal contra o carrinho atual.\n\n")
		sb.WriteString(styles.Help.Render("enter pagar com PayPal  ·  esc voltar"))
	}
	return sb.String()
}
