// ABOUTME: Terminal display for the checkout return navigation
// ABOUTME: Shows the untrusted outcome hint; paid state needs the invoice

package paymentresult

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pbarbosa/livraria-cli/internal/checkout"
	"github.com/pbarbosa/livraria-cli/internal/tui/icons"
	"github.com/pbarbosa/livraria-cli/internal/tui/styles"
)

// Result renders the parsed return navigation. The order id comes straight
// from the return URL and is displayed without re-verifying payment status;
// the order history screen is where authoritative status lives.
type Result struct {
	outcome checkout.Outcome
}

// New creates the result screen for a parsed outcome.
func New(outcome checkout.Outcome) *Result {
	return &Result{outcome: outcome}
}

// Init implements tea.Model.
func (r *Result) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (r *Result) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return r, nil
}

// View implements tea.Model.
func (r *Result) View() string {
	var sb strings.Builder

	switch r.outcome.Status {
	case checkout.StatusSuccess:
		sb.WriteString(styles.Title.Render(icons.CheckOK.String() + " Pagamento Concluído!"))
		sb.WriteString("\n")
		sb.WriteString("Obrigado por comprar.")
		if r.outcome.OrderID != "" {
			sb.WriteString(" O número do seu pedido é ")
			sb.WriteString(styles.ValueStyle.Render("#" + r.outcome.OrderID))
			sb.WriteString(".")
		}
		sb.WriteString("\n\n")
		sb.WriteString(styles.Help.Render("o Ver pedidos para acompanhar o status"))

	case checkout.StatusCancelled:
		sb.WriteString(styles.Title.Render(icons.Warning.String() + " Pagamento Cancelado"))
		sb.WriteString("\n")
		sb.WriteString("O pagamento foi cancelado. Você pode continuar comprando ou tentar novamente.")

	default:
		sb.WriteString(styles.Title.Render(icons.Critical.String() + " Endereço de retorno não reconhecido"))
		sb.WriteString("\n")
		sb.WriteString("O endereço colado não é um destino de retorno de pagamento conhecido.")
	}
	sb.WriteString("\n")
	return sb.String()
}
