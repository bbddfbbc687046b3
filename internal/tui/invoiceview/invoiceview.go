// ABOUTME: Invoice display screen for a single order
// ABOUTME: Read-only; every entry re-fetches, nothing is cached

package invoiceview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pbarbosa/livraria-cli/internal/api"
	"github.com/pbarbosa/livraria-cli/internal/tui/icons"
	"github.com/pbarbosa/livraria-cli/internal/tui/styles"
)

// Invoice is the invoice display screen.
type Invoice struct {
	orderID int
	invoice *api.Invoice
	loading bool
	err     string
}

// New creates the invoice screen for an order.
func New(orderID int) *Invoice {
	return &Invoice{orderID: orderID, loading: true}
}

// OrderID returns the order this screen was opened for.
func (v *Invoice) OrderID() int {
	return v.orderID
}

// Init implements tea.Model.
func (v *Invoice) Init() tea.Cmd {
	return nil
}

// SetInvoice shows the fetched invoice.
func (v *Invoice) SetInvoice(inv *api.Invoice) {
	v.invoice = inv
	v.loading = false
	v.err = ""
}

// SetError shows a page-level message; not-found and transient failures
// render the same way, the caller picks the wording.
func (v *Invoice) SetError(msg string) {
	v.loading = false
	v.err = msg
}

// Update implements tea.Model.
func (v *Invoice) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return v, nil
}

// View implements tea.Model.
func (v *Invoice) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s Fatura do Pedido #%d", icons.Invoice.String(), v.orderID)))
	sb.WriteString("\n")

	if v.err != "" {
		sb.WriteString(styles.StatusError.Render(v.err))
		sb.WriteString("\n")
		return sb.String()
	}
	if v.loading || v.invoice == nil {
		sb.WriteString(styles.Subtitle.Render("Carregando fatura..."))
		return sb.String()
	}

	inv := v.invoice
	sb.WriteString(fmt.Sprintf("Status:  %s\n", inv.Status))
	sb.WriteString(fmt.Sprintf("Criada:  %s\n", inv.CreatedAt))
	sb.WriteString(fmt.Sprintf("Cliente: %s <%s>\n\n", inv.User.Username, inv.User.Email))

	sb.WriteString(fmt.Sprintf("%-40s %5s %12s\n", "Livro", "Qtd", "Preço"))
	for _, item := range inv.Items {
		sb.WriteString(fmt.Sprintf("%-40s %5d %12.2f\n", truncate(item.BookTitle, 40), item.Quantity, item.Price))
	}
	sb.WriteString("\n")
	sb.WriteString(styles.ValueStyle.Render(fmt.Sprintf("Total: R$%.2f", inv.Total)))
	sb.WriteString("\n")
	return sb.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
