// ABOUTME: Order history screen
// ABOUTME: Read-only list; selecting an order opens its invoice

package ordersview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pbarbosa/livraria-cli/internal/api"
	"github.com/pbarbosa/livraria-cli/internal/tui/icons"
	"github.com/pbarbosa/livraria-cli/internal/tui/styles"
)

// ReloadRequestedMsg asks the root model to refetch the order history.
type ReloadRequestedMsg struct{}

// InvoiceRequestedMsg asks the root model to open an order's invoice.
type InvoiceRequestedMsg struct {
	OrderID int
}

// Orders is the order history screen.
type Orders struct {
	orders  []api.Order
	cursor  int
	loading bool
	err     string
}

// New creates the orders screen in its loading state.
func New() *Orders {
	return &Orders{loading: true}
}

// Init implements tea.Model.
func (o *Orders) Init() tea.Cmd {
	return func() tea.Msg { return ReloadRequestedMsg{} }
}

// SetOrders replaces the listed orders.
func (o *Orders) SetOrders(orders []api.Order) {
	o.orders = orders
	o.loading = false
	o.err = ""
	if o.cursor >= len(orders) {
		o.cursor = 0
	}
}

// SetError shows a page-level error.
func (o *Orders) SetError(msg string) {
	o.loading = false
	o.err = msg
}

// Update implements tea.Model.
func (o *Orders) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch key.String() {
	case "up", "k":
		if o.cursor > 0 {
			o.cursor--
		}
	case "down", "j":
		if o.cursor < len(o.orders)-1 {
			o.cursor++
		}
	case "r":
		o.loading = true
		return o, func() tea.Msg { return ReloadRequestedMsg{} }
	case "enter":
		if o.cursor >= 0 && o.cursor < len(o.orders) {
			id := o.orders[o.cursor].ID
			return o, func() tea.Msg { return InvoiceRequestedMsg{OrderID: id} }
		}
	}
	return o, nil
}

func statusStyle(status string) string {
	switch strings.ToLower(status) {
	case "paid":
		return styles.StatusOK.Render(status)
	case "pending":
		return styles.StatusWarning.Render(status)
	case "cancelled":
		return styles.StatusError.Render(status)
	default:
		return status
	}
}

// View implements tea.Model.
func (o *Orders) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Order.String() + " Seus Pedidos"))
	sb.WriteString("\n")

	if o.err != "" {
		sb.WriteString(styles.StatusError.Render(o.err))
		sb.WriteString("\n")
		return sb.String()
	}
	if o.loading {
		sb.WriteString(styles.Subtitle.Render("Carregando pedidos..."))
		return sb.String()
	}
	if len(o.orders) == 0 {
		sb.WriteString("Nenhum pedido ainda.")
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("  %-8s %12s  %-10s %s\n", "Pedido", "Total", "Status", "Criado"))
	for i, order := range o.orders {
		line := fmt.Sprintf("#%-7d %12.2f  %-10s %s", order.ID, order.Total, statusStyle(order.Status), order.CreatedAt)
		if i == o.cursor {
			sb.WriteString(styles.Selected.Render("> ") + line)
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
