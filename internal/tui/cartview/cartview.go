// ABOUTME: Shopping cart screen showing the synchronized server cart
// ABOUTME: Quantity and removal intents are resolved by the root model

package cartview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pbarbosa/livraria-cli/internal/api"
	"github.com/pbarbosa/livraria-cli/internal/tui/icons"
	"github.com/pbarbosa/livraria-cli/internal/tui/styles"
)

// ReloadRequestedMsg asks the root model to refetch the cart.
type ReloadRequestedMsg struct{}

// UpdateRequestedMsg asks the root model to change a line's quantity.
type UpdateRequestedMsg struct {
	ItemID   int
	Quantity int
}

// RemoveRequestedMsg asks the root model to delete a line.
type RemoveRequestedMsg struct {
	ItemID int
}

// CheckoutRequestedMsg asks the root model to open the checkout screen.
type CheckoutRequestedMsg struct{}

// Cart is the cart screen. It renders whatever the synchronizer currently
// caches; it never mutates the cache itself.
type Cart struct {
	items   []api.CartItem
	total   float64
	cursor  int
	loading bool
	err     string
	notice  string
}

// New creates the cart screen in its loading state.
func New() *Cart {
	return &Cart{loading: true}
}

// Init implements tea.Model.
func (c *Cart) Init() tea.Cmd {
	return func() tea.Msg { return ReloadRequestedMsg{} }
}

// SetItems replaces the rendered snapshot with the synchronizer's cache.
func (c *Cart) SetItems(items []api.CartItem, total float64) {
	c.items = items
	c.total = total
	c.loading = false
	c.err = ""
	if c.cursor >= len(items) && c.cursor > 0 {
		c.cursor = len(items) - 1
	}
}

// SetError shows a page-level error.
func (c *Cart) SetError(msg string) {
	c.loading = false
	c.err = msg
}

// SetNotice shows a transient confirmation line.
func (c *Cart) SetNotice(msg string) {
	c.notice = msg
}

// Update implements tea.Model.
func (c *Cart) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	c.notice = ""

	switch key.String() {
	case "up", "k":
		if c.cursor > 0 {
			c.cursor--
		}
	case "down", "j":
		if c.cursor < len(c.items)-1 {
			c.cursor++
		}
	case "r":
		c.loading = true
		return c, func() tea.Msg { return ReloadRequestedMsg{} }
	case "+", "=":
		if item := c.selected(); item != nil {
			id, q := item.ID, item.Quantity+1
			return c, func() tea.Msg { return UpdateRequestedMsg{ItemID: id, Quantity: q} }
		}
	case "-":
		if item := c.selected(); item != nil {
			// Quantities below 1 are rejected by the synchronizer without a
			// request; don't even emit the intent.
			if item.Quantity <= 1 {
				c.notice = "Quantidade mínima é 1."
				return c, nil
			}
			id, q := item.ID, item.Quantity-1
			return c, func() tea.Msg { return UpdateRequestedMsg{ItemID: id, Quantity: q} }
		}
	case "x", "d":
		if item := c.selected(); item != nil {
			id := item.ID
			return c, func() tea.Msg { return RemoveRequestedMsg{ItemID: id} }
		}
	case "c":
		if len(c.items) > 0 {
			return c, func() tea.Msg { return CheckoutRequestedMsg{} }
		}
	}
	return c, nil
}

func (c *Cart) selected() *api.CartItem {
	if c.cursor < 0 || c.cursor >= len(c.items) {
		return nil
	}
	return &c.items[c.cursor]
}

// View implements tea.Model.
func (c *Cart) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Cart.String() + " Seu Carrinho"))
	sb.WriteString("\n")

	if c.err != "" {
		sb.WriteString(styles.StatusError.Render(c.err))
		sb.WriteString("\n")
		return sb.String()
	}
	if c.loading {
		sb.WriteString(styles.Subtitle.Render("Carregando carrinho..."))
		return sb.String()
	}
	if len(c.items) == 0 {
		sb.WriteString("Seu carrinho está vazio.")
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("  %-40s %10s %5s %12s\n", "Livro", "Preço", "Qtd", "Subtotal"))
	for i, item := range c.items {
		line := fmt.Sprintf("%-40s %10.2f %5d %12.2f",
			truncate(item.Book.Title, 40), item.Book.Price, item.Quantity,
			item.Book.Price*float64(item.Quantity))
		if i == c.cursor {
			sb.WriteString(styles.Selected.Render("> " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(styles.ValueStyle.Render(fmt.Sprintf("Total: R$%.2f", c.total)))
	sb.WriteString("\n")

	if c.notice != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.StatusOK.Render(icons.CheckOK.String() + " " + c.notice))
		sb.WriteString("\n")
	}
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
