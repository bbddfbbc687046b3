// ABOUTME: Book catalog screen with search and add-to-cart
// ABOUTME: Public landing view; add-to-cart intents are resolved by the root model

package catalog

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pbarbosa/livraria-cli/internal/api"
	"github.com/pbarbosa/livraria-cli/internal/tui/icons"
	"github.com/pbarbosa/livraria-cli/internal/tui/styles"
)

// SearchRequestedMsg asks the root model to reload the catalog with a query.
type SearchRequestedMsg struct {
	Query string
}

// AddRequestedMsg asks the root model to add a book to the cart.
type AddRequestedMsg struct {
	BookID   int
	GoToCart bool
}

// Catalog is the book list screen.
type Catalog struct {
	search  textinput.Model
	books   []api.Book
	cursor  int
	detail  bool
	loading bool
	err     string
	notice  string
	width   int
}

// New creates the catalog screen.
func New() *Catalog {
	ti := textinput.New()
	ti.Placeholder = "buscar por título ou autor"
	ti.CharLimit = 128
	ti.Width = 40
	return &Catalog{search: ti, loading: true}
}

// Init implements tea.Model.
func (c *Catalog) Init() tea.Cmd {
	return nil
}

// Searching reports whether the search input owns the keyboard.
func (c *Catalog) Searching() bool {
	return c.search.Focused()
}

// SetBooks replaces the listed books.
func (c *Catalog) SetBooks(books []api.Book) {
	c.books = books
	c.loading = false
	c.err = ""
	if c.cursor >= len(books) {
		c.cursor = 0
	}
}

// SetLoading marks the list as loading.
func (c *Catalog) SetLoading() {
	c.loading = true
	c.err = ""
}

// SetError shows a page-level error.
func (c *Catalog) SetError(msg string) {
	c.loading = false
	c.err = msg
}

// SetNotice shows a transient confirmation line.
func (c *Catalog) SetNotice(msg string) {
	c.notice = msg
}

// Update implements tea.Model.
func (c *Catalog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
		return c, nil

	case tea.KeyMsg:
		c.notice = ""
		if c.search.Focused() {
			return c.updateSearch(msg)
		}
		return c.updateList(msg)
	}
	return c, nil
}

func (c *Catalog) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		c.search.Blur()
		query := strings.TrimSpace(c.search.Value())
		return c, func() tea.Msg { return SearchRequestedMsg{Query: query} }
	case "esc":
		c.search.Blur()
		return c, nil
	}
	var cmd tea.Cmd
	c.search, cmd = c.search.Update(msg)
	return c, cmd
}

func (c *Catalog) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "/":
		c.search.Focus()
		return c, textinput.Blink
	case "up", "k":
		if c.cursor > 0 {
			c.cursor--
		}
	case "down", "j":
		if c.cursor < len(c.books)-1 {
			c.cursor++
		}
	case "enter":
		c.detail = !c.detail
	case "a":
		if book := c.selected(); book != nil {
			return c, func() tea.Msg { return AddRequestedMsg{BookID: book.ID} }
		}
	case "g":
		if book := c.selected(); book != nil {
			return c, func() tea.Msg { return AddRequestedMsg{BookID: book.ID, GoToCart: true} }
		}
	}
	return c, nil
}

func (c *Catalog) selected() *api.Book {
	if c.cursor < 0 || c.cursor >= len(c.books) {
		return nil
	}
	return &c.books[c.cursor]
}

// View implements tea.Model.
func (c *Catalog) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Book.String() + " Livros"))
	sb.WriteString("\n")
	sb.WriteString(icons.Search.String() + " " + c.search.View())
	sb.WriteString("\n\n")

	if c.err != "" {
		sb.WriteString(styles.StatusError.Render(c.err))
		sb.WriteString("\n")
		return sb.String()
	}
	if c.loading {
		sb.WriteString(styles.Subtitle.Render("Carregando catálogo..."))
		return sb.String()
	}
	if len(c.books) == 0 {
		sb.WriteString("Nenhum livro encontrado.")
		return sb.String()
	}

	for i, book := range c.books {
		line := fmt.Sprintf("%-40s %-24s R$%8.2f", truncate(book.Title, 40), truncate(book.Author, 24), book.Price)
		if i == c.cursor {
			sb.WriteString(styles.Selected.Render("> " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}

	if c.detail {
		if book := c.selected(); book != nil {
			sb.WriteString("\n")
			sb.WriteString(styles.Panel.Render(fmt.Sprintf("%s\n%s\n\n%s\n\nPreço: R$%.2f",
				styles.ValueStyle.Render(book.Title), book.Author, book.Description, book.Price)))
			sb.WriteString("\n")
		}
	}

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
