// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Owns the session, cart and checkout services and routes screens

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pbarbosa/livraria-cli/internal/api"
	"github.com/pbarbosa/livraria-cli/internal/cart"
	"github.com/pbarbosa/livraria-cli/internal/checkout"
	"github.com/pbarbosa/livraria-cli/internal/debuglog"
	"github.com/pbarbosa/livraria-cli/internal/orders"
	"github.com/pbarbosa/livraria-cli/internal/session"
	"github.com/pbarbosa/livraria-cli/internal/tui/cartview"
	"github.com/pbarbosa/livraria-cli/internal/tui/catalog"
	"github.com/pbarbosa/livraria-cli/internal/tui/checkoutview"
	"github.com/pbarbosa/livraria-cli/internal/tui/guard"
	"github.com/pbarbosa/livraria-cli/internal/tui/icons"
	"github.com/pbarbosa/livraria-cli/internal/tui/invoiceview"
	"github.com/pbarbosa/livraria-cli/internal/tui/login"
	"github.com/pbarbosa/livraria-cli/internal/tui/ordersview"
	"github.com/pbarbosa/livraria-cli/internal/tui/paymentresult"
	"github.com/pbarbosa/livraria-cli/internal/tui/profileview"
	"github.com/pbarbosa/livraria-cli/internal/tui/register"
	"github.com/pbarbosa/livraria-cli/internal/tui/resetpass"
	"github.com/pbarbosa/livraria-cli/internal/tui/styles"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenCatalog Screen = iota
	ScreenLogin
	ScreenRegister
	ScreenReset
	ScreenCart
	ScreenCheckout
	ScreenOrders
	ScreenInvoice
	ScreenProfile
	ScreenPaymentResult
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width before header/footer stop shrinking
)

// sessionResolvedMsg is sent when the startup session verification completes
type sessionResolvedMsg struct {
	err error
}

// loginResultMsg is sent when a login attempt completes
type loginResultMsg struct {
	err error
}

// registerResultMsg is sent when account creation completes
type registerResultMsg struct {
	input api.RegisterInput
	err   error
}

// booksLoadedMsg is sent when a catalog fetch completes
type booksLoadedMsg struct {
	query string
	books []api.Book
	err   error
}

// addedToCartMsg is sent when an add-to-cart request completes
type addedToCartMsg struct {
	goToCart bool
	err      error
}

// cartReloadedMsg is sent when the cart synchronizer refetched the cart
type cartReloadedMsg struct {
	err error
}

// checkoutInitiatedMsg is sent when checkout initiation completes
type checkoutInitiatedMsg struct {
	url string
	err error
}

// ordersLoadedMsg is sent when the order history fetch completes
type ordersLoadedMsg struct {
	orders []api.Order
	err    error
}

// invoiceLoadedMsg is sent when an invoice fetch completes
type invoiceLoadedMsg struct {
	orderID int
	invoice *api.Invoice
	err     error
}

// resetRequestedMsg is sent when a password reset request completes
type resetRequestedMsg struct {
	token string
	err   error
}

// resetConfirmedMsg is sent when a password reset confirmation completes
type resetConfirmedMsg struct {
	err error
}

// App is the root model for the TUI
type App struct {
	client   *api.Client
	session  *session.Manager
	cart     *cart.Synchronizer
	checkout *checkout.Orchestrator
	orders   *orders.Fetcher

	screen     Screen
	returnTo   Screen // where to resume after a login redirect
	hasReturn  bool
	width      int
	height     int
	lastUpdate time.Time
	fatal      string // set by the Update/View recovery, freezes the UI on an error screen

	// query of the most recent search; older responses are discarded
	searchQuery string

	// Child models
	catalogScreen  *catalog.Catalog
	loginScreen    *login.Login
	registerScreen *register.Register
	resetScreen    *resetpass.Reset
	cartScreen     *cartview.Cart
	checkoutScreen *checkoutview.Checkout
	ordersScreen   *ordersview.Orders
	invoiceScreen  *invoiceview.Invoice
	resultScreen   *paymentresult.Result
	activeGuard    *guard.Guard
}

// New creates a new TUI application
func New(apiClient *api.Client, sess *session.Manager) *App {
	return &App{
		client:        apiClient,
		session:       sess,
		cart:          cart.New(apiClient),
		checkout:      checkout.New(apiClient, checkout.BrowserNavigator{}),
		orders:        orders.New(apiClient),
		screen:        ScreenCatalog,
		catalogScreen: catalog.New(),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.resolveSession(), a.loadBooks(""))
}

// Update implements tea.Model. A panic anywhere in a screen model is caught
// here so the program degrades to a rendered error screen instead of
// unwinding through the event loop with the terminal in an unknown state.
func (a *App) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			debuglog.Log("panic in update: %v", r)
			a.fatal = fmt.Sprint(r)
			model, cmd = a, nil
		}
	}()

	if a.fatal != "" {
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "q", "ctrl+c", "enter", "esc":
				return a, tea.Quit
			}
		}
		return a, nil
	}

	return a.update(msg)
}

func (a *App) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.catalogScreen.Update(msg)
		return a, nil

	case tea.KeyMsg:
		// Handle global quit
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.updateKey(msg)

	case sessionResolvedMsg:
		if msg.err != nil {
			debuglog.Error("session verification", msg.err)
		}
		// Any active guard is waiting on this resolution
		if a.activeGuard != nil {
			return a.forward(msg)
		}
		return a, nil

	case guard.RedirectMsg:
		return a.redirectToLogin("Faça login para continuar.")

	case catalog.SearchRequestedMsg:
		a.searchQuery = msg.Query
		a.catalogScreen.SetLoading()
		return a, a.loadBooks(msg.Query)

	case catalog.AddRequestedMsg:
		if a.session.State() != session.StateAuthenticated {
			return a.redirectToLogin("Faça login para adicionar ao carrinho.")
		}
		return a, a.addToCart(msg.BookID, msg.GoToCart)

	case booksLoadedMsg:
		return a.handleBooksLoaded(msg)

	case addedToCartMsg:
		return a.handleAddedToCart(msg)

	case login.SubmittedMsg:
		return a, a.doLogin(msg.Email, msg.Password)

	case login.CancelledMsg:
		a.screen = ScreenCatalog
		a.loginScreen = nil
		a.hasReturn = false
		return a, nil

	case loginResultMsg:
		return a.handleLoginResult(msg)

	case register.SubmittedMsg:
		return a, a.doRegister(msg.Input)

	case register.CancelledMsg:
		a.screen = ScreenCatalog
		a.registerScreen = nil
		return a, nil

	case registerResultMsg:
		return a.handleRegisterResult(msg)

	case resetpass.RequestSubmittedMsg:
		return a, a.requestReset(msg.Email)

	case resetpass.ConfirmSubmittedMsg:
		return a, a.confirmReset(msg.Token, msg.NewPassword)

	case resetpass.CancelledMsg:
		a.screen = ScreenCatalog
		a.resetScreen = nil
		return a, nil

	case resetRequestedMsg:
		if a.screen != ScreenReset || a.resetScreen == nil {
			debuglog.Log("discarding reset response for inactive screen")
			return a, nil
		}
		if msg.err != nil {
			a.resetScreen.SetError(friendlyError(msg.err))
			return a, nil
		}
		return a, a.resetScreen.ShowConfirm(msg.token)

	case resetConfirmedMsg:
		if a.screen != ScreenReset || a.resetScreen == nil {
			debuglog.Log("discarding reset confirmation for inactive screen")
			return a, nil
		}
		if msg.err != nil {
			a.resetScreen.SetError(friendlyError(msg.err))
			return a, nil
		}
		a.resetScreen.ShowDone()
		return a, nil

	case cartview.ReloadRequestedMsg:
		return a, a.reloadCart()

	case cartview.UpdateRequestedMsg:
		return a, a.updateCartItem(msg.ItemID, msg.Quantity)

	case cartview.RemoveRequestedMsg:
		return a, a.removeCartItem(msg.ItemID)

	case cartview.CheckoutRequestedMsg:
		return a.openCheckout()

	case cartReloadedMsg:
		return a.handleCartReloaded(msg)

	case checkoutview.InitiateRequestedMsg:
		return a, a.initiateCheckout(msg.Method)

	case checkoutview.ReturnSubmittedMsg:
		outcome := checkout.ParseReturn(msg.RawURL)
		a.resultScreen = paymentresult.New(outcome)
		a.screen = ScreenPaymentResult
		a.activeGuard = nil
		a.checkoutScreen = nil
		return a, nil

	case checkoutview.CancelledMsg:
		return a.openCart()

	case checkoutInitiatedMsg:
		return a.handleCheckoutInitiated(msg)

	case ordersview.ReloadRequestedMsg:
		return a, a.loadOrders()

	case ordersview.InvoiceRequestedMsg:
		return a.openInvoice(msg.OrderID)

	case ordersLoadedMsg:
		return a.handleOrdersLoaded(msg)

	case invoiceLoadedMsg:
		return a.handleInvoiceLoaded(msg)

	default:
		// Forward unknown messages to the active screen (needed for huh form
		// internals and spinner ticks)
		return a.forward(msg)
	}
}

// updateKey routes a key press to the current screen, handling app-level
// navigation keys first on screens without text entry.
func (a *App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.screen {
	case ScreenCatalog:
		if !a.catalogScreen.Searching() {
			switch msg.String() {
			case "q":
				return a, tea.Quit
			case "c":
				return a.openCart()
			case "o":
				return a.openOrders()
			case "p":
				return a.openProfile()
			case "l":
				return a.handleLoginKey()
			case "R":
				if a.session.State() != session.StateAuthenticated {
					return a.openRegister()
				}
			case "F":
				if a.session.State() != session.StateAuthenticated {
					return a.openReset()
				}
			}
		}
		return a.forward(msg)

	case ScreenCart, ScreenOrders, ScreenInvoice, ScreenProfile:
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "b", "esc":
			return a.goBack()
		}
		return a.forward(msg)

	case ScreenPaymentResult:
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "o":
			return a.openOrders()
		case "b", "enter", "esc":
			a.screen = ScreenCatalog
			a.resultScreen = nil
			return a, nil
		}
		return a, nil

	default:
		// Form screens consume every key themselves
		return a.forward(msg)
	}
}

// forward delivers a message to the model owning the current screen.
func (a *App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch a.screen {
	case ScreenCatalog:
		model, cmd := a.catalogScreen.Update(msg)
		a.catalogScreen = model.(*catalog.Catalog)
		return a, cmd
	case ScreenLogin:
		if a.loginScreen == nil {
			return a, nil
		}
		model, cmd := a.loginScreen.Update(msg)
		a.loginScreen = model.(*login.Login)
		return a, cmd
	case ScreenRegister:
		if a.registerScreen == nil {
			return a, nil
		}
		model, cmd := a.registerScreen.Update(msg)
		a.registerScreen = model.(*register.Register)
		return a, cmd
	case ScreenReset:
		if a.resetScreen == nil {
			return a, nil
		}
		model, cmd := a.resetScreen.Update(msg)
		a.resetScreen = model.(*resetpass.Reset)
		return a, cmd
	case ScreenCart, ScreenCheckout, ScreenOrders, ScreenInvoice, ScreenProfile:
		if a.activeGuard == nil {
			return a, nil
		}
		model, cmd := a.activeGuard.Update(msg)
		a.activeGuard = model.(*guard.Guard)
		return a, cmd
	}
	return a, nil
}

// goBack leaves a guarded screen for its natural parent.
func (a *App) goBack() (tea.Model, tea.Cmd) {
	switch a.screen {
	case ScreenInvoice:
		return a.openOrders()
	default:
		a.screen = ScreenCatalog
		a.activeGuard = nil
		return a, nil
	}
}

func (a *App) handleLoginKey() (tea.Model, tea.Cmd) {
	if a.session.State() == session.StateAuthenticated {
		if err := a.session.Logout(); err != nil {
			debuglog.Error("logout", err)
		}
		a.catalogScreen.SetNotice("Sessão encerrada.")
		return a, nil
	}
	a.hasReturn = false
	return a.openLogin()
}

// openLogin switches to the login screen with a fresh form.
func (a *App) openLogin() (tea.Model, tea.Cmd) {
	a.loginScreen = login.New()
	a.screen = ScreenLogin
	a.activeGuard = nil
	return a, a.loginScreen.Init()
}

// redirectToLogin is openLogin plus a hint about why the user landed there.
func (a *App) redirectToLogin(hint string) (tea.Model, tea.Cmd) {
	if a.screen != ScreenLogin {
		a.returnTo = a.screen
		a.hasReturn = a.screen != ScreenCatalog
	}
	a.openLogin()
	return a, a.loginScreen.SetError(hint)
}

func (a *App) openRegister() (tea.Model, tea.Cmd) {
	a.registerScreen = register.New()
	a.screen = ScreenRegister
	return a, a.registerScreen.Init()
}

func (a *App) openReset() (tea.Model, tea.Cmd) {
	a.resetScreen = resetpass.New()
	a.screen = ScreenReset
	return a, a.resetScreen.Init()
}

func (a *App) openCart() (tea.Model, tea.Cmd) {
	a.cartScreen = cartview.New()
	a.activeGuard = guard.New(a.session.State, a.cartScreen)
	a.screen = ScreenCart
	return a, a.guardStart()
}

func (a *App) openCheckout() (tea.Model, tea.Cmd) {
	a.checkoutScreen = checkoutview.New()
	a.activeGuard = guard.New(a.session.State, a.checkoutScreen)
	a.screen = ScreenCheckout
	return a, a.guardStart()
}

func (a *App) openOrders() (tea.Model, tea.Cmd) {
	a.ordersScreen = ordersview.New()
	a.activeGuard = guard.New(a.session.State, a.ordersScreen)
	a.screen = ScreenOrders
	return a, a.guardStart()
}

func (a *App) openInvoice(orderID int) (tea.Model, tea.Cmd) {
	a.invoiceScreen = invoiceview.New(orderID)
	a.activeGuard = guard.New(a.session.State, a.invoiceScreen)
	a.screen = ScreenInvoice
	return a, tea.Batch(a.guardStart(), a.loadInvoice(orderID))
}

func (a *App) openProfile() (tea.Model, tea.Cmd) {
	a.activeGuard = guard.New(a.session.State, profileview.New(a.session.User))
	a.screen = ScreenProfile
	return a, a.guardStart()
}

// guardStart initializes the active guard and immediately nudges it so a
// session that already resolved opens the gate without waiting for a message.
func (a *App) guardStart() tea.Cmd {
	initCmd := a.activeGuard.Init()
	model, nudge := a.activeGuard.Update(sessionResolvedMsg{})
	a.activeGuard = model.(*guard.Guard)
	return tea.Batch(initCmd, nudge)
}

func (a *App) handleBooksLoaded(msg booksLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.query != a.searchQuery {
		debuglog.Log("discarding stale catalog response for query %q", msg.query)
		return a, nil
	}
	if msg.err != nil {
		a.catalogScreen.SetError(friendlyError(msg.err))
		return a, nil
	}
	a.catalogScreen.SetBooks(msg.books)
	a.lastUpdate = time.Now()
	return a, nil
}

func (a *App) handleAddedToCart(msg addedToCartMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if api.IsAuth(msg.err) {
			return a.redirectToLogin("Faça login para adicionar ao carrinho.")
		}
		a.catalogScreen.SetError(friendlyError(msg.err))
		return a, nil
	}
	if msg.goToCart {
		return a.openCart()
	}
	a.catalogScreen.SetNotice("Adicionado ao carrinho.")
	return a, nil
}

func (a *App) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	if a.screen != ScreenLogin || a.loginScreen == nil {
		debuglog.Log("discarding login result for inactive screen")
		return a, nil
	}
	if msg.err != nil {
		return a, a.loginScreen.SetError(friendlyError(msg.err))
	}
	a.loginScreen = nil
	if a.hasReturn {
		returnTo := a.returnTo
		a.hasReturn = false
		switch returnTo {
		case ScreenCart:
			return a.openCart()
		case ScreenCheckout:
			return a.openCheckout()
		case ScreenOrders:
			return a.openOrders()
		case ScreenInvoice:
			return a.openOrders()
		case ScreenProfile:
			return a.openProfile()
		}
	}
	a.screen = ScreenCatalog
	a.catalogScreen.SetNotice("Login efetuado.")
	return a, nil
}

func (a *App) handleRegisterResult(msg registerResultMsg) (tea.Model, tea.Cmd) {
	if a.screen != ScreenRegister || a.registerScreen == nil {
		debuglog.Log("discarding register result for inactive screen")
		return a, nil
	}
	if msg.err != nil {
		return a, a.registerScreen.SetError(friendlyError(msg.err))
	}
	// Account created; sign in with the same credentials right away
	a.registerScreen = nil
	_, initCmd := a.openLogin()
	return a, tea.Batch(initCmd, a.doLogin(msg.input.Email, msg.input.Password))
}

func (a *App) handleCartReloaded(msg cartReloadedMsg) (tea.Model, tea.Cmd) {
	if a.cartScreen == nil || (a.screen != ScreenCart && a.screen != ScreenCheckout) {
		debuglog.Log("discarding cart response for inactive screen")
		return a, nil
	}
	if msg.err != nil {
		a.cartScreen.SetError(friendlyError(msg.err))
		return a, nil
	}
	a.cartScreen.SetItems(a.cart.Items(), a.cart.Total())
	a.lastUpdate = time.Now()
	return a, nil
}

func (a *App) handleCheckoutInitiated(msg checkoutInitiatedMsg) (tea.Model, tea.Cmd) {
	if a.screen != ScreenCheckout || a.checkoutScreen == nil {
		debuglog.Log("discarding checkout response for inactive screen")
		return a, nil
	}
	if msg.err != nil {
		a.checkoutScreen.SetError(friendlyError(msg.err))
		return a, nil
	}
	return a, a.checkoutScreen.SetRedirected(msg.url)
}

func (a *App) handleOrdersLoaded(msg ordersLoadedMsg) (tea.Model, tea.Cmd) {
	if a.screen != ScreenOrders || a.ordersScreen == nil {
		debuglog.Log("discarding orders response for inactive screen")
		return a, nil
	}
	if msg.err != nil {
		a.ordersScreen.SetError(friendlyError(msg.err))
		return a, nil
	}
	a.ordersScreen.SetOrders(msg.orders)
	a.lastUpdate = time.Now()
	return a, nil
}

func (a *App) handleInvoiceLoaded(msg invoiceLoadedMsg) (tea.Model, tea.Cmd) {
	if a.screen != ScreenInvoice || a.invoiceScreen == nil || a.invoiceScreen.OrderID() != msg.orderID {
		debuglog.Log("discarding invoice response for order %d", msg.orderID)
		return a, nil
	}
	if msg.err != nil {
		a.invoiceScreen.SetError(friendlyError(msg.err))
		return a, nil
	}
	a.invoiceScreen.SetInvoice(msg.invoice)
	return a, nil
}

// friendlyError maps the error taxonomy to user-facing Portuguese text.
func friendlyError(err error) string {
	switch {
	case api.IsAuth(err):
		return "Email ou senha inválidos."
	case api.IsNotFound(err):
		return "Não encontrado."
	case api.IsValidation(err):
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return apiErr.Message
		}
		return "Dados inválidos."
	default:
		return "Não foi possível conectar ao servidor. Tente novamente."
	}
}

// Commands

func (a *App) resolveSession() tea.Cmd {
	return func() tea.Msg {
		return sessionResolvedMsg{err: a.session.Start(context.Background())}
	}
}

func (a *App) loadBooks(query string) tea.Cmd {
	return func() tea.Msg {
		books, err := a.client.ListBooks(context.Background(), query)
		return booksLoadedMsg{query: query, books: books, err: err}
	}
}

func (a *App) addToCart(bookID int, goToCart bool) tea.Cmd {
	return func() tea.Msg {
		return addedToCartMsg{goToCart: goToCart, err: a.cart.Add(context.Background(), bookID, 1)}
	}
}

func (a *App) doLogin(email, password string) tea.Cmd {
	return func() tea.Msg {
		return loginResultMsg{err: a.session.Login(context.Background(), email, password)}
	}
}

func (a *App) doRegister(input api.RegisterInput) tea.Cmd {
	return func() tea.Msg {
		_, err := a.client.Register(context.Background(), input)
		return registerResultMsg{input: input, err: err}
	}
}

func (a *App) requestReset(email string) tea.Cmd {
	return func() tea.Msg {
		token, err := a.client.RequestPasswordReset(context.Background(), email)
		return resetRequestedMsg{token: token, err: err}
	}
}

func (a *App) confirmReset(token, newPassword string) tea.Cmd {
	return func() tea.Msg {
		return resetConfirmedMsg{err: a.client.ConfirmPasswordReset(context.Background(), token, newPassword)}
	}
}

func (a *App) reloadCart() tea.Cmd {
	return func() tea.Msg {
		return cartReloadedMsg{err: a.cart.Reload(context.Background())}
	}
}

func (a *App) updateCartItem(itemID, quantity int) tea.Cmd {
	return func() tea.Msg {
		return cartReloadedMsg{err: a.cart.UpdateQuantity(context.Background(), itemID, quantity)}
	}
}

func (a *App) removeCartItem(itemID int) tea.Cmd {
	return func() tea.Msg {
		return cartReloadedMsg{err: a.cart.Remove(context.Background(), itemID)}
	}
}

func (a *App) initiateCheckout(method string) tea.Cmd {
	return func() tea.Msg {
		url, err := a.checkout.Initiate(context.Background(), method)
		return checkoutInitiatedMsg{url: url, err: err}
	}
}

func (a *App) loadOrders() tea.Cmd {
	return func() tea.Msg {
		history, err := a.orders.History(context.Background())
		return ordersLoadedMsg{orders: history, err: err}
	}
}

func (a *App) loadInvoice(orderID int) tea.Cmd {
	return func() tea.Msg {
		invoice, err := a.orders.Invoice(context.Background(), orderID)
		return invoiceLoadedMsg{orderID: orderID, invoice: invoice, err: err}
	}
}

// View implements tea.Model. Mirrors Update's recovery so a panic in a child
// View still produces a rendered error screen.
func (a *App) View() (view string) {
	defer func() {
		if r := recover(); r != nil {
			debuglog.Log("panic in view: %v", r)
			a.fatal = fmt.Sprint(r)
			view = a.renderFatal()
		}
	}()

	if a.fatal != "" {
		return a.renderFatal()
	}

	return a.render()
}

func (a *App) render() string {
	var content string

	switch a.screen {
	case ScreenCatalog:
		content = a.catalogScreen.View()
	case ScreenLogin:
		if a.loginScreen != nil {
			content = a.loginScreen.View()
		}
	case ScreenRegister:
		if a.registerScreen != nil {
			content = a.registerScreen.View()
		}
	case ScreenReset:
		if a.resetScreen != nil {
			content = a.resetScreen.View()
		}
	case ScreenPaymentResult:
		if a.resultScreen != nil {
			content = a.resultScreen.View()
		}
	default:
		if a.activeGuard != nil {
			content = a.activeGuard.View()
		}
	}

	return a.wrapWithFrame(content)
}

// renderHeader creates the header bar with app branding and session context
func (a *App) renderHeader() string {
	// Guard against zero/small width before WindowSizeMsg is received
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("Livraria"))

	rightText := ""
	if user := a.session.User(); user != nil {
		rightText = contextStyle.Render(icons.User.String()+" "+user.Email) + " "
	}

	leftRendered := lipgloss.NewStyle().Render(leftText)
	rightRendered := lipgloss.NewStyle().Align(lipgloss.Right).Render(rightText)

	fillWidth := width - 4 - lipgloss.Width(leftRendered) - lipgloss.Width(rightRendered)
	if fillWidth < 0 {
		fillWidth = 0
	}
	fill := strings.Repeat("─", fillWidth)

	return borderStyle.Render("╭─" + leftRendered + fill + rightRendered + "─╮")
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	// Guard against zero/small width before WindowSizeMsg is received
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	var shortcuts []string
	switch a.screen {
	case ScreenCatalog:
		shortcuts = []string{"/ Buscar", "a Adicionar", "c Carrinho", "o Pedidos", "q Sair"}
		if a.session.State() == session.StateAuthenticated {
			shortcuts = append(shortcuts[:4], "p Perfil", "l Logout", "q Sair")
		} else {
			shortcuts = append(shortcuts[:4], "l Login", "R Registrar", "q Sair")
		}
	case ScreenLogin, ScreenRegister, ScreenReset:
		shortcuts = []string{"Enter Confirmar", "Esc Voltar"}
	case ScreenCart:
		shortcuts = []string{"+/- Quantidade", "x Remover", "c Finalizar", "r Atualizar", "b Voltar", "q Sair"}
	case ScreenCheckout:
		shortcuts = []string{"Enter Confirmar", "Esc Voltar"}
	case ScreenOrders:
		shortcuts = []string{"Enter Nota fiscal", "r Atualizar", "b Voltar", "q Sair"}
	case ScreenInvoice:
		shortcuts = []string{"b Pedidos", "q Sair"}
	case ScreenProfile:
		shortcuts = []string{"b Voltar", "q Sair"}
	case ScreenPaymentResult:
		shortcuts = []string{"o Pedidos", "b Catálogo", "q Sair"}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	rightText := ""
	rightPlainText := ""
	if !a.lastUpdate.IsZero() && (a.screen == ScreenCatalog || a.screen == ScreenCart || a.screen == ScreenOrders) {
		elapsed := a.formatTimeSince(a.lastUpdate)
		rightText = statusStyle.Render("Atualizado "+elapsed) + " "
		rightPlainText = "Atualizado " + elapsed + " "
	}

	fillWidth := width - 4 - lipgloss.Width(leftPlainText) - lipgloss.Width(rightPlainText)
	if fillWidth < 0 {
		fillWidth = 0
	}
	fill := strings.Repeat("─", fillWidth)

	return borderStyle.Render("╰─" + leftText + fill + rightText + "─╯")
}

// formatTimeSince formats a duration since the given time in human-readable form
func (a *App) formatTimeSince(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return "agora"
		}
		return fmt.Sprintf("há %ds", secs)
	}

	if d < time.Hour {
		return fmt.Sprintf("há %dm", int(d.Minutes()))
	}
	return fmt.Sprintf("há %dh", int(d.Hours()))
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// renderFatal paints the screen shown after an unrecoverable internal error.
// No frame: header and footer route through the same screen state that may
// have just panicked.
func (a *App) renderFatal() string {
	var sb strings.Builder

	sb.WriteString(styles.StatusError.Render(icons.Critical.String() + " Algo deu errado"))
	sb.WriteString("\n\n")
	sb.WriteString("A interface encontrou um erro inesperado e não pode continuar.\n")
	sb.WriteString(styles.Subtitle.Render(a.fatal))
	sb.WriteString("\n\n")
	sb.WriteString(styles.Help.Render(styles.KeyStyle.Render("q") + " Sair"))

	return styles.Panel.BorderForeground(styles.Danger).Render(sb.String())
}

// Run starts the TUI. The App model already recovers panics in Update and
// View; this backstop catches anything that escapes past the event loop and
// hands the caller an error to print on a restored terminal.
func Run(apiClient *api.Client, sess *session.Manager) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fatal error: %v", r)
		}
	}()

	app := New(apiClient, sess)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err = p.Run()
	return err
}
