// ABOUTME: Integration tests for TUI app
// ABOUTME: Tests component wiring and screen transitions

package tui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pbarbosa/livraria-cli/internal/api"
	"github.com/pbarbosa/livraria-cli/internal/session"
	"github.com/pbarbosa/livraria-cli/internal/tui/catalog"
	"github.com/pbarbosa/livraria-cli/internal/tui/checkoutview"
	"github.com/pbarbosa/livraria-cli/internal/tui/guard"
	"github.com/pbarbosa/livraria-cli/internal/tui/login"
)

// newTestApp builds an app over an unauthenticated session. The client points
// at a dead address; tests inject messages instead of running commands.
func newTestApp(t *testing.T) *App {
	t.Helper()
	store := session.NewStore(t.TempDir())
	c := api.New("http://localhost:8080", store)
	sess := session.NewManager(store, c)
	if err := sess.Start(context.Background()); err != nil {
		t.Fatalf("session start failed: %v", err)
	}
	return New(c, sess)
}

// newAuthenticatedApp builds an app whose session resolved Authenticated
// against a fake backend.
func newAuthenticatedApp(t *testing.T) *App {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/users/me" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id": 1, "email": "ana@example.com", "full_name": "Ana Silva"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	store := session.NewStore(t.TempDir())
	if err := store.Set("valid-token"); err != nil {
		t.Fatalf("store.Set failed: %v", err)
	}
	c := api.New(srv.URL, store)
	sess := session.NewManager(store, c)
	if err := sess.Start(context.Background()); err != nil {
		t.Fatalf("session start failed: %v", err)
	}
	if sess.State() != session.StateAuthenticated {
		t.Fatalf("expected authenticated session, got %s", sess.State())
	}
	return New(c, sess)
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestAppInitialState(t *testing.T) {
	app := newTestApp(t)

	if app.screen != ScreenCatalog {
		t.Errorf("expected initial screen to be ScreenCatalog, got %d", app.screen)
	}
	if app.catalogScreen == nil {
		t.Error("expected catalog to be initialized")
	}
}

func TestScreenConstants(t *testing.T) {
	// Verify screen constants are defined correctly
	if ScreenCatalog != 0 {
		t.Errorf("expected ScreenCatalog to be 0, got %d", ScreenCatalog)
	}
	if ScreenLogin != 1 {
		t.Errorf("expected ScreenLogin to be 1, got %d", ScreenLogin)
	}
	if ScreenCart != 4 {
		t.Errorf("expected ScreenCart to be 4, got %d", ScreenCart)
	}
}

func TestBooksLoadedPopulatesCatalog(t *testing.T) {
	app := newTestApp(t)

	msg := booksLoadedMsg{query: "", books: []api.Book{
		{ID: 1, Title: "Dom Casmurro", Author: "Machado de Assis", Price: 29.90},
	}}
	updatedApp, _ := app.Update(msg)

	view := updatedApp.(*App).View()
	if !strings.Contains(view, "Dom Casmurro") {
		t.Error("expected catalog view to list the loaded book")
	}
}

func TestStaleSearchResponseDiscarded(t *testing.T) {
	app := newTestApp(t)

	// A new search supersedes the initial empty-query fetch
	app.Update(catalog.SearchRequestedMsg{Query: "go"})
	if view := app.catalogScreen.View(); !strings.Contains(view, "Carregando catálogo") {
		t.Error("expected the catalog to enter its loading state on search")
	}

	// The older response arrives late and must not land
	app.Update(booksLoadedMsg{query: "", books: []api.Book{{ID: 1, Title: "Stale Book"}}})
	if view := app.catalogScreen.View(); strings.Contains(view, "Stale Book") {
		t.Error("expected stale catalog response to be discarded")
	}

	app.Update(booksLoadedMsg{query: "go", books: []api.Book{{ID: 2, Title: "A Linguagem Go"}}})
	if view := app.catalogScreen.View(); !strings.Contains(view, "A Linguagem Go") {
		t.Error("expected matching catalog response to be applied")
	}
}

func TestAddWhileUnauthenticatedOpensLogin(t *testing.T) {
	app := newTestApp(t)

	updatedApp, _ := app.Update(catalog.AddRequestedMsg{BookID: 1})

	result := updatedApp.(*App)
	if result.screen != ScreenLogin {
		t.Errorf("expected screen to be ScreenLogin, got %d", result.screen)
	}
	if result.loginScreen == nil {
		t.Error("expected login screen to be created")
	}
}

func TestGuardRedirectRemembersOrigin(t *testing.T) {
	app := newTestApp(t)
	app.screen = ScreenCart

	updatedApp, _ := app.Update(guard.RedirectMsg{})

	result := updatedApp.(*App)
	if result.screen != ScreenLogin {
		t.Errorf("expected screen to be ScreenLogin, got %d", result.screen)
	}
	if !result.hasReturn || result.returnTo != ScreenCart {
		t.Error("expected the redirect to remember the cart as return screen")
	}
}

func TestLoginResultReturnsToRequestedScreen(t *testing.T) {
	app := newAuthenticatedApp(t)
	app.screen = ScreenLogin
	app.loginScreen = login.New()
	app.hasReturn = true
	app.returnTo = ScreenCart

	updatedApp, _ := app.Update(loginResultMsg{})

	result := updatedApp.(*App)
	if result.screen != ScreenCart {
		t.Errorf("expected screen to be ScreenCart after login, got %d", result.screen)
	}
	if result.activeGuard == nil {
		t.Error("expected cart screen to be gated")
	}
}

func TestCheckoutReturnShowsPaymentResult(t *testing.T) {
	app := newAuthenticatedApp(t)
	app.screen = ScreenCheckout
	app.checkoutScreen = checkoutview.New()

	msg := checkoutview.ReturnSubmittedMsg{RawURL: "https://livraria.example/payment-success?orderId=42"}
	updatedApp, _ := app.Update(msg)

	result := updatedApp.(*App)
	if result.screen != ScreenPaymentResult {
		t.Errorf("expected screen to be ScreenPaymentResult, got %d", result.screen)
	}
	if view := result.View(); !strings.Contains(view, "42") {
		t.Error("expected payment result view to show the order number hint")
	}
}

func TestInvoiceResponseForAnotherOrderDiscarded(t *testing.T) {
	app := newAuthenticatedApp(t)
	app.openInvoice(7)

	app.Update(invoiceLoadedMsg{orderID: 9, invoice: &api.Invoice{OrderID: 9, Status: "paid"}})
	if view := app.invoiceScreen.View(); !strings.Contains(view, "Carregando fatura") {
		t.Error("expected mismatched invoice response to be discarded")
	}

	app.Update(invoiceLoadedMsg{orderID: 7, invoice: &api.Invoice{OrderID: 7, Status: "paid", Total: 59.80}})
	if view := app.invoiceScreen.View(); !strings.Contains(view, "paid") {
		t.Error("expected matching invoice response to be applied")
	}
}

func TestAppViewReturnsContent(t *testing.T) {
	app := newTestApp(t)
	app.width = 100
	app.height = 40

	view := app.View()
	if !strings.Contains(view, "Livraria") {
		t.Error("expected view to contain 'Livraria' branding")
	}
	// Footer shows the search keybinding on the catalog
	if !strings.Contains(view, "Buscar") {
		t.Error("expected catalog footer to contain 'Buscar' keybinding")
	}
}

func TestLogoutKeyEndsSession(t *testing.T) {
	app := newAuthenticatedApp(t)

	app.updateKey(keyMsg("l"))

	if app.session.State() != session.StateUnauthenticated {
		t.Errorf("expected session to be unauthenticated after logout, got %s", app.session.State())
	}
	if view := app.catalogScreen.View(); !strings.Contains(view, "Sessão encerrada") {
		t.Error("expected catalog to confirm the logout")
	}
}

// crashingScreen panics from both tea.Model methods.
type crashingScreen struct{}

func (crashingScreen) Init() tea.Cmd                       { return nil }
func (crashingScreen) Update(tea.Msg) (tea.Model, tea.Cmd) { panic("nil book list") }
func (crashingScreen) View() string                        { panic("nil book list") }

func TestScreenPanicShowsErrorScreen(t *testing.T) {
	app := newAuthenticatedApp(t)
	app.screen = ScreenProfile
	app.activeGuard = guard.New(app.session.State, crashingScreen{})

	model, cmd := app.Update(keyMsg("j"))
	if cmd != nil {
		t.Error("expected no command after a recovered panic")
	}
	result := model.(*App)
	if result.fatal == "" {
		t.Fatal("expected the panic to be recorded")
	}

	view := result.View()
	if !strings.Contains(view, "Algo deu errado") {
		t.Errorf("expected the error screen, got %q", view)
	}
	if !strings.Contains(view, "nil book list") {
		t.Errorf("expected the panic value on the error screen, got %q", view)
	}

	// The error screen is terminal: navigation is ignored, quit keys work.
	if _, cmd := result.Update(keyMsg("o")); cmd != nil {
		t.Error("expected navigation keys to be ignored on the error screen")
	}
	if _, cmd := result.Update(keyMsg("q")); cmd == nil {
		t.Error("expected q to quit from the error screen")
	}
}

func TestViewPanicRendersErrorScreen(t *testing.T) {
	app := newAuthenticatedApp(t)
	app.screen = ScreenProfile
	app.activeGuard = guard.New(app.session.State, crashingScreen{})

	view := app.View()
	if !strings.Contains(view, "Algo deu errado") {
		t.Errorf("expected the error screen, got %q", view)
	}
	if app.fatal == "" {
		t.Error("expected the panic to be recorded for later frames")
	}
}
