// ABOUTME: Checkout hand-off to the external payment processor
// ABOUTME: Initiates checkout and interprets the untrusted return navigation

package checkout

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/pbarbosa/livraria-cli/internal/api"
)

// Navigator transfers control to an external destination. Opening the
// destination is a full hand-off: the orchestrator keeps no state across it.
type Navigator interface {
	Open(url string) error
}

// Orchestrator drives the two-phase checkout protocol: phase 1 obtains an
// opaque redirect destination from the backend against the server-side cart,
// phase 2 is the return navigation, which is a display hint only.
type Orchestrator struct {
	api *api.Client
	nav Navigator
}

// New creates a checkout orchestrator.
func New(client *api.Client, nav Navigator) *Orchestrator {
	return &Orchestrator{api: client, nav: nav}
}

// Initiate posts the chosen payment method, then transfers control to the
// redirect destination the backend returned. On failure no navigation
// happens. No client-side checkout state is written either way.
func (o *Orchestrator) Initiate(ctx context.Context, paymentMethod string) (string, error) {
	redirectURL, err := o.api.InitiateCheckout(ctx, paymentMethod)
	if err != nil {
		return "", err
	}
	if err := o.nav.Open(redirectURL); err != nil {
		return redirectURL, fmt.Errorf("failed to open payment page: %w", err)
	}
	return redirectURL, nil
}

// Status is the checkout outcome reported by the return navigation.
type Status int

const (
	StatusUnknown Status = iota
	StatusSuccess
	StatusCancelled
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Outcome is the parsed return navigation. OrderID comes straight from the
// query string and is untrusted: it identifies which order to look up, never
// proof that payment happened. Actual paid state must come from the order
// history or invoice endpoints.
type Outcome struct {
	Status  Status
	OrderID string
}

// ParseReturn interprets one of the two fixed return destinations: the
// success path carries an orderId query parameter, the cancellation path
// carries nothing. Anything else is unknown.
func ParseReturn(rawURL string) Outcome {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Outcome{Status: StatusUnknown}
	}

	switch {
	case strings.HasSuffix(u.Path, "/payment-success"):
		return Outcome{Status: StatusSuccess, OrderID: u.Query().Get("orderId")}
	case strings.HasSuffix(u.Path, "/payment-cancelled"):
		return Outcome{Status: StatusCancelled}
	default:
		return Outcome{Status: StatusUnknown}
	}
}

// BrowserNavigator opens destinations in the system default browser.
type BrowserNavigator struct{}

// Open launches the platform browser opener for the given URL.
func (BrowserNavigator) Open(target string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", target).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target).Start()
	default:
		return exec.Command("xdg-open", target).Start()
	}
}

// PrintNavigator writes the destination to w instead of opening a browser.
// Used in script mode, where the caller completes payment elsewhere.
type PrintNavigator struct {
	W io.Writer
}

// Open prints the destination URL.
func (p PrintNavigator) Open(target string) error {
	_, err := fmt.Fprintln(p.W, target)
	return err
}
