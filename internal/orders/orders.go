// ABOUTME: Order history and invoice retrieval
// ABOUTME: Thin, cache-free reads over the backend order endpoints

package orders

import (
	"context"

	"github.com/pbarbosa/livraria-cli/internal/api"
)

// Fetcher retrieves orders and invoices. There is no caching: every view
// entry re-fetches, so stale paid/pending state is never shown.
type Fetcher struct {
	api *api.Client
}

// New creates an order fetcher.
func New(client *api.Client) *Fetcher {
	return &Fetcher{api: client}
}

// History lists the user's past orders.
func (f *Fetcher) History(ctx context.Context) ([]api.Order, error) {
	return f.api.OrderHistory(ctx)
}

// Invoice fetches a single order's invoice. The error, when present, is
// classified: api.IsNotFound for inaccessible orders, api.IsAuth for an
// expired session, anything else transient.
func (f *Fetcher) Invoice(ctx context.Context, orderID int) (*api.Invoice, error) {
	return f.api.Invoice(ctx, orderID)
}
