// ABOUTME: Client-side view of the server-owned shopping cart
// ABOUTME: Mutations refetch the authoritative cart instead of patching locally

package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/pbarbosa/livraria-cli/internal/api"
)

// ErrQuantityTooLow is returned for quantity updates below 1. No request is
// issued and the cached view is unchanged.
var ErrQuantityTooLow = errors.New("quantity must be at least 1")

// Synchronizer maintains a read-mostly cached copy of the server-side cart.
// Every mutation except Add is followed by an unconditional Reload, so the
// displayed state is always exactly what the server holds.
//
// When two mutations are issued concurrently their reloads can resolve out of
// order, leaving the cache on the older snapshot until the next reload. That
// window is inherent to the refetch-after-mutation pattern; there is no
// request sequencing here on purpose.
type Synchronizer struct {
	api *api.Client

	mu    sync.Mutex
	items []api.CartItem
}

// New creates a cart synchronizer over the given API client. The caller is
// responsible for only invoking operations with an authenticated session.
func New(client *api.Client) *Synchronizer {
	return &Synchronizer{api: client}
}

// Reload fetches the authoritative cart and replaces the cached view
// wholesale.
func (s *Synchronizer) Reload(ctx context.Context) error {
	items, err := s.api.ListCart(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

// Add posts a new cart line. It does not reload; the calling view decides
// whether to refetch or merely acknowledge.
func (s *Synchronizer) Add(ctx context.Context, bookID, quantity int) error {
	return s.api.AddToCart(ctx, bookID, quantity)
}

// UpdateQuantity changes a line's quantity and resynchronizes. Quantities
// below 1 are rejected locally without a network call.
func (s *Synchronizer) UpdateQuantity(ctx context.Context, itemID, quantity int) error {
	if quantity < 1 {
		return ErrQuantityTooLow
	}
	if err := s.api.UpdateCartItem(ctx, itemID, quantity); err != nil {
		return err
	}
	return s.Reload(ctx)
}

// Remove deletes a line and resynchronizes.
func (s *Synchronizer) Remove(ctx context.Context, itemID int) error {
	if err := s.api.RemoveCartItem(ctx, itemID); err != nil {
		return err
	}
	return s.Reload(ctx)
}

// Items returns a copy of the cached cart lines.
func (s *Synchronizer) Items() []api.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]api.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

// Total recomputes the cart total from the cached items on every call.
// It is never stored independently of the items.
func (s *Synchronizer) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, item := range s.items {
		total += item.Book.Price * float64(item.Quantity)
	}
	return total
}
