// ABOUTME: HTTP client for the Livraria bookstore API
// ABOUTME: Attaches the session credential and classifies backend failures

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TokenSource provides the current session credential. An empty token means
// no credential exists and no Authorization header is sent.
type TokenSource interface {
	Token() string
}

// Client is the API client for the Livraria backend. Every request reads the
// token source synchronously, so a credential written by the session manager
// is visible to the very next call.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// New creates a new API client with the given base URL and token source.
// tokens may be nil for a client that only calls public endpoints.
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		tokens: tokens,
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doJSON issues a request with an optional JSON body and decodes a JSON
// response into out when out is non-nil. Non-2xx responses become *Error.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("invalid response from backend: %w", err)
		}
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages.
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return &Error{Kind: KindTransient, Message: "request canceled"}
	}
	if ctx.Err() == context.DeadlineExceeded {
		return &Error{Kind: KindTransient, Message: "request timed out"}
	}
	return &Error{
		Kind:    KindTransient,
		Message: fmt.Sprintf("cannot connect to backend at %s: %v", c.baseURL, err),
	}
}

// Login exchanges credentials for a bearer token via POST /login.
// Nothing is persisted here; the session manager owns the credential.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	payload := map[string]string{"email": email, "password": password}
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/login", payload, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// Register creates a new account via POST /register.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*User, error) {
	var user User
	if err := c.doJSON(ctx, http.MethodPost, "/register", input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CurrentUser fetches the authenticated profile via GET /users/me.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.doJSON(ctx, http.MethodGet, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListBooks fetches the catalog via GET /books, optionally filtered by search.
func (c *Client) ListBooks(ctx context.Context, search string) ([]Book, error) {
	path := "/books"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}
	var books []Book
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// ListCart fetches the authoritative cart via GET /cart.
func (c *Client) ListCart(ctx context.Context) ([]CartItem, error) {
	var items []CartItem
	if err := c.doJSON(ctx, http.MethodGet, "/cart", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddToCart posts a new cart line via POST /cart/add.
func (c *Client) AddToCart(ctx context.Context, bookID, quantity int) error {
	payload := map[string]int{"book_id": bookID, "quantity": quantity}
	return c.doJSON(ctx, http.MethodPost, "/cart/add", payload, nil)
}

// UpdateCartItem changes a cart line's quantity via PUT /cart/{itemID}.
func (c *Client) UpdateCartItem(ctx context.Context, itemID, quantity int) error {
	payload := map[string]int{"quantity": quantity}
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/cart/%d", itemID), payload, nil)
}

// RemoveCartItem deletes a cart line via DELETE /cart/{itemID}.
func (c *Client) RemoveCartItem(ctx context.Context, itemID int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/cart/%d", itemID), nil, nil)
}

// InitiateCheckout starts a checkout against the current server-side cart via
// POST /checkout and returns the opaque payment redirect destination.
func (c *Client) InitiateCheckout(ctx context.Context, paymentMethod string) (string, error) {
	payload := map[string]string{"payment_method": paymentMethod}
	var resp struct {
		RedirectURL string `json:"redirect_url"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/checkout", payload, &resp); err != nil {
		return "", err
	}
	return resp.RedirectURL, nil
}

// OrderHistory fetches past orders via GET /orders/history.
func (c *Client) OrderHistory(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.doJSON(ctx, http.MethodGet, "/orders/history", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Invoice fetches a single order's invoice via GET /orders/{orderID}/invoice.
func (c *Client) Invoice(ctx context.Context, orderID int) (*Invoice, error) {
	var inv Invoice
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/orders/%d/invoice", orderID), nil, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// RequestPasswordReset asks for a reset ticket via POST /password-reset-request.
// The backend returns the token directly in dev mode only; in production it
// goes out via email and the returned string is empty.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	payload := map[string]string{"email": email}
	var resp struct {
		ResetToken string `json:"reset_token"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/password-reset-request", payload, &resp); err != nil {
		return "", err
	}
	return resp.ResetToken, nil
}

// ConfirmPasswordReset redeems a reset ticket via POST /password-reset-confirm.
// The ticket is transient and never stored client-side.
func (c *Client) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	payload := map[string]string{"token": token, "new_password": newPassword}
	return c.doJSON(ctx, http.MethodPost, "/password-reset-confirm", payload, nil)
}
