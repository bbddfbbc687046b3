// ABOUTME: Tests for the cart commands
// ABOUTME: Verifies cart output, local quantity validation and exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pbarbosa/livraria-cli/internal/api"
	"github.com/pbarbosa/livraria-cli/internal/cart"
)

func newCartBackend(t *testing.T, items []api.CartItem) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/cart":
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(items)
		case r.Method == http.MethodPost && r.URL.Path == "/cart/add":
			w.Write([]byte(`{}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCartShow_Success(t *testing.T) {
	srv := newCartBackend(t, []api.CartItem{
		{ID: 10, Book: api.Book{ID: 1, Title: "Dom Casmurro", Price: 25.00}, Quantity: 2},
	})
	t.Setenv("LIVRARIA_CONFIG_DIR", t.TempDir())
	apiURL = srv.URL
	defer func() { apiURL = "" }()

	_, client, _ := newServices()
	var buf bytes.Buffer
	exitCode := runCartShow(context.Background(), &buf, cart.New(client))

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("Dom Casmurro")) {
		t.Error("expected item title in output")
	}
	if !bytes.Contains(buf.Bytes(), []byte("Total: R$50.00")) {
		t.Errorf("expected recomputed total in output, got: %s", buf.String())
	}
}

func TestCartShow_Empty(t *testing.T) {
	srv := newCartBackend(t, []api.CartItem{})
	t.Setenv("LIVRARIA_CONFIG_DIR", t.TempDir())
	apiURL = srv.URL
	defer func() { apiURL = "" }()

	_, client, _ := newServices()
	var buf bytes.Buffer
	exitCode := runCartShow(context.Background(), &buf, cart.New(client))

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Cart is empty")) {
		t.Error("expected empty-cart message")
	}
}

func TestCartShow_NotSignedIn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Not authenticated"}`))
	}))
	defer srv.Close()

	t.Setenv("LIVRARIA_CONFIG_DIR", t.TempDir())
	apiURL = srv.URL
	defer func() { apiURL = "" }()

	_, client, _ := newServices()
	var buf bytes.Buffer
	exitCode := runCartShow(context.Background(), &buf, cart.New(client))

	if exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("livraria login")) {
		t.Error("expected login hint in output")
	}
}

func TestCartUpdate_QuantityBelowOneRejectedLocally(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	t.Setenv("LIVRARIA_CONFIG_DIR", t.TempDir())
	apiURL = srv.URL
	defer func() { apiURL = "" }()

	_, client, _ := newServices()
	var buf bytes.Buffer
	exitCode := runCartUpdate(context.Background(), &buf, cart.New(client), "10", 0)

	if exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
	if requests != 0 {
		t.Errorf("expected no request for quantity 0, server saw %d", requests)
	}
}

func TestCartAdd_InvalidBookID(t *testing.T) {
	t.Setenv("LIVRARIA_CONFIG_DIR", t.TempDir())

	_, client, _ := newServices()
	var buf bytes.Buffer
	exitCode := runCartAdd(context.Background(), &buf, cart.New(client), "abc", 1)

	if exitCode != 2 {
		t.Errorf("expected exit code 2 for invalid id, got %d", exitCode)
	}
}
