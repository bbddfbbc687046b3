// ABOUTME: Tests for checkout initiation and return-URL interpretation
// ABOUTME: Uses a recording navigator and an httptest backend

package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pbarbosa/livraria-cli/internal/api"
)

type recordingNavigator struct {
	opened []string
}

func (r *recordingNavigator) Open(url string) error {
	r.opened = append(r.opened, url)
	return nil
}

func TestInitiateNavigatesToExactDestination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/checkout" {
			t.Errorf("expected /checkout, got %s", r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["payment_method"] != "paypal" {
			t.Errorf("expected paypal, got %v", body)
		}
		json.NewEncoder(w).Encode(map[string]string{"redirect_url": "https://paypal.example/pay/xyz"})
	}))
	defer server.Close()

	nav := &recordingNavigator{}
	orch := New(api.New(server.URL, nil), nav)

	url, err := orch.Initiate(context.Background(), "paypal")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://paypal.example/pay/xyz" {
		t.Errorf("unexpected redirect url %q", url)
	}
	if len(nav.opened) != 1 || nav.opened[0] != "https://paypal.example/pay/xyz" {
		t.Errorf("expected navigation to exactly the returned destination, got %v", nav.opened)
	}
}

func TestInitiateFailurePerformsNoNavigation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Cart is empty"})
	}))
	defer server.Close()

	nav := &recordingNavigator{}
	orch := New(api.New(server.URL, nil), nav)

	_, err := orch.Initiate(context.Background(), "paypal")
	if err == nil {
		t.Fatal("expected error")
	}
	if !api.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
	if len(nav.opened) != 0 {
		t.Errorf("expected no navigation on failure, got %v", nav.opened)
	}
}

func TestParseReturn(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		status  Status
		orderID string
	}{
		{"success with order id", "http://localhost:3000/payment-success?orderId=42", StatusSuccess, "42"},
		{"success without order id", "http://localhost:3000/payment-success", StatusSuccess, ""},
		{"cancelled", "http://localhost:3000/payment-cancelled", StatusCancelled, ""},
		{"unrelated path", "http://localhost:3000/orders", StatusUnknown, ""},
		{"garbage", "://not-a-url", StatusUnknown, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			outcome := ParseReturn(tc.url)
			if outcome.Status != tc.status {
				t.Errorf("expected status %v, got %v", tc.status, outcome.Status)
			}
			if outcome.OrderID != tc.orderID {
				t.Errorf("expected order id %q, got %q", tc.orderID, outcome.OrderID)
			}
		})
	}
}

func TestPrintNavigator(t *testing.T) {
	var sb strings.Builder
	nav := PrintNavigator{W: &sb}

	if err := nav.Open("https://paypal.example/pay/1"); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(sb.String()); got != "https://paypal.example/pay/1" {
		t.Errorf("expected printed url, got %q", got)
	}
}
