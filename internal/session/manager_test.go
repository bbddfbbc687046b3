// ABOUTME: Tests for the session manager state machine
// ABOUTME: Uses httptest backends and a temp-dir credential store

package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/pbarbosa/livraria-cli/internal/api"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(t.TempDir())
}

func tokenFileExists(t *testing.T, s *Store) bool {
	t.Helper()
	_, err := os.Stat(filepath.Join(s.configDir, "token.json"))
	return err == nil
}

func TestStartWithoutCredential(t *testing.T) {
	store := newTestStore(t)
	mgr := NewManager(store, api.New("http://127.0.0.1:1", store))

	if mgr.State() != StateVerifying {
		t.Fatalf("expected initial state verifying, got %v", mgr.State())
	}

	if err := mgr.Start(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mgr.State() != StateUnauthenticated {
		t.Errorf("expected unauthenticated, got %v", mgr.State())
	}
}

func TestStartWithValidCredential(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/me" {
			t.Errorf("expected /users/me, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			t.Errorf("expected stored token attached, got %q", r.Header.Get("Authorization"))
		}
		json.NewEncoder(w).Encode(api.User{ID: 3, Email: "ana@example.com"})
	}))
	defer server.Close()

	store := newTestStore(t)
	if err := store.Set("tok-1"); err != nil {
		t.Fatal(err)
	}
	mgr := NewManager(store, api.New(server.URL, store))

	if err := mgr.Start(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mgr.State() != StateAuthenticated {
		t.Fatalf("expected authenticated, got %v", mgr.State())
	}
	if mgr.User() == nil || mgr.User().Email != "ana@example.com" {
		t.Errorf("expected fresh profile, got %v", mgr.User())
	}
}

func TestStartWithRejectedCredential(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
	}))
	defer server.Close()

	store := newTestStore(t)
	if err := store.Set("stale-token"); err != nil {
		t.Fatal(err)
	}
	mgr := NewManager(store, api.New(server.URL, store))

	err := mgr.Start(context.Background())
	if err == nil {
		t.Fatal("expected error for rejected credential")
	}
	if mgr.State() != StateUnauthenticated {
		t.Errorf("expected unauthenticated, got %v", mgr.State())
	}
	if mgr.User() != nil {
		t.Error("expected no profile after rejection")
	}
	if store.Token() != "" {
		t.Error("expected credential cleared")
	}
	if tokenFileExists(t, store) {
		t.Error("expected token file removed")
	}
}

func TestLoginSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-new"})
		case "/users/me":
			if r.Header.Get("Authorization") != "Bearer tok-new" {
				t.Errorf("profile fetch must use the fresh token, got %q", r.Header.Get("Authorization"))
			}
			json.NewEncoder(w).Encode(api.User{ID: 1, Email: "ana@example.com", FullName: "Ana Souza"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	store := newTestStore(t)
	mgr := NewManager(store, api.New(server.URL, store))

	if err := mgr.Login(context.Background(), "ana@example.com", "secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mgr.State() != StateAuthenticated {
		t.Fatalf("expected authenticated, got %v", mgr.State())
	}
	if store.Token() != "tok-new" {
		t.Errorf("expected persisted token, got %q", store.Token())
	}
	if mgr.User().FullName != "Ana Souza" {
		t.Errorf("expected profile set, got %v", mgr.User())
	}
}

func TestLoginFailurePersistsNothing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect email or password"})
	}))
	defer server.Close()

	store := newTestStore(t)
	mgr := NewManager(store, api.New(server.URL, store))

	err := mgr.Login(context.Background(), "ana@example.com", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	if !api.IsAuth(err) {
		t.Errorf("expected classified auth error, got %v", err)
	}
	if store.Token() != "" {
		t.Error("expected no credential persisted on failed login")
	}
	if tokenFileExists(t, store) {
		t.Error("expected no token file on failed login")
	}
}

func TestLoginProfileFetchFailureClearsCredential(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-new"})
		case "/users/me":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	store := newTestStore(t)
	mgr := NewManager(store, api.New(server.URL, store))

	err := mgr.Login(context.Background(), "ana@example.com", "secret")
	if err == nil {
		t.Fatal("expected error")
	}
	if mgr.State() != StateUnauthenticated {
		t.Errorf("expected unauthenticated, got %v", mgr.State())
	}
	if store.Token() != "" {
		t.Error("expected the half-established credential to be cleared")
	}
	if tokenFileExists(t, store) {
		t.Error("expected no token file after the failed profile fetch")
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	store := newTestStore(t)
	if err := store.Set("tok-1"); err != nil {
		t.Fatal(err)
	}
	mgr := NewManager(store, api.New("http://127.0.0.1:1", store))
	mgr.setState(StateAuthenticated, &api.User{ID: 1})

	if err := mgr.Logout(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mgr.State() != StateUnauthenticated {
		t.Errorf("expected unauthenticated, got %v", mgr.State())
	}
	if mgr.User() != nil {
		t.Error("expected profile cleared")
	}
	if store.Token() != "" {
		t.Error("expected credential cleared")
	}
	if tokenFileExists(t, store) {
		t.Error("expected token file removed")
	}
}

func TestLogoutWithoutSessionIsSafe(t *testing.T) {
	store := newTestStore(t)
	mgr := NewManager(store, api.New("http://127.0.0.1:1", store))

	if err := mgr.Logout(); err != nil {
		t.Fatalf("logout without session must not fail: %v", err)
	}
	if mgr.State() != StateUnauthenticated {
		t.Errorf("expected unauthenticated, got %v", mgr.State())
	}
}

func TestStorePersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	first := NewStore(dir)
	if err := first.Set("tok-persist"); err != nil {
		t.Fatal(err)
	}

	second := NewStore(dir)
	if second.Token() != "tok-persist" {
		t.Errorf("expected token to survive restart, got %q", second.Token())
	}
}

func TestStoreCorruptFileTreatedAsNoCredential(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "token.json"), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	store := NewStore(dir)
	if store.Token() != "" {
		t.Errorf("expected empty token for corrupt file, got %q", store.Token())
	}
}
