// ABOUTME: Authentication lifecycle for the livraria CLI
// ABOUTME: Owns the Verifying/Authenticated/Unauthenticated state machine

package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/pbarbosa/livraria-cli/internal/api"
)

// State is the session resolution state.
type State int

const (
	// StateVerifying holds from construction until Start resolves. Protected
	// views must not render while verifying.
	StateVerifying State = iota
	StateUnauthenticated
	StateAuthenticated
)

// String returns the state name for log output.
func (s State) String() string {
	switch s {
	case StateVerifying:
		return "verifying"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Manager owns the session state machine. It is the sole writer of the
// persisted credential; everything else reads the token through the store.
// Invariant: StateAuthenticated implies a profile fetched with the current
// credential on the current resolution pass.
type Manager struct {
	store *Store
	api   *api.Client

	mu    sync.Mutex
	state State
	user  *api.User
}

// NewManager creates a session manager in the Verifying state.
func NewManager(store *Store, client *api.Client) *Manager {
	return &Manager{
		store: store,
		api:   client,
		state: StateVerifying,
	}
}

// State returns the current resolution state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// User returns the authenticated profile, or nil outside StateAuthenticated.
func (m *Manager) User() *api.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Start resolves the persisted credential exactly once per process. A stored
// token is validated by fetching the profile; any failure clears the token so
// the session can never end up Authenticated with a stale profile. With no
// stored token the session resolves directly to Unauthenticated.
func (m *Manager) Start(ctx context.Context) error {
	if m.store.Token() == "" {
		m.setState(StateUnauthenticated, nil)
		return nil
	}

	user, err := m.api.CurrentUser(ctx)
	if err != nil {
		if clearErr := m.store.Clear(); clearErr != nil {
			err = fmt.Errorf("%w (and clearing credential failed: %v)", err, clearErr)
		}
		m.setState(StateUnauthenticated, nil)
		return err
	}

	m.setState(StateAuthenticated, user)
	return nil
}

// Login exchanges credentials for a token, persists it, and re-runs the
// profile fetch. On any failure nothing is persisted and the session falls
// back to Unauthenticated.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	token, err := m.api.Login(ctx, email, password)
	if err != nil {
		m.setState(StateUnauthenticated, nil)
		return err
	}

	if err := m.store.Set(token); err != nil {
		m.setState(StateUnauthenticated, nil)
		return fmt.Errorf("failed to persist credential: %w", err)
	}

	user, err := m.api.CurrentUser(ctx)
	if err != nil {
		if clearErr := m.store.Clear(); clearErr != nil {
			err = fmt.Errorf("%w (and clearing credential failed: %v)", err, clearErr)
		}
		m.setState(StateUnauthenticated, nil)
		return err
	}

	m.setState(StateAuthenticated, user)
	return nil
}

// Logout clears the persisted credential and drops to Unauthenticated.
// Safe to call when no session exists.
func (m *Manager) Logout() error {
	err := m.store.Clear()
	m.setState(StateUnauthenticated, nil)
	return err
}

func (m *Manager) setState(state State, user *api.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	m.user = user
}
