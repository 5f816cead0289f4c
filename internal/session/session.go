// ABOUTME: Process-wide authentication session state machine
// ABOUTME: Resolving -> Anonymous | Authenticated; all mutation through named operations

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/AnurajMane/web-cost/internal/api"
	"github.com/AnurajMane/web-cost/internal/debuglog"
)

// State is the authentication status of the running client.
type State int

const (
	// StateResolving means the persisted token has not been validated yet.
	StateResolving State = iota
	// StateAnonymous means no confirmed identity exists.
	StateAnonymous
	// StateAuthenticated means the backend confirmed the stored token.
	StateAuthenticated
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateResolving:
		return "resolving"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// ValidationError is a client-side input error that never reaches the network.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// AuthAPI is the slice of the backend client the session manager depends on.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*api.Credentials, error)
	SendOTP(ctx context.Context, email string) error
	VerifySignup(ctx context.Context, email, otp, password, username string) (*api.Credentials, error)
	Me(ctx context.Context) (*api.User, error)
}

// Manager owns the single authoritative session for the process. The user is
// non-nil only after the stored token was confirmed by a backend round trip
// within this process lifetime.
type Manager struct {
	auth  AuthAPI
	store *TokenStore

	mu       sync.RWMutex
	state    State
	user     *api.User
	resolved bool

	group singleflight.Group
}

// NewManager creates a session manager in the Resolving state.
func NewManager(auth AuthAPI, store *TokenStore) *Manager {
	return &Manager{
		auth:  auth,
		store: store,
		state: StateResolving,
	}
}

// State returns the current session state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// User returns the confirmed profile, or nil when not authenticated.
func (m *Manager) User() *api.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Resolve validates any persisted token against the backend. It runs the
// round trip at most once per process: concurrent callers share one flight,
// and later callers get the already-resolved state back.
func (m *Manager) Resolve(ctx context.Context) State {
	m.mu.RLock()
	if m.resolved {
		state := m.state
		m.mu.RUnlock()
		return state
	}
	m.mu.RUnlock()

	result, _, _ := m.group.Do("resolve", func() (any, error) {
		if m.store.Token() == "" {
			m.become(StateAnonymous, nil)
			return StateAnonymous, nil
		}

		user, err := m.auth.Me(ctx)
		if err != nil {
			// Any validation failure means the token is not trusted:
			// drop it and start anonymous.
			debuglog.Warn("stored token rejected, starting anonymous: %v", err)
			_ = m.store.Clear()
			m.become(StateAnonymous, nil)
			return StateAnonymous, nil
		}

		m.become(StateAuthenticated, user)
		return StateAuthenticated, nil
	})

	return result.(State)
}

// Login exchanges credentials for a session. On success the token is
// persisted and the state becomes Authenticated. On failure the prior state
// is kept and the returned error carries the backend's message, or a generic
// fallback when it gave none.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	creds, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return errors.New(api.UserMessage(err, "login failed"))
	}

	if err := m.store.Save(creds.Token); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	user := creds.User
	m.become(StateAuthenticated, &user)
	return nil
}

// SendOTP starts the two-phase signup by requesting a one-time code. It never
// changes session state.
func (m *Manager) SendOTP(ctx context.Context, email string) error {
	if err := m.auth.SendOTP(ctx, email); err != nil {
		return errors.New(api.UserMessage(err, "failed to send verification code"))
	}
	return nil
}

// CompleteSignup finalizes signup with the emailed code. A password
// confirmation mismatch is rejected locally before any network call. On
// success the returned token is persisted and the state becomes Authenticated.
func (m *Manager) CompleteSignup(ctx context.Context, email, otp, password, confirmPassword, username string) error {
	if password != confirmPassword {
		return ValidationError("passwords do not match")
	}

	creds, err := m.auth.VerifySignup(ctx, email, otp, password, username)
	if err != nil {
		return errors.New(api.UserMessage(err, "verification failed"))
	}

	if err := m.store.Save(creds.Token); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	user := creds.User
	m.become(StateAuthenticated, &user)
	return nil
}

// Logout clears the token and the confirmed identity. Safe to call when
// already anonymous.
func (m *Manager) Logout() {
	_ = m.store.Clear()
	m.become(StateAnonymous, nil)
}

// HandleUnauthorized is the target for the client's global 401 hook. The
// client has already cleared the token; this tears down the in-memory side.
func (m *Manager) HandleUnauthorized() {
	m.become(StateAnonymous, nil)
}

// UpdateUser applies in-place profile field updates without changing
// authentication status. Empty fields are left untouched.
func (m *Manager) UpdateUser(username, avatarURL string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return
	}
	if username != "" {
		m.user.Username = username
	}
	if avatarURL != "" {
		m.user.AvatarURL = avatarURL
	}
}

// become is the single transition point for state and user.
func (m *Manager) become(state State, user *api.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	m.user = user
	m.resolved = true
}
