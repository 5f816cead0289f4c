// ABOUTME: Tests for the session state machine
// ABOUTME: Covers resolve paths, login, two-phase signup, and 401 teardown

package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/AnurajMane/web-cost/internal/api"
)

// fakeAuth is a scriptable AuthAPI for tests.
type fakeAuth struct {
	mu           sync.Mutex
	meCalls      int
	meUser       *api.User
	meErr        error
	loginCreds   *api.Credentials
	loginErr     error
	otpErr       error
	verifyCreds  *api.Credentials
	verifyErr    error
	verifyCalled bool
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (*api.Credentials, error) {
	return f.loginCreds, f.loginErr
}

func (f *fakeAuth) SendOTP(ctx context.Context, email string) error {
	return f.otpErr
}

func (f *fakeAuth) VerifySignup(ctx context.Context, email, otp, password, username string) (*api.Credentials, error) {
	f.mu.Lock()
	f.verifyCalled = true
	f.mu.Unlock()
	return f.verifyCreds, f.verifyErr
}

func (f *fakeAuth) Me(ctx context.Context) (*api.User, error) {
	f.mu.Lock()
	f.meCalls++
	f.mu.Unlock()
	return f.meUser, f.meErr
}

func newTestManager(t *testing.T, auth *fakeAuth) (*Manager, *TokenStore) {
	t.Helper()
	store := NewTokenStore(t.TempDir())
	return NewManager(auth, store), store
}

func TestManager_StartsResolving(t *testing.T) {
	m, _ := newTestManager(t, &fakeAuth{})
	if m.State() != StateResolving {
		t.Errorf("expected Resolving, got %v", m.State())
	}
}

func TestResolve_NoTokenIsAnonymous(t *testing.T) {
	auth := &fakeAuth{}
	m, _ := newTestManager(t, auth)

	if got := m.Resolve(context.Background()); got != StateAnonymous {
		t.Errorf("expected Anonymous, got %v", got)
	}
	if auth.meCalls != 0 {
		t.Errorf("no validation round trip expected without a token, got %d", auth.meCalls)
	}
}

func TestResolve_ValidTokenIsAuthenticated(t *testing.T) {
	auth := &fakeAuth{meUser: &api.User{ID: "u1", Username: "pat"}}
	m, store := newTestManager(t, auth)
	store.Save("tok-123")

	if got := m.Resolve(context.Background()); got != StateAuthenticated {
		t.Errorf("expected Authenticated, got %v", got)
	}
	if user := m.User(); user == nil || user.Username != "pat" {
		t.Errorf("expected confirmed user pat, got %v", user)
	}
}

func TestResolve_InvalidTokenClearedAndAnonymous(t *testing.T) {
	auth := &fakeAuth{meErr: errors.New("unauthorized")}
	m, store := newTestManager(t, auth)
	store.Save("stale-token")

	if got := m.Resolve(context.Background()); got != StateAnonymous {
		t.Errorf("expected Anonymous, got %v", got)
	}
	if store.Token() != "" {
		t.Error("expected stale token to be cleared")
	}
	if m.User() != nil {
		t.Error("expected no user after failed validation")
	}
}

func TestResolve_RunsValidationOnce(t *testing.T) {
	auth := &fakeAuth{meUser: &api.User{ID: "u1"}}
	m, store := newTestManager(t, auth)
	store.Save("tok-123")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Resolve(context.Background())
		}()
	}
	wg.Wait()
	m.Resolve(context.Background())

	if auth.meCalls != 1 {
		t.Errorf("expected exactly one validation round trip, got %d", auth.meCalls)
	}
}

func TestLogin_PersistsTokenAndAuthenticates(t *testing.T) {
	auth := &fakeAuth{loginCreds: &api.Credentials{
		User:  api.User{ID: "u1", Username: "pat"},
		Token: "tok-new",
	}}
	m, store := newTestManager(t, auth)

	if err := m.Login(context.Background(), "pat@example.com", "secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.State() != StateAuthenticated {
		t.Errorf("expected Authenticated, got %v", m.State())
	}
	if store.Token() != "tok-new" {
		t.Errorf("expected persisted token tok-new, got %q", store.Token())
	}
}

func TestLogin_FailureKeepsPriorState(t *testing.T) {
	auth := &fakeAuth{loginErr: &api.HTTPError{Status: 401, Message: "wrong password"}}
	m, store := newTestManager(t, auth)
	m.Resolve(context.Background())

	err := m.Login(context.Background(), "pat@example.com", "nope")
	if err == nil {
		t.Fatal("expected login error")
	}
	if err.Error() != "wrong password" {
		t.Errorf("expected backend message verbatim, got %q", err.Error())
	}
	if m.State() != StateAnonymous {
		t.Errorf("expected state to stay Anonymous, got %v", m.State())
	}
	if store.Token() != "" {
		t.Error("expected no token persisted on failed login")
	}
}

func TestLogin_GenericFallbackMessage(t *testing.T) {
	auth := &fakeAuth{loginErr: &api.HTTPError{Status: 500}}
	m, _ := newTestManager(t, auth)

	err := m.Login(context.Background(), "pat@example.com", "secret")
	if err == nil {
		t.Fatal("expected login error")
	}
	// HTTPError with no message carries its own status fallback
	if err.Error() == "" {
		t.Error("expected a non-empty error message")
	}
}

func TestCompleteSignup_PasswordMismatchNeverReachesNetwork(t *testing.T) {
	auth := &fakeAuth{}
	m, _ := newTestManager(t, auth)

	err := m.CompleteSignup(context.Background(), "pat@example.com", "123456", "secret", "different", "pat")
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if auth.verifyCalled {
		t.Error("validation failure must not reach the network")
	}
	if m.State() == StateAuthenticated {
		t.Error("state must not change on validation failure")
	}
}

func TestCompleteSignup_Success(t *testing.T) {
	auth := &fakeAuth{verifyCreds: &api.Credentials{
		User:  api.User{ID: "u2", Username: "new"},
		Token: "tok-signup",
	}}
	m, store := newTestManager(t, auth)

	err := m.CompleteSignup(context.Background(), "new@example.com", "123456", "secret", "secret", "new")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.State() != StateAuthenticated {
		t.Errorf("expected Authenticated, got %v", m.State())
	}
	if store.Token() != "tok-signup" {
		t.Errorf("expected persisted signup token, got %q", store.Token())
	}
}

func TestLogout_Idempotent(t *testing.T) {
	auth := &fakeAuth{loginCreds: &api.Credentials{User: api.User{ID: "u1"}, Token: "tok"}}
	m, store := newTestManager(t, auth)
	m.Login(context.Background(), "a@b.c", "secret")

	m.Logout()
	if m.State() != StateAnonymous {
		t.Errorf("expected Anonymous after logout, got %v", m.State())
	}
	if store.Token() != "" {
		t.Error("expected token cleared after logout")
	}

	// Logging out again is a no-op, not an error
	m.Logout()
	if m.State() != StateAnonymous {
		t.Errorf("expected Anonymous after second logout, got %v", m.State())
	}
}

func TestHandleUnauthorized_TearsDownIdentity(t *testing.T) {
	auth := &fakeAuth{loginCreds: &api.Credentials{User: api.User{ID: "u1", Username: "pat"}, Token: "tok"}}
	m, _ := newTestManager(t, auth)
	m.Login(context.Background(), "a@b.c", "secret")

	m.HandleUnauthorized()
	if m.State() != StateAnonymous {
		t.Errorf("expected Anonymous after 401, got %v", m.State())
	}
	if m.User() != nil {
		t.Error("expected no user after 401 teardown")
	}
}

func TestUpdateUser_InPlace(t *testing.T) {
	auth := &fakeAuth{loginCreds: &api.Credentials{
		User:  api.User{ID: "u1", Username: "pat", AvatarURL: "old.png"},
		Token: "tok",
	}}
	m, _ := newTestManager(t, auth)
	m.Login(context.Background(), "a@b.c", "secret")

	m.UpdateUser("patricia", "")

	user := m.User()
	if user.Username != "patricia" {
		t.Errorf("expected updated username, got %q", user.Username)
	}
	if user.AvatarURL != "old.png" {
		t.Errorf("empty fields must be left untouched, got %q", user.AvatarURL)
	}
	if m.State() != StateAuthenticated {
		t.Errorf("profile update must not change auth state, got %v", m.State())
	}
}

func TestUser_ReturnsCopy(t *testing.T) {
	auth := &fakeAuth{loginCreds: &api.Credentials{User: api.User{ID: "u1", Username: "pat"}, Token: "tok"}}
	m, _ := newTestManager(t, auth)
	m.Login(context.Background(), "a@b.c", "secret")

	user := m.User()
	user.Username = "mutated"

	if m.User().Username != "pat" {
		t.Error("User() must return a copy, not the internal pointer")
	}
}
