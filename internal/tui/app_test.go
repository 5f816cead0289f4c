// ABOUTME: Integration tests for the root TUI app
// ABOUTME: Tests screen gating, session-expired handling, and navigation

package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AnurajMane/web-cost/internal/api"
	"github.com/AnurajMane/web-cost/internal/session"
	"github.com/AnurajMane/web-cost/internal/tui/login"
	"github.com/AnurajMane/web-cost/internal/tui/signup"
)

// stubAuth is a canned AuthAPI for app tests.
type stubAuth struct {
	user *api.User
	err  error
}

func (s *stubAuth) Login(ctx context.Context, email, password string) (*api.Credentials, error) {
	return &api.Credentials{User: *s.user, Token: "tok"}, s.err
}

func (s *stubAuth) SendOTP(ctx context.Context, email string) error {
	return s.err
}

func (s *stubAuth) VerifySignup(ctx context.Context, email, otp, password, username string) (*api.Credentials, error) {
	return &api.Credentials{User: *s.user, Token: "tok"}, s.err
}

func (s *stubAuth) Me(ctx context.Context) (*api.User, error) {
	return s.user, s.err
}

func newTestApp(t *testing.T, token string) (*App, *session.Manager) {
	t.Helper()

	store := session.NewTokenStore(t.TempDir())
	if token != "" {
		store.Save(token)
	}

	auth := &stubAuth{user: &api.User{ID: "u1", Username: "pat"}}
	sess := session.NewManager(auth, store)
	client := api.New(api.NewRouteTable("http://127.0.0.1:1", "http://127.0.0.1:1", nil), store)

	return New(client, sess), sess
}

func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func TestAppInitialState(t *testing.T) {
	app, _ := newTestApp(t, "")

	if app.screen != ScreenResolving {
		t.Errorf("expected initial screen to be ScreenResolving, got %d", app.screen)
	}
	if !strings.Contains(app.View(), "Checking session") {
		t.Error("expected resolving placeholder in view")
	}
}

func TestResolvingViewShowsNoScreenContent(t *testing.T) {
	app, _ := newTestApp(t, "")

	view := app.View()
	for _, leak := range []string{"Month to date", "Linked accounts", "Sign in"} {
		if strings.Contains(view, leak) {
			t.Errorf("resolving view must not show %q", leak)
		}
	}
}

func TestSessionResolvedAnonymousShowsLogin(t *testing.T) {
	app, sess := newTestApp(t, "")
	sess.Resolve(context.Background())

	updated, _ := app.Update(sessionResolvedMsg{state: session.StateAnonymous})
	result := updated.(*App)

	if result.screen != ScreenLogin {
		t.Errorf("expected ScreenLogin, got %d", result.screen)
	}
	if result.loginScreen == nil {
		t.Error("expected login screen to be created")
	}
	if result.dashScreen != nil {
		t.Error("expected no dashboard for an anonymous session")
	}
}

func TestSessionResolvedAuthenticatedShowsDashboard(t *testing.T) {
	app, sess := newTestApp(t, "tok-123")
	sess.Resolve(context.Background())

	updated, _ := app.Update(sessionResolvedMsg{state: session.StateAuthenticated})
	result := updated.(*App)

	if result.screen != ScreenDashboard {
		t.Errorf("expected ScreenDashboard, got %d", result.screen)
	}
	if result.dashScreen == nil {
		t.Error("expected dashboard screen to be created")
	}
}

func TestSwitchToAuthenticatedScreenWhileAnonymousLandsOnLogin(t *testing.T) {
	app, sess := newTestApp(t, "")
	sess.Resolve(context.Background())

	updated, _ := app.switchTo(ScreenDashboard)
	result := updated.(*App)

	if result.screen != ScreenLogin {
		t.Errorf("anonymous session must land on login, got screen %d", result.screen)
	}
	if result.dashScreen != nil {
		t.Error("expected no dashboard screen for an anonymous session")
	}
}

func TestSessionExpiredDropsToLogin(t *testing.T) {
	app, sess := newTestApp(t, "tok-123")
	sess.Resolve(context.Background())
	app.Update(sessionResolvedMsg{state: session.StateAuthenticated})

	sess.HandleUnauthorized()
	updated, _ := app.Update(SessionExpiredMsg{})
	result := updated.(*App)

	if result.screen != ScreenLogin {
		t.Errorf("expected ScreenLogin after session expiry, got %d", result.screen)
	}
	if result.notice == "" {
		t.Error("expected a session-expired notice")
	}
	if result.dashScreen != nil || result.chatScreen != nil {
		t.Error("expected authenticated screens to be torn down")
	}
}

func TestSessionExpiredIgnoredWhenAlreadyOnLogin(t *testing.T) {
	app, sess := newTestApp(t, "")
	sess.Resolve(context.Background())
	app.Update(sessionResolvedMsg{state: session.StateAnonymous})

	updated, _ := app.Update(SessionExpiredMsg{})
	result := updated.(*App)

	if result.screen != ScreenLogin {
		t.Errorf("expected to stay on ScreenLogin, got %d", result.screen)
	}
	if result.notice != "" {
		t.Errorf("repeated expiry on the login screen must not set a notice, got %q", result.notice)
	}
}

func TestLoggedInMsgShowsDashboard(t *testing.T) {
	app, sess := newTestApp(t, "tok-123")
	sess.Resolve(context.Background())
	app.Update(sessionResolvedMsg{state: session.StateAnonymous})
	app.notice = "Session expired. Please sign in again."

	updated, _ := app.Update(login.LoggedInMsg{})
	result := updated.(*App)

	if result.screen != ScreenDashboard {
		t.Errorf("expected ScreenDashboard after login, got %d", result.screen)
	}
	if result.notice != "" {
		t.Error("expected notice to be cleared after login")
	}
}

func TestSignupCancelReturnsToLogin(t *testing.T) {
	app, sess := newTestApp(t, "")
	sess.Resolve(context.Background())
	app.Update(sessionResolvedMsg{state: session.StateAnonymous})
	app.Update(login.SwitchToSignupMsg{})

	if app.screen != ScreenSignup {
		t.Fatalf("expected ScreenSignup, got %d", app.screen)
	}

	updated, _ := app.Update(signup.CancelledMsg{})
	result := updated.(*App)

	if result.screen != ScreenLogin {
		t.Errorf("expected ScreenLogin after cancel, got %d", result.screen)
	}
	if result.signupScreen != nil {
		t.Error("expected signup screen to be discarded")
	}
}

func TestNavKeysSwitchScreens(t *testing.T) {
	app, sess := newTestApp(t, "tok-123")
	sess.Resolve(context.Background())
	app.Update(sessionResolvedMsg{state: session.StateAuthenticated})

	updated, _ := app.Update(keyMsg("3"))
	result := updated.(*App)
	if result.screen != ScreenAlerts {
		t.Errorf("expected ScreenAlerts after pressing 3, got %d", result.screen)
	}

	updated, _ = result.Update(keyMsg("5"))
	result = updated.(*App)
	if result.screen != ScreenSettings {
		t.Errorf("expected ScreenSettings after pressing 5, got %d", result.screen)
	}
}

func TestSignOutKeyClearsSession(t *testing.T) {
	app, sess := newTestApp(t, "tok-123")
	sess.Resolve(context.Background())
	app.Update(sessionResolvedMsg{state: session.StateAuthenticated})

	updated, _ := app.Update(keyMsg("0"))
	result := updated.(*App)

	if result.screen != ScreenLogin {
		t.Errorf("expected ScreenLogin after sign out, got %d", result.screen)
	}
	if sess.State() != session.StateAnonymous {
		t.Errorf("expected Anonymous session after sign out, got %v", sess.State())
	}
	if result.dashScreen != nil {
		t.Error("expected dashboard to be torn down on sign out")
	}
}

func TestAppViewReturnsContent(t *testing.T) {
	app, sess := newTestApp(t, "tok-123")
	sess.Resolve(context.Background())
	app.width = 100
	app.height = 40
	app.Update(sessionResolvedMsg{state: session.StateAuthenticated})

	view := app.View()
	if !strings.Contains(view, "Cloud Cost Intelligence") {
		t.Error("expected header branding in view")
	}
	if !strings.Contains(view, "pat") {
		t.Error("expected signed-in username in header")
	}
	// Footer shows the screen shortcuts
	if !strings.Contains(view, "Sign-out") {
		t.Error("expected footer shortcuts in view")
	}
}
