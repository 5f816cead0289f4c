// ABOUTME: Login screen as a bubbletea model wrapping a huh form
// ABOUTME: Submits credentials through the session manager and reports the result

package login

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/AnurajMane/web-cost/internal/session"
	"github.com/AnurajMane/web-cost/internal/tui/styles"
)

// LoggedInMsg is sent when login succeeds.
type LoggedInMsg struct{}

// SwitchToSignupMsg is sent when the user wants the signup screen instead.
type SwitchToSignupMsg struct{}

// resultMsg carries the outcome of a login attempt.
type resultMsg struct {
	err error
}

// Login is the login screen model.
type Login struct {
	sess       *session.Manager
	form       *huh.Form
	email      string
	password   string
	submitting bool
	errMsg     string
	width      int
}

// New creates a login screen.
func New(sess *session.Manager) *Login {
	l := &Login{sess: sess}
	l.form = l.createForm()
	return l
}

func (l *Login) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&l.email).
				Validate(validateEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&l.password).
				Validate(validateRequired("password")),
		).Title("Sign in").
			Description("Access your cloud spend dashboard"),
	).WithTheme(huh.ThemeBase())
}

// Init implements tea.Model
func (l *Login) Init() tea.Cmd {
	return l.form.Init()
}

// Update implements tea.Model
func (l *Login) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		l.width = msg.Width

	case tea.KeyMsg:
		if msg.String() == "ctrl+n" && !l.submitting {
			return l, func() tea.Msg { return SwitchToSignupMsg{} }
		}

	case resultMsg:
		l.submitting = false
		if msg.err != nil {
			l.errMsg = msg.err.Error()
			l.password = ""
			l.form = l.createForm()
			return l, l.form.Init()
		}
		return l, func() tea.Msg { return LoggedInMsg{} }
	}

	if l.submitting {
		return l, nil
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	if l.form.State == huh.StateCompleted {
		l.submitting = true
		l.errMsg = ""
		return l, l.submit()
	}

	return l, cmd
}

func (l *Login) submit() tea.Cmd {
	email, password := l.email, l.password
	return func() tea.Msg {
		return resultMsg{err: l.sess.Login(context.Background(), email, password)}
	}
}

// View implements tea.Model
func (l *Login) View() string {
	var sb strings.Builder

	if l.submitting {
		sb.WriteString(styles.Subtitle.Render("Signing in..."))
		sb.WriteString("\n")
	} else {
		sb.WriteString(l.form.View())
	}

	if l.errMsg != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.ErrorText.Render(l.errMsg))
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("ctrl+n  Create an account"))

	return sb.String()
}

func validateEmail(s string) error {
	if !strings.Contains(s, "@") {
		return session.ValidationError("enter a valid email address")
	}
	return nil
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return session.ValidationError(field + " is required")
		}
		return nil
	}
}
