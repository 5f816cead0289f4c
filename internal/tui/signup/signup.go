// ABOUTME: Two-step signup wizard: email verification code, then account details
// ABOUTME: Drives the session manager's OTP flow and reports completion or cancel

package signup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/AnurajMane/web-cost/internal/session"
	"github.com/AnurajMane/web-cost/internal/tui/styles"
)

// SignedUpMsg is sent when signup completes and the session is authenticated.
type SignedUpMsg struct{}

// CancelledMsg is sent when the user abandons signup.
type CancelledMsg struct{}

type otpSentMsg struct {
	err error
}

type signupDoneMsg struct {
	err error
}

type step int

const (
	stepEmail step = iota
	stepDetails
)

// Signup is the signup wizard model.
type Signup struct {
	sess *session.Manager
	form *huh.Form
	step step

	email    string
	otp      string
	username string
	password string
	confirm  string

	busy   bool
	errMsg string
}

// New creates a signup wizard.
func New(sess *session.Manager) *Signup {
	s := &Signup{sess: sess, step: stepEmail}
	s.form = s.emailForm()
	return s
}

func (s *Signup) emailForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&s.email).
				Validate(func(v string) error {
					if !strings.Contains(v, "@") {
						return session.ValidationError("enter a valid email address")
					}
					return nil
				}),
		).Title("Create account").
			Description("We will email you a verification code"),
	).WithTheme(huh.ThemeBase())
}

func (s *Signup) detailsForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Verification code").
				Placeholder("123456").
				Value(&s.otp).
				Validate(requiredField("verification code")),
			huh.NewInput().
				Title("Username").
				Value(&s.username).
				Validate(requiredField("username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&s.password).
				Validate(requiredField("password")),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&s.confirm),
		).Title("Verify email").
			Description(fmt.Sprintf("Code sent to %s", s.email)),
	).WithTheme(huh.ThemeBase())
}

// Init implements tea.Model
func (s *Signup) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *Signup) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" && !s.busy {
			return s, func() tea.Msg { return CancelledMsg{} }
		}

	case otpSentMsg:
		s.busy = false
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			s.form = s.emailForm()
			return s, s.form.Init()
		}
		s.step = stepDetails
		s.form = s.detailsForm()
		return s, s.form.Init()

	case signupDoneMsg:
		s.busy = false
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			s.password = ""
			s.confirm = ""
			s.form = s.detailsForm()
			return s, s.form.Init()
		}
		return s, func() tea.Msg { return SignedUpMsg{} }
	}

	if s.busy {
		return s, nil
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.busy = true
		s.errMsg = ""
		if s.step == stepEmail {
			return s, s.sendOTP()
		}
		return s, s.complete()
	}

	return s, cmd
}

func (s *Signup) sendOTP() tea.Cmd {
	email := s.email
	return func() tea.Msg {
		return otpSentMsg{err: s.sess.SendOTP(context.Background(), email)}
	}
}

func (s *Signup) complete() tea.Cmd {
	email, otp := s.email, s.otp
	username, password, confirm := s.username, s.password, s.confirm
	return func() tea.Msg {
		err := s.sess.CompleteSignup(context.Background(), email, otp, password, confirm, username)
		var verr session.ValidationError
		if errors.As(err, &verr) {
			err = errors.New(string(verr))
		}
		return signupDoneMsg{err: err}
	}
}

// View implements tea.Model
func (s *Signup) View() string {
	var sb strings.Builder

	sb.WriteString(s.renderSteps())
	sb.WriteString("\n\n")

	if s.busy {
		switch s.step {
		case stepEmail:
			sb.WriteString(styles.Subtitle.Render("Sending verification code..."))
		default:
			sb.WriteString(styles.Subtitle.Render("Creating account..."))
		}
		sb.WriteString("\n")
	} else {
		sb.WriteString(s.form.View())
	}

	if s.errMsg != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.ErrorText.Render(s.errMsg))
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("esc  Back to sign in"))

	return sb.String()
}

func (s *Signup) renderSteps() string {
	active := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	inactive := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	labels := []string{"1. Email", "2. Verify"}
	parts := make([]string, len(labels))
	for i, label := range labels {
		if step(i) == s.step {
			parts[i] = active.Render(label)
		} else {
			parts[i] = inactive.Render(label)
		}
	}
	return strings.Join(parts, inactive.Render("  →  "))
}

func requiredField(name string) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return session.ValidationError(name + " is required")
		}
		return nil
	}
}
