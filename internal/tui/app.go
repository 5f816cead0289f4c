// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Resolves the session first, then gates screens on authentication state

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AnurajMane/web-cost/internal/api"
	"github.com/AnurajMane/web-cost/internal/debuglog"
	"github.com/AnurajMane/web-cost/internal/session"
	"github.com/AnurajMane/web-cost/internal/tui/accounts"
	"github.com/AnurajMane/web-cost/internal/tui/alerts"
	"github.com/AnurajMane/web-cost/internal/tui/assistant"
	"github.com/AnurajMane/web-cost/internal/tui/dashboard"
	"github.com/AnurajMane/web-cost/internal/tui/icons"
	"github.com/AnurajMane/web-cost/internal/tui/login"
	"github.com/AnurajMane/web-cost/internal/tui/settings"
	"github.com/AnurajMane/web-cost/internal/tui/signup"
	"github.com/AnurajMane/web-cost/internal/tui/styles"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenResolving Screen = iota
	ScreenLogin
	ScreenSignup
	ScreenDashboard
	ScreenAccounts
	ScreenAlerts
	ScreenAssistant
	ScreenSettings
)

// Layout constants
const (
	minTerminalWidth = 80
)

// sessionResolvedMsg is sent when the startup session check completes
type sessionResolvedMsg struct {
	state session.State
}

// SessionExpiredMsg is sent when any request comes back unauthorized.
// The app drops to the login screen unless it is already there.
type SessionExpiredMsg struct{}

// App is the root model for the TUI
type App struct {
	client  *api.Client
	sess    *session.Manager
	screen  Screen
	width   int
	height  int
	notice  string
	spinner spinner.Model

	// Child models, created on demand and torn down on sign out
	loginScreen  *login.Login
	signupScreen *signup.Signup
	dashScreen   *dashboard.Dashboard
	acctScreen   *accounts.Accounts
	alertScreen  *alerts.Alerts
	chatScreen   *assistant.Assistant
	prefScreen   *settings.Settings
}

// New creates a new TUI application
func New(client *api.Client, sess *session.Manager) *App {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Primary)),
	)
	return &App{
		client:  client,
		sess:    sess,
		screen:  ScreenResolving,
		spinner: s,
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.resolveSession(), a.spinner.Tick)
}

func (a *App) resolveSession() tea.Cmd {
	return func() tea.Msg {
		return sessionResolvedMsg{state: a.sess.Resolve(context.Background())}
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, a.forwardToAll(msg)

	case spinner.TickMsg:
		if a.screen != ScreenResolving {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case sessionResolvedMsg:
		if msg.state == session.StateAuthenticated {
			return a.switchTo(ScreenDashboard)
		}
		return a.switchTo(ScreenLogin)

	case SessionExpiredMsg:
		if a.screen == ScreenLogin || a.screen == ScreenSignup {
			return a, nil
		}
		a.teardownAuthenticated()
		a.notice = "Session expired. Please sign in again."
		return a.switchTo(ScreenLogin)

	case login.LoggedInMsg, signup.SignedUpMsg:
		a.notice = ""
		a.loginScreen = nil
		a.signupScreen = nil
		return a.switchTo(ScreenDashboard)

	case login.SwitchToSignupMsg:
		return a.switchTo(ScreenSignup)

	case signup.CancelledMsg:
		a.signupScreen = nil
		return a.switchTo(ScreenLogin)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if model, cmd, handled := a.handleNavKey(msg); handled {
			return model, cmd
		}
		return a, a.forwardToCurrent(msg)
	}

	// Async results may belong to a screen the user has since left; every
	// instantiated screen sees them so background loads still complete.
	return a, a.forwardToAll(msg)
}

// handleNavKey handles app-level navigation for keys not claimed by the
// current screen. Screens with focused text inputs keep all plain keys.
func (a *App) handleNavKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if a.screen == ScreenAssistant {
		// The chat input owns the keyboard; esc leaves once nothing streams.
		if msg.String() == "esc" && a.chatScreen != nil && !a.chatScreen.Streaming() {
			model, cmd := a.switchTo(ScreenDashboard)
			return model, cmd, true
		}
		return nil, nil, false
	}

	if a.capturing() {
		return nil, nil, false
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit, true
	case "1":
		model, cmd := a.switchTo(ScreenDashboard)
		return model, cmd, true
	case "2":
		model, cmd := a.switchTo(ScreenAccounts)
		return model, cmd, true
	case "3":
		model, cmd := a.switchTo(ScreenAlerts)
		return model, cmd, true
	case "4":
		model, cmd := a.switchTo(ScreenAssistant)
		return model, cmd, true
	case "5":
		model, cmd := a.switchTo(ScreenSettings)
		return model, cmd, true
	case "0":
		a.signOut()
		model, cmd := a.switchTo(ScreenLogin)
		return model, cmd, true
	}

	return nil, nil, false
}

// capturing reports whether the current screen has a focused text input.
func (a *App) capturing() bool {
	switch a.screen {
	case ScreenResolving, ScreenLogin, ScreenSignup, ScreenAssistant:
		return true
	case ScreenAccounts:
		return a.acctScreen != nil && a.acctScreen.Editing()
	case ScreenSettings:
		return a.prefScreen != nil && a.prefScreen.Editing()
	}
	return false
}

func (a *App) signOut() {
	a.sess.Logout()
	a.teardownAuthenticated()
	a.notice = "Signed out."
}

func (a *App) teardownAuthenticated() {
	// An in-flight assistant stream would otherwise keep its goroutine
	// running after the screen is gone.
	if a.chatScreen != nil {
		a.chatScreen.CancelStream()
	}
	a.dashScreen = nil
	a.acctScreen = nil
	a.alertScreen = nil
	a.chatScreen = nil
	a.prefScreen = nil
}

// switchTo navigates to a screen. Authenticated screens require an
// authenticated session; anything else falls back to login.
func (a *App) switchTo(screen Screen) (tea.Model, tea.Cmd) {
	if screen >= ScreenDashboard && a.sess.State() != session.StateAuthenticated {
		screen = ScreenLogin
	}

	a.screen = screen
	var initCmd tea.Cmd

	switch screen {
	case ScreenLogin:
		if a.loginScreen == nil {
			a.loginScreen = login.New(a.sess)
			initCmd = a.loginScreen.Init()
		}
	case ScreenSignup:
		if a.signupScreen == nil {
			a.signupScreen = signup.New(a.sess)
			initCmd = a.signupScreen.Init()
		}
	case ScreenDashboard:
		if a.dashScreen == nil {
			a.dashScreen = dashboard.New(a.client)
			initCmd = a.dashScreen.Init()
		}
	case ScreenAccounts:
		if a.acctScreen == nil {
			a.acctScreen = accounts.New(a.client)
			initCmd = a.acctScreen.Init()
		}
	case ScreenAlerts:
		if a.alertScreen == nil {
			a.alertScreen = alerts.New(a.client)
			initCmd = a.alertScreen.Init()
		}
	case ScreenAssistant:
		if a.chatScreen == nil {
			a.chatScreen = assistant.New(a.client)
			initCmd = a.chatScreen.Init()
		}
	case ScreenSettings:
		if a.prefScreen == nil {
			a.prefScreen = settings.New(a.client)
			initCmd = a.prefScreen.Init()
		}
	}

	// New screens need the current terminal size before first render
	var sizeCmd tea.Cmd
	if a.width > 0 {
		sizeCmd = a.forwardToCurrent(tea.WindowSizeMsg{Width: a.width, Height: a.height})
	}
	return a, tea.Batch(initCmd, sizeCmd)
}

func (a *App) forwardToCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	var model tea.Model

	switch a.screen {
	case ScreenLogin:
		if a.loginScreen != nil {
			model, cmd = a.loginScreen.Update(msg)
			a.loginScreen = model.(*login.Login)
		}
	case ScreenSignup:
		if a.signupScreen != nil {
			model, cmd = a.signupScreen.Update(msg)
			a.signupScreen = model.(*signup.Signup)
		}
	case ScreenDashboard:
		if a.dashScreen != nil {
			model, cmd = a.dashScreen.Update(msg)
			a.dashScreen = model.(*dashboard.Dashboard)
		}
	case ScreenAccounts:
		if a.acctScreen != nil {
			model, cmd = a.acctScreen.Update(msg)
			a.acctScreen = model.(*accounts.Accounts)
		}
	case ScreenAlerts:
		if a.alertScreen != nil {
			model, cmd = a.alertScreen.Update(msg)
			a.alertScreen = model.(*alerts.Alerts)
		}
	case ScreenAssistant:
		if a.chatScreen != nil {
			model, cmd = a.chatScreen.Update(msg)
			a.chatScreen = model.(*assistant.Assistant)
		}
	case ScreenSettings:
		if a.prefScreen != nil {
			model, cmd = a.prefScreen.Update(msg)
			a.prefScreen = model.(*settings.Settings)
		}
	}
	return cmd
}

func (a *App) forwardToAll(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var model tea.Model
	var cmd tea.Cmd

	if a.loginScreen != nil {
		model, cmd = a.loginScreen.Update(msg)
		a.loginScreen = model.(*login.Login)
		cmds = append(cmds, cmd)
	}
	if a.signupScreen != nil {
		model, cmd = a.signupScreen.Update(msg)
		a.signupScreen = model.(*signup.Signup)
		cmds = append(cmds, cmd)
	}
	if a.dashScreen != nil {
		model, cmd = a.dashScreen.Update(msg)
		a.dashScreen = model.(*dashboard.Dashboard)
		cmds = append(cmds, cmd)
	}
	if a.acctScreen != nil {
		model, cmd = a.acctScreen.Update(msg)
		a.acctScreen = model.(*accounts.Accounts)
		cmds = append(cmds, cmd)
	}
	if a.alertScreen != nil {
		model, cmd = a.alertScreen.Update(msg)
		a.alertScreen = model.(*alerts.Alerts)
		cmds = append(cmds, cmd)
	}
	if a.chatScreen != nil {
		model, cmd = a.chatScreen.Update(msg)
		a.chatScreen = model.(*assistant.Assistant)
		cmds = append(cmds, cmd)
	}
	if a.prefScreen != nil {
		model, cmd = a.prefScreen.Update(msg)
		a.prefScreen = model.(*settings.Settings)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenResolving:
		content = a.spinner.View() + styles.Subtitle.Render(" Checking session...")
	case ScreenLogin:
		content = a.viewChild(a.loginScreen)
	case ScreenSignup:
		content = a.viewChild(a.signupScreen)
	case ScreenDashboard:
		content = a.viewChild(a.dashScreen)
	case ScreenAccounts:
		content = a.viewChild(a.acctScreen)
	case ScreenAlerts:
		content = a.viewChild(a.alertScreen)
	case ScreenAssistant:
		content = a.viewChild(a.chatScreen)
	case ScreenSettings:
		content = a.viewChild(a.prefScreen)
	}

	if a.notice != "" && (a.screen == ScreenLogin || a.screen == ScreenSignup) {
		content = styles.StatusWarning.Render(a.notice) + "\n\n" + content
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewChild(child tea.Model) string {
	if child == nil {
		return ""
	}
	return child.View()
}

// renderHeader creates the header bar with app branding and session context
func (a *App) renderHeader() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("Cloud Cost Intelligence"))

	rightText := ""
	if user := a.sess.User(); user != nil {
		rightText = contextStyle.Render(user.Username) + " "
	}

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightText)
	fillWidth := width - 4 - leftWidth - rightWidth
	if fillWidth < 0 {
		fillWidth = 0
	}

	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"
	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts
func (a *App) renderFooter() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	var shortcuts []string
	switch a.screen {
	case ScreenResolving:
		shortcuts = []string{"ctrl+c Quit"}
	case ScreenLogin, ScreenSignup:
		shortcuts = []string{"tab Next field", "enter Submit", "ctrl+c Quit"}
	case ScreenAssistant:
		shortcuts = []string{"enter Send", "esc Back", "ctrl+c Quit"}
	default:
		shortcuts = []string{"1-5 Screens", "0 Sign-out", "q Quit"}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	fillWidth := width - 4 - lipgloss.Width(leftPlainText)
	if fillWidth < 0 {
		fillWidth = 0
	}

	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + "─╯"
	return borderStyle.Render(footer)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI
func Run(client *api.Client, sess *session.Manager) error {
	app := New(client, sess)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)

	// Unauthorized responses clear the token; the UI also needs to drop
	// back to the login screen.
	client.OnUnauthorized(func() {
		debuglog.Log("backend returned 401, dropping to login screen")
		sess.HandleUnauthorized()
		go p.Send(SessionExpiredMsg{})
	})

	_, err := p.Run()
	if err != nil {
		debuglog.Error("tui", err)
	}
	return err
}
