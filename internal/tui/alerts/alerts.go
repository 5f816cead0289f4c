// ABOUTME: Alerts screen listing spend and anomaly notifications
// ABOUTME: Renders severity badges with timestamps, newest first

package alerts

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AnurajMane/web-cost/internal/api"
	"github.com/AnurajMane/web-cost/internal/tui/icons"
	"github.com/AnurajMane/web-cost/internal/tui/styles"
	"github.com/AnurajMane/web-cost/internal/tui/widgets"
)

type loadedMsg struct {
	alerts []api.Alert
	err    error
}

// Alerts is the notifications screen.
type Alerts struct {
	client  *api.Client
	alerts  []api.Alert
	loading bool
	errMsg  string
}

// New creates an alerts screen.
func New(client *api.Client) *Alerts {
	return &Alerts{client: client}
}

// Init implements tea.Model
func (a *Alerts) Init() tea.Cmd {
	return a.load()
}

func (a *Alerts) load() tea.Cmd {
	a.loading = true
	return func() tea.Msg {
		alerts, err := a.client.Alerts(context.Background())
		return loadedMsg{alerts: alerts, err: err}
	}
}

// Update implements tea.Model
func (a *Alerts) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		a.loading = false
		if msg.err != nil {
			a.errMsg = msg.err.Error()
			return a, nil
		}
		a.errMsg = ""
		a.alerts = msg.alerts

	case tea.KeyMsg:
		if msg.String() == "r" {
			return a, a.load()
		}
	}
	return a, nil
}

// View implements tea.Model
func (a *Alerts) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s Alerts", icons.Bell.String())))
	sb.WriteString("\n")

	if a.loading {
		sb.WriteString(styles.Subtitle.Render("Loading alerts..."))
		sb.WriteString("\n")
	}
	if a.errMsg != "" {
		sb.WriteString(styles.ErrorText.Render(a.errMsg))
		sb.WriteString("\n")
	}

	if len(a.alerts) == 0 && !a.loading && a.errMsg == "" {
		sb.WriteString(styles.StatusOK.Render("No active alerts"))
		sb.WriteString("\n")
	}

	for _, alert := range a.alerts {
		sb.WriteString(fmt.Sprintf("%s %s  %s\n",
			widgets.SeverityBadge(alert.Severity),
			styles.ValueStyle.Render(alert.Title),
			styles.Subtitle.Render(alert.Timestamp.Format("Jan 2 15:04"))))
		if alert.Description != "" {
			sb.WriteString("      " + alert.Description + "\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("r  Refresh"))

	return sb.String()
}
