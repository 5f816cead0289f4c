// ABOUTME: Dashboard screen showing spend KPIs, trend, breakdown, and free tier usage
// ABOUTME: Loads cost endpoints concurrently and renders metric blocks and tables

package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AnurajMane/web-cost/internal/api"
	"github.com/AnurajMane/web-cost/internal/tui/icons"
	"github.com/AnurajMane/web-cost/internal/tui/styles"
	"github.com/AnurajMane/web-cost/internal/tui/widgets"
)

const historyDays = 30

type summaryLoadedMsg struct {
	summary *api.CostSummary
	err     error
}

type historyLoadedMsg struct {
	points []api.CostPoint
	err    error
}

type breakdownLoadedMsg struct {
	services []api.ServiceCost
	err      error
}

type monthlyLoadedMsg struct {
	invoices []api.MonthlyInvoice
	err      error
}

type freeTierLoadedMsg struct {
	usage []api.FreeTierUsage
	err   error
}

type accountsLoadedMsg struct {
	accounts []api.Account
	err      error
}

// Dashboard is the main spend overview screen.
type Dashboard struct {
	client *api.Client

	summary   *api.CostSummary
	history   []api.CostPoint
	breakdown []api.ServiceCost
	monthly   []api.MonthlyInvoice
	freeTier  []api.FreeTierUsage
	accounts  []api.Account

	loading int
	errMsg  string
	width   int
	height  int
}

// New creates a dashboard screen.
func New(client *api.Client) *Dashboard {
	return &Dashboard{client: client}
}

// Init implements tea.Model
func (d *Dashboard) Init() tea.Cmd {
	return d.load()
}

func (d *Dashboard) load() tea.Cmd {
	d.loading = 6
	d.errMsg = ""
	return tea.Batch(
		func() tea.Msg {
			s, err := d.client.CostSummary(context.Background())
			return summaryLoadedMsg{summary: s, err: err}
		},
		func() tea.Msg {
			p, err := d.client.CostHistory(context.Background(), historyDays)
			return historyLoadedMsg{points: p, err: err}
		},
		func() tea.Msg {
			b, err := d.client.CostBreakdown(context.Background())
			return breakdownLoadedMsg{services: b, err: err}
		},
		func() tea.Msg {
			m, err := d.client.MonthlyCosts(context.Background())
			return monthlyLoadedMsg{invoices: m, err: err}
		},
		func() tea.Msg {
			f, err := d.client.FreeTierStatus(context.Background())
			return freeTierLoadedMsg{usage: f, err: err}
		},
		func() tea.Msg {
			a, err := d.client.Accounts(context.Background())
			return accountsLoadedMsg{accounts: a, err: err}
		},
	)
}

// Update implements tea.Model
func (d *Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "r" {
			return d, d.load()
		}

	case summaryLoadedMsg:
		d.loading--
		if msg.err != nil {
			d.errMsg = msg.err.Error()
		} else {
			d.summary = msg.summary
		}

	case historyLoadedMsg:
		d.loading--
		if msg.err != nil {
			d.errMsg = msg.err.Error()
		} else {
			d.history = msg.points
		}

	case breakdownLoadedMsg:
		d.loading--
		if msg.err != nil {
			d.errMsg = msg.err.Error()
		} else {
			d.breakdown = msg.services
		}

	case monthlyLoadedMsg:
		d.loading--
		if msg.err != nil {
			d.errMsg = msg.err.Error()
		} else {
			d.monthly = msg.invoices
		}

	case freeTierLoadedMsg:
		d.loading--
		if msg.err != nil {
			d.errMsg = msg.err.Error()
		} else {
			d.freeTier = msg.usage
		}

	case accountsLoadedMsg:
		d.loading--
		if msg.err != nil {
			d.errMsg = msg.err.Error()
		} else {
			d.accounts = msg.accounts
		}
	}

	return d, nil
}

// View implements tea.Model
func (d *Dashboard) View() string {
	var sb strings.Builder

	if d.loading > 0 {
		sb.WriteString(styles.Subtitle.Render("Loading cost data..."))
		sb.WriteString("\n\n")
	}

	if d.errMsg != "" {
		sb.WriteString(styles.ErrorText.Render(d.errMsg))
		sb.WriteString("\n\n")
	}

	sb.WriteString(d.renderMetrics())
	sb.WriteString("\n\n")

	left := d.renderBreakdown()
	right := d.renderFreeTier()
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right))
	sb.WriteString("\n\n")

	sb.WriteString(d.renderMonthly())

	return sb.String()
}

func (d *Dashboard) renderMetrics() string {
	config := widgets.DefaultMetricBlockConfig()

	mtd := "—"
	forecast := "—"
	delta := ""
	if d.summary != nil {
		mtd = fmt.Sprintf("$%.2f", d.summary.TotalMTD)
		forecast = fmt.Sprintf("$%.2f", d.summary.Forecasted)
		delta = widgets.SpendDelta(d.summary.ChangePercent)
	}

	spark := make([]float64, 0, len(d.history))
	for _, p := range d.history {
		spark = append(spark, p.Cost)
	}

	blocks := []string{
		widgets.MetricBlockWithSparkline(icons.Dollar, "Month to date", mtd, spark, delta, config),
		widgets.MetricBlock(icons.Chart, "Forecast", forecast, "end of month", config),
		widgets.CountBlock(icons.Account, "Accounts", len(d.accounts), "linked", config),
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

func (d *Dashboard) renderBreakdown() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s Cost by service", icons.Gauge.String())))
	sb.WriteString("\n")

	if len(d.breakdown) == 0 {
		sb.WriteString(styles.Subtitle.Render("No cost data"))
		return styles.Panel.Render(sb.String())
	}

	var total float64
	for _, s := range d.breakdown {
		total += s.Value
	}

	for _, s := range d.breakdown {
		percent := 0.0
		if total > 0 {
			percent = s.Value / total * 100
		}
		sb.WriteString(fmt.Sprintf("%-18s %s %7s\n",
			truncateName(s.Name, 18),
			widgets.CompactProgressBar(percent, 14, styles.Primary),
			fmt.Sprintf("$%.2f", s.Value)))
	}

	return styles.Panel.Render(strings.TrimRight(sb.String(), "\n"))
}

func (d *Dashboard) renderFreeTier() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s Free tier", icons.Gauge.String())))
	sb.WriteString("\n")

	if len(d.freeTier) == 0 {
		sb.WriteString(styles.Subtitle.Render("No free tier usage"))
		return styles.Panel.Render(sb.String())
	}

	config := widgets.DefaultProgressBarConfig()
	config.Width = 16

	for _, u := range d.freeTier {
		percent := 0.0
		if u.LimitValue > 0 {
			percent = u.UsageValue / u.LimitValue * 100
		}
		sb.WriteString(fmt.Sprintf("%-14s %s\n",
			truncateName(u.Service, 14),
			widgets.ProgressBarWithLabel(percent, config)))
		sb.WriteString(styles.Subtitle.Render(
			fmt.Sprintf("  %.0f / %.0f %s", u.UsageValue, u.LimitValue, u.Unit)))
		sb.WriteString("\n")
	}

	return styles.Panel.Render(strings.TrimRight(sb.String(), "\n"))
}

func (d *Dashboard) renderMonthly() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s Billing history", icons.Dollar.String())))
	sb.WriteString("\n")

	if len(d.monthly) == 0 {
		sb.WriteString(styles.Subtitle.Render("No invoices yet"))
		return styles.Panel.Render(sb.String())
	}

	sb.WriteString(styles.TableHeader.Render(fmt.Sprintf("%-12s %10s  %s", "MONTH", "COST", "STATUS")))
	sb.WriteString("\n")
	for _, inv := range d.monthly {
		sb.WriteString(fmt.Sprintf("%-12s %10s  %s\n",
			inv.Month,
			fmt.Sprintf("$%.2f", inv.Cost),
			inv.Status))
	}

	return styles.Panel.Render(strings.TrimRight(sb.String(), "\n"))
}

func truncateName(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-1] + "…"
}
