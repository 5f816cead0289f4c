// ABOUTME: Status badge widgets for quick visual status indication
// ABOUTME: Colored inline badges for alert severity, account status, and spend deltas

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/AnurajMane/web-cost/internal/tui/icons"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

// String returns the lowercase status name for plain-text output.
func (l StatusLevel) String() string {
	switch l {
	case StatusOK:
		return "ok"
	case StatusWarning:
		return "warning"
	case StatusCritical:
		return "critical"
	case StatusInfo:
		return "info"
	default:
		return "neutral"
	}
}

// Badge colors
var (
	BadgeOKBg      = lipgloss.Color("#10B981")
	BadgeOKFg      = lipgloss.Color("#FFFFFF")
	BadgeWarnBg    = lipgloss.Color("#F59E0B")
	BadgeWarnFg    = lipgloss.Color("#000000")
	BadgeCritBg    = lipgloss.Color("#EF4444")
	BadgeCritFg    = lipgloss.Color("#FFFFFF")
	BadgeInfoBg    = lipgloss.Color("#3B82F6")
	BadgeInfoFg    = lipgloss.Color("#FFFFFF")
	BadgeNeutralBg = lipgloss.Color("#6B7280")
	BadgeNeutralFg = lipgloss.Color("#FFFFFF")
)

// Badge renders a colored status badge
func Badge(text string, level StatusLevel) string {
	var bg, fg lipgloss.Color

	switch level {
	case StatusOK:
		bg, fg = BadgeOKBg, BadgeOKFg
	case StatusWarning:
		bg, fg = BadgeWarnBg, BadgeWarnFg
	case StatusCritical:
		bg, fg = BadgeCritBg, BadgeCritFg
	case StatusInfo:
		bg, fg = BadgeInfoBg, BadgeInfoFg
	default:
		bg, fg = BadgeNeutralBg, BadgeNeutralFg
	}

	style := lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true)

	return style.Render(text)
}

// SeverityBadge renders a badge for a backend alert severity string.
func SeverityBadge(severity string) string {
	switch strings.ToLower(severity) {
	case "critical":
		return Badge("CRIT", StatusCritical)
	case "warning":
		return Badge("WARN", StatusWarning)
	case "info":
		return Badge("INFO", StatusInfo)
	default:
		return Badge(strings.ToUpper(severity), StatusNeutral)
	}
}

// AccountStatusBadge renders a badge for a linked account's sync status.
func AccountStatusBadge(status string) string {
	switch strings.ToLower(status) {
	case "", "active":
		return Badge("ACTIVE", StatusOK)
	case "syncing":
		return Badge("SYNCING", StatusInfo)
	case "error":
		return Badge("ERROR", StatusCritical)
	default:
		return Badge(strings.ToUpper(status), StatusNeutral)
	}
}

// StatusFromPercent returns the appropriate status level for a percentage value
func StatusFromPercent(percent, warnThreshold, critThreshold float64) StatusLevel {
	if percent >= critThreshold {
		return StatusCritical
	}
	if percent >= warnThreshold {
		return StatusWarning
	}
	return StatusOK
}

// StatusIcon returns the appropriate icon for a status level
func StatusIcon(level StatusLevel) string {
	switch level {
	case StatusOK:
		return lipgloss.NewStyle().Foreground(BadgeOKBg).Render(icons.CheckOK.String())
	case StatusWarning:
		return lipgloss.NewStyle().Foreground(BadgeWarnBg).Render(icons.Warning.String())
	case StatusCritical:
		return lipgloss.NewStyle().Foreground(BadgeCritBg).Render(icons.Critical.String())
	case StatusInfo:
		return lipgloss.NewStyle().Foreground(BadgeInfoBg).Render(icons.Info.String())
	default:
		return lipgloss.NewStyle().Foreground(BadgeNeutralBg).Render("•")
	}
}

// SpendDelta renders a month-over-month spend change. Increases are amber
// (costs going up), decreases green.
func SpendDelta(changePercent float64) string {
	var arrow string
	var color lipgloss.Color

	switch {
	case changePercent > 0:
		arrow = icons.TrendUp.String()
		color = BadgeWarnBg
	case changePercent < 0:
		arrow = icons.TrendDown.String()
		color = BadgeOKBg
	default:
		arrow = "→"
		color = BadgeNeutralBg
	}

	text := fmt.Sprintf("%s %+.1f%%", arrow, changePercent)
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
