// ABOUTME: Settings screen for data retention and display currency preferences
// ABOUTME: Failed saves keep the last known-good values on screen

package settings

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/AnurajMane/web-cost/internal/api"
	"github.com/AnurajMane/web-cost/internal/tui/icons"
	"github.com/AnurajMane/web-cost/internal/tui/styles"
)

type loadedMsg struct {
	settings *api.Settings
	err      error
}

type savedMsg struct {
	settings *api.Settings
	err      error
}

// Settings is the preferences screen.
type Settings struct {
	client *api.Client

	current *api.Settings
	form    *huh.Form
	editing bool

	retention string
	currency  string

	loading bool
	busy    bool
	errMsg  string
	status  string
}

// New creates a settings screen.
func New(client *api.Client) *Settings {
	return &Settings{client: client}
}

// Init implements tea.Model
func (s *Settings) Init() tea.Cmd {
	return s.load()
}

func (s *Settings) load() tea.Cmd {
	s.loading = true
	return func() tea.Msg {
		settings, err := s.client.Settings(context.Background())
		return loadedMsg{settings: settings, err: err}
	}
}

// Update implements tea.Model
func (s *Settings) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loading = false
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.current = msg.settings
		return s, nil

	case savedMsg:
		s.busy = false
		if msg.err != nil {
			// Keep showing the last saved values, not the rejected edit.
			s.errMsg = msg.err.Error()
			s.editing = false
			return s, nil
		}
		s.errMsg = ""
		s.status = "settings saved"
		s.current = msg.settings
		s.editing = false
		return s, nil

	case tea.KeyMsg:
		if s.editing {
			if msg.String() == "esc" {
				s.editing = false
				return s, nil
			}
		} else if msg.String() == "e" && s.current != nil && !s.busy {
			s.retention = strconv.Itoa(s.current.RetentionDays)
			s.currency = s.current.Currency
			s.editing = true
			s.status = ""
			s.form = s.settingsForm()
			return s, s.form.Init()
		} else if msg.String() == "r" && !s.busy {
			return s, s.load()
		}
	}

	if !s.editing || s.busy {
		return s, nil
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.busy = true
		days, _ := strconv.Atoi(s.retention)
		next := api.Settings{RetentionDays: days, Currency: strings.ToUpper(s.currency)}
		return s, func() tea.Msg {
			saved, err := s.client.SaveSettings(context.Background(), next)
			return savedMsg{settings: saved, err: err}
		}
	}

	return s, cmd
}

// Editing reports whether the preferences form is active.
func (s *Settings) Editing() bool {
	return s.editing
}

func (s *Settings) settingsForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Retention (days)").
				Value(&s.retention).
				Validate(func(v string) error {
					n, err := strconv.Atoi(strings.TrimSpace(v))
					if err != nil || n < 1 {
						return fmt.Errorf("enter a positive number of days")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Currency").
				Options(
					huh.NewOption("USD", "USD"),
					huh.NewOption("EUR", "EUR"),
					huh.NewOption("GBP", "GBP"),
					huh.NewOption("INR", "INR"),
				).
				Value(&s.currency),
		).Title("Preferences"),
	).WithTheme(huh.ThemeBase())
}

// View implements tea.Model
func (s *Settings) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s Settings", icons.Settings.String())))
	sb.WriteString("\n")

	if s.editing {
		sb.WriteString(s.form.View())
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render("esc  Cancel"))
		return sb.String()
	}

	if s.loading {
		sb.WriteString(styles.Subtitle.Render("Loading settings..."))
		sb.WriteString("\n")
	}
	if s.busy {
		sb.WriteString(styles.Subtitle.Render("Saving..."))
		sb.WriteString("\n")
	}
	if s.errMsg != "" {
		sb.WriteString(styles.ErrorText.Render(s.errMsg))
		sb.WriteString("\n")
	}
	if s.status != "" {
		sb.WriteString(styles.StatusOK.Render(s.status))
		sb.WriteString("\n")
	}

	if s.current != nil {
		sb.WriteString(fmt.Sprintf("%s %s\n",
			styles.TableHeader.Render("Retention:"),
			styles.ValueStyle.Render(fmt.Sprintf("%d days", s.current.RetentionDays))))
		sb.WriteString(fmt.Sprintf("%s  %s\n",
			styles.TableHeader.Render("Currency:"),
			styles.ValueStyle.Render(s.current.Currency)))
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("e  Edit    r  Refresh"))

	return sb.String()
}
