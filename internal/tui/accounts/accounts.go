// ABOUTME: Linked cloud account management screen with add, edit, delete, and sync
// ABOUTME: Mutations refresh the list only on success so failures keep current data

package accounts

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/AnurajMane/web-cost/internal/api"
	"github.com/AnurajMane/web-cost/internal/tui/icons"
	"github.com/AnurajMane/web-cost/internal/tui/styles"
	"github.com/AnurajMane/web-cost/internal/tui/widgets"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeConfirmDelete
)

type listLoadedMsg struct {
	accounts []api.Account
	err      error
}

type mutationDoneMsg struct {
	action string
	err    error
}

// Accounts is the account management screen.
type Accounts struct {
	client *api.Client

	accounts []api.Account
	cursor   int
	mode     mode
	form     *huh.Form

	// Form fields for add/edit
	name   string
	acctID string
	region string
	editID string

	loading bool
	busy    bool
	errMsg  string
	status  string
}

// New creates an accounts screen.
func New(client *api.Client) *Accounts {
	return &Accounts{client: client}
}

// Init implements tea.Model
func (a *Accounts) Init() tea.Cmd {
	return a.load()
}

func (a *Accounts) load() tea.Cmd {
	a.loading = true
	return func() tea.Msg {
		accts, err := a.client.Accounts(context.Background())
		return listLoadedMsg{accounts: accts, err: err}
	}
}

// Update implements tea.Model
func (a *Accounts) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listLoadedMsg:
		a.loading = false
		if msg.err != nil {
			a.errMsg = msg.err.Error()
			return a, nil
		}
		a.errMsg = ""
		a.accounts = msg.accounts
		if a.cursor >= len(a.accounts) && a.cursor > 0 {
			a.cursor = len(a.accounts) - 1
		}
		return a, nil

	case mutationDoneMsg:
		a.busy = false
		if msg.err != nil {
			a.errMsg = msg.err.Error()
			// A completed form would resubmit on the next event
			switch a.mode {
			case modeAdd:
				a.form = a.accountForm("Link account")
				return a, a.form.Init()
			case modeEdit:
				a.form = a.accountForm("Edit account")
				return a, a.form.Init()
			}
			return a, nil
		}
		a.errMsg = ""
		a.status = msg.action
		a.mode = modeList
		return a, a.load()
	}

	switch a.mode {
	case modeList:
		return a.updateList(msg)
	case modeAdd, modeEdit:
		return a.updateForm(msg)
	case modeConfirmDelete:
		return a.updateConfirm(msg)
	}
	return a, nil
}

func (a *Accounts) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || a.busy {
		return a, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.accounts)-1 {
			a.cursor++
		}
	case "r":
		return a, a.load()
	case "a":
		a.name, a.acctID, a.region = "", "", ""
		a.mode = modeAdd
		a.form = a.accountForm("Link account")
		return a, a.form.Init()
	case "e":
		if sel := a.selected(); sel != nil {
			a.name, a.acctID, a.region = sel.AccountName, sel.AccountID, sel.Region
			a.editID = sel.ID
			a.mode = modeEdit
			a.form = a.accountForm("Edit account")
			return a, a.form.Init()
		}
	case "d":
		if a.selected() != nil {
			a.mode = modeConfirmDelete
		}
	case "s":
		if sel := a.selected(); sel != nil {
			a.busy = true
			a.status = ""
			id := sel.ID
			return a, func() tea.Msg {
				return mutationDoneMsg{action: "sync started", err: a.client.SyncAccount(context.Background(), id)}
			}
		}
	}
	return a, nil
}

func (a *Accounts) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		a.mode = modeList
		return a, nil
	}
	if a.busy {
		return a, nil
	}

	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	if a.form.State == huh.StateCompleted {
		a.busy = true
		a.status = ""
		input := api.AccountInput{AccountName: a.name, AccountID: a.acctID, Region: a.region}
		if a.mode == modeEdit {
			id := a.editID
			return a, func() tea.Msg {
				_, err := a.client.UpdateAccount(context.Background(), id, input)
				return mutationDoneMsg{action: "account updated", err: err}
			}
		}
		return a, func() tea.Msg {
			_, err := a.client.CreateAccount(context.Background(), input)
			return mutationDoneMsg{action: "account linked", err: err}
		}
	}

	return a, cmd
}

func (a *Accounts) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || a.busy {
		return a, nil
	}

	switch keyMsg.String() {
	case "y":
		if sel := a.selected(); sel != nil {
			a.busy = true
			id := sel.ID
			return a, func() tea.Msg {
				return mutationDoneMsg{action: "account removed", err: a.client.DeleteAccount(context.Background(), id)}
			}
		}
	case "n", "esc":
		a.mode = modeList
	}
	return a, nil
}

func (a *Accounts) accountForm(title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("production").
				Value(&a.name).
				Validate(requiredField("name")),
			huh.NewInput().
				Title("Account ID").
				Placeholder("123456789012").
				Value(&a.acctID).
				Validate(requiredField("account id")),
			huh.NewInput().
				Title("Region").
				Placeholder("us-east-1").
				Value(&a.region).
				Validate(requiredField("region")),
		).Title(title),
	).WithTheme(huh.ThemeBase())
}

// Editing reports whether a form or confirmation dialog is active.
func (a *Accounts) Editing() bool {
	return a.mode != modeList
}

func (a *Accounts) selected() *api.Account {
	if a.cursor < 0 || a.cursor >= len(a.accounts) {
		return nil
	}
	return &a.accounts[a.cursor]
}

// View implements tea.Model
func (a *Accounts) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s Linked accounts", icons.Account.String())))
	sb.WriteString("\n")

	switch a.mode {
	case modeAdd, modeEdit:
		sb.WriteString(a.form.View())
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render("esc  Cancel"))
		return sb.String()

	case modeConfirmDelete:
		sel := a.selected()
		if sel != nil {
			sb.WriteString(fmt.Sprintf("Remove account %s (%s)?\n\n",
				styles.ValueStyle.Render(sel.AccountName), sel.AccountID))
		}
		sb.WriteString(styles.Help.Render("y  Confirm    n  Cancel"))
		return sb.String()
	}

	if a.loading {
		sb.WriteString(styles.Subtitle.Render("Loading accounts..."))
		sb.WriteString("\n")
	}
	if a.errMsg != "" {
		sb.WriteString(styles.ErrorText.Render(a.errMsg))
		sb.WriteString("\n")
	}
	if a.status != "" {
		sb.WriteString(styles.StatusOK.Render(a.status))
		sb.WriteString("\n")
	}

	if len(a.accounts) == 0 && !a.loading {
		sb.WriteString(styles.Subtitle.Render("No accounts linked yet. Press a to add one."))
	} else {
		sb.WriteString(styles.TableHeader.Render(
			fmt.Sprintf("  %-20s %-14s %-12s %s", "NAME", "ACCOUNT ID", "REGION", "STATUS")))
		sb.WriteString("\n")
		for i, acct := range a.accounts {
			prefix := "  "
			if i == a.cursor {
				prefix = styles.KeyStyle.Render("> ")
			}
			sb.WriteString(fmt.Sprintf("%s%-20s %-14s %-12s %s\n",
				prefix, acct.AccountName, acct.AccountID, acct.Region,
				widgets.AccountStatusBadge(acct.Status)))
		}
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("a  Add    e  Edit    d  Delete    s  Sync    r  Refresh"))

	return sb.String()
}

func requiredField(name string) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}
