// Package accounts provides the account management tab.
package accounts

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rightcode-tools/rightcode-tui/internal/app"
	"github.com/rightcode-tools/rightcode-tui/internal/services"
	"github.com/rightcode-tools/rightcode-tui/internal/ui/styles"
)

// loginStep tracks progress through the add-account login flow. Esc at any
// step abandons the whole flow.
type loginStep int

const (
	stepNone loginStep = iota
	stepUsername
	stepPassword
	stepWaiting
	stepAlias
)

// keyMap defines the key bindings specific to the accounts tab.
type keyMap struct {
	Enter  key.Binding
	Remove key.Binding
	Add    key.Binding
	Escape key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "switch account"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "remove"),
		),
		Add: key.NewBinding(
			key.WithKeys("a", "n"),
			key.WithHelp("a", "add account"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// Model represents the accounts tab state.
type Model struct {
	state    *app.State
	manager  *services.Manager
	commands *app.Commands
	table    table.Model
	keys     keyMap
	width    int
	height   int

	// Login flow
	step          loginStep
	usernameInput textinput.Model
	passwordInput textinput.Model
	aliasInput    textinput.Model
	pendingToken  string

	// Remove confirmation
	confirmRemove bool
	removeAlias   string
}

// New creates a new accounts model.
func New(state *app.State, mgr *services.Manager) *Model {
	usernameInput := textinput.New()
	usernameInput.Placeholder = "username or email"
	usernameInput.CharLimit = 100
	usernameInput.Width = 40

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.CharLimit = 200
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword

	aliasInput := textinput.New()
	aliasInput.Placeholder = "account alias"
	aliasInput.CharLimit = 50
	aliasInput.Width = 40

	columns := []table.Column{
		{Title: "Alias", Width: 24},
		{Title: "Active", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Subtle).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.Primary)
	s.Selected = s.Selected.
		Foreground(styles.TextPrimary).
		Background(styles.BgAccent).
		Bold(true)
	t.SetStyles(s)

	m := &Model{
		state:         state,
		manager:       mgr,
		commands:      app.NewCommands(mgr),
		table:         t,
		keys:          defaultKeyMap(),
		usernameInput: usernameInput,
		passwordInput: passwordInput,
		aliasInput:    aliasInput,
	}
	m.reloadRows()
	return m
}

// CapturesInput reports whether the tab is in a text-entry or confirmation
// state and should receive all keystrokes.
func (m *Model) CapturesInput() bool {
	return m.step != stepNone || m.confirmRemove
}

// Init initializes the accounts tab.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the accounts tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case app.LoginResultMsg:
		return m.handleLoginResult(msg)

	case app.AccountAddedMsg, app.SwitchAccountResultMsg, app.RemoveAccountResultMsg:
		m.reloadRows()
		return m, nil
	}

	if m.step != stepNone {
		return m.updateLoginFlow(msg)
	}
	if m.confirmRemove {
		return m.updateRemoveConfirm(msg)
	}

	var cmds []tea.Cmd
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Enter):
			if row := m.table.SelectedRow(); len(row) > 0 {
				return m, m.commands.SwitchAccount(row[0])
			}

		case key.Matches(keyMsg, m.keys.Remove):
			if row := m.table.SelectedRow(); len(row) > 0 {
				m.confirmRemove = true
				m.removeAlias = row[0]
			}

		case key.Matches(keyMsg, m.keys.Add):
			m.startLoginFlow()
			return m, textinput.Blink

		default:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(keyMsg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) startLoginFlow() {
	m.step = stepUsername
	m.usernameInput.SetValue("")
	m.passwordInput.SetValue("")
	m.aliasInput.SetValue("")
	m.pendingToken = ""
	m.usernameInput.Focus()
}

func (m *Model) cancelLoginFlow() {
	m.step = stepNone
	m.pendingToken = ""
	m.usernameInput.Blur()
	m.passwordInput.Blur()
	m.aliasInput.Blur()
}

// updateLoginFlow drives the three-step login: username, password, alias.
func (m *Model) updateLoginFlow(msg tea.Msg) (app.Tab, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateFocusedInput(msg)
	}

	switch keyMsg.String() {
	case "esc":
		m.cancelLoginFlow()
		return m, nil

	case "enter":
		switch m.step {
		case stepUsername:
			if m.usernameInput.Value() == "" {
				return m, nil
			}
			m.step = stepPassword
			m.usernameInput.Blur()
			m.passwordInput.Focus()
			return m, textinput.Blink

		case stepPassword:
			if m.passwordInput.Value() == "" {
				return m, nil
			}
			m.step = stepWaiting
			m.passwordInput.Blur()
			return m, m.commands.Login(m.usernameInput.Value(), m.passwordInput.Value())

		case stepAlias:
			alias := m.aliasInput.Value()
			if alias == "" {
				return m, nil
			}
			token := m.pendingToken
			m.cancelLoginFlow()
			return m, m.commands.AddAccount(alias, token)
		}
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

func (m *Model) updateFocusedInput(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmd tea.Cmd
	switch m.step {
	case stepUsername:
		m.usernameInput, cmd = m.usernameInput.Update(msg)
	case stepPassword:
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	case stepAlias:
		m.aliasInput, cmd = m.aliasInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleLoginResult(msg app.LoginResultMsg) (app.Tab, tea.Cmd) {
	if m.step != stepWaiting {
		return m, nil
	}

	if msg.Error != nil {
		// Back to the username step so the credentials can be corrected.
		m.step = stepUsername
		m.passwordInput.SetValue("")
		m.usernameInput.Focus()
		return m, m.commands.NotifyError("Login failed: " + msg.Error.Error())
	}

	m.pendingToken = msg.Result.UserToken
	m.step = stepAlias
	m.aliasInput.SetValue(suggestAlias(msg.Result.Username, msg.Result.Email))
	m.aliasInput.Focus()
	return m, textinput.Blink
}

// suggestAlias prefers the username reported by the login endpoint, then the
// email local part.
func suggestAlias(username, email string) string {
	if username != "" {
		return username
	}
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			return email[:i]
		}
	}
	return email
}

func (m *Model) updateRemoveConfirm(msg tea.Msg) (app.Tab, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "y", "Y":
			m.confirmRemove = false
			alias := m.removeAlias
			m.removeAlias = ""
			return m, m.commands.RemoveAccount(alias)
		case "n", "N", "esc":
			m.confirmRemove = false
			m.removeAlias = ""
			return m, nil
		}
	}
	return m, nil
}

// reloadRows rebuilds the table from the current account list.
func (m *Model) reloadRows() {
	if m.manager == nil {
		m.table.SetRows(nil)
		return
	}

	accountsSvc := m.manager.Accounts()
	active := accountsSvc.ActiveAlias()

	creds := accountsSvc.Accounts()
	rows := make([]table.Row, 0, len(creds))
	for _, cred := range creds {
		marker := ""
		if cred.Alias == active {
			marker = "*"
		}
		rows = append(rows, table.Row{cred.Alias, marker})
	}
	m.table.SetRows(rows)
}

// SetSize sets the available size for the accounts tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	tableHeight := height - 10
	if tableHeight < 3 {
		tableHeight = 3
	}
	m.table.SetHeight(tableHeight)

	aliasWidth := width - 20
	if aliasWidth < 20 {
		aliasWidth = 20
	}
	if aliasWidth > 40 {
		aliasWidth = 40
	}
	m.table.SetColumns([]table.Column{
		{Title: "Alias", Width: aliasWidth},
		{Title: "Active", Width: 8},
	})
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	if m.step != stepNone {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
			m.keys.Escape,
		}
	}
	return []key.Binding{
		m.keys.Enter,
		m.keys.Add,
		m.keys.Remove,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Enter, m.keys.Remove},
		{m.keys.Add, m.keys.Escape},
	}
}
