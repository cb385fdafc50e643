package accounts

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rightcode-tools/rightcode-tui/internal/ui/styles"
)

// View renders the accounts tab.
func (m *Model) View() string {
	if m.step != stepNone {
		return m.renderLoginForm()
	}

	var sections []string
	sections = append(sections, m.renderTitle())
	sections = append(sections, m.table.View())

	if m.confirmRemove {
		sections = append(sections, "")
		sections = append(sections, styles.WarningTextStyle.Render(
			"Remove account "+m.removeAlias+"? (y/n)"))
	} else {
		sections = append(sections, "")
		sections = append(sections, styles.HelpStyle.Render(
			"enter: switch · a: add · d: remove"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Accounts")
	account := m.state.GetAccount()
	subtitle := styles.HelpStyle.Render("Active: " + account.Label)
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

// renderLoginForm renders the current step of the add-account flow.
func (m *Model) renderLoginForm() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Add account"))
	rows = append(rows, "")

	switch m.step {
	case stepUsername:
		rows = append(rows, "Username")
		rows = append(rows, styles.FocusedBorderStyle.Render(m.usernameInput.View()))

	case stepPassword:
		rows = append(rows, "Password")
		rows = append(rows, styles.FocusedBorderStyle.Render(m.passwordInput.View()))

	case stepWaiting:
		rows = append(rows, styles.HelpStyle.Render("Logging in..."))

	case stepAlias:
		rows = append(rows, "Alias for this account")
		rows = append(rows, styles.FocusedBorderStyle.Render(m.aliasInput.View()))
	}

	rows = append(rows, "")
	rows = append(rows, styles.HelpStyle.Render("enter: continue · esc: cancel"))

	card := styles.CardStyle.Width(min(m.width-6, 60)).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(card)
}
