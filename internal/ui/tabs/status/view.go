package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rightcode-tools/rightcode-tui/internal/services/projection"
	"github.com/rightcode-tools/rightcode-tui/internal/ui/styles"
)

// View renders the status tab.
func (m *Model) View() string {
	status := m.state.GetStatus()

	var sections []string
	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderStatusLine(status))

	switch status.State {
	case projection.StatusOK:
		sections = append(sections, m.renderDetailTable(status.Detail))
	case projection.StatusError:
		sections = append(sections, styles.ErrorTextStyle.Render(status.Message))
	}

	if !status.RefreshedAt.IsZero() {
		sections = append(sections, "")
		sections = append(sections, styles.HelpStyle.Render(
			"Last refresh: "+status.RefreshedAt.Format("15:04:05")))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	account := m.state.GetAccount()
	title := styles.TitleStyle.Render("Status")
	subtitle := styles.HelpStyle.Render("Account: " + account.Label)
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) renderStatusLine(status projection.Status) string {
	var style lipgloss.Style
	switch status.State {
	case projection.StatusOK:
		style = styles.SuccessTextStyle
	case projection.StatusError:
		style = styles.ErrorTextStyle
	default:
		style = styles.WarningTextStyle
	}

	if m.state.IsInitialLoading() {
		return m.spinner.ViewWithLabel() + "\n"
	}

	return style.Bold(true).Render(status.Line) + "\n"
}

// renderDetailTable renders the per-subscription detail rows, least-used
// first, with the displayed subscription marked.
func (m *Model) renderDetailTable(rows []projection.DetailRow) string {
	if len(rows) == 0 {
		return ""
	}

	header := fmt.Sprintf("  %-16s %10s %10s %10s  %-10s %-6s %-5s",
		"Name", "Used", "Remaining", "Total", "Expires", "Reset", "Today")
	lines := []string{styles.TableHeaderStyle.Render(header)}

	for _, row := range rows {
		marker := "  "
		if row.Selected {
			marker = styles.SelectedListItemStyle.String()
		}
		line := fmt.Sprintf("%s%-16s %10s %10s %10s  %-10s %-6s %-5s",
			marker, row.Name, row.Used, row.Remaining, row.Total,
			row.Expires, row.LastReset, row.ResetToday)
		if row.Selected {
			line = lipgloss.NewStyle().Bold(true).Render(line)
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}
