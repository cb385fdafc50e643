package dashboard

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rightcode-tools/rightcode-tui/internal/models"
	"github.com/rightcode-tools/rightcode-tui/internal/services/projection"
	"github.com/rightcode-tools/rightcode-tui/internal/ui/components"
	"github.com/rightcode-tools/rightcode-tui/internal/ui/styles"
)

// View renders the dashboard tab.
func (m *Model) View() string {
	var sections []string

	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderSubscriptionsCard())
	sections = append(sections, m.renderUsageCard())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	account := m.state.GetAccount()
	title := styles.TitleStyle.Render("Dashboard")
	subtitle := styles.HelpStyle.Render("Account: " + account.Label)
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	w := m.width - 6
	if w < 50 {
		w = 50
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m *Model) renderSubscriptionsCard() string {
	cardWidth := m.cardWidth()
	barWidth := cardWidth - 6

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Subscriptions"))
	rows = append(rows, "")

	subs := m.state.GetSubscriptions()
	switch {
	case m.state.IsInitialLoading():
		rows = append(rows, components.SimpleQuotaBarLoading("Loading", barWidth, m.animationFrame))

	case !subs.OK && subs.Error != "":
		rows = append(rows, styles.ErrorTextStyle.Render("Fetch failed: "+subs.Error))

	case len(subs.Subscriptions) == 0:
		rows = append(rows, styles.HelpStyle.Render("No subscriptions"))

	default:
		now := time.Now()
		for _, sub := range subs.Subscriptions {
			rows = append(rows, m.renderSubscriptionRow(sub, now, barWidth))
		}
	}

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderSubscriptionRow(sub models.Subscription, now time.Time, barWidth int) string {
	if expiry, ok := sub.ExpiryTime(); ok && expiry.Before(now) {
		bar := components.NewQuotaBar()
		return bar.ViewExpired(sub.Name, barWidth)
	}

	percent := 0.0
	if sub.TotalQuota > 0 {
		percent = sub.RemainingQuota / sub.TotalQuota * 100
	}
	return components.SimpleQuotaBar(percent, sub.Name, barWidth)
}

func (m *Model) renderUsageCard() string {
	cardWidth := m.cardWidth()

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Usage (last 7 days)"))
	rows = append(rows, "")

	usage := m.state.GetUsage()
	switch {
	case !usage.OK && usage.Error != "":
		rows = append(rows, styles.ErrorTextStyle.Render("Fetch failed: "+usage.Error))

	case !usage.OK:
		rows = append(rows, m.spinner.ViewWithLabel())

	default:
		rows = append(rows, m.renderTotals(usage))
		rows = append(rows, "")

		if len(usage.Distribution) > 0 {
			rows = append(rows, styles.SubTitleStyle.Render("By model"))
			rows = append(rows, m.renderDistribution(usage, cardWidth-6))
			rows = append(rows, "")
			rows = append(rows, m.renderLegend(usage))
		}

		if len(usage.TrendTokens) > 1 {
			rows = append(rows, "")
			rows = append(rows, styles.SubTitleStyle.Render("Token trend"))
			rows = append(rows, components.RenderLineChart(
				usage.TrendTokens, cardWidth-12, 6, m.trendCaption(usage)))
		}
	}

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderTotals(usage projection.UsagePayload) string {
	return fmt.Sprintf("Requests: %s   Tokens: %s   Cost: %s",
		styles.InfoTextStyle.Render(fmt.Sprintf("%d", usage.TotalRequests)),
		styles.InfoTextStyle.Render(fmt.Sprintf("%d", usage.TotalTokens)),
		styles.InfoTextStyle.Render(fmt.Sprintf("$%.2f", usage.TotalCost)),
	)
}

func (m *Model) renderDistribution(usage projection.UsagePayload, width int) string {
	values := make([]float64, len(usage.Distribution))
	labels := make([]string, len(usage.Distribution))
	colors := make([]lipgloss.Color, len(usage.Distribution))
	for i, slice := range usage.Distribution {
		values[i] = slice.Ratio
		labels[i] = slice.Model
		colors[i] = lipgloss.Color(slice.Color)
	}
	return components.RenderBarChart(values, labels, colors, width)
}

func (m *Model) renderLegend(usage projection.UsagePayload) string {
	items := make([]components.LegendItem, len(usage.Distribution))
	for i, slice := range usage.Distribution {
		items[i] = components.LegendItem{
			Label: slice.Model,
			Color: lipgloss.Color(slice.Color),
		}
	}
	return components.RenderLegend(items)
}

func (m *Model) trendCaption(usage projection.UsagePayload) string {
	if len(usage.TrendDates) == 0 {
		return "tokens per day"
	}
	first := usage.TrendDates[0]
	last := usage.TrendDates[len(usage.TrendDates)-1]
	return fmt.Sprintf("%s .. %s", first, last)
}
