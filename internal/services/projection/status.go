// Package projection maps fetch results to the two consumer surfaces: the
// compact status summary and the dashboard payloads. Everything here is pure;
// delivery and rendering happen elsewhere.
package projection

import (
	"fmt"
	"sort"
	"time"

	"github.com/rightcode-tools/rightcode-tui/internal/models"
)

// StatusState tags the status summary variant.
type StatusState int

const (
	// StatusOK shows the selected subscription.
	StatusOK StatusState = iota
	// StatusNotConfigured means no credential is configured.
	StatusNotConfigured
	// StatusNoSubscription means the fetch succeeded with an empty list.
	StatusNoSubscription
	// StatusError means the fetch failed.
	StatusError
)

// DetailRow is one line of the status detail table.
type DetailRow struct {
	Name       string
	Remaining  string
	Total      string
	Used       string
	Expires    string
	LastReset  string
	ResetToday string
	Selected   bool
}

// Status is the status-summary payload.
type Status struct {
	State       StatusState
	Line        string
	Message     string
	Selected    *models.Subscription
	Detail      []DetailRow
	RefreshedAt time.Time
}

const (
	notConfiguredLine  = "RightCode: not configured"
	noSubscriptionLine = "RightCode: no subscription"
	fetchErrorLine     = "RightCode: fetch failed"
)

// ProjectStatus builds the status summary for one fetch outcome. The fetch
// error, when set, wins over any subscription data.
func ProjectStatus(auth models.ResolvedAuth, subs []models.Subscription, fetchErr error, refreshedAt time.Time) Status {
	if !auth.IsConfigured() {
		return Status{State: StatusNotConfigured, Line: notConfiguredLine, RefreshedAt: refreshedAt}
	}
	if fetchErr != nil {
		return Status{
			State:       StatusError,
			Line:        fetchErrorLine,
			Message:     fetchErr.Error(),
			RefreshedAt: refreshedAt,
		}
	}

	selected := models.PickDisplay(subs)
	if selected == nil {
		return Status{State: StatusNoSubscription, Line: noSubscriptionLine, RefreshedAt: refreshedAt}
	}

	return Status{
		State:       StatusOK,
		Line:        fmt.Sprintf("%s · %s remaining %.2f", auth.AccountLabel, selected.Name, selected.RemainingQuota),
		Selected:    selected,
		Detail:      detailRows(subs, selected.ID),
		RefreshedAt: refreshedAt,
	}
}

// detailRows builds the per-subscription table, least-used first, with the
// selected subscription flagged.
func detailRows(subs []models.Subscription, selectedID int) []DetailRow {
	sorted := make([]models.Subscription, len(subs))
	copy(sorted, subs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UsedQuota() < sorted[j].UsedQuota()
	})

	rows := make([]DetailRow, 0, len(sorted))
	for _, s := range sorted {
		rows = append(rows, DetailRow{
			Name:       s.Name,
			Remaining:  formatQuota(s.RemainingQuota),
			Total:      formatQuota(s.TotalQuota),
			Used:       formatQuota(s.UsedQuota()),
			Expires:    formatDateYMD(s.ExpiredAt),
			LastReset:  formatDateMD(s.LastResetAt),
			ResetToday: formatYesNo(s.ResetToday),
			Selected:   s.ID == selectedID,
		})
	}
	return rows
}

func formatQuota(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func formatDateYMD(raw string) string {
	t, ok := models.ParseTimestamp(raw)
	if !ok {
		return "-"
	}
	return t.Format("2006-01-02")
}

func formatDateMD(v models.OptionalString) string {
	if !v.Present || v.Null || v.Value == "" {
		return "-"
	}
	t, ok := models.ParseTimestamp(v.Value)
	if !ok {
		return "-"
	}
	return t.Format("01-02")
}

func formatYesNo(v *bool) string {
	switch {
	case v == nil:
		return "-"
	case *v:
		return "yes"
	default:
		return "no"
	}
}
