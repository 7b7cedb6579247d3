package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/bugboard/internal/model"
	"github.com/nhle/bugboard/internal/theme"
)

// maxLabelsShown caps the label badges per row to avoid overflow.
const maxLabelsShown = 2

// renderTicketRow draws a single ticket line for the dashboard list.
func renderTicketRow(t model.Ticket, isSelected bool) string {
	// Prefix: merge arrow for pull requests, dot for issues
	prefix := "●"
	if t.IsPullRequest {
		prefix = "⇄"
	}

	sevBadge := theme.SeverityStyle(t.Severity).Render(severityLabel(t.Severity))
	statusBadge := theme.StatusStyle(t.Status).Render(t.Status)

	idStr := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render("#" + t.ID)

	labelBadge := ""
	if len(t.Labels) > 0 {
		display := t.Labels
		if len(display) > maxLabelsShown {
			display = display[:maxLabelsShown]
			display = append(display, "…")
		}
		labelBadge = lipgloss.NewStyle().
			Foreground(theme.ColorMagenta).
			Render(" [" + strings.Join(display, ",") + "]")
	}

	timeStr := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render(relativeTime(t.AssignedAt))

	line := fmt.Sprintf(
		"%s %s %s %s %s%s  %s",
		prefix, idStr, sevBadge, statusBadge, t.Title, labelBadge, timeStr,
	)

	if t.Status == model.StatusResolved {
		line = lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(theme.ColorGray).
			Render(line)
	}

	if isSelected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

// severityLabel returns a short badge label for the given severity.
func severityLabel(s model.Severity) string {
	switch s {
	case model.SeverityCritical:
		return "CRIT"
	case model.SeverityHigh:
		return "HIGH"
	case model.SeverityMedium:
		return "MED"
	case model.SeverityLow:
		return "LOW"
	default:
		return "?"
	}
}

// relativeTime returns a human-friendly relative time string.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	case d < 24*time.Hour:
		hrs := int(d.Hours())
		if hrs == 1 {
			return "1h ago"
		}
		return fmt.Sprintf("%dh ago", hrs)
	case d < 7*24*time.Hour:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1d ago"
		}
		return fmt.Sprintf("%dd ago", days)
	default:
		weeks := int(d.Hours() / 24 / 7)
		if weeks == 1 {
			return "1w ago"
		}
		return fmt.Sprintf("%dw ago", weeks)
	}
}
