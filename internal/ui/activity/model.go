package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/bugboard/internal/keys"
	"github.com/nhle/bugboard/internal/model"
	"github.com/nhle/bugboard/internal/store"
	"github.com/nhle/bugboard/internal/theme"
)

// BackMsg signals the parent to navigate back to the dashboard.
type BackMsg struct{}

// ActivitiesLoadedMsg carries the loaded activity records, newest first.
type ActivitiesLoadedMsg struct {
	Records []model.ActivityRecord
}

// ClearRequestMsg is sent when the user clears the activity log.
type ClearRequestMsg struct{}

// Model is the activity feed view component.
type Model struct {
	store    store.Store
	keys     *keys.KeyMap
	viewport viewport.Model
	records  []model.ActivityRecord
	width    int
	height   int
}

// New creates a new activity feed model.
func New(s store.Store, k *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)

	return Model{
		store:    s,
		keys:     k,
		viewport: vp,
		width:    width,
		height:   height,
	}
}

// Init returns a command that loads the activity log.
func (m Model) Init() tea.Cmd {
	return m.LoadActivities()
}

// Update handles messages for the activity feed.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ActivitiesLoadedMsg:
		m.records = msg.Records
		m.viewport.SetContent(m.renderFeed())
		m.viewport.GotoTop()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg {
				return BackMsg{}
			}

		case key.Matches(msg, m.keys.ClearAll):
			if len(m.records) == 0 {
				return m, nil
			}
			return m, func() tea.Msg {
				return ClearRequestMsg{}
			}
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the activity feed.
func (m Model) View() string {
	if len(m.records) == 0 {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("No activity yet.")
	}

	return m.viewport.View()
}

// renderFeed builds the activity list content, newest entries on top.
func (m Model) renderFeed() string {
	var sections []string

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, headerStyle.Render(
		fmt.Sprintf("Activity (%d)", len(m.records)),
	))
	sections = append(sections, "")

	timeStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	actionStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)

	for _, rec := range m.records {
		marker := theme.ActivityMarkerStyle(rec.Type).Render(markerFor(rec.Type))
		line := fmt.Sprintf(
			"%s %s  %s  %s",
			marker,
			actionStyle.Render(rec.Action),
			rec.Details,
			timeStyle.Render(relativeTime(rec.Timestamp)),
		)
		sections = append(sections, theme.ListItemStyle.Render(line))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// markerFor returns the feed glyph for an activity type.
func markerFor(t model.ActivityType) string {
	switch t {
	case model.ActivityCommit:
		return "●"
	case model.ActivityAnalysis:
		return "✦"
	case model.ActivityComment:
		return "✎"
	case model.ActivityPR:
		return "⇄"
	default:
		return "·"
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
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// LoadActivities returns a tea.Cmd that reads the activity log from the
// store.
func (m Model) LoadActivities() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		records, err := s.GetActivities(context.Background())
		if err != nil {
			return ActivitiesLoadedMsg{}
		}
		return ActivitiesLoadedMsg{Records: records}
	}
}

// SetSize updates the feed dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
}
