package detail

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/bugboard/internal/ai"
	"github.com/nhle/bugboard/internal/keys"
	"github.com/nhle/bugboard/internal/model"
	"github.com/nhle/bugboard/internal/theme"
)

// BackMsg signals the parent to navigate back to the dashboard.
type BackMsg struct{}

// AnalysisResultMsg carries the outcome of an AI analysis run. The parent
// sees it first (to record activity) and then routes it back here.
type AnalysisResultMsg struct {
	TicketID string
	Provider string
	Result   *model.AnalysisResult
	Err      error
}

// CommentCopiedMsg signals that the suggested comment was copied to the
// clipboard; the parent marks the ticket resolved in response.
type CommentCopiedMsg struct {
	TicketID string
}

// Model is the ticket detail view component.
type Model struct {
	ticket   *model.Ticket
	analyzer ai.Analyzer
	viewport viewport.Model
	keys     *keys.KeyMap

	// analyzing guards against concurrent analysis runs from this view.
	analyzing   bool
	analysis    *model.AnalysisResult
	analysisErr string
	copied      bool

	width  int
	height int
}

// New creates a new detail view model.
func New(analyzer ai.Analyzer, k *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		analyzer: analyzer,
		viewport: vp,
		keys:     k,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case AnalysisResultMsg:
		if m.ticket == nil || msg.TicketID != m.ticket.ID {
			return m, nil
		}
		m.analyzing = false
		if msg.Err != nil {
			m.analysisErr = msg.Err.Error()
			m.analysis = nil
		} else {
			m.analysisErr = ""
			m.analysis = msg.Result
		}
		m.refreshContent()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg {
				return BackMsg{}
			}

		case key.Matches(msg, m.keys.Analyze):
			if m.ticket == nil || m.analyzing {
				return m, nil
			}
			m.analyzing = true
			m.analysisErr = ""
			m.refreshContent()
			return m, m.runAnalysis(*m.ticket)

		case key.Matches(msg, m.keys.Copy):
			if m.ticket == nil || m.analysis == nil {
				return m, nil
			}
			if err := clipboard.WriteAll(m.analysis.SuggestedGitComment); err != nil {
				m.analysisErr = "clipboard unavailable: " + err.Error()
				m.refreshContent()
				return m, nil
			}
			m.copied = true
			m.refreshContent()
			id := m.ticket.ID
			return m, func() tea.Msg {
				return CommentCopiedMsg{TicketID: id}
			}
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// runAnalysis returns a command that asks the analyzer for a structured
// diagnosis of the ticket.
func (m Model) runAnalysis(t model.Ticket) tea.Cmd {
	analyzer := m.analyzer
	return func() tea.Msg {
		result, err := analyzer.Analyze(
			context.Background(), t.Title, t.Description, t.Repository,
		)
		return AnalysisResultMsg{
			TicketID: t.ID,
			Provider: analyzer.Name(),
			Result:   result,
			Err:      err,
		}
	}
}

// View renders the detail view.
func (m Model) View() string {
	if m.ticket == nil {
		emptyStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return emptyStyle.Render("No ticket selected")
	}

	return m.viewport.View()
}

// refreshContent re-renders the viewport content in place.
func (m *Model) refreshContent() {
	m.viewport.SetContent(m.renderContent())
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	if m.ticket == nil {
		return ""
	}

	t := m.ticket
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, titleStyle.Render(t.Title))

	kind := "ISSUE"
	if t.IsPullRequest {
		kind = "PULL REQUEST"
	}
	kindBadge := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorOrange).
		Render(kind)

	sevBadge := theme.SeverityStyle(t.Severity).Render(
		strings.ToUpper(string(t.Severity)),
	)
	statusBadge := theme.StatusStyle(t.Status).Render(t.Status)

	badgeLine := lipgloss.JoinHorizontal(
		lipgloss.Top, kindBadge, "  ", sevBadge, "  ", statusBadge,
	)
	sections = append(sections, badgeLine)
	sections = append(sections, "")

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)

	meta := func(label, value string) string {
		return fmt.Sprintf("%s %s", metaStyle.Render(label), valStyle.Render(value))
	}

	sections = append(sections, meta("Repository:", t.Repository))
	sections = append(sections, meta("Number:    ", "#"+t.ID))
	if t.Author != "" {
		sections = append(sections, meta("Author:    ", t.Author))
	}
	if !t.AssignedAt.IsZero() {
		sections = append(sections, meta(
			"Created:   ", t.AssignedAt.Format("2006-01-02 15:04"),
		))
	}
	if len(t.Labels) > 0 {
		sections = append(sections, meta("Labels:    ", strings.Join(t.Labels, ", ")))
	}
	sections = append(sections, meta(
		"Comments:  ", fmt.Sprintf("%d", t.Comments),
	))
	if t.EstimatedCompletion > 0 {
		sections = append(sections, meta(
			"Estimate:  ", fmt.Sprintf("%dm", t.EstimatedCompletion),
		))
	}
	if t.URL != "" {
		sections = append(sections, meta("URL:       ", t.URL))
	}

	separator := lipgloss.NewStyle().
		Foreground(theme.ColorSubtle).
		Render(strings.Repeat("─", min(m.width-4, 80)))
	sections = append(sections, "", separator, "")

	descHeaderStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite)

	sections = append(sections, descHeaderStyle.Render("Description"), "")
	sections = append(sections, t.Description)

	sections = append(sections, "", separator, "")
	sections = append(sections, m.renderAnalysisSection(descHeaderStyle)...)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderAnalysisSection builds the AI analysis block below the description.
func (m Model) renderAnalysisSection(headerStyle lipgloss.Style) []string {
	hintStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Italic(true)

	if m.analyzing {
		return []string{
			headerStyle.Render("AI Analysis"),
			"",
			hintStyle.Render("Analyzing with " + m.analyzer.Name() + "..."),
		}
	}

	if m.analysisErr != "" {
		return []string{
			headerStyle.Render("AI Analysis"),
			"",
			lipgloss.NewStyle().Foreground(theme.ColorRed).Render(m.analysisErr),
			hintStyle.Render("Press a to retry."),
		}
	}

	if m.analysis == nil {
		return []string{
			headerStyle.Render("AI Analysis"),
			"",
			hintStyle.Render("Press a to analyze this ticket."),
		}
	}

	a := m.analysis
	labelStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBlue)

	sections := []string{
		headerStyle.Render(fmt.Sprintf(
			"AI Analysis (%s, confidence %d%%)", m.analyzer.Name(), a.Confidence,
		)),
		"",
		labelStyle.Render("Root cause"),
		a.RootCause,
		"",
		labelStyle.Render("Proposed solution"),
		a.ProposedSolution,
	}

	if len(a.FilesToModify) > 0 {
		sections = append(sections, "", labelStyle.Render("Files to modify"))
		for _, f := range a.FilesToModify {
			sections = append(sections, "  • "+f)
		}
	}

	sections = append(sections, "", labelStyle.Render("Suggested comment"))
	sections = append(sections, a.SuggestedGitComment)

	if m.copied {
		sections = append(sections, "", lipgloss.NewStyle().
			Foreground(theme.ColorGreen).
			Render("✓ copied to clipboard · ticket marked resolved"))
	} else {
		sections = append(sections, "", hintStyle.Render(
			"Press y to copy the suggested comment and resolve the ticket.",
		))
	}

	return sections
}

// SetTicket updates the ticket being displayed and clears any previous
// analysis state.
func (m *Model) SetTicket(t *model.Ticket) {
	m.ticket = t
	m.analyzing = false
	m.analysis = nil
	m.analysisErr = ""
	m.copied = false
	m.refreshContent()
	m.viewport.GotoTop()
}

// SetAnalyzer swaps the analysis backend, e.g. after the settings change.
func (m *Model) SetAnalyzer(analyzer ai.Analyzer) {
	m.analyzer = analyzer
}

// Ticket returns the ticket currently displayed, or nil.
func (m Model) Ticket() *model.Ticket {
	return m.ticket
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
}
