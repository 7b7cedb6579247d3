package dashboard

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/bugboard/internal/keys"
	"github.com/nhle/bugboard/internal/model"
	"github.com/nhle/bugboard/internal/store"
	"github.com/nhle/bugboard/internal/theme"
)

// TicketsLoadedMsg is sent when the ticket collection has been read from
// the store.
type TicketsLoadedMsg struct {
	Tickets []model.Ticket
	Counts  model.Counts
}

// SelectedTicketMsg is sent when the user opens a ticket's detail view.
type SelectedTicketMsg struct {
	TicketID string
}

// ConnectRequestMsg is sent when the user submits a repository reference
// to load.
type ConnectRequestMsg struct {
	Input string
}

// DeleteRequestMsg is sent when the user removes a ticket from the board.
type DeleteRequestMsg struct {
	TicketID string
}

// ResolveRequestMsg is sent when the user marks a ticket resolved from
// the list.
type ResolveRequestMsg struct {
	TicketID string
}

// ClearAllRequestMsg is sent when the user clears the whole board.
type ClearAllRequestMsg struct{}

// Model is the main dashboard view: summary cards, the paged ticket list,
// and the repository connection input.
type Model struct {
	store store.Store
	keys  *keys.KeyMap

	repoInput  textinput.Model
	connecting bool

	spin    spinner.Model
	loading bool

	tickets []model.Ticket
	counts  model.Counts
	pager   Pager
	cursor  int

	repo string

	width  int
	height int
}

// New creates a new dashboard model.
func New(s store.Store, k *keys.KeyMap, width, height int) Model {
	ri := textinput.New()
	ri.Placeholder = "owner/repo or https://github.com/owner/repo"
	ri.Prompt = "repo> "
	ri.Width = width - 10

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.ColorBlue)

	return Model{
		store:     s,
		keys:      k,
		repoInput: ri,
		spin:      sp,
		pager:     NewPager(TicketsPerPage),
		width:     width,
		height:    height,
	}
}

// Init returns a command that loads the current ticket collection.
func (m Model) Init() tea.Cmd {
	return m.LoadTickets()
}

// Update handles messages for the dashboard view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TicketsLoadedMsg:
		m.tickets = msg.Tickets
		m.counts = msg.Counts
		m.pager.SetTotal(len(m.tickets))
		m.clampCursor()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.connecting {
			return m.handleConnectKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// handleConnectKeys processes key input while the repository input is focused.
func (m Model) handleConnectKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.connecting = false
		m.repoInput.Blur()
		input := m.repoInput.Value()
		if input == "" {
			return m, nil
		}
		return m, func() tea.Msg {
			return ConnectRequestMsg{Input: input}
		}

	case "esc":
		m.connecting = false
		m.repoInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.repoInput, cmd = m.repoInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Connect):
		m.connecting = true
		return m, m.repoInput.Focus()

	case key.Matches(msg, m.keys.Down):
		start, end := m.pager.Bounds()
		if m.cursor < end-start-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		m.pager.Next()
		m.cursor = 0
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		m.pager.Prev()
		m.cursor = 0
		return m, nil

	case key.Matches(msg, m.keys.Select):
		t, ok := m.selectedTicket()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedTicketMsg{TicketID: t.ID}
		}

	case key.Matches(msg, m.keys.Delete):
		t, ok := m.selectedTicket()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return DeleteRequestMsg{TicketID: t.ID}
		}

	case key.Matches(msg, m.keys.Resolve):
		t, ok := m.selectedTicket()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return ResolveRequestMsg{TicketID: t.ID}
		}

	case key.Matches(msg, m.keys.ClearAll):
		if len(m.tickets) == 0 {
			return m, nil
		}
		return m, func() tea.Msg {
			return ClearAllRequestMsg{}
		}
	}

	return m, nil
}

// selectedTicket returns the ticket under the cursor on the current page.
func (m Model) selectedTicket() (model.Ticket, bool) {
	start, end := m.pager.Bounds()
	idx := start + m.cursor
	if idx >= end {
		return model.Ticket{}, false
	}
	return m.tickets[idx], true
}

// clampCursor keeps the cursor inside the current page after the
// collection changes.
func (m *Model) clampCursor() {
	start, end := m.pager.Bounds()
	if n := end - start; m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the dashboard view.
func (m Model) View() string {
	var sections []string

	sections = append(sections, m.renderStats())

	if m.connecting {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.repoInput.View()))
	}

	if m.loading {
		sections = append(sections, lipgloss.NewStyle().
			Padding(1, 2).
			Render(m.spin.View()+" loading "+m.loadingTarget()+"..."))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	if len(m.tickets) == 0 {
		sections = append(sections, m.renderEmptyState())
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	start, end := m.pager.Bounds()
	for i, t := range m.tickets[start:end] {
		sections = append(sections, renderTicketRow(t, i == m.cursor))
	}

	sections = append(sections, m.renderFooter(start, end))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// loadingTarget names what the spinner is waiting on.
func (m Model) loadingTarget() string {
	if v := m.repoInput.Value(); v != "" {
		return v
	}
	return "repository"
}

// renderStats draws the summary card row derived from the collection.
func (m Model) renderStats() string {
	card := func(label string, n int, color lipgloss.AdaptiveColor) string {
		value := lipgloss.NewStyle().Bold(true).Foreground(color).
			Render(fmt.Sprintf("%d", n))
		return theme.StatCardStyle.Render(value + " " + label)
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		card("open", m.counts.Open, theme.ColorBlue),
		card("in progress", m.counts.InProgress, theme.ColorYellow),
		card("pull requests", m.counts.PullRequests, theme.ColorOrange),
		card("resolved", m.counts.Resolved, theme.ColorGreen),
	)
}

// renderFooter draws the "Showing x-y of n" pagination line.
func (m Model) renderFooter(start, end int) string {
	return theme.HelpStyle.
		PaddingLeft(2).
		Render(fmt.Sprintf(
			"Showing %d-%d of %d · page %d/%d",
			start+1, end, m.pager.Total(),
			m.pager.Page(), m.pager.TotalPages(),
		))
}

// renderEmptyState shows guidance text when no tickets are loaded.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Padding(2, 0).
		Align(lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.repo != "" {
		return style.Render("No open issues or pull requests in " + m.repo + ".")
	}

	return style.Render(
		"No repository connected.\n\n" +
			"Press c and enter owner/repo to load its open issues.",
	)
}

// LoadTickets returns a tea.Cmd that reads the collection and its counts
// from the store.
func (m Model) LoadTickets() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		tickets, err := s.GetTickets(context.Background())
		if err != nil {
			return TicketsLoadedMsg{}
		}
		counts, err := s.TicketCounts(context.Background())
		if err != nil {
			return TicketsLoadedMsg{Tickets: tickets}
		}
		return TicketsLoadedMsg{Tickets: tickets, Counts: counts}
	}
}

// SetLoading toggles the loading spinner. Returns the spinner tick command
// when loading starts.
func (m *Model) SetLoading(loading bool) tea.Cmd {
	m.loading = loading
	if loading {
		return m.spin.Tick
	}
	return nil
}

// SetRepo records the connected repository shown in the empty state and
// prefills the connection input.
func (m *Model) SetRepo(repo string) {
	m.repo = repo
	m.repoInput.SetValue(repo)
}

// Repo returns the currently connected repository reference, if any.
func (m Model) Repo() string {
	return m.repo
}

// ResetToFirstPage moves back to page 1 and the top of the list. Called
// after a fresh repository load.
func (m *Model) ResetToFirstPage() {
	m.pager.Reset()
	m.cursor = 0
}

// Connecting reports whether the repository input currently has focus.
func (m Model) Connecting() bool {
	return m.connecting
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.repoInput.Width = width - 10
}
