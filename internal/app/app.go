package app

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/bugboard/internal/ai"
	"github.com/nhle/bugboard/internal/credential"
	"github.com/nhle/bugboard/internal/model"
	"github.com/nhle/bugboard/internal/store"
	"github.com/nhle/bugboard/internal/ui"
	"github.com/nhle/bugboard/internal/ui/activity"
	"github.com/nhle/bugboard/internal/ui/configform"
	"github.com/nhle/bugboard/internal/ui/dashboard"
	"github.com/nhle/bugboard/internal/ui/detail"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewDashboard ViewState = iota
	ViewDetail
	ViewActivity
	ViewSettings
)

// Model is the root Bubble Tea model that manages view routing, layout,
// and orchestration of store mutations.
type Model struct {
	currentView ViewState
	layout      ui.Layout

	store      store.Store
	cfg        *model.AppConfig
	configPath string
	keys       *KeyMap

	dashboard    dashboard.Model
	detail       detail.Model
	activityView activity.Model
	settings     configform.Model

	githubToken string

	// loadingRepo guards the ingestion pipeline: connect requests while a
	// load is in flight are ignored.
	loadingRepo bool
	errMsg      string
	ready       bool
}

// New creates the root application model.
func New(s store.Store, cfg *model.AppConfig, configPath string) Model {
	keys := DefaultKeyMap()
	analyzer := buildAnalyzer(cfg)

	return Model{
		currentView:  ViewDashboard,
		store:        s,
		cfg:          cfg,
		configPath:   configPath,
		keys:         keys,
		dashboard:    dashboard.New(s, keys, 80, 24),
		detail:       detail.New(analyzer, keys, 80, 24),
		activityView: activity.New(s, keys, 80, 24),
		githubToken:  resolveGitHubToken(cfg),
	}
}

// buildAnalyzer creates the analysis backend from the configuration,
// falling back to the canned analyzer when the provider is unusable.
func buildAnalyzer(cfg *model.AppConfig) ai.Analyzer {
	analyzer, err := ai.New(cfg.AI, resolveAIKey())
	if err != nil {
		slog.Error("building analyzer, falling back to canned output",
			"provider", cfg.AI.Provider, "error", err)
		return ai.NewCanned()
	}
	return analyzer
}

// resolveAIKey reads the analysis API key from the environment, then the
// system keyring.
func resolveAIKey() string {
	if k := os.Getenv("BUGBOARD_AI_KEY"); k != "" {
		return k
	}
	if k, err := credential.Get(credential.KeyAIAPIKey); err == nil {
		return k
	}
	return ""
}

// resolveGitHubToken reads the GitHub token from the environment, then the
// system keyring when the configuration allows it.
func resolveGitHubToken(cfg *model.AppConfig) string {
	if t := os.Getenv("GITHUB_TOKEN"); t != "" {
		return t
	}
	if cfg.GitHub.TokenFromKeyring {
		if t, err := credential.Get(credential.KeyGitHubToken); err == nil {
			return t
		}
	}
	return ""
}

// Init loads the (empty) board on startup.
func (m Model) Init() tea.Cmd {
	return m.dashboard.Init()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w := m.layout.ContentWidth()
		h := m.layout.ContentHeight()
		m.dashboard.SetSize(w, h)
		m.detail.SetSize(w, h)
		m.activityView.SetSize(w, h)
		m.settings.SetSize(w, h)
		// Forward to the active view so huh forms can size themselves.
		return m.updateActiveView(msg)

	case dashboard.ConnectRequestMsg:
		if m.loadingRepo {
			return m, nil
		}
		m.loadingRepo = true
		m.errMsg = ""
		spinCmd := m.dashboard.SetLoading(true)
		return m, tea.Batch(spinCmd, m.loadRepo(msg.Input))

	case repoLoadedMsg:
		m.loadingRepo = false
		m.dashboard.SetLoading(false)
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, m.dashboard.LoadTickets()
		}
		m.errMsg = ""
		m.dashboard.SetRepo(msg.ref.String())
		m.dashboard.ResetToFirstPage()
		return m, m.dashboard.LoadTickets()

	case dashboard.SelectedTicketMsg:
		return m, m.loadTicketDetail(msg.TicketID)

	case ticketDetailMsg:
		if msg.ticket == nil {
			return m, nil
		}
		m.currentView = ViewDetail
		m.detail.SetTicket(msg.ticket)
		return m, nil

	case dashboard.DeleteRequestMsg:
		return m, m.deleteTicket(msg.TicketID)

	case dashboard.ResolveRequestMsg:
		return m, m.resolveTicket(
			msg.TicketID, model.ActivitySystem,
			"#"+msg.TicketID+" marked resolved",
		)

	case dashboard.ClearAllRequestMsg:
		return m, m.clearTickets()

	case ticketsChangedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		}
		return m, m.dashboard.LoadTickets()

	case detail.AnalysisResultMsg:
		recordCmd := m.recordAnalysis(msg.TicketID, msg.Provider, msg.Err)
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, tea.Batch(recordCmd, cmd)

	case detail.CommentCopiedMsg:
		return m, m.resolveTicket(
			msg.TicketID, model.ActivityComment,
			"suggested comment for #"+msg.TicketID+" copied to clipboard",
		)

	case detail.BackMsg:
		m.currentView = ViewDashboard
		return m, m.dashboard.LoadTickets()

	case activity.BackMsg:
		m.currentView = ViewDashboard
		return m, nil

	case activity.ClearRequestMsg:
		return m, m.clearActivities()

	case activitiesClearedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		}
		return m, m.activityView.LoadActivities()

	case configform.DoneMsg:
		m.currentView = ViewDashboard
		return m, nil

	case configform.SavedMsg:
		m.cfg = msg.Config
		m.detail.SetAnalyzer(buildAnalyzer(m.cfg))
		m.githubToken = resolveGitHubToken(m.cfg)
		m.currentView = ViewDashboard
		slog.Info("settings saved", "provider", m.cfg.AI.Provider)
		return m, nil

	case tea.KeyMsg:
		// Global keys. Skipped while a text input has focus.
		if m.currentView == ViewDashboard && !m.dashboard.Connecting() {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit

			case "v":
				m.currentView = ViewActivity
				return m, m.activityView.Init()

			case "s":
				m.settings = configform.New(
					m.cfg, m.configPath, m.keys,
					m.layout.ContentWidth(), m.layout.ContentHeight(),
				)
				m.currentView = ViewSettings
				return m, m.settings.Init()

			case "backspace":
				m.errMsg = ""
				return m, nil
			}
		} else if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	return m.updateActiveView(msg)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewActivity:
		m.activityView, cmd = m.activityView.Update(msg)
	case ViewSettings:
		m.settings, cmd = m.settings.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Bug Board", m.repoStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	if banner := m.layout.RenderErrorBanner(m.errMsg); banner != "" {
		content = banner + "\n" + content
	}

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDashboard:
		return m.dashboard.View()
	case ViewDetail:
		return m.detail.View()
	case ViewActivity:
		return m.activityView.View()
	case ViewSettings:
		return m.settings.View()
	default:
		return ""
	}
}

// repoStatus returns the header's right-hand connection state.
func (m Model) repoStatus() string {
	if m.loadingRepo {
		return "loading..."
	}
	if repo := m.dashboard.Repo(); repo != "" {
		return repo
	}
	return "not connected"
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewDetail:
		return "esc back | a analyze | y copy+resolve | j/k scroll"
	case ViewActivity:
		return "esc back | D clear log | j/k scroll"
	case ViewSettings:
		return "enter save | esc cancel"
	default:
		if m.dashboard.Connecting() {
			return "enter load | esc cancel"
		}
		if m.errMsg != "" {
			return "backspace dismiss error | q quit"
		}
		return "q quit | c connect | enter open | h/l pages | d remove | x resolve | D clear | v activity | s settings"
	}
}
