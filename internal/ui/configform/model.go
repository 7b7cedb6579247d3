package configform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/bugboard/internal/credential"
	"github.com/nhle/bugboard/internal/keys"
	"github.com/nhle/bugboard/internal/model"
	"github.com/nhle/bugboard/internal/theme"
)

// DoneMsg signals the settings view should close.
type DoneMsg struct{}

// SavedMsg signals the configuration was saved. The parent rebuilds the
// analyzer from the new settings.
type SavedMsg struct {
	Config *model.AppConfig
}

// savedInternalMsg is sent after the config and credentials are persisted.
type savedInternalMsg struct {
	cfg *model.AppConfig
	err error
}

// Model is the settings form view: analysis provider, credentials, and
// GitHub token.
type Model struct {
	cfg        *model.AppConfig
	configPath string
	form       *huh.Form
	keys       *keys.KeyMap

	// Form field values (huh binds to these)
	formProvider string
	formModel    string
	formAIKey    string
	formGHToken  string

	statusMsg string

	width, height int
}

// New creates a new settings form model.
func New(cfg *model.AppConfig, configPath string, k *keys.KeyMap, width, height int) Model {
	m := Model{
		cfg:        cfg,
		configPath: configPath,
		keys:       k,
		width:      width,
		height:     height,
	}
	m.formProvider = cfg.AI.Provider
	m.formModel = cfg.AI.Model
	m.form = m.buildForm()
	return m
}

// Init starts the embedded form.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the settings view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case savedInternalMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Error saving settings: %v", msg.err)
			m.form = m.buildForm()
			return m, m.form.Init()
		}
		return m, func() tea.Msg {
			return SavedMsg{Config: msg.cfg}
		}

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return m, func() tea.Msg { return DoneMsg{} }
		}
	}

	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.save()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return DoneMsg{} }
	}

	return m, cmd
}

// buildForm constructs the huh settings form bound to the field values.
func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Analysis Provider").
				Description("Backend used for AI ticket analysis").
				Options(
					huh.NewOption("Gemini", "gemini"),
					huh.NewOption("OpenRouter", "openrouter"),
				).
				Value(&m.formProvider),
			huh.NewInput().
				Title("Model").
				Description("Provider model identifier (blank for the default)").
				Placeholder("gemini-2.5-flash").
				Value(&m.formModel),
			huh.NewInput().
				Title("Provider API Key").
				Description("Stored in the system keyring; blank keeps the current key").
				EchoMode(huh.EchoModePassword).
				Value(&m.formAIKey),
			huh.NewInput().
				Title("GitHub Token").
				Description("Optional; raises the unauthenticated rate limit").
				EchoMode(huh.EchoModePassword).
				Value(&m.formGHToken),
		),
	).WithWidth(m.formWidth())
}

// save returns a command that persists credentials to the keyring and the
// configuration to disk.
func (m Model) save() tea.Cmd {
	cfg := *m.cfg
	cfg.AI.Provider = m.formProvider
	cfg.AI.Model = strings.TrimSpace(m.formModel)

	path := m.configPath
	aiKey := m.formAIKey
	ghToken := m.formGHToken

	return func() tea.Msg {
		if aiKey != "" {
			if err := credential.Set(credential.KeyAIAPIKey, aiKey); err != nil {
				return savedInternalMsg{err: err}
			}
		}
		if ghToken != "" {
			if err := credential.Set(credential.KeyGitHubToken, ghToken); err != nil {
				return savedInternalMsg{err: err}
			}
			cfg.GitHub.TokenFromKeyring = true
		}

		if err := model.SaveConfig(path, &cfg); err != nil {
			return savedInternalMsg{err: err}
		}

		return savedInternalMsg{cfg: &cfg}
	}
}

// View renders the settings form.
func (m Model) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	b.WriteString(titleStyle.Render("Settings"))
	b.WriteString("\n\n")
	b.WriteString(m.form.View())

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.ColorYellow).
			Italic(true).
			Render(m.statusMsg))
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width).
		Render(b.String())
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}
