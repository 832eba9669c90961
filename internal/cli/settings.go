package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/application"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/model"
)

// settingsModel edits the global toggles. Every toggle is saved at once.
type settingsModel struct {
	deps     Deps
	keys     settingsKeys
	help     help.Model
	settings model.GlobalSettings
	cursor   int
	err      error
}

func newSettingsModel(deps Deps) *settingsModel {
	return &settingsModel{
		deps:     deps,
		keys:     newSettingsKeys(),
		help:     help.New(),
		settings: deps.Settings.Settings(),
	}
}

func (m *settingsModel) Init() tea.Cmd { return nil }

func (m *settingsModel) update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	keys := model.SettingKeys()

	switch {
	case key.Matches(keyMsg, m.keys.back):
		return emit(settingsClosedMsg{})

	case key.Matches(keyMsg, m.keys.up):
		m.cursor = max(m.cursor-1, 0)

	case key.Matches(keyMsg, m.keys.down):
		m.cursor = min(m.cursor+1, len(keys)-1)

	case key.Matches(keyMsg, m.keys.toggle):
		name := keys[m.cursor]

		current, err := m.settings.Get(name)
		if err != nil {
			m.err = err
			return nil
		}

		next, err := m.deps.Settings.Set(name, !current)
		if err != nil {
			m.err = err
			return nil
		}

		m.err = nil
		m.settings = next
	}

	return nil
}

func (m *settingsModel) view() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Settings") + "\n\n")

	for i, name := range model.SettingKeys() {
		on, _ := m.settings.Get(name)
		line := fmt.Sprintf("%s %s", checkbox(on), model.SettingLabel(name))

		if i == m.cursor {
			b.WriteString(selectedItemStyle.Render("> "+line) + "\n")
			continue
		}

		b.WriteString(itemStyle.Render(line) + "\n")
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render(fmt.Sprintf("%s Error: %v", crossMark, m.err)) + "\n")
	}

	fmt.Fprintf(&b, "\n%s\n", dimStyle.Render(fmt.Sprintf("%s v%s", application.DisplayName, application.Version)))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return lipgloss.NewStyle().Margin(1, 2).Render(b.String())
}
