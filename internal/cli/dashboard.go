package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/application"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/model"
)

const (
	emptyHint     = "No clones yet. Press n to Clone Application."
	defaultWidth  = 60
	defaultHeight = 14
)

type profileItem struct {
	profile model.Profile
}

func (i profileItem) FilterValue() string { return i.profile.Name }

type profileDelegate struct{}

func (d profileDelegate) Height() int                             { return 2 }
func (d profileDelegate) Spacing() int                            { return 1 }
func (d profileDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d profileDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(profileItem)
	if !ok {
		return
	}

	p := i.profile
	title := fmt.Sprintf("%s %s", themeStyle(p.ThemeColor).Render("■"), p.Name)
	details := profileDetails(p)

	if index == m.Index() {
		_, _ = fmt.Fprintf(w, "%s\n%s", selectedItemStyle.Render("> "+title), itemStyle.Render(dimStyle.Render(details)))
		return
	}

	_, _ = fmt.Fprintf(w, "%s\n%s", itemStyle.Render(title), itemStyle.Render(dimStyle.Render(details)))
}

// profileDetails is the second card line: app, tags and spoofed city.
func profileDetails(p model.Profile) string {
	parts := []string{p.AppName}

	if len(p.Tags) > 0 {
		parts = append(parts, strings.Join(p.Tags, ", "))
	}

	if p.DeviceIdentity != nil && p.DeviceIdentity.Location.City != "" {
		parts = append(parts, p.DeviceIdentity.Location.City)
	}

	return strings.Join(parts, " • ")
}

type dashboardModel struct {
	deps    Deps
	list    list.Model
	keys    dashboardKeys
	help    help.Model
	status  string
	err     error
	confirm string
}

func newDashboardModel(deps Deps) *dashboardModel {
	l := list.New(nil, profileDelegate{}, defaultWidth, defaultHeight)
	l.Title = "My Clones"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle

	m := &dashboardModel{
		deps: deps,
		list: l,
		keys: newDashboardKeys(),
		help: help.New(),
	}
	m.reload()

	return m
}

func (m *dashboardModel) Init() tea.Cmd { return nil }

func (m *dashboardModel) setSize(width, height int) {
	m.list.SetSize(width, max(height-8, 4))
	m.help.Width = width
}

// reload refreshes the cards from the store.
func (m *dashboardModel) reload() {
	profiles := m.deps.Profiles.Profiles()
	items := make([]list.Item, len(profiles))

	for i, p := range profiles {
		items[i] = profileItem{profile: p}
	}

	m.list.SetItems(items)
}

func (m *dashboardModel) afterWizard(p *model.Profile, err error) {
	m.reload()

	switch {
	case err != nil:
		m.err = err
		m.status = ""
	case p != nil:
		m.err = nil
		m.status = fmt.Sprintf("%s Created %s", checkMark, p.Name)
		m.list.Select(len(m.list.Items()) - 1)
	}
}

func (m *dashboardModel) selected() (model.Profile, bool) {
	i, ok := m.list.SelectedItem().(profileItem)
	if !ok {
		return model.Profile{}, false
	}

	return i.profile, true
}

func (m *dashboardModel) update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)

		return cmd
	}

	if m.confirm != "" {
		return m.answerConfirm(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.quit):
		return emit(quitMsg{})

	case key.Matches(keyMsg, m.keys.create):
		m.status, m.err = "", nil
		return emit(openWizardMsg{})

	case key.Matches(keyMsg, m.keys.settings):
		return emit(openSettingsMsg{})

	case key.Matches(keyMsg, m.keys.open):
		p, ok := m.selected()
		if !ok {
			return nil
		}

		if _, err := m.deps.Profiles.Select(p.ID); err != nil {
			m.err = err
			return nil
		}

		return emit(openSessionMsg{profile: p})

	case key.Matches(keyMsg, m.keys.remove):
		if p, ok := m.selected(); ok {
			m.confirm = p.ID
			m.status = fmt.Sprintf("Delete %s? (y/N)", p.Name)
		}

		return nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return cmd
}

func (m *dashboardModel) answerConfirm(msg tea.KeyMsg) tea.Cmd {
	id := m.confirm
	m.confirm = ""
	m.status = ""

	if msg.String() != "y" && msg.String() != "Y" {
		return nil
	}

	if err := m.deps.Profiles.Remove(id); err != nil {
		m.err = err
		return nil
	}

	m.err = nil
	m.status = checkMark + " Clone deleted"
	m.reload()

	return nil
}

func banner(count int) string {
	status := fmt.Sprintf("System Status: %s   ROOT: %s   Clones: %d",
		successStyle.Render("UNDETECTED"),
		successStyle.Render("HIDDEN"),
		count,
	)

	return bannerStyle.Render(status)
}

func (m *dashboardModel) view() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(application.DisplayName) + dimStyle.Render("  virtual app space") + "\n")
	b.WriteString(banner(len(m.list.Items())) + "\n\n")

	if len(m.list.Items()) == 0 {
		b.WriteString(cardStyle.Render(emptyHint) + "\n")
	} else {
		b.WriteString(m.list.View() + "\n")
	}

	switch {
	case m.err != nil:
		b.WriteString("\n" + errorStyle.Render(fmt.Sprintf("%s Error: %v", crossMark, m.err)) + "\n")
	case m.confirm != "":
		b.WriteString("\n" + warningStyle.Render(m.status) + "\n")
	case m.status != "":
		b.WriteString("\n" + successStyle.Render(m.status) + "\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return lipgloss.NewStyle().Margin(1, 2).Render(b.String())
}
