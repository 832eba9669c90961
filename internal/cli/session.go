package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/model"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/session"
)

// bootDoneMsg fires when the boot timer of sess elapses.
type bootDoneMsg struct {
	sess *session.Session
}

type sessionModel struct {
	deps    Deps
	sess    *session.Session
	keys    sessionKeys
	help    help.Model
	spinner spinner.Model
}

func newSessionModel(deps Deps, profile model.Profile) *sessionModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = themeStyle(profile.ThemeColor)

	deps.Metrics.SessionLaunched()
	deps.Logger.Info("launching clone", "id", profile.ID, "app", profile.AppName)

	return &sessionModel{
		deps:    deps,
		sess:    session.Start(profile, deps.Now()),
		keys:    newSessionKeys(),
		help:    help.New(),
		spinner: s,
	}
}

func (m *sessionModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.bootTimer(session.BootDuration))
}

func (m *sessionModel) bootTimer(d time.Duration) tea.Cmd {
	sess := m.sess

	return tea.Tick(d, func(time.Time) tea.Msg { return bootDoneMsg{sess: sess} })
}

func (m *sessionModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case bootDoneMsg:
		if msg.sess != m.sess {
			return nil
		}

		if m.sess.Advance(m.deps.Now()) == session.PhaseBooting {
			return m.bootTimer(m.sess.Remaining(m.deps.Now()))
		}

		return nil

	case spinner.TickMsg:
		if m.sess.Phase() != session.PhaseBooting {
			return nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return cmd

	case tea.KeyMsg:
		// Booting cannot be interrupted; only ctrl+c, handled by the App,
		// gets through.
		if m.sess.Phase() == session.PhaseRunning && key.Matches(msg, m.keys.close) {
			return emit(sessionClosedMsg{})
		}
	}

	return nil
}

func (m *sessionModel) view() string {
	p := m.sess.Profile()
	accent := themeStyle(p.ThemeColor)

	if m.sess.Phase() == session.PhaseBooting {
		return m.viewBooting(p, accent)
	}

	sum := m.sess.Summary()

	var b strings.Builder

	header := fmt.Sprintf("%s  %s  %s",
		accent.Bold(true).Render("["+sum.Initial+"]"),
		boldStyle.Render(sum.AppName),
		dimStyle.Render(sum.Version),
	)
	b.WriteString(header + "\n")
	b.WriteString(dimStyle.Render(sum.RunningIn) + "\n\n")

	rows := [][2]string{
		{"Spoofed IMEI", sum.IMEI},
		{"Virtual Location", sum.Location},
		{"Device", strings.TrimSpace(sum.Manufacturer + " " + sum.Model)},
		{"Android", sum.AndroidVersion},
		{"Device Status", successStyle.Render(sum.DeviceStatus)},
		{"Root Access", successStyle.Render(sum.RootAccess)},
		{"Android ID", sum.AndroidID},
	}

	for _, row := range rows {
		fmt.Fprintf(&b, "%-18s %s\n", blurredStyle.Render(row[0]), row[1])
	}

	if len(sum.Privacy) > 0 {
		b.WriteString("\n" + infoStyle.Render(strings.Join(sum.Privacy, " • ")) + "\n")
	}

	b.WriteString("\n" + sum.Belief + "\n")

	body := cardStyle.BorderForeground(lipgloss.Color(model.ParseTheme(string(p.ThemeColor)).ANSI())).Render(b.String())

	return lipgloss.NewStyle().Margin(1, 2).Render(body + "\n" + helpStyle.Render(m.help.View(m.keys)))
}

func (m *sessionModel) viewBooting(p model.Profile, accent lipgloss.Style) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s Booting %s...\n\n", m.spinner.View(), accent.Render(p.Name))

	for _, step := range session.BootSteps() {
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(step.Label), step.Done)
	}

	return lipgloss.NewStyle().Margin(1, 2).Render(b.String())
}
