package cli

import "github.com/charmbracelet/bubbles/key"

type dashboardKeys struct {
	open     key.Binding
	create   key.Binding
	remove   key.Binding
	settings key.Binding
	up       key.Binding
	down     key.Binding
	quit     key.Binding
}

func newDashboardKeys() dashboardKeys {
	return dashboardKeys{
		open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "launch")),
		create:   key.NewBinding(key.WithKeys("n", "+"), key.WithHelp("n", "clone app")),
		remove:   key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		settings: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (k dashboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.open, k.create, k.remove, k.settings, k.quit}
}

func (k dashboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.up, k.down, k.open}, {k.create, k.remove, k.settings, k.quit}}
}

type wizardKeys struct {
	skip     key.Binding
	up       key.Binding
	down     key.Binding
	choose   key.Binding
	manual   key.Binding
	next     key.Binding
	prev     key.Binding
	toggle   key.Binding
	generate key.Binding
	submit   key.Binding
	back     key.Binding
}

func newWizardKeys() wizardKeys {
	return wizardKeys{
		skip:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "skip scan")),
		up:       key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "up")),
		down:     key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "down")),
		choose:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		manual:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "enter manually")),
		next:     key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		prev:     key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		toggle:   key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
		generate: key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "ask AI")),
		submit:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "create")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

type wizardHelp struct {
	bindings []key.Binding
}

func (h wizardHelp) ShortHelp() []key.Binding { return h.bindings }

func (h wizardHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.bindings} }

type settingsKeys struct {
	up     key.Binding
	down   key.Binding
	toggle key.Binding
	back   key.Binding
}

func newSettingsKeys() settingsKeys {
	return settingsKeys{
		up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		toggle: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
		back:   key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "back")),
	}
}

func (k settingsKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.up, k.down, k.toggle, k.back}
}

func (k settingsKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

type sessionKeys struct {
	close key.Binding
}

func newSessionKeys() sessionKeys {
	return sessionKeys{
		close: key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "close app")),
	}
}

func (k sessionKeys) ShortHelp() []key.Binding { return []key.Binding{k.close} }

func (k sessionKeys) FullHelp() [][]key.Binding { return [][]key.Binding{{k.close}} }
