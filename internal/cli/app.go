package cli

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/model"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/monitor"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/service"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/suggest"
)

// Deps are the services the screens work on.
type Deps struct {
	Profiles *service.ProfileStore
	Settings *service.SettingsStore
	Provider suggest.Provider
	Metrics  *monitor.Metrics
	Logger   *slog.Logger

	// Now defaults to time.Now
	Now func() time.Time

	// Rand drives the scan counter; nil uses a random seed
	Rand *rand.Rand
}

func (d Deps) withDefaults() Deps {
	if d.Provider == nil {
		d.Provider = suggest.NewFallback(nil)
	}

	if d.Logger == nil {
		d.Logger = slog.Default()
	}

	if d.Now == nil {
		d.Now = time.Now
	}

	return d
}

// Screen identifies what the App is showing
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenWizard
	ScreenSession
	ScreenSettings
)

// Navigation messages returned by the screens.
type (
	openWizardMsg   struct{}
	openSettingsMsg struct{}
	openSessionMsg  struct{ profile model.Profile }

	// wizardClosedMsg carries the saved profile, or nothing when the wizard
	// was cancelled.
	wizardClosedMsg struct {
		profile *model.Profile
		err     error
	}

	settingsClosedMsg struct{}
	sessionClosedMsg  struct{}
	quitMsg           struct{}
)

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// App is the root model. Started on the dashboard it runs until the user
// quits; started on another screen it quits when that screen closes.
type App struct {
	deps       Deps
	ctx        context.Context
	cancel     context.CancelFunc
	screen     Screen
	standalone bool
	width      int
	height     int

	dashboard *dashboardModel
	wizard    *wizardModel
	session   *sessionModel
	settings  *settingsModel

	created []model.Profile
}

func newApp(deps Deps, screen Screen) *App {
	deps = deps.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	a := &App{
		deps:       deps,
		ctx:        ctx,
		cancel:     cancel,
		screen:     screen,
		standalone: screen != ScreenDashboard,
	}

	a.dashboard = newDashboardModel(deps)

	return a
}

// NewApp opens the dashboard.
func NewApp(deps Deps) *App {
	return newApp(deps, ScreenDashboard)
}

// NewWizardApp runs only the creation wizard.
func NewWizardApp(deps Deps) *App {
	a := newApp(deps, ScreenWizard)
	a.wizard = newWizardModel(a.ctx, a.deps)

	return a
}

// NewSettingsApp runs only the settings editor.
func NewSettingsApp(deps Deps) *App {
	a := newApp(deps, ScreenSettings)
	a.settings = newSettingsModel(a.deps)

	return a
}

// NewSessionApp launches profile directly.
func NewSessionApp(deps Deps, profile model.Profile) *App {
	a := newApp(deps, ScreenSession)
	a.session = newSessionModel(a.deps, profile)

	return a
}

// Screen returns the screen currently shown.
func (a *App) Screen() Screen { return a.screen }

// Created returns the profiles saved by wizards during this run.
func (a *App) Created() []model.Profile { return a.created }

func (a *App) Init() tea.Cmd {
	switch a.screen {
	case ScreenWizard:
		return a.wizard.Init()
	case ScreenSession:
		return a.session.Init()
	case ScreenSettings:
		return a.settings.Init()
	default:
		return a.dashboard.Init()
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.dashboard.setSize(msg.Width, msg.Height)

		if a.wizard != nil {
			a.wizard.setSize(msg.Width)
		}

		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, a.quit()
		}

	case quitMsg:
		return a, a.quit()

	case openWizardMsg:
		a.wizard = newWizardModel(a.ctx, a.deps)
		a.wizard.setSize(a.width)
		a.screen = ScreenWizard

		return a, a.wizard.Init()

	case openSettingsMsg:
		a.settings = newSettingsModel(a.deps)
		a.screen = ScreenSettings

		return a, a.settings.Init()

	case openSessionMsg:
		a.session = newSessionModel(a.deps, msg.profile)
		a.screen = ScreenSession

		return a, a.session.Init()

	case wizardClosedMsg:
		a.wizard = nil

		if msg.profile != nil {
			a.created = append(a.created, *msg.profile)
		}

		if a.standalone {
			return a, a.quit()
		}

		a.dashboard.afterWizard(msg.profile, msg.err)
		a.screen = ScreenDashboard

		return a, nil

	case settingsClosedMsg:
		a.settings = nil

		if a.standalone {
			return a, a.quit()
		}

		a.screen = ScreenDashboard

		return a, nil

	case sessionClosedMsg:
		a.session = nil
		a.deps.Profiles.ClearActive()

		if a.standalone {
			return a, a.quit()
		}

		a.dashboard.reload()
		a.screen = ScreenDashboard

		return a, nil
	}

	switch a.screen {
	case ScreenWizard:
		return a, a.wizard.update(msg)
	case ScreenSession:
		return a, a.session.update(msg)
	case ScreenSettings:
		return a, a.settings.update(msg)
	default:
		return a, a.dashboard.update(msg)
	}
}

func (a *App) quit() tea.Cmd {
	if a.wizard != nil {
		a.wizard.cancel()
	}

	a.cancel()

	return tea.Quit
}

func (a *App) View() string {
	switch a.screen {
	case ScreenWizard:
		return a.wizard.view()
	case ScreenSession:
		return a.session.view()
	case ScreenSettings:
		return a.settings.view()
	default:
		return a.dashboard.view()
	}
}
