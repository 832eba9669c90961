package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/model"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/suggest"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/wizard"
)

const fmtField = " %s\n %s\n\n"

type scanTickMsg struct{}

// suggestionMsg is the result of one provider call. The request's sequence
// number decides whether the controller still wants it.
type suggestionMsg struct {
	req *wizard.Request
	res suggest.Result
}

// field is one focusable row of the configure form
type field int

const (
	fieldAppName field = iota
	fieldName
	fieldPrivacy
	fieldSubmit = fieldPrivacy + 5
)

type wizardModel struct {
	deps     Deps
	ctrl     *wizard.Controller
	ctx      context.Context
	stop     context.CancelFunc
	keys     wizardKeys
	help     help.Model
	spinner  spinner.Model
	progress progress.Model

	search    textinput.Model
	appInput  textinput.Model
	nameInput textinput.Model

	apps   []model.CatalogApp
	cursor int
	focus  field
	err    error
}

func newWizardModel(ctx context.Context, deps Deps) *wizardModel {
	opts := []wizard.Option{wizard.WithLogger(deps.Logger)}
	if deps.Rand != nil {
		opts = append(opts, wizard.WithRand(deps.Rand))
	}

	ctx, stop := context.WithCancel(ctx)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	search := textinput.New()
	search.Placeholder = "Search apps"
	search.Prompt = "/ "
	search.CharLimit = 64

	appInput := textinput.New()
	appInput.Placeholder = "Application name"
	appInput.CharLimit = 64

	nameInput := textinput.New()
	nameInput.Placeholder = "Clone name"
	nameInput.CharLimit = 64

	m := &wizardModel{
		deps:      deps,
		ctrl:      wizard.New(opts...),
		ctx:       ctx,
		stop:      stop,
		keys:      newWizardKeys(),
		help:      help.New(),
		spinner:   s,
		progress:  progress.New(progress.WithDefaultGradient()),
		search:    search,
		appInput:  appInput,
		nameInput: nameInput,
	}
	m.apps = m.ctrl.Catalog()

	return m
}

func (m *wizardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, scanTick())
}

func scanTick() tea.Cmd {
	return tea.Tick(wizard.TickInterval, func(time.Time) tea.Msg { return scanTickMsg{} })
}

func (m *wizardModel) setSize(width int) {
	if width <= 0 {
		return
	}

	m.progress.Width = min(width-8, 60)
	m.help.Width = width
}

// cancel abandons the wizard and any suggestion still running.
func (m *wizardModel) cancel() {
	if !m.ctrl.State().Terminal() {
		_ = m.ctrl.Cancel()
	}

	m.stop()
}

func (m *wizardModel) close(p *model.Profile, err error) tea.Cmd {
	m.cancel()
	return emit(wizardClosedMsg{profile: p, err: err})
}

func (m *wizardModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case scanTickMsg:
		if m.ctrl.State() != wizard.StateScanning {
			return nil
		}

		if m.ctrl.TickRandom() {
			return m.enterListing()
		}

		return scanTick()

	case suggestionMsg:
		if m.ctrl.Resolve(msg.req, msg.res) {
			m.nameInput.SetValue(m.ctrl.Draft().CustomName)
		}

		return nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return cmd

	case tea.KeyMsg:
		switch m.ctrl.State() {
		case wizard.StateScanning:
			return m.updateScanning(msg)
		case wizard.StateListing:
			return m.updateListing(msg)
		case wizard.StateConfiguring:
			return m.updateConfiguring(msg)
		}

		return nil
	}

	return m.updateInputs(msg)
}

func (m *wizardModel) updateScanning(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.back):
		return m.close(nil, nil)
	case key.Matches(msg, m.keys.skip):
		m.ctrl.SkipScan()
		return m.enterListing()
	}

	return nil
}

func (m *wizardModel) enterListing() tea.Cmd {
	m.search.SetValue("")
	m.apps = m.ctrl.Catalog()
	m.cursor = 0

	return m.search.Focus()
}

func (m *wizardModel) updateListing(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.back):
		return m.close(nil, nil)

	case key.Matches(msg, m.keys.up):
		m.cursor = max(m.cursor-1, 0)
		return nil

	case key.Matches(msg, m.keys.down):
		m.cursor = min(m.cursor+1, max(len(m.apps)-1, 0))
		return nil

	case key.Matches(msg, m.keys.manual):
		if err := m.ctrl.SelectManual(); err != nil {
			m.err = err
			return nil
		}

		m.search.Blur()
		m.appInput.SetValue("")
		m.nameInput.SetValue("")

		return m.focusField(fieldAppName)

	case key.Matches(msg, m.keys.choose):
		if len(m.apps) == 0 {
			return nil
		}

		req, err := m.ctrl.Select(m.apps[m.cursor].Name)
		if err != nil {
			m.err = err
			return nil
		}

		m.search.Blur()
		m.nameInput.SetValue(m.ctrl.Draft().CustomName)

		return tea.Batch(m.focusField(fieldName), m.suggest(req))
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.apps = m.ctrl.Search(m.search.Value())
	m.cursor = min(m.cursor, max(len(m.apps)-1, 0))

	return cmd
}

// suggest runs req on the provider in a command goroutine.
func (m *wizardModel) suggest(req *wizard.Request) tea.Cmd {
	ctx, provider := m.ctx, m.deps.Provider

	return func() tea.Msg {
		return suggestionMsg{req: req, res: req.Run(ctx, provider)}
	}
}

func (m *wizardModel) fields() []field {
	fs := make([]field, 0, 8)
	if m.ctrl.Draft().Manual {
		fs = append(fs, fieldAppName)
	}

	fs = append(fs, fieldName)
	for i := range model.PrivacyFlags() {
		fs = append(fs, fieldPrivacy+field(i))
	}

	return append(fs, fieldSubmit)
}

func (m *wizardModel) focusField(f field) tea.Cmd {
	m.focus = f
	m.appInput.Blur()
	m.nameInput.Blur()
	m.appInput.PromptStyle, m.appInput.TextStyle = noStyle, noStyle
	m.nameInput.PromptStyle, m.nameInput.TextStyle = noStyle, noStyle

	switch f {
	case fieldAppName:
		m.appInput.PromptStyle, m.appInput.TextStyle = focusedStyle, focusedStyle
		return m.appInput.Focus()
	case fieldName:
		m.nameInput.PromptStyle, m.nameInput.TextStyle = focusedStyle, focusedStyle
		return m.nameInput.Focus()
	}

	return nil
}

func (m *wizardModel) moveFocus(delta int) tea.Cmd {
	fs := m.fields()
	idx := 0

	for i, f := range fs {
		if f == m.focus {
			idx = i
		}
	}

	idx = (idx + delta + len(fs)) % len(fs)

	return m.focusField(fs[idx])
}

func (m *wizardModel) updateConfiguring(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.back):
		if err := m.ctrl.Back(); err != nil {
			m.err = err
			return nil
		}

		return m.enterListing()

	case key.Matches(msg, m.keys.submit):
		return m.submit()

	case key.Matches(msg, m.keys.generate):
		req, err := m.ctrl.RequestSuggestion()
		if err != nil {
			m.err = err
			return nil
		}

		m.err = nil

		return m.suggest(req)

	case key.Matches(msg, m.keys.next):
		return m.moveFocus(1)

	case key.Matches(msg, m.keys.prev):
		return m.moveFocus(-1)
	}

	switch {
	case m.focus == fieldSubmit && msg.String() == "enter":
		return m.submit()

	case m.focus >= fieldPrivacy && m.focus < fieldSubmit:
		if key.Matches(msg, m.keys.toggle) {
			flag := model.PrivacyFlags()[m.focus-fieldPrivacy]
			if err := m.ctrl.TogglePrivacy(flag); err != nil {
				m.err = err
			}
		}

		return nil
	}

	return m.updateInputs(msg)
}

// updateInputs feeds text edits and cursor blinks to the focused input and
// copies the value into the draft.
func (m *wizardModel) updateInputs(msg tea.Msg) tea.Cmd {
	if m.ctrl.State() != wizard.StateConfiguring {
		if m.ctrl.State() == wizard.StateListing {
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)

			return cmd
		}

		return nil
	}

	var appCmd, nameCmd tea.Cmd

	m.appInput, appCmd = m.appInput.Update(msg)
	m.nameInput, nameCmd = m.nameInput.Update(msg)

	if _, ok := msg.(tea.KeyMsg); ok {
		switch m.focus {
		case fieldAppName:
			_ = m.ctrl.SetAppName(m.appInput.Value())
		case fieldName:
			_ = m.ctrl.SetCustomName(m.nameInput.Value())
		}
	}

	return tea.Batch(appCmd, nameCmd)
}

func (m *wizardModel) submit() tea.Cmd {
	if !m.ctrl.CanSubmit() {
		m.err = wizard.ErrSubmitDisabled
		return nil
	}

	p, err := m.ctrl.Submit(m.deps.Now())
	if err != nil {
		m.err = err
		return nil
	}

	if err := m.deps.Profiles.Add(p); err != nil {
		m.deps.Logger.Error("failed to save profile", "id", p.ID, "error", err)
		return m.close(nil, err)
	}

	return m.close(&p, nil)
}

func (m *wizardModel) view() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Clone Application") + "\n\n")

	switch m.ctrl.State() {
	case wizard.StateScanning:
		fmt.Fprintf(&b, "%s Scanning installed applications... %d/%d\n\n",
			m.spinner.View(), m.ctrl.Scanned(), wizard.ScanTarget)
		b.WriteString(m.progress.ViewAs(m.ctrl.Progress()) + "\n")
		m.writeHelp(&b, m.keys.skip, m.keys.back)

	case wizard.StateListing:
		m.viewListing(&b)

	case wizard.StateConfiguring:
		m.viewConfiguring(&b)

	case wizard.StateSubmitted:
		b.WriteString(successStyle.Render(checkMark+" Clone created") + "\n")

	case wizard.StateCancelled:
		b.WriteString(dimStyle.Render("Cancelled") + "\n")
	}

	return lipgloss.NewStyle().Margin(1, 2).Render(b.String())
}

func (m *wizardModel) viewListing(b *strings.Builder) {
	fmt.Fprintf(b, "%s %d applications found\n\n", successStyle.Render(checkMark), wizard.ScanTarget)
	b.WriteString(m.search.View() + "\n\n")

	if len(m.apps) == 0 {
		b.WriteString(dimStyle.Render("    No matching apps. Press tab to enter one manually.") + "\n")
	}

	for i, app := range m.apps {
		line := fmt.Sprintf("%-16s %s", app.Name, dimStyle.Render(app.PackageID+" • "+app.Category))
		if i == m.cursor {
			b.WriteString(selectedItemStyle.Render("> "+line) + "\n")
			continue
		}

		b.WriteString(itemStyle.Render(line) + "\n")
	}

	m.writeHelp(b, m.keys.up, m.keys.down, m.keys.choose, m.keys.manual, m.keys.back)
}

func (m *wizardModel) viewConfiguring(b *strings.Builder) {
	d := m.ctrl.Draft()

	if d.Manual {
		fmt.Fprintf(b, fmtField, blurredStyle.Render("Application:"), m.appInput.View())
	} else {
		fmt.Fprintf(b, " %s %s\n\n", blurredStyle.Render("Application:"), boldStyle.Render(d.AppName))
	}

	fmt.Fprintf(b, fmtField, blurredStyle.Render("Clone name:"), m.nameInput.View())

	switch {
	case m.ctrl.Pending():
		fmt.Fprintf(b, " %s Generating secure configuration...\n\n", m.spinner.View())
	case m.ctrl.LastError() != nil:
		b.WriteString(" " + warningStyle.Render("AI suggestion unavailable, defaults kept: "+m.ctrl.LastError().Error()) + "\n\n")
	}

	if d.Description != "" {
		fmt.Fprintf(b, " %s %s\n", blurredStyle.Render("Description:"), d.Description)
	}

	fmt.Fprintf(b, " %s %s\n", blurredStyle.Render("Theme:"), themeStyle(d.ThemeColor).Render(string(model.ParseTheme(string(d.ThemeColor)))))

	if len(d.Tags) > 0 {
		fmt.Fprintf(b, " %s %s\n", blurredStyle.Render("Tags:"), strings.Join(d.Tags, ", "))
	}

	if d.SecurityNote != "" {
		fmt.Fprintf(b, " %s %s\n", blurredStyle.Render("Security:"), infoStyle.Render(d.SecurityNote))
	}

	if id := d.DeviceIdentity; id != nil {
		b.WriteString("\n " + boldStyle.Render("Device identity") + "\n")
		fmt.Fprintf(b, "   IMEI      %s\n", id.IMEI)
		fmt.Fprintf(b, "   Device    %s %s (Android %s)\n", id.Manufacturer, id.Model, id.AndroidVersion)
		fmt.Fprintf(b, "   Location  %s\n", id.Location.City)
	}

	b.WriteString("\n " + boldStyle.Render("Privacy") + "\n")

	for i, flag := range model.PrivacyFlags() {
		label := fmt.Sprintf("%s %s", checkbox(d.PrivacyConfig.Get(flag)), flag.Label())
		if m.focus == fieldPrivacy+field(i) {
			b.WriteString(selectedItemStyle.Render("> "+label) + "\n")
			continue
		}

		b.WriteString(itemStyle.Render(label) + "\n")
	}

	button := blurredButton

	switch {
	case !m.ctrl.CanSubmit():
		button = disabledButton
	case m.focus == fieldSubmit:
		button = focusedButton
	}

	fmt.Fprintf(b, "\n %s\n", button)

	if m.err != nil {
		b.WriteString("\n " + errorStyle.Render(fmt.Sprintf("%s %v", crossMark, m.err)) + "\n")
	}

	m.writeHelp(b, m.keys.next, m.keys.toggle, m.keys.generate, m.keys.submit, m.keys.back)
}

func (m *wizardModel) writeHelp(b *strings.Builder, bindings ...key.Binding) {
	b.WriteString(helpStyle.Render(m.help.View(wizardHelp{bindings: bindings})))
}
