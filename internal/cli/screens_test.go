package cli

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/model"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/session"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/store"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/suggest"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/wizard"
)

// listingApp returns a standalone wizard already past the scan.
func listingApp(t *testing.T, env *testEnv) *App {
	t.Helper()

	app := NewWizardApp(env.deps)
	send(app, keyEnter)
	require.Equal(t, wizard.StateListing, app.wizard.ctrl.State())

	return app
}

// selectApp picks the highlighted app and returns the pending suggestion.
func selectApp(t *testing.T, app *App) suggestionMsg {
	t.Helper()

	msgs := collect[suggestionMsg](t, send(app, keyEnter))
	require.Len(t, msgs, 1)
	require.True(t, app.wizard.ctrl.Pending())

	return msgs[0]
}

func TestWizard_ScanReachesListing(t *testing.T) {
	env := newTestEnv(t, nil)
	app := NewWizardApp(env.deps)

	assert.Contains(t, app.View(), "Scanning installed applications")

	for range 10_000 {
		if app.wizard.ctrl.State() != wizard.StateScanning {
			break
		}

		send(app, scanTickMsg{})
	}

	require.Equal(t, wizard.StateListing, app.wizard.ctrl.State())
	assert.Equal(t, wizard.ScanTarget, app.wizard.ctrl.Scanned())
	assert.Contains(t, app.View(), "WhatsApp")

	// late ticks are ignored
	assert.Nil(t, send(app, scanTickMsg{}))
}

func TestWizard_SelectSuggestAndSubmit(t *testing.T) {
	p := &stubProvider{res: suggest.Ok(testSuggestion())}
	env := newTestEnv(t, p)
	app := listingApp(t, env)

	send(app, tea.KeyMsg{Type: tea.KeyDown})
	msg := selectApp(t, app)
	assert.Equal(t, "Facebook", msg.req.AppName)
	assert.Equal(t, 1, p.calls)

	send(app, msg)
	require.False(t, app.wizard.ctrl.Pending())
	assert.Contains(t, app.View(), "Paris, FR")

	cmd := send(app, keySave)
	closed := collect[wizardClosedMsg](t, cmd)
	require.Len(t, closed, 1)
	require.NoError(t, closed[0].err)
	require.NotNil(t, closed[0].profile)

	quit := send(app, closed[0])
	require.NotNil(t, quit)
	assert.IsType(t, tea.QuitMsg{}, quit())

	created := app.Created()
	require.Len(t, created, 1)
	assert.Equal(t, "Facebook (Clone)", created[0].Name)
	assert.Equal(t, model.ThemeEmerald, created[0].ThemeColor)
	assert.Equal(t, []string{"Social", "Work"}, created[0].Tags)
	require.NotNil(t, created[0].DeviceIdentity)
	assert.Equal(t, "356938035643809", created[0].DeviceIdentity.IMEI)

	stored, err := env.deps.Profiles.Get(created[0].ID)
	require.NoError(t, err)
	assert.Equal(t, created[0].Name, stored.Name)
}

func TestWizard_SubmitDisabledWhilePending(t *testing.T) {
	env := newTestEnv(t, &stubProvider{res: suggest.Ok(testSuggestion())})
	app := listingApp(t, env)
	selectApp(t, app)

	assert.Nil(t, send(app, keySave))
	assert.ErrorIs(t, app.wizard.err, wizard.ErrSubmitDisabled)
	assert.Equal(t, 0, env.deps.Profiles.Len())
}

func TestWizard_SearchFiltersCatalog(t *testing.T) {
	env := newTestEnv(t, nil)
	app := listingApp(t, env)

	send(app, keyRunes("game"))
	require.Len(t, app.wizard.apps, 3)
	assert.Equal(t, "Mobile Legends", app.wizard.apps[0].Name)

	send(app, keyRunes("zzz"))
	assert.Empty(t, app.wizard.apps)
	assert.Contains(t, app.View(), "No matching apps")
	assert.Nil(t, send(app, keyEnter))
}

func TestWizard_BackDropsLateSuggestion(t *testing.T) {
	env := newTestEnv(t, &stubProvider{res: suggest.Ok(testSuggestion())})
	app := listingApp(t, env)
	msg := selectApp(t, app)

	send(app, keyEsc)
	require.Equal(t, wizard.StateListing, app.wizard.ctrl.State())

	send(app, msg)
	assert.Equal(t, wizard.StateListing, app.wizard.ctrl.State())
	assert.Nil(t, app.wizard.ctrl.Draft().DeviceIdentity)
}

func TestWizard_FailedSuggestionKeepsDefaults(t *testing.T) {
	failure := suggest.Fail(&suggest.SuggestionError{Op: "request", AppName: "WhatsApp", Err: errors.New("quota exceeded")})
	env := newTestEnv(t, &stubProvider{res: failure})
	app := listingApp(t, env)

	send(app, selectApp(t, app))
	assert.Contains(t, app.View(), "quota exceeded")

	closed := collect[wizardClosedMsg](t, send(app, keySave))
	require.Len(t, closed, 1)
	require.NotNil(t, closed[0].profile)

	p := *closed[0].profile
	assert.Equal(t, "WhatsApp (Clone)", p.Name)
	assert.Equal(t, []string{model.DefaultTag}, p.Tags)
	assert.Nil(t, p.DeviceIdentity)
}

func TestWizard_PrivacyToggle(t *testing.T) {
	env := newTestEnv(t, &stubProvider{res: suggest.Ok(testSuggestion())})
	app := listingApp(t, env)
	send(app, selectApp(t, app))

	// name -> first privacy flag
	send(app, keyTab)
	require.Equal(t, fieldPrivacy, app.wizard.focus)

	require.True(t, app.wizard.ctrl.Draft().PrivacyConfig.RandomizeID)
	send(app, keySpace)
	assert.False(t, app.wizard.ctrl.Draft().PrivacyConfig.RandomizeID)
}

func TestWizard_ManualPath(t *testing.T) {
	p := &stubProvider{res: suggest.Ok(testSuggestion())}
	env := newTestEnv(t, p)
	app := listingApp(t, env)

	send(app, keyTab)
	require.Equal(t, wizard.StateConfiguring, app.wizard.ctrl.State())
	require.True(t, app.wizard.ctrl.Draft().Manual)
	assert.False(t, app.wizard.ctrl.CanSubmit())

	send(app, keyRunes("MyBank"))
	assert.Equal(t, "MyBank", app.wizard.ctrl.Draft().AppName)
	assert.Zero(t, p.calls)

	closed := collect[wizardClosedMsg](t, send(app, keySave))
	require.Len(t, closed, 1)
	require.NotNil(t, closed[0].profile)
	assert.Equal(t, "MyBank", closed[0].profile.Name)
	assert.Equal(t, "MyBank", closed[0].profile.AppName)
}

func TestWizard_SaveFailureReported(t *testing.T) {
	env := newTestEnv(t, &stubProvider{res: suggest.Ok(testSuggestion())})
	env.store.FailPut = errors.New("disk full")

	app := NewApp(env.deps)
	send(app, openWizardMsg{})
	send(app, keyEnter)
	send(app, selectApp(t, app))

	closed := collect[wizardClosedMsg](t, send(app, keySave))
	require.Len(t, closed, 1)
	require.Error(t, closed[0].err)

	send(app, closed[0])
	assert.Equal(t, ScreenDashboard, app.Screen())
	assert.Contains(t, app.View(), "disk full")
	assert.Equal(t, 0, env.deps.Profiles.Len())
}

func TestSession_BootIgnoresKeys(t *testing.T) {
	env := newTestEnv(t, nil)
	p := model.Profile{
		ID:         "a",
		Name:       "Bank",
		AppName:    "Dana",
		ThemeColor: model.ThemeBlue,
		DeviceIdentity: &model.DeviceIdentity{
			IMEI:         "861234567890123",
			Model:        "Galaxy S24 Ultra",
			Manufacturer: "Samsung",
			Location:     model.Location{City: "New York, US"},
		},
	}

	app := NewSessionApp(env.deps, p)
	assert.Contains(t, app.View(), "Spoofing IMEI...")
	assert.Nil(t, send(app, keyRunes("q")))

	// a timer firing early keeps booting and re-arms
	env.clock.now = env.clock.now.Add(session.BootDuration / 2)
	assert.NotNil(t, send(app, bootDoneMsg{sess: app.session.sess}))
	assert.Equal(t, session.PhaseBooting, app.session.sess.Phase())

	env.clock.now = env.clock.now.Add(session.BootDuration)
	send(app, bootDoneMsg{sess: app.session.sess})
	require.Equal(t, session.PhaseRunning, app.session.sess.Phase())

	view := app.View()
	assert.Contains(t, view, "861234567890123")
	assert.Contains(t, view, "This application believes it is running on a Samsung Galaxy S24 Ultra in New York, US.")

	cmd := send(app, keyRunes("q"))
	require.NotNil(t, cmd)
	quit := send(app, cmd())
	require.NotNil(t, quit)
	assert.IsType(t, tea.QuitMsg{}, quit())
}

func TestSession_StaleTimerIgnored(t *testing.T) {
	env := newTestEnv(t, nil)
	app := NewSessionApp(env.deps, model.Profile{ID: "a", Name: "X", AppName: "Dana"})

	env.clock.now = env.clock.now.Add(session.BootDuration)
	assert.Nil(t, send(app, bootDoneMsg{sess: session.Start(model.Profile{}, env.clock.now)}))
	assert.Equal(t, session.PhaseBooting, app.session.sess.Phase())
	assert.Contains(t, app.View(), "Booting")
}

func TestSettings_TogglePersists(t *testing.T) {
	env := newTestEnv(t, nil)
	app := NewSettingsApp(env.deps)

	assert.Contains(t, app.View(), "Auto-Randomize IMEI")

	send(app, keySpace)
	assert.False(t, env.deps.Settings.Settings().AutoRandomize)

	send(app, tea.KeyMsg{Type: tea.KeyDown})
	send(app, tea.KeyMsg{Type: tea.KeyDown})
	send(app, tea.KeyMsg{Type: tea.KeyDown})
	send(app, keyEnter)
	assert.True(t, env.deps.Settings.Settings().DarkMode)

	raw, err := env.store.Get(store.SlotSettings)
	require.NoError(t, err)
	assert.JSONEq(t, `{"autoRandomize":false,"autoSpoof":true,"hideRootGlobally":true,"darkMode":true}`, string(raw))

	cmd := send(app, keyEsc)
	require.NotNil(t, cmd)
	quit := send(app, cmd())
	require.NotNil(t, quit)
	assert.IsType(t, tea.QuitMsg{}, quit())
}

func TestSettings_SaveFailureKeepsValue(t *testing.T) {
	env := newTestEnv(t, nil)
	env.store.FailPut = errors.New("disk full")

	app := NewSettingsApp(env.deps)
	send(app, keySpace)

	assert.True(t, env.deps.Settings.Settings().AutoRandomize)
	assert.Contains(t, app.View(), "disk full")
}
