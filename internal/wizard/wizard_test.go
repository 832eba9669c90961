package wizard

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/model"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/service"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/store"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/suggest"
)

var testNow = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func testSuggestion() model.Suggestion {
	return model.Suggestion{
		Description: "Private photo sharing",
		ThemeColor:  "Pink",
		Tags:        []string{"Social", "Photos", "social"},
		PrivacyConfig: model.PrivacyConfig{
			RandomizeID:   true,
			BlockTrackers: true,
		},
		SecurityNote: "Tracker SDKs blocked.",
		DeviceIdentity: model.DeviceIdentity{
			IMEI:           "356938035643809",
			Model:          "Pixel 8",
			Manufacturer:   "Google",
			AndroidVersion: "14",
			Location:       model.Location{Lat: 51.5074, Lng: -0.1278, City: "London"},
		},
	}
}

func listing(t *testing.T, opts ...Option) *Controller {
	t.Helper()

	c := New(append([]Option{WithIDFunc(func() string { return "fixed-id" })}, opts...)...)
	require.True(t, c.SkipScan())
	require.Equal(t, StateListing, c.State())

	return c
}

type stubProvider struct {
	res   suggest.Result
	calls int
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Suggest(context.Context, string) suggest.Result {
	s.calls++
	return s.res
}

func TestNew_StartsScanning(t *testing.T) {
	c := New()
	assert.Equal(t, StateScanning, c.State())
	assert.Zero(t, c.Scanned())
	assert.Zero(t, c.Progress())
}

func TestTick_MonotonicAndClamped(t *testing.T) {
	c := New(WithRand(rand.New(rand.NewPCG(3, 4))))

	prev := 0
	for i := 0; c.State() == StateScanning; i++ {
		require.Less(t, i, 10_000, "scan never finished")

		c.TickRandom()
		require.GreaterOrEqual(t, c.Scanned(), prev)
		require.LessOrEqual(t, c.Scanned(), ScanTarget)

		prev = c.Scanned()
	}

	assert.Equal(t, StateListing, c.State())
	assert.Equal(t, ScanTarget, c.Scanned())
	assert.InDelta(t, 1.0, c.Progress(), 1e-9)
}

func TestTick_ReachesListingExactlyAtTarget(t *testing.T) {
	c := New()

	assert.False(t, c.Tick(141))
	assert.Equal(t, StateScanning, c.State())

	assert.True(t, c.Tick(9))
	assert.Equal(t, ScanTarget, c.Scanned())
	assert.Equal(t, StateListing, c.State())

	assert.False(t, c.Tick(5), "ticks after the scan are ignored")
	assert.Equal(t, ScanTarget, c.Scanned())
}

func TestTick_NegativeStepIgnored(t *testing.T) {
	c := New()
	c.Tick(5)
	c.Tick(-3)
	assert.Equal(t, 5, c.Scanned())
}

func TestSelect_StartsSuggestion(t *testing.T) {
	c := listing(t)

	req, err := c.Select("Instagram")
	require.NoError(t, err)
	require.NotNil(t, req)

	assert.Equal(t, "Instagram", req.AppName)
	assert.Equal(t, StateConfiguring, c.State())
	assert.True(t, c.Pending())
	assert.False(t, c.CanSubmit())
	assert.Equal(t, "Instagram (Clone)", c.Draft().CustomName)

	_, err = c.Submit(testNow)
	require.ErrorIs(t, err, ErrSubmitDisabled)
}

func TestResolve_SuccessPopulatesDraft(t *testing.T) {
	c := listing(t)

	req, err := c.Select("Instagram")
	require.NoError(t, err)

	require.True(t, c.Resolve(req, suggest.Ok(testSuggestion())))

	d := c.Draft()
	assert.False(t, c.Pending())
	assert.True(t, c.CanSubmit())
	assert.Equal(t, "Private photo sharing", d.Description)
	assert.Equal(t, model.ThemeColor("pink"), d.ThemeColor)
	assert.Equal(t, []string{"Social", "Photos"}, d.Tags)
	assert.True(t, d.PrivacyConfig.RandomizeID)
	assert.False(t, d.PrivacyConfig.HideRoot)
	assert.Equal(t, "Tracker SDKs blocked.", d.SecurityNote)
	require.NotNil(t, d.DeviceIdentity)
	assert.Equal(t, "London", d.DeviceIdentity.Location.City)
	assert.Equal(t, "Instagram (Clone)", d.CustomName)
}

func TestResolve_FailureKeepsDefaults(t *testing.T) {
	c := listing(t)

	req, err := c.Select("Telegram")
	require.NoError(t, err)

	applied := c.Resolve(req, suggest.Fail(&suggest.SuggestionError{Op: "request", AppName: "Telegram", Err: errors.New("offline")}))
	require.True(t, applied)

	d := c.Draft()
	assert.False(t, c.Pending())
	assert.True(t, c.CanSubmit())
	assert.Equal(t, model.PrivacyConfig{}, d.PrivacyConfig)
	assert.Nil(t, d.DeviceIdentity)
	require.NotNil(t, c.LastError())
	assert.Equal(t, "request", c.LastError().Op)
}

func TestResolve_EmptyIdentityLeftUnset(t *testing.T) {
	c := listing(t)

	req, err := c.Select("Instagram")
	require.NoError(t, err)

	s := testSuggestion()
	s.DeviceIdentity = model.DeviceIdentity{}
	require.True(t, c.Resolve(req, suggest.Ok(s)))

	assert.Equal(t, "Private photo sharing", c.Draft().Description)
	assert.Nil(t, c.Draft().DeviceIdentity)

	p, err := c.Submit(testNow)
	require.NoError(t, err)
	assert.Nil(t, p.DeviceIdentity)
}

func TestResolve_StaleResultIgnored(t *testing.T) {
	c := listing(t)

	first, err := c.Select("WhatsApp")
	require.NoError(t, err)
	require.NoError(t, c.Back())

	second, err := c.Select("Dana")
	require.NoError(t, err)

	assert.False(t, c.Resolve(first, suggest.Ok(testSuggestion())))
	assert.True(t, c.Pending())
	assert.Nil(t, c.Draft().DeviceIdentity)

	assert.True(t, c.Resolve(second, suggest.Ok(testSuggestion())))
	assert.False(t, c.Pending())
	assert.Equal(t, "Dana", c.Draft().AppName)

	assert.False(t, c.Resolve(second, suggest.Ok(testSuggestion())), "a request resolves once")
}

func TestResolve_AfterCancelIgnored(t *testing.T) {
	c := listing(t)

	req, err := c.Select("Shopee")
	require.NoError(t, err)
	require.NoError(t, c.Cancel())

	assert.False(t, c.Resolve(req, suggest.Ok(testSuggestion())))
	assert.Equal(t, StateCancelled, c.State())
}

func TestBack_ClearsIdentity(t *testing.T) {
	c := listing(t)

	req, err := c.Select("Gojek")
	require.NoError(t, err)
	require.True(t, c.Resolve(req, suggest.Ok(testSuggestion())))
	require.NotNil(t, c.Draft().DeviceIdentity)

	require.NoError(t, c.Back())
	assert.Equal(t, StateListing, c.State())
	assert.Nil(t, c.Draft().DeviceIdentity)
	assert.Empty(t, c.Draft().AppName)
	assert.False(t, c.Pending())

	req, err = c.Select("Gojek")
	require.NoError(t, err)
	assert.True(t, c.Pending(), "re-entering makes a fresh request")
	assert.NotNil(t, req)
}

func TestCancel_FromEveryActiveState(t *testing.T) {
	scanning := New()
	require.NoError(t, scanning.Cancel())
	assert.Equal(t, StateCancelled, scanning.State())

	listed := listing(t)
	require.NoError(t, listed.Cancel())
	assert.Equal(t, StateCancelled, listed.State())

	configuring := listing(t)
	_, err := configuring.Select("TikTok")
	require.NoError(t, err)
	require.NoError(t, configuring.Cancel())
	assert.Equal(t, StateCancelled, configuring.State())

	_, ok := configuring.Profile()
	assert.False(t, ok)

	require.ErrorIs(t, configuring.Cancel(), ErrInvalidTransition)
}

func TestSubmit_AssemblesProfile(t *testing.T) {
	c := listing(t)

	req, err := c.Select("Instagram")
	require.NoError(t, err)
	require.True(t, c.Resolve(req, suggest.Ok(testSuggestion())))
	require.NoError(t, c.SetCustomName("Clone X"))
	require.NoError(t, c.TogglePrivacy(model.FlagHideRoot))

	p, err := c.Submit(testNow)
	require.NoError(t, err)

	assert.Equal(t, "fixed-id", p.ID)
	assert.Equal(t, "Clone X", p.Name)
	assert.Equal(t, "Instagram", p.AppName)
	assert.Equal(t, model.DefaultIcon, p.Icon)
	assert.Equal(t, testNow.UnixMilli(), p.CreatedAt.Millis())
	assert.Equal(t, testNow.UnixMilli(), p.Stats.LastAccessed.Millis())
	assert.Zero(t, p.Stats.ItemsCount)
	assert.Equal(t, []string{"Social", "Photos"}, p.Tags)
	assert.True(t, p.PrivacyConfig.HideRoot)
	require.NotNil(t, p.DeviceIdentity)
	assert.Equal(t, "356938035643809", p.DeviceIdentity.IMEI)

	assert.Equal(t, StateSubmitted, c.State())

	stored, ok := c.Profile()
	require.True(t, ok)
	assert.Equal(t, p.ID, stored.ID)

	_, err = c.Submit(testNow)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSubmit_DefaultsWithoutSuggestion(t *testing.T) {
	c := listing(t)

	req, err := c.Select("Free Fire")
	require.NoError(t, err)
	c.Resolve(req, suggest.Fail(&suggest.SuggestionError{Op: "request", Err: errors.New("down")}))
	require.NoError(t, c.SetCustomName("   "))

	p, err := c.Submit(testNow)
	require.NoError(t, err)

	assert.Equal(t, "Free Fire", p.Name)
	assert.Equal(t, []string{model.DefaultTag}, p.Tags)
	assert.Equal(t, model.DefaultTheme, p.ThemeColor)
	assert.Nil(t, p.DeviceIdentity)
}

func TestUniqueIDs(t *testing.T) {
	seen := map[string]bool{}

	for range 50 {
		c := New()
		c.SkipScan()

		req, err := c.Select("Dana")
		require.NoError(t, err)
		c.Resolve(req, suggest.Ok(testSuggestion()))

		p, err := c.Submit(testNow)
		require.NoError(t, err)
		require.False(t, seen[p.ID])

		seen[p.ID] = true
	}
}

func TestManualPath(t *testing.T) {
	c := listing(t)

	require.NoError(t, c.SelectManual())
	assert.Equal(t, StateConfiguring, c.State())
	assert.False(t, c.Pending())
	assert.False(t, c.CanSubmit(), "blank app name")

	_, err := c.Submit(testNow)
	require.ErrorIs(t, err, ErrSubmitDisabled)

	require.NoError(t, c.SetAppName("  Signal "))
	assert.True(t, c.CanSubmit())

	req, err := c.RequestSuggestion()
	require.NoError(t, err)
	assert.Equal(t, "Signal", req.AppName)
	assert.False(t, c.CanSubmit())

	c.Resolve(req, suggest.Ok(testSuggestion()))

	p, err := c.Submit(testNow)
	require.NoError(t, err)
	assert.Equal(t, "Signal", p.AppName)
	assert.Equal(t, "Signal (Clone)", p.Name)
}

func TestSetAppName_OnlyOnManualPath(t *testing.T) {
	c := listing(t)

	_, err := c.Select("WhatsApp")
	require.NoError(t, err)
	require.ErrorIs(t, c.SetAppName("Other"), ErrInvalidTransition)
}

func TestIllegalTransitions(t *testing.T) {
	c := New()

	_, err := c.Select("WhatsApp")
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.ErrorIs(t, c.SelectManual(), ErrInvalidTransition)
	require.ErrorIs(t, c.Back(), ErrInvalidTransition)
	require.ErrorIs(t, c.SetCustomName("x"), ErrInvalidTransition)
	require.ErrorIs(t, c.SetPrivacy(model.FlagHideRoot, true), ErrInvalidTransition)

	_, err = c.RequestSuggestion()
	require.ErrorIs(t, err, ErrInvalidTransition)

	_, err = c.Submit(testNow)
	require.ErrorIs(t, err, ErrInvalidTransition)

	c.SkipScan()

	_, err = c.Select("   ")
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StateListing, c.State())
}

func TestSearch(t *testing.T) {
	assert.Len(t, Catalog(), 12)
	assert.Len(t, Search(""), 12)

	games := Search("GAME")
	require.Len(t, games, 3)
	assert.Equal(t, "Mobile Legends", games[0].Name)

	byPackage := Search("org.telegram")
	require.Len(t, byPackage, 1)
	assert.Equal(t, "Telegram", byPackage[0].Name)

	assert.Empty(t, Search("nonexistent"))

	app, ok := Lookup("com.whatsapp")
	require.True(t, ok)
	assert.Equal(t, "WhatsApp", app.Name)
}

func TestRun(t *testing.T) {
	p := &stubProvider{res: suggest.Ok(testSuggestion())}

	out, err := Run(context.Background(), p, Input{
		AppName: "Instagram",
		Name:    "Clone X",
		Suggest: true,
		Privacy: map[model.PrivacyFlag]bool{model.FlagSpoofLocation: true},
	}, testNow)
	require.NoError(t, err)

	assert.Equal(t, 1, p.calls)
	assert.Equal(t, "Clone X", out.Profile.Name)
	assert.True(t, out.Profile.PrivacyConfig.SpoofLocation)
	assert.True(t, out.Profile.PrivacyConfig.RandomizeID)
	require.NotNil(t, out.Suggestion)
	assert.Nil(t, out.SuggestionErr)
}

func TestRun_NoSuggest(t *testing.T) {
	p := &stubProvider{res: suggest.Ok(testSuggestion())}

	out, err := Run(context.Background(), p, Input{AppName: "Dana"}, testNow)
	require.NoError(t, err)

	assert.Zero(t, p.calls)
	assert.Equal(t, "Dana (Clone)", out.Profile.Name)
	assert.Equal(t, []string{model.DefaultTag}, out.Profile.Tags)
	assert.Nil(t, out.Profile.DeviceIdentity)
}

func TestRun_SuggestionFailureStillCreates(t *testing.T) {
	p := &stubProvider{res: suggest.Fail(&suggest.SuggestionError{Op: "request", Err: errors.New("503")})}

	out, err := Run(context.Background(), p, Input{AppName: "Dana", Manual: true, Suggest: true}, testNow)
	require.NoError(t, err)

	assert.Equal(t, "Dana", out.Profile.Name)
	require.NotNil(t, out.SuggestionErr)
	assert.Nil(t, out.Suggestion)
}

func TestRun_IncompleteRemoteSuggestion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{}"}]}}]}`))
	}))
	t.Cleanup(srv.Close)

	g := suggest.NewGemini(suggest.Options{APIKey: "test-key", BaseURL: srv.URL, Timeout: 5 * time.Second})

	out, err := Run(context.Background(), g, Input{AppName: "Instagram", Suggest: true}, testNow)
	require.NoError(t, err)

	require.NotNil(t, out.SuggestionErr)
	require.ErrorIs(t, out.SuggestionErr, suggest.ErrIncomplete)
	assert.Nil(t, out.Suggestion)
	assert.Nil(t, out.Profile.DeviceIdentity)
	assert.Equal(t, model.PrivacyConfig{}, out.Profile.PrivacyConfig)
}

func TestRun_BlankAppName(t *testing.T) {
	_, err := Run(context.Background(), nil, Input{AppName: " "}, testNow)
	require.ErrorIs(t, err, ErrInvalidTransition)

	_, err = Run(context.Background(), nil, Input{AppName: "", Manual: true}, testNow)
	require.ErrorIs(t, err, ErrSubmitDisabled)
}

func TestSubmit_WithoutSuggestionPersists(t *testing.T) {
	c := listing(t)

	_, err := c.Select("Instagram")
	require.NoError(t, err)
	c.SkipSuggestion()

	want := model.PrivacyConfig{
		RandomizeID:   true,
		SpoofLocation: false,
		IncognitoMode: false,
		BlockTrackers: false,
		HideRoot:      true,
	}

	for _, flag := range model.PrivacyFlags() {
		require.NoError(t, c.SetPrivacy(flag, false))
	}
	require.NoError(t, c.SetPrivacy(model.FlagRandomizeID, true))
	require.NoError(t, c.SetPrivacy(model.FlagHideRoot, true))

	p, err := c.Submit(testNow)
	require.NoError(t, err)

	st := store.NewMemory()
	require.NoError(t, service.OpenProfileStore(st).Add(p))

	loaded := service.NewProfileStore(st).Load()
	require.Len(t, loaded, 1)

	got := loaded[0]
	assert.Equal(t, "fixed-id", got.ID)
	assert.Equal(t, "Instagram", got.AppName)
	assert.Equal(t, "Instagram (Clone)", got.Name)
	assert.Equal(t, want, got.PrivacyConfig)
	assert.Equal(t, []string{model.DefaultTag}, got.Tags)
	assert.Nil(t, got.DeviceIdentity)
	assert.True(t, got.CreatedAt.Equal(model.NewTimestamp(testNow)))
}
