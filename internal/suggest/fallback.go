package suggest

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/vanagroupofficial-ai/VANACLONE/internal/model"
)

const (
	fallbackNote  = "Advanced device fingerprinting protection enabled."
	imeiPrefix    = "86"
	imeiRandomLen = 12
)

// Fallback answers locally with a fixed suggestion and a random IMEI.
type Fallback struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewFallback creates a Fallback. A nil rng uses a randomly seeded source.
func NewFallback(rng *rand.Rand) *Fallback {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return &Fallback{rng: rng}
}

func (f *Fallback) Name() string { return "fallback" }

func (f *Fallback) Suggest(ctx context.Context, appName string) Result {
	if blank(appName) {
		return blankAppResult()
	}

	if err := ctx.Err(); err != nil {
		return Fail(&SuggestionError{Op: "fallback", AppName: appName, Err: err})
	}

	return Ok(model.Suggestion{
		Description:   fmt.Sprintf("Secure clone of %s.", appName),
		ThemeColor:    string(model.DefaultTheme),
		Tags:          []string{"Social", "Privacy"},
		PrivacyConfig: model.AllPrivacy(),
		SecurityNote:  fallbackNote,
		DeviceIdentity: model.DeviceIdentity{
			IMEI:           f.imei(),
			Model:          "Galaxy S24 Ultra",
			Manufacturer:   "Samsung",
			AndroidVersion: "14.0",
			Location: model.Location{
				Lat:  40.7128,
				Lng:  -74.0060,
				City: "New York, US",
			},
		},
	})
}

// imei returns "86" followed by exactly twelve digits.
func (f *Fallback) imei() string {
	f.mu.Lock()
	n := f.rng.Int64N(1_000_000_000_000)
	f.mu.Unlock()

	return fmt.Sprintf("%s%0*d", imeiPrefix, imeiRandomLen, n)
}
