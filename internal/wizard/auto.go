package wizard

import (
	"context"
	"time"

	"github.com/vanagroupofficial-ai/VANACLONE/internal/model"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/suggest"
)

// Input describes a wizard run without a user in front of it.
type Input struct {
	AppName string

	// Name overrides the proposed clone name when not blank
	Name string

	// Manual skips the catalog and the automatic suggestion
	Manual bool

	// Suggest asks the provider even on the manual path
	Suggest bool

	// Privacy flags applied after the suggestion, so they win over it
	Privacy map[model.PrivacyFlag]bool
}

// Outcome is the result of Run. SuggestionErr is set when a suggestion was
// requested and failed; the profile is still created from defaults.
type Outcome struct {
	Profile       model.Profile
	Suggestion    *model.Suggestion
	SuggestionErr *suggest.SuggestionError
}

// Run drives a fresh controller from Scanning to Submitted.
func Run(ctx context.Context, p suggest.Provider, in Input, now time.Time, opts ...Option) (Outcome, error) {
	c := New(opts...)
	c.SkipScan()

	var req *Request

	if in.Manual {
		if err := c.SelectManual(); err != nil {
			return Outcome{}, err
		}

		if err := c.SetAppName(in.AppName); err != nil {
			return Outcome{}, err
		}

		if in.Suggest {
			r, err := c.RequestSuggestion()
			if err != nil {
				return Outcome{}, err
			}

			req = r
		}
	} else {
		r, err := c.Select(in.AppName)
		if err != nil {
			return Outcome{}, err
		}

		req = r
	}

	var out Outcome

	switch {
	case req == nil:
	case in.Suggest && p != nil:
		res := req.Run(ctx, p)
		c.Resolve(req, res)

		if s, ok := res.Suggestion(); ok {
			out.Suggestion = &s
		} else {
			out.SuggestionErr = res.Err()
		}
	default:
		c.SkipSuggestion()
	}

	if in.Name != "" {
		if err := c.SetCustomName(in.Name); err != nil {
			return Outcome{}, err
		}
	}

	for _, flag := range model.PrivacyFlags() {
		if on, ok := in.Privacy[flag]; ok {
			if err := c.SetPrivacy(flag, on); err != nil {
				return Outcome{}, err
			}
		}
	}

	profile, err := c.Submit(now)
	if err != nil {
		return Outcome{}, err
	}

	out.Profile = profile

	return out, nil
}
