// Package suggest produces configuration suggestions for a new clone: a
// description, theme, tags, privacy toggles and a fake device identity.
//
// Two providers exist. Gemini asks the Google generative language API and is
// used whenever an API key is configured. Fallback returns a fixed bundle
// with a random IMEI and never touches the network.
package suggest

import (
	"context"
	"strings"

	"github.com/vanagroupofficial-ai/VANACLONE/internal/model"
)

// Provider turns an application name into a Suggestion.
type Provider interface {
	// Suggest never panics and never returns a nil error inside a failed
	// Result. A blank appName fails without any network call.
	Suggest(ctx context.Context, appName string) Result

	// Name identifies the provider in logs and metrics.
	Name() string
}

// Result is either a Suggestion or a *SuggestionError, never both.
type Result struct {
	suggestion model.Suggestion
	err        *SuggestionError
}

// Ok wraps a successful suggestion.
func Ok(s model.Suggestion) Result {
	return Result{suggestion: s}
}

// Fail wraps a failure.
func Fail(err *SuggestionError) Result {
	if err == nil {
		err = &SuggestionError{Op: "suggest", Err: errUnknown}
	}

	return Result{err: err}
}

func (r Result) IsOk() bool { return r.err == nil }

// Suggestion returns the suggestion and true on success.
func (r Result) Suggestion() (model.Suggestion, bool) {
	if r.err != nil {
		return model.Suggestion{}, false
	}

	return r.suggestion, true
}

// Err returns the failure, or nil on success.
func (r Result) Err() *SuggestionError {
	return r.err
}

// Unwrap converts the result to the usual Go pair.
func (r Result) Unwrap() (model.Suggestion, error) {
	if r.err != nil {
		return model.Suggestion{}, r.err
	}

	return r.suggestion, nil
}

func blank(appName string) bool {
	return strings.TrimSpace(appName) == ""
}

func blankAppResult() Result {
	return Fail(&SuggestionError{Op: "validate", Err: ErrEmptyAppName})
}

// Normalize lower-cases the theme, falls back to the default palette entry
// for unknown colours and tidies the tags.
func Normalize(s model.Suggestion) model.Suggestion {
	s.ThemeColor = string(model.ParseTheme(s.ThemeColor))
	s.Tags = model.NormalizeTags(s.Tags)
	s.Description = strings.TrimSpace(s.Description)
	s.SecurityNote = strings.TrimSpace(s.SecurityNote)

	return s
}
