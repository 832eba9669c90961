package suggest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/encoding"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/model"
	"golang.org/x/time/rate"
)

const (
	DefaultModel   = "gemini-2.5-flash"
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultTimeout = 30 * time.Second

	apiKeyHeader = "x-goog-api-key"
	maxErrorBody = 512
)

// Options configures the remote provider.
type Options struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration

	// RateLimit is the number of requests per second; 0 means unlimited
	RateLimit float64

	// Retries is how many times a transient failure is retried
	Retries      int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Model == "" {
		o.Model = DefaultModel
	}

	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}

	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}

	if o.Retries < 0 {
		o.Retries = 0
	}

	if o.RetryWaitMin <= 0 {
		o.RetryWaitMin = 500 * time.Millisecond
	}

	if o.RetryWaitMax < o.RetryWaitMin {
		o.RetryWaitMax = 5 * time.Second
	}

	if o.Logger == nil {
		o.Logger = slog.Default()
	}

	o.BaseURL = strings.TrimRight(o.BaseURL, "/")

	return o
}

// Gemini asks the generateContent endpoint for a suggestion.
type Gemini struct {
	client  *resty.Client
	limiter *rate.Limiter
	apiKey  string
	model   string
	baseURL string
	logger  *slog.Logger
}

// NewGemini creates the remote provider. The HTTP client retries transient
// transport failures and 5xx/429 answers on its own.
func NewGemini(opts Options) *Gemini {
	opts = opts.withDefaults()

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = opts.Retries
	retryClient.RetryWaitMin = opts.RetryWaitMin
	retryClient.RetryWaitMax = opts.RetryWaitMax
	retryClient.Logger = opts.Logger
	retryClient.ErrorHandler = lastResponse

	client := resty.NewWithClient(retryClient.StandardClient()).
		SetTimeout(opts.Timeout).
		SetBaseURL(opts.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "vanaclone")

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), max(1, int(opts.RateLimit)))
	}

	return &Gemini{
		client:  client,
		limiter: limiter,
		apiKey:  opts.APIKey,
		model:   opts.Model,
		baseURL: opts.BaseURL,
		logger:  opts.Logger,
	}
}

func (g *Gemini) Name() string { return "gemini" }

// Model returns the configured model name.
func (g *Gemini) Model() string { return g.model }

func (g *Gemini) Suggest(ctx context.Context, appName string) Result {
	if blank(appName) {
		return blankAppResult()
	}

	fail := func(op string, err error) Result {
		return Fail(&SuggestionError{Op: op, AppName: appName, Err: err})
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return fail("wait", err)
	}

	var out generateResponse

	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader(apiKeyHeader, g.apiKey).
		SetBody(newGenerateRequest(appName)).
		SetResult(&out).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", g.model))
	if err != nil {
		return fail("request", err)
	}

	if resp.IsError() {
		return fail("request", &StatusError{
			StatusCode: resp.StatusCode(),
			Body:       truncate(strings.TrimSpace(resp.String()), maxErrorBody),
		})
	}

	text := out.text()
	if text == "" {
		return fail("decode", ErrNoResponse)
	}

	parsed, err := encoding.ParseJSON[model.Suggestion]([]byte(text))
	if err != nil {
		return fail("decode", err)
	}

	if err := checkComplete(parsed); err != nil {
		return fail("decode", err)
	}

	g.logger.Debug("suggestion received", "app", appName, "model", g.model, "status", resp.StatusCode())

	return Ok(*parsed)
}

// checkComplete rejects answers that decode but carry nothing to apply,
// such as null or {}.
func checkComplete(s *model.Suggestion) error {
	if strings.TrimSpace(s.Description) == "" {
		return fmt.Errorf("%w: missing description", ErrIncomplete)
	}

	if !s.DeviceIdentity.ValidIMEI() {
		return fmt.Errorf("%w: device identity needs a 15-digit imei", ErrIncomplete)
	}

	if strings.TrimSpace(s.DeviceIdentity.Model) == "" {
		return fmt.Errorf("%w: missing device model", ErrIncomplete)
	}

	return nil
}

// lastResponse hands the final answer back once retries are exhausted so the
// status code reaches the caller instead of a generic "giving up" error.
func lastResponse(resp *http.Response, err error, _ int) (*http.Response, error) {
	if resp != nil {
		return resp, nil
	}

	return nil, err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n] + "..."
}

// Prompt builds the instruction sent for appName.
func Prompt(appName string) string {
	return fmt.Sprintf(`I am cloning an Android application named %q.
1. Suggest a configuration for this clone to ensure it is safe and undetectable.
2. Generate a realistic FAKE DEVICE IDENTITY to spoof. This must include a valid-looking 15-digit IMEI, a popular Android device model (e.g. Samsung S23, Pixel 8, Xiaomi 13), a manufacturer, and a realistic Android version (11-14).
3. Pick a random major city for location spoofing (lat/lng/city).

Provide the response in JSON.`, appName)
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType"`
	ResponseSchema   *schema `json:"responseSchema"`
}

type schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*schema `json:"properties,omitempty"`
	Items       *schema            `json:"items,omitempty"`
}

func newGenerateRequest(appName string) generateRequest {
	return generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: Prompt(appName)}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   suggestionSchema(),
		},
	}
}

// suggestionSchema mirrors model.Suggestion field for field.
func suggestionSchema() *schema {
	str := func() *schema { return &schema{Type: "STRING"} }
	boolean := func() *schema { return &schema{Type: "BOOLEAN"} }
	num := func() *schema { return &schema{Type: "NUMBER"} }

	privacy := &schema{Type: "OBJECT", Properties: map[string]*schema{}}
	for _, f := range model.PrivacyFlags() {
		privacy.Properties[string(f)] = boolean()
	}

	return &schema{
		Type: "OBJECT",
		Properties: map[string]*schema{
			"description":   str(),
			"themeColor":    str(),
			"securityNote":  str(),
			"tags":          {Type: "ARRAY", Items: str()},
			"privacyConfig": privacy,
			"deviceIdentity": {
				Type: "OBJECT",
				Properties: map[string]*schema{
					"imei":           {Type: "STRING", Description: "15 digit numeric string"},
					"model":          str(),
					"manufacturer":   str(),
					"androidVersion": str(),
					"location": {
						Type: "OBJECT",
						Properties: map[string]*schema{
							"lat":  num(),
							"lng":  num(),
							"city": str(),
						},
					},
				},
			},
		},
	}
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
}

// text joins the text parts of the first candidate.
func (r generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}

	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}

	return strings.TrimSpace(b.String())
}

// IsTransient reports whether err is worth retrying at the user level.
func IsTransient(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode == http.StatusTooManyRequests || se.StatusCode >= 500
	}

	return errors.Is(err, context.DeadlineExceeded)
}
