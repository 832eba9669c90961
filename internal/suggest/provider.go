package suggest

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/vanagroupofficial-ai/VANACLONE/internal/monitor"
)

// NewProvider returns the Gemini provider when an API key is set and the
// local fallback otherwise.
func NewProvider(opts Options) Provider {
	if strings.TrimSpace(opts.APIKey) == "" {
		opts = opts.withDefaults()
		opts.Logger.Info("no API key configured, suggestions use local fallback data")

		return NewFallback(nil)
	}

	return NewGemini(opts)
}

// Instrumented records the outcome and latency of every call and logs
// failures.
type Instrumented struct {
	next    Provider
	metrics *monitor.Metrics
	logger  *slog.Logger
}

// Instrument wraps p. A nil metrics records nothing.
func Instrument(p Provider, metrics *monitor.Metrics, logger *slog.Logger) *Instrumented {
	if logger == nil {
		logger = slog.Default()
	}

	return &Instrumented{next: p, metrics: metrics, logger: logger}
}

func (i *Instrumented) Name() string { return i.next.Name() }

func (i *Instrumented) Suggest(ctx context.Context, appName string) Result {
	start := time.Now()
	res := i.next.Suggest(ctx, appName)

	i.metrics.Suggestion(i.next.Name(), res.IsOk(), time.Since(start))

	if err := res.Err(); err != nil {
		i.logger.Warn("suggestion failed",
			"provider", i.next.Name(),
			"app", appName,
			"op", err.Op,
			"error", err.Err,
		)
	}

	return res
}
