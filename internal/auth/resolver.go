// Package auth resolves service credentials from several sources in
// priority order.
package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoKey is returned when no source provides a key.
var ErrNoKey = errors.New("key required")

// Source indicates where a key was found
type Source string

const (
	SourceFlag   Source = "flag"
	SourceEnv    Source = "env"
	SourceConfig Source = "config"
	SourceNone   Source = "none"
)

// Result contains the resolved key and its source
type Result struct {
	Key    string
	Source Source
	Name   string // The specific source name (e.g., "GEMINI_API_KEY", "config")
}

// KeyProvider attempts to provide a key. It returns an empty key when its
// source has none, and an error only for unexpected failures.
type KeyProvider func() (key string, sourceName string, err error)

// Resolver resolves keys from multiple sources in priority order
type Resolver struct {
	providers   []KeyProvider
	serviceName string
	helpMessage string
}

// NewResolver creates a new key resolver for a service
func NewResolver(serviceName string) *Resolver {
	return &Resolver{serviceName: serviceName}
}

// WithFlagValue adds a flag value as a source.
func (r *Resolver) WithFlagValue(value string) *Resolver {
	return r.WithProvider(func() (string, string, error) {
		return strings.TrimSpace(value), "flag", nil
	})
}

// WithEnv adds an environment variable as a source. Blank values are
// treated as unset.
func (r *Resolver) WithEnv(envVar string) *Resolver {
	return r.WithProvider(func() (string, string, error) {
		return strings.TrimSpace(os.Getenv(envVar)), envVar, nil
	})
}

// WithEnvs adds multiple environment variables, checked in order
func (r *Resolver) WithEnvs(envVars ...string) *Resolver {
	for _, envVar := range envVars {
		r.WithEnv(envVar)
	}

	return r
}

// WithConfig adds a value read from the config file.
func (r *Resolver) WithConfig(value string) *Resolver {
	return r.WithProvider(func() (string, string, error) {
		return strings.TrimSpace(value), "config", nil
	})
}

// WithProvider adds a custom key provider
func (r *Resolver) WithProvider(provider KeyProvider) *Resolver {
	r.providers = append(r.providers, provider)
	return r
}

// WithHelpMessage sets the help message shown when no key is found
func (r *Resolver) WithHelpMessage(msg string) *Resolver {
	r.helpMessage = msg
	return r
}

// Resolve returns the first key found, in the order the sources were added.
func (r *Resolver) Resolve() (Result, error) {
	for _, provider := range r.providers {
		key, sourceName, err := provider()
		if err != nil {
			return Result{Source: SourceNone}, fmt.Errorf("%s key provider %s: %w", r.serviceName, sourceName, err)
		}

		if key != "" {
			return Result{
				Key:    key,
				Source: categorizeSource(sourceName),
				Name:   sourceName,
			}, nil
		}
	}

	if r.helpMessage != "" {
		return Result{Source: SourceNone}, fmt.Errorf("%s %w\n\n%s", r.serviceName, ErrNoKey, r.helpMessage)
	}

	return Result{Source: SourceNone}, fmt.Errorf("%s %w", r.serviceName, ErrNoKey)
}

// Lookup is Resolve for optional keys: a missing key is not an error.
func (r *Resolver) Lookup() (Result, bool) {
	res, err := r.Resolve()
	if err != nil {
		return Result{Source: SourceNone}, false
	}

	return res, true
}

// Mask hides all but the last four characters of key.
func Mask(key string) string {
	if key == "" {
		return ""
	}

	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}

	return strings.Repeat("*", 8) + key[len(key)-4:]
}

// categorizeSource determines the Source category from a source name
func categorizeSource(name string) Source {
	switch {
	case name == "flag":
		return SourceFlag
	case name == "config":
		return SourceConfig
	case strings.Contains(name, "_") || strings.ToUpper(name) == name:
		return SourceEnv
	default:
		return SourceNone
	}
}
