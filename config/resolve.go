package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"venicesync/config/sync"
	"venicesync/internal/providers"
)

// Environment variables consulted during resolution
const (
	EnvAPIKey     = "VENICE_API_KEY"
	EnvConfigPath = "CONTINUE_CONFIG_PATH"
)

// DefaultConfigPath is Continue's global config location
const DefaultConfigPath = "~/.continue/config.json"

// ErrMissingCredential is returned when no API key could be resolved
var ErrMissingCredential = errors.New("API key not provided")

// Source identifies where a resolved value came from
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceConfig  Source = "config"
	SourceDefault Source = "default"
	SourceNone    Source = "none"
)

// Candidate is one step of a resolution chain
type Candidate struct {
	Source Source
	Lookup func() (string, bool)
}

// Resolution is the outcome of a resolution chain
type Resolution struct {
	Value  string
	Source Source
}

// Found reports whether any candidate produced a value
func (r Resolution) Found() bool {
	return r.Source != SourceNone
}

// Resolve tries candidates in order; the first present, non-empty value wins.
func Resolve(candidates ...Candidate) Resolution {
	for _, c := range candidates {
		if c.Lookup == nil {
			continue
		}
		if v, ok := c.Lookup(); ok && v != "" {
			return Resolution{Value: v, Source: c.Source}
		}
	}
	return Resolution{Source: SourceNone}
}

// FromValue yields v when it is non-empty
func FromValue(src Source, v string) Candidate {
	return Candidate{Source: src, Lookup: func() (string, bool) {
		return v, v != ""
	}}
}

// FromEnv yields the value of the named environment variable
func FromEnv(name string) Candidate {
	return Candidate{Source: SourceEnv, Lookup: func() (string, bool) {
		return os.LookupEnv(name)
	}}
}

// FromDocument yields the first non-empty apiKey among p's entries in document
func FromDocument(document string, p providers.Provider) Candidate {
	return Candidate{Source: SourceConfig, Lookup: func() (string, bool) {
		for _, entry := range sync.ProviderEntries(document, p) {
			if key := entry.Get("apiKey").String(); key != "" {
				return key, true
			}
		}
		return "", false
	}}
}

// ResolveConfigPath resolves the Continue config path: flag, then env, then the default.
func ResolveConfigPath(flagValue string) Resolution {
	return Resolve(
		FromValue(SourceFlag, flagValue),
		FromEnv(EnvConfigPath),
		FromValue(SourceDefault, DefaultConfigPath),
	)
}

// ResolveAPIKey resolves the provider credential: flag, then env, then an
// existing provider entry in the already loaded document.
func ResolveAPIKey(flagValue, document string, p providers.Provider) Resolution {
	return Resolve(
		FromValue(SourceFlag, flagValue),
		FromEnv(EnvAPIKey),
		FromDocument(document, p),
	)
}

// MissingCredentialHelp explains the ways to supply a credential
func MissingCredentialHelp(p providers.Provider) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s API key not provided. Either:\n", p.DisplayName())
	b.WriteString("  - Pass it as an argument with --api-key\n")
	fmt.Fprintf(&b, "  - Set the %s environment variable\n", EnvAPIKey)
	fmt.Fprintf(&b, "  - Have an existing %s model in your Continue config\n", p.DisplayName())
	return b.String()
}
