package providers

import (
	"errors"
	"strings"
)

// Provider describes a remote inference API whose models are synced into
// the Continue configuration
type Provider interface {
	// Name returns the registry key (e.g., "venice")
	Name() string
	// DisplayName returns the human readable provider label used in entry titles
	DisplayName() string
	// DefaultBaseURL returns the API base URL written into model entries
	DefaultBaseURL() string
	// Dialect returns the wire dialect Continue should speak to the provider
	Dialect() string
	// MatchesBaseURL reports whether a config entry's apiBase belongs to this provider
	MatchesBaseURL(apiBase string) bool
	// EntryTitle builds the display title for a model id
	EntryTitle(modelID string) string
}

// registry stores all registered providers
var registry = make(map[string]Provider)

// Register registers a new provider
func Register(name string, provider Provider) {
	registry[name] = provider
}

// Get returns a provider by name
func Get(name string) (Provider, error) {
	provider, ok := registry[name]
	if !ok {
		return nil, errors.New("unknown provider: " + name)
	}
	return provider, nil
}

// Default returns the provider the tool syncs when none is named
func Default() Provider {
	p, _ := Get(VeniceName)
	return p
}

// Venice.ai constants
const (
	VeniceName      = "venice"
	VeniceBaseURL   = "https://api.venice.ai/api/v1"
	VeniceURLMarker = "venice.ai"
)

// VeniceProvider is the built-in Venice.ai provider. Venice speaks the
// OpenAI-compatible API, so entries are written with the "openai" dialect.
type VeniceProvider struct{}

func (p *VeniceProvider) Name() string {
	return VeniceName
}

func (p *VeniceProvider) DisplayName() string {
	return "Venice.ai"
}

func (p *VeniceProvider) DefaultBaseURL() string {
	return VeniceBaseURL
}

func (p *VeniceProvider) Dialect() string {
	return "openai"
}

// MatchesBaseURL uses a plain substring test on the apiBase value.
func (p *VeniceProvider) MatchesBaseURL(apiBase string) bool {
	return apiBase != "" && strings.Contains(apiBase, VeniceURLMarker)
}

func (p *VeniceProvider) EntryTitle(modelID string) string {
	return modelID + " (" + p.DisplayName() + ")"
}

func init() {
	Register(VeniceName, &VeniceProvider{})
}
