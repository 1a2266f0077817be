package model

import "strings"

// Provider identifies one of the simulated AI backends.
type Provider string

const (
	ProviderOpenAI   Provider = "openai"
	ProviderMaritalk Provider = "maritalk"
	ProviderGemini   Provider = "gemini"
)

// Providers returns the fixed dispatch order.
func Providers() []Provider {
	return []Provider{ProviderOpenAI, ProviderMaritalk, ProviderGemini}
}

// IsValid reports whether p is one of the known providers.
func (p Provider) IsValid() bool {
	switch p {
	case ProviderOpenAI, ProviderMaritalk, ProviderGemini:
		return true
	}
	return false
}

// KeyName returns the credential map key holding this provider's API key,
// e.g. "OPENAI_API_KEY".
func (p Provider) KeyName() string {
	return strings.ToUpper(string(p)) + "_API_KEY"
}

// Name returns the display name of the provider.
func (p Provider) Name() string {
	switch p {
	case ProviderOpenAI:
		return "OpenAI"
	case ProviderMaritalk:
		return "Maritalk"
	case ProviderGemini:
		return "Gemini"
	default:
		return string(p)
	}
}

// Label returns the display label for the provider's credential.
func (p Provider) Label() string {
	return p.Name() + " API Key"
}
