package utils

import (
	"net/url"
	"strings"
)

// ValidateURL validates that a URL has a valid scheme and host
func ValidateURL(rawURL string) bool {
	if rawURL == "" {
		return false
	}

	parsed, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return false
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}

	return parsed.Host != ""
}

// JoinURL appends an endpoint path to a base URL with exactly one slash between them
func JoinURL(baseURL, endpoint string) string {
	if endpoint == "" {
		return baseURL
	}
	return strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(endpoint, "/")
}

// ExtractHost extracts the host from a URL
func ExtractHost(rawURL string) string {
	parsed, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Host
}
