// Package catalog fetches the model catalog of an OpenAI-compatible provider.
package catalog

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"venicesync/internal/providers"
	"venicesync/internal/utils"
)

const (
	modelsEndpoint   = "models"
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "venicesync"
	maxBodySize      = 8 << 20
	maxDetailLength  = 200
)

// Paths of the fields read from each catalog element
const (
	idPath   = "id"
	codePath = "model_spec.capabilities.optimizedForCode"
)

// Entry is one model from the provider's catalog
type Entry struct {
	ID               string
	OptimizedForCode bool
	Raw              string
}

// IDs returns the model ids of entries in order
func IDs(entries []Entry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

// Client lists models from a provider's /models endpoint
type Client struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// ClientOption is a functional option for configuring a Client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// WithBaseURL overrides the provider base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// NewClient creates a catalog client for p
func NewClient(p providers.Provider, opts ...ClientOption) *Client {
	c := &Client{
		client: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL:   p.DefaultBaseURL(),
		userAgent: defaultUserAgent,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the base URL the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListModels fetches the catalog with a bearer token. When filterForCode is
// set only entries flagged as optimized for code are returned. Transport
// failures and non-2xx responses are returned as *FetchError.
func (c *Client) ListModels(apiKey string, filterForCode bool) ([]Entry, error) {
	if !utils.ValidateURL(c.baseURL) {
		return nil, &FetchError{
			Category: ErrorCategoryEndpointNotFound,
			Message:  fmt.Sprintf("invalid base URL %q", c.baseURL),
		}
	}

	req, err := http.NewRequest(http.MethodGet, utils.JoinURL(c.baseURL, modelsEndpoint), nil)
	if err != nil {
		return nil, &FetchError{Category: ErrorCategoryUnknown, Message: "failed to create request", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, newNetworkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, newNetworkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newStatusError(resp.StatusCode, body)
	}

	entries, err := ParseEntries(body)
	if err != nil {
		return nil, err
	}

	if filterForCode {
		entries = FilterForCode(entries)
	}
	return entries, nil
}

// ParseEntries reads the "data" array of a catalog response. A missing
// "data" field yields no entries; elements without an id are skipped.
func ParseEntries(body []byte) ([]Entry, error) {
	if !gjson.ValidBytes(body) {
		return nil, &FetchError{Category: ErrorCategoryInvalidResponse, Message: "response body is not valid JSON"}
	}

	var entries []Entry
	gjson.GetBytes(body, "data").ForEach(func(_, item gjson.Result) bool {
		id := item.Get(idPath).String()
		if id == "" {
			return true
		}
		entries = append(entries, Entry{
			ID:               id,
			OptimizedForCode: item.Get(codePath).Type == gjson.True,
			Raw:              item.Raw,
		})
		return true
	})
	return entries, nil
}

// FilterForCode keeps entries whose code-optimization flag is true
func FilterForCode(entries []Entry) []Entry {
	filtered := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.OptimizedForCode {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// errorDetail extracts a provider error message from a response body
func errorDetail(body []byte) string {
	var detail string
	for _, path := range []string{"error.message", "error", "message"} {
		if r := gjson.GetBytes(body, path); r.Type == gjson.String && r.Str != "" {
			detail = r.Str
			break
		}
	}
	if detail == "" && !gjson.ValidBytes(body) {
		detail = strings.TrimSpace(string(body))
	}
	if len(detail) > maxDetailLength {
		detail = detail[:maxDetailLength] + "..."
	}
	return detail
}
