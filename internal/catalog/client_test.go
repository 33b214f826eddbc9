package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"venicesync/internal/providers"
)

const sampleCatalog = `{
  "object": "list",
  "data": [
    {"id": "qwen-2.5-coder-32b", "model_spec": {"capabilities": {"optimizedForCode": true}}},
    {"id": "llama-3.3-70b", "model_spec": {"capabilities": {"optimizedForCode": false}}},
    {"id": "deepseek-coder-v2-lite", "model_spec": {"capabilities": {"optimizedForCode": true}}},
    {"id": "mistral-31-24b", "model_spec": {}},
    {"id": "dolphin-2.9.2", "model_spec": {"capabilities": {"optimizedForCode": "true"}}}
  ]
}`

func newTestServer(t *testing.T, status int, body string) (*httptest.Server, func() *http.Request) {
	t.Helper()
	var (
		mu       sync.Mutex
		captured *http.Request
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		captured = r.Clone(context.Background())
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, func() *http.Request {
		mu.Lock()
		defer mu.Unlock()
		return captured
	}
}

func TestListModelsFiltersForCode(t *testing.T) {
	server, lastRequest := newTestServer(t, http.StatusOK, sampleCatalog)
	client := NewClient(providers.Default(), WithBaseURL(server.URL+"/api/v1"))

	entries, err := client.ListModels("vk-secret", true)
	if err != nil {
		t.Fatalf("ListModels() error = %v", err)
	}

	got := IDs(entries)
	want := []string{"qwen-2.5-coder-32b", "deepseek-coder-v2-lite"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("ListModels() ids = %v, want %v", got, want)
	}

	req := lastRequest()
	if req == nil {
		t.Fatal("server received no request")
	}
	if req.Method != http.MethodGet {
		t.Errorf("method = %s, want GET", req.Method)
	}
	if req.URL.Path != "/api/v1/models" {
		t.Errorf("path = %s, want /api/v1/models", req.URL.Path)
	}
	if auth := req.Header.Get("Authorization"); auth != "Bearer vk-secret" {
		t.Errorf("Authorization = %q, want %q", auth, "Bearer vk-secret")
	}
}

func TestListModelsWithoutFilter(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, sampleCatalog)
	client := NewClient(providers.Default(), WithBaseURL(server.URL))

	entries, err := client.ListModels("k", false)
	if err != nil {
		t.Fatalf("ListModels() error = %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("ListModels() returned %d entries, want 5", len(entries))
	}
	if entries[1].OptimizedForCode {
		t.Errorf("entry %s flagged for code, want false", entries[1].ID)
	}
	if !strings.Contains(entries[0].Raw, "qwen-2.5-coder-32b") {
		t.Errorf("Raw = %s, want element JSON", entries[0].Raw)
	}
}

func TestListModelsMissingData(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `{"object":"list"}`)
	client := NewClient(providers.Default(), WithBaseURL(server.URL))

	entries, err := client.ListModels("k", true)
	if err != nil {
		t.Fatalf("ListModels() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("ListModels() = %v, want empty", entries)
	}
}

func TestListModelsHTTPErrors(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantCategory string
		wantMessage  string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":"Authentication failed"}`, ErrorCategoryAuthFailure, "Authentication failed"},
		{"forbidden", http.StatusForbidden, `{}`, ErrorCategoryAuthFailure, "Forbidden"},
		{"not found", http.StatusNotFound, `not here`, ErrorCategoryEndpointNotFound, "not here"},
		{"rate limited", http.StatusTooManyRequests, `{"error":{"message":"slow down"}}`, ErrorCategoryRateLimit, "slow down"},
		{"server error", http.StatusBadGateway, ``, ErrorCategoryServerError, "Bad Gateway"},
		{"teapot", http.StatusTeapot, `{"message":"short and stout"}`, ErrorCategoryUnknown, "short and stout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newTestServer(t, tt.status, tt.body)
			client := NewClient(providers.Default(), WithBaseURL(server.URL))

			entries, err := client.ListModels("k", true)
			if entries != nil {
				t.Errorf("ListModels() entries = %v, want nil", entries)
			}
			if !errors.Is(err, ErrCatalogFetchFailed) {
				t.Fatalf("ListModels() error = %v, want ErrCatalogFetchFailed", err)
			}

			var fetchErr *FetchError
			if !errors.As(err, &fetchErr) {
				t.Fatalf("error %T is not *FetchError", err)
			}
			if fetchErr.Category != tt.wantCategory {
				t.Errorf("Category = %s, want %s", fetchErr.Category, tt.wantCategory)
			}
			if fetchErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", fetchErr.StatusCode, tt.status)
			}
			if !strings.Contains(err.Error(), tt.wantMessage) {
				t.Errorf("Error() = %q, want it to contain %q", err.Error(), tt.wantMessage)
			}
			if fetchErr.UserMessage() == "" {
				t.Error("UserMessage() is empty")
			}
		})
	}
}

func TestListModelsInvalidJSON(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `{"data": [`)
	client := NewClient(providers.Default(), WithBaseURL(server.URL))

	_, err := client.ListModels("k", true)

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) || fetchErr.Category != ErrorCategoryInvalidResponse {
		t.Fatalf("ListModels() error = %v, want invalid_response FetchError", err)
	}
}

func TestListModelsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(providers.Default(), WithBaseURL(url))
	_, err := client.ListModels("k", true)

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) || fetchErr.Category != ErrorCategoryNetworkError {
		t.Fatalf("ListModels() error = %v, want network_error FetchError", err)
	}
	if !errors.Is(err, ErrCatalogFetchFailed) {
		t.Errorf("error does not wrap ErrCatalogFetchFailed")
	}
}

func TestListModelsTimeout(t *testing.T) {
	done := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()
	defer close(done)

	client := NewClient(providers.Default(),
		WithBaseURL(server.URL),
		WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}),
	)
	_, err := client.ListModels("k", true)

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) || fetchErr.Category != ErrorCategoryNetworkError {
		t.Fatalf("ListModels() error = %v, want network_error FetchError", err)
	}
}

func TestListModelsInvalidBaseURL(t *testing.T) {
	client := NewClient(providers.Default(), WithBaseURL("not a url"))

	_, err := client.ListModels("k", true)
	if !errors.Is(err, ErrCatalogFetchFailed) {
		t.Fatalf("ListModels() error = %v, want ErrCatalogFetchFailed", err)
	}
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(providers.Default(), WithUserAgent("test-agent"))

	if client.BaseURL() != providers.VeniceBaseURL {
		t.Errorf("BaseURL() = %s, want %s", client.BaseURL(), providers.VeniceBaseURL)
	}
	if client.userAgent != "test-agent" {
		t.Errorf("userAgent = %s, want test-agent", client.userAgent)
	}
	if client.client.Timeout != defaultTimeout {
		t.Errorf("Timeout = %v, want %v", client.client.Timeout, defaultTimeout)
	}
}

func TestCategorizeStatus(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{401, ErrorCategoryAuthFailure},
		{403, ErrorCategoryAuthFailure},
		{404, ErrorCategoryEndpointNotFound},
		{429, ErrorCategoryRateLimit},
		{500, ErrorCategoryServerError},
		{503, ErrorCategoryServerError},
		{400, ErrorCategoryUnknown},
	}

	for _, tt := range tests {
		if got := CategorizeStatus(tt.status); got != tt.want {
			t.Errorf("CategorizeStatus(%d) = %s, want %s", tt.status, got, tt.want)
		}
	}
}

func TestParseEntriesSkipsMissingIDs(t *testing.T) {
	entries, err := ParseEntries([]byte(`{"data":[{"object":"model"},{"id":""},{"id":"kept"}]}`))
	if err != nil {
		t.Fatalf("ParseEntries() error = %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "kept" {
		t.Errorf("ParseEntries() = %+v, want only kept", entries)
	}
}
