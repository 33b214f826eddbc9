package report

import (
	"bytes"
	"strings"
	"testing"

	"venicesync/config/models"
	"venicesync/internal/catalog"
	"venicesync/internal/providers"
)

func sampleEntries() []models.ModelEntry {
	return models.NewModelEntries(providers.Default(), []string{"qwen-2.5-coder-32b", "deepseek-coder-v2-lite"}, "vk-1234567890")
}

func TestDryRun(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	r.DryRun(sampleEntries(), "{\n  \"models\": []\n}\n")
	out := buf.String()

	for _, want := range []string{
		"DRY RUN",
		"Found 2 Venice.ai models to add:",
		"  - qwen-2.5-coder-32b (Venice.ai)",
		"  - deepseek-coder-v2-lite (Venice.ai)",
		"Updated configuration would be:",
		`"models": []`,
		"No changes were made",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("DryRun output missing %q:\n%s", want, out)
		}
	}
}

func TestApplied(t *testing.T) {
	tests := []struct {
		name        string
		removed     int
		wantReplace bool
	}{
		{"fresh config", 0, false},
		{"replaced entries", 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewReporter(&buf, WithProviderName("Venice")).Applied("/tmp/config.json", sampleEntries(), tt.removed)
			out := buf.String()

			if !strings.Contains(out, "Added 2 Venice models to config at: /tmp/config.json") {
				t.Errorf("Applied output missing summary:\n%s", out)
			}
			if !strings.Contains(out, "  - qwen-2.5-coder-32b (Venice.ai)") {
				t.Errorf("Applied output missing title:\n%s", out)
			}
			if got := strings.Contains(out, "Replaced 3 previous"); got != tt.wantReplace {
				t.Errorf("replacement line present = %v, want %v", got, tt.wantReplace)
			}
		})
	}
}

func TestCatalog(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf).Catalog([]catalog.Entry{
		{ID: "qwen-2.5-coder-32b", OptimizedForCode: true},
		{ID: "llama-3.3-70b"},
	})
	out := buf.String()

	if !strings.Contains(out, "* qwen-2.5-coder-32b") {
		t.Errorf("code model not marked:\n%s", out)
	}
	if !strings.Contains(out, "  llama-3.3-70b") {
		t.Errorf("plain model missing:\n%s", out)
	}

	buf.Reset()
	NewReporter(&buf).Catalog(nil)
	if !strings.Contains(buf.String(), "No models available") {
		t.Errorf("empty catalog output = %q", buf.String())
	}
}

func TestStatusMasksKey(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf).Status(Status{
		ConfigPath:   "/home/u/.continue/config.json",
		PathSource:   "default",
		LoadState:    "parsed",
		APIKey:       "vk-supersecretvalue",
		KeySource:    "config",
		APIBase:      providers.VeniceBaseURL,
		EntryTitles:  []string{"a (Venice.ai)"},
		TotalEntries: 3,
	})
	out := buf.String()

	if strings.Contains(out, "supersecret") {
		t.Errorf("status output leaks the API key:\n%s", out)
	}
	for _, want := range []string{"vk-s****alue (config)", "api.venice.ai", "1 of 3 entries", "- a (Venice.ai)"} {
		if !strings.Contains(out, want) {
			t.Errorf("status output missing %q:\n%s", want, out)
		}
	}
}
