// Package report formats the outcome of a config sync for the terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"venicesync/config/models"
	"venicesync/internal/catalog"
	"venicesync/internal/utils"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	keyStyle     = lipgloss.NewStyle().Bold(true)
)

// Reporter writes human readable sync results.
type Reporter struct {
	writer       io.Writer
	providerName string
}

// ReporterOption is a functional option for configuring a Reporter
type ReporterOption func(*Reporter)

// WithProviderName sets the provider label used in messages
func WithProviderName(name string) ReporterOption {
	return func(r *Reporter) {
		r.providerName = name
	}
}

// NewReporter creates a reporter writing to writer.
func NewReporter(writer io.Writer, opts ...ReporterOption) *Reporter {
	r := &Reporter{
		writer:       writer,
		providerName: "Venice.ai",
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// ConfigLocation announces which config file is used
func (r *Reporter) ConfigLocation(path string) {
	fmt.Fprintf(r.writer, "Using Continue config at: %s\n", path)
}

// DryRun previews entries and the would-be document without touching disk
func (r *Reporter) DryRun(entries []models.ModelEntry, document string) {
	fmt.Fprintln(r.writer)
	fmt.Fprintln(r.writer, headerStyle.Render("=== DRY RUN: The following changes would be made ==="))
	fmt.Fprintf(r.writer, "Found %d %s models to add:\n", len(entries), r.providerName)
	r.writeTitles(entries)

	fmt.Fprintln(r.writer)
	fmt.Fprintln(r.writer, "Updated configuration would be:")
	fmt.Fprintln(r.writer, strings.TrimRight(document, "\n"))
	fmt.Fprintln(r.writer)
	fmt.Fprintln(r.writer, mutedStyle.Render("=== No changes were made to the configuration file ==="))
}

// Applied summarizes a persisted update
func (r *Reporter) Applied(path string, entries []models.ModelEntry, removed int) {
	fmt.Fprintln(r.writer, successStyle.Render(
		fmt.Sprintf("✅ Added %d %s models to config at: %s", len(entries), r.providerName, path)))
	r.writeTitles(entries)
	if removed > 0 {
		fmt.Fprintln(r.writer, mutedStyle.Render(
			fmt.Sprintf("Replaced %d previous %s entries", removed, r.providerName)))
	}
}

// Catalog lists catalog entries, marking code-optimized ones
func (r *Reporter) Catalog(entries []catalog.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(r.writer, "No models available")
		return
	}

	fmt.Fprintf(r.writer, "%s models (%d):\n", r.providerName, len(entries))
	for _, e := range entries {
		marker := " "
		if e.OptimizedForCode {
			marker = "*"
		}
		fmt.Fprintf(r.writer, "%s %s\n", marker, e.ID)
	}
	fmt.Fprintln(r.writer, mutedStyle.Render("\n* indicates a code-optimized model"))
}

// Status describes the resolved settings and the provider entries present in the config
type Status struct {
	ConfigPath   string
	PathSource   string
	LoadState    string
	APIKey       string
	KeySource    string
	APIBase      string
	EntryTitles  []string
	TotalEntries int
}

// Status prints a Status block; the API key is always masked
func (r *Reporter) Status(s Status) {
	fmt.Fprintln(r.writer, headerStyle.Render("Sync status:"))
	fmt.Fprintf(r.writer, "  %s %s (%s, %s)\n", keyStyle.Render("Config:"), s.ConfigPath, s.PathSource, s.LoadState)
	if s.APIKey != "" {
		fmt.Fprintf(r.writer, "  %s %s (%s)\n", keyStyle.Render("API Key:"), utils.MaskAPIKey(s.APIKey), s.KeySource)
	} else {
		fmt.Fprintf(r.writer, "  %s not set\n", keyStyle.Render("API Key:"))
	}
	fmt.Fprintf(r.writer, "  %s %s\n", keyStyle.Render("API Host:"), utils.ExtractHost(s.APIBase))
	fmt.Fprintf(r.writer, "  %s %d of %d entries\n", keyStyle.Render(r.providerName+" models:"), len(s.EntryTitles), s.TotalEntries)
	for _, title := range s.EntryTitles {
		fmt.Fprintf(r.writer, "    - %s\n", title)
	}
}

func (r *Reporter) writeTitles(entries []models.ModelEntry) {
	for _, title := range models.Titles(entries) {
		fmt.Fprintf(r.writer, "  - %s\n", title)
	}
}
