package models

import "venicesync/internal/providers"

// ModelEntry represents one model binding in the Continue config "models" array
type ModelEntry struct {
	Title    string `json:"title"`
	Provider string `json:"provider"` // Continue wire dialect, not the vendor
	Model    string `json:"model"`
	APIKey   string `json:"apiKey"`
	APIBase  string `json:"apiBase"`
}

// NewModelEntry builds the config entry for one catalog model of p
func NewModelEntry(p providers.Provider, modelID, apiKey string) ModelEntry {
	return ModelEntry{
		Title:    p.EntryTitle(modelID),
		Provider: p.Dialect(),
		Model:    modelID,
		APIKey:   apiKey,
		APIBase:  p.DefaultBaseURL(),
	}
}

// NewModelEntries builds entries for ids in order
func NewModelEntries(p providers.Provider, modelIDs []string, apiKey string) []ModelEntry {
	entries := make([]ModelEntry, 0, len(modelIDs))
	for _, id := range modelIDs {
		entries = append(entries, NewModelEntry(p, id, apiKey))
	}
	return entries
}

// Titles returns the display titles of entries in order
func Titles(entries []ModelEntry) []string {
	titles := make([]string, len(entries))
	for i, e := range entries {
		titles[i] = e.Title
	}
	return titles
}
