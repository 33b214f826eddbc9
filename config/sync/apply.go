package sync

import (
	"fmt"

	"venicesync/config/models"
	"venicesync/config/storage"
	"venicesync/internal/providers"
)

// Result describes a computed (and possibly persisted) config update
type Result struct {
	Path    string
	Content string // formatted document
	Added   []models.ModelEntry
	Removed int // provider entries dropped from the original
	Written bool
}

// Apply merges entries into originalContent and, unless opts.DryRun is set,
// persists the formatted document to path atomically.
func Apply(path, originalContent string, entries []models.ModelEntry, p providers.Provider, opts SyncOptions) (*Result, error) {
	updated, err := UpdateModels(originalContent, entries, p)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Path:    path,
		Content: Format(updated),
		Added:   entries,
		Removed: len(ProviderEntries(originalContent, p)),
	}
	if opts.DryRun {
		return result, nil
	}

	if err := storage.AtomicFileUpdate(path, result.Content, opts.CreateBackup); err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrPersistFailed, err)
	}
	result.Written = true
	return result, nil
}
