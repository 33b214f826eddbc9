package validation

import (
	"fmt"

	"venicesync/config/models"
	"venicesync/internal/utils"
)

// Validator checks model entries before they are written to the config
type Validator struct {
}

// NewValidator creates a new Validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateEntry checks that every field Continue needs is present
func (v *Validator) ValidateEntry(entry models.ModelEntry) error {
	if entry.Model == "" {
		return fmt.Errorf("model id cannot be empty")
	}
	if entry.Title == "" {
		return fmt.Errorf("model %s: title cannot be empty", entry.Model)
	}
	if entry.Provider == "" {
		return fmt.Errorf("model %s: provider cannot be empty", entry.Model)
	}
	if entry.APIKey == "" {
		return fmt.Errorf("model %s: API key cannot be empty", entry.Model)
	}
	if !utils.ValidateURL(entry.APIBase) {
		return fmt.Errorf("model %s: invalid URL format: %s", entry.Model, entry.APIBase)
	}
	return nil
}

// ValidateEntries validates entries in order and stops at the first failure
func (v *Validator) ValidateEntries(entries []models.ModelEntry) error {
	for _, entry := range entries {
		if err := v.ValidateEntry(entry); err != nil {
			return err
		}
	}
	return nil
}
