package sync

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"venicesync/config/models"
	"venicesync/config/validation"
	"venicesync/internal/providers"
)

// ModelsKey is the Continue config key holding model entries
const ModelsKey = "models"

// SyncOptions provides options for synchronization
type SyncOptions struct {
	DryRun       bool // 仅预览，不写入
	CreateBackup bool // 写入前创建备份
}

// ProviderEntries returns the entries of the document's models array that belong to p
func ProviderEntries(document string, p providers.Provider) []gjson.Result {
	var matched []gjson.Result
	gjson.Get(document, ModelsKey).ForEach(func(_, entry gjson.Result) bool {
		if isProviderEntry(entry, p) {
			matched = append(matched, entry)
		}
		return true
	})
	return matched
}

// isProviderEntry reports whether entry carries a string apiBase claimed by p
func isProviderEntry(entry gjson.Result, p providers.Provider) bool {
	apiBase := entry.Get("apiBase")
	return apiBase.Type == gjson.String && p.MatchesBaseURL(apiBase.Str)
}

// UpdateModels replaces p's entries in the document's models array with entries.
// Other entries keep their order and bytes, new entries are appended in order,
// and every key other than "models" is left untouched.
func UpdateModels(originalContent string, entries []models.ModelEntry, p providers.Provider) (string, error) {
	if strings.TrimSpace(originalContent) == "" {
		originalContent = "{}"
	}
	result := gjson.Parse(originalContent)
	if !result.IsObject() {
		return "", fmt.Errorf("invalid JSON content: expected an object")
	}

	if err := validation.NewValidator().ValidateEntries(entries); err != nil {
		return "", fmt.Errorf("invalid model entry: %w", err)
	}

	var kept []string
	if existing := result.Get(ModelsKey); existing.IsArray() {
		existing.ForEach(func(_, entry gjson.Result) bool {
			if !isProviderEntry(entry, p) {
				kept = append(kept, entry.Raw)
			}
			return true
		})
	}

	for _, entry := range entries {
		data, err := json.Marshal(entry)
		if err != nil {
			return "", fmt.Errorf("failed to marshal model entry %q: %w", entry.Model, err)
		}
		kept = append(kept, string(data))
	}

	modelsJSON := "[" + strings.Join(kept, ",") + "]"
	updatedContent, err := sjson.SetRaw(originalContent, ModelsKey, modelsJSON)
	if err != nil {
		return "", fmt.Errorf("failed to update models field: %w", err)
	}

	if err := validateJSONUpdate(originalContent, updatedContent); err != nil {
		return "", fmt.Errorf("update validation failed: %w", err)
	}

	return updatedContent, nil
}

// Format pretty-prints a document with two-space indentation, keeping key order.
func Format(content string) string {
	return string(pretty.PrettyOptions([]byte(content), &pretty.Options{
		Width:  80,
		Indent: "  ",
	}))
}

// validateJSONUpdate validates that only the models field has changed in the JSON
func validateJSONUpdate(originalContent string, updatedContent string) error {
	if !gjson.Valid(originalContent) {
		return fmt.Errorf("original JSON is invalid")
	}
	if !gjson.Valid(updatedContent) {
		return fmt.Errorf("updated JSON is invalid")
	}

	original, updated, err := parseToMaps(originalContent, updatedContent)
	if err != nil {
		return err
	}

	differences := deepCompare(original, updated, ModelsKey)
	if len(differences) > 0 {
		return fmt.Errorf("unexpected changes to non-models fields: %s", strings.Join(differences, ", "))
	}

	if !gjson.Get(updatedContent, ModelsKey).IsArray() {
		return fmt.Errorf("models field is not an array")
	}

	return nil
}

// parseToMaps parses two JSON strings to maps for deep comparison
func parseToMaps(originalStr, updatedStr string) (map[string]interface{}, map[string]interface{}, error) {
	var original map[string]interface{}
	if err := json.Unmarshal([]byte(originalStr), &original); err != nil {
		return nil, nil, fmt.Errorf("failed to parse original JSON: %w", err)
	}

	var updated map[string]interface{}
	if err := json.Unmarshal([]byte(updatedStr), &updated); err != nil {
		return nil, nil, fmt.Errorf("failed to parse updated JSON: %w", err)
	}

	return original, updated, nil
}

// deepCompare compares two maps and returns a list of differing fields,
// ignoring the top-level skip key
func deepCompare(original, updated map[string]interface{}, skip string) []string {
	var differences []string

	for key, originalVal := range original {
		if key == skip {
			continue
		}

		updatedVal, exists := updated[key]
		if !exists {
			differences = append(differences, key+" (missing)")
			continue
		}

		originalMap, originalIsMap := originalVal.(map[string]interface{})
		updatedMap, updatedIsMap := updatedVal.(map[string]interface{})
		if originalIsMap && updatedIsMap {
			for _, diff := range deepCompare(originalMap, updatedMap, "") {
				differences = append(differences, key+"."+diff)
			}
		} else if fmt.Sprintf("%v", originalVal) != fmt.Sprintf("%v", updatedVal) {
			differences = append(differences, key)
		}
	}

	for key := range updated {
		if key == skip {
			continue
		}
		if _, exists := original[key]; !exists {
			differences = append(differences, key+" (new)")
		}
	}

	return differences
}
