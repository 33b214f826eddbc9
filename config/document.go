package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/tidwall/gjson"

	"venicesync/internal/utils"
)

// EmptyDocument is the document used when no usable config exists
const EmptyDocument = "{}"

// LoadStatus describes the outcome of reading a config file
type LoadStatus int

const (
	// LoadMissing means the file does not exist
	LoadMissing LoadStatus = iota
	// LoadParsed means the file was read and holds a JSON object
	LoadParsed
	// LoadUnreadable means the file exists but could not be read or parsed
	LoadUnreadable
)

func (s LoadStatus) String() string {
	switch s {
	case LoadMissing:
		return "missing"
	case LoadParsed:
		return "parsed"
	case LoadUnreadable:
		return "unreadable"
	default:
		return "unknown"
	}
}

// LoadResult is the config loader's output. Content is always a JSON object;
// it is EmptyDocument unless Status is LoadParsed.
type LoadResult struct {
	Path    string
	Status  LoadStatus
	Content string
	Err     error
}

// LoadDocument reads the config at path (a leading "~" is expanded).
// Missing, unreadable and corrupt files all yield EmptyDocument; only the
// last two set Err so the caller can warn.
func LoadDocument(path string) LoadResult {
	path = utils.ExpandHome(path)
	result := LoadResult{Path: path, Status: LoadMissing, Content: EmptyDocument}

	data, err := os.ReadFile(path)
	if err != nil {
		// a parent that is a regular file means the config cannot exist
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return result
		}
		result.Status = LoadUnreadable
		result.Err = fmt.Errorf("failed to read config file: %w", err)
		return result
	}

	content := string(data)
	if strings.TrimSpace(content) == "" {
		result.Status = LoadParsed
		return result
	}

	if !gjson.Valid(content) {
		result.Status = LoadUnreadable
		result.Err = fmt.Errorf("failed to parse config file: invalid JSON")
		return result
	}
	if !gjson.Parse(content).IsObject() {
		result.Status = LoadUnreadable
		result.Err = fmt.Errorf("failed to parse config file: top-level value is not an object")
		return result
	}

	result.Status = LoadParsed
	result.Content = content
	return result
}
