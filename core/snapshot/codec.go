package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format is a snapshot encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the encoding from a snapshot name. Unknown extensions use JSON.
func FormatFor(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// IsSnapshotName reports whether name carries a snapshot extension.
func IsSnapshotName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// Encode renders records in the given format, indented for human diffing.
func Encode(format Format, records []TypeRecord) ([]byte, error) {
	if records == nil {
		records = []TypeRecord{}
	}

	switch format {
	case FormatYAML:
		data, err := yaml.MarshalWithOptions(records,
			yaml.Indent(2),
			yaml.IndentSequence(false),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to encode yaml snapshot: %w", err)
		}
		return data, nil
	default:
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode json snapshot: %w", err)
		}
		return data, nil
	}
}

// Decode parses records in the given format. A JSON null document decodes to
// an empty list; whether that is acceptable is up to the caller.
func Decode(format Format, data []byte) ([]TypeRecord, error) {
	// Files written by some editors start with a UTF-8 BOM.
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	var records []TypeRecord
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to parse yaml snapshot: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to parse json snapshot: %w", err)
		}
	}
	return records, nil
}
