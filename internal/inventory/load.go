package inventory

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies an inventory file encoding.
type Format string

// Supported inventory encodings.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ErrEmptyInventory is returned when a file contains no records.
var ErrEmptyInventory = errors.New("inventory file contains no records")

// FormatFromPath infers the encoding from a file extension. Anything that
// is not .json is treated as YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Load reads and validates the records stored at path. The file may hold a
// single record or a list of records.
func Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening inventory %s: %w", path, err)
	}
	defer f.Close()

	records, err := Decode(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("loading inventory %s: %w", path, err)
	}
	return records, nil
}

// Decode parses records from r and validates each one. Unknown fields are
// rejected so that typos surface instead of silently reading as zero.
func Decode(r io.Reader, format Format) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading inventory: %w", err)
	}

	var records []Record
	switch format {
	case FormatJSON:
		records, err = decodeJSON(data)
	case FormatYAML:
		records, err = decodeYAML(data)
	default:
		return nil, fmt.Errorf("unsupported inventory format %q", format)
	}
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptyInventory
	}

	for i, rec := range records {
		if vErr := rec.Validate(); vErr != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, rec.DisplayName(), vErr)
		}
	}
	return records, nil
}

func decodeYAML(data []byte) ([]Record, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing inventory YAML: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if root.Content[0].Kind == yaml.SequenceNode {
		var records []Record
		if err := dec.Decode(&records); err != nil {
			return nil, fmt.Errorf("decoding inventory YAML: %w", err)
		}
		return records, nil
	}

	var rec Record
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("decoding inventory YAML: %w", err)
	}
	return []Record{rec}, nil
}

func decodeJSON(data []byte) ([]Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()

	if trimmed[0] == '[' {
		var records []Record
		if err := dec.Decode(&records); err != nil {
			return nil, fmt.Errorf("decoding inventory JSON: %w", err)
		}
		return records, nil
	}

	var rec Record
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("decoding inventory JSON: %w", err)
	}
	return []Record{rec}, nil
}
