// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/fieldmap/lib/field"
)

// Snapshot is the contents of a snapshot file.
type Snapshot struct {
	Areas      []field.AreaRecord `json:"areas,omitempty"`
	Agents     []field.Agent      `json:"agents,omitempty"`
	Structures []field.Structure  `json:"structures,omitempty"`

	SelectedAgents    []string `json:"selected_agents,omitempty"`
	SelectedStructure string   `json:"selected_structure,omitempty"`
}

// Format is a snapshot file syntax.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the syntax from a file extension. Unknown extensions
// are read as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads and validates the snapshot at path.
func Load(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading snapshot: %w", err)
	}
	snapshot, err := Parse(data, FormatFor(path))
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", path, err)
	}
	return snapshot, nil
}

// Parse decodes and validates snapshot data.
func Parse(data []byte, format Format) (Snapshot, error) {
	var snapshot Snapshot
	switch format {
	case FormatYAML:
		// yaml.v3 ignores json tags; decode generically and reuse the
		// JSON field names.
		var document any
		if err := yaml.Unmarshal(data, &document); err != nil {
			return Snapshot{}, fmt.Errorf("parsing YAML: %w", err)
		}
		if document == nil {
			return Snapshot{}, nil
		}
		converted, err := json.Marshal(document)
		if err != nil {
			return Snapshot{}, fmt.Errorf("converting YAML: %w", err)
		}
		if err := json.Unmarshal(converted, &snapshot); err != nil {
			return Snapshot{}, fmt.Errorf("decoding YAML: %w", err)
		}
	default:
		stripped := jsonc.ToJSON(data)
		if len(strings.TrimSpace(string(stripped))) == 0 {
			return Snapshot{}, nil
		}
		if err := json.Unmarshal(stripped, &snapshot); err != nil {
			return Snapshot{}, fmt.Errorf("parsing JSON: %w", err)
		}
	}
	if err := snapshot.Validate(); err != nil {
		return Snapshot{}, err
	}
	return snapshot, nil
}

// Validate reports every entity without an ID or, for areas, with an
// unknown shape type.
func (snapshot Snapshot) Validate() error {
	var errs []error
	for index, record := range snapshot.Areas {
		if _, err := field.AreaFromRecord(record); err != nil {
			errs = append(errs, fmt.Errorf("areas[%d]: %w", index, err))
		}
	}
	for index, agent := range snapshot.Agents {
		if agent.ID == "" {
			errs = append(errs, fmt.Errorf("agents[%d]: no id", index))
		}
	}
	for index, structure := range snapshot.Structures {
		if structure.ID == "" {
			errs = append(errs, fmt.Errorf("structures[%d]: no id", index))
		}
	}
	return errors.Join(errs...)
}

// Save writes snapshot to path in the format its extension selects.
// The file is written to a temporary name and renamed into place, so
// a watcher never reads a partial file.
func Save(path string, snapshot Snapshot) error {
	var data []byte
	var err error
	switch FormatFor(path) {
	case FormatYAML:
		// Round-trip through JSON for the json field names.
		var document any
		if err = json.Unmarshal(encode(snapshot), &document); err == nil {
			data, err = yaml.Marshal(document)
		}
	default:
		data, err = json.MarshalIndent(snapshot, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	temporary, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	defer os.Remove(temporary.Name())
	if _, err := temporary.Write(data); err != nil {
		temporary.Close()
		return fmt.Errorf("saving snapshot: %w", err)
	}
	if err := temporary.Close(); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	if err := os.Rename(temporary.Name(), path); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}
