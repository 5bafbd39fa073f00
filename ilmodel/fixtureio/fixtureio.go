// Package fixtureio is a JSON-backed implementation of ilmodel.ModuleReader
// and ilmodel.ModuleWriter, used by the CLI in place of a real
// assembly reader/writer. Like the weaver itself, loading a fixture is a
// two-pass process: a first pass allocates every named entity so that type
// references can be resolved by name in a second pass, since JSON has no
// native way to express the pointer graph ilmodel.Module actually is.
package fixtureio

import (
	"encoding/json"
	"fmt"
	"os"

	"weave/ilmodel"
)

// Codec reads and writes fixture modules as JSON.
type Codec struct{}

// New creates a fixture codec.
func New() *Codec {
	return &Codec{}
}

// ReadModule implements ilmodel.ModuleReader.
func (c *Codec) ReadModule(path string) (*ilmodel.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixtureio: read %s: %w", path, err)
	}

	var doc moduleDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("fixtureio: parse %s: %w", path, err)
	}

	return decodeModule(&doc)
}

// WriteModule implements ilmodel.ModuleWriter.
func (c *Codec) WriteModule(path string, m *ilmodel.Module) error {
	doc := encodeModule(m)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("fixtureio: encode %s: %w", m.Name, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("fixtureio: write %s: %w", path, err)
	}

	return nil
}
