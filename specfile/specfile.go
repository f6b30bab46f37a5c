// Package specfile loads and writes StateMachineSpec documents in YAML or
// JSON. It is a convenience front-end adapter: the engine itself consumes
// only the in-memory StateMachineSpec record.
package specfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/comalice/typestate"
)

// Parse decodes a YAML spec document. JSON documents parse too, YAML being a
// superset.
func Parse(data []byte) (typestate.StateMachineSpec, error) {
	var spec typestate.StateMachineSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return typestate.StateMachineSpec{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return spec, nil
}

// Load reads a spec document from path, decoding by extension: .json as
// JSON, anything else as YAML.
func Load(path string) (typestate.StateMachineSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return typestate.StateMachineSpec{}, fmt.Errorf("read %s: %w", path, err)
	}
	if filepath.Ext(path) == ".json" {
		var spec typestate.StateMachineSpec
		if err := json.Unmarshal(data, &spec); err != nil {
			return typestate.StateMachineSpec{}, fmt.Errorf("json unmarshal %s: %w", path, err)
		}
		return spec, nil
	}
	return Parse(data)
}

// Build loads a spec document and compiles it in one step.
func Build(path string) (*typestate.MachineType, error) {
	spec, err := Load(path)
	if err != nil {
		return nil, err
	}
	mt, err := typestate.Build(spec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mt, nil
}

// Write serializes spec to path, encoding by extension like Load.
func Write(path string, spec typestate.StateMachineSpec) error {
	var data []byte
	var err error
	if filepath.Ext(path) == ".json" {
		data, err = json.MarshalIndent(spec, "", "  ")
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
	} else {
		data, err = yaml.Marshal(spec)
		if err != nil {
			return fmt.Errorf("yaml marshal: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
