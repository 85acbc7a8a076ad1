package wire

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads and validates an ExecutorInput document from disk.
func Load(path string) (*ExecutorInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read executor input: %w", err)
	}

	var in ExecutorInput
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parse executor input: %w", err)
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}

	return &in, nil
}

// Validate checks document-level invariants: the output file path is
// mandatory, and every declared artifact entry carries at least one
// artifact descriptor.
func (in *ExecutorInput) Validate() error {
	if in.OutputFile() == "" {
		return fmt.Errorf("executor input declares no outputs.outputFile")
	}
	for name, list := range in.InputArtifacts() {
		if list.First() == nil {
			return fmt.Errorf("input artifact %q has an empty artifact list", name)
		}
	}
	for name, list := range in.OutputArtifacts() {
		if list.First() == nil {
			return fmt.Errorf("output artifact %q has an empty artifact list", name)
		}
	}
	return nil
}
