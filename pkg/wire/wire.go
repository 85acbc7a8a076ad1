// Package wire defines the JSON documents exchanged with the orchestrator:
// the ExecutorInput document describing a task's resolved input/output
// bindings, and the ExecutorOutput document reporting produced parameter
// values and artifact metadata.
package wire

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ParameterValue is the tagged scalar union used for parameter values in
// both documents. Exactly one field is set. Pointer fields keep an explicit
// zero (0, 0.0, "") distinguishable from an absent value.
type ParameterValue struct {
	StringValue *string  `json:"stringValue,omitempty"`
	IntValue    *int64   `json:"intValue,omitempty"`
	DoubleValue *float64 `json:"doubleValue,omitempty"`
}

// StringParam builds a string-tagged value.
func StringParam(v string) *ParameterValue { return &ParameterValue{StringValue: &v} }

// IntParam builds an int-tagged value.
func IntParam(v int64) *ParameterValue { return &ParameterValue{IntValue: &v} }

// DoubleParam builds a double-tagged value.
func DoubleParam(v float64) *ParameterValue { return &ParameterValue{DoubleValue: &v} }

// Value decodes the union by the single tag present. Returns nil when no
// tag is set.
func (p *ParameterValue) Value() any {
	switch {
	case p == nil:
		return nil
	case p.StringValue != nil:
		return *p.StringValue
	case p.IntValue != nil:
		return *p.IntValue
	case p.DoubleValue != nil:
		return *p.DoubleValue
	default:
		return nil
	}
}

// UnmarshalJSON accepts intValue and doubleValue as either JSON numbers or
// numeric strings. Orchestrators that round-trip the document through
// proto-JSON emit 64-bit integers as strings.
func (p *ParameterValue) UnmarshalJSON(data []byte) error {
	var raw struct {
		StringValue *string         `json:"stringValue"`
		IntValue    json.RawMessage `json:"intValue"`
		DoubleValue json.RawMessage `json:"doubleValue"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.StringValue = raw.StringValue

	if len(raw.IntValue) > 0 && string(raw.IntValue) != "null" {
		n, err := numericField(raw.IntValue)
		if err != nil {
			return fmt.Errorf("intValue: %w", err)
		}
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return fmt.Errorf("intValue %q: %w", n, err)
		}
		p.IntValue = &i
	}
	if len(raw.DoubleValue) > 0 && string(raw.DoubleValue) != "null" {
		n, err := numericField(raw.DoubleValue)
		if err != nil {
			return fmt.Errorf("doubleValue: %w", err)
		}
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return fmt.Errorf("doubleValue %q: %w", n, err)
		}
		p.DoubleValue = &f
	}
	return nil
}

// numericField unwraps a JSON number or numeric string to its literal text.
func numericField(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("expected number or numeric string, got %s", raw)
	}
	return n.String(), nil
}

// RuntimeArtifact is a single named, URI-addressed artifact instance. Path
// is the derived local filesystem location; it is populated during input
// resolution and never re-emitted in the output document.
type RuntimeArtifact struct {
	Name     string         `json:"name,omitempty"`
	URI      string         `json:"uri,omitempty"`
	Path     string         `json:"path,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// LocalPath returns the artifact's local filesystem path, deriving it from
// the URI when the document did not carry one.
func (a *RuntimeArtifact) LocalPath() string {
	if a.Path != "" {
		return a.Path
	}
	return PathForURI(a.URI)
}

// ArtifactList wraps the ordered artifact list the wire format nests under
// each artifact name. Only the first element is used per invocation.
type ArtifactList struct {
	Artifacts []*RuntimeArtifact `json:"artifacts,omitempty"`
}

// First returns the first artifact in the list, or nil if the list is empty.
func (l *ArtifactList) First() *RuntimeArtifact {
	if l == nil || len(l.Artifacts) == 0 {
		return nil
	}
	return l.Artifacts[0]
}

// OutputParameter declares where a produced output parameter value must be
// written on the local filesystem.
type OutputParameter struct {
	OutputFile string `json:"outputFile,omitempty"`
}

// Inputs is the resolved input section of an ExecutorInput document.
type Inputs struct {
	Parameters map[string]*ParameterValue `json:"parameters,omitempty"`
	Artifacts  map[string]*ArtifactList   `json:"artifacts,omitempty"`
}

// Outputs is the declared output section of an ExecutorInput document.
type Outputs struct {
	Parameters map[string]*OutputParameter `json:"parameters,omitempty"`
	Artifacts  map[string]*ArtifactList    `json:"artifacts,omitempty"`
	OutputFile string                      `json:"outputFile,omitempty"`
}

// ExecutorInput is the task contract received from the orchestrator.
// Missing sections are treated as empty, not as errors.
type ExecutorInput struct {
	Inputs  *Inputs  `json:"inputs,omitempty"`
	Outputs *Outputs `json:"outputs,omitempty"`
}

// InputParameters returns the input parameter table, nil-safe.
func (in *ExecutorInput) InputParameters() map[string]*ParameterValue {
	if in.Inputs == nil {
		return nil
	}
	return in.Inputs.Parameters
}

// InputArtifacts returns the input artifact table, nil-safe.
func (in *ExecutorInput) InputArtifacts() map[string]*ArtifactList {
	if in.Inputs == nil {
		return nil
	}
	return in.Inputs.Artifacts
}

// OutputParameters returns the output parameter table, nil-safe.
func (in *ExecutorInput) OutputParameters() map[string]*OutputParameter {
	if in.Outputs == nil {
		return nil
	}
	return in.Outputs.Parameters
}

// OutputArtifacts returns the output artifact table, nil-safe.
func (in *ExecutorInput) OutputArtifacts() map[string]*ArtifactList {
	if in.Outputs == nil {
		return nil
	}
	return in.Outputs.Artifacts
}

// OutputFile returns the path the ExecutorOutput document must be written
// to, or "" when the document did not declare one.
func (in *ExecutorInput) OutputFile() string {
	if in.Outputs == nil {
		return ""
	}
	return in.Outputs.OutputFile
}

// ExecutorOutput is the result contract written back for the orchestrator.
// Parameters is present only when at least one output parameter was
// produced; Artifacts is present only when at least one output artifact was
// declared.
type ExecutorOutput struct {
	Parameters map[string]*ParameterValue `json:"parameters,omitempty"`
	Artifacts  map[string]*ArtifactList   `json:"artifacts,omitempty"`
}
