package executor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ppiankov/funcbridge/pkg/component"
	"github.com/ppiankov/funcbridge/pkg/schema"
	"github.com/ppiankov/funcbridge/pkg/wire"
)

// writeOutput serializes the function result into the ExecutorOutput
// document and writes it to the declared output file. Every declared
// output artifact is emitted whether or not the result referenced it:
// artifact payloads travel by side effect through their local paths, only
// metadata travels in the document. All failures abort before the document
// is written; there is no partial write.
func (e *Executor) writeOutput(result any) error {
	if len(e.outputArtifacts) > 0 {
		e.output.Artifacts = make(map[string]*wire.ArtifactList, len(e.outputArtifacts))
		for name, a := range e.outputArtifacts {
			if err := wire.ValidateMetadata(a.Metadata); err != nil {
				return &ConfigError{
					Component: e.comp.Name,
					Detail:    fmt.Sprintf("artifact %q: %v", name, err),
				}
			}
			e.output.Artifacts[name] = &wire.ArtifactList{
				Artifacts: []*wire.RuntimeArtifact{{
					Name:     a.Name,
					URI:      a.URI,
					Metadata: a.Metadata,
				}},
			}
		}
	}

	if result != nil {
		if err := e.serializeResult(result); err != nil {
			return err
		}
	}

	return e.writeDocument()
}

// serializeResult dispatches the non-nil return value through the return
// declaration: a single value under the conventional output name, or a
// multi-field aggregate keyed by field name.
func (e *Executor) serializeResult(result any) error {
	ret := e.comp.Returns
	switch {
	case ret.Type != nil:
		// A single return value is reported under the name "Output".
		return e.writeSingle("Output", ret.Type, result)

	case len(ret.Fields) > 0:
		values, err := e.fieldValues(result, ret.Fields)
		if err != nil {
			return err
		}
		for i, f := range ret.Fields {
			if err := e.writeSingle(f.Name, f.Type, values[i]); err != nil {
				return err
			}
		}
		return nil

	default:
		return &ConfigError{
			Component: e.comp.Name,
			Detail:    fmt.Sprintf("returned a value of type %T but declares no return", result),
		}
	}
}

// fieldValues flattens the returned aggregate into declared field order,
// accepting positional (component.Values or []any) and named
// (map[string]any) access.
func (e *Executor) fieldValues(result any, fields []schema.Field) ([]any, error) {
	var ordered []any
	switch agg := result.(type) {
	case component.Values:
		ordered = agg
	case []any:
		ordered = agg
	case map[string]any:
		if len(agg) != len(fields) {
			return nil, &ArityMismatchError{Component: e.comp.Name, Want: len(fields), Got: len(agg)}
		}
		for _, f := range fields {
			v, ok := agg[f.Name]
			if !ok {
				return nil, &LookupError{Kind: "return field", Name: f.Name}
			}
			ordered = append(ordered, v)
		}
		return ordered, nil
	default:
		return nil, &ConfigError{
			Component: e.comp.Name,
			Detail:    fmt.Sprintf("multi-field return must be component.Values or map[string]any, got %T", result),
		}
	}

	if len(ordered) != len(fields) {
		return nil, &ArityMismatchError{Component: e.comp.Name, Want: len(fields), Got: len(ordered)}
	}
	return ordered, nil
}

// writeSingle reports one returned value under one output name: scalars go
// into the document as tagged parameter values, artifact payloads are
// written to the artifact's local path.
func (e *Executor) writeSingle(name string, ann schema.Annotation, value any) error {
	switch a := ann.(type) {
	case schema.Scalar:
		pv, ok := scalarValue(a.Kind, value)
		if !ok {
			return &TypeMismatchError{
				Output: name,
				Want:   a.Kind.String(),
				Got:    fmt.Sprintf("%T", value),
			}
		}
		if e.output.Parameters == nil {
			e.output.Parameters = make(map[string]*wire.ParameterValue)
		}
		e.output.Parameters[name] = pv
		return nil

	case schema.OutputArtifact:
		path, err := e.outputArtifactPath(name)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(fmt.Sprint(value)), 0o644); err != nil {
			return fmt.Errorf("write artifact payload %q: %w", name, err)
		}
		return nil

	default:
		return &ConfigError{
			Component: e.comp.Name,
			Detail:    fmt.Sprintf("output %q has unsupported return annotation", name),
		}
	}
}

// scalarValue converts a returned value into the tagged wire union,
// requiring the runtime type to match the declared kind. Integer widths
// and float widths are normalized; nothing else is coerced.
func scalarValue(kind schema.ScalarKind, v any) (*wire.ParameterValue, bool) {
	switch kind {
	case schema.KindString:
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		return wire.StringParam(s), true
	case schema.KindInteger:
		switch i := v.(type) {
		case int:
			return wire.IntParam(int64(i)), true
		case int32:
			return wire.IntParam(int64(i)), true
		case int64:
			return wire.IntParam(i), true
		}
		return nil, false
	case schema.KindDouble:
		switch f := v.(type) {
		case float32:
			return wire.DoubleParam(float64(f)), true
		case float64:
			return wire.DoubleParam(f), true
		}
		return nil, false
	default:
		return nil, false
	}
}

// writeDocument marshals the ExecutorOutput and writes it to the declared
// output file atomically (tmp then rename).
func (e *Executor) writeDocument() error {
	data, err := json.MarshalIndent(&e.output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal executor output: %w", err)
	}

	path := e.input.OutputFile()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("prepare output file: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write executor output: %w", err)
	}
	return os.Rename(tmp, path)
}
