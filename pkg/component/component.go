// Package component defines the contract a task author supplies to the
// executor: a named function, an ordered list of typed parameters, and a
// return declaration. The executor binds arguments and interprets results
// purely from these declarations.
package component

import (
	"context"
	"fmt"

	"github.com/ppiankov/funcbridge/pkg/schema"
	"github.com/ppiankov/funcbridge/pkg/wire"
)

// Args holds the bound arguments for one invocation, keyed by parameter
// name. Absent scalar parameters are present with a nil value.
type Args map[string]any

// Str returns the named string parameter, or "" when absent.
func (a Args) Str(name string) string {
	v, _ := a[name].(string)
	return v
}

// Int returns the named integer parameter, or 0 when absent.
func (a Args) Int(name string) int64 {
	v, _ := a[name].(int64)
	return v
}

// Float returns the named double parameter, or 0 when absent.
func (a Args) Float(name string) float64 {
	v, _ := a[name].(float64)
	return v
}

// Artifact returns the named artifact handle, or nil when absent.
func (a Args) Artifact(name string) *wire.RuntimeArtifact {
	v, _ := a[name].(*wire.RuntimeArtifact)
	return v
}

// Path returns the named path-typed parameter, or "" when absent.
func (a Args) Path(name string) string {
	v, _ := a[name].(string)
	return v
}

// Values is the positional aggregate for multi-field returns. A function
// with named fields may instead return a map[string]any keyed by field
// name; both forms are accepted.
type Values []any

// Func is the task entry point. The executor calls it once with fully
// bound arguments; the returned value must satisfy the component's return
// declaration. An error is the task body's own failure and is propagated
// to the process boundary unmodified.
type Func func(ctx context.Context, args Args) (any, error)

// Parameter is one named, typed slot of a component signature.
type Parameter struct {
	Name string
	Type schema.Annotation
}

// Component couples a function with its declared signature.
type Component struct {
	Name       string
	Parameters []Parameter
	Returns    schema.Return
	Run        Func
}

// Validate checks the signature for problems the executor would otherwise
// reject mid-invocation: unnamed or duplicate parameters, annotations that
// classify to no binding strategy, and return declarations outside the
// supported shapes.
func (c *Component) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("component with empty name")
	}

	seen := make(map[string]struct{}, len(c.Parameters))
	for _, p := range c.Parameters {
		if p.Name == "" {
			return fmt.Errorf("component %q has a parameter with empty name", c.Name)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("component %q has duplicate parameter %q", c.Name, p.Name)
		}
		seen[p.Name] = struct{}{}

		if _, ok := schema.Classify(p.Type); !ok {
			return fmt.Errorf("component %q parameter %q has unsupported annotation", c.Name, p.Name)
		}
	}

	return validateReturn(c.Name, c.Returns)
}

func validateReturn(name string, r schema.Return) error {
	if r.Type != nil && len(r.Fields) > 0 {
		return fmt.Errorf("component %q declares both a single return type and return fields", name)
	}
	if r.Type != nil {
		if !returnable(r.Type) {
			return fmt.Errorf("component %q has unsupported return annotation %s", name, r.Type)
		}
		return nil
	}

	seen := make(map[string]struct{}, len(r.Fields))
	for _, f := range r.Fields {
		if f.Name == "" {
			return fmt.Errorf("component %q has a return field with empty name", name)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("component %q has duplicate return field %q", name, f.Name)
		}
		seen[f.Name] = struct{}{}

		if !returnable(f.Type) {
			return fmt.Errorf("component %q return field %q has unsupported annotation", name, f.Name)
		}
	}
	return nil
}

// returnable reports whether an annotation is valid in return position:
// a scalar value or an output artifact payload.
func returnable(ann schema.Annotation) bool {
	switch ann.(type) {
	case schema.Scalar, schema.OutputArtifact:
		return true
	default:
		return false
	}
}
