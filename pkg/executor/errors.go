package executor

import "fmt"

// ConfigError reports a component declaration the executor cannot act on:
// an annotation that classifies to no binding strategy, or a return shape
// outside the supported set. Fatal; the function never runs (or, for
// return shapes, its result is never reported).
type ConfigError struct {
	Component string
	Detail    string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("component %q: %s", e.Component, e.Detail)
}

// LookupError reports a referenced artifact or output-parameter name absent
// from the resolved tables. Fatal, surfaced before the function runs.
type LookupError struct {
	Kind string // "input artifact", "output artifact", "output parameter"
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no %s named %q", e.Kind, e.Name)
}

// TypeMismatchError reports a returned scalar whose runtime type disagrees
// with the declared return annotation.
type TypeMismatchError struct {
	Output string
	Want   string
	Got    string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("output %q: returned %s, declared %s", e.Output, e.Got, e.Want)
}

// ArityMismatchError reports a multi-field return whose value count
// disagrees with the declared field count.
type ArityMismatchError struct {
	Component string
	Want      int
	Got       int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("component %q: returned %d values, declared %d fields", e.Component, e.Got, e.Want)
}
