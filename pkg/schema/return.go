package schema

import "strings"

// Field is one named, typed slot of a multi-field return.
type Field struct {
	Name string
	Type Annotation
}

// Return describes a function's declared return contract: void (zero value),
// a single typed value, or a fixed ordered set of named fields. Type and
// Fields are mutually exclusive.
type Return struct {
	Type   Annotation
	Fields []Field
}

// Void reports whether the return contract declares no value.
func (r Return) Void() bool {
	return r.Type == nil && len(r.Fields) == 0
}

// ReturnValue builds a single-value return contract.
func ReturnValue(ann Annotation) Return {
	return Return{Type: ann}
}

// ReturnFields builds a multi-field return contract.
func ReturnFields(fields ...Field) Return {
	return Return{Fields: fields}
}

// StripPathSuffix recovers the logical name a path-typed parameter refers to
// by removing a trailing "_path" or "_file" suffix. At most one suffix is
// removed, "_path" checked first: "model_file_path" becomes "model_file",
// not "model".
func StripPathSuffix(name string) string {
	if strings.HasSuffix(name, "_path") {
		return strings.TrimSuffix(name, "_path")
	}
	if strings.HasSuffix(name, "_file") {
		return strings.TrimSuffix(name, "_file")
	}
	return name
}
