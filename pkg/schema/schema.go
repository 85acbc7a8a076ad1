// Package schema models the declared types of component function parameters
// and returns, and classifies each declaration into the binding strategy the
// executor must apply. Classification is total over the supported shapes: a
// declaration matching no strategy is rejected, never guessed at.
package schema

import "fmt"

// ScalarKind identifies one of the three scalar parameter types.
type ScalarKind int

const (
	KindString ScalarKind = iota
	KindInteger
	KindDouble
)

func (k ScalarKind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindInteger:
		return "Integer"
	case KindDouble:
		return "Double"
	default:
		return "UNKNOWN"
	}
}

// Annotation is the declared type of a single parameter or return slot.
// Implementations are closed: Scalar, InputArtifact, OutputArtifact,
// InputPath and OutputPath are the only shapes the executor understands.
type Annotation interface {
	fmt.Stringer
	annotation()
}

// Scalar declares a plain string/integer/double parameter whose value is
// supplied directly from the input document.
type Scalar struct {
	Kind ScalarKind
}

// InputArtifact declares a handle to an artifact resolved from the input
// document's input-artifact table.
type InputArtifact struct{}

// OutputArtifact declares a handle to an artifact slot resolved from the
// input document's output-artifact table. As a return annotation it means
// the returned value is written as the artifact's payload.
type OutputArtifact struct{}

// InputPath declares that the parameter receives the local filesystem path
// of the matching input artifact rather than the artifact handle itself.
// Of records the declared element type; binding does not depend on it.
type InputPath struct {
	Of Annotation
}

// OutputPath declares that the parameter receives a writable local path.
// When Of is a Scalar the path is the declared output-parameter file;
// otherwise it is the local path of the matching output artifact.
type OutputPath struct {
	Of Annotation
}

func (Scalar) annotation()         {}
func (InputArtifact) annotation()  {}
func (OutputArtifact) annotation() {}
func (InputPath) annotation()      {}
func (OutputPath) annotation()     {}

func (s Scalar) String() string         { return s.Kind.String() }
func (InputArtifact) String() string    { return "InputArtifact" }
func (OutputArtifact) String() string   { return "OutputArtifact" }
func (p InputPath) String() string      { return "InputPath[" + ofString(p.Of) + "]" }
func (p OutputPath) String() string     { return "OutputPath[" + ofString(p.Of) + "]" }

func ofString(of Annotation) string {
	if of == nil {
		return "Artifact"
	}
	return of.String()
}

// Strategy identifies how one parameter is bound to a concrete value.
type Strategy int

const (
	BindParameter Strategy = iota
	BindInputArtifact
	BindOutputArtifact
	BindInputArtifactPath
	BindOutputParameterPath
	BindOutputArtifactPath
)

func (s Strategy) String() string {
	switch s {
	case BindParameter:
		return "parameter"
	case BindInputArtifact:
		return "input artifact"
	case BindOutputArtifact:
		return "output artifact"
	case BindInputArtifactPath:
		return "input artifact path"
	case BindOutputParameterPath:
		return "output parameter path"
	case BindOutputArtifactPath:
		return "output artifact path"
	default:
		return "UNKNOWN"
	}
}

// Classify maps an annotation to its binding strategy. The second return is
// false when the annotation matches no strategy (including a nil annotation),
// which callers must treat as a configuration error.
func Classify(ann Annotation) (Strategy, bool) {
	switch a := ann.(type) {
	case Scalar:
		return BindParameter, true
	case InputArtifact:
		return BindInputArtifact, true
	case OutputArtifact:
		return BindOutputArtifact, true
	case InputPath:
		return BindInputArtifactPath, true
	case OutputPath:
		if _, scalar := a.Of.(Scalar); scalar {
			return BindOutputParameterPath, true
		}
		return BindOutputArtifactPath, true
	default:
		return 0, false
	}
}
