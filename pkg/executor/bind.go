package executor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ppiankov/funcbridge/pkg/component"
	"github.com/ppiankov/funcbridge/pkg/schema"
)

// bind produces the concrete argument for every declared parameter by
// classifying its annotation and applying the matching strategy.
func (e *Executor) bind() (component.Args, error) {
	args := make(component.Args, len(e.comp.Parameters))

	for _, p := range e.comp.Parameters {
		strategy, ok := schema.Classify(p.Type)
		if !ok {
			return nil, &ConfigError{
				Component: e.comp.Name,
				Detail:    fmt.Sprintf("parameter %q has no binding strategy", p.Name),
			}
		}

		switch strategy {
		case schema.BindParameter:
			// Absence is not an error: the argument is bound to nil.
			args[p.Name] = e.input.InputParameters()[p.Name].Value()

		case schema.BindInputArtifact:
			a, ok := e.inputArtifacts[p.Name]
			if !ok {
				return nil, &LookupError{Kind: "input artifact", Name: p.Name}
			}
			args[p.Name] = a

		case schema.BindOutputArtifact:
			a, ok := e.outputArtifacts[p.Name]
			if !ok {
				return nil, &LookupError{Kind: "output artifact", Name: p.Name}
			}
			args[p.Name] = a

		case schema.BindInputArtifactPath:
			path, err := e.inputArtifactPath(p.Name)
			if err != nil {
				return nil, err
			}
			args[p.Name] = path

		case schema.BindOutputParameterPath:
			path, err := e.outputParameterPath(p.Name)
			if err != nil {
				return nil, err
			}
			args[p.Name] = path

		case schema.BindOutputArtifactPath:
			path, err := e.outputArtifactPath(p.Name)
			if err != nil {
				return nil, err
			}
			args[p.Name] = path
		}
	}

	return args, nil
}

// inputArtifactPath resolves the local path of the input artifact a
// path-typed parameter refers to.
func (e *Executor) inputArtifactPath(param string) (string, error) {
	name := schema.StripPathSuffix(param)
	a, ok := e.inputArtifacts[name]
	if !ok {
		return "", &LookupError{Kind: "input artifact", Name: name}
	}
	return a.LocalPath(), nil
}

// outputArtifactPath resolves the local path of the output artifact a
// path-typed parameter refers to.
func (e *Executor) outputArtifactPath(param string) (string, error) {
	name := schema.StripPathSuffix(param)
	a, ok := e.outputArtifacts[name]
	if !ok {
		return "", &LookupError{Kind: "output artifact", Name: name}
	}
	return a.LocalPath(), nil
}

// outputParameterPath resolves the declared output file for a scalar
// output parameter, creating its parent directory so the function body can
// write through the path directly.
func (e *Executor) outputParameterPath(param string) (string, error) {
	name := schema.StripPathSuffix(param)
	decl, ok := e.input.OutputParameters()[name]
	if !ok || decl.OutputFile == "" {
		return "", &LookupError{Kind: "output parameter", Name: name}
	}
	if err := os.MkdirAll(filepath.Dir(decl.OutputFile), 0o755); err != nil {
		return "", fmt.Errorf("prepare output parameter %q: %w", name, err)
	}
	return decl.OutputFile, nil
}
