// Package executor bridges an ExecutorInput document and a component
// function: it resolves artifact tables from the document, binds each
// parameter by its declared annotation, invokes the function once, and
// serializes the result into the ExecutorOutput document.
package executor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ppiankov/funcbridge/pkg/component"
	"github.com/ppiankov/funcbridge/pkg/wire"
)

// Run resolves, binds, invokes, and serializes in one call. It is the
// common entry point for callers that do not need the intermediate state.
func Run(ctx context.Context, input *wire.ExecutorInput, comp *component.Component) error {
	e, err := New(input, comp)
	if err != nil {
		return err
	}
	return e.Execute(ctx)
}

// Executor performs exactly one invocation of one component against one
// ExecutorInput document. It holds no state beyond that invocation.
type Executor struct {
	comp  *component.Component
	input *wire.ExecutorInput

	inputArtifacts  map[string]*wire.RuntimeArtifact
	outputArtifacts map[string]*wire.RuntimeArtifact

	output wire.ExecutorOutput
	done   bool
}

// New resolves the input document into artifact lookup tables and prepares
// the local filesystem: every declared output artifact has its containing
// directory created before the function can run. Input artifacts are left
// untouched; they are expected to already exist.
func New(input *wire.ExecutorInput, comp *component.Component) (*Executor, error) {
	if input == nil {
		return nil, fmt.Errorf("nil executor input")
	}
	if comp == nil || comp.Run == nil {
		return nil, fmt.Errorf("no component function to execute")
	}
	if input.OutputFile() == "" {
		return nil, fmt.Errorf("executor input declares no outputs.outputFile")
	}

	e := &Executor{
		comp:            comp,
		input:           input,
		inputArtifacts:  make(map[string]*wire.RuntimeArtifact),
		outputArtifacts: make(map[string]*wire.RuntimeArtifact),
	}

	for name, list := range input.InputArtifacts() {
		a := list.First()
		if a == nil {
			continue
		}
		a.Path = a.LocalPath()
		e.inputArtifacts[name] = a
	}

	for name, list := range input.OutputArtifacts() {
		a := list.First()
		if a == nil {
			continue
		}
		a.Path = a.LocalPath()
		if err := os.MkdirAll(filepath.Dir(a.Path), 0o755); err != nil {
			return nil, fmt.Errorf("prepare output artifact %q: %w", name, err)
		}
		e.outputArtifacts[name] = a
	}

	return e, nil
}

// Execute binds arguments, invokes the component function, and writes the
// ExecutorOutput document. It is a single terminal transition: a second
// call is an error. On any failure the output document is not written.
func (e *Executor) Execute(ctx context.Context) error {
	if e.done {
		return fmt.Errorf("executor already ran component %q", e.comp.Name)
	}

	args, err := e.bind()
	if err != nil {
		return err
	}

	e.done = true
	result, err := e.comp.Run(ctx, args)
	if err != nil {
		// Task-body failure. Not this layer's to interpret: propagate as-is.
		return err
	}

	return e.writeOutput(result)
}
