package executor

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ppiankov/funcbridge/pkg/component"
	"github.com/ppiankov/funcbridge/pkg/schema"
	"github.com/ppiankov/funcbridge/pkg/wire"
)

// testInput builds an ExecutorInput rooted in a fresh temp dir. The
// returned dir is the invocation's private path namespace.
func testInput(t *testing.T) (*wire.ExecutorInput, string) {
	t.Helper()
	dir := t.TempDir()
	in := &wire.ExecutorInput{
		Inputs: &wire.Inputs{
			Parameters: map[string]*wire.ParameterValue{},
			Artifacts:  map[string]*wire.ArtifactList{},
		},
		Outputs: &wire.Outputs{
			Parameters: map[string]*wire.OutputParameter{},
			Artifacts:  map[string]*wire.ArtifactList{},
			OutputFile: filepath.Join(dir, "out", "output_metadata.json"),
		},
	}
	return in, dir
}

func addInputArtifact(in *wire.ExecutorInput, name, path string) *wire.RuntimeArtifact {
	a := &wire.RuntimeArtifact{Name: name, URI: "file://" + path, Path: path}
	in.Inputs.Artifacts[name] = &wire.ArtifactList{Artifacts: []*wire.RuntimeArtifact{a}}
	return a
}

func addOutputArtifact(in *wire.ExecutorInput, name, path string) *wire.RuntimeArtifact {
	a := &wire.RuntimeArtifact{Name: name, URI: "file://" + path, Path: path}
	in.Outputs.Artifacts[name] = &wire.ArtifactList{Artifacts: []*wire.RuntimeArtifact{a}}
	return a
}

func scalar(k schema.ScalarKind) schema.Annotation { return schema.Scalar{Kind: k} }

// readOutput decodes the written ExecutorOutput document.
func readOutput(t *testing.T, in *wire.ExecutorInput) *wire.ExecutorOutput {
	t.Helper()
	data, err := os.ReadFile(in.OutputFile())
	if err != nil {
		t.Fatalf("read output document: %v", err)
	}
	var out wire.ExecutorOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("parse output document: %v", err)
	}
	return &out
}

func TestBindScalarParameters(t *testing.T) {
	in, _ := testInput(t)
	in.Inputs.Parameters["message"] = wire.StringParam("hello")
	in.Inputs.Parameters["count"] = wire.IntParam(3)
	in.Inputs.Parameters["ratio"] = wire.DoubleParam(0.25)

	var got component.Args
	comp := &component.Component{
		Name: "scalars",
		Parameters: []component.Parameter{
			{Name: "message", Type: scalar(schema.KindString)},
			{Name: "count", Type: scalar(schema.KindInteger)},
			{Name: "ratio", Type: scalar(schema.KindDouble)},
		},
		Run: func(ctx context.Context, args component.Args) (any, error) {
			got = args
			return nil, nil
		},
	}

	if err := Run(context.Background(), in, comp); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if v := got["message"]; v != "hello" {
		t.Errorf("message = %v (%T)", v, v)
	}
	if v := got["count"]; v != int64(3) {
		t.Errorf("count = %v (%T)", v, v)
	}
	if v := got["ratio"]; v != 0.25 {
		t.Errorf("ratio = %v (%T)", v, v)
	}
}

// A zero-valued parameter is a provided value, not absence.
func TestBindScalarZeroValues(t *testing.T) {
	in, _ := testInput(t)
	in.Inputs.Parameters["count"] = wire.IntParam(0)
	in.Inputs.Parameters["ratio"] = wire.DoubleParam(0)

	comp := &component.Component{
		Name: "zeros",
		Parameters: []component.Parameter{
			{Name: "count", Type: scalar(schema.KindInteger)},
			{Name: "ratio", Type: scalar(schema.KindDouble)},
		},
		Run: func(ctx context.Context, args component.Args) (any, error) {
			if args["count"] != int64(0) {
				t.Errorf("count = %v, want 0", args["count"])
			}
			if args["ratio"] != 0.0 {
				t.Errorf("ratio = %v, want 0", args["ratio"])
			}
			return nil, nil
		},
	}

	if err := Run(context.Background(), in, comp); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestBindAbsentScalarIsNil(t *testing.T) {
	in, _ := testInput(t)
	comp := &component.Component{
		Name:       "absent",
		Parameters: []component.Parameter{{Name: "missing", Type: scalar(schema.KindString)}},
		Run: func(ctx context.Context, args component.Args) (any, error) {
			if v, present := args["missing"]; !present || v != nil {
				t.Errorf("missing = %v (present=%v), want nil sentinel", v, present)
			}
			return nil, nil
		},
	}

	if err := Run(context.Background(), in, comp); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestBindArtifactHandles(t *testing.T) {
	in, dir := testInput(t)
	inArt := addInputArtifact(in, "dataset", filepath.Join(dir, "in", "dataset"))
	outArt := addOutputArtifact(in, "model", filepath.Join(dir, "artifacts", "model"))

	comp := &component.Component{
		Name: "handles",
		Parameters: []component.Parameter{
			{Name: "dataset", Type: schema.InputArtifact{}},
			{Name: "model", Type: schema.OutputArtifact{}},
		},
		Run: func(ctx context.Context, args component.Args) (any, error) {
			if args.Artifact("dataset") != inArt {
				t.Error("dataset handle not bound")
			}
			if args.Artifact("model") != outArt {
				t.Error("model handle not bound")
			}
			return nil, nil
		},
	}

	if err := Run(context.Background(), in, comp); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Output artifact dir must exist before the function runs.
	if _, err := os.Stat(filepath.Join(dir, "artifacts")); err != nil {
		t.Errorf("output artifact dir not created: %v", err)
	}
}

func TestBindPathParameters(t *testing.T) {
	in, dir := testInput(t)
	addInputArtifact(in, "dataset", filepath.Join(dir, "in", "dataset"))
	addOutputArtifact(in, "model", filepath.Join(dir, "artifacts", "model"))
	countFile := filepath.Join(dir, "params", "count")
	in.Outputs.Parameters["count"] = &wire.OutputParameter{OutputFile: countFile}

	comp := &component.Component{
		Name: "paths",
		Parameters: []component.Parameter{
			{Name: "dataset_path", Type: schema.InputPath{}},
			{Name: "model_file", Type: schema.OutputPath{}},
			{Name: "count_path", Type: schema.OutputPath{Of: scalar(schema.KindInteger)}},
		},
		Run: func(ctx context.Context, args component.Args) (any, error) {
			if got := args.Path("dataset_path"); got != filepath.Join(dir, "in", "dataset") {
				t.Errorf("dataset_path = %q", got)
			}
			if got := args.Path("model_file"); got != filepath.Join(dir, "artifacts", "model") {
				t.Errorf("model_file = %q", got)
			}
			if got := args.Path("count_path"); got != countFile {
				t.Errorf("count_path = %q", got)
			}
			return nil, nil
		},
	}

	if err := Run(context.Background(), in, comp); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Parent dir of the output parameter file is created during binding.
	if _, err := os.Stat(filepath.Join(dir, "params")); err != nil {
		t.Errorf("output parameter dir not created: %v", err)
	}
}

func TestLookupErrors(t *testing.T) {
	cases := []struct {
		name  string
		param component.Parameter
	}{
		{"input artifact", component.Parameter{Name: "dataset", Type: schema.InputArtifact{}}},
		{"output artifact", component.Parameter{Name: "model", Type: schema.OutputArtifact{}}},
		{"input path", component.Parameter{Name: "dataset_path", Type: schema.InputPath{}}},
		{"output artifact path", component.Parameter{Name: "model_path", Type: schema.OutputPath{}}},
		{"output parameter path", component.Parameter{Name: "count_path", Type: schema.OutputPath{Of: scalar(schema.KindInteger)}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in, _ := testInput(t)
			invoked := false
			comp := &component.Component{
				Name:       "lookup",
				Parameters: []component.Parameter{tc.param},
				Run: func(ctx context.Context, args component.Args) (any, error) {
					invoked = true
					return nil, nil
				},
			}

			err := Run(context.Background(), in, comp)
			var lookupErr *LookupError
			if !errors.As(err, &lookupErr) {
				t.Fatalf("expected LookupError, got %v", err)
			}
			if invoked {
				t.Error("function must not run after a lookup failure")
			}
		})
	}
}

func TestUnclassifiableAnnotationIsConfigError(t *testing.T) {
	in, _ := testInput(t)
	invoked := false
	comp := &component.Component{
		Name:       "badann",
		Parameters: []component.Parameter{{Name: "x", Type: nil}},
		Run: func(ctx context.Context, args component.Args) (any, error) {
			invoked = true
			return nil, nil
		},
	}

	err := Run(context.Background(), in, comp)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if invoked {
		t.Error("function must not run after a configuration failure")
	}
}

func TestTaskBodyErrorPropagatesUnwrapped(t *testing.T) {
	in, _ := testInput(t)
	boom := errors.New("boom")
	comp := &component.Component{
		Name: "failing",
		Run: func(ctx context.Context, args component.Args) (any, error) {
			return nil, boom
		},
	}

	if err := Run(context.Background(), in, comp); err != boom {
		t.Fatalf("expected the task error unmodified, got %v", err)
	}
	if _, err := os.Stat(in.OutputFile()); !os.IsNotExist(err) {
		t.Error("output document must not be written when the task fails")
	}
}

func TestExecuteIsTerminal(t *testing.T) {
	in, _ := testInput(t)
	runs := 0
	comp := &component.Component{
		Name: "once",
		Run: func(ctx context.Context, args component.Args) (any, error) {
			runs++
			return nil, nil
		},
	}

	e, err := New(in, comp)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.Execute(context.Background()); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if err := e.Execute(context.Background()); err == nil {
		t.Error("expected error on reentry")
	}
	if runs != 1 {
		t.Errorf("function ran %d times, want 1", runs)
	}
}

func TestResolverDirectoryCreationIdempotent(t *testing.T) {
	in, dir := testInput(t)
	addOutputArtifact(in, "model", filepath.Join(dir, "artifacts", "model"))

	if _, err := New(in, &component.Component{Name: "x", Run: func(ctx context.Context, args component.Args) (any, error) { return nil, nil }}); err != nil {
		t.Fatalf("first New: %v", err)
	}
	if _, err := New(in, &component.Component{Name: "x", Run: func(ctx context.Context, args component.Args) (any, error) { return nil, nil }}); err != nil {
		t.Fatalf("second New against existing dirs: %v", err)
	}
}
