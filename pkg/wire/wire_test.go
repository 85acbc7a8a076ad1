package wire

import (
	"encoding/json"
	"testing"
)

func TestParameterValue_DecodeByTag(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want any
	}{
		{"string", `{"stringValue": "hello"}`, "hello"},
		{"int number", `{"intValue": 42}`, int64(42)},
		{"int string", `{"intValue": "42"}`, int64(42)},
		{"double number", `{"doubleValue": 1.5}`, 1.5},
		{"double string", `{"doubleValue": "1.5"}`, 1.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var p ParameterValue
			if err := json.Unmarshal([]byte(tc.in), &p); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := p.Value(); got != tc.want {
				t.Errorf("Value() = %v (%T), want %v (%T)", got, got, tc.want, tc.want)
			}
		})
	}
}

// Zero scalars are values, not absence: the tagged union must keep them.
func TestParameterValue_ZeroValuesPreserved(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want any
	}{
		{"zero int", `{"intValue": 0}`, int64(0)},
		{"zero double", `{"doubleValue": 0.0}`, 0.0},
		{"empty string", `{"stringValue": ""}`, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var p ParameterValue
			if err := json.Unmarshal([]byte(tc.in), &p); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			got := p.Value()
			if got == nil {
				t.Fatal("zero value decoded as absent")
			}
			if got != tc.want {
				t.Errorf("Value() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParameterValue_AbsentIsNil(t *testing.T) {
	var p ParameterValue
	if err := json.Unmarshal([]byte(`{}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Value() != nil {
		t.Errorf("empty union decoded to %v, want nil", p.Value())
	}

	var absent *ParameterValue
	if absent.Value() != nil {
		t.Error("nil receiver must decode to nil")
	}
}

func TestParameterValue_BadNumeric(t *testing.T) {
	var p ParameterValue
	if err := json.Unmarshal([]byte(`{"intValue": "abc"}`), &p); err == nil {
		t.Error("expected error for non-numeric intValue")
	}
	if err := json.Unmarshal([]byte(`{"doubleValue": true}`), &p); err == nil {
		t.Error("expected error for boolean doubleValue")
	}
}

func TestPathForURI(t *testing.T) {
	cases := []struct {
		uri  string
		want string
	}{
		{"gs://bucket/dir/data", "/gcs/bucket/dir/data"},
		{"s3://bucket/obj", "/s3/bucket/obj"},
		{"minio://bucket/obj", "/minio/bucket/obj"},
		{"file:///tmp/x", "/tmp/x"},
		{"/already/local", "/already/local"},
		{"relative/path", "relative/path"},
	}

	for _, tc := range cases {
		if got := PathForURI(tc.uri); got != tc.want {
			t.Errorf("PathForURI(%q) = %q, want %q", tc.uri, got, tc.want)
		}
	}
}

func TestRuntimeArtifact_LocalPath(t *testing.T) {
	a := &RuntimeArtifact{URI: "gs://b/o"}
	if got := a.LocalPath(); got != "/gcs/b/o" {
		t.Errorf("LocalPath() = %q, want derived path", got)
	}

	a.Path = "/explicit"
	if got := a.LocalPath(); got != "/explicit" {
		t.Errorf("LocalPath() = %q, want explicit path to win", got)
	}
}

func TestArtifactList_First(t *testing.T) {
	var nilList *ArtifactList
	if nilList.First() != nil {
		t.Error("nil list must yield nil")
	}
	if (&ArtifactList{}).First() != nil {
		t.Error("empty list must yield nil")
	}

	a := &RuntimeArtifact{Name: "a"}
	l := &ArtifactList{Artifacts: []*RuntimeArtifact{a, {Name: "b"}}}
	if l.First() != a {
		t.Error("First() must return the first descriptor")
	}
}

func TestExecutorInput_NilSections(t *testing.T) {
	var in ExecutorInput
	if in.InputParameters() != nil || in.InputArtifacts() != nil {
		t.Error("missing inputs section must read as empty")
	}
	if in.OutputParameters() != nil || in.OutputArtifacts() != nil {
		t.Error("missing outputs section must read as empty")
	}
	if in.OutputFile() != "" {
		t.Error("missing outputs section must yield empty output file")
	}
}

func TestValidate_RequiresOutputFile(t *testing.T) {
	in := &ExecutorInput{Outputs: &Outputs{}}
	if err := in.Validate(); err == nil {
		t.Error("expected error for missing outputFile")
	}

	in.Outputs.OutputFile = "/tmp/out.json"
	if err := in.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_EmptyArtifactList(t *testing.T) {
	in := &ExecutorInput{
		Inputs:  &Inputs{Artifacts: map[string]*ArtifactList{"a": {}}},
		Outputs: &Outputs{OutputFile: "/tmp/out.json"},
	}
	if err := in.Validate(); err == nil {
		t.Error("expected error for empty input artifact list")
	}
}
