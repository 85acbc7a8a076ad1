package schema

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		ann  Annotation
		want Strategy
	}{
		{"string scalar", Scalar{Kind: KindString}, BindParameter},
		{"integer scalar", Scalar{Kind: KindInteger}, BindParameter},
		{"double scalar", Scalar{Kind: KindDouble}, BindParameter},
		{"input artifact", InputArtifact{}, BindInputArtifact},
		{"output artifact", OutputArtifact{}, BindOutputArtifact},
		{"input path", InputPath{}, BindInputArtifactPath},
		{"input path of scalar", InputPath{Of: Scalar{Kind: KindString}}, BindInputArtifactPath},
		{"output path of scalar", OutputPath{Of: Scalar{Kind: KindInteger}}, BindOutputParameterPath},
		{"output path of artifact", OutputPath{}, BindOutputArtifactPath},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Classify(tc.ann)
			if !ok {
				t.Fatalf("Classify(%v) not classified", tc.ann)
			}
			if got != tc.want {
				t.Errorf("Classify(%v) = %v, want %v", tc.ann, got, tc.want)
			}
		})
	}
}

func TestClassify_NilAnnotation(t *testing.T) {
	if _, ok := Classify(nil); ok {
		t.Error("nil annotation must not classify")
	}
}

func TestStripPathSuffix(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"dataset_path", "dataset"},
		{"dataset_file", "dataset"},
		{"dataset", "dataset"},
		{"model_file_path", "model_file"}, // at most one suffix removed
		{"model_path_file", "model_path"},
		{"_path", ""},
		{"_file", ""},
	}

	for _, tc := range cases {
		if got := StripPathSuffix(tc.in); got != tc.want {
			t.Errorf("StripPathSuffix(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestReturn_Void(t *testing.T) {
	if !(Return{}).Void() {
		t.Error("zero Return must be void")
	}
	if ReturnValue(Scalar{Kind: KindString}).Void() {
		t.Error("single-value Return must not be void")
	}
	if ReturnFields(Field{Name: "a", Type: Scalar{Kind: KindInteger}}).Void() {
		t.Error("multi-field Return must not be void")
	}
}

func TestStrategy_String(t *testing.T) {
	if Strategy(99).String() != "UNKNOWN" {
		t.Errorf("unexpected string for out-of-range strategy: %q", Strategy(99).String())
	}
	if BindOutputParameterPath.String() != "output parameter path" {
		t.Errorf("unexpected string: %q", BindOutputParameterPath.String())
	}
}
