package component

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/funcbridge/pkg/schema"
)

// specFile is the YAML layout of a component signature declared next to
// the binary instead of in Go code:
//
//	name: train
//	inputs:
//	  - {name: message, type: String}
//	  - {name: dataset, type: InputArtifact}
//	  - {name: model_path, type: "OutputPath[Artifact]"}
//	returns:
//	  fields:
//	    - {name: accuracy, type: Double}
type specFile struct {
	Name    string      `yaml:"name"`
	Inputs  []paramSpec `yaml:"inputs,omitempty"`
	Returns *returnSpec `yaml:"returns,omitempty"`
}

type paramSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type returnSpec struct {
	Type   string      `yaml:"type,omitempty"`
	Fields []paramSpec `yaml:"fields,omitempty"`
}

// LoadSpec reads a YAML component signature. The returned component has no
// function attached; the caller assigns Run before registering it.
func LoadSpec(path string) (*Component, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read component spec: %w", err)
	}

	var sf specFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse component spec %s: %w", path, err)
	}

	c := &Component{Name: sf.Name}
	for _, p := range sf.Inputs {
		ann, err := ParseType(p.Type)
		if err != nil {
			return nil, fmt.Errorf("component spec %s: input %q: %w", path, p.Name, err)
		}
		c.Parameters = append(c.Parameters, Parameter{Name: p.Name, Type: ann})
	}

	if sf.Returns != nil {
		if sf.Returns.Type != "" && len(sf.Returns.Fields) > 0 {
			return nil, fmt.Errorf("component spec %s: returns declares both type and fields", path)
		}
		if sf.Returns.Type != "" {
			ann, err := ParseType(sf.Returns.Type)
			if err != nil {
				return nil, fmt.Errorf("component spec %s: returns: %w", path, err)
			}
			c.Returns = schema.ReturnValue(ann)
		}
		for _, f := range sf.Returns.Fields {
			ann, err := ParseType(f.Type)
			if err != nil {
				return nil, fmt.Errorf("component spec %s: return field %q: %w", path, f.Name, err)
			}
			c.Returns.Fields = append(c.Returns.Fields, schema.Field{Name: f.Name, Type: ann})
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("component spec %s: %w", path, err)
	}
	return c, nil
}

// ParseType parses the signature-file type grammar into an annotation:
// String, Integer, Double, InputArtifact, OutputArtifact, InputPath,
// OutputPath, and the bracketed forms InputPath[T] / OutputPath[T].
func ParseType(s string) (schema.Annotation, error) {
	name, of, err := splitType(s)
	if err != nil {
		return nil, err
	}

	switch name {
	case "String":
		return schema.Scalar{Kind: schema.KindString}, nil
	case "Integer":
		return schema.Scalar{Kind: schema.KindInteger}, nil
	case "Double":
		return schema.Scalar{Kind: schema.KindDouble}, nil
	case "InputArtifact", "Artifact":
		return schema.InputArtifact{}, nil
	case "OutputArtifact":
		return schema.OutputArtifact{}, nil
	case "InputPath":
		inner, err := parseOf(of)
		if err != nil {
			return nil, fmt.Errorf("type %q: %w", s, err)
		}
		return schema.InputPath{Of: inner}, nil
	case "OutputPath":
		inner, err := parseOf(of)
		if err != nil {
			return nil, fmt.Errorf("type %q: %w", s, err)
		}
		return schema.OutputPath{Of: inner}, nil
	default:
		return nil, fmt.Errorf("unknown type %q", s)
	}
}

// splitType separates "OutputPath[String]" into "OutputPath" and "String".
func splitType(s string) (name, of string, err error) {
	s = strings.TrimSpace(s)
	open := strings.IndexByte(s, '[')
	if open < 0 {
		return s, "", nil
	}
	if !strings.HasSuffix(s, "]") {
		return "", "", fmt.Errorf("malformed type %q", s)
	}
	return s[:open], strings.TrimSpace(s[open+1 : len(s)-1]), nil
}

// parseOf parses the bracketed element type of a path annotation. An empty
// or "Artifact" element means the path refers to an artifact.
func parseOf(of string) (schema.Annotation, error) {
	switch of {
	case "", "Artifact":
		return nil, nil
	case "String":
		return schema.Scalar{Kind: schema.KindString}, nil
	case "Integer":
		return schema.Scalar{Kind: schema.KindInteger}, nil
	case "Double":
		return schema.Scalar{Kind: schema.KindDouble}, nil
	default:
		return nil, fmt.Errorf("unknown element type %q", of)
	}
}
