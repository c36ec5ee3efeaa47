// Package loader turns question set files into domain values.
//
// It owns the structural boundary: every field must be present with the right
// primitive kind. Semantic invariants are left to domain.Validate.
package loader

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"quizset/internal/domain"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Format is the serialization of a question set file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

//go:embed schema.json
var schemaSource string

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func questionSetSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaSource))
	})
	return schema, schemaErr
}

// ShapeError lists the structural problems found in one document.
type ShapeError struct {
	Source   string
	Problems []string
}

func (e *ShapeError) Error() string {
	src := e.Source
	if src == "" {
		src = "question set"
	}
	return fmt.Sprintf("%s is not a complete question set: %s", src, strings.Join(e.Problems, "; "))
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	default:
		return "", false
	}
}

// Decode parses data and checks it is a structurally complete question set.
func Decode(data []byte, format Format) (domain.QuestionSet, error) {
	return decode(data, format, "")
}

func decode(data []byte, format Format, source string) (domain.QuestionSet, error) {
	var doc interface{}
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return domain.QuestionSet{}, &ShapeError{Source: source, Problems: []string{fmt.Sprintf("invalid JSON: %v", err)}}
		}
	case FormatYAML:
		var root yaml.Node
		if err := yaml.Unmarshal(data, &root); err != nil {
			return domain.QuestionSet{}, &ShapeError{Source: source, Problems: []string{fmt.Sprintf("invalid YAML: %v", err)}}
		}
		v, err := nodeValue(&root)
		if err != nil {
			return domain.QuestionSet{}, &ShapeError{Source: source, Problems: []string{fmt.Sprintf("invalid YAML: %v", err)}}
		}
		doc = v
	default:
		return domain.QuestionSet{}, fmt.Errorf("unsupported format %q", format)
	}

	s, err := questionSetSchema()
	if err != nil {
		return domain.QuestionSet{}, fmt.Errorf("failed to compile question set schema: %w", err)
	}
	result, err := s.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return domain.QuestionSet{}, &ShapeError{Source: source, Problems: []string{err.Error()}}
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, re := range result.Errors() {
			problems = append(problems, re.String())
		}
		return domain.QuestionSet{}, &ShapeError{Source: source, Problems: problems}
	}

	// The document is known to match the schema, so a JSON round trip yields every field.
	normalized, err := json.Marshal(doc)
	if err != nil {
		return domain.QuestionSet{}, fmt.Errorf("failed to normalize question set: %w", err)
	}
	var set domain.QuestionSet
	if err := json.Unmarshal(normalized, &set); err != nil {
		return domain.QuestionSet{}, fmt.Errorf("failed to build question set: %w", err)
	}
	return set, nil
}

// nodeValue converts a YAML node into the generic form the schema checks.
// Timestamps keep their source text; yaml.v3 would otherwise turn 2024-01-01
// into a time.Time that re-encodes as 2024-01-01T00:00:00Z.
func nodeValue(n *yaml.Node) (interface{}, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeValue(n.Content[0])
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	case yaml.MappingNode:
		m := make(map[string]interface{}, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := nodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[n.Content[i].Value] = v
		}
		return m, nil
	case yaml.SequenceNode:
		items := make([]interface{}, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	default:
		if n.ShortTag() == "!!timestamp" {
			return n.Value, nil
		}
		var v interface{}
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	}
}
