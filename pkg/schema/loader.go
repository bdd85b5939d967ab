package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFS walks the provided filesystem and parses every JSON/YAML collection
// document into a single registry. Files are visited in lexical order and a
// collection id may only be defined once across all of them. A nil fsys
// yields an empty registry.
func LoadFS(fsys fs.FS, opts ...Option) (*Registry, error) {
	cfg := buildOptions(opts)
	reg := &Registry{schemas: make(map[string]Schema)}
	if fsys == nil {
		return reg, nil
	}

	origins := make(map[string]string)
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("schema: read %s: %w", path, err)
		}
		defs, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for _, def := range defs {
			schema, err := normaliseDefinition(def, path, cfg.resolver)
			if err != nil {
				return err
			}
			if prev, exists := origins[schema.Collection]; exists {
				return fmt.Errorf("schema: duplicate collection %q (files %s and %s)", schema.Collection, prev, path)
			}
			origins[schema.Collection] = path
			reg.order = append(reg.order, schema.Collection)
			reg.schemas[schema.Collection] = schema
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// LoadFile parses a single collection document from disk.
func LoadFile(path string, opts ...Option) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	return Parse(data, filepath.Base(path), opts...)
}

// Parse builds a registry from raw JSON or YAML bytes. source names the
// document in error messages.
func Parse(data []byte, source string, opts ...Option) (*Registry, error) {
	defs, err := parseDocument(data, source)
	if err != nil {
		return nil, err
	}
	return build(defs, source, buildOptions(opts))
}

type documentFile struct {
	Collections []collectionFile `json:"collections" yaml:"collections"`
}

type collectionFile struct {
	ID     string      `json:"id" yaml:"id"`
	Fields []fieldFile `json:"fields" yaml:"fields"`
}

// fieldFile accepts either a bare field name or a mapping.
type fieldFile struct {
	Name  string `json:"name" yaml:"name"`
	Type  string `json:"type" yaml:"type"`
	Label string `json:"label" yaml:"label"`
	Help  string `json:"help" yaml:"help"`
}

func (f *fieldFile) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		f.Name = node.Value
		return nil
	}
	type plain fieldFile
	var out plain
	if err := node.Decode(&out); err != nil {
		return err
	}
	*f = fieldFile(out)
	return nil
}

func (f *fieldFile) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		return json.Unmarshal(trimmed, &f.Name)
	}
	type plain fieldFile
	var out plain
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return err
	}
	*f = fieldFile(out)
	return nil
}

func parseDocument(data []byte, source string) ([]Definition, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("schema: file %s is empty", source)
	}

	var doc documentFile
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = documentFile{}
		if yamlErr := yaml.Unmarshal(data, &doc); yamlErr != nil {
			return nil, fmt.Errorf("schema: parse %s: invalid JSON or YAML: %w", source, yamlErr)
		}
	}

	defs := make([]Definition, 0, len(doc.Collections))
	for _, col := range doc.Collections {
		def := Definition{ID: col.ID, Fields: make([]FieldDef, len(col.Fields))}
		for i, field := range col.Fields {
			def.Fields[i] = FieldDef(field)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
