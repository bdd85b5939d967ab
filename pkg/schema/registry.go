package schema

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-tourneyform/pkg/widgets"
)

// KindResolver maps a field name (plus an optional explicit tag) to an input
// kind. *widgets.Registry satisfies it; swap it to change the inference rule
// without touching callers.
type KindResolver interface {
	Resolve(name, explicit string) string
}

// Option customises registry construction.
type Option func(*options)

type options struct {
	resolver KindResolver
}

// WithKindResolver overrides the name-based kind inference.
func WithKindResolver(resolver KindResolver) Option {
	return func(o *options) {
		if resolver != nil {
			o.resolver = resolver
		}
	}
}

func buildOptions(opts []Option) options {
	cfg := options{resolver: widgets.NewRegistry()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

// Registry is the immutable collection id -> Schema table. It is built once
// and safe for concurrent readers.
type Registry struct {
	order   []string
	schemas map[string]Schema
}

// Definition is the programmatic form of a collection entry. A FieldDef
// with an empty Type has its kind inferred from its name.
type Definition struct {
	ID     string
	Fields []FieldDef
}

// FieldDef describes a field before kind resolution.
type FieldDef struct {
	Name  string
	Type  string
	Label string
	Help  string
}

// Fields is a convenience for building definitions from bare names.
func Fields(names ...string) []FieldDef {
	out := make([]FieldDef, len(names))
	for i, name := range names {
		out[i] = FieldDef{Name: name}
	}
	return out
}

// New builds a registry from definitions, preserving their order.
func New(defs []Definition, opts ...Option) (*Registry, error) {
	return build(defs, "definitions", buildOptions(opts))
}

// MustNew is New that panics on error, for static tables.
func MustNew(defs []Definition, opts ...Option) *Registry {
	reg, err := New(defs, opts...)
	if err != nil {
		panic(err)
	}
	return reg
}

func build(defs []Definition, source string, cfg options) (*Registry, error) {
	reg := &Registry{
		order:   make([]string, 0, len(defs)),
		schemas: make(map[string]Schema, len(defs)),
	}
	for _, def := range defs {
		schema, err := normaliseDefinition(def, source, cfg.resolver)
		if err != nil {
			return nil, err
		}
		if _, exists := reg.schemas[schema.Collection]; exists {
			return nil, fmt.Errorf("schema: duplicate collection %q (%s)", schema.Collection, source)
		}
		reg.order = append(reg.order, schema.Collection)
		reg.schemas[schema.Collection] = schema
	}
	return reg, nil
}

func normaliseDefinition(def Definition, source string, resolver KindResolver) (Schema, error) {
	id := strings.TrimSpace(def.ID)
	if id == "" {
		return Schema{}, fmt.Errorf("schema: %s defines a collection with an empty id", source)
	}
	out := Schema{Collection: id, Fields: make([]Field, 0, len(def.Fields))}
	seen := make(map[string]struct{}, len(def.Fields))
	for idx, raw := range def.Fields {
		name := strings.TrimSpace(raw.Name)
		if name == "" {
			return Schema{}, fmt.Errorf("schema: collection %q (%s) has an empty field name at index %d", id, source, idx)
		}
		if _, dup := seen[name]; dup {
			return Schema{}, fmt.Errorf("schema: collection %q (%s) defines duplicate field %q", id, source, name)
		}
		seen[name] = struct{}{}

		kind := resolver.Resolve(name, raw.Type)
		if !widgets.Known(kind) {
			return Schema{}, fmt.Errorf("schema: collection %q (%s) field %q has unknown type %q", id, source, name, kind)
		}
		out.Fields = append(out.Fields, Field{
			Name:  name,
			Kind:  kind,
			Label: sanitizeText(raw.Label),
			Help:  sanitizeText(raw.Help),
		})
	}
	return out, nil
}

// FieldsFor returns the ordered field names for a collection. Unknown or
// empty ids yield an empty, non-nil slice.
func (r *Registry) FieldsFor(id string) []string {
	schema, ok := r.Schema(id)
	if !ok {
		return []string{}
	}
	return schema.Names()
}

// Schema returns a copy of the schema registered for id.
func (r *Registry) Schema(id string) (Schema, bool) {
	if r == nil || id == "" {
		return Schema{}, false
	}
	schema, ok := r.schemas[id]
	if !ok {
		return Schema{}, false
	}
	return schema.clone(), true
}

// Has reports whether id is a registered collection.
func (r *Registry) Has(id string) bool {
	if r == nil {
		return false
	}
	_, ok := r.schemas[id]
	return ok
}

// Collections lists the registered ids in definition order.
func (r *Registry) Collections() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.order...)
}

// Len reports how many collections are registered.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}
