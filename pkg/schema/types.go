package schema

// Field describes one input of a collection form. Kind is one of the
// widgets.Kind* identifiers, resolved once when the registry is built.
type Field struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Label string `json:"label,omitempty"`
	Help  string `json:"help,omitempty"`
}

// DisplayLabel returns the configured label, falling back to the field name.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// Schema is the ordered field list attached to a collection id.
type Schema struct {
	Collection string  `json:"collection"`
	Fields     []Field `json:"fields"`
}

// Names returns the field names in schema order.
func (s Schema) Names() []string {
	if len(s.Fields) == 0 {
		return []string{}
	}
	out := make([]string, len(s.Fields))
	for i, field := range s.Fields {
		out[i] = field.Name
	}
	return out
}

// Field looks up a field by name.
func (s Schema) Field(name string) (Field, bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

func (s Schema) clone() Schema {
	out := Schema{Collection: s.Collection}
	if len(s.Fields) > 0 {
		out.Fields = append([]Field(nil), s.Fields...)
	}
	return out
}
