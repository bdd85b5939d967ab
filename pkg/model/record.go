package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Entry is a single field/value pair in a Record.
type Entry struct {
	Name  string
	Value string
}

// Record is an ordered, flat field -> text mapping. It marshals to a JSON
// object whose keys follow the entry order, so the wire body matches the
// form's field order. The zero value is an empty record.
type Record struct {
	entries []Entry
}

// NewRecord builds a record from entries. Later entries replace earlier ones
// with the same name but keep the original position.
func NewRecord(entries ...Entry) Record {
	var r Record
	for _, e := range entries {
		r = r.with(e.Name, e.Value)
	}
	return r
}

func (r Record) with(name, value string) Record {
	for i, e := range r.entries {
		if e.Name == name {
			out := Record{entries: append([]Entry(nil), r.entries...)}
			out.entries[i].Value = value
			return out
		}
	}
	return Record{entries: append(append([]Entry(nil), r.entries...), Entry{Name: name, Value: value})}
}

// Get returns the value stored under name.
func (r Record) Get(name string) (string, bool) {
	for _, e := range r.entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	return "", false
}

// Len reports how many fields the record holds.
func (r Record) Len() int {
	return len(r.entries)
}

// Names returns the field names in record order.
func (r Record) Names() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Name
	}
	return out
}

// Entries returns a copy of the record entries.
func (r Record) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Map returns the record as a plain map.
func (r Record) Map() map[string]string {
	out := make(map[string]string, len(r.entries))
	for _, e := range r.entries {
		out[e.Name] = e.Value
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range r.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler. It keeps the key order of the
// source object. String values are stored as is; other scalars keep their
// JSON text. Nested objects and arrays are rejected.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("model: record must be a JSON object")
	}

	var out Record
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)

		tok, err = dec.Token()
		if err != nil {
			return err
		}
		var value string
		switch v := tok.(type) {
		case string:
			value = v
		case json.Number:
			value = v.String()
		case bool:
			value = fmt.Sprint(v)
		case nil:
			value = ""
		default:
			return fmt.Errorf("model: field %q must be a scalar", name)
		}
		out = out.with(name, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*r = out
	return nil
}
