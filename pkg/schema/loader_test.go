package schema_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-tourneyform/pkg/schema"
	"github.com/goliatone/go-tourneyform/pkg/widgets"
)

func TestParse_YAMLMixedFields(t *testing.T) {
	doc := []byte(`
collections:
  - id: scrim
    fields:
      - name
      - name: slot
        type: time
        label: "<b>Slot</b> & start"
        help: "<script>alert(1)</script>Local time"
`)

	reg, err := schema.Parse(doc, "inline.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	s, ok := reg.Schema("scrim")
	if !ok {
		t.Fatalf("scrim missing")
	}
	want := []schema.Field{
		{Name: "name", Kind: widgets.KindText},
		{Name: "slot", Kind: widgets.KindTime, Label: "Slot & start", Help: "Local time"},
	}
	if diff := cmp.Diff(want, s.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_JSON(t *testing.T) {
	doc := []byte(`{"collections":[{"id":"winner","fields":["name",{"name":"kill","label":"Kills"}]}]}`)

	reg, err := schema.Parse(doc, "inline.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	s, _ := reg.Schema("winner")
	want := []schema.Field{
		{Name: "name", Kind: widgets.KindText},
		{Name: "kill", Kind: widgets.KindNumber, Label: "Kills"},
	}
	if diff := cmp.Diff(want, s.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := schema.Parse([]byte("   "), "empty.yaml"); err == nil {
		t.Fatalf("expected error for empty document")
	}
	if _, err := schema.Parse([]byte("collections: [:::"), "broken.yaml"); err == nil {
		t.Fatalf("expected error for malformed document")
	}
}

func TestLoadFS_MergesFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml":     {Data: []byte("collections:\n  - id: winner\n    fields: [name, kill]\n")},
		"b.json":     {Data: []byte(`{"collections":[{"id":"rank","fields":["rank"]}]}`)},
		"README.txt": {Data: []byte("ignored")},
	}

	reg, err := schema.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"winner", "rank"}, reg.Collections()); diff != "" {
		t.Fatalf("collections mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFS_DuplicateAcrossFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte("collections:\n  - id: winner\n    fields: [name]\n")},
		"b.yaml": {Data: []byte("collections:\n  - id: winner\n    fields: [kill]\n")},
	}

	if _, err := schema.LoadFS(fsys); err == nil {
		t.Fatalf("expected duplicate collection error")
	}
}

func TestLoadFS_Nil(t *testing.T) {
	reg, err := schema.LoadFS(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if reg.Len() != 0 {
		t.Fatalf("expected empty registry")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collections.yaml")
	if err := os.WriteFile(path, []byte("collections:\n  - id: winner\n    fields: [name]\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	reg, err := schema.LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if !reg.Has("winner") {
		t.Fatalf("winner missing")
	}

	if _, err := schema.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
