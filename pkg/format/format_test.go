package format

import (
	"testing"

	"github.com/goliatone/go-tourneyform/pkg/schema"
	"github.com/goliatone/go-tourneyform/pkg/widgets"
)

func TestFormatTime12h(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "00:00", want: "12:00 AM"},
		{in: "00:30", want: "12:30 AM"},
		{in: "01:07", want: "1:07 AM"},
		{in: "11:59", want: "11:59 AM"},
		{in: "12:00", want: "12:00 PM"},
		{in: "12:01", want: "12:01 PM"},
		{in: "13:05", want: "1:05 PM"},
		{in: "23:59", want: "11:59 PM"},
		{in: "9:15", want: "9:15 AM"},
		{in: "18:45:00", want: "6:45 PM"},
		{in: "", want: ""},
	}

	for _, tc := range cases {
		if got := FormatTime12h(tc.in); got != tc.want {
			t.Fatalf("FormatTime12h(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatTime12h_MalformedPassesThrough(t *testing.T) {
	for _, in := range []string{"noon", "ab:cd", "24:00", "12:60", "12:5", "-1:00", "+1:00", "12", "1:2:3:4", "7:30 PM"} {
		if got := FormatTime12h(in); got != in {
			t.Fatalf("FormatTime12h(%q) = %q, want raw input back", in, got)
		}
	}
}

func TestShapeValue(t *testing.T) {
	cases := []struct {
		name  string
		field schema.Field
		raw   string
		want  string
	}{
		{name: "time", field: schema.Field{Name: "time", Kind: widgets.KindTime}, raw: "13:05", want: "1:05 PM"},
		{name: "date passthrough", field: schema.Field{Name: "startdate", Kind: widgets.KindDate}, raw: "2025-03-01", want: "2025-03-01"},
		{name: "number kept as text", field: schema.Field{Name: "kill", Kind: widgets.KindNumber}, raw: "012", want: "012"},
		{name: "text untouched", field: schema.Field{Name: "name", Kind: widgets.KindText}, raw: "  Alpha ", want: "  Alpha "},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := ShapeValue(tc.field, tc.raw); got != tc.want {
				t.Fatalf("ShapeValue = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestShapeByName(t *testing.T) {
	if got := ShapeByName("time", "00:00"); got != "12:00 AM" {
		t.Fatalf("time by name = %q", got)
	}
	if got := ShapeByName("timezone", "00:00"); got != "00:00" {
		t.Fatalf("only the exact time field converts, got %q", got)
	}
	if got := ShapeByName("enddate", "2025-01-31"); got != "2025-01-31" {
		t.Fatalf("date by name = %q", got)
	}
}
