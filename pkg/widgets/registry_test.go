package widgets

import "testing"

func TestResolve_ExplicitTagWins(t *testing.T) {
	reg := NewRegistry()

	if got := reg.Resolve("startdate", "Text"); got != KindText {
		t.Fatalf("expected explicit tag to win, got %q", got)
	}
}

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		name   string
		field  string
		expect string
	}{
		{name: "start date", field: "startdate", expect: KindDate},
		{name: "end date", field: "enddate", expect: KindDate},
		{name: "exact time", field: "time", expect: KindTime},
		{name: "time substring is text", field: "timezone", expect: KindText},
		{name: "kill count", field: "kill", expect: KindNumber},
		{name: "points", field: "point", expect: KindNumber},
		{name: "point substring", field: "checkpoint", expect: KindNumber},
		{name: "capitalised date is text", field: "StartDate", expect: KindText},
		{name: "date inside a word", field: "UpdatedAt", expect: KindDate},
		{name: "plain", field: "teamName", expect: KindText},
		{name: "prize pool", field: "prizePool", expect: KindText},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := reg.Resolve(tc.field, ""); got != tc.expect {
				t.Fatalf("resolve %s: want %q, got %q", tc.field, tc.expect, got)
			}
		})
	}
}

func TestResolve_PriorityOverride(t *testing.T) {
	reg := NewRegistry()
	reg.Register(KindText, 999, func(name string) bool {
		return name == "killfeed"
	})

	if got := reg.Resolve("killfeed", ""); got != KindText {
		t.Fatalf("priority matcher should win, got %q", got)
	}
	if got := reg.Resolve("kill", ""); got != KindNumber {
		t.Fatalf("builtin should still resolve, got %q", got)
	}
}

func TestResolve_EmptyRegistry(t *testing.T) {
	reg := NewEmptyRegistry()
	if got := reg.Resolve("startdate", ""); got != KindText {
		t.Fatalf("empty registry should fall back to text, got %q", got)
	}

	var nilReg *Registry
	if got := nilReg.Resolve("time", ""); got != KindText {
		t.Fatalf("nil registry should fall back to text, got %q", got)
	}
}

func TestKnown(t *testing.T) {
	for _, kind := range []string{KindText, KindDate, KindTime, KindNumber} {
		if !Known(kind) {
			t.Fatalf("expected %q to be known", kind)
		}
	}
	if Known("color") {
		t.Fatalf("color should not be a known kind")
	}
}
