// Package format shapes raw widget values into the text stored in a form
// record. Every function here is pure.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-tourneyform/pkg/schema"
	"github.com/goliatone/go-tourneyform/pkg/widgets"
)

// ShapeValue converts the raw input for field into its stored form. Time
// fields are converted from a 24-hour HH:MM clock to 12-hour with an AM/PM
// suffix; every other kind is stored unchanged.
func ShapeValue(field schema.Field, raw string) string {
	switch field.Kind {
	case widgets.KindTime:
		return FormatTime12h(raw)
	default:
		// Dates arrive ISO shaped from the widget, numbers are kept as text.
		return raw
	}
}

var defaultKinds = widgets.NewRegistry()

// ShapeByName shapes raw using the kind the built-in name rules infer for
// name. Callers holding a schema.Field should prefer ShapeValue.
func ShapeByName(name, raw string) string {
	return ShapeValue(schema.Field{Name: name, Kind: defaultKinds.Resolve(name, "")}, raw)
}

// FormatTime12h turns "13:05" into "1:05 PM". Hours 0 and 12 both render as
// 12. Empty input yields an empty string. Input that is not a valid HH:MM
// clock is returned unchanged.
func FormatTime12h(raw string) string {
	if raw == "" {
		return ""
	}
	hour, minute, ok := parseClock(raw)
	if !ok {
		return raw
	}

	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, period)
}

// parseClock accepts "H:MM" and "HH:MM", plus a trailing ":SS" which the
// time widget emits when seconds are enabled.
func parseClock(raw string) (int, int, bool) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 || !isDigits(parts[0]) {
		return 0, 0, false
	}
	if len(parts[1]) != 2 || !isDigits(parts[1]) {
		return 0, 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute > 59 {
		return 0, 0, false
	}
	if len(parts) == 3 && (len(parts[2]) != 2 || !isDigits(parts[2])) {
		return 0, 0, false
	}
	return hour, minute, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
