package prompt

import (
	"fmt"
	"time"

	"github.com/goliatone/go-tourneyform/pkg/widgets"
)

// ValidatorFor returns the input constraint the widget of kind enforces.
// Every validator accepts the empty string so a field can be left blank.
func ValidatorFor(kind string) func(string) error {
	switch kind {
	case widgets.KindDate:
		return validateDate
	case widgets.KindTime:
		return validateClock
	case widgets.KindNumber:
		return validateNumber
	default:
		return nil
	}
}

// hintFor is appended to the prompt message to show the expected format.
func hintFor(kind string) string {
	switch kind {
	case widgets.KindDate:
		return "YYYY-MM-DD"
	case widgets.KindTime:
		return "HH:MM, 24h"
	case widgets.KindNumber:
		return "number"
	default:
		return ""
	}
}

func validateDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(time.DateOnly, s); err != nil {
		return fmt.Errorf("%q is not a date (YYYY-MM-DD)", s)
	}
	return nil
}

func validateClock(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("%q is not a time (HH:MM)", s)
	}
	return nil
}

func validateNumber(s string) error {
	if s == "" {
		return nil
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return fmt.Errorf("%q is not a whole number", s)
		}
	}
	return nil
}
