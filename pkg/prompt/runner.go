package prompt

import (
	"context"
	"fmt"

	"github.com/goliatone/go-tourneyform/pkg/schema"
	"github.com/goliatone/go-tourneyform/pkg/submit"
)

// Form is the session surface the runner drives. *tourneyform.Session
// satisfies it.
type Form interface {
	Collections() []string
	SelectCollection(id string)
	ActiveSchema() schema.Schema
	SetField(name, raw string) string
}

// Theme carries the prefixes printed in front of status lines.
type Theme struct {
	InfoPrefix    string
	SuccessPrefix string
	ErrorPrefix   string
}

// DefaultTheme mirrors the status marks of the admin dashboard.
var DefaultTheme = Theme{
	InfoPrefix:    "",
	SuccessPrefix: "✅ ",
	ErrorPrefix:   "❌ ",
}

// Option configures a Runner.
type Option func(*Runner)

// WithPromptDriver overrides the prompt driver used by the runner.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithTheme overrides DefaultTheme.
func WithTheme(theme Theme) Option {
	return func(r *Runner) {
		r.theme = theme
	}
}

// Runner walks a Form interactively: pick a collection, then one input per
// active field in schema order.
type Runner struct {
	driver PromptDriver
	theme  Theme
}

// NewRunner constructs a runner. Without WithPromptDriver it talks to the
// terminal through survey.
func NewRunner(options ...Option) *Runner {
	r := &Runner{theme: DefaultTheme}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r
}

// ChooseCollection asks for a collection and selects it on form.
func (r *Runner) ChooseCollection(ctx context.Context, form Form) (string, error) {
	options := form.Collections()
	if len(options) == 0 {
		return "", ErrNoCollections
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:  "Collection",
		Options:  options,
		PageSize: len(options),
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(options) {
		return "", fmt.Errorf("prompt: selection %d out of range", idx)
	}
	form.SelectCollection(options[idx])
	return options[idx], nil
}

// Apply writes preset values into the active fields after the same widget
// check a prompt would apply. Keys that are not active fields are refused.
func (r *Runner) Apply(form Form, preset map[string]string) error {
	active := form.ActiveSchema()
	for name := range preset {
		if _, ok := active.Field(name); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
	}
	for _, field := range active.Fields {
		raw, ok := preset[field.Name]
		if !ok {
			continue
		}
		if validate := ValidatorFor(field.Kind); validate != nil {
			if err := validate(raw); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidValue, field.Name, err)
			}
		}
		form.SetField(field.Name, raw)
	}
	return nil
}

// FillFields applies preset and then prompts for every active field it did
// not cover, in schema order. Blank answers leave the field unset.
func (r *Runner) FillFields(ctx context.Context, form Form, preset map[string]string) error {
	if err := r.Apply(form, preset); err != nil {
		return err
	}

	active := form.ActiveSchema()
	for _, field := range active.Fields {
		if _, ok := preset[field.Name]; ok {
			continue
		}

		message := field.DisplayLabel()
		if hint := hintFor(field.Kind); hint != "" {
			message = fmt.Sprintf("%s (%s)", message, hint)
		}
		raw, err := r.driver.Input(ctx, InputConfig{
			Message:   message,
			Help:      field.Help,
			Validator: ValidatorFor(field.Kind),
		})
		if err != nil {
			return err
		}
		if raw == "" {
			continue
		}
		form.SetField(field.Name, raw)
	}
	return nil
}

// Confirm asks a yes/no question defaulting to yes.
func (r *Runner) Confirm(ctx context.Context, message string) (bool, error) {
	return r.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: true})
}

// ShowStatus prints the status line, prefixed by tone. Idle statuses print
// nothing.
func (r *Runner) ShowStatus(ctx context.Context, status submit.Status) error {
	if status.Message == "" {
		return nil
	}
	return r.driver.Info(ctx, r.FormatStatus(status))
}

// FormatStatus renders status the way ShowStatus prints it.
func (r *Runner) FormatStatus(status submit.Status) string {
	prefix := r.theme.InfoPrefix
	switch status.Tone() {
	case submit.ToneAffirmative:
		prefix = r.theme.SuccessPrefix
	case submit.ToneNegative:
		prefix = r.theme.ErrorPrefix
	}
	return prefix + status.Message
}
