// Package tourneyform wires the collection registry, the form controller and
// the submission coordinator into a single Session, the entry point for
// presentation layers such as the CLI.
package tourneyform

import (
	"context"
	"errors"
	"log/slog"

	"github.com/goliatone/go-tourneyform/pkg/form"
	"github.com/goliatone/go-tourneyform/pkg/model"
	"github.com/goliatone/go-tourneyform/pkg/schema"
	"github.com/goliatone/go-tourneyform/pkg/submit"
)

// Status aliases submit.Status for callers that only import the root package.
type Status = submit.Status

// Option configures a Session.
type Option func(*sessionConfig)

type sessionConfig struct {
	registry      *schema.Registry
	logger        *slog.Logger
	submitOptions []submit.Option
}

// WithRegistry supplies the collection registry. Defaults to schema.Default.
func WithRegistry(registry *schema.Registry) Option {
	return func(cfg *sessionConfig) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithLogger sets the logger shared by the controller and coordinator.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *sessionConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithSubmitOptions forwards options to the underlying coordinator, e.g. an
// observer or a custom reset delay.
func WithSubmitOptions(options ...submit.Option) Option {
	return func(cfg *sessionConfig) {
		cfg.submitOptions = append(cfg.submitOptions, options...)
	}
}

// Session is one form being filled in and submitted. It is safe for
// concurrent use.
type Session struct {
	registry *schema.Registry
	form     *form.Controller
	submit   *submit.Coordinator
	logger   *slog.Logger
}

// NewSession builds a session delivering through sender.
func NewSession(sender submit.Sender, options ...Option) (*Session, error) {
	cfg := sessionConfig{logger: slog.Default()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.registry == nil {
		registry, err := schema.Default()
		if err != nil {
			return nil, err
		}
		cfg.registry = registry
	}
	if sender == nil {
		return nil, errors.New("tourneyform: sender is required")
	}

	controller := form.NewController(cfg.registry, form.WithLogger(cfg.logger))

	submitOptions := []submit.Option{
		submit.WithLogger(cfg.logger),
		submit.WithResetter(controller),
	}
	submitOptions = append(submitOptions, cfg.submitOptions...)

	return &Session{
		registry: cfg.registry,
		form:     controller,
		submit:   submit.NewCoordinator(sender, submitOptions...),
		logger:   cfg.logger,
	}, nil
}

// Registry exposes the collection registry backing the session.
func (s *Session) Registry() *schema.Registry {
	return s.registry
}

// Collections lists the selectable collection ids.
func (s *Session) Collections() []string {
	return s.registry.Collections()
}

// SelectCollection switches the form to id, clearing entered values and any
// status line still on display.
func (s *Session) SelectCollection(id string) {
	s.form.SelectCollection(id)
	s.submit.Clear()
}

// Collection returns the selected collection id.
func (s *Session) Collection() string {
	return s.form.Collection()
}

// ActiveFields returns the fields of the selected collection in order.
func (s *Session) ActiveFields() []string {
	return s.form.ActiveFields()
}

// ActiveSchema returns the typed schema of the selected collection.
func (s *Session) ActiveSchema() schema.Schema {
	return s.form.ActiveSchema()
}

// SetField stores raw for name and returns the shaped value.
func (s *Session) SetField(name, raw string) string {
	return s.form.SetField(name, raw)
}

// Record returns a copy of every value entered so far.
func (s *Session) Record() model.Record {
	return s.form.Record()
}

// Submit sends the selected collection's record. A collection the registry
// does not know is refused before any network call. On success the form is
// cleared; on failure the entered values are kept for a retry.
func (s *Session) Submit(ctx context.Context) Status {
	collection, record := s.form.Snapshot()
	if collection != "" && !s.registry.Has(collection) {
		s.logger.Debug("submission blocked", "collection", collection, "reason", "unknown collection")
		return s.submit.Reject(submit.ErrUnknownCollection)
	}
	return s.submit.Submit(ctx, collection, record)
}

// Status returns the current status line.
func (s *Session) Status() Status {
	return s.submit.Status()
}
