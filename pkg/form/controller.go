package form

import (
	"log/slog"
	"sync"

	"github.com/goliatone/go-tourneyform/pkg/format"
	"github.com/goliatone/go-tourneyform/pkg/model"
	"github.com/goliatone/go-tourneyform/pkg/schema"
)

// SchemaSource resolves collection schemas. *schema.Registry satisfies it.
type SchemaSource interface {
	Schema(id string) (schema.Schema, bool)
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for state change traces.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Controller owns the selected collection and the record being filled in.
// The active field list is always derived from the schema source, never
// cached. A Controller is safe for concurrent use.
type Controller struct {
	mu         sync.RWMutex
	source     SchemaSource
	collection string
	values     map[string]string
	order      []string
	logger     *slog.Logger
}

// NewController constructs a controller with no collection selected.
func NewController(source SchemaSource, options ...Option) *Controller {
	c := &Controller{
		source: source,
		values: make(map[string]string),
		logger: slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// SelectCollection switches to id and discards every stored value. Any id is
// accepted; one the source does not know simply has no active fields.
func (c *Controller) SelectCollection(id string) {
	c.mu.Lock()
	c.collection = id
	c.clearLocked()
	c.mu.Unlock()

	c.logger.Debug("form collection selected", "collection", id)
}

// SetField shapes raw for the named field and stores it, leaving other
// fields untouched. It returns the stored value.
func (c *Controller) SetField(name, raw string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	field, ok := c.activeSchemaLocked().Field(name)
	var stored string
	if ok {
		stored = format.ShapeValue(field, raw)
	} else {
		stored = format.ShapeByName(name, raw)
	}

	if _, exists := c.values[name]; !exists {
		c.order = append(c.order, name)
	}
	c.values[name] = stored
	return stored
}

// Value returns the stored value for name.
func (c *Controller) Value(name string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[name]
	return v, ok
}

// Collection returns the selected collection id, empty when none is set.
func (c *Controller) Collection() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.collection
}

// ActiveFields returns the field names of the selected collection in render
// order. It is empty when no known collection is selected.
func (c *Controller) ActiveFields() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.activeSchemaLocked().Names()
}

// ActiveSchema returns the full schema of the selected collection.
func (c *Controller) ActiveSchema() schema.Schema {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.activeSchemaLocked()
}

// Record returns every stored value in write order.
func (c *Controller) Record() model.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entries := make([]model.Entry, 0, len(c.order))
	for _, name := range c.order {
		entries = append(entries, model.Entry{Name: name, Value: c.values[name]})
	}
	return model.NewRecord(entries...)
}

// Snapshot captures the collection and the values of its active fields, in
// schema order. Fields that were never written are absent.
func (c *Controller) Snapshot() (string, model.Record) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	active := c.activeSchemaLocked()
	entries := make([]model.Entry, 0, len(active.Fields))
	for _, field := range active.Fields {
		if v, ok := c.values[field.Name]; ok {
			entries = append(entries, model.Entry{Name: field.Name, Value: v})
		}
	}
	return c.collection, model.NewRecord(entries...)
}

// Reset clears both the collection and the record.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.collection = ""
	c.clearLocked()
	c.mu.Unlock()

	c.logger.Debug("form reset")
}

func (c *Controller) clearLocked() {
	c.values = make(map[string]string)
	c.order = nil
}

func (c *Controller) activeSchemaLocked() schema.Schema {
	if c.source == nil || c.collection == "" {
		return schema.Schema{}
	}
	s, ok := c.source.Schema(c.collection)
	if !ok {
		return schema.Schema{Collection: c.collection}
	}
	return s
}
