package widgets

import (
	"sort"
	"strings"
	"sync"
)

// Built-in input kinds exposed by the registry. A kind names the widget the
// presentation layer renders for a field; values are always stored as text.
const (
	KindText   = "text"
	KindDate   = "date"
	KindTime   = "time"
	KindNumber = "number"
)

// Known reports whether kind is one of the built-in input kinds.
func Known(kind string) bool {
	switch kind {
	case KindText, KindDate, KindTime, KindNumber:
		return true
	default:
		return false
	}
}

// Matcher decides whether a kind should handle the supplied field name.
type Matcher func(name string) bool

type rule struct {
	kind     string
	priority int
	match    Matcher
	order    int
}

// Registry selects input kinds for field names based on explicit tags or
// registered matchers. Higher priority wins; ties fall back to registration
// order. Names no matcher claims resolve to KindText.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in name matchers
// registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// NewEmptyRegistry constructs a registry without the built-in matchers, so
// every field resolves to KindText unless explicitly tagged or a matcher is
// registered.
func NewEmptyRegistry() *Registry {
	return &Registry{}
}

// Register adds a kind matcher with the provided priority. Higher priority
// values take precedence.
func (r *Registry) Register(kind string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(kind)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		kind:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the input kind for a field. A non-empty explicit tag is
// honoured before matcher evaluation.
func (r *Registry) Resolve(name, explicit string) string {
	if tag := strings.ToLower(strings.TrimSpace(explicit)); tag != "" {
		return tag
	}
	if r == nil {
		return KindText
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return KindText
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(name) {
			return entry.kind
		}
	}
	return KindText
}

// The substring rules are case sensitive: "startdate" is a date,
// "StartDate" is not.
func (r *Registry) registerBuiltins() {
	r.Register(KindTime, 90, func(name string) bool {
		return name == "time"
	})

	r.Register(KindDate, 80, func(name string) bool {
		return strings.Contains(name, "date")
	})

	r.Register(KindNumber, 70, func(name string) bool {
		return strings.Contains(name, "kill") || strings.Contains(name, "point")
	})
}
