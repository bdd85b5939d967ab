// Package form holds the per-instance form state: which collection is
// selected and the flat record accumulated from field input. Values are
// shaped through pkg/format before they are stored.
package form
