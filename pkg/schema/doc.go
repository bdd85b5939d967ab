// Package schema holds the collection registry: a static, ordered mapping
// from collection id to the fields its form renders. Field kinds (text, date,
// time, number) are resolved once at build time through a KindResolver,
// which defaults to the name-substring rules in pkg/widgets. Collections are
// data: the bundled collections.yaml is the only place a new collection needs
// to be added, and LoadFile/LoadFS accept operator supplied replacements.
package schema
