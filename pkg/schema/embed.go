package schema

import (
	"embed"
	"io/fs"
)

//go:embed collections/*
var embeddedCollections embed.FS

// EmbeddedFS returns the bundled collection documents. Callers may pass this
// filesystem to LoadFS to use the default configuration.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedCollections, "collections")
	if err != nil {
		// The embed directive guarantees the subpath exists, so panic is
		// acceptable here.
		panic(err)
	}
	return sub
}

// Default loads the registry from the embedded collection documents.
func Default(opts ...Option) (*Registry, error) {
	return LoadFS(EmbeddedFS(), opts...)
}
