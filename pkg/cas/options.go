// Package cas provides the public API for the symbolic computation
// engine.
package cas

import (
	"github.com/asiyen02/cas/internal/store"
	"github.com/asiyen02/cas/internal/token"
)

// Option configures an Engine.
type Option func(*Engine)

// WithSQLiteStore configures SQLite persistence at the given path.
func WithSQLiteStore(path string) Option {
	return func(e *Engine) {
		s, err := store.NewSQLite(path)
		if err == nil {
			e.store = s
		}
	}
}

// WithMemoryStore configures an in-memory store (for testing).
func WithMemoryStore() Option {
	return func(e *Engine) {
		e.store = store.NewMemory()
	}
}

// WithStore configures a custom store.
func WithStore(s Store) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithFunctions overrides the recognized function names.
func WithFunctions(names ...string) Option {
	return func(e *Engine) {
		e.funcs = token.NewRegistry(names...)
	}
}

// Store interface for custom stores.
type Store = store.Store
