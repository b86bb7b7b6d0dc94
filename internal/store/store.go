// Package store provides persistence for named expression definitions.
package store

// Store is the interface for definition persistence. Values are the
// expression source text; parsing happens at the engine layer.
type Store interface {
	// Get retrieves a definition by name. Returns "" if not found.
	Get(name string) (string, error)
	// Put stores a definition by name, overwriting if it exists.
	Put(name, source string) error
	// Delete removes a definition by name.
	Delete(name string) error
	// List returns all definition names in lexical order.
	List() ([]string, error)
	// Close releases resources.
	Close() error
}
