package xnb

import (
	"fmt"
	"sync"
)

// AnyReader is a type reader as seen by the registry: an identity plus a
// decoder producing a type-erased value.
type AnyReader interface {
	Identity() TypeIdentity
	ReadAny(c *Cursor) (any, error)
}

// TypeReader pairs a content type identity with its strongly-typed decoder.
// It is the whole contract between the engine and a leaf content decoder.
type TypeReader[T any] struct {
	identity TypeIdentity
	read     func(*Cursor) (T, error)
}

func NewTypeReader[T any](name string, version int32, read func(*Cursor) (T, error)) *TypeReader[T] {
	return &TypeReader[T]{identity: TypeIdentity{Name: name, Version: version}, read: read}
}

func (r *TypeReader[T]) Identity() TypeIdentity { return r.identity }

// Read decodes one value without any leading type id.
func (r *TypeReader[T]) Read(c *Cursor) (T, error) { return r.read(c) }

func (r *TypeReader[T]) ReadAny(c *Cursor) (any, error) {
	v, err := r.read(c)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Registry maps type identities to readers. It is immutable once built and
// safe for concurrent use.
type Registry struct {
	readers map[TypeIdentity]AnyReader
}

// NewRegistry builds a registry from a fixed set of readers. Two readers
// with the same identity are rejected.
func NewRegistry(readers ...AnyReader) (*Registry, error) {
	r := &Registry{readers: make(map[TypeIdentity]AnyReader, len(readers))}
	for _, rd := range readers {
		id := rd.Identity()
		if _, ok := r.readers[id]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateReader, id)
		}
		r.readers[id] = rd
	}
	return r, nil
}

// MustRegistry is like NewRegistry but panics on error. It is meant for
// package-level registries assembled from compiled-in readers.
func MustRegistry(readers ...AnyReader) *Registry {
	r, err := NewRegistry(readers...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) Lookup(id TypeIdentity) (AnyReader, bool) {
	if r == nil {
		return nil, false
	}
	rd, ok := r.readers[id]
	return rd, ok
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.readers)
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	return MustRegistry(BuiltinReaders()...)
})

// DefaultRegistry returns the registry of the XNA framework readers built
// into this package.
func DefaultRegistry() *Registry { return defaultRegistry() }
