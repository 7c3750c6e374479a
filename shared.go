package xnb

import "fmt"

// SharedResourceRef is an inert handle to an entry of a document's shared
// resource table. It is only resolved after the whole document is decoded.
type SharedResourceRef[T any] struct {
	Index int
}

// ReadSharedResourceRef reads a 7-bit encoded, 1-based shared resource
// reference. ok is false for 0, which means no resource.
func ReadSharedResourceRef[T any](c *Cursor) (ref SharedResourceRef[T], ok bool, err error) {
	n, err := c.readCount()
	if err != nil || n == 0 {
		return ref, false, err
	}
	return SharedResourceRef[T]{Index: n - 1}, true, nil
}

// SharedResources gives access to decoded shared resources by index.
type SharedResources interface {
	SharedResource(index int) (*Object, error)
}

// NoSharedResources resolves nothing. It stands in where a value is decoded
// outside of a document.
type NoSharedResources struct{}

func (NoSharedResources) SharedResource(index int) (*Object, error) {
	return nil, fmt.Errorf("%w: index %d", ErrSharedResourceUnavailable, index)
}

// ResolveShared looks up ref in src. It returns ok false with a nil error
// when the slot holds a null value, ErrSharedResourceUnavailable when the
// index is out of range or its slot could not be decoded, and
// ErrSharedResourceWrongType when the stored value is not a T.
func ResolveShared[T any](src SharedResources, ref SharedResourceRef[T]) (v T, ok bool, err error) {
	o, err := src.SharedResource(ref.Index)
	if err != nil || o == nil {
		return v, false, err
	}
	v, ok = As[T](o)
	if !ok {
		return v, false, fmt.Errorf("%w: index %d holds %T (%s)", ErrSharedResourceWrongType, ref.Index, o.Value, o.Identity)
	}
	return v, true, nil
}
