package xnb

import "errors"

// readTypeID reads the leading id of a polymorphic value and looks it up.
// ok is false for id 0, which always means "no value".
func (c *Cursor) readTypeID() (entry typeReaderEntry, ok bool, err error) {
	start := c.pos
	id, err := c.readCount()
	if err != nil {
		return typeReaderEntry{}, false, err
	}
	if id == 0 {
		return typeReaderEntry{}, false, nil
	}
	if id > c.table.len() {
		return typeReaderEntry{}, false, &DecodeError{Offset: start, Err: &TypeIDOutOfRangeError{ID: id, TableLen: c.table.len()}}
	}
	return c.table.entries[id-1], true, nil
}

// ReadAny reads a polymorphic value whose type is determined only by the
// document's type reader table. It returns nil for a null value.
func ReadAny(c *Cursor) (*Object, error) {
	start := c.pos
	entry, ok, err := c.readTypeID()
	if err != nil || !ok {
		return nil, err
	}
	if entry.reader == nil {
		return nil, &DecodeError{Offset: start, Err: &NoTypeReaderError{Identity: entry.identity}}
	}
	v, err := entry.reader.ReadAny(c)
	if err != nil {
		return nil, withOffset(c, err)
	}
	return &Object{Identity: entry.identity, Value: v}, nil
}

// ReadObject reads a polymorphic value that must have been written by the
// reader r. The table entry named by the leading id is compared with r's
// identity before any further byte is consumed. ok is false for a null value.
func ReadObject[T any](c *Cursor, r *TypeReader[T]) (v T, ok bool, err error) {
	start := c.pos
	entry, ok, err := c.readTypeID()
	if err != nil || !ok {
		return v, false, err
	}
	if entry.identity != r.identity {
		return v, false, &DecodeError{Offset: start, Err: &WrongTypeError{Expected: r.identity, Found: entry.identity}}
	}
	v, err = r.read(c)
	if err != nil {
		return v, false, withOffset(c, err)
	}
	return v, true, nil
}

// ReadList reads an int32 element count followed by that many elements.
func ReadList[T any](c *Cursor, read func(*Cursor) (T, error)) ([]T, error) {
	n, err := c.ReadLength()
	if err != nil {
		return nil, err
	}
	return readElements(c, n, read)
}

// ReadVarintList reads a 7-bit encoded element count followed by that many elements.
func ReadVarintList[T any](c *Cursor, read func(*Cursor) (T, error)) ([]T, error) {
	n, err := c.readCount()
	if err != nil {
		return nil, err
	}
	return readElements(c, n, read)
}

func readElements[T any](c *Cursor, n int, read func(*Cursor) (T, error)) ([]T, error) {
	// elements may encode to zero bytes, so n only bounds the preallocation
	out := make([]T, 0, min(n, c.Remaining()))
	for i := 0; i < n; i++ {
		v, err := read(c)
		if err != nil {
			return nil, withOffset(c, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// withOffset attaches the cursor position to errors returned by leaf
// decoders that did not come from the cursor itself.
func withOffset(c *Cursor, err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return err
	}
	return &DecodeError{Offset: c.pos, Err: err}
}
