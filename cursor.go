package xnb

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"
)

// Cursor is a positional reader over a document body. Leaf decoders consume
// bytes only through it, so every failure carries the exact offset it occurred at.
type Cursor struct {
	data  []byte
	pos   int
	table *typeTable
}

// NewCursor returns a cursor over data with an empty type reader table.
// Decode creates its own cursors; NewCursor is meant for leaf decoder tests
// and for reading values outside of a document.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data, table: &typeTable{}}
}

// Offset returns the current read position.
func (c *Cursor) Offset() int { return c.pos }

// Len returns the total length of the underlying buffer.
func (c *Cursor) Len() int { return len(c.data) }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.data) - c.pos }

func (c *Cursor) errorf(err error, format string, args ...any) error {
	return &DecodeError{Offset: c.pos, Err: fmt.Errorf("%w: "+format, append([]any{err}, args...)...)}
}

func (c *Cursor) need(n int) error {
	if n < 0 || c.Remaining() < n {
		return c.errorf(ErrTruncated, "need %d bytes, %d left", n, c.Remaining())
	}
	return nil
}

func (c *Cursor) ReadByte() (byte, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

// ReadBytes returns the next n bytes without copying. The slice aliases the
// document buffer.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	b := c.data[c.pos : c.pos+n : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *Cursor) Skip(n int) error {
	if err := c.need(n); err != nil {
		return err
	}
	c.pos += n
	return nil
}

// ReadBool reads one byte; any non-zero value is true.
func (c *Cursor) ReadBool() (bool, error) {
	b, err := c.ReadByte()
	return b != 0, err
}

func (c *Cursor) ReadUint16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(c.data[c.pos:])
	c.pos += 2
	return v, nil
}

func (c *Cursor) ReadInt16() (int16, error) {
	v, err := c.ReadUint16()
	return int16(v), err
}

func (c *Cursor) ReadUint32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(c.data[c.pos:])
	c.pos += 4
	return v, nil
}

func (c *Cursor) ReadInt32() (int32, error) {
	v, err := c.ReadUint32()
	return int32(v), err
}

func (c *Cursor) ReadFloat32() (float32, error) {
	v, err := c.ReadUint32()
	return math.Float32frombits(v), err
}

// ReadString reads a 7-bit-encoded length followed by that many UTF-8 bytes.
func (c *Cursor) ReadString() (string, error) {
	start := c.pos
	n, err := c.ReadVarint()
	if err != nil {
		return "", err
	}
	if n < 0 {
		c.pos = start
		return "", c.errorf(ErrInvalidLength, "string length %d", n)
	}
	b, err := c.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		c.pos = start
		return "", c.errorf(ErrInvalidString, "%d bytes", n)
	}
	return string(b), nil
}

// ReadLength reads an int32 length prefix and rejects negative values.
func (c *Cursor) ReadLength() (int, error) {
	n, err := c.ReadInt32()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		c.pos -= 4
		return 0, c.errorf(ErrInvalidLength, "length %d", n)
	}
	return int(n), nil
}
