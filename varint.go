package xnb

// Integers in the 7-bit encoding are stored little-endian in groups of seven
// bits; the high bit of each byte is set when another byte follows.
// An int32 never needs more than five bytes, and the fifth carries only the
// top four bits.
const maxVarintLen = 5

// ReadVarint decodes a 7-bit encoded int32. It never reads past the first
// byte with a clear high bit.
func (c *Cursor) ReadVarint() (int32, error) {
	start := c.pos
	var result uint32
	for i := 0; i < maxVarintLen; i++ {
		b, err := c.ReadByte()
		if err != nil {
			return 0, err
		}
		if i == maxVarintLen-1 && b > 0x0f {
			c.pos = start
			return 0, c.errorf(ErrVarintOverflow, "fifth byte 0x%02x", b)
		}
		result |= uint32(b&0x7f) << (7 * i)
		if b&0x80 == 0 {
			return int32(result), nil
		}
	}
	// unreachable: the fifth byte either ended the value or failed the check above
	c.pos = start
	return 0, c.errorf(ErrVarintOverflow, "more than %d bytes", maxVarintLen)
}

// readCount reads a 7-bit encoded count and rejects negative values.
func (c *Cursor) readCount() (int, error) {
	start := c.pos
	n, err := c.ReadVarint()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		c.pos = start
		return 0, c.errorf(ErrInvalidLength, "count %d", n)
	}
	return int(n), nil
}

// AppendVarint appends the 7-bit encoding of v to dst.
func AppendVarint(dst []byte, v int32) []byte {
	u := uint32(v)
	for u >= 0x80 {
		dst = append(dst, byte(u)|0x80)
		u >>= 7
	}
	return append(dst, byte(u))
}
