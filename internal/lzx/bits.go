package lzx

// bitReader reads 16-bit little-endian words and hands out their bits most
// significant first. Words are fetched only when the buffer runs short, so
// after reading a block header fewer than 16 bits are ever buffered and all of
// them belong to the last fetched word.
type bitReader struct {
	data    []byte
	pos     int
	buf     uint32
	n       uint
	missing int // zero bytes synthesized past the end of data
}

func (b *bitReader) ensure(n uint) {
	for b.n < n {
		var w uint32
		switch {
		case b.pos+1 < len(b.data):
			w = uint32(b.data[b.pos]) | uint32(b.data[b.pos+1])<<8
			b.pos += 2
		case b.pos < len(b.data):
			w = uint32(b.data[b.pos])
			b.pos++
			b.missing++
		default:
			b.missing += 2
		}
		b.buf |= w << (16 - b.n)
		b.n += 16
	}
}

func (b *bitReader) peek(n uint) uint32 {
	return b.buf >> (32 - n)
}

func (b *bitReader) consume(n uint) {
	b.buf <<= n
	b.n -= n
}

// readBits reads up to 17 bits.
func (b *bitReader) readBits(n uint) uint32 {
	if n == 0 {
		return 0
	}
	b.ensure(n)
	v := b.peek(n)
	b.consume(n)
	return v
}

// overrun reports whether more bits were consumed than the chunk holds.
// Missing words read as zero, which lets a Huffman lookahead run past the end
// of a well-formed chunk.
func (b *bitReader) overrun() bool {
	return b.missing*8 > int(b.n)
}

// alignRaw drops the remainder of the current word, or a whole word when
// the buffer is empty, so byte reads can follow.
func (b *bitReader) alignRaw() {
	if b.n == 0 {
		b.ensure(16)
	}
	b.buf = 0
	b.n = 0
}

func (b *bitReader) rawBytes(n int) ([]byte, bool) {
	if n < 0 || len(b.data)-b.pos < n {
		return nil, false
	}
	out := b.data[b.pos : b.pos+n]
	b.pos += n
	return out, true
}
