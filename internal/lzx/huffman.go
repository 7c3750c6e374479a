package lzx

import "fmt"

const (
	maxCodeLen = 16
	tableBits  = maxCodeLen
)

// huffman is a canonical prefix code decoded with a single direct lookup on
// the next 16 bits. Each entry packs symbol<<5 | code length; length 0 marks
// a bit pattern no code maps to.
type huffman struct {
	table []uint16
}

func (h *huffman) build(lens []uint8) error {
	var count [maxCodeLen + 1]int
	for _, l := range lens {
		if l > maxCodeLen {
			return fmt.Errorf("%w: code length %d", ErrCorrupt, l)
		}
		count[l]++
	}
	count[0] = 0

	left := 1
	for l := 1; l <= maxCodeLen; l++ {
		left <<= 1
		left -= count[l]
		if left < 0 {
			return fmt.Errorf("%w: over-subscribed prefix code", ErrCorrupt)
		}
	}

	if h.table == nil {
		h.table = make([]uint16, 1<<tableBits)
	} else {
		clear(h.table)
	}

	var next [maxCodeLen + 1]uint32
	code := uint32(0)
	for l := 1; l <= maxCodeLen; l++ {
		code = (code + uint32(count[l-1])) << 1
		next[l] = code
	}
	for sym, l := range lens {
		if l == 0 {
			continue
		}
		c := next[l]
		next[l]++
		shift := tableBits - uint(l)
		entry := uint16(sym)<<5 | uint16(l)
		start, end := c<<shift, (c+1)<<shift
		for i := start; i < end; i++ {
			h.table[i] = entry
		}
	}
	return nil
}

func (h *huffman) decode(b *bitReader) (int, error) {
	if h.table == nil {
		return 0, fmt.Errorf("%w: empty prefix code", ErrCorrupt)
	}
	b.ensure(maxCodeLen)
	e := h.table[b.peek(maxCodeLen)]
	l := uint(e & 0x1f)
	if l == 0 {
		return 0, fmt.Errorf("%w: invalid prefix code", ErrCorrupt)
	}
	b.consume(l)
	return int(e >> 5), nil
}
