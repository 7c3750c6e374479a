package xnbtest

// BitWriter produces an LZX bit stream: bits are packed most significant
// first into 16-bit words stored little-endian.
type BitWriter struct {
	out  []byte
	word uint16
	n    uint
}

func (w *BitWriter) WriteBits(v uint32, n uint) {
	for i := int(n) - 1; i >= 0; i-- {
		w.word = w.word<<1 | uint16(v>>uint(i)&1)
		w.n++
		if w.n == 16 {
			w.flushWord()
		}
	}
}

func (w *BitWriter) flushWord() {
	w.out = append(w.out, byte(w.word), byte(w.word>>8))
	w.word = 0
	w.n = 0
}

// AlignRaw pads to the next word boundary the way an uncompressed block
// header requires: a partial word is zero-filled, and on a boundary a whole
// zero word is written.
func (w *BitWriter) AlignRaw() {
	if w.n == 0 {
		w.out = append(w.out, 0, 0)
		return
	}
	w.WriteBits(0, 16-w.n)
}

// WriteRaw appends bytes verbatim. It must follow AlignRaw.
func (w *BitWriter) WriteRaw(b []byte) {
	w.out = append(w.out, b...)
}

// Bytes returns the stream with any partial word zero-padded.
func (w *BitWriter) Bytes() []byte {
	if w.n > 0 {
		w.WriteBits(0, 16-w.n)
	}
	return w.out
}

// LZXUncompressed returns the first chunk of an LZX stream holding data in a
// single uncompressed block, with E8 translation disabled.
func LZXUncompressed(data []byte) []byte {
	var w BitWriter
	w.WriteBits(0, 1)
	w.WriteBits(3, 3)
	w.WriteBits(uint32(len(data)), 24)
	w.AlignRaw()
	w.WriteRaw([]byte{1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0})
	w.WriteRaw(data)
	if len(data)&1 == 1 {
		w.WriteRaw([]byte{0})
	}
	return w.Bytes()
}
