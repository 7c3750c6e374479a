package lzx

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	ErrCorrupt   = errors.New("lzx: corrupt data")
	ErrTruncated = errors.New("lzx: chunk truncated")
	ErrFrameSize = errors.New("lzx: invalid frame size")
)

const (
	WindowBits   = 16
	WindowSize   = 1 << WindowBits
	MaxFrameSize = 0x8000

	windowMask = WindowSize - 1

	minMatch            = 2
	numChars            = 256
	numPrimaryLengths   = 7
	numSecondaryLengths = 249
	pretreeNumElements  = 20
	alignedNumElements  = 8
	numPositionSlots    = 32
	mainTreeElements    = numChars + numPositionSlots*8

	// e8 translation is only applied to the first 32768 frames of a stream.
	e8MaxFrames = 32768
)

type blockType uint8

const (
	blockVerbatim     blockType = 1
	blockAligned      blockType = 2
	blockUncompressed blockType = 3
)

var extraBits, positionBase = positionTables()

func positionTables() (extra [numPositionSlots]uint8, base [numPositionSlots]uint32) {
	for i := 0; i < numPositionSlots; i++ {
		if i >= 4 {
			extra[i] = uint8(i/2 - 1)
		}
	}
	var b uint32
	for i := 0; i < numPositionSlots; i++ {
		base[i] = b
		b += 1 << extra[i]
	}
	return extra, base
}

// Decoder holds the state carried between chunks of one compressed stream.
// A Decoder must not be used concurrently.
type Decoder struct {
	window   []byte
	pos      int64 // total bytes decoded into the window
	framePos int64 // window position the next frame starts at
	frame    int
	out      []byte

	r0, r1, r2 uint32

	headerRead    bool
	intelFileSize int32
	intelStarted  bool
	intelCurPos   int32

	blockType      blockType
	blockLength    int
	blockRemaining int

	mainLens    [mainTreeElements]uint8
	lengthLens  [numSecondaryLengths]uint8
	alignedLens [alignedNumElements]uint8
	pretreeLens [pretreeNumElements]uint8

	main, length, aligned, pretree huffman

	err error
}

func NewDecoder() *Decoder {
	return &Decoder{
		window: make([]byte, WindowSize),
		out:    make([]byte, MaxFrameSize),
		r0:     1,
		r1:     1,
		r2:     1,
	}
}

// Decompress expands one chunk into frameSize bytes. The returned slice is
// owned by the decoder and only valid until the next call.
func (d *Decoder) Decompress(chunk []byte, frameSize int) ([]byte, error) {
	if d.err != nil {
		return nil, d.err
	}
	out, err := d.decompress(chunk, frameSize)
	if err != nil {
		d.err = err
		return nil, err
	}
	return out, nil
}

func (d *Decoder) decompress(chunk []byte, frameSize int) ([]byte, error) {
	if frameSize <= 0 || frameSize > MaxFrameSize {
		return nil, fmt.Errorf("%w: %d", ErrFrameSize, frameSize)
	}
	br := &bitReader{data: chunk}

	if !d.headerRead {
		d.headerRead = true
		if br.readBits(1) == 1 {
			hi := br.readBits(16)
			lo := br.readBits(16)
			d.intelFileSize = int32(hi<<16 | lo)
		}
	}

	end := d.framePos + int64(frameSize)
	for d.pos < end {
		if d.blockRemaining == 0 {
			if err := d.readBlockHeader(br); err != nil {
				return nil, err
			}
			continue
		}
		run := min(int64(d.blockRemaining), end-d.pos)
		var n int
		var err error
		switch d.blockType {
		case blockVerbatim:
			n, err = d.decodeMatches(br, int(run), false)
		case blockAligned:
			n, err = d.decodeMatches(br, int(run), true)
		case blockUncompressed:
			n, err = d.copyRaw(br, int(run))
		}
		if err != nil {
			return nil, err
		}
		if n > d.blockRemaining {
			return nil, fmt.Errorf("%w: match runs %d bytes past the end of its block", ErrCorrupt, n-d.blockRemaining)
		}
		d.blockRemaining -= n
	}
	if br.overrun() {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncated, len(chunk))
	}

	out := d.out[:frameSize]
	start := int(d.framePos & windowMask)
	if n := copy(out, d.window[start:]); n < frameSize {
		copy(out[n:], d.window)
	}
	if d.intelStarted && d.intelFileSize != 0 && d.frame < e8MaxFrames && frameSize > 10 {
		translateE8(out, d.intelCurPos, d.intelFileSize)
	}
	d.intelCurPos += int32(frameSize)
	d.frame++
	d.framePos = end
	return out, nil
}

func (d *Decoder) readBlockHeader(br *bitReader) error {
	if d.blockType == blockUncompressed && d.blockLength&1 == 1 {
		// uncompressed blocks of odd length are padded to an even byte count
		if _, ok := br.rawBytes(1); !ok {
			return fmt.Errorf("%w: missing pad after odd uncompressed block", ErrTruncated)
		}
	}
	typ := blockType(br.readBits(3))
	size := int(br.readBits(16)<<8 | br.readBits(8))
	d.blockType = typ
	d.blockLength = size
	d.blockRemaining = size

	switch typ {
	case blockAligned:
		for i := range d.alignedLens {
			d.alignedLens[i] = uint8(br.readBits(3))
		}
		if err := d.aligned.build(d.alignedLens[:]); err != nil {
			return err
		}
		return d.readTrees(br)
	case blockVerbatim:
		return d.readTrees(br)
	case blockUncompressed:
		d.intelStarted = true
		br.alignRaw()
		b, ok := br.rawBytes(12)
		if !ok {
			return fmt.Errorf("%w: uncompressed block header", ErrTruncated)
		}
		d.r0 = binary.LittleEndian.Uint32(b[0:4])
		d.r1 = binary.LittleEndian.Uint32(b[4:8])
		d.r2 = binary.LittleEndian.Uint32(b[8:12])
		return nil
	default:
		return fmt.Errorf("%w: block type %d", ErrCorrupt, typ)
	}
}

func (d *Decoder) readTrees(br *bitReader) error {
	if err := d.readLengths(br, d.mainLens[:numChars]); err != nil {
		return err
	}
	if err := d.readLengths(br, d.mainLens[numChars:]); err != nil {
		return err
	}
	if err := d.main.build(d.mainLens[:]); err != nil {
		return err
	}
	if d.mainLens[0xE8] != 0 {
		d.intelStarted = true
	}
	if err := d.readLengths(br, d.lengthLens[:]); err != nil {
		return err
	}
	return d.length.build(d.lengthLens[:])
}

// readLengths updates lens in place from pretree-coded deltas against the
// lengths of the previous block.
func (d *Decoder) readLengths(br *bitReader, lens []uint8) error {
	for i := range d.pretreeLens {
		d.pretreeLens[i] = uint8(br.readBits(4))
	}
	if err := d.pretree.build(d.pretreeLens[:]); err != nil {
		return err
	}
	fill := func(x, run int, v uint8) error {
		if x+run > len(lens) {
			return fmt.Errorf("%w: code length run overflows table", ErrCorrupt)
		}
		for i := 0; i < run; i++ {
			lens[x+i] = v
		}
		return nil
	}
	for x := 0; x < len(lens); {
		z, err := d.pretree.decode(br)
		if err != nil {
			return err
		}
		switch z {
		case 17:
			run := int(br.readBits(4)) + 4
			if err := fill(x, run, 0); err != nil {
				return err
			}
			x += run
		case 18:
			run := int(br.readBits(5)) + 20
			if err := fill(x, run, 0); err != nil {
				return err
			}
			x += run
		case 19:
			run := int(br.readBits(1)) + 4
			z, err := d.pretree.decode(br)
			if err != nil {
				return err
			}
			v, err := deltaLength(lens[x], z)
			if err != nil {
				return err
			}
			if err := fill(x, run, v); err != nil {
				return err
			}
			x += run
		default:
			v, err := deltaLength(lens[x], z)
			if err != nil {
				return err
			}
			lens[x] = v
			x++
		}
	}
	return nil
}

func deltaLength(prev uint8, z int) (uint8, error) {
	v := int(prev) - z
	if v < 0 {
		v += 17
	}
	if v < 0 || v > maxCodeLen {
		return 0, fmt.Errorf("%w: code length delta %d", ErrCorrupt, z)
	}
	return uint8(v), nil
}

// decodeMatches decodes literals and matches until at least run bytes have
// been produced. The last match may run past run; the caller accounts for it.
func (d *Decoder) decodeMatches(br *bitReader, run int, aligned bool) (int, error) {
	produced := 0
	for produced < run {
		sym, err := d.main.decode(br)
		if err != nil {
			return 0, err
		}
		if sym < numChars {
			d.window[d.pos&windowMask] = byte(sym)
			d.pos++
			produced++
			continue
		}
		sym -= numChars
		matchLen := sym & numPrimaryLengths
		if matchLen == numPrimaryLengths {
			footer, err := d.length.decode(br)
			if err != nil {
				return 0, err
			}
			matchLen += footer
		}
		matchLen += minMatch

		var off uint32
		switch slot := sym >> 3; slot {
		case 0:
			off = d.r0
		case 1:
			off = d.r1
			d.r1 = d.r0
			d.r0 = off
		case 2:
			off = d.r2
			d.r2 = d.r0
			d.r0 = off
		default:
			extra := uint(extraBits[slot])
			off = positionBase[slot] - 2
			switch {
			case aligned && extra > 3:
				off += br.readBits(extra-3) << 3
				a, err := d.aligned.decode(br)
				if err != nil {
					return 0, err
				}
				off += uint32(a)
			case aligned && extra == 3:
				a, err := d.aligned.decode(br)
				if err != nil {
					return 0, err
				}
				off += uint32(a)
			default:
				off += br.readBits(extra)
			}
			d.r2 = d.r1
			d.r1 = d.r0
			d.r0 = off
		}

		if off == 0 || int64(off) > d.pos || off > WindowSize {
			return 0, fmt.Errorf("%w: match offset %d at position %d", ErrCorrupt, off, d.pos)
		}
		for i := 0; i < matchLen; i++ {
			d.window[d.pos&windowMask] = d.window[(d.pos-int64(off))&windowMask]
			d.pos++
		}
		produced += matchLen
	}
	return produced, nil
}

func (d *Decoder) copyRaw(br *bitReader, run int) (int, error) {
	b, ok := br.rawBytes(run)
	if !ok {
		return 0, fmt.Errorf("%w: uncompressed block needs %d bytes", ErrTruncated, run)
	}
	for _, v := range b {
		d.window[d.pos&windowMask] = v
		d.pos++
	}
	return run, nil
}

// translateE8 undoes the x86 CALL preprocessing an encoder applies: the 32-bit
// operand after each 0xE8 byte is turned back from an absolute into a
// relative offset.
func translateE8(data []byte, curPos, fileSize int32) {
	end := len(data) - 10
	for i := 0; i < end; {
		if data[i] != 0xE8 {
			i++
			curPos++
			continue
		}
		abs := int32(binary.LittleEndian.Uint32(data[i+1:]))
		if abs >= -curPos && abs < fileSize {
			rel := abs + fileSize
			if abs >= 0 {
				rel = abs - curPos
			}
			binary.LittleEndian.PutUint32(data[i+1:], uint32(rel))
		}
		i += 5
		curPos += 5
	}
}
