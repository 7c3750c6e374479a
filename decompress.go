package xnb

import (
	"fmt"

	"github.com/logicossoftware/go-xnb/internal/lzx"
	"github.com/pierrec/lz4/v4"
	"github.com/sirupsen/logrus"
)

// Function variables for testing injection.
var (
	newLZXDecoder = func() frameDecoder { return lzx.NewDecoder() }
	lz4Uncompress = func(src, dst []byte) (int, error) { return lz4.UncompressBlock(src, dst) }
)

type frameDecoder interface {
	Decompress(chunk []byte, frameSize int) ([]byte, error)
}

func readDecompressedSize(c *Cursor, limits Limits) (uint32, error) {
	size, err := c.ReadUint32()
	if err != nil {
		return 0, err
	}
	if size > limits.MaxDecompressedSize {
		c.pos -= 4
		return 0, c.errorf(ErrLimitExceeded, "decompressed size %d exceeds %d", size, limits.MaxDecompressedSize)
	}
	return size, nil
}

// decompressLZX expands an LZX-compressed body. The output buffer is
// allocated once at the declared size and filled front to back; frames that
// would overflow it are rejected.
func decompressLZX(c *Cursor, limits Limits, log logrus.FieldLogger) ([]byte, error) {
	size, err := readDecompressedSize(c, limits)
	if err != nil {
		return nil, err
	}
	out := make([]byte, size)
	written := 0
	dec := newLZXDecoder()
	frames := 0
	for c.Remaining() > 0 {
		frameStart := c.Offset()
		blockSize, frameSize, err := readFrameHeader(c)
		if err != nil {
			return nil, err
		}
		if blockSize == 0 || frameSize == 0 {
			if n := c.Remaining(); n > 0 {
				log.WithField("bytes", n).Debug("xnb: compressed bytes after end marker ignored")
			}
			break
		}
		block, err := c.ReadBytes(blockSize)
		if err != nil {
			return nil, err
		}
		frame, err := dec.Decompress(block, frameSize)
		if err != nil {
			return nil, &DecodeError{Offset: frameStart, Err: fmt.Errorf("%w: frame %d: %w", ErrCorruptFrame, frames, err)}
		}
		if len(frame) > len(out)-written {
			return nil, &DecodeError{Offset: frameStart, Err: fmt.Errorf("%w: frame %d expands past declared size %d", ErrCorruptFrame, frames, size)}
		}
		written += copy(out[written:], frame)
		frames++
	}
	if written < len(out) {
		log.WithFields(logrus.Fields{"declared": size, "decompressed": written}).Warn("xnb: compressed body shorter than declared size")
	}
	return out, nil
}

// decompressLZ4 expands a body stored as a single raw LZ4 block.
func decompressLZ4(c *Cursor, limits Limits) ([]byte, error) {
	size, err := readDecompressedSize(c, limits)
	if err != nil {
		return nil, err
	}
	start := c.Offset()
	src, err := c.ReadBytes(c.Remaining())
	if err != nil {
		return nil, err
	}
	out := make([]byte, size)
	n, err := lz4Uncompress(src, out)
	if err != nil {
		return nil, &DecodeError{Offset: start, Err: fmt.Errorf("%w: lz4: %w", ErrCorruptFrame, err)}
	}
	if n != len(out) {
		return nil, &DecodeError{Offset: start, Err: fmt.Errorf("%w: lz4 decompressed %d bytes, declared %d", ErrCorruptFrame, n, size)}
	}
	return out, nil
}
