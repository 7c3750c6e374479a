// Package xnbtest builds XNB documents byte by byte for tests.
package xnbtest

import (
	"encoding/binary"
	"math"
)

const HeaderSize = 13

// Reader is one type reader table entry.
type Reader struct {
	Name    string
	Version int32
}

// Header returns a 13-byte header for the given platform, flags and declared size.
func Header(platform, flags byte, size uint32) []byte {
	b := []byte{'X', 'N', 'B', platform, 0, 0, 0, 0, flags}
	return binary.LittleEndian.AppendUint32(b, size)
}

// File prefixes body with a header whose declared size matches the result.
func File(platform, flags byte, body []byte) []byte {
	out := Header(platform, flags, uint32(HeaderSize+len(body)))
	return append(out, body...)
}

func Varint(v int32) []byte {
	u := uint32(v)
	var out []byte
	for u >= 0x80 {
		out = append(out, byte(u)|0x80)
		u >>= 7
	}
	return append(out, byte(u))
}

func String(s string) []byte {
	return append(Varint(int32(len(s))), s...)
}

func Int32(v int32) []byte {
	return binary.LittleEndian.AppendUint32(nil, uint32(v))
}

func Float32(v float32) []byte {
	return binary.LittleEndian.AppendUint32(nil, math.Float32bits(v))
}

// TypeTable encodes a type reader table.
func TypeTable(readers ...Reader) []byte {
	out := Varint(int32(len(readers)))
	for _, r := range readers {
		out = append(out, String(r.Name)...)
		out = append(out, Int32(r.Version)...)
	}
	return out
}

// Body lays out an uncompressed document body: the type reader table, the
// shared resource count and then content, which holds the primary object
// followed by the shared resources.
func Body(readers []Reader, sharedCount int32, content ...[]byte) []byte {
	out := TypeTable(readers...)
	out = append(out, Varint(sharedCount)...)
	return append(out, Concat(content...)...)
}

func Concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Frame encodes one compressed frame. A frame size other than 0x8000 uses
// the escaped form.
func Frame(frameSize int, block []byte) []byte {
	var out []byte
	if frameSize != 0x8000 {
		out = append(out, 0xFF)
		out = binary.BigEndian.AppendUint16(out, uint16(frameSize))
	}
	out = binary.BigEndian.AppendUint16(out, uint16(len(block)))
	return append(out, block...)
}

// Compressed lays out a compressed body: the decompressed size followed by
// the frames.
func Compressed(decompressedSize uint32, frames ...[]byte) []byte {
	out := binary.LittleEndian.AppendUint32(nil, decompressedSize)
	return append(out, Concat(frames...)...)
}
