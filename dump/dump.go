// Package dump archives expanded XNB documents for offline inspection.
//
// An archive is the magic "xnbz", a compression byte, the uncompressed
// length as a little-endian uint64 and the compressed document. Data that
// does not start with the archive magic is taken to be a plain document.
package dump

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/logicossoftware/go-xnb"
)

var (
	ErrInvalidArchive = errors.New("dump: invalid archive")
	ErrLimitExceeded  = errors.New("dump: limit exceeded")
)

var archiveMagic = [4]byte{'x', 'n', 'b', 'z'}

const archiveHeaderSize = 4 + 1 + 8

type Compression uint8

const (
	CompNone Compression = 0x0
	CompZIP  Compression = 0x1
	CompZSTD Compression = 0x2
	CompLZ4  Compression = 0x3
	CompBR   Compression = 0x4
)

var compressionNames = []string{"none", "zip", "zstd", "lz4", "br"}

func (c Compression) String() string {
	if int(c) < len(compressionNames) {
		return compressionNames[c]
	}
	return "unknown"
}

func ParseCompression(name string) (Compression, error) {
	for i, n := range compressionNames {
		if strings.EqualFold(n, name) {
			return Compression(i), nil
		}
	}
	return 0, fmt.Errorf("dump: unknown compression %q", name)
}

// CompressionForPath picks the codec from the file extension of path.
// Unrecognized extensions store the document as is.
func CompressionForPath(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return CompZIP
	case ".zst", ".zstd":
		return CompZSTD
	case ".lz4":
		return CompLZ4
	case ".br":
		return CompBR
	default:
		return CompNone
	}
}

// Extension returns the file extension CompressionForPath maps to c.
func (c Compression) Extension() string {
	switch c {
	case CompZIP:
		return ".zip"
	case CompZSTD:
		return ".zst"
	case CompLZ4:
		return ".lz4"
	case CompBR:
		return ".br"
	default:
		return ""
	}
}

// Pack archives doc with comp. CompNone returns doc unchanged.
func Pack(comp Compression, doc []byte) ([]byte, error) {
	if comp == CompNone {
		return doc, nil
	}
	c, ok := codecs[comp]
	if !ok {
		return nil, fmt.Errorf("%w: unknown compression %d", ErrInvalidArchive, comp)
	}
	var buf bytes.Buffer
	buf.Write(archiveMagic[:])
	buf.WriteByte(byte(comp))
	buf.Write(binary.LittleEndian.AppendUint64(nil, uint64(len(doc))))
	if err := c.compress(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unpack returns the document held in data. maxUncompressed bounds the
// size of an archived document.
func Unpack(data []byte, maxUncompressed uint64) ([]byte, error) {
	if !bytes.HasPrefix(data, archiveMagic[:]) {
		return data, nil
	}
	if len(data) < archiveHeaderSize {
		return nil, fmt.Errorf("%w: header truncated", ErrInvalidArchive)
	}
	comp := Compression(data[4])
	c, ok := codecs[comp]
	if !ok {
		return nil, fmt.Errorf("%w: unknown compression %d", ErrInvalidArchive, comp)
	}
	expected := binary.LittleEndian.Uint64(data[5:archiveHeaderSize])
	if expected > maxUncompressed {
		return nil, fmt.Errorf("%w: uncompressed length %d exceeds limit", ErrLimitExceeded, expected)
	}
	out, err := c.decompress(data[archiveHeaderSize:], expected)
	if err != nil {
		return nil, err
	}
	if uint64(len(out)) != expected {
		return nil, fmt.Errorf("%w: decompressed length %d != expected %d", ErrInvalidArchive, len(out), expected)
	}
	return out, nil
}

// WriteFile expands the XNB document data and archives it at path with the
// codec its extension names.
func WriteFile(path string, data []byte, opts ...xnb.ReadOption) error {
	doc, err := xnb.Decompress(data, opts...)
	if err != nil {
		return err
	}
	packed, err := Pack(CompressionForPath(path), doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, packed, 0o644)
}

// ReadFile reads a document written by WriteFile, or any plain XNB file.
func ReadFile(path string, maxUncompressed uint64) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Unpack(data, maxUncompressed)
}
