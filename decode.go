package xnb

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

const (
	phaseHeader      = "header"
	phaseDecompress  = "decompress"
	phaseTypeReaders = "type readers"
	phaseSharedCount = "shared resource count"
	phasePrimary     = "primary object"
)

// Asset is a decoded document: the primary object and the shared resources
// referenced from it. A nil entry of SharedResources is a null resource; when
// decoding a resource fails, it and every later one are left out.
type Asset[T any] struct {
	Header          Header
	Primary         T
	SharedResources []*Object
}

func (a *Asset[T]) SharedResource(index int) (*Object, error) {
	if index < 0 || index >= len(a.SharedResources) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrSharedResourceUnavailable, index, len(a.SharedResources))
	}
	return a.SharedResources[index], nil
}

// Info summarizes a document without decoding its content.
type Info struct {
	Header              Header           `json:"header"`
	BodySize            int              `json:"body_size"`
	TypeReaders         []TypeReaderInfo `json:"type_readers"`
	SharedResourceCount int              `json:"shared_resource_count"`
}

type body struct {
	header      Header
	cursor      *Cursor
	sharedCount int
}

// Decode decodes an XNB document held entirely in data.
//
// The decoding process:
//  1. Reads and validates the 13-byte header
//  2. Decompresses the body if the header says it is compressed
//  3. Reads the type reader table and resolves it against the registry
//  4. Reads the shared resource count
//  5. Runs primary over the body
//  6. Decodes the shared resources
//
// By default, Decode will:
//   - Use safe default size limits
//   - Resolve type readers against DefaultRegistry()
//   - Report non-fatal anomalies on logrus.StandardLogger()
//
// Any structural failure aborts the call with a *DecodeError carrying the
// phase and byte offset. A shared resource that fails to decode does not: it
// is logged, and it and the resources after it are left out of the asset.
func Decode[T any](data []byte, primary func(*Cursor) (T, error), opts ...ReadOption) (*Asset[T], error) {
	cfg := newReadConfig(opts)
	b, err := openBody(data, cfg)
	if err != nil {
		return nil, err
	}
	c := b.cursor
	v, err := primary(c)
	if err != nil {
		return nil, phaseError(phasePrimary, c, err)
	}
	shared := readSharedResources(c, b.sharedCount, cfg.log)
	if n := c.Remaining(); n > 0 {
		cfg.log.WithFields(logrus.Fields{"bytes": n, "offset": c.Offset()}).Warn("xnb: data bytes unused")
	}
	return &Asset[T]{Header: b.header, Primary: v, SharedResources: shared}, nil
}

// DecodeAny decodes a document whose primary object is read through the
// type reader table alone.
func DecodeAny(data []byte, opts ...ReadOption) (*Asset[*Object], error) {
	return Decode(data, ReadAny, opts...)
}

// DecodeObject decodes a document whose primary object must have been
// written by r. The primary is nil when the document stores a null value.
func DecodeObject[T any](data []byte, r *TypeReader[T], opts ...ReadOption) (*Asset[*T], error) {
	return Decode(data, func(c *Cursor) (*T, error) {
		v, ok, err := ReadObject(c, r)
		if err != nil || !ok {
			return nil, err
		}
		return &v, nil
	}, opts...)
}

// Inspect reads the header, body and type reader table of a document without
// decoding any content.
func Inspect(data []byte, opts ...ReadOption) (*Info, error) {
	cfg := newReadConfig(opts)
	b, err := openBody(data, cfg)
	if err != nil {
		return nil, err
	}
	return &Info{
		Header:              b.header,
		BodySize:            b.cursor.Len(),
		TypeReaders:         b.cursor.table.infos(),
		SharedResourceCount: b.sharedCount,
	}, nil
}

// Decompress returns data as an uncompressed document: the same header with
// the compression flags cleared and the declared size fixed up, followed by
// the expanded body. Uncompressed input is returned unchanged.
func Decompress(data []byte, opts ...ReadOption) ([]byte, error) {
	cfg := newReadConfig(opts)
	fh, raw, err := expand(data, cfg)
	if err != nil {
		return nil, err
	}
	if !fh.header().Compressed() {
		return data, nil
	}
	fh.Flags &^= HeaderFlagCompressedLZX | HeaderFlagCompressedLZ4
	fh.DeclaredSize = uint32(headerSize + len(raw))
	out := make([]byte, 0, headerSize+len(raw))
	out = fh.appendTo(out)
	return append(out, raw...), nil
}

// expand reads the header and returns the (decompressed) body.
func expand(data []byte, cfg readConfig) (fixedHeader, []byte, error) {
	if uint64(len(data)) > cfg.limits.MaxInputSize {
		return fixedHeader{}, nil, &DecodeError{Phase: phaseHeader, Err: fmt.Errorf("%w: input is %d bytes", ErrLimitExceeded, len(data))}
	}
	in := NewCursor(data)
	fh, err := readFixedHeader(in)
	if err != nil {
		return fh, nil, phaseError(phaseHeader, in, err)
	}
	if err := validateHeader(fh, len(data), cfg); err != nil {
		return fh, nil, &DecodeError{Phase: phaseHeader, Err: err}
	}
	cfg.log.WithField("header", fh.String()).Debug("xnb: read header")

	hdr := fh.header()
	var raw []byte
	switch {
	case hdr.CompressedLZX():
		raw, err = decompressLZX(in, cfg.limits, cfg.log)
	case hdr.CompressedLZ4():
		raw, err = decompressLZ4(in, cfg.limits)
	default:
		raw, err = in.ReadBytes(in.Remaining())
	}
	if err != nil {
		return fh, nil, phaseError(phaseDecompress, in, err)
	}
	return fh, raw, nil
}

func openBody(data []byte, cfg readConfig) (*body, error) {
	fh, raw, err := expand(data, cfg)
	if err != nil {
		return nil, err
	}

	c := &Cursor{data: raw}
	table, err := readTypeTable(c, cfg.registry, cfg.limits, cfg.log)
	if err != nil {
		return nil, phaseError(phaseTypeReaders, c, err)
	}
	c.table = table

	countStart := c.Offset()
	sharedCount, err := c.readCount()
	if err != nil {
		return nil, phaseError(phaseSharedCount, c, err)
	}
	if sharedCount > cfg.limits.MaxSharedResources {
		return nil, &DecodeError{Phase: phaseSharedCount, Offset: countStart,
			Err: fmt.Errorf("%w: %d shared resources, limit %d", ErrLimitExceeded, sharedCount, cfg.limits.MaxSharedResources)}
	}
	cfg.log.WithFields(logrus.Fields{"body": len(raw), "type_readers": table.len(), "shared": sharedCount}).Debug("xnb: read body tables")
	return &body{header: fh.header(), cursor: c, sharedCount: sharedCount}, nil
}

func readSharedResources(c *Cursor, n int, log logrus.FieldLogger) []*Object {
	out := make([]*Object, 0, min(n, c.Remaining()))
	for i := 0; i < n; i++ {
		o, err := ReadAny(c)
		if err != nil {
			log.WithError(err).WithFields(logrus.Fields{"index": i, "skipped": n - i, "total": n}).
				Error("xnb: reading shared resource failed, skipping the rest of the table")
			break
		}
		out = append(out, o)
	}
	return out
}

// phaseError tags err with the phase it happened in, keeping the offset of an
// inner *DecodeError when there is one.
func phaseError(phase string, c *Cursor, err error) error {
	if top, ok := err.(*DecodeError); ok {
		return &DecodeError{Phase: phase, Offset: top.Offset, Err: top.Err}
	}
	var de *DecodeError
	if errors.As(err, &de) {
		return &DecodeError{Phase: phase, Offset: de.Offset, Err: err}
	}
	return &DecodeError{Phase: phase, Offset: c.Offset(), Err: err}
}
