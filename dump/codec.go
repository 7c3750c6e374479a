package dump

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

const zipEntryName = "document.xnb"

// Function variables for testing injection.
var (
	newZstdWriter = func() (*zstd.Encoder, error) { return zstd.NewWriter(nil) }
	newZstdReader = func() (*zstd.Decoder, error) { return zstd.NewReader(nil) }
	zipCreate     = func(zw *zip.Writer, name string) (io.Writer, error) { return zw.Create(name) }
	zipClose      = func(zw *zip.Writer) error { return zw.Close() }
	zipOpen       = func(zf *zip.File) (io.ReadCloser, error) { return zf.Open() }
	readAll       = io.ReadAll
	lz4Close      = func(w *lz4.Writer) error { return w.Close() }
	brotliClose   = func(w *brotli.Writer) error { return w.Close() }
	brotliWrite   = func(w *brotli.Writer, p []byte) (int, error) { return w.Write(p) }
)

type codec struct {
	compress   func(w io.Writer, doc []byte) error
	decompress func(src []byte, expected uint64) ([]byte, error)
}

var codecs = map[Compression]codec{
	CompZIP:  {compress: zipCompress, decompress: zipDecompress},
	CompZSTD: {compress: zstdCompress, decompress: zstdDecompress},
	CompLZ4:  {compress: lz4Compress, decompress: streamDecompress(CompLZ4, openLZ4)},
	CompBR:   {compress: brotliCompress, decompress: streamDecompress(CompBR, openBrotli)},
}

func openLZ4(r io.Reader) io.Reader { return lz4.NewReader(r) }

func openBrotli(r io.Reader) io.Reader { return brotli.NewReader(r) }

// streamDecompress reads at most one byte past expected so an oversized
// stream is detected without being expanded in full.
func streamDecompress(comp Compression, open func(io.Reader) io.Reader) func([]byte, uint64) ([]byte, error) {
	return func(src []byte, expected uint64) ([]byte, error) {
		b, err := readAll(io.LimitReader(open(bytes.NewReader(src)), int64(expected)+1))
		if err != nil {
			return nil, err
		}
		if uint64(len(b)) > expected {
			return nil, fmt.Errorf("%w: %s expanded beyond expected size", ErrInvalidArchive, comp)
		}
		return b, nil
	}
}

func zipCompress(w io.Writer, doc []byte) error {
	zw := zip.NewWriter(w)
	entry, err := zipCreate(zw, zipEntryName)
	if err == nil {
		_, err = entry.Write(doc)
	}
	if err != nil {
		_ = zipClose(zw)
		return err
	}
	return zipClose(zw)
}

// zipDecompress extracts the single document entry of a ZIP archive.
func zipDecompress(src []byte, expected uint64) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(src), int64(len(src)))
	if err != nil {
		return nil, err
	}
	if len(zr.File) != 1 {
		return nil, fmt.Errorf("%w: zip holds %d entries, want 1", ErrInvalidArchive, len(zr.File))
	}
	zf := zr.File[0]
	switch {
	case zf.Name != zipEntryName:
		return nil, fmt.Errorf("%w: zip entry %q, want %s", ErrInvalidArchive, zf.Name, zipEntryName)
	case zf.FileInfo().IsDir():
		return nil, fmt.Errorf("%w: zip entry is a directory", ErrInvalidArchive)
	case zf.UncompressedSize64 != expected:
		return nil, fmt.Errorf("%w: zip entry holds %d bytes, want %d", ErrInvalidArchive, zf.UncompressedSize64, expected)
	}
	rc, err := zipOpen(zf)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return readAll(io.LimitReader(rc, int64(expected)))
}

func zstdCompress(w io.Writer, doc []byte) error {
	enc, err := newZstdWriter()
	if err != nil {
		return err
	}
	defer enc.Close()
	_, err = w.Write(enc.EncodeAll(doc, nil))
	return err
}

func zstdDecompress(src []byte, expected uint64) ([]byte, error) {
	dec, err := newZstdReader()
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	out, err := dec.DecodeAll(src, make([]byte, 0, expected))
	if err != nil {
		return nil, err
	}
	if uint64(len(out)) > expected {
		return nil, fmt.Errorf("%w: %s expanded beyond expected size", ErrInvalidArchive, CompZSTD)
	}
	return out, nil
}

func lz4Compress(w io.Writer, doc []byte) error {
	zw := lz4.NewWriter(w)
	if _, err := zw.Write(doc); err != nil {
		_ = lz4Close(zw)
		return err
	}
	return lz4Close(zw)
}

func brotliCompress(w io.Writer, doc []byte) error {
	bw := brotli.NewWriterLevel(w, brotli.BestCompression)
	if _, err := brotliWrite(bw, doc); err != nil {
		_ = brotliClose(bw)
		return err
	}
	return brotliClose(bw)
}
