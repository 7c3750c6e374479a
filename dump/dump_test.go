package dump

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/logicossoftware/go-xnb"
	"github.com/logicossoftware/go-xnb/internal/xnbtest"
	"github.com/pierrec/lz4/v4"
	"github.com/sirupsen/logrus/hooks/test"
)

type errWriter struct{}

func (errWriter) Write(p []byte) (int, error) { return 0, io.ErrClosedPipe }

var allCompressions = []Compression{CompNone, CompZIP, CompZSTD, CompLZ4, CompBR}

func sampleDoc() []byte {
	body := xnbtest.Body([]xnbtest.Reader{{Name: "Microsoft.Xna.Framework.Content.StringReader"}}, 0,
		xnbtest.Varint(1), xnbtest.String(string(bytes.Repeat([]byte("level data "), 50))))
	return xnbtest.File('w', 0, body)
}

func TestPackUnpackRoundTrip_AllCompressions(t *testing.T) {
	doc := sampleDoc()
	for _, comp := range allCompressions {
		packed, err := Pack(comp, doc)
		if err != nil {
			t.Fatalf("%s: %v", comp, err)
		}
		if comp != CompNone && !bytes.HasPrefix(packed, archiveMagic[:]) {
			t.Fatalf("%s: missing archive magic", comp)
		}
		out, err := Unpack(packed, uint64(len(doc)))
		if err != nil {
			t.Fatalf("%s: %v", comp, err)
		}
		if !bytes.Equal(out, doc) {
			t.Fatalf("%s: round trip mismatch", comp)
		}
	}
}

func TestUnpack_Errors(t *testing.T) {
	doc := sampleDoc()
	packed, err := Pack(CompZSTD, doc)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Unpack(packed, uint64(len(doc)-1)); !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("expected ErrLimitExceeded, got %v", err)
	}
	if _, err := Unpack(packed[:archiveHeaderSize-1], 1<<20); !errors.Is(err, ErrInvalidArchive) {
		t.Fatalf("expected ErrInvalidArchive, got %v", err)
	}

	bad := append([]byte(nil), packed...)
	bad[4] = 9
	if _, err := Unpack(bad, 1<<20); !errors.Is(err, ErrInvalidArchive) {
		t.Fatalf("expected ErrInvalidArchive, got %v", err)
	}

	// a length prefix larger than the stream
	for _, comp := range []Compression{CompZSTD, CompLZ4, CompBR} {
		p, err := Pack(comp, doc)
		if err != nil {
			t.Fatal(err)
		}
		p[5]++
		if _, err := Unpack(p, 1<<20); !errors.Is(err, ErrInvalidArchive) {
			t.Fatalf("%s: expected ErrInvalidArchive, got %v", comp, err)
		}
	}

	// a length prefix smaller than the stream
	for _, comp := range []Compression{CompZIP, CompZSTD, CompLZ4, CompBR} {
		p, err := Pack(comp, doc)
		if err != nil {
			t.Fatal(err)
		}
		p[5]--
		if _, err := Unpack(p, 1<<20); !errors.Is(err, ErrInvalidArchive) {
			t.Fatalf("%s: expected ErrInvalidArchive, got %v", comp, err)
		}
	}

	if _, err := Pack(Compression(9), doc); !errors.Is(err, ErrInvalidArchive) {
		t.Fatalf("expected ErrInvalidArchive, got %v", err)
	}
}

func TestZIPDecompressErrors(t *testing.T) {
	// Multi-entry
	{
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		_, _ = zw.Create(zipEntryName)
		_, _ = zw.Create("extra")
		_ = zw.Close()
		if _, err := zipDecompress(buf.Bytes(), 0); err == nil {
			t.Fatal("expected error")
		}
	}
	// Wrong name
	{
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		w, _ := zw.Create("nope")
		_, _ = w.Write([]byte("abc"))
		_ = zw.Close()
		if _, err := zipDecompress(buf.Bytes(), 3); err == nil {
			t.Fatal("expected error")
		}
	}
	// Not an archive
	if _, err := zipDecompress([]byte("not a zip"), 3); err == nil {
		t.Fatal("expected error")
	}
}

func TestCodecs_InjectedErrors(t *testing.T) {
	restore := func() {
		zipCreate = func(zw *zip.Writer, name string) (io.Writer, error) { return zw.Create(name) }
		zipClose = func(zw *zip.Writer) error { return zw.Close() }
		zipOpen = func(zf *zip.File) (io.ReadCloser, error) { return zf.Open() }
		readAll = io.ReadAll
		lz4Close = func(w *lz4.Writer) error { return w.Close() }
		brotliClose = func(w *brotli.Writer) error { return w.Close() }
		brotliWrite = func(w *brotli.Writer, p []byte) (int, error) { return w.Write(p) }
		newZstdWriter = func() (*zstd.Encoder, error) { return zstd.NewWriter(nil) }
		newZstdReader = func() (*zstd.Decoder, error) { return zstd.NewReader(nil) }
	}
	t.Cleanup(restore)
	doc := []byte("x")

	cases := []struct {
		name   string
		inject func()
		run    func() error
	}{
		{"zip create", func() {
			zipCreate = func(*zip.Writer, string) (io.Writer, error) { return nil, io.ErrClosedPipe }
		}, func() error { return zipCompress(io.Discard, doc) }},
		{"zip entry write", func() {
			zipCreate = func(*zip.Writer, string) (io.Writer, error) { return errWriter{}, nil }
		}, func() error { return zipCompress(io.Discard, doc) }},
		{"zip close", func() {
			zipClose = func(*zip.Writer) error { return io.ErrClosedPipe }
		}, func() error { return zipCompress(io.Discard, doc) }},
		{"zip open", func() {
			zipOpen = func(*zip.File) (io.ReadCloser, error) { return nil, io.ErrClosedPipe }
		}, func() error {
			p, err := Pack(CompZIP, doc)
			if err != nil {
				return nil
			}
			_, err = Unpack(p, 1)
			return err
		}},
		{"zstd writer", func() {
			newZstdWriter = func() (*zstd.Encoder, error) { return nil, io.ErrClosedPipe }
		}, func() error { return zstdCompress(io.Discard, doc) }},
		{"zstd reader", func() {
			newZstdReader = func() (*zstd.Decoder, error) { return nil, io.ErrClosedPipe }
		}, func() error { _, err := zstdDecompress(doc, 1); return err }},
		{"lz4 close", func() {
			lz4Close = func(*lz4.Writer) error { return io.ErrClosedPipe }
		}, func() error { return lz4Compress(io.Discard, doc) }},
		{"brotli write", func() {
			brotliWrite = func(*brotli.Writer, []byte) (int, error) { return 0, io.ErrClosedPipe }
		}, func() error { return brotliCompress(io.Discard, doc) }},
		{"brotli close", func() {
			brotliClose = func(*brotli.Writer) error { return io.ErrClosedPipe }
		}, func() error { return brotliCompress(io.Discard, doc) }},
		{"read all", func() {
			readAll = func(io.Reader) ([]byte, error) { return nil, io.ErrClosedPipe }
		}, func() error { _, err := codecs[CompBR].decompress([]byte("anything"), 10); return err }},
	}
	for _, tc := range cases {
		restore()
		tc.inject()
		if err := tc.run(); !errors.Is(err, io.ErrClosedPipe) {
			t.Fatalf("%s: expected injected error, got %v", tc.name, err)
		}
	}

	restore()
	if err := zipCompress(errWriter{}, doc); err == nil {
		t.Fatal("zip: expected writer error")
	}
	if err := lz4Compress(errWriter{}, doc); err == nil {
		t.Fatal("lz4: expected writer error")
	}
}

func TestWriteReadFile(t *testing.T) {
	doc := sampleDoc()
	body := doc[xnbtest.HeaderSize:]
	compressed := xnbtest.File('w', xnb.HeaderFlagCompressedLZX,
		xnbtest.Compressed(uint32(len(body)), xnbtest.Frame(len(body), xnbtest.LZXUncompressed(body))))
	log, _ := test.NewNullLogger()
	dir := t.TempDir()

	for _, name := range []string{"a.xnb", "a.xnb.zip", "a.xnb.zst", "a.xnb.lz4", "a.xnb.br"} {
		p := filepath.Join(dir, name)
		if err := WriteFile(p, compressed, xnb.WithLogger(log)); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		out, err := ReadFile(p, 1<<20)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !bytes.Equal(out, doc) {
			t.Fatalf("%s: expanded document mismatch", name)
		}
	}

	if _, err := ReadFile(filepath.Join(dir, "missing"), 1); err == nil {
		t.Fatal("expected error")
	}
	if err := WriteFile(filepath.Join(dir, "bad.xnb"), []byte("nope"), xnb.WithLogger(log)); err == nil {
		t.Fatal("expected error")
	}
}

func TestCompressionNames(t *testing.T) {
	for _, comp := range allCompressions {
		got, err := ParseCompression(comp.String())
		if err != nil || got != comp {
			t.Fatalf("%s: got %v, %v", comp, got, err)
		}
	}
	if Compression(99).String() != "unknown" {
		t.Fatal("expected unknown")
	}
	if _, err := ParseCompression("lzx"); err == nil {
		t.Fatal("expected error")
	}
	for _, comp := range allCompressions {
		if CompressionForPath("a.xnb"+comp.Extension()) != comp {
			t.Fatalf("%s: extension %q does not map back", comp, comp.Extension())
		}
	}
	if CompressionForPath("x/y.XNB.ZST") != CompZSTD || CompressionForPath("y.xnb") != CompNone {
		t.Fatal("extension mapping")
	}
}
