package xnb

import (
	"bytes"
	"errors"
	"testing"

	"github.com/logicossoftware/go-xnb/internal/xnbtest"
	"github.com/sirupsen/logrus"
)

func TestDecode_EmptyDocument(t *testing.T) {
	data := xnbtest.File('w', 0, xnbtest.Body(nil, 0))
	log, hook := testLogger()
	log.SetLevel(logrus.InfoLevel)

	asset, err := Decode(data, func(*Cursor) (struct{}, error) { return struct{}{}, nil }, WithLogger(log))
	if err != nil {
		t.Fatal(err)
	}
	if asset.Header.Platform != PlatformWindows || asset.Header.Compressed() {
		t.Fatalf("header: %+v", asset.Header)
	}
	if len(asset.SharedResources) != 0 {
		t.Fatalf("shared resources: %v", asset.SharedResources)
	}
	if entries := hook.AllEntries(); len(entries) != 0 {
		t.Fatalf("unexpected diagnostics: %v", entries[0].Message)
	}
}

func TestDecode_LeftoverBytes(t *testing.T) {
	data := xnbtest.File('w', 0, xnbtest.Body(nil, 0, []byte{0, 2, 3}))
	log, hook := testLogger()
	if _, err := DecodeAny(data, WithLogger(log)); err != nil {
		t.Fatal(err)
	}
	e := hook.LastEntry()
	if e.Level != logrus.WarnLevel || e.Message != "xnb: data bytes unused" || e.Data["bytes"] != 2 {
		t.Fatalf("entry: %v %q %v", e.Level, e.Message, e.Data)
	}
}

func TestDecode_TypeReaderDispatch(t *testing.T) {
	readers := []xnbtest.Reader{reader(Int32Reader)}
	log, _ := testLogger()

	data := xnbtest.File('w', 0, xnbtest.Body(readers, 0, xnbtest.Varint(1), xnbtest.Int32(42)))
	asset, err := DecodeAny(data, WithLogger(log))
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := As[int32](asset.Primary); !ok || v != 42 {
		t.Fatalf("primary: %+v", asset.Primary)
	}

	data = xnbtest.File('w', 0, xnbtest.Body(readers, 0, xnbtest.Varint(2), xnbtest.Int32(42)))
	_, err = DecodeAny(data, WithLogger(log))
	var rangeErr *TypeIDOutOfRangeError
	if !errors.As(err, &rangeErr) || rangeErr.ID != 2 || rangeErr.TableLen != 1 {
		t.Fatalf("expected out of range id 2 of 1, got %v", err)
	}
	var de *DecodeError
	if !errors.As(err, &de) || de.Phase != phasePrimary {
		t.Fatalf("expected primary phase, got %v", err)
	}
}

func TestDecode_Compressed(t *testing.T) {
	body := xnbtest.Body([]xnbtest.Reader{reader(StringReader)}, 0, xnbtest.Varint(1), xnbtest.String("packed"))
	log, _ := testLogger()

	lzxDoc := xnbtest.File('w', HeaderFlagCompressedLZX|HeaderFlagHiDef,
		xnbtest.Compressed(uint32(len(body)), xnbtest.Frame(len(body), xnbtest.LZXUncompressed(body))))
	lz4Body := bytes.Repeat(body, 8)
	lz4Doc := xnbtest.File('d', HeaderFlagCompressedLZ4,
		xnbtest.Compressed(uint32(len(lz4Body)), compressLZ4(t, lz4Body)))

	for _, data := range [][]byte{lzxDoc, lz4Doc} {
		asset, err := DecodeObject(data, StringReader, WithLogger(log))
		if err != nil {
			t.Fatal(err)
		}
		if asset.Primary == nil || *asset.Primary != "packed" {
			t.Fatalf("primary: %v", asset.Primary)
		}
	}
}

func TestInspect(t *testing.T) {
	readers := []xnbtest.Reader{reader(StringReader), {Name: "Game.Map", Version: 2}}
	body := xnbtest.Body(readers, 4, xnbtest.Varint(2), []byte{0xde, 0xad})
	data := xnbtest.File('x', HeaderFlagHiDef, body)
	log, _ := testLogger()

	info, err := Inspect(data, WithLogger(log))
	if err != nil {
		t.Fatal(err)
	}
	if info.Header.Platform != PlatformXbox360 || !info.Header.HiDef() {
		t.Fatalf("header: %+v", info.Header)
	}
	if info.BodySize != len(body) || info.SharedResourceCount != 4 {
		t.Fatalf("info: %+v", info)
	}
	if len(info.TypeReaders) != 2 || !info.TypeReaders[0].Resolved || info.TypeReaders[1].Resolved {
		t.Fatalf("type readers: %+v", info.TypeReaders)
	}
}

func TestDecodeObject_NullPrimary(t *testing.T) {
	data := xnbtest.File('w', 0, xnbtest.Body([]xnbtest.Reader{reader(StringReader)}, 0, xnbtest.Varint(0)))
	log, _ := testLogger()
	asset, err := DecodeObject(data, StringReader, WithLogger(log))
	if err != nil {
		t.Fatal(err)
	}
	if asset.Primary != nil {
		t.Fatalf("primary: %q", *asset.Primary)
	}
}

func TestDecompress(t *testing.T) {
	body := xnbtest.Body([]xnbtest.Reader{reader(StringReader)}, 0, xnbtest.Varint(1), xnbtest.String("packed"))
	compressed := xnbtest.File('w', HeaderFlagCompressedLZX|HeaderFlagHiDef,
		xnbtest.Compressed(uint32(len(body)), xnbtest.Frame(len(body), xnbtest.LZXUncompressed(body))))
	log, hook := testLogger()

	out, err := Decompress(compressed, WithLogger(log))
	if err != nil {
		t.Fatal(err)
	}
	if want := xnbtest.File('w', HeaderFlagHiDef, body); !bytes.Equal(out, want) {
		t.Fatalf("got %x, want %x", out, want)
	}
	if _, err := DecodeObject(out, StringReader, WithLogger(log), WithStrictSize(true)); err != nil {
		t.Fatal(err)
	}

	plain := xnbtest.File('w', 0, body)
	out, err = Decompress(plain, WithLogger(log))
	if err != nil || &out[0] != &plain[0] {
		t.Fatalf("uncompressed input not returned as is: %v", err)
	}
	for _, e := range hook.AllEntries() {
		if e.Level <= logrus.WarnLevel {
			t.Fatalf("unexpected diagnostic %q", e.Message)
		}
	}
}
