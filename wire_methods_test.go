package xnb

import (
	"errors"
	"testing"

	"github.com/logicossoftware/go-xnb/internal/xnbtest"
)

func TestHeaderMethods(t *testing.T) {
	h := Header{Platform: PlatformWindows, Flags: HeaderFlagHiDef | HeaderFlagCompressedLZX}
	if !h.HiDef() || !h.CompressedLZX() || h.CompressedLZ4() || !h.Compressed() {
		t.Fatalf("flag accessors: %+v", h)
	}
	if h.unhandledFlags() != 0 {
		t.Fatalf("unhandled: 0x%02x", h.unhandledFlags())
	}
	h.Flags = 0x06 | HeaderFlagCompressedLZ4
	if h.unhandledFlags() != 0x06 || !h.Compressed() {
		t.Fatalf("unhandled: 0x%02x", h.unhandledFlags())
	}
}

func TestPlatformString(t *testing.T) {
	if PlatformXbox360.String() != "xbox360" || !PlatformXbox360.Known() {
		t.Fatal(PlatformXbox360.String())
	}
	if Platform('z').Known() || Platform('z').String() != "unknown(0x7a)" {
		t.Fatal(Platform('z').String())
	}
}

func TestReadFixedHeader(t *testing.T) {
	b := xnbtest.Header('x', HeaderFlagHiDef, 0x01020304)
	b[4] = 0xAA // reserved bytes are skipped
	h := headerOf(t, b)
	if h.Magic != Magic || h.Platform != 'x' || h.Flags != HeaderFlagHiDef || h.DeclaredSize != 0x01020304 {
		t.Fatalf("header: %+v", h)
	}
	if hdr := h.header(); hdr.Platform != PlatformXbox360 || !hdr.HiDef() {
		t.Fatalf("header: %+v", hdr)
	}

	_, err := readFixedHeader(NewCursor(b[:12]))
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestReadFrameHeader(t *testing.T) {
	cases := []struct {
		in         []byte
		block, frm int
	}{
		{[]byte{0x12, 0x34}, 0x1234, 0x8000},
		{[]byte{0xFF, 0x01, 0x00, 0x00, 0x20}, 0x20, 0x100},
		{[]byte{0x00, 0x00}, 0, 0x8000},
		{[]byte{0xFF, 0x00, 0x00, 0x00, 0x05}, 5, 0},
	}
	for _, tc := range cases {
		c := NewCursor(tc.in)
		block, frame, err := readFrameHeader(c)
		if err != nil {
			t.Fatal(err)
		}
		if block != tc.block || frame != tc.frm || c.Remaining() != 0 {
			t.Fatalf("%x: got block=%d frame=%d remaining=%d", tc.in, block, frame, c.Remaining())
		}
	}

	for _, in := range [][]byte{{0x12}, {0xFF, 0x01}, {0xFF, 0x01, 0x00, 0x00}} {
		if _, _, err := readFrameHeader(NewCursor(in)); !errors.Is(err, ErrTruncated) {
			t.Fatalf("%x: expected ErrTruncated, got %v", in, err)
		}
	}
}

func TestTypeIdentityString(t *testing.T) {
	id := TypeIdentity{Name: "R", Version: 2}
	if id.String() != `"R" (version 2)` {
		t.Fatal(id.String())
	}
}
