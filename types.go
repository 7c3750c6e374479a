package xnb

import "fmt"

// Magic is the 3-byte XNB file signature.
var Magic = [3]byte{'X', 'N', 'B'}

const (
	headerSize = 13

	defaultFrameSize           = 0x8000
	maxDecompressedSizeHardCap = 1 << 30
)

const (
	HeaderFlagHiDef         byte = 0x01
	HeaderFlagCompressedLZ4 byte = 0x40
	HeaderFlagCompressedLZX byte = 0x80

	knownHeaderFlags = HeaderFlagHiDef | HeaderFlagCompressedLZ4 | HeaderFlagCompressedLZX
)

// Platform is the target platform code stored in the header.
type Platform byte

const (
	PlatformWindows      Platform = 'w'
	PlatformWindowsPhone Platform = 'm'
	PlatformXbox360      Platform = 'x'
	PlatformDesktopGL    Platform = 'd'
	PlatformAndroid      Platform = 'a'
	PlatformIOS          Platform = 'i'
	PlatformMacOSX       Platform = 'X'
	PlatformWindowsStore Platform = 'W'
)

var platformNames = map[Platform]string{
	PlatformWindows:      "windows",
	PlatformWindowsPhone: "windows-phone",
	PlatformXbox360:      "xbox360",
	PlatformDesktopGL:    "desktopgl",
	PlatformAndroid:      "android",
	PlatformIOS:          "ios",
	PlatformMacOSX:       "macosx",
	PlatformWindowsStore: "windows-store",
}

func (p Platform) Known() bool {
	_, ok := platformNames[p]
	return ok
}

func (p Platform) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p Platform) String() string {
	if name, ok := platformNames[p]; ok {
		return name
	}
	return fmt.Sprintf("unknown(0x%02x)", byte(p))
}

// Header is the fixed-size document header. DeclaredSize should match the
// size of the whole file, including the header.
type Header struct {
	Platform     Platform `json:"platform"`
	Flags        byte     `json:"flags"`
	DeclaredSize uint32   `json:"declared_size"`
}

func (h Header) HiDef() bool { return h.Flags&HeaderFlagHiDef != 0 }

func (h Header) CompressedLZX() bool { return h.Flags&HeaderFlagCompressedLZX != 0 }

func (h Header) CompressedLZ4() bool { return h.Flags&HeaderFlagCompressedLZ4 != 0 }

func (h Header) Compressed() bool { return h.CompressedLZX() || h.CompressedLZ4() }

func (h Header) unhandledFlags() byte { return h.Flags &^ knownHeaderFlags }

// TypeIdentity is the canonical key by which a content type reader is recognized.
type TypeIdentity struct {
	Name    string `json:"name"`
	Version int32  `json:"version"`
}

func (id TypeIdentity) String() string {
	return fmt.Sprintf("%q (version %d)", id.Name, id.Version)
}

// Object is a type-erased decoded value together with the identity of the
// reader that produced it.
type Object struct {
	Identity TypeIdentity
	Value    any
}

// As recovers the concrete value stored in o. It reports false when o is nil
// or holds a value of another type.
func As[T any](o *Object) (T, bool) {
	var zero T
	if o == nil {
		return zero, false
	}
	v, ok := o.Value.(T)
	if !ok {
		return zero, false
	}
	return v, true
}
