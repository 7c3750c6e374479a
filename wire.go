package xnb

import (
	"encoding/binary"
	"fmt"
)

type fixedHeader struct {
	Magic        [3]byte
	Platform     byte
	Reserved     [4]byte
	Flags        byte
	DeclaredSize uint32
}

func readFixedHeader(c *Cursor) (fixedHeader, error) {
	b, err := c.ReadBytes(headerSize)
	if err != nil {
		return fixedHeader{}, err
	}
	var h fixedHeader
	copy(h.Magic[:], b[0:3])
	h.Platform = b[3]
	copy(h.Reserved[:], b[4:8])
	h.Flags = b[8]
	h.DeclaredSize = binary.LittleEndian.Uint32(b[9:13])
	return h, nil
}

func (h fixedHeader) appendTo(dst []byte) []byte {
	dst = append(dst, h.Magic[:]...)
	dst = append(dst, h.Platform)
	dst = append(dst, h.Reserved[:]...)
	dst = append(dst, h.Flags)
	return binary.LittleEndian.AppendUint32(dst, h.DeclaredSize)
}

func (h fixedHeader) header() Header {
	return Header{Platform: Platform(h.Platform), Flags: h.Flags, DeclaredSize: h.DeclaredSize}
}

// readFrameHeader reads one frame prefix of an LZX body. A leading 0xFF byte
// escapes an explicit frame size; the byte after it is the high byte of that size.
func readFrameHeader(c *Cursor) (blockSize, frameSize int, err error) {
	hi, err := c.ReadByte()
	if err != nil {
		return 0, 0, err
	}
	lo, err := c.ReadByte()
	if err != nil {
		return 0, 0, err
	}
	frameSize = defaultFrameSize
	if hi == 0xFF {
		b, err := c.ReadByte()
		if err != nil {
			return 0, 0, err
		}
		frameSize = int(lo)<<8 | int(b)
		bs, err := c.ReadBytes(2)
		if err != nil {
			return 0, 0, err
		}
		return int(binary.BigEndian.Uint16(bs)), frameSize, nil
	}
	return int(hi)<<8 | int(lo), frameSize, nil
}

func (h fixedHeader) String() string {
	return fmt.Sprintf("%s platform=%q flags=0x%02x size=%d", h.Magic[:], h.Platform, h.Flags, h.DeclaredSize)
}
