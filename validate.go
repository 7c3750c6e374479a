package xnb

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// validateHeader rejects structurally invalid headers and reports metadata
// anomalies on the log without failing.
func validateHeader(h fixedHeader, inputLen int, cfg readConfig) error {
	if h.Magic != Magic {
		return fmt.Errorf("%w: got %q", ErrInvalidMagic, h.Magic[:])
	}
	hdr := h.header()
	if !hdr.Platform.Known() {
		cfg.log.WithField("platform", hdr.Platform.String()).Warn("xnb: unhandled platform")
	}
	if extra := hdr.unhandledFlags(); extra != 0 {
		cfg.log.WithFields(logrus.Fields{"flags": fmt.Sprintf("0x%02x", hdr.Flags), "unhandled": fmt.Sprintf("0x%02x", extra)}).
			Warn("xnb: unhandled header flags")
	}
	if hdr.CompressedLZX() && hdr.CompressedLZ4() {
		cfg.log.WithField("flags", fmt.Sprintf("0x%02x", hdr.Flags)).Warn("xnb: both LZX and LZ4 flags set, using LZX")
	}
	if uint64(h.DeclaredSize) != uint64(inputLen) {
		if cfg.strictSize {
			return fmt.Errorf("%w: declared %d, got %d", ErrSizeMismatch, h.DeclaredSize, inputLen)
		}
		cfg.log.WithFields(logrus.Fields{"declared": h.DeclaredSize, "actual": inputLen}).Warn("xnb: declared size does not match input length")
	}
	return nil
}
