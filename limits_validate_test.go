package xnb

import (
	"errors"
	"math"
	"testing"

	"github.com/logicossoftware/go-xnb/internal/xnbtest"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestLimitsWithDefaults(t *testing.T) {
	l := (Limits{}).withDefaults()
	if l != defaultLimits() {
		t.Fatalf("zero limits: got %+v, want %+v", l, defaultLimits())
	}

	l = (Limits{MaxDecompressedSize: math.MaxUint32, MaxTypeReaders: 3}).withDefaults()
	if l.MaxDecompressedSize != maxDecompressedSizeHardCap {
		t.Fatalf("decompressed size not capped: %d", l.MaxDecompressedSize)
	}
	if l.MaxTypeReaders != 3 {
		t.Fatalf("explicit limit overwritten: %d", l.MaxTypeReaders)
	}
	if l.MaxSharedResources != defaultLimits().MaxSharedResources {
		t.Fatalf("unset limit not defaulted: %d", l.MaxSharedResources)
	}
}

func newTestConfig(opts ...ReadOption) (readConfig, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return newReadConfig(append([]ReadOption{WithLogger(log)}, opts...)), hook
}

func headerOf(t *testing.T, b []byte) fixedHeader {
	t.Helper()
	h, err := readFixedHeader(NewCursor(b))
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func TestValidateHeader_InvalidMagic(t *testing.T) {
	b := xnbtest.Header('w', 0, headerSize)
	b[0] = 'Y'
	cfg, _ := newTestConfig()
	if err := validateHeader(headerOf(t, b), headerSize, cfg); !errors.Is(err, ErrInvalidMagic) {
		t.Fatalf("expected ErrInvalidMagic, got %v", err)
	}
}

func TestValidateHeader_SoftAnomalies(t *testing.T) {
	cfg, hook := newTestConfig()
	h := headerOf(t, xnbtest.Header('?', 0x02|HeaderFlagCompressedLZX|HeaderFlagCompressedLZ4, 100))
	if err := validateHeader(h, 50, cfg); err != nil {
		t.Fatal(err)
	}
	var msgs []string
	for _, e := range hook.AllEntries() {
		if e.Level != logrus.WarnLevel {
			t.Fatalf("unexpected level %v for %q", e.Level, e.Message)
		}
		msgs = append(msgs, e.Message)
	}
	want := []string{
		"xnb: unhandled platform",
		"xnb: unhandled header flags",
		"xnb: both LZX and LZ4 flags set, using LZX",
		"xnb: declared size does not match input length",
	}
	if len(msgs) != len(want) {
		t.Fatalf("got %q, want %q", msgs, want)
	}
	for i := range want {
		if msgs[i] != want[i] {
			t.Fatalf("entry %d: got %q, want %q", i, msgs[i], want[i])
		}
	}
}

func TestValidateHeader_StrictSize(t *testing.T) {
	cfg, hook := newTestConfig(WithStrictSize(true))
	h := headerOf(t, xnbtest.Header('w', 0, 100))
	if err := validateHeader(h, 99, cfg); !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("expected ErrSizeMismatch, got %v", err)
	}
	if err := validateHeader(h, 100, cfg); err != nil {
		t.Fatal(err)
	}
	if len(hook.AllEntries()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", hook.AllEntries())
	}
}

func TestNewReadConfigDefaults(t *testing.T) {
	cfg := newReadConfig(nil)
	if cfg.log != logrus.StandardLogger() {
		t.Fatal("default logger is not the standard logger")
	}
	if cfg.registry != DefaultRegistry() {
		t.Fatal("default registry not used")
	}
	if cfg.limits != defaultLimits() {
		t.Fatalf("limits: %+v", cfg.limits)
	}
}
