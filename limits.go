package xnb

type Limits struct {
	MaxInputSize        uint64
	MaxDecompressedSize uint32 // capped at 1 GiB regardless of the configured value
	MaxTypeReaders      int
	MaxSharedResources  int
}

func defaultLimits() Limits {
	return Limits{
		MaxInputSize:        1<<30 + 1<<10,
		MaxDecompressedSize: maxDecompressedSizeHardCap,
		MaxTypeReaders:      1024,
		MaxSharedResources:  1 << 20,
	}
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxInputSize == 0 {
		l.MaxInputSize = d.MaxInputSize
	}
	if l.MaxDecompressedSize == 0 || l.MaxDecompressedSize > maxDecompressedSizeHardCap {
		l.MaxDecompressedSize = d.MaxDecompressedSize
	}
	if l.MaxTypeReaders == 0 {
		l.MaxTypeReaders = d.MaxTypeReaders
	}
	if l.MaxSharedResources == 0 {
		l.MaxSharedResources = d.MaxSharedResources
	}
	return l
}
