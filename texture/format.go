package texture

import "fmt"

// SurfaceFormat is the pixel format of a texture's data levels.
type SurfaceFormat int32

const (
	FormatUnknown                 SurfaceFormat = -1
	FormatColor                   SurfaceFormat = 1
	FormatBgr32                   SurfaceFormat = 2
	FormatBgra1010102             SurfaceFormat = 3
	FormatRgba32                  SurfaceFormat = 4
	FormatRgb32                   SurfaceFormat = 5
	FormatRgba1010102             SurfaceFormat = 6
	FormatRg32                    SurfaceFormat = 7
	FormatRgba64                  SurfaceFormat = 8
	FormatBgr565                  SurfaceFormat = 9
	FormatBgra5551                SurfaceFormat = 10
	FormatBgr555                  SurfaceFormat = 11
	FormatBgra4444                SurfaceFormat = 12
	FormatBgr444                  SurfaceFormat = 13
	FormatBgra2338                SurfaceFormat = 14
	FormatAlpha8                  SurfaceFormat = 15
	FormatBgr233                  SurfaceFormat = 16
	FormatBgr24                   SurfaceFormat = 17
	FormatNormalizedByte2         SurfaceFormat = 18
	FormatNormalizedByte4         SurfaceFormat = 19
	FormatNormalizedShort2        SurfaceFormat = 20
	FormatNormalizedShort4        SurfaceFormat = 21
	FormatSingle                  SurfaceFormat = 22
	FormatVector2                 SurfaceFormat = 23
	FormatVector4                 SurfaceFormat = 24
	FormatHalfSingle              SurfaceFormat = 25
	FormatHalfVector2             SurfaceFormat = 26
	FormatHalfVector4             SurfaceFormat = 27
	FormatDxt1                    SurfaceFormat = 28
	FormatDxt2                    SurfaceFormat = 29
	FormatDxt3                    SurfaceFormat = 30
	FormatDxt4                    SurfaceFormat = 31
	FormatDxt5                    SurfaceFormat = 32
	FormatLuminance8              SurfaceFormat = 33
	FormatLuminance16             SurfaceFormat = 34
	FormatLuminanceAlpha8         SurfaceFormat = 35
	FormatLuminanceAlpha16        SurfaceFormat = 36
	FormatPalette8                SurfaceFormat = 37
	FormatPaletteAlpha16          SurfaceFormat = 38
	FormatNormalizedLuminance16   SurfaceFormat = 39
	FormatNormalizedLuminance32   SurfaceFormat = 40
	FormatNormalizedAlpha1010102  SurfaceFormat = 41
	FormatNormalizedByte2Computed SurfaceFormat = 42
	FormatVideoYuYv               SurfaceFormat = 43
	FormatVideoUyVy               SurfaceFormat = 44
	FormatVideoGrGb               SurfaceFormat = 45
	FormatVideoRgBg               SurfaceFormat = 46
	FormatMulti2Bgra32            SurfaceFormat = 47
	FormatDepth24Stencil8         SurfaceFormat = 48
	FormatDepth24Stencil8Single   SurfaceFormat = 49
	FormatDepth24Stencil4         SurfaceFormat = 50
	FormatDepth24                 SurfaceFormat = 51
	FormatDepth32                 SurfaceFormat = 52
	FormatDepth16                 SurfaceFormat = 54
	FormatDepth15Stencil1         SurfaceFormat = 56
)

var formatNames = map[SurfaceFormat]string{
	FormatUnknown:                 "Unknown",
	FormatColor:                   "Color",
	FormatBgr32:                   "Bgr32",
	FormatBgra1010102:             "Bgra1010102",
	FormatRgba32:                  "Rgba32",
	FormatRgb32:                   "Rgb32",
	FormatRgba1010102:             "Rgba1010102",
	FormatRg32:                    "Rg32",
	FormatRgba64:                  "Rgba64",
	FormatBgr565:                  "Bgr565",
	FormatBgra5551:                "Bgra5551",
	FormatBgr555:                  "Bgr555",
	FormatBgra4444:                "Bgra4444",
	FormatBgr444:                  "Bgr444",
	FormatBgra2338:                "Bgra2338",
	FormatAlpha8:                  "Alpha8",
	FormatBgr233:                  "Bgr233",
	FormatBgr24:                   "Bgr24",
	FormatNormalizedByte2:         "NormalizedByte2",
	FormatNormalizedByte4:         "NormalizedByte4",
	FormatNormalizedShort2:        "NormalizedShort2",
	FormatNormalizedShort4:        "NormalizedShort4",
	FormatSingle:                  "Single",
	FormatVector2:                 "Vector2",
	FormatVector4:                 "Vector4",
	FormatHalfSingle:              "HalfSingle",
	FormatHalfVector2:             "HalfVector2",
	FormatHalfVector4:             "HalfVector4",
	FormatDxt1:                    "Dxt1",
	FormatDxt2:                    "Dxt2",
	FormatDxt3:                    "Dxt3",
	FormatDxt4:                    "Dxt4",
	FormatDxt5:                    "Dxt5",
	FormatLuminance8:              "Luminance8",
	FormatLuminance16:             "Luminance16",
	FormatLuminanceAlpha8:         "LuminanceAlpha8",
	FormatLuminanceAlpha16:        "LuminanceAlpha16",
	FormatPalette8:                "Palette8",
	FormatPaletteAlpha16:          "PaletteAlpha16",
	FormatNormalizedLuminance16:   "NormalizedLuminance16",
	FormatNormalizedLuminance32:   "NormalizedLuminance32",
	FormatNormalizedAlpha1010102:  "NormalizedAlpha1010102",
	FormatNormalizedByte2Computed: "NormalizedByte2Computed",
	FormatVideoYuYv:               "VideoYuYv",
	FormatVideoUyVy:               "VideoUyVy",
	FormatVideoGrGb:               "VideoGrGb",
	FormatVideoRgBg:               "VideoRgBg",
	FormatMulti2Bgra32:            "Multi2Bgra32",
	FormatDepth24Stencil8:         "Depth24Stencil8",
	FormatDepth24Stencil8Single:   "Depth24Stencil8Single",
	FormatDepth24Stencil4:         "Depth24Stencil4",
	FormatDepth24:                 "Depth24",
	FormatDepth32:                 "Depth32",
	FormatDepth16:                 "Depth16",
	FormatDepth15Stencil1:         "Depth15Stencil1",
}

func (f SurfaceFormat) Known() bool {
	_, ok := formatNames[f]
	return ok
}

func (f SurfaceFormat) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("SurfaceFormat(%d)", int32(f))
}

func (f SurfaceFormat) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}
