// Package texture decodes XNA Texture2D content.
package texture

import (
	"errors"
	"fmt"
	"image"

	"github.com/logicossoftware/go-xnb"
)

var (
	ErrUnknownFormat     = errors.New("texture: unknown surface format")
	ErrUnsupportedFormat = errors.New("texture: surface format cannot be converted to an image")
)

// Texture2D is a two-dimensional texture with its mip levels, largest first.
type Texture2D struct {
	Format SurfaceFormat `json:"format"`
	Width  int32         `json:"width"`
	Height int32         `json:"height"`
	Levels [][]byte      `json:"-"`
}

// Reader decodes Texture2D values.
var Reader = xnb.NewTypeReader("Microsoft.Xna.Framework.Content.Texture2DReader", 0, Read)

// Read decodes a Texture2D value without a leading type id. The level data
// is copied out of the document buffer.
func Read(c *xnb.Cursor) (Texture2D, error) {
	var t Texture2D
	start := c.Offset()
	format, err := c.ReadInt32()
	if err != nil {
		return t, err
	}
	t.Format = SurfaceFormat(format)
	if !t.Format.Known() {
		return t, fmt.Errorf("%w: %d at offset %d", ErrUnknownFormat, format, start)
	}
	if t.Width, err = c.ReadInt32(); err != nil {
		return t, err
	}
	if t.Height, err = c.ReadInt32(); err != nil {
		return t, err
	}
	t.Levels, err = xnb.ReadList(c, readLevel)
	return t, err
}

func readLevel(c *xnb.Cursor) ([]byte, error) {
	n, err := c.ReadLength()
	if err != nil {
		return nil, err
	}
	b, err := c.ReadBytes(n)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), b...), nil
}

// Image converts the top mip level to an image. Only FormatColor, which
// stores 8-bit RGBA pixels, is supported.
func (t *Texture2D) Image() (*image.NRGBA, error) {
	if t.Format != FormatColor {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, t.Format)
	}
	if len(t.Levels) == 0 || t.Width <= 0 || t.Height <= 0 {
		return nil, fmt.Errorf("texture: empty %dx%d texture", t.Width, t.Height)
	}
	want := int(t.Width) * int(t.Height) * 4
	if len(t.Levels[0]) != want {
		return nil, fmt.Errorf("texture: level 0 holds %d bytes, %dx%d needs %d", len(t.Levels[0]), t.Width, t.Height, want)
	}
	img := image.NewNRGBA(image.Rect(0, 0, int(t.Width), int(t.Height)))
	copy(img.Pix, t.Levels[0])
	return img, nil
}
