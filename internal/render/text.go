package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ErrNoImage is returned when a drawing operation produces no image.
var ErrNoImage = errors.New("no image produced")

// DefaultFace returns the Go Regular face at size points and 72 DPI, so
// one point is one pixel.
func DefaultFace(size float64) (font.Face, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("creating font face: %w", err)
	}
	return face, nil
}

// DrawTextOverlay returns a copy of img with text centered on it.
func DrawTextOverlay(img image.Image, text string, face font.Face, c color.Color) (*image.NRGBA, error) {
	if img == nil || img.Bounds().Empty() || face == nil || c == nil {
		return nil, ErrNoImage
	}

	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
	}
	width := d.MeasureString(text)
	m := face.Metrics()
	height := m.Ascent + m.Descent

	d.Dot = fixed.Point26_6{
		X: (fixed.I(b.Dx()) - width) / 2,
		Y: (fixed.I(b.Dy())-height)/2 + m.Ascent,
	}
	d.DrawString(text)
	return dst, nil
}
