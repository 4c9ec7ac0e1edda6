package render

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// WithAlpha returns img at the given opacity, clamped to [0, 1]. When there
// is nothing to draw the result is a transparent image of the same size.
func WithAlpha(img image.Image, alpha float64) *image.NRGBA {
	if img == nil {
		return &image.NRGBA{}
	}
	b := img.Bounds()
	blank := imaging.New(b.Dx(), b.Dy(), color.Transparent)
	if b.Empty() || alpha <= 0 {
		return blank
	}
	return imaging.Overlay(blank, img, image.Point{}, alpha)
}

// Solid returns a size.X x size.Y image filled with c. A size with a
// non-positive side yields a single pixel.
func Solid(c color.Color, size image.Point) *image.NRGBA {
	if size.X <= 0 || size.Y <= 0 {
		size = image.Pt(1, 1)
	}
	if c == nil {
		c = color.Transparent
	}
	return imaging.New(size.X, size.Y, c)
}

// Resize scales img to exactly size using Catmull-Rom resampling.
func Resize(img image.Image, size image.Point) *image.NRGBA {
	if img == nil || size.X <= 0 || size.Y <= 0 {
		return &image.NRGBA{}
	}
	dst := image.NewNRGBA(image.Rect(0, 0, size.X, size.Y))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
