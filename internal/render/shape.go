package render

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/vector"
)

// kappa places cubic Bézier control points so four arcs approximate a circle.
const kappa = 0.5522847498

// RoundCircle returns a diameter x diameter image holding a filled circle
// on a transparent background.
func RoundCircle(diameter int, c color.Color) *image.NRGBA {
	if diameter <= 0 {
		return &image.NRGBA{}
	}
	dst := image.NewNRGBA(image.Rect(0, 0, diameter, diameter))
	if c == nil {
		return dst
	}

	r := float32(diameter) / 2
	k := kappa * r
	z := vector.NewRasterizer(diameter, diameter)
	z.MoveTo(2*r, r)
	z.CubeTo(2*r, r+k, r+k, 2*r, r, 2*r)
	z.CubeTo(r-k, 2*r, 0, r+k, 0, r)
	z.CubeTo(0, r-k, r-k, 0, r, 0)
	z.CubeTo(r+k, 0, 2*r, r-k, 2*r, r)
	z.ClosePath()
	z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
	return dst
}

// RoundCircleWithText draws text in white over a RoundCircle.
func RoundCircleWithText(diameter int, c color.Color, text string, face font.Face) (*image.NRGBA, error) {
	return DrawTextOverlay(RoundCircle(diameter, c), text, face, color.White)
}
