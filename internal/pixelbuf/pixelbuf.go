package pixelbuf

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// rowAlignment is the byte boundary each row is padded to.
const rowAlignment = 64

const bytesPerPixel = 4

var (
	// ErrEmptyImage is returned when an image has no pixels to copy.
	ErrEmptyImage = errors.New("pixelbuf: empty image")

	// ErrInvalidBuffer is returned when a buffer's geometry does not match its data.
	ErrInvalidBuffer = errors.New("pixelbuf: invalid buffer")
)

// Buffer is a 32-bit ARGB raster stored row-major, top row first.
// Each pixel is four bytes in A, R, G, B order and each row starts
// Stride bytes after the previous one.
type Buffer struct {
	Width  int
	Height int
	Stride int
	Pix    []byte
}

// NewBuffer allocates a zeroed buffer for a width x height raster.
func NewBuffer(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("allocating %dx%d buffer: %w", width, height, ErrEmptyImage)
	}
	stride := alignStride(width * bytesPerPixel)
	return &Buffer{
		Width:  width,
		Height: height,
		Stride: stride,
		Pix:    make([]byte, stride*height),
	}, nil
}

func alignStride(n int) int {
	return (n + rowAlignment - 1) / rowAlignment * rowAlignment
}

// FromImage renders img into a new Buffer. The image is composited over
// opaque black and the alpha byte of every pixel is set to 0xFF, so the
// first byte of each pixel carries no information.
func FromImage(img image.Image) (*Buffer, error) {
	if img == nil {
		return nil, ErrEmptyImage
	}
	bounds := img.Bounds()
	buf, err := NewBuffer(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	canvas := image.NewRGBA(image.Rect(0, 0, buf.Width, buf.Height))
	draw.Draw(canvas, canvas.Bounds(), image.Black, image.Point{}, draw.Src)
	draw.Draw(canvas, canvas.Bounds(), img, bounds.Min, draw.Over)

	for y := 0; y < buf.Height; y++ {
		src := canvas.Pix[y*canvas.Stride : y*canvas.Stride+buf.Width*bytesPerPixel]
		dst := buf.Pix[y*buf.Stride : y*buf.Stride+buf.Width*bytesPerPixel]
		for x := 0; x < len(src); x += bytesPerPixel {
			dst[x] = 0xFF
			dst[x+1] = src[x]
			dst[x+2] = src[x+1]
			dst[x+3] = src[x+2]
		}
	}
	return buf, nil
}

// ToImage converts buf back into an image. Stored alpha is treated as
// straight (non-premultiplied) alpha.
func ToImage(buf *Buffer) (*image.NRGBA, error) {
	if err := buf.validate(); err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, buf.Width, buf.Height))
	for y := 0; y < buf.Height; y++ {
		src := buf.Pix[y*buf.Stride : y*buf.Stride+buf.Width*bytesPerPixel]
		dst := img.Pix[y*img.Stride : y*img.Stride+buf.Width*bytesPerPixel]
		for x := 0; x < len(src); x += bytesPerPixel {
			dst[x] = src[x+1]
			dst[x+1] = src[x+2]
			dst[x+2] = src[x+3]
			dst[x+3] = src[x]
		}
	}
	return img, nil
}

func (b *Buffer) validate() error {
	if b == nil {
		return fmt.Errorf("nil buffer: %w", ErrInvalidBuffer)
	}
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("dimensions %dx%d: %w", b.Width, b.Height, ErrInvalidBuffer)
	}
	if b.Stride < b.Width*bytesPerPixel {
		return fmt.Errorf("stride %d shorter than row of %d pixels: %w", b.Stride, b.Width, ErrInvalidBuffer)
	}
	if need := b.Stride*(b.Height-1) + b.Width*bytesPerPixel; len(b.Pix) < need {
		return fmt.Errorf("have %d bytes, need %d: %w", len(b.Pix), need, ErrInvalidBuffer)
	}
	return nil
}
