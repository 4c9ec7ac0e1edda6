package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"

	"github.com/zombor/fieldkit/internal/imagefile"
	"github.com/zombor/fieldkit/internal/imagemeta"
	"github.com/zombor/fieldkit/internal/nullable"
	"github.com/zombor/fieldkit/internal/render"
)

var errOutputMismatch = errors.New("stored output differs from the encoded image")

// report is printed for every input image.
type report struct {
	Path       string               `json:"path"`
	Format     imagefile.Format     `json:"format"`
	Properties imagemeta.Properties `json:"properties,omitempty"`
	Summary    imagemeta.Summary    `json:"summary"`
	Empty      bool                 `json:"empty"`
	Output     string               `json:"output,omitempty"`
}

// pipeline inspects images and, when store is set, writes a processed PNG
// copy carrying the source metadata.
type pipeline struct {
	reader    *imagemeta.Reader
	store     imagefile.Storage
	face      font.Face
	stamp     string
	size      image.Point
	alpha     float64
	writeOpts []imagemeta.WriteOption
	log       *slog.Logger
}

func (p *pipeline) run(path string) (report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return report{}, fmt.Errorf("reading image: %w", err)
	}

	r := report{Path: path, Format: imagefile.DetectFormat(data)}
	r.Properties, _ = p.reader.PropertyDictionary(path)
	r.Summary = p.reader.Summary(path)
	r.Empty = nullable.IsEmpty(r.Summary)
	if p.store == nil {
		return r, nil
	}

	img, err := imagefile.Decode(data)
	if err != nil {
		return report{}, err
	}
	img, err = p.transform(img)
	if err != nil {
		return report{}, err
	}
	encoded, err := imagemeta.EncodePNG(img, r.Properties, p.writeOpts...)
	if err != nil {
		return report{}, fmt.Errorf("encoding output: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".png"
	r.Output, err = p.store.Save(name, encoded)
	if err != nil {
		return report{}, err
	}
	saved, err := p.store.Get(name)
	if err != nil {
		return report{}, err
	}
	if !bytes.Equal(saved, encoded) {
		return report{}, fmt.Errorf("%w: %s", errOutputMismatch, r.Output)
	}
	p.log.Info("Wrote image", "input", path, "output", r.Output)
	return r, nil
}

// transform resizes, fades and stamps img in that order.
func (p *pipeline) transform(img image.Image) (image.Image, error) {
	if p.size != (image.Point{}) {
		img = render.Resize(img, p.size)
	}
	if p.alpha < 1 {
		img = render.WithAlpha(img, p.alpha)
	}
	if p.stamp != "" {
		stamped, err := render.DrawTextOverlay(img, p.stamp, p.face, color.White)
		if err != nil {
			return nil, fmt.Errorf("stamping image: %w", err)
		}
		img = stamped
	}
	return img, nil
}

// parseSize reads a WxH dimension.
func parseSize(s string) (image.Point, error) {
	var w, h int
	if _, err := fmt.Sscanf(s, "%dx%d", &w, &h); err != nil {
		return image.Point{}, fmt.Errorf("parsing size %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return image.Point{}, errors.New("size must be positive")
	}
	return image.Pt(w, h), nil
}
