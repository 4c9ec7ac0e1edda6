package imagemeta

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"seehuhn.de/go/xmp"
	"seehuhn.de/go/xmp/jvxml"

	"github.com/zombor/fieldkit/internal/imagefile"
)

// ErrNoDestination is returned when the output file cannot be created.
var ErrNoDestination = errors.New("imagemeta: can't create PNG destination")

type writeConfig struct {
	partitioned bool
	log         *slog.Logger
}

// WriteOption configures EncodePNG and WritePNG.
type WriteOption func(*writeConfig)

// WithPartitionedNamespaces writes each property once, under the namespace
// it belongs to, instead of repeating the whole mapping under GPS, TIFF,
// EXIF and IPTC.
func WithPartitionedNamespaces() WriteOption {
	return func(c *writeConfig) {
		c.partitioned = true
	}
}

// WithLogger sets the logger for skipped properties.
func WithLogger(logger *slog.Logger) WriteOption {
	return func(c *writeConfig) {
		c.log = logger
	}
}

func newWriteConfig(opts []WriteOption) writeConfig {
	cfg := writeConfig{log: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// EncodePNG encodes img as PNG with props embedded as an XMP packet.
func EncodePNG(img image.Image, props Properties, opts ...WriteOption) ([]byte, error) {
	if img == nil {
		return nil, errors.New("no image to encode")
	}
	cfg := newWriteConfig(opts)

	stream, err := imagefile.EncodePNG(img)
	if err != nil {
		return nil, err
	}
	packet, err := buildXMP(props, cfg)
	if err != nil {
		return nil, err
	}
	out, err := insertAfterIHDR(stream, "iTXt", itxtPayload(xmpKeyword, packet))
	if err != nil {
		return nil, fmt.Errorf("embedding metadata: %w", err)
	}
	return out, nil
}

// WritePNG writes img and props to a PNG file at path.
func WritePNG(img image.Image, path string, props Properties, opts ...WriteOption) error {
	data, err := EncodePNG(img, props, opts...)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %w", ErrNoDestination, err)
	}
	return nil
}

// WritePNGFile decodes the image stored at path and rewrites it there as
// PNG carrying props.
func WritePNGFile(path string, props Properties, opts ...WriteOption) error {
	img, err := imagefile.Open(path)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return WritePNG(img, path, props, opts...)
}

// buildXMP serializes props as a single rdf:Description.
func buildXMP(props Properties, cfg writeConfig) ([]byte, error) {
	p := xmp.NewPacket()
	p.RegisterPrefix(nsExif, "exif")
	p.RegisterPrefix(nsTIFF, "tiff")
	p.RegisterPrefix(nsIPTC, "Iptc4xmpCore")

	keys := lo.Keys(props)
	slices.Sort(keys)
	for _, key := range keys {
		if !isPropertyName(key) {
			cfg.log.Warn("skipping property with invalid name", "key", key)
			continue
		}
		for _, name := range propertyNames(key, cfg.partitioned) {
			p.SetValue(name.Space, name.Local, propertyValue(name, key, props))
		}
	}

	var buf bytes.Buffer
	if err := p.Write(&buf, nil); err != nil {
		return nil, fmt.Errorf("writing XMP: %w", err)
	}
	return buf.Bytes(), nil
}

// isPropertyName reports whether key can be the local part of an XMP
// property name.
func isPropertyName(key string) bool {
	return jvxml.IsName([]byte(key)) && !strings.Contains(key, ":")
}

// propertyNames returns the qualified names key is written under.
func propertyNames(key string, partitioned bool) []xml.Name {
	gps := xml.Name{Space: nsExif, Local: "GPS" + key}
	tiff := xml.Name{Space: nsTIFF, Local: key}
	exif := xml.Name{Space: nsExif, Local: key}
	iptc := xml.Name{Space: nsIPTC, Local: key}
	if !partitioned {
		return []xml.Name{gps, tiff, exif, iptc}
	}
	switch {
	case tiffFields[key]:
		return []xml.Name{tiff}
	case gpsFields[key]:
		return []xml.Name{gps}
	case iptcFields[key]:
		return []xml.Name{iptc}
	}
	return []xml.Name{exif}
}

// propertyValue converts props[key] for the property name. Coordinates
// stored under their EXIF GPS name use the "DDD,MM.mmk" form.
func propertyValue(name xml.Name, key string, props Properties) xmp.Value {
	value := props[key]
	if refKey, ok := coordinateFields[key]; ok && name.Space == nsExif && name.Local == "GPS"+key {
		if deg, ok := value.(float64); ok {
			return xmp.NewText(formatXMPCoordinate(deg, coordinateRef(key, deg, props[refKey])))
		}
	}

	items, isList := listItems(value)
	if !isList {
		return xmp.NewText(formatValue(value))
	}
	var seq xmp.OrderedArray[xmp.Text]
	for _, item := range items {
		seq.Append(xmp.NewText(formatValue(item)))
	}
	return seq
}

// coordinateRef returns the hemisphere letter for a coordinate, preferring
// the stored reference and falling back to the sign of deg.
func coordinateRef(key string, deg float64, stored any) string {
	if ref, ok := stored.(string); ok {
		ref = strings.ToUpper(strings.TrimSpace(ref))
		if len(ref) == 1 && strings.Contains("NSEW", ref) {
			return ref
		}
	}
	if strings.HasSuffix(key, "Latitude") {
		if deg < 0 {
			return "S"
		}
		return "N"
	}
	if deg < 0 {
		return "W"
	}
	return "E"
}

func listItems(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		return lo.ToAnySlice(v), true
	case []float64:
		return lo.ToAnySlice(v), true
	case []int:
		return lo.ToAnySlice(v), true
	}
	return nil, false
}

func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	}
	return fmt.Sprint(value)
}
