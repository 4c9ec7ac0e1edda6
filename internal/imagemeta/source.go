package imagemeta

import (
	"bytes"
	"fmt"
	"os"

	jpegstructure "github.com/dsoprea/go-jpeg-image-structure/v2"
	pngstructure "github.com/dsoprea/go-png-image-structure/v2"
	"github.com/rwcarlsen/goexif/exif"

	"github.com/zombor/fieldkit/internal/imagefile"
)

var (
	exifHeader    = []byte("Exif\x00\x00")
	jpegXMPHeader = []byte("http://ns.adobe.com/xap/1.0/\x00")
)

// source is the metadata found in one image file. Nothing is cached
// between calls; every read opens the file again.
type source struct {
	path   string
	format imagefile.Format
	exif   *exif.Exif
	xmp    []byte
}

func openSource(path string) (*source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	format := imagefile.DetectFormat(data)
	if format == imagefile.FormatUnknown {
		return nil, fmt.Errorf("reading %s: %w", path, imagefile.ErrUnsupportedFormat)
	}

	src := &source{path: path, format: format}
	switch format {
	case imagefile.FormatJPEG:
		src.exif = decodeExif(data)
		src.xmp = jpegXMP(data)
	case imagefile.FormatTIFF:
		src.exif = decodeExif(data)
	case imagefile.FormatPNG:
		src.exif, src.xmp = pngMetadata(data)
	default:
		if i := bytes.Index(data, exifHeader); i >= 0 {
			src.exif = decodeExif(data[i:])
		}
	}
	if src.xmp == nil {
		src.xmp = scanXMP(data)
	}
	return src, nil
}

// tags parses the XMP packet. A file without one has no tags.
func (s *source) tags() ([]Tag, error) {
	if len(s.xmp) == 0 {
		return nil, nil
	}
	return ParseXMP(s.xmp)
}

// dictionaries merges binary EXIF with the XMP exif and tiff properties.
func (s *source) dictionaries(tags []Tag) dictionaries {
	d := exifDictionaries(s.exif)
	d.applyXMP(tags)
	return d
}

// jpegXMP returns the payload of the XMP APP1 segment. Segments read
// before a parse failure are still searched.
func jpegXMP(data []byte) []byte {
	mc, _ := jpegstructure.NewJpegMediaParser().ParseBytes(data)
	sl, ok := mc.(*jpegstructure.SegmentList)
	if !ok || sl == nil {
		return nil
	}
	_, segment, err := sl.FindXmp()
	if err != nil {
		return nil
	}
	return segment.Data[len(jpegXMPHeader):]
}

// pngMetadata reads the eXIf chunk and the XMP iTXt chunk.
func pngMetadata(data []byte) (*exif.Exif, []byte) {
	cs, _ := pngChunks(data)
	if cs == nil {
		return nil, nil
	}

	var (
		x      *exif.Exif
		packet []byte
	)
	for _, c := range cs.Chunks() {
		switch c.Type {
		case pngstructure.EXifChunkType:
			raw := c.Data
			if !bytes.HasPrefix(raw, exifHeader) {
				raw = append(bytes.Clone(exifHeader), raw...)
			}
			x = decodeExif(raw)
		case "iTXt":
			keyword, text, err := parseITXt(c.Data)
			if err == nil && keyword == xmpKeyword {
				packet = text
			}
		}
	}
	return x, packet
}
