package imagemeta

import (
	"bytes"
	"strings"
	"unicode"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// dictionaries holds the per-namespace property sets of one image. A nil
// map means the image has no such dictionary.
type dictionaries struct {
	gps  Properties
	tiff Properties
	exif Properties
}

// decodeExif parses EXIF from a JPEG, a TIFF stream or a raw
// "Exif\0\0"-prefixed block. Non-critical errors keep the partial result.
func decodeExif(data []byte) *exif.Exif {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil && (x == nil || exif.IsCriticalError(err)) {
		return nil
	}
	return x
}

type dictionaryWalker struct {
	d *dictionaries
}

func (w dictionaryWalker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	key := string(name)
	if ifdPointers[key] {
		return nil
	}
	value, ok := tagValue(tag)
	if !ok {
		return nil
	}

	switch {
	case strings.HasPrefix(key, "GPS"):
		key = strings.TrimPrefix(key, "GPS")
		if _, isCoordinate := coordinateFields[key]; isCoordinate {
			value = degrees(value)
		}
		w.d.gps = setMissing(w.d.gps, key, value)
	case tiffFields[key]:
		w.d.tiff = setMissing(w.d.tiff, key, value)
	default:
		w.d.exif = setMissing(w.d.exif, key, value)
	}
	return nil
}

// exifDictionaries partitions the decoded fields into GPS, TIFF and EXIF.
func exifDictionaries(x *exif.Exif) dictionaries {
	var d dictionaries
	if x == nil {
		return d
	}
	x.Walk(dictionaryWalker{d: &d})
	return d
}

// tagValue converts a TIFF field to a plain Go value. Single-element
// fields become scalars.
func tagValue(tag *tiff.Tag) (any, bool) {
	n := int(tag.Count)
	switch tag.Format() {
	case tiff.StringVal:
		s, err := tag.StringVal()
		if err != nil {
			return nil, false
		}
		return strings.TrimRight(s, "\x00"), true
	case tiff.RatVal:
		vals := make([]float64, 0, n)
		for i := 0; i < n; i++ {
			num, den, err := tag.Rat2(i)
			if err != nil {
				return nil, false
			}
			if den == 0 {
				vals = append(vals, 0)
				continue
			}
			vals = append(vals, float64(num)/float64(den))
		}
		return collapse(vals)
	case tiff.IntVal:
		vals := make([]int, 0, n)
		for i := 0; i < n; i++ {
			v, err := tag.Int(i)
			if err != nil {
				return nil, false
			}
			vals = append(vals, v)
		}
		return collapse(vals)
	case tiff.FloatVal:
		vals := make([]float64, 0, n)
		for i := 0; i < n; i++ {
			v, err := tag.Float(i)
			if err != nil {
				return nil, false
			}
			vals = append(vals, v)
		}
		return collapse(vals)
	case tiff.UndefVal:
		// short printable blobs such as ExifVersion "0230"
		s := strings.TrimRight(string(tag.Val), "\x00")
		if s == "" || len(s) > 64 || strings.IndexFunc(s, func(r rune) bool { return !unicode.IsPrint(r) }) >= 0 {
			return nil, false
		}
		return s, true
	}
	return nil, false
}

func collapse[T any](vals []T) (any, bool) {
	switch len(vals) {
	case 0:
		return nil, false
	case 1:
		return vals[0], true
	}
	return vals, true
}

// degrees folds a degrees, minutes, seconds triple, or a degrees and
// decimal minutes pair, into decimal degrees.
func degrees(v any) any {
	dms, ok := v.([]float64)
	if !ok {
		return v
	}
	switch len(dms) {
	case 2:
		return dms[0] + dms[1]/60
	case 3:
		return dms[0] + dms[1]/60 + dms[2]/3600
	}
	return v
}
