package imagemeta

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"seehuhn.de/go/xmp"
)

var nameRDFLi = xml.Name{Space: nsRDF, Local: "li"}

// ParseXMP returns the properties of packet ordered by namespace and name.
func ParseXMP(packet []byte) ([]Tag, error) {
	p, err := xmp.Read(bytes.NewReader(packet))
	if err != nil {
		return nil, fmt.Errorf("parsing XMP: %w", err)
	}

	names := slices.SortedFunc(maps.Keys(p.Properties), compareNames)
	tags := make([]Tag, 0, len(names))
	for _, name := range names {
		tags = append(tags, rawTag(name, p.Properties[name]))
	}
	return tags, nil
}

func compareNames(a, b xml.Name) int {
	return cmp.Or(cmp.Compare(a.Space, b.Space), cmp.Compare(a.Local, b.Local))
}

// rawTag flattens a decoded XMP value. Qualifiers such as xml:lang are
// dropped.
func rawTag(name xml.Name, raw xmp.Raw) Tag {
	tag := Tag{Namespace: name.Space, Name: name.Local}
	switch v := raw.(type) {
	case xmp.Text:
		tag.Kind = KindString
		tag.Value = strings.TrimSpace(v.V)
	case xmp.URL:
		tag.Kind = KindString
		if v.V != nil {
			tag.Value = v.V.String()
		}
	case xmp.RawArray:
		tag.Kind = KindArray
		for _, item := range v.Value {
			tag.Items = append(tag.Items, rawTag(nameRDFLi, item))
		}
	case xmp.RawStruct:
		tag.Kind = KindStructure
		for _, field := range slices.SortedFunc(maps.Keys(v.Value), compareNames) {
			tag.Items = append(tag.Items, rawTag(field, v.Value[field]))
		}
	}
	return tag
}

// xmpValue returns the text of a simple tag or the texts of an array tag.
// XMP values stay strings; see typedValue.
func xmpValue(tag Tag) (any, bool) {
	switch tag.Kind {
	case KindString:
		return tag.Value, true
	case KindArray:
		vals := make([]any, 0, len(tag.Items))
		for _, item := range tag.Items {
			if s, ok := item.Text(); ok {
				vals = append(vals, s)
			}
		}
		return vals, true
	}
	return nil, false
}

// typedValue converts the text of a numeric field to float64.
func typedValue(key string, value any) any {
	s, ok := value.(string)
	if !ok || !numericFields[key] {
		return value
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return value
	}
	return f
}

// parseXMPCoordinate reads the XMP GPSCoordinate form "DDD,MM,SSk" or
// "DDD,MM.mmk", where k is N, S, E or W.
func parseXMPCoordinate(s string) (float64, string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return 0, "", false
	}
	ref := strings.ToUpper(s[len(s)-1:])
	if !strings.Contains("NSEW", ref) {
		return 0, "", false
	}
	parts := strings.Split(s[:len(s)-1], ",")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, "", false
	}
	var deg float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, "", false
		}
		deg += v / math.Pow(60, float64(i))
	}
	return deg, ref, true
}

// formatXMPCoordinate writes deg in the "DDD,MM.mmk" form.
func formatXMPCoordinate(deg float64, ref string) string {
	deg = math.Abs(deg)
	whole := math.Floor(deg)
	minutes := (deg - whole) * 60
	return strconv.FormatFloat(whole, 'f', 0, 64) + "," + strconv.FormatFloat(minutes, 'f', -1, 64) + ref
}

// applyXMP fills keys of d that binary EXIF did not provide.
func (d *dictionaries) applyXMP(tags []Tag) {
	for _, tag := range tags {
		value, ok := xmpValue(tag)
		if !ok {
			continue
		}
		switch tag.Namespace {
		case nsExif, nsExifEX:
			if key, isGPS := strings.CutPrefix(tag.Name, "GPS"); isGPS && key != "" {
				d.setGPSFromXMP(key, value)
				continue
			}
			d.exif = setMissing(d.exif, tag.Name, typedValue(tag.Name, value))
		case nsTIFF:
			d.tiff = setMissing(d.tiff, tag.Name, typedValue(tag.Name, value))
		}
	}
}

func (d *dictionaries) setGPSFromXMP(key string, value any) {
	refKey, isCoordinate := coordinateFields[key]
	if s, ok := value.(string); ok && isCoordinate {
		if deg, ref, ok := parseXMPCoordinate(s); ok {
			d.gps = setMissing(d.gps, key, deg)
			d.gps = setMissing(d.gps, refKey, ref)
			return
		}
	}
	d.gps = setMissing(d.gps, key, typedValue(key, value))
}

func setMissing(p Properties, key string, value any) Properties {
	if p == nil {
		p = make(Properties)
	}
	if _, exists := p[key]; !exists {
		p[key] = value
	}
	return p
}

var (
	xmpStart = []byte("<x:xmpmeta")
	xmpEnd   = []byte("</x:xmpmeta>")
)

// scanXMP finds a serialized XMP packet anywhere in data.
func scanXMP(data []byte) []byte {
	start := bytes.Index(data, xmpStart)
	if start < 0 {
		return nil
	}
	end := bytes.Index(data[start:], xmpEnd)
	if end < 0 {
		return nil
	}
	return data[start : start+end+len(xmpEnd)]
}
