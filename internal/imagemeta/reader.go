package imagemeta

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Reader extracts metadata from image files. Every lookup reads the file
// again. The zero value logs to slog.Default().
type Reader struct {
	log *slog.Logger
}

// NewReader creates a Reader that reports failed lookups to logger.
func NewReader(logger *slog.Logger) *Reader {
	return &Reader{log: logger}
}

func (r *Reader) logger() *slog.Logger {
	if r == nil || r.log == nil {
		return slog.Default()
	}
	return r.log
}

func (r *Reader) open(path string) (*source, []Tag, bool) {
	src, err := openSource(path)
	if err != nil {
		r.logger().Debug("can't open image source", "path", path, "error", err)
		return nil, nil, false
	}
	tags, err := src.tags()
	if err != nil {
		r.logger().Debug("can't parse XMP", "path", path, "error", err)
	}
	return src, tags, true
}

// PropertyDictionary merges the GPS, TIFF and EXIF dictionaries into one
// mapping. On a key collision GPS wins over TIFF and TIFF wins over EXIF.
// An image without GPS or TIFF metadata has no dictionary; missing EXIF
// is treated as empty.
func (r *Reader) PropertyDictionary(path string) (Properties, bool) {
	src, tags, ok := r.open(path)
	if !ok {
		return nil, false
	}
	d := src.dictionaries(tags)
	if d.gps == nil || d.tiff == nil {
		r.logger().Debug("image has no GPS or TIFF dictionary", "path", path,
			"gps", d.gps != nil, "tiff", d.tiff != nil)
		return nil, false
	}
	return lo.Assign(d.exif, d.tiff, d.gps), true
}

// GPSProperties returns only the GPS dictionary.
func (r *Reader) GPSProperties(path string) (Properties, bool) {
	src, tags, ok := r.open(path)
	if !ok {
		return nil, false
	}
	d := src.dictionaries(tags)
	if d.gps == nil {
		r.logger().Debug("image has no GPS dictionary", "path", path)
		return nil, false
	}
	return d.gps, true
}

// Location returns the signed position recorded in the GPS dictionary.
func (r *Reader) Location(path string) (Coordinate, bool) {
	gps, ok := r.GPSProperties(path)
	if !ok {
		r.logger().Warn("can't get GPS properties", "path", path)
		return Coordinate{}, false
	}

	lat, ok := gps[GPSLatitude].(float64)
	if !ok {
		r.logger().Warn("can't get latitude", "path", path)
		return Coordinate{}, false
	}
	latRef, ok := gps[GPSLatitudeRef].(string)
	if !ok {
		r.logger().Warn("can't get latitude reference", "path", path)
		return Coordinate{}, false
	}
	lon, ok := gps[GPSLongitude].(float64)
	if !ok {
		r.logger().Warn("can't get longitude", "path", path)
		return Coordinate{}, false
	}
	lonRef, ok := gps[GPSLongitudeRef].(string)
	if !ok {
		r.logger().Warn("can't get longitude reference", "path", path)
		return Coordinate{}, false
	}

	c := signedCoordinate(lat, latRef, lon, lonRef)
	if !c.IsValid() {
		r.logger().Warn("invalid coordinate", "path", path,
			"latitude", c.Latitude, "longitude", c.Longitude)
		return Coordinate{}, false
	}
	return c, true
}

// MakeName returns the camera manufacturer.
func (r *Reader) MakeName(path string) (string, bool) {
	props, ok := r.PropertyDictionary(path)
	if !ok {
		return "", false
	}
	name, ok := props[string(KeyMake)].(string)
	return name, ok
}

// FocalLength returns the lens focal length in millimetres.
func (r *Reader) FocalLength(path string) (float64, bool) {
	props, ok := r.PropertyDictionary(path)
	if !ok {
		return 0, false
	}
	length, ok := props[string(KeyFocalLength)].(float64)
	return length, ok
}

// Tags returns the XMP tags of the image ordered by namespace and name.
func (r *Reader) Tags(path string) ([]Tag, bool) {
	_, tags, ok := r.open(path)
	if !ok || len(tags) == 0 {
		return nil, false
	}
	return tags, true
}

// BandName joins the members of the BandName array tag with ", ".
func (r *Reader) BandName(path string) (string, bool) {
	tags, ok := r.Tags(path)
	if !ok {
		return "", false
	}
	tag, ok := findTag(tags, KeyBandName)
	if !ok {
		return "", false
	}
	items, ok := tag.Array()
	if !ok {
		r.logger().Debug("BandName is not an array", "path", path)
		return "", false
	}

	var joined strings.Builder
	for _, item := range items {
		text, ok := item.Text()
		if !ok {
			text = "unknown"
		}
		joined.WriteString(text)
		joined.WriteString(", ")
	}
	name := joined.String()
	if len(name) <= 2 {
		return "", false
	}
	return name[:len(name)-2], true
}

// FlightMetadata returns the relative altitude and gimbal yaw. Both must
// be present and numeric; otherwise the result is empty.
func (r *Reader) FlightMetadata(path string) map[Key]float64 {
	result := map[Key]float64{}
	tags, ok := r.Tags(path)
	if !ok {
		r.logger().Warn("can't get metadata tags", "path", path)
		return result
	}

	altitude, hasAltitude := numericTag(tags, KeyRelativeAltitude)
	if !hasAltitude {
		r.logger().Warn("can't get altitude", "path", path)
	}
	yaw, hasYaw := numericTag(tags, KeyGimbalYawDegree)
	if !hasYaw {
		r.logger().Warn("can't get yaw", "path", path)
	}
	if !hasAltitude || !hasYaw {
		return result
	}

	result[KeyRelativeAltitude] = altitude
	result[KeyGimbalYawDegree] = yaw
	return result
}

func numericTag(tags []Tag, name Key) (float64, bool) {
	tag, ok := findTag(tags, name)
	if !ok {
		return 0, false
	}
	text, ok := tag.Text()
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Summary collects the values the other lookups return individually.
func (r *Reader) Summary(path string) Summary {
	var s Summary
	if name, ok := r.MakeName(path); ok {
		s.Make = &name
	}
	if length, ok := r.FocalLength(path); ok {
		s.FocalLength = &length
	}
	if band, ok := r.BandName(path); ok {
		s.BandName = &band
	}
	if loc, ok := r.Location(path); ok {
		s.Location = &loc
	}
	flight := r.FlightMetadata(path)
	if altitude, ok := flight[KeyRelativeAltitude]; ok {
		s.RelativeAltitude = &altitude
	}
	if yaw, ok := flight[KeyGimbalYawDegree]; ok {
		s.GimbalYaw = &yaw
	}
	return s
}
