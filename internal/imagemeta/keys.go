package imagemeta

// Key names a metadata value looked up by the helpers in this package.
type Key string

const (
	KeyRelativeAltitude Key = "RelativeAltitude"
	KeyGimbalYawDegree  Key = "GimbalYawDegree"
	KeyBandName         Key = "BandName"
	KeyMake             Key = "Make"
	KeyFocalLength      Key = "FocalLength"
)

// GPS dictionary keys. They carry no "GPS" prefix.
const (
	GPSLatitude     = "Latitude"
	GPSLatitudeRef  = "LatitudeRef"
	GPSLongitude    = "Longitude"
	GPSLongitudeRef = "LongitudeRef"
	GPSAltitude     = "Altitude"
	GPSAltitudeRef  = "AltitudeRef"
)

// XMP namespaces.
const (
	nsRDF    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	nsExif   = "http://ns.adobe.com/exif/1.0/"
	nsExifEX = "http://cipa.jp/exif/1.0/"
	nsTIFF   = "http://ns.adobe.com/tiff/1.0/"
	nsIPTC   = "http://iptc.org/std/Iptc4xmpCore/1.0/xmlns/"
)

// Properties is a flat metadata dictionary. Values are float64, int,
// string, or slices of those.
type Properties map[string]any

// tiffFields are the IFD0 tags reported in the TIFF dictionary.
var tiffFields = map[string]bool{
	"ImageWidth":                true,
	"ImageLength":               true,
	"BitsPerSample":             true,
	"Compression":               true,
	"PhotometricInterpretation": true,
	"ImageDescription":          true,
	"Make":                      true,
	"Model":                     true,
	"Orientation":               true,
	"SamplesPerPixel":           true,
	"XResolution":               true,
	"YResolution":               true,
	"PlanarConfiguration":       true,
	"ResolutionUnit":            true,
	"TransferFunction":          true,
	"Software":                  true,
	"DateTime":                  true,
	"Artist":                    true,
	"HostComputer":              true,
	"WhitePoint":                true,
	"PrimaryChromaticities":     true,
	"YCbCrCoefficients":         true,
	"YCbCrSubSampling":          true,
	"YCbCrPositioning":          true,
	"ReferenceBlackWhite":       true,
	"Copyright":                 true,
}

// gpsFields are the GPS dictionary keys, without their "GPS" prefix.
var gpsFields = map[string]bool{
	"VersionID":         true,
	GPSLatitudeRef:      true,
	GPSLatitude:         true,
	GPSLongitudeRef:     true,
	GPSLongitude:        true,
	GPSAltitudeRef:      true,
	GPSAltitude:         true,
	"TimeStamp":         true,
	"Satellites":        true,
	"Status":            true,
	"MeasureMode":       true,
	"DOP":               true,
	"SpeedRef":          true,
	"Speed":             true,
	"TrackRef":          true,
	"Track":             true,
	"ImgDirectionRef":   true,
	"ImgDirection":      true,
	"MapDatum":          true,
	"DestLatitudeRef":   true,
	"DestLatitude":      true,
	"DestLongitudeRef":  true,
	"DestLongitude":     true,
	"DestBearingRef":    true,
	"DestBearing":       true,
	"DestDistanceRef":   true,
	"DestDistance":      true,
	"DateStamp":         true,
	"Differential":      true,
	"HPositioningError": true,
}

// iptcFields are the IPTC Core properties routed to the IPTC namespace
// when writing partitioned metadata.
var iptcFields = map[string]bool{
	"CountryCode":        true,
	"CreatorContactInfo": true,
	"IntellectualGenre":  true,
	"Location":           true,
	"Scene":              true,
	"SubjectCode":        true,
}

// ifdPointers are structural EXIF fields that carry offsets, not values.
var ifdPointers = map[string]bool{
	"ExifIFDPointer":                   true,
	"GPSInfoIFDPointer":                true,
	"InteroperabilityIFDPointer":       true,
	"ThumbJPEGInterchangeFormat":       true,
	"ThumbJPEGInterchangeFormatLength": true,
}

// coordinateFields are GPS keys whose EXIF form is degrees, minutes, seconds.
var coordinateFields = map[string]string{
	GPSLatitude:     GPSLatitudeRef,
	GPSLongitude:    GPSLongitudeRef,
	"DestLatitude":  "DestLatitudeRef",
	"DestLongitude": "DestLongitudeRef",
}

// numericFields are read back from XMP text as float64. Every other XMP
// value stays a string, so "0230" is not turned into 230.
var numericFields = map[string]bool{
	GPSLatitude:                 true,
	GPSLongitude:                true,
	GPSAltitude:                 true,
	"DestLatitude":              true,
	"DestLongitude":             true,
	"DOP":                       true,
	"Speed":                     true,
	"Track":                     true,
	"ImgDirection":              true,
	"DestBearing":               true,
	"DestDistance":              true,
	"HPositioningError":         true,
	"XResolution":               true,
	"YResolution":               true,
	"ExposureTime":              true,
	"FNumber":                   true,
	"CompressedBitsPerPixel":    true,
	"ShutterSpeedValue":         true,
	"ApertureValue":             true,
	"BrightnessValue":           true,
	"ExposureBiasValue":         true,
	"MaxApertureValue":          true,
	"SubjectDistance":           true,
	string(KeyFocalLength):      true,
	"FocalPlaneXResolution":     true,
	"FocalPlaneYResolution":     true,
	"DigitalZoomRatio":          true,
	"FocalLengthIn35mmFilm":     true,
	string(KeyRelativeAltitude): true,
	string(KeyGimbalYawDegree):  true,
}
