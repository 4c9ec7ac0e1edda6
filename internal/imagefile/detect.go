package imagefile

import "bytes"

// Format identifies an image container by its leading bytes.
type Format string

const (
	FormatUnknown Format = ""
	FormatJPEG    Format = "JPEG"
	FormatPNG     Format = "PNG"
	FormatGIF     Format = "GIF"
	FormatWebP    Format = "WebP"
	FormatBMP     Format = "BMP"
	FormatTIFF    Format = "TIFF"
	FormatHEIC    Format = "HEIC"
	FormatPDF     Format = "PDF"
)

var (
	pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	tiffLE       = []byte{'I', 'I', 0x2A, 0x00}
	tiffBE       = []byte{'M', 'M', 0x00, 0x2A}
	pdfSignature = []byte("%PDF-")
)

// PNGSignature returns the eight bytes every PNG stream starts with.
func PNGSignature() []byte {
	return bytes.Clone(pngSignature)
}

// DetectFormat examines the magic bytes at the start of data.
func DetectFormat(data []byte) Format {
	switch {
	case len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return FormatJPEG
	case bytes.HasPrefix(data, pngSignature):
		return FormatPNG
	case bytes.HasPrefix(data, []byte("GIF87a")), bytes.HasPrefix(data, []byte("GIF89a")):
		return FormatGIF
	case len(data) >= 12 && bytes.HasPrefix(data, []byte("RIFF")) && string(data[8:12]) == "WEBP":
		return FormatWebP
	case bytes.HasPrefix(data, tiffLE), bytes.HasPrefix(data, tiffBE):
		return FormatTIFF
	case isHEIC(data):
		return FormatHEIC
	case bytes.HasPrefix(data, pdfSignature):
		return FormatPDF
	case len(data) >= 2 && data[0] == 'B' && data[1] == 'M':
		return FormatBMP
	}
	return FormatUnknown
}

// isHEIC checks for an ISO BMFF ftyp box with a HEIF-family brand.
func isHEIC(data []byte) bool {
	if len(data) < 12 || string(data[4:8]) != "ftyp" {
		return false
	}
	switch string(data[8:12]) {
	case "heic", "heix", "heif", "mif1", "msf1":
		return true
	}
	return false
}
