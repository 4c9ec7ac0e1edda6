package imagemeta

import "math"

// Coordinate is a geographic position in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// IsValid reports whether both components are finite and inside
// [-90, 90] and [-180, 180].
func (c Coordinate) IsValid() bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// signedCoordinate applies the hemisphere references: "S" negates the
// latitude and "W" negates the longitude.
func signedCoordinate(lat float64, northSouth string, lon float64, eastWest string) Coordinate {
	if northSouth == "S" {
		lat = -lat
	}
	if eastWest == "W" {
		lon = -lon
	}
	return Coordinate{Latitude: lat, Longitude: lon}
}
