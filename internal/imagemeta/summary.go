package imagemeta

// Summary holds the optional values read from one image.
type Summary struct {
	Make             *string     `json:"make,omitempty"`
	FocalLength      *float64    `json:"focal_length,omitempty"`
	BandName         *string     `json:"band_name,omitempty"`
	Location         *Coordinate `json:"location,omitempty"`
	RelativeAltitude *float64    `json:"relative_altitude,omitempty"`
	GimbalYaw        *float64    `json:"gimbal_yaw,omitempty"`
}

// NullableFields lists every optional field for nullable.IsEmpty.
func (s Summary) NullableFields() []any {
	return []any{s.Make, s.FocalLength, s.BandName, s.Location, s.RelativeAltitude, s.GimbalYaw}
}
