package models

// ProjectedCoordinate is an easting/northing pair in TM2 metres.
type ProjectedCoordinate struct {
	X Value
	Y Value
}

func MissingProjected() ProjectedCoordinate {
	return ProjectedCoordinate{X: MissingValue(), Y: MissingValue()}
}

// IsMissing reports whether either component is missing.
func (c ProjectedCoordinate) IsMissing() bool {
	_, okX := c.X.AsNumber()
	_, okY := c.Y.AsNumber()
	return !okX || !okY
}

// GeographicCoordinate is a WGS84 latitude/longitude pair in degrees.
type GeographicCoordinate struct {
	Latitude  Value
	Longitude Value
}

func MissingGeographic() GeographicCoordinate {
	return GeographicCoordinate{Latitude: MissingValue(), Longitude: MissingValue()}
}

func (c GeographicCoordinate) IsMissing() bool {
	_, okLat := c.Latitude.AsNumber()
	_, okLon := c.Longitude.AsNumber()
	return !okLat || !okLon
}
