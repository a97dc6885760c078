package services

import (
	"regexp"
	"strconv"

	"tra-stations/models"
	"tra-stations/utils"
)

// pointRegexp captures the easting and northing of a "Point (x y)" geometry.
// Case-sensitive and unanchored: the first occurrence anywhere in the text wins.
var pointRegexp = regexp.MustCompile(`Point \(([0-9.-]+) ([0-9.-]+)\)`)

// ExtractStats counts geometry outcomes across a record set.
type ExtractStats struct {
	Parsed    int
	Absent    int
	Malformed int
}

// GeometryExtractor turns geometry text into TM2 coordinate pairs.
type GeometryExtractor struct {
	logger *utils.Logger
}

// NewGeometryExtractor creates a GeometryExtractor with the given logger.
func NewGeometryExtractor(logger *utils.Logger) *GeometryExtractor {
	return &GeometryExtractor{logger: logger}
}

// Extract parses v. Anything that is not text containing a well-formed
// point yields a missing coordinate; this is never an error.
func (e *GeometryExtractor) Extract(v models.Value) models.ProjectedCoordinate {
	text, ok := v.AsText()
	if !ok {
		return models.MissingProjected()
	}
	return parsePoint(text)
}

func parsePoint(text string) models.ProjectedCoordinate {
	match := pointRegexp.FindStringSubmatch(text)
	if len(match) < 3 {
		return models.MissingProjected()
	}

	x, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return models.MissingProjected()
	}
	y, err := strconv.ParseFloat(match[2], 64)
	if err != nil {
		return models.MissingProjected()
	}
	return models.ProjectedCoordinate{X: models.NumberValue(x), Y: models.NumberValue(y)}
}

// Apply adds tm2_x and tm2_y to every record, reading geometry from field.
func (e *GeometryExtractor) Apply(rs *models.RecordSet, field string) ExtractStats {
	var stats ExtractStats

	rs.AddColumn(models.FieldTM2X)
	rs.AddColumn(models.FieldTM2Y)

	for _, rec := range rs.Records {
		raw := rec.Get(field)
		c := e.Extract(raw)
		rec.Set(models.FieldTM2X, c.X)
		rec.Set(models.FieldTM2Y, c.Y)

		switch {
		case !c.IsMissing():
			stats.Parsed++
		case raw.IsMissing():
			stats.Absent++
		default:
			stats.Malformed++
			e.logger.Debug("[extractor] Unparseable geometry %q", raw.String())
		}
	}

	e.logger.Info("[extractor] Geometry parsed for %d rows (absent %d, malformed %d)",
		stats.Parsed, stats.Absent, stats.Malformed)
	return stats
}
