package services

import (
	"tra-stations/models"
	"tra-stations/projection"
	"tra-stations/utils"
)

// ReprojectStats counts reprojection outcomes across a record set.
type ReprojectStats struct {
	Projected int
	Skipped   int
	Failed    int
}

// Reprojector converts TM2 coordinates into latitude/longitude using a
// transform fixed at construction.
type Reprojector struct {
	transformer projection.Transformer
	logger      *utils.Logger
}

// NewReprojector creates a Reprojector that converts coordinates with t.
func NewReprojector(t projection.Transformer, logger *utils.Logger) *Reprojector {
	return &Reprojector{transformer: t, logger: logger}
}

// Reproject returns the geographic position of c. A missing input is
// returned as missing without calling the transform; a transform failure
// is logged and also yields missing.
func (r *Reprojector) Reproject(c models.ProjectedCoordinate) models.GeographicCoordinate {
	geo, _ := r.reproject(c)
	return geo
}

func (r *Reprojector) reproject(c models.ProjectedCoordinate) (models.GeographicCoordinate, error) {
	if c.IsMissing() {
		return models.MissingGeographic(), nil
	}
	x, _ := c.X.AsNumber()
	y, _ := c.Y.AsNumber()

	lon, lat, err := r.transformer.Transform(x, y)
	if err != nil {
		r.logger.Warn("[reprojector] %v", err)
		return models.MissingGeographic(), err
	}
	return models.GeographicCoordinate{
		Latitude:  models.NumberValue(lat),
		Longitude: models.NumberValue(lon),
	}, nil
}

// Apply adds latitude and longitude to every record from its tm2_x/tm2_y.
func (r *Reprojector) Apply(rs *models.RecordSet) ReprojectStats {
	var stats ReprojectStats

	rs.AddColumn(models.FieldLatitude)
	rs.AddColumn(models.FieldLongitude)

	for _, rec := range rs.Records {
		c := models.ProjectedCoordinate{X: rec.Get(models.FieldTM2X), Y: rec.Get(models.FieldTM2Y)}
		geo, err := r.reproject(c)
		rec.Set(models.FieldLatitude, geo.Latitude)
		rec.Set(models.FieldLongitude, geo.Longitude)

		switch {
		case err != nil:
			stats.Failed++
		case c.IsMissing():
			stats.Skipped++
		default:
			stats.Projected++
		}
	}

	r.logger.Info("[reprojector] Reprojected %d rows (no coordinates %d, failed %d)",
		stats.Projected, stats.Skipped, stats.Failed)
	return stats
}
