package services

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tra-stations/models"
	"tra-stations/projection"
)

// recordingTransformer returns fixed output and counts calls.
type recordingTransformer struct {
	calls    int
	lon, lat float64
	err      error
}

func (r *recordingTransformer) Transform(x, y float64) (float64, float64, error) {
	r.calls++
	if r.err != nil {
		return 0, 0, r.err
	}
	return r.lon, r.lat, nil
}

func projected(x, y float64) models.ProjectedCoordinate {
	return models.ProjectedCoordinate{X: models.NumberValue(x), Y: models.NumberValue(y)}
}

func TestReprojectorSwapsToLatLon(t *testing.T) {
	tr := &recordingTransformer{lon: 121.5, lat: 25.0}
	r := NewReprojector(tr, newTestLogger())

	got := r.Reproject(projected(302345.67, 2770512.34))

	lat, _ := got.Latitude.AsNumber()
	lon, _ := got.Longitude.AsNumber()
	assert.Equal(t, 25.0, lat)
	assert.Equal(t, 121.5, lon)
	assert.Equal(t, 1, tr.calls)
}

func TestReprojectorSkipsMissingInput(t *testing.T) {
	tr := &recordingTransformer{lon: 121.5, lat: 25.0}
	r := NewReprojector(tr, newTestLogger())

	inputs := []models.ProjectedCoordinate{
		models.MissingProjected(),
		{X: models.NumberValue(1), Y: models.MissingValue()},
		{X: models.MissingValue(), Y: models.NumberValue(1)},
	}
	for _, in := range inputs {
		assert.True(t, r.Reproject(in).IsMissing())
	}
	assert.Zero(t, tr.calls)
}

func TestReprojectorAbsorbsTransformErrors(t *testing.T) {
	tr := &recordingTransformer{err: errors.New("boom")}
	r := NewReprojector(tr, newTestLogger())

	assert.True(t, r.Reproject(projected(1, 2)).IsMissing())
}

func TestReprojectorWithTM2(t *testing.T) {
	r := NewReprojector(projection.NewTM2(), newTestLogger())

	first := r.Reproject(projected(302345.67, 2770512.34))
	second := r.Reproject(projected(302345.67, 2770512.34))
	require.False(t, first.IsMissing())

	lat, _ := first.Latitude.AsNumber()
	lon, _ := first.Longitude.AsNumber()
	assert.True(t, lat >= 21 && lat <= 26, "latitude %v outside Taiwan", lat)
	assert.True(t, lon >= 119 && lon <= 123, "longitude %v outside Taiwan", lon)

	assert.True(t, first.Latitude.Equal(second.Latitude))
	assert.True(t, first.Longitude.Equal(second.Longitude))

	assert.True(t, r.Reproject(projected(math.Inf(1), 2770512.34)).IsMissing())
}

func TestReprojectorApply(t *testing.T) {
	rs := table([]string{"Name", "Point"},
		[]string{"A", "Point (302345.67 2770512.34)"},
		[]string{"B", "Point (abc def)"},
		[]string{"C", "Point (1 1)"},
	)
	NewGeometryExtractor(newTestLogger()).Apply(rs, "Point")
	// Force a non-finite coordinate onto row C to exercise the failure path.
	rs.Records[2].Set(models.FieldTM2X, models.NumberValue(math.Inf(1)))
	rs.Records[2].Set(models.FieldTM2Y, models.NumberValue(1))

	stats := NewReprojector(projection.NewTM2(), newTestLogger()).Apply(rs)

	assert.Equal(t, ReprojectStats{Projected: 1, Skipped: 1, Failed: 1}, stats)
	assert.Equal(t, []string{"Name", "Point", models.FieldTM2X, models.FieldTM2Y,
		models.FieldLatitude, models.FieldLongitude}, rs.Columns)

	assert.False(t, rs.Records[0].Get(models.FieldLatitude).IsMissing())
	for _, rec := range rs.Records[1:] {
		assert.True(t, rec.Get(models.FieldLatitude).IsMissing())
		assert.True(t, rec.Get(models.FieldLongitude).IsMissing())
	}
}
