package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tra-stations/models"
)

func TestGeometryExtractorExtract(t *testing.T) {
	e := NewGeometryExtractor(newTestLogger())

	tests := []struct {
		name    string
		in      models.Value
		x, y    float64
		missing bool
	}{
		{"well formed", models.TextValue("Point (302345.67 2770512.34)"), 302345.67, 2770512.34, false},
		{"integers", models.TextValue("Point (302345 2770512)"), 302345, 2770512, false},
		{"negative", models.TextValue("Point (-21946.96 2706032.648654828)"), -21946.96, 2706032.648654828, false},
		{"surrounding text", models.TextValue("SRID=3826;Point (1.5 2.25) extra"), 1.5, 2.25, false},
		{"first occurrence wins", models.TextValue("Point (1 2) Point (3 4)"), 1, 2, false},
		{"non-numeric", models.TextValue("Point (abc def)"), 0, 0, true},
		{"class match but not a number", models.TextValue("Point (1.2.3 4)"), 0, 0, true},
		{"lone minus", models.TextValue("Point (- 4)"), 0, 0, true},
		{"lower case", models.TextValue("point (1 2)"), 0, 0, true},
		{"two spaces", models.TextValue("Point (1  2)"), 0, 0, true},
		{"comma separated", models.TextValue("Point (1,2)"), 0, 0, true},
		{"empty text", models.TextValue(""), 0, 0, true},
		{"missing", models.MissingValue(), 0, 0, true},
		{"number", models.NumberValue(12), 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.in)
			if tt.missing {
				assert.True(t, got.X.IsMissing())
				assert.True(t, got.Y.IsMissing())
				return
			}
			x, okX := got.X.AsNumber()
			y, okY := got.Y.AsNumber()
			assert.True(t, okX && okY)
			assert.Equal(t, tt.x, x)
			assert.Equal(t, tt.y, y)
		})
	}
}

func TestGeometryExtractorApply(t *testing.T) {
	rs := table([]string{"Name", "Point"},
		[]string{"A", "Point (302345.67 2770512.34)"},
		[]string{"B", "Point (abc def)"},
		[]string{"C", ""},
		[]string{"D", "Point (1 2)"},
	)

	stats := NewGeometryExtractor(newTestLogger()).Apply(rs, "Point")

	assert.Equal(t, ExtractStats{Parsed: 2, Absent: 1, Malformed: 1}, stats)
	assert.Equal(t, []string{"Name", "Point", models.FieldTM2X, models.FieldTM2Y}, rs.Columns)

	x, _ := rs.Records[0].Get(models.FieldTM2X).AsNumber()
	y, _ := rs.Records[0].Get(models.FieldTM2Y).AsNumber()
	assert.Equal(t, 302345.67, x)
	assert.Equal(t, 2770512.34, y)

	// A malformed row does not stop later rows.
	assert.True(t, rs.Records[1].Get(models.FieldTM2X).IsMissing())
	assert.True(t, rs.Records[2].Get(models.FieldTM2Y).IsMissing())
	assert.Equal(t, "1", rs.Records[3].Get(models.FieldTM2X).String())
}
