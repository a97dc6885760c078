package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"tra-stations/models"
	"tra-stations/utils"
)

const rankingSize = 5

// SummaryService builds the end-of-run station report.
type SummaryService struct {
	logger *utils.Logger
	key    string
}

// NewSummaryService creates a SummaryService that names stations by key.
func NewSummaryService(logger *utils.Logger, key string) *SummaryService {
	return &SummaryService{logger: logger, key: key}
}

// Generate computes station counts, ridership rankings and the bounding box
// of located stations. Rows whose ridership is not numeric are left out of
// the rankings.
func (s *SummaryService) Generate(rs *models.RecordSet, ridershipField string) *models.SummaryReport {
	report := &models.SummaryReport{RidershipField: ridershipField}
	if rs == nil || rs.Len() == 0 {
		return report
	}

	report.TotalStations = rs.Len()

	var rated []models.StationRidership
	for _, rec := range rs.Records {
		geo := models.GeographicCoordinate{
			Latitude:  rec.Get(models.FieldLatitude),
			Longitude: rec.Get(models.FieldLongitude),
		}
		if geo.IsMissing() {
			report.MissingLocation++
		} else {
			report.WithCoordinates++
			lat, _ := geo.Latitude.AsNumber()
			lon, _ := geo.Longitude.AsNumber()
			report.Bounds = extend(report.Bounds, lat, lon)
		}

		if ridershipField == "" {
			continue
		}
		if n, ok := ridership(rec.Get(ridershipField)); ok {
			rated = append(rated, models.StationRidership{Name: rec.Get(s.key).String(), Ridership: n})
			report.TotalRidership += n
		}
	}

	report.RatedStations = len(rated)
	s.logger.Debug("[summary] %d of %d stations have a numeric %s", len(rated), rs.Len(), ridershipField)

	// Busiest first; ties broken by name so the report is stable.
	sort.SliceStable(rated, func(i, j int) bool {
		if rated[i].Ridership != rated[j].Ridership {
			return rated[i].Ridership > rated[j].Ridership
		}
		return rated[i].Name < rated[j].Name
	})
	report.Busiest = head(rated, rankingSize)

	quiet := make([]models.StationRidership, len(rated))
	for i := range rated {
		quiet[i] = rated[len(rated)-1-i]
	}
	report.Quietest = head(quiet, rankingSize)

	return report
}

func ridership(v models.Value) (float64, bool) {
	if n, ok := v.AsNumber(); ok {
		return n, true
	}
	if t, ok := v.AsText(); ok {
		n, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(t), ",", ""), 64)
		return n, err == nil
	}
	return 0, false
}

func extend(b *models.BoundingBox, lat, lon float64) *models.BoundingBox {
	if b == nil {
		return &models.BoundingBox{MinLatitude: lat, MaxLatitude: lat, MinLongitude: lon, MaxLongitude: lon}
	}
	if lat < b.MinLatitude {
		b.MinLatitude = lat
	}
	if lat > b.MaxLatitude {
		b.MaxLatitude = lat
	}
	if lon < b.MinLongitude {
		b.MinLongitude = lon
	}
	if lon > b.MaxLongitude {
		b.MaxLongitude = lon
	}
	return b
}

func head(list []models.StationRidership, n int) []models.StationRidership {
	if len(list) > n {
		return list[:n]
	}
	return list
}

// Print writes a formatted report to stdout.
func (s *SummaryService) Print(r *models.SummaryReport) {
	sep := strings.Repeat("─", 60)
	fmt.Println()
	fmt.Println(sep)
	fmt.Println("  TRA STATION DATASET SUMMARY")
	fmt.Println(sep)
	fmt.Printf("  Stations            : %d\n", r.TotalStations)
	fmt.Printf("  With coordinates    : %d\n", r.WithCoordinates)
	fmt.Printf("  Missing coordinates : %d\n", r.MissingLocation)

	if r.Bounds != nil {
		fmt.Printf("  Latitude range      : %.5f … %.5f\n", r.Bounds.MinLatitude, r.Bounds.MaxLatitude)
		fmt.Printf("  Longitude range     : %.5f … %.5f\n", r.Bounds.MinLongitude, r.Bounds.MaxLongitude)
	}

	if r.RatedStations > 0 {
		fmt.Printf("  Total %-13s : %.0f (%d stations)\n", r.RidershipField, r.TotalRidership, r.RatedStations)
		fmt.Println()
		fmt.Println("  Busiest stations:")
		for i, st := range r.Busiest {
			fmt.Printf("    %d. %s (%.0f)\n", i+1, st.Name, st.Ridership)
		}
		fmt.Println()
		fmt.Println("  Quietest stations:")
		for i, st := range r.Quietest {
			fmt.Printf("    %d. %s (%.0f)\n", i+1, st.Name, st.Ridership)
		}
	}
	fmt.Println(sep)
	fmt.Println()
}
