package services

import (
	"testing"

	"tra-stations/models"
)

func stationSet() *models.RecordSet {
	rs := models.NewRecordSet([]string{"Name", "Daily", models.FieldLatitude, models.FieldLongitude})
	add := func(name string, daily, lat, lon models.Value) {
		r := models.NewRecord()
		r.Set("Name", models.TextValue(name))
		r.Set("Daily", daily)
		r.Set(models.FieldLatitude, lat)
		r.Set(models.FieldLongitude, lon)
		rs.Records = append(rs.Records, r)
	}
	num := models.NumberValue
	miss := models.MissingValue()

	add("臺北", num(120000), num(25.0478), num(121.517))
	add("板橋", num(60000), num(25.0143), num(121.4637))
	add("高雄", models.TextValue("45,000"), num(22.6394), num(120.3013))
	add("南澳", num(300), miss, miss)
	add("StationA", models.TextValue("n/a"), miss, miss)
	add("花蓮", num(15000), num(23.9927), num(121.6014))
	add("臺東", num(5000), num(22.7933), num(121.1232))
	add("平溪", num(300), num(25.0256), num(121.7382))
	return rs
}

func TestSummaryCounts(t *testing.T) {
	svc := NewSummaryService(newTestLogger(), "Name")
	r := svc.Generate(stationSet(), "Daily")

	if r.TotalStations != 8 {
		t.Errorf("TotalStations: got %d, want 8", r.TotalStations)
	}
	if r.WithCoordinates != 6 {
		t.Errorf("WithCoordinates: got %d, want 6", r.WithCoordinates)
	}
	if r.MissingLocation != 2 {
		t.Errorf("MissingLocation: got %d, want 2", r.MissingLocation)
	}
	if r.RatedStations != 7 {
		t.Errorf("RatedStations: got %d, want 7", r.RatedStations)
	}
	if r.TotalRidership != 245600 {
		t.Errorf("TotalRidership: got %.0f, want 245600", r.TotalRidership)
	}
}

func TestSummaryRankings(t *testing.T) {
	svc := NewSummaryService(newTestLogger(), "Name")
	r := svc.Generate(stationSet(), "Daily")

	wantBusiest := []string{"臺北", "板橋", "高雄", "花蓮", "臺東"}
	if len(r.Busiest) != len(wantBusiest) {
		t.Fatalf("Busiest: got %d entries, want %d", len(r.Busiest), len(wantBusiest))
	}
	for i, name := range wantBusiest {
		if r.Busiest[i].Name != name {
			t.Errorf("Busiest[%d]: got %s, want %s", i, r.Busiest[i].Name, name)
		}
	}

	if r.Quietest[0].Ridership != 300 || r.Quietest[1].Ridership != 300 {
		t.Errorf("Quietest should start with the two 300-passenger stations, got %+v", r.Quietest[:2])
	}
	if r.Quietest[2].Name != "臺東" {
		t.Errorf("Quietest[2]: got %s, want 臺東", r.Quietest[2].Name)
	}
}

func TestSummaryBounds(t *testing.T) {
	svc := NewSummaryService(newTestLogger(), "Name")
	r := svc.Generate(stationSet(), "Daily")

	if r.Bounds == nil {
		t.Fatal("expected bounds")
	}
	if r.Bounds.MinLatitude != 22.6394 || r.Bounds.MaxLatitude != 25.0478 {
		t.Errorf("latitude bounds: got %v … %v", r.Bounds.MinLatitude, r.Bounds.MaxLatitude)
	}
	if r.Bounds.MinLongitude != 120.3013 || r.Bounds.MaxLongitude != 121.7382 {
		t.Errorf("longitude bounds: got %v … %v", r.Bounds.MinLongitude, r.Bounds.MaxLongitude)
	}
}

func TestSummaryEmpty(t *testing.T) {
	svc := NewSummaryService(newTestLogger(), "Name")
	r := svc.Generate(models.NewRecordSet([]string{"Name"}), "Daily")

	if r.TotalStations != 0 || r.Bounds != nil || len(r.Busiest) != 0 {
		t.Errorf("expected empty report, got %+v", r)
	}
}
