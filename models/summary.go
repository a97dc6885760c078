package models

// StationRidership pairs a station name with its ridership figure.
type StationRidership struct {
	Name      string
	Ridership float64
}

// BoundingBox is the geographic extent of the located stations.
type BoundingBox struct {
	MinLatitude  float64
	MaxLatitude  float64
	MinLongitude float64
	MaxLongitude float64
}

// SummaryReport holds the figures printed at the end of a run.
type SummaryReport struct {
	TotalStations   int
	WithCoordinates int
	MissingLocation int
	RidershipField  string
	RatedStations   int
	TotalRidership  float64
	Busiest         []StationRidership
	Quietest        []StationRidership
	Bounds          *BoundingBox
}
