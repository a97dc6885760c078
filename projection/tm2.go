package projection

import "math"

// GRS80 ellipsoid and TM2 zone 121 parameters of EPSG:3826.
const (
	grs80A        = 6378137.0
	grs80InvF     = 298.257222101
	tm2Lon0       = 121.0
	tm2ScaleK0    = 0.9999
	tm2FalseEast  = 250000.0
	tm2FalseNorth = 0.0
)

// TM2 is a closed-form inverse Transverse Mercator on GRS80 using the
// Krüger series to fourth order in n, accurate to well below a millimetre
// across Taiwan. TWD97 and WGS84 are treated as coincident, so the result
// is directly in EPSG:4326.
//
// A TM2 is immutable and safe for concurrent use.
type TM2 struct {
	lon0   float64
	k0A    float64
	e0, n0 float64
	beta   [4]float64
	delta  [4]float64
}

// NewTM2 builds the EPSG:3826 to EPSG:4326 transform.
func NewTM2() *TM2 {
	f := 1 / grs80InvF
	n := f / (2 - f)
	n2, n3, n4 := n*n, n*n*n, n*n*n*n

	a := grs80A / (1 + n) * (1 + n2/4 + n4/64)

	return &TM2{
		lon0: tm2Lon0 * math.Pi / 180,
		k0A:  tm2ScaleK0 * a,
		e0:   tm2FalseEast,
		n0:   tm2FalseNorth,
		beta: [4]float64{
			n/2 - 2*n2/3 + 37*n3/96 - n4/360,
			n2/48 + n3/15 - 437*n4/1440,
			17*n3/480 - 37*n4/840,
			4397 * n4 / 161280,
		},
		delta: [4]float64{
			2*n - 2*n2/3 - 2*n3 + 116*n4/45,
			7*n2/3 - 8*n3/5 - 227*n4/45,
			56*n3/15 - 136*n4/35,
			4279 * n4 / 630,
		},
	}
}

// Transform converts an easting/northing in metres to longitude/latitude in degrees.
func (t *TM2) Transform(x, y float64) (lon, lat float64, err error) {
	if err := checkFinite(x, y); err != nil {
		return 0, 0, &ProjectionError{X: x, Y: y, Err: err}
	}

	xi := (y - t.n0) / t.k0A
	eta := (x - t.e0) / t.k0A

	xiP, etaP := xi, eta
	for j := 1; j <= 4; j++ {
		b := t.beta[j-1]
		jj := float64(2 * j)
		xiP -= b * math.Sin(jj*xi) * math.Cosh(jj*eta)
		etaP -= b * math.Cos(jj*xi) * math.Sinh(jj*eta)
	}

	chi := math.Asin(math.Sin(xiP) / math.Cosh(etaP))
	phi := chi
	for j := 1; j <= 4; j++ {
		phi += t.delta[j-1] * math.Sin(float64(2*j)*chi)
	}
	lambda := t.lon0 + math.Atan2(math.Sinh(etaP), math.Cos(xiP))

	lon = lambda * 180 / math.Pi
	lat = phi * 180 / math.Pi
	if err := checkFinite(lon, lat); err != nil {
		return 0, 0, &ProjectionError{X: x, Y: y, Err: err}
	}
	return lon, lat, nil
}
