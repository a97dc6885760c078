// Package projection converts TWD97 / TM2 zone 121 (EPSG:3826) grid
// coordinates into WGS84 geographic coordinates (EPSG:4326).
//
// All transformers use always-xy axis order: the first component is the
// easting or longitude, the second the northing or latitude, whatever the
// native axis order of the reference system.
package projection

import (
	"errors"
	"fmt"
	"math"
)

// Reference systems supported by NewTransformer.
const (
	EPSG3826 = "EPSG:3826"
	EPSG4326 = "EPSG:4326"
)

// ErrUnsupportedCRS is returned for any source/target pair other than
// EPSG:3826 to EPSG:4326.
var ErrUnsupportedCRS = errors.New("unsupported coordinate reference system pair")

// Transformer maps a projected (x, y) pair to (lon, lat) in degrees.
type Transformer interface {
	Transform(x, y float64) (lon, lat float64, err error)
}

// ProjectionError reports a coordinate the transform could not handle.
type ProjectionError struct {
	X, Y float64
	Err  error
}

func (e *ProjectionError) Error() string {
	return fmt.Sprintf("project (%v, %v): %v", e.X, e.Y, e.Err)
}

func (e *ProjectionError) Unwrap() error { return e.Err }

var errNonFinite = errors.New("non-finite coordinate")

func checkFinite(vals ...float64) error {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errNonFinite
		}
	}
	return nil
}

func checkPair(source, target string) error {
	if source != EPSG3826 || target != EPSG4326 {
		return fmt.Errorf("%w: %s -> %s", ErrUnsupportedCRS, source, target)
	}
	return nil
}
