//go:build proj

package projection

import (
	"fmt"
	"io"

	"github.com/pebbe/proj/v5"
)

// PROJ runs the transform through the PROJ library.
type PROJ struct {
	ctx *proj.Context
	pj  *proj.PJ
}

// NewPROJ creates a PROJ-backed transform for source to target.
func NewPROJ(source, target string) (*PROJ, error) {
	ctx := proj.NewContext()
	pj, err := ctx.CreateCRS2CRS(source, target)
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("projection: create %s -> %s: %w", source, target, err)
	}
	return &PROJ{ctx: ctx, pj: pj}, nil
}

// Transform converts an easting/northing in metres to longitude/latitude in
// degrees. EPSG:4326 is declared latitude first, so the engine output is
// swapped into always-xy order.
func (p *PROJ) Transform(x, y float64) (lon, lat float64, err error) {
	if err := checkFinite(x, y); err != nil {
		return 0, 0, &ProjectionError{X: x, Y: y, Err: err}
	}
	lat, lon, _, _, err = p.pj.Trans(proj.Fwd, x, y, 0, 0)
	if err != nil {
		return 0, 0, &ProjectionError{X: x, Y: y, Err: err}
	}
	if err := checkFinite(lon, lat); err != nil {
		return 0, 0, &ProjectionError{X: x, Y: y, Err: err}
	}
	return lon, lat, nil
}

func (p *PROJ) Close() error {
	p.pj.Close()
	p.ctx.Close()
	return nil
}

// NewTransformer returns the transform for source to target. Builds with the
// proj tag delegate to the PROJ library.
func NewTransformer(source, target string) (Transformer, error) {
	if err := checkPair(source, target); err != nil {
		return nil, err
	}
	return NewPROJ(source, target)
}

// Close releases engine resources held by t.
func Close(t Transformer) error {
	if c, ok := t.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
