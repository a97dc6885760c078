//go:build !proj

package projection

// NewTransformer returns the transform for source to target. Builds without
// the proj tag use the closed-form TM2 engine.
func NewTransformer(source, target string) (Transformer, error) {
	if err := checkPair(source, target); err != nil {
		return nil, err
	}
	return NewTM2(), nil
}

// Close releases engine resources. The closed-form engine holds none.
func Close(Transformer) error { return nil }
