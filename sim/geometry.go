// sim/geometry.go
package sim

import (
	"fmt"
	"math"
)

// Side selects one half of a detector layer.
type Side int

const (
	Left  Side = -1
	Right Side = +1
)

// String returns "left" or "right".
func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("side(%d)", int(s))
	}
}

// Valid reports whether s is Left or Right.
func (s Side) Valid() bool {
	return s == Left || s == Right
}

// Default CDet layer geometry.
const (
	DefaultPaddlesPerSide = 672
	DefaultHalfSpan       = 1.68 // meters
)

// Geometry describes one detector layer spanning [-HalfSpan, +HalfSpan],
// split into two sides of PaddlesPerSide equal-width paddles each.
type Geometry struct {
	HalfSpan       float64 `yaml:"half_span_m" json:"half_span_m"`
	PaddlesPerSide int     `yaml:"paddles_per_side" json:"paddles_per_side"`
}

// DefaultGeometry returns the CDet layer geometry (2 x 672 paddles over ±1.68 m).
func DefaultGeometry() Geometry {
	return Geometry{HalfSpan: DefaultHalfSpan, PaddlesPerSide: DefaultPaddlesPerSide}
}

// Validate rejects geometries whose pitch would be non-positive or non-finite.
func (g Geometry) Validate() error {
	if g.PaddlesPerSide <= 0 {
		return fmt.Errorf("%w: paddles per side must be > 0, got %d", ErrInvalidConfig, g.PaddlesPerSide)
	}
	if math.IsNaN(g.HalfSpan) || math.IsInf(g.HalfSpan, 0) || g.HalfSpan <= 0 {
		return fmt.Errorf("%w: half span must be a finite value > 0, got %v", ErrInvalidConfig, g.HalfSpan)
	}
	if p := g.Pitch(); p <= 0 || math.IsInf(p, 0) {
		return fmt.Errorf("%w: degenerate paddle pitch %v", ErrInvalidConfig, p)
	}
	return nil
}

// Pitch is the width of one paddle in meters.
func (g Geometry) Pitch() float64 {
	return g.HalfSpan / float64(g.PaddlesPerSide)
}

// PaddlesPerLayer is the paddle count over both sides.
func (g Geometry) PaddlesPerLayer() int {
	return 2 * g.PaddlesPerSide
}

// CenterX is the checked form of PaddleCenterX. An out-of-range side or
// paddle index is an error; it is never clamped.
func (g Geometry) CenterX(side Side, paddle int) (float64, error) {
	if !side.Valid() {
		return 0, fmt.Errorf("invalid side %d", int(side))
	}
	if paddle < 0 || paddle >= g.PaddlesPerSide {
		return 0, fmt.Errorf("paddle index %d out of range [0, %d)", paddle, g.PaddlesPerSide)
	}
	return PaddleCenterX(side, paddle, g.HalfSpan, g.PaddlesPerSide), nil
}

// Centers returns the center x of every paddle on one side, ordered by
// paddle index.
func (g Geometry) Centers(side Side) []float64 {
	xs := make([]float64, g.PaddlesPerSide)
	for i := range xs {
		xs[i] = PaddleCenterX(side, i, g.HalfSpan, g.PaddlesPerSide)
	}
	return xs
}

// PaddleCenterX maps (side, paddle) to the x-coordinate of the paddle center.
// Centers sit half a pitch in from the paddle edges, so |x| is strictly
// inside (0, halfSpan). Inputs are not checked; see Geometry.CenterX.
func PaddleCenterX(side Side, paddle int, halfSpan float64, paddlesPerSide int) float64 {
	pitch := halfSpan / float64(paddlesPerSide)
	local := (float64(paddle) + 0.5) * pitch
	return float64(side) * local
}
