// sim/hits.go
package sim

import "math/rand"

// HitGenerator draws paddle-center hits uniformly over one layer.
// Side and paddle are drawn independently for every hit.
type HitGenerator struct {
	geom Geometry
	rng  *rand.Rand
}

// NewHitGenerator returns a generator drawing from rng. geom must be valid.
func NewHitGenerator(geom Geometry, rng *rand.Rand) *HitGenerator {
	return &HitGenerator{geom: geom, rng: rng}
}

// Next draws one hit x-coordinate in meters.
func (g *HitGenerator) Next() float64 {
	side := Right
	if g.rng.Float64() < 0.5 {
		side = Left
	}
	paddle := g.rng.Intn(g.geom.PaddlesPerSide)
	return PaddleCenterX(side, paddle, g.geom.HalfSpan, g.geom.PaddlesPerSide)
}

// Fill appends n hits to dst and returns the extended slice.
func (g *HitGenerator) Fill(dst []float64, n int) []float64 {
	for i := 0; i < n; i++ {
		dst = append(dst, g.Next())
	}
	return dst
}
