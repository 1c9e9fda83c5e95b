package sim

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNearest_Examples(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		x      float64
		want   float64
	}{
		{"closer lower neighbor", []float64{-1.0, -0.2, 0.5, 1.3}, 0.1, -0.2},
		{"closer upper neighbor", []float64{-1.0, -0.2, 0.5, 1.3}, 0.4, 0.5},
		{"below minimum", []float64{0.0, 1.0}, -5.0, 0.0},
		{"above maximum", []float64{0.0, 1.0}, 5.0, 1.0},
		{"exact hit", []float64{0.0, 1.0, 2.0}, 1.0, 1.0},
		{"tie goes low", []float64{0.0, 1.0}, 0.5, 0.0},
		{"single candidate", []float64{0.7}, -3, 0.7},
		{"duplicates", []float64{0.25, 0.25, 0.75}, 0.3, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Nearest(tt.sorted, tt.x))
		})
	}
}

func TestNearest_EmptyPanics(t *testing.T) {
	assert.Panics(t, func() { Nearest(nil, 0) })
	assert.Panics(t, func() { NearestIndex([]float64{}, 1) })
}

func TestNearest_MatchesBruteForce(t *testing.T) {
	// GIVEN random sorted candidate lists built from paddle centers,
	// where ties between neighbors are common
	rng := rand.New(rand.NewSource(7))
	g := Geometry{HalfSpan: 1, PaddlesPerSide: 16}
	gen := NewHitGenerator(g, rng)

	for trial := 0; trial < 500; trial++ {
		xs := gen.Fill(nil, 1+rng.Intn(20))
		sort.Float64s(xs)
		q := rng.Float64()*3 - 1.5

		got := Nearest(xs, q)

		// THEN got is a member with minimal distance, lowest among ties
		best := xs[0]
		for _, c := range xs[1:] {
			if math.Abs(c-q) < math.Abs(best-q) {
				best = c
			}
		}
		if got != best {
			t.Fatalf("trial %d: Nearest(%v, %v) = %v, want %v", trial, xs, q, got, best)
		}
	}
}

func TestNearest_Idempotent(t *testing.T) {
	xs := []float64{-1.2, -0.4, 0.0, 0.9}
	first := Nearest(xs, 0.45)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Nearest(xs, 0.45))
	}
	assert.Equal(t, []float64{-1.2, -0.4, 0.0, 0.9}, xs, "lookup must not modify its input")
}

func BenchmarkNearest(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	gen := NewHitGenerator(DefaultGeometry(), rng)
	xs := gen.Fill(nil, DefaultNL2)
	sort.Float64s(xs)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Nearest(xs, float64(i%3361)/1000-1.68)
	}
}
