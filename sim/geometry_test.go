package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaddleCenterX_CDetEndPaddles(t *testing.T) {
	// GIVEN the CDet geometry (672 paddles per side over 1.68 m)
	g := DefaultGeometry()

	// WHEN mapping the innermost and outermost right-side paddles
	inner := PaddleCenterX(Right, 0, g.HalfSpan, g.PaddlesPerSide)
	outer := PaddleCenterX(Right, 671, g.HalfSpan, g.PaddlesPerSide)

	// THEN they sit half a pitch from the layer center and edge
	assert.InDelta(t, 0.00125, inner, 1e-12)
	assert.InDelta(t, 1.67875, outer, 1e-12)
	assert.InDelta(t, -0.00125, PaddleCenterX(Left, 0, g.HalfSpan, g.PaddlesPerSide), 1e-12)
}

func TestPaddleCenterX_SignAndMagnitude(t *testing.T) {
	geoms := []Geometry{
		DefaultGeometry(),
		{HalfSpan: 1, PaddlesPerSide: 1},
		{HalfSpan: 0.5, PaddlesPerSide: 7},
	}
	for _, g := range geoms {
		for _, side := range []Side{Left, Right} {
			for p := 0; p < g.PaddlesPerSide; p++ {
				x := PaddleCenterX(side, p, g.HalfSpan, g.PaddlesPerSide)
				if math.Signbit(x) != (side == Left) {
					t.Fatalf("%+v side=%v paddle=%d: x=%v has wrong sign", g, side, p, x)
				}
				if a := math.Abs(x); a <= 0 || a >= g.HalfSpan {
					t.Fatalf("%+v side=%v paddle=%d: |x|=%v not in (0, %v)", g, side, p, a, g.HalfSpan)
				}
			}
		}
	}
}

func TestPaddleCenterX_UniformPitch(t *testing.T) {
	g := DefaultGeometry()
	centers := g.Centers(Right)
	require.Len(t, centers, g.PaddlesPerSide)
	for i := 1; i < len(centers); i++ {
		step := centers[i] - centers[i-1]
		if step <= 0 {
			t.Fatalf("centers not increasing at %d: %v -> %v", i, centers[i-1], centers[i])
		}
		assert.InDelta(t, g.Pitch(), step, 1e-12, "spacing at paddle %d", i)
	}
}

func TestGeometry_CenterX_RejectsOutOfRange(t *testing.T) {
	g := DefaultGeometry()
	tests := []struct {
		name   string
		side   Side
		paddle int
	}{
		{"negative paddle", Right, -1},
		{"paddle past last", Left, g.PaddlesPerSide},
		{"zero side", Side(0), 10},
		{"side two", Side(2), 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.CenterX(tt.side, tt.paddle)
			assert.Error(t, err)
		})
	}

	x, err := g.CenterX(Left, 671)
	require.NoError(t, err)
	assert.InDelta(t, -1.67875, x, 1e-12)
}

func TestGeometry_Validate(t *testing.T) {
	tests := []struct {
		name string
		geom Geometry
		ok   bool
	}{
		{"default", DefaultGeometry(), true},
		{"zero paddles", Geometry{HalfSpan: 1.68, PaddlesPerSide: 0}, false},
		{"negative paddles", Geometry{HalfSpan: 1.68, PaddlesPerSide: -3}, false},
		{"zero span", Geometry{HalfSpan: 0, PaddlesPerSide: 672}, false},
		{"negative span", Geometry{HalfSpan: -1, PaddlesPerSide: 672}, false},
		{"NaN span", Geometry{HalfSpan: math.NaN(), PaddlesPerSide: 672}, false},
		{"infinite span", Geometry{HalfSpan: math.Inf(1), PaddlesPerSide: 672}, false},
		{"underflowing pitch", Geometry{HalfSpan: math.SmallestNonzeroFloat64, PaddlesPerSide: 672}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.geom.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
		})
	}
}

func TestGeometry_PaddlesPerLayer(t *testing.T) {
	assert.Equal(t, 1344, DefaultGeometry().PaddlesPerLayer())
}

func TestSide_String(t *testing.T) {
	assert.Equal(t, "left", Left.String())
	assert.Equal(t, "right", Right.String())
	assert.Equal(t, "side(0)", Side(0).String())
}
