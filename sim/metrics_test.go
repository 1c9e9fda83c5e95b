package sim

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.NEvents = 20
	cfg.NL1 = 50
	cfg.NL2 = 25
	seed := uint64(42)
	cfg.Seed = &seed
	return cfg
}

func TestMetrics_AddEvent_CountsAndOutflows(t *testing.T) {
	cfg := smallConfig()
	m := NewMetrics(cfg)

	pitch := cfg.Geometry.Pitch()
	m.addEvent([]MatchPair{
		{XL1: 0.5, XL2: 0.5},         // same paddle, dx = 0
		{XL1: 0.5 + pitch, XL2: 0.5}, // neighboring paddle
		{XL1: 1.0, XL2: -1.0},        // dx = 2.0, overflow
		{XL1: -1.2, XL2: 0.3},        // dx = -1.5, underflow
	})

	assert.Equal(t, int64(4), m.MatchedPairs)
	assert.Equal(t, int64(4), m.XYInRange(), "joint histogram covers the full layer span")
	assert.Equal(t, int64(2), m.DXInRange())
	assert.Equal(t, int64(1), m.DXOverflow())
	assert.Equal(t, int64(1), m.DXUnderflow())
	require.Len(t, m.SamePaddleFractions, 1)
	assert.InDelta(t, 0.25, m.SamePaddleFractions[0], 1e-12)
	assert.Nil(t, m.Pairs, "pairs are not kept by default")
}

func TestMetrics_KeepPairs(t *testing.T) {
	cfg := smallConfig()
	cfg.KeepPairs = true
	m := NewMetrics(cfg)

	pairs := []MatchPair{{XL1: 0.1, XL2: 0.2}, {XL1: -0.3, XL2: -0.3}}
	m.addEvent(pairs)
	m.addEvent(pairs[:1])

	assert.Equal(t, []MatchPair{{0.1, 0.2}, {-0.3, -0.3}, {0.1, 0.2}}, m.Pairs)
}

func TestMetrics_SamePaddleStats(t *testing.T) {
	m := NewMetrics(smallConfig())

	mean, sd := m.SamePaddleStats()
	assert.Zero(t, mean)
	assert.Zero(t, sd)

	m.SamePaddleFractions = []float64{0.5}
	mean, sd = m.SamePaddleStats()
	assert.Equal(t, 0.5, mean)
	assert.Zero(t, sd)

	m.SamePaddleFractions = []float64{0.2, 0.4, 0.6}
	mean, sd = m.SamePaddleStats()
	assert.InDelta(t, 0.4, mean, 1e-12)
	assert.InDelta(t, 0.2, sd, 1e-12) // unbiased sample stddev
}

func TestMatchPair_DX(t *testing.T) {
	assert.InDelta(t, -0.3, MatchPair{XL1: 0.1, XL2: 0.4}.DX(), 1e-12)
}

func TestSummary_Print(t *testing.T) {
	cfg := smallConfig()
	m := NewMetrics(cfg)
	m.addEvent([]MatchPair{{XL1: 0.1, XL2: 0.1}})

	s := m.Summarize(cfg, NewSimulationKey(42), 1500*time.Millisecond)
	var buf bytes.Buffer
	s.Print(&buf)
	out := buf.String()

	assert.Contains(t, out, "CDet Nearest-x Simulation")
	assert.Contains(t, out, "Seed                 : 42")
	assert.Contains(t, out, "Simulated events     : 20")
	assert.Contains(t, out, "L1=50 L2=25")
	assert.Contains(t, out, "Matched pairs        : 1")
	assert.Contains(t, out, "Elapsed              : 1.500 s")
}
