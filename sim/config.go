package sim

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig marks every configuration rejected before a run starts.
var ErrInvalidConfig = errors.New("invalid simulation config")

// Run parameter defaults.
const (
	DefaultNEvents = 1000
	DefaultNL1     = 500
	DefaultNL2     = 250
	DefaultXYBins  = 240
	DefaultDXBins  = 200
	DefaultDXRange = 0.25 // meters
)

// HistogramConfig groups the binning of the aggregate distributions.
type HistogramConfig struct {
	// XYBins is the bin count per axis of the joint histogram over [-halfSpan, +halfSpan].
	XYBins int `yaml:"xy_bins" json:"xy_bins"`
	// DXBins is the bin count of the difference histogram.
	DXBins int `yaml:"dx_bins" json:"dx_bins"`
	// DXRange bounds the difference histogram to [-DXRange, +DXRange] meters.
	// Differences outside it land in the under/overflow, not in a bin.
	DXRange float64 `yaml:"dx_range_m" json:"dx_range_m"`
}

// Config holds everything a Simulator needs for one run.
type Config struct {
	Geometry Geometry `yaml:"geometry" json:"geometry"`

	NEvents int `yaml:"nevents" json:"nevents"` // number of events (must be > 0)
	NL1     int `yaml:"nl1" json:"nl1"`         // Layer-1 hits per event (must be > 0)
	NL2     int `yaml:"nl2" json:"nl2"`         // Layer-2 hits per event (must be > 0)

	// Seed selects the random streams. nil picks a seed from entropy;
	// every non-nil value, 0 included, is reproducible.
	Seed *uint64 `yaml:"seed" json:"seed,omitempty"`

	Histograms HistogramConfig `yaml:"histograms" json:"histograms"`

	// Workers bounds the number of events simulated concurrently. 0 means GOMAXPROCS.
	Workers int `yaml:"workers" json:"workers"`
	// KeepPairs retains every match pair in the Result.
	KeepPairs bool `yaml:"keep_pairs" json:"keep_pairs"`
}

// DefaultConfig returns the CDet run configuration with an unset seed.
func DefaultConfig() Config {
	return Config{
		Geometry: DefaultGeometry(),
		NEvents:  DefaultNEvents,
		NL1:      DefaultNL1,
		NL2:      DefaultNL2,
		Histograms: HistogramConfig{
			XYBins:  DefaultXYBins,
			DXBins:  DefaultDXBins,
			DXRange: DefaultDXRange,
		},
		Workers: 1,
	}
}

// Validate rejects configurations that cannot be simulated.
// A run with no Layer-2 hits has nothing to match against and is rejected
// here rather than reported per hit.
func (c Config) Validate() error {
	if err := c.Geometry.Validate(); err != nil {
		return err
	}
	if c.NEvents <= 0 {
		return fmt.Errorf("%w: nevents must be > 0, got %d", ErrInvalidConfig, c.NEvents)
	}
	if c.NL1 <= 0 {
		return fmt.Errorf("%w: nl1 must be > 0, got %d", ErrInvalidConfig, c.NL1)
	}
	if c.NL2 <= 0 {
		return fmt.Errorf("%w: nl2 must be > 0, got %d (no Layer-2 hits to match against)", ErrInvalidConfig, c.NL2)
	}
	h := c.Histograms
	if h.XYBins <= 0 {
		return fmt.Errorf("%w: xy bins must be > 0, got %d", ErrInvalidConfig, h.XYBins)
	}
	if h.DXBins <= 0 {
		return fmt.Errorf("%w: dx bins must be > 0, got %d", ErrInvalidConfig, h.DXBins)
	}
	if math.IsNaN(h.DXRange) || math.IsInf(h.DXRange, 0) || h.DXRange <= 0 {
		return fmt.Errorf("%w: dx range must be a finite value > 0, got %v", ErrInvalidConfig, h.DXRange)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}

// TotalPairs is the number of match pairs a complete run produces.
func (c Config) TotalPairs() int64 {
	return int64(c.NEvents) * int64(c.NL1)
}
