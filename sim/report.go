// sim/report.go
package sim

import (
	"math"

	"go-hep.org/x/hep/hbook"
)

// Hist1DReport is a plain copy of a 1D histogram for external consumers.
type Hist1DReport struct {
	Low       float64   `yaml:"low" json:"low"`
	High      float64   `yaml:"high" json:"high"`
	Edges     []float64 `yaml:"edges" json:"edges"` // len(Counts)+1 bin edges
	Counts    []int64   `yaml:"counts" json:"counts"`
	Underflow int64     `yaml:"underflow" json:"underflow"`
	Overflow  int64     `yaml:"overflow" json:"overflow"`
}

// Hist2DReport is a plain copy of a 2D histogram. Counts[iy][ix] holds the
// bin at the ix-th x interval and iy-th y interval.
type Hist2DReport struct {
	NX     int       `yaml:"nx" json:"nx"`
	NY     int       `yaml:"ny" json:"ny"`
	XLow   float64   `yaml:"x_low" json:"x_low"`
	XHigh  float64   `yaml:"x_high" json:"x_high"`
	YLow   float64   `yaml:"y_low" json:"y_low"`
	YHigh  float64   `yaml:"y_high" json:"y_high"`
	Counts [][]int64 `yaml:"counts" json:"counts"`
}

// Report is everything a run hands to a plotting or analysis consumer.
type Report struct {
	Config  Config       `yaml:"config" json:"config"`
	Summary Summary      `yaml:"summary" json:"summary"`
	XY      Hist2DReport `yaml:"xy" json:"xy"`
	DX      Hist1DReport `yaml:"dx" json:"dx"`
	Pairs   []MatchPair  `yaml:"pairs,omitempty" json:"pairs,omitempty"`
}

// Report snapshots the finished run.
func (s *Simulator) Report() Report {
	cfg := s.Config
	seed := s.Key.Seed()
	cfg.Seed = &seed
	span := cfg.Geometry.HalfSpan
	return Report{
		Config:  cfg,
		Summary: s.Summary(),
		XY:      export2D(s.Metrics.XY, cfg.Histograms.XYBins, -span, span),
		DX:      export1D(s.Metrics.DX, -cfg.Histograms.DXRange, cfg.Histograms.DXRange),
		Pairs:   s.Metrics.Pairs,
	}
}

func export1D(h *hbook.H1D, low, high float64) Hist1DReport {
	bins := h.Binning.Bins
	r := Hist1DReport{
		Low:       low,
		High:      high,
		Edges:     make([]float64, 0, len(bins)+1),
		Counts:    make([]int64, len(bins)),
		Underflow: h.Binning.Outflows[0].Entries(),
		Overflow:  h.Binning.Outflows[1].Entries(),
	}
	for i, b := range bins {
		r.Edges = append(r.Edges, b.XMin())
		r.Counts[i] = b.Entries()
	}
	if len(bins) > 0 {
		r.Edges = append(r.Edges, bins[len(bins)-1].XMax())
	}
	return r
}

// export2D places bins by their lower edges so the result does not depend
// on the histogram's internal bin ordering. Both axes share n and range.
func export2D(h *hbook.H2D, n int, low, high float64) Hist2DReport {
	r := Hist2DReport{
		NX:     n,
		NY:     n,
		XLow:   low,
		XHigh:  high,
		YLow:   low,
		YHigh:  high,
		Counts: make([][]int64, n),
	}
	for iy := range r.Counts {
		r.Counts[iy] = make([]int64, n)
	}
	width := (high - low) / float64(n)
	for _, b := range h.Binning.Bins {
		ix := clampIndex(int(math.Round((b.XMin()-low)/width)), n)
		iy := clampIndex(int(math.Round((b.YMin()-low)/width)), n)
		r.Counts[iy][ix] += b.Entries()
	}
	return r
}

func clampIndex(i, n int) int {
	return max(0, min(i, n-1))
}
