// Tracks run-wide match statistics: the joint (x_L1, x_L2) histogram, the
// x_L1 - x_L2 histogram and per-event same-paddle match fractions.

package sim

import (
	"fmt"
	"io"
	"math"
	"time"

	"go-hep.org/x/hep/hbook"
	"gonum.org/v1/gonum/stat"
)

// MatchPair associates a Layer-1 hit with its nearest Layer-2 hit.
type MatchPair struct {
	XL1 float64 `yaml:"x_l1" json:"x_l1"`
	XL2 float64 `yaml:"x_l2" json:"x_l2"`
}

// DX is x_L1 - x_L2.
func (p MatchPair) DX() float64 {
	return p.XL1 - p.XL2
}

// Metrics aggregates match results over all events of a run.
// Filled once per match pair by the Simulator, read-only afterwards.
type Metrics struct {
	XY *hbook.H2D // x_L1 vs x_L2 over [-halfSpan, +halfSpan] on both axes
	DX *hbook.H1D // x_L1 - x_L2 over [-dxRange, +dxRange]

	MatchedPairs int64 // one per Layer-1 hit per event

	// SamePaddleFractions holds, per event, the fraction of Layer-1 hits
	// whose nearest Layer-2 hit is on the same paddle.
	SamePaddleFractions []float64

	// Pairs is only populated when Config.KeepPairs is set.
	Pairs []MatchPair

	halfPitch float64
	keepPairs bool
}

// NewMetrics creates empty aggregates binned according to cfg.
func NewMetrics(cfg Config) *Metrics {
	h := cfg.Histograms
	span := cfg.Geometry.HalfSpan
	return &Metrics{
		XY:                  hbook.NewH2D(h.XYBins, -span, span, h.XYBins, -span, span),
		DX:                  hbook.NewH1D(h.DXBins, -h.DXRange, h.DXRange),
		SamePaddleFractions: make([]float64, 0, cfg.NEvents),
		halfPitch:           cfg.Geometry.Pitch() / 2,
		keepPairs:           cfg.KeepPairs,
	}
}

// addEvent folds one event's match pairs into the aggregates.
func (m *Metrics) addEvent(pairs []MatchPair) {
	same := 0
	for _, p := range pairs {
		dx := p.DX()
		m.XY.Fill(p.XL1, p.XL2, 1)
		m.DX.Fill(dx, 1)
		if math.Abs(dx) < m.halfPitch {
			same++
		}
	}
	m.MatchedPairs += int64(len(pairs))
	if len(pairs) > 0 {
		m.SamePaddleFractions = append(m.SamePaddleFractions, float64(same)/float64(len(pairs)))
	}
	if m.keepPairs {
		m.Pairs = append(m.Pairs, pairs...)
	}
}

// XYInRange is the number of pairs counted in the bins of the joint histogram.
func (m *Metrics) XYInRange() int64 {
	var n int64
	for _, b := range m.XY.Binning.Bins {
		n += b.Entries()
	}
	return n
}

// DXInRange is the number of differences counted in the bins of the
// difference histogram. Differences beyond the range are not clipped into
// the edge bins.
func (m *Metrics) DXInRange() int64 {
	var n int64
	for _, b := range m.DX.Binning.Bins {
		n += b.Entries()
	}
	return n
}

// DXUnderflow and DXOverflow count differences below and above the range.
func (m *Metrics) DXUnderflow() int64 { return m.DX.Binning.Outflows[0].Entries() }
func (m *Metrics) DXOverflow() int64  { return m.DX.Binning.Outflows[1].Entries() }

// SamePaddleStats returns the mean and standard deviation over events of
// the same-paddle match fraction.
func (m *Metrics) SamePaddleStats() (mean, stdDev float64) {
	switch len(m.SamePaddleFractions) {
	case 0:
		return 0, 0
	case 1:
		return m.SamePaddleFractions[0], 0
	}
	return stat.MeanStdDev(m.SamePaddleFractions, nil)
}

// Summary condenses Metrics into the figures printed at the end of a run.
type Summary struct {
	Seed             uint64  `yaml:"seed" json:"seed"`
	Events           int     `yaml:"events" json:"events"`
	HitsL1           int     `yaml:"hits_l1" json:"hits_l1"`
	HitsL2           int     `yaml:"hits_l2" json:"hits_l2"`
	MatchedPairs     int64   `yaml:"matched_pairs" json:"matched_pairs"`
	DXInRange        int64   `yaml:"dx_in_range" json:"dx_in_range"`
	DXUnderflow      int64   `yaml:"dx_underflow" json:"dx_underflow"`
	DXOverflow       int64   `yaml:"dx_overflow" json:"dx_overflow"`
	DXMean           float64 `yaml:"dx_mean_m" json:"dx_mean_m"`
	DXRMS            float64 `yaml:"dx_rms_m" json:"dx_rms_m"`
	SamePaddleMean   float64 `yaml:"same_paddle_fraction_mean" json:"same_paddle_fraction_mean"`
	SamePaddleStdDev float64 `yaml:"same_paddle_fraction_stddev" json:"same_paddle_fraction_stddev"`
	ElapsedSeconds   float64 `yaml:"elapsed_s" json:"elapsed_s"`
}

// Summarize computes the run summary. DX mean and RMS are the difference
// histogram's own moments and are left zero when no difference fell in range.
func (m *Metrics) Summarize(cfg Config, key SimulationKey, elapsed time.Duration) Summary {
	s := Summary{
		Seed:           key.Seed(),
		Events:         cfg.NEvents,
		HitsL1:         cfg.NL1,
		HitsL2:         cfg.NL2,
		MatchedPairs:   m.MatchedPairs,
		DXInRange:      m.DXInRange(),
		DXUnderflow:    m.DXUnderflow(),
		DXOverflow:     m.DXOverflow(),
		ElapsedSeconds: elapsed.Seconds(),
	}
	if s.DXInRange > 0 {
		s.DXMean = m.DX.XMean()
		s.DXRMS = m.DX.XRMS()
	}
	s.SamePaddleMean, s.SamePaddleStdDev = m.SamePaddleStats()
	return s
}

// Print writes a human-readable summary of the run to w.
func (s Summary) Print(w io.Writer) {
	fmt.Fprintln(w, "=== CDet Nearest-x Simulation ===")
	fmt.Fprintf(w, "Seed                 : %d\n", s.Seed)
	fmt.Fprintf(w, "Simulated events     : %d\n", s.Events)
	fmt.Fprintf(w, "Hits per event       : L1=%d L2=%d\n", s.HitsL1, s.HitsL2)
	fmt.Fprintf(w, "Matched pairs        : %d\n", s.MatchedPairs)
	fmt.Fprintf(w, "Delta-x in range     : %d (underflow %d, overflow %d)\n", s.DXInRange, s.DXUnderflow, s.DXOverflow)
	if s.DXInRange > 0 {
		fmt.Fprintf(w, "Delta-x mean         : %.6f m\n", s.DXMean)
		fmt.Fprintf(w, "Delta-x RMS          : %.6f m\n", s.DXRMS)
	}
	fmt.Fprintf(w, "Same-paddle matches  : %.4f +/- %.4f per event\n", s.SamePaddleMean, s.SamePaddleStdDev)
	fmt.Fprintf(w, "Elapsed              : %.3f s\n", s.ElapsedSeconds)
}
