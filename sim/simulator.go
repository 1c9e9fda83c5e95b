// sim/simulator.go
package sim

import (
	"context"
	"errors"
	"runtime"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// eventWindow is the number of events simulated before their results are
// folded into the aggregates. It bounds memory held by pending results.
const eventWindow = 256

// Simulator runs the two-layer nearest-x matching Monte Carlo.
//
// Every event draws from its own stream of the PartitionedRNG and results
// are folded into Metrics in event order, so the aggregates depend only on
// the key and the config, never on the worker count.
type Simulator struct {
	Config  Config
	Key     SimulationKey
	RNG     *PartitionedRNG
	Metrics *Metrics

	workers int
	elapsed time.Duration
	ran     bool
}

// NewSimulator validates cfg and prepares empty aggregates. When cfg.Seed is
// nil the key is drawn from entropy.
func NewSimulator(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	key := NewEntropyKey()
	if cfg.Seed != nil {
		key = NewSimulationKey(*cfg.Seed)
	}
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Simulator{
		Config:  cfg,
		Key:     key,
		RNG:     NewPartitionedRNG(key),
		Metrics: NewMetrics(cfg),
		workers: workers,
	}, nil
}

// SimulateEvent generates event i and matches every Layer-1 hit to its
// nearest Layer-2 hit. It does not touch the aggregates and may be called
// concurrently.
func (s *Simulator) SimulateEvent(i int) []MatchPair {
	gen := NewHitGenerator(s.Config.Geometry, s.RNG.ForEvent(i))
	x1 := gen.Fill(make([]float64, 0, s.Config.NL1), s.Config.NL1)
	x2 := gen.Fill(make([]float64, 0, s.Config.NL2), s.Config.NL2)
	sort.Float64s(x2)

	pairs := make([]MatchPair, len(x1))
	for j, x := range x1 {
		pairs[j] = MatchPair{XL1: x, XL2: Nearest(x2, x)}
	}
	return pairs
}

// Run simulates all events and fills Metrics. It checks ctx between event
// windows and returns ctx.Err() if cancelled; Metrics then hold only the
// windows completed so far. A Simulator runs once.
func (s *Simulator) Run(ctx context.Context) error {
	if s.ran {
		return errors.New("simulator already ran")
	}
	s.ran = true

	start := time.Now()
	defer func() { s.elapsed = time.Since(start) }()

	logrus.Infof("Simulating %d events (L1=%d, L2=%d hits) with seed %d on %d worker(s)",
		s.Config.NEvents, s.Config.NL1, s.Config.NL2, s.Key.Seed(), s.workers)

	results := make([][]MatchPair, min(eventWindow, s.Config.NEvents))
	for first := 0; first < s.Config.NEvents; first += eventWindow {
		if err := ctx.Err(); err != nil {
			return err
		}
		last := min(first+eventWindow, s.Config.NEvents)
		window := results[:last-first]
		s.simulateWindow(first, window)
		for _, pairs := range window {
			s.Metrics.addEvent(pairs)
		}
		clear(window)
		logrus.Debugf("events [%d, %d) folded, %d pairs so far", first, last, s.Metrics.MatchedPairs)
	}
	return nil
}

// simulateWindow fills out[k] with the pairs of event first+k.
func (s *Simulator) simulateWindow(first int, out [][]MatchPair) {
	if s.workers == 1 {
		for k := range out {
			out[k] = s.SimulateEvent(first + k)
		}
		return
	}
	var g errgroup.Group
	g.SetLimit(s.workers)
	for k := range out {
		k := k
		g.Go(func() error {
			out[k] = s.SimulateEvent(first + k)
			return nil
		})
	}
	_ = g.Wait() // events never fail
}

// Elapsed is the wall time of the last Run.
func (s *Simulator) Elapsed() time.Duration {
	return s.elapsed
}

// Summary summarizes the aggregates collected by Run.
func (s *Simulator) Summary() Summary {
	return s.Metrics.Summarize(s.Config, s.Key, s.elapsed)
}
