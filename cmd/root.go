package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/cdet-sim/cdet-sim/sim"
)

var (
	// CLI flags for the run
	seed       uint64 // Seed for hit generation; unset = pick from the clock
	nEvents    int    // Number of simulated events
	nL1        int    // Layer-1 hits per event
	nL2        int    // Layer-2 hits per event
	workers    int    // Concurrent event workers (0 = GOMAXPROCS)
	keepPairs  bool   // Keep every match pair in the report
	configPath string // Optional YAML run config
	output     string // Output format (text, yaml, json)
	logLevel   string // Log verbosity level

	// CLI flags for layer geometry and binning
	paddlesPerSide int     // Paddles on each side of a layer
	halfSpan       float64 // Layer half span in meters
	xyBins         int     // Bins per axis of the x_L1 vs x_L2 histogram
	dxBins         int     // Bins of the x_L1 - x_L2 histogram
	dxRange        float64 // x_L1 - x_L2 histogram covers [-dxRange, +dxRange]
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "cdet-sim",
	Short: "Monte Carlo of nearest-x hit matching between two CDet layers",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate events and report nearest-x match distributions",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		cfg, err := resolveRunConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := runSimulation(cmd.Context(), cfg, output, cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// geometryCmd prints every paddle center of one layer
var geometryCmd = &cobra.Command{
	Use:   "geometry",
	Short: "Print the x position of every paddle center",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		geom := sim.Geometry{HalfSpan: halfSpan, PaddlesPerSide: paddlesPerSide}
		if err := writeGeometry(cmd.OutOrStdout(), output, geom); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

func setLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// resolveRunConfig layers the run config: built-in defaults, then the YAML
// file given by --config, then any flag set explicitly on the command line.
func resolveRunConfig(cmd *cobra.Command) (sim.Config, error) {
	cfg := sim.DefaultConfig()
	if configPath != "" {
		loaded, err := sim.LoadConfig(configPath, cfg)
		if err != nil {
			return sim.Config{}, err
		}
		logrus.Infof("Loaded run config from %s", configPath)
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		s := seed
		cfg.Seed = &s
	}
	if flags.Changed("nevents") {
		cfg.NEvents = nEvents
	}
	if flags.Changed("nl1") {
		cfg.NL1 = nL1
	}
	if flags.Changed("nl2") {
		cfg.NL2 = nL2
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("keep-pairs") {
		cfg.KeepPairs = keepPairs
	}
	if flags.Changed("paddles-per-side") {
		cfg.Geometry.PaddlesPerSide = paddlesPerSide
	}
	if flags.Changed("half-span") {
		cfg.Geometry.HalfSpan = halfSpan
	}
	if flags.Changed("xy-bins") {
		cfg.Histograms.XYBins = xyBins
	}
	if flags.Changed("dx-bins") {
		cfg.Histograms.DXBins = dxBins
	}
	if flags.Changed("dx-range") {
		cfg.Histograms.DXRange = dxRange
	}
	return cfg, nil
}

// runSimulation validates cfg, runs it and writes the result in the given format.
func runSimulation(ctx context.Context, cfg sim.Config, format string, w io.Writer) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := sim.NewSimulator(cfg)
	if err != nil {
		return err
	}
	if cfg.Seed == nil {
		logrus.Infof("No seed given, using %d (rerun with --seed %d to reproduce)", s.Key.Seed(), s.Key.Seed())
	}
	if err := s.Run(ctx); err != nil {
		return fmt.Errorf("simulation aborted: %w", err)
	}
	return writeReport(w, format, s)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	defaults := sim.DefaultConfig()

	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&output, "output", formatText, "Output format (text, yaml, json)")
	rootCmd.PersistentFlags().IntVar(&paddlesPerSide, "paddles-per-side", defaults.Geometry.PaddlesPerSide, "Paddles on each side of a layer")
	rootCmd.PersistentFlags().Float64Var(&halfSpan, "half-span", defaults.Geometry.HalfSpan, "Layer half span in meters")

	runCmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for hit generation; when omitted a seed is taken from the clock and logged (0 is a valid seed)")
	runCmd.Flags().IntVar(&nEvents, "nevents", defaults.NEvents, "Number of events to simulate")
	runCmd.Flags().IntVar(&nL1, "nl1", defaults.NL1, "Layer-1 hits per event")
	runCmd.Flags().IntVar(&nL2, "nl2", defaults.NL2, "Layer-2 hits per event")
	runCmd.Flags().IntVar(&workers, "workers", defaults.Workers, "Concurrent event workers (0 = GOMAXPROCS)")
	runCmd.Flags().BoolVar(&keepPairs, "keep-pairs", defaults.KeepPairs, "Include every (x_L1, x_L2) pair in yaml/json output")
	runCmd.Flags().StringVar(&configPath, "config", "", "YAML run config; explicit flags override its values")

	// Histogram binning
	runCmd.Flags().IntVar(&xyBins, "xy-bins", defaults.Histograms.XYBins, "Bins per axis of the x_L1 vs x_L2 histogram")
	runCmd.Flags().IntVar(&dxBins, "dx-bins", defaults.Histograms.DXBins, "Bins of the x_L1 - x_L2 histogram")
	runCmd.Flags().Float64Var(&dxRange, "dx-range", defaults.Histograms.DXRange, "x_L1 - x_L2 histogram covers [-dx-range, +dx-range] meters")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(geometryCmd)
}
