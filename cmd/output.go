package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	sim "github.com/cdet-sim/cdet-sim/sim"
)

const (
	formatText = "text"
	formatYAML = "yaml"
	formatJSON = "json"
)

func checkFormat(format string) error {
	switch format {
	case formatText, formatYAML, formatJSON:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want text, yaml or json)", format)
}

// writeReport writes the finished run. Text is the human summary; yaml and
// json carry the full report with histogram bins for plotting tools.
func writeReport(w io.Writer, format string, s *sim.Simulator) error {
	switch format {
	case formatText:
		s.Summary().Print(w)
		return nil
	case formatYAML:
		return encodeYAML(w, s.Report())
	case formatJSON:
		return encodeJSON(w, s.Report())
	}
	return checkFormat(format)
}

// PaddleCenter is one row of the geometry listing.
type PaddleCenter struct {
	Side   string  `yaml:"side" json:"side"`
	Paddle int     `yaml:"paddle" json:"paddle"`
	X      float64 `yaml:"x_m" json:"x_m"`
}

// GeometryListing is the yaml/json form of the geometry command output.
type GeometryListing struct {
	Geometry sim.Geometry   `yaml:"geometry" json:"geometry"`
	PitchM   float64        `yaml:"pitch_m" json:"pitch_m"`
	Paddles  []PaddleCenter `yaml:"paddles" json:"paddles"`
}

func listPaddles(geom sim.Geometry) GeometryListing {
	l := GeometryListing{
		Geometry: geom,
		PitchM:   geom.Pitch(),
		Paddles:  make([]PaddleCenter, 0, geom.PaddlesPerLayer()),
	}
	for _, side := range []sim.Side{sim.Left, sim.Right} {
		for i, x := range geom.Centers(side) {
			l.Paddles = append(l.Paddles, PaddleCenter{Side: side.String(), Paddle: i, X: x})
		}
	}
	return l
}

// writeGeometry lists every paddle center of geom, left side first.
func writeGeometry(w io.Writer, format string, geom sim.Geometry) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if err := geom.Validate(); err != nil {
		return err
	}
	l := listPaddles(geom)
	switch format {
	case formatYAML:
		return encodeYAML(w, l)
	case formatJSON:
		return encodeJSON(w, l)
	}
	fmt.Fprintf(w, "# %d paddles per side, half span %.4f m, pitch %.6f m\n",
		geom.PaddlesPerSide, geom.HalfSpan, l.PitchM)
	fmt.Fprintln(w, "# side paddle x_m")
	for _, p := range l.Paddles {
		fmt.Fprintf(w, "%-5s %4d %+.6f\n", p.Side, p.Paddle, p.X)
	}
	return nil
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding yaml output: %w", err)
	}
	return enc.Close()
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json output: %w", err)
	}
	return nil
}
