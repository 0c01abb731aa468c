package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/philipparndt/meshcut/internal/config"
	"github.com/philipparndt/meshcut/internal/cutter"
	"github.com/philipparndt/meshcut/pkg/geometry"
	"github.com/philipparndt/meshcut/pkg/kernel"
	"github.com/philipparndt/meshcut/pkg/kernel/native"
	"github.com/philipparndt/meshcut/pkg/meshio"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	curveFile   string
	invertCut   bool
	keepLargest bool
	outputFile  string
)

var cutCmd = &cobra.Command{
	Use:   "cut <file>",
	Short: "Cut a mesh along a saved curve",
	Long: `Cut a mesh along a closed curve read from a file and save the result.

The curve file is a JSON or YAML list of [x, y, z] points in drawing order.
Without --output the result is saved next to the working directory with an
_edited suffix, the same way the s key does in the editor.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		points, err := readCurve(curveFile)
		if err != nil {
			return err
		}
		saved, err := runCut(cutRequest{
			File:    args[0],
			Points:  points,
			Invert:  invertCut,
			Largest: keepLargest,
			Output:  outputFile,
		}, cfg, native.New())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved to %s\n", saved)
		return nil
	},
}

func init() {
	cutCmd.Flags().StringVar(&curveFile, "curve", "", "curve points file (JSON or YAML)")
	cutCmd.Flags().BoolVar(&invertCut, "invert", false, "keep the outside of the curve")
	cutCmd.Flags().BoolVar(&keepLargest, "largest", false, "keep only the largest connected region after the cut")
	cutCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file, format by extension")
	cutCmd.MarkFlagRequired("curve")
	rootCmd.AddCommand(cutCmd)
}

type cutRequest struct {
	File    string
	Points  []geometry.Vector3
	Invert  bool
	Largest bool
	Output  string
}

// runCut replays a curve through a cutter session and saves the result. It
// returns the path written.
func runCut(req cutRequest, cfg *config.Config, k kernel.Kernel) (string, error) {
	m, err := meshio.Load(req.File)
	if err != nil {
		return "", err
	}

	session, err := cutter.NewSession(m, k, cutter.Options{
		Splined:   cfg.Splined,
		Tolerance: cfg.Tolerance,
		OutputDir: cfg.OutputDir,
		Logger:    logger,
	})
	if err != nil {
		return "", err
	}
	defer session.Close()

	session.SetPoints(req.Points)
	key := cutter.KeyCut
	if req.Invert {
		key = cutter.KeyCutInvert
	}
	if _, err := session.Handle(cutter.Press(key)); err != nil {
		return "", err
	}
	if _, ok := session.Previous(); !ok {
		return "", fmt.Errorf("curve with %d points did not cut %s", len(req.Points), req.File)
	}

	if req.Largest {
		if _, err := session.Handle(cutter.Press(cutter.KeyLargest)); err != nil {
			return "", err
		}
	}

	if req.Output != "" {
		if err := k.Write(session.Target(), req.Output); err != nil {
			return "", fmt.Errorf("save mesh to %s: %w", req.Output, err)
		}
		return req.Output, nil
	}

	effects, err := session.Handle(cutter.Press(cutter.KeySave))
	if err != nil {
		return "", err
	}
	return effects.SavedTo, nil
}

// readCurve reads a list of [x, y, z] points. JSON input parses as YAML.
func readCurve(path string) ([]geometry.Vector3, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open curve: %w", err)
	}
	defer f.Close()
	return decodeCurve(f)
}

func decodeCurve(r io.Reader) ([]geometry.Vector3, error) {
	var raw [][]float64
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("curve file is empty")
		}
		return nil, fmt.Errorf("parse curve: %w", err)
	}

	points := make([]geometry.Vector3, 0, len(raw))
	for i, p := range raw {
		if len(p) != 3 {
			return nil, fmt.Errorf("curve point %d has %d coordinates, expected 3", i, len(p))
		}
		points = append(points, geometry.NewVector3(p[0], p[1], p[2]))
	}
	return points, nil
}
