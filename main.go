// optrace traces collimated ray bundles through sequential optical systems
// of spherical and plane refracting surfaces and reports where they land.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/df07/go-optical-raytracer/pkg/analysis"
	"github.com/df07/go-optical-raytracer/pkg/beam"
	"github.com/df07/go-optical-raytracer/pkg/core"
	"github.com/df07/go-optical-raytracer/pkg/export"
	"github.com/df07/go-optical-raytracer/pkg/optics"
	"github.com/df07/go-optical-raytracer/pkg/scene"
	"github.com/df07/go-optical-raytracer/pkg/tracer"
)

var version = "dev"

var (
	sceneRef   string
	numWorkers int
	quiet      bool
)

func main() {
	root := &cobra.Command{
		Use:   "optrace",
		Short: "Sequential optical ray tracer",
		Long: `optrace propagates bundles of rays through an ordered list of spherical
and plane refracting surfaces ending in an output plane.

Scenes are either built in (see "optrace scenes") or JSON system files:

  {"name": "lens",
   "elements": [{"type": "spherical", "z0": 100, "curvature": 0.03,
                 "n1": 1, "n2": 1.5, "aperture": 30},
                {"type": "output", "z0": 250}],
   "beam": {"rings": 5, "radius": 10, "z": 0}}`,
		Version:      version,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&sceneRef, "scene", "s", "single-surface", "built-in scene ID, file:<name> or path to a JSON system")
	root.PersistentFlags().IntVar(&numWorkers, "workers", 0, "number of parallel workers (0 = CPU count)")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")

	root.AddCommand(
		traceCmd(),
		spotCmd(),
		focusCmd(),
		scenesCmd(),
	)

	if err := fang.Execute(context.Background(), root); err != nil {
		os.Exit(1)
	}
}

// createScene resolves a scene reference given on the command line
func createScene(ref string) (*scene.Scene, error) {
	if ref == "" {
		return nil, fmt.Errorf("no scene given")
	}
	return scene.Load(ref)
}

func newLogger(cmd *cobra.Command) core.Logger {
	if quiet {
		return core.NopLogger{}
	}
	return core.NewWriterLogger(cmd.ErrOrStderr())
}

// traceScene traces a fresh copy of the scene's beam
func traceScene(ctx context.Context, s *scene.Scene, workers int, logger core.Logger) ([]*core.Ray, tracer.TraceStats, error) {
	rays, err := s.Beam.Rays()
	if err != nil {
		return nil, tracer.TraceStats{}, err
	}

	logger.Printf("Scene %s: %s\n", s.Name, s.System)
	bt := tracer.NewBatchTracer(s.System, tracer.BatchConfig{NumWorkers: workers, ChunkSize: tracer.DefaultBatchConfig().ChunkSize}, logger)
	_, stats, err := bt.TraceAll(ctx, rays)
	if err != nil {
		return nil, stats, err
	}
	return rays, stats, nil
}

func traceCmd() *cobra.Command {
	var format string
	var outPath string

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Trace the scene's beam and export every ray's vertices",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			s, err := createScene(sceneRef)
			if err != nil {
				return err
			}

			var out io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				file, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				defer file.Close()
				out = file
			}

			logger := newLogger(cmd)
			if err := runTrace(ctx, out, s, f, numWorkers, logger); err != nil {
				return err
			}
			if outPath != "" {
				logger.Printf("Rays saved as %s\n", outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "output format: csv or json")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	return cmd
}

func runTrace(ctx context.Context, w io.Writer, s *scene.Scene, format export.Format, workers int, logger core.Logger) error {
	rays, _, err := traceScene(ctx, s, workers, logger)
	if err != nil {
		return err
	}
	return export.Write(w, format, rays)
}

func spotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "spot",
		Short: "Report the spot size at the output plane",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			s, err := createScene(sceneRef)
			if err != nil {
				return err
			}
			return runSpot(ctx, cmd.OutOrStdout(), s, numWorkers, newLogger(cmd))
		},
	}
}

func runSpot(ctx context.Context, w io.Writer, s *scene.Scene, workers int, logger core.Logger) error {
	rays, stats, err := traceScene(ctx, s, workers, logger)
	if err != nil {
		return err
	}

	if detector, ok := s.Detector(); ok {
		fmt.Fprintf(w, "Detector:        z = %g\n", detector.Z0())
	}
	fmt.Fprintf(w, "Rays:            %d traced, %d reached the end (%.1f%%)\n",
		stats.TotalRays, stats.Advanced, 100*stats.SurvivalRate())
	if stats.Terminated() > 0 {
		fmt.Fprintf(w, "Terminated:      %d missed a surface, %d totally internally reflected\n",
			stats.NoIntercept, stats.TotalInternalReflection)
	}

	spot := analysis.SpotOf(rays)
	centroid, err := spot.Centroid()
	if err != nil {
		return err
	}
	rmsAxis, _ := spot.RMSRadius()
	rmsCentroid, _ := spot.RMSRadiusAboutCentroid()
	maxRadius, _ := spot.MaxRadius()

	fmt.Fprintf(w, "Centroid:        (%.6g, %.6g)\n", centroid.X, centroid.Y)
	fmt.Fprintf(w, "RMS radius:      %.6g\n", rmsAxis)
	fmt.Fprintf(w, "RMS (centroid):  %.6g\n", rmsCentroid)
	fmt.Fprintf(w, "Max radius:      %.6g\n", maxRadius)
	return nil
}

func focusCmd() *cobra.Command {
	var radius float64
	var points int

	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Estimate the paraxial focus with a thin ring of near-axis rays",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := createScene(sceneRef)
			if err != nil {
				return err
			}
			return runFocus(cmd.OutOrStdout(), s, points, radius)
		},
	}

	cmd.Flags().Float64Var(&radius, "radius", 0.1, "radius of the probe ring")
	cmd.Flags().IntVar(&points, "points", 11, "rays on the probe ring")
	return cmd
}

func runFocus(w io.Writer, s *scene.Scene, points int, radius float64) error {
	rays, err := beam.Circle(points, radius, s.Beam.Z, core.NewVec3(0, 0, 1))
	if err != nil {
		return err
	}
	s.System.TraceAll(rays)

	z, err := analysis.ParaxialFocus(rays)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Paraxial focus (traced):   z = %.6f\n", z)

	// a lone spherical surface has a closed-form focus to compare against
	elements := s.System.Elements()
	if len(elements) == 2 {
		if surface, ok := elements[0].(*optics.SphericalRefraction); ok {
			want, err := analysis.SingleSurfaceFocus(surface.Z0(), surface.Curvature(), surface.N1(), surface.N2())
			if err == nil {
				fmt.Fprintf(w, "Paraxial focus (formula):  z = %.6f\n", want)
			}
		}
	}
	return nil
}

func scenesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenes",
		Short: "List built-in scenes and JSON systems in ./scenes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenes(cmd.OutOrStdout(), scene.ScenesDir(), newLogger(cmd))
		},
	}
}

func runScenes(w io.Writer, dir string, logger core.Logger) error {
	response, err := scene.ListAllScenes(dir, logger)
	if err != nil {
		return err
	}
	for _, group := range response.Groups {
		fmt.Fprintf(w, "%s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Fprintf(w, "  %-18s %s\n", info.ID, info.Description)
		}
	}
	return nil
}
