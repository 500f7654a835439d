package main

import (
	"context"
	"fmt"
	"github.com/spf13/cobra"
	"github.com/willbeason/escape-time/pkg/escape"
	"github.com/willbeason/escape-time/pkg/tiles"
	"log/slog"
	"os"
)

func mainCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "escape",
		Short: "Compute escape-time iteration counts for z = z*z + c",
		Args:  cobra.ExactArgs(0),
		PersistentPreRun: func(*cobra.Command, []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			escape.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log scratch buffer and tile activity")

	cmd.AddCommand(lineCmd(), gridCmd(), tilesCmd())

	return cmd
}

func lineCmd() *cobra.Command {
	var (
		xStart, xStep, y float32
		samples, maxIter int32
		out              outputFlags
	)

	cmd := &cobra.Command{
		Use:   "line",
		Short: "Compute one scanline at a constant imaginary part",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(out.format); err != nil {
				return err
			}
			if samples <= 0 {
				return fmt.Errorf("samples must be positive, got %d", samples)
			}
			// At this point usage information has already been printed if obviously incorrect.
			cmd.SilenceUsage = true

			e := escape.NewEvaluator(nil)
			counts := make([]int32, samples)

			h, err := e.ComputeLine(xStart, xStep, y, maxIter, samples, counts, escape.NoHandle)
			if err != nil {
				return err
			}
			if err := e.Release(h); err != nil {
				return err
			}

			return writeCounts(out.out, out.format, Counts{
				Width:   samples,
				Height:  1,
				MaxIter: maxIter,
				Values:  counts,
			})
		},
	}

	flags := cmd.Flags()
	flags.Float32Var(&xStart, "x-start", -2.0, "real part of the first sample")
	flags.Float32Var(&xStep, "x-step", 2.5/DefaultWidth, "real step between samples")
	flags.Float32Var(&y, "y", 0.0, "imaginary part of every sample")
	flags.Int32VarP(&samples, "samples", "n", DefaultWidth, "number of samples")
	flags.Int32Var(&maxIter, "max-iter", DefaultMaxIter, "iteration cap")
	out.register(flags)

	return cmd
}

func gridCmd() *cobra.Command {
	var (
		view viewFlags
		out  outputFlags
	)

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Compute a rectangular grid in one call",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(out.format); err != nil {
				return err
			}
			g, err := view.grid()
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true

			e := escape.NewEvaluator(nil)
			counts := make([]int32, g.Samples())

			h, err := e.ComputeGrid(g.XStart, g.XStep, g.YStart, g.YStep, g.Width, g.Height, view.maxIter, g.Samples(), counts, escape.NoHandle)
			if err != nil {
				return err
			}
			if err := e.Release(h); err != nil {
				return err
			}

			return writeCounts(out.out, out.format, Counts{
				Width:   g.Width,
				Height:  g.Height,
				MaxIter: view.maxIter,
				Values:  counts,
			})
		},
	}

	view.register(cmd.Flags())
	out.register(cmd.Flags())

	return cmd
}

func tilesCmd() *cobra.Command {
	var (
		view latticeFlags
		out  outputFlags
		size int32
	)

	cmd := &cobra.Command{
		Use:   "tiles",
		Short: "Compute a lattice view one tile per call, mirroring tiles across the real axis",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(out.format); err != nil {
				return err
			}
			v, err := view.view()
			if err != nil {
				return err
			}
			if size <= 0 {
				return fmt.Errorf("tile size must be positive, got %d", size)
			}
			cmd.SilenceUsage = true

			e := escape.NewEvaluator(nil)
			counts := make([]int32, v.Samples())

			stats, err := tiles.Render(cmd.Context(), e, v, size, counts)
			if err != nil {
				return err
			}
			escape.Logger().Info("rendered tiles",
				"computed", stats.Computed,
				"mirrored", stats.Mirrored,
				"allocations", e.Allocs())

			return writeCounts(out.out, out.format, Counts{
				Width:   v.Width,
				Height:  v.Height,
				MaxIter: v.MaxIter,
				Values:  counts,
			})
		},
	}

	view.register(cmd.Flags())
	out.register(cmd.Flags())
	cmd.Flags().Int32Var(&size, "tile-size", tiles.Size, "tile edge in samples")

	return cmd
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
