package main

import (
	"fmt"
	"github.com/spf13/pflag"
	"github.com/willbeason/escape-time/pkg/escape"
	"github.com/willbeason/escape-time/pkg/tiles"
	"math"
)

const (
	// DefaultMaxIter matches the iteration cap the Android viewer started at.
	DefaultMaxIter = 128

	DefaultWidth  = 320
	DefaultHeight = 240
)

// viewFlags holds the sampling geometry of the grid command.
type viewFlags struct {
	xStart, xStep float32
	yStart, yStep float32
	width, height int32
	maxIter       int32
}

func (f *viewFlags) register(flags *pflag.FlagSet) {
	flags.Float32Var(&f.xStart, "x-start", -2.0, "real part of the first sample")
	flags.Float32Var(&f.xStep, "x-step", 2.5/DefaultWidth, "real step between columns")
	flags.Float32Var(&f.yStart, "y-start", -1.25, "imaginary part of the first row")
	flags.Float32Var(&f.yStep, "y-step", 2.5/DefaultHeight, "imaginary step between rows")
	registerExtent(flags, &f.width, &f.height, &f.maxIter)
}

func (f *viewFlags) grid() (escape.Grid, error) {
	if err := checkExtent(f.width, f.height); err != nil {
		return escape.Grid{}, err
	}

	return escape.Grid{
		XStart: f.xStart,
		XStep:  f.xStep,
		YStart: f.yStart,
		YStep:  f.yStep,
		Width:  f.width,
		Height: f.height,
	}, nil
}

// latticeFlags holds the plane-anchored view of the tiles command.
type latticeFlags struct {
	step          float32
	col, row      int32
	width, height int32
	maxIter       int32
}

func (f *latticeFlags) register(flags *pflag.FlagSet) {
	flags.Float32Var(&f.step, "step", 2.5/DefaultHeight, "distance between samples on both axes")
	flags.Int32Var(&f.col, "col", -DefaultWidth*3/5, "lattice column of the first sample")
	flags.Int32Var(&f.row, "row", -DefaultHeight/2, "lattice row of the first sample")
	registerExtent(flags, &f.width, &f.height, &f.maxIter)
}

func (f *latticeFlags) view() (tiles.View, error) {
	if err := checkExtent(f.width, f.height); err != nil {
		return tiles.View{}, err
	}

	return tiles.View{
		Step:    f.step,
		Col:     f.col,
		Row:     f.row,
		Width:   f.width,
		Height:  f.height,
		MaxIter: f.maxIter,
	}, nil
}

func registerExtent(flags *pflag.FlagSet, width, height, maxIter *int32) {
	flags.Int32Var(width, "width", DefaultWidth, "samples per row")
	flags.Int32Var(height, "height", DefaultHeight, "number of rows")
	flags.Int32Var(maxIter, "max-iter", DefaultMaxIter, "iteration cap")
}

func checkExtent(width, height int32) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("view must be at least 1x1, got %dx%d", width, height)
	}
	if int64(width)*int64(height) > math.MaxInt32 {
		return fmt.Errorf("view %dx%d has too many samples", width, height)
	}
	return nil
}

// outputFlags selects where and how counts are written.
type outputFlags struct {
	out    string
	format string
}

func (f *outputFlags) register(flags *pflag.FlagSet) {
	flags.StringVarP(&f.out, "out", "o", "-", "output file, - for stdout")
	flags.StringVarP(&f.format, "format", "f", FormatText, "output format: text, png, bmp or tiff")
}
