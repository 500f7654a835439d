package main

import (
	"bufio"
	"fmt"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"strconv"
)

const (
	FormatText = "text"
	FormatPNG  = "png"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
)

// Counts is a row-major block of iteration counts.
type Counts struct {
	Width, Height int32
	MaxIter       int32
	Values        []int32
}

// Gray maps counts linearly onto 16-bit gray, max iterations at white.
func (c Counts) Gray() *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, int(c.Width), int(c.Height)))
	maxIter := int64(max(c.MaxIter, 1))
	for i, v := range c.Values[:c.Width*c.Height] {
		x := i % int(c.Width)
		y := i / int(c.Width)

		img.SetGray16(x, y, color.Gray16{Y: uint16(int64(v) * 0xffff / maxIter)})
	}
	return img
}

// WriteText writes one line per row, counts separated by spaces.
func (c Counts) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)

	var line []byte
	for row := int32(0); row < c.Height; row++ {
		line = line[:0]
		for i, v := range c.Values[row*c.Width : (row+1)*c.Width] {
			if i > 0 {
				line = append(line, ' ')
			}
			line = strconv.AppendInt(line, int64(v), 10)
		}
		line = append(line, '\n')

		if _, err := bw.Write(line); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Encode writes c to w in the given format.
func (c Counts) Encode(w io.Writer, format string) error {
	switch format {
	case FormatText:
		return c.WriteText(w)
	case FormatPNG:
		return png.Encode(w, c.Gray())
	case FormatBMP:
		return bmp.Encode(w, c.Gray())
	case FormatTIFF:
		return tiff.Encode(w, c.Gray(), &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func checkFormat(format string) error {
	switch format {
	case FormatText, FormatPNG, FormatBMP, FormatTIFF:
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// writeCounts encodes c to path, or stdout when path is "-".
func writeCounts(path, format string, c Counts) error {
	if path == "-" {
		return c.Encode(os.Stdout, format)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	err = c.Encode(f, format)
	if err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
