package main

import (
	"bytes"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"image/png"
	"testing"
)

func TestCounts_WriteText(t *testing.T) {
	c := Counts{Width: 3, Height: 2, MaxIter: 9, Values: []int32{0, 1, 2, 9, 10, 11}}

	var buf bytes.Buffer
	if err := c.WriteText(&buf); err != nil {
		t.Fatal(err)
	}

	want := "0 1 2\n9 10 11\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCounts_Gray(t *testing.T) {
	c := Counts{Width: 2, Height: 2, MaxIter: 4, Values: []int32{0, 4, 2, 1}}

	img := c.Gray()
	tcs := []struct {
		x, y int
		want uint16
	}{
		{x: 0, y: 0, want: 0},
		{x: 1, y: 0, want: 0xffff},
		{x: 0, y: 1, want: 0x7fff},
		{x: 1, y: 1, want: 0x3fff},
	}
	for _, tc := range tcs {
		if got := img.Gray16At(tc.x, tc.y).Y; got != tc.want {
			t.Errorf("(%d, %d) = %#x, want %#x", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestCounts_EncodeImages(t *testing.T) {
	c := Counts{Width: 5, Height: 3, MaxIter: 10, Values: make([]int32, 15)}
	for i := range c.Values {
		c.Values[i] = int32(i % 11)
	}

	for _, format := range []string{FormatPNG, FormatBMP, FormatTIFF} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := c.Encode(&buf, format); err != nil {
				t.Fatal(err)
			}

			var err error
			var w, h int
			switch format {
			case FormatPNG:
				img, decErr := png.Decode(&buf)
				err = decErr
				if img != nil {
					w, h = img.Bounds().Dx(), img.Bounds().Dy()
				}
			case FormatBMP:
				img, decErr := bmp.Decode(&buf)
				err = decErr
				if img != nil {
					w, h = img.Bounds().Dx(), img.Bounds().Dy()
				}
			case FormatTIFF:
				img, decErr := tiff.Decode(&buf)
				err = decErr
				if img != nil {
					w, h = img.Bounds().Dx(), img.Bounds().Dy()
				}
			}
			if err != nil {
				t.Fatal(err)
			}
			if w != 5 || h != 3 {
				t.Errorf("got %dx%d image, want 5x3", w, h)
			}
		})
	}
}

func TestCounts_EncodeUnknown(t *testing.T) {
	c := Counts{Width: 1, Height: 1, MaxIter: 1, Values: []int32{1}}
	if err := c.Encode(&bytes.Buffer{}, "jpeg"); err == nil {
		t.Error("got nil error for unknown format")
	}
	if err := checkFormat("jpeg"); err == nil {
		t.Error("checkFormat accepted unknown format")
	}
}
