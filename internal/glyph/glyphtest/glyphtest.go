// Package glyphtest builds synthetic glyphs and table screenshots for tests.
package glyphtest

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/arcanaland/cardglyph/internal/glyph"
)

// Ink is the colour used for glyph strokes.
const Ink glyph.Pixel = 0xFF000000

// Band is the number of rows in each label's band.
const Band = 5

// Frame returns a window whose first row and first column are ink, so it
// is extracted without any margin trimming.
func Frame() glyph.Window {
	var w glyph.Window
	for y := 0; y < glyph.Height; y++ {
		for x := 0; x < glyph.Width; x++ {
			if x == 0 || y == 0 {
				w[y*glyph.Width+x] = Ink
			} else {
				w[y*glyph.Width+x] = glyph.White
			}
		}
	}
	return w
}

// BandWindow returns Frame plus an inked band of Band rows by 29 columns at
// band index k (0-4). Two band windows with different k are 290 apart and
// the bare Frame is 145 from every band window.
func BandWindow(k int) glyph.Window {
	w := Frame()
	for y := 1 + k*Band; y < 1+(k+1)*Band; y++ {
		for x := 1; x < glyph.Width-1; x++ {
			w[y*glyph.Width+x] = Ink
		}
	}
	return w
}

// NewTable returns a white canvas large enough for the default layout.
func NewTable() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 560, 700))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 0xFF, 0xFF, 0xFF, 0xFF
	}
	return img
}

// Paint copies w into img with its top-left corner at at.
func Paint(img *image.NRGBA, w glyph.Window, at image.Point) {
	for y := 0; y < glyph.Height; y++ {
		for x := 0; x < glyph.Width; x++ {
			p := w.At(x, y)
			img.SetNRGBA(at.X+x, at.Y+y, color.NRGBA{
				R: uint8(p >> 16),
				G: uint8(p >> 8),
				B: uint8(p),
				A: uint8(p >> 24),
			})
		}
	}
}

// WritePNG encodes img to path, failing the test on error.
func WritePNG(t testing.TB, path string, img image.Image) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create(%s): %v", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("png.Encode(%s): %v", path, err)
	}
}
