package glyph

import (
	"image"
	"image/color"
)

// Grid is a two-dimensional source of packed ARGB pixels.
type Grid interface {
	ARGB(x, y int) Pixel
}

// Extract trims the background margin to the right of and below (x, y) and
// returns the window that starts at the first ink column and row.
func Extract(g Grid, x, y int) Window {
	dx, dy := Trim(g, x, y)

	var w Window
	for row := 0; row < Height; row++ {
		for col := 0; col < Width; col++ {
			w[row*Width+col] = g.ARGB(x+dx+col, y+dy+row)
		}
	}
	return w
}

// Trim returns the margin offsets Extract would apply at (x, y). Each offset
// is the index of the first probed column (row) containing ink, or MaxTrim
// if none of the probed lines does.
func Trim(g Grid, x, y int) (dx, dy int) {
	for dx < MaxTrim && !columnHasInk(g, x+dx, y) {
		dx++
	}
	for dy < MaxTrim && !rowHasInk(g, x, y+dy) {
		dy++
	}
	return dx, dy
}

func columnHasInk(g Grid, x, y int) bool {
	for j := 0; j < Height; j++ {
		if isInk(g.ARGB(x, y+j)) {
			return true
		}
	}
	return false
}

func rowHasInk(g Grid, x, y int) bool {
	for j := 0; j < Width; j++ {
		if isInk(g.ARGB(x+j, y)) {
			return true
		}
	}
	return false
}

// ImageGrid adapts an image.Image to Grid. Pixels are converted to
// non-premultiplied ARGB; reads outside the bounds yield transparent black.
type ImageGrid struct {
	img image.Image
}

// NewImageGrid wraps img.
func NewImageGrid(img image.Image) *ImageGrid {
	return &ImageGrid{img: img}
}

// ARGB implements Grid.
func (g *ImageGrid) ARGB(x, y int) Pixel {
	c := color.NRGBAModel.Convert(g.img.At(x, y)).(color.NRGBA)
	return Pixel(c.A)<<24 | Pixel(c.R)<<16 | Pixel(c.G)<<8 | Pixel(c.B)
}

// WindowImage renders w as an image, mainly for previews and debugging.
func WindowImage(w Window) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, Width, Height))
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			p := w.At(x, y)
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(p >> 16),
				G: uint8(p >> 8),
				B: uint8(p),
				A: uint8(p >> 24),
			})
		}
	}
	return img
}
