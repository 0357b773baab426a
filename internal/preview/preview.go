// Package preview renders glyph windows for the terminal.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"

	"github.com/arcanaland/cardglyph/internal/glyph"
)

// ANSI renders w as half-block ANSI art, scaled by scale. Each character
// cell covers two horizontal and two vertical pixels of the scaled image.
func ANSI(w glyph.Window, scale int) string {
	if scale < 1 {
		scale = 1
	}

	img := glyph.WindowImage(w)
	scaled := resize.Resize(uint(glyph.Width*scale), uint(glyph.Height*scale), img, resize.NearestNeighbor)
	bounds := scaled.Bounds()

	var buffer strings.Builder
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		for x := bounds.Min.X; x < bounds.Max.X; x += 2 {
			upper := averageColor(colorAt(scaled, x, y), colorAt(scaled, x+1, y))
			lower := averageColor(colorAt(scaled, x, y+1), colorAt(scaled, x+1, y+1))
			buffer.WriteString(ansiColorString('▀', upper, lower))
		}
		buffer.WriteString("\n")
	}

	return buffer.String()
}

// Mask renders the background/ink classification of w, one character per
// pixel: '#' for ink, '.' for background.
func Mask(w glyph.Window) string {
	var buffer strings.Builder
	buffer.Grow((glyph.Width + 1) * glyph.Height)
	for y := 0; y < glyph.Height; y++ {
		for x := 0; x < glyph.Width; x++ {
			if glyph.IsBackground(w.At(x, y)) {
				buffer.WriteByte('.')
			} else {
				buffer.WriteByte('#')
			}
		}
		buffer.WriteByte('\n')
	}
	return buffer.String()
}

// Diff renders the positions where a and b disagree on background/ink as 'x'.
func Diff(a, b glyph.Window) string {
	var buffer strings.Builder
	for y := 0; y < glyph.Height; y++ {
		for x := 0; x < glyph.Width; x++ {
			if glyph.IsBackground(a.At(x, y)) != glyph.IsBackground(b.At(x, y)) {
				buffer.WriteByte('x')
			} else {
				buffer.WriteByte(' ')
			}
		}
		buffer.WriteByte('\n')
	}
	return buffer.String()
}

// colorAt returns the colour at a coordinate, black outside the bounds
func colorAt(img image.Image, x, y int) colorful.Color {
	if !image.Pt(x, y).In(img.Bounds()) {
		return colorful.Color{}
	}
	c, ok := colorful.MakeColor(img.At(x, y))
	if !ok {
		// fully transparent
		return colorful.Color{}
	}
	return c
}

func averageColor(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	count := float64(len(colors))
	return colorful.Color{R: r / count, G: g / count, B: b / count}
}

// ansiColorString formats a character with 24-bit foreground and background colours
func ansiColorString(char rune, fg, bg colorful.Color) string {
	f := toRGBA(fg)
	b := toRGBA(bg)
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c\x1b[0m",
		f.R, f.G, f.B, b.R, b.G, b.B, char)
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// StripANSI removes ANSI escape sequences from a string
func StripANSI(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}
