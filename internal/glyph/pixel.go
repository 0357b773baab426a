// Package glyph extracts fixed-size glyph windows from card-table screenshots
// and matches them against a library of reference glyphs.
package glyph

// Pixel is a packed 32-bit ARGB value.
type Pixel uint32

const (
	// White and Gray are the only two colours the table renders as background.
	White Pixel = 0xFFFFFFFF
	Gray  Pixel = 0xFF787878
	// Red is the ink threshold used while trimming margins.
	Red Pixel = 0xFFF00000
)

const (
	Width  = 31
	Height = 28
	Size   = Width * Height
)

// MaxTrim bounds the margin search on each axis.
const MaxTrim = 10

// Window is a Width x Height block of pixels in row-major order.
type Window [Size]Pixel

// At returns the pixel at column x, row y of the window.
func (w *Window) At(x, y int) Pixel {
	return w[y*Width+x]
}

// IsBackground reports whether p is one of the background colours.
func IsBackground(p Pixel) bool {
	return p == White || p == Gray
}

// isInk is the margin-trimming predicate. The comparison against Red is done
// on the signed 32-bit word, so translucent pixels (alpha < 0x80) count as
// background here.
func isInk(p Pixel) bool {
	return int32(p) < redSigned && p != Gray
}

// redSigned is Red read as a signed word.
const redSigned int32 = -1 << 20
