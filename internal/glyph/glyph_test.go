package glyph

import (
	"errors"
	"image"
	"image/color"
	"reflect"
	"testing"
)

const ink Pixel = 0xFF000000

// testGrid is a white canvas; reads outside it return transparent black.
type testGrid struct {
	w, h int
	pix  []Pixel
}

func newTestGrid(w, h int) *testGrid {
	g := &testGrid{w: w, h: h, pix: make([]Pixel, w*h)}
	for i := range g.pix {
		g.pix[i] = White
	}
	return g
}

func (g *testGrid) ARGB(x, y int) Pixel {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return 0
	}
	return g.pix[y*g.w+x]
}

func (g *testGrid) set(x, y int, p Pixel) {
	g.pix[y*g.w+x] = p
}

// blankWindow returns an all-white window.
func blankWindow() Window {
	var w Window
	for i := range w {
		w[i] = White
	}
	return w
}

// inkWindow returns a white window whose first n pixels are ink.
func inkWindow(n int) Window {
	w := blankWindow()
	for i := 0; i < n; i++ {
		w[i] = ink
	}
	return w
}

func TestIsBackground(t *testing.T) {
	tests := []struct {
		p    Pixel
		want bool
	}{
		{White, true},
		{Gray, true},
		{ink, false},
		{Red, false},
		{0xFF787879, false},
		{0x00FFFFFF, false},
	}
	for _, tt := range tests {
		if got := IsBackground(tt.p); got != tt.want {
			t.Errorf("IsBackground(%#08x) = %v, want %v", uint32(tt.p), got, tt.want)
		}
	}
}

func TestIsInk(t *testing.T) {
	tests := []struct {
		name string
		p    Pixel
		want bool
	}{
		{"white", White, false},
		{"gray", Gray, false},
		{"black", ink, true},
		{"threshold", Red, false},
		{"pure red", 0xFFFF0000, false},
		{"just below threshold", 0xFFEFFFFF, true},
		{"dark gray", 0xFF777777, true},
		{"transparent", 0x00000000, false},
		{"translucent black", 0x7F000000, false},
		{"half opaque black", 0x80000000, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isInk(tt.p); got != tt.want {
				t.Errorf("isInk(%#08x) = %v, want %v", uint32(tt.p), got, tt.want)
			}
		})
	}
}

func TestTrim(t *testing.T) {
	tests := []struct {
		name           string
		inkX, inkY     int
		wantDX, wantDY int
	}{
		{"content at anchor", 50, 40, 0, 0},
		{"content at index 3", 53, 44, 3, 4},
		{"content at last probe", 59, 49, 9, 9},
		{"content past search", 60, 50, 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGrid(200, 200)
			// a short vertical and horizontal stroke through the ink point
			for i := 0; i < 5; i++ {
				g.set(tt.inkX, tt.inkY+i, ink)
				g.set(tt.inkX+i, tt.inkY, ink)
			}

			dx, dy := Trim(g, 50, 40)
			if dx != tt.wantDX || dy != tt.wantDY {
				t.Errorf("Trim() = (%d,%d), want (%d,%d)", dx, dy, tt.wantDX, tt.wantDY)
			}
		})
	}
}

func TestTrimIgnoresGray(t *testing.T) {
	g := newTestGrid(100, 100)
	for y := 10; y < 40; y++ {
		g.set(12, y, Gray)
	}
	g.set(15, 20, ink)

	dx, dy := Trim(g, 10, 10)
	if dx != 5 || dy != 10 {
		t.Errorf("Trim() = (%d,%d), want (5,10)", dx, dy)
	}
}

func TestExtractAtLastProbe(t *testing.T) {
	g := newTestGrid(120, 120)
	// ink begins exactly at probe index 9 on both axes
	g.set(20+9, 30+9, ink)
	g.set(20+9+30, 30+9+27, ink)

	w := Extract(g, 20, 30)
	if w.At(0, 0) != ink {
		t.Errorf("window origin = %#08x, want ink", uint32(w.At(0, 0)))
	}
	if w.At(Width-1, Height-1) != ink {
		t.Errorf("window corner = %#08x, want ink", uint32(w.At(Width-1, Height-1)))
	}
}

func TestExtractBlankRegionSaturates(t *testing.T) {
	g := newTestGrid(Width+MaxTrim, Height+MaxTrim)

	// a blank canvas just large enough for the fully trimmed window
	w := Extract(g, 0, 0)
	if w.At(0, 0) != White {
		t.Errorf("window origin = %#08x, want white", uint32(w.At(0, 0)))
	}

	dx, dy := Trim(g, 0, 0)
	if dx != MaxTrim || dy != MaxTrim {
		t.Errorf("Trim() = (%d,%d), want (%d,%d)", dx, dy, MaxTrim, MaxTrim)
	}
}

func TestExtractDeterministic(t *testing.T) {
	g := newTestGrid(100, 100)
	for i := 0; i < 20; i++ {
		g.set(14+i, 17, ink)
		g.set(14, 17+i, ink)
	}

	a := Extract(g, 10, 10)
	b := Extract(g, 10, 10)
	if a != b {
		t.Error("Extract() returned different windows for the same input")
	}
	if a.At(0, 0) != ink {
		t.Errorf("window origin = %#08x, want ink", uint32(a.At(0, 0)))
	}
}

func TestImageGrid(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(1, 2, color.NRGBA{R: 0x78, G: 0x78, B: 0x78, A: 0xFF})
	img.SetNRGBA(3, 3, color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xFF})

	g := NewImageGrid(img)
	tests := []struct {
		x, y int
		want Pixel
	}{
		{1, 2, Gray},
		{3, 3, 0xFF123456},
		{0, 0, 0},
		{10, 10, 0},
	}
	for _, tt := range tests {
		if got := g.ARGB(tt.x, tt.y); got != tt.want {
			t.Errorf("ARGB(%d,%d) = %#08x, want %#08x", tt.x, tt.y, uint32(got), uint32(tt.want))
		}
	}
}

func TestWindowImageRoundTrip(t *testing.T) {
	w := inkWindow(40)
	w[Size-1] = Gray

	got := Extract(NewImageGrid(WindowImage(w)), 0, 0)
	if got != w {
		t.Error("extracting a rendered window did not reproduce it")
	}
}

func TestDistance(t *testing.T) {
	blank := blankWindow()
	full := inkWindow(Size)
	some := inkWindow(100)

	grayed := blankWindow()
	for i := range grayed {
		if i%2 == 0 {
			grayed[i] = Gray
		}
	}

	tests := []struct {
		name string
		a, b Window
		want int
	}{
		{"identical", some, some, 0},
		{"white vs gray", blank, grayed, 0},
		{"blank vs full", blank, full, Size},
		{"blank vs some", blank, some, 100},
		{"colour does not matter", inkWindow(10), recolour(inkWindow(10), 0xFF3366AA), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(&tt.a, &tt.b); got != tt.want {
				t.Errorf("Distance() = %d, want %d", got, tt.want)
			}
			if got := Distance(&tt.b, &tt.a); got != tt.want {
				t.Errorf("Distance() reversed = %d, want %d", got, tt.want)
			}
		})
	}
}

func recolour(w Window, p Pixel) Window {
	for i := range w {
		if !IsBackground(w[i]) {
			w[i] = p
		}
	}
	return w
}

func TestMatchSelf(t *testing.T) {
	lib := NewLibrary(
		Glyph{Label: "K", Window: inkWindow(300)},
		Glyph{Label: "Q", Window: inkWindow(600)},
	)

	w := inkWindow(600)
	label, dist := Match(lib, &w)
	if label != "Q" || dist != 0 {
		t.Errorf("Match() = (%q, %d), want (\"Q\", 0)", label, dist)
	}
}

func TestMatchThreshold(t *testing.T) {
	lib := NewLibrary(Glyph{Label: "A", Window: blankWindow()})

	tests := []struct {
		name      string
		differing int
		wantLabel string
		wantDist  int
	}{
		{"well inside", 20, "A", 20},
		{"just inside", MatchThreshold - 1, "A", MatchThreshold - 1},
		{"at threshold", MatchThreshold, "", MatchThreshold},
		{"outside", 145, "", MatchThreshold},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := inkWindow(tt.differing)
			label, dist := Match(lib, &w)
			if label != tt.wantLabel || dist != tt.wantDist {
				t.Errorf("Match() = (%q, %d), want (%q, %d)", label, dist, tt.wantLabel, tt.wantDist)
			}
		})
	}
}

func TestMatchEmptyLibrary(t *testing.T) {
	w := blankWindow()
	if label, _ := Match(NewLibrary(), &w); label != "" {
		t.Errorf("Match() on empty library = %q, want \"\"", label)
	}
}

func TestMatchTieKeepsFirst(t *testing.T) {
	// both glyphs differ from the candidate in exactly 50 positions
	a := inkWindow(50)
	b := blankWindow()
	for i := Size - 50; i < Size; i++ {
		b[i] = ink
	}
	lib := NewLibrary(Glyph{Label: "b", Window: b}, Glyph{Label: "a", Window: a})

	w := blankWindow()
	label, dist := Match(lib, &w)
	if label != "a" || dist != 50 {
		t.Errorf("Match() = (%q, %d), want (\"a\", 50)", label, dist)
	}
}

func TestMatchWithin(t *testing.T) {
	lib := NewLibrary(Glyph{Label: "J", Window: blankWindow()})
	w := inkWindow(60)

	if label, _ := MatchWithin(lib, &w, 50); label != "" {
		t.Errorf("MatchWithin(50) = %q, want \"\"", label)
	}
	if label, _ := MatchWithin(lib, &w, 61); label != "J" {
		t.Errorf("MatchWithin(61) = %q, want \"J\"", label)
	}
}

func TestNewLibrary(t *testing.T) {
	first := inkWindow(1)
	lib := NewLibrary(
		Glyph{Label: "s", Window: first},
		Glyph{Label: "c", Window: inkWindow(2)},
		Glyph{Label: "s", Window: inkWindow(3)},
	)

	if lib.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", lib.Len())
	}
	if got, want := lib.Labels(), []string{"c", "s"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Labels() = %v, want %v", got, want)
	}

	g, ok := lib.Lookup("s")
	if !ok {
		t.Fatal("Lookup(\"s\") not found")
	}
	if g.Window != first {
		t.Error("duplicate label replaced the first glyph")
	}
	if _, ok := lib.Lookup("h"); ok {
		t.Error("Lookup(\"h\") found a glyph that was never added")
	}
}

func TestBuildLibraryUsesFirstSample(t *testing.T) {
	grids := map[string]*testGrid{}
	for i, name := range []string{"Kh1.png", "Kh2.png", "Qs1.png"} {
		g := newTestGrid(80, 80)
		for j := 0; j <= i*5; j++ {
			g.set(10+j, 10, ink)
		}
		g.set(10, 11, ink)
		grids[name] = g
	}

	var loaded []string
	load := func(path string) (Grid, error) {
		loaded = append(loaded, path)
		return grids[path], nil
	}

	lib, err := BuildLibrary(map[string][]string{
		"K": {"Kh1.png", "Kh2.png"},
		"Q": {"Qs1.png"},
	}, image.Pt(10, 10), load)
	if err != nil {
		t.Fatalf("BuildLibrary() error = %v", err)
	}

	if want := []string{"Kh1.png", "Qs1.png"}; !reflect.DeepEqual(loaded, want) {
		t.Errorf("loaded %v, want %v", loaded, want)
	}

	g, ok := lib.Lookup("K")
	if !ok {
		t.Fatal("Lookup(\"K\") not found")
	}
	if g.Source != "Kh1.png" {
		t.Errorf("K source = %q, want %q", g.Source, "Kh1.png")
	}
	if want := Extract(grids["Kh1.png"], 10, 10); g.Window != want {
		t.Error("K window was not extracted from the first sample")
	}
}

func TestBuildLibraryLoadError(t *testing.T) {
	errBroken := errors.New("broken file")
	load := func(path string) (Grid, error) {
		return nil, errBroken
	}

	_, err := BuildLibrary(map[string][]string{"A": {"As1.png"}}, image.Pt(0, 0), load)
	if !errors.Is(err, errBroken) {
		t.Errorf("BuildLibrary() error = %v, want %v", err, errBroken)
	}
}

func TestBuildLibraryEmptyCandidates(t *testing.T) {
	load := func(path string) (Grid, error) {
		return newTestGrid(50, 50), nil
	}

	if _, err := BuildLibrary(map[string][]string{"A": nil}, image.Pt(0, 0), load); err == nil {
		t.Error("BuildLibrary() with no candidates should fail")
	}
}
