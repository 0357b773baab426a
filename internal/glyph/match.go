package glyph

// MatchThreshold is the exclusive upper bound on an accepted distance.
const MatchThreshold = 140

// Distance counts the positions where exactly one of a and b is background.
func Distance(a, b *Window) int {
	d := 0
	for i := range a {
		if IsBackground(a[i]) != IsBackground(b[i]) {
			d++
		}
	}
	return d
}

// Match returns the label of the closest glyph in lib under MatchThreshold,
// or "" when nothing is close enough.
func Match(lib *Library, w *Window) (string, int) {
	return MatchWithin(lib, w, MatchThreshold)
}

// MatchWithin is Match with an explicit threshold. Glyphs are visited in
// library order and a later glyph only wins with a strictly smaller distance,
// so ties go to the earlier label. When nothing matches the returned distance
// is the threshold itself.
func MatchWithin(lib *Library, w *Window, threshold int) (string, int) {
	label := ""
	best := threshold
	for i := range lib.glyphs {
		g := &lib.glyphs[i]
		d := Distance(w, &g.Window)
		if d < best && d < threshold {
			best = d
			label = g.Label
		}
	}
	return label, best
}
