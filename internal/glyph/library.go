package glyph

import (
	"fmt"
	"image"
	"sort"
)

// Glyph is a labeled reference window.
type Glyph struct {
	Label  string
	Window Window
	// Source is the sample file the window was extracted from, if any.
	Source string
}

// LoadFunc decodes the image at path into a Grid.
type LoadFunc func(path string) (Grid, error)

// Library is a read-only set of glyphs for one vocabulary, ordered by label.
type Library struct {
	glyphs []Glyph
	index  map[string]int
}

// NewLibrary builds a library from glyphs. When a label appears more than
// once the first glyph with that label is kept.
func NewLibrary(glyphs ...Glyph) *Library {
	lib := &Library{index: make(map[string]int, len(glyphs))}
	seen := make(map[string]bool, len(glyphs))
	for _, g := range glyphs {
		if seen[g.Label] {
			continue
		}
		seen[g.Label] = true
		lib.glyphs = append(lib.glyphs, g)
	}

	sort.SliceStable(lib.glyphs, func(i, j int) bool {
		return lib.glyphs[i].Label < lib.glyphs[j].Label
	})
	for i, g := range lib.glyphs {
		lib.index[g.Label] = i
	}
	return lib
}

// BuildLibrary loads one reference glyph per label. Only the first path in
// each candidate list is decoded; the rest are ignored.
func BuildLibrary(samples map[string][]string, anchor image.Point, load LoadFunc) (*Library, error) {
	labels := make([]string, 0, len(samples))
	for label := range samples {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	glyphs := make([]Glyph, 0, len(labels))
	for _, label := range labels {
		paths := samples[label]
		if len(paths) == 0 {
			return nil, fmt.Errorf("no sample for label %q", label)
		}

		grid, err := load(paths[0])
		if err != nil {
			return nil, fmt.Errorf("error loading sample for label %q: %w", label, err)
		}

		glyphs = append(glyphs, Glyph{
			Label:  label,
			Window: Extract(grid, anchor.X, anchor.Y),
			Source: paths[0],
		})
	}

	return NewLibrary(glyphs...), nil
}

// Len returns the number of glyphs.
func (l *Library) Len() int {
	return len(l.glyphs)
}

// Labels returns the labels in iteration order.
func (l *Library) Labels() []string {
	labels := make([]string, len(l.glyphs))
	for i, g := range l.glyphs {
		labels[i] = g.Label
	}
	return labels
}

// Glyphs returns a copy of the glyphs in iteration order.
func (l *Library) Glyphs() []Glyph {
	out := make([]Glyph, len(l.glyphs))
	copy(out, l.glyphs)
	return out
}

// Lookup returns the glyph for label.
func (l *Library) Lookup(label string) (Glyph, bool) {
	i, ok := l.index[label]
	if !ok {
		return Glyph{}, false
	}
	return l.glyphs[i], true
}
