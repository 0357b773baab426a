// Package recognizer reads the cards on a table screenshot using a pair of
// glyph libraries.
package recognizer

import (
	"fmt"
	"image"
	"io"
	"path/filepath"

	"github.com/arcanaland/cardglyph/internal/card"
	"github.com/arcanaland/cardglyph/internal/config"
	"github.com/arcanaland/cardglyph/internal/glyph"
	"github.com/arcanaland/cardglyph/internal/imageio"
	"github.com/arcanaland/cardglyph/internal/log"
	"github.com/arcanaland/cardglyph/internal/samples"
)

// Recognizer matches every table slot against a rank and a suit library.
// It is immutable and may be shared between goroutines.
type Recognizer struct {
	ranks  *glyph.Library
	suits  *glyph.Library
	layout config.Layout
	load   glyph.LoadFunc
}

// New creates a recognizer that loads images with imageio.Load.
func New(ranks, suits *glyph.Library, layout config.Layout) *Recognizer {
	return &Recognizer{
		ranks:  ranks,
		suits:  suits,
		layout: layout,
		load:   imageio.Load,
	}
}

// FromSamples builds both libraries from a sample set and returns a recognizer.
func FromSamples(set *samples.Set, layout config.Layout, load glyph.LoadFunc) (*Recognizer, error) {
	ranks, err := glyph.BuildLibrary(set.Ranks, layout.SampleRankAnchor(), load)
	if err != nil {
		return nil, fmt.Errorf("error building rank library: %w", err)
	}

	suits, err := glyph.BuildLibrary(set.Suits, layout.SampleSuitAnchor(), load)
	if err != nil {
		return nil, fmt.Errorf("error building suit library: %w", err)
	}

	log.Debug("glyph libraries built", "dir", set.Dir, "ranks", ranks.Len(), "suits", suits.Len())

	r := New(ranks, suits, layout)
	r.load = load
	return r, nil
}

// Ranks returns the rank library.
func (r *Recognizer) Ranks() *glyph.Library { return r.ranks }

// Suits returns the suit library.
func (r *Recognizer) Suits() *glyph.Library { return r.suits }

// Layout returns the table geometry.
func (r *Recognizer) Layout() config.Layout { return r.layout }

// Recognize reads every slot of g. Slots beyond the layout's card count and
// glyphs with no close enough reference are left empty.
func (r *Recognizer) Recognize(g glyph.Grid) card.Hand {
	var hand card.Hand
	for i := 0; i < r.layout.Cards && i < card.Slots; i++ {
		hand[i] = card.Card{
			Rank: r.RankAt(g, i).Label,
			Suit: r.SuitAt(g, i).Label,
		}
	}
	return hand
}

// SlotMatch is the outcome of matching one glyph window.
type SlotMatch struct {
	Label    string
	Distance int
	Window   glyph.Window
}

// RankAt matches the rank glyph of the given slot.
func (r *Recognizer) RankAt(g glyph.Grid, slot int) SlotMatch {
	return r.matchAt(g, r.layout.RankAnchor(slot), r.ranks)
}

// SuitAt matches the suit glyph of the given slot.
func (r *Recognizer) SuitAt(g glyph.Grid, slot int) SlotMatch {
	return r.matchAt(g, r.layout.SuitAnchor(slot), r.suits)
}

func (r *Recognizer) matchAt(g glyph.Grid, at image.Point, lib *glyph.Library) SlotMatch {
	w := glyph.Extract(g, at.X, at.Y)
	label, dist := glyph.MatchWithin(lib, &w, r.layout.Threshold)
	return SlotMatch{Label: label, Distance: dist, Window: w}
}

// Result is the recognized hand of one screenshot.
type Result struct {
	Name string
	Hand card.Hand
}

// String formats the result as "<name> - <cards>".
func (res Result) String() string {
	return res.Name + " - " + res.Hand.String()
}

// Expected returns the hand encoded in the screenshot's file name.
func (res Result) Expected() string {
	var h card.Hand
	copy(h[:], card.ParseHand(res.Name))
	return h.String()
}

// Matches reports whether the recognized hand equals the hand encoded in the
// file name.
func (res Result) Matches() bool {
	return res.Hand.String() == res.Expected()
}

// RecognizeFile loads the image at path and recognizes it.
func (r *Recognizer) RecognizeFile(path string) (Result, error) {
	g, err := r.load(path)
	if err != nil {
		return Result{}, err
	}

	res := Result{Name: filepath.Base(path), Hand: r.Recognize(g)}
	log.Debug("recognized", "file", res.Name, "hand", res.Hand.String())
	return res, nil
}

// RecognizeAll recognizes each path in order and calls fn with every
// result. The first load error aborts the batch.
func (r *Recognizer) RecognizeAll(paths []string, fn func(Result) error) error {
	for _, path := range paths {
		res, err := r.RecognizeFile(path)
		if err != nil {
			return fmt.Errorf("recognition aborted: %w", err)
		}
		if err := fn(res); err != nil {
			return err
		}
	}
	return nil
}

// RecognizeDir recognizes every image in dir in file name order and writes
// one result line per image to w.
func (r *Recognizer) RecognizeDir(dir string, w io.Writer) error {
	paths, err := imageio.List(dir)
	if err != nil {
		return err
	}

	return r.RecognizeAll(paths, func(res Result) error {
		_, err := fmt.Fprintln(w, res.String())
		return err
	})
}
