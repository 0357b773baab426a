package validator

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arcanaland/cardglyph/internal/config"
	"github.com/arcanaland/cardglyph/internal/glyph"
	"github.com/arcanaland/cardglyph/internal/imageio"
	"github.com/arcanaland/cardglyph/internal/samples"
)

// StandardRanks and StandardSuits are the labels a complete sample set covers.
var (
	StandardRanks = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}
	StandardSuits = []string{"c", "d", "h", "s"}
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

type Validator struct {
	SampleDir string
	Layout    config.Layout
	Results   ValidationResults
}

func NewValidator(sampleDir string, layout config.Layout) *Validator {
	return &Validator{
		SampleDir: sampleDir,
		Layout:    layout,
		Results:   ValidationResults{},
	}
}

func (v *Validator) Validate() (ValidationResults, error) {
	info, err := os.Stat(v.SampleDir)
	if err != nil {
		return v.Results, fmt.Errorf("sample directory not found: %s", v.SampleDir)
	}
	if !info.IsDir() {
		return v.Results, fmt.Errorf("not a directory: %s", v.SampleDir)
	}

	paths := v.validateFileNames()
	if len(paths) == 0 {
		v.Results.Errors = append(v.Results.Errors, "no usable sample images found")
		return v.Results, nil
	}

	set, err := samples.Group(v.SampleDir, paths, v.Layout.LabelSource())
	if err != nil {
		return v.Results, err
	}

	v.validateImages(set)
	v.validateCoverage("rank", set.Ranks, StandardRanks)
	v.validateCoverage("suit", set.Suits, StandardSuits)
	v.validateDuplicates("rank", set.Ranks)
	v.validateDuplicates("suit", set.Suits)

	return v.Results, nil
}

// validateFileNames returns the image files whose names carry labels
func (v *Validator) validateFileNames() []string {
	entries, err := os.ReadDir(v.SampleDir)
	if err != nil {
		v.Results.Errors = append(v.Results.Errors,
			fmt.Sprintf("error reading sample directory: %v", err))
		return nil
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !imageio.IsImage(name) {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("ignoring non-image file: %s", name))
			continue
		}

		if _, _, err := v.Layout.LabelSource().Labels(name); err != nil {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("cannot read rank and suit from file name: %s", name))
			continue
		}

		paths = append(paths, filepath.Join(v.SampleDir, name))
	}

	sort.Strings(paths)
	return paths
}

// validateImages decodes the sample used for each label and checks its glyph
func (v *Validator) validateImages(set *samples.Set) {
	v.validateGlyphs("rank", set.Ranks, v.Layout.SampleRankAnchor())
	v.validateGlyphs("suit", set.Suits, v.Layout.SampleSuitAnchor())
}

func (v *Validator) validateGlyphs(kind string, groups map[string][]string, anchor image.Point) {
	// The far corner a window can reach after the largest margin trim
	need := image.Pt(anchor.X+glyph.MaxTrim+glyph.Width, anchor.Y+glyph.MaxTrim+glyph.Height)

	for _, label := range sortedLabels(groups) {
		path := groups[label][0]
		name := filepath.Base(path)

		img, err := imageio.Decode(path)
		if err != nil {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("%s %q: cannot decode %s: %v", kind, label, name, err))
			continue
		}

		bounds := img.Bounds()
		if bounds.Max.X < need.X || bounds.Max.Y < need.Y {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("%s %q: %s is %dx%d, too small for the glyph anchor at (%d,%d)",
					kind, label, name, bounds.Dx(), bounds.Dy(), anchor.X, anchor.Y))
			continue
		}

		w := glyph.Extract(glyph.NewImageGrid(img), anchor.X, anchor.Y)
		if inkCount(&w) == 0 {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("%s %q: glyph extracted from %s has no ink", kind, label, name))
		}
	}
}

// validateCoverage warns about standard labels with no sample
func (v *Validator) validateCoverage(kind string, groups map[string][]string, standard []string) {
	var missing []string
	for _, label := range standard {
		if _, ok := groups[label]; !ok {
			missing = append(missing, label)
		}
	}

	if len(missing) > 0 {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("no %s sample for: %s", kind, strings.Join(missing, ", ")))
	}
}

// validateDuplicates notes samples that will never be used as templates
func (v *Validator) validateDuplicates(kind string, groups map[string][]string) {
	dups := samples.Duplicates(groups)
	for _, label := range sortedLabels(dups) {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("%s %q: using %s, ignoring %d later sample(s)",
				kind, label, filepath.Base(groups[label][0]), len(dups[label])))
	}
}

func inkCount(w *glyph.Window) int {
	n := 0
	for _, p := range w {
		if !glyph.IsBackground(p) {
			n++
		}
	}
	return n
}

func sortedLabels(groups map[string][]string) []string {
	labels := make([]string, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
