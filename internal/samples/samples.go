// Package samples groups labeled sample screenshots by rank and suit label.
package samples

import (
	"fmt"
	"path/filepath"

	"github.com/arcanaland/cardglyph/internal/card"
	"github.com/arcanaland/cardglyph/internal/imageio"
)

// Set is a sample directory grouped by label. Each candidate list keeps the
// file name order of the directory, so the first entry is the file a library
// uses for that label.
type Set struct {
	Dir   string
	Ranks map[string][]string
	Suits map[string][]string
	Files []string
}

// Scan lists the images in dir and groups them by the labels src reads from
// their file names. A file whose name has no usable labels is a
// configuration error.
func Scan(dir string, src card.LabelSource) (*Set, error) {
	paths, err := imageio.List(dir)
	if err != nil {
		return nil, err
	}
	return Group(dir, paths, src)
}

// Group builds a Set from an ordered list of sample paths.
func Group(dir string, paths []string, src card.LabelSource) (*Set, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no sample images found in %s", dir)
	}

	set := &Set{
		Dir:   dir,
		Ranks: make(map[string][]string),
		Suits: make(map[string][]string),
		Files: paths,
	}

	for _, path := range paths {
		rank, suit, err := src.Labels(filepath.Base(path))
		if err != nil {
			return nil, fmt.Errorf("invalid sample in %s: %w", dir, err)
		}
		set.Ranks[rank] = append(set.Ranks[rank], path)
		set.Suits[suit] = append(set.Suits[suit], path)
	}
	return set, nil
}

// Duplicates returns, per label, the candidates that are ignored because an
// earlier file already supplies that label.
func Duplicates(groups map[string][]string) map[string][]string {
	dups := make(map[string][]string)
	for label, paths := range groups {
		if len(paths) > 1 {
			dups[label] = paths[1:]
		}
	}
	return dups
}
