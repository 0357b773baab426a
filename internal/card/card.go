package card

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Slots is the number of card positions on the table.
const Slots = 5

// ErrMalformedName is returned when no rank/suit pair can be read from a file name.
var ErrMalformedName = errors.New("malformed card file name")

// labelPattern matches one rank label followed by one suit label.
var labelPattern = regexp.MustCompile(`^([0-9JQKA]{1,2})([cdhs])`)

// Card represents one recognized table slot. An empty Rank or Suit means the
// glyph was not recognized.
type Card struct {
	Rank string
	Suit string
}

// String returns the rank label followed by the suit label.
func (c Card) String() string {
	return c.Rank + c.Suit
}

// Hand holds the cards of every table slot in slot order.
type Hand [Slots]Card

// String concatenates the cards without separators.
func (h Hand) String() string {
	var sb strings.Builder
	for _, c := range h {
		sb.WriteString(c.String())
	}
	return sb.String()
}

// LabelSource selects which card of a sample file name supplies the rank
// label and which supplies the suit label. The zero value reads both from
// the first card.
type LabelSource struct {
	RankCard int
	SuitCard int
}

// Labels reads the rank and suit labels from a file name made of one or more
// <rank><suit> pairs followed by a discriminator and an extension, e.g.
// "Kh3.png" or "AsKh.png".
func (src LabelSource) Labels(name string) (rank, suit string, err error) {
	cards := ParseHand(name)
	if len(cards) == 0 {
		return "", "", fmt.Errorf("%w: %s", ErrMalformedName, name)
	}
	for _, i := range []int{src.RankCard, src.SuitCard} {
		if i < 0 || i >= len(cards) {
			return "", "", fmt.Errorf("%w: %s has no card %d", ErrMalformedName, name, i+1)
		}
	}
	return cards[src.RankCard].Rank, cards[src.SuitCard].Suit, nil
}

// ParseHand reads consecutive rank/suit pairs from the start of a file name
// stem, stopping at the first position that is not a pair or after Slots
// cards.
func ParseHand(name string) []Card {
	rest := Stem(name)
	var cards []Card
	for len(cards) < Slots {
		m := labelPattern.FindStringSubmatch(rest)
		if m == nil {
			break
		}
		cards = append(cards, Card{Rank: m[1], Suit: m[2]})
		rest = rest[len(m[0]):]
	}
	return cards
}

// Stem returns the base name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
