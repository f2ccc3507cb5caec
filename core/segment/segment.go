// Package segment splits delimited text into anchor groups of weighted units.
//
// Two delimiters are recognised:
//
//   - Anchor: "||" with optional surrounding whitespace. A hard synchronisation
//     point; both texts of a pair must contain the same number.
//   - Boundary: "|" with optional surrounding whitespace. A soft candidate
//     segment boundary; the counts may differ between texts.
//
// Anchors are split first so that "||" is never read as two boundaries.
// Every leaf becomes a Unit, including empty leaves between adjacent
// boundaries, which weigh 0 under the built-in policies. Empty fields after a
// trailing delimiter are dropped, so "a | b ||" is one group of two units. An
// empty text yields one group holding one empty unit, so joining it gives
// back "".
//
// All functions are safe for concurrent use.
package segment

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// AnchorPattern matches an anchor delimiter.
	AnchorPattern = regexp.MustCompile(`\s*\|\|\s*`)

	// BoundaryPattern matches a boundary delimiter.
	BoundaryPattern = regexp.MustCompile(`\s*\|\s*`)
)

// WeightFunc computes the weight of a leaf.
type WeightFunc func(text string) float64

// WordCount weighs text by its number of whitespace-separated tokens.
func WordCount(text string) float64 {
	return float64(len(strings.Fields(text)))
}

// CharCount weighs text by its number of runes.
func CharCount(text string) float64 {
	return float64(utf8.RuneCountInString(text))
}

// Unit is an immutable piece of text with its weight.
type Unit struct {
	text   string
	weight float64
}

// NewUnit creates a unit with an explicit weight.
func NewUnit(text string, weight float64) Unit {
	return Unit{text: text, weight: weight}
}

// Text returns the unit's content.
func (u Unit) Text() string { return u.text }

// Weight returns the unit's weight.
func (u Unit) Weight() float64 { return u.weight }

// String returns the unit's content.
func (u Unit) String() string { return u.text }

// Group is the ordered run of units between two anchors.
type Group []Unit

// Weights returns the weight of every unit in order.
func (g Group) Weights() []float64 {
	w := make([]float64, len(g))
	for i, u := range g {
		w[i] = u.weight
	}
	return w
}

// Texts returns the text of every unit in order.
func (g Group) Texts() []string {
	t := make([]string, len(g))
	for i, u := range g {
		t[i] = u.text
	}
	return t
}

// Segmenter splits text with a fixed weight policy.
type Segmenter struct {
	weight WeightFunc
}

// Option configures a Segmenter.
type Option func(*Segmenter)

// WithWeight sets the weight policy. The default is WordCount.
func WithWeight(fn WeightFunc) Option {
	return func(s *Segmenter) {
		if fn != nil {
			s.weight = fn
		}
	}
}

// New creates a Segmenter.
func New(opts ...Option) *Segmenter {
	s := &Segmenter{weight: WordCount}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultSegmenter = New()

// Default returns the word-count segmenter.
func Default() *Segmenter {
	return defaultSegmenter
}

// Unit wraps text as a unit weighed by the segmenter's policy.
func (s *Segmenter) Unit(text string) Unit {
	return Unit{text: text, weight: s.weight(text)}
}

// Segment splits text into anchor groups of units.
func (s *Segmenter) Segment(text string) []Group {
	regions := trimTrailing(AnchorPattern.Split(text, -1))
	groups := make([]Group, len(regions))
	for i, region := range regions {
		leaves := trimTrailing(BoundaryPattern.Split(region, -1))
		g := make(Group, len(leaves))
		for j, leaf := range leaves {
			g[j] = s.Unit(leaf)
		}
		groups[i] = g
	}
	return groups
}

// trimTrailing drops empty fields left by delimiters at the end of a text,
// keeping at least one field.
func trimTrailing(fields []string) []string {
	n := len(fields)
	for n > 1 && fields[n-1] == "" {
		n--
	}
	return fields[:n]
}

// Split segments text with the default segmenter.
func Split(text string) []Group {
	return defaultSegmenter.Segment(text)
}

// Join reassembles units into a single string separated by one space.
func Join(units []Unit) string {
	var b strings.Builder
	for i, u := range units {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(u.text)
	}
	return b.String()
}
