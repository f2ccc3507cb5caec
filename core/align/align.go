// Package align partitions two ordered sequences of weights into a sequence of
// corresponding blocks.
//
// The result is a list of index groups. Concatenating every Pair.Left in order
// yields 0..len(left)-1 exactly once, and likewise for Pair.Right. Blocks never
// reorder, duplicate or drop an index, and no block is empty on both sides.
//
// The only method is GaleChurch, a dynamic program over the block categories
// 1-1, 1-0, 0-1, 2-1, 1-2 and 2-2 that scores each candidate block by how far
// the summed weights on either side stray from the expected length ratio.
//
// All functions are pure and safe for concurrent use.
package align

import (
	"fmt"
	"math"
	"strings"

	"github.com/FocuswithJustin/JuniperAlign/core/errors"
)

// Method selects an alignment algorithm.
type Method string

const (
	// GaleChurch is the length-based statistical aligner.
	GaleChurch Method = "gale-church"

	// DefaultMethod is used when no method is given.
	DefaultMethod = GaleChurch
)

// Lookup resolves a method name to its canonical form. The empty name selects
// DefaultMethod and underscores are accepted in place of hyphens.
func Lookup(name string) (Method, error) {
	if name == "" {
		return DefaultMethod, nil
	}
	switch Method(strings.ReplaceAll(strings.ToLower(name), "_", "-")) {
	case GaleChurch:
		return GaleChurch, nil
	}
	return "", errors.NewInvalidMethod(name, "")
}

// Kind is a block category, named by the number of items on each side.
type Kind struct {
	Left  int
	Right int
}

// Block categories in the order the dynamic program tries them. On equal cost
// the earlier category wins.
var (
	OneToOne    = Kind{1, 1}
	Deletion    = Kind{1, 0}
	Insertion   = Kind{0, 1}
	Contraction = Kind{2, 1}
	Expansion   = Kind{1, 2}
	Melding     = Kind{2, 2}
)

var categories = [...]Kind{OneToOne, Deletion, Insertion, Contraction, Expansion, Melding}

// String returns the category as "left-right", e.g. "2-1".
func (k Kind) String() string {
	return fmt.Sprintf("%d-%d", k.Left, k.Right)
}

// Pair is one aligned block expressed as indices into the input sequences.
type Pair struct {
	Left  []int `json:"left"`
	Right []int `json:"right"`
}

// Kind returns the category of the block.
func (p Pair) Kind() Kind {
	return Kind{len(p.Left), len(p.Right)}
}

// String returns the block in "<0 1,2>" form.
func (p Pair) String() string {
	return "<" + joinInts(p.Left) + "," + joinInts(p.Right) + ">"
}

func joinInts(idx []int) string {
	parts := make([]string, len(idx))
	for i, v := range idx {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " ")
}

// Align computes the block alignment of left and right with the given method
// and cost model.
func Align(left, right []float64, method Method, model Model) ([]Pair, error) {
	m, err := Lookup(string(method))
	if err != nil {
		return nil, err
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}
	if err := validateWeights("left", left); err != nil {
		return nil, err
	}
	if err := validateWeights("right", right); err != nil {
		return nil, err
	}

	var pairs []Pair
	switch {
	case len(left) == 0 && len(right) == 0:
		return []Pair{}, nil
	case len(left) == 0 || len(right) == 0:
		pairs = []Pair{{Left: span(0, len(left)), Right: span(0, len(right))}}
	case len(left) == 1 && len(right) == 1:
		pairs = []Pair{{Left: []int{0}, Right: []int{0}}}
	default:
		switch m {
		case GaleChurch:
			pairs = galeChurch(left, right, model)
		}
	}

	if err := Verify(pairs, len(left), len(right)); err != nil {
		return nil, err
	}
	return pairs, nil
}

// AlignDefault aligns with DefaultMethod and DefaultModel.
func AlignDefault(left, right []float64) ([]Pair, error) {
	return Align(left, right, DefaultMethod, DefaultModel())
}

// Verify checks that pairs cover 0..m-1 on the left and 0..n-1 on the right,
// in order and exactly once, with no block empty on both sides.
func Verify(pairs []Pair, m, n int) error {
	nextL, nextR := 0, 0
	for _, p := range pairs {
		if len(p.Left) == 0 && len(p.Right) == 0 {
			return errors.NewConsistency("left", m, nextL)
		}
		for _, i := range p.Left {
			if i != nextL {
				return errors.NewConsistency("left", m, nextL)
			}
			nextL++
		}
		for _, j := range p.Right {
			if j != nextR {
				return errors.NewConsistency("right", n, nextR)
			}
			nextR++
		}
	}
	if nextL != m {
		return errors.NewConsistency("left", m, nextL)
	}
	if nextR != n {
		return errors.NewConsistency("right", n, nextR)
	}
	return nil
}

// EstimateRatio returns sum(right)/sum(left), or 1 when either sum is zero.
func EstimateRatio(left, right []float64) float64 {
	var sl, sr float64
	for _, w := range left {
		sl += w
	}
	for _, w := range right {
		sr += w
	}
	if sl == 0 || sr == 0 {
		return 1
	}
	return sr / sl
}

func validateWeights(side string, weights []float64) error {
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return errors.NewValidation(side+" weights", fmt.Sprintf("weight %d is %v, want a finite non-negative number", i, w))
		}
	}
	return nil
}

func span(from, to int) []int {
	idx := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		idx = append(idx, i)
	}
	return idx
}
