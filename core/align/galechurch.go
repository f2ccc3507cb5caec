package align

import (
	"math"

	"github.com/FocuswithJustin/JuniperAlign/core/errors"
)

// MaxPenalty bounds the integer model parameters so that block costs summed
// over long sequences cannot overflow.
const MaxPenalty = math.MaxInt32

// Model holds the parameters of the length-based cost function. Costs are
// integers in units of -100·ln(probability).
type Model struct {
	// Ratio is the expected right weight per unit of left weight.
	Ratio float64 `json:"ratio" toml:"ratio"`

	// Variance is the variance of right weight per unit of left weight.
	Variance float64 `json:"variance" toml:"variance"`

	// PenaltyIndel is added to 1-0 and 0-1 blocks.
	PenaltyIndel int `json:"penalty_indel" toml:"penalty_indel"`

	// PenaltyExpand is added to 2-1 and 1-2 blocks.
	PenaltyExpand int `json:"penalty_expand" toml:"penalty_expand"`

	// PenaltyMeld is added to 2-2 blocks.
	PenaltyMeld int `json:"penalty_meld" toml:"penalty_meld"`

	// MaxCost caps the match cost of a single block.
	MaxCost int `json:"max_cost" toml:"max_cost"`
}

// DefaultModel returns the parameters published by Gale and Church.
func DefaultModel() Model {
	return Model{
		Ratio:         1,
		Variance:      6.8,
		PenaltyIndel:  450,
		PenaltyExpand: 230,
		PenaltyMeld:   440,
		MaxCost:       2500,
	}
}

// Validate reports the first invalid parameter.
func (m Model) Validate() error {
	switch {
	case !(m.Ratio > 0) || math.IsInf(m.Ratio, 0):
		return errors.NewValidation("ratio", "must be a positive number")
	case !(m.Variance > 0) || math.IsInf(m.Variance, 0):
		return errors.NewValidation("variance", "must be a positive number")
	case m.PenaltyIndel < 0 || m.PenaltyIndel > MaxPenalty:
		return errors.NewValidation("penalty_indel", "must be between 0 and 2147483647")
	case m.PenaltyExpand < 0 || m.PenaltyExpand > MaxPenalty:
		return errors.NewValidation("penalty_expand", "must be between 0 and 2147483647")
	case m.PenaltyMeld < 0 || m.PenaltyMeld > MaxPenalty:
		return errors.NewValidation("penalty_meld", "must be between 0 and 2147483647")
	case m.MaxCost <= 0 || m.MaxCost > MaxPenalty:
		return errors.NewValidation("max_cost", "must be between 1 and 2147483647")
	}
	return nil
}

// WithRatio returns a copy of m using the given ratio.
func (m Model) WithRatio(ratio float64) Model {
	m.Ratio = ratio
	return m
}

// MatchCost scores a block whose sides weigh l1 and l2. The cost is the
// two-sided normal tail of the length deviation, so for a fixed total it grows
// with |Ratio·l1 - l2|, and it never exceeds MaxCost.
func (m Model) MatchCost(l1, l2 float64) int {
	if l1 == 0 && l2 == 0 {
		return 0
	}
	mean := (l1 + l2/m.Ratio) / 2
	z := math.Abs(m.Ratio*l1-l2) / math.Sqrt(m.Variance*mean)
	p := math.Erfc(z / math.Sqrt2)
	if p <= 0 {
		return m.MaxCost
	}
	c := -100 * math.Log(p)
	if c >= float64(m.MaxCost) {
		return m.MaxCost
	}
	return int(c)
}

// Cost scores a block of category k with the given side weights.
func (m Model) Cost(k Kind, l1, l2 float64) int {
	return m.MatchCost(l1, l2) + m.penalty(k)
}

func (m Model) penalty(k Kind) int {
	switch k {
	case OneToOne:
		return 0
	case Deletion, Insertion:
		return m.PenaltyIndel
	case Contraction, Expansion:
		return m.PenaltyExpand
	case Melding:
		return m.PenaltyMeld
	}
	return m.MaxCost
}

// galeChurch fills a (len(x)+1)×(len(y)+1) cost grid where cell (i, j) holds
// the cheapest alignment of x[:i] with y[:j], then walks the back pointers from
// the far corner.
func galeChurch(x, y []float64, model Model) []Pair {
	nx, ny := len(x), len(y)
	cols := ny + 1
	dist := make([]int, (nx+1)*cols)
	back := make([]uint8, (nx+1)*cols)

	for i := 0; i <= nx; i++ {
		for j := 0; j <= ny; j++ {
			if i == 0 && j == 0 {
				continue
			}
			best := math.MaxInt
			var bestCat uint8
			for c, k := range categories {
				if i < k.Left || j < k.Right {
					continue
				}
				d := dist[(i-k.Left)*cols+j-k.Right] +
					model.Cost(k, sum(x[i-k.Left:i]), sum(y[j-k.Right:j]))
				if d < best {
					best = d
					bestCat = uint8(c)
				}
			}
			dist[i*cols+j] = best
			back[i*cols+j] = bestCat
		}
	}

	var rev []Pair
	for i, j := nx, ny; i > 0 || j > 0; {
		k := categories[back[i*cols+j]]
		rev = append(rev, Pair{
			Left:  span(i-k.Left, i),
			Right: span(j-k.Right, j),
		})
		i -= k.Left
		j -= k.Right
	}

	pairs := make([]Pair, len(rev))
	for n, p := range rev {
		pairs[len(rev)-1-n] = p
	}
	return pairs
}

func sum(ws []float64) float64 {
	var s float64
	for _, w := range ws {
		s += w
	}
	return s
}
