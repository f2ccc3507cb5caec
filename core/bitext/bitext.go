// Package bitext aligns two parallel texts block by block.
//
// Texts are split into anchor groups on "||" and into units on "|". The
// groups must correspond one to one; the units inside each pair of groups
// are aligned with core/align and the resulting blocks are joined back into
// text.
//
//	pairs, err := bitext.AlignText("foo", "bar | baz")
//	// pairs == []TextPair{{Left: "foo", Right: "bar baz"}}
package bitext

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/FocuswithJustin/JuniperAlign/core/align"
	"github.com/FocuswithJustin/JuniperAlign/core/cache"
	"github.com/FocuswithJustin/JuniperAlign/core/errors"
	"github.com/FocuswithJustin/JuniperAlign/core/segment"
	"github.com/FocuswithJustin/JuniperAlign/internal/logging"
	"github.com/FocuswithJustin/JuniperAlign/internal/workerpool"
)

// Item is anything with a non-negative alignment weight.
type Item interface {
	Weight() float64
}

// Block is one aligned block of items. At most one side is empty.
type Block[T Item] struct {
	Left  []T
	Right []T
}

// Kind returns the block category.
func (b Block[T]) Kind() align.Kind {
	return align.Kind{Left: len(b.Left), Right: len(b.Right)}
}

// String returns the block in "<left,right>" form with the items of each
// side formatted by fmt and separated by one space.
func (b Block[T]) String() string {
	return "<" + joinItems(b.Left) + "," + joinItems(b.Right) + ">"
}

func joinItems[T Item](items []T) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprint(it)
	}
	return strings.Join(parts, " ")
}

// TextPair is an aligned block with each side joined into one string.
type TextPair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// String returns the pair in "<left,right>" form.
func (p TextPair) String() string {
	return "<" + p.Left + "," + p.Right + ">"
}

// Aligner holds alignment settings. It is safe for concurrent use.
type Aligner struct {
	method    align.Method
	model     align.Model
	selector  *align.Selector
	segmenter *segment.Segmenter
	estimate  bool
	workers   int
	cache     *cache.AlignmentCache
	logger    *slog.Logger

	// err is a configuration error reported by every call.
	err error
}

// Option configures an Aligner.
type Option func(*Aligner)

// WithMethod selects the alignment method by name.
func WithMethod(m align.Method) Option {
	return func(a *Aligner) {
		a.method = m
	}
}

// WithModel replaces the cost model.
func WithModel(m align.Model) Option {
	return func(a *Aligner) {
		a.model = m
	}
}

// WithSelector selects a method and overrides model parameters from a
// parsed selector. Overrides are applied after every other option.
func WithSelector(s align.Selector) Option {
	return func(a *Aligner) {
		a.method = s.Method
		a.selector = &s
	}
}

// WithSegmenter sets the segmenter used by AlignText.
func WithSegmenter(s *segment.Segmenter) Option {
	return func(a *Aligner) {
		if s != nil {
			a.segmenter = s
		}
	}
}

// WithEstimatedRatio replaces the model ratio by the observed ratio of total
// right weight to total left weight, computed once per call over all groups.
func WithEstimatedRatio(on bool) Option {
	return func(a *Aligner) {
		a.estimate = on
	}
}

// WithWorkers aligns anchor groups on n goroutines. One aligns
// sequentially; zero or less picks one worker per CPU, up to
// workerpool.MaxWorkers.
func WithWorkers(n int) Option {
	return func(a *Aligner) {
		if n <= 0 {
			n = workerpool.DefaultWorkers()
		}
		a.workers = n
	}
}

// WithCache memoises block alignments.
func WithCache(c *cache.AlignmentCache) Option {
	return func(a *Aligner) {
		a.cache = c
	}
}

// WithLogger sets the logger for alignment events. Without it the aligner
// logs nothing.
func WithLogger(l *slog.Logger) Option {
	return func(a *Aligner) {
		if l != nil {
			a.logger = l
		}
	}
}

// New creates an Aligner. Invalid settings are reported by the first call
// that uses them.
func New(opts ...Option) *Aligner {
	a := &Aligner{
		method:    align.DefaultMethod,
		model:     align.DefaultModel(),
		segmenter: segment.Default(),
		workers:   1,
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.selector != nil {
		a.model, a.err = a.selector.Apply(a.model)
	}
	if a.err == nil {
		a.method, a.err = align.Lookup(string(a.method))
	}
	if a.err == nil {
		a.err = a.model.Validate()
	}
	return a
}

var defaultAligner = New()

// Method returns the canonical method name.
func (a *Aligner) Method() align.Method {
	return a.method
}

// Model returns the configured cost model.
func (a *Aligner) Model() align.Model {
	return a.model
}

// Selector returns the method and parameters in selector form.
func (a *Aligner) Selector() align.Selector {
	return align.Selector{
		Method: a.method,
		Params: []align.Param{
			{Key: "ratio", Value: a.model.Ratio},
			{Key: "variance", Value: a.model.Variance},
			{Key: "indel", Value: float64(a.model.PenaltyIndel)},
			{Key: "expand", Value: float64(a.model.PenaltyExpand)},
			{Key: "meld", Value: float64(a.model.PenaltyMeld)},
			{Key: "max_cost", Value: float64(a.model.MaxCost)},
		},
	}
}

// Align aligns two weight sequences. With WithEstimatedRatio the ratio is
// estimated from these two sequences.
func (a *Aligner) Align(left, right []float64) ([]align.Pair, error) {
	if a.err != nil {
		return nil, a.err
	}
	model := a.model
	if a.estimate {
		model = model.WithRatio(align.EstimateRatio(left, right))
	}
	pairs, err := a.alignWeights(model, left, right)
	if err != nil {
		return nil, err
	}
	return clonePairs(pairs), nil
}

// alignWeights runs the block aligner through the cache. The returned slice
// may be shared with the cache.
func (a *Aligner) alignWeights(model align.Model, left, right []float64) ([]align.Pair, error) {
	if a.cache == nil {
		return align.Align(left, right, a.method, model)
	}

	key := cache.Key(a.method, model, left, right)
	if pairs, ok := a.cache.Get(key); ok {
		return pairs, nil
	}
	pairs, err := align.Align(left, right, a.method, model)
	if err != nil {
		return nil, err
	}
	a.cache.Put(key, pairs)
	return pairs, nil
}

func clonePairs(pairs []align.Pair) []align.Pair {
	out := make([]align.Pair, len(pairs))
	for i, p := range pairs {
		out[i] = align.Pair{
			Left:  append([]int(nil), p.Left...),
			Right: append([]int(nil), p.Right...),
		}
	}
	return out
}

// AlignItems aligns two item sequences and maps the blocks back to items.
// A nil aligner uses the defaults.
func AlignItems[T Item](a *Aligner, left, right []T) ([]Block[T], error) {
	if a == nil {
		a = defaultAligner
	}
	if a.err != nil {
		return nil, a.err
	}

	lw, rw := weights(left), weights(right)
	model := a.model
	if a.estimate {
		model = model.WithRatio(align.EstimateRatio(lw, rw))
	}
	pairs, err := a.alignWeights(model, lw, rw)
	if err != nil {
		return nil, err
	}
	return toBlocks(pairs, left, right), nil
}

func weights[T Item](items []T) []float64 {
	ws := make([]float64, len(items))
	for i, it := range items {
		ws[i] = it.Weight()
	}
	return ws
}

func toBlocks[T Item](pairs []align.Pair, left, right []T) []Block[T] {
	blocks := make([]Block[T], len(pairs))
	for i, p := range pairs {
		b := Block[T]{
			Left:  make([]T, len(p.Left)),
			Right: make([]T, len(p.Right)),
		}
		for j, idx := range p.Left {
			b.Left[j] = left[idx]
		}
		for j, idx := range p.Right {
			b.Right[j] = right[idx]
		}
		blocks[i] = b
	}
	return blocks
}

// AlignText segments both texts and aligns them group by group.
func (a *Aligner) AlignText(left, right string) ([]TextPair, error) {
	if a.err != nil {
		return nil, a.err
	}
	return a.AlignGroups(a.segmenter.Segment(left), a.segmenter.Segment(right))
}

// AlignGroups aligns texts that are already segmented into anchor groups.
func (a *Aligner) AlignGroups(left, right []segment.Group) ([]TextPair, error) {
	groups, err := a.alignGroups("align_text", left, right)
	if err != nil {
		return nil, err
	}

	var pairs []TextPair
	for _, blocks := range groups {
		for _, b := range blocks {
			pairs = append(pairs, textPair(b))
		}
	}
	if pairs == nil {
		pairs = []TextPair{}
	}
	return pairs, nil
}

func textPair(b Block[segment.Unit]) TextPair {
	return TextPair{Left: segment.Join(b.Left), Right: segment.Join(b.Right)}
}

// AlignText aligns two texts with a one-off Aligner.
func AlignText(left, right string, opts ...Option) ([]TextPair, error) {
	return New(opts...).AlignText(left, right)
}

type groupJob struct {
	left, right segment.Group
}

type groupResult struct {
	blocks []Block[segment.Unit]
	err    error
}

// alignGroups returns the blocks of every group in group order.
func (a *Aligner) alignGroups(op string, left, right []segment.Group) ([][]Block[segment.Unit], error) {
	start := time.Now()
	if a.err != nil {
		logging.AlignmentFailed(a.logger, op, a.err)
		return nil, a.err
	}
	if len(left) != len(right) {
		err := errors.NewAnchorMismatch(len(left), len(right))
		logging.AlignmentFailed(a.logger, op, err)
		return nil, err
	}

	model := a.model
	if a.estimate {
		model = model.WithRatio(align.EstimateRatio(flatWeights(left), flatWeights(right)))
	}

	run := func(j groupJob) groupResult {
		pairs, err := a.alignWeights(model, j.left.Weights(), j.right.Weights())
		if err != nil {
			return groupResult{err: err}
		}
		return groupResult{blocks: toBlocks(pairs, j.left, j.right)}
	}

	jobs := make([]groupJob, len(left))
	for i := range left {
		jobs[i] = groupJob{left: left[i], right: right[i]}
	}

	var results []groupResult
	if a.workers > 1 && len(jobs) > 1 {
		results = workerpool.Map(a.workers, jobs, run)
	} else {
		results = make([]groupResult, len(jobs))
		for i, j := range jobs {
			results[i] = run(j)
			if results[i].err != nil {
				break
			}
		}
	}

	out := make([][]Block[segment.Unit], len(results))
	var blocks, nl, nr int
	for i, r := range results {
		if r.err != nil {
			err := fmt.Errorf("anchor group %d: %w", i, r.err)
			logging.AlignmentFailed(a.logger, op, err, "group", i)
			return nil, err
		}
		out[i] = r.blocks
		blocks += len(r.blocks)
		nl += len(left[i])
		nr += len(right[i])
	}

	logging.AlignmentDone(a.logger, string(a.method), len(left), blocks, nl, nr, time.Since(start),
		"ratio", model.Ratio, "workers", a.workers)
	if a.cache != nil {
		s := a.cache.Stats()
		logging.CacheStats(a.logger, s.Hits, s.Misses, s.Evictions, s.Size)
	}
	return out, nil
}

func flatWeights(groups []segment.Group) []float64 {
	var ws []float64
	for _, g := range groups {
		ws = append(ws, g.Weights()...)
	}
	return ws
}
