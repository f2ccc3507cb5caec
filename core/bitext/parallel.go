package bitext

import (
	"fmt"

	"github.com/FocuswithJustin/JuniperAlign/core/ir"
	"github.com/FocuswithJustin/JuniperAlign/core/segment"
)

// Parallel aligns two texts and records the result as a parallel corpus with
// one sentence-level unit per block and one region-level unit per anchor
// group.
func (a *Aligner) Parallel(leftRef, rightRef ir.CorpusRef, left, right string) (*ir.ParallelCorpus, error) {
	if a.err != nil {
		return nil, a.err
	}
	return a.ParallelGroups(leftRef, rightRef, a.segmenter.Segment(left), a.segmenter.Segment(right))
}

// ParallelGroups is Parallel for texts that are already segmented.
func (a *Aligner) ParallelGroups(leftRef, rightRef ir.CorpusRef, left, right []segment.Group) (*ir.ParallelCorpus, error) {
	pc, err := ir.NewParallelCorpus(&leftRef, &rightRef)
	if err != nil {
		return nil, fmt.Errorf("failed to create parallel corpus: %w", err)
	}

	groups, err := a.alignGroups("parallel", left, right)
	if err != nil {
		return nil, err
	}

	method := a.Selector().String()
	sentences := &ir.Alignment{
		ID:     pc.ID + "-sentences",
		Level:  ir.AlignSentence,
		Method: method,
	}
	regions := &ir.Alignment{
		ID:     pc.ID + "-regions",
		Level:  ir.AlignRegion,
		Method: method,
	}

	for anchor, blocks := range groups {
		for _, b := range blocks {
			tp := textPair(b)
			sentences.Units = append(sentences.Units, ir.NewAlignedUnit(anchor, b.Kind().String(), ir.AlignSentence,
				map[string]string{leftRef.ID: tp.Left, rightRef.ID: tp.Right}))
		}
		regionKind := fmt.Sprintf("%d-%d", len(left[anchor]), len(right[anchor]))
		regions.Units = append(regions.Units, ir.NewAlignedUnit(anchor, regionKind, ir.AlignRegion,
			map[string]string{leftRef.ID: segment.Join(left[anchor]), rightRef.ID: segment.Join(right[anchor])}))
	}

	pc.AddAlignment(sentences)
	pc.AddAlignment(regions)
	return pc, nil
}
