package ir

import (
	"fmt"

	"github.com/google/uuid"
)

// AlignmentLevel represents the granularity of alignment.
type AlignmentLevel string

// Alignment level constants.
const (
	// AlignRegion aligns whole anchor-delimited regions.
	AlignRegion AlignmentLevel = "region"

	// AlignSentence aligns boundary-delimited sentences or clauses.
	AlignSentence AlignmentLevel = "sentence"
)

// CorpusRef is a lightweight reference to one side of a bitext.
type CorpusRef struct {
	// ID is the corpus identifier.
	ID string `json:"id"`

	// Language is the BCP-47 language tag.
	Language string `json:"language,omitempty"`

	// Title is the optional display title.
	Title string `json:"title,omitempty"`
}

// ParallelCorpus represents two texts and their alignments.
type ParallelCorpus struct {
	// ID is the unique identifier for this parallel corpus.
	ID string `json:"id"`

	// Version is the schema version.
	Version string `json:"version"`

	// BaseCorpus is the left-hand corpus.
	BaseCorpus *CorpusRef `json:"base_corpus,omitempty"`

	// Corpora contains references to all aligned corpora, left first.
	Corpora []*CorpusRef `json:"corpora"`

	// Alignments contains the alignment data.
	Alignments []*Alignment `json:"alignments,omitempty"`

	// DefaultAlignment is the default alignment level.
	DefaultAlignment AlignmentLevel `json:"default_alignment"`

	// Metadata contains optional metadata.
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Alignment represents a set of aligned units at a particular level.
type Alignment struct {
	// ID is the unique identifier for this alignment set.
	ID string `json:"id"`

	// Level is the alignment granularity.
	Level AlignmentLevel `json:"level"`

	// Method is the selector that produced the alignment.
	Method string `json:"method,omitempty"`

	// Units contains the aligned text units in text order.
	Units []*AlignedUnit `json:"units,omitempty"`
}

// AlignedUnit represents one aligned block.
type AlignedUnit struct {
	// ID is the unique identifier for this unit.
	ID string `json:"id"`

	// Anchor is the zero-based anchor group the unit belongs to.
	Anchor int `json:"anchor"`

	// Kind is the block category, e.g. "1-1" or "2-1".
	Kind string `json:"kind"`

	// Texts maps corpus ID to the text content.
	Texts map[string]string `json:"texts"`

	// Level is the alignment level for this unit.
	Level AlignmentLevel `json:"level"`

	// Hash is the BLAKE3 digest of Texts.
	Hash string `json:"hash,omitempty"`
}

// NewParallelCorpus creates an empty parallel corpus over left and right.
func NewParallelCorpus(left, right *CorpusRef) (*ParallelCorpus, error) {
	if left == nil || right == nil {
		return nil, fmt.Errorf("both corpora are required")
	}
	if left.ID == "" || right.ID == "" {
		return nil, fmt.Errorf("corpus IDs must not be empty")
	}
	if left.ID == right.ID {
		return nil, fmt.Errorf("corpus IDs must differ, both are %q", left.ID)
	}

	return &ParallelCorpus{
		ID:               fmt.Sprintf("parallel-%s-%s", left.ID, right.ID),
		Version:          "1.0.0",
		BaseCorpus:       left,
		Corpora:          []*CorpusRef{left, right},
		DefaultAlignment: AlignSentence,
	}, nil
}

// NewAlignedUnit creates a unit with a fresh ID and a computed hash.
func NewAlignedUnit(anchor int, kind string, level AlignmentLevel, texts map[string]string) *AlignedUnit {
	u := &AlignedUnit{
		ID:     uuid.New().String(),
		Anchor: anchor,
		Kind:   kind,
		Texts:  texts,
		Level:  level,
	}
	u.Hash = HashUnit(u)
	return u
}

// AddAlignment appends an alignment set.
func (pc *ParallelCorpus) AddAlignment(a *Alignment) {
	pc.Alignments = append(pc.Alignments, a)
}

// UnitsAt returns the units of the default level that belong to the given anchor group.
func (pc *ParallelCorpus) UnitsAt(anchor int) []*AlignedUnit {
	var result []*AlignedUnit

	for _, alignment := range pc.Alignments {
		if alignment.Level != pc.DefaultAlignment {
			continue
		}
		for _, unit := range alignment.Units {
			if unit.Anchor == anchor {
				result = append(result, unit)
			}
		}
	}

	return result
}

// Texts returns the text of every default-level unit for one corpus, in order.
func (pc *ParallelCorpus) Texts(corpusID string) []string {
	var result []string
	for _, alignment := range pc.Alignments {
		if alignment.Level != pc.DefaultAlignment {
			continue
		}
		for _, unit := range alignment.Units {
			result = append(result, unit.Texts[corpusID])
		}
	}
	return result
}
