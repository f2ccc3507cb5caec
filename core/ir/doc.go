// Package ir provides the interchange representation of an aligned bitext.
//
// # Core Types
//
//   - ParallelCorpus: two corpus references plus their alignment sets
//   - Alignment: the units produced by one alignment run at one level
//   - AlignedUnit: a single block, with the text of each side keyed by corpus ID
//
// # Content Addressing
//
// Every unit carries a BLAKE3 hash of its texts so that exported alignments can
// be compared and verified without re-running the aligner.
//
// # Example
//
//	pc, err := ir.NewParallelCorpus(
//	    &ir.CorpusRef{ID: "en", Language: "en"},
//	    &ir.CorpusRef{ID: "no", Language: "nb"},
//	)
//	if err != nil {
//	    return err
//	}
//	pc.AddAlignment(&ir.Alignment{
//	    ID:    "sentences",
//	    Level: ir.AlignSentence,
//	    Units: []*ir.AlignedUnit{
//	        ir.NewAlignedUnit(0, "1-1", ir.AlignSentence, map[string]string{
//	            "en": "jumps",
//	            "no": "hopper",
//	        }),
//	    },
//	})
package ir
