package ir

import (
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/zeebo/blake3"
)

// jsonMarshal is a variable to allow testing of marshal errors.
var jsonMarshal = json.Marshal

// HashBytes computes the BLAKE3 hash of bytes and returns it as a hex string.
func HashBytes(data []byte) string {
	h := blake3.Sum256(data)
	return hex.EncodeToString(h[:])
}

// HashString computes the BLAKE3 hash of a string and returns it as a hex string.
func HashString(s string) string {
	return HashBytes([]byte(s))
}

// HashUnit hashes a unit's texts in corpus ID order. IDs and texts are
// NUL-separated so that no two distinct maps share an encoding.
func HashUnit(u *AlignedUnit) string {
	ids := make([]string, 0, len(u.Texts))
	for id := range u.Texts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	h := blake3.New()
	for _, id := range ids {
		h.Write([]byte(id))
		h.Write([]byte{0})
		h.Write([]byte(u.Texts[id]))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyUnitHash checks if the stored hash matches the computed hash.
func VerifyUnitHash(u *AlignedUnit) bool {
	if u.Hash == "" {
		return false
	}
	return u.Hash == HashUnit(u)
}

// VerifyAllHashes returns the IDs of all units whose hash does not match.
func VerifyAllHashes(pc *ParallelCorpus) []string {
	var invalid []string
	for _, a := range pc.Alignments {
		for _, u := range a.Units {
			if !VerifyUnitHash(u) {
				invalid = append(invalid, u.ID)
			}
		}
	}
	return invalid
}

// HashParallelCorpus computes the BLAKE3 hash of a ParallelCorpus by serializing to JSON.
func HashParallelCorpus(pc *ParallelCorpus) (string, error) {
	data, err := jsonMarshal(pc)
	if err != nil {
		return "", err
	}
	return HashBytes(data), nil
}
