package source

import (
	"bytes"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/FocuswithJustin/JuniperAlign/core/errors"
)

// Input limits.
const (
	// MaxInputSize is the largest decompressed input accepted (256 MB).
	MaxInputSize = 256 << 20
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
)

// ValidatePath rejects empty or overlong paths and paths with control
// characters.
func ValidatePath(path string) error {
	if path == "" {
		return errors.NewValidation("path", "must not be empty")
	}
	if len(path) > MaxPathLength {
		return errors.NewValidation("path", "too long")
	}
	if strings.ContainsRune(path, 0) {
		return errors.NewValidation("path", "null byte not allowed")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return errors.NewValidation("path", "control character not allowed")
		}
	}
	return nil
}

// checkText rejects data that does not look like UTF-8 text. Empty data is
// valid text.
func checkText(path string, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if !isLikelyText(data) {
		return errors.NewUnsupported("input "+path, "binary content")
	}
	return nil
}

// isLikelyText inspects at most the first 512 bytes.
func isLikelyText(data []byte) bool {
	buf := data
	if len(buf) > 512 {
		buf = buf[:512]
		// Drop a rune split at the cut.
		for i := 0; i < utf8.UTFMax && len(buf) > 0 && !utf8.Valid(buf); i++ {
			buf = buf[:len(buf)-1]
		}
	}
	if len(buf) == 0 || bytes.IndexByte(buf, 0) != -1 || !utf8.Valid(buf) {
		return false
	}

	printable, control := 0, 0
	for _, b := range buf {
		switch {
		case b >= 0x20 || b == '\t' || b == '\n' || b == '\r':
			printable++
		default:
			control++
		}
	}
	return float64(printable)/float64(printable+control) > 0.95
}
