package tmx

import (
	"bytes"
	"encoding/xml"
	"strings"
)

// escapeText escapes character data. Control characters that XML 1.0
// cannot carry are replaced with U+FFFD.
func escapeText(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// escapeAttr escapes text for use in a double-quoted attribute.
func escapeAttr(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	return s
}
