// Package tmx writes aligned text pairs as a TMX 1.4 translation memory.
package tmx

import (
	"bufio"
	"fmt"
	"io"

	"github.com/FocuswithJustin/JuniperAlign/core/bitext"
)

// Version is the TMX version written.
const Version = "1.4"

// Header describes the translation memory.
type Header struct {
	SourceLang  string
	TargetLang  string
	Tool        string
	ToolVersion string
}

func (h Header) withDefaults() Header {
	if h.SourceLang == "" {
		h.SourceLang = "und"
	}
	if h.TargetLang == "" {
		h.TargetLang = "und"
	}
	if h.Tool == "" {
		h.Tool = "bialign"
	}
	return h
}

// Write encodes pairs as one translation unit each. A block with an empty
// side is written with an empty segment on that side.
func Write(w io.Writer, h Header, pairs []bitext.TextPair) error {
	h = h.withDefaults()
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(bw, "<tmx version=\"%s\">\n", Version)
	fmt.Fprintf(bw, "  <header creationtool=\"%s\" creationtoolversion=\"%s\" segtype=\"sentence\" o-tmf=\"%s\" adminlang=\"en\" srclang=\"%s\" datatype=\"plaintext\"/>\n",
		escapeAttr(h.Tool), escapeAttr(h.ToolVersion), escapeAttr(h.Tool), escapeAttr(h.SourceLang))
	fmt.Fprintf(bw, "  <body>\n")
	for _, p := range pairs {
		fmt.Fprintf(bw, "    <tu>\n")
		writeTUV(bw, h.SourceLang, p.Left)
		writeTUV(bw, h.TargetLang, p.Right)
		fmt.Fprintf(bw, "    </tu>\n")
	}
	fmt.Fprintf(bw, "  </body>\n")
	fmt.Fprintf(bw, "</tmx>\n")

	return bw.Flush()
}

func writeTUV(w io.Writer, lang, text string) {
	fmt.Fprintf(w, "      <tuv xml:lang=\"%s\"><seg>%s</seg></tuv>\n", escapeAttr(lang), escapeText(text))
}
