// Package source reads alignment inputs from plain text, XML and compressed
// files.
package source

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/JuniperAlign/core/errors"
	"github.com/FocuswithJustin/JuniperAlign/core/segment"
)

// Compression identifies the container format of an input.
type Compression string

// Supported compression formats.
const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionXZ   Compression = "xz"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	xzMagic   = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}
)

// Injectable functions for testing
var (
	osReadFile    = os.ReadFile
	xzNewReader   = xz.NewReader
	gzipNewReader = gzip.NewReader
)

// Detect returns the compression format of data from its magic bytes.
func Detect(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, xzMagic):
		return CompressionXZ
	case bytes.HasPrefix(data, gzipMagic):
		return CompressionGzip
	}
	return CompressionNone
}

// Read returns the decompressed contents of the file at path.
func Read(path string) ([]byte, error) {
	if err := ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := osReadFile(path)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	out, err := Decompress(data)
	if err != nil {
		return nil, errors.NewIO("decompress", path, err)
	}
	return out, nil
}

// Decompress undoes xz or gzip compression. Other data is returned as is.
// Output beyond MaxInputSize is an error.
func Decompress(data []byte) ([]byte, error) {
	var r io.Reader
	switch Detect(data) {
	case CompressionXZ:
		xr, err := xzNewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		r = xr
	case CompressionGzip:
		gr, err := gzipNewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer gr.Close()
		r = gr
	default:
		if len(data) > MaxInputSize {
			return nil, errTooLarge
		}
		return data, nil
	}
	out, err := io.ReadAll(io.LimitReader(r, MaxInputSize+1))
	if err != nil {
		return nil, err
	}
	if len(out) > MaxInputSize {
		return nil, errTooLarge
	}
	return out, nil
}

var errTooLarge = errors.NewValidation("input", fmt.Sprintf("larger than %d bytes", MaxInputSize))

// IsXML reports whether the input should be read as XML: either its name
// ends in .xml before any compression suffix, or its first non-blank byte
// opens a tag.
func IsXML(path string, data []byte) bool {
	name := strings.ToLower(path)
	for _, ext := range []string{".xz", ".gz"} {
		name = strings.TrimSuffix(name, ext)
	}
	if filepath.Ext(name) == ".xml" {
		return true
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	return len(trimmed) > 0 && trimmed[0] == '<'
}

// Options selects the XML nodes that become units and anchor groups.
type Options struct {
	// UnitXPath matches the units of one group, relative to the group node.
	UnitXPath string

	// GroupXPath matches the anchor groups. Empty means the whole document
	// is one group.
	GroupXPath string
}

// Load reads the file at path and segments it. XML inputs are segmented by
// opts; text inputs by seg's anchor and boundary delimiters.
func Load(path string, seg *segment.Segmenter, opts Options) ([]segment.Group, error) {
	data, err := Read(path)
	if err != nil {
		return nil, err
	}
	if seg == nil {
		seg = segment.Default()
	}
	if IsXML(path, data) {
		groups, err := Groups(data, seg, opts)
		if err != nil {
			var pe *errors.ParseError
			if errors.As(err, &pe) && pe.Path == "" {
				pe.Path = path
			}
			return nil, err
		}
		return groups, nil
	}
	if err := checkText(path, data); err != nil {
		return nil, err
	}
	text := strings.TrimSpace(strings.TrimPrefix(string(data), "\ufeff"))
	return seg.Segment(text), nil
}
