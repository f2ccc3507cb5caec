package source

import (
	"bytes"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/FocuswithJustin/JuniperAlign/core/errors"
	"github.com/FocuswithJustin/JuniperAlign/core/segment"
)

// DefaultUnitXPath selects <s> elements, as used by TEI and OPUS corpora.
const DefaultUnitXPath = ".//s"

// Groups parses XML data into anchor groups. Each node matched by
// opts.GroupXPath is one group, and each node under it matched by
// opts.UnitXPath is one unit whose text is the node's inner text with runs of
// whitespace collapsed to one space.
func Groups(data []byte, seg *segment.Segmenter, opts Options) ([]segment.Group, error) {
	if seg == nil {
		seg = segment.Default()
	}
	unitPath := opts.UnitXPath
	if unitPath == "" {
		unitPath = DefaultUnitXPath
	}

	unitExpr, err := compile(unitPath)
	if err != nil {
		return nil, err
	}
	var groupExpr *xpath.Expr
	if opts.GroupXPath != "" {
		if groupExpr, err = compile(opts.GroupXPath); err != nil {
			return nil, err
		}
	}

	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &errors.ParseError{Format: "XML", Message: err.Error(), Err: err}
	}

	roots := []*xmlquery.Node{doc}
	if groupExpr != nil {
		roots = xmlquery.QuerySelectorAll(doc, groupExpr)
	}

	groups := make([]segment.Group, len(roots))
	for i, root := range roots {
		nodes := xmlquery.QuerySelectorAll(root, unitExpr)
		g := make(segment.Group, len(nodes))
		for j, n := range nodes {
			g[j] = seg.Unit(collapse(n.InnerText()))
		}
		groups[i] = g
	}
	return groups, nil
}

func compile(expr string) (*xpath.Expr, error) {
	e, err := xpath.Compile(expr)
	if err != nil {
		return nil, &errors.ParseError{Format: "XPath", Message: expr + ": " + err.Error(), Err: err}
	}
	return e, nil
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
