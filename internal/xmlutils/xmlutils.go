// Package xmlutils wraps the xmlpath-based XML access used by the importer.
//
// xmlpath matches elements by local name and ignores namespace URIs, which
// makes every path below namespace-agnostic: the same expressions work for
// all CAMT.053 sub-versions regardless of the xmlns they declare.
package xmlutils

import (
	"bytes"
	"encoding/xml"
	"io"

	"gopkg.in/xmlpath.v2"
)

// Parse parses raw XML bytes into an xmlpath tree. On malformed input the
// second return value is the byte offset at which decoding failed.
func Parse(raw []byte) (*xmlpath.Node, int64, error) {
	root, err := xmlpath.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, errorOffset(raw), err
	}
	return root, 0, nil
}

// errorOffset re-runs a token scan over the document to locate the byte
// offset of the first syntax error. xmlpath does not expose decoder state,
// so the position is recovered with a second pass.
func errorOffset(raw []byte) int64 {
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	for {
		_, err := decoder.Token()
		if err == io.EOF {
			return decoder.InputOffset()
		}
		if err != nil {
			return decoder.InputOffset()
		}
	}
}

// Text returns the string value of the first match of path under node.
func Text(node *xmlpath.Node, path *xmlpath.Path) (string, bool) {
	return path.String(node)
}

// TextOr returns the string value of the first match of path under node, or
// fallback when there is none.
func TextOr(node *xmlpath.Node, path *xmlpath.Path, fallback string) string {
	if value, ok := path.String(node); ok {
		return value
	}
	return fallback
}

// Nodes collects all matches of path under node in document order.
func Nodes(node *xmlpath.Node, path *xmlpath.Path) []*xmlpath.Node {
	var result []*xmlpath.Node
	iter := path.Iter(node)
	for iter.Next() {
		result = append(result, iter.Node())
	}
	return result
}

// Count returns the number of matches of path under node.
func Count(node *xmlpath.Node, path *xmlpath.Path) int {
	n := 0
	iter := path.Iter(node)
	for iter.Next() {
		n++
	}
	return n
}
