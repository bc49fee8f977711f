package camtimport

import (
	"gopkg.in/xmlpath.v2"

	"fjacquet/camt-import/internal/importerror"
	"fjacquet/camt-import/internal/xmlutils"
)

// readDocument parses raw CAMT.053 bytes and returns the BkToCstmrStmt node.
// The document must be well-formed XML and must contain exactly one
// BkToCstmrStmt with at least one statement.
func readDocument(raw []byte) (*xmlpath.Node, error) {
	root, offset, err := xmlutils.Parse(raw)
	if err != nil {
		return nil, importerror.ParseError(offset, err)
	}

	messages := xmlutils.Nodes(root, pathBkToCstmrStmt)
	if len(messages) == 0 {
		return nil, importerror.New(importerror.KindUnsupportedDocument,
			"not a CAMT.053 document: no BkToCstmrStmt element")
	}
	if len(messages) > 1 {
		return nil, importerror.New(importerror.KindUnsupportedDocument,
			"unsupported document: %d BkToCstmrStmt elements, expected exactly one", len(messages))
	}

	message := messages[0]
	if xmlutils.Count(message, pathStmt) == 0 {
		return nil, importerror.New(importerror.KindUnsupportedDocument,
			"CAMT.053 document contains no statements")
	}
	return message, nil
}
