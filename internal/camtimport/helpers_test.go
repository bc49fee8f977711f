package camtimport

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/xmlpath.v2"

	"fjacquet/camt-import/internal/xmlutils"
)

var (
	testPathStmt = xmlpath.MustCompile("//Stmt")
	testPathNtry = xmlpath.MustCompile("//Ntry")
)

// parseNodes parses a document and returns all matches of path.
func parseNodes(t *testing.T, doc string, path *xmlpath.Path) []*xmlpath.Node {
	t.Helper()
	root, _, err := xmlutils.Parse([]byte(doc))
	require.NoError(t, err)
	nodes := xmlutils.Nodes(root, path)
	require.NotEmpty(t, nodes)
	return nodes
}

// firstStmt parses a document and returns its first Stmt element.
func firstStmt(t *testing.T, doc string) *xmlpath.Node {
	t.Helper()
	return parseNodes(t, doc, testPathStmt)[0]
}

// firstNtry parses a document and returns its first Ntry element.
func firstNtry(t *testing.T, doc string) *xmlpath.Node {
	t.Helper()
	return parseNodes(t, doc, testPathNtry)[0]
}
