package fixed

import (
	"bytes"
	"io"
	"strings"

	"github.com/shapestone/shape-core/pkg/ast"

	"github.com/shapestone/shape-tabular/pkg/tabular"
)

// Parse parses fixed-width data from a string into Shape's AST. The tree
// has the same shape as the one built by dsv.Parse, so a document parsed
// in one format can be rendered in the other.
func Parse(input string, cfg Config) (ast.SchemaNode, error) {
	return ParseReader(strings.NewReader(input), cfg)
}

// ParseReader parses fixed-width data from an io.Reader into Shape's AST.
func ParseReader(r io.Reader, cfg Config) (ast.SchemaNode, error) {
	reader := NewReader(r, cfg)
	var (
		rows      []tabular.Row
		positions []ast.Position
	)
	for row, err := range reader.All() {
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
		positions = append(positions, reader.RowPosition())
	}
	return tabular.NodeFromRows(rows, positions), nil
}

// Render converts an AST node of rows into fixed-width bytes.
func Render(node ast.SchemaNode, cfg Config) ([]byte, error) {
	rows, err := tabular.RowsFromNode(node)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := NewWriter(&buf, cfg).WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
