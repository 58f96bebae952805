package dsv

import (
	"bytes"
	"io"
	"strings"

	"github.com/shapestone/shape-core/pkg/ast"

	"github.com/shapestone/shape-tabular/pkg/tabular"
)

// Parse parses DSV data from a string into Shape's AST.
//
// The result is an *ast.ArrayDataNode of rows; each row is an
// *ast.ArrayDataNode of *ast.LiteralNode string fields positioned at the
// start of the row.
//
// Example:
//
//	node, err := dsv.Parse("name,age\r\nAlice,30\r\n", dsv.CSV)
//	rows := node.(*ast.ArrayDataNode).Elements()
func Parse(input string, cfg Config) (ast.SchemaNode, error) {
	return ParseReader(strings.NewReader(input), cfg)
}

// ParseReader parses DSV data from an io.Reader into Shape's AST.
func ParseReader(r io.Reader, cfg Config) (ast.SchemaNode, error) {
	reader := NewReader(r, cfg)
	var (
		rows      []tabular.Row
		positions []ast.Position
	)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
		positions = append(positions, reader.RowPosition())
	}
	return tabular.NodeFromRows(rows, positions), nil
}

// Render converts an AST node produced by Parse back into DSV bytes.
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
