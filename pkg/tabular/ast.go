package tabular

import (
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"
)

// NodeFromRows converts rows into Shape's AST: an *ast.ArrayDataNode of
// records, each an *ast.ArrayDataNode of *ast.LiteralNode string fields.
//
// positions, when non-nil, holds the start position of each row and must
// have the same length as rows; otherwise every node gets ast.ZeroPosition.
func NodeFromRows(rows []Row, positions []ast.Position) *ast.ArrayDataNode {
	records := make([]ast.SchemaNode, 0, len(rows))
	for i, row := range rows {
		pos := ast.ZeroPosition()
		if len(positions) == len(rows) {
			pos = positions[i]
		}
		fields := make([]ast.SchemaNode, 0, len(row))
		for _, field := range row {
			fields = append(fields, ast.NewLiteralNode(field, pos))
		}
		records = append(records, ast.NewArrayDataNode(fields, pos))
	}
	return ast.NewArrayDataNode(records, ast.ZeroPosition())
}

// RowsFromNode converts an AST produced by NodeFromRows (or an equivalent
// tree) back into rows. Non-string literal values are formatted with %v and
// nil literals become empty fields.
func RowsFromNode(node ast.SchemaNode) ([]Row, error) {
	if node == nil {
		return nil, nil
	}
	file, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return nil, fmt.Errorf("unsupported node type for tabular rendering: %T", node)
	}

	elements := file.Elements()
	rows := make([]Row, 0, len(elements))
	for i, elem := range elements {
		record, ok := elem.(*ast.ArrayDataNode)
		if !ok {
			return nil, fmt.Errorf("record %d: unexpected element type %T", i, elem)
		}
		fields := record.Elements()
		row := make(Row, 0, len(fields))
		for j, f := range fields {
			lit, ok := f.(*ast.LiteralNode)
			if !ok {
				return nil, fmt.Errorf("record %d, field %d: unexpected element type %T", i, j, f)
			}
			row = append(row, literalString(lit))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func literalString(node *ast.LiteralNode) string {
	switch v := node.Value().(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
