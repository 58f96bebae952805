package tabular_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shapestone/shape-core/pkg/ast"

	"github.com/shapestone/shape-tabular/pkg/tabular"
)

func TestNodeFromRows(t *testing.T) {
	rows := []tabular.Row{{"a", "b"}, {}}
	node := tabular.NodeFromRows(rows, nil)

	records := node.Elements()
	if len(records) != 2 {
		t.Fatalf("Elements() = %d records, want 2", len(records))
	}
	first, ok := records[0].(*ast.ArrayDataNode)
	if !ok {
		t.Fatalf("record type = %T, want *ast.ArrayDataNode", records[0])
	}
	if got := len(first.Elements()); got != 2 {
		t.Errorf("record 0 has %d fields, want 2", got)
	}
	if got := len(records[1].(*ast.ArrayDataNode).Elements()); got != 0 {
		t.Errorf("record 1 has %d fields, want 0", got)
	}
}

func TestRowsFromNode(t *testing.T) {
	pos := ast.ZeroPosition()
	node := ast.NewArrayDataNode([]ast.SchemaNode{
		ast.NewArrayDataNode([]ast.SchemaNode{
			ast.NewLiteralNode("text", pos),
			ast.NewLiteralNode(int64(42), pos),
			ast.NewLiteralNode(true, pos),
			ast.NewLiteralNode(nil, pos),
		}, pos),
	}, pos)

	got, err := tabular.RowsFromNode(node)
	if err != nil {
		t.Fatalf("RowsFromNode() error = %v", err)
	}
	want := []tabular.Row{{"text", "42", "true", ""}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RowsFromNode() mismatch (-want +got):\n%s", diff)
	}
}

func TestRowsFromNode_RoundTrip(t *testing.T) {
	rows := []tabular.Row{{"x", ""}, {"y", "z"}}
	got, err := tabular.RowsFromNode(tabular.NodeFromRows(rows, nil))
	if err != nil {
		t.Fatalf("RowsFromNode() error = %v", err)
	}
	if diff := cmp.Diff(rows, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRowsFromNode_Errors(t *testing.T) {
	pos := ast.ZeroPosition()
	tests := []struct {
		name string
		node ast.SchemaNode
	}{
		{"literal root", ast.NewLiteralNode("x", pos)},
		{"literal record", ast.NewArrayDataNode([]ast.SchemaNode{ast.NewLiteralNode("x", pos)}, pos)},
		{"nested array field", ast.NewArrayDataNode([]ast.SchemaNode{
			ast.NewArrayDataNode([]ast.SchemaNode{ast.NewArrayDataNode(nil, pos)}, pos),
		}, pos)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tabular.RowsFromNode(tt.node); err == nil {
				t.Error("RowsFromNode() succeeded, want error")
			}
		})
	}
}

func TestRowsFromNode_Nil(t *testing.T) {
	rows, err := tabular.RowsFromNode(nil)
	if err != nil || rows != nil {
		t.Errorf("RowsFromNode(nil) = %v, %v; want nil, nil", rows, err)
	}
}
