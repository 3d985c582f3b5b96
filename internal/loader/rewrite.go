package loader

import (
	"cmp"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"slices"
	"strings"
)

// splitNilAssignments rewrites tuple assignments of nil, such as `n.Next, n.Prev = nil, nil`,
// into one assignment per target on the same line. The interpreter panics with
// "reflect: New(nil)" on the tuple form when the targets are compiled pointer types.
// Deeper targets are cleared first so no target reads a location an earlier one cleared.
func splitNilAssignments(filename, source string) (string, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, source, parser.SkipObjectResolution)
	if err != nil {
		return "", fmt.Errorf("parse source: %w", err)
	}
	tf := fset.File(file.Pos())

	type edit struct {
		start, end int
		text       string
	}
	var edits []edit
	visit := func(list []ast.Stmt) {
		for _, stmt := range list {
			as, ok := stmt.(*ast.AssignStmt)
			if !ok || !isNilTuple(as) {
				continue
			}
			targets := slices.Clone(as.Lhs)
			slices.SortStableFunc(targets, func(a, b ast.Expr) int {
				return cmp.Compare(depth(b), depth(a))
			})
			parts := make([]string, len(targets))
			for i, target := range targets {
				parts[i] = source[tf.Offset(target.Pos()):tf.Offset(target.End())] + " = nil"
			}
			edits = append(edits, edit{
				start: tf.Offset(as.Pos()),
				end:   tf.Offset(as.End()),
				text:  strings.Join(parts, "; "),
			})
		}
	}
	ast.Inspect(file, func(n ast.Node) bool {
		switch s := n.(type) {
		case *ast.BlockStmt:
			visit(s.List)
		case *ast.CaseClause:
			visit(s.Body)
		case *ast.CommClause:
			visit(s.Body)
		}
		return true
	})
	if len(edits) == 0 {
		return source, nil
	}

	slices.SortFunc(edits, func(a, b edit) int { return cmp.Compare(a.start, b.start) })
	var b strings.Builder
	last := 0
	for _, e := range edits {
		if e.start < last {
			continue
		}
		b.WriteString(source[last:e.start])
		b.WriteString(e.text)
		last = e.end
	}
	b.WriteString(source[last:])
	return b.String(), nil
}

func isNilTuple(as *ast.AssignStmt) bool {
	if as.Tok != token.ASSIGN || len(as.Lhs) < 2 || len(as.Lhs) != len(as.Rhs) {
		return false
	}
	for _, lhs := range as.Lhs {
		if id, ok := lhs.(*ast.Ident); ok && id.Name == "_" {
			return false
		}
	}
	for _, rhs := range as.Rhs {
		if id, ok := rhs.(*ast.Ident); !ok || id.Name != "nil" {
			return false
		}
	}
	return true
}

// depth counts the selectors, indexes and dereferences above the root operand
func depth(expr ast.Expr) int {
	switch e := expr.(type) {
	case *ast.SelectorExpr:
		return 1 + depth(e.X)
	case *ast.IndexExpr:
		return 1 + depth(e.X)
	case *ast.StarExpr:
		return 1 + depth(e.X)
	case *ast.ParenExpr:
		return depth(e.X)
	default:
		return 0
	}
}
