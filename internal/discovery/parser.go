package discovery

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path"
	"sort"
	"strconv"
	"strings"
)

// ErrNotDeclared is returned when a looked-up function is absent
var ErrNotDeclared = errors.New("not declared")

// Parser inspects submission source without evaluating it
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// FindMethods returns the method names callable on each named type in source, keyed by
// type name. Names are sorted and unique per type.
func (p *Parser) FindMethods(filename, source string) (map[string][]string, error) {
	sigs, err := p.FindMethodSignatures(filename, source)
	if err != nil {
		return nil, err
	}

	methods := make(map[string][]string, len(sigs))
	for recv, set := range sigs {
		names := make([]string, 0, len(set))
		for name := range set {
			names = append(names, name)
		}
		sort.Strings(names)
		methods[recv] = names
	}
	return methods, nil
}

// FindMethodSignatures returns, per named type, each callable method and its signature
// rendered like reflect does, e.g. "func(int) (string, bool)". Package qualifiers use the
// imported package's name whatever alias the file gives it. Methods promoted from
// embedded struct fields are included unless the outer type declares the same name.
func (p *Parser) FindMethodSignatures(filename, source string) (map[string]map[string]string, error) {
	file, err := parser.ParseFile(token.NewFileSet(), filename, source, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	qualifiers := importQualifiers(file)
	declared := make(map[string]map[string]string)
	embeds := make(map[string][]string)
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Recv == nil || len(d.Recv.List) == 0 {
				continue
			}
			recv := receiverName(d.Recv.List[0].Type)
			if recv == "" {
				continue
			}
			if declared[recv] == nil {
				declared[recv] = make(map[string]string)
			}
			declared[recv][d.Name.Name] = signature(d.Type, qualifiers)
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				st, ok := ts.Type.(*ast.StructType)
				if !ok {
					continue
				}
				for _, field := range st.Fields.List {
					if len(field.Names) > 0 {
						continue
					}
					// imported embeds resolve to "" and carry no source methods
					if name := receiverName(field.Type); name != "" {
						embeds[ts.Name.Name] = append(embeds[ts.Name.Name], name)
					}
				}
			}
		}
	}

	sigs := make(map[string]map[string]string)
	for _, names := range []map[string]bool{keys(declared), keys(embeds)} {
		for name := range names {
			if _, done := sigs[name]; done {
				continue
			}
			if set := methodSet(name, declared, embeds, map[string]bool{}); len(set) > 0 {
				sigs[name] = set
			}
		}
	}
	return sigs, nil
}

// methodSet collects the methods of name, promoted ones first so that declared ones win
func methodSet(name string, declared map[string]map[string]string, embeds map[string][]string, visiting map[string]bool) map[string]string {
	if visiting[name] {
		return nil
	}
	visiting[name] = true
	defer delete(visiting, name)

	set := make(map[string]string)
	for _, embedded := range embeds[name] {
		for method, sig := range methodSet(embedded, declared, embeds, visiting) {
			set[method] = sig
		}
	}
	for method, sig := range declared[name] {
		set[method] = sig
	}
	return set
}

func keys[V any](m map[string]V) map[string]bool {
	set := make(map[string]bool, len(m))
	for k := range m {
		set[k] = true
	}
	return set
}

// importQualifiers maps each name a file uses for an import to that package's own name
func importQualifiers(file *ast.File) map[string]string {
	qualifiers := make(map[string]string, len(file.Imports))
	for _, spec := range file.Imports {
		importPath, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		name := path.Base(importPath)
		local := name
		if spec.Name != nil {
			local = spec.Name.Name
		}
		if local == "_" || local == "." {
			continue
		}
		qualifiers[local] = name
	}
	return qualifiers
}

func signature(ft *ast.FuncType, qualifiers map[string]string) string {
	params := fieldTypes(ft.Params, qualifiers)
	results := fieldTypes(ft.Results, qualifiers)

	sig := "func(" + strings.Join(params, ", ") + ")"
	switch len(results) {
	case 0:
	case 1:
		sig += " " + results[0]
	default:
		sig += " (" + strings.Join(results, ", ") + ")"
	}
	return sig
}

func fieldTypes(fields *ast.FieldList, qualifiers map[string]string) []string {
	if fields == nil {
		return nil
	}
	var out []string
	for _, field := range fields.List {
		typ := typeString(field.Type, qualifiers)
		for i := 0; i < max(len(field.Names), 1); i++ {
			out = append(out, typ)
		}
	}
	return out
}

func typeString(expr ast.Expr, qualifiers map[string]string) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return "*" + typeString(t.X, qualifiers)
	case *ast.ParenExpr:
		return typeString(t.X, qualifiers)
	case *ast.Ellipsis:
		return "..." + typeString(t.Elt, qualifiers)
	case *ast.ArrayType:
		if t.Len == nil {
			return "[]" + typeString(t.Elt, qualifiers)
		}
		return "[" + types.ExprString(t.Len) + "]" + typeString(t.Elt, qualifiers)
	case *ast.MapType:
		return "map[" + typeString(t.Key, qualifiers) + "]" + typeString(t.Value, qualifiers)
	case *ast.SelectorExpr:
		if pkg, ok := t.X.(*ast.Ident); ok {
			if name, ok := qualifiers[pkg.Name]; ok {
				return name + "." + t.Sel.Name
			}
		}
	}
	return types.ExprString(expr)
}

// FindFuncResult returns the type name a top-level function returns, unwrapping one
// pointer. It is used to learn which type a constructor builds.
func (p *Parser) FindFuncResult(filename, source, funcName string) (string, error) {
	file, err := parser.ParseFile(token.NewFileSet(), filename, source, parser.SkipObjectResolution)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", filename, err)
	}

	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv != nil || fn.Name.Name != funcName {
			continue
		}
		results := fn.Type.Results
		if results == nil || len(results.List) != 1 {
			return "", fmt.Errorf("%s must return exactly one value", funcName)
		}
		name := receiverName(results.List[0].Type)
		if name == "" {
			return "", fmt.Errorf("%s must return a named type or a pointer to one", funcName)
		}
		return name, nil
	}
	return "", fmt.Errorf("function %s %w", funcName, ErrNotDeclared)
}

func receiverName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverName(t.X)
	case *ast.Ident:
		return t.Name
	case *ast.IndexExpr:
		return receiverName(t.X)
	case *ast.IndexListExpr:
		return receiverName(t.X)
	default:
		return ""
	}
}
