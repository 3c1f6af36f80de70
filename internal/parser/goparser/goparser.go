// Package goparser implements the Parser capability set for Go source using
// go/ast, go/parser, go/token — the stdlib trio, used here deliberately
// rather than tree-sitter's Go grammar: the language a Go program is written
// in has a first-class, exact native parser, so reaching for a CST library
// to parse Go specifically would be the odd choice, not the idiomatic one.
//
// Grounded in two other_examples files' approach to the same stdlib trio:
// god_object_rule.go's struct/method collection (ast.Inspect over
// *ast.TypeSpec/*ast.StructType and *ast.FuncDecl with receiver handling)
// and max_cyclomatic_complexity.go's decision-point counting switch.
package goparser

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"sort"
	"strings"

	"github.com/standardbeagle/godscan/internal/errs"
	"github.com/standardbeagle/godscan/internal/model"
)

// GoParser parses ".go" source files.
type GoParser struct{}

// New returns a Parser for Go source.
func New() *GoParser { return &GoParser{} }

func (p *GoParser) SupportedExtensions() []string { return []string{".go"} }

// ParseFile implements §4.2. Go has no free-standing methods, so every
// struct type with at least one receiver-bound func becomes a ClassMetrics;
// a struct with none is still reported, with an empty method list.
func (p *GoParser) ParseFile(path string) ([]model.ClassMetrics, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.NewIoError("read", path, err)
	}
	if len(strings.TrimSpace(string(content))) == 0 {
		return nil, nil
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, content, parser.ParseComments)
	if err != nil {
		return nil, errs.NewParseError(path, 0, 0, err)
	}

	lines := strings.Split(string(content), "\n")

	classes := make(map[string]*model.ClassMetrics)
	var order []string

	ast.Inspect(file, func(n ast.Node) bool {
		typeSpec, ok := n.(*ast.TypeSpec)
		if !ok {
			return true
		}
		structType, ok := typeSpec.Type.(*ast.StructType)
		if !ok {
			return true
		}

		name := typeSpec.Name.Name
		classes[name] = &model.ClassMetrics{
			Name:          name,
			QualifiedName: file.Name.Name + "." + name,
			FilePath:      path,
			Language:      "go",
			PropertyCount: numFields(structType),
		}
		order = append(order, name)
		return true
	})

	deps := make(map[string]struct{})
	for _, imp := range file.Imports {
		deps[strings.Trim(imp.Path.Value, `"`)] = struct{}{}
	}

	ast.Inspect(file, func(n ast.Node) bool {
		funcDecl, ok := n.(*ast.FuncDecl)
		if !ok || funcDecl.Recv == nil || len(funcDecl.Recv.List) == 0 {
			return true
		}

		receiverType := funcDecl.Recv.List[0].Type
		if star, ok := receiverType.(*ast.StarExpr); ok {
			receiverType = star.X
		}
		ident, ok := receiverType.(*ast.Ident)
		if !ok {
			return true
		}

		class, exists := classes[ident.Name]
		if !exists {
			return true
		}

		method := extractMethod(funcDecl, fset, lines, deps)
		class.Methods = append(class.Methods, method)
		class.MethodCount++
		class.Complexity += method.Complexity
		class.Lines += method.Lines

		return true
	})

	result := make([]model.ClassMetrics, 0, len(order))
	for _, name := range order {
		c := classes[name]
		c.Dependencies = capDependencies(deps, structDependencies(file, name))
		result = append(result, *c)
	}

	return result, nil
}

func numFields(st *ast.StructType) int {
	if st.Fields == nil {
		return 0
	}
	return st.Fields.NumFields()
}

func extractMethod(decl *ast.FuncDecl, fset *token.FileSet, lines []string, deps map[string]struct{}) model.MethodMetrics {
	m := model.MethodMetrics{
		Name:       decl.Name.Name,
		Language:   "go",
		IsPublic:   ast.IsExported(decl.Name.Name),
		ReturnType: returnTypeString(decl.Type.Results),
	}

	// Go has no static methods; IsStatic stays false for every receiver-bound func.

	if decl.Type.Params != nil {
		for _, field := range decl.Type.Params.List {
			typeName := exprString(field.Type)
			if len(field.Names) == 0 {
				m.Parameters = append(m.Parameters, model.Parameter{Name: "_", Type: typeName})
				continue
			}
			for _, n := range field.Names {
				m.Parameters = append(m.Parameters, model.Parameter{Name: n.Name, Type: typeName})
			}
		}
	}

	if decl.Body != nil {
		start := fset.Position(decl.Body.Pos()).Line
		end := fset.Position(decl.Body.End()).Line
		m.Lines = countSourceLines(lines, start, end)
		m.Complexity = cyclomaticComplexity(decl)
	} else {
		m.Complexity = 1
	}

	calls := make(map[string]struct{})
	idents := make(map[string]struct{})
	ast.Inspect(decl, func(n ast.Node) bool {
		switch v := n.(type) {
		case *ast.CallExpr:
			calls[exprString(v.Fun)] = struct{}{}
		case *ast.Ident:
			idents[v.Name] = struct{}{}
		}
		return true
	})
	m.CalledMethods = setToSortedSlice(calls)
	m.AccessedFields = setToSortedSlice(idents)
	m.TokenBag = model.TokenBag(m.Name, m.Parameters, m.CalledMethods)

	return m
}

// cyclomaticComplexity mirrors the other_examples reference's decision-point
// switch, generalized to the full §4.2 list: if, for/range, case, select
// comm-clause, short-circuit && and ||. Go has no ternary or try/catch, so
// those branches of §4.2's rule are simply never triggered for this parser.
func cyclomaticComplexity(decl *ast.FuncDecl) int {
	complexity := 1

	ast.Inspect(decl.Body, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.IfStmt:
			complexity++
		case *ast.ForStmt, *ast.RangeStmt:
			complexity++
		case *ast.CaseClause:
			if len(node.List) > 0 {
				complexity++
			}
		case *ast.CommClause:
			if node.Comm != nil {
				complexity++
			}
		case *ast.BinaryExpr:
			if node.Op == token.LAND || node.Op == token.LOR {
				complexity++
			}
		}
		return true
	})

	return complexity
}

func countSourceLines(lines []string, start, end int) int {
	count := 0
	for i := start; i <= end && i <= len(lines); i++ {
		if i < 1 {
			continue
		}
		trimmed := strings.TrimSpace(lines[i-1])
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		count++
	}
	return count
}

func returnTypeString(results *ast.FieldList) string {
	if results == nil || len(results.List) == 0 {
		return ""
	}
	parts := make([]string, 0, len(results.List))
	for _, f := range results.List {
		parts = append(parts, exprString(f.Type))
	}
	return strings.Join(parts, ", ")
}

func exprString(e ast.Expr) string {
	switch v := e.(type) {
	case *ast.Ident:
		return v.Name
	case *ast.StarExpr:
		return "*" + exprString(v.X)
	case *ast.SelectorExpr:
		return exprString(v.X) + "." + v.Sel.Name
	case *ast.ArrayType:
		return "[]" + exprString(v.Elt)
	case *ast.Ellipsis:
		return "..." + exprString(v.Elt)
	case *ast.MapType:
		return "map[" + exprString(v.Key) + "]" + exprString(v.Value)
	case *ast.InterfaceType:
		return "interface{}"
	case *ast.FuncType:
		return "func"
	default:
		return "any"
	}
}

func setToSortedSlice(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// structDependencies collects capitalized identifier references within the
// named struct's own type declaration — a heuristic cap per §4.2.
func structDependencies(file *ast.File, structName string) []string {
	var refs []string
	ast.Inspect(file, func(n ast.Node) bool {
		typeSpec, ok := n.(*ast.TypeSpec)
		if !ok || typeSpec.Name.Name != structName {
			return true
		}
		ast.Inspect(typeSpec, func(inner ast.Node) bool {
			if ident, ok := inner.(*ast.Ident); ok && ident.IsExported() {
				refs = append(refs, ident.Name)
			}
			return true
		})
		return false
	})
	return refs
}

func capDependencies(imports map[string]struct{}, identifierRefs []string) []string {
	deps := make([]string, 0, len(imports)+len(identifierRefs))
	for imp := range imports {
		deps = append(deps, imp)
	}
	sort.Strings(deps)

	if len(identifierRefs) > 50 {
		identifierRefs = identifierRefs[:50]
	}
	deps = append(deps, identifierRefs...)
	return deps
}
