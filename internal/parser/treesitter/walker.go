// Package treesitter implements §4.2's Parser capability set for every
// non-Go language via github.com/tree-sitter/go-tree-sitter, driven by the
// declarative LanguageSpec tables in languages.go rather than one bespoke
// implementation per language.
//
// Grounded in the teacher's TreeSitterParser (internal/parser/parser.go):
// the same grammar-registration idiom (tree_sitter.NewParser, SetLanguage,
// per-extension dispatch) and the same raw node-walking primitives
// (node.Kind(), node.StartByte()/EndByte(), node.ChildByFieldName,
// node.Child(i)/ChildCount()) — generalized from "one query per language"
// into one generic walk driven by per-language node-kind sets, per spec §9's
// preference for a registry of data over a parser subclass per language.
package treesitter

import (
	"os"
	"sort"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/godscan/internal/errs"
	"github.com/standardbeagle/godscan/internal/model"
)

// LanguageParser parses one LanguageSpec's extensions.
type LanguageParser struct {
	spec   LanguageSpec
	parser *tree_sitter.Parser
}

// New builds a LanguageParser for every registered LanguageSpec, skipping
// (rather than failing on) a grammar that fails to initialize — the same
// defensive posture as the teacher's setupX functions, which return early
// when SetLanguage errors instead of panicking the whole registry.
func New() []*LanguageParser {
	var parsers []*LanguageParser
	for _, spec := range Specs {
		p := tree_sitter.NewParser()
		if err := p.SetLanguage(spec.Grammar()); err != nil {
			continue
		}
		parsers = append(parsers, &LanguageParser{spec: spec, parser: p})
	}
	return parsers
}

func (lp *LanguageParser) SupportedExtensions() []string { return lp.spec.Extensions }

func (lp *LanguageParser) ParseFile(path string) ([]model.ClassMetrics, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.NewIoError("read", path, err)
	}
	if len(strings.TrimSpace(string(content))) == 0 {
		return nil, nil
	}

	tree := lp.parser.Parse(content, nil)
	if tree == nil {
		return nil, errs.NewParseError(path, 0, 0, nil)
	}
	defer tree.Close()

	w := &walk{spec: lp.spec, content: content, path: path}
	w.importDecls(tree.RootNode())
	w.visit(tree.RootNode(), nil)
	return w.classes, nil
}

type accumulator struct {
	class   model.ClassMetrics
	methods []model.MethodMetrics
	refs    []string
}

type walk struct {
	spec    LanguageSpec
	content []byte
	path    string
	imports []string
	classes []model.ClassMetrics
}

func (w *walk) importDecls(root *tree_sitter.Node) {
	var find func(n *tree_sitter.Node)
	find = func(n *tree_sitter.Node) {
		if _, ok := w.spec.ImportKinds[n.Kind()]; ok {
			w.imports = append(w.imports, collapseWhitespace(w.text(n)))
			return
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			find(n.Child(i))
		}
	}
	find(root)
}

func (w *walk) visit(n *tree_sitter.Node, current *accumulator) {
	kind := n.Kind()

	if _, ok := w.spec.ClassKinds[kind]; ok {
		acc := &accumulator{class: model.ClassMetrics{
			Name:     w.nodeName(n),
			FilePath: w.path,
			Language: w.spec.Name,
			Lines:    w.countLines(n.StartByte(), n.EndByte()),
		}}
		acc.class.QualifiedName = acc.class.Name

		for i := uint(0); i < n.ChildCount(); i++ {
			w.visit(n.Child(i), acc)
		}

		acc.class.Methods = acc.methods
		acc.class.MethodCount = len(acc.methods)
		for _, m := range acc.methods {
			acc.class.Complexity += m.Complexity
		}
		deps := append(append([]string{}, w.imports...), capped(acc.refs, 50)...)
		acc.class.Dependencies = deps

		w.classes = append(w.classes, acc.class)
		return
	}

	if _, ok := w.spec.MethodKinds[kind]; ok && current != nil {
		current.methods = append(current.methods, w.buildMethod(n))
		current.refs = append(current.refs, w.capitalizedRefs(n)...)
		return
	}

	if current != nil {
		if _, ok := w.spec.IdentifierKinds[kind]; ok {
			current.refs = append(current.refs, capitalizedRefs(w.text(n))...)
		}
	}

	for i := uint(0); i < n.ChildCount(); i++ {
		w.visit(n.Child(i), current)
	}
}

func (w *walk) buildMethod(n *tree_sitter.Node) model.MethodMetrics {
	name := w.nodeName(n)
	m := model.MethodMetrics{
		Name:       name,
		Language:   w.spec.Name,
		Lines:      w.countLines(n.StartByte(), n.EndByte()),
		Complexity: w.complexity(n),
		IsPublic:   !strings.HasPrefix(name, "_"),
		IsStatic:   hasStaticModifier(n),
		ReturnType: w.returnType(n),
	}

	m.Parameters = w.parameters(n)

	calls := make(map[string]struct{})
	idents := make(map[string]struct{})
	w.collectCallsAndIdents(n, calls, idents)
	m.CalledMethods = sortedKeys(calls)
	m.AccessedFields = sortedKeys(idents)
	m.TokenBag = model.TokenBag(m.Name, m.Parameters, m.CalledMethods)

	return m
}

func (w *walk) complexity(n *tree_sitter.Node) int {
	complexity := 1
	var count func(n *tree_sitter.Node)
	count = func(n *tree_sitter.Node) {
		kind := n.Kind()
		if _, ok := w.spec.DecisionKinds[kind]; ok {
			complexity++
		}
		if w.spec.BinaryLogicalKind != "" && kind == w.spec.BinaryLogicalKind {
			if op := n.ChildByFieldName("operator"); op != nil {
				text := w.text(op)
				if text == "&&" || text == "||" || text == "and" || text == "or" {
					complexity++
				}
			}
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			count(n.Child(i))
		}
	}
	count(n)
	return complexity
}

func (w *walk) collectCallsAndIdents(n *tree_sitter.Node, calls, idents map[string]struct{}) {
	kind := n.Kind()
	if _, ok := w.spec.CallKinds[kind]; ok {
		target := n.ChildByFieldName("function")
		if target == nil {
			target = n.Child(0)
		}
		if target != nil {
			calls[collapseWhitespace(w.text(target))] = struct{}{}
		}
	}
	if _, ok := w.spec.IdentifierKinds[kind]; ok {
		idents[w.text(n)] = struct{}{}
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		w.collectCallsAndIdents(n.Child(i), calls, idents)
	}
}

func (w *walk) parameters(n *tree_sitter.Node) []model.Parameter {
	var list *tree_sitter.Node
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if _, ok := w.spec.ParamListKinds[child.Kind()]; ok {
			list = child
			break
		}
	}
	if list == nil {
		return nil
	}

	var params []model.Parameter
	for i := uint(0); i < list.NamedChildCount(); i++ {
		p := list.NamedChild(i)
		typeNode := p.ChildByFieldName("type")
		paramType := "any"
		if typeNode != nil {
			paramType = collapseWhitespace(w.text(typeNode))
		}
		nameNode := p.ChildByFieldName("name")
		if nameNode == nil {
			nameNode = p
		}
		params = append(params, model.Parameter{Name: collapseWhitespace(w.text(nameNode)), Type: paramType})
	}
	return params
}

func (w *walk) returnType(n *tree_sitter.Node) string {
	for _, field := range []string{"return_type", "type"} {
		if rt := n.ChildByFieldName(field); rt != nil {
			return collapseWhitespace(w.text(rt))
		}
	}
	return ""
}

func (w *walk) nodeName(n *tree_sitter.Node) string {
	if name := n.ChildByFieldName("name"); name != nil {
		return w.text(name)
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if _, ok := w.spec.IdentifierKinds[child.Kind()]; ok {
			return w.text(child)
		}
	}
	return "anonymous"
}

func (w *walk) capitalizedRefs(n *tree_sitter.Node) []string {
	return capitalizedRefs(w.text(n))
}

func (w *walk) text(n *tree_sitter.Node) string {
	return string(w.content[n.StartByte():n.EndByte()])
}

func (w *walk) countLines(start, end uint) int {
	lines := strings.Split(string(w.content[start:end]), "\n")
	count := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, w.spec.CommentPrefix) {
			continue
		}
		count++
	}
	return count
}

func hasStaticModifier(n *tree_sitter.Node) bool {
	for i := uint(0); i < n.ChildCount(); i++ {
		if n.Child(i).Kind() == "static" {
			return true
		}
	}
	return false
}

func capitalizedRefs(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" || len(text) > 0 && !(text[0] >= 'A' && text[0] <= 'Z') {
		return nil
	}
	return []string{text}
}

func capped(refs []string, n int) []string {
	if len(refs) > n {
		return refs[:n]
	}
	return refs
}

func sortedKeys(m map[string]struct{}) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
