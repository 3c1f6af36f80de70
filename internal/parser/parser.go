// Package parser defines the polymorphic parser capability set of §4.2 and
// the extension-keyed registry the Engine and TreeBuilder dispatch through.
//
// Grounded in the teacher's own registry instinct (internal/parser.TreeSitterParser
// keeps a map[string]*tree_sitter.Parser and map[string]*tree_sitter.Query
// keyed by extension) generalized from "one struct holding every language"
// into a registry of independent Parser implementations, per spec §9's
// preference for a plain extension→implementation mapping over an
// inheritance hierarchy.
package parser

import (
	"strings"

	"github.com/standardbeagle/godscan/internal/model"
)

// Parser is the capability set every language implementation provides.
type Parser interface {
	ParseFile(path string) ([]model.ClassMetrics, error)
	SupportedExtensions() []string
}

// Registry dispatches parseFile by file extension. It is a plain value, not
// a global: the Engine is handed one explicitly.
type Registry struct {
	byExtension map[string]Parser
}

// NewRegistry builds a Registry from a set of Parsers, indexing each by
// every extension it reports supporting. A later Parser silently overrides
// an earlier one's claim to the same extension.
func NewRegistry(parsers ...Parser) *Registry {
	r := &Registry{byExtension: make(map[string]Parser)}
	for _, p := range parsers {
		for _, ext := range p.SupportedExtensions() {
			r.byExtension[strings.ToLower(ext)] = p
		}
	}
	return r
}

// SupportsExtension implements treebuilder.ExtensionSet.
func (r *Registry) SupportsExtension(ext string) bool {
	_, ok := r.byExtension[strings.ToLower(ext)]
	return ok
}

// Lookup returns the parser registered for ext, if any.
func (r *Registry) Lookup(ext string) (Parser, bool) {
	p, ok := r.byExtension[strings.ToLower(ext)]
	return p, ok
}
