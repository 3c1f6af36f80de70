package treesitter

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_zig "github.com/tree-sitter-grammars/tree-sitter-zig/bindings/go"
	tree_sitter_csharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

func set(kinds ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(kinds))
	for _, k := range kinds {
		m[k] = struct{}{}
	}
	return m
}

// LanguageSpec declaratively describes how to recognize classes, methods,
// and decision points within one language's concrete syntax tree. The
// generic Walker (walker.go) is the only code that actually drives
// tree-sitter; every language is just a table.
type LanguageSpec struct {
	Name             string
	Extensions       []string
	Grammar          func() *tree_sitter.Language
	ClassKinds       map[string]struct{}
	MethodKinds      map[string]struct{}
	DecisionKinds    map[string]struct{}
	BinaryLogicalKind string // e.g. "binary_expression"; checked for && / || operator text
	CallKinds        map[string]struct{}
	IdentifierKinds  map[string]struct{}
	ImportKinds      map[string]struct{}
	CommentPrefix    string
	// ParamListKinds are the node kinds, found as a child of a method node,
	// whose named children each represent one formal parameter.
	ParamListKinds map[string]struct{}
}

// Specs is every non-Go language this system recognizes. Go itself is
// handled natively by the goparser package (see its doc comment).
var Specs = []LanguageSpec{
	{
		Name:            "javascript",
		Extensions:      []string{".js", ".jsx", ".mjs"},
		Grammar:         func() *tree_sitter.Language { return tree_sitter.NewLanguage(tree_sitter_javascript.Language()) },
		ClassKinds:      set("class_declaration"),
		MethodKinds:     set("method_definition", "function_declaration", "generator_function_declaration"),
		DecisionKinds:   set("if_statement", "while_statement", "for_statement", "for_in_statement", "switch_case", "catch_clause", "ternary_expression"),
		BinaryLogicalKind: "binary_expression",
		CallKinds:       set("call_expression", "new_expression"),
		IdentifierKinds: set("identifier", "property_identifier", "shorthand_property_identifier"),
		ImportKinds:     set("import_statement"),
		CommentPrefix:   "//",
		ParamListKinds:  set("formal_parameters"),
	},
	{
		Name:            "typescript",
		Extensions:      []string{".ts", ".tsx"},
		Grammar:         func() *tree_sitter.Language { return tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()) },
		ClassKinds:      set("class_declaration", "interface_declaration"),
		MethodKinds:     set("method_definition", "function_declaration"),
		DecisionKinds:   set("if_statement", "while_statement", "for_statement", "for_in_statement", "switch_case", "catch_clause", "ternary_expression"),
		BinaryLogicalKind: "binary_expression",
		CallKinds:       set("call_expression", "new_expression"),
		IdentifierKinds: set("identifier", "property_identifier", "type_identifier"),
		ImportKinds:     set("import_statement"),
		CommentPrefix:   "//",
		ParamListKinds:  set("formal_parameters"),
	},
	{
		Name:            "python",
		Extensions:      []string{".py"},
		Grammar:         func() *tree_sitter.Language { return tree_sitter.NewLanguage(tree_sitter_python.Language()) },
		ClassKinds:      set("class_definition"),
		MethodKinds:     set("function_definition"),
		DecisionKinds:   set("if_statement", "while_statement", "for_statement", "except_clause", "conditional_expression"),
		BinaryLogicalKind: "boolean_operator",
		CallKinds:       set("call"),
		IdentifierKinds: set("identifier"),
		ImportKinds:     set("import_statement", "import_from_statement"),
		CommentPrefix:   "#",
		ParamListKinds:  set("parameters"),
	},
	{
		Name:            "java",
		Extensions:      []string{".java"},
		Grammar:         func() *tree_sitter.Language { return tree_sitter.NewLanguage(tree_sitter_java.Language()) },
		ClassKinds:      set("class_declaration", "interface_declaration"),
		MethodKinds:     set("method_declaration", "constructor_declaration"),
		DecisionKinds:   set("if_statement", "while_statement", "for_statement", "enhanced_for_statement", "switch_label", "catch_clause", "ternary_expression"),
		BinaryLogicalKind: "binary_expression",
		CallKinds:       set("method_invocation", "object_creation_expression"),
		IdentifierKinds: set("identifier"),
		ImportKinds:     set("import_declaration"),
		CommentPrefix:   "//",
		ParamListKinds:  set("formal_parameters"),
	},
	{
		Name:            "csharp",
		Extensions:      []string{".cs"},
		Grammar:         func() *tree_sitter.Language { return tree_sitter.NewLanguage(tree_sitter_csharp.Language()) },
		ClassKinds:      set("class_declaration", "interface_declaration", "struct_declaration"),
		MethodKinds:     set("method_declaration", "constructor_declaration"),
		DecisionKinds:   set("if_statement", "while_statement", "for_statement", "foreach_statement", "switch_section", "catch_clause", "conditional_expression"),
		BinaryLogicalKind: "binary_expression",
		CallKinds:       set("invocation_expression", "object_creation_expression"),
		IdentifierKinds: set("identifier"),
		ImportKinds:     set("using_directive"),
		CommentPrefix:   "//",
		ParamListKinds:  set("parameter_list"),
	},
	{
		Name:            "cpp",
		Extensions:      []string{".cpp", ".cc", ".cxx", ".hpp", ".h", ".hh"},
		Grammar:         func() *tree_sitter.Language { return tree_sitter.NewLanguage(tree_sitter_cpp.Language()) },
		ClassKinds:      set("class_specifier", "struct_specifier"),
		MethodKinds:     set("function_definition"),
		DecisionKinds:   set("if_statement", "while_statement", "for_statement", "case_statement", "catch_clause", "conditional_expression"),
		BinaryLogicalKind: "binary_expression",
		CallKinds:       set("call_expression"),
		IdentifierKinds: set("identifier", "field_identifier"),
		ImportKinds:     set("preproc_include"),
		CommentPrefix:   "//",
		ParamListKinds:  set("parameter_list"),
	},
	{
		Name:            "rust",
		Extensions:      []string{".rs"},
		Grammar:         func() *tree_sitter.Language { return tree_sitter.NewLanguage(tree_sitter_rust.Language()) },
		ClassKinds:      set("struct_item", "impl_item", "trait_item"),
		MethodKinds:     set("function_item"),
		DecisionKinds:   set("if_expression", "while_expression", "for_expression", "match_arm"),
		BinaryLogicalKind: "binary_expression",
		CallKinds:       set("call_expression"),
		IdentifierKinds: set("identifier", "field_identifier"),
		ImportKinds:     set("use_declaration"),
		CommentPrefix:   "//",
		ParamListKinds:  set("parameters"),
	},
	{
		Name:            "zig",
		Extensions:      []string{".zig"},
		Grammar:         func() *tree_sitter.Language { return tree_sitter.NewLanguage(tree_sitter_zig.Language()) },
		ClassKinds:      set("ContainerDecl", "StructDecl"),
		MethodKinds:     set("FnProto", "Decl"),
		DecisionKinds:   set("IfExpr", "WhileExpr", "ForExpr", "SwitchProng", "CatchExpr"),
		BinaryLogicalKind: "",
		CallKinds:       set("SuffixExpr"),
		IdentifierKinds: set("IDENTIFIER"),
		ImportKinds:     set(),
		CommentPrefix:   "//",
		ParamListKinds:  set("ParamDeclList"),
	},
	{
		Name:            "php",
		Extensions:      []string{".php"},
		Grammar:         func() *tree_sitter.Language { return tree_sitter.NewLanguage(tree_sitter_php.LanguagePHP()) },
		ClassKinds:      set("class_declaration", "interface_declaration"),
		MethodKinds:     set("method_declaration", "function_definition"),
		DecisionKinds:   set("if_statement", "while_statement", "for_statement", "foreach_statement", "case_statement", "catch_clause", "conditional_expression"),
		BinaryLogicalKind: "binary_expression",
		CallKinds:       set("function_call_expression", "member_call_expression", "object_creation_expression"),
		IdentifierKinds: set("name", "variable_name"),
		ImportKinds:     set("namespace_use_declaration"),
		CommentPrefix:   "//",
		ParamListKinds:  set("formal_parameters"),
	},
}
