package model

// Parameter is one declared formal parameter of a method.
type Parameter struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// MethodMetrics is the immutable set of structural facts extracted for a
// single method or function. Every set-valued field is deduplicated by the
// parser before the value reaches here; none of them are mutated afterward.
type MethodMetrics struct {
	Name       string      `json:"name"`
	Language   string      `json:"language"`
	Lines      int         `json:"lines"`
	Complexity int         `json:"complexity"`
	Parameters []Parameter `json:"parameters"`
	ReturnType string      `json:"return_type"`
	IsPublic   bool        `json:"is_public"`
	IsStatic   bool        `json:"is_static"`

	// CalledMethods is the set of textual invocation targets at each call
	// site within the method body, as written in source.
	CalledMethods []string `json:"called_methods"`

	// AccessedFields is the set of identifier references within the body.
	AccessedFields []string `json:"accessed_fields"`

	// TokenBag is the lowercased, camel/Pascal-split fragment multiset
	// derived from the method name, parameter types, and call targets.
	// Fragments of length <= 2 are dropped. See Tokenize in tokenbag.go —
	// this rule is load-bearing for the clusterer and must not drift.
	TokenBag map[string]int `json:"token_bag"`
}

// ClassMetrics is the immutable set of structural facts extracted for a
// single class (or struct/interface/impl-block — whatever the source
// language's nearest equivalent is).
type ClassMetrics struct {
	Name           string          `json:"name"`
	QualifiedName  string          `json:"qualified_name"`
	FilePath       string          `json:"file_path"`
	Language       string          `json:"language"`
	Lines          int             `json:"lines"`
	MethodCount    int             `json:"method_count"`
	PropertyCount  int             `json:"property_count"`
	Complexity     int             `json:"complexity"`
	Methods        []MethodMetrics `json:"methods"`
	Dependencies   []string        `json:"dependencies"`
}
