package model

import "strings"

// Tokenize splits an identifier on camel/Pascal boundaries and on any
// non-word character, lowercases the pieces, and drops fragments of length
// <= 2. This is the one splitting rule the clusterer's feature vectors and
// suggested-name generation are built on (spec §9); it must not drift.
//
// Adapted from the teacher's term-extraction pass over symbol names
// (internal/mcp/term_clustering_simple.go's extractTermsInto), generalized
// from "index search terms" to "method/parameter/call-site tokens".
func Tokenize(name string) []string {
	if name == "" {
		return nil
	}

	parts := strings.FieldsFunc(name, func(r rune) bool {
		return !isWordRune(r)
	})

	var out []string
	var current strings.Builder
	current.Grow(16)

	flush := func() {
		if current.Len() == 0 {
			return
		}
		frag := strings.ToLower(current.String())
		current.Reset()
		if len(frag) > 2 {
			out = append(out, frag)
		}
	}

	for _, part := range parts {
		runes := []rune(part)
		for i, r := range runes {
			isUpper := r >= 'A' && r <= 'Z'
			if i == 0 {
				current.WriteRune(r)
				continue
			}
			prevUpper := runes[i-1] >= 'A' && runes[i-1] <= 'Z'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'

			switch {
			case isUpper && !prevUpper:
				// lower->upper boundary: "getUser" -> "get" | "User"
				flush()
				current.WriteRune(r)
			case isUpper && prevUpper && nextLower:
				// acronym->word boundary: "HTTPResponse" -> "HTTP" | "Response"
				flush()
				current.WriteRune(r)
			default:
				current.WriteRune(r)
			}
		}
		flush()
	}

	return out
}

func isWordRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// TokenBag builds the lowercased token multiset used as a method's textual
// feature: the union of fragments from its name, its parameters' declared
// types, and its call-site targets.
func TokenBag(methodName string, params []Parameter, calledMethods []string) map[string]int {
	bag := make(map[string]int)
	add := func(s string) {
		for _, tok := range Tokenize(s) {
			bag[tok]++
		}
	}

	add(methodName)
	for _, p := range params {
		add(p.Type)
	}
	for _, call := range calledMethods {
		add(call)
	}

	return bag
}
