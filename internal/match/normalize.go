package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent normalizes an identifier for fuzzy matching:
// case-fold to lower and strip separators (_, -, ., spaces).
func NormalizeIdent(s string) string {
	var sb strings.Builder

	sb.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		sb.WriteRune(unicode.ToLower(r))
	}

	return sb.String()
}

// NormalizeTypeRef normalizes a type reference for matching against known
// type names. Namespaces, "global::" and generic arguments are dropped so
// "global::Example.IService<IModel>" compares as "iservice".
func NormalizeTypeRef(ref string) string {
	ref = strings.TrimPrefix(ref, "global::")
	if i := strings.IndexByte(ref, '<'); i >= 0 {
		ref = ref[:i]
	}

	if i := strings.LastIndexAny(ref, "./"); i >= 0 {
		ref = ref[i+1:]
	}

	return NormalizeIdent(ref)
}

// TokenizeIdent splits a CamelCase identifier into lowercase tokens.
// Examples:
//   - "OrderID" -> ["order", "id"]
//   - "IExternalSystemService" -> ["i", "external", "system", "service"]
//   - "XMLParser" -> ["xml", "parser"]
func TokenizeIdent(s string) []string {
	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

// startsToken reports whether a new CamelCase token begins at runes[i].
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) {
		return false
	}

	if !unicode.IsUpper(prev) && !isSeparator(prev) {
		return true
	}

	// end of an acronym: "XMLParser" splits before 'P'
	return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || r == ' '
}
