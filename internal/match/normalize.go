package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent normalizes an identifier for fuzzy matching: CamelCase is
// tokenized, everything is lowercased, and separators (_, -, spaces) are
// stripped. "OrderToDTO" and "order_to_dto" normalize to the same string.
func NormalizeIdent(s string) string {
	tokens := tokenize(s)

	joined := strings.Join(tokens, "")
	joined = strings.ToLower(joined)

	var sb strings.Builder

	sb.Grow(len(joined))

	for _, r := range joined {
		if !isSeparator(r) {
			sb.WriteRune(r)
		}
	}

	return sb.String()
}

// tokenize splits a CamelCase or camelCase identifier into tokens.
// "OrderID" -> ["Order", "ID"], "getHTTPResponse" -> ["get", "HTTP", "Response"].
func tokenize(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	runes := []rune(s)
	for i := range runes {
		r := runes[i]

		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && startsNewToken(runes, i) && current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// startsNewToken reports whether a token boundary sits before position i.
func startsNewToken(runes []rune, i int) bool {
	isUpper := unicode.IsUpper(runes[i])
	isPrevUpper := unicode.IsUpper(runes[i-1])
	isPrevSep := isSeparator(runes[i-1])

	// lower-to-upper transition: "orderID" splits before 'I'
	if isUpper && !isPrevUpper && !isPrevSep {
		return true
	}

	// end of acronym: "XMLParser" splits before 'P'
	hasNextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

	return isUpper && isPrevUpper && hasNextLower
}
