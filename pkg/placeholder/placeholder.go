// Package placeholder implements case-aware token substitution for
// resolved translation strings.
//
// A placeholder is a colon followed by an identifier, e.g. ":name".
// Replacement values are looked up case-insensitively, and the case shape
// of the token itself decides the case of the substituted text:
//
//	placeholder.Replace("Hello :name!", placeholder.M{"name": "JOHN"}) // "Hello john!"
//	placeholder.Replace("Hello :NAME!", placeholder.M{"name": "john"}) // "Hello JOHN!"
//	placeholder.Replace("Hello :Name!", placeholder.M{"name": "john"}) // "Hello John!"
//
// Tokens without a matching replacement are left verbatim. Replace is a
// pure function and safe for concurrent use.
package placeholder

import (
	"fmt"
	"strings"
	"unicode"
)

// M is a map of placeholder names (without the sigil) to replacement
// values. Name comparison is case-insensitive. Non-string values are
// formatted with fmt.
type M map[string]any

// sigil marks the start of a placeholder token.
const sigil = ':'

// Replace substitutes placeholder tokens in text with values from
// replacements. Tokens are matched leftmost-longest and never overlap.
// An empty text returns ""; an empty or nil replacement map returns the
// input unchanged.
func Replace(text string, replacements M) string {
	if text == "" {
		return ""
	}
	if len(replacements) == 0 {
		return text
	}

	index := make(map[string]any, len(replacements))
	for name, value := range replacements {
		index[strings.ToLower(name)] = value
	}

	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(text); {
		if text[i] != sigil || i+1 >= len(text) || !isIdentStart(text[i+1]) {
			b.WriteByte(text[i])
			i++
			continue
		}

		// Consume the longest identifier after the sigil.
		end := i + 2
		for end < len(text) && isIdentPart(text[end]) {
			end++
		}

		name := text[i+1 : end]
		value, ok := index[strings.ToLower(name)]
		if !ok {
			b.WriteString(text[i:end])
		} else {
			b.WriteString(applyShape(name, stringify(value)))
		}
		i = end
	}

	return b.String()
}

// applyShape transforms the replacement according to the case shape of
// the token name: all-lowercase forces lowercase, all-uppercase forces
// uppercase, mixed case with an uppercase first letter forces a simple
// Pascal case (first rune upper, rest lower), and any other mixed
// pattern falls back to lowercase.
func applyShape(name, replacement string) string {
	hasUpper := strings.ContainsFunc(name, unicode.IsUpper)
	hasLower := strings.ContainsFunc(name, unicode.IsLower)

	switch {
	case !hasUpper:
		return strings.ToLower(replacement)
	case !hasLower:
		return strings.ToUpper(replacement)
	case isUpperByte(name[0]):
		return pascalize(replacement)
	default:
		return strings.ToLower(replacement)
	}
}

func pascalize(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || ('0' <= c && c <= '9')
}

func isUpperByte(c byte) bool {
	return 'A' <= c && c <= 'Z'
}
