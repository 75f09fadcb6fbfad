// Package naming provides the word splitting and case conversions used by
// the built-in name transforms and the generators.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Words splits s into words. Runs of non-alphanumeric characters separate
// words, and so do lower-to-upper transitions ("petId" -> pet, Id), the end
// of an acronym ("XMLHttp" -> XML, Http) and letter/digit boundaries
// ("v2beta" -> v, 2, beta). Apostrophes are dropped.
func Words(s string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	runes := []rune(strings.NewReplacer("'", "", "’", "").Replace(s))
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if len(cur) > 0 {
			prev := cur[len(cur)-1]
			switch {
			case unicode.IsDigit(r) != unicode.IsDigit(prev):
				flush()
			case unicode.IsUpper(r) && unicode.IsLower(prev):
				flush()
			case unicode.IsUpper(r) && unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

// ToCamelCase converts s to camelCase.
// Example: "user_profile" -> "userProfile", "XMLHttpRequest" -> "xmlHttpRequest"
func ToCamelCase(s string) string {
	words := Words(s)
	if len(words) == 0 {
		return ""
	}
	lower := cases.Lower(language.Und)
	title := cases.Title(language.Und)
	var b strings.Builder
	for i, w := range words {
		if i == 0 {
			b.WriteString(lower.String(w))
			continue
		}
		b.WriteString(title.String(w))
	}
	return b.String()
}

// ToPascalCase converts s to PascalCase.
// Example: "user_profile" -> "UserProfile", "api-client" -> "ApiClient"
func ToPascalCase(s string) string {
	return ToTitleCase(ToCamelCase(s))
}

// ToSnakeCase converts s to snake_case.
// Example: "UserProfile" -> "user_profile", "APIClient" -> "api_client"
func ToSnakeCase(s string) string {
	return joinLower(s, "_")
}

// ToKebabCase converts s to kebab-case.
// Example: "UserProfile" -> "user-profile"
func ToKebabCase(s string) string {
	return joinLower(s, "-")
}

func joinLower(s, sep string) string {
	words := Words(s)
	lower := cases.Lower(language.Und)
	for i, w := range words {
		words[i] = lower.String(w)
	}
	return strings.Join(words, sep)
}

// ToTitleCase upper-cases the first letter and leaves the rest alone.
// Example: "hello" -> "Hello"
func ToTitleCase(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// ToLowerFirst lower-cases the first letter and leaves the rest alone.
func ToLowerFirst(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
