// Package naming converts API names and endpoint ids into identifiers for
// the generated JavaScript, PHP and file trees.
package naming

import (
	"strings"
	"unicode"
)

var commonInitialisms = map[string]bool{
	"AI":    true,
	"API":   true,
	"CSS":   true,
	"CSV":   true,
	"DNS":   true,
	"HTML":  true,
	"HTTP":  true,
	"HTTPS": true,
	"ID":    true,
	"IP":    true,
	"JSON":  true,
	"JWT":   true,
	"PDF":   true,
	"SDK":   true,
	"SQL":   true,
	"SSO":   true,
	"UI":    true,
	"URI":   true,
	"URL":   true,
	"UUID":  true,
	"XML":   true,
}

// SetAdditionalInitialisms adds custom initialisms to the naming rules.
// Call once during initialization before generation.
func SetAdditionalInitialisms(initialisms []string) {
	for _, init := range initialisms {
		commonInitialisms[strings.ToUpper(init)] = true
	}
}

func PascalCase(s string) string {
	words := splitWords(s)
	var result strings.Builder
	for _, word := range words {
		result.WriteString(pascalWord(word))
	}
	return result.String()
}

func CamelCase(s string) string {
	words := splitWords(s)
	var result strings.Builder
	for i, word := range words {
		if i == 0 {
			result.WriteString(strings.ToLower(word))
			continue
		}
		result.WriteString(pascalWord(word))
	}
	return result.String()
}

func SnakeCase(s string) string {
	return joinLower(splitWords(s), "_")
}

// KebabCase is used for slugs: plugin directories, route file names and
// feature page names.
func KebabCase(s string) string {
	return joinLower(splitWords(s), "-")
}

// ScreamingSnakeCase upper-cases SnakeCase. See EnvName for variable names.
func ScreamingSnakeCase(s string) string {
	return strings.ToUpper(SnakeCase(s))
}

// EnvName returns an environment variable name made of [A-Z0-9_] only,
// prefixed with "API_" when it would start with a digit.
func EnvName(s string) string {
	var b strings.Builder
	for _, r := range ScreamingSnakeCase(s) {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '_' && b.Len() > 0 && !strings.HasSuffix(b.String(), "_"):
			b.WriteRune(r)
		}
	}
	name := strings.TrimSuffix(b.String(), "_")
	if name == "" {
		return "API"
	}
	if name[0] >= '0' && name[0] <= '9' {
		return "API_" + name
	}
	return name
}

// PHPClass returns a WordPress style class name such as "Acme_API_Service".
func PHPClass(s string) string {
	words := splitWords(s)
	for i, word := range words {
		words[i] = pascalWord(word)
	}
	return strings.Join(words, "_")
}

// TitleCase capitalizes each word and joins with spaces.
func TitleCase(s string) string {
	words := splitWords(s)
	for i, word := range words {
		words[i] = pascalWord(word)
	}
	return strings.Join(words, " ")
}

func pascalWord(word string) string {
	upper := strings.ToUpper(word)
	if commonInitialisms[upper] {
		return upper
	}
	return capitalize(word)
}

func joinLower(words []string, sep string) string {
	for i, word := range words {
		words[i] = strings.ToLower(word)
	}
	return strings.Join(words, sep)
}

// splitWords breaks s on separators, punctuation and lower-to-upper case
// transitions. Path ids such as "get__users__id_" split into get/users/id.
func splitWords(s string) []string {
	var words []string
	var current strings.Builder
	var prev rune

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	for i, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			prev = r
			continue
		}

		if unicode.IsUpper(r) && i > 0 && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			flush()
		}

		current.WriteRune(r)
		prev = r
	}
	flush()

	return words
}

func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	for i := 1; i < len(runes); i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// JSIdentifier returns a camelCase identifier safe to use as a JavaScript
// function or method name.
func JSIdentifier(s string) string {
	result := CamelCase(s)
	if result == "" {
		return "op"
	}
	if unicode.IsDigit(rune(result[0])) {
		result = "op" + result
	}
	if jsKeywords[result] {
		return result + "_"
	}
	return result
}

// PHPIdentifier returns a snake_case identifier safe to use as a PHP
// function or method name.
func PHPIdentifier(s string) string {
	result := SnakeCase(s)
	if result == "" {
		return "op"
	}
	if unicode.IsDigit(rune(result[0])) {
		result = "op_" + result
	}
	if phpKeywords[result] {
		return result + "_"
	}
	return result
}

var jsKeywords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "export": true, "extends": true, "finally": true, "for": true,
	"function": true, "if": true, "import": true, "in": true, "instanceof": true,
	"new": true, "return": true, "super": true, "switch": true, "this": true,
	"throw": true, "try": true, "typeof": true, "var": true, "void": true,
	"while": true, "with": true, "yield": true, "let": true, "static": true,
	"await": true, "enum": true,
}

var phpKeywords = map[string]bool{
	"abstract": true, "and": true, "array": true, "as": true, "break": true,
	"callable": true, "case": true, "catch": true, "class": true, "clone": true,
	"const": true, "continue": true, "declare": true, "default": true, "do": true,
	"echo": true, "else": true, "empty": true, "eval": true, "exit": true,
	"extends": true, "final": true, "for": true, "foreach": true, "function": true,
	"global": true, "goto": true, "if": true, "include": true, "interface": true,
	"isset": true, "list": true, "new": true, "or": true, "print": true,
	"private": true, "protected": true, "public": true, "require": true, "return": true,
	"static": true, "switch": true, "throw": true, "trait": true, "try": true,
	"unset": true, "use": true, "var": true, "while": true, "xor": true,
}
