package naming

import (
	"encoding/json"
	"strings"
	"text/template"
)

func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"pascalCase":     PascalCase,
		"camelCase":      CamelCase,
		"snakeCase":      SnakeCase,
		"kebabCase":      KebabCase,
		"screamingSnake": ScreamingSnakeCase,
		"titleCase":      TitleCase,
		"phpClass":       PHPClass,
		"jsIdent":        JSIdentifier,
		"phpIdent":       PHPIdentifier,
		"jsString":       JSString,
		"phpString":      PHPString,
		"htmlAttr":       HTMLAttr,
		"headerLine":     HeaderLine,
		"toJSON":         ToJSON,
		"indent":         Indent,
		"dict":           Dict,
		"lower":          strings.ToLower,
		"upper":          strings.ToUpper,
		"join":           strings.Join,
		"hasPrefix":      strings.HasPrefix,
		"hasSuffix":      strings.HasSuffix,
		"trimPrefix":     strings.TrimPrefix,
		"trimSuffix":     strings.TrimSuffix,
		"replace":        strings.ReplaceAll,
		"add":            func(a, b int) int { return a + b },
	}
}

// Dict creates a map from key-value pairs for use in templates.
func Dict(values ...any) map[string]any {
	if len(values)%2 != 0 {
		return nil
	}
	dict := make(map[string]any, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			continue
		}
		dict[key] = values[i+1]
	}
	return dict
}

// ToJSON renders v as two-space indented JSON. Map keys are sorted by the
// encoder so the output is stable.
func ToJSON(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// JSString quotes s as a JavaScript string literal.
func JSString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

var phpEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// PHPString quotes s as a single-quoted PHP string literal.
func PHPString(s string) string {
	return "'" + phpEscaper.Replace(s) + "'"
}

var htmlEscaper = strings.NewReplacer(`&`, "&amp;", `"`, "&quot;", `<`, "&lt;", `>`, "&gt;")

func HTMLAttr(s string) string {
	return htmlEscaper.Replace(s)
}

// HeaderLine reduces s to its first non-blank line with comment terminators
// removed, for use inside a docblock.
func HeaderLine(s string) string {
	for line := range strings.Lines(s) {
		if line = strings.TrimSpace(line); line != "" {
			return strings.TrimSpace(strings.ReplaceAll(line, "*/", ""))
		}
	}
	return ""
}

// Indent prefixes every line after the first with n spaces.
func Indent(n int, s string) string {
	pad := strings.Repeat(" ", n)
	return strings.ReplaceAll(s, "\n", "\n"+pad)
}
