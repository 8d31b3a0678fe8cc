package template

import (
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/emstudio/emsync/internal/pyliteral"
)

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	titleCaser := cases.Title(language.English)
	return template.FuncMap{
		// String functions
		"lower":     strings.ToLower,
		"upper":     strings.ToUpper,
		"title":     titleCaser.String,
		"trimSpace": strings.TrimSpace,
		"contains":  strings.Contains,
		"hasPrefix": strings.HasPrefix,
		"hasSuffix": strings.HasSuffix,
		"replace":   strings.ReplaceAll,
		"join":      strings.Join,

		// Python literal functions
		"pyValue":   pyValue,
		"quotePath": pyliteral.QuotePath,

		// Formatting functions
		"indent": indent,
	}
}

// pyValue renders a Go value as the matching Python literal.
func pyValue(v interface{}) string {
	return pyliteral.Encode(pyliteral.FromInterface(v))
}

// indent adds n spaces of indentation to each non-empty line.
func indent(n int, s string) string {
	prefix := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
