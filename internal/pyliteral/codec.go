package pyliteral

import (
	"strconv"
	"strings"
)

// StripLineComment removes a trailing "#" comment from a value expression.
// A "#" inside a matching single- or double-quoted span does not start a
// comment. The result is trimmed of surrounding whitespace.
func StripLineComment(expr string) string {
	inSingle := false
	inDouble := false
	for i, r := range expr {
		switch {
		case r == '\'' && !inDouble:
			inSingle = !inSingle
		case r == '"' && !inSingle:
			inDouble = !inDouble
		case r == '#' && !inSingle && !inDouble:
			return strings.TrimSpace(expr[:i])
		}
	}
	return strings.TrimSpace(expr)
}

// Decode converts a Python literal text fragment into a typed Value.
//
// The rules match the model-file convention: exact True/False/None, one
// layer of quote unwrapping, then integer (base-prefix aware) and float
// parsing. Anything else is kept as an opaque string so that expressions
// like some_func() survive a round trip unevaluated.
func Decode(text string) Value {
	expr := StripLineComment(text)

	switch expr {
	case "True":
		return BoolValue(true)
	case "False":
		return BoolValue(false)
	case "None":
		return NoneValue()
	}

	if len(expr) >= 2 {
		if (strings.HasPrefix(expr, "'") && strings.HasSuffix(expr, "'")) ||
			(strings.HasPrefix(expr, `"`) && strings.HasSuffix(expr, `"`)) {
			return StringValue(expr[1 : len(expr)-1])
		}
	}

	intVal, intErr := strconv.ParseInt(expr, 0, 64)
	fltVal, fltErr := strconv.ParseFloat(expr, 64)

	lower := strings.ToLower(expr)
	looksFloat := strings.Contains(lower, ".") || strings.Contains(lower, "e")

	if intErr == nil && !looksFloat {
		return IntValue(intVal)
	}
	if fltErr == nil {
		return FloatValue(fltVal)
	}
	return StringValue(expr)
}

// Encode serializes a Value as a Python literal using the writer's default
// quoting convention (single quotes for strings).
func Encode(v Value) string {
	switch v.Kind {
	case Bool:
		if v.BoolV {
			return "True"
		}
		return "False"
	case Int:
		return strconv.FormatInt(v.IntV, 10)
	case Float:
		return strconv.FormatFloat(v.FltV, 'g', 12, 64)
	case String:
		return QuoteSingle(v.StrV)
	default:
		return "None"
	}
}

// QuoteSingle wraps a string in single quotes, escaping backslashes and
// embedded single quotes.
func QuoteSingle(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

// QuotePath converts a file path into a double-quoted Python string.
// Backslashes are normalized to forward slashes first, then backslashes and
// double quotes are escaped. Path assignments in model scripts always use
// double quotes.
func QuotePath(path string) string {
	path = strings.ReplaceAll(path, `\`, `/`)
	path = strings.ReplaceAll(path, `"`, `\"`)
	return `"` + path + `"`
}

// IsFilePath reports whether a setting key/value pair represents a GDS or
// substrate XML file path. Used to pick double-quoted path serialization.
func IsFilePath(key string, v Value) bool {
	if v.Kind != String {
		return false
	}
	s := strings.TrimSpace(v.StrV)
	if s == "" {
		return false
	}
	if strings.EqualFold(key, "GdsFile") || strings.EqualFold(key, "SubstrateFile") {
		return true
	}
	lower := strings.ToLower(s)
	return strings.HasSuffix(lower, ".gds") ||
		strings.HasSuffix(lower, ".gdsii") ||
		strings.HasSuffix(lower, ".xml")
}
