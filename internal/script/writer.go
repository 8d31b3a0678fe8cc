package script

import (
	"regexp"
	"sort"
	"strings"

	"github.com/emstudio/emsync/internal/pyliteral"
)

// Keys that never go through the generic value substitution. Boundaries and
// ports have dedicated serializers; run configuration stays GUI-side.
var excludedWriteKeys = map[string]bool{
	"Boundaries":      true,
	"boundary":        true,
	"Ports":           true,
	"RunDir":          true,
	"RunPythonScript": true,
}

// KeyIsExcluded reports whether a setting key is handled by a dedicated
// serializer instead of the generic substitution path.
func KeyIsExcluded(key string) bool {
	return excludedWriteKeys[key]
}

// ApplySetting writes one setting value back into the script using the
// write mode discovered during the last parse. The substitution is global:
// every assignment of the key is rewritten, preserving indentation and
// trailing comments. When mode lookup fails the input text is returned
// unchanged and ok is false; a missing key only means the template does not
// expose that parameter.
func ApplySetting(text, key string, value pyliteral.Value, modes map[string]WriteMode) (out string, ok bool) {
	if KeyIsExcluded(key) {
		return text, false
	}

	mode, found := modes[key]
	if !found {
		return text, false
	}

	var literal string
	if pyliteral.IsFilePath(key, value) {
		literal = pyliteral.QuotePath(value.StrV)
	} else {
		literal = pyliteral.Encode(value)
	}

	switch mode {
	case TopLevelAssignment:
		return substituteValue(text, topLevelKeyRe(key), literal), true
	case DictKeyAssignment:
		return substituteValue(text, dictKeyRe(key), literal), true
	}
	return text, false
}

// substituteValue rewrites the value group of an assignment pattern while
// keeping the prefix (indentation, key, '=') and the trailing comment.
func substituteValue(text string, re *regexp.Regexp, literal string) string {
	return re.ReplaceAllStringFunc(text, func(line string) string {
		m := re.FindStringSubmatch(line)
		// Group layout: 1 prefix, last group trailing comment.
		return m[1] + literal + m[len(m)-1]
	})
}

// ApplyResult reports what a full patch cycle changed.
type ApplyResult struct {
	Text    string
	Applied []string
	Skipped []string // keys with no discovered write mode
}

// ApplySettings applies a whole settings map in deterministic key order.
// Unknown keys are collected in Skipped rather than raised as errors.
func ApplySettings(text string, values map[string]pyliteral.Value, modes map[string]WriteMode) ApplyResult {
	res := ApplyResult{}

	for _, key := range sortedKeys(values) {
		if KeyIsExcluded(key) {
			continue
		}
		next, ok := ApplySetting(text, key, values[key], modes)
		if !ok {
			res.Skipped = append(res.Skipped, key)
			continue
		}
		text = next
		res.Applied = append(res.Applied, key)
	}

	res.Text = text
	return res
}

func sortedKeys(values map[string]pyliteral.Value) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Boundary sides in serialization order.
var BoundarySides = []string{"X-", "X+", "Y-", "Y+", "Z-", "Z+"}

// Both dialects are accepted: OpenEMS scripts use 'Boundaries', Palace
// scripts use 'boundary'. The rewrite keeps whichever key the script has.
var (
	dictBoundariesRe = regexp.MustCompile(`(?m)^[ \t]*(\w+)\s*\[\s*['"](Boundaries|boundary)['"]\s*\]\s*=\s*.*$`)
	topBoundariesRe  = regexp.MustCompile(`(?m)^Boundaries\s*=.*$`)
)

// ApplyBoundaries rewrites the boundary condition list from a side->value
// map. Missing sides default to PEC. Dict-style assignments are always
// rewritten; the top-level "Boundaries = [...]" assignment only when
// alsoTopLevel is set (OpenEMS-style scripts).
func ApplyBoundaries(text string, sides map[string]string, alsoTopLevel bool) string {
	values := make([]string, 0, len(BoundarySides))
	for _, side := range BoundarySides {
		v := sides[side]
		if v == "" {
			v = "PEC"
		}
		values = append(values, v)
	}

	listLiteral := "['" + strings.Join(values, "', '") + "']"

	text = dictBoundariesRe.ReplaceAllString(text, "${1}['${2}'] = "+listLiteral)
	if alsoTopLevel {
		text = topBoundariesRe.ReplaceAllString(text, "Boundaries = "+listLiteral)
	}
	return text
}

var boundaryItemRe = regexp.MustCompile(`['"]([^'"]+)['"]`)

// ParseBoundaryItems extracts the six boundary names from a Python list
// literal such as "['PEC','PEC',...]". The result may be empty or short on
// malformed input.
func ParseBoundaryItems(listLiteral string) []string {
	expr := strings.TrimSpace(listLiteral)
	if strings.HasPrefix(expr, "[") && strings.HasSuffix(expr, "]") {
		expr = expr[1 : len(expr)-1]
	}

	var items []string
	for _, m := range boundaryItemRe.FindAllStringSubmatch(expr, -1) {
		items = append(items, strings.TrimSpace(m[1]))
	}
	return items
}

var (
	gdsFilenameRe = regexp.MustCompile(`(?m)^gds_filename\s*=.*$`)
	gdsCellnameRe = regexp.MustCompile(`(?m)^\s*gds_cellname\s*=.*$`)
	xmlFilenameRe = regexp.MustCompile(`(?m)^XML_filename\s*=.*$`)
)

// ApplyFileRefs rewrites the GDS, top-cell and substrate XML assignments.
// Empty arguments leave the corresponding assignment untouched.
func ApplyFileRefs(text, gdsPath, cellName, xmlPath string) string {
	if gdsPath != "" {
		text = gdsFilenameRe.ReplaceAllString(text, "gds_filename = "+pyliteral.QuotePath(gdsPath))
	}
	if cellName != "" {
		text = gdsCellnameRe.ReplaceAllString(text, `gds_cellname = "`+cellName+`"`)
	}
	if xmlPath != "" {
		text = xmlFilenameRe.ReplaceAllString(text, "XML_filename = "+pyliteral.QuotePath(xmlPath))
	}
	return text
}
