package script

import (
	"strings"

	"github.com/emstudio/emsync/internal/pyliteral"
)

// WriteMode records the syntactic shape a setting was discovered in. It is
// consulted at patch time so a rewrite targets the same shape.
type WriteMode int

const (
	// TopLevelAssignment is a plain "key = value" line.
	TopLevelAssignment WriteMode = iota
	// DictKeyAssignment is a "<dict>['key'] = value" line.
	DictKeyAssignment
)

// String returns the serialized mode name.
func (m WriteMode) String() string {
	if m == DictKeyAssignment {
		return "dict"
	}
	return "toplevel"
}

// Setting is one discovered key/value pair together with how and where it
// was found.
type Setting struct {
	Key     string
	Value   pyliteral.Value
	Mode    WriteMode
	Line    int    // 1-based line of the assignment
	Comment string // trailing comment text, without the leading '#'
}

// scanResult collects everything the assignment scanner finds in one pass.
type scanResult struct {
	settings map[string]Setting
	order    []string
	modes    map[string]WriteMode
}

// scanAssignments finds dict-style and top-level assignments across the
// whole document. Dict assignments take priority on key collisions; within
// one shape the first occurrence wins for mode and value tracking.
func scanAssignments(text string) scanResult {
	res := scanResult{
		settings: make(map[string]Setting),
		modes:    make(map[string]WriteMode),
	}

	record := func(s Setting) {
		old, exists := res.settings[s.Key]
		if !exists {
			res.settings[s.Key] = s
			res.modes[s.Key] = s.Mode
			res.order = append(res.order, s.Key)
			return
		}
		// Dict assignments override earlier top-level ones; duplicates of
		// the same shape keep the first occurrence.
		if old.Mode == TopLevelAssignment && s.Mode == DictKeyAssignment {
			res.settings[s.Key] = s
			res.modes[s.Key] = s.Mode
		}
	}

	for _, m := range topAssignRe.FindAllStringSubmatchIndex(text, -1) {
		key := text[m[2]:m[3]]
		raw := text[m[4]:m[5]]

		if isFileRefKey(key) {
			continue
		}

		value := pyliteral.Decode(raw)
		if skipTopLevelEntry(key, value) {
			continue
		}

		record(Setting{
			Key:     key,
			Value:   value,
			Mode:    TopLevelAssignment,
			Line:    lineAt(text, m[0]),
			Comment: trailingComment(raw),
		})
	}

	for _, m := range dictAssignRe.FindAllStringSubmatchIndex(text, -1) {
		key := text[m[4]:m[5]]
		raw := text[m[6]:m[7]]

		record(Setting{
			Key:     key,
			Value:   pyliteral.Decode(raw),
			Mode:    DictKeyAssignment,
			Line:    lineAt(text, m[0]),
			Comment: trailingComment(raw),
		})
	}

	return res
}

// isFileRefKey reports whether a top-level identifier is one of the file
// reference variables that are tracked separately from generic settings.
func isFileRefKey(key string) bool {
	return key == "gds_filename" || key == "XML_filename" || key == "gds_cellname"
}

// skipTopLevelEntry filters top-level matches that are not settings but
// ordinary script code. String values that reference other code (contain a
// dot or a call), merely repeat the key, or are fragments of a multi-line
// call (keyword arguments end with ',' or ')') are not settings.
func skipTopLevelEntry(key string, v pyliteral.Value) bool {
	if v.Kind != pyliteral.String {
		return false
	}
	s := v.StrV
	if s == key {
		return true
	}
	if strings.ContainsAny(s, ".(") {
		return true
	}
	return strings.HasSuffix(s, ",") || strings.HasSuffix(s, ")")
}

// trailingComment extracts the trailing comment of a raw value expression,
// honoring quotes, without the '#' prefix.
func trailingComment(raw string) string {
	inSingle := false
	inDouble := false
	for i, r := range raw {
		switch {
		case r == '\'' && !inDouble:
			inSingle = !inSingle
		case r == '"' && !inSingle:
			inDouble = !inDouble
		case r == '#' && !inSingle && !inDouble:
			return strings.TrimSpace(strings.TrimPrefix(raw[i:], "#"))
		}
	}
	return ""
}

// lineAt returns the 1-based line number of a byte offset.
func lineAt(text string, offset int) int {
	return strings.Count(text[:offset], "\n") + 1
}

// scanFileRefs extracts the gds_filename and XML_filename assignments,
// unwrapping one layer of quotes.
func scanFileRefs(text string) (gds, xml string) {
	for _, m := range fileRefRe.FindAllStringSubmatch(text, -1) {
		value := pyliteral.StripLineComment(m[2])
		if len(value) >= 2 {
			if (strings.HasPrefix(value, "'") && strings.HasSuffix(value, "'")) ||
				(strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`)) {
				value = value[1 : len(value)-1]
			}
		}
		switch m[1] {
		case "gds_filename":
			gds = value
		case "XML_filename":
			xml = value
		}
	}
	return gds, xml
}
