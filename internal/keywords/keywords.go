// Package keywords loads fallback keyword descriptions from two-column
// CSV/TSV files, one file per simulation tool. These descriptions fill in
// tooltips for settings whose model script carries no doc comment.
package keywords

import (
	"bufio"
	"os"
	"strings"
)

// Load reads a keyword file and returns a keyword -> description map.
//
// The delimiter is detected from the first non-empty line: tab, then
// semicolon, then comma. Lines without a delimiter are keyword-only.
// Duplicate keywords keep the first occurrence. A missing file yields an
// empty map, not an error.
func Load(path string) (map[string]string, error) {
	out := make(map[string]string)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	delim := "\t"
	firstNonEmpty := true

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		if firstNonEmpty {
			delim = detectDelimiter(line)
			firstNonEmpty = false
		}

		key, desc := splitTwo(line, delim)
		if key == "" {
			continue
		}
		if _, exists := out[key]; !exists {
			out[key] = desc
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// detectDelimiter picks the column separator from a sample line.
func detectDelimiter(line string) string {
	switch {
	case strings.Contains(line, "\t"):
		return "\t"
	case strings.Contains(line, ";"):
		return ";"
	case strings.Contains(line, ","):
		return ","
	default:
		return "\t"
	}
}

// splitTwo splits a line at the first delimiter into key and description.
func splitTwo(line, delim string) (string, string) {
	idx := strings.Index(line, delim)
	if idx < 0 {
		return strings.TrimSpace(line), ""
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+len(delim):])
}

// Merge combines model tips with keyword fallbacks. Model tips win; a
// keyword description is only used for keys the model does not document.
func Merge(modelTips, fallback map[string]string) map[string]string {
	out := make(map[string]string, len(modelTips)+len(fallback))
	for k, v := range modelTips {
		out[k] = v
	}
	for k, v := range fallback {
		if _, exists := out[k]; !exists {
			out[k] = v
		}
	}
	return out
}
