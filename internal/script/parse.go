package script

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Result is the outcome of parsing a model script. Every parse call builds
// a fresh Result from the text alone; nothing is cached between calls.
type Result struct {
	Ok    bool
	Error string

	// Settings keyed by name, with Order preserving discovery order.
	Settings map[string]Setting
	Order    []string

	// WriteModes is threaded through to the patch direction so a rewrite
	// targets the shape each key was found in.
	WriteModes map[string]WriteMode

	// Tips maps setting keys to rendered tooltip text. Keys without a
	// matching setting are pruned.
	Tips map[string]string

	Ports []Port

	GdsFilename string
	XMLFilename string

	// SimPath is the derived simulation output path (script directory plus
	// base name), only set by ParseFile.
	SimPath string
}

// Parse scans script text for settings, tips, ports and file references.
// It never fails on malformed input; a script without any settings-like
// assignment yields Ok=false with a descriptive message.
func Parse(text string) Result {
	scanned := scanAssignments(text)

	res := Result{
		Settings:   scanned.settings,
		Order:      scanned.order,
		WriteModes: scanned.modes,
		Tips:       make(map[string]string),
		Ports:      ParsePorts(text),
	}

	res.GdsFilename, res.XMLFilename = scanFileRefs(text)

	// Doc-comment blocks first, inline "# @brief" comments as fallback.
	// Tips only survive for keys that exist as settings.
	blocks := extractTipBlocks(text)
	for key, setting := range res.Settings {
		if tip, ok := blocks[key]; ok {
			if s := tip.Render(); s != "" {
				res.Tips[key] = s
			}
			continue
		}
		if m := inlineBriefRe.FindStringSubmatch("#" + setting.Comment); m != nil {
			if s := strings.TrimSpace(m[1]); s != "" {
				res.Tips[key] = s
			}
		}
	}

	if len(res.Settings) == 0 {
		res.Error = "no settings-like assignments found"
		return res
	}

	res.Ok = true
	return res
}

// ParseFile reads a script from disk and parses it. File access errors are
// reported through the Result, matching the in-memory error convention.
func ParseFile(path string) Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{Error: fmt.Sprintf("cannot open file %s: %v", path, err)}
	}

	res := Parse(string(data))
	if !res.Ok && res.Error != "" {
		res.Error = fmt.Sprintf("%s in %s", res.Error, path)
	}

	dir := filepath.Dir(path)
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if dir != "" && base != "" {
		res.SimPath = filepath.Join(dir, base)
	}

	return res
}
