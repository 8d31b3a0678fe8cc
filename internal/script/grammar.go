// Package script implements the bidirectional synchronization between EM
// model Python scripts and structured simulation settings.
//
// The parse direction turns loosely structured script text into typed
// settings, tooltip text and port records. The patch direction writes edited
// values back into the same text, touching only the value tokens and the
// generated port block so that comments, ordering and unrelated code survive
// a round trip unchanged.
package script

import (
	"fmt"
	"regexp"
)

// The script "grammar" is a set of regular expressions over a restricted
// Python subset. All fragments live here so that scanning and rewriting use
// identical patterns.
var (
	// Dict-style assignment: <ident>['key'] = value   # optional comment
	// The left-hand identifier is deliberately unrestricted so that
	// different dict variable names still work.
	dictAssignRe = regexp.MustCompile(`(?m)^[ \t]*(\w+)\s*\[\s*['"]([^'"]+)['"]\s*\]\s*=\s*(.+)$`)

	// Top-level assignment: ident = value   # optional comment
	topAssignRe = regexp.MustCompile(`(?m)^[ \t]*([A-Za-z_]\w*)[ \t]*=[ \t]*(.+)$`)

	// File reference assignments handled outside the generic settings map.
	fileRefRe = regexp.MustCompile(`(?m)^\s*(gds_filename|XML_filename)\s*=\s*(.+)$`)

	// add_port call, DOTALL so multi-line argument lists match.
	portCallRe = regexp.MustCompile(`(?s)simulation_ports\s*\.\s*add_port\s*\(\s*simulation_setup\s*\.\s*simulation_port\s*\(\s*(.*?)\s*\)\s*\)`)

	// First line of a port block.
	portBlockStartRe = regexp.MustCompile(`(?m)^[ \t]*simulation_ports\s*=\s*simulation_setup\.all_simulation_ports\(\)[ \t]*(?:#.*)?\r?\n?`)

	// Comment marker that precedes the simulation section, used as the
	// insertion anchor when no port block exists yet.
	simMarkerRe = regexp.MustCompile(`#[^\n]*simulation\s*={3,}`)

	// Doc-comment directives.
	tipParamRe   = regexp.MustCompile(`^#\s*@param\s+settings\.(\w+)\b`)
	tipBriefRe   = regexp.MustCompile(`^#\s*@brief\s*(.*)$`)
	tipDetailsRe = regexp.MustCompile(`^#\s*@details\s*(.*)$`)
	tipDefaultRe = regexp.MustCompile(`^#\s*@default\s*(.*)$`)

	// Inline tip on an assignment line: ... # @brief text
	inlineBriefRe = regexp.MustCompile(`#\s*@brief\s*(.*)$`)
)

// topLevelKeyRe builds the rewrite pattern for a top-level assignment of a
// specific key, preserving indentation and a trailing comment.
func topLevelKeyRe(key string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`(?m)^([ \t]*%s\b[ \t]*=[ \t]*)([^#\r\n]*?)([ \t]*#.*)?$`,
		regexp.QuoteMeta(key)))
}

// dictKeyRe builds the rewrite pattern for a dict-style assignment of a
// specific key. The dict variable name is a wildcard.
func dictKeyRe(key string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`(?m)^(\s*\w+\s*\[\s*['"]%s['"]\s*\]\s*=\s*)([^#\n]*?)(\s*#.*)?$`,
		regexp.QuoteMeta(key)))
}

// Keyword-argument fragment builders for simulation_port(...) calls.

func intArgRe(key string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`%s\s*=\s*([+-]?\d+)`, regexp.QuoteMeta(key)))
}

func numArgRe(key string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`%s\s*=\s*([+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?)`,
		regexp.QuoteMeta(key)))
}

func strArgRe(key string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`%s\s*=\s*(?:'([^']*)'|"([^"]*)")`, regexp.QuoteMeta(key)))
}
