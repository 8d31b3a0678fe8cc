package script

import "strings"

// span is a half-open [start, end) byte range in a script.
type span struct {
	start int
	end   int
}

// replaceSpan substitutes one span of the text. All offset bookkeeping goes
// through this primitive so no caller re-derives offsets after a mutation.
func replaceSpan(text string, s span, replacement string) string {
	return text[:s.start] + replacement + text[s.end:]
}

// findPortBlocks locates every port definition block. A block starts at a
// "simulation_ports = simulation_setup.all_simulation_ports()" line and
// extends through all immediately following lines that are blank, a comment
// or an add_port(...) call.
func findPortBlocks(text string) []span {
	var blocks []span

	searchPos := 0
	for searchPos < len(text) {
		loc := portBlockStartRe.FindStringIndex(text[searchPos:])
		if loc == nil {
			break
		}

		blockStart := searchPos + loc[0]
		scan := searchPos + loc[1]

		// The block end snaps back to just after the last add_port line,
		// so trailing blank and comment lines stay outside the block and
		// repeated rewrites are byte-stable.
		blockEnd := scan

	scanLines:
		for scan < len(text) {
			lineEnd := strings.IndexByte(text[scan:], '\n')
			if lineEnd < 0 {
				lineEnd = len(text)
			} else {
				lineEnd += scan
			}

			next := lineEnd
			if lineEnd < len(text) {
				next = lineEnd + 1
			}

			t := strings.TrimSpace(text[scan:lineEnd])
			switch {
			case strings.HasPrefix(t, "simulation_ports.add_port"):
				scan = next
				blockEnd = scan
			case t == "" || strings.HasPrefix(t, "#"):
				scan = next
			default:
				break scanLines
			}
		}

		blocks = append(blocks, span{start: blockStart, end: blockEnd})
		searchPos = blockEnd
	}

	return blocks
}

// ReplaceOrInsertPortBlock replaces the first port block with blockText and
// removes any duplicate blocks, so at most one block survives a patch
// cycle. When no block exists, blockText is inserted before the
// "# ... simulation ===" marker if present, otherwise appended at the end
// of the document.
func ReplaceOrInsertPortBlock(text, blockText string) string {
	blocks := findPortBlocks(text)

	if len(blocks) > 0 {
		// Delete duplicates from the end to keep earlier offsets valid.
		for i := len(blocks) - 1; i >= 1; i-- {
			text = replaceSpan(text, blocks[i], "")
		}
		return replaceSpan(text, blocks[0], blockText)
	}

	injected := "\n\n" + blockText + "\n"

	if loc := simMarkerRe.FindStringIndex(text); loc != nil {
		return text[:loc[0]] + injected + text[loc[0]:]
	}
	return text + injected
}
