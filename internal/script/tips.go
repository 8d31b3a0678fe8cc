package script

import "strings"

// Tip holds the structured doc-comment text associated with a setting key.
type Tip struct {
	Brief   string
	Details string
	Default string
}

// Render assembles the tooltip string: brief, details and "Default: X",
// separated by blank lines, omitting absent sections.
func (t Tip) Render() string {
	var parts []string
	if t.Brief != "" {
		parts = append(parts, t.Brief)
	}
	if t.Details != "" {
		parts = append(parts, t.Details)
	}
	if t.Default != "" {
		parts = append(parts, "Default: "+t.Default)
	}
	return strings.Join(parts, "\n\n")
}

// tipSection identifies the accumulator a continuation line is appended to.
type tipSection int

const (
	sectionNone tipSection = iota
	sectionBrief
	sectionDetails
	sectionDefault
)

// extractTipBlocks runs the doc-comment state machine over the script and
// returns the raw tips keyed by setting name. Keys without a matching
// setting are pruned later.
func extractTipBlocks(text string) map[string]Tip {
	tips := make(map[string]Tip)

	var (
		inBlock bool
		key     string
		cur     Tip
		last    tipSection
	)

	commit := func() {
		if inBlock && key != "" {
			tips[key] = cur
		}
		inBlock = false
		key = ""
		cur = Tip{}
		last = sectionNone
	}

	appendTo := func(section tipSection, text string) {
		switch section {
		case sectionBrief:
			if cur.Brief == "" {
				cur.Brief = text
			} else {
				cur.Brief += "\n" + text
			}
		case sectionDetails:
			if cur.Details == "" {
				cur.Details = text
			} else {
				cur.Details += "\n" + text
			}
		case sectionDefault:
			if cur.Default == "" {
				cur.Default = text
			} else {
				cur.Default += "\n" + text
			}
		}
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if m := tipParamRe.FindStringSubmatch(trimmed); m != nil {
			commit()
			inBlock = true
			key = m[1]
			continue
		}

		if !inBlock {
			continue
		}

		// Blank lines are tolerated mid-block.
		if trimmed == "" {
			continue
		}

		if !strings.HasPrefix(trimmed, "#") {
			commit()
			continue
		}

		if m := tipBriefRe.FindStringSubmatch(trimmed); m != nil {
			cur.Brief = strings.TrimSpace(m[1])
			last = sectionBrief
			continue
		}
		if m := tipDetailsRe.FindStringSubmatch(trimmed); m != nil {
			cur.Details = strings.TrimSpace(m[1])
			last = sectionDetails
			continue
		}
		if m := tipDefaultRe.FindStringSubmatch(trimmed); m != nil {
			cur.Default = strings.TrimSpace(m[1])
			last = sectionDefault
			continue
		}

		body := strings.TrimSpace(strings.TrimPrefix(trimmed, "#"))
		if strings.HasPrefix(body, "@") {
			// Unknown directive, ignore.
			continue
		}
		if body == "" {
			continue
		}

		// Free-text continuation: last active section wins, otherwise
		// details when already started, otherwise brief.
		target := last
		if target == sectionNone {
			if cur.Details != "" {
				target = sectionDetails
			} else {
				target = sectionBrief
			}
		}
		appendTo(target, body)
	}

	commit()
	return tips
}
