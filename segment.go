package chatdown

import (
	"regexp"
	"strings"
)

// headingPattern matches a whole line wrapped in bold markers with an
// optional trailing colon.
var headingPattern = regexp.MustCompile(`^\*\*([^*]+)\*\*:?$`)

// bulletMarkers are tried in order; only the first match is stripped.
var bulletMarkers = []string{"* ", "- ", "• "}

// Segment splits normalized text into blocks, one per non-blank line, in
// input order. Adjacent paragraphs are not merged.
//
// Each trimmed line is classified by the first matching rule: blank lines are
// skipped, then heading, then bullet point, then paragraph. A bullet starts
// with "* ", "- " or "•"; the "•" glyph counts with or without a following
// space, so "•item" is a bullet with text "item". Headings and bullet points
// that are empty after stripping their markers are dropped.
func Segment(normalized string) []Block {
	var blocks []Block
	for _, line := range strings.Split(normalized, "\n") {
		if b, ok := classify(strings.TrimSpace(line)); ok {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

func classify(line string) (Block, bool) {
	if line == "" {
		return nil, false
	}
	if m := headingPattern.FindStringSubmatch(line); m != nil {
		text := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(m[1]), ":"))
		if text == "" {
			return nil, false
		}
		return Heading{Text: text}, true
	}
	if isBullet(line) {
		text := strings.TrimSpace(stripBullet(line))
		if text == "" {
			return nil, false
		}
		return BulletPoint{Text: text}, true
	}
	return Paragraph{Text: line}, true
}

func isBullet(line string) bool {
	return strings.HasPrefix(line, "* ") ||
		strings.HasPrefix(line, "- ") ||
		strings.HasPrefix(line, "•")
}

func stripBullet(line string) string {
	for _, marker := range bulletMarkers {
		if rest, ok := strings.CutPrefix(line, marker); ok {
			return rest
		}
	}
	// A bullet glyph glued to its text, e.g. "•item".
	return strings.TrimPrefix(line, "•")
}
