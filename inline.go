package chatdown

import "regexp"

// boldPattern matches the shortest "**...**" span with no asterisk inside.
var boldPattern = regexp.MustCompile(`\*\*([^*]+?)\*\*`)

// FormatInline splits text into normal and bold runs. Bold markers are
// removed; every other character is kept, in order. An unterminated "**"
// stays literal until its closer arrives.
//
// Text without any bold span yields a single normal run, including the empty
// string.
func FormatInline(text string) []Run {
	matches := boldPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []Run{{Text: text}}
	}
	runs := make([]Run, 0, 2*len(matches)+1)
	pos := 0
	for _, m := range matches {
		if m[0] > pos {
			runs = append(runs, Run{Text: text[pos:m[0]]})
		}
		runs = append(runs, Run{Text: text[m[2]:m[3]], Bold: true})
		pos = m[1]
	}
	if pos < len(text) {
		runs = append(runs, Run{Text: text[pos:]})
	}
	return runs
}
