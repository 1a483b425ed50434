package goldmark

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/chatdown"
)

// Markdown serializes blocks as CommonMark: "## " headings, "- " bullet
// lists and paragraphs, separated by blank lines. Consecutive bullet points
// form one tight list. ASCII punctuation in text is backslash-escaped. Bold
// runs are wrapped in "**", or in inline <strong> tags where "**" could not
// open or close at that position, so the output converts to the same HTML
// as HTML when raw HTML is allowed.
func Markdown(blocks []chatdown.Block) string {
	var sb strings.Builder
	for i, b := range blocks {
		if i > 0 {
			_, prevBullet := blocks[i-1].(chatdown.BulletPoint)
			_, bullet := b.(chatdown.BulletPoint)
			if !prevBullet || !bullet {
				sb.WriteString("\n")
			}
		}
		switch b.(type) {
		case chatdown.Heading:
			sb.WriteString("## ")
		case chatdown.BulletPoint:
			sb.WriteString("- ")
		}
		writeRuns(&sb, chatdown.Runs(b))
		sb.WriteString("\n")
	}
	return sb.String()
}

func writeRuns(sb *strings.Builder, runs []chatdown.Run) {
	for i, r := range runs {
		if !r.Bold {
			sb.WriteString(escape(r.Text))
			continue
		}
		var next rune
		if i+1 < len(runs) {
			next, _ = utf8.DecodeRuneInString(runs[i+1].Text)
		}
		prev, _ := utf8.DecodeLastRuneInString(sb.String())
		if prev == utf8.RuneError {
			prev = 0
		}
		if delimitable(prev, r.Text, next) {
			sb.WriteString("**" + escape(r.Text) + "**")
		} else {
			sb.WriteString("<strong>" + escape(r.Text) + "</strong>")
		}
	}
}

// delimitable reports whether "**" around text, between the characters prev
// and next (0 at a line edge), forms a left-flanking opener and a
// right-flanking closer. A "*" before the opener would merge into one
// delimiter run with it.
func delimitable(prev rune, text string, next rune) bool {
	first, _ := utf8.DecodeRuneInString(text)
	last, _ := utf8.DecodeLastRuneInString(text)
	if text == "" || unicode.IsSpace(first) || unicode.IsSpace(last) || prev == '*' {
		return false
	}
	if isPunct(first) && !boundary(prev) {
		return false
	}
	if isPunct(last) && !boundary(next) {
		return false
	}
	return true
}

// boundary reports whether r lets an emphasis delimiter sit next to
// punctuation. Escaped output starts and ends with ASCII punctuation, so
// only those, whitespace and line edges count.
func boundary(r rune) bool {
	return r == 0 || unicode.IsSpace(r) || (r < utf8.RuneSelf && isASCIIPunct(byte(r)))
}

func isPunct(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// escape backslash-escapes every ASCII punctuation character.
func escape(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isASCIIPunct(c) {
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func isASCIIPunct(c byte) bool {
	return (c >= '!' && c <= '/') || (c >= ':' && c <= '@') ||
		(c >= '[' && c <= '`') || (c >= '{' && c <= '~')
}
