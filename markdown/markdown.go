// Package markdown renders chat replies to ANSI-styled terminal output
// using lipgloss for styling and word wrapping.
package markdown

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/fwojciec/chatdown"
	"github.com/rivo/uniseg"
)

const (
	defaultWidth = 80
	minTextWidth = 10
	bulletGlyph  = "• "
)

// Render parses source and returns ANSI-styled terminal output. Headings are
// bold in the accent color, bullet points get a "• " glyph with a hanging
// indent, and bold runs are bold. Text is word-wrapped to width; a
// non-positive width means 80 columns.
//
// Render reparses the whole source on each call, so it can be called on every
// update of a streaming reply.
func Render(source string, width int, theme chatdown.Theme) string {
	return RenderBlocks(chatdown.Parse(source), width, theme)
}

// RenderBlocks renders already-parsed blocks. See Render.
func RenderBlocks(blocks []chatdown.Block, width int, theme chatdown.Theme) string {
	if len(blocks) == 0 {
		return ""
	}
	if width <= 0 {
		width = defaultWidth
	}
	return newRenderer(theme).render(blocks, width)
}

// Plain renders source like Render with all escape sequences removed.
func Plain(source string, width int) string {
	return ansi.Strip(Render(source, width, chatdown.DefaultTheme()))
}

type renderer struct {
	heading lipgloss.Style
	bullet  lipgloss.Style
	bold    lipgloss.Style
}

func newRenderer(theme chatdown.Theme) *renderer {
	return &renderer{
		heading: textStyle().Foreground(ansiColor(theme.Accent)).Bold(true),
		bullet:  textStyle().Foreground(ansiColor(theme.Bullet)),
		bold:    textStyle().Bold(true),
	}
}

// textStyle returns a style that keeps tabs as they are; lipgloss expands
// them to spaces by default.
func textStyle() lipgloss.Style {
	return lipgloss.NewStyle().TabWidth(lipgloss.NoTabConversion)
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

func (r *renderer) render(blocks []chatdown.Block, width int) string {
	var sb strings.Builder
	for i, b := range blocks {
		if i > 0 && separated(blocks[i-1], b) {
			sb.WriteString("\n")
		}
		switch b := b.(type) {
		case chatdown.Heading:
			writeLines(&sb, "", "", wrap(r.heading.Render(b.Text), width))
		case chatdown.BulletPoint:
			r.writeBullet(&sb, b, width)
		case chatdown.Paragraph:
			writeLines(&sb, "", "", wrap(r.inline(b), width))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// separated reports whether a blank line goes between prev and next.
// Consecutive bullets form a tight list and a heading sits directly on top
// of its first block.
func separated(prev, next chatdown.Block) bool {
	switch prev.(type) {
	case chatdown.Heading:
		return false
	case chatdown.BulletPoint:
		_, ok := next.(chatdown.BulletPoint)
		return !ok
	default:
		return true
	}
}

func (r *renderer) writeBullet(sb *strings.Builder, b chatdown.BulletPoint, width int) {
	indent := uniseg.StringWidth(bulletGlyph)
	lines := wrap(r.inline(b), max(minTextWidth, width-indent))
	writeLines(sb, r.bullet.Render(bulletGlyph), strings.Repeat(" ", indent), lines)
}

// inline renders a block's runs, styling the bold ones.
func (r *renderer) inline(b chatdown.Block) string {
	var sb strings.Builder
	for _, run := range chatdown.Runs(b) {
		if run.Bold {
			sb.WriteString(r.bold.Render(run.Text))
			continue
		}
		sb.WriteString(run.Text)
	}
	return sb.String()
}

// wrap word-wraps s to width and drops the padding lipgloss adds to short
// lines.
func wrap(s string, width int) []string {
	lines := strings.Split(textStyle().Width(width).Render(s), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return lines
}

// writeLines writes lines with first in front of the first line and
// continuation in front of the rest.
func writeLines(sb *strings.Builder, first, continuation string, lines []string) {
	for i, line := range lines {
		if i == 0 {
			sb.WriteString(first)
		} else {
			sb.WriteString(continuation)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
}
