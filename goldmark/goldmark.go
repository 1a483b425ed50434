// Package goldmark exports parsed chat replies as CommonMark and HTML using
// the goldmark AST and renderer.
package goldmark

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/fwojciec/chatdown"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// HTML renders blocks as an HTML fragment. Headings become <h2>, runs of
// consecutive bullet points become one tight <ul>, and bold runs become
// <strong>. Text is emitted exactly as parsed, HTML-escaped.
func HTML(blocks []chatdown.Block) ([]byte, error) {
	source, doc := buildDocument(blocks)
	var buf bytes.Buffer
	if err := goldmark.New().Renderer().Render(&buf, source, doc); err != nil {
		return nil, fmt.Errorf("goldmark: %w", err)
	}
	return buf.Bytes(), nil
}

// buildDocument builds the AST directly rather than parsing markdown, so
// that text the chat grammar treats as literal never gains CommonMark
// meaning. Text nodes point into the returned source buffer.
func buildDocument(blocks []chatdown.Block) ([]byte, *ast.Document) {
	var src bytes.Buffer
	doc := ast.NewDocument()
	var list *ast.List
	for _, b := range blocks {
		if _, ok := b.(chatdown.BulletPoint); !ok {
			list = nil
		}
		switch b := b.(type) {
		case chatdown.Heading:
			h := ast.NewHeading(2)
			appendRuns(h, &src, chatdown.Runs(b))
			doc.AppendChild(doc, h)
		case chatdown.BulletPoint:
			if list == nil {
				list = ast.NewList('-')
				list.IsTight = true
				doc.AppendChild(doc, list)
			}
			item := ast.NewListItem(2)
			tb := ast.NewTextBlock()
			appendRuns(tb, &src, chatdown.Runs(b))
			item.AppendChild(item, tb)
			list.AppendChild(list, item)
		case chatdown.Paragraph:
			p := ast.NewParagraph()
			appendRuns(p, &src, chatdown.Runs(b))
			doc.AppendChild(doc, p)
		}
	}
	return src.Bytes(), doc
}

func appendRuns(parent ast.Node, src *bytes.Buffer, runs []chatdown.Run) {
	for _, r := range runs {
		if r.Text == "" {
			continue
		}
		start := src.Len()
		src.WriteString(r.Text)
		t := ast.NewRawTextSegment(text.NewSegment(start, src.Len()))
		if !r.Bold {
			parent.AppendChild(parent, t)
			continue
		}
		em := ast.NewEmphasis(2)
		em.AppendChild(em, t)
		parent.AppendChild(parent, em)
	}
}

// TranscriptHTML renders a whole session as a standalone HTML page with one
// <article> per message.
func TranscriptHTML(title string, entries []chatdown.TranscriptEntry) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n", html.EscapeString(title))
	for _, e := range entries {
		body, err := HTML(e.Blocks)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&buf, "<article class=\"%s\">\n", e.Role)
		if !e.Timestamp.IsZero() {
			fmt.Fprintf(&buf, "<time datetime=\"%s\">%s</time>\n",
				e.Timestamp.UTC().Format(time.RFC3339), e.Timestamp.UTC().Format("2006-01-02 15:04"))
		}
		buf.Write(body)
		buf.WriteString("</article>\n")
	}
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}

// TranscriptMarkdown renders a whole session as CommonMark with a level-3
// heading naming the author of each message.
func TranscriptMarkdown(entries []chatdown.TranscriptEntry) string {
	var sb strings.Builder
	for i, e := range entries {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "### %s\n\n", roleTitle(e.Role))
		sb.WriteString(Markdown(e.Blocks))
	}
	return sb.String()
}

func roleTitle(r chatdown.Role) string {
	switch r {
	case chatdown.RoleUser:
		return "User"
	case chatdown.RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}
