package goldmark_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/fwojciec/chatdown"
	"github.com/fwojciec/chatdown/goldmark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yuin "github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// convert renders CommonMark source with goldmark's default parser, passing
// inline HTML through.
func convert(t *testing.T, md string) string {
	t.Helper()
	var buf bytes.Buffer
	md2html := yuin.New(yuin.WithRendererOptions(html.WithUnsafe()))
	require.NoError(t, md2html.Convert([]byte(md), &buf))
	return buf.String()
}

func TestHTML(t *testing.T) {
	t.Parallel()

	t.Run("block structure", func(t *testing.T) {
		t.Parallel()
		got, err := goldmark.HTML(chatdown.Parse("**Heading:**\n* item one\n- item **two**\nplain paragraph"))
		require.NoError(t, err)
		assert.Equal(t, "<h2>Heading</h2>\n"+
			"<ul>\n<li>item one</li>\n<li>item <strong>two</strong></li>\n</ul>\n"+
			"<p>plain paragraph</p>\n", string(got))
	})

	t.Run("text is escaped not interpreted", func(t *testing.T) {
		t.Parallel()
		got, err := goldmark.HTML([]chatdown.Block{
			chatdown.Paragraph{Text: `<script>alert("x")</script> & [link](http://x) _u_ # 1.`},
		})
		require.NoError(t, err)
		assert.Equal(t, "<p>&lt;script&gt;alert(&quot;x&quot;)&lt;/script&gt; &amp; [link](http://x) _u_ # 1.</p>\n", string(got))
	})

	t.Run("unterminated bold stays literal", func(t *testing.T) {
		t.Parallel()
		got, err := goldmark.HTML(chatdown.Parse("half **bold text"))
		require.NoError(t, err)
		assert.Equal(t, "<p>half **bold text</p>\n", string(got))
	})

	t.Run("paragraph between bullets splits the list", func(t *testing.T) {
		t.Parallel()
		got, err := goldmark.HTML(chatdown.Parse("- a\nmid\n- b"))
		require.NoError(t, err)
		assert.Equal(t, "<ul>\n<li>a</li>\n</ul>\n<p>mid</p>\n<ul>\n<li>b</li>\n</ul>\n", string(got))
	})

	t.Run("no blocks", func(t *testing.T) {
		t.Parallel()
		got, err := goldmark.HTML(nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	t.Run("canonical form", func(t *testing.T) {
		t.Parallel()
		got := goldmark.Markdown(chatdown.Parse("**Heading:**\n* item one\n- item **two**\nplain paragraph\nNote: 1. done"))
		assert.Equal(t, "## Heading\n\n- item one\n- item **two**\n\nplain paragraph\n\nNote\\: 1\\. done\n", got)
	})

	t.Run("bold with edge spaces uses strong tags", func(t *testing.T) {
		t.Parallel()
		got := goldmark.Markdown([]chatdown.Block{chatdown.Paragraph{Text: "a** b **c"}})
		assert.Equal(t, "a<strong> b </strong>c\n", got)
	})

	t.Run("bold punctuation next to letters uses strong tags", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "x<strong>\\(y\\)</strong>z\n", goldmark.Markdown(chatdown.Parse("x**(y)**z")))
		assert.Equal(t, "price<strong>\\$5</strong>now\n", goldmark.Markdown(chatdown.Parse("price**$5**now")))
	})

	t.Run("bold punctuation at a boundary keeps markers", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "see **\\(y\\)**\\.\n", goldmark.Markdown(chatdown.Parse("see **(y)**.")))
	})

	t.Run("adjacent bold runs do not merge", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "**a**<strong>b</strong>\n", goldmark.Markdown(chatdown.Parse("**a****b**")))
	})

	t.Run("renders the same html as the direct export", func(t *testing.T) {
		t.Parallel()
		inputs := []string{
			"**Summary:**\n- first\n- second **bold** word\nClosing paragraph.",
			"Use **bold** and more **bold2** text",
			"# not a heading\n1. not a list\n> not a quote",
			"half **bold text\n---\n===",
			`Paths like C:\dir and a_b_c or <tag> & "quotes"`,
			"- a\nmid\n- b",
			"x**(y)**z",
			"price**$5**now and **€5** or **«q»**",
			"a** b **c and ** ** alone",
			"**a****b** then **c**d**e**",
			"see **(y)**. and **!**",
			"- **Step:** run\n- (**a**)",
			"café**¿**bar",
		}
		for _, in := range inputs {
			blocks := chatdown.Parse(in)
			direct, err := goldmark.HTML(blocks)
			require.NoError(t, err)
			assert.Equal(t, string(direct), convert(t, goldmark.Markdown(blocks)), "input %q", in)
		}
	})
}

func TestTranscript(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 3, 4, 5, 6, 0, 0, time.UTC)
	entries := chatdown.Transcript(chatdown.Session{Messages: []chatdown.Message{
		chatdown.UserMessage{Text: "what is <this>?", Timestamp: ts},
		chatdown.AssistantMessage{Text: "**Answer:**\n- yes", Timestamp: ts},
	}})

	t.Run("html", func(t *testing.T) {
		t.Parallel()
		got, err := goldmark.TranscriptHTML("Chat & more", entries)
		require.NoError(t, err)
		s := string(got)
		assert.Contains(t, s, "<title>Chat &amp; more</title>")
		assert.Contains(t, s, "<article class=\"user\">\n<time datetime=\"2026-03-04T05:06:00Z\">2026-03-04 05:06</time>\n<p>what is &lt;this&gt;?</p>\n</article>\n")
		assert.Contains(t, s, "<article class=\"assistant\">\n<time datetime=\"2026-03-04T05:06:00Z\">2026-03-04 05:06</time>\n<h2>Answer</h2>\n<ul>\n<li>yes</li>\n</ul>\n</article>\n")
	})

	t.Run("markdown", func(t *testing.T) {
		t.Parallel()
		got := goldmark.TranscriptMarkdown(entries)
		assert.Equal(t, "### User\n\nwhat is \\<this\\>\\?\n\n### Assistant\n\n## Answer\n\n- yes\n", got)
	})
}
