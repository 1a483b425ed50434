package chatdown

// Block is a sealed interface representing a top-level element of a rendered
// chat document. The unexported marker method prevents external
// implementations, so a type switch over Heading, BulletPoint and Paragraph
// is exhaustive.
//
// Content returns the block's text without a type switch. It is never empty
// or whitespace-only for blocks produced by Segment.
type Block interface {
	block()
	Content() string
}

// Heading is a line fully wrapped in bold markers, e.g. "**Summary:**".
// Text has the markers and the trailing colon stripped.
type Heading struct {
	Text string
}

func (Heading) block() {}

// Content returns the heading text.
func (h Heading) Content() string { return h.Text }

// BulletPoint is a line starting with "* ", "- " or "•".
// Text has the leading marker stripped.
type BulletPoint struct {
	Text string
}

func (BulletPoint) block() {}

// Content returns the bullet text.
func (b BulletPoint) Content() string { return b.Text }

// Paragraph is any other non-blank line, trimmed.
type Paragraph struct {
	Text string
}

func (Paragraph) block() {}

// Content returns the paragraph text.
func (p Paragraph) Content() string { return p.Text }

// Run is a contiguous span of text with a single emphasis state.
type Run struct {
	Text string
	Bold bool
}

// Interface compliance checks.
var (
	_ Block = Heading{}
	_ Block = BulletPoint{}
	_ Block = Paragraph{}
)

// Parse normalizes raw and segments it into blocks. It is safe to call on
// every update of a streaming buffer: the whole buffer is reparsed and no
// state is kept between calls.
func Parse(raw string) []Block {
	return Segment(Normalize(raw))
}

// Runs returns the styled runs for a block. Bullet points and paragraphs go
// through FormatInline; headings are already stripped of their markers and
// come back as a single normal run.
func Runs(b Block) []Run {
	switch b := b.(type) {
	case Heading:
		return []Run{{Text: b.Text}}
	case BulletPoint:
		return FormatInline(b.Text)
	case Paragraph:
		return FormatInline(b.Text)
	default:
		return nil
	}
}
