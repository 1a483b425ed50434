package json

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/chatdown"
)

// Block type discriminators of the document format.
const (
	typeHeading   = "heading"
	typeBullet    = "bullet"
	typeParagraph = "paragraph"
)

type documentDTO struct {
	Blocks []blockDTO `json:"blocks"`
}

type blockDTO struct {
	Type string   `json:"type"`
	Text string   `json:"text"`
	Runs []runDTO `json:"runs"`
}

type runDTO struct {
	Text string `json:"text"`
	Bold bool   `json:"bold,omitempty"`
}

// MarshalDocument serializes blocks with their styled runs:
//
//	{"blocks":[{"type":"heading","text":"…","runs":[{"text":"…","bold":true}]}]}
//
// Block types are "heading", "bullet" and "paragraph". An empty slice
// serializes to an empty array, never null.
func MarshalDocument(blocks []chatdown.Block) ([]byte, error) {
	doc := documentDTO{Blocks: make([]blockDTO, 0, len(blocks))}
	for i, b := range blocks {
		typ, err := blockType(b)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		runs := chatdown.Runs(b)
		dto := blockDTO{Type: typ, Text: b.Content(), Runs: make([]runDTO, len(runs))}
		for j, r := range runs {
			dto.Runs[j] = runDTO{Text: r.Text, Bold: r.Bold}
		}
		doc.Blocks = append(doc.Blocks, dto)
	}
	return json.Marshal(doc)
}

// UnmarshalDocument parses a document produced by MarshalDocument back into
// blocks. Runs are derived data and are not read.
func UnmarshalDocument(data []byte) ([]chatdown.Block, error) {
	var doc documentDTO
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	blocks := make([]chatdown.Block, len(doc.Blocks))
	for i, dto := range doc.Blocks {
		switch dto.Type {
		case typeHeading:
			blocks[i] = chatdown.Heading{Text: dto.Text}
		case typeBullet:
			blocks[i] = chatdown.BulletPoint{Text: dto.Text}
		case typeParagraph:
			blocks[i] = chatdown.Paragraph{Text: dto.Text}
		default:
			return nil, fmt.Errorf("block %d: unknown block type: %q", i, dto.Type)
		}
	}
	return blocks, nil
}

func blockType(b chatdown.Block) (string, error) {
	switch b.(type) {
	case chatdown.Heading:
		return typeHeading, nil
	case chatdown.BulletPoint:
		return typeBullet, nil
	case chatdown.Paragraph:
		return typeParagraph, nil
	default:
		return "", fmt.Errorf("unknown block type: %T", b)
	}
}
