package docModel

import (
	"fmt"
	"time"
)

type DocType string

var (
	PDF   DocType = "PDF"
	Excel DocType = "EXCEL"
	Plain DocType = "PLAIN"
	ERR   DocType = "ERROR"
)

type BlockKind string

const (
	KindParagraph BlockKind = "paragraph"
	KindTableRow  BlockKind = "table-row"
)

type Document struct {
	Id                  string    `json:"source_doc_id"`
	Name                string    `json:"doc_name"`
	LastIngestTimestamp time.Time `json:"ingested_at"`
	ContentType         DocType   `json:"contentType"`
}

// Locator points a block back to its position in the source document.
// Page is set for PDF input, Sheet and Row for spreadsheet input.
type Locator struct {
	Page  int    `json:"page,omitempty"`
	Sheet string `json:"sheet,omitempty"`
	Row   int    `json:"row,omitempty"`
}

func (l Locator) String() string {
	if l.Sheet != "" {
		return fmt.Sprintf("%s:r%d", l.Sheet, l.Row)
	}
	return fmt.Sprintf("p.%d", l.Page)
}

// Block is one unit of extracted content, consumed by the chunker.
type Block struct {
	DocName string    `json:"doc_name"`
	Kind    BlockKind `json:"kind"`
	Loc     Locator   `json:"locator"`
	Text    string    `json:"text"`
}

// Chunk is the atomic retrieval unit. Ids are sequential within one
// processing run and reassigned on every corpus rebuild.
type Chunk struct {
	Id       int       `json:"chunk_id"`
	DocName  string    `json:"doc_name"`
	Text     string    `json:"content"`
	Locators []Locator `json:"locators"`
}

// Provenance renders the tag prepended to a chunk in the prompt context.
func (c Chunk) Provenance() string {
	if len(c.Locators) == 0 {
		return fmt.Sprintf("[%s]", c.DocName)
	}
	first := c.Locators[0]
	last := c.Locators[len(c.Locators)-1]
	if first == last {
		return fmt.Sprintf("[%s %s]", c.DocName, first)
	}
	return fmt.Sprintf("[%s %s-%s]", c.DocName, first, last)
}

// ScoredChunk pairs a chunk with its cosine similarity against a query.
type ScoredChunk struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"`
}

// Answer is the generated text plus the chunk ids that backed it.
type Answer struct {
	Text     string   `json:"text"`
	ChunkIds []int    `json:"chunk_ids"`
	Sources  []string `json:"sources"`
}

// Summary records what extraction produced for one document, including
// the pages/sheets that were skipped.
type Summary struct {
	DocName string              `json:"doc_name"`
	Blocks  int                 `json:"blocks"`
	Chunks  int                 `json:"chunks"`
	Skipped []ExtractionFailure `json:"skipped,omitempty"`
}

type ExtractionFailure struct {
	Unit   string `json:"unit"`
	Reason string `json:"reason"`
}

// CorpusStats is the read model behind GET /corpus.
type CorpusStats struct {
	Documents []Summary `json:"documents"`
	Chunks    int       `json:"chunks"`
	Terms     int       `json:"terms"`
}
