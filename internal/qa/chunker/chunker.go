package chunker

import (
	"strings"

	"github.com/nmehta6/finqa/internal/domain/docModel"
)

// Split greedily accumulates consecutive blocks of the same document
// into chunks of at most maxChars characters (block texts joined with
// a newline, the separator counted against the budget). A single block
// larger than maxChars becomes its own oversized chunk; it is never
// truncated here. Chunk ids are assigned sequentially and are stable
// within one processing run only.
func Split(blocks []docModel.Block, maxChars int) []docModel.Chunk {
	var chunks []docModel.Chunk

	var (
		texts    []string
		locators []docModel.Locator
		size     int
		docName  string
	)

	flush := func() {
		if len(texts) == 0 {
			return
		}
		chunks = append(chunks, docModel.Chunk{
			Id:       len(chunks),
			DocName:  docName,
			Text:     strings.Join(texts, "\n"),
			Locators: locators,
		})
		texts, locators, size = nil, nil, 0
	}

	for _, b := range blocks {
		if strings.TrimSpace(b.Text) == "" {
			continue
		}
		added := len(b.Text)
		if len(texts) > 0 {
			added++ //joining newline
		}
		if b.DocName != docName || size+added > maxChars {
			flush()
			docName = b.DocName
			added = len(b.Text)
		}
		texts = append(texts, b.Text)
		locators = append(locators, b.Loc)
		size += added
	}
	flush()

	return chunks
}
