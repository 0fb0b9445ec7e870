package extract

import (
	"fmt"

	"github.com/lu4p/cat"

	"github.com/nmehta6/finqa/internal/domain/docModel"
)

type plainExtractor struct{}

// Extract reads a .docx, .odt, .rtf or plaintext file. These formats
// carry no page structure, so every paragraph lands on page 1.
func (e *plainExtractor) Extract(path string, docName string) ([]docModel.Block, docModel.Summary, error) {
	summary := docModel.Summary{DocName: docName}

	text, err := cat.File(path)
	if err != nil {
		logger.Error("Error extracting content from doc", "error", err)
		return nil, summary, fmt.Errorf("failed to extract document: %w", err)
	}

	var blocks []docModel.Block
	for _, paragraph := range splitParagraphs(text) {
		blocks = append(blocks, docModel.Block{
			DocName: docName,
			Kind:    docModel.KindParagraph,
			Loc:     docModel.Locator{Page: 1},
			Text:    paragraph,
		})
	}
	summary.Blocks = len(blocks)
	return blocks, summary, nil
}
