package extract

import (
	"errors"
	"fmt"
	"time"

	"github.com/dslipak/pdf"

	"github.com/nmehta6/finqa/internal/config"
	"github.com/nmehta6/finqa/internal/domain/docModel"
)

type pdfExtractor struct{}

func (e *pdfExtractor) Extract(path string, docName string) ([]docModel.Block, docModel.Summary, error) {
	logger.Debug("extractPDF", "attempting extraction", path)
	summary := docModel.Summary{DocName: docName}

	f, err := pdf.Open(path)
	if err != nil {
		logger.Error("failed opening of pdf file", "error", err)
		return nil, summary, fmt.Errorf("failed to open pdf: %w", err)
	}

	var blocks []docModel.Block
	numPages := f.NumPage()
	logger.Debug("extractPDF", "number of pages", numPages)
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := protectExtract(page)
		if err != nil {
			//skip the page, keep the rest of the document
			logger.Error("Error parsing page content", "page", i, "error", err)
			summary.Skipped = append(summary.Skipped, docModel.ExtractionFailure{
				Unit:   fmt.Sprintf("page %d", i),
				Reason: (&docModel.ExtractionError{DocName: docName, Unit: fmt.Sprintf("page %d", i), Err: err}).Error(),
			})
			continue
		}

		for _, paragraph := range splitParagraphs(content) {
			blocks = append(blocks, docModel.Block{
				DocName: docName,
				Kind:    docModel.KindParagraph,
				Loc:     docModel.Locator{Page: i},
				Text:    paragraph,
			})
		}
	}
	summary.Blocks = len(blocks)
	return blocks, summary, nil
}

// protectExtract guards against pages that hang the parser.
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(config.PageExtractTimeout):
		logger.Error("pageExtract", "timeout", config.PageExtractTimeout)
		return "", errors.New("timeout")
	}
}
