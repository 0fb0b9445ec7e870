package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nmehta6/finqa/internal/domain/docModel"
	"github.com/nmehta6/finqa/pkg/logx"
)

// Extractor turns a document file into an ordered sequence of blocks.
// Per-page and per-sheet failures are recorded in the summary and
// skipped; an error is only returned when the whole file is unreadable.
type Extractor interface {
	Extract(path string, docName string) ([]docModel.Block, docModel.Summary, error)
}

var logger = logx.NewLogger("extract")

// DocTypeOf maps a file extension to the extractor kind handling it.
func DocTypeOf(path string) docModel.DocType {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return docModel.PDF
	case ".xlsx", ".xlsm", ".xls":
		return docModel.Excel
	case ".docx", ".txt", ".rtf", ".odt":
		return docModel.Plain
	default:
		return docModel.ERR
	}
}

// ForFile picks the extractor for the given path. New formats register
// an implementation here instead of adding branches elsewhere.
func ForFile(path string) (Extractor, error) {
	switch DocTypeOf(path) {
	case docModel.PDF:
		return &pdfExtractor{}, nil
	case docModel.Excel:
		return &excelExtractor{}, nil
	case docModel.Plain:
		return &plainExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported document type: %s", filepath.Ext(path))
	}
}

// splitParagraphs breaks page text on blank lines. Pages without blank
// lines come back as a single block, trimmed line by line.
func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, raw := range strings.Split(text, "\n\n") {
		var lines []string
		for _, ln := range strings.Split(raw, "\n") {
			if ln = strings.TrimSpace(ln); ln != "" {
				lines = append(lines, ln)
			}
		}
		if len(lines) > 0 {
			paragraphs = append(paragraphs, strings.Join(lines, "\n"))
		}
	}
	return paragraphs
}
