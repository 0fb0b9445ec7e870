package extract

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nmehta6/finqa/internal/domain/docModel"
)

// cellDelimiter joins row cells into a single retrievable line.
const cellDelimiter = " | "

type excelExtractor struct{}

func (e *excelExtractor) Extract(path string, docName string) ([]docModel.Block, docModel.Summary, error) {
	summary := docModel.Summary{DocName: docName}

	f, err := excelize.OpenFile(path)
	if err != nil {
		logger.Error("failed opening of workbook", "error", err)
		return nil, summary, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Error("Error closing workbook", "error", err)
		}
	}()

	var blocks []docModel.Block
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			//skip the sheet, keep the rest of the workbook
			logger.Error("Error reading sheet", "sheet", sheet, "error", err)
			summary.Skipped = append(summary.Skipped, docModel.ExtractionFailure{
				Unit:   fmt.Sprintf("sheet %s", sheet),
				Reason: (&docModel.ExtractionError{DocName: docName, Unit: sheet, Err: err}).Error(),
			})
			continue
		}

		headerSeen := false
		for rowIdx, cells := range rows {
			text := joinCells(cells)
			if text == "" {
				continue
			}
			// The first populated row of a sheet is treated as the
			// header and kept as plain context for the rows below it.
			kind := docModel.KindTableRow
			if !headerSeen {
				kind = docModel.KindParagraph
				headerSeen = true
			}
			blocks = append(blocks, docModel.Block{
				DocName: docName,
				Kind:    kind,
				Loc:     docModel.Locator{Sheet: sheet, Row: rowIdx + 1},
				Text:    text,
			})
		}
	}
	summary.Blocks = len(blocks)
	return blocks, summary, nil
}

func joinCells(cells []string) string {
	trimmed := make([]string, 0, len(cells))
	empty := true
	for _, c := range cells {
		c = strings.TrimSpace(c)
		if c != "" {
			empty = false
		}
		trimmed = append(trimmed, c)
	}
	if empty {
		return ""
	}
	//drop trailing empty cells so sparse rows stay readable
	end := len(trimmed)
	for end > 0 && trimmed[end-1] == "" {
		end--
	}
	return strings.Join(trimmed[:end], cellDelimiter)
}
