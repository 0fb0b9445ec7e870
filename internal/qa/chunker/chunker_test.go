package chunker

import (
	"reflect"
	"strings"
	"testing"

	"github.com/nmehta6/finqa/internal/domain/docModel"
)

func block(doc string, page int, text string) docModel.Block {
	return docModel.Block{
		DocName: doc,
		Kind:    docModel.KindParagraph,
		Loc:     docModel.Locator{Page: page},
		Text:    text,
	}
}

func TestSplit_GreedyAccumulation(t *testing.T) {
	blocks := []docModel.Block{
		block("report.pdf", 1, "aaaa"),
		block("report.pdf", 1, "bbbb"),
		block("report.pdf", 2, "cccc"),
	}

	// 4+1+4 = 9 fits, adding the third (+5) would make 14 > 10
	chunks := Split(blocks, 10)

	if len(chunks) != 2 {
		t.Fatalf("Expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Text != "aaaa\nbbbb" {
		t.Errorf("Chunk 0 text = %q", chunks[0].Text)
	}
	if chunks[1].Text != "cccc" {
		t.Errorf("Chunk 1 text = %q", chunks[1].Text)
	}
	if chunks[0].Id != 0 || chunks[1].Id != 1 {
		t.Errorf("Chunk ids not sequential: %d, %d", chunks[0].Id, chunks[1].Id)
	}
	if len(chunks[0].Locators) != 2 {
		t.Errorf("Chunk 0 should carry 2 locators, got %d", len(chunks[0].Locators))
	}
}

func TestSplit_OversizedBlockKeptWhole(t *testing.T) {
	big := strings.Repeat("x", 50)
	blocks := []docModel.Block{
		block("report.pdf", 1, "small"),
		block("report.pdf", 2, big),
		block("report.pdf", 3, "tail"),
	}

	chunks := Split(blocks, 10)

	if len(chunks) != 3 {
		t.Fatalf("Expected 3 chunks, got %d", len(chunks))
	}
	if chunks[1].Text != big {
		t.Error("Oversized block must become its own untruncated chunk")
	}
}

func TestSplit_DocumentBoundaryBreaksChunk(t *testing.T) {
	blocks := []docModel.Block{
		block("a.pdf", 1, "one"),
		block("b.pdf", 1, "two"),
	}

	chunks := Split(blocks, 100)

	if len(chunks) != 2 {
		t.Fatalf("Blocks of different documents must not share a chunk, got %d chunks", len(chunks))
	}
	if chunks[0].DocName != "a.pdf" || chunks[1].DocName != "b.pdf" {
		t.Errorf("Chunk doc names wrong: %s, %s", chunks[0].DocName, chunks[1].DocName)
	}
}

func TestSplit_DiscardsWhitespaceOnlyBlocks(t *testing.T) {
	blocks := []docModel.Block{
		block("a.pdf", 1, "   "),
		block("a.pdf", 1, "\n\t"),
	}

	if chunks := Split(blocks, 100); len(chunks) != 0 {
		t.Errorf("Expected no chunks from whitespace blocks, got %d", len(chunks))
	}
}

func TestSplit_IdempotentOnChunkSizedInput(t *testing.T) {
	blocks := []docModel.Block{
		block("a.pdf", 1, "first paragraph"),
		block("a.pdf", 2, "second paragraph"),
		block("a.pdf", 3, "third paragraph"),
	}

	// every block alone is below the limit but any pair exceeds it,
	// so boundaries land on block boundaries and re-running the split
	// over the resulting texts reproduces them
	first := Split(blocks, 20)
	if len(first) != 3 {
		t.Fatalf("Expected 3 single-block chunks, got %d", len(first))
	}

	var rechunked []docModel.Block
	for _, c := range first {
		rechunked = append(rechunked, block("a.pdf", 0, c.Text))
	}
	second := Split(rechunked, 20)

	if len(second) != len(first) {
		t.Fatalf("Re-chunking changed chunk count: %d vs %d", len(second), len(first))
	}
	for i := range first {
		if second[i].Text != first[i].Text {
			t.Errorf("Chunk %d boundary moved: %q vs %q", i, second[i].Text, first[i].Text)
		}
	}
}

func TestSplit_Deterministic(t *testing.T) {
	blocks := []docModel.Block{
		block("a.pdf", 1, "alpha beta"),
		block("a.pdf", 2, "gamma delta"),
		block("a.pdf", 3, "epsilon"),
	}

	a := Split(blocks, 15)
	b := Split(blocks, 15)
	if !reflect.DeepEqual(a, b) {
		t.Error("Split is not deterministic for identical input")
	}
}
