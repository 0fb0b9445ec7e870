package assemble

import (
	"strings"

	"github.com/nmehta6/finqa/internal/domain/docModel"
)

// NoContextMarker is handed to the model instead of an empty context so
// it can answer with a graceful "not found" rather than inventing one.
const NoContextMarker = "No relevant context was found in the uploaded documents."

const separator = "\n\n---\n\n"

// Build concatenates chunk texts in ranking order, each prefixed with
// its provenance tag, stopping before the cumulative length would
// exceed maxChars. Chunks with identical text (repeated headers) are
// included once. Returns the context and the chunk ids it was built
// from; an empty ranking yields the no-context marker and no ids.
func Build(ranked []docModel.ScoredChunk, maxChars int) (string, []int) {
	if len(ranked) == 0 {
		return NoContextMarker, nil
	}

	var (
		parts    []string
		usedIds  []int
		size     int
		seenText = make(map[string]struct{}, len(ranked))
	)
	for _, sc := range ranked {
		if _, dup := seenText[sc.Chunk.Text]; dup {
			continue
		}
		part := sc.Chunk.Provenance() + "\n" + sc.Chunk.Text
		added := len(part)
		if len(parts) > 0 {
			added += len(separator)
		}
		if size+added > maxChars {
			break
		}
		seenText[sc.Chunk.Text] = struct{}{}
		parts = append(parts, part)
		usedIds = append(usedIds, sc.Chunk.Id)
		size += added
	}

	if len(parts) == 0 {
		return NoContextMarker, nil
	}
	return strings.Join(parts, separator), usedIds
}
