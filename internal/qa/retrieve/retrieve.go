package retrieve

import (
	"sort"

	"github.com/nmehta6/finqa/internal/domain/docModel"
	"github.com/nmehta6/finqa/internal/qa/index"
)

// TopK scores every chunk in the index against the query by cosine
// similarity and returns the k best, descending. Ties break on the
// lower chunk id so identical inputs always produce identical output.
// A query with no in-vocabulary terms returns an empty result; callers
// treat "no relevant context" as a normal outcome, not an error.
func TopK(idx *index.Index, query string, k int) []docModel.ScoredChunk {
	if idx == nil || k <= 0 {
		return nil
	}
	queryVec := idx.QueryVector(query)
	if len(queryVec) == 0 {
		return nil
	}

	chunks := idx.Chunks()
	ranked := make([]docModel.ScoredChunk, 0, len(chunks))
	for i, c := range chunks {
		score := dot(queryVec, idx.Vector(i))
		if score <= 0 {
			continue
		}
		ranked = append(ranked, docModel.ScoredChunk{Chunk: c, Score: score})
	}

	sort.Slice(ranked, func(a, b int) bool {
		if ranked[a].Score != ranked[b].Score {
			return ranked[a].Score > ranked[b].Score
		}
		return ranked[a].Chunk.Id < ranked[b].Chunk.Id
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

// dot iterates the smaller sparse vector.
func dot(a, b map[int]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	sum := 0.0
	for i, v := range a {
		sum += v * b[i]
	}
	return sum
}
