package index

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/nmehta6/finqa/internal/domain/docModel"
)

// Index is the lexical TF-IDF representation of one chunk set. It is
// immutable once built: any change to the chunk set discards the old
// Index and builds a new one, so readers never observe a partial state.
type Index struct {
	vocabulary map[string]int
	idf        []float64
	df         []int
	vectors    []map[int]float64 //per chunk, L2-normalized sparse weights
	chunks     []docModel.Chunk
}

// Build computes the vocabulary, document frequencies and normalized
// per-chunk weight vectors. Weight(term, chunk) = TF * IDF with
// IDF = log((1+N)/(1+DF)) + 1, the smoothed form that never zeroes a
// term present in every chunk.
func Build(chunks []docModel.Chunk) (*Index, error) {
	if len(chunks) == 0 {
		return nil, docModel.ErrEmptyCorpus
	}

	df := make(map[string]int)
	tokenized := make([][]string, len(chunks))
	for i, c := range chunks {
		tokens := Tokenize(c.Text)
		tokenized[i] = tokens
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	// Stable term ordering keeps vector layout deterministic.
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	idx := &Index{
		vocabulary: make(map[string]int, len(terms)),
		idf:        make([]float64, len(terms)),
		df:         make([]int, len(terms)),
		vectors:    make([]map[int]float64, len(chunks)),
		chunks:     chunks,
	}
	n := float64(len(chunks))
	for i, term := range terms {
		idx.vocabulary[term] = i
		idx.df[i] = df[term]
		idx.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	for i, tokens := range tokenized {
		idx.vectors[i] = idx.weigh(tokens)
	}
	return idx, nil
}

// QueryVector weighs a query against the existing vocabulary. Terms
// outside the vocabulary contribute nothing; a query with no known
// terms yields an empty vector, which is a normal outcome.
func (idx *Index) QueryVector(query string) map[int]float64 {
	return idx.weigh(Tokenize(query))
}

func (idx *Index) Chunks() []docModel.Chunk { return idx.chunks }

func (idx *Index) Terms() int { return len(idx.vocabulary) }

// Vector returns the normalized weight vector of chunk i.
func (idx *Index) Vector(i int) map[int]float64 { return idx.vectors[i] }

// weigh builds a unit-length sparse TF-IDF vector for the tokens.
func (idx *Index) weigh(tokens []string) map[int]float64 {
	vec := make(map[int]float64)
	for _, tok := range tokens {
		if i, ok := idx.vocabulary[tok]; ok {
			vec[i]++
		}
	}
	if len(vec) == 0 {
		return vec
	}
	norm := 0.0
	for i, tf := range vec {
		w := tf * idx.idf[i]
		vec[i] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

// Tokenize lower-cases text and splits it on non-alphanumeric
// boundaries. Chunk text and queries go through the same path so their
// vectors live in the same space.
func Tokenize(text string) []string {
	lower := strings.ToLower(text)
	return strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
