package index

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/nmehta6/finqa/internal/domain/docModel"
)

func chunksOf(texts ...string) []docModel.Chunk {
	chunks := make([]docModel.Chunk, len(texts))
	for i, t := range texts {
		chunks[i] = docModel.Chunk{Id: i, DocName: "doc.pdf", Text: t}
	}
	return chunks
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"lowercases and splits on punctuation", "Revenue: $5M (Q1)", []string{"revenue", "5m", "q1"}},
		{"keeps digits", "FY2024 grew 12%", []string{"fy2024", "grew", "12"}},
		{"empty input", "", nil},
		{"only separators", "--- *** !!!", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuild_EmptyCorpus(t *testing.T) {
	_, err := Build(nil)
	if !errors.Is(err, docModel.ErrEmptyCorpus) {
		t.Errorf("Expected ErrEmptyCorpus, got %v", err)
	}
}

func TestBuild_Vocabulary(t *testing.T) {
	idx, err := Build(chunksOf("alpha beta", "beta gamma"))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if idx.Terms() != 3 {
		t.Errorf("Expected 3 distinct terms, got %d", idx.Terms())
	}
	if len(idx.Chunks()) != 2 {
		t.Errorf("Expected 2 chunks retained, got %d", len(idx.Chunks()))
	}
}

func TestBuild_SmoothedIdf(t *testing.T) {
	// "beta" appears in both chunks; the smoothed formula keeps its
	// weight strictly positive instead of zeroing it out
	idx, err := Build(chunksOf("alpha beta", "beta gamma"))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	i, ok := idx.vocabulary["beta"]
	if !ok {
		t.Fatal("Term beta missing from vocabulary")
	}
	want := math.Log(3.0/3.0) + 1 // log((1+2)/(1+2)) + 1
	if math.Abs(idx.idf[i]-want) > 1e-12 {
		t.Errorf("IDF(beta) = %f, want %f", idx.idf[i], want)
	}

	j := idx.vocabulary["alpha"]
	wantRare := math.Log(3.0/2.0) + 1 // log((1+2)/(1+1)) + 1
	if math.Abs(idx.idf[j]-wantRare) > 1e-12 {
		t.Errorf("IDF(alpha) = %f, want %f", idx.idf[j], wantRare)
	}
	if idx.idf[j] <= idx.idf[i] {
		t.Error("Rarer term must carry higher IDF")
	}
}

func TestBuild_VectorsAreUnitLength(t *testing.T) {
	idx, err := Build(chunksOf("revenue grew in q1", "expenses fell in q2", "q1 q1 revenue"))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for i := range idx.Chunks() {
		norm := 0.0
		for _, w := range idx.Vector(i) {
			norm += w * w
		}
		if math.Abs(math.Sqrt(norm)-1) > 1e-9 {
			t.Errorf("Vector %d has norm %f, want 1", i, math.Sqrt(norm))
		}
	}
}

func TestQueryVector_OutOfVocabulary(t *testing.T) {
	idx, err := Build(chunksOf("revenue grew in q1"))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if vec := idx.QueryVector("xyzzy plugh"); len(vec) != 0 {
		t.Errorf("Expected empty vector for out-of-vocabulary query, got %v", vec)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	chunks := chunksOf("net income rose", "operating costs fell", "income before tax")

	a, err := Build(chunks)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	b, err := Build(chunks)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if !reflect.DeepEqual(a.vocabulary, b.vocabulary) {
		t.Error("Vocabulary layout differs between identical builds")
	}
	for i := range chunks {
		if !reflect.DeepEqual(a.Vector(i), b.Vector(i)) {
			t.Errorf("Vector %d differs between identical builds", i)
		}
	}
}
