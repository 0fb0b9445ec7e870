package library

import (
	"sync"
	"sync/atomic"

	"github.com/nmehta6/finqa/internal/domain/docModel"
	"github.com/nmehta6/finqa/internal/qa/chunker"
	"github.com/nmehta6/finqa/internal/qa/index"
	"github.com/nmehta6/finqa/pkg/logx"
)

// Library owns the current document set and the index built over it.
// Mutations are serialized; every mutation re-chunks the full block
// set and builds a brand-new index that is swapped in atomically, so
// concurrent retrievals always read a fully materialized index.
type Library struct {
	maxChunkChars int
	logger        *logx.Logger

	mu     sync.Mutex
	docs   []ingested
	byName map[string]int

	idx atomic.Pointer[index.Index]
}

type ingested struct {
	name    string
	blocks  []docModel.Block
	summary docModel.Summary
}

func New(maxChunkChars int) *Library {
	return &Library{
		maxChunkChars: maxChunkChars,
		byName:        make(map[string]int),
		logger:        logx.NewLogger("Library"),
	}
}

// AddDocument stores (or replaces) a document's extracted blocks and
// rebuilds the index. It returns how many chunks the document yielded.
// docModel.ErrEmptyCorpus means nothing usable is in the corpus; the
// previous index, if any, stays discarded since the chunk set changed.
func (l *Library) AddDocument(name string, blocks []docModel.Block, summary docModel.Summary) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	doc := ingested{name: name, blocks: blocks, summary: summary}
	if i, ok := l.byName[name]; ok {
		l.logger.Info("Replacing document", "name", name)
		l.docs[i] = doc
	} else {
		l.byName[name] = len(l.docs)
		l.docs = append(l.docs, doc)
	}

	chunks, err := l.rebuild()
	if err != nil {
		return 0, err
	}

	count := 0
	for _, c := range chunks {
		if c.DocName == name {
			count++
		}
	}
	l.docs[l.byName[name]].summary.Chunks = count
	l.logger.Info("Corpus rebuilt", "documents", len(l.docs), "chunks", len(chunks))
	return count, nil
}

// rebuild re-chunks every stored block in insertion order and swaps in
// a fresh index. Caller holds l.mu.
func (l *Library) rebuild() ([]docModel.Chunk, error) {
	var blocks []docModel.Block
	for _, d := range l.docs {
		blocks = append(blocks, d.blocks...)
	}
	chunks := chunker.Split(blocks, l.maxChunkChars)

	idx, err := index.Build(chunks)
	if err != nil {
		l.idx.Store(nil)
		return nil, err
	}
	l.idx.Store(idx)
	return chunks, nil
}

// Index returns the current index, or nil before the first successful
// ingestion. The returned value is immutable and safe to read without
// locking even while a rebuild is in flight.
func (l *Library) Index() *index.Index {
	return l.idx.Load()
}

func (l *Library) Stats() docModel.CorpusStats {
	l.mu.Lock()
	defer l.mu.Unlock()

	stats := docModel.CorpusStats{}
	for _, d := range l.docs {
		stats.Documents = append(stats.Documents, d.summary)
	}
	if idx := l.idx.Load(); idx != nil {
		stats.Chunks = len(idx.Chunks())
		stats.Terms = idx.Terms()
	}
	return stats
}

// Clear drops all documents and the index.
func (l *Library) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.docs = nil
	l.byName = make(map[string]int)
	l.idx.Store(nil)
}
