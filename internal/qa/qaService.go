package qa

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/nmehta6/finqa/internal/config"
	"github.com/nmehta6/finqa/internal/domain/docModel"
	"github.com/nmehta6/finqa/internal/domain/jobModel"
	"github.com/nmehta6/finqa/internal/metrics"
	"github.com/nmehta6/finqa/internal/qa/library"
	"github.com/nmehta6/finqa/internal/qa/model"
	"github.com/nmehta6/finqa/pkg/logx"
)

// Service is the public contract of the QA pipeline. The worker and
// the MCP server only see this interface, never the library or the
// model backend directly.
type Service interface {
	ProcessQuestion(ctx context.Context, job jobModel.Job) jobModel.Job
	IngestDocument(ctx context.Context, job jobModel.Job) jobModel.Job

	// Answer and Search run the pipeline synchronously for callers
	// that don't go through the job queue (MCP tools, tests).
	Answer(ctx context.Context, question string, topK int) (docModel.Answer, error)
	Search(ctx context.Context, query string, topK int) ([]docModel.ScoredChunk, error)

	Stats() docModel.CorpusStats
}

type service struct {
	library         *library.Library
	backend         model.Backend
	topK            int
	maxContextChars int
	logger          *logx.Logger
}

// NewService wires the corpus library to a model backend. Retrieval
// depth and context budget come from configuration.
func NewService(lib *library.Library, backend model.Backend) Service {
	return &service{
		library:         lib,
		backend:         backend,
		topK:            config.TopK(),
		maxContextChars: config.MaxContextChars(),
		logger:          logx.NewLogger("QA Service"),
	}
}

func (s *service) ProcessQuestion(ctx context.Context, job jobModel.Job) jobModel.Job {
	log := s.logger.With("traceId", job.TraceId, "JobId", job.Id)

	topK := job.JobPayload.TopK
	if topK <= 0 {
		topK = s.topK
	}

	job.CurrentStep = jobModel.RetrieveCall
	answer, err := s.Answer(ctx, job.JobPayload.Question, topK)
	if err != nil {
		if errors.Is(err, docModel.ErrEmptyCorpus) {
			return s.jobError(job, err, http.StatusConflict, "No documents have been processed yet", false)
		}
		if docModel.IsGenerationUnavailable(err) {
			return s.jobError(job, err, http.StatusServiceUnavailable, "Model backend unavailable", true)
		}
		return s.jobError(job, err, http.StatusInternalServerError, "Internal Server Error", true)
	}

	log.Debug("Question answered", "chunks used", len(answer.ChunkIds))
	job.JobPayload.Answer = answer.Text
	job.JobPayload.Sources = answer.Sources
	job.JobPayload.ChunkIds = answer.ChunkIds
	job.CurrentStep = jobModel.Complete
	return job
}

func (s *service) IngestDocument(ctx context.Context, job jobModel.Job) jobModel.Job {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("document_ingestion", time.Since(start)) }()

	log := s.logger.With("traceId", job.TraceId, "JobId", job.Id)

	docName := job.JobPayload.IngestFileName
	docPath := job.JobPayload.IngestURL
	log.Debug("Processing document", "filename", docName, "path", docPath)

	job.CurrentStep = jobModel.IngestExtracting
	blocks, summary, err := s.extractStep(docPath, docName)
	if err != nil {
		return s.jobError(job, err, http.StatusUnprocessableEntity, "Error extracting document content", false)
	}
	log.Debug("Processing document", "blocks", len(blocks), "skipped units", len(summary.Skipped))

	job.CurrentStep = jobModel.IngestIndexing
	chunkCount, err := s.indexStep(docName, blocks, summary)
	if err != nil {
		return s.jobError(job, err, http.StatusUnprocessableEntity, "Document produced no indexable text", false)
	}
	log.Debug("Processing document", "chunks", chunkCount)

	if err := os.Remove(docPath); err != nil {
		log.Error("Error removing file", "error", err)
	}
	job.Status = jobModel.JobStatusComplete
	job.CurrentStep = jobModel.Complete
	return job
}

func (s *service) Answer(ctx context.Context, question string, topK int) (docModel.Answer, error) {
	ranked, err := s.Search(ctx, question, topK)
	if err != nil {
		return docModel.Answer{}, err
	}

	contextText, usedIds := s.assembleStep(ranked)

	generateStart := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("generate", time.Since(generateStart)) }()

	text, err := s.backend.Generate(ctx, model.BuildPrompt(contextText, question))
	if err != nil {
		return docModel.Answer{}, err
	}

	sources := make([]string, 0, len(usedIds))
	byId := make(map[int]docModel.Chunk)
	for _, sc := range ranked {
		byId[sc.Chunk.Id] = sc.Chunk
	}
	for _, id := range usedIds {
		sources = append(sources, byId[id].Provenance())
	}
	return docModel.Answer{Text: text, ChunkIds: usedIds, Sources: sources}, nil
}

func (s *service) Search(ctx context.Context, query string, topK int) ([]docModel.ScoredChunk, error) {
	idx := s.library.Index()
	if idx == nil {
		return nil, docModel.ErrEmptyCorpus
	}
	return s.retrieveStep(idx, query, topK), nil
}

func (s *service) Stats() docModel.CorpusStats {
	return s.library.Stats()
}
