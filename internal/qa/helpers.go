package qa

import (
	"time"

	"github.com/nmehta6/finqa/internal/domain/docModel"
	"github.com/nmehta6/finqa/internal/domain/jobModel"
	"github.com/nmehta6/finqa/internal/metrics"
	"github.com/nmehta6/finqa/internal/qa/assemble"
	"github.com/nmehta6/finqa/internal/qa/extract"
	"github.com/nmehta6/finqa/internal/qa/index"
	"github.com/nmehta6/finqa/internal/qa/retrieve"
)

func (s *service) jobError(job jobModel.Job, err error, code int, message string, canRetry bool) jobModel.Job {
	s.logger.Error(message, "error", err)

	job.Error = jobModel.JobError{
		Code:    code,
		Message: message,
		Retry:   canRetry,
	}
	job.Status = jobModel.JobStatusError
	job.CurrentStep = jobModel.Error
	return job
}

func (s *service) extractStep(path string, docName string) ([]docModel.Block, docModel.Summary, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("extract", time.Since(start)) }()

	extractor, err := extract.ForFile(path)
	if err != nil {
		return nil, docModel.Summary{DocName: docName}, err
	}
	return extractor.Extract(path, docName)
}

func (s *service) indexStep(docName string, blocks []docModel.Block, summary docModel.Summary) (int, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("chunk_index", time.Since(start)) }()

	return s.library.AddDocument(docName, blocks, summary)
}

func (s *service) retrieveStep(idx *index.Index, query string, topK int) []docModel.ScoredChunk {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("retrieve", time.Since(start)) }()

	return retrieve.TopK(idx, query, topK)
}

func (s *service) assembleStep(ranked []docModel.ScoredChunk) (string, []int) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("assemble", time.Since(start)) }()

	return assemble.Build(ranked, s.maxContextChars)
}
