package handlers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nmehta6/finqa/internal/config"
	"github.com/nmehta6/finqa/internal/domain/docModel"
	"github.com/nmehta6/finqa/internal/domain/jobModel"
	"github.com/nmehta6/finqa/internal/job"
	"github.com/nmehta6/finqa/internal/metrics"
	"github.com/nmehta6/finqa/internal/qa"
	"github.com/nmehta6/finqa/pkg/logx"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           *logx.Logger
)

type JobHandler struct {
	service *job.Service
	qa      qa.Service
}

func InitJobHandler(jobService *job.Service, qaService qa.Service) {
	once.Do(func() {
		handlerInstance = &JobHandler{service: jobService, qa: qaService}

		logJH = logx.NewLogger("JobHandler")
		logRH = logx.NewLogger("RequestHandler")
		logJH.Info("Starting job handler")
	})
}

func CreateNewJob(newJob newJobData) {
	logJH.Info("To create new job", "traceId", newJob.traceId, "job id", newJob.id)
	handlerInstance.pushToJobChannel(newJob)
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TraceIDKey, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.JobStore.GetJob(ctxC, id)
	}
	return result, false
}

func corpusStats() docModel.CorpusStats {
	if handlerInstance == nil {
		return docModel.CorpusStats{}
	}
	return handlerInstance.qa.Stats()
}

// private methods
func (h *JobHandler) pushToJobChannel(newJob newJobData) {
	_job := jobModel.Job{}
	_job.Id = newJob.id
	_job.CreatedTime = time.Now()
	_job.TraceId = newJob.traceId
	_job.Status = jobModel.JobStatusQueued

	if newJob.isDocumentIngest {
		_job.CurrentStep = jobModel.IngestInit
		_job.JobType = jobModel.JobTypeIngest
		_job.JobPayload.IngestFileName = newJob.documentName
		_job.JobPayload.IngestURL = newJob.documentSource
	} else {
		_job.JobType = jobModel.JobTypeQuery
		_job.JobPayload.Question = newJob.question
		_job.JobPayload.TopK = newJob.topK
		_job.CurrentStep = jobModel.UserQueryInit
	}

	//metrics
	metrics.IncrementJobsInQueue()

	h.service.JobChannel <- _job //blocking send keeps the system from being overwhelmed
	logJH.Info("Created new job")

	//grow the pool every N requests, and always for ingest jobs:
	//document processing blocks a worker for longer than a query
	accurateCount := atomic.AddInt64(&h.service.RequestCount, 1)
	if accurateCount%config.RequestsPerNewWorkerCount == 0 || _job.JobType == jobModel.JobTypeIngest {
		metrics.StartDispatcherSignalCount()
		h.service.DispatcherChannel <- true
	}
}
