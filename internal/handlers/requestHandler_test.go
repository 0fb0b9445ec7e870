package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/nmehta6/finqa/internal/api"
	"github.com/nmehta6/finqa/internal/config"
	"github.com/nmehta6/finqa/internal/data/store"
	"github.com/nmehta6/finqa/internal/domain/docModel"
	"github.com/nmehta6/finqa/internal/domain/jobModel"
	"github.com/nmehta6/finqa/internal/job"
)

type stubQAService struct{}

func (s *stubQAService) ProcessQuestion(ctx context.Context, j jobModel.Job) jobModel.Job {
	return j
}

func (s *stubQAService) IngestDocument(ctx context.Context, j jobModel.Job) jobModel.Job {
	return j
}

func (s *stubQAService) Answer(ctx context.Context, question string, topK int) (docModel.Answer, error) {
	return docModel.Answer{}, nil
}

func (s *stubQAService) Search(ctx context.Context, query string, topK int) ([]docModel.ScoredChunk, error) {
	return nil, nil
}

func (s *stubQAService) Stats() docModel.CorpusStats {
	return docModel.CorpusStats{
		Documents: []docModel.Summary{{DocName: "q1.pdf", Blocks: 4, Chunks: 2}},
		Chunks:    2,
		Terms:     17,
	}
}

// one shared handler per test binary, InitJobHandler is a once
var testJobService = job.InitJobService(job.ServiceConfig{
	JobChannel:        make(chan jobModel.Job, 32),
	DispatcherChannel: make(chan bool, 32),
	JobStore:          store.InitInMemoryJobStore(),
})

func initHandlers(t *testing.T) *job.Service {
	t.Helper()
	InitJobHandler(testJobService, &stubQAService{})
	return testJobService
}

func withTrace(r *http.Request) *http.Request {
	ctx := context.WithValue(r.Context(), config.TraceIDKey, "trace-test")
	return r.WithContext(ctx)
}

func drainJobChannel(svc *job.Service) {
	for {
		select {
		case <-svc.JobChannel:
		case <-svc.DispatcherChannel:
		default:
			return
		}
	}
}

func TestAskHandler(t *testing.T) {
	svc := initHandlers(t)
	drainJobChannel(svc)

	body, _ := json.Marshal(api.AskRequest{Question: "What was Q1 revenue?", TopK: 5})
	req := withTrace(httptest.NewRequest(http.MethodPost, "/ask", bytes.NewReader(body)))
	rec := httptest.NewRecorder()

	AskHandler(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("Expected 202, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp api.InitJobResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Bad response body: %v", err)
	}
	if resp.Id == "" {
		t.Error("Response must carry a job id")
	}
	if !strings.Contains(resp.StatusURL, resp.Id) {
		t.Errorf("Status URL %q must reference the job id", resp.StatusURL)
	}

	select {
	case queued := <-svc.JobChannel:
		if queued.JobType != jobModel.JobTypeQuery {
			t.Errorf("Expected a query job, got %s", queued.JobType)
		}
		if queued.JobPayload.Question != "What was Q1 revenue?" {
			t.Errorf("Question lost: %q", queued.JobPayload.Question)
		}
		if queued.JobPayload.TopK != 5 {
			t.Errorf("TopK override lost: %d", queued.JobPayload.TopK)
		}
		if queued.Status != jobModel.JobStatusQueued {
			t.Errorf("New job must start queued, got %s", queued.Status)
		}
	default:
		t.Fatal("No job landed on the channel")
	}
}

func TestAskHandler_BadRequests(t *testing.T) {
	svc := initHandlers(t)
	drainJobChannel(svc)

	tests := []struct {
		name string
		body string
	}{
		{"empty question", `{"question": ""}`},
		{"missing question", `{}`},
		{"malformed json", `{not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withTrace(httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(tt.body)))
			rec := httptest.NewRecorder()

			AskHandler(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rec.Code)
			}
			select {
			case <-svc.JobChannel:
				t.Error("Rejected request must not queue a job")
			default:
			}
		})
	}
}

func TestGetStatusHandler(t *testing.T) {
	svc := initHandlers(t)
	drainJobChannel(svc)

	done := jobModel.Job{
		Id:      "job-done",
		Status:  jobModel.JobStatusComplete,
		JobType: jobModel.JobTypeQuery,
		JobPayload: jobModel.JobPayload{
			Question: "What was Q1 revenue?",
			Answer:   "Revenue was $5M.",
			Sources:  []string{"[q1.pdf p.1]"},
		},
	}
	if err := svc.JobStore.SaveJob(context.Background(), done); err != nil {
		t.Fatalf("Seeding store failed: %v", err)
	}

	router := chi.NewRouter()
	router.Get("/status/{id}", GetStatusHandler)

	req := withTrace(httptest.NewRequest(http.MethodGet, "/status/job-done", nil))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var resp api.JobResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Bad response body: %v", err)
	}
	if resp.Result.Answer == nil || resp.Result.Answer.Answer != "Revenue was $5M." {
		t.Errorf("Answer missing from completed job response: %+v", resp.Result)
	}

	req = withTrace(httptest.NewRequest(http.MethodGet, "/status/no-such-job", nil))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown job, got %d", rec.Code)
	}
}

func TestPostDocumentHandler(t *testing.T) {
	svc := initHandlers(t)
	drainJobChannel(svc)

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if err := form.WriteField("document_name", "q1-report.pdf"); err != nil {
		t.Fatalf("Form field failed: %v", err)
	}
	part, err := form.CreateFormFile("document", "q1-report.pdf")
	if err != nil {
		t.Fatalf("Form file failed: %v", err)
	}
	part.Write([]byte("%PDF-1.4 fake body"))
	form.Close()

	req := withTrace(httptest.NewRequest(http.MethodPost, "/documents", &buf))
	req.Header.Set("Content-Type", form.FormDataContentType())
	rec := httptest.NewRecorder()

	PostDocumentHandler(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("Expected 202, got %d: %s", rec.Code, rec.Body.String())
	}

	select {
	case queued := <-svc.JobChannel:
		if queued.JobType != jobModel.JobTypeIngest {
			t.Errorf("Expected an ingest job, got %s", queued.JobType)
		}
		if queued.JobPayload.IngestFileName != "q1-report.pdf" {
			t.Errorf("Document name lost: %q", queued.JobPayload.IngestFileName)
		}
		if queued.JobPayload.IngestURL == "" {
			t.Error("Stored file path missing from the job")
		}
	default:
		t.Fatal("No ingest job landed on the channel")
	}

	// ingest jobs always signal the dispatcher
	select {
	case <-svc.DispatcherChannel:
	default:
		t.Error("Ingest must signal the dispatcher to grow the pool")
	}
}

func TestPostDocumentHandler_MissingName(t *testing.T) {
	svc := initHandlers(t)
	drainJobChannel(svc)

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, _ := form.CreateFormFile("document", "report.pdf")
	part.Write([]byte("body"))
	form.Close()

	req := withTrace(httptest.NewRequest(http.MethodPost, "/documents", &buf))
	req.Header.Set("Content-Type", form.FormDataContentType())
	rec := httptest.NewRecorder()

	PostDocumentHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without document_name, got %d", rec.Code)
	}
}

func TestCorpusHandler(t *testing.T) {
	initHandlers(t)

	req := withTrace(httptest.NewRequest(http.MethodGet, "/corpus", nil))
	rec := httptest.NewRecorder()

	CorpusHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var stats docModel.CorpusStats
	if err := json.NewDecoder(rec.Body).Decode(&stats); err != nil {
		t.Fatalf("Bad response body: %v", err)
	}
	if stats.Chunks != 2 || len(stats.Documents) != 1 {
		t.Errorf("Stats not passed through: %+v", stats)
	}
}
