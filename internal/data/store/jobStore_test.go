package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/nmehta6/finqa/internal/data/redisStore"
	"github.com/nmehta6/finqa/internal/domain/jobModel"
)

func newMiniRedisStore(t *testing.T) *RedisJobStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return TestJobStore(redisStore.NewTestStore(client))
}

func sampleJob(id string) jobModel.Job {
	return jobModel.Job{
		Id:      id,
		TraceId: "trace-" + id,
		JobType: jobModel.JobTypeQuery,
		Status:  jobModel.JobStatusQueued,
		JobPayload: jobModel.JobPayload{
			Question: "What was Q1 revenue?",
			TopK:     3,
		},
	}
}

func TestRedisJobStore_SaveAndGet(t *testing.T) {
	jobStore := newMiniRedisStore(t)
	ctx := context.Background()

	job := sampleJob("job-1")
	job.JobPayload.Answer = "Revenue was $5M."
	job.JobPayload.Sources = []string{"[q1.pdf p.1]"}
	job.JobPayload.ChunkIds = []int{0}

	if err := jobStore.SaveJob(ctx, job); err != nil {
		t.Fatalf("SaveJob failed: %v", err)
	}

	got, found := jobStore.GetJob(ctx, "job-1")
	if !found {
		t.Fatal("Saved job not found")
	}
	if got.JobPayload.Answer != job.JobPayload.Answer {
		t.Errorf("Answer round-trip failed: %q", got.JobPayload.Answer)
	}
	if len(got.JobPayload.Sources) != 1 || got.JobPayload.Sources[0] != "[q1.pdf p.1]" {
		t.Errorf("Sources round-trip failed: %v", got.JobPayload.Sources)
	}
	if got.Status != jobModel.JobStatusQueued {
		t.Errorf("Status round-trip failed: %s", got.Status)
	}
}

func TestRedisJobStore_MissingJob(t *testing.T) {
	jobStore := newMiniRedisStore(t)

	if _, found := jobStore.GetJob(context.Background(), "no-such-job"); found {
		t.Error("Missing job must report found=false")
	}
}

func TestRedisJobStore_Delete(t *testing.T) {
	jobStore := newMiniRedisStore(t)
	ctx := context.Background()

	if err := jobStore.SaveJob(ctx, sampleJob("job-2")); err != nil {
		t.Fatalf("SaveJob failed: %v", err)
	}
	jobStore.DeleteJob(ctx, "job-2")

	if _, found := jobStore.GetJob(ctx, "job-2"); found {
		t.Error("Deleted job still retrievable")
	}
}

func TestRedisJobStore_Overwrite(t *testing.T) {
	jobStore := newMiniRedisStore(t)
	ctx := context.Background()

	job := sampleJob("job-3")
	if err := jobStore.SaveJob(ctx, job); err != nil {
		t.Fatalf("SaveJob failed: %v", err)
	}

	job.Status = jobModel.JobStatusComplete
	job.CurrentStep = jobModel.Complete
	if err := jobStore.SaveJob(ctx, job); err != nil {
		t.Fatalf("SaveJob (update) failed: %v", err)
	}

	got, found := jobStore.GetJob(ctx, "job-3")
	if !found {
		t.Fatal("Updated job not found")
	}
	if got.Status != jobModel.JobStatusComplete {
		t.Errorf("Status update lost, got %s", got.Status)
	}
}

func TestInMemoryJobStore(t *testing.T) {
	jobStore := InitInMemoryJobStore()
	ctx := context.Background()

	if err := jobStore.SaveJob(ctx, sampleJob("job-4")); err != nil {
		t.Fatalf("SaveJob failed: %v", err)
	}
	if _, found := jobStore.GetJob(ctx, "job-4"); !found {
		t.Error("Saved job not found")
	}

	jobStore.DeleteJob(ctx, "job-4")
	if _, found := jobStore.GetJob(ctx, "job-4"); found {
		t.Error("Deleted job still retrievable")
	}

	if _, found := jobStore.GetJob(ctx, "never-saved"); found {
		t.Error("Unknown id must report found=false")
	}
}
