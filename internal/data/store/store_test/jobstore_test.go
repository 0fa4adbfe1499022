package store_test

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"tablerag/internal/config"
	"tablerag/internal/data/redisStore"
	"tablerag/internal/data/store"
	"tablerag/internal/domain/jobModel"
)

func newTestJobStore(t *testing.T) (*store.RedisJobStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return store.TestJobStore(redisStore.NewTestStore(client)), mr
}

func TestRedisJobStore_Lifecycle(t *testing.T) {
	jobStore, mr := newTestJobStore(t)

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
	jobID := "job_abc_123"

	testJob := jobModel.Job{
		Id:          jobID,
		Status:      jobModel.JobStatusRunning,
		CurrentStep: jobModel.EmbedAndStore,
		JobPayload: jobModel.JobPayload{
			FileName:      "sales.xlsx",
			ChunksIndexed: 42,
		},
	}

	t.Run("Save and Get Roundtrip", func(t *testing.T) {
		if err := jobStore.SaveJob(ctx, testJob); err != nil {
			t.Fatalf("SaveJob failed: %v", err)
		}

		retrievedJob, found := jobStore.GetJob(ctx, jobID)
		if !found {
			t.Fatal("Job was saved but not found in Redis")
		}
		if retrievedJob.JobPayload.FileName != testJob.JobPayload.FileName {
			t.Errorf("FileName mismatch: got %s, want %s",
				retrievedJob.JobPayload.FileName, testJob.JobPayload.FileName)
		}
		if retrievedJob.JobPayload.ChunksIndexed != 42 {
			t.Errorf("ChunksIndexed = %d, want 42", retrievedJob.JobPayload.ChunksIndexed)
		}
		if retrievedJob.CurrentStep != jobModel.EmbedAndStore {
			t.Errorf("CurrentStep = %s, want %s", retrievedJob.CurrentStep, jobModel.EmbedAndStore)
		}
	})

	t.Run("Get Non-Existent Job", func(t *testing.T) {
		if _, found := jobStore.GetJob(ctx, "ghost-id"); found {
			t.Error("Expected found=false for non-existent key")
		}
	})

	t.Run("Delete Job", func(t *testing.T) {
		jobStore.DeleteJob(ctx, jobID)
		if mr.Exists(jobID) {
			t.Error("Job still exists in Redis after DeleteJob call")
		}
	})
}

func TestRedisJobStore_ConcurrentSaves(t *testing.T) {
	jobStore, _ := newTestJobStore(t)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "race-trace")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			j := jobModel.Job{Id: "job-shared", Status: jobModel.JobStatusQueued}
			if err := jobStore.SaveJob(ctx, j); err != nil {
				t.Errorf("concurrent SaveJob failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if _, found := jobStore.GetJob(ctx, "job-shared"); !found {
		t.Error("job missing after concurrent saves")
	}
}

func TestInMemoryJobStore_FallbackBehavesTheSame(t *testing.T) {
	jobStore := store.InitInMemoryJobStore()
	ctx := context.Background()

	j := jobModel.Job{Id: "mem-1", Status: jobModel.JobStatusQueued}
	if err := jobStore.SaveJob(ctx, j); err != nil {
		t.Fatalf("SaveJob failed: %v", err)
	}
	got, found := jobStore.GetJob(ctx, "mem-1")
	if !found || got.Status != jobModel.JobStatusQueued {
		t.Errorf("roundtrip failed: found=%v job=%+v", found, got)
	}

	jobStore.DeleteJob(ctx, "mem-1")
	if _, found := jobStore.GetJob(ctx, "mem-1"); found {
		t.Error("job still present after delete")
	}
}
