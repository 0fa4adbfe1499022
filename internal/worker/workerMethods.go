package worker

import (
	"context"
	"os"
	"time"

	"tablerag/internal/config"
	jobmodel "tablerag/internal/domain/jobModel"
	"tablerag/internal/metrics"
)

func executeJob(job jobmodel.Job) {
	defer metrics.DecrementJobsInQueue()

	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, config.IndexJobTimeout)
	defer cancel()

	log := logger.With("traceId", job.TraceId, "jobId", job.Id)
	log.Debug("Processing indexing job", "file", job.JobPayload.FileName)

	saveJobState(ctx, job, jobmodel.JobStatusRunning)

	job = _ragService.BuildIndex(ctx, job)

	saveJobState(ctx, job, job.Status)
	cleanupStagedFile(job)
}

func saveJobState(ctx context.Context, job jobmodel.Job, jobStatus jobmodel.JobStatus) {
	job.Status = jobStatus
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		logger.Error("Failed to update job status", "err", err)
	}
}

// cleanupStagedFile removes the uploaded temp file once the worker is done
// with it, success or not. A short delay covers filesystems that still have
// the file mapped.
func cleanupStagedFile(job jobmodel.Job) {
	path := job.JobPayload.FilePath
	if path == "" {
		return
	}
	go func() {
		time.Sleep(time.Second)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Warn("Could not remove staged upload", "path", path, "err", err)
		}
	}()
}
