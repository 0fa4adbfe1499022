package rag

import (
	"context"
	"net/http"
	"time"

	"tablerag/internal/config"
	"tablerag/internal/domain/document"
	"tablerag/internal/domain/jobModel"
	"tablerag/internal/metrics"
	"tablerag/internal/rag/chunker"
	"tablerag/internal/rag/vectorstore"
	"tablerag/pkg/logger_i"
)

func (s *service) jobError(job jobModel.Job, err error, message string, canRetry bool) jobModel.Job {
	s.logger.Error(message, "error", err, "jobId", job.Id)

	job.Error = jobModel.JobError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
		Retry:   canRetry,
	}
	job.Status = jobModel.JobStatusError
	job.CurrentStep = jobModel.Error
	job.EndTime = time.Now()
	return job
}

func (s *service) executeSearchStep(ctx context.Context, query string, threshold float64) ([]vectorstore.Result, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	ctx, cancel := context.WithTimeout(ctx, config.ProviderCallTimeout)
	defer cancel()

	return s.index.SimilaritySearch(ctx, query, config.MaxResults, threshold)
}

func (s *service) executeLLMStep(ctx context.Context, question string, results []vectorstore.Result) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	matches := make([]string, len(results))
	for i, r := range results {
		matches[i] = r.Content
	}
	return s.llmProvider.Generate(ctx, question, matches)
}

func (s *service) executeNormalizeStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job) ([]document.Unit, error) {
	*job = logStep(*job, jobModel.NormalizeCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("normalize", time.Since(start)) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	units, strategy, err := s.loader.Normalize(job.JobPayload.FilePath)
	if err != nil {
		return nil, err
	}
	job.JobPayload.DocumentType = strategy
	job.JobPayload.UnitsLoaded = len(units)
	return units, nil
}

func (s *service) executeChunkStep(log *logger_i.Logger, job *jobModel.Job, units []document.Unit) []document.Chunk {
	*job = logStep(*job, jobModel.ChunkCall, log)

	chunks := chunker.ChunkUnits(units, config.ChunkSize, config.ChunkOverlap)
	job.JobPayload.ChunksIndexed = len(chunks)
	return chunks
}

func (s *service) executeStoreStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, chunks []document.Chunk) error {
	*job = logStep(*job, jobModel.EmbedAndStore, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	return s.index.CreateOrUpdate(ctx, chunks)
}

func logStep(job jobModel.Job, status jobModel.InternalStatus, log *logger_i.Logger) jobModel.Job {
	job.CurrentStep = status
	log.Debug("BuildIndex", "Current Status", job.CurrentStep)
	return job
}
