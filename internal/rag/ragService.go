package rag

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"tablerag/internal/config"
	"tablerag/internal/domain/document"
	"tablerag/internal/domain/jobModel"
	"tablerag/internal/metrics"
	"tablerag/internal/rag/llm"
	"tablerag/internal/rag/normalize"
	"tablerag/internal/rag/vectorstore"
	"tablerag/pkg/logger_i"
)

// Source mirrors one retrieved chunk, text and metadata unmodified.
type Source struct {
	Content  string            `json:"content"`
	Metadata document.Metadata `json:"metadata"`
}

// Answer is the full response to one question: the generated text plus every
// chunk that fed the prompt, in retrieval order.
type Answer struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}

// Service is the public contract of the RAG pipeline. Handlers and the
// indexing worker only see this interface; the vector backend and the LLM
// provider stay private to the implementation so tests can swap them for
// mocks.
//
// Answer never returns a Go error: provider failures surface as an answer
// string starting with "Error:" so the client always gets a well-formed
// response body. BuildIndex is the single writer of the vector index and is
// expected to be called from exactly one worker goroutine.
type Service interface {
	Initialize(ctx context.Context) bool
	Ready() bool
	StoreExists() bool
	IndexedChunks() int
	Answer(ctx context.Context, question string) Answer
	Search(ctx context.Context, query string) ([]vectorstore.Result, error)
	BuildIndex(ctx context.Context, job jobModel.Job) jobModel.Job
}

type service struct {
	index       vectorstore.Index
	llmProvider llm.Provider
	loader      *normalize.Loader
	logger      *logger_i.Logger

	// written by the index worker, read by every request handler
	ready atomic.Bool
}

func NewService(index vectorstore.Index, llm llm.Provider, loader *normalize.Loader) Service {
	return &service{
		index:       index,
		llmProvider: llm,
		loader:      loader,
		logger:      logger_i.NewLogger("rag_service"),
	}
}

// Initialize tries to bring a previously persisted index online. Returning
// false is normal for a fresh deployment; the service still accepts indexing
// jobs and reports not-ready until the first one lands.
func (s *service) Initialize(ctx context.Context) bool {
	loaded := s.index.Load(ctx)
	s.ready.Store(loaded)
	if loaded {
		metrics.SetIndexedChunks(s.index.Count())
		s.logger.Info("Vector index restored", "chunks", s.index.Count())
	} else {
		s.logger.Info("No existing vector index, waiting for first indexing job")
	}
	return loaded
}

func (s *service) Ready() bool {
	return s.ready.Load()
}

func (s *service) StoreExists() bool {
	return s.index.Exists()
}

func (s *service) IndexedChunks() int {
	return s.index.Count()
}

func (s *service) Answer(ctx context.Context, question string) Answer {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))
	start := time.Now()

	if !s.ready.Load() {
		metrics.CaptureRequestMetrics("not_ready", time.Since(start))
		return Answer{
			Answer:  "Error: no documents have been indexed yet",
			Sources: []Source{},
		}
	}

	// No threshold on the generation path. The prompt instructs the model to
	// ignore irrelevant context, so weak matches are better than none.
	results, err := s.executeSearchStep(ctx, question, 0)
	if err != nil {
		metrics.CaptureRequestMetrics("error", time.Since(start))
		log.Error("Similarity search failed", "error", err)
		return errorAnswer(err)
	}
	if len(results) == 0 {
		metrics.CaptureRequestMetrics("no_match", time.Since(start))
		return Answer{
			Answer:  "The indexed documents do not contain information relevant to this question.",
			Sources: []Source{},
		}
	}

	answer, err := s.executeLLMStep(ctx, question, results)
	if err != nil {
		metrics.CaptureRequestMetrics("error", time.Since(start))
		log.Error("Answer generation failed", "error", err)
		return errorAnswer(err)
	}

	metrics.CaptureRequestMetrics("ok", time.Since(start))
	return Answer{Answer: answer, Sources: sourcesOf(results)}
}

func (s *service) Search(ctx context.Context, query string) ([]vectorstore.Result, error) {
	return s.executeSearchStep(ctx, query, config.SimilarityThreshold)
}

// BuildIndex runs one document through normalize -> chunk -> embed+store and
// records its progress on the job as it goes.
func (s *service) BuildIndex(ctx context.Context, job jobModel.Job) jobModel.Job {
	log := s.logger.With("traceId", job.TraceId, "jobId", job.Id)
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("indexing", time.Since(start)) }()

	units, err := s.executeNormalizeStep(ctx, log, &job)
	if err != nil {
		return s.jobError(job, err, "NORMALIZE_FAILURE", false)
	}

	chunks := s.executeChunkStep(log, &job, units)

	if err := s.executeStoreStep(ctx, log, &job, chunks); err != nil {
		return s.jobError(job, err, "INDEXING_FAILURE", true)
	}

	s.ready.Store(true)
	metrics.SetIndexedChunks(s.index.Count())

	job.Status = jobModel.JobStatusComplete
	job.CurrentStep = jobModel.Complete
	job.EndTime = time.Now()
	log.Info("Indexing job complete", "units", job.JobPayload.UnitsLoaded, "chunks", job.JobPayload.ChunksIndexed)
	return job
}

func errorAnswer(err error) Answer {
	return Answer{Answer: fmt.Sprintf("Error: %v", err), Sources: []Source{}}
}

func sourcesOf(results []vectorstore.Result) []Source {
	sources := make([]Source, len(results))
	for i, r := range results {
		sources[i] = Source{Content: r.Content, Metadata: r.Meta}
	}
	return sources
}
