package rag_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tablerag/internal/config"
	"tablerag/internal/domain/document"
	"tablerag/internal/domain/jobModel"
	"tablerag/internal/rag"
	"tablerag/internal/rag/normalize"
	"tablerag/internal/rag/vectorstore"
)

func testContext() context.Context {
	return context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
}

func hit(content, source string, row int, score float64) vectorstore.Result {
	return vectorstore.Result{
		Content:    content,
		Meta:       document.Metadata{Source: source, Type: document.CSV, RowNumber: row},
		Similarity: score,
	}
}

func TestAnswer_Scenarios(t *testing.T) {
	tests := []struct {
		name        string
		ready       bool
		setupMocks  func(idx *MockIndex, l *MockLLM)
		wantAnswer  string
		wantError   bool
		wantSources []string
	}{
		{
			name:       "Not_Ready_Gives_Error_Text",
			ready:      false,
			setupMocks: func(idx *MockIndex, l *MockLLM) {},
			wantError:  true,
		},
		{
			name:  "Success_Full_Flow",
			ready: true,
			setupMocks: func(idx *MockIndex, l *MockLLM) {
				idx.OnSearch = func(ctx context.Context, q string, k int, th float64) ([]vectorstore.Result, error) {
					return []vectorstore.Result{
						hit("Row: 1\nRegion: North", "sales.csv", 1, 0.9),
						hit("Row: 2\nRegion: South", "sales.csv", 2, 0.8),
					}, nil
				}
				l.OnGenerate = func(ctx context.Context, q string, m []string) (string, error) {
					return "North leads with 1200", nil
				}
			},
			wantAnswer:  "North leads with 1200",
			wantSources: []string{"Row: 1\nRegion: North", "Row: 2\nRegion: South"},
		},
		{
			name:  "No_Matches_Gives_Fallback_Text",
			ready: true,
			setupMocks: func(idx *MockIndex, l *MockLLM) {
				idx.OnSearch = func(ctx context.Context, q string, k int, th float64) ([]vectorstore.Result, error) {
					return []vectorstore.Result{}, nil
				}
			},
			wantAnswer:  "The indexed documents do not contain information relevant to this question.",
			wantSources: []string{},
		},
		{
			name:  "Search_Failure_Becomes_Error_Text",
			ready: true,
			setupMocks: func(idx *MockIndex, l *MockLLM) {
				idx.OnSearch = func(ctx context.Context, q string, k int, th float64) ([]vectorstore.Result, error) {
					return nil, errors.New("embedder down")
				}
			},
			wantError: true,
		},
		{
			name:  "LLM_Failure_Becomes_Error_Text",
			ready: true,
			setupMocks: func(idx *MockIndex, l *MockLLM) {
				idx.OnSearch = func(ctx context.Context, q string, k int, th float64) ([]vectorstore.Result, error) {
					return []vectorstore.Result{hit("some row", "sales.csv", 1, 0.9)}, nil
				}
				l.OnGenerate = func(ctx context.Context, q string, m []string) (string, error) {
					return "", errors.New("model overloaded")
				}
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := &MockIndex{}
			llmMock := &MockLLM{}
			tt.setupMocks(idx, llmMock)
			if tt.ready {
				idx.OnLoad = func(ctx context.Context) bool { return true }
			}

			svc := rag.NewService(idx, llmMock, normalize.NewLoader())
			svc.Initialize(testContext())
			got := svc.Answer(testContext(), "which region leads?")

			if tt.wantError {
				if !strings.HasPrefix(got.Answer, "Error:") {
					t.Errorf("expected an Error: answer, got %q", got.Answer)
				}
				if len(got.Sources) != 0 {
					t.Errorf("failed answers must carry no sources, got %v", got.Sources)
				}
				return
			}
			if got.Answer != tt.wantAnswer {
				t.Errorf("Answer = %q, want %q", got.Answer, tt.wantAnswer)
			}
			if len(got.Sources) != len(tt.wantSources) {
				t.Fatalf("Sources = %v, want %v", got.Sources, tt.wantSources)
			}
			for i := range tt.wantSources {
				if got.Sources[i].Content != tt.wantSources[i] {
					t.Errorf("Sources[%d].Content = %q, want %q", i, got.Sources[i].Content, tt.wantSources[i])
				}
			}
		})
	}
}

func TestAnswer_SourcesMirrorRetrievalOrder(t *testing.T) {
	retrieved := []vectorstore.Result{
		hit("chunk a", "sales.csv", 1, 0.9),
		hit("chunk b", "sales.csv", 1, 0.8),
		hit("chunk c", "sales.csv", 2, 0.7),
	}
	idx := &MockIndex{
		OnLoad: func(ctx context.Context) bool { return true },
		OnSearch: func(ctx context.Context, q string, k int, th float64) ([]vectorstore.Result, error) {
			return retrieved, nil
		},
	}
	llmMock := &MockLLM{}

	svc := rag.NewService(idx, llmMock, normalize.NewLoader())
	svc.Initialize(testContext())
	got := svc.Answer(testContext(), "q")

	if len(got.Sources) != len(retrieved) {
		t.Fatalf("got %d sources, want %d", len(got.Sources), len(retrieved))
	}
	for i, r := range retrieved {
		if got.Sources[i].Content != r.Content {
			t.Errorf("Sources[%d].Content = %q, want %q", i, got.Sources[i].Content, r.Content)
		}
		if got.Sources[i].Metadata.RowNumber != r.Meta.RowNumber {
			t.Errorf("Sources[%d] metadata not preserved verbatim", i)
		}
	}
	if len(llmMock.LastMatches) != 3 {
		t.Errorf("all chunks must reach the prompt, got %d", len(llmMock.LastMatches))
	}
}

func TestInitialize_ReflectsPersistedIndex(t *testing.T) {
	t.Run("nothing persisted", func(t *testing.T) {
		svc := rag.NewService(&MockIndex{}, &MockLLM{}, normalize.NewLoader())
		if svc.Initialize(testContext()) {
			t.Error("Initialize must report false with no persisted index")
		}
		if svc.Ready() {
			t.Error("service must not be ready before the first indexing job")
		}
	})

	t.Run("index restored", func(t *testing.T) {
		idx := &MockIndex{
			OnLoad:       func(ctx context.Context) bool { return true },
			StoredChunks: []document.Chunk{{Text: "x"}},
		}
		svc := rag.NewService(idx, &MockLLM{}, normalize.NewLoader())
		if !svc.Initialize(testContext()) {
			t.Error("Initialize must report true when artifacts load")
		}
		if !svc.Ready() {
			t.Error("service must be ready after restoring an index")
		}
	})
}

func TestBuildIndex_FullPipeline(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sales.csv")
	if err := os.WriteFile(path, []byte("Region,Revenue\nNorth,1200\nSouth,800\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	idx := &MockIndex{}
	svc := rag.NewService(idx, &MockLLM{}, normalize.NewLoader())

	job := jobModel.Job{
		Id:          "job-1",
		TraceId:     "trace-1",
		CreatedTime: time.Now(),
		Status:      jobModel.JobStatusRunning,
		JobPayload:  jobModel.JobPayload{FileName: "sales.csv", FilePath: path},
	}

	result := svc.BuildIndex(context.Background(), job)

	if result.Status != jobModel.JobStatusComplete {
		t.Fatalf("job status = %s, error = %+v", result.Status, result.Error)
	}
	if result.CurrentStep != jobModel.Complete {
		t.Errorf("current step = %s, want Complete", result.CurrentStep)
	}
	if result.JobPayload.DocumentType != "csv" {
		t.Errorf("document type = %q, want csv", result.JobPayload.DocumentType)
	}
	if result.JobPayload.UnitsLoaded != 2 {
		t.Errorf("units loaded = %d, want 2", result.JobPayload.UnitsLoaded)
	}
	if result.JobPayload.ChunksIndexed != len(idx.StoredChunks) {
		t.Errorf("reported %d chunks but stored %d", result.JobPayload.ChunksIndexed, len(idx.StoredChunks))
	}
	if !svc.Ready() {
		t.Error("service must report ready after a successful indexing job")
	}
}

func TestBuildIndex_Failures(t *testing.T) {
	t.Run("unreadable file", func(t *testing.T) {
		svc := rag.NewService(&MockIndex{}, &MockLLM{}, normalize.NewLoader())
		job := jobModel.Job{Id: "job-2", JobPayload: jobModel.JobPayload{FilePath: "/does/not/exist.csv"}}

		result := svc.BuildIndex(context.Background(), job)
		if result.Status != jobModel.JobStatusError {
			t.Errorf("status = %s, want error", result.Status)
		}
		if result.Error.Retry {
			t.Error("a bad document is not retryable")
		}
	})

	t.Run("store failure is retryable", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "sales.csv")
		if err := os.WriteFile(path, []byte("Region,Revenue\nNorth,1200\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		idx := &MockIndex{
			OnCreateOrUpdate: func(ctx context.Context, chunks []document.Chunk) error {
				return errors.New("embedding quota exhausted")
			},
		}
		svc := rag.NewService(idx, &MockLLM{}, normalize.NewLoader())
		job := jobModel.Job{Id: "job-3", JobPayload: jobModel.JobPayload{FilePath: path}}

		result := svc.BuildIndex(context.Background(), job)
		if result.Status != jobModel.JobStatusError {
			t.Errorf("status = %s, want error", result.Status)
		}
		if !result.Error.Retry {
			t.Error("a provider failure should be retryable")
		}
		if svc.Ready() {
			t.Error("a failed first job must not mark the service ready")
		}
	})
}
