package rag_test

import (
	"context"

	"tablerag/internal/domain/document"
	"tablerag/internal/rag/vectorstore"
)

// MockIndex implements vectorstore.Index
type MockIndex struct {
	// Control fields to simulate different behaviors
	OnLoad           func(ctx context.Context) bool
	OnCreateOrUpdate func(ctx context.Context, chunks []document.Chunk) error
	OnSearch         func(ctx context.Context, query string, k int, threshold float64) ([]vectorstore.Result, error)

	StoredChunks []document.Chunk
}

func (m *MockIndex) Load(ctx context.Context) bool {
	if m.OnLoad != nil {
		return m.OnLoad(ctx)
	}
	return false
}

func (m *MockIndex) CreateOrUpdate(ctx context.Context, chunks []document.Chunk) error {
	if m.OnCreateOrUpdate != nil {
		return m.OnCreateOrUpdate(ctx, chunks)
	}
	m.StoredChunks = append(m.StoredChunks, chunks...)
	return nil
}

func (m *MockIndex) SimilaritySearch(ctx context.Context, query string, k int, threshold float64) ([]vectorstore.Result, error) {
	if m.OnSearch != nil {
		return m.OnSearch(ctx, query, k, threshold)
	}
	return []vectorstore.Result{}, nil
}

func (m *MockIndex) Exists() bool { return len(m.StoredChunks) > 0 }
func (m *MockIndex) Count() int   { return len(m.StoredChunks) }

// MockLLM implements llm.Provider
type MockLLM struct {
	OnGenerate func(ctx context.Context, query string, matches []string) (string, error)

	LastMatches []string
}

func (m *MockLLM) Generate(ctx context.Context, q string, matches []string) (string, error) {
	m.LastMatches = matches
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, q, matches)
	}
	return "mocked llm response", nil
}
