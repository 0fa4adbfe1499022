package vectorstore

import (
	"context"

	"tablerag/internal/domain/document"
)

// Result is one retrieved chunk. Similarity is normalized to (0, 1] where 1
// means an exact vector match.
type Result struct {
	Content    string            `json:"content"`
	Meta       document.Metadata `json:"metadata"`
	Similarity float64           `json:"similarity_score"`
}

// Index is the persistent vector store behind retrieval.
//
// Load reports whether a previously persisted index was brought into memory;
// false means no usable index exists yet (missing, partial or corrupt
// artifacts all land here) and is not an error.
//
// CreateOrUpdate embeds the chunks and appends them to the index, creating it
// first if needed, then persists. An empty chunk slice is a no-op. Re-adding
// content that is already indexed duplicates it; deduplication is the
// caller's concern.
//
// SimilaritySearch returns an empty result set, not an error, when the index
// is absent or the query cannot be embedded; embedding failures are logged by
// the implementation. The error return is reserved for backend faults.
type Index interface {
	Load(ctx context.Context) bool
	CreateOrUpdate(ctx context.Context, chunks []document.Chunk) error
	SimilaritySearch(ctx context.Context, query string, k int, threshold float64) ([]Result, error)
	Exists() bool
	Count() int
}
