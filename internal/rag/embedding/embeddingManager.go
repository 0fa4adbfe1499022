package embedding

import "context"

// Embedder is the contract with the external embedding provider: a pure
// text -> fixed-length vector function. BatchEmbedding preserves input order
// with 1:1 positional correspondence and is all-or-nothing: either every
// vector comes back or an error does.
type Embedder interface {
	GetEmbedding(ctx context.Context, query string) ([]float32, error)
	BatchEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}
