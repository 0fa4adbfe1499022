package localstore

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"tablerag/internal/domain/document"
	"tablerag/internal/rag/embedding"
	"tablerag/internal/rag/vectorstore"
	"tablerag/pkg/logger_i"
)

// Store is a flat in-memory vector index persisted as two companion files
// under one directory: a gob file with the raw vectors and a JSON docstore
// with the chunk texts and metadata. Entry i of one file corresponds to
// entry i of the other; the pair is only ever written together.
//
// All exported methods are safe for concurrent use, but writers are expected
// to be serialized upstream (one indexing worker) so CreateOrUpdate never
// races with itself.
type Store struct {
	mu       sync.RWMutex
	dir      string
	embedder embedding.Embedder
	logger   *logger_i.Logger

	loaded  bool
	vectors [][]float32
	docs    []docEntry
}

type docEntry struct {
	Content string            `json:"content"`
	Meta    document.Metadata `json:"metadata"`
}

func New(dir string, embedder embedding.Embedder) *Store {
	return &Store{
		dir:      dir,
		embedder: embedder,
		logger:   logger_i.NewLogger("local_vectorstore"),
	}
}

// Load pulls the persisted artifacts into memory. Returns false when no
// usable index exists: missing files, a partial pair, or corrupt content.
// Already-loaded state is kept as is.
func (s *Store) Load(_ context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() bool {
	if s.loaded {
		return true
	}

	vectors, docs, err := readArtifacts(s.dir)
	if err != nil {
		if !errors.Is(err, errNoIndex) {
			s.logger.Warn("Persisted index is unreadable, treating as absent", "dir", s.dir, "error", err)
		}
		return false
	}

	s.vectors = vectors
	s.docs = docs
	s.loaded = true
	s.logger.Info("Vector index loaded", "dir", s.dir, "chunks", len(docs))
	return true
}

func (s *Store) CreateOrUpdate(ctx context.Context, chunks []document.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	// embed outside the lock, provider calls are slow
	newVectors, err := s.embedder.BatchEmbedding(ctx, texts)
	if err != nil {
		return err
	}
	if len(newVectors) != len(chunks) {
		return errors.New("embedder returned wrong vector count")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		// a corrupt on-disk index is abandoned here and rebuilt from
		// scratch, losing whatever it held
		if !s.loadLocked() && indexPresent(s.dir) {
			s.logger.Warn("Rebuilding index over unreadable artifacts, previous content is lost", "dir", s.dir)
		}
	}

	vectors := append(s.vectors, newVectors...)
	docs := s.docs
	for _, c := range chunks {
		docs = append(docs, docEntry{Content: c.Text, Meta: c.Meta})
	}

	if err := writeArtifacts(s.dir, vectors, docs); err != nil {
		return err
	}

	s.vectors = vectors
	s.docs = docs
	s.loaded = true
	s.logger.Info("Vector index updated", "dir", s.dir, "added", len(chunks), "total", len(docs))
	return nil
}

// SimilaritySearch degrades to an empty result set on an absent index and on
// embedding failures, which are logged here. Retrieval never takes down the
// serving path; callers treat "no index yet", "provider down" and "no match"
// the same way.
func (s *Store) SimilaritySearch(ctx context.Context, query string, k int, threshold float64) ([]vectorstore.Result, error) {
	s.mu.Lock()
	ok := s.loadLocked()
	s.mu.Unlock()
	if !ok {
		return []vectorstore.Result{}, nil
	}

	queryVector, err := s.embedder.GetEmbedding(ctx, query)
	if err != nil {
		s.logger.Error("Query embedding failed, returning no results", "error", err)
		return []vectorstore.Result{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]vectorstore.Result, 0, k)
	for i, v := range s.vectors {
		sim := similarity(queryVector, v)
		if sim < threshold {
			continue
		}
		results = append(results, vectorstore.Result{
			Content:    s.docs[i].Content,
			Meta:       s.docs[i].Meta,
			Similarity: sim,
		})
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Similarity > results[b].Similarity
	})
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

func (s *Store) Exists() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.loaded {
		return true
	}
	return indexPresent(s.dir)
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// similarity maps L2 distance to (0, 1]: identical vectors score 1 and the
// score decays toward 0 as distance grows.
func similarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return 1.0 / (1.0 + math.Sqrt(sum))
}
