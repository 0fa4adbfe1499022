package qdrantstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"tablerag/internal/config"
	"tablerag/internal/domain/document"
	"tablerag/internal/rag/embedding"
	"tablerag/internal/rag/vectorstore"
	"tablerag/pkg/logger_i"
)

var logger *logger_i.Logger
var qdrantInstance *qdrant.Client
var once sync.Once
var collectionName = config.QdrantCollectionName

// Store adapts a remote Qdrant collection to the same contract as the local
// flat index. Persistence is Qdrant's problem here; Load only has to verify
// the collection is reachable and non-empty.
type Store struct {
	client   *qdrant.Client
	embedder embedding.Embedder
}

func GetQdrantStore(ctx context.Context, embedder embedding.Embedder) vectorstore.Index {
	once.Do(func() {
		logger = logger_i.NewLogger("qdrant_vectorstore")
		res := newClient()
		if res != nil {
			qdrantInstance = res
			go closeQdrant(ctx, qdrantInstance)
		}
	})

	if qdrantInstance == nil {
		return nil
	}
	return &Store{client: qdrantInstance, embedder: embedder}
}

func newClient() *qdrant.Client {
	host := os.Getenv("QDRANT_HOST")
	port, er := strconv.Atoi(os.Getenv("QDRANT_PORT"))

	if host == "" || er != nil {
		host = "127.0.0.1"
		port = config.QdrantGrpcPort
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     host,
		Port:     port,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		logger.Error("could not instantiate qdrant client", "error", err)
		return nil
	}

	if err := ensureCollection(context.Background(), client); err != nil {
		logger.Error("could not create collection", "collectionName", collectionName, "error", err)
		return nil
	}
	return client
}

func closeQdrant(ctx context.Context, qi *qdrant.Client) {
	<-ctx.Done()
	logger.Info("Shutting down Qdrant client")
	if err := qi.Close(); err != nil {
		logger.Error("could not close Qdrant client", "error", err)
	}
}

func ensureCollection(ctx context.Context, client *qdrant.Client) error {
	exists, err := client.CollectionExists(ctx, collectionName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(config.EmbeddingOutputDimensionality),
			Distance: qdrant.Distance_Cosine,
		}),
	})
}

func (s *Store) Load(ctx context.Context) bool {
	return s.Count() > 0 && ctx.Err() == nil
}

func (s *Store) CreateOrUpdate(ctx context.Context, chunks []document.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, err := s.embedder.BatchEmbedding(ctx, texts)
	if err != nil {
		return err
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("mismatch: got %d chunks but %d vectors", len(chunks), len(vectors))
	}

	points := make([]*qdrant.PointStruct, len(chunks))
	for i, chunk := range chunks {
		metaRaw, err := json.Marshal(chunk.Meta)
		if err != nil {
			return fmt.Errorf("encode chunk metadata: %w", err)
		}
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(uuid.NewString()),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(map[string]any{
				"content":  chunk.Text,
				"metadata": string(metaRaw),
				"source":   chunk.Meta.Source,
			}),
		}
	}

	_, err = s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collectionName,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}
	logger.Info("Qdrant collection updated", "added", len(chunks))
	return nil
}

func (s *Store) SimilaritySearch(ctx context.Context, query string, k int, threshold float64) ([]vectorstore.Result, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	queryVector, err := s.embedder.GetEmbedding(ctx, query)
	if err != nil {
		log.Error("Query embedding failed, returning no results", "error", err)
		return []vectorstore.Result{}, nil
	}

	hits, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: collectionName,
		Query:          qdrant.NewQuery(queryVector...),
		Limit:          qdrant.PtrOf(uint64(k)),
		ScoreThreshold: qdrant.PtrOf(float32(threshold)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		log.Error("Error querying Qdrant", "error", err)
		return nil, err
	}

	results := make([]vectorstore.Result, 0, len(hits))
	for _, hit := range hits {
		var meta document.Metadata
		if raw := hit.Payload["metadata"].GetStringValue(); raw != "" {
			if err := json.Unmarshal([]byte(raw), &meta); err != nil {
				log.Warn("Skipping hit with undecodable metadata", "error", err)
				continue
			}
		}
		results = append(results, vectorstore.Result{
			Content:    hit.Payload["content"].GetStringValue(),
			Meta:       meta,
			Similarity: float64(hit.Score),
		})
	}
	return results, nil
}

func (s *Store) Exists() bool {
	exists, err := s.client.CollectionExists(context.Background(), collectionName)
	if err != nil {
		logger.Error("could not check collection existence", "error", err)
		return false
	}
	return exists
}

func (s *Store) Count() int {
	count, err := s.client.Count(context.Background(), &qdrant.CountPoints{
		CollectionName: collectionName,
	})
	if err != nil {
		logger.Error("could not count collection points", "error", err)
		return 0
	}
	return int(count)
}
