package googleEmbedding

import (
	"context"
	"errors"
	"sync"
	"time"

	"google.golang.org/genai"

	"tablerag/internal/config"
	"tablerag/internal/rag/embedding"
	"tablerag/pkg/logger_i"
)

var logger *logger_i.Logger
var once sync.Once
var embeddingClient *client
var dimension int32

type client struct {
	genAi *genai.Client
	model string
}

func newGoogleEmbedder(ctx context.Context, modelName string, apikey string) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		logger.Error("Error creating Google Embedding client", "error", err)
	}
	if c != nil {
		embeddingClient = &client{
			genAi: c,
			model: modelName,
		}
		logger.Info("Google Embedding client created", "model", modelName)
		go closeClient(ctx, embeddingClient)
	}
}

func closeClient(ctx context.Context, embeddingClient *client) {
	<-ctx.Done()
	logger.Info("Closing Google Embedding client")
	embeddingClient.genAi = nil
	embeddingClient.model = ""
}

func GetGoogleEmbeddingClient(ctx context.Context, modelName string, apikey string) embedding.Embedder {
	once.Do(func() {
		logger = logger_i.NewLogger("google_embedding")
		dimension = config.EmbeddingOutputDimensionality
		newGoogleEmbedder(ctx, modelName, apikey)
	})

	//if init still fails
	if embeddingClient == nil {
		return nil
	}
	return &client{genAi: embeddingClient.genAi, model: embeddingClient.model}
}

func (c *client) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	result, err := c.doCall(ctx, genai.Text(query))
	if err != nil {
		logger.Error("Error getting Embedding from Google", "error", err.Error())
		return nil, err
	}
	if len(result.Embeddings) == 0 {
		return nil, errors.New("empty embedding response")
	}
	return result.Embeddings[0].Values, nil
}

func (c *client) BatchEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))

	for start := 0; start < len(texts); start += config.EmbeddingBatchSize {
		end := start + config.EmbeddingBatchSize
		if end > len(texts) {
			end = len(texts)
		}

		res, err := c.doCall(ctx, getContent(texts[start:end]))
		if err != nil && doRetry(err, logger) {
			// rate limit, one blind retry after backing off
			time.Sleep(5 * time.Second)
			res, err = c.doCall(ctx, getContent(texts[start:end]))
		}
		if err != nil {
			logger.Error("Error getting batch Embeddings from Google", "error", err.Error(), "batchStart", start)
			return nil, err
		}
		if len(res.Embeddings) != end-start {
			return nil, errors.New("embedding count mismatch in batch response")
		}
		for _, r := range res.Embeddings {
			vectors = append(vectors, r.Values)
		}
	}
	return vectors, nil
}

func (c *client) doCall(ctx context.Context, content []*genai.Content) (*genai.EmbedContentResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, config.ProviderCallTimeout)
	defer cancel()
	return c.genAi.Models.EmbedContent(ctx, c.model, content, &genai.EmbedContentConfig{OutputDimensionality: &dimension, TaskType: "RETRIEVAL_DOCUMENT"})
}
