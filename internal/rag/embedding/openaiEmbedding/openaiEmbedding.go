package openaiEmbedding

import (
	"context"
	"errors"
	"sync"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"tablerag/internal/config"
	"tablerag/internal/customHttpClient"
	"tablerag/internal/rag/embedding"
	"tablerag/pkg/logger_i"
)

var logger *logger_i.Logger
var once sync.Once
var embeddingClient *client

type client struct {
	api   openai.Client
	model string
}

func GetOpenAIEmbeddingClient(modelName string, apikey string) embedding.Embedder {
	once.Do(func() {
		logger = logger_i.NewLogger("openai_embedding")
		if apikey == "" {
			logger.Error("OpenAI API key is missing")
			return
		}
		embeddingClient = &client{
			api: openai.NewClient(
				option.WithAPIKey(apikey),
				option.WithHTTPClient(customHttpClient.NewPooledClient()),
				option.WithMaxRetries(config.ProviderMaxRetries),
				option.WithRequestTimeout(config.ProviderCallTimeout),
			),
			model: modelName,
		}
		logger.Info("OpenAI embedding client created", "model", modelName)
	})

	//if init failed we return nil so main can refuse to start
	if embeddingClient == nil {
		return nil
	}
	return &client{api: embeddingClient.api, model: embeddingClient.model}
}

func (c *client) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	res, err := c.api.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfString: openai.String(query)},
		Model: openai.EmbeddingModel(c.model),
	})
	if err != nil {
		logger.Error("Error getting embedding from OpenAI", "error", err.Error())
		return nil, err
	}
	if len(res.Data) == 0 {
		return nil, errors.New("empty embedding response")
	}
	return toFloat32(res.Data[0].Embedding), nil
}

// BatchEmbedding embeds texts in provider-sized batches. Order in equals
// order out; any batch failure fails the whole call so a partially embedded
// document never reaches the index.
func (c *client) BatchEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))

	for start := 0; start < len(texts); start += config.EmbeddingBatchSize {
		end := start + config.EmbeddingBatchSize
		if end > len(texts) {
			end = len(texts)
		}

		res, err := c.api.Embeddings.New(ctx, openai.EmbeddingNewParams{
			Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts[start:end]},
			Model: openai.EmbeddingModel(c.model),
		})
		if err != nil {
			logger.Error("Error getting batch embeddings from OpenAI", "error", err.Error(), "batchStart", start)
			return nil, err
		}
		if len(res.Data) != end-start {
			return nil, errors.New("embedding count mismatch in batch response")
		}
		for _, d := range res.Data {
			vectors = append(vectors, toFloat32(d.Embedding))
		}
	}
	return vectors, nil
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, f := range v {
		out[i] = float32(f)
	}
	return out
}
