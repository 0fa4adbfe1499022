package gemini

import (
	"context"
	"sync"

	"google.golang.org/genai"

	"tablerag/internal/config"
	"tablerag/internal/rag/llm"
	"tablerag/pkg/logger_i"
)

type llmClient struct {
	client    *genai.Client
	modelName string
}

var logger *logger_i.Logger
var geminiClient *llmClient
var once sync.Once

func GetGeminiClient(ctx context.Context, modelName string, apikey string) llm.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_gemini")
		newGeminiClient(ctx, modelName, apikey)
	})

	if geminiClient == nil {
		return nil
	}
	return &llmClient{client: geminiClient.client, modelName: geminiClient.modelName}
}

func newGeminiClient(ctx context.Context, modelName string, apikey string) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		logger.Error("Error creating Gemini client", "error", err)
	}
	if c != nil {
		geminiClient = &llmClient{client: c, modelName: modelName}
		logger.Info("Gemini client created", "model", modelName)
		go closeClient(ctx, geminiClient)
	}
}

func (c *llmClient) Generate(ctx context.Context, query string, matches []string) (string, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	temperature := float32(config.ModelTemperature)
	contentConfig := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: llm.SystemInstruction}},
		},
		Temperature: &temperature,
	}

	ctx, cancel := context.WithTimeout(ctx, config.ProviderCallTimeout)
	defer cancel()

	result, err := c.client.Models.GenerateContent(
		ctx,
		c.modelName,
		genai.Text(llm.BuildUserPrompt(query, matches)),
		contentConfig,
	)
	if err != nil {
		log.Error("Error generating answer from Gemini", "error", err.Error())
		return "", err
	}
	return result.Text(), nil
}

func closeClient(ctx context.Context, llm *llmClient) {
	<-ctx.Done()
	logger.Info("Closing Gemini client")
	llm.client = nil
	llm.modelName = ""
}
