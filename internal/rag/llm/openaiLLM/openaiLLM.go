package openaiLLM

import (
	"context"
	"errors"
	"sync"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"tablerag/internal/config"
	"tablerag/internal/customHttpClient"
	"tablerag/internal/rag/llm"
	"tablerag/pkg/logger_i"
)

var logger *logger_i.Logger
var once sync.Once
var openaiClient *llmClient

type llmClient struct {
	api       openai.Client
	modelName string
}

func GetOpenAIClient(modelName string, apikey string) llm.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_openai")
		if apikey == "" {
			logger.Error("OpenAI API key is missing")
			return
		}
		openaiClient = &llmClient{
			api: openai.NewClient(
				option.WithAPIKey(apikey),
				option.WithHTTPClient(customHttpClient.NewPooledClient()),
				option.WithMaxRetries(config.ProviderMaxRetries),
				option.WithRequestTimeout(config.ProviderCallTimeout),
			),
			modelName: modelName,
		}
		logger.Info("OpenAI LLM client created", "model", modelName)
	})

	if openaiClient == nil {
		return nil
	}
	return &llmClient{api: openaiClient.api, modelName: openaiClient.modelName}
}

func (c *llmClient) Generate(ctx context.Context, query string, matches []string) (string, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	res, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(llm.SystemInstruction),
			openai.UserMessage(llm.BuildUserPrompt(query, matches)),
		},
		Temperature: openai.Float(config.ModelTemperature),
	})
	if err != nil {
		log.Error("Error generating answer from OpenAI", "error", err.Error())
		return "", err
	}
	if len(res.Choices) == 0 {
		return "", errors.New("empty completion response")
	}
	return res.Choices[0].Message.Content, nil
}
