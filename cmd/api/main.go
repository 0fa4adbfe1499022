// @title           Tabular RAG API
// @version         1.0
// @description     Question answering over tabular documents with retrieval-augmented generation
// @termsOfService  http://swagger.io/terms/

// @contact.name    API Support
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"

	"tablerag/internal/config"
	"tablerag/internal/data/store"
	jobmodel "tablerag/internal/domain/jobModel"
	"tablerag/internal/handlers"
	"tablerag/internal/job"
	"tablerag/internal/rag"
	"tablerag/internal/rag/embedding"
	"tablerag/internal/rag/embedding/googleEmbedding"
	"tablerag/internal/rag/embedding/openaiEmbedding"
	"tablerag/internal/rag/llm"
	"tablerag/internal/rag/llm/gemini"
	"tablerag/internal/rag/llm/openaiLLM"
	"tablerag/internal/rag/normalize"
	"tablerag/internal/rag/vectorstore"
	"tablerag/internal/rag/vectorstore/localstore"
	"tablerag/internal/rag/vectorstore/qdrantstore"
	"tablerag/internal/server"
	"tablerag/internal/worker"
	"tablerag/pkg/logger_i"
)

var (
	listenAddr        string
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {
	//.env is optional, real deployments set the environment directly
	_ = godotenv.Load()
	config.Load()

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init job service and job store
	var jobStore jobmodel.JobStore
	if rs := store.GetRedisJobStore(serviceContext); rs != nil {
		jobStore = rs
	} else {
		logger.Error("Redis job store is offline, falling back to in-memory store")
		jobStore = store.InitInMemoryJobStore()
	}
	service := job.InitJobService(job.ServiceConfig{
		JobChannel: jobChannel,
		JobStore:   jobStore,
	})
	logger.Info("Starting job service")

	embedder := buildEmbedder(serviceContext)
	llmProvider := buildLLMProvider(serviceContext)

	if embedder == nil || llmProvider == nil {
		logger.Error("One or more external services failed to initialize. Shutting down.",
			"EmbeddingService", embedder != nil, "LLMProvider", llmProvider != nil)
		return
	}

	index := buildVectorIndex(serviceContext, embedder)
	if index == nil {
		logger.Error("Vector backend failed to initialize. Shutting down.", "backend", config.VectorBackend)
		return
	}

	ragService := rag.NewService(index, llmProvider, normalize.NewLoader())
	ragService.Initialize(serviceContext)

	handlers.InitJobHandler(service, ragService)

	//single index worker, the vector store has one writer
	worker.InitServices(service, ragService)
	worker.InitIndexWorker(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}

func buildEmbedder(ctx context.Context) embedding.Embedder {
	if config.EmbeddingProvider == "gemini" {
		return googleEmbedding.GetGoogleEmbeddingClient(ctx, config.GoogleEmbeddingModel, config.GoogleAPIKey)
	}
	return openaiEmbedding.GetOpenAIEmbeddingClient(config.EmbeddingModel, config.OpenAIAPIKey)
}

func buildLLMProvider(ctx context.Context) llm.Provider {
	if config.LLMProvider == "gemini" {
		return gemini.GetGeminiClient(ctx, config.GeminiModelName, config.GoogleAPIKey)
	}
	return openaiLLM.GetOpenAIClient(config.LLMModel, config.OpenAIAPIKey)
}

func buildVectorIndex(ctx context.Context, embedder embedding.Embedder) vectorstore.Index {
	if config.VectorBackend == "qdrant" {
		return qdrantstore.GetQdrantStore(ctx, embedder)
	}
	return localstore.New(config.VectorStorePath, embedder)
}
