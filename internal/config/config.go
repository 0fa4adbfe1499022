package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 30 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":8000"

	//indexing job buffer limit
	BufferLimit = 100

	//budget for one whole indexing job, normalization included
	IndexJobTimeout = 10 * time.Minute

	//external call budget: bounded timeout, fixed retry count
	ProviderCallTimeout = 60 * time.Second
	ProviderMaxRetries  = 3
	EmbeddingBatchSize  = 100

	//vector store companion artifacts
	VectorIndexFileName = "index.gob"
	DocstoreFileName    = "docstore.json"

	//qdrant (optional backend)
	QdrantCollectionName   = "tablerag-chunks"
	QdrantGrpcPort         = 6334
	QdrantUseTLS           = false
	QdrantPoolSize         = 1
	QdrantKeepAliveTimeout = 30 * time.Second

	ModelTemperature = 0.1

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	RedisAddr     = "127.0.0.1:6379"
	RedisJobStore = 0

	RedisJobStoreTTL = 24 * time.Hour

	//pdf page extraction guard
	PageExtractTimeout = 10 * time.Second
)

// Tunables recognized from the environment. Loaded once at startup; the
// defaults mirror the constants the rest of the code reads.
var (
	EmbeddingProvider = "openai" // openai | gemini
	LLMProvider       = "openai" // openai | gemini

	EmbeddingModel = "text-embedding-3-large"
	LLMModel       = "gpt-4o"

	GeminiModelName      = "gemini-2.5-flash"
	GoogleEmbeddingModel = "gemini-embedding-001"

	EmbeddingOutputDimensionality int32 = 1536

	ChunkSize           = 256
	ChunkOverlap        = 64
	MaxResults          = 15
	SimilarityThreshold = 0.4

	VectorStorePath = "data/vector_store"
	VectorBackend   = "local" // local | qdrant

	OpenAIAPIKey = ""
	GoogleAPIKey = ""

	AuthToken    = ""
	NoAuthBypass = true

	RedisPassword = ""
)

// Load applies environment overrides. Call after godotenv has populated the
// process environment.
func Load() {
	EmbeddingProvider = getEnv("EMBEDDING_PROVIDER", EmbeddingProvider)
	LLMProvider = getEnv("LLM_PROVIDER", LLMProvider)
	EmbeddingModel = getEnv("EMBEDDING_MODEL", EmbeddingModel)
	LLMModel = getEnv("LLM_MODEL", LLMModel)

	ChunkSize = getEnvInt("CHUNK_SIZE", ChunkSize)
	ChunkOverlap = getEnvInt("CHUNK_OVERLAP", ChunkOverlap)
	if ChunkOverlap >= ChunkSize {
		ChunkOverlap = ChunkSize / 4
	}
	MaxResults = getEnvInt("MAX_RESULTS", MaxResults)
	SimilarityThreshold = getEnvFloat("SIMILARITY_THRESHOLD", SimilarityThreshold)

	VectorStorePath = getEnv("VECTOR_STORE_PATH", VectorStorePath)
	VectorBackend = getEnv("VECTOR_BACKEND", VectorBackend)

	OpenAIAPIKey = getEnv("OPENAI_API_KEY", OpenAIAPIKey)
	GoogleAPIKey = getEnv("GOOGLE_API_KEY", GoogleAPIKey)

	AuthToken = getEnv("AUTH_TOKEN", AuthToken)
	NoAuthBypass = AuthToken == ""

	RedisPassword = getEnv("REDIS_PASSWORD", RedisPassword)
}

func LogLevel() slog.Level {
	if IS_PROD {
		return LOG_LEVEL_PROD
	}
	switch getEnv("LOG_LEVEL", "DEBUG") {
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
