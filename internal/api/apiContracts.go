package api

import (
	"encoding/json"
	"math"
	"time"

	"tablerag/internal/domain/document"
)

type RagStatus string

const (
	RagStatusNotFound      RagStatus = "vector_store_not_found"
	RagStatusUninitialized RagStatus = "present_but_uninitialized"
	RagStatusReady         RagStatus = "initialized_and_ready"
)

// JsonFloat marshals NaN and infinities as null instead of breaking the
// encoder; similarity math on degenerate vectors can produce both.
type JsonFloat float64

func (f JsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// responses---------------------

// SourceDoc is one retrieved chunk exactly as it fed the prompt.
type SourceDoc struct {
	Content  string            `json:"content"`
	Metadata document.Metadata `json:"metadata"`
}

type QueryResponse struct {
	Query     string      `json:"query"`
	Answer    string      `json:"answer"`
	Sources   []SourceDoc `json:"sources"`
	Citations []string    `json:"citations"`
}

type SearchHit struct {
	Content         string            `json:"content"`
	Metadata        document.Metadata `json:"metadata"`
	SimilarityScore JsonFloat         `json:"similarity_score"`
}

type SearchResponse struct {
	Query   string      `json:"query"`
	Results []SearchHit `json:"results"`
	Count   int         `json:"count"`
}

type StatusResponse struct {
	ServerStatus      string    `json:"server_status" example:"ok"`
	Status            string    `json:"status" example:"ready"`
	RagStatus         RagStatus `json:"rag_status" example:"initialized_and_ready"`
	VectorStoreExists bool      `json:"vector_store_exists"`
	VectorStorePath   string    `json:"vector_store_path,omitempty"`
	IndexedChunks     int       `json:"indexed_chunks"`
	EmbeddingProvider string    `json:"embedding_provider" example:"openai"`
	LLMProvider       string    `json:"llm_provider" example:"openai"`
}

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type IndexReport struct {
	FileName      string `json:"file_name"`
	DocumentType  string `json:"document_type,omitempty"`
	UnitsLoaded   int    `json:"units_loaded,omitempty"`
	ChunksIndexed int    `json:"chunks_indexed,omitempty"`
}

type Result struct {
	Status      string       `json:"status"`
	Step        string       `json:"step,omitempty"`
	IndexReport *IndexReport `json:"index_report,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

// requests---------------------

type QueryRequest struct {
	Query string `json:"query" validate:"required"`
}
