package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"tablerag/internal/adapter"
	"tablerag/internal/api"
	"tablerag/internal/config"
	"tablerag/pkg/logger_i"
)

var logRH *logger_i.Logger

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// PostQueryHandler godoc
// @Summary      Ask a question about the indexed documents
// @Description  Runs similarity search over the vector index and generates an answer with source citations. Synchronous; responds when the answer is ready.
// @Tags         Query
// @Accept       json
// @Produce      json
// @Param        request  body      api.QueryRequest   true  "The question to answer"
// @Success      200      {object}  api.QueryResponse  "Answer with sources"
// @Failure      400      {object}  api.JobResponse    "Empty or malformed query"
// @Failure      500      {object}  api.QueryResponse  "A pipeline step failed; the answer field carries the error text"
// @Failure      503      {object}  api.JobResponse    "No documents have been indexed yet"
// @Router       /query [post]
func PostQueryHandler(w http.ResponseWriter, request *http.Request) {
	if !validateContext(request.Context()) {
		logRH.Warn("Invalid Context by request", "remote", request.RemoteAddr)
		return
	}

	var requestData api.QueryRequest
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			logRH.Error("Couldn't close the query request reader", "error", err)
		}
	}(request.Body)
	if err := json.NewDecoder(request.Body).Decode(&requestData); err != nil || strings.TrimSpace(requestData.Query) == "" {
		logRH.Warn("Bad Query Request", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, "", "query is required")
		return
	}

	ragService := getRagService()
	if ragService == nil || !ragService.Ready() {
		WriteErrorResponse(w, http.StatusServiceUnavailable, "", "No documents indexed yet. Upload a document via /index first.")
		return
	}

	answer := ragService.Answer(request.Context(), requestData.Query)
	status := http.StatusOK
	if strings.HasPrefix(answer.Answer, "Error:") {
		status = http.StatusInternalServerError
	}
	writeJsonResponse(w, status, adapter.ToQueryResponse(requestData.Query, answer))
}

// GetSearchHandler godoc
// @Summary      Raw similarity search
// @Description  Returns the chunks most similar to the query with their metadata and scores, skipping answer generation. An empty index yields an empty result list, not an error.
// @Tags         Query
// @Produce      json
// @Param        q    query     string  true  "Search text"
// @Success      200  {object}  api.SearchResponse
// @Failure      400  {object}  api.JobResponse  "Missing q parameter"
// @Failure      500  {object}  api.JobResponse  "Embedding the query failed"
// @Router       /search [get]
func GetSearchHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request", "remote", r.RemoteAddr)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "", "q parameter is required")
		return
	}

	ragService := getRagService()
	if ragService == nil {
		WriteErrorResponse(w, http.StatusServiceUnavailable, "", "Service is starting up")
		return
	}

	results, err := ragService.Search(r.Context(), query)
	if err != nil {
		logRH.Error("Search failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "", "Search failed")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToSearchResponse(query, results))
}

// GetStatusHandler godoc
// @Summary      Service health and index readiness
// @Tags         Status
// @Produce      json
// @Success      200  {object}  api.StatusResponse
// @Router       /status [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	ragStatus := api.RagStatusNotFound
	readiness := "not_ready"
	storeExists := false
	chunks := 0
	if svc := getRagService(); svc != nil {
		storeExists = svc.StoreExists()
		switch {
		case svc.Ready():
			ragStatus = api.RagStatusReady
			readiness = "ready"
			chunks = svc.IndexedChunks()
		case storeExists:
			ragStatus = api.RagStatusUninitialized
		}
	}

	writeJsonResponse(w, http.StatusOK, api.StatusResponse{
		ServerStatus:      "ok",
		Status:            readiness,
		RagStatus:         ragStatus,
		VectorStoreExists: storeExists,
		VectorStorePath:   config.VectorStorePath,
		IndexedChunks:     chunks,
		EmbeddingProvider: config.EmbeddingProvider,
		LLMProvider:       config.LLMProvider,
	})
}
