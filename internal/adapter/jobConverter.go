package adapter

import (
	"fmt"
	"time"

	"tablerag/internal/api"
	"tablerag/internal/domain/jobModel"
	"tablerag/internal/rag"
	"tablerag/internal/rag/vectorstore"
)

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("jobs/%s", id),
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {
	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	result := api.Result{
		Status:      string(job.Status),
		Step:        string(job.CurrentStep),
		IndexReport: toIndexReport(job.JobPayload),
	}

	return api.JobResponse{
		Id:        job.Id,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
		Result:    result,
	}
}

func toIndexReport(payload jobModel.JobPayload) *api.IndexReport {
	if payload.FileName == "" {
		return nil
	}
	return &api.IndexReport{
		FileName:      payload.FileName,
		DocumentType:  payload.DocumentType,
		UnitsLoaded:   payload.UnitsLoaded,
		ChunksIndexed: payload.ChunksIndexed,
	}
}

// ToQueryResponse passes the sources through verbatim and derives a
// deduplicated citation list from their metadata.
func ToQueryResponse(query string, ans rag.Answer) api.QueryResponse {
	sources := make([]api.SourceDoc, len(ans.Sources))
	seen := make(map[string]bool, len(ans.Sources))
	citations := make([]string, 0, len(ans.Sources))
	for i, s := range ans.Sources {
		sources[i] = api.SourceDoc{Content: s.Content, Metadata: s.Metadata}
		if c := s.Metadata.Citation(); c != "" && !seen[c] {
			seen[c] = true
			citations = append(citations, c)
		}
	}
	return api.QueryResponse{
		Query:     query,
		Answer:    ans.Answer,
		Sources:   sources,
		Citations: citations,
	}
}

func ToSearchResponse(query string, results []vectorstore.Result) api.SearchResponse {
	hits := make([]api.SearchHit, len(results))
	for i, r := range results {
		hits[i] = api.SearchHit{
			Content:         r.Content,
			Metadata:        r.Meta,
			SimilarityScore: api.JsonFloat(r.Similarity),
		}
	}
	return api.SearchResponse{Query: query, Results: hits, Count: len(hits)}
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status: string(jobModel.JobStatusError),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
