package adapter

import (
	"testing"

	"tablerag/internal/domain/document"
	"tablerag/internal/rag"
)

func TestToQueryResponse_DedupsCitations(t *testing.T) {
	ans := rag.Answer{
		Answer: "North leads",
		Sources: []rag.Source{
			{Content: "chunk a", Metadata: document.Metadata{Source: "sales.csv", Type: document.CSV, RowNumber: 1}},
			{Content: "chunk b", Metadata: document.Metadata{Source: "sales.csv", Type: document.CSV, RowNumber: 1}},
			{Content: "chunk c", Metadata: document.Metadata{Source: "sales.csv", Type: document.CSV, RowNumber: 2}},
		},
	}

	resp := ToQueryResponse("which region leads?", ans)

	if len(resp.Sources) != 3 {
		t.Errorf("sources must pass through verbatim, got %d", len(resp.Sources))
	}
	want := []string{"sales.csv, row 1", "sales.csv, row 2"}
	if len(resp.Citations) != len(want) {
		t.Fatalf("Citations = %v, want %v", resp.Citations, want)
	}
	for i := range want {
		if resp.Citations[i] != want[i] {
			t.Errorf("Citations[%d] = %q, want %q", i, resp.Citations[i], want[i])
		}
	}
}

func TestToInitJobResponse_StatusURL(t *testing.T) {
	resp := ToInitJobResponse("job_cz109")
	if resp.StatusURL != "jobs/job_cz109" {
		t.Errorf("StatusURL = %q", resp.StatusURL)
	}
}
