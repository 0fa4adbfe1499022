package api

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestJsonFloat_DegenerateValues(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"normal value", 0.42, "0.42"},
		{"NaN becomes null", math.NaN(), "null"},
		{"+Inf becomes null", math.Inf(1), "null"},
		{"-Inf becomes null", math.Inf(-1), "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(JsonFloat(tt.value))
			if err != nil {
				t.Fatalf("marshal failed: %v", err)
			}
			if string(raw) != tt.want {
				t.Errorf("got %s, want %s", raw, tt.want)
			}
		})
	}
}

func TestSearchResponse_MarshalsWithNaNScore(t *testing.T) {
	resp := SearchResponse{
		Query: "q",
		Results: []SearchHit{
			{Content: "x", SimilarityScore: JsonFloat(math.NaN())},
		},
		Count: 1,
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("a NaN score must not break response encoding: %v", err)
	}
	if !strings.Contains(string(raw), `"similarity_score":null`) {
		t.Errorf("NaN score should serialize as null: %s", raw)
	}
}
