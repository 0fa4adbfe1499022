package llm

import (
	"fmt"
	"strings"
)

// SystemInstruction frames the model as a tabular-data analyst and pins it to
// the retrieved context so it cannot freelance past the indexed documents.
const SystemInstruction = `You are an expert data analyst answering questions about tabular documents (spreadsheets, CSV exports and similar structured files).

Use ONLY the context below to answer. The context contains rows and sheets extracted from the user's documents; treat column headers and sheet names as authoritative.

Rules:
- If the answer is in the context, answer precisely and cite the values you used.
- If the context does not contain the answer, say that the indexed documents do not contain this information. Do not invent numbers.
- When the question asks for aggregations (totals, averages, comparisons), compute them from the rows in the context and show the figures you combined.
- Answer in the same language as the question.`

// BuildUserPrompt stuffs every retrieved match into a single prompt.
func BuildUserPrompt(query string, matches []string) string {
	return fmt.Sprintf("Context:\n%s\n\nUser Question: %s", strings.Join(matches, "\n\n---\n\n"), query)
}
