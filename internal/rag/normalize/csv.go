package normalize

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"tablerag/internal/domain/document"
	"tablerag/pkg/logger_i"
)

// csvStrategy emits one unit per data row as a field:value listing. Every
// field value also lands in the metadata so row-level filters stay possible.
type csvStrategy struct{}

func (s *csvStrategy) Name() string         { return "csv" }
func (s *csvStrategy) Extensions() []string { return []string{".csv"} }

func (s *csvStrategy) Normalize(path string) ([]document.Unit, error) {
	logger := logger_i.NewLogger("CSVLoader")

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) < 2 {
		// header only, or nothing at all
		return nil, nil
	}

	headers := records[0]
	var units []document.Unit
	for i, row := range records[1:] {
		rowNum := i + 1

		var b strings.Builder
		fields := make(map[string]string, len(headers))
		fmt.Fprintf(&b, "Row: %d\n", rowNum)
		for c, h := range headers {
			val := ""
			if c < len(row) {
				val = row[c]
			}
			fmt.Fprintf(&b, "%s: %s\n", h, val)
			fields[h] = val
		}

		units = append(units, document.Unit{
			Content: b.String(),
			Meta: document.Metadata{
				Source:        path,
				Type:          document.CSV,
				RowNumber:     rowNum,
				ColumnHeaders: headers,
				Fields:        fields,
			},
		})
	}
	logger.Debug("Parsed csv", "path", path, "rows", len(units))
	return units, nil
}
