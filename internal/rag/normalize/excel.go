package normalize

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"tablerag/internal/domain/document"
	"tablerag/pkg/logger_i"
)

// excelStrategy emits one unit per sheet: the whole sheet rendered as a
// markdown table under a heading naming the sheet. Keeping a sheet together
// preserves column/row relationships the model needs for aggregations; the
// chunker cuts oversized sheets afterwards.
type excelStrategy struct{}

func (s *excelStrategy) Name() string         { return "excel" }
func (s *excelStrategy) Extensions() []string { return []string{".xlsx", ".xls"} }

func (s *excelStrategy) Normalize(path string) ([]document.Unit, error) {
	logger := logger_i.NewLogger("ExcelLoader")

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	var units []document.Unit
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			// one bad sheet must not sink the workbook
			logger.Error("Skipping unreadable sheet", "sheet", sheet, "error", err)
			continue
		}
		if len(rows) == 0 {
			logger.Warn("Skipping empty sheet", "sheet", sheet)
			continue
		}

		headers := rows[0]
		body := rows[1:]

		content := fmt.Sprintf("# Sheet: %s\n\n%s", sheet, renderMarkdownTable(headers, body))
		units = append(units, document.Unit{
			Content: content,
			Meta: document.Metadata{
				Source:        path,
				Type:          document.Excel,
				SheetName:     sheet,
				NumRows:       len(body),
				ColumnHeaders: headers,
			},
		})
	}
	return units, nil
}

// renderMarkdownTable mirrors a dataframe-style dump: a leading index column
// with 0-based row numbers so answers can cite specific rows.
func renderMarkdownTable(headers []string, rows [][]string) string {
	var b strings.Builder

	b.WriteString("|   |")
	for _, h := range headers {
		b.WriteString(" " + h + " |")
	}
	b.WriteString("\n|---|")
	for range headers {
		b.WriteString("---|")
	}
	b.WriteString("\n")

	for i, row := range rows {
		fmt.Fprintf(&b, "| %d |", i)
		for c := range headers {
			cell := ""
			if c < len(row) {
				cell = row[c]
			}
			b.WriteString(" " + cell + " |")
		}
		b.WriteString("\n")
	}
	return b.String()
}
