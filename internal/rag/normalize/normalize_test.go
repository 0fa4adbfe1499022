package normalize

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"tablerag/internal/domain/document"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestNormalize_CSV(t *testing.T) {
	path := writeTempFile(t, "sales.csv",
		"Region,Revenue\nNorth,1200\nSouth,800\n")

	loader := NewLoader()
	units, strategy, err := loader.Normalize(path)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if strategy != "csv" {
		t.Errorf("strategy = %q, want csv", strategy)
	}
	if len(units) != 2 {
		t.Fatalf("expected 2 row units, got %d", len(units))
	}

	first := units[0]
	if !strings.HasPrefix(first.Content, "Row: 1\n") {
		t.Errorf("row unit should start with its row number, got %q", first.Content)
	}
	if !strings.Contains(first.Content, "Region: North") || !strings.Contains(first.Content, "Revenue: 1200") {
		t.Errorf("row unit missing field listing: %q", first.Content)
	}
	if first.Meta.RowNumber != 1 || first.Meta.Type != document.CSV {
		t.Errorf("unexpected metadata %+v", first.Meta)
	}
	if first.Meta.Fields["Revenue"] != "1200" {
		t.Errorf("fields map not populated: %+v", first.Meta.Fields)
	}
}

func TestNormalize_CSV_HeaderOnly(t *testing.T) {
	path := writeTempFile(t, "empty.csv", "Region,Revenue\n")

	loader := NewLoader()
	_, _, err := loader.Normalize(path)
	if !errors.Is(err, ErrNoUnits) {
		t.Errorf("header-only csv should yield ErrNoUnits, got %v", err)
	}
}

func TestNormalize_Excel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	_ = f.SetSheetName(sheet, "Vendite Q1")
	_ = f.SetSheetRow("Vendite Q1", "A1", &[]any{"Region", "Revenue"})
	_ = f.SetSheetRow("Vendite Q1", "A2", &[]any{"North", 1200})
	_ = f.SetSheetRow("Vendite Q1", "A3", &[]any{"South", 800})
	// a second, empty sheet must be skipped
	if _, err := f.NewSheet("Empty"); err != nil {
		t.Fatalf("creating sheet: %v", err)
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("saving workbook: %v", err)
	}
	_ = f.Close()

	loader := NewLoader()
	units, strategy, err := loader.Normalize(path)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if strategy != "excel" {
		t.Errorf("strategy = %q, want excel", strategy)
	}
	if len(units) != 1 {
		t.Fatalf("empty sheet should be skipped, got %d units", len(units))
	}

	u := units[0]
	if !strings.HasPrefix(u.Content, "# Sheet: Vendite Q1\n\n") {
		t.Errorf("sheet unit must start with its heading, got %q", u.Content[:40])
	}
	// markdown table with a leading 0-based row index column
	if !strings.Contains(u.Content, "| 0 | North | 1200 |") {
		t.Errorf("missing indexed data row in table:\n%s", u.Content)
	}
	if u.Meta.SheetName != "Vendite Q1" || u.Meta.NumRows != 2 {
		t.Errorf("unexpected metadata %+v", u.Meta)
	}
	if len(u.Meta.ColumnHeaders) != 2 || u.Meta.ColumnHeaders[0] != "Region" {
		t.Errorf("headers not captured: %v", u.Meta.ColumnHeaders)
	}
}

func TestNormalize_JSONArray(t *testing.T) {
	path := writeTempFile(t, "items.json",
		`[{"name":"alpha"},{"name":"beta"}]`)

	loader := NewLoader()
	units, strategy, err := loader.Normalize(path)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if strategy != "json" {
		t.Errorf("strategy = %q, want json", strategy)
	}
	// whole document plus one unit per array element
	if len(units) != 3 {
		t.Fatalf("expected 3 units, got %d", len(units))
	}
	if units[0].Meta.ItemNumber != 0 {
		t.Error("whole-document unit must not carry an item number")
	}
	if units[1].Meta.ItemNumber != 1 || units[2].Meta.ItemNumber != 2 {
		t.Errorf("item units misnumbered: %d, %d", units[1].Meta.ItemNumber, units[2].Meta.ItemNumber)
	}
	if !strings.Contains(units[2].Content, "beta") {
		t.Errorf("item unit content wrong: %q", units[2].Content)
	}
}

func TestNormalize_HTML(t *testing.T) {
	path := writeTempFile(t, "page.html",
		"<html><body><h1>Report</h1><p>Total revenue was 2000.</p></body></html>")

	loader := NewLoader()
	units, strategy, err := loader.Normalize(path)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if strategy != "xml" {
		t.Errorf("strategy = %q, want xml", strategy)
	}
	if len(units) != 1 {
		t.Fatalf("expected a single text unit, got %d", len(units))
	}
	if !strings.Contains(units[0].Content, "Total revenue was 2000.") {
		t.Errorf("extracted text missing body copy: %q", units[0].Content)
	}
}

func TestNormalize_PlainText(t *testing.T) {
	path := writeTempFile(t, "notes.txt",
		"First paragraph.\n\nSecond paragraph.\n")

	loader := NewLoader()
	units, strategy, err := loader.Normalize(path)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if strategy != "word" {
		t.Errorf("strategy = %q, want word", strategy)
	}
	if len(units) != 2 {
		t.Fatalf("expected one unit per paragraph, got %d", len(units))
	}
	if units[1].Meta.ParagraphNumber != 2 {
		t.Errorf("paragraph numbering wrong: %+v", units[1].Meta)
	}
}

func TestNormalize_UnsupportedExtension(t *testing.T) {
	path := writeTempFile(t, "image.png", "not really an image")

	loader := NewLoader()
	_, _, err := loader.Normalize(path)
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestDetectType(t *testing.T) {
	tests := []struct {
		path string
		want document.Type
	}{
		{"report.XLSX", document.Excel},
		{"data.csv", document.CSV},
		{"doc.docx", document.Word},
		{"file.pdf", document.PDF},
		{"conf.json", document.JSON},
		{"page.html", document.XML},
		{"blob.bin", document.ERR},
	}
	for _, tt := range tests {
		if got := DetectType(tt.path); got != tt.want {
			t.Errorf("DetectType(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
