package document

import (
	"errors"
	"fmt"
)

type Type string

const (
	Excel Type = "excel"
	Word  Type = "word"
	PDF   Type = "pdf"
	CSV   Type = "csv"
	JSON  Type = "json"
	XML   Type = "xml"
	ERR   Type = "error"
)

// Metadata carries everything needed to trace a chunk back to its origin and
// render a citation. Source and Type are required for every unit; the rest
// depends on the document type and is validated at normalization time.
type Metadata struct {
	Source string `json:"source"`
	Type   Type   `json:"document_type"`

	SheetName     string   `json:"sheet_name,omitempty"`
	NumRows       int      `json:"num_rows,omitempty"`
	ColumnHeaders []string `json:"column_headers,omitempty"`

	RowNumber       int               `json:"row_number,omitempty"`
	Fields          map[string]string `json:"fields,omitempty"`
	PageNumber      int               `json:"page_number,omitempty"`
	ParagraphNumber int               `json:"paragraph_number,omitempty"`
	ItemNumber      int               `json:"item_number,omitempty"`

	// Chunk tracking, set only when a unit was split further.
	ChunkIndex  int `json:"chunk_index,omitempty"`
	TotalChunks int `json:"total_chunks,omitempty"`
	StartIndex  int `json:"start_index,omitempty"`
}

// Unit is a normalized piece of a source document, pre-chunking.
type Unit struct {
	Content string   `json:"content"`
	Meta    Metadata `json:"metadata"`
}

// Chunk is the atomic retrievable unit. Immutable once embedded; updates
// replace-and-re-add rather than mutating in place.
type Chunk struct {
	Text string   `json:"text"`
	Meta Metadata `json:"metadata"`
}

func (m Metadata) Validate() error {
	if m.Source == "" {
		return errors.New("metadata missing source")
	}
	switch m.Type {
	case Excel:
		if m.SheetName == "" {
			return fmt.Errorf("excel unit from %s missing sheet name", m.Source)
		}
	case CSV:
		if m.RowNumber < 1 {
			return fmt.Errorf("csv unit from %s missing row number", m.Source)
		}
	case PDF:
		if m.PageNumber < 1 {
			return fmt.Errorf("pdf unit from %s missing page number", m.Source)
		}
	case Word:
		if m.ParagraphNumber < 1 {
			return fmt.Errorf("word unit from %s missing paragraph number", m.Source)
		}
	case JSON, XML:
		// whole-document units carry no positional fields
	default:
		return fmt.Errorf("unknown document type %q", m.Type)
	}
	return nil
}

// Citation renders a human-readable pointer back to the source location,
// e.g. `dati.xlsx, sheet "Vendite Q1"` or `orders.csv, row 23`.
func (m Metadata) Citation() string {
	loc := ""
	switch {
	case m.SheetName != "":
		loc = fmt.Sprintf(", sheet %q", m.SheetName)
	case m.RowNumber > 0:
		loc = fmt.Sprintf(", row %d", m.RowNumber)
	case m.PageNumber > 0:
		loc = fmt.Sprintf(", page %d", m.PageNumber)
	case m.ParagraphNumber > 0:
		loc = fmt.Sprintf(", paragraph %d", m.ParagraphNumber)
	case m.ItemNumber > 0:
		loc = fmt.Sprintf(", item %d", m.ItemNumber)
	}
	if m.TotalChunks > 1 {
		loc += fmt.Sprintf(" (part %d/%d)", m.ChunkIndex+1, m.TotalChunks)
	}
	return m.Source + loc
}
