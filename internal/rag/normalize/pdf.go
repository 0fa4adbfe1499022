package normalize

import (
	"errors"
	"fmt"
	"time"

	"github.com/dslipak/pdf"

	"tablerag/internal/config"
	"tablerag/internal/domain/document"
	"tablerag/pkg/logger_i"
)

// pdfStrategy emits one unit per page. Text extraction of a single mangled
// page can hang inside the parser, so each page runs behind a timeout and a
// bad page is skipped rather than failing the document.
type pdfStrategy struct{}

func (s *pdfStrategy) Name() string         { return "pdf" }
func (s *pdfStrategy) Extensions() []string { return []string{".pdf"} }

func (s *pdfStrategy) Normalize(path string) ([]document.Unit, error) {
	logger := logger_i.NewLogger("PDFLoader")

	f, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	var units []document.Unit
	numPages := f.NumPage()
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := protectExtract(page)
		if err != nil {
			logger.Error("Skipping unparsable page", "page", i, "error", err)
			continue
		}

		units = append(units, document.Unit{
			Content: content,
			Meta: document.Metadata{
				Source:     path,
				Type:       document.PDF,
				PageNumber: i,
			},
		})
	}
	return units, nil
}

func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(config.PageExtractTimeout):
		return "", errors.New("page extraction timeout")
	}
}
