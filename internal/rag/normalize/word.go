package normalize

import (
	"fmt"
	"strings"

	"github.com/lu4p/cat"

	"tablerag/internal/domain/document"
)

// wordStrategy reads .docx/.odt/.rtf/plaintext and emits one unit per
// non-empty paragraph. Word processors don't expose stable page numbers, so
// the paragraph index is the citation anchor here.
type wordStrategy struct{}

func (s *wordStrategy) Name() string { return "word" }
func (s *wordStrategy) Extensions() []string {
	return []string{".docx", ".doc", ".odt", ".rtf", ".txt"}
}

func (s *wordStrategy) Normalize(path string) ([]document.Unit, error) {
	text, err := cat.File(path)
	if err != nil {
		return nil, fmt.Errorf("failed to extract document text: %w", err)
	}

	var units []document.Unit
	paraNum := 0
	for _, para := range strings.Split(text, "\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		paraNum++
		units = append(units, document.Unit{
			Content: para,
			Meta: document.Metadata{
				Source:          path,
				Type:            document.Word,
				ParagraphNumber: paraNum,
			},
		})
	}
	return units, nil
}
