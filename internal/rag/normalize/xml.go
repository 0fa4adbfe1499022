package normalize

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html"

	"tablerag/internal/domain/document"
)

// xmlStrategy handles xml and html by stripping markup and keeping the text
// content as a single unit. The html parser is forgiving enough to accept
// most real-world xml as well.
type xmlStrategy struct{}

func (s *xmlStrategy) Name() string         { return "xml" }
func (s *xmlStrategy) Extensions() []string { return []string{".xml", ".html"} }

func (s *xmlStrategy) Normalize(path string) ([]document.Unit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xml: %w", err)
	}
	defer f.Close()

	root, err := html.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse xml: %w", err)
	}

	var b strings.Builder
	collectText(root, &b)
	text := strings.TrimSpace(b.String())
	if text == "" {
		return nil, nil
	}

	return []document.Unit{{
		Content: text,
		Meta:    document.Metadata{Source: path, Type: document.XML},
	}}, nil
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			b.WriteString(t)
			b.WriteString("\n")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}
