package chunker

import (
	"strings"
	"unicode/utf8"

	"tablerag/internal/domain/document"
)

// Separators ordered from "best" to "worst" for semantic meaning. Markdown
// headings and table delimiters come first because sheet units are rendered
// as markdown tables; the empty string is the hard-cut last resort.
var separators = []string{"# ", "##", "###", "\n\n", "\n", "\t", "|", ",", ";", " ", ""}

// Piece is one chunk of a split text plus its rune offset in the source.
type Piece struct {
	Text       string
	StartIndex int
}

// Split cuts text into pieces of at most size characters. Size, overlap and
// offsets are measured in runes, never bytes, so multi-byte text is never cut
// mid-character. Texts small enough to fit in two chunks are returned whole:
// fragmenting an already-small unit costs retrieval quality for nothing. Each
// piece after the first starts with the trailing overlap characters of the
// previous piece's source span, so context that straddles a boundary appears
// on both sides. Deterministic for fixed input and parameters.
func Split(text string, size, overlap int) []Piece {
	if size <= 0 {
		size = 1
	}
	if overlap >= size {
		overlap = size / 4
	}
	runes := []rune(text)
	if len(runes) <= size*2 {
		return []Piece{{Text: text, StartIndex: 0}}
	}

	var pieces []Piece
	start := 0
	for start < len(runes) {
		end := start + size
		if end >= len(runes) {
			pieces = append(pieces, Piece{Text: string(runes[start:]), StartIndex: start})
			break
		}

		cut := cutPoint(runes, start, end)
		pieces = append(pieces, Piece{Text: string(runes[start:cut]), StartIndex: start})

		next := cut - overlap
		if next <= start {
			next = cut
		}
		start = next
	}
	return pieces
}

// cutPoint picks the boundary for the chunk starting at start, trying each
// separator in priority order within the window. A cut in the first half of
// the window is rejected so a stray heading near the start cannot produce
// degenerate slivers; with no usable separator the window is cut hard. All
// indices are rune offsets into the source.
func cutPoint(runes []rune, start, end int) int {
	window := string(runes[start:end])
	for _, sep := range separators {
		if sep == "" {
			break
		}
		idx := strings.LastIndex(window, sep)
		if idx < 0 {
			continue
		}
		cut := start + utf8.RuneCountInString(window[:idx+len(sep)])
		if cut-start > (end-start)/2 {
			return cut
		}
	}
	return end
}

// ChunkUnit splits a normalized unit into chunks, inheriting its metadata.
// Chunk-tracking fields are only set when the unit actually got split.
func ChunkUnit(u document.Unit, size, overlap int) []document.Chunk {
	pieces := Split(u.Content, size, overlap)
	if len(pieces) == 1 {
		return []document.Chunk{{Text: u.Content, Meta: u.Meta}}
	}

	chunks := make([]document.Chunk, 0, len(pieces))
	for i, p := range pieces {
		meta := u.Meta
		meta.ChunkIndex = i
		meta.TotalChunks = len(pieces)
		meta.StartIndex = p.StartIndex
		chunks = append(chunks, document.Chunk{Text: p.Text, Meta: meta})
	}
	return chunks
}

// ChunkUnits runs ChunkUnit over a batch, dropping units with empty content.
func ChunkUnits(units []document.Unit, size, overlap int) []document.Chunk {
	var chunks []document.Chunk
	for _, u := range units {
		if strings.TrimSpace(u.Content) == "" {
			continue
		}
		chunks = append(chunks, ChunkUnit(u, size, overlap)...)
	}
	return chunks
}
