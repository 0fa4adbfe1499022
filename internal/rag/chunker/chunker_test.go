package chunker

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"tablerag/internal/domain/document"
)

func TestSplit_SmallTextKeptWhole(t *testing.T) {
	text := strings.Repeat("a", 200)

	pieces := Split(text, 100, 20)
	if len(pieces) != 1 {
		t.Fatalf("text of len %d with size 100 should stay whole, got %d pieces", len(text), len(pieces))
	}
	if pieces[0].Text != text || pieces[0].StartIndex != 0 {
		t.Error("whole piece must be the unmodified input at offset 0")
	}
}

func TestSplit_PieceInvariants(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("Row: ")
		b.WriteString(strings.Repeat("x", 17))
		b.WriteString("\n")
	}
	text := b.String()
	size, overlap := 100, 20

	pieces := Split(text, size, overlap)
	if len(pieces) < 2 {
		t.Fatalf("expected multiple pieces for len %d, got %d", len(text), len(pieces))
	}

	for i, p := range pieces {
		if len(p.Text) > size {
			t.Errorf("piece %d has len %d > size %d", i, len(p.Text), size)
		}
		if got := text[p.StartIndex : p.StartIndex+len(p.Text)]; got != p.Text {
			t.Errorf("piece %d text does not match its source span", i)
		}
	}

	// consecutive pieces overlap or touch, never leave a gap
	for i := 1; i < len(pieces); i++ {
		prevEnd := pieces[i-1].StartIndex + len(pieces[i-1].Text)
		if pieces[i].StartIndex > prevEnd {
			t.Errorf("gap between piece %d and %d: %d > %d", i-1, i, pieces[i].StartIndex, prevEnd)
		}
		if pieces[i].StartIndex <= pieces[i-1].StartIndex {
			t.Errorf("piece %d does not advance past piece %d", i, i-1)
		}
	}

	last := pieces[len(pieces)-1]
	if last.StartIndex+len(last.Text) != len(text) {
		t.Error("pieces do not cover the tail of the text")
	}
}

func TestSplit_MultiByteRunesNeverCutMidCharacter(t *testing.T) {
	// three bytes per rune, no separators anywhere, so every boundary is a
	// hard cut and must still land on a rune start
	text := strings.Repeat("€", 200)
	runes := []rune(text)
	size, overlap := 60, 10

	pieces := Split(text, size, overlap)
	if len(pieces) < 2 {
		t.Fatalf("expected multiple pieces for %d runes, got %d", len(runes), len(pieces))
	}

	for i, p := range pieces {
		if !utf8.ValidString(p.Text) {
			t.Errorf("piece %d is not valid UTF-8: starts %q", i, p.Text[:3])
		}
		if n := utf8.RuneCountInString(p.Text); n > size {
			t.Errorf("piece %d has %d chars > size %d", i, n, size)
		}
		span := string(runes[p.StartIndex : p.StartIndex+utf8.RuneCountInString(p.Text)])
		if span != p.Text {
			t.Errorf("piece %d does not match its source span at rune offset %d", i, p.StartIndex)
		}
	}

	last := pieces[len(pieces)-1]
	if last.StartIndex+utf8.RuneCountInString(last.Text) != len(runes) {
		t.Error("pieces do not cover the tail of the text")
	}
}

func TestSplit_SizeMeasuredInRunesNotBytes(t *testing.T) {
	// 150 two-byte runes are 300 bytes but only 150 chars, within 2*size
	text := strings.Repeat(" й", 75)

	pieces := Split(text, 80, 10)
	if len(pieces) != 1 {
		t.Fatalf("%d-char text with size 80 should stay whole, got %d pieces", utf8.RuneCountInString(text), len(pieces))
	}
	if pieces[0].Text != text {
		t.Error("whole piece must be the unmodified input")
	}
}

func TestSplit_CutsOnSeparators(t *testing.T) {
	// newline every 10 chars, so every window has a separator in its
	// second half and no piece should need a hard cut
	text := strings.Repeat("123456789\n", 50)

	pieces := Split(text, 80, 10)
	for i, p := range pieces[:len(pieces)-1] {
		if !strings.HasSuffix(p.Text, "\n") && !strings.HasSuffix(p.Text, " ") {
			t.Errorf("piece %d should end on a separator, ends with %q", i, p.Text[len(p.Text)-1:])
		}
	}
}

func TestSplit_Deterministic(t *testing.T) {
	text := strings.Repeat("alpha beta gamma delta\n", 30)

	a := Split(text, 64, 16)
	b := Split(text, 64, 16)
	if !reflect.DeepEqual(a, b) {
		t.Error("Split must be deterministic for fixed input and parameters")
	}
}

func TestChunkUnit_TrackingFields(t *testing.T) {
	meta := document.Metadata{Source: "sales.xlsx", Type: document.Excel, SheetName: "Q1"}

	t.Run("single piece keeps metadata untouched", func(t *testing.T) {
		u := document.Unit{Content: "short content", Meta: meta}
		chunks := ChunkUnit(u, 100, 20)
		if len(chunks) != 1 {
			t.Fatalf("expected 1 chunk, got %d", len(chunks))
		}
		if chunks[0].Meta.TotalChunks != 0 || chunks[0].Meta.ChunkIndex != 0 {
			t.Error("unsplit unit must not carry chunk tracking fields")
		}
	})

	t.Run("split unit gets index and total", func(t *testing.T) {
		u := document.Unit{Content: strings.Repeat("word ", 200), Meta: meta}
		chunks := ChunkUnit(u, 100, 20)
		if len(chunks) < 2 {
			t.Fatalf("expected multiple chunks, got %d", len(chunks))
		}
		for i, c := range chunks {
			if c.Meta.ChunkIndex != i {
				t.Errorf("chunk %d has ChunkIndex %d", i, c.Meta.ChunkIndex)
			}
			if c.Meta.TotalChunks != len(chunks) {
				t.Errorf("chunk %d has TotalChunks %d, want %d", i, c.Meta.TotalChunks, len(chunks))
			}
			if c.Meta.SheetName != "Q1" {
				t.Errorf("chunk %d lost inherited metadata", i)
			}
		}
	})
}

func TestChunkUnits_DropsEmptyUnits(t *testing.T) {
	units := []document.Unit{
		{Content: "  \n\t ", Meta: document.Metadata{Source: "a.csv", Type: document.CSV}},
		{Content: "Row: 1\nRegion: North", Meta: document.Metadata{Source: "a.csv", Type: document.CSV}},
	}

	chunks := ChunkUnits(units, 100, 20)
	if len(chunks) != 1 {
		t.Fatalf("expected blank unit to be dropped, got %d chunks", len(chunks))
	}
	if chunks[0].Text != "Row: 1\nRegion: North" {
		t.Errorf("unexpected chunk text %q", chunks[0].Text)
	}
}
