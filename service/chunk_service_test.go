package service

import (
	"strings"
	"testing"

	"github.com/docmind-ai/multirag-be/types"
)

func textUnit(content string, page int) types.ContentUnit {
	return types.ContentUnit{Content: content, Page: page, Kind: types.UnitKindText}
}

func TestChunkUnitsPacksSmallParagraphs(t *testing.T) {
	s := NewChunkService(types.ChunkerConfig{MaxChars: 500})

	text := strings.Repeat("a", 100) + "\n\n" + strings.Repeat("b", 100)
	chunks := s.ChunkUnits([]types.ContentUnit{textUnit(text, 1)}, "doc", "doc.pdf")

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if !strings.Contains(chunks[0].Content, strings.Repeat("a", 100)) ||
		!strings.Contains(chunks[0].Content, strings.Repeat("b", 100)) {
		t.Errorf("chunk should contain both paragraphs: %q", chunks[0].Content)
	}
	if chunks[0].Metadata.Page != 1 || chunks[0].Metadata.Kind != types.UnitKindText {
		t.Errorf("unexpected metadata: %+v", chunks[0].Metadata)
	}
}

func TestChunkUnitsSplitsAtSizeBound(t *testing.T) {
	s := NewChunkService(types.ChunkerConfig{MaxChars: 500})

	first := strings.Repeat("a", 300)
	second := strings.Repeat("b", 250)
	chunks := s.ChunkUnits([]types.ContentUnit{textUnit(first+"\n\n"+second, 2)}, "doc", "doc.pdf")

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Content != first {
		t.Errorf("first chunk should hold the first paragraph only")
	}
	if chunks[1].Content != second {
		t.Errorf("second chunk should hold the second paragraph only")
	}
}

func TestChunkUnitsKeepsOversizedParagraphWhole(t *testing.T) {
	s := NewChunkService(types.ChunkerConfig{MaxChars: 500})

	long := strings.Repeat("x", 1200)
	chunks := s.ChunkUnits([]types.ContentUnit{textUnit(long, 1)}, "doc", "doc.pdf")

	if len(chunks) != 1 {
		t.Fatalf("expected 1 oversized chunk, got %d", len(chunks))
	}
	if chunks[0].Content != long {
		t.Errorf("oversized paragraph must not be split")
	}
}

func TestChunkUnitsDropsWhitespaceOnlyText(t *testing.T) {
	s := NewChunkService(types.ChunkerConfig{MaxChars: 500})

	chunks := s.ChunkUnits([]types.ContentUnit{textUnit("  \n\n \t ", 1)}, "doc", "doc.pdf")
	if len(chunks) != 0 {
		t.Fatalf("expected no chunks for whitespace-only text, got %d", len(chunks))
	}
}

func TestChunkUnitsTableAndImageAreAtomic(t *testing.T) {
	s := NewChunkService(types.ChunkerConfig{MaxChars: 10})

	units := []types.ContentUnit{
		{Content: strings.Repeat("r1\tc2\n", 50), Page: 3, Kind: types.UnitKindTable, Reference: "Table 1"},
		{Content: strings.Repeat("scanned ", 40), Page: 3, Kind: types.UnitKindImage, Reference: "Image 2"},
	}
	chunks := s.ChunkUnits(units, "doc", "doc.pdf")

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Metadata.Reference != "Table 1" || chunks[0].Metadata.Kind != types.UnitKindTable {
		t.Errorf("table metadata lost: %+v", chunks[0].Metadata)
	}
	if chunks[1].Metadata.Reference != "Image 2" || chunks[1].Metadata.Kind != types.UnitKindImage {
		t.Errorf("image metadata lost: %+v", chunks[1].Metadata)
	}
	if chunks[0].Content != units[0].Content {
		t.Errorf("table content must pass through unsplit even past the size bound")
	}
}

func TestChunkUnitsPreservesOrderAndAssignsIDs(t *testing.T) {
	s := NewChunkService(types.ChunkerConfig{MaxChars: 500})

	units := []types.ContentUnit{
		textUnit("page one text", 1),
		{Content: "a\tb", Page: 1, Kind: types.UnitKindTable, Reference: "Table 1"},
		textUnit("page two text", 2),
	}
	chunks := s.ChunkUnits(units, "doc", "src.pdf")

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	pages := []int{1, 1, 2}
	seen := map[string]bool{}
	for i, chunk := range chunks {
		if chunk.Metadata.Page != pages[i] {
			t.Errorf("chunk %d: expected page %d, got %d", i, pages[i], chunk.Metadata.Page)
		}
		if chunk.ID == "" || seen[chunk.ID] {
			t.Errorf("chunk %d: missing or duplicate id %q", i, chunk.ID)
		}
		seen[chunk.ID] = true
		if chunk.Metadata.Source != "src.pdf" {
			t.Errorf("chunk %d: source not propagated", i)
		}
	}
}
