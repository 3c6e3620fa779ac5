package service

import (
	"strings"
	"testing"

	"github.com/docmind-ai/multirag-be/types"
)

func TestCitationHeader(t *testing.T) {
	tests := []struct {
		name string
		meta types.ChunkMetadata
		want string
	}{
		{"plain text", types.ChunkMetadata{Page: 7}, "(Page 7)"},
		{"table", types.ChunkMetadata{Page: 4, Reference: "Table 2"}, "(Page 4, Table 2)"},
		{"image", types.ChunkMetadata{Page: 12, Reference: "Image 1"}, "(Page 12, Image 1)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CitationHeader(tt.meta); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAssembleContext(t *testing.T) {
	chunks := []types.Chunk{
		{Content: "revenue grew 12%", Metadata: types.ChunkMetadata{Page: 3}},
		{Content: "Q1\t100\nQ2\t120", Metadata: types.ChunkMetadata{Page: 3, Reference: "Table 1"}},
	}

	got := AssembleContext(chunks)
	want := "(Page 3)\nrevenue grew 12%\n\n(Page 3, Table 1)\nQ1\t100\nQ2\t120"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAssembleContextEmpty(t *testing.T) {
	if got := AssembleContext(nil); got != "" {
		t.Errorf("expected empty context, got %q", got)
	}
}

func TestRenderAnswerPrompt(t *testing.T) {
	prompt := RenderAnswerPrompt("(Page 1)\nhello", "What does it say?")

	if !strings.Contains(prompt, "(Page 1)\nhello") {
		t.Error("prompt should embed the assembled context")
	}
	if !strings.Contains(prompt, "What does it say?") {
		t.Error("prompt should embed the question verbatim")
	}
	if strings.Index(prompt, "<Document Excerpts>") > strings.Index(prompt, "(Page 1)") {
		t.Error("context should appear inside the excerpts section")
	}
}
