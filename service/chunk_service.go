package service

import (
	"strings"

	"github.com/google/uuid"

	"github.com/docmind-ai/multirag-be/types"
)

const paragraphSeparator = "\n\n"

// ChunkService turns normalized content units into retrieval-sized chunks.
// Text units are packed paragraph by paragraph up to a soft size bound;
// table and image units are atomic and pass through as one chunk each.
type ChunkService struct {
	maxChars int // Soft upper bound for text chunks
}

var DefaultChunkerConfig = types.ChunkerConfig{
	MaxChars: 500,
}

// NewChunkService creates a new chunk service with a configurable size bound.
func NewChunkService(config types.ChunkerConfig) *ChunkService {
	if config.MaxChars <= 0 {
		config.MaxChars = DefaultChunkerConfig.MaxChars
	}
	return &ChunkService{
		maxChars: config.MaxChars,
	}
}

// ChunkUnits converts the ordered unit stream of one document into the
// ordered chunk stream. Unit order is preserved; no unit is dropped.
func (s *ChunkService) ChunkUnits(units []types.ContentUnit, title, source string) []types.Chunk {
	var chunks []types.Chunk
	for _, unit := range units {
		meta := types.ChunkMetadata{
			Title:     title,
			Source:    source,
			Page:      unit.Page,
			Kind:      unit.Kind,
			Reference: unit.Reference,
		}
		switch unit.Kind {
		case types.UnitKindText:
			chunks = append(chunks, s.packParagraphs(unit.Content, meta)...)
		default:
			// Tables and OCR text are atomic artifacts; splitting them
			// would fragment their internal structure.
			chunks = append(chunks, types.Chunk{
				ID:       uuid.New().String(),
				Content:  unit.Content,
				Metadata: meta,
			})
		}
	}
	return chunks
}

// packParagraphs splits text on blank-line boundaries and greedily packs
// consecutive paragraphs into chunks of at most maxChars characters. A single
// paragraph longer than maxChars becomes its own oversized chunk: the bound is
// a soft target, and breaking inside a paragraph would cost semantic
// coherence.
func (s *ChunkService) packParagraphs(text string, meta types.ChunkMetadata) []types.Chunk {
	var chunks []types.Chunk
	buffer := ""

	paragraphs := strings.Split(text, paragraphSeparator)

	for _, para := range paragraphs {
		if len(buffer)+len(para) <= s.maxChars {
			buffer += para + paragraphSeparator
			continue
		}
		if trimmed := strings.TrimSpace(buffer); trimmed != "" {
			chunks = append(chunks, types.Chunk{
				ID:       uuid.New().String(),
				Content:  trimmed,
				Metadata: meta,
			})
		}
		buffer = para + paragraphSeparator
	}

	if trimmed := strings.TrimSpace(buffer); trimmed != "" {
		chunks = append(chunks, types.Chunk{
			ID:       uuid.New().String(),
			Content:  trimmed,
			Metadata: meta,
		})
	}

	return chunks
}
