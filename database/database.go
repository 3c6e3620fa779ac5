package database

import (
	"context"

	"github.com/docmind-ai/multirag-be/types"
)

// ScoredChunk is one similarity-search candidate: the stored chunk, its
// vector (needed for diversity re-ranking), and its distance to the query.
type ScoredChunk struct {
	Chunk    types.Chunk
	Vector   []float32
	Distance float32
}

// VectorStore is the nearest-neighbor index boundary. The pipeline embeds
// chunks itself and stores vectors alongside them; the store never calls a
// vectorizer of its own.
type VectorStore interface {
	// AddChunks stores one document's chunks with their vectors as a single
	// batch. A document is queryable only after its whole batch landed.
	AddChunks(ctx context.Context, chunks []types.Chunk, vectors [][]float32) error

	// SearchNear returns the limit nearest chunks to the query vector,
	// closest first, including stored vectors and distances.
	SearchNear(ctx context.Context, vector []float32, limit int) ([]ScoredChunk, error)

	// Count reports how many chunks the index holds. Zero means nothing has
	// been ingested yet.
	Count(ctx context.Context) (int64, error)
}
