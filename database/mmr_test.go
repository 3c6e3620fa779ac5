package database

import (
	"testing"

	"github.com/docmind-ai/multirag-be/types"
)

func candidate(id string, vector []float32) ScoredChunk {
	return ScoredChunk{Chunk: types.Chunk{ID: id}, Vector: vector}
}

func ids(selected []ScoredChunk) []string {
	out := make([]string, len(selected))
	for i, s := range selected {
		out[i] = s.Chunk.ID
	}
	return out
}

func TestMaximalMarginalRelevanceSkipsDuplicates(t *testing.T) {
	query := []float32{0.707, 0.707}
	candidates := []ScoredChunk{
		candidate("a", []float32{1, 0}),
		candidate("a-dup", []float32{1, 0}),
		candidate("b", []float32{0, 1}),
	}

	got := ids(MaximalMarginalRelevance(query, candidates, 2, 0.5))
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("expected [a b], got %v", got)
	}
}

func TestMaximalMarginalRelevancePureRelevance(t *testing.T) {
	// lambda 1 ignores diversity entirely.
	query := []float32{1, 0}
	candidates := []ScoredChunk{
		candidate("far", []float32{0, 1}),
		candidate("near", []float32{1, 0}),
		candidate("mid", []float32{0.707, 0.707}),
	}

	got := ids(MaximalMarginalRelevance(query, candidates, 3, 1.0))
	want := []string{"near", "mid", "far"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestMaximalMarginalRelevanceBounds(t *testing.T) {
	query := []float32{1, 0}
	candidates := []ScoredChunk{
		candidate("only", []float32{1, 0}),
	}

	if got := MaximalMarginalRelevance(query, candidates, 5, 0.5); len(got) != 1 {
		t.Errorf("k beyond candidate count should return all candidates, got %d", len(got))
	}
	if got := MaximalMarginalRelevance(query, candidates, 0, 0.5); got != nil {
		t.Errorf("k=0 should return nil, got %v", got)
	}
	if got := MaximalMarginalRelevance(query, nil, 3, 0.5); got != nil {
		t.Errorf("no candidates should return nil, got %v", got)
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float32
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"mismatched length", []float32{1, 0}, []float32{1}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosineSimilarity(tt.a, tt.b)
			if diff := got - tt.want; diff > 1e-6 || diff < -1e-6 {
				t.Errorf("got %f, want %f", got, tt.want)
			}
		})
	}
}
