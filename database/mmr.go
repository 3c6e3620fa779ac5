package database

import "math"

// MaximalMarginalRelevance re-ranks search candidates to trade raw relevance
// against diversity. Each round it picks the candidate maximizing
//
//	lambda*sim(query, c) - (1-lambda)*max(sim(c, selected))
//
// so near-duplicate chunks from the same passage stop crowding out other
// parts of the document. Candidates should arrive closest-first; ties keep
// that order. Returns at most k chunks.
func MaximalMarginalRelevance(query []float32, candidates []ScoredChunk, k int, lambda float32) []ScoredChunk {
	if k <= 0 || len(candidates) == 0 {
		return nil
	}
	if k > len(candidates) {
		k = len(candidates)
	}

	querySim := make([]float32, len(candidates))
	for i, c := range candidates {
		querySim[i] = cosineSimilarity(query, c.Vector)
	}

	selected := make([]ScoredChunk, 0, k)
	picked := make([]bool, len(candidates))
	for len(selected) < k {
		best := -1
		var bestScore float32
		for i, c := range candidates {
			if picked[i] {
				continue
			}
			var maxSelectedSim float32
			for _, s := range selected {
				if sim := cosineSimilarity(c.Vector, s.Vector); sim > maxSelectedSim {
					maxSelectedSim = sim
				}
			}
			score := lambda*querySim[i] - (1-lambda)*maxSelectedSim
			if best == -1 || score > bestScore {
				best = i
				bestScore = score
			}
		}
		picked[best] = true
		selected = append(selected, candidates[best])
	}
	return selected
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
