package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/docmind-ai/multirag-be/database"
	"github.com/docmind-ai/multirag-be/types"
)

// Retriever returns the chunks most relevant to a question, best first.
type Retriever interface {
	Retrieve(ctx context.Context, question string, topK int) ([]types.Chunk, error)
}

const mmrLambda = 0.5

// VectorRetriever embeds the question and searches the vector store. It
// over-fetches candidates and re-ranks them with maximal marginal relevance
// so the handful of chunks handed to the model covers more of the document
// than the raw nearest neighbors would.
type VectorRetriever struct {
	embedder Embedder
	store    database.VectorStore
	config   types.RetrievalConfig
}

var DefaultRetrievalConfig = types.RetrievalConfig{
	TopK:   3,
	FetchK: 12,
}

func NewVectorRetriever(embedder Embedder, store database.VectorStore, config types.RetrievalConfig) *VectorRetriever {
	if config.TopK <= 0 {
		config.TopK = DefaultRetrievalConfig.TopK
	}
	if config.FetchK < config.TopK {
		config.FetchK = DefaultRetrievalConfig.FetchK
	}
	if config.FetchK < config.TopK {
		config.FetchK = config.TopK
	}
	return &VectorRetriever{
		embedder: embedder,
		store:    store,
		config:   config,
	}
}

func (r *VectorRetriever) Retrieve(ctx context.Context, question string, topK int) ([]types.Chunk, error) {
	count, err := r.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check vector index: %v", err)
	}
	if count == 0 {
		return nil, types.ErrIndexNotInitialized
	}

	if topK <= 0 {
		topK = r.config.TopK
	}
	fetchK := r.config.FetchK
	if fetchK < topK {
		fetchK = topK
	}

	queryVector, err := r.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %v", err)
	}

	candidates, err := r.store.SearchNear(ctx, queryVector, fetchK)
	if err != nil {
		return nil, err
	}

	selected := database.MaximalMarginalRelevance(queryVector, candidates, topK, mmrLambda)
	chunks := make([]types.Chunk, 0, len(selected))
	for _, sc := range selected {
		chunks = append(chunks, sc.Chunk)
	}
	return chunks, nil
}

// AnswerService turns a question into a grounded answer: retrieve chunks,
// assemble the cited context block, render the prompt and call the model.
type AnswerService struct {
	retriever Retriever
	ai        AIService
}

func NewAnswerService(retriever Retriever, ai AIService) *AnswerService {
	return &AnswerService{
		retriever: retriever,
		ai:        ai,
	}
}

func (s *AnswerService) Answer(ctx context.Context, question string, topK int) (*types.QueryResponse, error) {
	if strings.TrimSpace(question) == "" {
		return nil, types.ErrEmptyQuestion
	}

	chunks, err := s.retriever.Retrieve(ctx, question, topK)
	if err != nil {
		return nil, err
	}

	docContext := AssembleContext(chunks)
	prompt := RenderAnswerPrompt(docContext, question)

	answer, err := s.ai.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer: %v", err)
	}

	return &types.QueryResponse{
		Answer:    answer,
		Context:   docContext,
		Citations: collectCitations(chunks),
	}, nil
}

// AnswerStream behaves like Answer but delivers the model output through
// handler as it is produced. Providers without streaming fall back to a
// single delivery of the full answer.
func (s *AnswerService) AnswerStream(ctx context.Context, question string, topK int, handler StreamHandler) (*types.QueryResponse, error) {
	if strings.TrimSpace(question) == "" {
		return nil, types.ErrEmptyQuestion
	}

	chunks, err := s.retriever.Retrieve(ctx, question, topK)
	if err != nil {
		return nil, err
	}

	docContext := AssembleContext(chunks)
	prompt := RenderAnswerPrompt(docContext, question)

	var answer string
	if streamer, ok := s.ai.(StreamingAIService); ok {
		var sb strings.Builder
		err = streamer.GenerateStream(ctx, prompt, func(delta string) {
			sb.WriteString(delta)
			handler(delta)
		})
		answer = sb.String()
	} else {
		answer, err = s.ai.Generate(ctx, prompt)
		if err == nil {
			handler(answer)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer: %v", err)
	}

	return &types.QueryResponse{
		Answer:    answer,
		Context:   docContext,
		Citations: collectCitations(chunks),
	}, nil
}

// collectCitations keeps one citation per distinct (page, reference) pair,
// in retrieval order.
func collectCitations(chunks []types.Chunk) []types.Citation {
	var citations []types.Citation
	seen := make(map[types.Citation]bool)
	for _, chunk := range chunks {
		c := types.Citation{
			Page:      chunk.Metadata.Page,
			Reference: chunk.Metadata.Reference,
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		citations = append(citations, c)
	}
	return citations
}
