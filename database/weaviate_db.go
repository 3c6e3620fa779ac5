package database

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/docmind-ai/multirag-be/config"
	"github.com/docmind-ai/multirag-be/types"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
)

const BATCH_SIZE = 200

// chunkClassObject builds the schema for the chunk class. Vectorizer is
// "none": embeddings are computed by the ingestion pipeline and stored with
// each object.
func chunkClassObject(class string) *models.Class {
	return &models.Class{
		Class: class,
		Properties: []*models.Property{
			{Name: "chunkId", DataType: []string{"text"}},
			{Name: "content", DataType: []string{"text"}},
			{Name: "title", DataType: []string{"text"}},
			{Name: "source", DataType: []string{"text"}},
			{Name: "page", DataType: []string{"int"}},
			{Name: "kind", DataType: []string{"text"}},
			{Name: "reference", DataType: []string{"text"}},
			{Name: "createdAt", DataType: []string{"int"}},
		},
		Vectorizer:      "none",
		VectorIndexType: "hnsw",
	}
}

type WeaviateStore struct {
	client *weaviate.Client
	class  string
}

func NewWeaviateStore(config config.WeaviateStoreConfig) (*WeaviateStore, error) {
	var scheme string
	if strings.Contains(config.Host, "https") {
		scheme = "https"
	} else {
		scheme = "http"
	}
	host := strings.TrimPrefix(config.Host, scheme+"://")
	cfg := weaviate.Config{
		Host:   host,
		Scheme: scheme,
	}
	if config.APIKey != "" {
		cfg.AuthConfig = auth.ApiKey{
			Value: config.APIKey,
		}
	}
	client, err := weaviate.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create weaviate client: %v", err)
	}

	schema, err := client.Schema().Getter().Do(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get schema: %v", err)
	}

	hasChunkClass := false
	for _, class := range schema.Classes {
		if class.Class == config.Class {
			hasChunkClass = true
			break
		}
	}
	if !hasChunkClass {
		err = client.Schema().ClassCreator().WithClass(chunkClassObject(config.Class)).Do(context.Background())
		if err != nil {
			return nil, fmt.Errorf("failed to create %s class: %v", config.Class, err)
		}
	}
	return &WeaviateStore{
		client: client,
		class:  config.Class,
	}, nil
}

// ReInit drops and recreates the chunk class, wiping the index.
func (s *WeaviateStore) ReInit() error {
	err := s.client.Schema().ClassDeleter().WithClassName(s.class).Do(context.Background())
	if err != nil {
		return fmt.Errorf("failed to delete %s class: %v", s.class, err)
	}

	err = s.client.Schema().ClassCreator().WithClass(chunkClassObject(s.class)).Do(context.Background())
	if err != nil {
		return fmt.Errorf("failed to create %s class: %v", s.class, err)
	}
	return nil
}

func (s *WeaviateStore) AddChunks(ctx context.Context, chunks []types.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunk/vector count mismatch: %d chunks, %d vectors", len(chunks), len(vectors))
	}
	total := len(chunks)
	for i := 0; i < total; i += BATCH_SIZE {
		end := i + BATCH_SIZE
		if end > total {
			end = total
		}

		batcher := s.client.Batch().ObjectsBatcher()
		for j := i; j < end; j++ {
			properties := map[string]interface{}{
				"chunkId":   chunks[j].ID,
				"content":   chunks[j].Content,
				"title":     chunks[j].Metadata.Title,
				"source":    chunks[j].Metadata.Source,
				"page":      chunks[j].Metadata.Page,
				"kind":      string(chunks[j].Metadata.Kind),
				"reference": chunks[j].Metadata.Reference,
				"createdAt": chunks[j].CreatedAt,
			}
			batcher = batcher.WithObjects(&models.Object{
				Class:      s.class,
				Properties: properties,
				Vector:     vectors[j],
			})
		}

		resp, err := batcher.Do(ctx)
		if err != nil {
			return fmt.Errorf("failed to insert batch %d-%d: %v", i, end, err)
		}
		for _, obj := range resp {
			if obj.Result != nil && obj.Result.Errors != nil && len(obj.Result.Errors.Error) > 0 {
				return fmt.Errorf("failed to insert batch %d-%d: %s", i, end, obj.Result.Errors.Error[0].Message)
			}
		}

		log.Printf("Inserted batch %d-%d of %d chunks", i, end, total)
	}

	return nil
}

func (s *WeaviateStore) SearchNear(ctx context.Context, vector []float32, limit int) ([]ScoredChunk, error) {
	fields := []graphql.Field{
		{Name: "chunkId"},
		{Name: "content"},
		{Name: "title"},
		{Name: "source"},
		{Name: "page"},
		{Name: "kind"},
		{Name: "reference"},
		{Name: "createdAt"},
		{Name: "_additional", Fields: []graphql.Field{{Name: "distance"}, {Name: "vector"}}},
	}
	nearVector := s.client.GraphQL().NearVectorArgBuilder().WithVector(vector)

	result, err := s.client.GraphQL().Get().
		WithClassName(s.class).
		WithFields(fields...).
		WithNearVector(nearVector).
		WithLimit(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("search failed: %v", err)
	}
	if result.Errors != nil {
		return nil, fmt.Errorf("search failed: %v", result.Errors[0].Message)
	}

	var scored []ScoredChunk
	if data, ok := result.Data["Get"].(map[string]interface{})[s.class].([]interface{}); ok {
		for _, item := range data {
			obj, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			sc := ScoredChunk{
				Chunk: types.Chunk{
					ID:      asString(obj["chunkId"]),
					Content: asString(obj["content"]),
					Metadata: types.ChunkMetadata{
						Title:     asString(obj["title"]),
						Source:    asString(obj["source"]),
						Page:      asInt(obj["page"]),
						Kind:      types.UnitKind(asString(obj["kind"])),
						Reference: asString(obj["reference"]),
					},
					CreatedAt: int64(asInt(obj["createdAt"])),
				},
			}
			if additional, ok := obj["_additional"].(map[string]interface{}); ok {
				if d, ok := additional["distance"].(float64); ok {
					sc.Distance = float32(d)
				}
				sc.Vector = parseVector(additional["vector"])
			}
			scored = append(scored, sc)
		}
	}
	return scored, nil
}

func (s *WeaviateStore) Count(ctx context.Context) (int64, error) {
	result, err := s.client.GraphQL().Aggregate().
		WithClassName(s.class).
		WithFields(graphql.Field{Name: "meta", Fields: []graphql.Field{{Name: "count"}}}).
		Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("count failed: %v", err)
	}
	if result.Errors != nil {
		return 0, fmt.Errorf("count failed: %v", result.Errors[0].Message)
	}
	if data, ok := result.Data["Aggregate"].(map[string]interface{})[s.class].([]interface{}); ok && len(data) > 0 {
		if agg, ok := data[0].(map[string]interface{}); ok {
			if meta, ok := agg["meta"].(map[string]interface{}); ok {
				if count, ok := meta["count"].(float64); ok {
					return int64(count), nil
				}
			}
		}
	}
	return 0, nil
}

// Helper functions
func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asInt(v interface{}) int {
	f, _ := v.(float64)
	return int(f)
}

func parseVector(v interface{}) []float32 {
	arr, ok := v.([]interface{})
	if !ok {
		return nil
	}
	result := make([]float32, len(arr))
	for i, item := range arr {
		f, _ := item.(float64)
		result[i] = float32(f)
	}
	return result
}
