package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/docmind-ai/multirag-be/config"
	"github.com/docmind-ai/multirag-be/database"
	"github.com/docmind-ai/multirag-be/repository"
	"github.com/docmind-ai/multirag-be/service"
	"github.com/docmind-ai/multirag-be/types"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "multirag-be",
	Short: "Document question-answering backend",
	Long: `multirag-be ingests PDF documents (text, tables and embedded images),
indexes them in a vector store and answers questions about them with
page-level citations.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config/config.yaml", "config file")
}

func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// newAIService picks the generation provider from config.
func newAIService(cfg *config.Config) (service.AIService, error) {
	switch cfg.AIProvider {
	case "gemini":
		return service.NewGeminiService(cfg.GeminiAPIKeys, cfg.Model)
	case "openai", "":
		return service.NewOpenAIService(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown ai provider: %s", cfg.AIProvider)
	}
}

// buildPipeline wires the ingestion and answering services shared by the
// server and the CLI commands.
type pipeline struct {
	ingest *service.IngestService
	answer *service.AnswerService
	store  *database.WeaviateStore
	docs   repository.DocumentRepo
}

func buildPipeline(ctx context.Context, cfg *config.Config) (*pipeline, func(), error) {
	weaviateDb, err := database.NewWeaviateStore(cfg.WeaviateStoreConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to Weaviate database: %v", err)
	}

	mongoClient, err := database.NewMongoClient(ctx, cfg.MongoURI)
	if err != nil {
		return nil, nil, err
	}
	mongoDb := mongoClient.Database(cfg.MongoDatabase)
	docRepo := repository.NewDocumentRepo(mongoDb)
	if docRepo == nil {
		return nil, nil, fmt.Errorf("failed to initialize document repository")
	}

	recognizer, err := service.NewTesseractRecognizer(cfg.OCR.Languages)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize OCR: %v", err)
	}

	extractService := service.NewExtractService(recognizer)
	chunkService := service.NewChunkService(types.ChunkerConfig{MaxChars: cfg.Chunker.MaxChars})
	embedder := service.NewOpenAIEmbedder(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.EmbeddingModel)

	ingestService := service.NewIngestService(
		cfg.UploadDir,
		extractService,
		chunkService,
		embedder,
		weaviateDb,
		docRepo,
	)

	aiService, err := newAIService(cfg)
	if err != nil {
		return nil, nil, err
	}
	retriever := service.NewVectorRetriever(embedder, weaviateDb, types.RetrievalConfig{
		TopK:   cfg.Retrieval.TopK,
		FetchK: cfg.Retrieval.FetchK,
	})
	answerService := service.NewAnswerService(retriever, aiService)

	cleanup := func() {
		recognizer.Close()
	}
	return &pipeline{
		ingest: ingestService,
		answer: answerService,
		store:  weaviateDb,
		docs:   docRepo,
	}, cleanup, nil
}
