package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port                string              `mapstructure:"port"`
	UploadDir           string              `mapstructure:"upload_dir"`
	AIProvider          string              `mapstructure:"ai_provider"` // "openai" or "gemini"
	AIEndpoint          string              `mapstructure:"ai_endpoint"`
	Model               string              `mapstructure:"model"`
	EmbeddingModel      string              `mapstructure:"embedding_model"`
	OpenAIAPIKey        string              `mapstructure:"OPENAI_API_KEY"`
	GeminiAPIKeys       []string            `mapstructure:"gemini_api_keys"`
	MongoURI            string              `mapstructure:"MONGODB_URI"`
	MongoDatabase       string              `mapstructure:"mongo_database"`
	Chunker             ChunkerConfig       `mapstructure:"chunker"`
	Retrieval           RetrievalConfig     `mapstructure:"retrieval"`
	WeaviateStoreConfig WeaviateStoreConfig `mapstructure:"weaviate_store_config"`
	OCR                 OCRConfig           `mapstructure:"ocr"`
}

type ChunkerConfig struct {
	MaxChars int `mapstructure:"max_chars"`
}

type RetrievalConfig struct {
	TopK   int `mapstructure:"top_k"`
	FetchK int `mapstructure:"fetch_k"`
}

type WeaviateStoreConfig struct {
	Host   string `mapstructure:"host"`
	APIKey string `mapstructure:"WEAVIATE_APIKEY"` // Changed to match env var
	Class  string `mapstructure:"class"`
}

type OCRConfig struct {
	Languages string `mapstructure:"languages"` // "+"-separated, e.g. "eng+fra"
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set up Viper to read from config file
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set up Viper to read from environment variables
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Bind environment variables
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("WEAVIATE_APIKEY")
	v.BindEnv("MONGODB_URI")
	v.BindEnv("GEMINI_API_KEY")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	// GEMINI_API_KEY may hold a comma-separated key list
	if keys := v.GetString("GEMINI_API_KEY"); keys != "" && len(config.GeminiAPIKeys) == 0 {
		config.GeminiAPIKeys = strings.Split(keys, ",")
	}
	applyDefaults(&config)

	return &config, nil
}

func applyDefaults(c *Config) {
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.UploadDir == "" {
		c.UploadDir = "upload"
	}
	if c.AIProvider == "" {
		c.AIProvider = "openai"
	}
	if c.EmbeddingModel == "" {
		c.EmbeddingModel = "text-embedding-3-small"
	}
	if c.MongoDatabase == "" {
		c.MongoDatabase = "multirag"
	}
	if c.Chunker.MaxChars <= 0 {
		c.Chunker.MaxChars = 500
	}
	if c.Retrieval.TopK <= 0 {
		c.Retrieval.TopK = 3
	}
	if c.Retrieval.FetchK <= 0 {
		c.Retrieval.FetchK = 12
	}
	if c.WeaviateStoreConfig.Class == "" {
		c.WeaviateStoreConfig.Class = "DocumentChunk"
	}
	if c.OCR.Languages == "" {
		c.OCR.Languages = "eng"
	}
}
