package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
port: "9090"
upload_dir: "files"
ai_provider: "gemini"
model: "gemini-1.5-flash"
chunker:
  max_chars: 800
retrieval:
  top_k: 5
  fetch_k: 20
weaviate_store_config:
  host: "http://weaviate:8080"
  class: "Excerpt"
ocr:
  languages: "eng+vie"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "9090" || cfg.UploadDir != "files" {
		t.Errorf("server settings not loaded: %+v", cfg)
	}
	if cfg.AIProvider != "gemini" || cfg.Model != "gemini-1.5-flash" {
		t.Errorf("ai settings not loaded: %+v", cfg)
	}
	if cfg.Chunker.MaxChars != 800 {
		t.Errorf("expected max_chars 800, got %d", cfg.Chunker.MaxChars)
	}
	if cfg.Retrieval.TopK != 5 || cfg.Retrieval.FetchK != 20 {
		t.Errorf("retrieval settings not loaded: %+v", cfg.Retrieval)
	}
	if cfg.WeaviateStoreConfig.Host != "http://weaviate:8080" || cfg.WeaviateStoreConfig.Class != "Excerpt" {
		t.Errorf("weaviate settings not loaded: %+v", cfg.WeaviateStoreConfig)
	}
	if cfg.OCR.Languages != "eng+vie" {
		t.Errorf("ocr settings not loaded: %+v", cfg.OCR)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
model: "gpt-4o-mini"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.UploadDir != "upload" {
		t.Errorf("expected default upload dir, got %q", cfg.UploadDir)
	}
	if cfg.AIProvider != "openai" {
		t.Errorf("expected default provider openai, got %q", cfg.AIProvider)
	}
	if cfg.Chunker.MaxChars != 500 {
		t.Errorf("expected default max_chars 500, got %d", cfg.Chunker.MaxChars)
	}
	if cfg.Retrieval.TopK != 3 || cfg.Retrieval.FetchK != 12 {
		t.Errorf("expected default retrieval 3/12, got %+v", cfg.Retrieval)
	}
	if cfg.WeaviateStoreConfig.Class != "DocumentChunk" {
		t.Errorf("expected default class, got %q", cfg.WeaviateStoreConfig.Class)
	}
	if cfg.OCR.Languages != "eng" {
		t.Errorf("expected default ocr language, got %q", cfg.OCR.Languages)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
