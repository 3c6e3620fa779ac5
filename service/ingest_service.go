package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/docmind-ai/multirag-be/database"
	"github.com/docmind-ai/multirag-be/repository"
	"github.com/docmind-ai/multirag-be/types"
	"github.com/docmind-ai/multirag-be/utils"
)

// IngestService runs the full document pipeline: save the upload, extract
// content units, chunk them, embed the chunks and store everything in the
// vector index. Ingestions are serialized so a document's chunks land as one
// batch and queries never observe a half-indexed document.
type IngestService struct {
	uploadDir string
	extract   *ExtractService
	chunker   *ChunkService
	embedder  Embedder
	store     database.VectorStore
	docs      repository.DocumentRepo

	mu sync.Mutex
}

func NewIngestService(
	uploadDir string,
	extract *ExtractService,
	chunker *ChunkService,
	embedder Embedder,
	store database.VectorStore,
	docs repository.DocumentRepo,
) *IngestService {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		panic(err)
	}
	return &IngestService{
		uploadDir: uploadDir,
		extract:   extract,
		chunker:   chunker,
		embedder:  embedder,
		store:     store,
		docs:      docs,
	}
}

// UploadFile saves an uploaded PDF into the upload directory and ingests it.
// Progress updates stream to c; the caller owns the channel and closes
// nothing, UploadFile only sends. Only PDF uploads are accepted.
func (s *IngestService) UploadFile(ctx context.Context, req types.UploadRequest, file *multipart.FileHeader, c chan<- types.ProcessingDocumentStatus) (*types.UploadResponse, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedFileType, ext)
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	title := req.Title
	if title == "" {
		title = strings.TrimSuffix(file.Filename, ext)
	}

	// New filename format: originalname_timestamp.extension
	filename := utils.TimestampedName(file.Filename)

	destPath := filepath.Join(s.uploadDir, filename)
	dst, err := os.Create(destPath)
	if err != nil {
		return nil, err
	}
	if _, err = io.Copy(dst, src); err != nil {
		dst.Close()
		return nil, err
	}
	dst.Close()

	source := req.Source
	if source == "" {
		source = filename
	}

	resp, err := s.IngestPath(ctx, destPath, title, source, c)
	if err != nil {
		return nil, err
	}
	resp.OriginalName = file.Filename
	return resp, nil
}

// IngestPath ingests a PDF already on disk. c may be nil when no caller is
// listening for progress.
func (s *IngestService) IngestPath(ctx context.Context, path, title, source string, c chan<- types.ProcessingDocumentStatus) (*types.UploadResponse, error) {
	record := &types.DocumentRecord{
		ID:        uuid.New().String(),
		Title:     title,
		Source:    source,
		Status:    types.DocumentStatusIngesting,
		CreatedAt: time.Now().Unix(),
		UpdatedAt: time.Now().Unix(),
	}
	if err := s.docs.CreateDocument(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to register document: %v", err)
	}

	s.report(c, "processing", "Extracting content", 0.1, 0, 0)
	units, pages, err := s.extract.ExtractUnits(path)
	if err != nil {
		return nil, err
	}
	s.report(c, "processing", "Chunking content", 0.4, pages, pages)

	chunks := s.chunker.ChunkUnits(units, title, source)
	now := time.Now().Unix()
	for i := range chunks {
		chunks[i].CreatedAt = now
	}

	if len(chunks) > 0 {
		s.report(c, "processing", fmt.Sprintf("Embedding %d chunks", len(chunks)), 0.6, pages, pages)
		texts := make([]string, len(chunks))
		for i, chunk := range chunks {
			texts[i] = chunk.Content
		}
		vectors, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("failed to embed chunks: %v", err)
		}

		s.report(c, "processing", "Storing chunks", 0.9, pages, pages)
		s.mu.Lock()
		err = s.store.AddChunks(ctx, chunks, vectors)
		s.mu.Unlock()
		if err != nil {
			return nil, fmt.Errorf("failed to store chunks: %v", err)
		}
	}

	if err := s.docs.UpdateStatus(ctx, record.ID, types.DocumentStatusReady, len(units), len(chunks)); err != nil {
		log.Printf("Failed to mark document %s ready: %v", record.ID, err)
	}
	s.report(c, "completed", "Done processing PDF", 1.0, pages, pages)

	return &types.UploadResponse{
		Pages:  pages,
		Chunks: len(chunks),
	}, nil
}

// report sends a progress update without blocking. Progress is advisory: a
// listener that went away (client disconnect) or is momentarily busy loses
// the update, the ingestion itself always runs to completion.
func (s *IngestService) report(c chan<- types.ProcessingDocumentStatus, status, message string, progress float64, total, processed int) {
	if c == nil {
		return
	}
	select {
	case c <- types.ProcessingDocumentStatus{
		Status:         status,
		Message:        message,
		Progress:       progress,
		TotalPages:     total,
		ProcessedPages: processed,
	}:
	default:
	}
}
