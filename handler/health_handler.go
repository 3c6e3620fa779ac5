package handler

import (
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/docmind-ai/multirag-be/database"
	"github.com/docmind-ai/multirag-be/repository"
	"github.com/docmind-ai/multirag-be/types"
)

// StatsCounter is a process-lifetime monotonic counter.
type StatsCounter struct {
	n atomic.Int64
}

func (c *StatsCounter) Inc()         { c.n.Add(1) }
func (c *StatsCounter) Value() int64 { return c.n.Load() }

type HealthHandler struct {
	uploadDir string
	store     database.VectorStore
	docs      repository.DocumentRepo
	queries   *StatsCounter
	startTime time.Time
}

func NewHealthHandler(uploadDir string, store database.VectorStore, docs repository.DocumentRepo, queries *StatsCounter) *HealthHandler {
	return &HealthHandler{
		uploadDir: uploadDir,
		store:     store,
		docs:      docs,
		queries:   queries,
		startTime: time.Now(),
	}
}

// HealthHandler reports process liveness plus whether the upload directory
// and vector index are usable.
func (h *HealthHandler) HealthHandler(c *gin.Context) {
	_, dirErr := os.Stat(h.uploadDir)
	count, countErr := h.store.Count(c.Request.Context())

	c.JSON(http.StatusOK, types.HealthResponse{
		Status:          "ok",
		UploadDirExists: dirErr == nil,
		IndexReady:      countErr == nil && count > 0,
	})
}

// StatsHandler reports ingest and query counters.
func (h *HealthHandler) StatsHandler(c *gin.Context) {
	uploads, err := h.docs.CountDocuments(c.Request.Context(), "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: "Failed to read stats",
		})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data: types.StatsResponse{
			TotalUploads: uploads,
			TotalQueries: h.queries.Value(),
			StartTime:    h.startTime.UTC().Format(time.RFC3339),
		},
	})
}

// RootHandler lists the API surface.
func (h *HealthHandler) RootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data: []string{
			"POST /api/v1/upload: upload a PDF document",
			"POST /api/v1/query: ask a question about ingested documents",
			"GET /api/v1/documents: list ingested documents",
			"GET /api/v1/documents/file: download an uploaded PDF",
			"GET /api/v1/ws: websocket query endpoint",
			"GET /health: health check",
			"GET /stats: service statistics",
		},
	})
}
