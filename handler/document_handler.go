package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/docmind-ai/multirag-be/repository"
	"github.com/docmind-ai/multirag-be/types"
)

type DocumentHandler struct {
	uploadDir string
	docs      repository.DocumentRepo
}

func NewDocumentHandler(uploadDir string, docs repository.DocumentRepo) *DocumentHandler {
	return &DocumentHandler{
		uploadDir: uploadDir,
		docs:      docs,
	}
}

// ListDocumentsHandler returns the document registry, newest first.
func (h *DocumentHandler) ListDocumentsHandler(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	docs, err := h.docs.ListDocuments(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: "Failed to list documents",
		})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   docs,
	})
}

// ServeDocumentHandler streams an uploaded PDF back to the client. Callers
// pass the original name; the stored file carries a timestamp suffix.
func (h *DocumentHandler) ServeDocumentHandler(c *gin.Context) {
	requestedName := c.Query("file")
	if requestedName == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "File parameter is required",
		})
		return
	}

	if filepath.Ext(requestedName) != ".pdf" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Only PDF files are allowed",
		})
		return
	}

	actualFile, err := h.findFileWithTimestamp(requestedName)
	if err != nil {
		c.JSON(http.StatusNotFound, types.DataResponse{
			Status:  false,
			Message: "File not found",
		})
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%s", requestedName))
	c.File(filepath.Join(h.uploadDir, actualFile))
}

// findFileWithTimestamp resolves "report.pdf" to "report_1735689600.pdf" in
// the upload directory. An exact name match wins over a timestamped one.
func (h *DocumentHandler) findFileWithTimestamp(requestedName string) (string, error) {
	files, err := os.ReadDir(h.uploadDir)
	if err != nil {
		return "", err
	}

	baseName := strings.TrimSuffix(requestedName, ".pdf")
	for _, file := range files {
		name := file.Name()
		if !strings.HasSuffix(name, ".pdf") {
			continue
		}

		nameWithoutExt := strings.TrimSuffix(name, ".pdf")
		if nameWithoutExt == baseName {
			return name, nil
		}
		lastUnderscoreIdx := strings.LastIndex(nameWithoutExt, "_")
		if lastUnderscoreIdx == -1 {
			continue
		}

		// Unix timestamps are 10 digits, millisecond ones 13
		timestampPart := nameWithoutExt[lastUnderscoreIdx+1:]
		fileBaseName := nameWithoutExt[:lastUnderscoreIdx]
		if len(timestampPart) == 10 || len(timestampPart) == 13 {
			if _, err := strconv.ParseInt(timestampPart, 10, 64); err == nil {
				if fileBaseName == baseName {
					return name, nil
				}
			}
		}
	}

	return "", fmt.Errorf("file not found: %s", requestedName)
}
