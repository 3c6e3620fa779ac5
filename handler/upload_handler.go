package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	services "github.com/docmind-ai/multirag-be/service"
	"github.com/docmind-ai/multirag-be/types"
)

type UploadHandler struct {
	ingestService *services.IngestService
}

func NewUploadHandler(ingestService *services.IngestService) *UploadHandler {
	return &UploadHandler{
		ingestService: ingestService,
	}
}

type uploadResult struct {
	resp *types.UploadResponse
	err  error
}

// UploadDocumentHandler accepts a multipart PDF upload and streams ingestion
// progress as SSE messages until the final JSON result.
func (h *UploadHandler) UploadDocumentHandler(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid file",
		})
		return
	}
	defer file.Close()

	// Get metadata from form
	var req types.UploadRequest
	if metadata := c.Request.FormValue("metadata"); metadata != "" {
		if err := json.Unmarshal([]byte(metadata), &req); err != nil {
			c.JSON(http.StatusBadRequest, types.DataResponse{
				Status:  false,
				Message: "Invalid metadata",
			})
			return
		}
	}

	const maxSize = 50 << 20
	if header.Size > maxSize {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "File too large",
		})
		return
	}

	// Buffered result and non-blocking progress sends keep the ingestion
	// goroutine alive to completion even after the client disconnects.
	statusChan := make(chan types.ProcessingDocumentStatus, 16)
	resultChan := make(chan uploadResult, 1)
	go func() {
		resp, err := h.ingestService.UploadFile(context.Background(), req, header, statusChan)
		resultChan <- uploadResult{resp: resp, err: err}
	}()

	clientGone := c.Writer.CloseNotify()
	for {
		select {
		case <-clientGone:
			return // Client disconnected; ingestion keeps running
		case status := <-statusChan:
			jsonStatus, err := json.Marshal(status)
			if err != nil {
				continue
			}
			c.SSEvent("message", string(jsonStatus))
			c.Writer.Flush()
		case result := <-resultChan:
			if result.err != nil {
				status := http.StatusInternalServerError
				if errors.Is(result.err, types.ErrUnsupportedFileType) {
					status = http.StatusBadRequest
				}
				c.JSON(status, types.DataResponse{
					Status:  false,
					Message: result.err.Error(),
				})
			} else {
				c.JSON(http.StatusOK, types.DataResponse{
					Status: true,
					Data:   result.resp,
				})
			}
			return
		}
	}
}
