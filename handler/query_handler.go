package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	services "github.com/docmind-ai/multirag-be/service"
	"github.com/docmind-ai/multirag-be/types"
)

type QueryHandler struct {
	answerService *services.AnswerService
	queries       *StatsCounter
}

func NewQueryHandler(answerService *services.AnswerService, queries *StatsCounter) *QueryHandler {
	return &QueryHandler{
		answerService: answerService,
		queries:       queries,
	}
}

// QueryHandler answers one question against the ingested corpus.
func (h *QueryHandler) QueryHandler(c *gin.Context) {
	var req types.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}

	resp, err := h.answerService.Answer(c.Request.Context(), req.Question, req.TopK)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrEmptyQuestion):
			c.JSON(http.StatusBadRequest, types.DataResponse{
				Status:  false,
				Message: err.Error(),
			})
		case errors.Is(err, types.ErrIndexNotInitialized):
			c.JSON(http.StatusConflict, types.DataResponse{
				Status:  false,
				Message: err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, types.DataResponse{
				Status:  false,
				Message: "Failed to answer question",
			})
		}
		return
	}

	h.queries.Inc()
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   resp,
	})
}
