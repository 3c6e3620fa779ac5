package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	services "github.com/docmind-ai/multirag-be/service"
	"github.com/docmind-ai/multirag-be/types"
)

type stubRetriever struct {
	chunks []types.Chunk
	err    error
}

func (r *stubRetriever) Retrieve(ctx context.Context, question string, topK int) ([]types.Chunk, error) {
	return r.chunks, r.err
}

type stubAI struct {
	answer string
}

func (a *stubAI) Generate(ctx context.Context, prompt string) (string, error) {
	return a.answer, nil
}

func newQueryRouter(retriever services.Retriever, ai services.AIService) (*gin.Engine, *StatsCounter) {
	gin.SetMode(gin.TestMode)
	counter := &StatsCounter{}
	h := NewQueryHandler(services.NewAnswerService(retriever, ai), counter)
	router := gin.New()
	router.POST("/api/v1/query", h.QueryHandler)
	return router, counter
}

func postQuery(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/query", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestQueryHandlerSuccess(t *testing.T) {
	retriever := &stubRetriever{chunks: []types.Chunk{
		{Content: "the margin is 40%", Metadata: types.ChunkMetadata{Page: 9, Reference: "Table 3"}},
	}}
	router, counter := newQueryRouter(retriever, &stubAI{answer: "The margin is 40%."})

	w := postQuery(t, router, `{"question":"what is the margin?"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Status bool                `json:"status"`
		Data   types.QueryResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !resp.Status || resp.Data.Answer != "The margin is 40%." {
		t.Errorf("unexpected response: %+v", resp)
	}
	if len(resp.Data.Citations) != 1 || resp.Data.Citations[0].Page != 9 {
		t.Errorf("expected one citation for page 9, got %+v", resp.Data.Citations)
	}
	if counter.Value() != 1 {
		t.Errorf("query counter should increment, got %d", counter.Value())
	}
}

func TestQueryHandlerEmptyQuestion(t *testing.T) {
	router, counter := newQueryRouter(&stubRetriever{}, &stubAI{})

	w := postQuery(t, router, `{"question":"  "}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if counter.Value() != 0 {
		t.Errorf("failed queries must not count, got %d", counter.Value())
	}
}

func TestQueryHandlerIndexNotInitialized(t *testing.T) {
	router, _ := newQueryRouter(&stubRetriever{err: types.ErrIndexNotInitialized}, &stubAI{})

	w := postQuery(t, router, `{"question":"anything"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "upload a document first") {
		t.Errorf("response should explain the empty index: %s", w.Body.String())
	}
}

func TestQueryHandlerInvalidBody(t *testing.T) {
	router, _ := newQueryRouter(&stubRetriever{}, &stubAI{})

	w := postQuery(t, router, `{invalid`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
