package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/garyiyer/testqandas/internal/ingest"
	"github.com/garyiyer/testqandas/internal/models"
	"github.com/garyiyer/testqandas/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeIngestor struct {
	result    ingest.Result
	err       error
	processed []string
}

func (f *fakeIngestor) Process(_ context.Context, fileName, _ string) (ingest.Result, error) {
	f.processed = append(f.processed, fileName)
	if f.err != nil {
		return ingest.Result{}, f.err
	}
	return f.result, nil
}

type fakeChunkReader struct {
	listings []models.ChunkListing
	listErr  error
	texts    map[string]string
	getErr   error
}

func (f *fakeChunkReader) ListChunks(_ context.Context) ([]models.ChunkListing, error) {
	return f.listings, f.listErr
}

func (f *fakeChunkReader) GetChunkText(_ context.Context, id models.ChunkID) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	text, ok := f.texts[id.String()]
	if !ok {
		return "", store.ErrChunkNotFound
	}
	return text, nil
}

type fakeGenerator struct {
	response       string
	err            error
	gotInstruction string
	gotChunks      []string
}

func (f *fakeGenerator) GenerateQuestions(_ context.Context, instruction string, chunks []string) (string, error) {
	f.gotInstruction = instruction
	f.gotChunks = chunks
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type fakeBlobs struct {
	existing  map[string]bool
	existsErr error
	uploadErr error
	uploaded  []string
}

func (f *fakeBlobs) Upload(_ context.Context, fileName, _ string, _ io.Reader) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploaded = append(f.uploaded, fileName)
	return nil
}

func (f *fakeBlobs) Exists(_ context.Context, fileName string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.existing[fileName], nil
}

func newTestHandler(ingestor Ingestor, chunks ChunkReader, blobs BlobStore, generator Generator) *Handler {
	return NewHandler(nil, "test_session", nil, ingestor, chunks, blobs, generator)
}

func performJSON(handlerFunc gin.HandlerFunc, method, path, body string) *httptest.ResponseRecorder {
	router := gin.New()
	router.Handle(method, path, handlerFunc)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func performGET(handlerFunc gin.HandlerFunc, path string) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/api/chunks", handlerFunc)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
