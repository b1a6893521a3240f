package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyiyer/testqandas/internal/gemini"
	"github.com/garyiyer/testqandas/internal/models"
)

func TestHandleGenerateSuccess(t *testing.T) {
	gen := &fakeGenerator{response: "1. What is photosynthesis?\nA) ..."}
	h := newTestHandler(&fakeIngestor{}, &fakeChunkReader{}, &fakeBlobs{}, gen)

	body := `{"prompt":"biology basics","selectedChunks":["plants convert light","cells divide"]}`
	w := performJSON(h.HandleGenerate, http.MethodPost, "/api/generate", body)

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, gen.response, resp.Response)
	assert.Empty(t, resp.Error)

	assert.Equal(t, "biology basics", gen.gotInstruction)
	assert.Equal(t, []string{"plants convert light", "cells divide"}, gen.gotChunks)
}

func TestHandleGenerateEmptySelection(t *testing.T) {
	h := newTestHandler(&fakeIngestor{}, &fakeChunkReader{}, &fakeBlobs{}, &fakeGenerator{})

	w := performJSON(h.HandleGenerate, http.MethodPost, "/api/generate", `{"prompt":"anything","selectedChunks":[]}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp models.GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid input: prompt and at least one selected chunk are required", resp.Error)
}

func TestHandleGenerateEmptyPrompt(t *testing.T) {
	h := newTestHandler(&fakeIngestor{}, &fakeChunkReader{}, &fakeBlobs{}, &fakeGenerator{})

	w := performJSON(h.HandleGenerate, http.MethodPost, "/api/generate", `{"prompt":"","selectedChunks":["some text"]}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleGeneratePromptTooLong(t *testing.T) {
	h := newTestHandler(&fakeIngestor{}, &fakeChunkReader{}, &fakeBlobs{}, &fakeGenerator{})

	long := strings.Repeat("x", maxPromptLength+1)
	body := `{"prompt":"` + long + `","selectedChunks":["some text"]}`
	w := performJSON(h.HandleGenerate, http.MethodPost, "/api/generate", body)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "200 characters")
}

func TestHandleGenerateTooManyChunks(t *testing.T) {
	h := newTestHandler(&fakeIngestor{}, &fakeChunkReader{}, &fakeBlobs{}, &fakeGenerator{})

	body := `{"prompt":"ok","selectedChunks":["a","b","c","d","e","f"]}`
	w := performJSON(h.HandleGenerate, http.MethodPost, "/api/generate", body)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "At most 5 chunks")
}

func TestHandleGenerateResolvesChunkIDs(t *testing.T) {
	chunks := &fakeChunkReader{texts: map[string]string{
		"report.txt#0": "stored chunk text",
	}}
	gen := &fakeGenerator{response: "questions"}
	h := newTestHandler(&fakeIngestor{}, chunks, &fakeBlobs{}, gen)

	body := `{"prompt":"summarize","selectedChunks":["report.txt#0","literal passage"]}`
	w := performJSON(h.HandleGenerate, http.MethodPost, "/api/generate", body)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"stored chunk text", "literal passage"}, gen.gotChunks)
}

func TestHandleGenerateUnknownIDFallsBackToLiteral(t *testing.T) {
	gen := &fakeGenerator{response: "questions"}
	h := newTestHandler(&fakeIngestor{}, &fakeChunkReader{texts: map[string]string{}}, &fakeBlobs{}, gen)

	body := `{"prompt":"summarize","selectedChunks":["missing.txt#9"]}`
	w := performJSON(h.HandleGenerate, http.MethodPost, "/api/generate", body)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"missing.txt#9"}, gen.gotChunks)
}

func TestHandleGenerateStoreErrorDuringResolve(t *testing.T) {
	chunks := &fakeChunkReader{getErr: errors.New("connection reset")}
	h := newTestHandler(&fakeIngestor{}, chunks, &fakeBlobs{}, &fakeGenerator{})

	body := `{"prompt":"summarize","selectedChunks":["report.txt#0"]}`
	w := performJSON(h.HandleGenerate, http.MethodPost, "/api/generate", body)

	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandleGenerateMisconfiguredBackend(t *testing.T) {
	gen := &fakeGenerator{err: gemini.ErrMisconfigured}
	h := newTestHandler(&fakeIngestor{}, &fakeChunkReader{}, &fakeBlobs{}, gen)

	body := `{"prompt":"summarize","selectedChunks":["some text"]}`
	w := performJSON(h.HandleGenerate, http.MethodPost, "/api/generate", body)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var resp models.GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Question generation is not configured", resp.Error)
}

func TestHandleGenerateBackendFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model timeout")}
	h := newTestHandler(&fakeIngestor{}, &fakeChunkReader{}, &fakeBlobs{}, gen)

	body := `{"prompt":"summarize","selectedChunks":["some text"]}`
	w := performJSON(h.HandleGenerate, http.MethodPost, "/api/generate", body)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var resp models.GenerateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to generate questions", resp.Error)
}
