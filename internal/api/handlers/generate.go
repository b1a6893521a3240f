package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garyiyer/testqandas/internal/gemini"
	"github.com/garyiyer/testqandas/internal/models"
	"github.com/garyiyer/testqandas/internal/prompt"
	"github.com/garyiyer/testqandas/internal/selection"
	"github.com/garyiyer/testqandas/internal/store"
)

// maxPromptLength bounds the user instruction.
const maxPromptLength = 200

// HandleGenerate assembles the selected chunks and the user instruction
// into a prompt and requests a completion from the model backend. One
// blocking round-trip per request; a timeout of the backend call is a
// generation failure, never an empty-selection error.
func (h *Handler) HandleGenerate(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.GenerateResponse{Error: "Invalid request body"})
		return
	}

	if req.Prompt == "" || len(req.SelectedChunks) == 0 {
		c.JSON(http.StatusBadRequest, models.GenerateResponse{Error: "Invalid input: prompt and at least one selected chunk are required"})
		return
	}
	if len(req.Prompt) > maxPromptLength {
		c.JSON(http.StatusBadRequest, models.GenerateResponse{Error: "Prompt must be at most 200 characters"})
		return
	}
	if len(req.SelectedChunks) > selection.MaxSelected {
		c.JSON(http.StatusBadRequest, models.GenerateResponse{Error: "At most 5 chunks may be selected"})
		return
	}

	chunkTexts, err := h.resolveChunks(c, req.SelectedChunks)
	if err != nil {
		log.Printf("ERROR: Failed to resolve selected chunks: %v", err)
		c.JSON(http.StatusInternalServerError, models.GenerateResponse{Error: "Document store is unavailable"})
		return
	}

	response, err := h.Generator.GenerateQuestions(c.Request.Context(), req.Prompt, chunkTexts)
	if err != nil {
		switch {
		case errors.Is(err, prompt.ErrEmptySelection):
			c.JSON(http.StatusBadRequest, models.GenerateResponse{Error: "At least one chunk must be selected"})
		case errors.Is(err, gemini.ErrMisconfigured):
			log.Printf("ERROR: Model backend misconfigured: %v", err)
			c.JSON(http.StatusInternalServerError, models.GenerateResponse{Error: "Question generation is not configured"})
		default:
			log.Printf("ERROR: Generation failed: %v", err)
			c.JSON(http.StatusInternalServerError, models.GenerateResponse{Error: "Failed to generate questions"})
		}
		return
	}

	c.JSON(http.StatusOK, models.GenerateResponse{Response: response})
}

// resolveChunks maps the request's selectedChunks entries to chunk
// texts, preserving request order (selection order governs context
// assembly). An entry that parses as a chunk identifier and resolves in
// the store is replaced by the stored text; anything else is used
// verbatim as chunk text.
func (h *Handler) resolveChunks(c *gin.Context, selected []string) ([]string, error) {
	texts := make([]string, 0, len(selected))
	for _, entry := range selected {
		if id, ok := models.ParseChunkID(entry); ok {
			text, err := h.Chunks.GetChunkText(c.Request.Context(), id)
			if err == nil {
				texts = append(texts, text)
				continue
			}
			if !errors.Is(err, store.ErrChunkNotFound) {
				return nil, err
			}
		}
		texts = append(texts, entry)
	}
	return texts, nil
}
