package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garyiyer/testqandas/internal/ingest"
	"github.com/garyiyer/testqandas/internal/models"
	"github.com/garyiyer/testqandas/internal/store"
)

// processRequest is the ingestion entry point request body.
type processRequest struct {
	FileName string `json:"fileName"`
}

// HandleProcessFile runs the ingestion pipeline for a previously
// uploaded file: retrieve bytes, extract text, chunk, tokenize and
// persist the chunk record, replacing any prior record for the name.
func (h *Handler) HandleProcessFile(c *gin.Context) {
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ProcessResponse{Success: false, Error: "Invalid request body"})
		return
	}
	if req.FileName == "" {
		c.JSON(http.StatusBadRequest, models.ProcessResponse{Success: false, Error: "No file name provided"})
		return
	}

	log.Printf("INFO: Preparing file for AI processing: %s", req.FileName)

	result, err := h.Ingestor.Process(c.Request.Context(), req.FileName, userIDString(c))
	if err != nil {
		var unsupported *ingest.UnsupportedFileTypeError
		switch {
		case errors.As(err, &unsupported):
			c.JSON(http.StatusBadRequest, models.ProcessResponse{Success: false, Error: unsupported.Error()})
		case errors.Is(err, store.ErrStoreUnavailable):
			log.Printf("ERROR: Chunk store write failed for %s: %v", req.FileName, err)
			c.JSON(http.StatusInternalServerError, models.ProcessResponse{Success: false, Error: "Document store is unavailable"})
		default:
			log.Printf("ERROR: Failed to process %s: %v", req.FileName, err)
			c.JSON(http.StatusInternalServerError, models.ProcessResponse{Success: false, Error: "Failed to process file"})
		}
		return
	}

	c.JSON(http.StatusOK, models.ProcessResponse{
		Success:     true,
		Message:     "File prepared for AI processing",
		TotalChunks: result.TotalChunks,
		TotalTokens: result.TotalTokens,
	})
}

// HandleUploadFile stores an uploaded file in the blob store under
// uploads/<fileName>. A later upload of an existing name supersedes it,
// but only with explicit confirmation (overwrite=true), since
// reprocessing fully replaces the document's chunks.
func (h *Handler) HandleUploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "No file provided", err)
		return
	}

	contentType, err := ingest.ResolveFileType(fileHeader.Filename)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	if c.PostForm("overwrite") != "true" {
		exists, err := h.Blobs.Exists(c.Request.Context(), fileHeader.Filename)
		if err != nil {
			h.respondError(c, http.StatusInternalServerError, "Failed to check for existing file", err)
			return
		}
		if exists {
			h.respondError(c, http.StatusConflict, "File already exists; re-upload with overwrite=true to replace it", errors.New("duplicate file name"))
			return
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.respondError(c, http.StatusInternalServerError, "Failed to read uploaded file", err)
		return
	}
	defer file.Close()

	if err := h.Blobs.Upload(c.Request.Context(), fileHeader.Filename, contentType, file); err != nil {
		h.respondError(c, http.StatusInternalServerError, "Failed to store uploaded file", err)
		return
	}

	log.Printf("INFO: Stored upload %s (%d bytes) for user %s", fileHeader.Filename, fileHeader.Size, userIDString(c))
	c.JSON(http.StatusOK, gin.H{
		"fileName": fileHeader.Filename,
		"size":     fileHeader.Size,
		"message":  "File uploaded",
	})
}
