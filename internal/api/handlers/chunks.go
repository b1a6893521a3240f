package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garyiyer/testqandas/internal/models"
	"github.com/garyiyer/testqandas/internal/selection"
)

// HandleListChunks returns every persisted chunk across all documents,
// optionally narrowed by a case-insensitive substring filter over chunk
// text, file name and chunk title. The underlying read is a full
// collection scan; there is no pagination in this version.
func (h *Handler) HandleListChunks(c *gin.Context) {
	listings, err := h.Chunks.ListChunks(c.Request.Context())
	if err != nil {
		h.respondError(c, http.StatusInternalServerError, "Failed to list chunks", err)
		return
	}

	if filter := c.Query("filter"); filter != "" {
		listings = selection.Filter(listings, filter)
	}
	if listings == nil {
		listings = []models.ChunkListing{}
	}

	c.JSON(http.StatusOK, gin.H{
		"chunks":      listings,
		"maxSelected": selection.MaxSelected,
	})
}
