package handlers

import (
	"context"
	"io"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/garyiyer/testqandas/internal/db"
	"github.com/garyiyer/testqandas/internal/ingest"
	"github.com/garyiyer/testqandas/internal/models"
)

// UserProfile stores information about the authenticated user.
type UserProfile struct {
	DatabaseID    uuid.UUID `json:"-"`  // internal DB UUID, omitted from responses
	GoogleID      string    `json:"id"` // provider's ID
	Email         string    `json:"email"`
	VerifiedEmail bool      `json:"verified_email"`
	Name          string    `json:"name"`
	Picture       string    `json:"picture"`
}

// Session keys - keep these consistent.
const (
	OauthStateSessionKey = "oauthstate"
	ProfileSessionKey    = "profile"
)

// Ingestor runs the ingestion pipeline for one uploaded document.
type Ingestor interface {
	Process(ctx context.Context, fileName, ownerID string) (ingest.Result, error)
}

// ChunkReader is the retrieval side of the chunk store.
type ChunkReader interface {
	ListChunks(ctx context.Context) ([]models.ChunkListing, error)
	GetChunkText(ctx context.Context, id models.ChunkID) (string, error)
}

// Generator produces exam-style questions for an instruction and the
// selected chunk texts.
type Generator interface {
	GenerateQuestions(ctx context.Context, instruction string, chunks []string) (string, error)
}

// BlobStore is the upload side of the blob store.
type BlobStore interface {
	Upload(ctx context.Context, fileName, contentType string, content io.Reader) error
	Exists(ctx context.Context, fileName string) (bool, error)
}

// Handler contains the API handlers' dependencies. Everything pipeline-
// facing is an interface so tests can substitute fakes.
type Handler struct {
	OauthConfig *oauth2.Config
	StoreName   string
	DB          *db.DB
	Ingestor    Ingestor
	Chunks      ChunkReader
	Blobs       BlobStore
	Generator   Generator
}

// NewHandler creates a new Handler.
func NewHandler(oauth *oauth2.Config, storeName string, database *db.DB, ingestor Ingestor, chunks ChunkReader, blobs BlobStore, generator Generator) *Handler {
	return &Handler{
		OauthConfig: oauth,
		StoreName:   storeName,
		DB:          database,
		Ingestor:    ingestor,
		Chunks:      chunks,
		Blobs:       blobs,
		Generator:   generator,
	}
}

// respondError logs the failure with detail and aborts the request with
// a well-formed JSON error body.
func (h *Handler) respondError(c *gin.Context, statusCode int, errorContext string, err error) {
	log.Printf("ERROR: %s: %v (path: %s)", errorContext, err, c.Request.URL.Path)
	c.AbortWithStatusJSON(statusCode, models.ErrorResponse{Error: errorContext})
}

// userIDString returns the authenticated user's internal ID from the
// context, or "" when the request is unauthenticated.
func userIDString(c *gin.Context) string {
	value, exists := c.Get("userID")
	if !exists {
		return ""
	}
	id, ok := value.(uuid.UUID)
	if !ok {
		return ""
	}
	return id.String()
}
