package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ChunkID is the composite identifier of a chunk: the owning document
// key plus the chunk's ordinal within that document. The serialized
// "<fileName>#<ordinal>" form only appears at the interface boundary.
type ChunkID struct {
	FileName string
	Ordinal  int
}

// String returns the stable serialized form of the identifier.
func (id ChunkID) String() string {
	return fmt.Sprintf("%s#%d", id.FileName, id.Ordinal)
}

// ParseChunkID parses the serialized "<fileName>#<ordinal>" form. The
// split happens on the last '#' so file names containing '#' survive.
func ParseChunkID(s string) (ChunkID, bool) {
	i := strings.LastIndex(s, "#")
	if i <= 0 || i == len(s)-1 {
		return ChunkID{}, false
	}
	ordinal, err := strconv.Atoi(s[i+1:])
	if err != nil || ordinal < 0 {
		return ChunkID{}, false
	}
	return ChunkID{FileName: s[:i], Ordinal: ordinal}, true
}

// TokenizedChunk is one contiguous word span of a document together with
// its token list. TokenCount always equals len(Tokens).
type TokenizedChunk struct {
	Text       string   `bson:"text" json:"text"`
	Title      string   `bson:"title,omitempty" json:"title,omitempty"`
	Tokens     []string `bson:"tokens" json:"tokens"`
	TokenCount int      `bson:"tokenCount" json:"tokenCount"`
}

// ChunkRecord is the persisted per-document record. All chunks of a
// document are written as one record keyed by file name; reprocessing
// replaces the record wholesale.
type ChunkRecord struct {
	FileName    string           `bson:"_id" json:"fileName"`
	ContentType string           `bson:"contentType" json:"contentType"`
	SizeBytes   int64            `bson:"sizeBytes" json:"sizeBytes"`
	OwnerID     string           `bson:"ownerId,omitempty" json:"ownerId,omitempty"`
	Chunks      []TokenizedChunk `bson:"chunks" json:"chunks"`
	TotalTokens int              `bson:"totalTokens" json:"totalTokens"`
	ProcessedAt time.Time        `bson:"processedAt" json:"processedAt"`
}

// ChunkListing is one retrieval item of the flattened cross-document
// chunk listing, denormalized for display and filtering.
type ChunkListing struct {
	ID       string `json:"id"`
	FileName string `json:"fileName"`
	Title    string `json:"title,omitempty"`
	Ordinal  int    `json:"ordinal"`
	Text     string `json:"text"`
}

// ProcessResponse is the ingestion entry point response body.
type ProcessResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message,omitempty"`
	TotalChunks int    `json:"totalChunks,omitempty"`
	TotalTokens int    `json:"totalTokens,omitempty"`
	Error       string `json:"error,omitempty"`
}

// GenerateRequest is the question-generation entry point request body.
type GenerateRequest struct {
	Prompt         string   `json:"prompt"`
	SelectedChunks []string `json:"selectedChunks"`
}

// GenerateResponse carries the raw completion text or an error message.
type GenerateResponse struct {
	Response string `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ErrorResponse is the generic error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
