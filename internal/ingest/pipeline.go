package ingest

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/garyiyer/testqandas/internal/chunker"
	"github.com/garyiyer/testqandas/internal/models"
	"github.com/garyiyer/testqandas/internal/tokenizer"
)

// BlobDownloader retrieves the raw uploaded bytes for a file name.
type BlobDownloader interface {
	Download(ctx context.Context, fileName string) ([]byte, error)
}

// RecordWriter persists a document's chunk record, replacing any prior
// record for the same file name.
type RecordWriter interface {
	WriteRecord(ctx context.Context, record models.ChunkRecord) error
}

// Result reports the outcome of processing one document.
type Result struct {
	TotalChunks int
	TotalTokens int
}

// Processor runs the ingestion pipeline for a single document: resolve
// type, download, extract, chunk, tokenize, write. The steps run
// strictly sequentially because chunk ordinals depend on scan order.
// Separate documents may be processed concurrently; each write is
// scoped to its own file name and last write wins.
type Processor struct {
	blobs   BlobDownloader
	store   RecordWriter
	chunker *chunker.Chunker
}

// NewProcessor creates a Processor using the default chunk window
// (1000 words, 100-word overlap).
func NewProcessor(blobs BlobDownloader, store RecordWriter) *Processor {
	return &Processor{
		blobs:   blobs,
		store:   store,
		chunker: chunker.NewDefault(),
	}
}

// NewProcessorWithChunker creates a Processor with a custom chunk
// window configuration.
func NewProcessorWithChunker(blobs BlobDownloader, store RecordWriter, c *chunker.Chunker) *Processor {
	return &Processor{blobs: blobs, store: store, chunker: c}
}

// Process ingests one uploaded document and persists its tokenized
// chunks as a single record. Re-processing the same file name fully
// replaces the previous record; nothing is appended.
func (p *Processor) Process(ctx context.Context, fileName, ownerID string) (Result, error) {
	contentType, err := ResolveFileType(fileName)
	if err != nil {
		return Result{}, err
	}

	data, err := p.blobs.Download(ctx, fileName)
	if err != nil {
		return Result{}, fmt.Errorf("failed to retrieve %q from blob store: %w", fileName, err)
	}

	text, err := ExtractText(data, contentType)
	if err != nil {
		return Result{}, err
	}

	chunks := p.chunker.Chunk(text)
	tokenized := make([]models.TokenizedChunk, 0, len(chunks))
	totalTokens := 0
	for _, chunkText := range chunks {
		tokens := tokenizer.Tokenize(chunkText)
		tokenized = append(tokenized, models.TokenizedChunk{
			Text:       chunkText,
			Tokens:     tokens,
			TokenCount: len(tokens),
		})
		totalTokens += len(tokens)
	}

	record := models.ChunkRecord{
		FileName:    fileName,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
		OwnerID:     ownerID,
		Chunks:      tokenized,
		TotalTokens: totalTokens,
		ProcessedAt: time.Now().UTC(),
	}
	if err := p.store.WriteRecord(ctx, record); err != nil {
		return Result{}, fmt.Errorf("failed to store chunk record for %q: %w", fileName, err)
	}

	log.Printf("INFO: Processed %s: %d chunks, %d tokens", fileName, len(tokenized), totalTokens)
	return Result{TotalChunks: len(tokenized), TotalTokens: totalTokens}, nil
}
