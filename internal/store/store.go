// Package store persists and reads per-document chunk records in
// MongoDB. One record per file name keeps the "replace all chunks on
// reprocess" write a single-document operation, so readers never observe
// a mixture of old and new chunks.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/garyiyer/testqandas/internal/models"
)

// ErrStoreUnavailable wraps any read/write failure against the document
// database. Callers surface it without automatic retry.
var ErrStoreUnavailable = errors.New("chunk store unavailable")

// ErrChunkNotFound is returned when a chunk identifier does not resolve
// to a stored chunk.
var ErrChunkNotFound = errors.New("chunk not found")

const collectionName = "processed_files"

// Store reads and writes chunk records.
type Store struct {
	collection *mongo.Collection
}

// Connect connects to MongoDB, verifies the connection and returns a
// Store over the processed-files collection.
func Connect(ctx context.Context, uri, dbName string) (*Store, *mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return New(client.Database(dbName).Collection(collectionName)), client, nil
}

// New creates a Store over an existing collection handle.
func New(collection *mongo.Collection) *Store {
	return &Store{collection: collection}
}

// WriteRecord upserts the record keyed by its file name. ReplaceOne on a
// single document is atomic, so no partial-document state is ever
// readable; concurrent writes to the same key are last-write-wins.
func (s *Store) WriteRecord(ctx context.Context, record models.ChunkRecord) error {
	_, err := s.collection.ReplaceOne(ctx,
		bson.M{"_id": record.FileName},
		record,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%w: replace %q: %v", ErrStoreUnavailable, record.FileName, err)
	}
	return nil
}

// GetRecord fetches one document's chunk record by file name.
func (s *Store) GetRecord(ctx context.Context, fileName string) (models.ChunkRecord, error) {
	var record models.ChunkRecord
	err := s.collection.FindOne(ctx, bson.M{"_id": fileName}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.ChunkRecord{}, ErrChunkNotFound
	}
	if err != nil {
		return models.ChunkRecord{}, fmt.Errorf("%w: get %q: %v", ErrStoreUnavailable, fileName, err)
	}
	return record, nil
}

// ListChunks enumerates every chunk across all documents as flattened
// listing items, ordered by file name then chunk ordinal. This is an
// unbounded full-collection scan: filtering happens client side and
// pagination is a deliberate non-goal of this version.
func (s *Store) ListChunks(ctx context.Context) ([]models.ChunkListing, error) {
	cursor, err := s.collection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%w: list: %v", ErrStoreUnavailable, err)
	}
	defer cursor.Close(ctx)

	var listings []models.ChunkListing
	for cursor.Next(ctx) {
		var record models.ChunkRecord
		if err := cursor.Decode(&record); err != nil {
			return nil, fmt.Errorf("%w: decode record: %v", ErrStoreUnavailable, err)
		}
		listings = append(listings, FlattenRecord(record)...)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%w: cursor: %v", ErrStoreUnavailable, err)
	}
	return listings, nil
}

// GetChunkText resolves a composite chunk identifier to its stored text.
func (s *Store) GetChunkText(ctx context.Context, id models.ChunkID) (string, error) {
	record, err := s.GetRecord(ctx, id.FileName)
	if err != nil {
		return "", err
	}
	if id.Ordinal < 0 || id.Ordinal >= len(record.Chunks) {
		return "", ErrChunkNotFound
	}
	return record.Chunks[id.Ordinal].Text, nil
}

// FlattenRecord expands one document record into per-chunk listing
// items. Ordinals are the slice positions of the stored chunk sequence,
// contiguous from 0 by construction.
func FlattenRecord(record models.ChunkRecord) []models.ChunkListing {
	listings := make([]models.ChunkListing, 0, len(record.Chunks))
	for i, chunk := range record.Chunks {
		listings = append(listings, models.ChunkListing{
			ID:       models.ChunkID{FileName: record.FileName, Ordinal: i}.String(),
			FileName: record.FileName,
			Title:    chunk.Title,
			Ordinal:  i,
			Text:     chunk.Text,
		})
	}
	return listings
}
