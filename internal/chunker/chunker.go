// Package chunker splits extracted document text into overlapping
// fixed-size word windows.
package chunker

import (
	"errors"
	"strings"
)

const (
	// DefaultMaxChunkSize is the default window size in words.
	DefaultMaxChunkSize = 1000
	// DefaultOverlap is the default number of trailing words repeated
	// between consecutive windows.
	DefaultOverlap = 100
)

// ErrInvalidChunkConfig is returned when the overlap is negative or not
// strictly smaller than the window size. An overlap >= window size would
// make the window stop advancing, so it is rejected outright.
var ErrInvalidChunkConfig = errors.New("invalid chunk configuration: overlap must satisfy 0 <= overlap < maxChunkSize")

// Chunker produces overlapping word windows from plain text.
type Chunker struct {
	maxChunkSize int
	overlap      int
}

// New creates a Chunker. maxChunkSize is the window size in words and
// overlap is the number of words repeated between consecutive windows.
func New(maxChunkSize, overlap int) (*Chunker, error) {
	if maxChunkSize <= 0 || overlap < 0 || overlap >= maxChunkSize {
		return nil, ErrInvalidChunkConfig
	}
	return &Chunker{maxChunkSize: maxChunkSize, overlap: overlap}, nil
}

// NewDefault creates a Chunker with the default window size and overlap.
func NewDefault() *Chunker {
	c, _ := New(DefaultMaxChunkSize, DefaultOverlap)
	return c
}

// Chunk splits text on whitespace and emits windows of up to
// maxChunkSize words, each window starting maxChunkSize-overlap words
// after the previous one. Words within a window are rejoined with single
// spaces. The final window may be shorter than maxChunkSize; empty input
// yields no chunks. Emission order is the chunk ordinal, so the scan
// must stay sequential.
func (c *Chunker) Chunk(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	step := c.maxChunkSize - c.overlap
	chunks := make([]string, 0, (len(words)+step-1)/step)

	for start := 0; start < len(words); start += step {
		end := start + c.maxChunkSize
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
		if end == len(words) {
			break
		}
	}

	return chunks
}
