package chunker

import (
	"fmt"
	"strings"
	"testing"
)

func wordSequence(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(words, " ")
}

func TestNew(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		c, err := New(1000, 100)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.maxChunkSize != 1000 || c.overlap != 100 {
			t.Errorf("config not applied: size=%d overlap=%d", c.maxChunkSize, c.overlap)
		}
	})

	t.Run("overlap equals size", func(t *testing.T) {
		if _, err := New(100, 100); err != ErrInvalidChunkConfig {
			t.Errorf("expected ErrInvalidChunkConfig, got %v", err)
		}
	})

	t.Run("overlap exceeds size", func(t *testing.T) {
		if _, err := New(100, 150); err != ErrInvalidChunkConfig {
			t.Errorf("expected ErrInvalidChunkConfig, got %v", err)
		}
	})

	t.Run("negative overlap", func(t *testing.T) {
		if _, err := New(100, -1); err != ErrInvalidChunkConfig {
			t.Errorf("expected ErrInvalidChunkConfig, got %v", err)
		}
	})

	t.Run("zero size", func(t *testing.T) {
		if _, err := New(0, 0); err != ErrInvalidChunkConfig {
			t.Errorf("expected ErrInvalidChunkConfig, got %v", err)
		}
	})
}

func TestChunk_Empty(t *testing.T) {
	c := NewDefault()
	if got := c.Chunk(""); len(got) != 0 {
		t.Errorf("expected 0 chunks for empty text, got %d", len(got))
	}
	if got := c.Chunk("   \n\t  "); len(got) != 0 {
		t.Errorf("expected 0 chunks for whitespace-only text, got %d", len(got))
	}
}

func TestChunk_SingleWindow(t *testing.T) {
	c, _ := New(10, 2)
	chunks := c.Chunk("one two three")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "one two three" {
		t.Errorf("chunk text mismatch: %q", chunks[0])
	}
}

// 1050 words at size 1000 / overlap 100 must produce exactly two
// windows: the full first window and a 150-word remainder that repeats
// the last 100 words of the first.
func TestChunk_OverlapWindow(t *testing.T) {
	c := NewDefault()
	chunks := c.Chunk(wordSequence(1050))
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}

	first := strings.Fields(chunks[0])
	second := strings.Fields(chunks[1])
	if len(first) != 1000 {
		t.Errorf("first chunk: expected 1000 words, got %d", len(first))
	}
	if len(second) != 150 {
		t.Errorf("second chunk: expected 150 words, got %d", len(second))
	}
	if second[0] != "w900" {
		t.Errorf("second chunk should start at the overlap boundary w900, got %s", second[0])
	}
	if second[len(second)-1] != "w1049" {
		t.Errorf("second chunk should end at w1049, got %s", second[len(second)-1])
	}
}

// When the word count is an exact window multiple no trailing
// overlap-only window may be emitted.
func TestChunk_ExactMultiple(t *testing.T) {
	c := NewDefault()
	chunks := c.Chunk(wordSequence(1000))
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk for exactly 1000 words, got %d", len(chunks))
	}
}

func TestChunk_CoverageAndOrder(t *testing.T) {
	c, _ := New(10, 3)
	words := 47
	chunks := c.Chunk(wordSequence(words))

	// ceil((N-O)/(M-O)) windows.
	wantChunks := (words - 3 + (10 - 3) - 1) / (10 - 3)
	if len(chunks) != wantChunks {
		t.Fatalf("expected %d chunks, got %d", wantChunks, len(chunks))
	}

	seen := make(map[string]bool)
	prevStart := -1
	for i, chunk := range chunks {
		cw := strings.Fields(chunk)
		if len(cw) == 0 || len(cw) > 10 {
			t.Fatalf("chunk %d has %d words, want (0, 10]", i, len(cw))
		}
		var start int
		if _, err := fmt.Sscanf(cw[0], "w%d", &start); err != nil {
			t.Fatalf("chunk %d first word %q: %v", i, cw[0], err)
		}
		if start <= prevStart {
			t.Errorf("chunk %d does not advance: start %d after %d", i, start, prevStart)
		}
		prevStart = start
		for _, w := range cw {
			seen[w] = true
		}
	}

	// Overlapping windows must cover every word with no gaps.
	if len(seen) != words {
		t.Errorf("coverage gap: %d of %d words seen", len(seen), words)
	}

	last := strings.Fields(chunks[len(chunks)-1])
	if last[len(last)-1] != fmt.Sprintf("w%d", words-1) {
		t.Errorf("last chunk must end at the final word, got %s", last[len(last)-1])
	}
}

func TestChunk_ZeroOverlap(t *testing.T) {
	c, _ := New(5, 0)
	chunks := c.Chunk(wordSequence(12))
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if got := len(strings.Fields(chunks[2])); got != 2 {
		t.Errorf("final chunk: expected 2 words, got %d", got)
	}
}
