// Package selection implements the ephemeral, capped set of chunks a
// user picks for one question-generation session. Nothing here is
// persisted; a Selection lives and dies with its session.
package selection

import (
	"strings"

	"github.com/garyiyer/testqandas/internal/models"
)

// MaxSelected is the maximum number of chunks that can be selected at
// once.
const MaxSelected = 5

// Selection is an ordered, bounded set of chunk identifiers. Order is
// insertion order; it governs the order chunk texts are later joined
// into the prompt context.
type Selection struct {
	max int
	ids []models.ChunkID
}

// New creates an empty Selection with the given cap; max <= 0 falls
// back to MaxSelected.
func New(max int) *Selection {
	if max <= 0 {
		max = MaxSelected
	}
	return &Selection{max: max}
}

// Add appends the identifier. Adding an existing member or adding when
// the selection is full is a rejected no-op; the return value reports
// whether the selection changed.
func (s *Selection) Add(id models.ChunkID) bool {
	if s.Contains(id) || len(s.ids) >= s.max {
		return false
	}
	s.ids = append(s.ids, id)
	return true
}

// Remove deselects the identifier, reporting whether it was a member.
func (s *Selection) Remove(id models.ChunkID) bool {
	for i, existing := range s.ids {
		if existing == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return true
		}
	}
	return false
}

// Toggle adds the identifier if absent and removes it if present,
// subject to the cap. It returns the current members after the change
// so the caller sees every update, unbatched.
func (s *Selection) Toggle(id models.ChunkID) []models.ChunkID {
	if s.Contains(id) {
		s.Remove(id)
	} else {
		s.Add(id)
	}
	return s.IDs()
}

// Contains reports membership.
func (s *Selection) Contains(id models.ChunkID) bool {
	for _, existing := range s.ids {
		if existing == id {
			return true
		}
	}
	return false
}

// Len returns the number of selected chunks.
func (s *Selection) Len() int {
	return len(s.ids)
}

// IDs returns the selected identifiers in selection order.
func (s *Selection) IDs() []models.ChunkID {
	out := make([]models.ChunkID, len(s.ids))
	copy(out, s.ids)
	return out
}

// Filter returns the listings whose chunk text, owning file name or
// chunk title contains the query, case-insensitively. An empty query
// matches everything.
func Filter(listings []models.ChunkListing, query string) []models.ChunkListing {
	if query == "" {
		return listings
	}
	q := strings.ToLower(query)
	var matched []models.ChunkListing
	for _, l := range listings {
		if strings.Contains(strings.ToLower(l.Text), q) ||
			strings.Contains(strings.ToLower(l.FileName), q) ||
			strings.Contains(strings.ToLower(l.Title), q) {
			matched = append(matched, l)
		}
	}
	return matched
}
