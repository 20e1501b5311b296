package report

import (
	"time"

	"github.com/google/uuid"
)

// Run describes one fetch-and-normalize pass.
type Run struct {
	ID        uuid.UUID
	FetchedAt time.Time

	Requested int // Record limit asked of the API
	Fetched   int // Raw records received
	Accepted  int // Records normalized into markets
	Skipped   int // Records rejected by the normalizer

	// Rejections counts skipped records by rejection code.
	Rejections map[string]int
}

// NewRun returns a Run with a fresh ID.
func NewRun(fetchedAt time.Time, requested int) Run {
	return Run{
		ID:         uuid.New(),
		FetchedAt:  fetchedAt.UTC(),
		Requested:  requested,
		Rejections: map[string]int{},
	}
}

// Record fills in the normalization counts. Fetched is accepted + skipped.
func (r *Run) Record(accepted, skipped int, rejections map[string]int) {
	r.Accepted = accepted
	r.Skipped = skipped
	r.Fetched = accepted + skipped
	if rejections != nil {
		r.Rejections = rejections
	}
}
