package report

import (
	"crypto/rand"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/bleu/pkg/bleu/score"
)

// Builder constructs evaluation reports with sortable IDs
type Builder struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// New creates a new report builder
func New() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// Source names the inputs of an evaluation
type Source struct {
	Candidate  string
	References []string
}

// Report is a scored evaluation ready for display or storage
type Report struct {
	ID             string
	CreatedAt      time.Time
	Candidate      string
	References     []string
	MaxOrder       int
	Score          float64
	BrevityPenalty float64
	Precisions     []float64
	Breakdown      map[string]float64
	Sentences      int
	Skipped        int
}

// Build creates a report for a scoring result
func (b *Builder) Build(src Source, res score.Result) Report {
	b.mu.Lock()
	now := b.now().UTC()
	id := ulid.MustNew(ulid.Timestamp(now), b.entropy).String()
	b.mu.Unlock()

	return Report{
		ID:             id,
		CreatedAt:      now,
		Candidate:      src.Candidate,
		References:     append([]string(nil), src.References...),
		MaxOrder:       res.MaxOrder,
		Score:          res.Score,
		BrevityPenalty: res.BrevityPenalty,
		Precisions:     append([]float64(nil), res.Precisions...),
		Breakdown:      res.Breakdown(),
		Sentences:      res.Sentences,
		Skipped:        res.Skipped,
	}
}

// Summary renders the report on one line, e.g.
//
//	BLEU = 34.12 70.0/45.1/30.2/20.0 (BP = 0.951, ratio = 0.952)
func (r Report) Summary() string {
	parts := make([]string, len(r.Precisions))
	for i, p := range r.Precisions {
		parts[i] = fmt.Sprintf("%.1f", p*100)
	}
	line := fmt.Sprintf("BLEU = %.2f %s (BP = %.3f", r.Score*100, strings.Join(parts, "/"), r.BrevityPenalty)
	if ratio, ok := r.Breakdown["ratio"]; ok {
		line += fmt.Sprintf(", ratio = %.3f", ratio)
	}
	return line + ")"
}
