// Package score computes corpus-level BLEU.
//
// The score is the geometric mean of the modified n-gram precisions for
// orders 1..N multiplied by a brevity penalty:
//
//	BLEU = BP_N · (p_1 · p_2 · … · p_N)^(1/N)
//
// BP_N is the brevity penalty accumulated at the highest order only. Any
// order with no clipped matches makes the whole score 0.
package score

import (
	"fmt"

	"github.com/cognicore/bleu/pkg/bleu/ingest"
	"github.com/cognicore/bleu/pkg/bleu/internalerr"
	"github.com/cognicore/bleu/pkg/bleu/ngram"
	"github.com/cognicore/bleu/pkg/bleu/stats"
)

// OrderStats holds the corpus statistics of one n-gram order.
type OrderStats struct {
	N              int
	Clipped        int64
	Total          int64
	RefLength      int64
	CandLength     int64
	Precision      float64
	BrevityPenalty float64
}

// Result is the outcome of one scoring call.
type Result struct {
	Score          float64
	BrevityPenalty float64 // penalty of the highest order
	Precisions     []float64
	Orders         []OrderStats
	MaxOrder       int
	Sentences      int // aligned sentence positions
	Skipped        int // positions with an empty candidate
}

// Breakdown flattens the result into named components.
func (r Result) Breakdown() map[string]float64 {
	out := map[string]float64{
		"bleu": r.Score,
		"bp":   r.BrevityPenalty,
	}
	for i, p := range r.Precisions {
		out[fmt.Sprintf("p%d", i+1)] = p
	}
	if len(r.Orders) > 0 {
		last := r.Orders[len(r.Orders)-1]
		if last.RefLength > 0 {
			out["ratio"] = float64(last.CandLength) / float64(last.RefLength)
		}
	}
	return out
}

// Scorer computes BLEU with a fixed configuration.
type Scorer struct {
	maxOrder int
}

// New creates a scorer. The configuration is validated on every Score call.
func New(opt ...Option) *Scorer {
	opts := newOptions(opt...)
	return &Scorer{maxOrder: opts.maxOrder}
}

// MaxOrder returns the configured highest n-gram order.
func (s *Scorer) MaxOrder() int { return s.maxOrder }

// Compute scores candidate against references with the given options.
func Compute(candidate ingest.Corpus, references []ingest.Corpus, opt ...Option) (Result, error) {
	return New(opt...).Score(candidate, references)
}

// Score computes corpus BLEU. references[r][i] is reference r's
// translation of candidate[i].
func (s *Scorer) Score(candidate ingest.Corpus, references []ingest.Corpus) (Result, error) {
	if err := validate(candidate, references, s.maxOrder); err != nil {
		return Result{}, err
	}

	res := Result{
		MaxOrder:   s.maxOrder,
		Sentences:  len(candidate),
		Precisions: make([]float64, 0, s.maxOrder),
		Orders:     make([]OrderStats, 0, s.maxOrder),
	}

	for n := 1; n <= s.maxOrder; n++ {
		acc := accumulate(candidate, references, n)
		bp, err := acc.BrevityPenalty()
		if err != nil {
			return Result{}, fmt.Errorf("order %d: %w", n, err)
		}
		p := acc.Precision()
		res.Precisions = append(res.Precisions, p)
		res.Orders = append(res.Orders, OrderStats{
			N:              n,
			Clipped:        acc.Clipped,
			Total:          acc.Total,
			RefLength:      acc.RefLength,
			CandLength:     acc.CandLength,
			Precision:      p,
			BrevityPenalty: bp,
		})
		res.BrevityPenalty = bp
		res.Skipped = int(acc.Skipped)
	}

	mean, err := stats.GeometricMean(res.Precisions)
	if err != nil {
		return Result{}, err
	}
	res.Score = mean * res.BrevityPenalty
	return res, nil
}

// accumulate gathers the order-n statistics over every sentence position.
func accumulate(candidate ingest.Corpus, references []ingest.Corpus, n int) *stats.Accumulator {
	acc := stats.NewAccumulator(n)
	refCounts := make([]ngram.Counts, 0, len(references))
	refLens := make([]int, 0, len(references))

	for i, cand := range candidate {
		refCounts = refCounts[:0]
		refLens = refLens[:0]
		for _, ref := range references {
			sent := ref[i]
			refLens = append(refLens, sent.Len())
			if sent.Empty() {
				continue
			}
			refCounts = append(refCounts, ngram.Count(sent, n))
		}

		if cand.Empty() {
			acc.Skip()
			continue
		}
		candCounts := ngram.Count(cand, n)
		acc.Add(
			ngram.Clip(candCounts, refCounts),
			ngram.Windows(cand.Len(), n),
			ngram.BestLengthMatch(refLens, cand.Len()),
			cand.Len(),
		)
	}
	return acc
}

func validate(candidate ingest.Corpus, references []ingest.Corpus, maxOrder int) error {
	if maxOrder < 1 {
		return fmt.Errorf("max order %d: %w", maxOrder, internalerr.ErrInvalidConfig)
	}
	if len(references) == 0 {
		return internalerr.ErrNoReferences
	}
	for r, ref := range references {
		if len(ref) != len(candidate) {
			return fmt.Errorf("reference %d has %d sentences, candidate has %d: %w",
				r, len(ref), len(candidate), internalerr.ErrLengthMismatch)
		}
	}
	return nil
}
