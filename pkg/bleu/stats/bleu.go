package stats

import (
	"fmt"
	"math"

	"github.com/cognicore/bleu/pkg/bleu/internalerr"
)

// Precision returns the modified n-gram precision.
//
// A zero clipped count yields 0 regardless of total, signalling "no overlap
// at this order".
func Precision(clipped, total int64) float64 {
	if clipped == 0 || total == 0 {
		return 0
	}
	return float64(clipped) / float64(total)
}

// BrevityPenalty computes the BLEU brevity penalty
//
//	BP = 1               if c > r
//	BP = exp(1 - r/c)    otherwise
//
// Where c is the total candidate length and r the total best-match
// reference length. c == 0 has no defined value and returns
// ErrZeroCandidateLength.
func BrevityPenalty(c, r int64) (float64, error) {
	if c <= 0 {
		return 0, fmt.Errorf("brevity penalty with c=%d r=%d: %w", c, r, internalerr.ErrZeroCandidateLength)
	}
	if c > r {
		return 1, nil
	}
	return math.Exp(1 - float64(r)/float64(c)), nil
}

// GeometricMean returns the Nth root of the product of N precisions.
// Any zero precision makes the mean 0; there is no smoothing.
func GeometricMean(precisions []float64) (float64, error) {
	if len(precisions) == 0 {
		return 0, fmt.Errorf("geometric mean of no precisions: %w", internalerr.ErrInvalidConfig)
	}
	product := 1.0
	for _, p := range precisions {
		if p == 0 {
			return 0, nil
		}
		product *= p
	}
	return math.Pow(product, 1.0/float64(len(precisions))), nil
}
