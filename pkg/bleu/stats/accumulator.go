package stats

// Accumulator sums corpus statistics for one n-gram order.
type Accumulator struct {
	Order      int
	Clipped    int64 // clipped n-gram matches
	Total      int64 // candidate n-gram windows
	RefLength  int64 // best-matching reference lengths (r)
	CandLength int64 // candidate lengths (c)
	Sentences  int64 // sentences that contributed
	Skipped    int64 // sentences excluded because the candidate was empty
}

// NewAccumulator creates an empty accumulator for order n.
func NewAccumulator(n int) *Accumulator {
	return &Accumulator{Order: n}
}

// Add records one non-empty candidate sentence.
func (a *Accumulator) Add(clipped, windows, refLen, candLen int) {
	a.Clipped += int64(clipped)
	a.Total += int64(windows)
	a.RefLength += int64(refLen)
	a.CandLength += int64(candLen)
	a.Sentences++
}

// Skip records a sentence excluded from this order.
func (a *Accumulator) Skip() {
	a.Skipped++
}

// Precision returns Clipped/Total, or 0 when nothing was clipped.
func (a *Accumulator) Precision() float64 {
	return Precision(a.Clipped, a.Total)
}

// BrevityPenalty returns the penalty for this order's lengths.
func (a *Accumulator) BrevityPenalty() (float64, error) {
	return BrevityPenalty(a.CandLength, a.RefLength)
}
