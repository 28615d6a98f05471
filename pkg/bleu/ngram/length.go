package ngram

// BestLengthMatch returns the reference length closest to candLen.
// Ties keep the first length in list order. An empty list returns 0.
func BestLengthMatch(refLens []int, candLen int) int {
	if len(refLens) == 0 {
		return 0
	}
	best := refLens[0]
	leastDiff := absInt(candLen - best)
	for _, l := range refLens[1:] {
		if d := absInt(candLen - l); d < leastDiff {
			leastDiff = d
			best = l
		}
	}
	return best
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
