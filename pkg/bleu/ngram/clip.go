package ngram

// Clip returns the clipped overlap between a candidate multiset and the
// multisets of its parallel references:
//
//	Σ_g min(cand[g], max_r refs[r][g])
//
// A reference lacking g contributes 0 to the max. Inputs are not modified.
func Clip(cand Counts, refs []Counts) int {
	clipped := 0
	for gram, count := range cand {
		best := MaxRefCount(gram, refs)
		if count < best {
			best = count
		}
		clipped += best
	}
	return clipped
}

// MaxRefCount returns the highest count of gram in any single reference.
func MaxRefCount(gram string, refs []Counts) int {
	best := 0
	for _, ref := range refs {
		if c := ref[gram]; c > best {
			best = c
		}
	}
	return best
}
