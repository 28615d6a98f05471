package stats

import "testing"

func TestAccumulatorAdd(t *testing.T) {
	acc := NewAccumulator(2)
	acc.Add(2, 3, 5, 4)
	acc.Add(1, 1, 2, 2)
	acc.Skip()

	if acc.Clipped != 3 || acc.Total != 4 {
		t.Errorf("expected clipped=3 total=4, got %d/%d", acc.Clipped, acc.Total)
	}
	if acc.RefLength != 7 || acc.CandLength != 6 {
		t.Errorf("expected r=7 c=6, got %d/%d", acc.RefLength, acc.CandLength)
	}
	if acc.Sentences != 2 || acc.Skipped != 1 {
		t.Errorf("expected 2 sentences and 1 skipped, got %d/%d", acc.Sentences, acc.Skipped)
	}
	if p := acc.Precision(); p != 0.75 {
		t.Errorf("expected precision 0.75, got %f", p)
	}
}
