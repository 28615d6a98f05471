package analytics

import (
	"math"
	"testing"

	"github.com/cognicore/bleu/pkg/bleu/ingest"
)

func TestAnalyzerStats(t *testing.T) {
	c := ingest.NewCorpus([]string{"The cat sat", "", "the dog", "  "})
	stats := Analyze(c)

	if stats.Sentences != 4 || stats.Empty != 2 {
		t.Fatalf("expected 4 sentences and 2 empty, got %d/%d", stats.Sentences, stats.Empty)
	}
	if stats.Tokens != 5 {
		t.Errorf("expected 5 tokens, got %d", stats.Tokens)
	}
	if stats.Vocabulary != 4 {
		t.Errorf("expected vocabulary 4 (case-folded), got %d", stats.Vocabulary)
	}
	if math.Abs(stats.MeanLength-2.5) > 1e-9 {
		t.Errorf("expected mean length 2.5, got %f", stats.MeanLength)
	}
	if stats.MaxLength != 3 {
		t.Errorf("expected max length 3, got %d", stats.MaxLength)
	}
	if stats.EmptyRatio() != 0.5 {
		t.Errorf("expected empty ratio 0.5, got %f", stats.EmptyRatio())
	}
}

func TestTopTokens(t *testing.T) {
	stats := Analyze(ingest.NewCorpus([]string{"b a a", "c b a"}))
	top := stats.TopTokens(2)

	if len(top) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(top))
	}
	if top[0].Token != "a" || top[0].Count != 3 {
		t.Errorf("expected a=3 first, got %+v", top[0])
	}
	if top[1].Token != "b" || top[1].Count != 2 {
		t.Errorf("expected b=2 second, got %+v", top[1])
	}
	if all := stats.TopTokens(0); len(all) != 3 {
		t.Errorf("k=0 should return all tokens, got %d", len(all))
	}
}

func TestSnapshotIsolated(t *testing.T) {
	a := NewAnalyzer()
	a.ProcessSentence(ingest.Tokenize("x y"))
	snap := a.Snapshot()
	a.ProcessSentence(ingest.Tokenize("x z"))

	if snap.Sentences != 1 || snap.Vocabulary != 2 {
		t.Errorf("snapshot changed after further processing: %+v", snap)
	}
	if got := snap.TopTokens(1)[0]; got.Count != 1 {
		t.Errorf("snapshot token counts changed: %+v", got)
	}
}

func TestEmptyAnalyzer(t *testing.T) {
	stats := NewAnalyzer().Snapshot()
	if stats.MeanLength != 0 || stats.EmptyRatio() != 0 || len(stats.TopTokens(5)) != 0 {
		t.Errorf("empty analyzer should be all zeros: %+v", stats)
	}
}
