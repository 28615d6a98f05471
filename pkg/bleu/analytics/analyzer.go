package analytics

import (
	"sort"
	"strings"

	"github.com/cognicore/bleu/pkg/bleu/ingest"
)

// Analyzer aggregates sentence-level statistics of a corpus.
type Analyzer struct {
	sentences int64
	empty     int64
	tokens    int64
	maxLength int
	tokenTF   map[string]int64
}

// NewAnalyzer creates an empty analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{tokenTF: make(map[string]int64)}
}

// Process consumes every sentence of a corpus.
func (a *Analyzer) Process(c ingest.Corpus) {
	for _, s := range c {
		a.ProcessSentence(s)
	}
}

// ProcessSentence consumes one sentence. Tokens are counted lowercased,
// matching how they are compared when scoring.
func (a *Analyzer) ProcessSentence(s ingest.Sentence) {
	a.sentences++
	if s.Empty() {
		a.empty++
		return
	}
	a.tokens += int64(len(s))
	if len(s) > a.maxLength {
		a.maxLength = len(s)
	}
	for _, tok := range s {
		a.tokenTF[strings.ToLower(tok)]++
	}
}

// Stats is an immutable snapshot of corpus statistics.
type Stats struct {
	Sentences  int64   `json:"sentences"`
	Empty      int64   `json:"empty"`
	Tokens     int64   `json:"tokens"`
	Vocabulary int     `json:"vocabulary"`
	MeanLength float64 `json:"mean_length"` // over non-empty sentences
	MaxLength  int     `json:"max_length"`

	tokenTF map[string]int64
}

// Snapshot returns the statistics gathered so far.
func (a *Analyzer) Snapshot() Stats {
	st := Stats{
		Sentences:  a.sentences,
		Empty:      a.empty,
		Tokens:     a.tokens,
		Vocabulary: len(a.tokenTF),
		MaxLength:  a.maxLength,
		tokenTF:    make(map[string]int64, len(a.tokenTF)),
	}
	if filled := a.sentences - a.empty; filled > 0 {
		st.MeanLength = float64(a.tokens) / float64(filled)
	}
	for k, v := range a.tokenTF {
		st.tokenTF[k] = v
	}
	return st
}

// TokenCount is a token with its corpus frequency.
type TokenCount struct {
	Token string `json:"token"`
	Count int64  `json:"count"`
}

// TopTokens returns the k most frequent tokens, ties broken alphabetically.
func (s Stats) TopTokens(k int) []TokenCount {
	out := make([]TokenCount, 0, len(s.tokenTF))
	for tok, c := range s.tokenTF {
		out = append(out, TokenCount{Token: tok, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Token < out[j].Token
	})
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}

// EmptyRatio returns the share of empty sentences.
func (s Stats) EmptyRatio() float64 {
	if s.Sentences == 0 {
		return 0
	}
	return float64(s.Empty) / float64(s.Sentences)
}

// Analyze is a convenience wrapper for a single corpus.
func Analyze(c ingest.Corpus) Stats {
	a := NewAnalyzer()
	a.Process(c)
	return a.Snapshot()
}
