package ingest

import "strings"

// Sentence is the whitespace-split token sequence of one line.
type Sentence []string

// Len returns the number of tokens.
func (s Sentence) Len() int { return len(s) }

// Empty reports whether the sentence has no tokens.
func (s Sentence) Empty() bool { return len(s) == 0 }

// Corpus is an ordered, positionally aligned list of sentences.
type Corpus []Sentence

// Tokenize trims a line and splits it on whitespace. Case is kept; n-gram
// counting lowercases.
func Tokenize(line string) Sentence {
	line = strings.TrimPrefix(line, "\uFEFF")
	return Sentence(strings.Fields(strings.TrimSpace(line)))
}

// NewCorpus tokenizes every line.
func NewCorpus(lines []string) Corpus {
	corpus := make(Corpus, len(lines))
	for i, line := range lines {
		corpus[i] = Tokenize(line)
	}
	return corpus
}

// SplitLines splits text into lines. A trailing newline does not produce a
// final empty line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// Without returns a copy of c with the sentences at the given indices
// removed.
func (c Corpus) Without(indices ...int) Corpus {
	drop := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		drop[i] = struct{}{}
	}
	out := make(Corpus, 0, len(c))
	for i, s := range c {
		if _, ok := drop[i]; ok {
			continue
		}
		out = append(out, s)
	}
	return out
}
