package jsonl

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/cognicore/bleu/pkg/bleu/ingest"
	"github.com/cognicore/bleu/pkg/bleu/internalerr"
)

// Item is one aligned evaluation row
type Item struct {
	ID         string   `json:"id"`
	Candidate  string   `json:"candidate"`
	References []string `json:"references"`
}

// LoadFromJSONL loads items from a JSONL file with proper error handling
func LoadFromJSONL(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var items []Item
	lines := strings.Split(string(data), "\n")

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var item Item
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			log.Printf("Warning: skipping malformed JSON at line %d in %s: %v", i+1, path, err)
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("no valid items found in %s", path)
	}

	return items, nil
}

// ToCorpora turns rows into a candidate corpus and aligned reference
// corpora. Every row must carry the same number of references.
func ToCorpora(items []Item) (ingest.Corpus, []ingest.Corpus, error) {
	if len(items) == 0 {
		return nil, nil, internalerr.ErrNoReferences
	}
	numRefs := len(items[0].References)
	if numRefs == 0 {
		return nil, nil, fmt.Errorf("row %q: %w", items[0].ID, internalerr.ErrNoReferences)
	}

	cand := make(ingest.Corpus, len(items))
	refs := make([]ingest.Corpus, numRefs)
	for r := range refs {
		refs[r] = make(ingest.Corpus, len(items))
	}

	for i, item := range items {
		if len(item.References) != numRefs {
			return nil, nil, fmt.Errorf("row %d (%q) has %d references, expected %d: %w",
				i, item.ID, len(item.References), numRefs, internalerr.ErrLengthMismatch)
		}
		cand[i] = ingest.Tokenize(item.Candidate)
		for r, ref := range item.References {
			refs[r][i] = ingest.Tokenize(ref)
		}
	}
	return cand, refs, nil
}
