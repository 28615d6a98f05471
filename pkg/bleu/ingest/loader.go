package ingest

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cognicore/bleu/pkg/bleu/internalerr"
)

// Format selects how a file is split into sentences.
type Format string

const (
	FormatAuto Format = "auto" // SGML for .sgm/.sgml files, otherwise text
	FormatText Format = "text" // one sentence per line
	FormatSGML Format = "sgml" // NIST <seg> elements
)

// ParseFormat validates a format name. Empty means FormatAuto.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatText:
		return FormatText, nil
	case FormatSGML:
		return FormatSGML, nil
	}
	return "", fmt.Errorf("unknown format %q: %w", s, internalerr.ErrInvalidConfig)
}

// Loader reads candidate and reference corpora from disk.
type Loader struct {
	CandidateEncoding string
	ReferenceEncoding string
	Format            Format
}

// NewLoader creates a loader with the default encodings and auto format.
func NewLoader() *Loader {
	return &Loader{
		CandidateEncoding: DefaultCandidateEncoding,
		ReferenceEncoding: DefaultReferenceEncoding,
		Format:            FormatAuto,
	}
}

// Load reads the candidate file and the reference file or directory.
func (l *Loader) Load(candidatePath, referencePath string) (Corpus, []Corpus, error) {
	cand, err := l.LoadCandidate(candidatePath)
	if err != nil {
		return nil, nil, err
	}
	refs, err := l.LoadReferences(referencePath)
	if err != nil {
		return nil, nil, err
	}
	return cand, refs, nil
}

// LoadCandidate reads the candidate corpus. An SGML candidate must hold a
// single system.
func (l *Loader) LoadCandidate(path string) (Corpus, error) {
	corpora, err := l.loadFile(path, l.CandidateEncoding)
	if err != nil {
		return nil, fmt.Errorf("load candidate %s: %w", path, err)
	}
	if len(corpora) != 1 {
		return nil, fmt.Errorf("load candidate %s: %d systems in file: %w", path, len(corpora), internalerr.ErrInvalidInput)
	}
	return corpora[0], nil
}

// LoadReferences reads reference corpora. A file yields one corpus (or one
// per system for SGML); a directory is walked recursively in lexical order
// and every regular file is one reference set.
func (l *Loader) LoadReferences(path string) ([]Corpus, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("load references %s: %w", path, err)
	}
	if !info.IsDir() {
		refs, err := l.loadFile(path, l.ReferenceEncoding)
		if err != nil {
			return nil, fmt.Errorf("load references %s: %w", path, err)
		}
		return refs, nil
	}

	var refs []Corpus
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		corpora, err := l.loadFile(p, l.ReferenceEncoding)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		refs = append(refs, corpora...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load references %s: %w", path, err)
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("load references %s: %w", path, internalerr.ErrNoReferences)
	}
	return refs, nil
}

// loadFile decodes one file and returns its corpora.
func (l *Loader) loadFile(path, encoding string) ([]Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := NewDecodingReader(f, encoding)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", encoding, err)
	}
	return ParseCorpora(data, l.formatFor(path))
}

func (l *Loader) formatFor(path string) Format {
	if l.Format == FormatText || l.Format == FormatSGML {
		return l.Format
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sgm", ".sgml":
		return FormatSGML
	}
	return FormatText
}

// ParseCorpora splits decoded content into corpora using the given format.
// Text content always yields exactly one corpus.
func ParseCorpora(data []byte, format Format) ([]Corpus, error) {
	if format != FormatSGML {
		return []Corpus{NewCorpus(SplitLines(string(data)))}, nil
	}
	systems, err := ReadSGML(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if len(systems) == 0 {
		return nil, fmt.Errorf("no <seg> elements: %w", internalerr.ErrInvalidInput)
	}
	out := make([]Corpus, len(systems))
	for i, sys := range systems {
		out[i] = NewCorpus(sys.Segments)
	}
	return out, nil
}
