package ingest

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/cognicore/bleu/pkg/bleu/internalerr"
)

// Default encodings for the two sides of an evaluation.
const (
	DefaultCandidateEncoding = "utf-8"
	DefaultReferenceEncoding = "iso-8859-1"
)

// latin1Labels are the ISO-8859-1 names. The WHATWG table behind
// charset.Lookup folds them into windows-1252, which remaps 0x80-0x9F.
var latin1Labels = map[string]bool{
	"iso-8859-1":      true,
	"iso8859-1":       true,
	"iso88591":        true,
	"iso_8859-1":      true,
	"iso_8859-1:1987": true,
	"iso-ir-100":      true,
	"latin1":          true,
	"latin-1":         true,
	"l1":              true,
	"cp819":           true,
	"ibm819":          true,
	"csisolatin1":     true,
}

// lookupEncoding resolves a label to an encoding and its canonical name.
func lookupEncoding(label string) (encoding.Encoding, string) {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		label = DefaultCandidateEncoding
	}
	if latin1Labels[label] {
		return charmap.ISO8859_1, "iso-8859-1"
	}
	return charset.Lookup(label)
}

// NewDecodingReader wraps r so that bytes in the named encoding are decoded
// to UTF-8. Names follow the WHATWG encoding labels ("utf-8", "windows-1252",
// "gbk", "shift_jis", ...) except that the ISO-8859-1 labels keep strict
// Latin-1. An empty name means UTF-8.
func NewDecodingReader(r io.Reader, name string) (io.Reader, error) {
	enc, canonical := lookupEncoding(name)
	if enc == nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, internalerr.ErrInvalidConfig)
	}
	if canonical == "utf-8" {
		return r, nil
	}
	return enc.NewDecoder().Reader(r), nil
}

// ValidEncoding reports whether the encoding label is known.
func ValidEncoding(name string) bool {
	enc, _ := lookupEncoding(name)
	return enc != nil
}
