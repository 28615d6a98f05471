package ingest

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// System is one translation system's segments from an SGML file.
type System struct {
	ID       string
	Segments []string
}

// ReadSGML extracts NIST mteval-style segments:
//
//	<refset ...><doc docid="d1" sysid="ref1"><seg id="1">text</seg>...</doc></refset>
//
// Segments are grouped by the sysid of their enclosing <doc>, in order of
// first appearance. Docs without a sysid share the empty ID.
func ReadSGML(r io.Reader) ([]System, error) {
	z := html.NewTokenizer(r)

	var (
		systems []System
		index   = make(map[string]int)
		sysID   string
		inSeg   bool
		seg     strings.Builder
	)

	appendSeg := func() {
		i, ok := index[sysID]
		if !ok {
			i = len(systems)
			index[sysID] = i
			systems = append(systems, System{ID: sysID})
		}
		systems[i].Segments = append(systems[i].Segments, seg.String())
		seg.Reset()
	}

	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, fmt.Errorf("parse sgml: %w", err)
			}
			if inSeg {
				appendSeg()
			}
			return systems, nil

		case html.StartTagToken:
			tok := z.Token()
			switch tok.Data {
			case "doc":
				sysID = attr(tok, "sysid")
			case "seg":
				if inSeg {
					appendSeg()
				}
				inSeg = true
			}

		case html.EndTagToken:
			tok := z.Token()
			switch tok.Data {
			case "seg":
				if inSeg {
					appendSeg()
					inSeg = false
				}
			case "doc":
				sysID = ""
			}

		case html.TextToken:
			if inSeg {
				seg.Write(z.Text())
			}
		}
	}
}

func attr(tok html.Token, key string) string {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
