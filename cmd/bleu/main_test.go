package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunPrintsScore(t *testing.T) {
	dir := t.TempDir()
	cand := writeFixture(t, dir, "candidate.txt", "the cat sat\n")
	ref := writeFixture(t, dir, "reference.txt", "the cat sat\n")

	var out bytes.Buffer
	if err := run(context.Background(), cliOptions{candidate: cand, reference: ref, maxOrder: 2}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	got, err := strconv.ParseFloat(strings.TrimSpace(out.String()), 64)
	if err != nil {
		t.Fatalf("output %q is not a float: %v", out.String(), err)
	}
	if got != 1.0 {
		t.Errorf("expected 1, got %f", got)
	}
}

func TestRunJSONWithStats(t *testing.T) {
	dir := t.TempDir()
	cand := writeFixture(t, dir, "candidate.txt", "a b c\n\n")
	ref := writeFixture(t, dir, "reference.txt", "x y z\nanything\n")

	var out bytes.Buffer
	opts := cliOptions{candidate: cand, reference: ref, maxOrder: 1, jsonOut: true, stats: true}
	if err := run(context.Background(), opts, &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	var rep jsonReport
	if err := json.Unmarshal(out.Bytes(), &rep); err != nil {
		t.Fatalf("invalid JSON %q: %v", out.String(), err)
	}
	if rep.Score != 0 {
		t.Errorf("expected 0 for no overlap, got %f", rep.Score)
	}
	if rep.Skipped != 1 || rep.Sentences != 2 {
		t.Errorf("expected 2 sentences with 1 skipped, got %d/%d", rep.Sentences, rep.Skipped)
	}
	if rep.CandidateStats == nil || rep.CandidateStats.Empty != 1 {
		t.Errorf("expected candidate stats with 1 empty line, got %+v", rep.CandidateStats)
	}
	if rep.EmptyRatio != 0.5 {
		t.Errorf("expected empty ratio 0.5, got %f", rep.EmptyRatio)
	}
	if len(rep.TopTokens) != 3 || rep.TopTokens[0].Token != "a" {
		t.Errorf("expected top tokens a, b, c, got %+v", rep.TopTokens)
	}
}

func TestRunTextStats(t *testing.T) {
	dir := t.TempDir()
	cand := writeFixture(t, dir, "candidate.txt", "the cat saw the dog\n\n")
	ref := writeFixture(t, dir, "reference.txt", "the cat saw the dog\nanything\n")

	var out bytes.Buffer
	if err := run(context.Background(), cliOptions{candidate: cand, reference: ref, maxOrder: 1, stats: true}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected score and two stats lines, got %q", out.String())
	}
	if !strings.HasPrefix(lines[2], "empty ratio: 0.500, top tokens: the=2 cat=1") {
		t.Errorf("unexpected stats line %q", lines[2])
	}
}

func TestRunHistory(t *testing.T) {
	dir := t.TempDir()
	cand := writeFixture(t, dir, "candidate.txt", "the cat sat on the mat\n")
	ref := writeFixture(t, dir, "reference.txt", "the cat sat on a mat\n")
	db := filepath.Join(dir, "runs.db")

	for i := 0; i < 2; i++ {
		var out bytes.Buffer
		opts := cliOptions{candidate: cand, reference: ref, dbPath: db, summary: true}
		if err := run(context.Background(), opts, &out); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if !strings.HasPrefix(out.String(), "BLEU = ") {
			t.Errorf("expected summary line, got %q", out.String())
		}
	}

	var out bytes.Buffer
	if err := run(context.Background(), cliOptions{dbPath: db, history: 5}, &out); err != nil {
		t.Fatalf("history: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 history lines, got %q", out.String())
	}
	if !strings.Contains(lines[0], "candidate.txt") {
		t.Errorf("history line should name the candidate: %q", lines[0])
	}
}

func TestRunHistoryWithoutDB(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), cliOptions{history: 3}, &out); err == nil {
		t.Error("history without --db should fail")
	}
}

func TestRunPairs(t *testing.T) {
	dir := t.TempDir()
	pairs := writeFixture(t, dir, "pairs.jsonl",
		`{"id":"1","candidate":"the cat sat","references":["the cat sat"]}
{"id":"2","candidate":"hello world","references":["hello world"]}
`)

	var out bytes.Buffer
	if err := run(context.Background(), cliOptions{pairs: pairs, maxOrder: 2}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.TrimSpace(out.String()) != "1" {
		t.Errorf("expected 1, got %q", out.String())
	}
}

func TestRunMisaligned(t *testing.T) {
	dir := t.TempDir()
	cand := writeFixture(t, dir, "candidate.txt", "one\ntwo\n")
	ref := writeFixture(t, dir, "reference.txt", "one\n")

	var out bytes.Buffer
	err := run(context.Background(), cliOptions{candidate: cand, reference: ref}, &out)
	if err == nil || !strings.Contains(err.Error(), "length mismatch") {
		t.Fatalf("expected length mismatch error, got %v", err)
	}
}

func TestRunBadConfig(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), cliOptions{candidate: "x", reference: "y", refEnc: "not-an-encoding"}, &out)
	if err == nil {
		t.Fatal("expected config error")
	}
}
