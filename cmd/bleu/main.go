package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cognicore/bleu/internal/jsonl"
	"github.com/cognicore/bleu/pkg/bleu"
	"github.com/cognicore/bleu/pkg/bleu/analytics"
	"github.com/cognicore/bleu/pkg/bleu/config"
	"github.com/cognicore/bleu/pkg/bleu/ingest"
	"github.com/cognicore/bleu/pkg/bleu/report"
	"github.com/cognicore/bleu/pkg/bleu/store"
	"github.com/cognicore/bleu/pkg/bleu/store/sqlite"
)

type cliOptions struct {
	candidate  string
	reference  string
	pairs      string
	configPath string
	maxOrder   int
	candEnc    string
	refEnc     string
	format     string
	dbPath     string
	history    int
	jsonOut    bool
	summary    bool
	stats      bool
}

type jsonReport struct {
	ID             string                 `json:"id"`
	CreatedAt      string                 `json:"created_at"`
	Candidate      string                 `json:"candidate"`
	References     []string               `json:"references"`
	MaxOrder       int                    `json:"max_order"`
	Score          float64                `json:"bleu"`
	BrevityPenalty float64                `json:"brevity_penalty"`
	Precisions     []float64              `json:"precisions"`
	Breakdown      map[string]float64     `json:"breakdown"`
	Sentences      int                    `json:"sentences"`
	Skipped        int                    `json:"skipped"`
	CandidateStats *analytics.Stats       `json:"candidate_stats,omitempty"`
	EmptyRatio     float64                `json:"empty_ratio,omitempty"`
	TopTokens      []analytics.TokenCount `json:"top_tokens,omitempty"`
}

// topTokens is how many frequent candidate tokens -stats reports.
const topTokens = 10

func main() {
	var o cliOptions
	flag.StringVar(&o.candidate, "candidate", "", "Candidate file, one sentence per line")
	flag.StringVar(&o.reference, "reference", "", "Reference file or directory of reference files")
	flag.StringVar(&o.pairs, "pairs", "", "JSONL file of {candidate, references} rows (instead of -candidate/-reference)")
	flag.StringVar(&o.configPath, "config", "", "YAML config file (optional)")
	flag.IntVar(&o.maxOrder, "max-order", 0, "Highest n-gram order (default 4)")
	flag.StringVar(&o.candEnc, "cand-enc", "", "Candidate encoding (default utf-8)")
	flag.StringVar(&o.refEnc, "ref-enc", "", "Reference encoding (default iso-8859-1)")
	flag.StringVar(&o.format, "format", "", "Input format: auto, text or sgml (default auto)")
	flag.StringVar(&o.dbPath, "db", "", "SQLite database for run history (optional)")
	flag.IntVar(&o.history, "history", 0, "Print the last N runs from -db and exit")
	flag.BoolVar(&o.jsonOut, "json", false, "Print the full report as JSON")
	flag.BoolVar(&o.summary, "summary", false, "Print a one-line summary instead of the bare score")
	flag.BoolVar(&o.stats, "stats", false, "Include candidate corpus statistics")
	flag.Parse()

	if o.history == 0 && o.pairs == "" {
		if o.candidate == "" {
			log.Fatal("--candidate required")
		}
		if o.reference == "" {
			log.Fatal("--reference required")
		}
	}

	if err := run(context.Background(), o, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, o cliOptions, w io.Writer) error {
	loader := config.Loader{
		ConfigPath:        o.configPath,
		MaxOrder:          o.maxOrder,
		CandidateEncoding: o.candEnc,
		ReferenceEncoding: o.refEnc,
		Format:            o.format,
		DBPath:            o.dbPath,
	}
	components, err := loader.Load()
	if err != nil {
		return err
	}

	var st store.Store
	if components.Config.DBPath != "" {
		st, err = sqlite.OpenSQLite(ctx, components.Config.DBPath)
		if err != nil {
			return fmt.Errorf("open history %s: %w", components.Config.DBPath, err)
		}
	}

	ev := bleu.New(bleu.Options{
		Store:  st,
		Loader: components.Loader,
		Scorer: components.Scorer,
	})
	defer ev.Close()

	if o.history > 0 {
		return printHistory(ctx, ev, o.history, w)
	}

	var (
		rep  report.Report
		cand ingest.Corpus
	)
	if o.pairs != "" {
		items, err := jsonl.LoadFromJSONL(o.pairs)
		if err != nil {
			return err
		}
		c, refs, err := jsonl.ToCorpora(items)
		if err != nil {
			return fmt.Errorf("pairs %s: %w", o.pairs, err)
		}
		cand = c
		rep, err = ev.EvaluateCorpora(ctx, report.Source{Candidate: o.pairs, References: []string{o.pairs}}, c, refs)
		if err != nil {
			return err
		}
	} else {
		if o.stats {
			cand, err = components.Loader.LoadCandidate(o.candidate)
			if err != nil {
				return err
			}
		}
		rep, err = ev.Evaluate(ctx, bleu.Request{CandidatePath: o.candidate, ReferencePath: o.reference})
		if err != nil {
			return err
		}
	}

	var stats *analytics.Stats
	if o.stats {
		s := analytics.Analyze(cand)
		stats = &s
	}

	switch {
	case o.jsonOut:
		return writeJSON(w, rep, stats)
	case o.summary:
		fmt.Fprintln(w, rep.Summary())
	default:
		fmt.Fprintln(w, rep.Score)
	}
	if stats != nil {
		fmt.Fprintf(w, "sentences: %d (empty %d), tokens: %d, vocabulary: %d, mean length: %.2f\n",
			stats.Sentences, stats.Empty, stats.Tokens, stats.Vocabulary, stats.MeanLength)
		fmt.Fprintf(w, "empty ratio: %.3f, top tokens:", stats.EmptyRatio())
		for _, tc := range stats.TopTokens(topTokens) {
			fmt.Fprintf(w, " %s=%d", tc.Token, tc.Count)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func writeJSON(w io.Writer, rep report.Report, stats *analytics.Stats) error {
	doc := jsonReport{
		ID:             rep.ID,
		CreatedAt:      rep.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Candidate:      rep.Candidate,
		References:     rep.References,
		MaxOrder:       rep.MaxOrder,
		Score:          rep.Score,
		BrevityPenalty: rep.BrevityPenalty,
		Precisions:     rep.Precisions,
		Breakdown:      rep.Breakdown,
		Sentences:      rep.Sentences,
		Skipped:        rep.Skipped,
		CandidateStats: stats,
	}
	if stats != nil {
		doc.EmptyRatio = stats.EmptyRatio()
		doc.TopTokens = stats.TopTokens(topTokens)
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func printHistory(ctx context.Context, ev *bleu.Evaluator, limit int, w io.Writer) error {
	runs, err := ev.History(ctx, limit)
	if err != nil {
		return fmt.Errorf("history (is --db set?): %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(w, "%s  %s  BLEU=%.4f  BP=%.3f  n=%d  %s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Score, r.BrevityPenalty, r.MaxOrder, r.Candidate)
	}
	return nil
}
