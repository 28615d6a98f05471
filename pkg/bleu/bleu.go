// Package bleu is the evaluation facade: it loads corpora, scores them,
// builds a report and records it in the run history.
package bleu

import (
	"context"
	"fmt"
	"log"

	"github.com/cognicore/bleu/pkg/bleu/analytics"
	"github.com/cognicore/bleu/pkg/bleu/ingest"
	"github.com/cognicore/bleu/pkg/bleu/internalerr"
	"github.com/cognicore/bleu/pkg/bleu/report"
	"github.com/cognicore/bleu/pkg/bleu/score"
	"github.com/cognicore/bleu/pkg/bleu/store"
)

// Evaluator ties loading, scoring and history together
type Evaluator struct {
	store   store.Store
	loader  *ingest.Loader
	scorer  *score.Scorer
	builder *report.Builder
}

// Options configures an Evaluator. Nil fields get defaults; a nil Store
// disables history.
type Options struct {
	Store   store.Store
	Loader  *ingest.Loader
	Scorer  *score.Scorer
	Builder *report.Builder
}

// New creates an Evaluator with the given dependencies
func New(opts Options) *Evaluator {
	e := &Evaluator{
		store:   opts.Store,
		loader:  opts.Loader,
		scorer:  opts.Scorer,
		builder: opts.Builder,
	}
	if e.loader == nil {
		e.loader = ingest.NewLoader()
	}
	if e.scorer == nil {
		e.scorer = score.New()
	}
	if e.builder == nil {
		e.builder = report.New()
	}
	return e
}

// Close cleanly shuts down the Evaluator
func (e *Evaluator) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}

// Request names the files of one evaluation
type Request struct {
	CandidatePath string
	ReferencePath string // a file, or a directory of reference files
}

// Evaluate loads the request's files and scores them
func (e *Evaluator) Evaluate(ctx context.Context, req Request) (report.Report, error) {
	if err := ctx.Err(); err != nil {
		return report.Report{}, err
	}
	cand, refs, err := e.loader.Load(req.CandidatePath, req.ReferencePath)
	if err != nil {
		return report.Report{}, err
	}
	src := report.Source{
		Candidate:  req.CandidatePath,
		References: []string{req.ReferencePath},
	}
	return e.EvaluateCorpora(ctx, src, cand, refs)
}

// EvaluateCorpora scores already-loaded corpora and records the report
func (e *Evaluator) EvaluateCorpora(ctx context.Context, src report.Source, cand ingest.Corpus, refs []ingest.Corpus) (report.Report, error) {
	if err := ctx.Err(); err != nil {
		return report.Report{}, err
	}

	if st := analytics.Analyze(cand); st.Empty > 0 {
		log.Printf("Warning: %d of %d candidate lines are empty and excluded from scoring", st.Empty, st.Sentences)
	}

	res, err := e.scorer.Score(cand, refs)
	if err != nil {
		return report.Report{}, fmt.Errorf("score %s: %w", src.Candidate, err)
	}

	rep := e.builder.Build(src, res)
	if e.store != nil {
		if err := e.store.SaveRun(ctx, toRun(rep)); err != nil {
			return report.Report{}, fmt.Errorf("save run %s: %w", rep.ID, err)
		}
	}
	return rep, nil
}

// History returns the most recent runs, newest first
func (e *Evaluator) History(ctx context.Context, limit int) ([]store.Run, error) {
	if e.store == nil {
		return nil, internalerr.ErrStoreUnavailable
	}
	return e.store.ListRuns(ctx, limit)
}

// Run returns a single stored run
func (e *Evaluator) Run(ctx context.Context, id string) (store.Run, error) {
	if e.store == nil {
		return store.Run{}, internalerr.ErrStoreUnavailable
	}
	r, found, err := e.store.GetRun(ctx, id)
	if err != nil {
		return store.Run{}, err
	}
	if !found {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	return r, nil
}

func toRun(r report.Report) store.Run {
	return store.Run{
		ID:             r.ID,
		CreatedAt:      r.CreatedAt,
		Candidate:      r.Candidate,
		References:     r.References,
		MaxOrder:       r.MaxOrder,
		Score:          r.Score,
		BrevityPenalty: r.BrevityPenalty,
		Precisions:     r.Precisions,
		Sentences:      r.Sentences,
		Skipped:        r.Skipped,
	}
}
