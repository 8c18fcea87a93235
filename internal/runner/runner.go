package runner

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/selimozcann/PhishGuard/internal/analyzer"
	"github.com/selimozcann/PhishGuard/internal/model"
)

// Config holds settings for the runner.
type Config struct {
	Threads int
}

// AnalyzeFunc scores a single URL.
type AnalyzeFunc func(rawURL string) (model.ScanResult, error)

// Outcome is the result of scanning one target.
type Outcome struct {
	Target string
	Result model.ScanResult
	Err    error
}

// Runner analyzes many targets concurrently.
type Runner struct {
	cfg     Config
	analyze AnalyzeFunc
}

// New creates a Runner backed by analyzer.Analyze.
func New(cfg Config) *Runner {
	return NewWithFunc(cfg, analyzer.Analyze)
}

// NewWithFunc creates a Runner that uses fn for every target.
func NewWithFunc(cfg Config, fn AnalyzeFunc) *Runner {
	if cfg.Threads <= 0 {
		cfg.Threads = 1
	}
	return &Runner{cfg: cfg, analyze: fn}
}

// Run processes targets and returns one outcome per target in input order.
// Targets not started before ctx is done carry ctx.Err().
func (r *Runner) Run(ctx context.Context, targets []string) []Outcome {
	out := make([]Outcome, len(targets))
	g := new(errgroup.Group)
	g.SetLimit(r.cfg.Threads)

	for i, t := range targets {
		out[i].Target = t
		if err := ctx.Err(); err != nil {
			out[i].Err = err
			continue
		}
		i, t := i, t
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				out[i].Err = err
				return nil
			}
			res, err := r.analyze(t)
			out[i].Result, out[i].Err = res, err
			return nil
		})
	}

	_ = g.Wait()
	return out
}
