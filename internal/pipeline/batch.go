package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/itemreport/internal/model"
	"github.com/nao1215/itemreport/internal/report"
)

// DefaultConcurrency is the number of reports a BatchGenerator renders at once.
const DefaultConcurrency = 4

// Request describes one report to generate in a batch.
type Request struct {
	Type  report.Type
	User  model.User
	Items []model.Item
}

// BatchResult is the outcome of one Request.
// Exactly one of Result and Err is set.
type BatchResult struct {
	// Index is the position of the request in the input slice.
	Index int

	// Request is the original request.
	Request Request

	// Result is the generated report on success.
	Result *Result

	// Err is the generation error on failure.
	Err error
}

// BatchGenerator renders several reports concurrently with a shared Pipeline.
// A failing request is recorded in its BatchResult and does not stop the
// other requests.
type BatchGenerator struct {
	pipeline *Pipeline

	// concurrency is the maximum number of reports rendered at once.
	concurrency int

	logger *slog.Logger
}

// BatchOption configures a BatchGenerator.
type BatchOption func(*BatchGenerator)

// WithBatchLogger sets a custom logger for batch generation.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchGenerator) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent reports.
// Non-positive values keep the default.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchGenerator) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchGenerator creates a BatchGenerator over p.
func NewBatchGenerator(p *Pipeline, opts ...BatchOption) *BatchGenerator {
	b := &BatchGenerator{
		pipeline:    p,
		concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.logger == nil {
		b.logger = slog.Default()
	}

	return b
}

// Generate renders every request and returns the results in request order.
// The returned error is non-nil only when ctx is cancelled; requests that
// had not started by then carry the context error.
func (b *BatchGenerator) Generate(ctx context.Context, requests []Request) ([]BatchResult, error) {
	results := make([]BatchResult, len(requests))
	err := b.GenerateWithCallback(ctx, requests, func(r BatchResult) {
		results[r.Index] = r
	})
	return results, err
}

// GenerateWithCallback renders every request and calls callback for each
// finished one. The callback runs on the worker goroutine, so it must be
// safe for concurrent use if it touches shared state. Writing to distinct
// slice indexes is safe.
func (b *BatchGenerator) GenerateWithCallback(ctx context.Context, requests []Request, callback func(BatchResult)) error {
	b.logger.Info("starting batch generation",
		"requests", len(requests),
		"concurrency", b.concurrency,
	)
	startTime := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, req := range requests {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				callback(BatchResult{Index: i, Request: req, Err: gctx.Err()})
				return gctx.Err()
			default:
			}

			result, err := b.pipeline.Generate(req.Type, req.User, req.Items)
			if err != nil {
				b.logger.Warn("report failed",
					"index", i,
					"type", req.Type,
					"error", err,
				)
			}
			callback(BatchResult{Index: i, Request: req, Result: result, Err: err})
			return nil
		})
	}

	err := g.Wait()

	b.logger.Info("batch generation complete",
		"requests", len(requests),
		"elapsed", time.Since(startTime),
	)

	return err
}
