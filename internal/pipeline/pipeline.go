// Package pipeline turns a raw form submission into an exported price file:
// resolve the ticker, validate the dates, fetch, reshape and write.
package pipeline

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/rxtech-lab/b3-extractor/internal/logger"
	"github.com/rxtech-lab/b3-extractor/pkg/errors"
	"github.com/rxtech-lab/b3-extractor/pkg/marketdata"
	"github.com/rxtech-lab/b3-extractor/pkg/marketdata/provider"
	"github.com/rxtech-lab/b3-extractor/pkg/marketdata/writer"
)

// Resolver maps a catalog display name to a provider symbol.
type Resolver interface {
	Symbol(displayName string) (string, bool)
}

// OnProgress receives short human readable stage descriptions.
type OnProgress func(stage string)

// Request is a single extraction as entered by the user.
type Request struct {
	Company   string
	StartDate optional.Option[time.Time]
	EndDate   optional.Option[time.Time]
	Interval  marketdata.Interval
	Format    marketdata.Format
}

// Result describes a written output file.
type Result struct {
	Path  string
	Table *marketdata.Table
}

// Options wires the pipeline to its collaborators.
type Options struct {
	Catalog   Resolver
	Provider  provider.Provider
	OutputDir string
	// Now returns the current time; defaults to time.Now.
	Now        func() time.Time
	Logger     *logger.Logger
	OnProgress OnProgress
	// WriterFor selects the file writer; defaults to writer.ForFormat.
	WriterFor func(marketdata.Format) (writer.TableWriter, error)
}

// Pipeline executes extraction requests. It holds no per-request state and is
// safe to reuse across requests.
type Pipeline struct {
	catalog    Resolver
	provider   provider.Provider
	outputDir  string
	now        func() time.Time
	log        *logger.Logger
	onProgress OnProgress
	writerFor  func(marketdata.Format) (writer.TableWriter, error)
}

// New creates a pipeline.
func New(opts Options) *Pipeline {
	p := &Pipeline{
		catalog:    opts.Catalog,
		provider:   opts.Provider,
		outputDir:  opts.OutputDir,
		now:        opts.Now,
		log:        opts.Logger,
		onProgress: opts.OnProgress,
		writerFor:  opts.WriterFor,
	}

	if p.now == nil {
		p.now = time.Now
	}

	if p.log == nil {
		p.log = logger.NewNopLogger()
	}

	if p.writerFor == nil {
		p.writerFor = writer.ForFormat
	}

	return p
}

// WithProgress returns a copy of the pipeline reporting stages to fn.
func (p *Pipeline) WithProgress(fn OnProgress) *Pipeline {
	clone := *p
	clone.onProgress = fn

	return &clone
}

// Execute runs one request end to end. Every returned error is a *errors.Error
// whose code identifies the failure kind; ErrCodeNoData means the provider
// returned nothing and no file was written.
func (p *Pipeline) Execute(ctx context.Context, req Request) (Result, error) {
	log := p.log.With(zap.String("request_id", uuid.NewString()))

	p.progress("resolving ticker")

	symbol, ok := p.catalog.Symbol(strings.TrimSpace(req.Company))
	if !ok {
		log.Info("unknown ticker", zap.String("company", req.Company))
		return Result{}, errors.Newf(errors.ErrCodeInvalidTicker, "select a valid ticker, %q is not in the list", req.Company)
	}

	params, err := p.validate(symbol, req)
	if err != nil {
		log.Info("request rejected", zap.String("symbol", symbol), zap.Error(err))
		return Result{}, err
	}

	log = log.With(
		zap.String("symbol", params.Symbol),
		zap.String("start", params.StartDate.Format(marketdata.DateLayout)),
		zap.String("end", params.EndDate.Format(marketdata.DateLayout)),
		zap.String("interval", string(params.Interval)),
	)

	p.progress("fetching " + params.Symbol)
	log.Info("fetching market data")

	table, err := p.provider.Fetch(ctx, params.Symbol, params.StartDate, params.EndDate, params.Interval)
	if err != nil {
		log.Error("fetch failed", zap.Error(err))

		if provider.IsConnectionError(err) {
			return Result{}, errors.Wrap(errors.ErrCodeConnectionFailure, "could not connect, check your internet connection", err)
		}

		return Result{}, errors.Wrap(errors.ErrCodeFetchFailure, "fetch failed", err)
	}

	if table.Empty() {
		log.Warn("no data returned")
		return Result{}, errors.New(errors.ErrCodeNoData, "no data found for the selected ticker and period")
	}

	table = table.Select(marketdata.CanonicalColumns)

	w, err := p.writerFor(params.Format)
	if err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeWriteFailure, "no writer for format", err)
	}

	path := filepath.Join(p.outputDir, params.FileName())

	p.progress("writing " + filepath.Base(path))

	if err := w.Write(table, path); err != nil {
		log.Error("write failed", zap.String("path", path), zap.Error(err))
		return Result{}, errors.Wrap(errors.ErrCodeWriteFailure, "could not save the file", err)
	}

	log.Info("market data saved", zap.String("path", path), zap.Int("rows", table.Len()))

	return Result{Path: path, Table: table}, nil
}

// validate checks the dates and enums in the order the user fixes them:
// presence, ordering, then the future bound.
func (p *Pipeline) validate(symbol string, req Request) (marketdata.FetchParams, error) {
	if req.StartDate.IsNone() || req.EndDate.IsNone() {
		return marketdata.FetchParams{}, errors.New(errors.ErrCodeMissingInput, "fill in both dates")
	}

	start := dateOnly(req.StartDate.Unwrap())
	end := dateOnly(req.EndDate.Unwrap())

	if start.After(end) {
		return marketdata.FetchParams{}, errors.New(errors.ErrCodeDateOrder, "the start date cannot be after the end date")
	}

	if end.After(dateOnly(p.now())) {
		return marketdata.FetchParams{}, errors.New(errors.ErrCodeFutureDate, "dates cannot be in the future")
	}

	params := marketdata.FetchParams{
		Symbol:    symbol,
		StartDate: start,
		EndDate:   end,
		Interval:  req.Interval,
		Format:    req.Format,
	}

	if err := params.Validate(); err != nil {
		return marketdata.FetchParams{}, errors.Wrap(errors.ErrCodeInvalidParameter, "invalid interval or format", err)
	}

	return params, nil
}

func (p *Pipeline) progress(stage string) {
	if p.onProgress != nil {
		p.onProgress(stage)
	}
}

// dateOnly drops the time of day, keeping the calendar date as written.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
