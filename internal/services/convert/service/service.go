// Package service provides the items conversion run
package service

import (
	"context"
	"time"

	"itemsexport/internal/core/repair"
	perr "itemsexport/internal/platform/errors"
	"itemsexport/internal/platform/logger"
	"itemsexport/internal/services/convert/domain"
)

// Config holds the file locations of one run
type Config struct {
	Source string // newline-delimited or array JSON input
	Fixed  string // intermediate array JSON, rewritten every run
	Output string // CSV output
}

// Service implements the conversion pipeline
type Service struct {
	Ingest domain.Ingest
	Norm   domain.Normalizer
	Sink   domain.Sink
	Cfg    Config

	// Optional database load after the CSV is written
	Store domain.ItemStore

	now func() time.Time
}

// New constructs the conversion service
func New(in domain.Ingest, n domain.Normalizer, sink domain.Sink, cfg Config) *Service {
	if in == nil {
		panic("convert.Service requires a non nil Ingest")
	}
	if n == nil {
		panic("convert.Service requires a non nil Normalizer")
	}
	if sink == nil {
		panic("convert.Service requires a non nil Sink")
	}
	return &Service{Ingest: in, Norm: n, Sink: sink, Cfg: cfg, now: time.Now}
}

// WithStore wires an item store loaded after each successful CSV write
func (s *Service) WithStore(st domain.ItemStore) *Service {
	s.Store = st
	return s
}

// Run executes load, repair, parse, normalize and write in order.
// Any error aborts the run and no output file is produced by it
func (s *Service) Run(ctx context.Context) (domain.Summary, error) {
	start := s.now()
	log := logger.C(ctx).With().Str("component", "convert").Logger()

	src, err := s.Ingest.Load(ctx, s.Cfg.Source)
	if err != nil {
		return domain.Summary{}, perr.WithOp(err, "load")
	}
	sum := domain.Summary{Lines: len(src.Lines), Bytes: src.Bytes, Output: s.Cfg.Output}

	res, err := repair.Lines(src.Content, src.Lines)
	if err != nil {
		return sum, perr.WithOp(perr.Wrapf(err, perr.CodeOf(err), "source %s", src.Path), "repair")
	}
	sum.Wrapped = res.Wrapped
	if res.Wrapped {
		log.Info().Int("lines", res.Lines).Str("fixed", s.Cfg.Fixed).Msg("wrapped lines into an array")
	} else {
		log.Info().Str("fixed", s.Cfg.Fixed).Msg("source is already an array")
	}
	if err := s.Ingest.Stage(ctx, s.Cfg.Fixed, res.Text); err != nil {
		return sum, perr.WithOp(err, "repair")
	}

	raws, err := s.Ingest.Parse(ctx, s.Cfg.Fixed)
	if err != nil {
		return sum, perr.WithOp(err, "parse")
	}
	if len(raws) == 0 {
		return sum, perr.WithOp(perr.Wrapf(domain.ErrNoRecords, perr.ErrorCodeInvalidArgument, "%s", s.Cfg.Fixed), "parse")
	}

	items, err := s.Norm.All(ctx, raws)
	if err != nil {
		if _, ok := perr.As(err); !ok {
			return sum, perr.WithOp(perr.Wrap(err, perr.ErrorCodeUnknown, "normalize"), "normalize")
		}
		return sum, err
	}
	sum.Records = len(items)

	if err := s.Sink.Write(ctx, s.Cfg.Output, items); err != nil {
		return sum, perr.WithOp(err, "write")
	}

	if s.Store != nil {
		n, err := s.Store.Load(ctx, items)
		if err != nil {
			return sum, perr.WithOp(err, "pg load")
		}
		sum.Loaded = n
	}

	sum.Duration = s.now().Sub(start)
	return sum, nil
}
