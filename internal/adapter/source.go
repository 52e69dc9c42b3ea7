package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amishk599/jobmerge/internal/markdown"
	"github.com/amishk599/jobmerge/internal/model"
)

// Default upstream documents, one per source.
const (
	ScoutURL       = "https://raw.githubusercontent.com/cvrve/Summer2025-Internships/dev/README.md"
	SpeedyApplyURL = "https://raw.githubusercontent.com/speedyapply/2025-SWE-College-Jobs/refs/heads/main/README.md"
	SimplifyURL    = "https://raw.githubusercontent.com/SimplifyJobs/New-Grad-Positions/refs/heads/dev/README.md"
)

// DefaultURL returns the built-in document URL for source.
func DefaultURL(source model.Source) string {
	switch source {
	case model.SourceScout:
		return ScoutURL
	case model.SourceSpeedyApply:
		return SpeedyApplyURL
	case model.SourceSimplify:
		return SimplifyURL
	default:
		return ""
	}
}

// Ensure MarkdownSource implements model.ListingSource.
var _ model.ListingSource = (*MarkdownSource)(nil)

// MarkdownSource runs the fetch, extract, parse pipeline for one upstream
// Markdown document.
type MarkdownSource struct {
	source    model.Source
	url       string
	fetcher   model.DocumentFetcher
	extractor *markdown.Extractor
	parser    RowParser
	now       func() time.Time
	logger    *slog.Logger
}

// NewMarkdownSource wires a pipeline for source reading the document at url.
func NewMarkdownSource(source model.Source, url string, fetcher model.DocumentFetcher, logger *slog.Logger) (*MarkdownSource, error) {
	parser := ParserFor(source)
	if parser == nil {
		return nil, fmt.Errorf("no row parser for source %q", source)
	}
	return &MarkdownSource{
		source:    source,
		url:       url,
		fetcher:   fetcher,
		extractor: markdown.NewExtractor(),
		parser:    parser,
		now:       time.Now,
		logger:    logger,
	}, nil
}

// SetClock overrides the reference time used for relative dates.
func (s *MarkdownSource) SetClock(now func() time.Time) {
	s.now = now
}

// Source returns the provenance tag of every listing this pipeline emits.
func (s *MarkdownSource) Source() model.Source { return s.source }

// URL returns the document this pipeline reads.
func (s *MarkdownSource) URL() string { return s.url }

// FetchListings fetches the document, extracts its tables, and parses every
// body row. Fetch failures come back as *model.FetchError, anything else as
// *model.UnexpectedError.
func (s *MarkdownSource) FetchListings(ctx context.Context) ([]model.Listing, error) {
	start := time.Now()
	text, err := s.fetcher.Fetch(ctx, s.url)
	if err != nil {
		var fetchErr *model.FetchError
		if errors.As(err, &fetchErr) {
			fetchErr.Source = s.source
			return nil, fetchErr
		}
		return nil, &model.UnexpectedError{Source: s.source, Stage: model.StageFetch, Err: err}
	}
	s.logger.Debug("fetched document",
		"source", s.source,
		"bytes", len(text),
		"duration", time.Since(start),
	)

	tables, err := s.extractor.ExtractTables(text)
	if err != nil {
		return nil, &model.UnexpectedError{Source: s.source, Stage: model.StageExtract, Err: err}
	}

	rows := markdown.Rows(tables)
	listings := s.parser.ParseRows(rows, s.now())

	s.logger.Info("parsed source",
		"source", s.source,
		"tables", len(tables),
		"rows", len(rows),
		"listings", len(listings),
		"skipped", len(rows)-len(listings),
	)
	return listings, nil
}
