package aggregator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/amishk599/jobmerge/internal/merge"
	"github.com/amishk599/jobmerge/internal/model"
)

// SourceCounts holds the number of listings each source produced before
// deduplication.
type SourceCounts struct {
	Scout       int `json:"scout"`
	SpeedyApply int `json:"speedyApply"`
	Simplify    int `json:"simplify"`
}

func (c *SourceCounts) set(source model.Source, n int) {
	switch source {
	case model.SourceScout:
		c.Scout = n
	case model.SourceSpeedyApply:
		c.SpeedyApply = n
	case model.SourceSimplify:
		c.Simplify = n
	}
}

// SourceFailure names a source that failed while partial results were allowed.
type SourceFailure struct {
	Source model.Source `json:"source"`
	Error  string       `json:"error"`
}

// Metadata summarizes one aggregation.
type Metadata struct {
	Total   int             `json:"total"`
	Sources SourceCounts    `json:"sources"`
	Failed  []SourceFailure `json:"failed,omitempty"`
}

// Result is the ordered, de-duplicated listing collection.
type Result struct {
	Listings []model.Listing `json:"listings"`
	Metadata Metadata        `json:"metadata"`
}

// Aggregator owns the full aggregation:
// concurrent pipelines → join → concatenate → dedupe → sort.
type Aggregator struct {
	sources      []model.ListingSource
	allowPartial bool
	logger       *slog.Logger
}

// NewAggregator creates an aggregator over sources. Their order is the
// concatenation order and therefore the duplicate precedence.
func NewAggregator(sources []model.ListingSource, allowPartial bool, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		sources:      sources,
		allowPartial: allowPartial,
		logger:       logger,
	}
}

// Aggregate runs every source pipeline concurrently and merges their output.
// Unless partial results are allowed, any pipeline failure fails the whole
// call and no listings are returned.
func (a *Aggregator) Aggregate(ctx context.Context) (*Result, error) {
	start := time.Now()
	outputs := make([][]model.Listing, len(a.sources))
	errs := make([]error, len(a.sources))

	var g *errgroup.Group
	if a.allowPartial {
		g = &errgroup.Group{}
	} else {
		// First failure cancels the sibling fetches.
		g, ctx = errgroup.WithContext(ctx)
	}

	for i, src := range a.sources {
		g.Go(func() error {
			listings, err := runPipeline(ctx, src)
			if err != nil {
				errs[i] = err
				if a.allowPartial {
					return nil
				}
				return err
			}
			outputs[i] = listings
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		a.logger.Error("aggregation failed", "error", err)
		return nil, fmt.Errorf("aggregating listings: %w", err)
	}

	var (
		combined []model.Listing
		meta     Metadata
	)
	for i, src := range a.sources {
		if errs[i] != nil {
			a.logger.Warn("source failed, continuing without it", "source", src.Source(), "error", errs[i])
			meta.Failed = append(meta.Failed, SourceFailure{Source: src.Source(), Error: errs[i].Error()})
			continue
		}
		meta.Sources.set(src.Source(), len(outputs[i]))
		combined = append(combined, outputs[i]...)
	}

	deduped := merge.Dedupe(combined)
	listings := merge.SortByDateDesc(deduped)
	if listings == nil {
		listings = []model.Listing{}
	}
	meta.Total = len(listings)

	a.logger.Info("aggregated listings",
		"total", meta.Total,
		"scout", meta.Sources.Scout,
		"speedyapply", meta.Sources.SpeedyApply,
		"simplify", meta.Sources.Simplify,
		"duplicates", len(combined)-len(deduped),
		"failed", len(meta.Failed),
		"duration", time.Since(start),
	)

	return &Result{Listings: listings, Metadata: meta}, nil
}

// runPipeline turns a panic inside a source into an UnexpectedError so one
// broken document cannot crash the process.
func runPipeline(ctx context.Context, src model.ListingSource) (listings []model.Listing, err error) {
	defer func() {
		if r := recover(); r != nil {
			listings = nil
			err = &model.UnexpectedError{
				Source: src.Source(),
				Stage:  model.StageParse,
				Err:    fmt.Errorf("panic: %v", r),
			}
		}
	}()
	return src.FetchListings(ctx)
}
