package model

import (
	"context"
	"time"
)

// JobType is the kind of role a source publishes. It is fixed per source.
type JobType string

const (
	JobTypeInternship JobType = "internship"
	JobTypeNewGrad    JobType = "newgrad"
)

// Source identifies the upstream document a listing came from.
type Source string

const (
	SourceScout       Source = "scout"
	SourceSpeedyApply Source = "speedyapply"
	SourceSimplify    Source = "simplify"
)

// Sources is the fixed pipeline order. Earlier sources win on duplicates.
var Sources = []Source{SourceScout, SourceSpeedyApply, SourceSimplify}

// JobType returns the job type every listing from s carries.
func (s Source) JobType() JobType {
	if s == SourceSimplify {
		return JobTypeNewGrad
	}
	return JobTypeInternship
}

// Valid reports whether s is one of the known sources.
func (s Source) Valid() bool {
	for _, known := range Sources {
		if s == known {
			return true
		}
	}
	return false
}

// UnknownInstant stands in for a posting date that could not be resolved.
// The zero time sorts before every real date.
var UnknownInstant = time.Time{}

// DatePosted pairs the rendered date with the instant used for ordering.
type DatePosted struct {
	Display string    `json:"display"` // MM/DD/YYYY, or the raw text when unknown
	Instant time.Time `json:"instant"` // UnknownInstant (0001-01-01T00:00:00Z) when unresolved
}

// Known reports whether the date resolved to a real instant.
func (d DatePosted) Known() bool {
	return !d.Instant.Equal(UnknownInstant)
}

// Unified representation of a job listing from any source document.
type Listing struct {
	Company    string     `json:"company"`    // display form, emoji stripped
	Title      string     `json:"title"`      // job title
	Location   string     `json:"location"`   // may be empty
	Link       string     `json:"link"`       // canonical absolute URL where available
	DatePosted DatePosted `json:"datePosted"` // resolved posting date
	Salary     string     `json:"salary"`     // empty when the source has no salary column
	JobType    JobType    `json:"jobType"`
	Source     Source     `json:"source"`
}

// ListingSource runs one full pipeline (fetch, extract, parse) for a source.
type ListingSource interface {
	Source() Source
	FetchListings(ctx context.Context) ([]Listing, error)
}

// DocumentFetcher retrieves the raw text of an upstream document.
type DocumentFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}
