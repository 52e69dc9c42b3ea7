package model

import (
	"fmt"
)

// FetchError reports a failed upstream request: a network failure, a timeout,
// or a non-success HTTP status.
type FetchError struct {
	Source     Source
	URL        string
	StatusCode int // zero when no response arrived
	Err        error
}

func (e *FetchError) Error() string {
	prefix := fmt.Sprintf("fetch %s", e.URL)
	if e.Source != "" {
		prefix = fmt.Sprintf("fetch %s (%s)", e.URL, e.Source)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d", prefix, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", prefix, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Pipeline stages named in UnexpectedError.
const (
	StageFetch   = "fetch"
	StageExtract = "extract"
	StageParse   = "parse"
)

// UnexpectedError wraps any pipeline failure that is not a FetchError.
type UnexpectedError struct {
	Source Source
	Stage  string
	Err    error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("%s stage for %s: %v", e.Stage, e.Source, e.Err)
}

func (e *UnexpectedError) Unwrap() error {
	return e.Err
}
