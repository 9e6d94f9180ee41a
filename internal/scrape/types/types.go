package types

import (
	"context"

	"jobagg-engine/internal/domain"
)

// Adapter fetches all public postings for one company on one ATS vendor.
// Implementations never panic past their boundary: any transport error,
// non-2xx status, or malformed payload comes back as an error, which the
// orchestrator records as a failed identifier without touching other
// in-flight fetches.
type Adapter interface {
	Name() string
	FetchCompany(ctx context.Context, slug string) ([]domain.Job, error)
}

// Result is one identifier's outcome as collected by the orchestrator.
// A failed fetch always carries zero jobs.
type Result struct {
	Slug string
	Jobs []domain.Job
	OK   bool
}
