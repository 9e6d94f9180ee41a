package scrape

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobagg-engine/internal/domain"
)

type fakeAdapter struct {
	name string
	jobs map[string][]domain.Job
	fail map[string]bool
}

func (f *fakeAdapter) Name() string {
	if f.name == "" {
		return "fake"
	}
	return f.name
}

func (f *fakeAdapter) FetchCompany(ctx context.Context, slug string) ([]domain.Job, error) {
	if f.fail[slug] {
		return nil, errors.New("synthetic failure")
	}
	return f.jobs[slug], nil
}

func jobFor(slug string, n int) domain.Job {
	return domain.Job{
		Company: slug,
		Title:   fmt.Sprintf("Role %d", n),
		URL:     fmt.Sprintf("https://jobs.example/%s/%d", slug, n),
	}
}

func TestRunPlatformCollectsActiveCounts(t *testing.T) {
	a := &fakeAdapter{jobs: map[string][]domain.Job{
		"acme":   {jobFor("acme", 1), jobFor("acme", 2)},
		"globex": {jobFor("globex", 1)},
		"empty":  {},
	}}

	res := RunPlatform(context.Background(), a, []string{"acme", "globex", "empty"}, 4)

	assert.Equal(t, map[string]int{"acme": 2, "globex": 1}, res.Active)
	assert.Len(t, res.Jobs, 3)
	assert.Zero(t, res.Failed)
	// zero-record identifiers are excluded from active, not failures
	assert.NotContains(t, res.Active, "empty")
}

func TestRunPlatformFailureIsolation(t *testing.T) {
	jobs := map[string][]domain.Job{
		"acme":   {jobFor("acme", 1)},
		"globex": {jobFor("globex", 1), jobFor("globex", 2)},
	}

	clean := RunPlatform(context.Background(),
		&fakeAdapter{jobs: jobs},
		[]string{"acme", "globex"}, 2)

	withFailure := RunPlatform(context.Background(),
		&fakeAdapter{jobs: jobs, fail: map[string]bool{"broken": true}},
		[]string{"acme", "broken", "globex"}, 2)

	// the injected failure changes nothing about the other identifiers
	assert.Equal(t, clean.Active, withFailure.Active)
	assert.Equal(t, 1, withFailure.Failed)
	assert.Len(t, withFailure.Jobs, len(clean.Jobs))
}

func TestRunPlatformBoundedWorkersDefault(t *testing.T) {
	// workers <= 0 falls back to the default cap instead of unbounded spawn
	a := &fakeAdapter{jobs: map[string][]domain.Job{"acme": {jobFor("acme", 1)}}}
	res := RunPlatform(context.Background(), a, []string{"acme"}, 0)
	require.Equal(t, 1, res.Active["acme"])
}

func TestRunAllUnionsPlatforms(t *testing.T) {
	gh := &fakeAdapter{name: "greenhouse", jobs: map[string][]domain.Job{
		"acme": {jobFor("acme", 1)},
	}}
	lv := &fakeAdapter{name: "lever", jobs: map[string][]domain.Job{
		"globex": {jobFor("globex", 1), jobFor("globex", 2)},
	}}

	batch := RunAll(context.Background(), []Platform{
		{Name: "greenhouse", Adapter: gh, Slugs: []string{"acme"}},
		{Name: "lever", Adapter: lv, Slugs: []string{"globex"}},
		{Name: "workday", Adapter: &fakeAdapter{}, Slugs: nil}, // skipped
	}, 2)

	assert.Equal(t, map[string]int{"acme": 1, "globex": 2}, batch.Active)
	assert.Len(t, batch.Jobs, 3)
	assert.Equal(t, []string{"greenhouse", "lever"}, batch.Sources)
}
