package scrape

import (
	"context"
	"log"
	"sync"

	"jobagg-engine/internal/domain"
	"jobagg-engine/internal/scrape/types"
)

// DefaultWorkers caps in-flight fetches per platform.
const DefaultWorkers = 30

// PlatformResult aggregates one adapter's run over an identifier set.
// Active maps each identifier that returned at least one record to its
// count; identifiers that succeeded with zero records are excluded, not
// failures. Jobs carries no ordering guarantee across identifiers.
type PlatformResult struct {
	Active map[string]int
	Jobs   []domain.Job
	Failed int
}

// RunPlatform drives one adapter over an entire identifier set with a
// bounded worker pool. Workers share nothing; each sends its Result over a
// channel, and a single collector builds the accumulators after the pool
// drains, so one slow or failing identifier never touches the others.
// Failed fetches are logged and counted, never retried within a run.
func RunPlatform(ctx context.Context, a types.Adapter, slugs []string, workers int) PlatformResult {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > len(slugs) && len(slugs) > 0 {
		workers = len(slugs)
	}

	resCh := make(chan types.Result, len(slugs))
	workCh := make(chan string)

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for slug := range workCh {
				jobs, err := a.FetchCompany(ctx, slug)
				if err != nil {
					log.Printf("[ats:%s] company=%q err=%v", a.Name(), slug, err)
					resCh <- types.Result{Slug: slug, OK: false}
					continue
				}
				resCh <- types.Result{Slug: slug, Jobs: jobs, OK: true}
			}
		}()
	}

	go func() {
		defer close(workCh)
		for _, slug := range slugs {
			select {
			case <-ctx.Done():
				return
			case workCh <- slug:
			}
		}
	}()

	wg.Wait()
	close(resCh)

	out := PlatformResult{Active: make(map[string]int)}
	for r := range resCh {
		if !r.OK {
			out.Failed++
			continue
		}
		if len(r.Jobs) == 0 {
			continue
		}
		out.Active[r.Slug] = len(r.Jobs)
		out.Jobs = append(out.Jobs, r.Jobs...)
	}

	log.Printf("[ats:%s] companies=%d active=%d failed=%d jobs=%d",
		a.Name(), len(slugs), len(out.Active), out.Failed, len(out.Jobs))
	return out
}
