package scrape

import (
	"context"

	"jobagg-engine/internal/domain"
	"jobagg-engine/internal/scrape/types"
)

// Platform binds an adapter to its identifier set. The table is built once
// per run from config; adapters never learn about each other.
type Platform struct {
	Name    string
	Adapter types.Adapter
	Slugs   []string
}

// Batch is one run's combined scrape across all platforms.
type Batch struct {
	Active  map[string]int
	Jobs    []domain.Job
	Sources []string
}

// RunAll invokes the orchestrator once per platform, in table order, and
// unions the results. Later platforms win on active-map key collisions;
// collisions are not expected since identifiers are platform-scoped.
func RunAll(ctx context.Context, platforms []Platform, workers int) Batch {
	b := Batch{Active: make(map[string]int)}
	for _, p := range platforms {
		if len(p.Slugs) == 0 {
			continue
		}
		b.Sources = append(b.Sources, p.Name)
		res := RunPlatform(ctx, p.Adapter, p.Slugs, workers)
		for slug, n := range res.Active {
			b.Active[slug] = n
		}
		b.Jobs = append(b.Jobs, res.Jobs...)
	}
	return b
}
