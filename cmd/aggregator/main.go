package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"jobagg-engine/internal/companies"
	"jobagg-engine/internal/config"
	"jobagg-engine/internal/domain"
	"jobagg-engine/internal/merge"
	"jobagg-engine/internal/runlock"
	"jobagg-engine/internal/scrape"
	"jobagg-engine/internal/scrape/ashby"
	"jobagg-engine/internal/scrape/bamboohr"
	"jobagg-engine/internal/scrape/greenhouse"
	"jobagg-engine/internal/scrape/icims"
	"jobagg-engine/internal/scrape/lever"
	"jobagg-engine/internal/scrape/types"
	"jobagg-engine/internal/scrape/util"
	"jobagg-engine/internal/scrape/workday"
	"jobagg-engine/internal/scheduler"
	"jobagg-engine/internal/store"
)

func main() {
	_ = godotenv.Load()

	dataDir := os.Getenv("JOBAGG_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	cfg, err := config.Load(userCfgPath)
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfg, val := config.NormalizeAndValidate(cfg)
	for _, w := range val.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	if !val.OK() {
		for _, e := range val.Errors {
			log.Printf("[config] error: %s", e)
		}
		log.Fatalf("config invalid (%s)", userCfgPath)
	}

	// One writer per corpus.
	lock, err := runlock.Acquire(dataDir)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lock.Unlock() }()

	db, err := store.Open(filepath.Join(dataDir, "corpus.db"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	run := func(ctx context.Context) error {
		return runOnce(ctx, db.Pool, cfg)
	}

	ctx := context.Background()
	if cfg.Schedule.IntervalMinutes > 0 {
		scheduler.Every(ctx, time.Duration(cfg.Schedule.IntervalMinutes)*time.Minute, "aggregate", run)
		return
	}
	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}

func runOnce(ctx context.Context, db *sql.DB, cfg config.Config) error {
	limiter := util.NewHostLimiter(cfg.Scrape.HostRatePerSec, cfg.Scrape.HostBurst)

	platforms, total, err := buildPlatforms(cfg, limiter)
	if err != nil {
		return err
	}
	if total == 0 {
		// The one run-fatal condition: nothing to do, abort before any write.
		return errors.New("no company identifiers loaded for any platform")
	}

	start := time.Now()
	batch := scrape.RunAll(ctx, platforms, cfg.Scrape.Workers)

	kept, fstats := scrape.FilterJobs(batch.Jobs)
	log.Printf("[filter] kept=%d dropped=%d (no_title=%d no_url=%d no_company=%d)",
		len(kept), fstats.Dropped(), fstats.NoTitle, fstats.NoURL, fstats.NoCompany)

	prev, err := store.ReadAll(ctx, db)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	maxAge := time.Duration(cfg.Scrape.StalenessDays) * 24 * time.Hour
	merged, mstats := merge.Merge(prev, kept, now, maxAge)
	md := merge.Summarize(merged, batch.Active, batch.Sources, now)

	if err := store.ReplaceAll(ctx, db, merged, md); err != nil {
		return err
	}

	log.Printf("[run] active=%d fetched=%d kept=%d prev=%d stale=%d overwritten=%d corpus=%d recruiter=%d took=%s",
		len(batch.Active), len(batch.Jobs), len(kept), len(prev),
		mstats.Stale, mstats.Overwritten, len(merged), md.RecruiterJobs,
		time.Since(start).Round(time.Millisecond))
	return nil
}

// buildPlatforms is the static table mapping each platform to its adapter
// and identifier set. Sets reload on every run so list edits take effect
// without a restart; files load concurrently into per-platform slots, no
// shared accumulator.
func buildPlatforms(cfg config.Config, limiter *util.HostLimiter) ([]scrape.Platform, int, error) {
	srcs := []struct {
		name    string
		cfg     config.Source
		adapter types.Adapter
	}{
		{domain.ATSGreenhouse, cfg.Sources.Greenhouse, greenhouse.New(limiter)},
		{domain.ATSAshby, cfg.Sources.Ashby, ashby.New(limiter)},
		{domain.ATSBambooHR, cfg.Sources.BambooHR, bamboohr.New(limiter)},
		{domain.ATSLever, cfg.Sources.Lever, lever.New(limiter)},
		{domain.ATSWorkday, cfg.Sources.Workday, workday.New(limiter)},
		{domain.ATSICIMS, cfg.Sources.ICIMS, icims.New()},
	}

	slugSets := make([][]string, len(srcs))
	var g errgroup.Group
	for i, s := range srcs {
		if !s.cfg.Enabled {
			continue
		}
		i, s := i, s
		g.Go(func() error {
			set, err := companies.LoadFile(s.cfg.CompaniesFile)
			if err != nil {
				return fmt.Errorf("%s companies: %w", s.name, err)
			}
			slugSets[i] = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	var platforms []scrape.Platform
	total := 0
	for i, s := range srcs {
		if !s.cfg.Enabled {
			continue
		}
		total += len(slugSets[i])
		platforms = append(platforms, scrape.Platform{
			Name:    s.name,
			Adapter: s.adapter,
			Slugs:   slugSets[i],
		})
	}
	return platforms, total, nil
}
