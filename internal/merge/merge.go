package merge

import (
	"strings"
	"time"

	"jobagg-engine/internal/domain"
)

// DefaultMaxAge is the staleness window: a previous-corpus record absent
// from the new batch survives this long before eviction, which absorbs
// transient per-company scrape failures across runs.
const DefaultMaxAge = 30 * 24 * time.Hour

// Stats summarizes one merge for the run log.
type Stats struct {
	Kept          int // previous-corpus records carried forward
	Stale         int // previous-corpus records evicted by age
	Overwritten   int // carried-forward records replaced by the new batch
	BadTimestamps int // unparseable scraped_at values (records kept)
}

// Merge combines the previous corpus with a newly fetched batch into the
// next corpus, keyed by job URL.
//
// Previous records go in first so the batch can overwrite them: anything
// whose age in whole days exceeds maxAge is evicted, while a missing or
// unparseable scraped_at keeps the record (a parse bug must never silently
// delete data). Batch
// records then insert unconditionally, new data winning regardless of
// relative timestamps, and are stamped with now as they enter the corpus.
// Fields the previous corpus never had (ats, is_recruiter) ride along
// untouched; absence stays absence.
func Merge(prev, batch []domain.Job, now time.Time, maxAge time.Duration) ([]domain.Job, Stats) {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}

	byURL := make(map[string]domain.Job, len(prev)+len(batch))
	var st Stats

	for _, j := range prev {
		if j.URL == "" {
			continue
		}
		if t, ok := parseScrapedAt(j.ScrapedAt); ok {
			// Age counts whole elapsed days: 30.5 days old is 30 days old.
			age := now.Sub(t)
			age -= age % (24 * time.Hour)
			if age > maxAge {
				st.Stale++
				continue
			}
		} else if j.ScrapedAt != "" {
			st.BadTimestamps++
		}
		byURL[j.URL] = j
		st.Kept++
	}

	stamp := now.UTC().Format(time.RFC3339)
	for _, j := range batch {
		if j.URL == "" {
			continue
		}
		if _, exists := byURL[j.URL]; exists {
			st.Overwritten++
		}
		j.ScrapedAt = stamp
		byURL[j.URL] = j
	}

	out := make([]domain.Job, 0, len(byURL))
	for _, j := range byURL {
		out = append(out, j)
	}
	return out, st
}

// parseScrapedAt reads ISO-8601; a missing offset or bare "Z" suffix means
// UTC. The bool is false for anything unparseable.
func parseScrapedAt(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	base := strings.TrimSuffix(s, "Z")
	for _, layout := range []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		"2006-01-02",
	} {
		if t, err := time.ParseInLocation(layout, base, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Summarize recomputes the persisted metadata from a merged corpus.
func Summarize(jobs []domain.Job, active map[string]int, sources []string, now time.Time) domain.Metadata {
	md := domain.Metadata{
		LastUpdated:     now.UTC().Format(time.RFC3339),
		TotalJobs:       len(jobs),
		ActiveCompanies: len(active),
		Source:          sources,
	}
	for _, j := range jobs {
		if j.IsRecruiter != nil && *j.IsRecruiter {
			md.RecruiterJobs++
		}
	}
	return md
}
