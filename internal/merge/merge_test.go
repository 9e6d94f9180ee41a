package merge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobagg-engine/internal/domain"
)

var now = time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

func stampedAgo(d time.Duration) string {
	return now.Add(-d).Format(time.RFC3339)
}

func urls(jobs []domain.Job) map[string]domain.Job {
	m := make(map[string]domain.Job, len(jobs))
	for _, j := range jobs {
		m[j.URL] = j
	}
	return m
}

func TestMergeStalenessEviction(t *testing.T) {
	prev := []domain.Job{
		{URL: "https://x/old", Title: "Old", ScrapedAt: stampedAgo(31 * 24 * time.Hour)},
		{URL: "https://x/fresh", Title: "Fresh", ScrapedAt: stampedAgo(29 * 24 * time.Hour)},
	}

	out, st := Merge(prev, nil, now, 0)

	m := urls(out)
	assert.NotContains(t, m, "https://x/old")
	assert.Contains(t, m, "https://x/fresh")
	assert.Equal(t, 1, st.Stale)
	assert.Equal(t, 1, st.Kept)
}

func TestMergeStalenessCountsWholeDays(t *testing.T) {
	prev := []domain.Job{
		// 30 days and change: still 30 whole days old, inside the window.
		{URL: "https://x/edge", Title: "Edge", ScrapedAt: stampedAgo(30*24*time.Hour + 18*time.Hour)},
		{URL: "https://x/over", Title: "Over", ScrapedAt: stampedAgo(31 * 24 * time.Hour)},
	}

	out, st := Merge(prev, nil, now, 0)

	m := urls(out)
	assert.Contains(t, m, "https://x/edge")
	assert.NotContains(t, m, "https://x/over")
	assert.Equal(t, 1, st.Stale)
}

func TestMergeNewWins(t *testing.T) {
	prev := []domain.Job{
		{URL: "https://x/1", Title: "A", ScrapedAt: stampedAgo(24 * time.Hour)},
	}
	batch := []domain.Job{
		{URL: "https://x/1", Title: "B"},
	}

	out, st := Merge(prev, batch, now, 0)

	require.Len(t, out, 1)
	assert.Equal(t, "B", out[0].Title)
	assert.Equal(t, now.Format(time.RFC3339), out[0].ScrapedAt)
	assert.Equal(t, 1, st.Overwritten)
}

func TestMergeFailOpenOnBadTimestamp(t *testing.T) {
	prev := []domain.Job{
		{URL: "https://x/1", Title: "Keep me", ScrapedAt: "not-a-date"},
	}

	out, st := Merge(prev, nil, now, 0)

	require.Len(t, out, 1)
	assert.Equal(t, "Keep me", out[0].Title)
	assert.Equal(t, 1, st.BadTimestamps)
	assert.Zero(t, st.Stale)
}

func TestMergeMissingTimestampKept(t *testing.T) {
	prev := []domain.Job{{URL: "https://x/1", Title: "Legacy"}}

	out, st := Merge(prev, nil, now, 0)

	require.Len(t, out, 1)
	assert.Zero(t, st.BadTimestamps)
}

func TestMergeZonelessTimestampsAreUTC(t *testing.T) {
	prev := []domain.Job{
		// Older corpora wrote zone-less and bare-Z timestamps.
		{URL: "https://x/1", ScrapedAt: now.Add(-10 * 24 * time.Hour).Format("2006-01-02T15:04:05")},
		{URL: "https://x/2", ScrapedAt: now.Add(-40*24*time.Hour).Format("2006-01-02T15:04:05") + "Z"},
	}

	out, st := Merge(prev, nil, now, 0)

	m := urls(out)
	assert.Contains(t, m, "https://x/1")
	assert.NotContains(t, m, "https://x/2")
	assert.Equal(t, 1, st.Stale)
	assert.Zero(t, st.BadTimestamps)
}

func TestMergeDedupByURL(t *testing.T) {
	batch := []domain.Job{
		{URL: "https://x/1", Title: "first"},
		{URL: "https://x/1", Title: "second"},
		{URL: "https://x/2", Title: "other"},
	}

	out, _ := Merge(nil, batch, now, 0)

	require.Len(t, out, 2)
	assert.Equal(t, "second", urls(out)["https://x/1"].Title)
}

func TestMergeEndToEnd(t *testing.T) {
	prev := []domain.Job{
		{URL: "https://x/a", Title: "A", ScrapedAt: stampedAgo(5 * 24 * time.Hour)},
		{URL: "https://x/b", Title: "B", ScrapedAt: stampedAgo(40 * 24 * time.Hour)},
	}
	batch := []domain.Job{
		{URL: "https://x/a", Title: "A-retitled"},
	}

	out, st := Merge(prev, batch, now, 0)

	require.Len(t, out, 1)
	assert.Equal(t, "https://x/a", out[0].URL)
	assert.Equal(t, "A-retitled", out[0].Title)
	assert.Equal(t, 1, st.Stale)
	assert.Equal(t, 1, st.Overwritten)
}

func TestMergePreservesUnknownFields(t *testing.T) {
	// Rows written before the classifier existed stay "unknown".
	prev := []domain.Job{
		{URL: "https://x/legacy", Title: "Legacy", ScrapedAt: stampedAgo(24 * time.Hour)},
	}

	out, _ := Merge(prev, nil, now, 0)

	require.Len(t, out, 1)
	assert.Nil(t, out[0].IsRecruiter)
	assert.Empty(t, out[0].ATS)
}

func TestSummarize(t *testing.T) {
	yes, no := true, false
	jobs := []domain.Job{
		{URL: "https://x/1", IsRecruiter: &yes},
		{URL: "https://x/2", IsRecruiter: &no},
		{URL: "https://x/3"}, // unknown does not count
	}
	active := map[string]int{"acme": 2, "globex": 1}

	md := Summarize(jobs, active, []string{"greenhouse", "lever"}, now)

	assert.Equal(t, 3, md.TotalJobs)
	assert.Equal(t, 2, md.ActiveCompanies)
	assert.Equal(t, 1, md.RecruiterJobs)
	assert.Equal(t, []string{"greenhouse", "lever"}, md.Source)
	assert.Equal(t, now.Format(time.RFC3339), md.LastUpdated)
}
