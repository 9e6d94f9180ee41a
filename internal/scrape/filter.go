package scrape

import (
	"strings"

	"jobagg-engine/internal/domain"
)

// Titles that carry no information; records with one of these are dropped.
var sentinelTitles = map[string]bool{
	"":              true,
	"not specified": true,
	"n/a":           true,
	"unknown":       true,
}

// FilterStats counts drops by reason for the run summary.
type FilterStats struct {
	NoTitle   int
	NoURL     int
	NoCompany int
}

func (s FilterStats) Dropped() int { return s.NoTitle + s.NoURL + s.NoCompany }

// FilterJobs drops records that cannot be meaningfully displayed or linked:
// sentinel/empty title, empty URL, or empty company identifier. It is a
// pure, order-preserving predicate; records are never mutated.
func FilterJobs(jobs []domain.Job) ([]domain.Job, FilterStats) {
	var st FilterStats
	out := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		switch {
		case sentinelTitles[strings.ToLower(strings.TrimSpace(j.Title))]:
			st.NoTitle++
		case strings.TrimSpace(j.URL) == "":
			st.NoURL++
		case strings.TrimSpace(j.Company) == "":
			st.NoCompany++
		default:
			out = append(out, j)
		}
	}
	return out, st
}
