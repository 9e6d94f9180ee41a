package bamboohr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"jobagg-engine/internal/domain"
	"jobagg-engine/internal/scrape/util"
)

// Scraper reads the per-tenant careers list:
// https://<slug>.bamboohr.com/careers/list
type Scraper struct {
	hc      *http.Client
	limiter *util.HostLimiter

	// apiBase overrides the per-tenant host in tests; empty in production.
	apiBase string
}

func New(limiter *util.HostLimiter) *Scraper {
	return &Scraper{
		hc:      &http.Client{Timeout: 15 * time.Second},
		limiter: limiter,
	}
}

func (s *Scraper) Name() string { return domain.ATSBambooHR }

type listResponse struct {
	Result []posting `json:"result"`
}

type posting struct {
	ID              json.Number `json:"id"`
	JobOpeningName  string      `json:"jobOpeningName"`
	DepartmentLabel string      `json:"departmentLabel"`
	Location        struct {
		City  string `json:"city"`
		State string `json:"state"`
	} `json:"location"`
}

func (s *Scraper) listURL(slug string) string {
	if s.apiBase != "" {
		return s.apiBase + "/careers/list"
	}
	return fmt.Sprintf("https://%s.bamboohr.com/careers/list", slug)
}

func (s *Scraper) FetchCompany(ctx context.Context, slug string) ([]domain.Job, error) {
	u := s.listURL(slug)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", util.UserAgent)
	req.Header.Set("Accept", "application/json")

	if s.limiter != nil {
		if err := s.limiter.WaitURL(ctx, u); err != nil {
			return nil, err
		}
	}

	res, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bamboohr get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bamboohr status %d", res.StatusCode)
	}

	var lr listResponse
	if err := json.NewDecoder(res.Body).Decode(&lr); err != nil {
		return nil, fmt.Errorf("bamboohr decode: %w", err)
	}

	recruiter := util.IsRecruiter(slug)
	out := make([]domain.Job, 0, len(lr.Result))
	for _, p := range lr.Result {
		id := p.ID.String()
		if id == "" {
			continue
		}
		loc := joinLocation(p.Location.City, p.Location.State)
		if loc == "" {
			loc = domain.LocationUnspecified
		}
		var depts []string
		if d := util.CleanText(p.DepartmentLabel); d != "" {
			depts = []string{d}
		}
		out = append(out, domain.Job{
			Company:     slug,
			CompanySlug: slug,
			Title:       util.CleanText(p.JobOpeningName),
			Location:    loc,
			// The list endpoint carries no link; synthesize the hosted one.
			URL:         fmt.Sprintf("https://%s.bamboohr.com/careers/%s", slug, id),
			ATS:         domain.ATSBambooHR,
			IsRecruiter: &recruiter,
			VendorID:    id,
			Departments: depts,
		})
	}
	return out, nil
}

func joinLocation(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = util.CleanText(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}
