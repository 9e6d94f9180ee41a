package greenhouse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jobagg-engine/internal/domain"
	"jobagg-engine/internal/scrape/util"
)

// Scraper reads the public Greenhouse board API:
// https://boards-api.greenhouse.io/v1/boards/<slug>/jobs
type Scraper struct {
	hc      *http.Client
	limiter *util.HostLimiter
	apiBase string
}

func New(limiter *util.HostLimiter) *Scraper {
	return &Scraper{
		hc:      &http.Client{Timeout: 15 * time.Second},
		limiter: limiter,
		apiBase: "https://boards-api.greenhouse.io/v1/boards",
	}
}

func (s *Scraper) Name() string { return domain.ATSGreenhouse }

type boardResponse struct {
	Jobs []posting `json:"jobs"`
}

type posting struct {
	ID          json.Number `json:"id"`
	Title       string      `json:"title"`
	AbsoluteURL string      `json:"absolute_url"`
	UpdatedAt   string      `json:"updated_at"`
	Location    struct {
		Name string `json:"name"`
	} `json:"location"`
	Departments []struct {
		Name string `json:"name"`
	} `json:"departments"`
}

func (s *Scraper) FetchCompany(ctx context.Context, slug string) ([]domain.Job, error) {
	u := fmt.Sprintf("%s/%s/jobs", s.apiBase, url.PathEscape(slug))

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
		return nil, fmt.Errorf("greenhouse get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("greenhouse status %d", res.StatusCode)
	}

	var br boardResponse
	if err := json.NewDecoder(res.Body).Decode(&br); err != nil {
		return nil, fmt.Errorf("greenhouse decode: %w", err)
	}

	recruiter := util.IsRecruiter(slug)
	out := make([]domain.Job, 0, len(br.Jobs))
	for _, p := range br.Jobs {
		loc := util.NormalizeLocation(p.Location.Name)
		if loc == "" {
			loc = domain.LocationUnspecified
		}
		var depts []string
		for _, d := range p.Departments {
			if name := util.CleanText(d.Name); name != "" {
				depts = append(depts, name)
			}
		}
		out = append(out, domain.Job{
			Company:     slug,
			CompanySlug: slug,
			Title:       util.CleanText(p.Title),
			Location:    loc,
			URL:         strings.TrimSpace(p.AbsoluteURL),
			ATS:         domain.ATSGreenhouse,
			IsRecruiter: &recruiter,
			VendorID:    p.ID.String(),
			UpdatedAt:   strings.TrimSpace(p.UpdatedAt),
			Departments: depts,
		})
	}
	return out, nil
}
