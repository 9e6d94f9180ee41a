package lever

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

// Scraper reads the public Lever postings API:
// https://api.lever.co/v0/postings/<slug>?mode=json
// The response is a bare array, no envelope.
type Scraper struct {
	hc      *http.Client
	limiter *util.HostLimiter
	apiBase string
}

func New(limiter *util.HostLimiter) *Scraper {
	return &Scraper{
		hc:      &http.Client{Timeout: 15 * time.Second},
		limiter: limiter,
		apiBase: "https://api.lever.co/v0/postings",
	}
}

func (s *Scraper) Name() string { return domain.ATSLever }

type posting struct {
	ID         string `json:"id"`
	Text       string `json:"text"` // title
	HostedURL  string `json:"hostedUrl"`
	CreatedAt  int64  `json:"createdAt"` // ms epoch
	Categories struct {
		Location string `json:"location"`
		Team     string `json:"team"`
	} `json:"categories"`
	Description string `json:"description"` // html
}

func (s *Scraper) FetchCompany(ctx context.Context, slug string) ([]domain.Job, error) {
	u := fmt.Sprintf("%s/%s?mode=json", s.apiBase, url.PathEscape(slug))

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
		return nil, fmt.Errorf("lever get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lever status %d", res.StatusCode)
	}

	var postings []posting
	if err := json.NewDecoder(res.Body).Decode(&postings); err != nil {
		return nil, fmt.Errorf("lever decode: %w", err)
	}

	recruiter := util.IsRecruiter(slug)
	out := make([]domain.Job, 0, len(postings))
	for _, p := range postings {
		loc := util.NormalizeLocation(p.Categories.Location)
		if loc == "" {
			loc = domain.LocationUnspecified
		}
		updated := ""
		if p.CreatedAt > 0 {
			updated = time.UnixMilli(p.CreatedAt).UTC().Format(time.RFC3339)
		}
		var depts []string
		if team := util.CleanText(p.Categories.Team); team != "" {
			depts = []string{team}
		}
		out = append(out, domain.Job{
			Company:     slug,
			CompanySlug: slug,
			Title:       util.CleanText(p.Text),
			Location:    loc,
			URL:         strings.TrimSpace(p.HostedURL),
			ATS:         domain.ATSLever,
			IsRecruiter: &recruiter,
			VendorID:    p.ID,
			UpdatedAt:   updated,
			Departments: depts,
			Description: util.StripHTML(p.Description),
		})
	}
	return out, nil
}
