package workday

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"jobagg-engine/internal/domain"
	"jobagg-engine/internal/scrape/util"
)

// Key is the three-part Workday identifier "tenant|wd_instance|site_id",
// e.g. "acme|wd5|External".
type Key struct {
	Tenant   string
	Instance string
	Site     string
}

// ParseKey splits a composite identifier. A wrong part count or empty part
// is an adapter failure, handled like any transport error.
func ParseKey(raw string) (Key, error) {
	parts := strings.Split(raw, "|")
	if len(parts) != 3 {
		return Key{}, fmt.Errorf("want tenant|instance|site, got %d parts", len(parts))
	}
	k := Key{
		Tenant:   strings.TrimSpace(parts[0]),
		Instance: strings.TrimSpace(parts[1]),
		Site:     strings.TrimSpace(parts[2]),
	}
	if k.Tenant == "" || k.Instance == "" || k.Site == "" {
		return Key{}, errors.New("empty part in composite key")
	}
	return k, nil
}

// Scraper pages through the Workday CXS jobs endpoint:
// https://<tenant>.<instance>.myworkdayjobs.com/wday/cxs/<tenant>/<site>/jobs
type Scraper struct {
	hc       *http.Client
	limiter  *util.HostLimiter
	pageSize int

	// apiBase overrides the per-tenant host in tests; empty in production.
	apiBase string
}

func New(limiter *util.HostLimiter) *Scraper {
	return &Scraper{
		hc:       &http.Client{Timeout: 15 * time.Second},
		limiter:  limiter,
		pageSize: 20,
	}
}

func (s *Scraper) Name() string { return domain.ATSWorkday }

type searchRequest struct {
	AppliedFacets map[string]any `json:"appliedFacets"`
	Limit         int            `json:"limit"`
	Offset        int            `json:"offset"`
	SearchText    string         `json:"searchText"`
}

type searchResponse struct {
	Total       int       `json:"total"`
	JobPostings []posting `json:"jobPostings"`
}

type posting struct {
	Title         string `json:"title"`
	ExternalPath  string `json:"externalPath"`
	LocationsText string `json:"locationsText"`
	PostedOnDate  string `json:"postedOnDate"`
}

func (s *Scraper) host(k Key) string {
	return fmt.Sprintf("https://%s.%s.myworkdayjobs.com", k.Tenant, k.Instance)
}

func (s *Scraper) endpoint(k Key) string {
	base := s.apiBase
	if base == "" {
		base = s.host(k)
	}
	return fmt.Sprintf("%s/wday/cxs/%s/%s/jobs", base, k.Tenant, k.Site)
}

func (s *Scraper) FetchCompany(ctx context.Context, raw string) ([]domain.Job, error) {
	k, err := ParseKey(raw)
	if err != nil {
		return nil, fmt.Errorf("workday key %q: %w", raw, err)
	}

	endpoint := s.endpoint(k)
	recruiter := util.IsRecruiter(k.Tenant)

	offset := 0
	var out []domain.Job

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		payload, _ := json.Marshal(searchRequest{
			AppliedFacets: map[string]any{},
			Limit:         s.pageSize,
			Offset:        offset,
			SearchText:    "",
		})

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", util.UserAgent)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", "application/json")

		if s.limiter != nil {
			if err := s.limiter.WaitURL(ctx, endpoint); err != nil {
				return nil, err
			}
		}

		res, err := s.hc.Do(req)
		if err != nil {
			return nil, fmt.Errorf("workday post jobs: %w", err)
		}
		if res.StatusCode != http.StatusOK {
			res.Body.Close()
			// A non-200 mid-pagination halts the loop; pages already
			// fetched are kept, a failed first page fails the company.
			if offset == 0 {
				return nil, fmt.Errorf("workday status %d", res.StatusCode)
			}
			log.Printf("[ats:workday] tenant=%q site=%q offset=%d status=%d; stopping pagination",
				k.Tenant, k.Site, offset, res.StatusCode)
			return out, nil
		}

		var sr searchResponse
		err = json.NewDecoder(res.Body).Decode(&sr)
		res.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("workday decode: %w", err)
		}

		for _, p := range sr.JobPostings {
			title := util.CleanText(p.Title)
			path := strings.TrimSpace(p.ExternalPath)
			if title == "" || path == "" {
				continue
			}
			if !strings.HasPrefix(path, "/") {
				path = "/" + path
			}
			loc := util.NormalizeLocation(p.LocationsText)
			if loc == "" {
				loc = domain.LocationUnspecified
			}
			out = append(out, domain.Job{
				Company:     k.Tenant,
				CompanySlug: raw,
				Title:       title,
				Location:    loc,
				URL:         s.host(k) + path,
				ATS:         domain.ATSWorkday,
				IsRecruiter: &recruiter,
				UpdatedAt:   strings.TrimSpace(p.PostedOnDate),
			})
		}

		offset += s.pageSize
		if len(sr.JobPostings) == 0 || offset >= sr.Total {
			break
		}
	}

	return out, nil
}
