package ashby

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"jobagg-engine/internal/domain"
	"jobagg-engine/internal/scrape/util"
)

// Ashby exposes hosted boards only through GraphQL-over-POST; one fixed
// query per company, keyed by organizationHostedJobsPageName.
const boardQuery = `query ApiJobBoard($organizationHostedJobsPageName: String!) {
  jobBoard: jobBoardWithTeams(organizationHostedJobsPageName: $organizationHostedJobsPageName) {
    jobPostings {
      id
      title
      locationName
      employmentType
    }
  }
}`

type Scraper struct {
	hc       *http.Client
	limiter  *util.HostLimiter
	endpoint string
}

func New(limiter *util.HostLimiter) *Scraper {
	return &Scraper{
		hc:       &http.Client{Timeout: 15 * time.Second},
		limiter:  limiter,
		endpoint: "https://jobs.ashbyhq.com/api/non-user-graphql",
	}
}

func (s *Scraper) Name() string { return domain.ATSAshby }

type gqlRequest struct {
	OperationName string         `json:"operationName"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
}

type gqlResponse struct {
	Data struct {
		JobBoard *struct {
			JobPostings []posting `json:"jobPostings"`
		} `json:"jobBoard"`
	} `json:"data"`
}

type posting struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	LocationName   string `json:"locationName"`
	EmploymentType string `json:"employmentType"`
}

func (s *Scraper) FetchCompany(ctx context.Context, slug string) ([]domain.Job, error) {
	payload, err := json.Marshal(gqlRequest{
		OperationName: "ApiJobBoard",
		Query:         boardQuery,
		Variables:     map[string]any{"organizationHostedJobsPageName": slug},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", util.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	if s.limiter != nil {
		if err := s.limiter.WaitURL(ctx, s.endpoint); err != nil {
			return nil, err
		}
	}

	res, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ashby post: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ashby status %d", res.StatusCode)
	}

	var gr gqlResponse
	if err := json.NewDecoder(res.Body).Decode(&gr); err != nil {
		return nil, fmt.Errorf("ashby decode: %w", err)
	}
	if gr.Data.JobBoard == nil {
		return nil, fmt.Errorf("ashby: no job board for %q", slug)
	}

	recruiter := util.IsRecruiter(slug)
	out := make([]domain.Job, 0, len(gr.Data.JobBoard.JobPostings))
	for _, p := range gr.Data.JobBoard.JobPostings {
		if p.ID == "" {
			continue
		}
		loc := util.NormalizeLocation(p.LocationName)
		if loc == "" {
			loc = domain.LocationUnspecified
		}
		out = append(out, domain.Job{
			Company:     slug,
			CompanySlug: slug,
			Title:       util.CleanText(p.Title),
			Location:    loc,
			// Ashby never returns a posting URL; synthesize the hosted one.
			URL:         fmt.Sprintf("https://jobs.ashbyhq.com/%s/jobs/%s", slug, p.ID),
			ATS:         domain.ATSAshby,
			IsRecruiter: &recruiter,
			VendorID:    p.ID,
		})
	}
	return out, nil
}
