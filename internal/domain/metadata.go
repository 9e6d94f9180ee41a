package domain

// Metadata is the per-run summary persisted alongside the corpus.
type Metadata struct {
	LastUpdated     string   `json:"last_updated"`
	TotalJobs       int      `json:"total_jobs"`
	ActiveCompanies int      `json:"active_companies"`
	RecruiterJobs   int      `json:"recruiter_jobs"`
	Source          []string `json:"source"`
}
