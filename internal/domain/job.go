package domain

// ATS vendor tags stamped on every record an adapter produces. Rows written
// by earlier corpus versions may carry "" (unknown).
const (
	ATSGreenhouse = "greenhouse"
	ATSAshby      = "ashby"
	ATSBambooHR   = "bamboohr"
	ATSLever      = "lever"
	ATSWorkday    = "workday"
	ATSICIMS      = "icims"
)

// LocationUnspecified is the sentinel used when a vendor omits location.
const LocationUnspecified = "Not specified"

// Job is the canonical record every adapter normalizes into. URL is the
// merge/dedup key; the corpus holds at most one Job per URL.
type Job struct {
	Company     string `json:"company"`
	CompanySlug string `json:"company_slug"`
	Title       string `json:"title"`
	Location    string `json:"location"`
	URL         string `json:"url"`
	ATS         string `json:"ats,omitempty"`

	// IsRecruiter is nil on rows that predate the classifier; merge keeps
	// nil as "unknown" rather than defaulting it.
	IsRecruiter *bool `json:"is_recruiter,omitempty"`

	// ScrapedAt is stamped (RFC3339 UTC) when the record enters the corpus
	// and drives the staleness window.
	ScrapedAt string `json:"scraped_at,omitempty"`

	// Vendor passthrough; not needed for merge/dedup correctness.
	VendorID    string   `json:"id,omitempty"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
	Departments []string `json:"departments,omitempty"`
	Description string   `json:"description,omitempty"`
}
