package util

import "strings"

// Substrings that mark a company identifier as a staffing/recruiting agency.
// Substring matching means the occasional false positive; accepted.
var recruiterKeywords = []string{
	"recruit",
	"staffing",
	"talent",
	"consulting",
	"placement",
	"agency",
	"headhunt",
}

// IsRecruiter classifies a company identifier. Recomputed on every fetch so
// keyword-list changes take effect on the next run.
func IsRecruiter(slug string) bool {
	s := strings.ToLower(slug)
	for _, kw := range recruiterKeywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
