package lever

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobagg-engine/internal/domain"
)

const postingsJSON = `[
  {
    "id": "abc-123",
    "text": "Backend Engineer",
    "hostedUrl": "https://jobs.lever.co/acme/abc-123",
    "createdAt": 1755000000000,
    "categories": {"location": "Remote - US", "team": "Platform"},
    "description": "<div><p>Build <b>services</b> in Go.</p></div>"
  },
  {
    "id": "def-456",
    "text": "Support Lead",
    "hostedUrl": "https://jobs.lever.co/acme/def-456",
    "categories": {}
  }
]`

func TestFetchCompanyBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/acme", r.URL.Path)
		require.Equal(t, "json", r.URL.Query().Get("mode"))
		_, _ = w.Write([]byte(postingsJSON))
	}))
	defer srv.Close()

	s := New(nil)
	s.apiBase = srv.URL

	jobs, err := s.FetchCompany(context.Background(), "acme")
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, "Backend Engineer", jobs[0].Title)
	assert.Equal(t, "Remote - US", jobs[0].Location)
	assert.Equal(t, "https://jobs.lever.co/acme/abc-123", jobs[0].URL)
	assert.Equal(t, domain.ATSLever, jobs[0].ATS)
	assert.Equal(t, []string{"Platform"}, jobs[0].Departments)
	assert.Equal(t, "Build services in Go.", jobs[0].Description)
	assert.NotEmpty(t, jobs[0].UpdatedAt)

	assert.Equal(t, domain.LocationUnspecified, jobs[1].Location)
	assert.Empty(t, jobs[1].UpdatedAt)
}

func TestFetchCompanyNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	s := New(nil)
	s.apiBase = srv.URL

	jobs, err := s.FetchCompany(context.Background(), "gone")
	assert.Error(t, err)
	assert.Empty(t, jobs)
}
