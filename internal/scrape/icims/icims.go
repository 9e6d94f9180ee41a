package icims

import (
	"context"
	"errors"

	"jobagg-engine/internal/domain"
)

// ErrNotImplemented is returned for every fetch until the connector exists.
var ErrNotImplemented = errors.New("icims: connector not implemented")

// Scraper is a placeholder. iCIMS needs per-tenant portal discovery before
// a jobs endpoint can be derived from a bare slug, so until that lands every
// fetch fails closed without touching the network.
// TODO: derive the portal search endpoint from the tenant slug.
type Scraper struct{}

func New() *Scraper { return &Scraper{} }

func (*Scraper) Name() string { return domain.ATSICIMS }

func (*Scraper) FetchCompany(ctx context.Context, slug string) ([]domain.Job, error) {
	return nil, ErrNotImplemented
}
