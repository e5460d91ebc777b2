// Package activity fetches developer activity metrics from the GitHub API
// and aggregates them into per-member records for the reporting window.
package activity

import (
	"context"
	"time"

	"github.com/google/go-github/v62/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const listPageSize = 100

// Fetcher retrieves commit, pull request and issue metrics for the members
// of one organization or standalone enterprise.
type Fetcher struct {
	client *github.Client
	log    *zap.Logger

	organizationSlug string
	standalone       bool
	slugType         string
	apiType          string

	utcOffset string

	// now is the clock used to anchor the reporting window; replaced in tests.
	now func() time.Time
	// ratePause is slept when the remaining rate budget runs low.
	ratePause time.Duration
}

// New creates a Fetcher with an authenticated GitHub client.
func New(token, organizationSlug string, standalone bool, utcOffset string, log *zap.Logger) *Fetcher {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)
	return NewWithClient(github.NewClient(tc), organizationSlug, standalone, utcOffset, log)
}

// NewWithClient creates a Fetcher around an existing client. Tests use this
// to point the fetcher at a stub server.
func NewWithClient(client *github.Client, organizationSlug string, standalone bool, utcOffset string, log *zap.Logger) *Fetcher {
	slugType, apiType := "Organization", "orgs"
	if standalone {
		slugType, apiType = "Standalone", "enterprises"
	}
	f := &Fetcher{
		client:           client,
		log:              log,
		organizationSlug: organizationSlug,
		standalone:       standalone,
		slugType:         slugType,
		apiType:          apiType,
		utcOffset:        utcOffset,
		now:              time.Now,
		ratePause:        5 * time.Second,
	}
	f.log.Info("initialized developer activity fetcher",
		zap.String("slug_type", slugType),
		zap.String("organization_slug", organizationSlug))
	return f
}

// OrganizationSlug returns the slug this fetcher is bound to.
func (f *Fetcher) OrganizationSlug() string { return f.organizationSlug }

// checkRateLimit sleeps briefly when the remaining request budget is almost
// exhausted. The search API in particular has a small per-minute quota.
func (f *Fetcher) checkRateLimit(resp *github.Response) {
	if resp != nil && resp.Rate.Limit > 0 && resp.Rate.Remaining < 3 {
		f.log.Warn("rate limit nearly exhausted, pausing",
			zap.Int("remaining", resp.Rate.Remaining))
		time.Sleep(f.ratePause)
	}
}
