package activity

import (
	"context"
	"fmt"

	"github.com/google/go-github/v62/github"
	"go.uber.org/zap"
)

// Members returns the logins of all organization members, paging through
// the listing endpoint until a short or empty page. An error on any page
// returns whatever was accumulated so far; a partial member list is
// preferred over aborting the run.
func (f *Fetcher) Members(ctx context.Context) []string {
	var members []string
	for page := 1; ; page++ {
		url := fmt.Sprintf("%s/%s/members?page=%d&per_page=%d", f.apiType, f.organizationSlug, page, listPageSize)
		var pageMembers []*github.User
		if !f.listPage(ctx, url, &pageMembers) || len(pageMembers) == 0 {
			break
		}
		for _, m := range pageMembers {
			if login := m.GetLogin(); login != "" {
				members = append(members, login)
			}
		}
		if len(pageMembers) < listPageSize {
			break
		}
	}
	f.log.Info("listed organization members", zap.Int("count", len(members)))
	return members
}

// Repos returns the names of all repositories in the organization, with the
// same degrade-gracefully paging as Members.
func (f *Fetcher) Repos(ctx context.Context) []string {
	var repos []string
	for page := 1; ; page++ {
		url := fmt.Sprintf("%s/%s/repos?page=%d&per_page=%d&type=all", f.apiType, f.organizationSlug, page, listPageSize)
		var pageRepos []*github.Repository
		if !f.listPage(ctx, url, &pageRepos) || len(pageRepos) == 0 {
			break
		}
		for _, r := range pageRepos {
			if name := r.GetName(); name != "" {
				repos = append(repos, name)
			}
		}
		if len(pageRepos) < listPageSize {
			break
		}
	}
	f.log.Info("listed organization repositories", zap.Int("count", len(repos)))
	return repos
}

// listPage fetches one listing page into out and reports whether the caller
// should keep paging. The raw URL form keeps the orgs/enterprises path split
// and the page/per_page parameters identical across both listing kinds.
func (f *Fetcher) listPage(ctx context.Context, url string, out any) bool {
	req, err := f.client.NewRequest("GET", url, nil)
	if err != nil {
		f.log.Error("build listing request", zap.String("url", url), zap.Error(err))
		return false
	}
	resp, err := f.client.Do(ctx, req, out)
	if err != nil {
		f.log.Error("listing request failed", zap.String("url", url), zap.Error(err))
		return false
	}
	f.checkRateLimit(resp)
	return true
}
