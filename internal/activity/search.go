package activity

import (
	"context"
	"fmt"

	"github.com/google/go-github/v62/github"
	"go.uber.org/zap"
)

// CommitMetrics is the commit activity of one user over the window.
type CommitMetrics struct {
	CommitCount      int
	ReposContributed int
	ReposList        []string
}

// PullRequestMetrics holds the count-only pull request search results.
type PullRequestMetrics struct {
	Opened   int
	Merged   int
	Reviewed int
	Comments int
}

// IssueMetrics holds the count-only issue search results.
type IssueMetrics struct {
	Opened   int
	Closed   int
	Comments int
}

// UserCommits searches commits authored by the user inside the window. The
// reported total count becomes the commit count; distinct repositories are
// collected from the first result page only, so repos_contributed undercounts
// whenever the results span more than one page. That limitation is kept
// intentionally to match the reference behavior.
func (f *Fetcher) UserCommits(ctx context.Context, login, since, until string) CommitMetrics {
	query := fmt.Sprintf("org:%s author:%s author-date:%s..%s", f.organizationSlug, login, since, until)
	opts := &github.SearchOptions{ListOptions: github.ListOptions{PerPage: listPageSize}}

	result, resp, err := f.client.Search.Commits(ctx, query, opts)
	if err != nil {
		f.log.Warn("commit search failed", zap.String("user", login), zap.Error(err))
		return CommitMetrics{}
	}
	f.checkRateLimit(resp)

	seen := make(map[string]struct{})
	var repos []string
	for _, item := range result.Commits {
		name := item.GetRepository().GetName()
		if name == "" {
			continue
		}
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			repos = append(repos, name)
		}
	}
	return CommitMetrics{
		CommitCount:      result.GetTotal(),
		ReposContributed: len(seen),
		ReposList:        repos,
	}
}

// UserPullRequests issues the four count-only pull request searches for one
// user: opened, merged, reviewed, and commented.
func (f *Fetcher) UserPullRequests(ctx context.Context, login, since, until string) PullRequestMetrics {
	return PullRequestMetrics{
		Opened:   f.searchCount(ctx, fmt.Sprintf("org:%s author:%s created:%s..%s is:pr", f.organizationSlug, login, since, until)),
		Merged:   f.searchCount(ctx, fmt.Sprintf("org:%s author:%s merged:%s..%s is:pr", f.organizationSlug, login, since, until)),
		Reviewed: f.searchCount(ctx, fmt.Sprintf("org:%s reviewed-by:%s created:%s..%s is:pr", f.organizationSlug, login, since, until)),
		Comments: f.searchCount(ctx, fmt.Sprintf("org:%s commenter:%s created:%s..%s is:pr", f.organizationSlug, login, since, until)),
	}
}

// UserIssues issues the three count-only issue searches for one user:
// opened, closed, and commented.
func (f *Fetcher) UserIssues(ctx context.Context, login, since, until string) IssueMetrics {
	return IssueMetrics{
		Opened:   f.searchCount(ctx, fmt.Sprintf("org:%s author:%s created:%s..%s is:issue", f.organizationSlug, login, since, until)),
		Closed:   f.searchCount(ctx, fmt.Sprintf("org:%s author:%s closed:%s..%s is:issue", f.organizationSlug, login, since, until)),
		Comments: f.searchCount(ctx, fmt.Sprintf("org:%s commenter:%s created:%s..%s is:issue", f.organizationSlug, login, since, until)),
	}
}

// searchCount runs an issue search where only the total count matters, so a
// page size of one is requested. A failed search contributes zero.
func (f *Fetcher) searchCount(ctx context.Context, query string) int {
	opts := &github.SearchOptions{ListOptions: github.ListOptions{PerPage: 1}}
	result, resp, err := f.client.Search.Issues(ctx, query, opts)
	if err != nil {
		f.log.Warn("issue search failed", zap.String("query", query), zap.Error(err))
		return 0
	}
	f.checkRateLimit(resp)
	return result.GetTotal()
}
