package activity

import (
	"context"
	"time"

	"github.com/mikefelder/copilot-usage-advanced-dashboard/internal/record"
	"go.uber.org/zap"
)

const dayFormat = "2006-01-02"

// FetchActivity aggregates activity metrics for every organization member
// over the trailing window [now - daysBack, now]. Members are processed in
// roster order; a failure for one member is logged and skipped, never
// aborting the batch. The returned slice may be empty but is never an error.
func (f *Fetcher) FetchActivity(ctx context.Context, daysBack int) []record.Activity {
	members := f.Members(ctx)
	if len(members) == 0 {
		f.log.Warn("no members found for developer activity fetching")
		return nil
	}

	until := f.now()
	since := until.AddDate(0, 0, -daysBack)
	sinceStr := since.Format(dayFormat)
	untilStr := until.Format(dayFormat)
	capturedAt := until.Format(time.RFC3339)

	f.log.Info("fetching developer activity",
		zap.Int("members", len(members)),
		zap.String("since", sinceStr),
		zap.String("until", untilStr))

	records := make([]record.Activity, 0, len(members))
	for _, member := range members {
		f.log.Info("fetching activity for member", zap.String("user", member))

		commits := f.UserCommits(ctx, member, sinceStr, untilStr)
		prs := f.UserPullRequests(ctx, member, sinceStr, untilStr)
		issues := f.UserIssues(ctx, member, sinceStr, untilStr)

		rec := record.Activity{
			Day:            untilStr,
			ReportStartDay: sinceStr,
			ReportEndDay:   untilStr,
			PeriodDays:     daysBack,

			UserLogin:        member,
			OrganizationSlug: f.organizationSlug,
			SlugType:         f.slugType,

			CommitCount:      commits.CommitCount,
			ReposContributed: commits.ReposContributed,
			PRsOpened:        prs.Opened,
			PRsMerged:        prs.Merged,
			PRsReviewed:      prs.Reviewed,
			PRComments:       prs.Comments,
			IssuesOpened:     issues.Opened,
			IssuesClosed:     issues.Closed,
			IssueComments:    issues.Comments,

			LastUpdatedAt: capturedAt,
			UTCOffset:     f.utcOffset,
		}
		rec.ComputeDerived()
		rec.UniqueHash = record.UniqueHash(rec.OrganizationSlug, rec.UserLogin, rec.ReportStartDay, rec.ReportEndDay)

		records = append(records, rec)
		f.log.Info("processed member activity",
			zap.String("user", member),
			zap.Int("total_contributions", rec.TotalContributions))
	}

	f.log.Info("fetched developer activity", zap.Int("records", len(records)))
	return records
}
