package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqueHashIsDeterministic(t *testing.T) {
	first := UniqueHash("acme-corp", "alex-chen", "2025-01-01", "2025-01-29")
	second := UniqueHash("acme-corp", "alex-chen", "2025-01-01", "2025-01-29")
	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestUniqueHashChangesWithAnyKeyField(t *testing.T) {
	base := UniqueHash("acme-corp", "alex-chen", "2025-01-01", "2025-01-29")

	variants := []string{
		UniqueHash("other-org", "alex-chen", "2025-01-01", "2025-01-29"),
		UniqueHash("acme-corp", "jordan-patel", "2025-01-01", "2025-01-29"),
		UniqueHash("acme-corp", "alex-chen", "2025-01-02", "2025-01-29"),
		UniqueHash("acme-corp", "alex-chen", "2025-01-01", "2025-01-30"),
	}
	seen := map[string]struct{}{base: {}}
	for _, v := range variants {
		assert.NotEqual(t, base, v)
		_, dup := seen[v]
		assert.False(t, dup, "distinct keys must not collide")
		seen[v] = struct{}{}
	}
}

func TestUniqueHashIgnoresNonKeyFields(t *testing.T) {
	// The hash covers only the natural key, so two fetches of the same
	// user/window collide on purpose regardless of counter values.
	a := Activity{OrganizationSlug: "acme-corp", UserLogin: "alex-chen", ReportStartDay: "2025-01-01", ReportEndDay: "2025-01-29", CommitCount: 5}
	b := Activity{OrganizationSlug: "acme-corp", UserLogin: "alex-chen", ReportStartDay: "2025-01-01", ReportEndDay: "2025-01-29", CommitCount: 99}

	hashA := UniqueHash(a.OrganizationSlug, a.UserLogin, a.ReportStartDay, a.ReportEndDay)
	hashB := UniqueHash(b.OrganizationSlug, b.UserLogin, b.ReportStartDay, b.ReportEndDay)
	assert.Equal(t, hashA, hashB)
}

func TestUniqueHashMissingFieldSerializesAsEmpty(t *testing.T) {
	assert.Equal(t, UniqueHash("acme-corp", "", "2025-01-01"), UniqueHash("acme-corp", "", "2025-01-01"))
	assert.NotEqual(t, UniqueHash("acme-corp", "", "2025-01-01"), UniqueHash("acme-corp", "x", "2025-01-01"))
}

func TestComputeDerivedAggregates(t *testing.T) {
	a := Activity{
		PeriodDays:   28,
		CommitCount:  14,
		PRsOpened:    7,
		PRsMerged:    5,
		PRsReviewed:  21,
		PRComments:   9,
		IssuesOpened: 3,
	}
	a.ComputeDerived()

	assert.Equal(t, 14+7+5+21+3, a.TotalContributions)
	assert.Equal(t, 21+9, a.CodeReviewActivity)
	assert.Equal(t, 0.5, a.CommitsPerDay)
	assert.Equal(t, 0.25, a.PRsPerDay)
	assert.Equal(t, 0.75, a.ReviewsPerDay)
}

func TestComputeDerivedRounding(t *testing.T) {
	a := Activity{PeriodDays: 28, CommitCount: 10, PRsOpened: 1, PRsReviewed: 2}
	a.ComputeDerived()

	// 10/28 = 0.3571..., 1/28 = 0.0357..., 2/28 = 0.0714...
	assert.Equal(t, 0.36, a.CommitsPerDay)
	assert.Equal(t, 0.04, a.PRsPerDay)
	assert.Equal(t, 0.07, a.ReviewsPerDay)
}

func TestComputeDerivedZeroPeriod(t *testing.T) {
	a := Activity{CommitCount: 10}
	a.ComputeDerived()
	assert.Zero(t, a.CommitsPerDay)
	assert.Equal(t, 10, a.TotalContributions)
}

func TestComputeDerivedAllZeroCounters(t *testing.T) {
	a := Activity{PeriodDays: 28}
	a.ComputeDerived()
	assert.Zero(t, a.TotalContributions)
	assert.Zero(t, a.CodeReviewActivity)
	assert.Zero(t, a.CommitsPerDay)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.33, Round2(1.0/3.0))
	assert.Equal(t, 0.67, Round2(2.0/3.0))
	assert.Equal(t, 1.5, Round2(1.5))
	assert.Equal(t, 0.0, Round2(0))
}

func TestDocIDExposesUniqueHash(t *testing.T) {
	a := Activity{UniqueHash: "abc"}
	u := Usage{UniqueHash: "def"}
	assert.Equal(t, "abc", a.DocID())
	assert.Equal(t, "def", u.DocID())
}
