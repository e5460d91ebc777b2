package simulate

import (
	"bytes"
	"math/rand"
	"testing"
	"time"

	"github.com/mikefelder/copilot-usage-advanced-dashboard/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testAdoption = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC) // a Monday
	testMonday   = time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC)
	testSaturday = time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
)

// alwaysOnDev uses the assistant every eligible day, which makes the
// usage generator deterministic apart from the drawn magnitudes.
func alwaysOnDev() Developer {
	return Developer{
		UserLogin: "alex-chen",
		UserID:    1000000,
		Team:      teams[0],
		Persona: Persona{
			Name:                "power_user",
			BaseCommits:         [2]int{4, 4},
			BasePRs:             [2]int{1, 2},
			BaseReviews:         [2]int{2, 4},
			CopilotMultiplier:   1.30,
			CopilotAdoptionRate: 1.0,
			AcceptanceRateRange: [2]float64{0.30, 0.40},
			Features:            []string{"code_completion", "chat_panel_ask_mode", "chat_panel_agent_mode", "inline_chat"},
		},
		IDE:       ides[0],
		Seniority: "senior",
	}
}

func newTestGenerator(cfg Config) *Generator {
	return NewGenerator(cfg, testAdoption, rand.New(rand.NewSource(11)))
}

func TestUsageForDayBeforeAdoptionIsNil(t *testing.T) {
	dev := alwaysOnDev()
	for seed := int64(0); seed < 20; seed++ {
		gen := NewGenerator(DefaultConfig(), testAdoption, rand.New(rand.NewSource(seed)))
		rec := gen.UsageForDay(dev, testAdoption.AddDate(0, 0, -1))
		assert.Nil(t, rec, "seed %d", seed)
	}
}

func TestUsageForDayWeekendSkipped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WeekendUsageSkip = 1.0
	gen := newTestGenerator(cfg)

	assert.Nil(t, gen.UsageForDay(alwaysOnDev(), testSaturday))
}

func TestUsageForDayInvariants(t *testing.T) {
	gen := newTestGenerator(DefaultConfig())
	dev := alwaysOnDev()

	rec := gen.UsageForDay(dev, testMonday)
	require.NotNil(t, rec)

	assert.Equal(t, "2025-05-12", rec.Day)
	assert.Equal(t, rec.Day, rec.ReportStartDay)
	assert.Equal(t, rec.Day, rec.ReportEndDay)
	assert.Equal(t, record.UniqueHash("acme-corp", "alex-chen", rec.Day), rec.UniqueHash)

	assert.GreaterOrEqual(t, rec.UserInitiatedInteractionCount, 20)
	assert.LessOrEqual(t, rec.UserInitiatedInteractionCount, 60)
	assert.LessOrEqual(t, rec.CodeAcceptanceActivityCount, rec.CodeGenerationActivityCount)
	assert.GreaterOrEqual(t, rec.LocSuggestedToAddSum, rec.CodeGenerationActivityCount*3)
	assert.LessOrEqual(t, rec.LocAddedSum, rec.LocSuggestedToAddSum)

	// The IDE breakdown always has exactly one entry that reproduces the
	// top-level counters.
	require.Len(t, rec.TotalsByIDE, 1)
	ide := rec.TotalsByIDE[0]
	assert.Equal(t, "vscode", ide.IDE)
	assert.Equal(t, rec.UserInitiatedInteractionCount, ide.UserInitiatedInteractionCount)
	assert.Equal(t, rec.CodeGenerationActivityCount, ide.CodeGenerationActivityCount)
	assert.Equal(t, rec.CodeAcceptanceActivityCount, ide.CodeAcceptanceActivityCount)

	assert.Len(t, rec.TotalsByFeature, len(dev.Persona.Features))
	assert.Len(t, rec.TotalsByLanguageModel, len(dev.Team.Languages))
	assert.Len(t, rec.TotalsByLanguageFeature, len(dev.Team.Languages)*2)

	// Language/model shares approximately reproduce the totals; integer
	// truncation loses at most one unit per entry.
	var genSum int
	for _, entry := range rec.TotalsByLanguageModel {
		genSum += entry.CodeGenerationActivityCount
	}
	assert.LessOrEqual(t, genSum, rec.CodeGenerationActivityCount)
	assert.GreaterOrEqual(t, genSum, rec.CodeGenerationActivityCount-len(dev.Team.Languages))

	assert.Equal(t, "go", rec.TopLanguage)
	assert.Equal(t, "code_completion", rec.TopFeature)
	assert.Contains(t, models, rec.TopModel)
}

func TestUsageForDayAcceptanceRateCapped(t *testing.T) {
	dev := alwaysOnDev()
	dev.Persona.AcceptanceRateRange = [2]float64{0.44, 0.60}

	// Day 70: both familiarity bonuses apply, so the cap must bind.
	day := testAdoption.AddDate(0, 0, 70)
	for seed := int64(0); seed < 10; seed++ {
		gen := NewGenerator(DefaultConfig(), testAdoption, rand.New(rand.NewSource(seed)))
		rec := gen.UsageForDay(dev, day)
		require.NotNil(t, rec)
		maxAccept := int(float64(rec.CodeGenerationActivityCount) * acceptanceRateCap)
		assert.LessOrEqual(t, rec.CodeAcceptanceActivityCount, maxAccept)
	}
}

func TestActivityForDayDayOffProducesNothing(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DayOffRate = 1.0
	gen := newTestGenerator(cfg)

	assert.Nil(t, gen.ActivityForDay(alwaysOnDev(), testMonday))
}

func TestActivityForDayWeekendSkipped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WeekendActivitySkip = 1.0
	gen := newTestGenerator(cfg)

	assert.Nil(t, gen.ActivityForDay(alwaysOnDev(), testSaturday))
}

func TestActivityForDayPreAdoptionUsesBaselineMultiplier(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DayOffRate = 0
	dev := alwaysOnDev()

	// Monday before adoption: jitter is the only variation, so commit
	// counts stay inside the baseline band of 4 * [0.8, 1.2).
	day := testAdoption.AddDate(0, 0, -7)
	for seed := int64(0); seed < 50; seed++ {
		gen := NewGenerator(cfg, testAdoption, rand.New(rand.NewSource(seed)))
		rec := gen.ActivityForDay(dev, day)
		require.NotNil(t, rec)
		assert.GreaterOrEqual(t, rec.CommitCount, 3)
		assert.LessOrEqual(t, rec.CommitCount, 4)
	}
}

func TestActivityForDayPostAdoptionLifted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DayOffRate = 0
	dev := alwaysOnDev()

	// Day 70 is at the ramp ceiling: modifier = 1.30 * 1.30 = 1.69, so
	// commits fall in int(4 * 1.69 * [0.8, 1.2)) = [5, 8].
	day := testAdoption.AddDate(0, 0, 70)
	for seed := int64(0); seed < 50; seed++ {
		gen := NewGenerator(cfg, testAdoption, rand.New(rand.NewSource(seed)))
		rec := gen.ActivityForDay(dev, day)
		require.NotNil(t, rec)
		assert.GreaterOrEqual(t, rec.CommitCount, 5)
		assert.LessOrEqual(t, rec.CommitCount, 8)
	}
}

func TestActivityForDayInvariants(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DayOffRate = 0
	gen := newTestGenerator(cfg)
	dev := alwaysOnDev()

	rec := gen.ActivityForDay(dev, testMonday)
	require.NotNil(t, rec)

	assert.Equal(t, 1, rec.PeriodDays)
	assert.Equal(t, rec.Day, rec.ReportStartDay)
	assert.Equal(t, rec.Day, rec.ReportEndDay)
	assert.Equal(t,
		rec.CommitCount+rec.PRsOpened+rec.PRsMerged+rec.PRsReviewed+rec.IssuesOpened,
		rec.TotalContributions)
	assert.Equal(t, rec.PRsReviewed+rec.PRComments, rec.CodeReviewActivity)
	assert.Equal(t, float64(rec.CommitCount), rec.CommitsPerDay)
	assert.Equal(t, float64(rec.PRsOpened), rec.PRsPerDay)
	assert.Equal(t, float64(rec.PRsReviewed), rec.ReviewsPerDay)
	assert.Equal(t, rec.PRsMerged, rec.PRsClosed)
	assert.LessOrEqual(t, rec.PRsMerged, rec.PRsOpened)
	assert.LessOrEqual(t, rec.IssuesClosed, rec.IssuesOpened+1)
	assert.GreaterOrEqual(t, rec.ReposContributed, 1)
	assert.LessOrEqual(t, rec.ReposContributed, len(dev.Team.Repos))
	assert.Equal(t, "platform", rec.Team)
	assert.Equal(t, "go", rec.PrimaryLanguage)
	assert.Equal(t, "senior", rec.Seniority)
	assert.Equal(t, record.UniqueHash("acme-corp", "alex-chen", rec.Day), rec.UniqueHash)
}

func TestRunGeneratesChronologically(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Developers = 4
	cfg.DaysOfData = 21
	cfg.AdoptionDaysAgo = 10

	var out bytes.Buffer
	res := Run(cfg, rand.New(rand.NewSource(5)), &out)

	require.Len(t, res.Developers, 4)
	assert.NotEmpty(t, res.Activity)

	adoptionStr := res.AdoptionDate.Format(dayFormat)
	prev := ""
	for _, a := range res.Activity {
		assert.GreaterOrEqual(t, a.Day, prev, "activity out of chronological order")
		prev = a.Day
	}
	for _, u := range res.Usage {
		assert.GreaterOrEqual(t, u.Day, adoptionStr, "usage record before adoption date")
	}

	assert.Contains(t, out.String(), "Configuration:")
	assert.Contains(t, out.String(), "Created 4 developer profiles")
}

func TestRunDeterministicWithSeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Developers = 3
	cfg.DaysOfData = 14
	cfg.AdoptionDaysAgo = 7

	var a, b bytes.Buffer
	first := Run(cfg, rand.New(rand.NewSource(9)), &a)
	second := Run(cfg, rand.New(rand.NewSource(9)), &b)

	require.Equal(t, len(first.Usage), len(second.Usage))
	require.Equal(t, len(first.Activity), len(second.Activity))
	for i := range first.Activity {
		// LastUpdatedAt is a wall-clock stamp, everything else must match.
		assert.Equal(t, first.Activity[i].UniqueHash, second.Activity[i].UniqueHash)
		assert.Equal(t, first.Activity[i].CommitCount, second.Activity[i].CommitCount)
		assert.Equal(t, first.Activity[i].PRsOpened, second.Activity[i].PRsOpened)
	}
}

func TestPrintSummaryPrePostComparison(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Developers = 5
	cfg.DaysOfData = 30
	cfg.AdoptionDaysAgo = 15

	var out bytes.Buffer
	res := Run(cfg, rand.New(rand.NewSource(2)), &out)

	var summary bytes.Buffer
	PrintSummary(res, &summary)

	assert.Contains(t, summary.String(), "Data Summary")
	assert.Contains(t, summary.String(), "Copilot Metrics:")
	assert.Contains(t, summary.String(), "Pre vs Post Copilot Adoption")
}
