package simulate

import (
	"math/rand"
	"time"

	"github.com/mikefelder/copilot-usage-advanced-dashboard/internal/record"
)

const dayFormat = "2006-01-02"

// Config parameterizes one simulation run.
type Config struct {
	OrganizationSlug string
	SlugType         string
	Developers       int
	DaysOfData       int
	AdoptionDaysAgo  int

	// WeekendUsageSkip and WeekendActivitySkip are the probabilities that a
	// weekend day produces no record at all.
	WeekendUsageSkip    float64
	WeekendActivitySkip float64
	// DayOffRate is the chance a developer takes a random day off.
	DayOffRate float64
}

// DefaultConfig mirrors the reference dataset: 25 developers, 5 months of
// data, adoption 10 weeks ago so the full 8-week ramp plus a stretch at the
// ceiling is visible.
func DefaultConfig() Config {
	return Config{
		OrganizationSlug:    "acme-corp",
		SlugType:            "Organization",
		Developers:          25,
		DaysOfData:          150,
		AdoptionDaysAgo:     70,
		WeekendUsageSkip:    0.9,
		WeekendActivitySkip: 0.85,
		DayOffRate:          0.05,
	}
}

// Generator produces daily records for a fixed roster and adoption date.
type Generator struct {
	cfg      Config
	rng      *rand.Rand
	adoption time.Time
	stamp    string
}

// NewGenerator binds a config, adoption date and random source.
func NewGenerator(cfg Config, adoption time.Time, rng *rand.Rand) *Generator {
	return &Generator{
		cfg:      cfg,
		rng:      rng,
		adoption: adoption,
		stamp:    time.Now().Format(time.RFC3339),
	}
}

const acceptanceRateCap = 0.45

// UsageForDay simulates one developer's assistant usage for one day.
// It returns nil before the adoption date, when the persona's adoption-rate
// draw misses, or on most weekend days.
func (g *Generator) UsageForDay(dev Developer, day time.Time) *record.Usage {
	persona := dev.Persona

	if day.Before(g.adoption) {
		return nil
	}
	if g.rng.Float64() > persona.CopilotAdoptionRate {
		return nil
	}
	if !isWorkday(day) && g.rng.Float64() < g.cfg.WeekendUsageSkip {
		return nil
	}

	days := daysSince(day, g.adoption)
	usageMultiplier := UsageRamp(days)

	interactions := int(float64(20+g.rng.Intn(41)) * usageMultiplier)
	codeGen := int(float64(30+g.rng.Intn(51)) * usageMultiplier)

	// Acceptance improves with familiarity: +2% after two weeks, +2% more
	// after four, capped at an absolute ceiling.
	acceptanceRate := floatBetween(g.rng, persona.AcceptanceRateRange)
	if days > 14 {
		acceptanceRate += 0.02
	}
	if days > 28 {
		acceptanceRate += 0.02
	}
	if acceptanceRate > acceptanceRateCap {
		acceptanceRate = acceptanceRateCap
	}
	codeAccept := int(float64(codeGen) * acceptanceRate)

	locSuggested := codeGen * (3 + g.rng.Intn(10))
	locAdded := int(float64(locSuggested) * acceptanceRate * (0.8 + g.rng.Float64()*0.2))

	usedAgent := hasFeature(persona, "chat_panel_agent_mode") && g.rng.Float64() < 0.3
	usedChat := hasFeature(persona, "chat_panel_ask_mode") && g.rng.Float64() < 0.6

	dayStr := day.Format(dayFormat)
	rec := &record.Usage{
		Day:            dayStr,
		ReportStartDay: dayStr,
		ReportEndDay:   dayStr,

		UserID:           dev.UserID,
		UserLogin:        dev.UserLogin,
		OrganizationSlug: g.cfg.OrganizationSlug,
		SlugType:         g.cfg.SlugType,

		LastUpdatedAt: g.stamp,
		UTCOffset:     "+00:00",

		UserInitiatedInteractionCount: interactions,
		CodeGenerationActivityCount:   codeGen,
		CodeAcceptanceActivityCount:   codeAccept,
		UsedAgent:                     usedAgent,
		UsedChat:                      usedChat,
		LocSuggestedToAddSum:          locSuggested,
		LocSuggestedToDeleteSum:       locSuggested / 10,
		LocAddedSum:                   locAdded,
		LocDeletedSum:                 locAdded / 10,

		TopModel:    models[g.rng.Intn(len(models))],
		TopLanguage: dev.Team.Languages[0],
		TopFeature:  "code_completion",
	}
	g.fanOutTotals(rec, dev, interactions, codeGen, codeAccept, locSuggested, locAdded)

	rec.UniqueHash = record.UniqueHash(rec.OrganizationSlug, rec.UserLogin, rec.Day)
	return rec
}

func hasFeature(p Persona, feature string) bool {
	for _, f := range p.Features {
		if f == feature {
			return true
		}
	}
	return false
}

// fanOutTotals spreads the daily totals across the four breakdown
// dimensions. The IDE slice always has the single primary-IDE entry whose
// counts equal the top-level totals exactly; the other slices split
// proportionally, so integer truncation means their sums only approximately
// reproduce the totals.
func (g *Generator) fanOutTotals(rec *record.Usage, dev Developer, interactions, codeGen, codeAccept, locSuggested, locAdded int) {
	rec.TotalsByIDE = []record.IDETotals{{
		IDE:                           dev.IDE.Name,
		UserInitiatedInteractionCount: interactions,
		CodeGenerationActivityCount:   codeGen,
		CodeAcceptanceActivityCount:   codeAccept,
		LocSuggestedToAddSum:          locSuggested,
		LocSuggestedToDeleteSum:       locSuggested / 10,
		LocAddedSum:                   locAdded,
		LocDeletedSum:                 locAdded / 10,
	}}

	features := dev.Persona.Features
	for _, feature := range features {
		share := 1.0 / float64(len(features))
		if feature == "code_completion" {
			share = 0.5 // completion dominates real usage
		}
		isCode := hasCodeCounts(feature)
		entry := record.FeatureTotals{
			Feature:                       feature,
			UserInitiatedInteractionCount: int(float64(interactions) * share),
		}
		if isCode {
			entry.CodeGenerationActivityCount = int(float64(codeGen) * share)
			entry.CodeAcceptanceActivityCount = int(float64(codeAccept) * share)
			entry.LocSuggestedToAddSum = int(float64(locSuggested) * share)
			entry.LocSuggestedToDeleteSum = int(float64(locSuggested) * 0.1 * share)
			entry.LocAddedSum = int(float64(locAdded) * share)
			entry.LocDeletedSum = int(float64(locAdded) * 0.1 * share)
		}
		rec.TotalsByFeature = append(rec.TotalsByFeature, entry)
	}

	languages := dev.Team.Languages
	langShare := 1.0 / float64(len(languages))
	for _, lang := range languages {
		rec.TotalsByLanguageModel = append(rec.TotalsByLanguageModel, record.LanguageModelTotals{
			Language:                    lang,
			Model:                       models[g.rng.Intn(len(models))],
			CodeGenerationActivityCount: int(float64(codeGen) * langShare),
			CodeAcceptanceActivityCount: int(float64(codeAccept) * langShare),
			LocSuggestedToAddSum:        int(float64(locSuggested) * langShare),
			LocSuggestedToDeleteSum:     int(float64(locSuggested) * 0.1 * langShare),
			LocAddedSum:                 int(float64(locAdded) * langShare),
			LocDeletedSum:               int(float64(locAdded) * 0.1 * langShare),
		})
	}

	topFeatures := features
	if len(topFeatures) > 2 {
		topFeatures = topFeatures[:2]
	}
	share := 1.0 / float64(len(languages)*2)
	for _, lang := range languages {
		for _, feature := range topFeatures {
			rec.TotalsByLanguageFeature = append(rec.TotalsByLanguageFeature, record.LanguageFeatureTotals{
				Language:                    lang,
				Feature:                     feature,
				CodeGenerationActivityCount: int(float64(codeGen) * share),
				CodeAcceptanceActivityCount: int(float64(codeAccept) * share),
				LocSuggestedToAddSum:        int(float64(locSuggested) * share),
				LocSuggestedToDeleteSum:     int(float64(locSuggested) * 0.1 * share),
				LocAddedSum:                 int(float64(locAdded) * share),
				LocDeletedSum:               int(float64(locAdded) * 0.1 * share),
			})
		}
	}
}

// hasCodeCounts reports whether a feature carries code-generation counters.
func hasCodeCounts(feature string) bool {
	switch feature {
	case "code_completion", "agent_edit":
		return true
	default:
		return false
	}
}

// ActivityForDay simulates one developer's contribution counters for one
// day. It returns nil on most weekend days and on random days off. Before
// the adoption date the multiplier is pinned at 1.0; afterwards the ramp
// value times the persona's productivity multiplier applies.
func (g *Generator) ActivityForDay(dev Developer, day time.Time) *record.Activity {
	persona := dev.Persona

	if !isWorkday(day) && g.rng.Float64() < g.cfg.WeekendActivitySkip {
		return nil
	}
	if g.rng.Float64() < g.cfg.DayOffRate {
		return nil
	}

	modifier := 1.0
	if !day.Before(g.adoption) {
		modifier = Ramp(daysSince(day, g.adoption)) * persona.CopilotMultiplier
	}

	baseCommits := intBetween(g.rng, persona.BaseCommits)
	basePRs := intBetween(g.rng, persona.BasePRs)
	baseReviews := intBetween(g.rng, persona.BaseReviews)

	commits := int(float64(baseCommits) * modifier * (0.8 + g.rng.Float64()*0.4))
	prsOpened := int(float64(basePRs) * modifier * (0.7 + g.rng.Float64()*0.6))
	prsReviewed := int(float64(baseReviews) * modifier * (0.8 + g.rng.Float64()*0.4))

	prsMerged := int(float64(prsOpened) * (0.6 + g.rng.Float64()*0.3))
	prComments := prsReviewed * (1 + g.rng.Intn(4))
	issuesOpened := g.rng.Intn(3)
	issuesClosed := g.rng.Intn(issuesOpened + 2)
	issueComments := 0
	if issuesOpened > 0 {
		issueComments = g.rng.Intn(issuesOpened*2 + 1)
	}

	reposContributed := 1 + g.rng.Intn(3)
	if reposContributed > len(dev.Team.Repos) {
		reposContributed = len(dev.Team.Repos)
	}

	dayStr := day.Format(dayFormat)
	rec := &record.Activity{
		Day:            dayStr,
		ReportStartDay: dayStr,
		ReportEndDay:   dayStr,
		PeriodDays:     1,

		UserLogin:        dev.UserLogin,
		OrganizationSlug: g.cfg.OrganizationSlug,
		SlugType:         g.cfg.SlugType,

		CommitCount:      commits,
		ReposContributed: reposContributed,
		PRsOpened:        prsOpened,
		PRsMerged:        prsMerged,
		PRsReviewed:      prsReviewed,
		PRComments:       prComments,
		PRsClosed:        prsMerged,
		IssuesOpened:     issuesOpened,
		IssuesClosed:     issuesClosed,
		IssueComments:    issueComments,

		Team:            dev.Team.Name,
		PrimaryLanguage: dev.Team.Languages[0],
		Seniority:       dev.Seniority,

		LastUpdatedAt: g.stamp,
		UTCOffset:     "+00:00",
	}
	rec.ComputeDerived()
	rec.UniqueHash = record.UniqueHash(rec.OrganizationSlug, rec.UserLogin, rec.Day)
	return rec
}
