package simulate

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/mikefelder/copilot-usage-advanced-dashboard/internal/record"
)

// Result holds everything one simulation run produced.
type Result struct {
	Developers   []Developer
	Usage        []record.Usage
	Activity     []record.Activity
	StartDate    time.Time
	EndDate      time.Time
	AdoptionDate time.Time
}

// Run generates the full dataset: every calendar day across the configured
// window, in chronological order, and within each day every developer in
// roster order. Progress and configuration go to w.
func Run(cfg Config, rng *rand.Rand, w io.Writer) Result {
	banner(w, "Mock Data Generator for GitHub Copilot Dashboard")

	endDate := midnight(time.Now().UTC())
	startDate := endDate.AddDate(0, 0, -cfg.DaysOfData)
	adoptionDate := endDate.AddDate(0, 0, -cfg.AdoptionDaysAgo)

	fmt.Fprintf(w, "\nConfiguration:\n")
	fmt.Fprintf(w, "  Organization: %s\n", cfg.OrganizationSlug)
	fmt.Fprintf(w, "  Developers: %d\n", cfg.Developers)
	fmt.Fprintf(w, "  Teams: %d\n", len(teams))
	fmt.Fprintf(w, "  Date Range: %s to %s\n", startDate.Format(dayFormat), endDate.Format(dayFormat))
	fmt.Fprintf(w, "  Copilot Adoption Date: %s\n", adoptionDate.Format(dayFormat))
	fmt.Fprintf(w, "  Days of Data: %d\n", cfg.DaysOfData)

	developers := NewRoster(cfg.Developers, rng)
	fmt.Fprintf(w, "\nCreated %d developer profiles:\n", len(developers))
	for i, dev := range developers {
		if i == 5 {
			fmt.Fprintf(w, "  ... and %d more\n", len(developers)-5)
			break
		}
		fmt.Fprintf(w, "  - %s (%s, %s)\n", dev.UserLogin, dev.Persona.Name, dev.Team.Name)
	}

	gen := NewGenerator(cfg, adoptionDate, rng)

	var usage []record.Usage
	var activity []record.Activity
	for day := startDate; !day.After(endDate); day = day.AddDate(0, 0, 1) {
		for _, dev := range developers {
			if u := gen.UsageForDay(dev, day); u != nil {
				usage = append(usage, *u)
			}
			if a := gen.ActivityForDay(dev, day); a != nil {
				activity = append(activity, *a)
			}
		}
	}

	fmt.Fprintf(w, "\nGenerated:\n")
	fmt.Fprintf(w, "  - %d Copilot user metrics records\n", len(usage))
	fmt.Fprintf(w, "  - %d developer activity records\n", len(activity))

	return Result{
		Developers:   developers,
		Usage:        usage,
		Activity:     activity,
		StartDate:    startDate,
		EndDate:      endDate,
		AdoptionDate: adoptionDate,
	}
}

// PrintSummary writes human-readable statistics for a generated dataset:
// usage totals and acceptance rate, plus a pre/post adoption comparison of
// daily commit and PR averages.
func PrintSummary(res Result, w io.Writer) {
	banner(w, "Data Summary")

	if len(res.Usage) > 0 {
		var interactions, codeGen, codeAccept, locAdded int
		for _, u := range res.Usage {
			interactions += u.UserInitiatedInteractionCount
			codeGen += u.CodeGenerationActivityCount
			codeAccept += u.CodeAcceptanceActivityCount
			locAdded += u.LocAddedSum
		}
		fmt.Fprintf(w, "\nCopilot Metrics:\n")
		fmt.Fprintf(w, "  Total Interactions: %d\n", interactions)
		fmt.Fprintf(w, "  Total Code Generations: %d\n", codeGen)
		fmt.Fprintf(w, "  Total Code Acceptances: %d\n", codeAccept)
		if codeGen > 0 {
			fmt.Fprintf(w, "  Acceptance Rate: %.1f%%\n", float64(codeAccept)/float64(codeGen)*100)
		}
		fmt.Fprintf(w, "  Total LOC Added: %d\n", locAdded)
	}

	if len(res.Activity) > 0 {
		adoptionStr := res.AdoptionDate.Format(dayFormat)
		var preCommits, postCommits, prePRs, postPRs, preCount, postCount int
		for _, a := range res.Activity {
			if a.Day < adoptionStr {
				preCommits += a.CommitCount
				prePRs += a.PRsOpened
				preCount++
			} else {
				postCommits += a.CommitCount
				postPRs += a.PRsOpened
				postCount++
			}
		}
		if preCount > 0 && postCount > 0 {
			pre := float64(preCommits) / float64(preCount)
			post := float64(postCommits) / float64(postCount)
			prePR := float64(prePRs) / float64(preCount)
			postPR := float64(postPRs) / float64(postCount)
			fmt.Fprintf(w, "\nDeveloper Activity (Pre vs Post Copilot Adoption):\n")
			fmt.Fprintf(w, "  Avg Commits/Day: %.2f -> %.2f (%+.1f%%)\n", pre, post, (post/pre-1)*100)
			fmt.Fprintf(w, "  Avg PRs/Day: %.2f -> %.2f (%+.1f%%)\n", prePR, postPR, (postPR/prePR-1)*100)
		}
	}
}

func banner(w io.Writer, title string) {
	line := strings.Repeat("=", 60)
	fmt.Fprintf(w, "%s\n%s\n%s\n", line, title, line)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
