// Command mockgen synthesizes a statistically plausible assistant-usage and
// developer-activity dataset and bulk-loads it into Elasticsearch, so the
// dashboards can be exercised without live credentials.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/mikefelder/copilot-usage-advanced-dashboard/internal/config"
	"github.com/mikefelder/copilot-usage-advanced-dashboard/internal/elastic"
	"github.com/mikefelder/copilot-usage-advanced-dashboard/internal/logger"
	"github.com/mikefelder/copilot-usage-advanced-dashboard/internal/simulate"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Load()

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, LogPath: cfg.LogPath, Name: "mockgen"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger setup failed: %v\n", err)
		return 1
	}
	defer log.Sync()

	seed := cfg.Mock.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	log.Info("simulation seed", zap.Int64("seed", seed))

	simCfg := simulate.DefaultConfig()
	simCfg.OrganizationSlug = cfg.Mock.OrganizationSlug
	simCfg.Developers = cfg.Mock.Developers
	simCfg.DaysOfData = cfg.Mock.DaysOfData
	simCfg.AdoptionDaysAgo = cfg.Mock.AdoptionDaysAgo

	result := simulate.Run(simCfg, rng, os.Stdout)
	simulate.PrintSummary(result, os.Stdout)

	fmt.Printf("\n%s\nLoading to Elasticsearch\n%s\n", divider(), divider())
	if err := load(cfg, result, log); err != nil {
		fmt.Printf("ERROR: %v\n", err)
		return 1
	}

	fmt.Printf("\n%s\nMock data generation complete!\n%s\n", divider(), divider())
	return 0
}

// load connects to the cluster, rebuilds both indexes from their embedded
// mappings, and bulk-loads the generated datasets. Only a connectivity
// failure is fatal; per-batch errors are reported and the load continues.
func load(cfg config.Config, result simulate.Result, log *zap.Logger) error {
	ctx := context.Background()

	sink, err := elastic.New(cfg.ElasticsearchURL, log)
	if err != nil {
		return err
	}

	fmt.Printf("\nConnecting to Elasticsearch at %s...\n", cfg.ElasticsearchURL)
	if err := sink.Ping(ctx); err != nil {
		return err
	}
	fmt.Println("Connected successfully!")

	fmt.Println("\nSetting up indexes with proper mappings...")
	if err := sink.EnsureIndex(ctx, cfg.IndexUserMetrics, elastic.UserMetricsMapping()); err != nil {
		log.Warn("could not create index", zap.String("index", cfg.IndexUserMetrics), zap.Error(err))
	}
	if err := sink.EnsureIndex(ctx, cfg.IndexDeveloperActivity, elastic.DeveloperActivityMapping()); err != nil {
		log.Warn("could not create index", zap.String("index", cfg.IndexDeveloperActivity), zap.Error(err))
	}

	usageDocs := make([]elastic.Document, 0, len(result.Usage))
	for _, u := range result.Usage {
		usageDocs = append(usageDocs, u)
	}
	fmt.Printf("\nLoading %d Copilot metrics records...\n", len(usageDocs))
	indexed, failed := sink.BulkUpsert(ctx, cfg.IndexUserMetrics, usageDocs)
	fmt.Printf("  Completed: %d indexed, %d errors\n", indexed, failed)

	activityDocs := make([]elastic.Document, 0, len(result.Activity))
	for _, a := range result.Activity {
		activityDocs = append(activityDocs, a)
	}
	fmt.Printf("\nLoading %d developer activity records...\n", len(activityDocs))
	indexed, failed = sink.BulkUpsert(ctx, cfg.IndexDeveloperActivity, activityDocs)
	fmt.Printf("  Completed: %d indexed, %d errors\n", indexed, failed)

	fmt.Println("\nRefreshing indices...")
	if err := sink.Refresh(ctx, cfg.IndexUserMetrics); err != nil {
		log.Warn("refresh failed", zap.String("index", cfg.IndexUserMetrics), zap.Error(err))
	}
	if err := sink.Refresh(ctx, cfg.IndexDeveloperActivity); err != nil {
		log.Warn("refresh failed", zap.String("index", cfg.IndexDeveloperActivity), zap.Error(err))
	}
	return nil
}

func divider() string {
	return strings.Repeat("=", 60)
}
