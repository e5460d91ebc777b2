// Command activity-fetcher pulls developer activity metrics from the GitHub
// API for every configured organization, dumps them to a local JSON file,
// and upserts them into Elasticsearch when the cluster is reachable.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mikefelder/copilot-usage-advanced-dashboard/internal/activity"
	"github.com/mikefelder/copilot-usage-advanced-dashboard/internal/config"
	"github.com/mikefelder/copilot-usage-advanced-dashboard/internal/elastic"
	"github.com/mikefelder/copilot-usage-advanced-dashboard/internal/logger"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Load()

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, LogPath: cfg.LogPath, Name: "activity-fetcher"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger setup failed: %v\n", err)
		return 1
	}
	defer log.Sync()

	if cfg.GithubToken == "" || len(cfg.OrganizationSlugs) == 0 {
		fmt.Fprintln(os.Stderr, "Set GITHUB_PAT and ORGANIZATION_SLUGS environment variables")
		return 1
	}

	ctx := context.Background()
	utcOffset := config.UTCOffset(cfg.Timezone)
	sink := openSink(ctx, cfg, log)

	for _, raw := range cfg.OrganizationSlugs {
		slug, standalone := config.ParseOrgSlug(raw)
		fetcher := activity.New(cfg.GithubToken, slug, standalone, utcOffset, log)

		records := fetcher.FetchActivity(ctx, cfg.DaysBack)
		fmt.Printf("Fetched %d developer activity records for %s\n", len(records), slug)
		if len(records) == 0 {
			continue
		}

		sample, err := json.MarshalIndent(records[0], "", "  ")
		if err == nil {
			fmt.Println(string(sample))
		}

		if path, err := activity.WriteJSON(records, slug, cfg.ResultsPath); err != nil {
			log.Error("write activity dump", zap.Error(err))
		} else {
			log.Info("wrote activity dump", zap.String("path", path))
		}

		if sink == nil {
			continue
		}
		docs := make([]elastic.Document, 0, len(records))
		for _, rec := range records {
			docs = append(docs, rec)
		}
		indexed, failed := sink.BulkUpsert(ctx, cfg.IndexDeveloperActivity, docs)
		if err := sink.Refresh(ctx, cfg.IndexDeveloperActivity); err != nil {
			log.Warn("refresh failed", zap.Error(err))
		}
		fmt.Printf("Loaded to %s: %d indexed, %d errors\n", cfg.IndexDeveloperActivity, indexed, failed)
	}
	return 0
}

// openSink returns a connected sink, or nil when Elasticsearch is not
// reachable; fetching still completes with the JSON dump alone.
func openSink(ctx context.Context, cfg config.Config, log *zap.Logger) *elastic.Sink {
	sink, err := elastic.New(cfg.ElasticsearchURL, log)
	if err != nil {
		log.Warn("elasticsearch client unavailable, skipping sink", zap.Error(err))
		return nil
	}
	if err := sink.Ping(ctx); err != nil {
		log.Warn("elasticsearch unreachable, skipping sink", zap.Error(err))
		return nil
	}
	return sink
}
