// Package record defines the flat document shapes shared by the activity
// fetcher and the mock data generator, together with the natural-key hash
// used as the Elasticsearch document id.
package record

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"strings"
)

// Activity summarizes one user's contribution metrics over one reporting
// window. The fetcher emits one per organization member per trailing window;
// the simulator emits one per developer per day (a one-day window).
type Activity struct {
	Day            string `json:"day"`
	ReportStartDay string `json:"report_start_day"`
	ReportEndDay   string `json:"report_end_day"`
	PeriodDays     int    `json:"period_days"`

	UserLogin        string `json:"user_login"`
	OrganizationSlug string `json:"organization_slug"`
	SlugType         string `json:"slug_type"`

	CommitCount      int `json:"commit_count"`
	ReposContributed int `json:"repos_contributed"`
	PRsOpened        int `json:"prs_opened"`
	PRsMerged        int `json:"prs_merged"`
	PRsReviewed      int `json:"prs_reviewed"`
	PRComments       int `json:"pr_comments"`
	PRsClosed        int `json:"prs_closed"`
	IssuesOpened     int `json:"issues_opened"`
	IssuesClosed     int `json:"issues_closed"`
	IssueComments    int `json:"issue_comments"`

	TotalContributions int     `json:"total_contributions"`
	CodeReviewActivity int     `json:"code_review_activity"`
	CommitsPerDay      float64 `json:"commits_per_day"`
	PRsPerDay          float64 `json:"prs_per_day"`
	ReviewsPerDay      float64 `json:"reviews_per_day"`

	// Enrichment fields, only set by the simulator.
	Team            string `json:"team,omitempty"`
	PrimaryLanguage string `json:"primary_language,omitempty"`
	Seniority       string `json:"seniority,omitempty"`

	LastUpdatedAt string `json:"last_updated_at"`
	UTCOffset     string `json:"utc_offset"`
	UniqueHash    string `json:"unique_hash"`
}

// ComputeDerived fills the aggregate and per-day rate fields from the raw
// counters. Rates stay zero when the period length is not positive.
func (a *Activity) ComputeDerived() {
	a.TotalContributions = a.CommitCount + a.PRsOpened + a.PRsMerged + a.PRsReviewed + a.IssuesOpened
	a.CodeReviewActivity = a.PRsReviewed + a.PRComments
	if a.PeriodDays > 0 {
		days := float64(a.PeriodDays)
		a.CommitsPerDay = Round2(float64(a.CommitCount) / days)
		a.PRsPerDay = Round2(float64(a.PRsOpened) / days)
		a.ReviewsPerDay = Round2(float64(a.PRsReviewed) / days)
	}
}

// DocID returns the persistence identifier for bulk upserts.
func (a Activity) DocID() string { return a.UniqueHash }

// IDETotals is the per-IDE slice of a usage record. There is always exactly
// one entry, the developer's primary IDE.
type IDETotals struct {
	IDE                           string `json:"ide"`
	UserInitiatedInteractionCount int    `json:"user_initiated_interaction_count"`
	CodeGenerationActivityCount   int    `json:"code_generation_activity_count"`
	CodeAcceptanceActivityCount   int    `json:"code_acceptance_activity_count"`
	LocSuggestedToAddSum          int    `json:"loc_suggested_to_add_sum"`
	LocSuggestedToDeleteSum       int    `json:"loc_suggested_to_delete_sum"`
	LocAddedSum                   int    `json:"loc_added_sum"`
	LocDeletedSum                 int    `json:"loc_deleted_sum"`
}

// FeatureTotals is the per-feature slice of a usage record.
type FeatureTotals struct {
	Feature                       string `json:"feature"`
	UserInitiatedInteractionCount int    `json:"user_initiated_interaction_count"`
	CodeGenerationActivityCount   int    `json:"code_generation_activity_count"`
	CodeAcceptanceActivityCount   int    `json:"code_acceptance_activity_count"`
	LocSuggestedToAddSum          int    `json:"loc_suggested_to_add_sum"`
	LocSuggestedToDeleteSum       int    `json:"loc_suggested_to_delete_sum"`
	LocAddedSum                   int    `json:"loc_added_sum"`
	LocDeletedSum                 int    `json:"loc_deleted_sum"`
}

// LanguageModelTotals is the language x model slice of a usage record.
type LanguageModelTotals struct {
	Language                    string `json:"language"`
	Model                       string `json:"model"`
	CodeGenerationActivityCount int    `json:"code_generation_activity_count"`
	CodeAcceptanceActivityCount int    `json:"code_acceptance_activity_count"`
	LocSuggestedToAddSum        int    `json:"loc_suggested_to_add_sum"`
	LocSuggestedToDeleteSum     int    `json:"loc_suggested_to_delete_sum"`
	LocAddedSum                 int    `json:"loc_added_sum"`
	LocDeletedSum               int    `json:"loc_deleted_sum"`
}

// LanguageFeatureTotals is the language x feature slice of a usage record.
type LanguageFeatureTotals struct {
	Language                    string `json:"language"`
	Feature                     string `json:"feature"`
	CodeGenerationActivityCount int    `json:"code_generation_activity_count"`
	CodeAcceptanceActivityCount int    `json:"code_acceptance_activity_count"`
	LocSuggestedToAddSum        int    `json:"loc_suggested_to_add_sum"`
	LocSuggestedToDeleteSum     int    `json:"loc_suggested_to_delete_sum"`
	LocAddedSum                 int    `json:"loc_added_sum"`
	LocDeletedSum               int    `json:"loc_deleted_sum"`
}

// Usage is one developer's assistant-usage metrics for a single day.
type Usage struct {
	Day            string `json:"day"`
	ReportStartDay string `json:"report_start_day"`
	ReportEndDay   string `json:"report_end_day"`

	UserID           int64  `json:"user_id"`
	UserLogin        string `json:"user_login"`
	OrganizationSlug string `json:"organization_slug"`
	SlugType         string `json:"slug_type"`

	LastUpdatedAt string `json:"last_updated_at"`
	UTCOffset     string `json:"utc_offset"`

	UserInitiatedInteractionCount int  `json:"user_initiated_interaction_count"`
	CodeGenerationActivityCount   int  `json:"code_generation_activity_count"`
	CodeAcceptanceActivityCount   int  `json:"code_acceptance_activity_count"`
	UsedAgent                     bool `json:"used_agent"`
	UsedChat                      bool `json:"used_chat"`
	LocSuggestedToAddSum          int  `json:"loc_suggested_to_add_sum"`
	LocSuggestedToDeleteSum       int  `json:"loc_suggested_to_delete_sum"`
	LocAddedSum                   int  `json:"loc_added_sum"`
	LocDeletedSum                 int  `json:"loc_deleted_sum"`

	TotalsByIDE             []IDETotals             `json:"totals_by_ide"`
	TotalsByFeature         []FeatureTotals         `json:"totals_by_feature"`
	TotalsByLanguageModel   []LanguageModelTotals   `json:"totals_by_language_model"`
	TotalsByLanguageFeature []LanguageFeatureTotals `json:"totals_by_language_feature"`

	TopModel    string `json:"top_model"`
	TopLanguage string `json:"top_language"`
	TopFeature  string `json:"top_feature"`

	UniqueHash string `json:"unique_hash"`
}

// DocID returns the persistence identifier for bulk upserts.
func (u Usage) DocID() string { return u.UniqueHash }

// UniqueHash derives the deterministic document id from a record's natural
// key. The key fields are joined with "-" and hashed with SHA-256; a missing
// field must be passed as the empty string so re-runs compute the same id.
func UniqueHash(keyFields ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(keyFields, "-")))
	return hex.EncodeToString(sum[:])
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
