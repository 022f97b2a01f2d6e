// internal/model/task.go
package model

import "time"

// Task status values. A task moves pending -> published, one direction only.
const (
    StatusPending   = "pending"
    StatusPublished = "published"
    StatusScheduled = "scheduled"
)

// Task is one scheduled publication of a single content version to one
// platform at one time.
type Task struct {
    TaskID        string         `db:"task_id" json:"task_id"`
    CampaignID    string         `db:"campaign_id" json:"campaign_id,omitempty"`
    Content       ContentVersion `db:"content" json:"content"`
    Platform      string         `db:"platform" json:"platform"`
    ScheduledTime time.Time      `db:"scheduled_time" json:"scheduled_time"`
    Status        string         `db:"status" json:"status"`
    PublishedAt   *time.Time     `db:"published_at" json:"published_at,omitempty"`
    ABTestID      string         `db:"ab_test_id" json:"ab_test_id,omitempty"`
    VersionName   string         `db:"version_name" json:"version_name,omitempty"`
    CreatedAt     time.Time      `db:"created_at" json:"created_at"`
    UpdatedAt     *time.Time     `db:"updated_at" json:"updated_at,omitempty"`
}

// ABTest groups 2-3 tasks that share a schedule slot and platform and differ
// only in content version.
type ABTest struct {
    ABTestID      string    `json:"ab_test_id"`
    TaskIDs       []string  `json:"task_ids"`
    ScheduledTime time.Time `json:"scheduled_time"`
    Status        string    `json:"status"`
    CreatedAt     time.Time `json:"created_at"`
}

// VariantMetrics holds per-variant engagement numbers for an A/B test member.
type VariantMetrics struct {
    Impressions    int     `json:"impressions"`
    EngagementRate float64 `json:"engagement_rate"`
    ClickRate      float64 `json:"click_rate"`
    ConversionRate float64 `json:"conversion_rate"`
}
