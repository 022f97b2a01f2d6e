// internal/service/scheduling_service.go
package service

import (
    "fmt"
    "time"

    "go.uber.org/zap"

    appErrors "github.com/promoforge/marketing-agent-backend/internal/errors"
    "github.com/promoforge/marketing-agent-backend/internal/model"
    "github.com/promoforge/marketing-agent-backend/internal/store"
)

// maxABVariants caps an A/B test; extra versions are silently dropped to
// match the historical behavior callers depend on.
const maxABVariants = 3

const previewLength = 50

type SchedulingService struct {
    Store    *store.TaskStore
    Resolver *TimeResolver
    Logger   *zap.SugaredLogger
}

type ScheduledVersion struct {
    TaskID      string `json:"task_id"`
    VersionName string `json:"version_name"`
}

type ScheduleResult struct {
    ABTestID      string             `json:"ab_test_id,omitempty"`
    TaskID        string             `json:"task_id,omitempty"`
    Tasks         []ScheduledVersion `json:"tasks,omitempty"`
    ScheduledTime time.Time          `json:"scheduled_time"`
    Platform      string             `json:"platform"`
}

type PublishResult struct {
    TaskID         string    `json:"task_id"`
    Platform       string    `json:"platform"`
    PublishedAt    time.Time `json:"published_at"`
    ContentPreview string    `json:"content_preview"`
}

type ScheduleInsights struct {
    BestTime       string  `json:"best_time"`
    EngagementRate float64 `json:"engagement_rate"`
}

type ScheduleRecommendation struct {
    RecommendedTime  string   `json:"recommended_time"`
    Reason           string   `json:"reason"`
    AlternativeTimes []string `json:"alternative_times"`
    AvoidTimes       []string `json:"avoid_times"`
}

// CreateSchedule turns content versions plus timing and platform into one or
// more pending tasks. With abTest and more than one version it builds an A/B
// group; otherwise a single task bound to the first version.
func (s *SchedulingService) CreateSchedule(versions []model.ContentVersion, targetTime, platform string, abTest bool) (*ScheduleResult, error) {
    if len(versions) == 0 {
        return nil, appErrors.NewInvalidInput("content versions must not be empty")
    }

    scheduledTime := s.Resolver.Resolve(targetTime)

    if abTest && len(versions) > 1 {
        return s.createABTest(versions, scheduledTime, platform), nil
    }
    return s.createSingle(versions[0], scheduledTime, platform), nil
}

func (s *SchedulingService) createSingle(content model.ContentVersion, scheduledTime time.Time, platform string) *ScheduleResult {
    taskID := s.Store.NextTaskID()
    s.Store.AddTask(model.Task{
        TaskID:        taskID,
        Content:       content,
        Platform:      platform,
        ScheduledTime: scheduledTime,
        Status:        model.StatusPending,
    })

    s.Logger.Infow("scheduled task created", "task_id", taskID, "platform", platform)
    return &ScheduleResult{
        TaskID:        taskID,
        ScheduledTime: scheduledTime,
        Platform:      platform,
    }
}

func (s *SchedulingService) createABTest(versions []model.ContentVersion, scheduledTime time.Time, platform string) *ScheduleResult {
    abTestID := s.Store.NextABTestID()

    if len(versions) > maxABVariants {
        versions = versions[:maxABVariants]
    }

    taskIDs := make([]string, 0, len(versions))
    scheduled := make([]ScheduledVersion, 0, len(versions))
    for idx, content := range versions {
        taskID := fmt.Sprintf("%s_V%d", abTestID, idx+1)
        versionName := fmt.Sprintf("Version %d", idx+1)
        s.Store.AddTask(model.Task{
            TaskID:        taskID,
            Content:       content,
            Platform:      platform,
            ScheduledTime: scheduledTime,
            Status:        model.StatusPending,
            ABTestID:      abTestID,
            VersionName:   versionName,
        })
        taskIDs = append(taskIDs, taskID)
        scheduled = append(scheduled, ScheduledVersion{TaskID: taskID, VersionName: versionName})
    }

    s.Store.AddABTest(model.ABTest{
        ABTestID:      abTestID,
        TaskIDs:       taskIDs,
        ScheduledTime: scheduledTime,
        Status:        model.StatusPending,
    })

    s.Logger.Infow("A/B test created", "ab_test_id", abTestID, "versions", len(scheduled))
    return &ScheduleResult{
        ABTestID:      abTestID,
        Tasks:         scheduled,
        ScheduledTime: scheduledTime,
        Platform:      platform,
    }
}

// OptimizeSchedule is advisory only; it never touches stored tasks.
func (s *SchedulingService) OptimizeSchedule(insights ScheduleInsights) *ScheduleRecommendation {
    bestTime := insights.BestTime
    if bestTime == "" {
        bestTime = "20:00"
    }
    engagementRate := insights.EngagementRate
    if engagementRate == 0 {
        engagementRate = 0.85
    }

    return &ScheduleRecommendation{
        RecommendedTime:  bestTime,
        Reason:           fmt.Sprintf("engagement in this slot runs as high as %.1f%%", engagementRate*100),
        AlternativeTimes: []string{"18:00", "21:00", "12:00"},
        AvoidTimes:       []string{"03:00-06:00", "weekday mornings"},
    }
}

// PublishTask transitions a task to published and returns a content preview.
// Publication is a status transition; delegation to the actual platform is
// out of scope. Re-publishing an already published task is a no-op that
// returns the original publish time.
func (s *SchedulingService) PublishTask(taskID string) (*PublishResult, error) {
    task, ok := s.Store.FindTask(taskID)
    if !ok {
        return nil, appErrors.NewNotFound("task", taskID)
    }

    if task.Status != model.StatusPublished {
        s.Store.UpdateStatus(taskID, model.StatusPublished)
        task, _ = s.Store.FindTask(taskID)
        s.Logger.Infow("task published", "task_id", taskID, "platform", task.Platform)
    }

    var publishedAt time.Time
    if task.PublishedAt != nil {
        publishedAt = *task.PublishedAt
    }
    return &PublishResult{
        TaskID:         taskID,
        Platform:       task.Platform,
        PublishedAt:    publishedAt,
        ContentPreview: preview(task.Content.Text),
    }, nil
}

func preview(text string) string {
    runes := []rune(text)
    if len(runes) <= previewLength {
        return text
    }
    return string(runes[:previewLength])
}

// ListTasks returns tasks in insertion order, optionally narrowed by status.
func (s *SchedulingService) ListTasks(status string) []model.Task {
    return s.Store.ListTasks(status)
}

// UpdateTaskStatus mutates a task's status, failing with NotFound for an
// unknown id.
func (s *SchedulingService) UpdateTaskStatus(taskID, status string) error {
    if !s.Store.UpdateStatus(taskID, status) {
        return appErrors.NewNotFound("task", taskID)
    }
    s.Logger.Infow("task status updated", "task_id", taskID, "status", status)
    return nil
}
