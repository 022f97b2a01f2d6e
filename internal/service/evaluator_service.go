// internal/service/evaluator_service.go
package service

import (
    "fmt"

    "go.uber.org/zap"

    appErrors "github.com/promoforge/marketing-agent-backend/internal/errors"
    "github.com/promoforge/marketing-agent-backend/internal/model"
    "github.com/promoforge/marketing-agent-backend/internal/store"
)

// MetricsProvider supplies per-variant engagement numbers. Production wires
// the simulated source; tests inject fixed values.
type MetricsProvider interface {
    FetchVariantMetrics(taskID string) model.VariantMetrics
}

type EvaluatorService struct {
    Store   *store.TaskStore
    Metrics MetricsProvider
    Logger  *zap.SugaredLogger
}

type VariantResult struct {
    VersionName string `json:"version_name"`
    TaskID      string `json:"task_id"`
    model.VariantMetrics
}

type ABTestReport struct {
    ABTestID       string          `json:"ab_test_id"`
    Results        []VariantResult `json:"results"`
    Winner         string          `json:"winner"`
    Recommendation string          `json:"recommendation"`
}

// GetResults fetches metrics for every member of an A/B test and picks the
// winner: the member with the strictly highest engagement rate, first
// occurrence winning ties.
func (s *EvaluatorService) GetResults(abTestID string) (*ABTestReport, error) {
    abTest, ok := s.Store.FindABTest(abTestID)
    if !ok {
        return nil, appErrors.NewNotFound("A/B test", abTestID)
    }

    results := make([]VariantResult, 0, len(abTest.TaskIDs))
    for _, taskID := range abTest.TaskIDs {
        versionName := ""
        if task, ok := s.Store.FindTask(taskID); ok {
            versionName = task.VersionName
        }
        results = append(results, VariantResult{
            VersionName:    versionName,
            TaskID:         taskID,
            VariantMetrics: s.Metrics.FetchVariantMetrics(taskID),
        })
    }

    winner := results[0]
    for _, r := range results[1:] {
        if r.EngagementRate > winner.EngagementRate {
            winner = r
        }
    }

    s.Logger.Infow("A/B test evaluated", "ab_test_id", abTestID, "winner", winner.VersionName)
    return &ABTestReport{
        ABTestID:       abTestID,
        Results:        results,
        Winner:         winner.VersionName,
        Recommendation: fmt.Sprintf("%s performed best with an engagement rate of %.1f%%", winner.VersionName, winner.EngagementRate*100),
    }, nil
}
