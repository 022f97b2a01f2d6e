package service

import (
    "fmt"
    "strings"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "go.uber.org/zap"

    appErrors "github.com/promoforge/marketing-agent-backend/internal/errors"
    "github.com/promoforge/marketing-agent-backend/internal/model"
    "github.com/promoforge/marketing-agent-backend/internal/store"
)

func newSchedulingService() *SchedulingService {
    return &SchedulingService{
        Store:    store.NewTaskStore(),
        Resolver: NewTimeResolver(),
        Logger:   zap.NewNop().Sugar(),
    }
}

func versions(n int) []model.ContentVersion {
    out := make([]model.ContentVersion, n)
    for i := range out {
        out[i] = model.ContentVersion{
            Text:        fmt.Sprintf("copy for variant %d", i+1),
            Style:       "professional",
            VersionName: fmt.Sprintf("Draft %d", i+1),
        }
    }
    return out
}

func TestCreateScheduleEmptyVersions(t *testing.T) {
    s := newSchedulingService()

    _, err := s.CreateSchedule(nil, "2025-11-01 20:00", "wechat", false)
    require.Error(t, err)
    assert.True(t, appErrors.IsInvalidInput(err))
}

func TestCreateScheduleSingleTask(t *testing.T) {
    s := newSchedulingService()

    res, err := s.CreateSchedule(versions(1), "2025-11-01 20:00", "wechat", true)
    require.NoError(t, err)

    // one version, so the A/B flag is ignored
    assert.Empty(t, res.ABTestID)
    assert.Equal(t, "TASK_0001", res.TaskID)
    assert.Equal(t, "wechat", res.Platform)
    assert.Equal(t, time.Date(2025, 11, 1, 20, 0, 0, 0, time.Local), res.ScheduledTime)

    tasks := s.ListTasks("")
    require.Len(t, tasks, 1)
    assert.Equal(t, model.StatusPending, tasks[0].Status)
}

func TestCreateScheduleABTestTruncatesAtThree(t *testing.T) {
    s := newSchedulingService()

    res, err := s.CreateSchedule(versions(5), "2025-11-01 20:00", "douyin", true)
    require.NoError(t, err)

    assert.Equal(t, "AB_0001", res.ABTestID)
    require.Len(t, res.Tasks, 3)

    seen := map[string]bool{}
    for i, st := range res.Tasks {
        assert.Equal(t, fmt.Sprintf("AB_0001_V%d", i+1), st.TaskID)
        assert.Equal(t, fmt.Sprintf("Version %d", i+1), st.VersionName)
        assert.True(t, strings.HasPrefix(st.TaskID, res.ABTestID))
        seen[st.VersionName] = true
    }
    assert.Len(t, seen, 3)

    group, ok := s.Store.FindABTest("AB_0001")
    require.True(t, ok)
    assert.Len(t, group.TaskIDs, 3)

    // all members share the resolved slot and platform
    for _, task := range s.ListTasks("") {
        assert.Equal(t, res.ScheduledTime, task.ScheduledTime)
        assert.Equal(t, "douyin", task.Platform)
        assert.Equal(t, "AB_0001", task.ABTestID)
    }
}

func TestCreateScheduleABDisabledUsesFirstVersion(t *testing.T) {
    s := newSchedulingService()

    res, err := s.CreateSchedule(versions(3), "2025-11-01 20:00", "wechat", false)
    require.NoError(t, err)
    assert.Equal(t, "TASK_0001", res.TaskID)

    tasks := s.ListTasks("")
    require.Len(t, tasks, 1)
    assert.Equal(t, "copy for variant 1", tasks[0].Content.Text)
}

func TestCreateScheduleMalformedTimeFallsBack(t *testing.T) {
    s := newSchedulingService()
    before := time.Now()

    res, err := s.CreateSchedule(versions(1), "next friday", "wechat", false)
    require.NoError(t, err)

    after := time.Now()
    assert.True(t, !res.ScheduledTime.Before(before.Add(2*time.Hour-time.Second)))
    assert.True(t, !res.ScheduledTime.After(after.Add(2*time.Hour+time.Second)))
}

func TestPublishTaskUnknownID(t *testing.T) {
    s := newSchedulingService()

    _, err := s.PublishTask("TASK_0404")
    require.Error(t, err)
    assert.True(t, appErrors.IsNotFound(err))
    assert.Empty(t, s.ListTasks(""))
}

func TestPublishTaskTransitionsAndPreviews(t *testing.T) {
    s := newSchedulingService()
    long := strings.Repeat("x", 80)
    _, err := s.CreateSchedule([]model.ContentVersion{{Text: long}}, "2025-11-01 20:00", "wechat", false)
    require.NoError(t, err)

    res, err := s.PublishTask("TASK_0001")
    require.NoError(t, err)
    assert.False(t, res.PublishedAt.IsZero())
    assert.Equal(t, strings.Repeat("x", 50), res.ContentPreview)

    task, ok := s.Store.FindTask("TASK_0001")
    require.True(t, ok)
    assert.Equal(t, model.StatusPublished, task.Status)
    require.NotNil(t, task.PublishedAt)
}

func TestPublishTaskIsIdempotent(t *testing.T) {
    s := newSchedulingService()
    _, err := s.CreateSchedule(versions(1), "2025-11-01 20:00", "wechat", false)
    require.NoError(t, err)

    first, err := s.PublishTask("TASK_0001")
    require.NoError(t, err)

    second, err := s.PublishTask("TASK_0001")
    require.NoError(t, err)
    assert.Equal(t, first.PublishedAt, second.PublishedAt)
}

func TestTaskIDsIncreaseAcrossCalls(t *testing.T) {
    s := newSchedulingService()

    for i := 1; i <= 3; i++ {
        res, err := s.CreateSchedule(versions(1), "2025-11-01 20:00", "wechat", false)
        require.NoError(t, err)
        assert.Equal(t, fmt.Sprintf("TASK_%04d", i), res.TaskID)
    }

    first, err := s.CreateSchedule(versions(2), "2025-11-01 20:00", "wechat", true)
    require.NoError(t, err)
    second, err := s.CreateSchedule(versions(2), "2025-11-01 20:00", "wechat", true)
    require.NoError(t, err)
    assert.Equal(t, "AB_0001", first.ABTestID)
    assert.Equal(t, "AB_0002", second.ABTestID)
}

func TestOptimizeSchedule(t *testing.T) {
    s := newSchedulingService()

    rec := s.OptimizeSchedule(ScheduleInsights{BestTime: "21:00", EngagementRate: 0.127})
    assert.Equal(t, "21:00", rec.RecommendedTime)
    assert.Equal(t, "engagement in this slot runs as high as 12.7%", rec.Reason)
    assert.NotEmpty(t, rec.AlternativeTimes)
    assert.NotEmpty(t, rec.AvoidTimes)

    // defaults apply when the insight object is empty
    rec = s.OptimizeSchedule(ScheduleInsights{})
    assert.Equal(t, "20:00", rec.RecommendedTime)
    assert.Contains(t, rec.Reason, "85.0%")
}

func TestUpdateTaskStatusUnknownID(t *testing.T) {
    s := newSchedulingService()
    err := s.UpdateTaskStatus("TASK_0404", model.StatusPublished)
    require.Error(t, err)
    assert.True(t, appErrors.IsNotFound(err))
}
