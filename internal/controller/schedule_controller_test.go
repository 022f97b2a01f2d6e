package controller_test

import (
    "bytes"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/go-chi/chi/v5"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "go.uber.org/zap"

    "github.com/promoforge/marketing-agent-backend/internal/controller"
    "github.com/promoforge/marketing-agent-backend/internal/model"
    "github.com/promoforge/marketing-agent-backend/internal/queue"
    "github.com/promoforge/marketing-agent-backend/internal/service"
    "github.com/promoforge/marketing-agent-backend/internal/store"
)

// --- Test doubles ---

type memoryCampaignStore struct {
    tasks []model.Task
}

func (m *memoryCampaignStore) SaveCampaign(c *model.Campaign) error            { return nil }
func (m *memoryCampaignStore) FindCampaign(id string) (*model.Campaign, error) { return nil, nil }
func (m *memoryCampaignStore) ListRecentCampaigns(limit int) ([]model.Campaign, error) {
    return nil, nil
}
func (m *memoryCampaignStore) SaveTask(t *model.Task) error {
    m.tasks = append(m.tasks, *t)
    return nil
}
func (m *memoryCampaignStore) ListPendingTasks(limit int) ([]model.Task, error) {
    return m.tasks, nil
}
func (m *memoryCampaignStore) UpdateTaskStatus(taskID, status string) (bool, error) {
    return true, nil
}

type fixedMetrics struct{}

func (fixedMetrics) FetchVariantMetrics(taskID string) model.VariantMetrics {
    rates := map[string]float64{
        "AB_0001_V1": 0.05,
        "AB_0001_V2": 0.15,
        "AB_0001_V3": 0.09,
    }
    return model.VariantMetrics{Impressions: 8000, EngagementRate: rates[taskID]}
}

func newRouter(repo *memoryCampaignStore) *chi.Mux {
    logger := zap.NewNop().Sugar()
    taskStore := store.NewTaskStore()
    scheduler := &service.SchedulingService{
        Store:    taskStore,
        Resolver: service.NewTimeResolver(),
        Logger:   logger,
    }
    evaluator := &service.EvaluatorService{
        Store:   taskStore,
        Metrics: fixedMetrics{},
        Logger:  logger,
    }

    q := queue.NewInMemoryQueue()
    queue.StartTaskStatusSubscriber(q, repo, logger)

    ctrl := &controller.ScheduleController{
        Scheduler: scheduler,
        Evaluator: evaluator,
        Campaigns: repo,
        Queue:     q,
        Logger:    logger,
    }

    r := chi.NewRouter()
    r.Post("/api/schedule", ctrl.CreateSchedule)
    r.Get("/api/tasks", ctrl.ListTasks)
    r.Post("/api/tasks/{taskID}/publish", ctrl.PublishTask)
    r.Get("/api/ab-test/{abTestID}/results", ctrl.ABTestResults)
    r.Post("/api/schedule/optimize", ctrl.OptimizeSchedule)
    return r
}

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
    t.Helper()
    raw, err := json.Marshal(body)
    require.NoError(t, err)
    req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
    w := httptest.NewRecorder()
    router.ServeHTTP(w, req)
    return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
    t.Helper()
    var res map[string]any
    require.NoError(t, json.NewDecoder(w.Result().Body).Decode(&res))
    return res
}

// --- Tests ---

func TestCreateScheduleEndToEnd(t *testing.T) {
    repo := &memoryCampaignStore{}
    router := newRouter(repo)

    w := postJSON(t, router, "/api/schedule", map[string]any{
        "content_versions": []map[string]any{
            {"text": "variant one", "style": "humorous"},
            {"text": "variant two", "style": "professional"},
            {"text": "variant three", "style": "promotional"},
        },
        "scheduled_time": "2025-11-01 20:00",
        "platforms":      []string{"wechat", "douyin"},
        "ab_test":        true,
    })

    require.Equal(t, http.StatusOK, w.Code)
    res := decodeBody(t, w)
    assert.Equal(t, true, res["success"])
    assert.Equal(t, float64(2), res["total_platforms"])

    scheduled, ok := res["scheduled_tasks"].([]any)
    require.True(t, ok)
    require.Len(t, scheduled, 2)

    // three A/B tasks per platform landed in the durable store
    assert.Len(t, repo.tasks, 6)
}

func TestCreateScheduleRejectsEmptyVersions(t *testing.T) {
    router := newRouter(&memoryCampaignStore{})

    w := postJSON(t, router, "/api/schedule", map[string]any{
        "content_versions": []any{},
        "scheduled_time":   "2025-11-01 20:00",
    })
    require.Equal(t, http.StatusBadRequest, w.Code)
    res := decodeBody(t, w)
    assert.Equal(t, false, res["success"])
}

func TestListTasksWithStatusFilter(t *testing.T) {
    router := newRouter(&memoryCampaignStore{})

    postJSON(t, router, "/api/schedule", map[string]any{
        "content_versions": []map[string]any{{"text": "solo"}},
        "scheduled_time":   "2025-11-01 20:00",
    })

    req := httptest.NewRequest(http.MethodGet, "/api/tasks?status=pending", nil)
    w := httptest.NewRecorder()
    router.ServeHTTP(w, req)

    require.Equal(t, http.StatusOK, w.Code)
    res := decodeBody(t, w)
    assert.Equal(t, float64(1), res["total"])
    assert.Equal(t, "pending", res["status_filter"])
}

func TestPublishTaskEndpoint(t *testing.T) {
    router := newRouter(&memoryCampaignStore{})

    postJSON(t, router, "/api/schedule", map[string]any{
        "content_versions": []map[string]any{{"text": "publish me"}},
        "scheduled_time":   "2025-11-01 20:00",
    })

    w := postJSON(t, router, "/api/tasks/TASK_0001/publish", map[string]any{})
    require.Equal(t, http.StatusOK, w.Code)
    res := decodeBody(t, w)
    assert.Equal(t, true, res["success"])
    assert.Equal(t, "TASK_0001", res["task_id"])
    assert.Equal(t, "publish me", res["content_preview"])
    assert.NotEmpty(t, res["published_at"])
}

func TestPublishTaskUnknownIDReturns404(t *testing.T) {
    router := newRouter(&memoryCampaignStore{})

    w := postJSON(t, router, "/api/tasks/TASK_0404/publish", map[string]any{})
    require.Equal(t, http.StatusNotFound, w.Code)
    res := decodeBody(t, w)
    assert.Equal(t, false, res["success"])
}

func TestABTestResultsEndpoint(t *testing.T) {
    router := newRouter(&memoryCampaignStore{})

    postJSON(t, router, "/api/schedule", map[string]any{
        "content_versions": []map[string]any{
            {"text": "v1"}, {"text": "v2"}, {"text": "v3"},
        },
        "scheduled_time": "2025-11-01 20:00",
        "platforms":      []string{"wechat"},
        "ab_test":        true,
    })

    req := httptest.NewRequest(http.MethodGet, "/api/ab-test/AB_0001/results", nil)
    w := httptest.NewRecorder()
    router.ServeHTTP(w, req)

    require.Equal(t, http.StatusOK, w.Code)
    res := decodeBody(t, w)
    assert.Equal(t, "Version 2", res["winner"])
    assert.Contains(t, res["recommendation"], "15.0%")
}

func TestABTestResultsUnknownIDReturns404(t *testing.T) {
    router := newRouter(&memoryCampaignStore{})

    req := httptest.NewRequest(http.MethodGet, "/api/ab-test/AB_0404/results", nil)
    w := httptest.NewRecorder()
    router.ServeHTTP(w, req)
    require.Equal(t, http.StatusNotFound, w.Code)
}

func TestOptimizeScheduleEndpoint(t *testing.T) {
    router := newRouter(&memoryCampaignStore{})

    w := postJSON(t, router, "/api/schedule/optimize", map[string]any{
        "best_time":       "21:00",
        "engagement_rate": 0.12,
    })
    require.Equal(t, http.StatusOK, w.Code)
    res := decodeBody(t, w)
    rec, ok := res["recommendation"].(map[string]any)
    require.True(t, ok)
    assert.Equal(t, "21:00", rec["recommended_time"])
}
