// internal/controller/schedule_controller.go
package controller

import (
    "encoding/json"
    "net/http"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/streadway/amqp"
    "go.uber.org/zap"

    "github.com/promoforge/marketing-agent-backend/internal/model"
    "github.com/promoforge/marketing-agent-backend/internal/queue"
    "github.com/promoforge/marketing-agent-backend/internal/repository"
    "github.com/promoforge/marketing-agent-backend/internal/service"
)

// publishQueueName is the RabbitMQ queue the worker consumes.
const publishQueueName = "task_publishes"

type ScheduleController struct {
    Scheduler *service.SchedulingService
    Evaluator *service.EvaluatorService
    Campaigns repository.CampaignStore
    Queue     queue.Queue
    AMQPURL   string
    Logger    *zap.SugaredLogger
}

type platformSchedule struct {
    Platform     string                  `json:"platform"`
    ScheduleInfo *service.ScheduleResult `json:"schedule_info"`
}

// CreateSchedule schedules the given content versions on every requested
// platform, persisting the created tasks and handing them to the delivery
// pipeline. Persistence and broker handoff are best-effort.
func (c *ScheduleController) CreateSchedule(w http.ResponseWriter, r *http.Request) {
    var body struct {
        ContentVersions []model.ContentVersion `json:"content_versions"`
        ScheduledTime   string                 `json:"scheduled_time"`
        Platforms       []string               `json:"platforms"`
        ABTest          bool                   `json:"ab_test"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        respondBadRequest(w, "invalid request body")
        return
    }
    if len(body.ContentVersions) == 0 {
        respondBadRequest(w, "content versions must not be empty")
        return
    }
    platforms := body.Platforms
    if len(platforms) == 0 {
        platforms = []string{"multi"}
    }

    results := make([]platformSchedule, 0, len(platforms))
    createdIDs := []string{}
    for _, platform := range platforms {
        res, err := c.Scheduler.CreateSchedule(body.ContentVersions, body.ScheduledTime, platform, body.ABTest)
        if err != nil {
            respondError(w, err)
            return
        }
        results = append(results, platformSchedule{Platform: platform, ScheduleInfo: res})

        if res.TaskID != "" {
            createdIDs = append(createdIDs, res.TaskID)
        }
        for _, st := range res.Tasks {
            createdIDs = append(createdIDs, st.TaskID)
        }
    }

    for _, taskID := range createdIDs {
        task, ok := c.Scheduler.Store.FindTask(taskID)
        if !ok {
            continue
        }
        if err := c.Campaigns.SaveTask(&task); err != nil {
            c.Logger.Warnw("persisting scheduled task failed", "task_id", taskID, "error", err)
        }
    }

    c.enqueuePublishJobs(createdIDs)

    respondJSON(w, http.StatusOK, map[string]any{
        "success":         true,
        "scheduled_tasks": results,
        "total_platforms": len(platforms),
        "ab_test_enabled": body.ABTest,
        "scheduled_at":    time.Now().Format(timestampLayout),
    })
}

// enqueuePublishJobs hands the created tasks to the RabbitMQ-backed delivery
// worker. Skipped entirely when no broker is configured.
func (c *ScheduleController) enqueuePublishJobs(taskIDs []string) {
    if c.AMQPURL == "" || len(taskIDs) == 0 {
        return
    }

    conn, err := amqp.Dial(c.AMQPURL)
    if err != nil {
        c.Logger.Warnw("connecting to broker failed", "error", err)
        return
    }
    defer conn.Close()

    ch, err := conn.Channel()
    if err != nil {
        c.Logger.Warnw("opening broker channel failed", "error", err)
        return
    }
    defer ch.Close()

    q, err := ch.QueueDeclare(publishQueueName, true, false, false, false, nil)
    if err != nil {
        c.Logger.Warnw("declaring publish queue failed", "error", err)
        return
    }

    for _, taskID := range taskIDs {
        payload, _ := json.Marshal(map[string]string{"task_id": taskID})
        err := ch.Publish("", q.Name, false, false, amqp.Publishing{
            ContentType: "application/json",
            Body:        payload,
        })
        if err != nil {
            c.Logger.Warnw("enqueueing publish job failed", "task_id", taskID, "error", err)
        }
    }
}

// ListTasks returns scheduled tasks, optionally filtered by status.
func (c *ScheduleController) ListTasks(w http.ResponseWriter, r *http.Request) {
    status := r.URL.Query().Get("status")
    tasks := c.Scheduler.ListTasks(status)

    respondJSON(w, http.StatusOK, map[string]any{
        "success":       true,
        "tasks":         tasks,
        "total":         len(tasks),
        "status_filter": status,
    })
}

// PublishTask publishes one task and mirrors the transition into the
// durable store via the status topic.
func (c *ScheduleController) PublishTask(w http.ResponseWriter, r *http.Request) {
    taskID := chi.URLParam(r, "taskID")

    result, err := c.Scheduler.PublishTask(taskID)
    if err != nil {
        respondError(w, err)
        return
    }

    if err := c.Queue.Publish(queue.TopicTaskStatus, queue.StatusUpdate{
        TaskID: taskID,
        Status: model.StatusPublished,
    }); err != nil {
        c.Logger.Warnw("publishing status update failed", "task_id", taskID, "error", err)
    }

    respondJSON(w, http.StatusOK, map[string]any{
        "success":         true,
        "task_id":         result.TaskID,
        "platform":        result.Platform,
        "published_at":    result.PublishedAt.Format(timestampLayout),
        "content_preview": result.ContentPreview,
    })
}

// ABTestResults evaluates an A/B test and reports the winner.
func (c *ScheduleController) ABTestResults(w http.ResponseWriter, r *http.Request) {
    abTestID := chi.URLParam(r, "abTestID")

    report, err := c.Evaluator.GetResults(abTestID)
    if err != nil {
        respondError(w, err)
        return
    }

    respondJSON(w, http.StatusOK, map[string]any{
        "success":        true,
        "ab_test_id":     report.ABTestID,
        "results":        report.Results,
        "winner":         report.Winner,
        "recommendation": report.Recommendation,
    })
}

// OptimizeSchedule turns externally supplied insights into an advisory
// publish-time recommendation. No stored task is touched.
func (c *ScheduleController) OptimizeSchedule(w http.ResponseWriter, r *http.Request) {
    var body service.ScheduleInsights
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        respondBadRequest(w, "invalid request body")
        return
    }

    respondJSON(w, http.StatusOK, map[string]any{
        "success":        true,
        "recommendation": c.Scheduler.OptimizeSchedule(body),
    })
}
