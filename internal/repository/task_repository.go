package repository

import (
    "database/sql"
    "encoding/json"
    "time"

    "github.com/promoforge/marketing-agent-backend/internal/model"
)

// ====================== Scheduled tasks ======================

func (r *CampaignRepository) SaveTask(t *model.Task) error {
    if t.CreatedAt.IsZero() {
        t.CreatedAt = time.Now()
    }
    if t.Status == "" {
        t.Status = model.StatusPending
    }

    contentJSON, err := json.Marshal(t.Content)
    if err != nil {
        return err
    }

    query := `
        INSERT INTO scheduled_tasks
            (task_id, campaign_id, content, platform, scheduled_time, status,
             ab_test_id, version_name, created_at)
        VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), $9)
    `
    _, err = r.DB.Exec(query,
        t.TaskID, t.CampaignID, contentJSON, t.Platform, t.ScheduledTime,
        t.Status, t.ABTestID, t.VersionName, t.CreatedAt,
    )
    return err
}

func (r *CampaignRepository) ListPendingTasks(limit int) ([]model.Task, error) {
    if limit < 1 {
        limit = 20
    }
    query := `
        SELECT task_id, campaign_id, content, platform, scheduled_time, status,
               published_at, ab_test_id, version_name, created_at, updated_at
        FROM scheduled_tasks
        WHERE status='pending'
        ORDER BY scheduled_time
        LIMIT $1
    `
    rows, err := r.DB.Query(query, limit)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    tasks := []model.Task{}
    for rows.Next() {
        t, err := scanTask(rows)
        if err != nil {
            return nil, err
        }
        tasks = append(tasks, *t)
    }
    return tasks, rows.Err()
}

func (r *CampaignRepository) FindTask(taskID string) (*model.Task, error) {
    query := `
        SELECT task_id, campaign_id, content, platform, scheduled_time, status,
               published_at, ab_test_id, version_name, created_at, updated_at
        FROM scheduled_tasks
        WHERE task_id=$1
    `
    t, err := scanTask(r.DB.QueryRow(query, taskID))
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, nil
        }
        return nil, err
    }
    return t, nil
}

// UpdateTaskStatus mutates the durable task record. Moving to published also
// stamps published_at. Returns false when the id is unknown.
func (r *CampaignRepository) UpdateTaskStatus(taskID, status string) (bool, error) {
    var query string
    if status == model.StatusPublished {
        query = `UPDATE scheduled_tasks SET status=$1, published_at=NOW(), updated_at=NOW() WHERE task_id=$2`
    } else {
        query = `UPDATE scheduled_tasks SET status=$1, updated_at=NOW() WHERE task_id=$2`
    }
    res, err := r.DB.Exec(query, status, taskID)
    if err != nil {
        return false, err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return false, err
    }
    return n > 0, nil
}

func scanTask(row rowScanner) (*model.Task, error) {
    var t model.Task
    var contentJSON []byte
    var campaignID, abTestID, versionName sql.NullString
    var publishedAt, updatedAt sql.NullTime

    err := row.Scan(
        &t.TaskID, &campaignID, &contentJSON, &t.Platform, &t.ScheduledTime,
        &t.Status, &publishedAt, &abTestID, &versionName, &t.CreatedAt, &updatedAt,
    )
    if err != nil {
        return nil, err
    }
    t.CampaignID = campaignID.String
    t.ABTestID = abTestID.String
    t.VersionName = versionName.String
    if publishedAt.Valid {
        t.PublishedAt = &publishedAt.Time
    }
    if updatedAt.Valid {
        t.UpdatedAt = &updatedAt.Time
    }
    if len(contentJSON) > 0 {
        if err := json.Unmarshal(contentJSON, &t.Content); err != nil {
            return nil, err
        }
    }
    return &t, nil
}
