package repository

import (
    "database/sql"
    "encoding/json"
    "time"

    "github.com/promoforge/marketing-agent-backend/internal/model"
)

// CampaignStore is the persistence capability consumed by the orchestration
// layer. Absence on lookups is a normal outcome (nil, nil), not an error.
type CampaignStore interface {
    // Campaigns
    SaveCampaign(c *model.Campaign) error
    FindCampaign(campaignID string) (*model.Campaign, error)
    ListRecentCampaigns(limit int) ([]model.Campaign, error)

    // Scheduled tasks
    SaveTask(t *model.Task) error
    ListPendingTasks(limit int) ([]model.Task, error)
    UpdateTaskStatus(taskID, status string) (bool, error)
}

type CampaignRepository struct {
    DB *sql.DB
}

// ====================== Campaigns ======================

func (r *CampaignRepository) SaveCampaign(c *model.Campaign) error {
    if c.CreatedAt.IsZero() {
        c.CreatedAt = time.Now()
    }
    if c.Status == "" {
        c.Status = model.StatusScheduled
    }

    analysisJSON, err := json.Marshal(c.AnalysisResult)
    if err != nil {
        return err
    }
    versionsJSON, err := json.Marshal(c.ContentVersions)
    if err != nil {
        return err
    }

    query := `
        INSERT INTO marketing_campaigns
            (campaign_id, product_name, product_category, theme, highlights,
             target_audience, original_time, recommended_time, status,
             analysis_result, content_versions, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    `
    _, err = r.DB.Exec(query,
        c.CampaignID, c.ProductName, c.ProductCategory, c.Theme, c.Highlights,
        c.TargetAudience, c.OriginalTime, c.RecommendedTime, c.Status,
        analysisJSON, versionsJSON, c.CreatedAt,
    )
    return err
}

func (r *CampaignRepository) FindCampaign(campaignID string) (*model.Campaign, error) {
    query := `
        SELECT campaign_id, product_name, product_category, theme, highlights,
               target_audience, original_time, recommended_time, status,
               analysis_result, content_versions, created_at, updated_at
        FROM marketing_campaigns WHERE campaign_id=$1
    `
    c, err := scanCampaign(r.DB.QueryRow(query, campaignID))
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, nil
        }
        return nil, err
    }
    return c, nil
}

func (r *CampaignRepository) ListRecentCampaigns(limit int) ([]model.Campaign, error) {
    if limit < 1 {
        limit = 10
    }
    query := `
        SELECT campaign_id, product_name, product_category, theme, highlights,
               target_audience, original_time, recommended_time, status,
               analysis_result, content_versions, created_at, updated_at
        FROM marketing_campaigns
        ORDER BY created_at DESC
        LIMIT $1
    `
    rows, err := r.DB.Query(query, limit)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    campaigns := []model.Campaign{}
    for rows.Next() {
        c, err := scanCampaign(rows)
        if err != nil {
            return nil, err
        }
        campaigns = append(campaigns, *c)
    }
    return campaigns, rows.Err()
}

type rowScanner interface {
    Scan(dest ...any) error
}

func scanCampaign(row rowScanner) (*model.Campaign, error) {
    var c model.Campaign
    var analysisJSON, versionsJSON []byte
    var updatedAt sql.NullTime

    err := row.Scan(
        &c.CampaignID, &c.ProductName, &c.ProductCategory, &c.Theme, &c.Highlights,
        &c.TargetAudience, &c.OriginalTime, &c.RecommendedTime, &c.Status,
        &analysisJSON, &versionsJSON, &c.CreatedAt, &updatedAt,
    )
    if err != nil {
        return nil, err
    }
    if updatedAt.Valid {
        c.UpdatedAt = &updatedAt.Time
    }
    if len(analysisJSON) > 0 {
        if err := json.Unmarshal(analysisJSON, &c.AnalysisResult); err != nil {
            return nil, err
        }
    }
    if len(versionsJSON) > 0 {
        if err := json.Unmarshal(versionsJSON, &c.ContentVersions); err != nil {
            return nil, err
        }
    }
    return &c, nil
}

var _ CampaignStore = (*CampaignRepository)(nil)
