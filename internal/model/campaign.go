// internal/model/campaign.go
package model

import "time"

// Instruction is the incoming marketing instruction. It is never persisted
// on its own, only as part of the Campaign it produces.
type Instruction struct {
    ProductName     string `json:"product_name"`
    Highlights      string `json:"highlights"`
    TargetAudience  string `json:"target_audience"`
    PublishTime     string `json:"publish_time"`
    ProductCategory string `json:"product_category"`
}

type Campaign struct {
    CampaignID      string           `db:"campaign_id" json:"campaign_id"`
    ProductName     string           `db:"product_name" json:"product_name"`
    ProductCategory string           `db:"product_category" json:"product_category"`
    Theme           string           `db:"theme" json:"theme"`
    Highlights      string           `db:"highlights" json:"highlights"`
    TargetAudience  string           `db:"target_audience" json:"target_audience"`
    OriginalTime    string           `db:"original_time" json:"original_time"`
    RecommendedTime string           `db:"recommended_time" json:"recommended_time"`
    Status          string           `db:"status" json:"status"`
    AnalysisResult  *AnalysisResult  `db:"analysis_result" json:"analysis_result,omitempty"`
    ContentVersions []ContentVersion `db:"content_versions" json:"content_versions,omitempty"`
    CreatedAt       time.Time        `db:"created_at" json:"created_at"`
    UpdatedAt       *time.Time       `db:"updated_at" json:"updated_at,omitempty"`
}

// AnalysisResult is what the analysis provider returns for one instruction.
type AnalysisResult struct {
    OriginalTime          string   `json:"original_time"`
    RecommendedTime       string   `json:"recommended_time"`
    TimeAdjustmentReason  string   `json:"time_adjustment_reason"`
    OriginalTheme         string   `json:"original_theme"`
    RecommendedTheme      string   `json:"recommended_theme"`
    ThemeAdjustmentReason string   `json:"theme_adjustment_reason"`
    ChannelRecommendation []string `json:"channel_recommendation"`
    StyleRecommendation   string   `json:"style_recommendation"`
    RiskAssessment        string   `json:"risk_assessment"`
    ConfidenceScore       float64  `json:"confidence_score"`
    DetailedAnalysis      string   `json:"detailed_analysis"`
}
