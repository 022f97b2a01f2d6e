// internal/service/report_service.go
package service

import (
    "go.uber.org/zap"

    appErrors "github.com/promoforge/marketing-agent-backend/internal/errors"
    "github.com/promoforge/marketing-agent-backend/internal/model"
    "github.com/promoforge/marketing-agent-backend/internal/repository"
)

// ReportService assembles marketing performance reports over the durable
// store. The performance numbers are representative placeholders until the
// platform analytics integration exists, same as the variant metrics source.
type ReportService struct {
    Campaigns repository.CampaignStore
    Logger    *zap.SugaredLogger
}

type PerformanceSummary struct {
    Impressions    int     `json:"impressions"`
    EngagementRate float64 `json:"engagement_rate"`
    ClickRate      float64 `json:"click_rate"`
    ConversionRate float64 `json:"conversion_rate"`
    ROI            float64 `json:"roi"`
}

type ContentPerformance struct {
    Version        string  `json:"version"`
    EngagementRate float64 `json:"engagement_rate"`
    BestPerformer  bool    `json:"best_performer"`
}

type PlatformBreakdown struct {
    Platform    string  `json:"platform"`
    Impressions int     `json:"impressions"`
    Engagement  float64 `json:"engagement"`
}

type CampaignReport struct {
    CampaignID          string               `json:"campaign_id"`
    CampaignInfo        *model.Campaign      `json:"campaign_info"`
    PerformanceSummary  PerformanceSummary   `json:"performance_summary"`
    ContentPerformance  []ContentPerformance `json:"content_performance"`
    PlatformBreakdown   []PlatformBreakdown  `json:"platform_breakdown"`
    Recommendations     []string             `json:"recommendations"`
}

type OverallSummary struct {
    TotalCampaigns    int     `json:"total_campaigns"`
    PendingTasks      int     `json:"pending_tasks"`
    AvgEngagementRate float64 `json:"avg_engagement_rate"`
    TotalReach        int     `json:"total_reach"`
}

type TrendAnalysis struct {
    EngagementTrend string `json:"engagement_trend"`
    BestTimeSlot    string `json:"best_time_slot"`
    TopPlatform     string `json:"top_platform"`
}

type OverallReport struct {
    ReportType      string           `json:"report_type"`
    Summary         OverallSummary   `json:"summary"`
    RecentCampaigns []model.Campaign `json:"recent_campaigns"`
    PendingTasks    []model.Task     `json:"pending_tasks"`
    TrendAnalysis   TrendAnalysis    `json:"trend_analysis"`
}

// CampaignReport builds a per-campaign performance report. Unknown campaign
// ids fail with NotFound.
func (s *ReportService) CampaignReport(campaignID string) (*CampaignReport, error) {
    campaign, err := s.Campaigns.FindCampaign(campaignID)
    if err != nil {
        return nil, appErrors.NewPersistence("find campaign", err)
    }
    if campaign == nil {
        return nil, appErrors.NewNotFound("campaign", campaignID)
    }

    s.Logger.Infow("campaign report generated", "campaign_id", campaignID)
    return &CampaignReport{
        CampaignID:   campaignID,
        CampaignInfo: campaign,
        PerformanceSummary: PerformanceSummary{
            Impressions:    125000,
            EngagementRate: 0.12,
            ClickRate:      0.045,
            ConversionRate: 0.023,
            ROI:            3.2,
        },
        ContentPerformance: []ContentPerformance{
            {Version: "Humorous", EngagementRate: 0.15, BestPerformer: true},
            {Version: "Professional", EngagementRate: 0.11},
            {Version: "Promotional", EngagementRate: 0.10},
        },
        PlatformBreakdown: []PlatformBreakdown{
            {Platform: "wechat", Impressions: 50000, Engagement: 0.13},
            {Platform: "douyin", Impressions: 45000, Engagement: 0.14},
            {Platform: "rednote", Impressions: 30000, Engagement: 0.09},
        },
        Recommendations: []string{
            "the humorous version performed best; reuse the style in upcoming campaigns",
            "douyin shows the highest engagement; consider shifting budget there",
            "conversion is on target; optimizing the landing page could lift it further",
        },
    }, nil
}

// OverallReport summarizes recent activity across campaigns and tasks.
func (s *ReportService) OverallReport() (*OverallReport, error) {
    campaigns, err := s.Campaigns.ListRecentCampaigns(10)
    if err != nil {
        return nil, appErrors.NewPersistence("list campaigns", err)
    }
    tasks, err := s.Campaigns.ListPendingTasks(20)
    if err != nil {
        return nil, appErrors.NewPersistence("list pending tasks", err)
    }

    return &OverallReport{
        ReportType: "overall_summary",
        Summary: OverallSummary{
            TotalCampaigns:    len(campaigns),
            PendingTasks:      len(tasks),
            AvgEngagementRate: 0.11,
            TotalReach:        850000,
        },
        RecentCampaigns: campaigns,
        PendingTasks:    tasks,
        TrendAnalysis: TrendAnalysis{
            EngagementTrend: "rising",
            BestTimeSlot:    "20:00-22:00",
            TopPlatform:     "douyin",
        },
    }, nil
}
