// internal/service/orchestrator_service.go
package service

import (
    "context"
    "strings"
    "time"

    "go.uber.org/zap"

    appErrors "github.com/promoforge/marketing-agent-backend/internal/errors"
    "github.com/promoforge/marketing-agent-backend/internal/model"
    "github.com/promoforge/marketing-agent-backend/internal/repository"
)

// AnalysisProvider is the external analysis collaborator.
type AnalysisProvider interface {
    AnalyzeInstruction(ctx context.Context, instr model.Instruction) (*model.AnalysisResult, error)
}

// GenerationProvider is the external content generation collaborator.
type GenerationProvider interface {
    GenerateVariants(ctx context.Context, instr model.Instruction, theme string, styles []string) ([]model.ContentVersion, error)
}

// DefaultPlatforms is used when an instruction names no platforms.
var DefaultPlatforms = []string{"wechat", "douyin", "rednote"}

// OrchestratorService sequences analysis -> generation -> scheduling into one
// workflow per instruction. Analysis and generation failures abort the run;
// persistence failures are logged and swallowed, the returned result stays
// authoritative for the caller.
type OrchestratorService struct {
    Analysis   AnalysisProvider
    Generation GenerationProvider
    Scheduler  *SchedulingService
    Campaigns  repository.CampaignStore
    Logger     *zap.SugaredLogger
    Now        func() time.Time
}

type ThemeOptimization struct {
    Original    string `json:"original"`
    Recommended string `json:"recommended"`
    Reason      string `json:"reason"`
}

type CampaignAnalysis struct {
    OriginalTime      string            `json:"original_time"`
    RecommendedTime   string            `json:"recommended_time"`
    Reason            string            `json:"reason"`
    ThemeOptimization ThemeOptimization `json:"theme_optimization"`
    ConfidenceScore   float64           `json:"confidence_score"`
}

type CampaignContent struct {
    Versions []model.ContentVersion `json:"versions"`
    Total    int                    `json:"total"`
}

type PlatformSchedule struct {
    Platform string          `json:"platform"`
    Schedule *ScheduleResult `json:"schedule_info"`
}

type CampaignResult struct {
    CampaignID  string             `json:"campaign_id"`
    Instruction model.Instruction  `json:"instruction"`
    Analysis    CampaignAnalysis   `json:"analysis"`
    Content     CampaignContent    `json:"content"`
    Schedule    []PlatformSchedule `json:"schedule"`
    CreatedAt   time.Time          `json:"created_at"`
}

// RunCampaign executes the full pipeline for one instruction. Platforms may
// be empty, in which case DefaultPlatforms apply; every platform gets its own
// A/B-tested schedule over the same content versions.
func (o *OrchestratorService) RunCampaign(ctx context.Context, instr model.Instruction, platforms []string) (*CampaignResult, error) {
    if err := validateInstruction(instr); err != nil {
        return nil, err
    }
    if len(platforms) == 0 {
        platforms = DefaultPlatforms
    }
    if instr.ProductCategory == "" {
        instr.ProductCategory = "consumer electronics"
    }

    now := o.now()
    campaignID := "CAMP_" + now.Format("20060102150405")
    o.Logger.Infow("campaign started", "campaign_id", campaignID, "product", instr.ProductName)

    // Stage 1: analysis. Failure aborts before any state is created.
    analysis, err := o.Analysis.AnalyzeInstruction(ctx, instr)
    if err != nil {
        return nil, err
    }

    theme := analysis.RecommendedTheme
    if theme == "" {
        theme = instr.Highlights
    }

    // Stage 2: generation.
    versions, err := o.Generation.GenerateVariants(ctx, instr, theme, nil)
    if err != nil {
        return nil, err
    }

    // Stage 3: scheduling. The publish date comes from the instruction when
    // one was given, otherwise today; the hour comes from the analysis.
    targetTime := o.deriveTargetTime(instr.PublishTime, analysis.RecommendedTime, now)

    schedules := make([]PlatformSchedule, 0, len(platforms))
    for _, platform := range platforms {
        res, err := o.Scheduler.CreateSchedule(versions, targetTime, platform, true)
        if err != nil {
            return nil, err
        }
        schedules = append(schedules, PlatformSchedule{Platform: platform, Schedule: res})
    }

    // Stage 4: best-effort persistence.
    campaign := &model.Campaign{
        CampaignID:      campaignID,
        ProductName:     instr.ProductName,
        ProductCategory: instr.ProductCategory,
        Theme:           theme,
        Highlights:      instr.Highlights,
        TargetAudience:  instr.TargetAudience,
        OriginalTime:    instr.PublishTime,
        RecommendedTime: targetTime,
        Status:          model.StatusScheduled,
        AnalysisResult:  analysis,
        ContentVersions: versions,
        CreatedAt:       now,
    }
    if err := o.Campaigns.SaveCampaign(campaign); err != nil {
        o.Logger.Errorw("saving campaign failed", "campaign_id", campaignID, "error", err)
    }

    o.Logger.Infow("campaign completed", "campaign_id", campaignID, "versions", len(versions), "platforms", len(platforms))
    return &CampaignResult{
        CampaignID:  campaignID,
        Instruction: instr,
        Analysis: CampaignAnalysis{
            OriginalTime:    instr.PublishTime,
            RecommendedTime: targetTime,
            Reason:          analysis.TimeAdjustmentReason,
            ThemeOptimization: ThemeOptimization{
                Original:    instr.Highlights,
                Recommended: theme,
                Reason:      analysis.ThemeAdjustmentReason,
            },
            ConfidenceScore: analysis.ConfidenceScore,
        },
        Content:   CampaignContent{Versions: versions, Total: len(versions)},
        Schedule:  schedules,
        CreatedAt: now,
    }, nil
}

func validateInstruction(instr model.Instruction) error {
    missing := []string{}
    if strings.TrimSpace(instr.ProductName) == "" {
        missing = append(missing, "product_name")
    }
    if strings.TrimSpace(instr.Highlights) == "" {
        missing = append(missing, "highlights")
    }
    if strings.TrimSpace(instr.TargetAudience) == "" {
        missing = append(missing, "target_audience")
    }
    if len(missing) > 0 {
        return appErrors.NewInvalidInput("missing required fields: %s", strings.Join(missing, ", "))
    }
    return nil
}

// deriveTargetTime combines the date portion of the original expression (its
// first whitespace-separated field) with the recommended hour. A garbage date
// simply makes the resolver fall back to now+2h downstream.
func (o *OrchestratorService) deriveTargetTime(publishTime, recommendedTime string, now time.Time) string {
    date := now.Format("2006-01-02")
    if fields := strings.Fields(publishTime); len(fields) > 0 {
        date = fields[0]
    }
    if recommendedTime == "" {
        recommendedTime = "20:00"
    }
    return date + " " + recommendedTime
}

func (o *OrchestratorService) now() time.Time {
    if o.Now != nil {
        return o.Now()
    }
    return time.Now()
}
