// internal/controller/campaign_controller.go
package controller

import (
    "context"
    "encoding/json"
    "net/http"
    "strconv"
    "time"

    "go.uber.org/zap"

    "github.com/promoforge/marketing-agent-backend/internal/model"
    "github.com/promoforge/marketing-agent-backend/internal/repository"
    "github.com/promoforge/marketing-agent-backend/internal/service"
)

const timestampLayout = "2006-01-02 15:04:05"

// AnalysisAgent is the slice of the analysis provider the deep-analysis
// endpoint needs.
type AnalysisAgent interface {
    AudienceInsights(ctx context.Context, targetAudience string) (*model.AudienceInsights, error)
    CompetitorAnalysis(ctx context.Context, productCategory string) (*model.CompetitorAnalysis, error)
    PredictPublishTime(ctx context.Context, targetAudience, platform string) (*model.TimePrediction, error)
}

// GenerationAgent is the slice of the generation provider the content
// endpoint needs.
type GenerationAgent interface {
    GenerateVariants(ctx context.Context, instr model.Instruction, theme string, styles []string) ([]model.ContentVersion, error)
    ImageDescription(ctx context.Context, instr model.Instruction, theme string) (string, error)
    VideoScript(ctx context.Context, instr model.Instruction, theme string, duration int) (*model.VideoScript, error)
}

type CampaignController struct {
    Orchestrator *service.OrchestratorService
    Reports      *service.ReportService
    Analysis     AnalysisAgent
    Generation   GenerationAgent
    Campaigns    repository.CampaignStore
    Logger       *zap.SugaredLogger
}

// HandleInstruction runs the full analyze -> generate -> schedule workflow
// for one marketing instruction.
func (c *CampaignController) HandleInstruction(w http.ResponseWriter, r *http.Request) {
    var body struct {
        ProductName     string   `json:"product_name"`
        Highlights      string   `json:"highlights"`
        TargetAudience  string   `json:"target_audience"`
        PublishTime     string   `json:"publish_time"`
        ProductCategory string   `json:"product_category"`
        Platforms       []string `json:"platforms"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        respondBadRequest(w, "invalid request body")
        return
    }

    instr := model.Instruction{
        ProductName:     body.ProductName,
        Highlights:      body.Highlights,
        TargetAudience:  body.TargetAudience,
        PublishTime:     body.PublishTime,
        ProductCategory: body.ProductCategory,
    }

    result, err := c.Orchestrator.RunCampaign(r.Context(), instr, body.Platforms)
    if err != nil {
        respondError(w, err)
        return
    }

    respondJSON(w, http.StatusOK, map[string]any{
        "success":     true,
        "campaign_id": result.CampaignID,
        "instruction": result.Instruction,
        "analysis":    result.Analysis,
        "content":     result.Content,
        "schedule":    result.Schedule,
        "created_at":  result.CreatedAt.Format(timestampLayout),
    })
}

// Analyze runs the selected deep-analysis dimensions. A failed dimension is
// skipped, not fatal, so callers get whatever completed.
func (c *CampaignController) Analyze(w http.ResponseWriter, r *http.Request) {
    var body struct {
        TargetAudience  string   `json:"target_audience"`
        ProductCategory string   `json:"product_category"`
        AnalysisTypes   []string `json:"analysis_types"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        respondBadRequest(w, "invalid request body")
        return
    }
    if body.TargetAudience == "" {
        body.TargetAudience = "general consumers"
    }
    if body.ProductCategory == "" {
        body.ProductCategory = "consumer electronics"
    }
    types := body.AnalysisTypes
    if len(types) == 0 {
        types = []string{"audience", "competitor", "timing"}
    }

    results := map[string]any{}
    for _, analysisType := range types {
        switch analysisType {
        case "audience":
            insights, err := c.Analysis.AudienceInsights(r.Context(), body.TargetAudience)
            if err != nil {
                c.Logger.Warnw("audience insights failed", "error", err)
                continue
            }
            results["audience_insights"] = insights
        case "competitor":
            analysis, err := c.Analysis.CompetitorAnalysis(r.Context(), body.ProductCategory)
            if err != nil {
                c.Logger.Warnw("competitor analysis failed", "error", err)
                continue
            }
            results["competitor_analysis"] = analysis
        case "timing":
            prediction, err := c.Analysis.PredictPublishTime(r.Context(), body.TargetAudience, "multi")
            if err != nil {
                c.Logger.Warnw("publish time prediction failed", "error", err)
                continue
            }
            results["timing_prediction"] = prediction
        }
    }

    respondJSON(w, http.StatusOK, map[string]any{
        "success":          true,
        "analysis_results": results,
        "analyzed_at":      time.Now().Format(timestampLayout),
    })
}

// Generate produces marketing assets of the requested type.
func (c *CampaignController) Generate(w http.ResponseWriter, r *http.Request) {
    var body struct {
        ProductInfo struct {
            Name           string `json:"name"`
            Highlights     string `json:"highlights"`
            TargetAudience string `json:"target_audience"`
        } `json:"product_info"`
        Theme     string   `json:"theme"`
        Styles    []string `json:"styles"`
        AssetType string   `json:"asset_type"`
        Duration  int      `json:"duration"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        respondBadRequest(w, "invalid request body")
        return
    }
    if body.ProductInfo.Name == "" {
        respondBadRequest(w, "product info is incomplete")
        return
    }
    theme := body.Theme
    if theme == "" {
        theme = "product promotion"
    }
    assetType := body.AssetType
    if assetType == "" {
        assetType = "text"
    }

    instr := model.Instruction{
        ProductName:    body.ProductInfo.Name,
        Highlights:     body.ProductInfo.Highlights,
        TargetAudience: body.ProductInfo.TargetAudience,
    }

    results := map[string]any{}
    if assetType == "text" || assetType == "all" {
        versions, err := c.Generation.GenerateVariants(r.Context(), instr, theme, body.Styles)
        if err != nil {
            respondError(w, err)
            return
        }
        results["text_content"] = versions
    }
    if assetType == "image" || assetType == "all" {
        description, err := c.Generation.ImageDescription(r.Context(), instr, theme)
        if err != nil {
            c.Logger.Warnw("image description failed", "error", err)
        } else {
            results["image_description"] = description
        }
    }
    if assetType == "video" || assetType == "all" {
        script, err := c.Generation.VideoScript(r.Context(), instr, theme, body.Duration)
        if err != nil {
            c.Logger.Warnw("video script failed", "error", err)
        } else {
            results["video_script"] = script
        }
    }

    respondJSON(w, http.StatusOK, map[string]any{
        "success":           true,
        "generated_content": results,
        "product_name":      body.ProductInfo.Name,
        "theme":             theme,
        "generated_at":      time.Now().Format(timestampLayout),
    })
}

// Report returns a per-campaign report when campaign_id is given, otherwise
// an overall summary.
func (c *CampaignController) Report(w http.ResponseWriter, r *http.Request) {
    campaignID := r.URL.Query().Get("campaign_id")
    reportType := r.URL.Query().Get("report_type")
    if reportType == "" {
        reportType = "summary"
    }

    var report any
    var err error
    if campaignID != "" {
        report, err = c.Reports.CampaignReport(campaignID)
    } else {
        report, err = c.Reports.OverallReport()
    }
    if err != nil {
        respondError(w, err)
        return
    }

    respondJSON(w, http.StatusOK, map[string]any{
        "success":      true,
        "report":       report,
        "report_type":  reportType,
        "generated_at": time.Now().Format(timestampLayout),
    })
}

// ListCampaigns returns the most recent campaigns from the durable store.
func (c *CampaignController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
    limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
    if limit < 1 {
        limit = 10
    }

    campaigns, err := c.Campaigns.ListRecentCampaigns(limit)
    if err != nil {
        respondError(w, err)
        return
    }

    respondJSON(w, http.StatusOK, map[string]any{
        "success":   true,
        "campaigns": campaigns,
        "total":     len(campaigns),
    })
}

// Health is the liveness endpoint.
func (c *CampaignController) Health(w http.ResponseWriter, r *http.Request) {
    respondJSON(w, http.StatusOK, map[string]any{
        "status":    "healthy",
        "service":   "Marketing Agent API",
        "timestamp": time.Now().Format(timestampLayout),
        "version":   "1.0.0",
    })
}
