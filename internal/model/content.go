// internal/model/content.go
package model

// ContentVersion is one generated piece of marketing copy. Read-only once
// created; tasks reference it by value.
type ContentVersion struct {
    GenerationID string `json:"generation_id,omitempty"`
    Text         string `json:"text"`
    Style        string `json:"style"`
    WordCount    int    `json:"word_count"`
    VersionName  string `json:"version_name"`
}

// AudienceInsights is the enriched output of an audience analysis run.
type AudienceInsights struct {
    TextAnalysis            string             `json:"text_analysis"`
    BestActiveTime          string             `json:"best_active_time"`
    PlatformPreference      []string           `json:"platform_preference"`
    EngagementRate          float64            `json:"engagement_rate"`
    ConversionPotential     string             `json:"conversion_potential"`
    ContentFormatPreference map[string]float64 `json:"content_format_preference"`
}

type TrendingTopic struct {
    Topic     string  `json:"topic"`
    Heat      float64 `json:"heat"`
    Sentiment string  `json:"sentiment"`
}

type CompetitorAnalysis struct {
    AnalysisText      string          `json:"analysis_text"`
    TrendingTopics    []TrendingTopic `json:"trending_topics"`
    MarketOpportunity string          `json:"market_opportunity"`
    Recommendation    string          `json:"recommendation"`
}

type TimeSlot struct {
    Time   string  `json:"time"`
    Score  float64 `json:"score"`
    Reason string  `json:"reason"`
}

type TimePrediction struct {
    Analysis       string     `json:"analysis"`
    BestTime       string     `json:"best_time"`
    BestTimeReason string     `json:"best_time_reason"`
    Confidence     float64    `json:"confidence"`
    TimeSlots      []TimeSlot `json:"time_slots"`
    Recommendation string     `json:"recommendation"`
}

type VideoScript struct {
    Script   string `json:"script"`
    Duration int    `json:"duration"`
    Shots    int    `json:"shots"`
}
