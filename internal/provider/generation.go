package provider

import (
    "context"
    "fmt"
    "unicode/utf8"

    "github.com/google/uuid"
    "go.uber.org/zap"

    appErrors "github.com/promoforge/marketing-agent-backend/internal/errors"
    "github.com/promoforge/marketing-agent-backend/internal/llm"
    "github.com/promoforge/marketing-agent-backend/internal/model"
)

const copywriterRole = "You are a professional marketing copywriter who crafts engaging promotional content."

// DefaultStyles is the style set used when the caller does not pick one.
var DefaultStyles = []string{"humorous", "professional", "promotional"}

var styleNames = map[string]string{
    "humorous":     "Humorous",
    "professional": "Professional",
    "promotional":  "Promotional",
}

type LLMGeneration struct {
    Client *llm.Client
    Logger *zap.SugaredLogger
}

func NewLLMGeneration(client *llm.Client, logger *zap.SugaredLogger) *LLMGeneration {
    return &LLMGeneration{Client: client, Logger: logger}
}

// GenerateVariants produces one content version per style, capped at three.
// A single failed style is skipped; the call errors only when nothing could
// be generated at all.
func (g *LLMGeneration) GenerateVariants(ctx context.Context, instr model.Instruction, theme string, styles []string) ([]model.ContentVersion, error) {
    if len(styles) == 0 {
        styles = DefaultStyles
    }
    if len(styles) > 3 {
        styles = styles[:3]
    }

    versions := make([]model.ContentVersion, 0, len(styles))
    var lastErr error
    for _, style := range styles {
        v, err := g.generateOne(ctx, instr, theme, style)
        if err != nil {
            g.Logger.Warnw("content generation failed for style", "style", style, "error", err)
            lastErr = err
            continue
        }
        versions = append(versions, v)
    }

    if len(versions) == 0 {
        return nil, appErrors.NewUpstream("generation", lastErr)
    }
    g.Logger.Infow("content variants generated", "count", len(versions), "theme", theme)
    return versions, nil
}

func (g *LLMGeneration) generateOne(ctx context.Context, instr model.Instruction, theme, style string) (model.ContentVersion, error) {
    prompt := fmt.Sprintf(`Write a piece of %s-style marketing copy:

Product: %s
Highlights: %s
Target audience: %s
Theme: %s

Keep it between 100 and 200 words, lead with a hook, weave the highlights in
naturally, and end with a call to action.`,
        style, instr.ProductName, instr.Highlights, instr.TargetAudience, theme)

    text, err := g.Client.Complete(ctx, copywriterRole, prompt, 0.8, 1000)
    if err != nil {
        return model.ContentVersion{}, err
    }

    name := styleNames[style]
    if name == "" {
        name = style
    }
    return model.ContentVersion{
        GenerationID: "GEN_" + uuid.NewString(),
        Text:         text,
        Style:        style,
        WordCount:    utf8.RuneCountInString(text),
        VersionName:  name,
    }, nil
}

// ImageDescription drafts three image briefs for the campaign visuals.
func (g *LLMGeneration) ImageDescription(ctx context.Context, instr model.Instruction, theme string) (string, error) {
    prompt := fmt.Sprintf(`Create 3 image briefs for this marketing content:

Product: %s
Theme: %s
Highlights: %s

Brief 1: hero shot of the core feature. Brief 2: usage scene. Brief 3:
comparison highlighting the advantage. Each brief covers composition, color
palette, elements and mood.`, instr.ProductName, theme, instr.Highlights)

    text, err := g.Client.Complete(ctx, "You are a visual designer who plans imagery for marketing content.", prompt, 0.7, 800)
    if err != nil {
        return "", appErrors.NewUpstream("generation", err)
    }
    g.Logger.Infow("image briefs generated", "product", instr.ProductName)
    return text, nil
}

// VideoScript drafts a short-form video script; one shot per five seconds.
func (g *LLMGeneration) VideoScript(ctx context.Context, instr model.Instruction, theme string, duration int) (*model.VideoScript, error) {
    if duration <= 0 {
        duration = 30
    }
    prompt := fmt.Sprintf(`Write a %d-second short video script:

Product: %s
Theme: %s
Highlights: %s
Target audience: %s

Provide a shot list (one shot per 5 seconds), visuals, voiceover copy,
music suggestion and transitions. Fast-paced, visually striking, clear.`,
        duration, instr.ProductName, theme, instr.Highlights, instr.TargetAudience)

    text, err := g.Client.Complete(ctx, "You are a short-form video director who writes compelling scripts.", prompt, 0.8, 1200)
    if err != nil {
        return nil, appErrors.NewUpstream("generation", err)
    }
    g.Logger.Infow("video script generated", "duration", duration)
    return &model.VideoScript{Script: text, Duration: duration, Shots: duration / 5}, nil
}
