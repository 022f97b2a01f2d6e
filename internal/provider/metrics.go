package provider

import (
    "math"
    "math/rand"
    "sync"

    "github.com/promoforge/marketing-agent-backend/internal/model"
)

// SimulatedMetrics synthesizes per-variant engagement numbers in the ranges
// the real platforms report. It stands in for platform analytics until a
// real integration exists; evaluator logic stays deterministic given its
// MetricsProvider, so tests swap in a fixed double.
type SimulatedMetrics struct {
    mu  sync.Mutex
    rng *rand.Rand
}

func NewSimulatedMetrics(seed int64) *SimulatedMetrics {
    return &SimulatedMetrics{rng: rand.New(rand.NewSource(seed))}
}

func (m *SimulatedMetrics) FetchVariantMetrics(taskID string) model.VariantMetrics {
    m.mu.Lock()
    defer m.mu.Unlock()
    return model.VariantMetrics{
        Impressions:    5000 + m.rng.Intn(10001),
        EngagementRate: round3(0.05 + m.rng.Float64()*0.10),
        ClickRate:      round3(0.02 + m.rng.Float64()*0.06),
        ConversionRate: round3(0.01 + m.rng.Float64()*0.04),
    }
}

func round3(v float64) float64 {
    return math.Round(v*1000) / 1000
}
