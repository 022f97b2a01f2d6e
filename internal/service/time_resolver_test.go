package service

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
)

func TestResolveWellFormedExpression(t *testing.T) {
    r := NewTimeResolver()

    got := r.Resolve("2025-11-01 20:00")
    want := time.Date(2025, 11, 1, 20, 0, 0, 0, time.Local)
    assert.Equal(t, want, got)
}

func TestResolveMalformedFallsBackToNowPlusTwoHours(t *testing.T) {
    fixed := time.Date(2025, 11, 1, 9, 30, 0, 0, time.Local)
    r := &TimeResolver{Now: func() time.Time { return fixed }}

    cases := []string{
        "",
        "next friday",
        "2025-13-40 99:99",
        "2025-11-01",          // date only
        "2025-11-01T20:00:00", // wrong separator
        "20:00",
    }
    for _, expr := range cases {
        got := r.Resolve(expr)
        assert.Equal(t, fixed.Add(2*time.Hour), got, "expression %q", expr)
    }
}

func TestResolveTrimsWhitespace(t *testing.T) {
    r := NewTimeResolver()
    got := r.Resolve("  2025-11-01 20:00  ")
    assert.Equal(t, time.Date(2025, 11, 1, 20, 0, 0, 0, time.Local), got)
}
