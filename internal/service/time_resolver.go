// internal/service/time_resolver.go
package service

import (
    "strings"
    "time"
)

// publishTimeLayout is the only accepted publish-time expression.
const publishTimeLayout = "2006-01-02 15:04"

// TimeResolver turns a target-publish-time expression into an absolute
// timestamp. Parsing never hard-fails: anything that does not match the
// layout resolves to now + 2 hours, so scheduling survives bad timestamps.
// All timestamps are local; no timezone handling.
type TimeResolver struct {
    Now func() time.Time
}

func NewTimeResolver() *TimeResolver {
    return &TimeResolver{Now: time.Now}
}

func (r *TimeResolver) Resolve(expression string) time.Time {
    t, err := time.ParseInLocation(publishTimeLayout, strings.TrimSpace(expression), time.Local)
    if err != nil {
        return r.Now().Add(2 * time.Hour)
    }
    return t
}
