// internal/store/task_store.go
package store

import (
    "fmt"
    "sync"
    "time"

    "github.com/promoforge/marketing-agent-backend/internal/model"
)

// TaskStore is the in-memory registry of scheduled tasks and A/B test groups.
// It owns identity allocation and status transitions. One instance is built at
// process start and injected; nothing here is package-level state.
//
// A single mutex serializes id allocation, appends and point updates. The
// lists are append-only, so insertion order doubles as allocation order.
type TaskStore struct {
    mu      sync.Mutex
    taskSeq int
    abSeq   int
    tasks   []model.Task
    abTests []model.ABTest

    now func() time.Time
}

func NewTaskStore() *TaskStore {
    return &TaskStore{now: time.Now}
}

// NewTaskStoreAt is NewTaskStore with an injected clock, for tests.
func NewTaskStoreAt(now func() time.Time) *TaskStore {
    return &TaskStore{now: now}
}

// NextTaskID allocates the next plain task id, TASK_0001, TASK_0002, ...
func (s *TaskStore) NextTaskID() string {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.taskSeq++
    return fmt.Sprintf("TASK_%04d", s.taskSeq)
}

// NextABTestID allocates the next A/B test id, AB_0001, AB_0002, ...
func (s *TaskStore) NextABTestID() string {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.abSeq++
    return fmt.Sprintf("AB_%04d", s.abSeq)
}

func (s *TaskStore) AddTask(t model.Task) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if t.CreatedAt.IsZero() {
        t.CreatedAt = s.now()
    }
    s.tasks = append(s.tasks, t)
}

func (s *TaskStore) AddABTest(t model.ABTest) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if t.CreatedAt.IsZero() {
        t.CreatedAt = s.now()
    }
    s.abTests = append(s.abTests, t)
}

// FindTask returns a copy of the task with the given id. Absence is a normal
// outcome, signalled by the second return value.
func (s *TaskStore) FindTask(taskID string) (model.Task, bool) {
    s.mu.Lock()
    defer s.mu.Unlock()
    for i := range s.tasks {
        if s.tasks[i].TaskID == taskID {
            return s.tasks[i], true
        }
    }
    return model.Task{}, false
}

func (s *TaskStore) FindABTest(abTestID string) (model.ABTest, bool) {
    s.mu.Lock()
    defer s.mu.Unlock()
    for i := range s.abTests {
        if s.abTests[i].ABTestID == abTestID {
            return s.abTests[i], true
        }
    }
    return model.ABTest{}, false
}

// ListTasks returns tasks in insertion order. A non-empty status narrows the
// result; callers wanting chronological order sort themselves.
func (s *TaskStore) ListTasks(status string) []model.Task {
    s.mu.Lock()
    defer s.mu.Unlock()
    out := make([]model.Task, 0, len(s.tasks))
    for _, t := range s.tasks {
        if status != "" && t.Status != status {
            continue
        }
        out = append(out, t)
    }
    return out
}

// UpdateStatus mutates a task's status in place and returns false for an
// unknown id. Moving to published stamps publishedAt with the current time
// regardless of prior status.
func (s *TaskStore) UpdateStatus(taskID, status string) bool {
    s.mu.Lock()
    defer s.mu.Unlock()
    for i := range s.tasks {
        if s.tasks[i].TaskID != taskID {
            continue
        }
        now := s.now()
        s.tasks[i].Status = status
        s.tasks[i].UpdatedAt = &now
        if status == model.StatusPublished {
            published := now
            s.tasks[i].PublishedAt = &published
        }
        return true
    }
    return false
}
