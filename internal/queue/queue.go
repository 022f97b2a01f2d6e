package queue

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/promoforge/marketing-agent-backend/internal/model"
	"github.com/promoforge/marketing-agent-backend/internal/repository"
)

// TopicTaskStatus carries task status transitions that need mirroring into
// the durable store.
const TopicTaskStatus = "task_status_updates"

// StatusUpdate is the payload on TopicTaskStatus.
type StatusUpdate struct {
	TaskID string
	Status string
}

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue is an in-process pub/sub queue with bounded retry.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
}

func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers of the topic.
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	job := JobPayload{
		Payload:    payload,
		RetryCount: 0,
		MaxRetries: 3,
	}

	for _, handler := range handlers {
		go q.processJob(handler, job)
	}

	return nil
}

// processJob runs one handler with exponential backoff between attempts.
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	for job.RetryCount <= job.MaxRetries {
		err := handler(job.Payload)
		if err == nil {
			return // ACK
		}

		job.RetryCount++
		if job.RetryCount > job.MaxRetries {
			return // no requeue
		}
		time.Sleep(time.Duration(job.RetryCount*500) * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic.
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// StartTaskStatusSubscriber mirrors task status transitions into Postgres.
// The HTTP process owns the in-memory task state; this subscriber keeps the
// durable copy in sync without putting the write on the request path.
func StartTaskStatusSubscriber(q Queue, campaigns repository.CampaignStore, logger *zap.SugaredLogger) {
	err := q.Subscribe(TopicTaskStatus, func(payload any) error {
		update, ok := payload.(StatusUpdate)
		if !ok {
			logger.Warnw("unexpected payload type on task status topic", "payload", payload)
			return nil // not retryable
		}

		found, err := campaigns.UpdateTaskStatus(update.TaskID, update.Status)
		if err != nil {
			logger.Warnw("mirroring task status failed", "task_id", update.TaskID, "error", err)
			return err // retry
		}
		if !found {
			// task was never persisted (in-memory only run); nothing to mirror
			return nil
		}

		if update.Status == model.StatusPublished {
			logger.Infow("task status mirrored", "task_id", update.TaskID, "status", update.Status)
		}
		return nil
	})
	if err != nil {
		logger.Errorw("subscribing to task status topic failed", "error", err)
	}
}
