// Package taskqueue runs named background tasks off a Redis list.
// Producers LPUSH a JSON envelope, workers BRPOP it, so tasks are handed
// out in enqueue order. A task that fails is not retried; its outcome is
// written to a result key for later inspection.
package taskqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrEmptyTaskName = errors.New("task name is required")

// Task is the envelope stored on the queue
type Task struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Payload    json.RawMessage `json:"payload"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

// Decode unmarshals the payload into dest
func (t *Task) Decode(dest any) error {
	if err := json.Unmarshal(t.Payload, dest); err != nil {
		return fmt.Errorf("decode payload of task %s (%s): %w", t.Name, t.ID, err)
	}
	return nil
}

// Result is written once per task execution
type Result struct {
	TaskID     string    `json:"task_id"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	FinishedAt time.Time `json:"finished_at"`
}

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

func queueKey(queue string) string {
	return "tasks:" + queue
}

func resultKey(taskID string) string {
	return "task_result:" + taskID
}

type Queue struct {
	rdb  redis.UniversalClient
	name string
	now  func() time.Time
}

func NewQueue(rdb redis.UniversalClient, name string) *Queue {
	if name == "" {
		name = "default"
	}
	return &Queue{rdb: rdb, name: name, now: time.Now}
}

func (q *Queue) Name() string {
	return q.name
}

// Enqueue pushes a task and returns its id. It does not wait for execution.
func (q *Queue) Enqueue(ctx context.Context, name string, payload any) (string, error) {
	if name == "" {
		return "", ErrEmptyTaskName
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload of task %s: %w", name, err)
	}

	task := Task{
		ID:         uuid.NewString(),
		Name:       name,
		Payload:    raw,
		EnqueuedAt: q.now(),
	}
	envelope, err := json.Marshal(task)
	if err != nil {
		return "", fmt.Errorf("marshal task %s: %w", name, err)
	}

	if err := q.rdb.LPush(ctx, queueKey(q.name), envelope).Err(); err != nil {
		enqueueErrorsTotal.WithLabelValues(name).Inc()
		return "", fmt.Errorf("enqueue task %s: %w", name, err)
	}

	enqueuedTotal.WithLabelValues(name).Inc()
	return task.ID, nil
}

// Len reports how many tasks are waiting
func (q *Queue) Len(ctx context.Context) (int64, error) {
	return q.rdb.LLen(ctx, queueKey(q.name)).Result()
}

// Result fetches the recorded outcome of a task, redis.Nil if unknown
func (q *Queue) Result(ctx context.Context, taskID string) (*Result, error) {
	raw, err := q.rdb.Get(ctx, resultKey(taskID)).Bytes()
	if err != nil {
		return nil, err
	}
	var res Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("decode result of task %s: %w", taskID, err)
	}
	return &res, nil
}
