package taskqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Handler executes one task. A returned error is terminal for that task.
type Handler func(ctx context.Context, task *Task) error

type WorkerOptions struct {
	Concurrency int
	PollTimeout time.Duration
	TaskTimeout time.Duration
	ResultTTL   time.Duration
}

func (o *WorkerOptions) withDefaults() {
	if o.Concurrency < 1 {
		o.Concurrency = 1
	}
	if o.PollTimeout < time.Second {
		o.PollTimeout = time.Second
	}
	if o.TaskTimeout <= 0 {
		o.TaskTimeout = time.Minute
	}
	if o.ResultTTL <= 0 {
		o.ResultTTL = 24 * time.Hour
	}
}

type Worker struct {
	queue    *Queue
	opts     WorkerOptions
	log      *zap.Logger
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewWorker(queue *Queue, opts WorkerOptions, log *zap.Logger) *Worker {
	opts.withDefaults()
	return &Worker{
		queue:    queue,
		opts:     opts,
		log:      log.With(zap.String("component", "worker"), zap.String("queue", queue.Name())),
		handlers: make(map[string]Handler),
	}
}

// Register binds a task name to its handler. Registering twice replaces.
func (w *Worker) Register(name string, h Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers[name] = h
}

func (w *Worker) handler(name string) (Handler, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	h, ok := w.handlers[name]
	return h, ok
}

// Run consumes the queue with Concurrency goroutines until ctx is done
func (w *Worker) Run(ctx context.Context) error {
	w.log.Info("Worker started", zap.Int("concurrency", w.opts.Concurrency))

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < w.opts.Concurrency; i++ {
		slot := i
		g.Go(func() error {
			return w.loop(gctx, slot)
		})
	}

	err := g.Wait()
	w.log.Info("Worker stopped")
	return err
}

func (w *Worker) loop(ctx context.Context, slot int) error {
	key := queueKey(w.queue.name)
	for {
		if ctx.Err() != nil {
			return nil
		}

		res, err := w.queue.rdb.BRPop(ctx, w.opts.PollTimeout, key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			w.log.Error("Failed to poll queue", zap.Error(err), zap.Int("slot", slot))
			// back off so a redis outage does not spin
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(w.opts.PollTimeout):
			}
			continue
		}

		// BRPOP replies with [key, value]
		if len(res) != 2 {
			continue
		}
		w.process(ctx, res[1])
	}
}

// process runs a single raw envelope and records its result
func (w *Worker) process(ctx context.Context, raw string) {
	var task Task
	if err := json.Unmarshal([]byte(raw), &task); err != nil {
		w.log.Error("Dropping malformed task envelope", zap.Error(err), zap.String("raw", raw))
		processedTotal.WithLabelValues("unknown", StatusFailure).Inc()
		return
	}

	log := w.log.With(zap.String("task", task.Name), zap.String("task_id", task.ID))

	h, ok := w.handler(task.Name)
	if !ok {
		err := fmt.Errorf("no handler registered for task %q", task.Name)
		log.Error("Unknown task", zap.Error(err))
		w.finish(ctx, &task, err)
		return
	}

	// a started task runs to completion even if the worker is shutting down
	taskCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.opts.TaskTimeout)
	defer cancel()

	start := time.Now()
	err := w.safeCall(taskCtx, h, &task)
	processingDuration.WithLabelValues(task.Name).Observe(time.Since(start).Seconds())

	if err != nil {
		log.Error("Task failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
	} else {
		log.Info("Task succeeded", zap.Duration("duration", time.Since(start)))
	}
	w.finish(taskCtx, &task, err)
}

func (w *Worker) safeCall(ctx context.Context, h Handler, task *Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("PANIC recovered in task",
				zap.Any("error", r),
				zap.String("task", task.Name),
				zap.Stack("stack"),
			)
			err = fmt.Errorf("task %s panicked: %v", task.Name, r)
		}
	}()
	return h(ctx, task)
}

func (w *Worker) finish(ctx context.Context, task *Task, taskErr error) {
	res := Result{
		TaskID:     task.ID,
		Name:       task.Name,
		Status:     StatusSuccess,
		FinishedAt: w.queue.now(),
	}
	if taskErr != nil {
		res.Status = StatusFailure
		res.Error = taskErr.Error()
	}
	processedTotal.WithLabelValues(task.Name, res.Status).Inc()

	raw, err := json.Marshal(res)
	if err != nil {
		w.log.Error("Failed to encode task result", zap.Error(err), zap.String("task_id", task.ID))
		return
	}
	if err := w.queue.rdb.Set(context.WithoutCancel(ctx), resultKey(task.ID), raw, w.opts.ResultTTL).Err(); err != nil {
		w.log.Warn("Failed to store task result", zap.Error(err), zap.String("task_id", task.ID))
	}
}
