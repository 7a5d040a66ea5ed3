package cmd

import (
	"context"

	"ecommerce-demo/internal/event"
	"ecommerce-demo/pkg/taskqueue"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BackgroundWorker runs the signup listener next to the task worker. The
// listener only enqueues, so a slow task never blocks event intake.
func BackgroundWorker(ctx context.Context, listener *event.Listener, worker *taskqueue.Worker, logger *zap.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return listener.Run(gctx)
	})
	g.Go(func() error {
		return worker.Run(gctx)
	})

	err := g.Wait()
	logger.Info("Background worker stopped")
	return err
}
