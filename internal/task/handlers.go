// Package task binds the signup tasks to the background worker.
package task

import (
	"context"
	"fmt"

	"ecommerce-demo/internal/data/entity"
	"ecommerce-demo/internal/usecase"
	"ecommerce-demo/pkg/taskqueue"
)

// Registrar is satisfied by *taskqueue.Worker
type Registrar interface {
	Register(name string, h taskqueue.Handler)
}

// Register installs one handler per signup task
func Register(r Registrar, signup usecase.SignupService) {
	r.Register(entity.TaskGenerateOTP, withSubject(signup.IssueCode))
	r.Register(entity.TaskActivateAccount, withSubject(signup.Activate))
	r.Register(entity.TaskWelcomeEmail, withSubject(signup.SendWelcome))
}

func withSubject(fn func(ctx context.Context, userID int64) error) taskqueue.Handler {
	return func(ctx context.Context, t *taskqueue.Task) error {
		var p entity.SubjectPayload
		if err := t.Decode(&p); err != nil {
			return err
		}
		if p.UserID <= 0 {
			return fmt.Errorf("task %s: invalid user id %d", t.Name, p.UserID)
		}
		return fn(ctx, p.UserID)
	}
}
