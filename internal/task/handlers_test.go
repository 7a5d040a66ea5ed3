package task

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"ecommerce-demo/internal/data/entity"
	"ecommerce-demo/pkg/taskqueue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registry map[string]taskqueue.Handler

func (r registry) Register(name string, h taskqueue.Handler) { r[name] = h }

type recordingSignup struct {
	calls []string
	ids   []int64
	err   error
}

func (s *recordingSignup) record(name string, id int64) error {
	s.calls = append(s.calls, name)
	s.ids = append(s.ids, id)
	return s.err
}

func (s *recordingSignup) IssueCode(_ context.Context, id int64) error { return s.record("issue", id) }
func (s *recordingSignup) Activate(_ context.Context, id int64) error  { return s.record("activate", id) }
func (s *recordingSignup) SendWelcome(_ context.Context, id int64) error {
	return s.record("welcome", id)
}

func newTask(t *testing.T, name string, payload any) *taskqueue.Task {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return &taskqueue.Task{ID: "t1", Name: name, Payload: raw}
}

func TestRegister_BindsEveryTask(t *testing.T) {
	reg := registry{}
	signup := &recordingSignup{}
	Register(reg, signup)

	require.Len(t, reg, 3)
	ctx := context.Background()

	require.NoError(t, reg[entity.TaskGenerateOTP](ctx, newTask(t, entity.TaskGenerateOTP, entity.SubjectPayload{UserID: 9})))
	require.NoError(t, reg[entity.TaskActivateAccount](ctx, newTask(t, entity.TaskActivateAccount, entity.SubjectPayload{UserID: 9})))
	require.NoError(t, reg[entity.TaskWelcomeEmail](ctx, newTask(t, entity.TaskWelcomeEmail, entity.SubjectPayload{UserID: 9})))

	assert.Equal(t, []string{"issue", "activate", "welcome"}, signup.calls)
	assert.Equal(t, []int64{9, 9, 9}, signup.ids)
}

func TestHandler_BadPayload(t *testing.T) {
	reg := registry{}
	signup := &recordingSignup{}
	Register(reg, signup)
	ctx := context.Background()

	bad := &taskqueue.Task{ID: "t1", Name: entity.TaskActivateAccount, Payload: json.RawMessage(`"oops"`)}
	assert.Error(t, reg[entity.TaskActivateAccount](ctx, bad))

	assert.Error(t, reg[entity.TaskActivateAccount](ctx, newTask(t, entity.TaskActivateAccount, entity.SubjectPayload{})))
	assert.Empty(t, signup.calls)
}

func TestHandler_PropagatesServiceError(t *testing.T) {
	reg := registry{}
	signup := &recordingSignup{err: errors.New("user gone")}
	Register(reg, signup)

	err := reg[entity.TaskGenerateOTP](context.Background(), newTask(t, entity.TaskGenerateOTP, entity.SubjectPayload{UserID: 1}))
	assert.EqualError(t, err, "user gone")
}
