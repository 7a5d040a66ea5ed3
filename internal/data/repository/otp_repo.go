package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecommerce-demo/internal/data/entity"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ConsumeResult is the outcome of checking a submitted code against the store
type ConsumeResult int

const (
	// ConsumeAbsent means no live code exists (expired or never issued)
	ConsumeAbsent ConsumeResult = iota
	// ConsumeMismatch means a live code exists but differs; it is kept
	ConsumeMismatch
	// ConsumeMatched means the code matched and has been deleted
	ConsumeMatched
)

func (r ConsumeResult) String() string {
	switch r {
	case ConsumeAbsent:
		return "absent"
	case ConsumeMismatch:
		return "mismatch"
	case ConsumeMatched:
		return "matched"
	default:
		return fmt.Sprintf("ConsumeResult(%d)", int(r))
	}
}

// OTPRepository is the short-lived code store. Every method is atomic per
// subject key. Get, Set and Delete are the plain key operations of the
// store; the OTP engine goes through Replace and Consume only.
type OTPRepository interface {
	Get(ctx context.Context, subjectID int64) (string, bool, error)
	Set(ctx context.Context, subjectID int64, code string, ttl time.Duration) error
	Delete(ctx context.Context, subjectID int64) error
	// Replace drops any live code of the subject and stores the new one in
	// a single transaction, so at most one code is ever live.
	Replace(ctx context.Context, subjectID int64, code string, ttl time.Duration) (superseded bool, err error)
	// Consume compares and deletes on match in one step.
	Consume(ctx context.Context, subjectID int64, submitted string) (ConsumeResult, error)
}

// consumeScript returns 0 absent, 1 mismatch, 2 matched-and-deleted
var consumeScript = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
if not current then
	return 0
end
if current ~= ARGV[1] then
	return 1
end
redis.call('DEL', KEYS[1])
return 2
`)

type otpRepository struct {
	rdb redis.UniversalClient
	log *zap.Logger
}

func NewOTPRepository(rdb redis.UniversalClient, log *zap.Logger) OTPRepository {
	return &otpRepository{
		rdb: rdb,
		log: log.With(zap.String("repository", "otp")),
	}
}

func (r *otpRepository) Get(ctx context.Context, subjectID int64) (string, bool, error) {
	code, err := r.rdb.Get(ctx, entity.OTPKey(subjectID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		r.log.Error("Failed to get OTP", zap.Error(err), zap.Int64("user_id", subjectID))
		return "", false, fmt.Errorf("get OTP for user %d: %w", subjectID, err)
	}
	return code, true, nil
}

func (r *otpRepository) Set(ctx context.Context, subjectID int64, code string, ttl time.Duration) error {
	if err := r.rdb.Set(ctx, entity.OTPKey(subjectID), code, ttl).Err(); err != nil {
		r.log.Error("Failed to set OTP", zap.Error(err), zap.Int64("user_id", subjectID))
		return fmt.Errorf("set OTP for user %d: %w", subjectID, err)
	}
	return nil
}

func (r *otpRepository) Delete(ctx context.Context, subjectID int64) error {
	if err := r.rdb.Del(ctx, entity.OTPKey(subjectID)).Err(); err != nil {
		r.log.Error("Failed to delete OTP", zap.Error(err), zap.Int64("user_id", subjectID))
		return fmt.Errorf("delete OTP for user %d: %w", subjectID, err)
	}
	return nil
}

func (r *otpRepository) Replace(ctx context.Context, subjectID int64, code string, ttl time.Duration) (bool, error) {
	key := entity.OTPKey(subjectID)

	var del *redis.IntCmd
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, key)
		pipe.Set(ctx, key, code, ttl)
		return nil
	})
	if err != nil {
		r.log.Error("Failed to replace OTP", zap.Error(err), zap.Int64("user_id", subjectID))
		return false, fmt.Errorf("replace OTP for user %d: %w", subjectID, err)
	}

	return del.Val() > 0, nil
}

func (r *otpRepository) Consume(ctx context.Context, subjectID int64, submitted string) (ConsumeResult, error) {
	n, err := consumeScript.Run(ctx, r.rdb, []string{entity.OTPKey(subjectID)}, submitted).Int()
	if err != nil {
		r.log.Error("Failed to consume OTP", zap.Error(err), zap.Int64("user_id", subjectID))
		return ConsumeAbsent, fmt.Errorf("consume OTP for user %d: %w", subjectID, err)
	}
	return ConsumeResult(n), nil
}
