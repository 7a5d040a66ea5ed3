package entity

import (
	"fmt"
	"time"
)

// OTPRecord is the one live verification code of a subject. It only ever
// lives in the code store, never in Postgres.
type OTPRecord struct {
	SubjectID int64
	Code      string
	IssuedAt  time.Time
	TTL       time.Duration
}

// OTPKey is the code store key of a subject
func OTPKey(subjectID int64) string {
	return fmt.Sprintf("otp_%d", subjectID)
}
