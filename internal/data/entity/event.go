package entity

// Topic names on the event bus
type Topic string

const (
	TopicRegister         Topic = "register"
	TopicResendOTP        Topic = "resend_otp"
	TopicVerifyOTPSuccess Topic = "verify_otp_success"
)

// SignupTopics is the fixed set the signup listener subscribes to
var SignupTopics = []Topic{TopicRegister, TopicResendOTP, TopicVerifyOTPSuccess}

// Task names understood by the background worker
const (
	TaskGenerateOTP     = "generate_otp"
	TaskActivateAccount = "activate_account"
	TaskWelcomeEmail    = "send_welcome_email"
)

// SubjectPayload is the argument of every signup task
type SubjectPayload struct {
	UserID int64 `json:"user_id"`
}
