package events

// Outcomes of the creation-notification step. The step never fails the
// request that triggered it, so this stream is the only place a failure
// is visible outside the logs.
const (
	OutcomeSent    = "SENT"
	OutcomeSkipped = "SKIPPED_NO_PROFILE"
	OutcomeFailed  = "FAILED"
)

type NotificationOutcome struct {
	UserID  string `json:"user_id"`
	TodoID  string `json:"todo_id"`
	Outcome string `json:"outcome"`
	Error   string `json:"error,omitempty"`
	At      int64  `json:"at"` // epoch ms
}
