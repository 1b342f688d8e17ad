package dto

import "time"

// InteractionLoggedMessage is the payload published on the audit topic
// after a successful submission.
type InteractionLoggedMessage struct {
	LogId         string    `json:"log_id"`
	ChatSessionId string    `json:"chat_session_id"`
	Updated       bool      `json:"updated"`
	OccurredAt    time.Time `json:"occurred_at"`
}
