package model

import "time"

// MatchAction records an invitation event between two matched users.
// Unique per ordered (sender, receiver) pair, no further lifecycle.
type MatchAction struct {
	ID         int64     `json:"id"`
	SenderID   int64     `json:"sender_id"`
	ReceiverID int64     `json:"receiver_id"`
	SentAt     time.Time `json:"sent_at"`
}
