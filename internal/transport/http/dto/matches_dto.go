package dto

import "time"

type MatchResponse struct {
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	Age       int       `json:"age"`
	City      string    `json:"city,omitempty"`
	MatchedAt time.Time `json:"matched_at"`
}

type MatchListResponse struct {
	Matches []MatchResponse `json:"matches"`
}

type UserIDListResponse struct {
	UserIDs []int64 `json:"user_ids"`
}

type MatchActionRequest struct {
	ReceiverID int64 `json:"receiver_id"`
}

type MatchActionResponse struct {
	ID         int64     `json:"id"`
	SenderID   int64     `json:"sender_id"`
	ReceiverID int64     `json:"receiver_id"`
	SentAt     time.Time `json:"sent_at"`
}

type MatchActionListResponse struct {
	Actions []MatchActionResponse `json:"actions"`
}
