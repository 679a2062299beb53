package dto

import "time"

type DiscoverCandidateResponse struct {
	UserID     int64     `json:"user_id"`
	FirstName  string    `json:"first_name"`
	Gender     string    `json:"gender"`
	Age        int       `json:"age"`
	City       string    `json:"city,omitempty"`
	Status     string    `json:"status"`
	LikesCount int       `json:"likes_count"`
	JoinedAt   time.Time `json:"joined_at"`
}

type DiscoverListResponse struct {
	Candidates []DiscoverCandidateResponse `json:"candidates"`
	Limit      int                         `json:"limit"`
	Offset     int                         `json:"offset"`
}
