package dto

import "time"

type SwipeRequest struct {
	TargetID int64 `json:"target_id"`
	IsLike   *bool `json:"is_like"`
}

type SwipeResponse struct {
	ID        int64     `json:"id"`
	TargetID  int64     `json:"target_id"`
	IsLike    bool      `json:"is_like"`
	Matched   bool      `json:"matched"`
	CreatedAt time.Time `json:"created_at"`
}
