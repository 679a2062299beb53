package model

import "time"

// Swipe is an immutable directed like/dislike edge. There is exactly one
// swipe per ordered (swiper, swiped) pair; the constraint lives in storage.
type Swipe struct {
	ID           int64     `json:"id"`
	SwiperID     int64     `json:"swiper_id"`
	SwipedUserID int64     `json:"swiped_user_id"`
	IsLike       bool      `json:"is_like"`
	CreatedAt    time.Time `json:"created_at"`
}
