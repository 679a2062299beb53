package dto

import "time"

type ProfileUpdateRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	MiddleName string `json:"middle_name"`
	Gender     string `json:"gender"`
	BirthDate  string `json:"birth_date"`
	City       string `json:"city"`
	Bio        string `json:"bio"`
	Status     string `json:"status"`
	IsPrivate  bool   `json:"is_private"`
}

type ProfileResponse struct {
	UserID     int64     `json:"user_id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name,omitempty"`
	MiddleName string    `json:"middle_name,omitempty"`
	Gender     string    `json:"gender"`
	BirthDate  string    `json:"birth_date"`
	Age        int       `json:"age"`
	City       string    `json:"city,omitempty"`
	Bio        string    `json:"bio,omitempty"`
	Status     string    `json:"status"`
	IsPrivate  bool      `json:"is_private"`
	LikesCount int       `json:"likes_count"`
	UpdatedAt  time.Time `json:"updated_at"`
}
