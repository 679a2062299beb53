package model

import (
	"time"

	"github.com/Kaifateg/RelateHub/internal/domain/enums"
)

type Profile struct {
	UserID     int64               `json:"user_id"`
	FirstName  string              `json:"first_name"`
	LastName   string              `json:"last_name"`
	MiddleName string              `json:"middle_name"`
	Gender     enums.Gender        `json:"gender"`
	BirthDate  time.Time           `json:"birth_date"`
	Age        int                 `json:"age"`
	City       string              `json:"city"`
	Bio        string              `json:"bio"`
	Status     enums.ProfileStatus `json:"status"`
	IsPrivate  bool                `json:"is_private"`
	LikesCount int                 `json:"likes_count"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}
