package model

import "time"

type Photo struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	ObjectKey   string    `json:"object_key"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	IsMain      bool      `json:"is_main"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
