package dto

import "time"

type PhotoResponse struct {
	ID          int64     `json:"id"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	IsMain      bool      `json:"is_main"`
	URL         string    `json:"url"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

type PhotoListResponse struct {
	Photos []PhotoResponse `json:"photos"`
}
