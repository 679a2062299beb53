package dto

import "time"

type ContactRequestCreateRequest struct {
	ReceiverID int64 `json:"receiver_id"`
}

type ContactRequestResponse struct {
	ID                   int64      `json:"id"`
	SenderID             int64      `json:"sender_id"`
	ReceiverID           int64      `json:"receiver_id"`
	Status               string     `json:"status"`
	SentAt               time.Time  `json:"sent_at"`
	RespondedAt          *time.Time `json:"responded_at,omitempty"`
	SenderContactEmail   string     `json:"sender_contact_email,omitempty"`
	ReceiverContactEmail string     `json:"receiver_contact_email,omitempty"`
}

type ContactRequestListResponse struct {
	Requests []ContactRequestResponse `json:"requests"`
}
