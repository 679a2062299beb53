package model

import (
	"time"

	"github.com/Kaifateg/RelateHub/internal/domain/enums"
)

// ContactRequest gates the exchange of contact emails between two matched
// users. Emails are snapshots taken at acceptance time, not live references.
type ContactRequest struct {
	ID                   int64               `json:"id"`
	SenderID             int64               `json:"sender_id"`
	ReceiverID           int64               `json:"receiver_id"`
	Status               enums.RequestStatus `json:"status"`
	SentAt               time.Time           `json:"sent_at"`
	RespondedAt          *time.Time          `json:"responded_at"`
	SenderContactEmail   string              `json:"sender_contact_email"`
	ReceiverContactEmail string              `json:"receiver_contact_email"`
}
