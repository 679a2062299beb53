package enums

// RequestStatus is the contact request lifecycle state.
// A request starts in "sent" and moves exactly once to "accepted" or
// "declined"; both are terminal.
type RequestStatus string

const (
	RequestStatusSent     RequestStatus = "sent"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusDeclined RequestStatus = "declined"
)

func (s RequestStatus) Terminal() bool {
	return s == RequestStatusAccepted || s == RequestStatusDeclined
}
