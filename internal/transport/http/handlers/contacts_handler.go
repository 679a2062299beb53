package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	authsvc "github.com/Kaifateg/RelateHub/internal/services/auth"
	contactsvc "github.com/Kaifateg/RelateHub/internal/services/contacts"
	"github.com/Kaifateg/RelateHub/internal/transport/http/dto"
	httperrors "github.com/Kaifateg/RelateHub/internal/transport/http/errors"
)

type ContactsHandler struct {
	service *contactsvc.Service
}

func NewContactsHandler(service *contactsvc.Service) *ContactsHandler {
	return &ContactsHandler{service: service}
}

func (h *ContactsHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "CONTACT_SERVICE_UNAVAILABLE", "contact service is unavailable")
		return
	}

	var req dto.ContactRequestCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if req.ReceiverID <= 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "receiver_id is required")
		return
	}

	request, err := h.service.Create(r.Context(), identity.UserID, req.ReceiverID)
	if err != nil {
		handleContactError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, toContactResponse(request))
}

func (h *ContactsHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, requestID, ok := h.requestContext(w, r)
	if !ok {
		return
	}

	request, err := h.service.Get(r.Context(), requestID, identity.UserID)
	if err != nil {
		handleContactError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, toContactResponse(request))
}

func (h *ContactsHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "CONTACT_SERVICE_UNAVAILABLE", "contact service is unavailable")
		return
	}

	requests, err := h.service.List(r.Context(), identity.UserID)
	if err != nil {
		handleContactError(w, err)
		return
	}

	payload := dto.ContactRequestListResponse{Requests: make([]dto.ContactRequestResponse, 0, len(requests))}
	for _, req := range requests {
		payload.Requests = append(payload.Requests, toContactResponse(req))
	}
	httperrors.Write(w, http.StatusOK, payload)
}

func (h *ContactsHandler) Accept(w http.ResponseWriter, r *http.Request) {
	identity, requestID, ok := h.requestContext(w, r)
	if !ok {
		return
	}

	request, err := h.service.Accept(r.Context(), requestID, identity.UserID)
	if err != nil {
		handleContactError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, toContactResponse(request))
}

func (h *ContactsHandler) Decline(w http.ResponseWriter, r *http.Request) {
	identity, requestID, ok := h.requestContext(w, r)
	if !ok {
		return
	}

	request, err := h.service.Decline(r.Context(), requestID, identity.UserID)
	if err != nil {
		handleContactError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, toContactResponse(request))
}

func (h *ContactsHandler) requestContext(w http.ResponseWriter, r *http.Request) (authsvc.Identity, int64, bool) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return authsvc.Identity{}, 0, false
	}
	if h.service == nil {
		writeInternal(w, "CONTACT_SERVICE_UNAVAILABLE", "contact service is unavailable")
		return authsvc.Identity{}, 0, false
	}

	requestID, err := strconv.ParseInt(chi.URLParam(r, "requestID"), 10, 64)
	if err != nil || requestID <= 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request id")
		return authsvc.Identity{}, 0, false
	}

	return identity, requestID, true
}

func handleContactError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, contactsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid contact request")
	case errors.Is(err, contactsvc.ErrSelfRequest):
		writeBadRequest(w, "SELF_REQUEST", "contact request to yourself is not allowed")
	case errors.Is(err, contactsvc.ErrNoMatch):
		writeForbidden(w, "NO_MATCH", "contact requests require a mutual match")
	case errors.Is(err, contactsvc.ErrDuplicateRequest):
		writeConflict(w, "REQUEST_EXISTS", "a contact request between these users is already open")
	case errors.Is(err, contactsvc.ErrAlreadyProcessed):
		writeConflict(w, "ALREADY_PROCESSED", "contact request was already processed")
	case errors.Is(err, contactsvc.ErrForbidden):
		writeForbidden(w, "FORBIDDEN", "only the receiver can respond to the request")
	case errors.Is(err, contactsvc.ErrNotFound):
		writeNotFound(w, "REQUEST_NOT_FOUND", "contact request not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

func toContactResponse(req contactsvc.Request) dto.ContactRequestResponse {
	return dto.ContactRequestResponse{
		ID:                   req.ID,
		SenderID:             req.SenderID,
		ReceiverID:           req.ReceiverID,
		Status:               string(req.Status),
		SentAt:               req.SentAt,
		RespondedAt:          req.RespondedAt,
		SenderContactEmail:   req.SenderContactEmail,
		ReceiverContactEmail: req.ReceiverContactEmail,
	}
}
