package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	authsvc "github.com/Kaifateg/RelateHub/internal/services/auth"
	profilesvc "github.com/Kaifateg/RelateHub/internal/services/profiles"
	"github.com/Kaifateg/RelateHub/internal/transport/http/dto"
	httperrors "github.com/Kaifateg/RelateHub/internal/transport/http/errors"
)

const birthDateLayout = "2006-01-02"

type ProfileHandler struct {
	service *profilesvc.Service
}

func NewProfileHandler(service *profilesvc.Service) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "PROFILE_SERVICE_UNAVAILABLE", "profile service is unavailable")
		return
	}

	profile, err := h.service.Get(r.Context(), identity.UserID, identity.UserID)
	if err != nil {
		handleProfileError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, toProfileResponse(profile))
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "PROFILE_SERVICE_UNAVAILABLE", "profile service is unavailable")
		return
	}

	ownerID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || ownerID <= 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return
	}

	profile, err := h.service.Get(r.Context(), ownerID, identity.UserID)
	if err != nil {
		handleProfileError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, toProfileResponse(profile))
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "PROFILE_SERVICE_UNAVAILABLE", "profile service is unavailable")
		return
	}

	var req dto.ProfileUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	birthDate, err := time.Parse(birthDateLayout, req.BirthDate)
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "birth_date must be YYYY-MM-DD")
		return
	}

	profile, err := h.service.Update(r.Context(), identity.UserID, profilesvc.UpdateInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		MiddleName: req.MiddleName,
		Gender:     req.Gender,
		BirthDate:  birthDate,
		City:       req.City,
		Bio:        req.Bio,
		Status:     req.Status,
		IsPrivate:  req.IsPrivate,
	})
	if err != nil {
		handleProfileError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, toProfileResponse(profile))
}

func handleProfileError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, profilesvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "profile validation failed")
	case errors.Is(err, profilesvc.ErrUnderAge):
		writeBadRequest(w, "UNDER_AGE", "profile owner must be at least 18 years old")
	case errors.Is(err, profilesvc.ErrNotFound):
		writeNotFound(w, "PROFILE_NOT_FOUND", "profile not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

func toProfileResponse(p profilesvc.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		UserID:     p.UserID,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		MiddleName: p.MiddleName,
		Gender:     string(p.Gender),
		BirthDate:  p.BirthDate.Format(birthDateLayout),
		Age:        p.Age,
		City:       p.City,
		Bio:        p.Bio,
		Status:     string(p.Status),
		IsPrivate:  p.IsPrivate,
		LikesCount: p.LikesCount,
		UpdatedAt:  p.UpdatedAt,
	}
}
